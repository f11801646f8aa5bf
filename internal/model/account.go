package model

import "time"

// AccountRecord represents a user account as stored in the authoritative
// account store. The resolver treats it as read-only input; Extra carries
// any columns the resolver does not interpret, preserved verbatim.
type AccountRecord struct {
	ID          string         `json:"id"`
	Handle      string         `json:"handle"`
	DisplayName string         `json:"display_name"`
	Role        string         `json:"role"`
	Avatar      string         `json:"avatar,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	Pronouns    string         `json:"pronouns,omitempty"`
	Location    string         `json:"location,omitempty"`
	Website     string         `json:"website,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
