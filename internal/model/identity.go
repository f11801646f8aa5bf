package model

// IdentitySource tags which resolution tier produced an identity.
type IdentitySource string

const (
	// IdentitySourceStore marks identities backed by the account store.
	IdentitySourceStore IdentitySource = "store"
	// IdentitySourceProfile marks identities derived from a profile document.
	IdentitySourceProfile IdentitySource = "profile"
	// IdentitySourceNoAuth marks the fixed development fallback identity.
	IdentitySourceNoAuth IdentitySource = "noauth"
)

// DefaultRole is assigned when no source declares a role for the identity.
const DefaultRole = "member"

// Identity is the unified resolution result. It is built fresh per
// resolution and never mutated afterwards. Account is set only when Source
// is IdentitySourceStore and references the original record, including any
// extra fields the normalization did not interpret.
type Identity struct {
	ID          string         `json:"id,omitempty"`
	Handle      string         `json:"handle"`
	DisplayName string         `json:"display_name"`
	Source      IdentitySource `json:"source"`
	Role        string         `json:"role"`
	Avatar      string         `json:"avatar,omitempty"`
	Bio         string         `json:"bio,omitempty"`
	Pronouns    string         `json:"pronouns,omitempty"`
	Location    string         `json:"location,omitempty"`
	Website     string         `json:"website,omitempty"`
	Account     *AccountRecord `json:"-"`
}
