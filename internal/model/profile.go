package model

// ProfileRecord is a profile document from the content-derived profile
// store: a slug plus loosely-typed metadata. Read-only input.
type ProfileRecord struct {
	Slug     string          `json:"slug" yaml:"slug"`
	Metadata ProfileMetadata `json:"metadata" yaml:"metadata"`
	Extra    map[string]any  `json:"extra,omitempty" yaml:"-"`
}

// ProfileMetadata holds the optional identity fields a profile document may
// declare. Unknown metadata keys land in Extra and are never copied into a
// resolved identity.
type ProfileMetadata struct {
	Handle      string         `json:"handle,omitempty" yaml:"handle"`
	Name        string         `json:"name,omitempty" yaml:"name"`
	DisplayName string         `json:"display_name,omitempty" yaml:"displayName"`
	Role        string         `json:"role,omitempty" yaml:"role"`
	Avatar      string         `json:"avatar,omitempty" yaml:"avatar"`
	Bio         string         `json:"bio,omitempty" yaml:"bio"`
	Pronouns    string         `json:"pronouns,omitempty" yaml:"pronouns"`
	Location    string         `json:"location,omitempty" yaml:"location"`
	Website     string         `json:"website,omitempty" yaml:"website"`
	Contact     ProfileContact `json:"contact" yaml:"contact"`
	Extra       map[string]any `json:"-" yaml:",inline"`
}

// ProfileContact is the nested secondary contact mapping of a profile
// document, consulted as a fallback for the website field.
type ProfileContact struct {
	Website string `json:"website,omitempty" yaml:"website"`
}

// ProfileFilter narrows a profile listing. The zero value matches all
// profiles.
type ProfileFilter struct {
	Handle string
}
