package models

import "strings"

// Contact is a contact record as returned by the CMS after normalization.
type Contact struct {
	ID        string `json:"id"`
	First     string `json:"first,omitempty"`
	Last      string `json:"last,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	Favorite  *bool  `json:"favorite,omitempty"`
}

// FullName joins first and last name, skipping empty parts.
func (c Contact) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.First) + " " + strings.TrimSpace(c.Last))
}

// IsFavorite reports whether the favorite flag is set and true. An absent
// flag reads as false.
func (c Contact) IsFavorite() bool {
	return c.Favorite != nil && *c.Favorite
}

// HasName reports whether the contact has either a first or a last name.
func (c Contact) HasName() bool {
	return c.FullName() != ""
}

// ContactMutation is the writable subset of a contact. Nil fields are left
// out of the request body so the CMS keeps their current values. ID only
// applies when creating; an assigned id never changes.
type ContactMutation struct {
	ID       *string `json:"id,omitempty"`
	First    *string `json:"first,omitempty"`
	Last     *string `json:"last,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Favorite *bool   `json:"favorite,omitempty"`
}

// IsEmpty reports whether no updatable field is set. ID is not counted.
func (m ContactMutation) IsEmpty() bool {
	return m.First == nil && m.Last == nil && m.Avatar == nil &&
		m.Twitter == nil && m.Notes == nil && m.Favorite == nil
}

// Apply copies the set fields onto c, except ID.
func (m ContactMutation) Apply(c *Contact) {
	if m.First != nil {
		c.First = *m.First
	}

	if m.Last != nil {
		c.Last = *m.Last
	}

	if m.Avatar != nil {
		c.Avatar = *m.Avatar
	}

	if m.Twitter != nil {
		c.Twitter = *m.Twitter
	}

	if m.Notes != nil {
		c.Notes = *m.Notes
	}

	if m.Favorite != nil {
		c.Favorite = Bool(*m.Favorite)
	}
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}
