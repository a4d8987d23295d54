package contacts

import (
	"context"

	"contacts/internal/models"
)

// UpdateResult is either the updated contact or an error message.
type UpdateResult struct {
	Contact *models.Contact `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// NewUpdateResult builds the descriptor for an Update outcome.
func NewUpdateResult(c *models.Contact, err error) UpdateResult {
	if err != nil {
		return UpdateResult{Error: err.Error()}
	}

	return UpdateResult{Contact: c}
}

// Failed reports whether the update failed.
func (u UpdateResult) Failed() bool {
	return u.Error != ""
}

// Soft exposes the store with failures folded into empty results. The
// wrapped store is expected to have logged the failure already.
type Soft struct {
	store Store
}

// NewSoft wraps store.
func NewSoft(store Store) *Soft {
	return &Soft{store: store}
}

// List returns nil on failure.
func (s *Soft) List(ctx context.Context, query string) []models.Contact {
	contacts, err := s.store.List(ctx, query)
	if err != nil {
		return nil
	}

	return contacts
}

// Get returns nil when the contact is missing or the call failed.
func (s *Soft) Get(ctx context.Context, id string) *models.Contact {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		return nil
	}

	return c
}

// Create returns nil on failure.
func (s *Soft) Create(ctx context.Context, m models.ContactMutation) *models.Contact {
	c, err := s.store.Create(ctx, m)
	if err != nil {
		return nil
	}

	return c
}

// Update never fails; check Failed on the result.
func (s *Soft) Update(ctx context.Context, id string, m models.ContactMutation) UpdateResult {
	return NewUpdateResult(s.store.Update(ctx, id, m))
}

// Delete discards the outcome.
func (s *Soft) Delete(ctx context.Context, id string) {
	_ = s.store.Delete(ctx, id)
}
