package contacts

import (
	"fmt"

	"contacts/internal/models"
	"contacts/internal/normalizer"
)

func toContacts(node normalizer.Node) ([]models.Contact, error) {
	switch n := node.(type) {
	case normalizer.Null:
		return []models.Contact{}, nil
	case normalizer.Seq:
		contacts := make([]models.Contact, 0, len(n))

		for i, item := range n {
			obj, ok := item.(*normalizer.Object)
			if !ok {
				return nil, fmt.Errorf("%w: item %d is %s, want object", ErrDecode, i, normalizer.Kind(item))
			}

			contacts = append(contacts, fromRecord(obj))
		}

		return contacts, nil
	}

	return nil, fmt.Errorf("%w: data is %s, want array", ErrDecode, normalizer.Kind(node))
}

func toContact(node normalizer.Node) (*models.Contact, error) {
	switch n := node.(type) {
	case normalizer.Null:
		return nil, ErrNotFound
	case *normalizer.Object:
		c := fromRecord(n)
		if c.ID == "" {
			return nil, fmt.Errorf("%w: record has no id", ErrDecode)
		}

		return &c, nil
	}

	return nil, fmt.Errorf("%w: data is %s, want object", ErrDecode, normalizer.Kind(node))
}

// fromRecord reads the contact fields of a flat record. Unknown keys are
// ignored and absent fields stay empty.
func fromRecord(obj *normalizer.Object) models.Contact {
	var c models.Contact

	c.ID, _ = obj.String("id")
	c.First, _ = obj.String("first")
	c.Last, _ = obj.String("last")
	c.Avatar, _ = obj.String("avatar")
	c.Twitter, _ = obj.String("twitter")
	c.Notes, _ = obj.String("notes")
	c.CreatedAt, _ = obj.String("createdAt")
	if fav, ok := obj.Bool("favorite"); ok {
		c.Favorite = &fav
	}

	return c
}
