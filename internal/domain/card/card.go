package card

import (
	"fmt"
	"time"
)

// Fields holds the extracted content of one scanned business card. Every
// field is optional; absent values are empty strings.
type Fields struct {
	Name          string
	JobTitle      string
	Company       string
	Email         string
	Phone         string
	Website       string
	Address       string
	Notes         string
	FrontImageURL string
	BackImageURL  string
	RawTextFront  string
	RawTextBack   string
}

// Patch carries a partial update. Only non-nil fields overwrite the stored
// value; nil fields keep their prior value.
type Patch struct {
	Name          *string
	JobTitle      *string
	Company       *string
	Email         *string
	Phone         *string
	Website       *string
	Address       *string
	Notes         *string
	FrontImageURL *string
	BackImageURL  *string
	RawTextFront  *string
	RawTextBack   *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.JobTitle == nil && p.Company == nil &&
		p.Email == nil && p.Phone == nil && p.Website == nil &&
		p.Address == nil && p.Notes == nil && p.FrontImageURL == nil &&
		p.BackImageURL == nil && p.RawTextFront == nil && p.RawTextBack == nil
}

// Card represents the card aggregate root: one scanned business card owned
// by exactly one user. Cards are never required to be unique by any field;
// duplicates are detected, not prevented.
type Card struct {
	id        uint
	sid       string
	userID    uint
	fields    Fields
	createdAt time.Time
	updatedAt time.Time
}

// NewCard creates a new card for the given owner.
func NewCard(userID uint, sid string, fields Fields) (*Card, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if sid == "" {
		return nil, fmt.Errorf("card SID is required")
	}

	now := time.Now().UTC()
	return &Card{
		sid:       sid,
		userID:    userID,
		fields:    fields,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructCard reconstructs a card from persistence.
func ReconstructCard(
	id uint,
	sid string,
	userID uint,
	fields Fields,
	createdAt, updatedAt time.Time,
) (*Card, error) {
	if id == 0 {
		return nil, fmt.Errorf("card ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("card SID is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}

	return &Card{
		id:        id,
		sid:       sid,
		userID:    userID,
		fields:    fields,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

// ID returns the internal card ID
func (c *Card) ID() uint {
	return c.id
}

// SID returns the API-visible card ID
func (c *Card) SID() string {
	return c.sid
}

// UserID returns the owning user's ID
func (c *Card) UserID() uint {
	return c.userID
}

// Fields returns the card's extracted content
func (c *Card) Fields() Fields {
	return c.fields
}

// CreatedAt returns when the card was created
func (c *Card) CreatedAt() time.Time {
	return c.createdAt
}

// UpdatedAt returns when the card was last mutated
func (c *Card) UpdatedAt() time.Time {
	return c.updatedAt
}

// SetID sets the card ID (only for persistence layer use)
func (c *Card) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("card ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("card ID cannot be zero")
	}
	c.id = id
	return nil
}

// ApplyPatch overwrites only the fields present in the patch and bumps
// updated_at. created_at is never touched.
func (c *Card) ApplyPatch(p Patch) {
	if p.Name != nil {
		c.fields.Name = *p.Name
	}
	if p.JobTitle != nil {
		c.fields.JobTitle = *p.JobTitle
	}
	if p.Company != nil {
		c.fields.Company = *p.Company
	}
	if p.Email != nil {
		c.fields.Email = *p.Email
	}
	if p.Phone != nil {
		c.fields.Phone = *p.Phone
	}
	if p.Website != nil {
		c.fields.Website = *p.Website
	}
	if p.Address != nil {
		c.fields.Address = *p.Address
	}
	if p.Notes != nil {
		c.fields.Notes = *p.Notes
	}
	if p.FrontImageURL != nil {
		c.fields.FrontImageURL = *p.FrontImageURL
	}
	if p.BackImageURL != nil {
		c.fields.BackImageURL = *p.BackImageURL
	}
	if p.RawTextFront != nil {
		c.fields.RawTextFront = *p.RawTextFront
	}
	if p.RawTextBack != nil {
		c.fields.RawTextBack = *p.RawTextBack
	}
	c.updatedAt = time.Now().UTC()
}
