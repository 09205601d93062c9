package card

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	c, err := NewCard(7, "card_abc123", Fields{Name: "Jane Doe"})
	require.NoError(t, err)

	assert.Equal(t, uint(0), c.ID())
	assert.Equal(t, "card_abc123", c.SID())
	assert.Equal(t, uint(7), c.UserID())
	assert.Equal(t, "Jane Doe", c.Fields().Name)
	assert.Equal(t, c.CreatedAt(), c.UpdatedAt())
	assert.False(t, c.CreatedAt().IsZero())
}

func TestNewCard_Validation(t *testing.T) {
	_, err := NewCard(0, "card_abc123", Fields{})
	assert.Error(t, err)

	_, err = NewCard(1, "", Fields{})
	assert.Error(t, err)
}

func TestCard_SetID(t *testing.T) {
	c, err := NewCard(1, "card_abc123", Fields{})
	require.NoError(t, err)

	require.NoError(t, c.SetID(42))
	assert.Equal(t, uint(42), c.ID())

	assert.Error(t, c.SetID(43), "ID must be immutable once assigned")
	assert.Equal(t, uint(42), c.ID())
}

func TestCard_ApplyPatch_PartialUpdateNonDestructive(t *testing.T) {
	created := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	original := Fields{
		Name:     "Jane Doe",
		JobTitle: "CTO",
		Company:  "Acme",
		Email:    "jane@acme.com",
		Phone:    "+1 555 0100",
		Website:  "https://acme.com",
		Address:  "1 Main St",
		Notes:    "met at conference",
	}
	c, err := ReconstructCard(1, "card_abc123", 7, original, created, created)
	require.NoError(t, err)

	notes := "follow up next week"
	c.ApplyPatch(Patch{Notes: &notes})

	got := c.Fields()
	assert.Equal(t, "follow up next week", got.Notes)

	// Every other field is untouched.
	expected := original
	expected.Notes = notes
	assert.Equal(t, expected, got)

	assert.Equal(t, created, c.CreatedAt(), "created_at must never change")
	assert.True(t, c.UpdatedAt().After(created), "updated_at must advance")
}

func TestCard_ApplyPatch_EmptyStringOverwrites(t *testing.T) {
	c, err := NewCard(1, "card_abc123", Fields{Email: "jane@acme.com"})
	require.NoError(t, err)

	empty := ""
	c.ApplyPatch(Patch{Email: &empty})
	assert.Equal(t, "", c.Fields().Email, "explicit empty value clears the field")
}

func TestPatch_IsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())

	v := "x"
	assert.False(t, Patch{Website: &v}.IsEmpty())
}
