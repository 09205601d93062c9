package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCard(t *testing.T, id uint, fields Fields) *Card {
	t.Helper()
	c, err := NewCard(1, "card_test", fields)
	require.NoError(t, err)
	require.NoError(t, c.SetID(id))
	return c
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims and lowercases", "  Jane Doe ", "jane doe"},
		{"already normalized is unchanged", "jane doe", "jane doe"},
		{"empty stays empty", "", ""},
		{"whitespace only collapses to empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips spaces hyphens parens", "+91 (98765) 432-10", "+919876543210"},
		{"strips tabs", "+91\t98765\t43210", "+919876543210"},
		{"strips non-breaking spaces", "+91 98765 43210", "+919876543210"},
		{"idempotent", "+919876543210", "+919876543210"},
		{"plus sign preserved", "+1 555 0100", "+15550100"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"+91 98765-43210", "(044) 2811 0000", "jane doe", ""}
	for _, in := range inputs {
		once := NormalizePhone(in)
		assert.Equal(t, once, NormalizePhone(once))
	}
}

func TestFindDuplicate_EmptyCandidate(t *testing.T) {
	existing := []*Card{
		mustCard(t, 1, Fields{Name: "Jane Doe", Email: "jane@x.com"}),
		mustCard(t, 2, Fields{Phone: "+91 98765 43210"}),
	}

	assert.Nil(t, FindDuplicate(Candidate{}, existing))
	assert.Nil(t, FindDuplicate(Candidate{Name: "   "}, existing))
}

func TestFindDuplicate_EmptyFieldsNeverMatch(t *testing.T) {
	// Two records both lacking a phone must not match on the shared absence.
	existing := []*Card{mustCard(t, 1, Fields{Name: "Jane Doe"})}

	match := FindDuplicate(Candidate{Phone: "", Email: "", Name: "John Smith"}, existing)
	assert.Nil(t, match)
}

func TestFindDuplicate_SingleFieldSufficiency(t *testing.T) {
	existing := []*Card{
		mustCard(t, 1, Fields{Name: "Jane Doe", Email: "jane@y.com", Phone: "+1 555 0100"}),
	}

	tests := []struct {
		name      string
		candidate Candidate
		wantMatch bool
	}{
		{
			name:      "email alone matches despite differing name",
			candidate: Candidate{Name: "Janet Doerr", Email: "JANE@Y.COM"},
			wantMatch: true,
		},
		{
			name:      "name alone matches despite differing email",
			candidate: Candidate{Name: "jane doe", Email: "jane@x.com"},
			wantMatch: true,
		},
		{
			name:      "phone alone matches with formatting differences",
			candidate: Candidate{Phone: "+1 (555) 01-00"},
			wantMatch: true,
		},
		{
			name:      "phone with tab and nbsp matches space-formatted twin",
			candidate: Candidate{Phone: "+1\t555 0100"},
			wantMatch: true,
		},
		{
			name:      "nothing shared",
			candidate: Candidate{Name: "John Smith", Email: "john@z.com", Phone: "+1 555 0199"},
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := FindDuplicate(tt.candidate, existing)
			if tt.wantMatch {
				require.NotNil(t, match)
				assert.Equal(t, uint(1), match.ID())
			} else {
				assert.Nil(t, match)
			}
		})
	}
}

func TestFindDuplicate_FirstInStoredOrderWins(t *testing.T) {
	existing := []*Card{
		mustCard(t, 1, Fields{Name: "Jane Doe", Email: "jane@a.com"}),
		mustCard(t, 2, Fields{Name: "Jane Doe", Email: "jane@b.com"}),
	}

	match := FindDuplicate(Candidate{Name: "Jane Doe"}, existing)
	require.NotNil(t, match)
	assert.Equal(t, uint(1), match.ID())
}

func TestFindDuplicate_Symmetry(t *testing.T) {
	// Equality is symmetric post-normalization, so swapping candidate and
	// stored sides must not change the verdict.
	a := Fields{Name: "Jane Doe", Email: "jane@x.com", Phone: "+91 98765 43210"}
	b := Fields{Name: " JANE DOE ", Email: "other@x.com", Phone: ""}

	matchAB := FindDuplicate(Candidate{Name: a.Name, Email: a.Email, Phone: a.Phone},
		[]*Card{mustCard(t, 1, b)})
	matchBA := FindDuplicate(Candidate{Name: b.Name, Email: b.Email, Phone: b.Phone},
		[]*Card{mustCard(t, 2, a)})

	assert.Equal(t, matchAB != nil, matchBA != nil)
	assert.NotNil(t, matchAB)
}
