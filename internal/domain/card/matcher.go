package card

import (
	"strings"
	"unicode"
)

// Candidate is the partial contact compared against a user's stored cards.
type Candidate struct {
	Name  string
	Email string
	Phone string
}

// NormalizeText trims surrounding whitespace and lowercases. It is
// idempotent: normalizing an already-normalized value is a no-op.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizePhone applies NormalizeText and additionally strips whitespace,
// hyphens, and parentheses so "+91 98765-43210" and "+91(98765)43210"
// compare equal. Whitespace covers the full unicode class; OCR output and
// copy-pasted numbers carry tabs and non-breaking spaces, not just spaces.
func NormalizePhone(s string) string {
	normalized := NormalizeText(s)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		switch r {
		case '-', '(', ')':
			return -1
		}
		return r
	}, normalized)
}

// FindDuplicate returns the first stored card considered the same real-world
// contact as the candidate, or nil.
//
// A match is declared on any single per-field equality after normalization
// (name OR email OR phone) where both sides are non-empty. There is no
// weighting, no fuzzy matching, and no AND-combination; a name match with a
// different email still counts. Callers surface the match as a warning, never
// as a hard block. Ties break in stored order.
func FindDuplicate(candidate Candidate, existing []*Card) *Card {
	name := NormalizeText(candidate.Name)
	email := NormalizeText(candidate.Email)
	phone := NormalizePhone(candidate.Phone)

	// Nothing to compare on; empty-vs-empty must never match.
	if name == "" && email == "" && phone == "" {
		return nil
	}

	for _, c := range existing {
		f := c.Fields()
		if name != "" {
			if n := NormalizeText(f.Name); n != "" && n == name {
				return c
			}
		}
		if email != "" {
			if e := NormalizeText(f.Email); e != "" && e == email {
				return c
			}
		}
		if phone != "" {
			if p := NormalizePhone(f.Phone); p != "" && p == phone {
				return c
			}
		}
	}

	return nil
}
