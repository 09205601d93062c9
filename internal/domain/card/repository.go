package card

import "context"

// Repository defines persistence operations for the card aggregate. All
// lookups are scoped by the owning user; a card is never visible outside its
// owner's collection. Get methods return (nil, nil) when no card matches;
// Update and Delete return a not found error when no card matches.
type Repository interface {
	Create(ctx context.Context, card *Card) error
	GetBySID(ctx context.Context, userID uint, sid string) (*Card, error)
	// ListByUser returns the user's cards ordered by created_at descending.
	// limit <= 0 means no limit.
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*Card, error)
	Update(ctx context.Context, card *Card) error
	Delete(ctx context.Context, userID uint, sid string) error
}
