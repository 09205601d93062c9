package subscription

import "context"

// Repository defines persistence operations for the subscription aggregate.
// GetByUserID returns (nil, nil) when the user has never subscribed.
type Repository interface {
	GetByUserID(ctx context.Context, userID uint) (*Subscription, error)
	// Replace overwrites the user's subscription record wholesale, creating
	// it if absent. Partial patches are deliberately not supported.
	Replace(ctx context.Context, sub *Subscription) error
}
