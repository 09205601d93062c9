package usage

import "context"

// Repository defines persistence operations for monthly scan counters.
type Repository interface {
	// GetCount returns the counter for the month, 0 when no row exists yet.
	GetCount(ctx context.Context, userID uint, monthKey string) (int, error)

	// Increment unconditionally adds one scan and returns the new count.
	// Used for unlimited tiers.
	Increment(ctx context.Context, userID uint, monthKey string) (int, error)

	// IncrementIfBelow adds one scan only while count < limit, as a single
	// atomic conditional write. It returns the resulting count and whether
	// the increment happened; when it did not, the returned count is the
	// unchanged current value.
	IncrementIfBelow(ctx context.Context, userID uint, monthKey string, limit int) (count int, incremented bool, err error)
}
