package user

import "context"

// Repository defines persistence operations for the user aggregate.
// Get methods return (nil, nil) when no user matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetBySID(ctx context.Context, sid string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
