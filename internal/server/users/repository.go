package users

import (
	"context"
)

// Repository stores users. Lookups by email are case-insensitive. Updates
// touch a single column so concurrent changes to other fields survive.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	MarkVerified(ctx context.Context, id string) error
	SetPasswordHash(ctx context.Context, id string, hash []byte) error
}
