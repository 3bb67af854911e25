package users

import "context"

// Repository is the identity store. It owns user records keyed by username.
//
// GetByUsername returns common.ErrorNotFound for an absent user so callers
// can branch explicitly instead of dereferencing a nil record. Create
// returns common.ErrorAlreadyExists when the username is already taken;
// uniqueness is enforced by the store, not by callers.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, userName string) (*User, error)
}
