package users

import "time"

// User is a registered identity. ID is an opaque unique identifier assigned
// once at registration; PasswordHash is a self-describing bcrypt string that
// carries its own salt and cost factor. Records are never mutated after
// creation.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
