package user

import (
	"context"
)

// Repository lookups return (nil, nil) when nothing matches.
type Repository interface {
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	// CreateUser assigns the next id and persists the record.
	CreateUser(ctx context.Context, req User) (*User, error)
}
