package ports

import (
	"context"

	"golden-movie-studio/internal/domain/user"
)

type UserService interface {
	RegisterUser(ctx context.Context, reg user.Registration) (*user.User, error)
	FindUserByID(ctx context.Context, id user.ID) (*user.User, error)
	FindUserByEmail(ctx context.Context, email string) (*user.User, error)
}
