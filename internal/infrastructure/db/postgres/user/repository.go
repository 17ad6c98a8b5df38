package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"golden-movie-studio/internal/domain/user"
	"golden-movie-studio/internal/infrastructure/db/postgres"
)

const pkeyConstraint = "usuarios_pkey"

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) user.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByID, int64(id))
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.fetchOne(ctx, SelectUserByEmail, email)
}

func (r *Repository) fetchOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u := new(User)
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID,
		&u.Nome,
		&u.Sobrenome,
		&u.Email,
		&u.Telefone,
		&u.Senha,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", user.ErrStorage, err)
	}

	return fromDBModel(u), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	u := new(User)

	err := r.db.QueryRow(
		ctx,
		InsertUser,
		req.Nome, req.Sobrenome, req.Email, req.Telefone, req.SenhaHash,
	).Scan(
		&u.ID,
		&u.Nome,
		&u.Sobrenome,
		&u.Email,
		&u.Telefone,
		&u.Senha,
	)
	if err != nil {
		// a primary key clash means two inserts raced on MAX(id)
		if constraint, ok := postgres.UniqueViolation(err); ok && constraint != pkeyConstraint {
			return nil, user.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%w: %w", user.ErrStorage, err)
	}

	return fromDBModel(u), nil
}
