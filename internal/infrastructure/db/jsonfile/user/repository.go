package user

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golden-movie-studio/internal/domain/user"
)

const filePerm = 0o644

// Repository keeps the whole record set in one JSON file. Every call reads
// the file in full and every mutation rewrites it in full.
//
// There is no locking around the read-modify-write cycle: two concurrent
// CreateUser calls can read the same snapshot, both pass the duplicate check
// or get the same id, and the later write wins.
type Repository struct {
	path string
}

func NewRepository(path string) user.Repository {
	return &Repository{path: path}
}

func (r *Repository) FetchUserByID(ctx context.Context, id user.ID) (*user.User, error) {
	us, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return us.FindByID(id), nil
}

func (r *Repository) FetchUserByEmail(ctx context.Context, email string) (*user.User, error) {
	us, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	return us.FindByEmail(email), nil
}

func (r *Repository) CreateUser(ctx context.Context, req user.User) (*user.User, error) {
	us, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if us.FindByEmail(req.Email) != nil {
		return nil, user.ErrEmailAlreadyExists
	}

	u := req
	u.ID = us.NextID()
	us = append(us, &u)

	if err = r.save(ctx, us); err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *Repository) load(ctx context.Context) (user.Users, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return user.Users{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", user.ErrStorage, r.path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return user.Users{}, nil
	}

	var models Users
	if err = json.Unmarshal(b, &models); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", user.ErrStorage, r.path, err)
	}

	return fromFileModels(models), nil
}

// save replaces the file through a temp file and rename, so readers see
// either the old or the new record set.
func (r *Repository) save(ctx context.Context, us user.Users) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := json.MarshalIndent(toFileModels(us), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", user.ErrStorage, err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp in %s: %w", user.ErrStorage, dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err = tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write %s: %w", user.ErrStorage, tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync %s: %w", user.ErrStorage, tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", user.ErrStorage, tmpName, err)
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("%w: chmod %s: %w", user.ErrStorage, tmpName, err)
	}
	if err = os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%w: rename to %s: %w", user.ErrStorage, r.path, err)
	}

	return nil
}
