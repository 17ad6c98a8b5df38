package user

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "golden-movie-studio/internal/domain/user"
)

func newRepo(t *testing.T) (*Repository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.json")
	return NewRepository(path).(*Repository), path
}

func fakeUser() domain.User {
	return domain.User{
		Nome:      gofakeit.FirstName(),
		Sobrenome: gofakeit.LastName(),
		Email:     gofakeit.Email(),
		Telefone:  "11987654321",
		SenhaHash: "$2a$10$abcdefghijklmnopqrstuv",
	}
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRepository_FetchOnMissingFile(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	u, err := r.FetchUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.FetchUserByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestRepository_CreateUser_AssignsIncreasingIDs(t *testing.T) {
	r, _ := newRepo(t)
	ctx := context.Background()

	first, err := r.CreateUser(ctx, fakeUser())
	require.NoError(t, err)
	assert.Equal(t, domain.ID(1), first.ID)

	second, err := r.CreateUser(ctx, fakeUser())
	require.NoError(t, err)
	assert.Equal(t, domain.ID(2), second.ID)

	got, err := r.FetchUserByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.Email, got.Email)

	got, err = r.FetchUserByEmail(ctx, first.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.ID(1), got.ID)
}

func TestRepository_CreateUser_NextIDFromMax(t *testing.T) {
	r, path := newRepo(t)
	writeFile(t, path, `[
  {"id": 7, "nome": "Ana", "sobrenome": "Lima", "email": "ana@example.com", "senha": "x"},
  {"id": 3, "nome": "Bia", "sobrenome": "Reis", "email": "bia@example.com", "telefone": "", "senha": "y"}
]`)

	u, err := r.CreateUser(context.Background(), fakeUser())
	require.NoError(t, err)
	assert.Equal(t, domain.ID(8), u.ID)

	legacy, err := r.FetchUserByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, legacy)
	assert.Equal(t, "", legacy.Telefone, "missing telefone decodes as empty")
}

func TestRepository_CreateUser_DuplicateEmailWritesNothing(t *testing.T) {
	r, path := newRepo(t)
	ctx := context.Background()

	u := fakeUser()
	_, err := r.CreateUser(ctx, u)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	dup := fakeUser()
	dup.Email = u.Email
	_, err = r.CreateUser(ctx, dup)
	require.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRepository_FileFormat(t *testing.T) {
	r, path := newRepo(t)

	u := fakeUser()
	_, err := r.CreateUser(context.Background(), u)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[\n  {\n    \"id\": 1,\n    \"nome\": ")

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, u.SenhaHash, raw[0]["senha"])
	assert.Equal(t, u.Telefone, raw[0]["telefone"])

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestRepository_StorageErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) *Repository
	}{
		{
			name: "corrupt file",
			setup: func(t *testing.T) *Repository {
				r, path := newRepo(t)
				writeFile(t, path, "{not json")
				return r
			},
		},
		{
			name: "path is a directory",
			setup: func(t *testing.T) *Repository {
				return NewRepository(t.TempDir()).(*Repository)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := tt.setup(t)

			_, err := r.FetchUserByID(context.Background(), 1)
			require.ErrorIs(t, err, domain.ErrStorage)

			_, err = r.CreateUser(context.Background(), fakeUser())
			require.ErrorIs(t, err, domain.ErrStorage)
		})
	}
}

func TestRepository_CreateUser_WriteFailure(t *testing.T) {
	r := NewRepository(filepath.Join(t.TempDir(), "missing-dir", "users.json"))

	_, err := r.CreateUser(context.Background(), fakeUser())
	require.ErrorIs(t, err, domain.ErrStorage)
}

func TestRepository_BlankFileIsEmpty(t *testing.T) {
	r, path := newRepo(t)
	writeFile(t, path, "  \n")

	u, err := r.CreateUser(context.Background(), fakeUser())
	require.NoError(t, err)
	assert.Equal(t, domain.ID(1), u.ID)
}

func TestRepository_CanceledContext(t *testing.T) {
	r, _ := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.CreateUser(ctx, fakeUser())
	require.ErrorIs(t, err, context.Canceled)
}

func TestRepository_NullEntriesAreSkipped(t *testing.T) {
	r, path := newRepo(t)
	writeFile(t, path, `[null, {"id":4,"nome":"Ana","sobrenome":"Lima","email":"ana@example.com","telefone":"","senha":"x"}, null]`)
	ctx := context.Background()

	u, err := r.FetchUserByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = r.FetchUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, domain.ID(4), u.ID)

	created, err := r.CreateUser(ctx, fakeUser())
	require.NoError(t, err)
	assert.Equal(t, domain.ID(5), created.ID)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal(b, &stored))
	require.Len(t, stored, 2)
	for _, m := range stored {
		assert.NotNil(t, m)
	}
}

func TestRepository_OnlyNullEntries(t *testing.T) {
	r, path := newRepo(t)
	writeFile(t, path, `[null]`)

	u, err := r.FetchUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, u)

	created, err := r.CreateUser(context.Background(), fakeUser())
	require.NoError(t, err)
	assert.Equal(t, domain.ID(1), created.ID)
}
