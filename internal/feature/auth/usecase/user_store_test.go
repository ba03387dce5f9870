package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByUsernameFunc is called when the FindByUsername method is invoked.
	FindByUsernameFunc func(ctx context.Context, username string) (*entity.User, error)
}

// Create is the mock implementation of the Create method.
func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

// FindByUsername is the mock implementation of the FindByUsername method.
func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, nil // Default: absent
}

// mockHasher is a deterministic CredentialHasher that records Verify calls.
type mockHasher struct {
	salt        string
	verifyCalls int
}

func (m *mockHasher) NewSalt() (string, error) {
	if m.salt == "" {
		return "fixed-salt", nil
	}
	return m.salt, nil
}

func (m *mockHasher) Hash(plaintext, salt string) string {
	return "hashed(" + plaintext + "," + salt + ")"
}

func (m *mockHasher) Verify(plaintext, salt, storedHash string) bool {
	m.verifyCalls++
	return m.Hash(plaintext, salt) == storedHash
}

func TestUserStore_SignUp(t *testing.T) {
	t.Run("successful signup stores hash and salt", func(t *testing.T) {
		var stored *entity.User
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				stored = user
				return nil
			},
		}
		store := NewUserStore(repo, &mockHasher{})

		err := store.SignUp(context.Background(), "Ashwin", "Ash@123")

		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Ashwin", stored.Username)
		assert.Equal(t, "fixed-salt", stored.Salt)
		assert.Equal(t, "hashed(Ash@123,fixed-salt)", stored.PasswordHash)
		assert.NotEqual(t, "Ash@123", stored.PasswordHash)
	})

	t.Run("duplicate username yields conflict", func(t *testing.T) {
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrUsernameExists
			},
		}
		store := NewUserStore(repo, &mockHasher{})

		err := store.SignUp(context.Background(), "Ashwin", "Ash@123")

		assert.ErrorIs(t, err, ErrUsernameExists)
		assert.NotErrorIs(t, err, ErrInternal)
	})

	t.Run("other persistence error yields internal error", func(t *testing.T) {
		dbErr := &pgconn.PgError{Code: "08006", Message: "connection failure"}
		repo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return dbErr
			},
		}
		store := NewUserStore(repo, &mockHasher{})

		err := store.SignUp(context.Background(), "Ashwin", "Ash@123")

		assert.ErrorIs(t, err, ErrInternal)
		assert.NotErrorIs(t, err, ErrUsernameExists)
	})
}

func TestUserStore_ValidateCredentials(t *testing.T) {
	hasher := &mockHasher{}
	existing := &entity.User{
		ID:           1,
		Username:     "Ashwin",
		Salt:         "s1",
		PasswordHash: hasher.Hash("Ash@123", "s1"),
	}

	t.Run("unknown user returns absent without hashing", func(t *testing.T) {
		h := &mockHasher{}
		store := NewUserStore(&mockUserRepository{}, h)

		name, ok, err := store.ValidateCredentials(context.Background(), "ghost", "Ash@123")

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, name)
		assert.Zero(t, h.verifyCalls, "hasher must not run for an unknown user")
	})

	t.Run("wrong password returns absent", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
				return existing, nil
			},
		}
		store := NewUserStore(repo, &mockHasher{})

		name, ok, err := store.ValidateCredentials(context.Background(), "Ashwin", "wrong")

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, name)
	})

	t.Run("correct password returns username", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
				return existing, nil
			},
		}
		store := NewUserStore(repo, &mockHasher{})

		name, ok, err := store.ValidateCredentials(context.Background(), "Ashwin", "Ash@123")

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Ashwin", name)
	})

	t.Run("lookup failure is an internal error", func(t *testing.T) {
		repo := &mockUserRepository{
			FindByUsernameFunc: func(ctx context.Context, username string) (*entity.User, error) {
				return nil, errors.New("database connection failed")
			},
		}
		store := NewUserStore(repo, &mockHasher{})

		_, ok, err := store.ValidateCredentials(context.Background(), "Ashwin", "Ash@123")

		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
