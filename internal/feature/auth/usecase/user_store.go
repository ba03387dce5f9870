package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrUsernameExists if a user with the same username already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername retrieves the user with the given username.
	// It returns (nil, nil) when no such user exists.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// CredentialHasher derives and checks salted password hashes.
type CredentialHasher interface {
	NewSalt() (string, error)
	Hash(plaintext, salt string) string
	Verify(plaintext, salt, storedHash string) bool
}

// UserStore owns user creation and credential checks on top of a UserRepository.
type UserStore struct {
	users  UserRepository
	hasher CredentialHasher
}

// NewUserStore creates a UserStore.
func NewUserStore(users UserRepository, hasher CredentialHasher) *UserStore {
	return &UserStore{users: users, hasher: hasher}
}

// SignUp hashes password with a fresh salt and persists the new user.
// It returns ErrUsernameExists for a taken username and ErrInternal for any other failure.
func (s *UserStore) SignUp(ctx context.Context, username, password string) error {
	salt, err := s.hasher.NewSalt()
	if err != nil {
		slog.Error("failed to generate salt", "error", err, "username", username)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}

	user := &entity.User{
		Username:     username,
		PasswordHash: s.hasher.Hash(password, salt),
		Salt:         salt,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return ErrUsernameExists
		}
		slog.Error("failed to create user", "error", err, "username", username)
		return fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return nil
}

// ValidateCredentials returns the username and true when password matches the stored hash.
// An unknown user and a wrong password both yield ("", false, nil); the error is reserved
// for persistence failures.
func (s *UserStore) ValidateCredentials(ctx context.Context, username, password string) (string, bool, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		slog.Error("failed to load user", "error", err, "username", username)
		return "", false, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if user == nil {
		return "", false, nil
	}
	if !s.hasher.Verify(password, user.Salt, user.PasswordHash) {
		return "", false, nil
	}
	return user.Username, true, nil
}

// FindByUsername looks the user up, returning (nil, nil) when absent.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.users.FindByUsername(ctx, username)
}
