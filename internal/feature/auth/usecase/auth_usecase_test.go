package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task_backend/internal/feature/auth/domain/entity"
)

// mockCredentialStore is a mock implementation of the CredentialStore interface.
type mockCredentialStore struct {
	SignUpFunc              func(ctx context.Context, username, password string) error
	ValidateCredentialsFunc func(ctx context.Context, username, password string) (string, bool, error)
	FindByUsernameFunc      func(ctx context.Context, username string) (*entity.User, error)
}

func (m *mockCredentialStore) SignUp(ctx context.Context, username, password string) error {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, username, password)
	}
	return nil
}

func (m *mockCredentialStore) ValidateCredentials(ctx context.Context, username, password string) (string, bool, error) {
	if m.ValidateCredentialsFunc != nil {
		return m.ValidateCredentialsFunc(ctx, username, password)
	}
	return "", false, nil
}

func (m *mockCredentialStore) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	return nil, nil
}

// mockTokenGenerator is a mock implementation of the TokenGenerator interface.
type mockTokenGenerator struct {
	// GenerateTokenFunc is called when the GenerateToken method is invoked.
	GenerateTokenFunc func(username string) (string, error)
}

// GenerateToken is the mock implementation of the GenerateToken method.
func (m *mockTokenGenerator) GenerateToken(username string) (string, error) {
	if m.GenerateTokenFunc != nil {
		return m.GenerateTokenFunc(username)
	}
	// Default: return a dummy token
	return "mock-jwt-token", nil
}

// mockLimiter is a mock implementation of the LoginLimiter interface.
type mockLimiter struct {
	allowed    bool
	allowErr   error
	resetCalls int
	keys       []string
}

func (m *mockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	m.keys = append(m.keys, key)
	return m.allowed, m.allowErr
}

func (m *mockLimiter) Reset(ctx context.Context, key string) error {
	m.resetCalls++
	m.keys = append(m.keys, key)
	return nil
}

func validStore() *mockCredentialStore {
	return &mockCredentialStore{
		ValidateCredentialsFunc: func(ctx context.Context, username, password string) (string, bool, error) {
			if username == "Ashwin" && password == "Ash@123" {
				return username, true, nil
			}
			return "", false, nil
		},
	}
}

func TestAuthUsecase_SignUp(t *testing.T) {
	t.Run("delegates to the store", func(t *testing.T) {
		called := false
		store := &mockCredentialStore{
			SignUpFunc: func(ctx context.Context, username, password string) error {
				called = true
				assert.Equal(t, "Ashwin", username)
				assert.Equal(t, "Ash@123", password)
				return nil
			},
		}

		uc := NewAuthUsecase(store, &mockTokenGenerator{}, nil)
		err := uc.SignUp(context.Background(), "Ashwin", "Ash@123")

		assert.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("store conflict is propagated", func(t *testing.T) {
		store := &mockCredentialStore{
			SignUpFunc: func(ctx context.Context, username, password string) error {
				return ErrUsernameExists
			},
		}

		uc := NewAuthUsecase(store, &mockTokenGenerator{}, nil)
		err := uc.SignUp(context.Background(), "Ashwin", "Ash@123")

		assert.ErrorIs(t, err, ErrUsernameExists)
	})
}

func TestAuthUsecase_SignIn(t *testing.T) {
	t.Run("successful sign-in", func(t *testing.T) {
		gen := &mockTokenGenerator{
			GenerateTokenFunc: func(username string) (string, error) {
				if username != "Ashwin" {
					t.Errorf("unexpected username: %s", username)
				}
				return "mock-jwt-token", nil
			},
		}

		uc := NewAuthUsecase(validStore(), gen, nil)
		token, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "")

		require.NoError(t, err)
		assert.Equal(t, "mock-jwt-token", token)
	})

	t.Run("unknown user", func(t *testing.T) {
		uc := NewAuthUsecase(validStore(), &mockTokenGenerator{}, nil)
		_, err := uc.SignIn(context.Background(), "ghost", "Ash@123", "")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.EqualError(t, err, "invalid credentials")
	})

	t.Run("incorrect password", func(t *testing.T) {
		uc := NewAuthUsecase(validStore(), &mockTokenGenerator{}, nil)
		_, err := uc.SignIn(context.Background(), "Ashwin", "wrong-password", "")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("store failure is propagated", func(t *testing.T) {
		store := &mockCredentialStore{
			ValidateCredentialsFunc: func(ctx context.Context, username, password string) (string, bool, error) {
				return "", false, ErrInternal
			},
		}

		uc := NewAuthUsecase(store, &mockTokenGenerator{}, nil)
		_, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "")

		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("token generation failure", func(t *testing.T) {
		gen := &mockTokenGenerator{
			GenerateTokenFunc: func(username string) (string, error) {
				return "", errors.New("failed to sign token")
			},
		}

		uc := NewAuthUsecase(validStore(), gen, nil)
		_, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "")

		assert.EqualError(t, err, "failed to generate token: failed to sign token")
	})

	t.Run("limiter rejects before credentials are checked", func(t *testing.T) {
		store := &mockCredentialStore{
			ValidateCredentialsFunc: func(ctx context.Context, username, password string) (string, bool, error) {
				t.Error("credentials must not be checked when throttled")
				return "", false, nil
			},
		}

		uc := NewAuthUsecase(store, &mockTokenGenerator{}, &mockLimiter{allowed: false})
		_, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "")

		assert.ErrorIs(t, err, ErrTooManyAttempts)
	})

	t.Run("limiter error does not block sign-in", func(t *testing.T) {
		limiter := &mockLimiter{allowErr: errors.New("redis down")}

		uc := NewAuthUsecase(validStore(), &mockTokenGenerator{}, limiter)
		token, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("successful sign-in resets the limiter", func(t *testing.T) {
		limiter := &mockLimiter{allowed: true}

		uc := NewAuthUsecase(validStore(), &mockTokenGenerator{}, limiter)
		_, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "")

		require.NoError(t, err)
		assert.Equal(t, 1, limiter.resetCalls)
	})

	t.Run("failed sign-in keeps the counter", func(t *testing.T) {
		limiter := &mockLimiter{allowed: true}

		uc := NewAuthUsecase(validStore(), &mockTokenGenerator{}, limiter)
		_, err := uc.SignIn(context.Background(), "Ashwin", "nope", "")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Zero(t, limiter.resetCalls)
	})

	t.Run("attempts are counted per username and client", func(t *testing.T) {
		limiter := &mockLimiter{allowed: true}

		uc := NewAuthUsecase(validStore(), &mockTokenGenerator{}, limiter)
		_, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "203.0.113.7")

		require.NoError(t, err)
		assert.Equal(t, []string{"Ashwin|203.0.113.7", "Ashwin|203.0.113.7"}, limiter.keys)
	})

	t.Run("other clients are not throttled by one client's failures", func(t *testing.T) {
		failures := map[string]int{}
		limiter := &countingLimiter{limit: 2, counts: failures}
		uc := NewAuthUsecase(validStore(), &mockTokenGenerator{}, limiter)

		for i := 0; i < 3; i++ {
			_, _ = uc.SignIn(context.Background(), "Ashwin", "nope", "198.51.100.9")
		}
		_, err := uc.SignIn(context.Background(), "Ashwin", "nope", "198.51.100.9")
		assert.ErrorIs(t, err, ErrTooManyAttempts)

		token, err := uc.SignIn(context.Background(), "Ashwin", "Ash@123", "203.0.113.7")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}

// countingLimiter is an in-memory fixed budget per key.
type countingLimiter struct {
	limit  int
	counts map[string]int
}

func (l *countingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.counts[key]++
	return l.counts[key] <= l.limit, nil
}

func (l *countingLimiter) Reset(ctx context.Context, key string) error {
	delete(l.counts, key)
	return nil
}

func TestAuthUsecase_ResolveUser(t *testing.T) {
	user := &entity.User{ID: 7, Username: "Ashwin"}

	tests := []struct {
		name     string
		find     func(ctx context.Context, username string) (*entity.User, error)
		wantUser *entity.User
		wantErr  error
	}{
		{
			name: "existing user",
			find: func(ctx context.Context, username string) (*entity.User, error) {
				return user, nil
			},
			wantUser: user,
		},
		{
			name: "user no longer exists",
			find: func(ctx context.Context, username string) (*entity.User, error) {
				return nil, nil
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "lookup failure",
			find: func(ctx context.Context, username string) (*entity.User, error) {
				return nil, errors.New("database connection failed")
			},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewAuthUsecase(&mockCredentialStore{FindByUsernameFunc: tt.find}, &mockTokenGenerator{}, nil)

			got, err := uc.ResolveUser(context.Background(), "Ashwin")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}
