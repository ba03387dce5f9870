package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"task_backend/internal/feature/auth/domain/entity"
)

// CredentialStore is the subset of UserStore the auth usecase depends on.
type CredentialStore interface {
	SignUp(ctx context.Context, username, password string) error
	ValidateCredentials(ctx context.Context, username, password string) (string, bool, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}

// TokenGenerator defines the interface for access token generation.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/jwt).
type TokenGenerator interface {
	// GenerateToken creates a signed token carrying the given username.
	GenerateToken(username string) (string, error)
}

// LoginLimiter throttles repeated sign-in attempts per username.
type LoginLimiter interface {
	// Allow records an attempt for key and reports whether it is within budget.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset clears the attempt counter for key.
	Reset(ctx context.Context, key string) error
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	store   CredentialStore
	tokens  TokenGenerator
	limiter LoginLimiter
}

// NewAuthUsecase creates a new instance of authUsecase.
// limiter may be nil, in which case sign-in attempts are not limited.
func NewAuthUsecase(store CredentialStore, tokens TokenGenerator, limiter LoginLimiter) *authUsecase {
	return &authUsecase{
		store:   store,
		tokens:  tokens,
		limiter: limiter,
	}
}

// SignUp registers a new user. Input shape is validated at the HTTP boundary.
func (u *authUsecase) SignUp(ctx context.Context, username, password string) error {
	return u.store.SignUp(ctx, username, password)
}

// attemptKey scopes the sign-in counter to a username and client address,
// so failures from one client do not lock the account for everyone.
func attemptKey(username, clientIP string) string {
	if clientIP == "" {
		return username
	}
	return username + "|" + clientIP
}

// SignIn checks the credentials and returns a signed access token.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (u *authUsecase) SignIn(ctx context.Context, username, password, clientIP string) (string, error) {
	key := attemptKey(username, clientIP)
	if u.limiter != nil {
		allowed, err := u.limiter.Allow(ctx, key)
		if err != nil {
			// a broken limiter must not lock everyone out
			slog.Warn("login limiter unavailable", "error", err, "username", username)
		} else if !allowed {
			return "", ErrTooManyAttempts
		}
	}

	name, ok, err := u.store.ValidateCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	if u.limiter != nil {
		if err := u.limiter.Reset(ctx, key); err != nil {
			slog.Warn("failed to reset login attempts", "error", err, "username", username)
		}
	}

	token, err := u.tokens.GenerateToken(name)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ResolveUser maps a token's username claim to the stored user.
// It returns ErrUserNotFound when the user no longer exists.
func (u *authUsecase) ResolveUser(ctx context.Context, username string) (*entity.User, error) {
	user, err := u.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
