package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthRepository defines the data operations the auth service depends on.
type AuthRepository interface {
	// CreateAccount inserts the account and its hospital listing in one
	// transaction. It returns ErrDuplicateEmail when the email is taken.
	CreateAccount(ctx context.Context, params CreateAccountParams) (Account, uuid.UUID, error)
	GetAccountByEmail(ctx context.Context, email string) (Account, error)
	GetAccountByID(ctx context.Context, accountID uuid.UUID) (Account, error)

	// Refresh token operations
	CreateRefreshToken(ctx context.Context, accountID uuid.UUID, tokenHash string, expiresAt time.Time) error
	// ConsumeRefreshToken revokes an unrevoked token and returns its owner
	// and expiry in one statement. It returns ErrNotFound when the token is
	// unknown or already revoked.
	ConsumeRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
}

// Ensure Repository implements AuthRepository
var _ AuthRepository = (*Repository)(nil)
