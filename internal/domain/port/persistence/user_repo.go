package persistence

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrUnavailable: If the database is unreachable
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// Create creates a new user
	//
	// Possible errors:
	// - ErrUnavailable: If the database is unreachable
	Create(ctx context.Context, user *entity.User) error

	// AdjustBalance applies a signed delta to the user balance as one
	// conditional update: the row changes only when the resulting
	// balance stays non-negative. This is the sole code path allowed
	// to mutate the balance column.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - ErrInsufficientBalance: If the debit would drive the balance below zero
	// - ErrUnavailable: If the database is unreachable
	AdjustBalance(ctx context.Context, userID uint64, delta decimal.Decimal) (decimal.Decimal, error)
}
