package persistence

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// PayoutRepository stores affiliate payout requests
type PayoutRepository interface {
	// Create saves a new payout and assigns its identifier
	Create(ctx context.Context, payout *entity.Payout) error

	// UpdateStatus moves a payout between statuses conditionally;
	// returns ErrInvalidTransition when the payout left the expected
	// status in the meantime.
	UpdateStatus(ctx context.Context, id uint64, from, to entity.PayoutStatus) error

	// GetByID retrieves a payout by its identifier
	GetByID(ctx context.Context, id uint64) (*entity.Payout, error)

	// ListByUser returns a user's payouts, newest first
	ListByUser(ctx context.Context, userID uint64) ([]*entity.Payout, error)

	// SumAmountsByStatuses totals payout amounts for a user across the
	// given statuses. Feeds the referral headroom computation.
	SumAmountsByStatuses(ctx context.Context, userID uint64, statuses []entity.PayoutStatus) (decimal.Decimal, error)
}
