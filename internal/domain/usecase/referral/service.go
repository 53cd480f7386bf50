package referral

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// Service computes and credits referral commissions and manages the
// affiliate payout pool derived from them.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a referral commission service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (s *Service) withUnitOfWork(ctx context.Context, fn func(txCtx context.Context) error) error {
	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(txCtx); err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Rollback failed", map[string]any{"error": rbErr.Error()})
		}
		return err
	}
	return s.uow.Commit(txCtx)
}

// CommissionResult reports the outcome of a commission run
type CommissionResult struct {
	Credited   bool
	ReferrerID uint64
	Commission decimal.Decimal
	Entry      *entity.LedgerEntry
}

// ProcessCommission credits the referrer of referredUserID with the
// configured fraction of triggeringAmount, appending a completed
// referral entry in the same unit of work. The external ID keys
// idempotency: a second call carrying an already-seen ID is rejected
// with ErrDuplicateCommission and moves no money. A user without a
// referrer yields Credited=false without error.
func (s *Service) ProcessCommission(
	ctx context.Context,
	referredUserID uint64,
	triggeringAmount decimal.Decimal,
	description string,
	externalID string,
) (*CommissionResult, error) {
	if referredUserID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !triggeringAmount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if externalID == "" {
		return nil, errs.ErrInvalidAmount
	}

	result := &CommissionResult{}

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		referred, err := s.uow.Users(txCtx).GetByID(txCtx, referredUserID)
		if err != nil {
			return err
		}
		if !referred.HasReferrer() {
			return nil
		}
		referrerID := *referred.ReferredByID

		exists, err := s.uow.Ledger(txCtx).ExistsByExternalID(txCtx, externalID)
		if err != nil {
			return err
		}
		if exists {
			return errs.NewDuplicateCommissionError(externalID, referredUserID)
		}

		settings, err := s.uow.Settings(txCtx).Get(txCtx)
		if err != nil {
			return err
		}
		commission := settings.ReferralCommissionFor(triggeringAmount)
		if !commission.IsPositive() {
			return nil
		}

		if _, err := s.uow.Users(txCtx).AdjustBalance(txCtx, referrerID, commission); err != nil {
			return err
		}

		entry, err := entity.NewLedgerEntry(
			referrerID, entity.KindTransaction, entity.TypeReferral,
			commission, description, s.timeProvider,
		)
		if err != nil {
			return err
		}
		entry.Status = entity.StatusCompleted
		entry.ExternalID = externalID
		entry.Metadata = map[string]any{
			"referred_user_id":  referredUserID,
			"triggering_amount": entity.FormatMoney(triggeringAmount),
			"commission_rate":   settings.ReferralCommission.String(),
		}
		if err := s.uow.Ledger(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		event := entity.NewEvent(entity.TopicReferralCommissionCompleted, referrerID, map[string]any{
			"entry_id":         entry.ID,
			"referred_user_id": referredUserID,
			"commission":       entity.FormatMoney(commission),
		}, s.timeProvider)
		if err := s.uow.Events(txCtx).Create(txCtx, event); err != nil {
			return err
		}

		result.Credited = true
		result.ReferrerID = referrerID
		result.Commission = commission
		result.Entry = entry
		return nil
	})
	if err != nil {
		s.logger.Warn("Referral commission rejected", map[string]any{
			"referred_user_id": referredUserID,
			"external_id":      externalID,
			"error":            err.Error(),
		})
		return nil, err
	}

	if result.Credited {
		s.logger.Info("Referral commission credited", map[string]any{
			"referrer_id":      result.ReferrerID,
			"referred_user_id": referredUserID,
			"commission":       entity.FormatMoney(result.Commission),
			"external_id":      externalID,
		})
	}
	return result, nil
}

// Earnings summarizes a user's referral income, derived from ledger
// and payout records on every call.
type Earnings struct {
	Total     decimal.Decimal
	PaidOut   decimal.Decimal
	Reserved  decimal.Decimal
	Available decimal.Decimal
}

// Earnings computes the referral earnings figures for a user
func (s *Service) Earnings(ctx context.Context, userID uint64) (*Earnings, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	total, err := s.uow.Ledger(ctx).SumAmounts(ctx, persistence.LedgerCriteria{
		UserID: userID,
		Type:   entity.TypeReferral,
		Status: entity.StatusCompleted,
	})
	if err != nil {
		return nil, err
	}

	paid, err := s.uow.Payouts(ctx).SumAmountsByStatuses(ctx, userID,
		[]entity.PayoutStatus{entity.PayoutCompleted})
	if err != nil {
		return nil, err
	}
	reserved, err := s.uow.Payouts(ctx).SumAmountsByStatuses(ctx, userID,
		[]entity.PayoutStatus{entity.PayoutPending})
	if err != nil {
		return nil, err
	}

	return &Earnings{
		Total:     total,
		PaidOut:   paid,
		Reserved:  reserved,
		Available: total.Sub(paid).Sub(reserved),
	}, nil
}
