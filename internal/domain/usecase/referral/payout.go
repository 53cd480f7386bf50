package referral

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

func ledgerReferralCriteria(userID uint64) persistence.LedgerCriteria {
	return persistence.LedgerCriteria{
		UserID: userID,
		Type:   entity.TypeReferral,
		Status: entity.StatusCompleted,
	}
}

// RequestPayout records a payout request against referral earnings
// headroom: the sum of completed referral entries minus payouts that
// are pending or completed. The headroom is recomputed from source
// records inside the unit of work on every call, so a pending payout
// and a new request can never double-count.
func (s *Service) RequestPayout(
	ctx context.Context,
	userID uint64,
	amount decimal.Decimal,
	method entity.PaymentMethod,
	accountDetails string,
) (*entity.Payout, error) {
	payout, err := entity.NewPayout(userID, amount, method, accountDetails, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		available, err := s.availableHeadroom(txCtx, userID)
		if err != nil {
			return err
		}
		if amount.GreaterThan(available) {
			return errs.NewInsufficientBalanceError(userID, amount, available)
		}

		if err := s.uow.Payouts(txCtx).Create(txCtx, payout); err != nil {
			return err
		}
		return s.emitPayoutEvent(txCtx, payout)
	})
	if err != nil {
		s.logger.Warn("Payout request rejected", map[string]any{
			"user_id": userID,
			"amount":  entity.FormatMoney(amount),
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Payout requested", map[string]any{
		"payout_id": payout.ID,
		"user_id":   userID,
		"amount":    entity.FormatMoney(amount),
		"method":    string(method),
	})
	return payout, nil
}

// ResolvePayout drives a pending payout to completed or cancelled
// (admin reconciliation). A cancelled payout releases its headroom by
// no longer being counted; no live balance changes either way, the
// commission was credited when it was earned.
func (s *Service) ResolvePayout(ctx context.Context, id uint64, approve bool) (*entity.Payout, error) {
	target := entity.PayoutCancelled
	if approve {
		target = entity.PayoutCompleted
	}

	var payout *entity.Payout

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		payoutRepo := s.uow.Payouts(txCtx)

		var err error
		payout, err = payoutRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if payout.IsTerminal() {
			return errs.NewInvalidTransitionError("payout", string(payout.Status), string(target))
		}

		if err := payoutRepo.UpdateStatus(txCtx, id, entity.PayoutPending, target); err != nil {
			return err
		}

		payout.Status = target
		payout.UpdatedAt = s.timeProvider.Now()
		return s.emitPayoutEvent(txCtx, payout)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Payout resolved", map[string]any{
		"payout_id": payout.ID,
		"user_id":   payout.UserID,
		"status":    string(payout.Status),
	})
	return payout, nil
}

// ListPayouts returns a user's payout requests, newest first
func (s *Service) ListPayouts(ctx context.Context, userID uint64) ([]*entity.Payout, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.Payouts(ctx).ListByUser(ctx, userID)
}

func (s *Service) availableHeadroom(txCtx context.Context, userID uint64) (decimal.Decimal, error) {
	earned, err := s.uow.Ledger(txCtx).SumAmounts(txCtx, ledgerReferralCriteria(userID))
	if err != nil {
		return decimal.Zero, err
	}
	held, err := s.uow.Payouts(txCtx).SumAmountsByStatuses(txCtx, userID,
		[]entity.PayoutStatus{entity.PayoutPending, entity.PayoutCompleted})
	if err != nil {
		return decimal.Zero, err
	}
	return earned.Sub(held), nil
}

func (s *Service) emitPayoutEvent(txCtx context.Context, payout *entity.Payout) error {
	event := entity.NewEvent(entity.TopicPayoutStatusChanged, payout.UserID, map[string]any{
		"payout_id": payout.ID,
		"status":    string(payout.Status),
		"amount":    entity.FormatMoney(payout.Amount),
	}, s.timeProvider)
	return s.uow.Events(txCtx).Create(txCtx, event)
}
