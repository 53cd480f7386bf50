package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
)

// RequestWithdrawal validates the amount against configured bounds,
// debits the balance optimistically and appends a pending withdrawal
// entry, all in one unit of work. Funds leave the spendable balance
// the instant the request is accepted; a later Confirm or Cancel
// resolves the entry (Cancel refunds).
func (s *Service) RequestWithdrawal(
	ctx context.Context,
	userID uint64,
	amount decimal.Decimal,
	method entity.PaymentMethod,
	details string,
) (*entity.LedgerEntry, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	var entry *entity.LedgerEntry

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		settings, err := s.uow.Settings(txCtx).Get(txCtx)
		if err != nil {
			return err
		}
		if !settings.WithdrawalInBounds(amount) {
			return errs.NewAmountOutOfBoundsError(
				amount, settings.MinWithdrawalAmount, settings.MaxWithdrawalAmount,
			)
		}

		// Optimistic reservation: the conditional update is the
		// balance check, no separate read-then-write step.
		if _, err := s.uow.Users(txCtx).AdjustBalance(txCtx, userID, amount.Neg()); err != nil {
			return err
		}

		entry, err = entity.NewLedgerEntry(
			userID,
			entity.KindTransaction,
			entity.TypeWithdrawal,
			amount.Neg(),
			details,
			s.timeProvider,
		)
		if err != nil {
			return err
		}
		entry.Method = method
		entry.FundsReserved = true

		if err := s.uow.Ledger(txCtx).Create(txCtx, entry); err != nil {
			return err
		}
		return s.emitStatusEvent(txCtx, entry)
	})
	if err != nil {
		s.logger.Warn("Withdrawal request rejected", map[string]any{
			"user_id": userID,
			"amount":  entity.FormatMoney(amount),
			"error":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Withdrawal requested", map[string]any{
		"entry_id": entry.ID,
		"user_id":  userID,
		"amount":   entity.FormatMoney(amount),
		"method":   string(method),
	})
	return entry, nil
}
