package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
)

// DealParams describes a product-deal settlement between two users
type DealParams struct {
	BuyerID     uint64
	SellerID    uint64
	Amount      decimal.Decimal
	ExternalID  string
	Description string
}

// DealResult reports the ledger entries a settlement produced
type DealResult struct {
	BuyerEntry  *entity.LedgerEntry
	SellerEntry *entity.LedgerEntry
	FeeEntry    *entity.LedgerEntry
	PlatformFee decimal.Decimal
}

// SettleDeal moves a deal amount from buyer to seller in one unit of
// work: the buyer is debited the full amount, the platform fee is
// credited to the system actor, and the seller receives the remainder.
// The external ID keys idempotency: a retried settlement returns
// ErrAlreadyProcessed with no balance effect.
func (s *Service) SettleDeal(ctx context.Context, params DealParams) (*DealResult, error) {
	if params.BuyerID == 0 || params.SellerID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if params.BuyerID == params.SellerID {
		return nil, errs.ErrForbidden
	}
	if !params.Amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if params.ExternalID == "" {
		return nil, errs.ErrInvalidAmount
	}

	result := &DealResult{}

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		ledgerRepo := s.uow.Ledger(txCtx)
		userRepo := s.uow.Users(txCtx)

		exists, err := ledgerRepo.ExistsByExternalID(txCtx, params.ExternalID)
		if err != nil {
			return err
		}
		if exists {
			return errs.ErrAlreadyProcessed
		}

		settings, err := s.uow.Settings(txCtx).Get(txCtx)
		if err != nil {
			return err
		}
		fee := settings.PlatformFeeFor(params.Amount)
		net := params.Amount.Sub(fee)
		result.PlatformFee = fee

		// Buyer pays the full amount.
		if _, err := userRepo.AdjustBalance(txCtx, params.BuyerID, params.Amount.Neg()); err != nil {
			return err
		}
		buyerEntry, err := entity.NewLedgerEntry(
			params.BuyerID, entity.KindTransaction, entity.TypePayment,
			params.Amount.Neg(), params.Description, s.timeProvider,
		)
		if err != nil {
			return err
		}
		buyerEntry.Status = entity.StatusCompleted
		buyerEntry.ExternalID = params.ExternalID
		buyerEntry.Metadata = map[string]any{"seller_id": params.SellerID}
		if err := ledgerRepo.Create(txCtx, buyerEntry); err != nil {
			return err
		}
		result.BuyerEntry = buyerEntry

		// Seller receives the amount minus the platform fee.
		if _, err := userRepo.AdjustBalance(txCtx, params.SellerID, net); err != nil {
			return err
		}
		sellerEntry, err := entity.NewLedgerEntry(
			params.SellerID, entity.KindTransaction, entity.TypePayment,
			net, params.Description, s.timeProvider,
		)
		if err != nil {
			return err
		}
		sellerEntry.Status = entity.StatusCompleted
		sellerEntry.Metadata = map[string]any{
			"buyer_id":         params.BuyerID,
			"deal_external_id": params.ExternalID,
			"platform_fee":     entity.FormatMoney(fee),
		}
		if err := ledgerRepo.Create(txCtx, sellerEntry); err != nil {
			return err
		}
		result.SellerEntry = sellerEntry

		if fee.IsPositive() {
			if _, err := userRepo.AdjustBalance(txCtx, s.systemActor.UserID, fee); err != nil {
				return err
			}
			feeEntry, err := entity.NewLedgerEntry(
				s.systemActor.UserID, entity.KindTransaction, entity.TypeCommission,
				fee, params.Description, s.timeProvider,
			)
			if err != nil {
				return err
			}
			feeEntry.Status = entity.StatusCompleted
			feeEntry.Metadata = map[string]any{"deal_external_id": params.ExternalID}
			if err := ledgerRepo.Create(txCtx, feeEntry); err != nil {
				return err
			}
			result.FeeEntry = feeEntry
		}

		return nil
	})
	if err != nil {
		s.logger.Warn("Deal settlement rejected", map[string]any{
			"buyer_id":    params.BuyerID,
			"seller_id":   params.SellerID,
			"amount":      entity.FormatMoney(params.Amount),
			"external_id": params.ExternalID,
			"error":       err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Deal settled", map[string]any{
		"buyer_id":     params.BuyerID,
		"seller_id":    params.SellerID,
		"amount":       entity.FormatMoney(params.Amount),
		"platform_fee": entity.FormatMoney(result.PlatformFee),
		"external_id":  params.ExternalID,
	})
	return result, nil
}
