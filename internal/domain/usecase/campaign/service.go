package campaign

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// Service reserves advertiser balance on campaign start and tracks
// click-driven budget exhaustion.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewService creates a campaign budget controller
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

// Create registers a draft campaign for an advertiser. No balance is
// touched until the campaign starts.
func (s *Service) Create(
	ctx context.Context,
	advertiserID uint64,
	budget decimal.Decimal,
	pricePerClick decimal.Decimal,
	maxClicks *int64,
) (*entity.Campaign, error) {
	campaign, err := entity.NewCampaign(advertiserID, budget, pricePerClick, maxClicks, s.timeProvider)
	if err != nil {
		return nil, err
	}

	// Reject unknown advertisers before writing anything.
	if _, err := s.uow.Users(ctx).GetByID(ctx, advertiserID); err != nil {
		return nil, err
	}
	if err := s.uow.Campaigns(ctx).Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.logger.Info("Campaign created", map[string]any{
		"campaign_id":   campaign.ID,
		"advertiser_id": advertiserID,
		"budget":        entity.FormatMoney(budget),
	})
	return campaign, nil
}

// Start activates a draft or paused campaign. A first start reserves
// the full budget from the advertiser balance and appends a completed
// campaign payment entry in the same unit of work; a restart from
// paused is a pure status transition, the budget was already reserved.
func (s *Service) Start(ctx context.Context, campaignID, advertiserID uint64) (*entity.Campaign, error) {
	var campaign *entity.Campaign

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		campaignRepo := s.uow.Campaigns(txCtx)

		var err error
		campaign, err = campaignRepo.GetByID(txCtx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.IsOwnedBy(advertiserID) {
			return errs.ErrForbidden
		}
		if !campaign.CanStart() {
			return errs.NewInvalidTransitionError("campaign", string(campaign.Status), string(entity.CampaignActive))
		}

		if !campaign.BudgetCharged {
			if _, err := s.uow.Users(txCtx).AdjustBalance(txCtx, advertiserID, campaign.Budget.Neg()); err != nil {
				return err
			}
			entry, err := entity.NewLedgerEntry(
				advertiserID, entity.KindTransaction, entity.TypeCampaignPayment,
				campaign.Budget.Neg(), "campaign budget reservation", s.timeProvider,
			)
			if err != nil {
				return err
			}
			entry.Status = entity.StatusCompleted
			entry.Metadata = map[string]any{"campaign_id": campaignID}
			if err := s.uow.Ledger(txCtx).Create(txCtx, entry); err != nil {
				return err
			}
		}

		now := s.timeProvider.Now()
		if err := campaignRepo.TransitionStatus(
			txCtx, campaignID, campaign.Status, entity.CampaignActive, &now, true,
		); err != nil {
			return err
		}

		campaign.Status = entity.CampaignActive
		campaign.BudgetCharged = true
		campaign.StartDate = &now
		campaign.UpdatedAt = now
		return nil
	})
	if err != nil {
		s.logger.Warn("Campaign start rejected", map[string]any{
			"campaign_id":   campaignID,
			"advertiser_id": advertiserID,
			"error":         err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Campaign started", map[string]any{
		"campaign_id":   campaignID,
		"advertiser_id": advertiserID,
		"budget":        entity.FormatMoney(campaign.Budget),
	})
	return campaign, nil
}

// Pause halts further click acceptance. The reserved budget stays
// reserved; pausing never moves money.
func (s *Service) Pause(ctx context.Context, campaignID, advertiserID uint64) (*entity.Campaign, error) {
	campaignRepo := s.uow.Campaigns(ctx)

	campaign, err := campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !campaign.IsOwnedBy(advertiserID) {
		return nil, errs.ErrForbidden
	}
	if !campaign.CanPause() {
		return nil, errs.NewInvalidTransitionError("campaign", string(campaign.Status), string(entity.CampaignPaused))
	}

	if err := campaignRepo.TransitionStatus(
		ctx, campaignID, entity.CampaignActive, entity.CampaignPaused, nil, campaign.BudgetCharged,
	); err != nil {
		return nil, err
	}

	campaign.Status = entity.CampaignPaused
	campaign.UpdatedAt = s.timeProvider.Now()
	s.logger.Info("Campaign paused", map[string]any{"campaign_id": campaignID})
	return campaign, nil
}

// Cancel ends a campaign and refunds the unspent part of a charged
// budget (budget minus clicks already delivered, floored at zero) with
// a compensating campaign payment entry.
func (s *Service) Cancel(ctx context.Context, campaignID, advertiserID uint64) (*entity.Campaign, error) {
	var campaign *entity.Campaign

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		campaignRepo := s.uow.Campaigns(txCtx)

		var err error
		campaign, err = campaignRepo.GetByID(txCtx, campaignID)
		if err != nil {
			return err
		}
		if !campaign.IsOwnedBy(advertiserID) {
			return errs.ErrForbidden
		}
		if !campaign.CanCancel() {
			return errs.NewInvalidTransitionError("campaign", string(campaign.Status), string(entity.CampaignCancelled))
		}

		if err := campaignRepo.TransitionStatus(
			txCtx, campaignID, campaign.Status, entity.CampaignCancelled, nil, campaign.BudgetCharged,
		); err != nil {
			return err
		}

		if campaign.BudgetCharged {
			refund := campaign.UnspentBudget()
			if refund.IsPositive() {
				if _, err := s.uow.Users(txCtx).AdjustBalance(txCtx, advertiserID, refund); err != nil {
					return err
				}
				entry, err := entity.NewLedgerEntry(
					advertiserID, entity.KindTransaction, entity.TypeCampaignPayment,
					refund, "campaign budget refund", s.timeProvider,
				)
				if err != nil {
					return err
				}
				entry.Status = entity.StatusCompleted
				entry.Metadata = map[string]any{"campaign_id": campaignID}
				if err := s.uow.Ledger(txCtx).Create(txCtx, entry); err != nil {
					return err
				}
			}
		}

		campaign.Status = entity.CampaignCancelled
		campaign.UpdatedAt = s.timeProvider.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Campaign cancelled", map[string]any{"campaign_id": campaignID})
	return campaign, nil
}

// RecordClick accepts one click for an active campaign. The increment
// and the completion check run as a single conditional statement in
// the repository, so concurrent clicks can never push the counter past
// the cap.
func (s *Service) RecordClick(ctx context.Context, campaignID uint64) (*persistence.ClickResult, error) {
	result, err := s.uow.Campaigns(ctx).RecordClick(ctx, campaignID, s.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if result.Completed {
		s.logger.Info("Campaign completed by click cap", map[string]any{
			"campaign_id": campaignID,
			"clicks":      result.CurrentClicks,
		})
	}
	return result, nil
}

// Get retrieves a campaign
func (s *Service) Get(ctx context.Context, campaignID uint64) (*entity.Campaign, error) {
	return s.uow.Campaigns(ctx).GetByID(ctx, campaignID)
}

// ListByAdvertiser returns an advertiser's campaigns, newest first
func (s *Service) ListByAdvertiser(ctx context.Context, advertiserID uint64) ([]*entity.Campaign, error) {
	if advertiserID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return s.uow.Campaigns(ctx).ListByAdvertiser(ctx, advertiserID)
}
