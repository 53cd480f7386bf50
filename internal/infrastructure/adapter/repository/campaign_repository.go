package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/model"
)

// CampaignRepository implements persistence.CampaignRepository using GORM
type CampaignRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewCampaignRepository creates a new CampaignRepository instance
func NewCampaignRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *CampaignRepository {
	return &CampaignRepository{
		db:           db,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

func (r *CampaignRepository) modelToEntity(m *model.Campaign) *entity.Campaign {
	return &entity.Campaign{
		ID:            m.ID,
		AdvertiserID:  m.AdvertiserID,
		Budget:        m.Budget,
		PricePerClick: m.PricePerClick,
		MaxClicks:     m.MaxClicks,
		CurrentClicks: m.CurrentClicks,
		Status:        entity.CampaignStatus(m.Status),
		BudgetCharged: m.BudgetCharged,
		StartDate:     m.StartDate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// Create saves a new campaign and backfills its generated identifier
func (r *CampaignRepository) Create(ctx context.Context, campaign *entity.Campaign) error {
	campaignModel := model.Campaign{
		AdvertiserID:  campaign.AdvertiserID,
		Budget:        campaign.Budget,
		PricePerClick: campaign.PricePerClick,
		MaxClicks:     campaign.MaxClicks,
		CurrentClicks: campaign.CurrentClicks,
		Status:        string(campaign.Status),
		BudgetCharged: campaign.BudgetCharged,
		StartDate:     campaign.StartDate,
		CreatedAt:     campaign.CreatedAt,
		UpdatedAt:     campaign.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&campaignModel)
	if result.Error != nil {
		r.logger.Error("Failed to create campaign", map[string]any{
			"advertiser_id": campaign.AdvertiserID,
			"error":         result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	campaign.ID = campaignModel.ID
	return nil
}

// GetByID retrieves a campaign by its identifier
func (r *CampaignRepository) GetByID(ctx context.Context, id uint64) (*entity.Campaign, error) {
	var campaignModel model.Campaign
	result := r.db.WithContext(ctx).First(&campaignModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	return r.modelToEntity(&campaignModel), nil
}

// ListByAdvertiser returns an advertiser's campaigns, newest first
func (r *CampaignRepository) ListByAdvertiser(ctx context.Context, advertiserID uint64) ([]*entity.Campaign, error) {
	var models []model.Campaign
	result := r.db.WithContext(ctx).
		Where("advertiser_id = ?", advertiserID).
		Order("created_at DESC").
		Find(&models)

	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	campaigns := make([]*entity.Campaign, 0, len(models))
	for i := range models {
		campaigns = append(campaigns, r.modelToEntity(&models[i]))
	}
	return campaigns, nil
}

// TransitionStatus moves a campaign between statuses guarded by the
// expected current status; zero affected rows reports a lost race.
func (r *CampaignRepository) TransitionStatus(
	ctx context.Context,
	id uint64,
	from, to entity.CampaignStatus,
	startDate *time.Time,
	budgetCharged bool,
) error {
	updates := map[string]interface{}{
		"status":         string(to),
		"budget_charged": budgetCharged,
		"updated_at":     r.timeProvider.Now(),
	}
	if startDate != nil {
		updates["start_date"] = *startDate
	}

	result := r.db.WithContext(ctx).Model(&model.Campaign{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)

	if result.Error != nil {
		r.logger.Error("Failed to transition campaign status", map[string]any{
			"campaign_id": id,
			"error":       result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Campaign{}).
			Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
		}
		if count == 0 {
			return errs.ErrCampaignNotFound
		}
		return errs.NewInvalidTransitionError("campaign", string(from), string(to))
	}

	return nil
}

// RecordClick increments the click counter in a single conditional
// statement that completes the campaign in the same step when the
// increment reaches the cap. Under concurrent calls exactly max_clicks
// increments succeed and exactly one of them flips the status.
func (r *CampaignRepository) RecordClick(ctx context.Context, id uint64, now time.Time) (*persistence.ClickResult, error) {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE campaigns
		SET current_clicks = current_clicks + 1,
		    status = CASE
		        WHEN max_clicks IS NOT NULL AND current_clicks + 1 >= max_clicks THEN ?
		        ELSE status
		    END,
		    updated_at = ?
		WHERE id = ?
		  AND status = ?
		  AND (max_clicks IS NULL OR current_clicks < max_clicks)`,
		string(entity.CampaignCompleted), now, id, string(entity.CampaignActive))

	if result.Error != nil {
		r.logger.Error("Failed to record click", map[string]any{
			"campaign_id": id,
			"error":       result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrUnavailable, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		campaign, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, classifyClickRejection(campaign)
	}

	campaign, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &persistence.ClickResult{
		CurrentClicks: campaign.CurrentClicks,
		Completed:     campaign.Status == entity.CampaignCompleted,
	}, nil
}

// classifyClickRejection maps a rejected click increment to a domain
// error from the row's current state. A campaign that its cap completed
// fails both predicates; the cap takes precedence so the caller sees
// the limit, not a generic status rejection.
func classifyClickRejection(campaign *entity.Campaign) error {
	if campaign.MaxClicks != nil && campaign.CurrentClicks >= *campaign.MaxClicks {
		return errs.ErrClickLimitReached
	}
	return errs.ErrCampaignNotActive
}
