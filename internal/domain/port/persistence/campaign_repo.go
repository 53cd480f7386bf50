package persistence

import (
	"context"
	"time"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// ClickResult reports the outcome of an atomic click increment
type ClickResult struct {
	CurrentClicks int64
	Completed     bool
}

// CampaignRepository stores campaigns and provides the atomic
// mutations for status and the click counter.
type CampaignRepository interface {
	// Create saves a new campaign and assigns its identifier
	Create(ctx context.Context, campaign *entity.Campaign) error

	// GetByID retrieves a campaign by its identifier
	GetByID(ctx context.Context, id uint64) (*entity.Campaign, error)

	// ListByAdvertiser returns an advertiser's campaigns, newest first
	ListByAdvertiser(ctx context.Context, advertiserID uint64) ([]*entity.Campaign, error)

	// TransitionStatus moves a campaign between statuses as one
	// conditional update guarded by the expected current status;
	// returns ErrInvalidTransition on a lost race. startDate and
	// budgetCharged are written together with an activation.
	TransitionStatus(ctx context.Context, id uint64, from, to entity.CampaignStatus, startDate *time.Time, budgetCharged bool) error

	// RecordClick increments the click counter in a single conditional
	// statement that also completes the campaign when the increment
	// reaches the cap. No window exists where clicks can exceed the cap.
	//
	// Possible errors:
	// - ErrCampaignNotFound, ErrCampaignNotActive, ErrClickLimitReached, ErrUnavailable
	RecordClick(ctx context.Context, id uint64, now time.Time) (*ClickResult, error)
}
