package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
)

// CampaignStatus defines the campaign state machine values
type CampaignStatus string

// Campaign statuses
const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignActive    CampaignStatus = "active"
	CampaignPaused    CampaignStatus = "paused"
	CampaignCompleted CampaignStatus = "completed"
	CampaignCancelled CampaignStatus = "cancelled"
)

// Campaign holds an advertiser's click campaign. The budget is reserved
// from the advertiser balance when the campaign first starts.
type Campaign struct {
	ID            uint64
	AdvertiserID  uint64
	Budget        decimal.Decimal
	PricePerClick decimal.Decimal
	MaxClicks     *int64
	CurrentClicks int64
	Status        CampaignStatus
	BudgetCharged bool
	StartDate     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCampaign creates a draft campaign with basic validation
func NewCampaign(
	advertiserID uint64,
	budget decimal.Decimal,
	pricePerClick decimal.Decimal,
	maxClicks *int64,
	timeProvider coreport.TimeProvider,
) (*Campaign, error) {
	if advertiserID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !budget.IsPositive() || !pricePerClick.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if maxClicks != nil && *maxClicks <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &Campaign{
		AdvertiserID:  advertiserID,
		Budget:        RoundMoney(budget),
		PricePerClick: RoundMoney(pricePerClick),
		MaxClicks:     maxClicks,
		Status:        CampaignDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsOwnedBy reports whether the given actor owns the campaign
func (c *Campaign) IsOwnedBy(advertiserID uint64) bool {
	return c.AdvertiserID == advertiserID
}

// CanStart reports whether a start transition is legal
func (c *Campaign) CanStart() bool {
	return c.Status == CampaignDraft || c.Status == CampaignPaused
}

// CanPause reports whether a pause transition is legal
func (c *Campaign) CanPause() bool {
	return c.Status == CampaignActive
}

// CanCancel reports whether a cancel transition is legal
func (c *Campaign) CanCancel() bool {
	switch c.Status {
	case CampaignDraft, CampaignActive, CampaignPaused:
		return true
	}
	return false
}

// ClicksRemaining returns how many clicks fit under the cap, or -1 when uncapped
func (c *Campaign) ClicksRemaining() int64 {
	if c.MaxClicks == nil {
		return -1
	}
	remaining := *c.MaxClicks - c.CurrentClicks
	if remaining < 0 {
		return 0
	}
	return remaining
}

// UnspentBudget returns the refundable part of the budget at cancel
// time: budget minus clicks already paid for, floored at zero.
func (c *Campaign) UnspentBudget() decimal.Decimal {
	spent := c.PricePerClick.Mul(decimal.NewFromInt(c.CurrentClicks))
	unspent := c.Budget.Sub(spent)
	if unspent.IsNegative() {
		return decimal.Zero
	}
	return unspent
}
