package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// LedgerCriteria filters ledger queries. Zero values mean "no filter".
// Results come back in reverse-chronological order unless Ascending is set.
type LedgerCriteria struct {
	UserID      uint64
	Kind        entity.EntryKind
	Type        entity.EntryType
	Status      entity.EntryStatus
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Ascending   bool
	Limit       int
	Offset      int
}

// LedgerStatistics is an aggregate row for admin reporting
type LedgerStatistics struct {
	Type   entity.EntryType
	Status entity.EntryStatus
	Count  int64
	Total  decimal.Decimal
}

// LedgerRepository is the append-mostly store of ledger entries.
// Entries are never deleted; only the lifecycle manager changes status.
type LedgerRepository interface {
	// Create saves a new entry and assigns its identifier
	//
	// Possible errors:
	// - ErrDuplicateEntry: If an entry with the same external ID exists
	// - ErrUnavailable: If the database is unreachable
	Create(ctx context.Context, entry *entity.LedgerEntry) error

	// UpdateStatus moves an entry from one status to another as a
	// conditional update; returns ErrInvalidTransition when the entry
	// was not in the expected status anymore (lost race).
	//
	// Possible errors:
	// - ErrEntryNotFound, ErrInvalidTransition, ErrUnavailable
	UpdateStatus(ctx context.Context, id uint64, from, to entity.EntryStatus) error

	// GetByID retrieves an entry by its identifier
	GetByID(ctx context.Context, id uint64) (*entity.LedgerEntry, error)

	// GetByExternalID retrieves an entry by its reconciliation key
	GetByExternalID(ctx context.Context, externalID string) (*entity.LedgerEntry, error)

	// ExistsByExternalID checks an idempotency key without loading the row
	ExistsByExternalID(ctx context.Context, externalID string) (bool, error)

	// Find returns entries matching the criteria
	Find(ctx context.Context, criteria LedgerCriteria) ([]*entity.LedgerEntry, error)

	// SumAmounts totals the amounts of matching entries. Used for the
	// derived referral earnings figure; never cached.
	SumAmounts(ctx context.Context, criteria LedgerCriteria) (decimal.Decimal, error)

	// Statistics returns counts and sums grouped by type and status
	Statistics(ctx context.Context, from, to *time.Time) ([]LedgerStatistics, error)
}
