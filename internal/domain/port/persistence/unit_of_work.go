package persistence

import (
	"context"
)

// UnitOfWork coordinates repository operations inside one database
// transaction so that a ledger write and its balance adjustment commit
// or roll back together.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context.
	// A no-op when the transaction already committed.
	Rollback(ctx context.Context) error

	// Users returns a user repository bound to the current transaction
	Users(ctx context.Context) UserRepository

	// Ledger returns a ledger repository bound to the current transaction
	Ledger(ctx context.Context) LedgerRepository

	// Payouts returns a payout repository bound to the current transaction
	Payouts(ctx context.Context) PayoutRepository

	// Campaigns returns a campaign repository bound to the current transaction
	Campaigns(ctx context.Context) CampaignRepository

	// Settings returns a settings repository bound to the current transaction
	Settings(ctx context.Context) SettingsRepository

	// Events returns an event repository bound to the current transaction
	Events(ctx context.Context) EventRepository
}
