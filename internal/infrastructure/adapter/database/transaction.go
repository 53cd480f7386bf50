package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
	"github.com/adsmarket/ledger-engine/internal/infrastructure/adapter/repository"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db              *gorm.DB
	logger          coreport.Logger
	timeProvider    coreport.TimeProvider
	errorClassifier *repository.ErrorClassifier
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:              db,
		logger:          logger,
		timeProvider:    timeProvider,
		errorClassifier: repository.NewErrorClassifier(),
	}
}

// Begin starts a new database transaction
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	u.logger.Debug("Beginning database transaction with SERIALIZABLE isolation", nil)

	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// Ledger writes and their balance adjustments must observe a
	// consistent snapshot, so every transaction runs SERIALIZABLE.
	if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL SERIALIZABLE").Error; err != nil {
		tx.Rollback()
		u.logger.Error("Failed to set transaction isolation level", map[string]any{"error": err.Error()})
		return ctx, fmt.Errorf("failed to set transaction isolation level: %w", err)
	}

	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Committing database transaction", nil)
	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})

		// SERIALIZABLE transactions lose serialization races at commit
		// time; those are safe for the caller to retry, unlike a lost
		// connection.
		if u.errorClassifier.IsSerializationError(err) {
			return fmt.Errorf("%w: %s", errs.ErrTxConflict, err.Error())
		}
		if u.errorClassifier.IsConnectionError(err) {
			return fmt.Errorf("%w: %s", errs.ErrUnavailable, err.Error())
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback rolls back the current transaction
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err := tx.Rollback().Error

	// Rollback after a successful commit is expected on the deferred
	// cleanup path and must not surface as an error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// Users returns a user repository bound to the current transaction
func (u *UnitOfWork) Users(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Ledger returns a ledger repository bound to the current transaction
func (u *UnitOfWork) Ledger(ctx context.Context) persistence.LedgerRepository {
	return repository.NewLedgerRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Payouts returns a payout repository bound to the current transaction
func (u *UnitOfWork) Payouts(ctx context.Context) persistence.PayoutRepository {
	return repository.NewPayoutRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Campaigns returns a campaign repository bound to the current transaction
func (u *UnitOfWork) Campaigns(ctx context.Context) persistence.CampaignRepository {
	return repository.NewCampaignRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Settings returns a settings repository bound to the current transaction
func (u *UnitOfWork) Settings(ctx context.Context) persistence.SettingsRepository {
	return repository.NewSettingsRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// Events returns an event repository bound to the current transaction
func (u *UnitOfWork) Events(ctx context.Context) persistence.EventRepository {
	return repository.NewEventRepository(u.getDbFromContext(ctx), u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
