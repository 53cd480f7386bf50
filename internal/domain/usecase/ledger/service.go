package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
	"github.com/adsmarket/ledger-engine/internal/domain/port/persistence"
)

// SystemActor is the platform identity credited with commission fees.
// Resolved once at process start and injected, never discovered lazily
// mid-transaction.
type SystemActor struct {
	UserID uint64
}

// Service drives ledger entries through their status state machine and
// is the only caller of the balance adjustment on terminal transitions.
type Service struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	systemActor  SystemActor
}

// NewService creates a ledger lifecycle service
func NewService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	systemActor SystemActor,
) *Service {
	return &Service{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
		systemActor:  systemActor,
	}
}

// withUnitOfWork runs fn inside one database transaction, rolling back
// on error and committing otherwise.
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

// CreateParams describes a new ledger entry
type CreateParams struct {
	UserID      uint64
	Kind        entity.EntryKind
	Type        entity.EntryType
	Amount      decimal.Decimal
	Method      entity.PaymentMethod
	Description string
	ExternalID  string
	Metadata    map[string]any

	// Settled marks entry types that settle synchronously (e.g. a
	// deposit from a pre-confirmed source): the entry is written
	// completed and the balance delta applies immediately.
	Settled bool
}

// Create writes a new entry, pending by default or completed when the
// caller marks it settled. A duplicate external ID is rejected before
// any write.
func (s *Service) Create(ctx context.Context, params CreateParams) (*entity.LedgerEntry, error) {
	entry, err := entity.NewLedgerEntry(
		params.UserID, params.Kind, params.Type, params.Amount, params.Description, s.timeProvider,
	)
	if err != nil {
		return nil, err
	}
	entry.Method = params.Method
	entry.ExternalID = params.ExternalID
	if params.Metadata != nil {
		entry.Metadata = params.Metadata
	}

	err = s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		if entry.ExternalID != "" {
			exists, err := s.uow.Ledger(txCtx).ExistsByExternalID(txCtx, entry.ExternalID)
			if err != nil {
				return err
			}
			if exists {
				return errs.ErrDuplicateEntry
			}
		}

		if params.Settled {
			entry.Status = entity.StatusCompleted
			delta := entry.Amount
			if _, err := s.uow.Users(txCtx).AdjustBalance(txCtx, entry.UserID, delta); err != nil {
				return err
			}
		}

		return s.uow.Ledger(txCtx).Create(txCtx, entry)
	})
	if err != nil {
		s.logger.Warn("Ledger entry creation rejected", map[string]any{
			"user_id":     params.UserID,
			"type":        string(params.Type),
			"external_id": params.ExternalID,
			"error":       err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Ledger entry created", map[string]any{
		"entry_id": entry.ID,
		"user_id":  entry.UserID,
		"type":     string(entry.Type),
		"status":   string(entry.Status),
		"amount":   entity.FormatMoney(entry.Amount),
	})
	return entry, nil
}

// Confirm moves a pending entry to completed and applies its balance
// delta exactly once. Re-confirming a completed entry returns
// ErrAlreadyProcessed without any mutation.
func (s *Service) Confirm(ctx context.Context, id uint64) (*entity.LedgerEntry, error) {
	var entry *entity.LedgerEntry

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		ledgerRepo := s.uow.Ledger(txCtx)

		var err error
		entry, err = ledgerRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if entry.IsTerminal() {
			return terminalError(entry, entity.StatusCompleted)
		}

		// Conditional update: exactly one concurrent confirm wins.
		if err := ledgerRepo.UpdateStatus(txCtx, id, entity.StatusPending, entity.StatusCompleted); err != nil {
			if errs.IsInvalidTransitionError(err) {
				return s.classifyLostRace(txCtx, id, entity.StatusCompleted)
			}
			return err
		}

		delta := entry.BalanceEffectOnConfirm()
		if !delta.IsZero() {
			if _, err := s.uow.Users(txCtx).AdjustBalance(txCtx, entry.UserID, delta); err != nil {
				return err
			}
		}

		entry.Status = entity.StatusCompleted
		entry.UpdatedAt = s.timeProvider.Now()
		return s.emitStatusEvent(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger entry confirmed", map[string]any{
		"entry_id": entry.ID,
		"user_id":  entry.UserID,
		"type":     string(entry.Type),
		"amount":   entity.FormatMoney(entry.Amount),
	})
	return entry, nil
}

// Cancel moves a pending entry to cancelled. Entries whose funds were
// pre-debited receive a compensating credit; payment-kind entries move
// no money.
func (s *Service) Cancel(ctx context.Context, id uint64) (*entity.LedgerEntry, error) {
	return s.resolve(ctx, id, entity.StatusCancelled)
}

// Fail moves a pending entry to failed, driven by external
// reconciliation signals. Pre-debited funds are returned the same way
// as on cancel.
func (s *Service) Fail(ctx context.Context, id uint64) (*entity.LedgerEntry, error) {
	return s.resolve(ctx, id, entity.StatusFailed)
}

func (s *Service) resolve(ctx context.Context, id uint64, target entity.EntryStatus) (*entity.LedgerEntry, error) {
	var entry *entity.LedgerEntry

	err := s.withUnitOfWork(ctx, func(txCtx context.Context) error {
		ledgerRepo := s.uow.Ledger(txCtx)

		var err error
		entry, err = ledgerRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if entry.IsTerminal() {
			return terminalError(entry, target)
		}

		if err := ledgerRepo.UpdateStatus(txCtx, id, entity.StatusPending, target); err != nil {
			if errs.IsInvalidTransitionError(err) {
				return s.classifyLostRace(txCtx, id, target)
			}
			return err
		}

		refund := entry.BalanceEffectOnResolve()
		if !refund.IsZero() {
			if _, err := s.uow.Users(txCtx).AdjustBalance(txCtx, entry.UserID, refund); err != nil {
				return err
			}
		}

		entry.Status = target
		entry.UpdatedAt = s.timeProvider.Now()
		return s.emitStatusEvent(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Ledger entry resolved", map[string]any{
		"entry_id": entry.ID,
		"user_id":  entry.UserID,
		"type":     string(entry.Type),
		"status":   string(entry.Status),
	})
	return entry, nil
}

// classifyLostRace re-reads an entry after a failed conditional status
// update to report the accurate terminal error.
func (s *Service) classifyLostRace(txCtx context.Context, id uint64, target entity.EntryStatus) error {
	current, err := s.uow.Ledger(txCtx).GetByID(txCtx, id)
	if err != nil {
		return err
	}
	return terminalError(current, target)
}

func terminalError(entry *entity.LedgerEntry, target entity.EntryStatus) error {
	if entry.Status == entity.StatusCompleted && target == entity.StatusCompleted {
		return errs.ErrAlreadyProcessed
	}
	return errs.NewInvalidTransitionError("ledger entry", string(entry.Status), string(target))
}

// emitStatusEvent appends an outbox event for withdrawal status changes
// so the notification collaborator can observe them.
func (s *Service) emitStatusEvent(txCtx context.Context, entry *entity.LedgerEntry) error {
	if entry.Type != entity.TypeWithdrawal {
		return nil
	}
	event := entity.NewEvent(entity.TopicWithdrawalStatusChanged, entry.UserID, map[string]any{
		"entry_id": entry.ID,
		"status":   string(entry.Status),
		"amount":   entity.FormatMoney(entry.Amount.Abs()),
	}, s.timeProvider)
	return s.uow.Events(txCtx).Create(txCtx, event)
}

// Get retrieves a single entry
func (s *Service) Get(ctx context.Context, id uint64) (*entity.LedgerEntry, error) {
	return s.uow.Ledger(ctx).GetByID(ctx, id)
}

// List returns entries matching the criteria, newest first by default
func (s *Service) List(ctx context.Context, criteria persistence.LedgerCriteria) ([]*entity.LedgerEntry, error) {
	return s.uow.Ledger(ctx).Find(ctx, criteria)
}

// Statistics returns aggregate counts and sums grouped by type and
// status for admin tooling.
func (s *Service) Statistics(ctx context.Context, from, to *time.Time) ([]persistence.LedgerStatistics, error) {
	return s.uow.Ledger(ctx).Statistics(ctx, from, to)
}
