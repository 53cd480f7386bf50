package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
)

// EntryKind distinguishes the two historical money entities, kept as a
// field on a single ledger table instead of parallel tables.
type EntryKind string

// Entry kinds
const (
	KindTransaction EntryKind = "transaction"
	KindPayment     EntryKind = "payment"
)

// EntryType classifies what moved the money
type EntryType string

// Entry types
const (
	TypeDeposit         EntryType = "deposit"
	TypeWithdrawal      EntryType = "withdrawal"
	TypeCommission      EntryType = "commission"
	TypeReferral        EntryType = "referral"
	TypeCampaignPayment EntryType = "campaign_payment"
	TypePayment         EntryType = "payment"
)

// EntryStatus defines possible status values for a ledger entry
type EntryStatus string

// Entry statuses; completed, failed and cancelled are terminal
const (
	StatusPending   EntryStatus = "pending"
	StatusCompleted EntryStatus = "completed"
	StatusFailed    EntryStatus = "failed"
	StatusCancelled EntryStatus = "cancelled"
)

// PaymentMethod identifies the external rail for payment-kind entries
type PaymentMethod string

// Payment methods
const (
	MethodCard         PaymentMethod = "card"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCrypto       PaymentMethod = "crypto"
	MethodPayPal       PaymentMethod = "paypal"
	MethodYooMoney     PaymentMethod = "yoomoney"
)

// LedgerEntry is the single source of truth for historical money movement.
// Transaction-kind amounts are signed (credit positive, debit negative);
// payment-kind amounts are stored positive and credited on completion.
type LedgerEntry struct {
	ID          uint64
	UserID      uint64
	Kind        EntryKind
	Type        EntryType
	Amount      decimal.Decimal
	Status      EntryStatus
	Method      PaymentMethod
	Description string
	ExternalID  string
	Metadata    map[string]any

	// FundsReserved marks entries whose balance effect was applied at
	// creation (optimistic withdrawal debit). Confirm is then a pure
	// status change and cancel must compensate.
	FundsReserved bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLedgerEntry creates a pending entry with basic validation
func NewLedgerEntry(
	userID uint64,
	kind EntryKind,
	entryType EntryType,
	amount decimal.Decimal,
	description string,
	timeProvider coreport.TimeProvider,
) (*LedgerEntry, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if !IsValidKind(string(kind)) {
		return nil, errs.ErrInvalidEntryType
	}
	if !IsValidEntryType(string(entryType)) {
		return nil, errs.ErrInvalidEntryType
	}
	if kind == KindPayment && !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	if amount.IsZero() {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &LedgerEntry{
		UserID:      userID,
		Kind:        kind,
		Type:        entryType,
		Amount:      RoundMoney(amount),
		Status:      StatusPending,
		Description: description,
		Metadata:    map[string]any{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsTerminal reports whether no further status transition is legal
func (e *LedgerEntry) IsTerminal() bool {
	return e.Status == StatusCompleted || e.Status == StatusFailed || e.Status == StatusCancelled
}

// BalanceEffectOnConfirm returns the delta to apply when the entry
// moves pending -> completed. Zero when funds already left the balance
// at creation time.
func (e *LedgerEntry) BalanceEffectOnConfirm() decimal.Decimal {
	if e.FundsReserved {
		return decimal.Zero
	}
	return e.Amount
}

// BalanceEffectOnResolve returns the compensating delta for a cancel or
// fail out of pending. Only pre-debited entries move money back.
func (e *LedgerEntry) BalanceEffectOnResolve() decimal.Decimal {
	if e.FundsReserved {
		return e.Amount.Neg()
	}
	return decimal.Zero
}

// CanTransitionTo reports whether the status move is legal. The only
// legal moves are out of pending into a terminal status.
func (e *LedgerEntry) CanTransitionTo(target EntryStatus) bool {
	if e.Status != StatusPending {
		return false
	}
	return target == StatusCompleted || target == StatusFailed || target == StatusCancelled
}

// IsValidKind validates an entry kind value
func IsValidKind(kind string) bool {
	return kind == string(KindTransaction) || kind == string(KindPayment)
}

// IsValidEntryType validates an entry type value
func IsValidEntryType(t string) bool {
	switch EntryType(t) {
	case TypeDeposit, TypeWithdrawal, TypeCommission, TypeReferral, TypeCampaignPayment, TypePayment:
		return true
	}
	return false
}

// IsValidPaymentMethod validates a payment method value
func IsValidPaymentMethod(m string) bool {
	switch PaymentMethod(m) {
	case MethodCard, MethodBankTransfer, MethodCrypto, MethodPayPal, MethodYooMoney:
		return true
	}
	return false
}
