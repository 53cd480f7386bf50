package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/adsmarket/ledger-engine/internal/domain/error"
	coreport "github.com/adsmarket/ledger-engine/internal/domain/port/core"
)

// UserRole distinguishes regular users from the platform system actor
type UserRole string

// User roles
const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User carries the single spendable balance of an account. The balance
// is only ever changed through the repository's atomic adjustment; the
// entity exposes read helpers.
type User struct {
	ID           uint64
	Balance      decimal.Decimal
	ReferredByID *uint64
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a new user with the given initial balance
func NewUser(id uint64, initialBalance decimal.Decimal, timeProvider coreport.TimeProvider) (*User, error) {
	if id == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if initialBalance.IsNegative() {
		return nil, errs.ErrInvalidAmount
	}

	now := timeProvider.Now()
	return &User{
		ID:        id,
		Balance:   RoundMoney(initialBalance),
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanDeduct checks if the user has enough balance for a deduction.
// Advisory only: the authoritative check happens in the conditional
// balance update.
func (u *User) CanDeduct(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}

// HasReferrer reports whether commission attribution applies
func (u *User) HasReferrer() bool {
	return u.ReferredByID != nil && *u.ReferredByID != 0
}
