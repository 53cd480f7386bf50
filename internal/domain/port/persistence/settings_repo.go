package persistence

import (
	"context"

	"github.com/adsmarket/ledger-engine/internal/domain/entity"
)

// SettingsRepository reads and writes the singleton settings row
type SettingsRepository interface {
	// Get returns the settings row
	//
	// Possible errors:
	// - ErrSettingsNotFound: If the row was never seeded
	// - ErrUnavailable: If the database is unreachable
	Get(ctx context.Context) (*entity.Settings, error)

	// Update persists new settings values (admin tooling only)
	Update(ctx context.Context, settings *entity.Settings) error
}
