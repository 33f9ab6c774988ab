package repository

import (
	"context"
	"fmt"

	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/mapper"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/stream"
)

// SettingsRepository keeps the user settings in the local preferences and mirrors them to the backend.
type SettingsRepository struct {
	session
}

func NewSettingsRepository(db database.DB, store remote.Store) *SettingsRepository {
	return &SettingsRepository{session: session{db: db, remote: store}}
}

// Settings streams the locally stored settings.
func (r *SettingsRepository) Settings(ctx context.Context) <-chan domain.UserSettings {
	return stream.Query(ctx, r.db, r.load, database.TablePreferences)
}

func (r *SettingsRepository) load(ctx context.Context) (domain.UserSettings, error) {
	prefs, err := r.db.GetPreferences(ctx)
	if err != nil {
		return domain.UserSettings{}, err
	}
	return mapper.SettingsFromPreferences(prefs), nil
}

func (r *SettingsRepository) GetSettings(ctx context.Context) (domain.UserSettings, error) {
	s, err := r.load(ctx)
	if err != nil {
		return domain.UserSettings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// UpdateSettings stores s locally and, when signed in, upserts the remote settings row.
// Settings that fail domain.UserSettings.Validate are rejected before anything is written.
func (r *SettingsRepository) UpdateSettings(ctx context.Context, s domain.UserSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.db.SetPreferences(ctx, mapper.SettingsToPreferences(s)); err != nil {
		return fmt.Errorf("failed to store settings: %w", err)
	}

	uid := r.userID()
	if uid == "" {
		return nil
	}
	bestEffort(ctx, "upsert settings", func(ctx context.Context) error {
		existing, err := r.remote.FetchSettings(ctx, uid)
		if err != nil {
			return err
		}
		if existing != nil {
			return r.remote.UpdateSettings(ctx, uid, mapper.SettingsToUpdate(s))
		}
		return r.remote.InsertSettings(ctx, mapper.SettingsToInsert(uid, s))
	})
	return nil
}

// SyncSettings overwrites the local settings with the remote row, if there is one.
func (r *SettingsRepository) SyncSettings(ctx context.Context) error {
	uid := r.userID()
	if uid == "" {
		return ErrNotLoggedIn
	}
	dto, err := r.remote.FetchSettings(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to fetch settings: %w", err)
	}
	if dto == nil {
		return nil
	}
	if err := r.db.SetPreferences(ctx, mapper.SettingsToPreferences(mapper.SettingsFromDTO(*dto))); err != nil {
		return fmt.Errorf("failed to store settings: %w", err)
	}
	return nil
}
