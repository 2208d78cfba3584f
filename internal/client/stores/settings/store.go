// Package settings holds the single preferences record of the local profile.
package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/client/snapshot"
	"github.com/dmitrijs2005/voicememo/internal/client/stores"
	"github.com/dmitrijs2005/voicememo/internal/logging"
)

type Store struct {
	mu        sync.RWMutex
	current   models.AppSettings
	persister snapshot.Persister
	logger    logging.Logger
}

// New loads the stored preferences, falling back to the defaults.
func New(ctx context.Context, p snapshot.Persister, l logging.Logger) (*Store, error) {
	s := &Store{
		persister: p,
		logger:    l.With("module", "settings"),
		current:   models.DefaultSettings(),
	}

	if _, err := p.Load(ctx, stores.SettingsKey, &s.current); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return s, nil
}

func (s *Store) Get() models.AppSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Update applies the fields set in patch and returns the result. Values are
// taken as given.
func (s *Store) Update(patch models.SettingsPatch) models.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := &s.current
	set(&c.Theme, patch.Theme)
	set(&c.RecordingQuality, patch.RecordingQuality)
	set(&c.AutoSync, patch.AutoSync)
	set(&c.SyncOnWifiOnly, patch.SyncOnWifiOnly)
	set(&c.SyncWhileCharging, patch.SyncWhileCharging)
	set(&c.BackgroundRecording, patch.BackgroundRecording)
	set(&c.AutoTranscribe, patch.AutoTranscribe)
	set(&c.AutoDeleteAfterSync, patch.AutoDeleteAfterSync)
	set(&c.SecurityEnabled, patch.SecurityEnabled)
	set(&c.BiometricEnabled, patch.BiometricEnabled)
	set(&c.EncryptByDefault, patch.EncryptByDefault)
	if patch.AutoDeleteAfterDays.Set {
		c.AutoDeleteAfterDays = nil
		if v := patch.AutoDeleteAfterDays.Value; v != nil {
			c.AutoDeleteAfterDays = models.Ptr(*v)
		}
	}

	s.persister.Save(stores.SettingsKey, s.current)
	return s.current.Clone()
}

// Reset restores the defaults.
func (s *Store) Reset() models.AppSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = models.DefaultSettings()
	s.persister.Save(stores.SettingsKey, s.current)
	s.logger.Debug(context.Background(), "settings reset")
	return s.current.Clone()
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
