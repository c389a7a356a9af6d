package library

import (
	"context"
	"fmt"

	"github.com/mrlokans/readvoyage/internal/entities"
	"github.com/mrlokans/readvoyage/internal/events"
)

func (r *Repository) GetSettings(ctx context.Context) (entities.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.Settings{}, err
	}
	return r.settings, nil
}

// UpdateSettings merges patch over the current settings and publishes the full record.
func (r *Repository) UpdateSettings(ctx context.Context, patch entities.SettingsPatch) (entities.Settings, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()
	settings, err := r.updateSettings(ctx, patch)
	if err != nil {
		return entities.Settings{}, err
	}
	r.bus.Publish(events.SettingsUpdated, events.SettingsChange{Settings: settings})
	return settings, nil
}

func (r *Repository) updateSettings(ctx context.Context, patch entities.SettingsPatch) (entities.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return entities.Settings{}, err
	}

	merged := patch.Apply(r.settings)
	if reason := merged.Validate(); reason != "" {
		return entities.Settings{}, fmt.Errorf("%w: %s", ErrInvalidSettings, reason)
	}
	if err := r.persistSettings(ctx, merged); err != nil {
		return entities.Settings{}, err
	}
	r.settings = merged
	return merged, nil
}
