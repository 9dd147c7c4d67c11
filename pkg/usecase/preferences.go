package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/misemon/pkg/domain/interfaces"
	"github.com/secmon-lab/misemon/pkg/domain/model"
)

// Preferences stores the dashboard settings under a single key
type Preferences struct {
	kv interfaces.KVStore
}

// NewPreferences creates the preferences use case
func NewPreferences(kv interfaces.KVStore) *Preferences {
	return &Preferences{kv: kv}
}

// Get returns the stored preferences merged over the defaults. Missing or
// unreadable data yields the defaults.
func (p *Preferences) Get(ctx context.Context) model.Preferences {
	data, err := p.kv.Get(ctx, model.PreferencesKey)
	if err != nil {
		if !errors.Is(err, model.ErrKeyNotFound) {
			ctxlog.From(ctx).Warn("failed to load preferences", "error", err)
		}
		return model.DefaultPreferences()
	}

	prefs, err := model.ParsePreferences(data)
	if err != nil {
		ctxlog.From(ctx).Warn("failed to parse preferences", "error", err)
		return model.DefaultPreferences()
	}
	return prefs
}

// Save validates and stores prefs
func (p *Preferences) Save(ctx context.Context, prefs model.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return goerr.Wrap(err, "invalid preferences")
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return goerr.Wrap(err, "failed to encode preferences")
	}
	if err := p.kv.Set(ctx, model.PreferencesKey, data); err != nil {
		return goerr.Wrap(err, "failed to save preferences")
	}
	return nil
}

// Update changes one setting and stores the result
func (p *Preferences) Update(ctx context.Context, key, value string) (model.Preferences, error) {
	prefs := p.Get(ctx)
	if err := prefs.Set(key, value); err != nil {
		return prefs, goerr.Wrap(err, "failed to update preference", goerr.V("key", key))
	}
	if err := p.Save(ctx, prefs); err != nil {
		return prefs, err
	}
	return prefs, nil
}

// Merge overlays a partial JSON object on the current settings and stores
// the result
func (p *Preferences) Merge(ctx context.Context, patch []byte) (model.Preferences, error) {
	prefs := p.Get(ctx)
	if err := json.Unmarshal(patch, &prefs); err != nil {
		return p.Get(ctx), goerr.Wrap(err, "failed to decode preferences patch")
	}
	if err := p.Save(ctx, prefs); err != nil {
		return p.Get(ctx), err
	}
	return prefs, nil
}
