package store

import (
	"context"
	"errors"
	"time"

	"github.com/mithrel/foliate/pkg/api"
)

// Settings holds per-document display preferences with a lifecycle
// independent from Documents. Records are created lazily on first
// customization; an absent record means defaults.
type Settings struct {
	kv       KV
	now      func() time.Time
	defaults api.Settings
}

func NewSettings(kv KV) *Settings {
	return NewSettingsWithDefaults(kv, api.DefaultSettings())
}

// NewSettingsWithDefaults lets configuration override the built-in
// defaults returned for uncustomized documents.
func NewSettingsWithDefaults(kv KV, defaults api.Settings) *Settings {
	return &Settings{kv: kv, now: time.Now, defaults: defaults.Clamped()}
}

// Save replaces the full record, clamping out-of-range values to the
// nearest bound and stamping LastModified.
func (s *Settings) Save(ctx context.Context, id string, rec api.Settings) (api.Settings, error) {
	rec = rec.Clamped()
	rec.LastModified = s.now().UTC()
	raw, err := marshalRecord(rec)
	if err != nil {
		return api.Settings{}, err
	}
	if err := s.kv.Put(ctx, settingsKey(id), raw); err != nil {
		return api.Settings{}, err
	}
	return rec, nil
}

// Load never reports absence: uncustomized documents get the defaults,
// and unreadable records are discarded in favor of the defaults.
func (s *Settings) Load(ctx context.Context, id string) (api.Settings, error) {
	raw, err := s.kv.Get(ctx, settingsKey(id))
	if errors.Is(err, ErrNotFound) {
		return s.defaults, nil
	}
	if err != nil {
		return s.defaults, err
	}
	var rec api.Settings
	if err := unmarshalRecord(raw, &rec); err != nil {
		return s.defaults, nil
	}
	return rec.Clamped(), nil
}

// Remove is idempotent; it runs as part of document deletion so no
// orphaned settings outlive their document.
func (s *Settings) Remove(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, settingsKey(id))
}
