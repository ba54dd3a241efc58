package store

import (
	"context"
	"errors"

	"github.com/mithrel/foliate/pkg/api"
)

// LoadAppState reads the singleton recovery pointer. Absent or
// unreadable state yields the zero value; the pointer is a hint, not
// authoritative.
func LoadAppState(ctx context.Context, kv KV) (api.AppState, error) {
	raw, err := kv.Get(ctx, keyAppState)
	if errors.Is(err, ErrNotFound) {
		return api.AppState{}, nil
	}
	if err != nil {
		return api.AppState{}, err
	}
	var st api.AppState
	if err := unmarshalRecord(raw, &st); err != nil {
		return api.AppState{}, nil
	}
	return st, nil
}

func SaveAppState(ctx context.Context, kv KV, st api.AppState) error {
	raw, err := marshalRecord(st)
	if err != nil {
		return err
	}
	return kv.Put(ctx, keyAppState, raw)
}
