package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKV(t *testing.T) {
	kv, ctx := setupTestKV(t)

	t.Run("get absent", func(t *testing.T) {
		_, err := kv.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "k", []byte("v1")))
		require.NoError(t, kv.Put(ctx, "k", []byte("v2")))
		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v2"), got)
	})

	t.Run("delete is a no-op on absent keys", func(t *testing.T) {
		require.NoError(t, kv.Delete(ctx, "k"))
		require.NoError(t, kv.Delete(ctx, "k"))
		_, err := kv.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("keys by prefix", func(t *testing.T) {
		require.NoError(t, kv.Put(ctx, "doc:b", []byte("1")))
		require.NoError(t, kv.Put(ctx, "doc:a", []byte("1")))
		require.NoError(t, kv.Put(ctx, "settings:a", []byte("1")))
		keys, err := kv.Keys(ctx, "doc:")
		require.NoError(t, err)
		assert.Equal(t, []string{"doc:a", "doc:b"}, keys)
	})
}

func TestMemKVQuota(t *testing.T) {
	ctx := context.Background()
	kv := NewMemWithQuota(16)

	require.NoError(t, kv.Put(ctx, "a", []byte("12345678")))
	err := kv.Put(ctx, "b", []byte("123456789"))
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// Replacing an existing value only counts the new size.
	require.NoError(t, kv.Put(ctx, "a", []byte("1234567890123456")))
}

func TestRecordEnvelope(t *testing.T) {
	type payload struct {
		X int `json:"x"`
	}

	t.Run("round trip", func(t *testing.T) {
		raw, err := marshalRecord(payload{X: 7})
		require.NoError(t, err)
		var out payload
		require.NoError(t, unmarshalRecord(raw, &out))
		assert.Equal(t, 7, out.X)
	})

	t.Run("invalid json is corrupt", func(t *testing.T) {
		var out payload
		assert.ErrorIs(t, unmarshalRecord([]byte("{"), &out), ErrCorruptRecord)
	})

	t.Run("unknown version is corrupt", func(t *testing.T) {
		raw, err := json.Marshal(envelope{V: 99, Data: []byte(`{"x":1}`)})
		require.NoError(t, err)
		var out payload
		assert.ErrorIs(t, unmarshalRecord(raw, &out), ErrCorruptRecord)
	})
}
