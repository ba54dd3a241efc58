package store

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// memKV is an in-memory KV for tests and ephemeral sessions. A non-zero
// quota bounds total stored bytes so quota handling is exercisable
// without filling a disk.
type memKV struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int
}

func NewMem() KV { return &memKV{data: make(map[string][]byte)} }

// NewMemWithQuota returns a mem KV that rejects writes once total size
// would exceed quota bytes.
func NewMemWithQuota(quota int) KV {
	return &memKV{data: make(map[string][]byte), quota: quota}
}

func (m *memKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *memKV) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.quota > 0 {
		total := len(value)
		for k, v := range m.data {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memKV) Close() error { return nil }
