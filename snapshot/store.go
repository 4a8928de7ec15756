// Package snapshot persists encoded entity stores under string keys.
package snapshot

import (
	"context"
	"slices"
	"sync"

	"github.com/rotisserie/eris"
)

// Store holds encoded snapshots. Load and Delete return ErrSnapshotNotFound for a key that was never saved.
type Store interface {
	Save(ctx context.Context, key string, bz []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

var _ Store = &MemoryStore{}

// MemoryStore keeps snapshots in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: map[string][]byte{}}
}

func (m *MemoryStore) Save(_ context.Context, key string, bz []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = slices.Clone(bz)
	return nil
}

func (m *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bz, ok := m.snapshots[key]
	if !ok {
		return nil, eris.Wrapf(ErrSnapshotNotFound, "key %q", key)
	}
	return slices.Clone(bz), nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.snapshots[key]; !ok {
		return eris.Wrapf(ErrSnapshotNotFound, "key %q", key)
	}
	delete(m.snapshots, key)
	return nil
}
