// Package persist defines the key-value persistence collaborator the store
// writes through. Two logical keys are in use, one per record set.
package persist

import (
	"context"
	"sync"
)

// Logical keys for the persisted record sets.
const (
	KeyCustomers    = "customers"
	KeyTransactions = "transactions"
)

// KV loads and saves opaque JSON documents by key. Load returns nil for a
// key that was never saved; corrupt data is the caller's concern and decodes
// as an empty set.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Memory is an in-process KV used for tests and the default dev mode.
// Safe for concurrent use.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory constructs an empty in-process KV.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Load implements KV.
func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

// Save implements KV.
func (m *Memory) Save(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := make([]byte, len(data))
	copy(b, data)
	m.data[key] = b
	return nil
}
