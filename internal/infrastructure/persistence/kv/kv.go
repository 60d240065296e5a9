// Package kv defines the key-value contract shared by Ember storage backends
// and provides an in-memory implementation.
package kv

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrKeyNotFound is returned by Get when the key has never been written.
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("kv: store is closed")
)

// ══════════════════════════════════════════════════════════════════════════════
// CONTRACT
// ══════════════════════════════════════════════════════════════════════════════

// Store is a durable string-keyed blob store.
type Store interface {
	// Get returns the value stored under key or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// SetMany writes all entries atomically: either every entry is stored
	// or none is.
	SetMany(ctx context.Context, entries map[string][]byte) error

	// Close releases the backend.
	Close() error
}

// SortedKeys returns the keys of entries in ascending order. Backends write
// batches in this order so that lock acquisition is deterministic.
func SortedKeys(entries map[string][]byte) []string {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ══════════════════════════════════════════════════════════════════════════════
// MEMORY STORE
// ══════════════════════════════════════════════════════════════════════════════

// Memory is an in-process Store. Failures can be injected for tests.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool

	readErr  error
	writeErr error
	writes   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get implements Store.
func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.readErr != nil {
		return nil, m.readErr
	}

	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

// SetMany implements Store.
func (m *Memory) SetMany(ctx context.Context, entries map[string][]byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.writeErr != nil {
		return m.writeErr
	}

	for k, v := range entries {
		m.data[k] = append([]byte(nil), v...)
	}
	m.writes++
	return nil
}

// Close implements Store.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// FailReads makes every following Get return err. Nil clears the failure.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FailWrites makes every following SetMany return err. Nil clears the failure.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Put stores a raw value outside of a batch.
func (m *Memory) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
}

// Writes returns the number of successful SetMany calls.
func (m *Memory) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
