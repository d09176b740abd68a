// Package cache provides in-process implementations of infra.Cache.
package cache

import (
	"sync"
	"time"

	"github.com/SscSPs/library_management_app/internal/core/ports/infra"
)

// DefaultMaxSize is used when NewMemory is given a non-positive size.
const DefaultMaxSize = 1000

type entry struct {
	value     any
	expiresAt time.Time
}

// Memory is a mutex-guarded TTL map. When a Set would grow it past its
// maximum size, every entry is dropped first.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	maxSize int
	now     func() time.Time
}

var _ infra.Cache = (*Memory)(nil)

// Option configures a Memory cache.
type Option func(*Memory)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory creates an empty cache holding at most maxSize entries.
func NewMemory(maxSize int, opts ...Option) *Memory {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	m := &Memory{
		entries: make(map[string]entry),
		maxSize: maxSize,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(key string) (any, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(key string, value any, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxSize {
		m.entries = make(map[string]entry)
	}
	m.entries[key] = entry{value: value, expiresAt: m.now().Add(ttl)}
}

func (m *Memory) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Nop never stores anything.
type Nop struct{}

var _ infra.Cache = Nop{}

func (Nop) Get(string) (any, bool)         { return nil, false }
func (Nop) Set(string, any, time.Duration) {}
func (Nop) Invalidate(string)              {}
