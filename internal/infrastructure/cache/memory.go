package cache

import (
	"sync"
	"time"

	"tigawane/internal/ports"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is one in-memory cache namespace with per-entry TTL and a bounded
// entry count. When full, the oldest-inserted key is evicted; overwriting a
// key moves it to the back of the eviction order.
type Memory struct {
	name       string
	maxEntries int
	defaultTTL time.Duration

	mu      sync.Mutex
	entries map[string]entry
	order   []string

	now func() time.Time
}

var _ ports.Cache = (*Memory)(nil)

func NewMemory(name string, maxEntries int, defaultTTL time.Duration) *Memory {
	if maxEntries < 1 {
		maxEntries = 1
	}
	if defaultTTL <= 0 {
		defaultTTL = time.Minute
	}
	return &Memory{
		name:       name,
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		entries:    make(map[string]entry),
		now:        time.Now,
	}
}

// Name identifies the namespace in logs.
func (m *Memory) Name() string { return m.name }

func (m *Memory) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		m.removeLocked(key)
		return nil, false
	}

	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, true
}

func (m *Memory) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		m.dropFromOrderLocked(key)
	} else if len(m.entries) >= m.maxEntries {
		m.removeLocked(m.order[0])
	}

	m.entries[key] = entry{value: stored, expiresAt: m.now().Add(ttl)}
	m.order = append(m.order, key)
}

func (m *Memory) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeLocked(key)
}

func (m *Memory) Flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry)
	m.order = m.order[:0]
}

// Sweep removes every expired entry. Called periodically by the Registry;
// reads also drop expired entries lazily, so Sweep only bounds memory held
// by keys nobody asks for again.
func (m *Memory) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			m.removeLocked(key)
		}
	}
}

// Len returns the number of resident entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) removeLocked(key string) {
	if _, ok := m.entries[key]; !ok {
		return
	}
	delete(m.entries, key)
	m.dropFromOrderLocked(key)
}

func (m *Memory) dropFromOrderLocked(key string) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}
