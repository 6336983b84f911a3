package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value  string
	expiry time.Time
}

// Memory keeps entries in process. Expired entries are dropped lazily on Get.
type Memory struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false, nil
	}

	if !m.now().Before(e.expiry) {
		m.mu.Lock()
		// Re-check, another writer may have refreshed the entry.
		if cur, ok := m.data[key]; ok && !m.now().Before(cur.expiry) {
			delete(m.data, key)
		}
		m.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores value for ttl. A non-positive ttl removes the key.
func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ttl <= 0 {
		delete(m.data, key)
		return nil
	}
	m.data[key] = entry{value: value, expiry: m.now().Add(ttl)}
	return nil
}
