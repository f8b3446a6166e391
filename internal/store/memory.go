package store

import "sync"

// MemoryStore is a process-local Store used for ephemeral profiles and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	w    watchers
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(key string, value []byte, origin string) error {
	m.mu.Lock()
	m.data[key] = append([]byte(nil), value...)
	m.mu.Unlock()
	m.w.notify(Change{Key: key, Origin: origin})
	return nil
}

func (m *MemoryStore) Delete(key string, origin string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	m.w.notify(Change{Key: key, Origin: origin})
	return nil
}

func (m *MemoryStore) Watch(fn func(Change)) func() {
	return m.w.add(fn)
}
