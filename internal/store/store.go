package store

import (
	"errors"
	"sort"
	"sync"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("store: key not found")

// Change describes a write to a key. Origin identifies the writer so a
// reader can ignore its own writes.
type Change struct {
	Key    string
	Origin string
}

// Store is a byte-oriented key-value namespace with change notification.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte, origin string) error
	Delete(key string, origin string) error
	// Watch registers fn for every committed change and returns a func
	// that removes the registration.
	Watch(fn func(Change)) (cancel func())
}

type watchers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Change)
}

func (w *watchers) add(fn func(Change)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fns == nil {
		w.fns = make(map[int]func(Change))
	}
	id := w.next
	w.next++
	w.fns[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.fns, id)
			w.mu.Unlock()
		})
	}
}

// notify runs outside the lock so watchers may read or write the store.
func (w *watchers) notify(c Change) {
	w.mu.Lock()
	ids := make([]int, 0, len(w.fns))
	for id := range w.fns {
		ids = append(ids, id)
	}
	fns := make([]func(Change), 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		fns = append(fns, w.fns[id])
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn(c)
	}
}
