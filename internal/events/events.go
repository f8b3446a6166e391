package events

import (
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/dame6k/beatstore/internal/domain"
)

const (
	TopicBeatsUpdated    = "customBeats:updated"
	TopicCatalogRendered = "cart:beats-updated"
)

// BeatsUpdated carries the full custom beat list after it changed.
type BeatsUpdated struct {
	Beats []domain.Beat
}

// CatalogRendered is published after every catalog render, empty or not.
// Products lists the purchasable cards that are now visible.
type CatalogRendered struct {
	Products []domain.ProductRef
}

type subscription struct {
	id int
	fn interface{}
}

// Bus is the page-local publish/subscribe channel between components.
// Handlers run synchronously on the publishing goroutine in subscription
// order. A publish issued from inside a handler is queued and delivered
// once the current event has reached every subscriber.
type Bus struct {
	bus         EventBus.Bus
	mu          sync.Mutex
	dispatching bool
	queue       []func()

	// EventBus matches handlers by code pointer, so closures of one literal
	// are indistinguishable there. Each topic gets a single EventBus
	// callback that fans out to these lists.
	subsMu sync.Mutex
	subs   map[string][]subscription
	nextID int
}

func NewBus() *Bus {
	b := &Bus{bus: EventBus.New(), subs: make(map[string][]subscription)}
	_ = b.bus.Subscribe(TopicBeatsUpdated, func(ev BeatsUpdated) {
		for _, fn := range b.handlers(TopicBeatsUpdated) {
			fn.(func(BeatsUpdated))(ev)
		}
	})
	_ = b.bus.Subscribe(TopicCatalogRendered, func(ev CatalogRendered) {
		for _, fn := range b.handlers(TopicCatalogRendered) {
			fn.(func(CatalogRendered))(ev)
		}
	})
	return b
}

func (b *Bus) PublishBeatsUpdated(ev BeatsUpdated) {
	b.publish(TopicBeatsUpdated, ev)
}

// SubscribeBeatsUpdated registers fn and returns the func that removes it.
func (b *Bus) SubscribeBeatsUpdated(fn func(BeatsUpdated)) func() {
	return b.subscribe(TopicBeatsUpdated, fn)
}

func (b *Bus) PublishCatalogRendered(ev CatalogRendered) {
	b.publish(TopicCatalogRendered, ev)
}

func (b *Bus) SubscribeCatalogRendered(fn func(CatalogRendered)) func() {
	return b.subscribe(TopicCatalogRendered, fn)
}

// Subscribers reports how many handlers topic has.
func (b *Bus) Subscribers(topic string) int {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	return len(b.subs[topic])
}

func (b *Bus) subscribe(topic string, fn interface{}) func() {
	b.subsMu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})
	b.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.subsMu.Lock()
			defer b.subsMu.Unlock()
			list := b.subs[topic]
			for i := range list {
				if list[i].id == id {
					b.subs[topic] = append(list[:i:i], list[i+1:]...)
					return
				}
			}
		})
	}
}

// handlers snapshots the handlers of topic, so a handler may cancel
// itself or subscribe others while an event is delivered.
func (b *Bus) handlers(topic string) []interface{} {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	out := make([]interface{}, 0, len(b.subs[topic]))
	for _, s := range b.subs[topic] {
		out = append(out, s.fn)
	}
	return out
}

func (b *Bus) publish(topic string, payload interface{}) {
	b.mu.Lock()
	b.queue = append(b.queue, func() { b.bus.Publish(topic, payload) })
	if b.dispatching {
		b.mu.Unlock()
		return
	}
	b.dispatching = true
	for len(b.queue) > 0 {
		next := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()
		next()
		b.mu.Lock()
	}
	b.dispatching = false
	b.mu.Unlock()
}
