package event

import (
	"fmt"
	"log"
	"runtime/debug"
	"slices"
	"sync"
)

// wildcard is the reserved event type used for SubscribeAll bindings.
const wildcard = "*"

// Handler receives a published event.
type Handler func(Event)

// binding ties a subscription ID to its handler under one event type.
type binding struct {
	id string
	fn Handler
}

// Bus delivers events synchronously to subscribed handlers. Components
// publish and subscribe without knowing about each other; the bus is the
// only coupling point. Safe for concurrent use, including publishing from
// inside a handler.
type Bus struct {
	mu       sync.RWMutex
	bindings map[string][]binding
	seq      uint64
}

// NewBus returns an empty bus with no subscriptions.
func NewBus() *Bus {
	return &Bus{bindings: make(map[string][]binding)}
}

// Subscribe registers handler for events of the given type and returns an
// ID for Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	id := fmt.Sprintf("sub-%d", b.seq)
	b.bindings[eventType] = append(b.bindings[eventType], binding{id: id, fn: handler})
	return id
}

// SubscribeAll registers handler for every event type and returns an ID
// for Unsubscribe.
func (b *Bus) SubscribeAll(handler Handler) string {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes the subscription with the given ID. It reports
// whether a subscription was removed.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, bound := range b.bindings {
		for i, bd := range bound {
			if bd.id == id {
				b.bindings[eventType] = slices.Delete(bound, i, i+1)
				return true
			}
		}
	}
	return false
}

// Publish delivers event to every handler subscribed to its type, then to
// every SubscribeAll handler, each group in registration order. Handlers
// run on the caller's goroutine; Publish returns after the last one. A
// panicking handler is recovered and logged so the rest still run.
func (b *Bus) Publish(event Event) {
	for _, bd := range b.snapshot(event.EventType()) {
		b.dispatch(bd, event)
	}
}

// snapshot copies the handlers to run for one event type so delivery
// happens outside the lock. Handlers may therefore subscribe or
// unsubscribe while being called.
func (b *Bus) snapshot(eventType string) []binding {
	b.mu.RLock()
	defer b.mu.RUnlock()

	typed := b.bindings[eventType]
	all := b.bindings[wildcard]
	out := make([]binding, 0, len(typed)+len(all))
	out = append(out, typed...)
	return append(out, all...)
}

// dispatch runs a single handler, converting a panic into a logged error.
func (b *Bus) dispatch(bd binding, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: handler %s panicked on %s event: %v\n%s",
				bd.id, event.EventType(), r, debug.Stack())
		}
	}()
	bd.fn(event)
}

// Clear drops every subscription.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bindings = make(map[string][]binding)
}

// SubscriptionCount returns the number of active subscriptions across all
// event types.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, bound := range b.bindings {
		n += len(bound)
	}
	return n
}
