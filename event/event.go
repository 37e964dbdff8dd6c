// Package event is a synchronous publish/subscribe bus keyed by dot-delimited
// event types. Subscribing to a prefix receives every event whose type equals
// the prefix or continues it after a "." boundary, so "layer.change" receives
// "layer.change.width" but not "layer.changed".
package event

import "strings"

// Event is delivered to handlers. Target and Type are set by Publish.
type Event struct {
	Target Target
	Type   string
	// Source is the original target of a republished event.
	Source Target

	// Property names the mutated property for change events.
	Property string
	// Value carries the new value or an event-specific payload.
	Value any
}

// Handler receives published events.
type Handler func(Event)

// Target is anything that owns a Bus.
type Target interface {
	Events() *Bus
}

type subscription struct {
	id      uint64
	prefix  string
	handler Handler
}

// Bus holds subscriptions in registration order. The zero Bus is ready to use.
// A Bus is not safe for concurrent use.
type Bus struct {
	subs   []subscription
	nextID uint64
}

// Subscribe registers h for prefix and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(prefix string, h Handler) (cancel func()) {
	if h == nil {
		return func() {}
	}

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, prefix: prefix, handler: h})

	return func() { b.remove(id) }
}

// Publish delivers ev to every matching handler in subscription order before
// returning. Handlers may subscribe or cancel while being called; changes take
// effect from the next Publish.
func (b *Bus) Publish(ev Event) {
	if len(b.subs) == 0 {
		return
	}

	snapshot := make([]subscription, len(b.subs))
	copy(snapshot, b.subs)

	for _, s := range snapshot {
		if Matches(s.prefix, ev.Type) {
			s.handler(ev)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	return len(b.subs)
}

func (b *Bus) remove(id uint64) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Matches reports whether eventType falls under prefix.
func Matches(prefix, eventType string) bool {
	if prefix == "" || prefix == eventType {
		return true
	}
	return strings.HasPrefix(eventType, prefix) && eventType[len(prefix)] == '.'
}

// Publish sets ev.Target and ev.Type and delivers it on target's bus.
// A nil target drops the event.
func Publish(target Target, eventType string, ev Event) {
	if target == nil {
		return
	}
	bus := target.Events()
	if bus == nil {
		return
	}

	ev.Target = target
	ev.Type = eventType
	bus.Publish(ev)
}

// Subscribe registers h on target's bus. A nil target yields a no-op cancel.
func Subscribe(target Target, prefix string, h Handler) (cancel func()) {
	if target == nil || target.Events() == nil {
		return func() {}
	}
	return target.Events().Subscribe(prefix, h)
}
