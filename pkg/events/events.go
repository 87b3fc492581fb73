// Package events is the in-process event bus the storefront components talk
// through. Dispatch is synchronous and single-threaded: Emit runs every
// matching handler in registration order before returning, and a handler is
// free to Emit again (the nested emit completes depth-first).
package events

import (
	"log"
	"sort"
	"strings"
)

// Name идентифицирует событие; формат "component:action".
type Name string

// Wildcard matches every event. A pattern ending in ":*" matches all events
// of one component, e.g. "basket:*".
const Wildcard Name = "*"

// Event is a named payload. Payload types live next to the components that
// own them; the bus only cares about the name.
type Event interface {
	EventName() Name
}

type Handler func(Event)

// Subscription is the token returned by On; pass it to Off to remove that
// one registration.
type Subscription struct {
	name    Name
	seq     uint64
	fn      Handler
	removed bool
}

type Bus struct {
	entries map[Name][]*Subscription
	seq     uint64

	// OnPanic is invoked when a handler panics. A panicking handler never
	// prevents the remaining handlers from running.
	OnPanic func(name Name, recovered any)
}

func NewBus() *Bus {
	return &Bus{entries: map[Name][]*Subscription{}}
}

// On registers fn for events matching name (exact, Wildcard or ":*" prefix
// pattern).
func (b *Bus) On(name Name, fn Handler) *Subscription {
	b.seq++
	sub := &Subscription{name: name, seq: b.seq, fn: fn}
	b.entries[name] = append(b.entries[name], sub)
	return sub
}

// Off removes a single registration. Safe to call twice.
func (b *Bus) Off(sub *Subscription) {
	if sub == nil || sub.removed {
		return
	}
	sub.removed = true
	list := b.entries[sub.name]
	for i, s := range list {
		if s == sub {
			b.entries[sub.name] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(b.entries[sub.name]) == 0 {
		delete(b.entries, sub.name)
	}
}

// Emit synchronously fans evt out to every handler registered at the moment
// of the call, in registration order. Handlers registered by a handler of
// this very emission are not invoked for it.
func (b *Bus) Emit(evt Event) {
	name := evt.EventName()
	var matched []*Subscription
	for pattern, list := range b.entries {
		if patternMatches(pattern, name) {
			matched = append(matched, list...)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })
	for _, sub := range matched {
		if sub.removed {
			continue
		}
		b.invoke(sub, evt)
	}
}

func (b *Bus) invoke(sub *Subscription, evt Event) {
	defer func() {
		if rec := recover(); rec != nil {
			if b.OnPanic != nil {
				b.OnPanic(evt.EventName(), rec)
				return
			}
			log.Printf("events: handler for %q panicked: %v", evt.EventName(), rec)
		}
	}()
	sub.fn(evt)
}

func patternMatches(pattern, name Name) bool {
	if pattern == name || pattern == Wildcard {
		return true
	}
	p := string(pattern)
	if strings.HasSuffix(p, ":*") {
		return strings.HasPrefix(string(name), strings.TrimSuffix(p, "*"))
	}
	return false
}
