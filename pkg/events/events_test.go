package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	name  Name
	value int
}

func (e testEvent) EventName() Name { return e.name }

// TestEmit_RegistrationOrder verifies handlers run in registration order,
// including handlers registered under a matching pattern.
func TestEmit_RegistrationOrder(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var order []string
	bus.On("basket:changed", func(Event) { order = append(order, "exact-1") })
	bus.On("basket:*", func(Event) { order = append(order, "pattern") })
	bus.On("basket:changed", func(Event) { order = append(order, "exact-2") })

	bus.Emit(testEvent{name: "basket:changed"})

	assert.Equal(t, []string{"exact-1", "pattern", "exact-2"}, order)
}

// TestEmit_NoMatch verifies an event without subscribers is a no-op.
func TestEmit_NoMatch(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	called := false
	bus.On("modal:open", func(Event) { called = true })

	bus.Emit(testEvent{name: "modal:close"})

	assert.False(t, called)
}

// TestWildcard verifies the global wildcard sees every event.
func TestWildcard(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var seen []Name
	bus.On(Wildcard, func(evt Event) { seen = append(seen, evt.EventName()) })

	bus.Emit(testEvent{name: "basket:changed"})
	bus.Emit(testEvent{name: "modal:open"})

	assert.Equal(t, []Name{"basket:changed", "modal:open"}, seen)
}

// TestPrefixPattern verifies ":*" patterns match the component only.
func TestPrefixPattern(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var count int
	bus.On("basket:*", func(Event) { count++ })

	bus.Emit(testEvent{name: "basket:changed"})
	bus.Emit(testEvent{name: "basket:empty"})
	bus.Emit(testEvent{name: "order:changed"})

	assert.Equal(t, 2, count)
}

// TestOff verifies Off removes exactly one registration and is idempotent.
func TestOff(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var a, b int
	subA := bus.On("page:changed", func(Event) { a++ })
	bus.On("page:changed", func(Event) { b++ })

	bus.Off(subA)
	bus.Off(subA)
	bus.Emit(testEvent{name: "page:changed"})

	assert.Equal(t, 0, a)
	assert.Equal(t, 1, b)
}

// TestEmit_PanicIsolation verifies a panicking handler does not stop the
// remaining handlers.
func TestEmit_PanicIsolation(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var panics int
	bus.OnPanic = func(Name, any) { panics++ }

	ran := false
	bus.On("order:changed", func(Event) { panic("boom") })
	bus.On("order:changed", func(Event) { ran = true })

	bus.Emit(testEvent{name: "order:changed"})

	assert.True(t, ran)
	assert.Equal(t, 1, panics)
}

// TestEmit_Reentrant verifies a handler may emit again and the nested emit
// completes before the outer emit's remaining handlers run.
func TestEmit_Reentrant(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var order []string
	bus.On("outer", func(Event) {
		order = append(order, "outer-1")
		bus.Emit(testEvent{name: "inner"})
	})
	bus.On("inner", func(Event) { order = append(order, "inner") })
	bus.On("outer", func(Event) { order = append(order, "outer-2") })

	bus.Emit(testEvent{name: "outer"})

	assert.Equal(t, []string{"outer-1", "inner", "outer-2"}, order)
}

// TestEmit_SnapshotSemantics verifies a handler registered during an
// emission does not run for that emission.
func TestEmit_SnapshotSemantics(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var lateCalls int
	bus.On("evt", func(Event) {
		bus.On("evt", func(Event) { lateCalls++ })
	})

	bus.Emit(testEvent{name: "evt"})
	require.Equal(t, 0, lateCalls)

	bus.Emit(testEvent{name: "evt"})
	// Первый эмит зарегистрировал одного опоздавшего, второй — ещё одного.
	assert.Equal(t, 1, lateCalls)
}

// TestEmit_OffDuringEmit verifies a handler removed mid-emission is skipped.
func TestEmit_OffDuringEmit(t *testing.T) {
	t.Parallel()

	bus := NewBus()
	var ran bool
	var sub *Subscription
	bus.On("evt", func(Event) { bus.Off(sub) })
	sub = bus.On("evt", func(Event) { ran = true })

	bus.Emit(testEvent{name: "evt"})

	assert.False(t, ran)
}

// TestPayloadByReference verifies payloads are not copied defensively by the
// bus itself.
func TestPayloadByReference(t *testing.T) {
	t.Parallel()

	type refEvent struct {
		testEvent
		data *[]int
	}
	shared := []int{1}
	bus := NewBus()
	bus.On("evt", func(evt Event) {
		re := evt.(refEvent)
		*re.data = append(*re.data, 2)
	})

	bus.Emit(refEvent{testEvent: testEvent{name: "evt"}, data: &shared})

	assert.Equal(t, []int{1, 2}, shared)
}
