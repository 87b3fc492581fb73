package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// TestPage_Setters verifies every setter emits the whole rebuilt snapshot.
func TestPage_Setters(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	p := NewPage(bus)

	var last contracts.PageChangedEvent
	var emissions int
	bus.On(contracts.PageChanged, func(evt events.Event) {
		emissions++
		last = evt.(contracts.PageChangedEvent)
	})

	p.SetProducts(nil)
	p.SetBasketCount(3)
	p.SetLocked(true)

	require.Equal(t, 3, emissions)
	assert.Equal(t, 3, last.BasketCount)
	assert.True(t, last.IsLocked)
	assert.Empty(t, last.Products)
}

// TestModal_OpenIdempotent verifies a double open emits modal:open once.
func TestModal_OpenIdempotent(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	m := NewModal(bus)

	var opens int
	bus.On(contracts.ModalOpen, func(events.Event) { opens++ })

	m.Open()
	m.Open()

	assert.Equal(t, 1, opens)
	assert.True(t, m.IsOpen())
}

// TestModal_CloseIdempotent verifies closing a closed modal emits nothing.
func TestModal_CloseIdempotent(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	m := NewModal(bus)

	var closes int
	bus.On(contracts.ModalClose, func(events.Event) { closes++ })

	m.Close()
	assert.Equal(t, 0, closes)

	m.Open()
	m.Close()
	m.Close()
	assert.Equal(t, 1, closes)
	assert.False(t, m.IsOpen())
}

type stubContent string

func (s stubContent) Render() string { return string(s) }

// TestModal_ContentSwap verifies content swaps in any state without touching
// the open flag.
func TestModal_ContentSwap(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	m := NewModal(bus)

	m.SetContent(stubContent("первый"))
	assert.False(t, m.IsOpen())

	m.Open()
	m.SetContent(stubContent("второй"))
	assert.True(t, m.IsOpen())
	assert.Equal(t, "второй", m.Content().Render())
}

// TestModal_PageLockWiring verifies the lock toggles once per transition
// when wired the way the composition root does it.
func TestModal_PageLockWiring(t *testing.T) {
	t.Parallel()

	bus := events.NewBus()
	p := NewPage(bus)
	m := NewModal(bus)
	bus.On(contracts.ModalOpen, func(events.Event) { p.SetLocked(true) })
	bus.On(contracts.ModalClose, func(events.Event) { p.SetLocked(false) })

	m.Open()
	m.Open()
	require.True(t, p.IsLocked())

	m.Close()
	assert.False(t, p.IsLocked())
}
