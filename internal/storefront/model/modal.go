package model

import (
	"github.com/nazeru/larek-storefront-go/internal/storefront/contracts"
	"github.com/nazeru/larek-storefront-go/pkg/events"
)

// Renderable is any screen fragment the modal can display.
type Renderable interface {
	Render() string
}

// Modal tracks the single modal overlay: open/closed plus the displayed
// content. Open and Close are idempotent, so nested opens never double-emit
// and the page lock toggles exactly once per transition.
type Modal struct {
	bus     *events.Bus
	open    bool
	content Renderable
}

func NewModal(bus *events.Bus) *Modal {
	return &Modal{bus: bus}
}

func (m *Modal) Open() {
	if m.open {
		return
	}
	m.open = true
	m.bus.Emit(contracts.ModalOpenEvent{})
}

func (m *Modal) Close() {
	if !m.open {
		return
	}
	m.open = false
	m.bus.Emit(contracts.ModalCloseEvent{})
}

// SetContent swaps the displayed fragment in any state; the multi-step
// checkout swaps content while the modal stays open.
func (m *Modal) SetContent(content Renderable) {
	m.content = content
}

func (m *Modal) Content() Renderable { return m.content }
func (m *Modal) IsOpen() bool        { return m.open }
