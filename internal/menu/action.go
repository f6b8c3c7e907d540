package menu

import (
	"time"

	"github.com/dshills/blockstorm/internal/turn"
)

// DefaultListenerDelay is how long the action menu waits before listening
// for the click that dismisses it.
const DefaultListenerDelay = 100 * time.Millisecond

// ActionMenu is the floating selection menu of one block.
//
// Its dismiss listener is attached only after a delay so that the click
// completing the selection gesture does not close the menu it just opened.
type ActionMenu struct {
	listeners *Listeners
	queue     *turn.Queue
	delay     time.Duration
	owner     string

	state      State
	anchor     Position
	start, end int
	handle     *Handle
	attach     *turn.Task
}

// ActionOption configures an ActionMenu.
type ActionOption func(*ActionMenu)

// WithListenerDelay sets the dismiss listener delay.
func WithListenerDelay(d time.Duration) ActionOption {
	return func(m *ActionMenu) {
		if d >= 0 {
			m.delay = d
		}
	}
}

// WithActionOwner names the menu in the listener registry.
func WithActionOwner(owner string) ActionOption {
	return func(m *ActionMenu) {
		m.owner = owner
	}
}

// NewActionMenu creates a closed action menu.
func NewActionMenu(listeners *Listeners, queue *turn.Queue, opts ...ActionOption) *ActionMenu {
	m := &ActionMenu{
		listeners: listeners,
		queue:     queue,
		delay:     DefaultListenerDelay,
		owner:     "action",
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open shows the menu for the selection [start, end) at anchor. Reopening
// an open menu restarts it.
func (m *ActionMenu) Open(anchor Position, start, end int) {
	m.Close()

	m.state = StateOpen
	m.anchor = anchor
	m.start, m.end = start, end
	m.attach = m.queue.After(m.delay, func() {
		m.attach = nil
		if m.state == StateOpen && m.handle == nil {
			m.handle = m.listeners.Register(m.owner, func() { m.Close() })
		}
	})
}

// Close hides the menu, cancels a pending listener attach and releases the
// listener. It returns false if the menu was already closed.
func (m *ActionMenu) Close() bool {
	if m.state == StateClosed {
		return false
	}
	m.state = StateClosed
	m.anchor = Position{}
	if m.attach != nil {
		m.attach.Cancel()
		m.attach = nil
	}
	m.handle.Release()
	m.handle = nil
	return true
}

// Selection returns the offsets captured when the menu was last opened.
func (m *ActionMenu) Selection() (start, end int) {
	return m.start, m.end
}

// IsOpen returns true while the menu is shown.
func (m *ActionMenu) IsOpen() bool {
	return m.state == StateOpen
}

// Listening returns true once the dismiss listener is attached.
func (m *ActionMenu) Listening() bool {
	return m.handle.Active()
}

// State returns the menu state.
func (m *ActionMenu) State() State {
	return m.state
}

// View returns the render state.
func (m *ActionMenu) View() View {
	return View{Open: m.state == StateOpen, Anchor: m.anchor}
}
