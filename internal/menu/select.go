package menu

// SelectMenu is the type-select menu of one block.
//
// The menu keeps a backup of the block content taken when the command
// character is pressed, so the content can be restored without the command
// text once a tag is chosen.
type SelectMenu struct {
	listeners *Listeners
	owner     string
	onClose   func()

	state    State
	anchor   Position
	handle   *Handle
	backup   string
	hasSaved bool
}

// SelectOption configures a SelectMenu.
type SelectOption func(*SelectMenu)

// WithSelectOwner names the menu in the listener registry.
func WithSelectOwner(owner string) SelectOption {
	return func(m *SelectMenu) {
		m.owner = owner
	}
}

// OnSelectClose registers a callback run after every close transition.
func OnSelectClose(fn func()) SelectOption {
	return func(m *SelectMenu) {
		m.onClose = fn
	}
}

// NewSelectMenu creates a closed select menu.
func NewSelectMenu(listeners *Listeners, opts ...SelectOption) *SelectMenu {
	m := &SelectMenu{listeners: listeners, owner: "select"}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SaveBackup records the content to restore after a tag is chosen.
func (m *SelectMenu) SaveBackup(content string) {
	m.backup = content
	m.hasSaved = true
}

// Backup returns the saved content.
func (m *SelectMenu) Backup() (string, bool) {
	return m.backup, m.hasSaved
}

// Open shows the menu at anchor and registers its dismiss listener. Opening
// an open menu only moves it.
func (m *SelectMenu) Open(anchor Position) {
	m.anchor = anchor
	if m.state == StateOpen {
		return
	}
	m.state = StateOpen
	m.handle = m.listeners.Register(m.owner, func() { m.Close() })
}

// Close hides the menu, discards the backup and releases the dismiss
// listener. It returns false if the menu was already closed.
func (m *SelectMenu) Close() bool {
	m.backup = ""
	m.hasSaved = false
	if m.state == StateClosed {
		return false
	}
	m.state = StateClosed
	m.anchor = Position{}
	m.handle.Release()
	m.handle = nil
	if m.onClose != nil {
		m.onClose()
	}
	return true
}

// IsOpen returns true while the menu is shown.
func (m *SelectMenu) IsOpen() bool {
	return m.state == StateOpen
}

// State returns the menu state.
func (m *SelectMenu) State() State {
	return m.state
}

// View returns the render state.
func (m *SelectMenu) View() View {
	return View{Open: m.state == StateOpen, Anchor: m.anchor}
}
