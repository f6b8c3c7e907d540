package menu

import "sync"

// Handle is a registered dismiss listener.
type Handle struct {
	id       uint64
	owner    string
	fn       func()
	registry *Listeners
}

// Owner returns the name the listener was registered under.
func (h *Handle) Owner() string {
	return h.owner
}

// Release deregisters the listener. It returns false if the handle was
// already released. Safe to call on a nil handle.
func (h *Handle) Release() bool {
	if h == nil || h.registry == nil {
		return false
	}
	ok := h.registry.remove(h.id)
	h.registry = nil
	return ok
}

// Active returns true while the listener is registered.
func (h *Handle) Active() bool {
	return h != nil && h.registry != nil
}

// Listeners is the document-wide click listener registry.
type Listeners struct {
	mu      sync.Mutex
	entries []*Handle
	nextID  uint64
}

// NewListeners creates an empty registry.
func NewListeners() *Listeners {
	return &Listeners{}
}

// Register adds a listener called on every dispatched click until its
// handle is released.
func (l *Listeners) Register(owner string, fn func()) *Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	h := &Handle{id: l.nextID, owner: owner, fn: fn, registry: l}
	l.entries = append(l.entries, h)
	return h
}

func (l *Listeners) remove(id uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, h := range l.entries {
		if h.id == id {
			l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Dispatch delivers a click to the listeners registered when it starts.
// A listener released by an earlier one in the same dispatch is skipped.
// It returns the number of listeners called.
func (l *Listeners) Dispatch() int {
	l.mu.Lock()
	entries := make([]*Handle, len(l.entries))
	copy(entries, l.entries)
	l.mu.Unlock()

	called := 0
	for _, h := range entries {
		if !h.Active() {
			continue
		}
		h.fn()
		called++
	}
	return called
}

// Len returns the number of registered listeners.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Owners returns the owners of the registered listeners in order.
func (l *Listeners) Owners() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	owners := make([]string, len(l.entries))
	for i, h := range l.entries {
		owners[i] = h.owner
	}
	return owners
}
