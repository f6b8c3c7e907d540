package document

// Observer is called with every committed snapshot.
type Observer func(snap *Snapshot)

// Subscription represents an active observer registration.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes the observer. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.store == nil {
		return
	}
	s.store.unsubscribe(s.id)
	s.store = nil
}

type observerEntry struct {
	id uint64
	fn Observer
}
