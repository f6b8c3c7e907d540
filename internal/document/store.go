package document

import (
	"fmt"
	"sync"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/logging"
)

// maxIDAttempts bounds retries when a generator returns an id already in use.
const maxIDAttempts = 16

// Store owns the ordered block sequence and all structural mutations.
//
// Store operations run to completion under a mutex, so a Store may be read
// from other goroutines (metrics, scripting) while the editor loop mutates
// it. Observers are invoked after the mutex is released.
type Store struct {
	mu sync.Mutex

	current    *Snapshot
	newID      block.IDGenerator
	defaultTag block.Tag
	logger     *logging.Logger

	observers []observerEntry
	nextSubID uint64

	seed []block.Block
}

// New creates a store holding one empty default-tag block, or the blocks
// given with WithBlocks.
func New(opts ...Option) *Store {
	s := &Store{
		newID:      block.NewID,
		defaultTag: block.DefaultTag,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithComponent("document")

	s.current = newSnapshot(nil, 0)
	if len(s.seed) > 0 {
		s.current = newSnapshot(s.normalize(s.current, s.seed), 0)
	} else {
		s.current = newSnapshot([]block.Block{s.newBlock(s.current, nil, "", false)}, 0)
	}
	s.seed = nil
	return s
}

// Snapshot returns the current snapshot.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// DefaultTag returns the tag assigned to blocks created by structural edits.
func (s *Store) DefaultTag() block.Tag {
	return s.defaultTag
}

// Subscribe registers an observer for committed snapshots.
func (s *Store) Subscribe(fn Observer) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	s.observers = append(s.observers, observerEntry{id: s.nextSubID, fn: fn})
	return &Subscription{id: s.nextSubID, store: s}
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, o := range s.observers {
		if o.id == id {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// Initialize replaces the document with a single empty default-tag block.
func (s *Store) Initialize() *Snapshot {
	snap, _ := s.mutate("initialize", func(cur *Snapshot) ([]block.Block, error) {
		return []block.Block{s.newBlock(cur, nil, "", false)}, nil
	})
	return snap
}

// Append adds blocks to the end of the document. Blocks with an empty or
// already used id get a fresh one; blocks with no tag get the default tag.
func (s *Store) Append(items ...block.Block) *Snapshot {
	snap, _ := s.mutate("append", func(cur *Snapshot) ([]block.Block, error) {
		if len(items) == 0 {
			return nil, nil
		}
		next := make([]block.Block, 0, cur.Len()+len(items))
		next = append(next, cur.blocks...)
		return append(next, s.normalize(cur, items)...), nil
	})
	return snap
}

// ReplaceField applies a patch to the block with the given id.
func (s *Store) ReplaceField(id block.ID, patch Patch) (*Snapshot, error) {
	return s.mutate("replace", func(cur *Snapshot) ([]block.Block, error) {
		i := cur.IndexOf(id)
		if i < 0 {
			return nil, notFound(id)
		}
		updated, changed := patch.apply(cur.blocks[i])
		if !changed {
			return nil, nil
		}
		return splice(cur.blocks, i, 1, updated), nil
	})
}

// SplitAt splits rawContent at position and rewrites the block with the
// given id accordingly.
//
// When content follows the position, the block is replaced in place by a
// block holding the head and a new block holding the tail, both with the
// default tag and the given flag. When nothing follows, the block is kept
// as-is and an empty, unflagged default block is inserted after it.
func (s *Store) SplitAt(id block.ID, position int, rawContent string, flag bool) (*Snapshot, error) {
	return s.mutate("split", func(cur *Snapshot) ([]block.Block, error) {
		i := cur.IndexOf(id)
		if i < 0 {
			return nil, notFound(id)
		}

		head, tail := block.Split(rawContent, position)
		var replacement []block.Block
		if tail != "" {
			first := s.newBlock(cur, nil, head, flag)
			second := s.newBlock(cur, []block.Block{first}, tail, flag)
			replacement = []block.Block{first, second}
		} else {
			replacement = []block.Block{cur.blocks[i], s.newBlock(cur, nil, "", false)}
		}
		return splice(cur.blocks, i, 1, replacement...), nil
	})
}

// MergeAt removes the block with the given id unless it is the only block,
// in which case the document is returned unchanged.
func (s *Store) MergeAt(id block.ID) (*Snapshot, error) {
	return s.mutate("merge", func(cur *Snapshot) ([]block.Block, error) {
		i := cur.IndexOf(id)
		if i < 0 {
			return nil, notFound(id)
		}
		if cur.Len() <= 1 {
			return nil, nil
		}
		return splice(cur.blocks, i, 1), nil
	})
}

// PromoteSelection turns fullContent[startOffset:endOffset] of the block
// with the given id into its own flagged block. The unselected prefix and
// suffix, when non-empty, become unflagged blocks around it. Offsets are
// clamped and an inverted range is swapped.
func (s *Store) PromoteSelection(id block.ID, fullContent string, startOffset, endOffset int) (*Snapshot, error) {
	return s.mutate("promote", func(cur *Snapshot) ([]block.Block, error) {
		i := cur.IndexOf(id)
		if i < 0 {
			return nil, notFound(id)
		}

		n := block.Len(fullContent)
		start := block.Clamp(startOffset, n)
		end := block.Clamp(endOffset, n)
		if end < start {
			start, end = end, start
		}

		prefix := block.Slice(fullContent, 0, start)
		selected := block.Slice(fullContent, start, end)
		suffix := block.Slice(fullContent, end, n)

		var replacement []block.Block
		add := func(content string, flag bool) {
			replacement = append(replacement, s.newBlock(cur, replacement, content, flag))
		}
		if prefix != "" {
			add(prefix, false)
		}
		add(selected, true)
		if suffix != "" {
			add(suffix, false)
		}
		return splice(cur.blocks, i, 1, replacement...), nil
	})
}

// Reorder moves the block at source to destination. Out-of-range or equal
// indices leave the document unchanged.
func (s *Store) Reorder(source, destination int) *Snapshot {
	snap, _ := s.mutate("reorder", func(cur *Snapshot) ([]block.Block, error) {
		n := cur.Len()
		if source < 0 || source >= n || destination < 0 || destination >= n || source == destination {
			return nil, nil
		}
		moved := cur.blocks[source]
		rest := splice(cur.blocks, source, 1)
		return splice(rest, destination, 0, moved), nil
	})
	return snap
}

// mutate runs fn against the current snapshot and commits the returned
// blocks as a new snapshot. A nil result leaves the document unchanged.
func (s *Store) mutate(op string, fn func(cur *Snapshot) ([]block.Block, error)) (*Snapshot, error) {
	s.mu.Lock()
	cur := s.current
	next, err := fn(cur)
	if err != nil || next == nil {
		s.mu.Unlock()
		if err != nil {
			s.logger.Warn("%s: %v", op, err)
		} else {
			s.logger.Debug("%s: no change at revision %d", op, cur.revision)
		}
		return cur, err
	}

	snap := newSnapshot(next, cur.revision+1)
	s.current = snap
	observers := make([]observerEntry, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.logger.Debug("%s: revision %d, %d blocks", op, snap.revision, snap.Len())

	for _, o := range observers {
		o.fn(snap)
	}
	return snap, nil
}

// newBlock creates a default-tag block whose id is unused in cur and in
// pending.
func (s *Store) newBlock(cur *Snapshot, pending []block.Block, content string, flag bool) block.Block {
	return block.Block{
		ID:      s.freshID(cur, pending),
		Content: content,
		Tag:     s.defaultTag,
		Flag:    flag,
	}
}

func (s *Store) freshID(cur *Snapshot, pending []block.Block) block.ID {
	taken := func(id block.ID) bool {
		if id.IsZero() || cur.Contains(id) {
			return true
		}
		for _, p := range pending {
			if p.ID == id {
				return true
			}
		}
		return false
	}

	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		if id := s.newID(); !taken(id) {
			return id
		}
	}
	id := block.NewID()
	for taken(id) {
		id = block.NewID()
	}
	return id
}

// normalize assigns fresh ids and default tags where needed so items can
// join cur without breaking id uniqueness.
func (s *Store) normalize(cur *Snapshot, items []block.Block) []block.Block {
	out := make([]block.Block, 0, len(items))
	for _, b := range items {
		if b.ID.IsZero() || cur.Contains(b.ID) || containsID(out, b.ID) {
			b.ID = s.freshID(cur, out)
		}
		if b.Tag == "" {
			b.Tag = s.defaultTag
		}
		out = append(out, b)
	}
	return out
}

func containsID(blocks []block.Block, id block.ID) bool {
	for _, b := range blocks {
		if b.ID == id {
			return true
		}
	}
	return false
}

// splice returns a new slice with del elements at i replaced by ins.
// The input slice is never modified.
func splice(blocks []block.Block, i, del int, ins ...block.Block) []block.Block {
	out := make([]block.Block, 0, len(blocks)-del+len(ins))
	out = append(out, blocks[:i]...)
	out = append(out, ins...)
	return append(out, blocks[i+del:]...)
}

func notFound(id block.ID) error {
	return fmt.Errorf("%w: %s", ErrBlockNotFound, id)
}
