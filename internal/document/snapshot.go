package document

import "github.com/dshills/blockstorm/internal/block"

// Snapshot is a read-only view of the document at one revision. It never
// changes after creation.
type Snapshot struct {
	blocks   []block.Block
	index    map[block.ID]int
	revision uint64
}

func newSnapshot(blocks []block.Block, revision uint64) *Snapshot {
	index := make(map[block.ID]int, len(blocks))
	for i, b := range blocks {
		index[b.ID] = i
	}
	return &Snapshot{
		blocks:   blocks,
		index:    index,
		revision: revision,
	}
}

// Len returns the number of blocks.
func (s *Snapshot) Len() int {
	return len(s.blocks)
}

// At returns the block at index i. It panics if i is out of range.
func (s *Snapshot) At(i int) block.Block {
	return s.blocks[i]
}

// Blocks returns a copy of the ordered blocks.
func (s *Snapshot) Blocks() []block.Block {
	out := make([]block.Block, len(s.blocks))
	copy(out, s.blocks)
	return out
}

// IDs returns the ordered block ids.
func (s *Snapshot) IDs() []block.ID {
	ids := make([]block.ID, len(s.blocks))
	for i, b := range s.blocks {
		ids[i] = b.ID
	}
	return ids
}

// IndexOf returns the index of the block with the given id, or -1.
func (s *Snapshot) IndexOf(id block.ID) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// Find returns the block with the given id.
func (s *Snapshot) Find(id block.ID) (block.Block, bool) {
	i, ok := s.index[id]
	if !ok {
		return block.Block{}, false
	}
	return s.blocks[i], true
}

// Contains returns true if a block with the given id exists.
func (s *Snapshot) Contains(id block.ID) bool {
	_, ok := s.index[id]
	return ok
}

// Revision returns the snapshot revision. Each committed mutation
// increments it by one.
func (s *Snapshot) Revision() uint64 {
	return s.revision
}

// Text returns the concatenated content of all blocks.
func (s *Snapshot) Text() string {
	n := 0
	for _, b := range s.blocks {
		n += len(b.Content)
	}
	buf := make([]byte, 0, n)
	for _, b := range s.blocks {
		buf = append(buf, b.Content...)
	}
	return string(buf)
}
