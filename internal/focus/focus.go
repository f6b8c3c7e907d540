// Package focus turns caret placement into data.
//
// A structural edit does not move the caret itself. It produces a Request
// naming the target block and offset, and a Resolver applies the request
// later, once the rendering layer has committed the new layout. The target
// is looked up by id at that point; a request whose block has disappeared
// in the meantime is dropped without error.
package focus

import (
	"fmt"

	"github.com/dshills/blockstorm/internal/block"
)

// Request asks for the caret to be placed in a block.
type Request struct {
	// BlockID is the target block.
	BlockID block.ID

	// Offset is the caret position in characters. Ignored when AtEnd is set.
	Offset int

	// AtEnd places the caret after the last character.
	AtEnd bool
}

// At returns a request for a caret at offset in block id.
func At(id block.ID, offset int) Request {
	return Request{BlockID: id, Offset: offset}
}

// Start returns a request for a caret at the start of block id.
func Start(id block.ID) Request {
	return At(id, 0)
}

// End returns a request for a caret at the end of block id.
func End(id block.ID) Request {
	return Request{BlockID: id, AtEnd: true}
}

// String returns a debug representation.
func (r Request) String() string {
	if r.AtEnd {
		return fmt.Sprintf("%s@end", r.BlockID)
	}
	return fmt.Sprintf("%s@%d", r.BlockID, r.Offset)
}

// resolve computes the concrete caret offset in b.
func (r Request) resolve(b block.Block) int {
	n := b.Len()
	if r.AtEnd {
		return n
	}
	return block.Clamp(r.Offset, n)
}

// Coordinator places the caret. It is implemented by the rendering layer.
type Coordinator interface {
	PlaceCaret(b block.Block, offset int)
}

// CoordinatorFunc adapts a function to the Coordinator interface.
type CoordinatorFunc func(b block.Block, offset int)

// PlaceCaret calls f.
func (f CoordinatorFunc) PlaceCaret(b block.Block, offset int) {
	f(b, offset)
}

// Lookup finds a block by id in the current document.
type Lookup func(id block.ID) (block.Block, bool)

// Resolver applies requests against the current document.
type Resolver struct {
	lookup      Lookup
	coordinator Coordinator
	dropped     uint64
	applied     uint64
}

// NewResolver creates a resolver.
func NewResolver(lookup Lookup, coordinator Coordinator) *Resolver {
	return &Resolver{lookup: lookup, coordinator: coordinator}
}

// SetCoordinator replaces the coordinator.
func (r *Resolver) SetCoordinator(c Coordinator) {
	r.coordinator = c
}

// Apply places the caret for req. It returns false if the target block no
// longer exists or no coordinator is attached.
func (r *Resolver) Apply(req Request) bool {
	if r.coordinator == nil {
		r.dropped++
		return false
	}
	b, ok := r.lookup(req.BlockID)
	if !ok {
		r.dropped++
		return false
	}
	r.coordinator.PlaceCaret(b, req.resolve(b))
	r.applied++
	return true
}

// Applied returns how many requests were applied.
func (r *Resolver) Applied() uint64 {
	return r.applied
}

// Dropped returns how many requests were dropped.
func (r *Resolver) Dropped() uint64 {
	return r.dropped
}
