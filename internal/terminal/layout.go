package terminal

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/document"
)

// handleWidth is the width of the drag-handle column left of the text.
const handleWidth = 2

// cell is a screen coordinate.
type cell struct {
	X, Y int
}

// glyph is one grapheme cluster placed on screen.
type glyph struct {
	text  string
	width int
	at    cell
}

// blockLayout is the placement of one block.
type blockLayout struct {
	index  int
	block  block.Block
	top    int
	bottom int // exclusive

	glyphs []glyph
	// carets holds the screen cell of every caret offset, 0..len.
	carets []cell
}

// layout is the placement of a whole snapshot at a given width.
type layout struct {
	revision uint64
	width    int
	blocks   []blockLayout
	rows     int
}

// layoutSnapshot places every block, one or more rows each, wrapping at
// width. A newline in the content starts a new row.
func layoutSnapshot(snap *document.Snapshot, width int) *layout {
	l := &layout{revision: snap.Revision(), width: width}
	textWidth := width - handleWidth
	if textWidth < 1 {
		textWidth = 1
	}
	y := 0
	for i, b := range snap.Blocks() {
		bl := blockLayout{index: i, block: b, top: y}
		x := 0
		gr := uniseg.NewGraphemes(b.Content)
		for gr.Next() {
			text := gr.Str()
			if text == "\n" || text == "\r\n" {
				bl.carets = append(bl.carets, cell{handleWidth + x, y})
				bl.glyphs = append(bl.glyphs, glyph{text: text, at: cell{handleWidth + x, y}})
				x = 0
				y++
				continue
			}
			w := gr.Width()
			if x > 0 && x+w > textWidth {
				x = 0
				y++
			}
			at := cell{handleWidth + x, y}
			bl.carets = append(bl.carets, at)
			bl.glyphs = append(bl.glyphs, glyph{text: text, width: w, at: at})
			x += w
		}
		bl.carets = append(bl.carets, cell{handleWidth + x, y})
		y++
		bl.bottom = y
		l.blocks = append(l.blocks, bl)
	}
	l.rows = y
	return l
}

// find returns the layout of block id.
func (l *layout) find(id block.ID) (*blockLayout, bool) {
	for i := range l.blocks {
		if l.blocks[i].block.ID == id {
			return &l.blocks[i], true
		}
	}
	return nil, false
}

// at returns the block occupying screen row y.
func (l *layout) at(y int) (*blockLayout, bool) {
	for i := range l.blocks {
		if y >= l.blocks[i].top && y < l.blocks[i].bottom {
			return &l.blocks[i], true
		}
	}
	return nil, false
}

// caret returns the screen cell of a character offset, clamped.
func (b *blockLayout) caret(offset int) cell {
	return b.carets[block.Clamp(offset, len(b.carets)-1)]
}

// offsetAt returns the caret offset closest to the screen cell (x, y).
// Rows above or below the block clamp to its first or last row.
func (b *blockLayout) offsetAt(x, y int) int {
	if y < b.top {
		return 0
	}
	if y >= b.bottom {
		return len(b.carets) - 1
	}
	best := -1
	for i, c := range b.carets {
		if c.Y != y {
			continue
		}
		if best < 0 || c.X <= x {
			best = i
		}
	}
	if best < 0 {
		return len(b.carets) - 1
	}
	return best
}
