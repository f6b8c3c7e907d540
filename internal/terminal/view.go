package terminal

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/dispatcher"
	"github.com/dshills/blockstorm/internal/input/mouse"
	"github.com/dshills/blockstorm/internal/logging"
	"github.com/dshills/blockstorm/internal/menu"
)

// handleGlyph marks the drag handle of a block.
const handleGlyph = '⠿'

// promoteLabel is the single action-menu entry.
const promoteLabel = "Promote"

// menuItem is a clickable menu entry drawn on screen.
type menuItem struct {
	x, y, width int
	id          block.ID
	tag         block.Tag
	promote     bool
}

func (m menuItem) contains(x, y int) bool {
	return y == m.y && x >= m.x && x < m.x+m.width
}

// View renders a document to a tcell screen and translates terminal input
// into dispatcher calls. It is the caret and selection source for the
// dispatcher and the target of its focus requests.
//
// View is not safe for concurrent use; drive it from the event loop.
type View struct {
	screen tcell.Screen
	disp   *dispatcher.Dispatcher
	theme  Theme
	tags   []block.Tag
	logger *logging.Logger

	layout *layout

	focused block.ID
	anchor  int
	caret   int

	menuCursor int
	menuItems  []menuItem

	buttons buttonTracker
	mouse   *mouse.Handler

	pasting bool
	paste   strings.Builder
}

// Option configures a View.
type Option func(*View)

// WithTheme sets the styles.
func WithTheme(t Theme) Option {
	return func(v *View) {
		v.theme = t
	}
}

// WithTags sets the entries of the type-select menu.
func WithTags(tags []block.Tag) Option {
	return func(v *View) {
		if len(tags) > 0 {
			v.tags = tags
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(v *View) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// WithMouseConfig sets click and drag thresholds.
func WithMouseConfig(cfg mouse.Config) Option {
	return func(v *View) {
		v.mouse = mouse.NewHandler(cfg)
	}
}

// New creates a view on screen and attaches it to d as surface and focus
// coordinator. The screen must already be initialized.
func New(screen tcell.Screen, d *dispatcher.Dispatcher, opts ...Option) *View {
	v := &View{
		screen: screen,
		disp:   d,
		theme:  DefaultTheme(),
		tags:   block.KnownTags(),
		logger: logging.Nop(),
		mouse:  mouse.NewHandler(mouse.DefaultConfig()),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.logger = v.logger.WithComponent("terminal")
	d.SetSurface(v)
	d.SetCoordinator(v)
	v.ensureFocus()
	return v
}

// Focused returns the block holding the caret and the selection in it.
func (v *View) Focused() (id block.ID, start, end int) {
	start, end = v.Selection(v.focused)
	return v.focused, start, end
}

// Selection implements dispatcher.Surface. Blocks without focus report a
// collapsed selection at their end.
func (v *View) Selection(id block.ID) (start, end int) {
	if id == v.focused {
		if v.anchor <= v.caret {
			return v.anchor, v.caret
		}
		return v.caret, v.anchor
	}
	b, found := v.disp.Store().Snapshot().Find(id)
	if !found {
		return 0, 0
	}
	n := b.Len()
	return n, n
}

// Caret implements dispatcher.Surface.
func (v *View) Caret(id block.ID, boundary dispatcher.Boundary) menu.Position {
	bl, found := v.currentLayout().find(id)
	if !found {
		return menu.Position{}
	}
	start, end := v.Selection(id)
	offset := end
	if boundary == dispatcher.BoundaryStart {
		offset = start
	}
	c := bl.caret(offset)
	return menu.Position{X: float64(c.X), Y: float64(c.Y)}
}

// PlaceCaret implements focus.Coordinator.
func (v *View) PlaceCaret(b block.Block, offset int) {
	v.focused = b.ID
	v.caret = block.Clamp(offset, b.Len())
	v.anchor = v.caret
}

// currentLayout returns the layout of the current snapshot, recomputing
// it when the revision or screen width changed.
func (v *View) currentLayout() *layout {
	snap := v.disp.Store().Snapshot()
	width, _ := v.screen.Size()
	if v.layout == nil || v.layout.revision != snap.Revision() || v.layout.width != width {
		v.layout = layoutSnapshot(snap, width)
	}
	return v.layout
}

// ensureFocus moves the caret to the first block when the focused block
// no longer exists, and clamps it to the block's content.
func (v *View) ensureFocus() {
	snap := v.disp.Store().Snapshot()
	b, found := snap.Find(v.focused)
	if !found {
		if snap.Len() == 0 {
			return
		}
		v.PlaceCaret(snap.At(0), 0)
		return
	}
	n := b.Len()
	v.caret = block.Clamp(v.caret, n)
	v.anchor = block.Clamp(v.anchor, n)
}

// Render draws the current snapshot, open menus and the caret.
func (v *View) Render() {
	v.ensureFocus()
	l := v.currentLayout()

	v.screen.Fill(' ', v.theme.Text)
	for i := range l.blocks {
		v.drawBlock(&l.blocks[i])
	}

	v.menuItems = v.menuItems[:0]
	for i := range l.blocks {
		id := l.blocks[i].block.ID
		state := v.disp.MenuState(id)
		if state.Select.Open {
			v.drawSelectMenu(id, state.Select.Anchor)
		}
		if state.Action.Open {
			v.drawActionMenu(id, state.Action.Anchor)
		}
	}

	if bl, found := l.find(v.focused); found {
		c := bl.caret(v.caret)
		v.screen.ShowCursor(c.X, c.Y)
	} else {
		v.screen.HideCursor()
	}
	v.screen.Show()
}

func (v *View) drawBlock(bl *blockLayout) {
	v.screen.SetContent(0, bl.top, handleGlyph, nil, v.theme.Handle)

	style := v.theme.blockStyle(bl.block)
	_, selBg, _ := v.theme.Selection.Decompose()
	start, end := -1, -1
	if bl.block.ID == v.focused {
		start, end = v.Selection(v.focused)
	}
	for i, g := range bl.glyphs {
		if g.width == 0 {
			continue
		}
		st := style
		if i >= start && i < end {
			st = st.Background(selBg)
		}
		runes := []rune(g.text)
		v.screen.SetContent(g.at.X, g.at.Y, runes[0], runes[1:], st)
	}
}

func (v *View) drawSelectMenu(id block.ID, anchor menu.Position) {
	width := 0
	for _, tag := range v.tags {
		if w := uniseg.StringWidth(tag.Label()); w > width {
			width = w
		}
	}
	width += 2
	x, y := v.menuOrigin(anchor, width, len(v.tags), false)
	if v.menuCursor >= len(v.tags) {
		v.menuCursor = 0
	}
	for i, tag := range v.tags {
		style := v.theme.Menu
		if i == v.menuCursor {
			style = v.theme.MenuActive
		}
		v.drawLabel(x, y+i, width, tag.Label(), style)
		v.menuItems = append(v.menuItems, menuItem{x: x, y: y + i, width: width, id: id, tag: tag})
	}
}

func (v *View) drawActionMenu(id block.ID, anchor menu.Position) {
	width := uniseg.StringWidth(promoteLabel) + 2
	x, y := v.menuOrigin(anchor, width, 1, true)
	v.drawLabel(x, y, width, promoteLabel, v.theme.Menu)
	v.menuItems = append(v.menuItems, menuItem{x: x, y: y, width: width, id: id, promote: true})
}

// menuOrigin places a menu of the given size below its anchor, centred on
// it when centred is set, and keeps it on screen.
func (v *View) menuOrigin(anchor menu.Position, width, height int, centred bool) (int, int) {
	sw, sh := v.screen.Size()
	x := int(anchor.X)
	if centred {
		x -= width / 2
	}
	y := int(anchor.Y) + 1
	if y+height > sh && int(anchor.Y)-height >= 0 {
		y = int(anchor.Y) - height
	}
	if x+width > sw {
		x = sw - width
	}
	if x < 0 {
		x = 0
	}
	return x, y
}

// drawLabel draws text padded by one cell on each side to width cells.
func (v *View) drawLabel(x, y, width int, text string, style tcell.Style) {
	for i := 0; i < width; i++ {
		v.screen.SetContent(x+i, y, ' ', nil, style)
	}
	cx := x + 1
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		v.screen.SetContent(cx, y, runes[0], runes[1:], style)
		cx += gr.Width()
	}
}

// menuItemAt returns the menu entry drawn at (x, y).
func (v *View) menuItemAt(x, y int) (menuItem, bool) {
	for _, item := range v.menuItems {
		if item.contains(x, y) {
			return item, true
		}
	}
	return menuItem{}, false
}
