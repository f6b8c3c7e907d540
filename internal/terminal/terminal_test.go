package terminal

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/config"
	"github.com/dshills/blockstorm/internal/dispatcher"
	"github.com/dshills/blockstorm/internal/document"
	"github.com/dshills/blockstorm/internal/input/key"
	"github.com/dshills/blockstorm/internal/input/mouse"
	"github.com/dshills/blockstorm/internal/turn"
)

type fixture struct {
	screen tcell.SimulationScreen
	store  *document.Store
	queue  *turn.Queue
	disp   *dispatcher.Dispatcher
	view   *View
	now    time.Time
}

func sequentialIDs() block.IDGenerator {
	n := 0
	return func() block.ID {
		n++
		return block.ID(fmt.Sprintf("n%d", n))
	}
}

func newFixture(t *testing.T, width int, blocks ...block.Block) *fixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(width, 12)

	f := &fixture{screen: screen, now: time.Unix(100, 0)}
	f.store = document.New(document.WithIDGenerator(sequentialIDs()), document.WithBlocks(blocks...))
	f.queue = turn.New(turn.WithClock(func() time.Time { return f.now }))
	f.disp = dispatcher.New(f.store, f.queue, dispatcher.DefaultConfig())
	t.Cleanup(f.disp.Close)
	f.view = New(screen, f.disp)
	f.view.Render()
	return f
}

func blk(id, content string) block.Block {
	return block.Block{ID: block.ID(id), Content: content, Tag: block.TagParagraph}
}

func (f *fixture) step() {
	f.queue.RunPending()
	f.view.Render()
}

func (f *fixture) advance(d time.Duration) {
	f.now = f.now.Add(d)
	f.step()
}

func (f *fixture) press(k tcell.Key, r rune, mod tcell.ModMask) bool {
	running := f.view.HandleEvent(tcell.NewEventKey(k, r, mod))
	f.step()
	return running
}

func (f *fixture) typeText(s string) {
	for _, r := range s {
		f.press(tcell.KeyRune, r, tcell.ModNone)
	}
}

func (f *fixture) click(x, y int) {
	f.view.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	f.view.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	f.step()
}

func (f *fixture) drag(x0, y0, x1, y1 int) {
	f.view.HandleEvent(tcell.NewEventMouse(x0, y0, tcell.Button1, tcell.ModNone))
	f.view.HandleEvent(tcell.NewEventMouse(x1, y1, tcell.Button1, tcell.ModNone))
	f.view.HandleEvent(tcell.NewEventMouse(x1, y1, tcell.ButtonNone, tcell.ModNone))
	f.step()
}

func (f *fixture) row(y int) string {
	cells, w, _ := f.screen.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteString(string(c.Runes))
	}
	return strings.TrimRight(sb.String(), " ")
}

func (f *fixture) cursor() (int, int) {
	x, y, _ := f.screen.GetCursor()
	return x, y
}

func (f *fixture) contents() []string {
	snap := f.store.Snapshot()
	out := make([]string, 0, snap.Len())
	for _, b := range snap.Blocks() {
		out = append(out, b.Content)
	}
	return out
}

func (f *fixture) menuItem(t *testing.T, match func(menuItem) bool) menuItem {
	t.Helper()
	for _, item := range f.view.menuItems {
		if match(item) {
			return item
		}
	}
	t.Fatalf("menu item not drawn")
	return menuItem{}
}

func TestRenderBlocks(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Hello"), blk("b", "World"))

	assert.Equal(t, "⠿ Hello", f.row(0))
	assert.Equal(t, "⠿ World", f.row(1))
	x, y := f.cursor()
	assert.Equal(t, 2, x)
	assert.Equal(t, 0, y)
}

func TestLayoutWraps(t *testing.T) {
	store := document.New(document.WithBlocks(blk("a", "abcdefghij"), blk("b", "")))
	l := layoutSnapshot(store.Snapshot(), 10)

	require.Len(t, l.blocks, 2)
	a := l.blocks[0]
	assert.Equal(t, 0, a.top)
	assert.Equal(t, 2, a.bottom)
	assert.Equal(t, cell{2, 0}, a.caret(0))
	assert.Equal(t, cell{9, 0}, a.caret(7))
	assert.Equal(t, cell{2, 1}, a.caret(8))
	assert.Equal(t, cell{4, 1}, a.caret(10))
	assert.Equal(t, cell{4, 1}, a.caret(99))
	assert.Equal(t, 10, a.offsetAt(7, 1))
	assert.Equal(t, 9, a.offsetAt(3, 1))
	assert.Equal(t, 0, a.offsetAt(0, -3))

	b := l.blocks[1]
	assert.Equal(t, 2, b.top)
	assert.Equal(t, 3, l.rows)

	found, ok := l.at(1)
	require.True(t, ok)
	assert.Equal(t, block.ID("a"), found.block.ID)
	_, ok = l.at(3)
	assert.False(t, ok)
}

func TestLayoutNewlineStartsRow(t *testing.T) {
	store := document.New(document.WithBlocks(blk("a", "ab\ncd")))
	l := layoutSnapshot(store.Snapshot(), 40)

	a := l.blocks[0]
	assert.Equal(t, 2, a.bottom)
	assert.Equal(t, cell{4, 0}, a.caret(2))
	assert.Equal(t, cell{2, 1}, a.caret(3))
}

func TestTypingInsertsAtCaret(t *testing.T) {
	f := newFixture(t, 40, blk("a", ""))

	f.typeText("hi")
	assert.Equal(t, []string{"hi"}, f.contents())
	assert.Equal(t, "⠿ hi", f.row(0))
	x, _ := f.cursor()
	assert.Equal(t, 4, x)

	f.press(tcell.KeyLeft, 0, tcell.ModNone)
	f.typeText("e")
	assert.Equal(t, []string{"hei"}, f.contents())

	f.press(tcell.KeyBackspace2, 0, tcell.ModNone)
	assert.Equal(t, []string{"hi"}, f.contents())

	f.press(tcell.KeyDelete, 0, tcell.ModNone)
	assert.Equal(t, []string{"h"}, f.contents())
}

func TestEnterSplitsBlock(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Hello world"))

	f.press(tcell.KeyEnd, 0, tcell.ModNone)
	for i := 0; i < 6; i++ {
		f.press(tcell.KeyLeft, 0, tcell.ModNone)
	}
	f.press(tcell.KeyEnter, 0, tcell.ModNone)

	assert.Equal(t, []string{"Hello", " world"}, f.contents())
	id, start, end := f.view.Focused()
	assert.Equal(t, f.store.Snapshot().At(1).ID, id)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
	x, y := f.cursor()
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestShiftEnterInsertsSoftBreak(t *testing.T) {
	f := newFixture(t, 40, blk("a", ""))

	f.typeText("ab")
	f.press(tcell.KeyEnter, 0, tcell.ModShift)
	f.typeText("c")

	assert.Equal(t, []string{"ab\nc"}, f.contents())
	assert.Equal(t, "⠿ ab", f.row(0))
	assert.Equal(t, "  c", f.row(1))
}

func TestBackspaceOnEmptyBlockMerges(t *testing.T) {
	f := newFixture(t, 40, blk("a", "one"), blk("b", ""))

	f.press(tcell.KeyDown, 0, tcell.ModNone)
	id, _, _ := f.view.Focused()
	require.Equal(t, block.ID("b"), id)

	f.press(tcell.KeyBackspace2, 0, tcell.ModNone)
	assert.Equal(t, []string{"one"}, f.contents())
	id, start, _ := f.view.Focused()
	assert.Equal(t, block.ID("a"), id)
	assert.Equal(t, 3, start)
}

func TestCommandKeyOpensTypeMenu(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Title"))

	f.press(tcell.KeyEnd, 0, tcell.ModNone)
	f.typeText("/")
	require.True(t, f.disp.MenuState("a").Select.Open)
	assert.Equal(t, []string{"Title/"}, f.contents())
	assert.Equal(t, "         Text", f.row(1))

	f.press(tcell.KeyDown, 0, tcell.ModNone)
	f.press(tcell.KeyEnter, 0, tcell.ModNone)

	snap := f.store.Snapshot()
	require.Equal(t, 1, snap.Len())
	assert.Equal(t, "Title", snap.At(0).Content)
	assert.Equal(t, block.TagHeading1, snap.At(0).Tag)
	assert.False(t, f.disp.MenuState("a").Select.Open)
	_, start, _ := f.view.Focused()
	assert.Equal(t, 5, start)
}

func TestClickTypeMenuEntry(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Title"))

	f.press(tcell.KeyEnd, 0, tcell.ModNone)
	f.typeText("/")
	item := f.menuItem(t, func(m menuItem) bool { return m.tag == block.TagQuote })

	f.click(item.x+1, item.y)

	snap := f.store.Snapshot()
	assert.Equal(t, "Title", snap.At(0).Content)
	assert.Equal(t, block.TagQuote, snap.At(0).Tag)
	assert.False(t, f.disp.MenuState("a").Select.Open)
	assert.Zero(t, f.disp.Listeners().Len())
}

func TestEscapeDismissesTypeMenu(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Title"))

	f.press(tcell.KeyEnd, 0, tcell.ModNone)
	f.typeText("/")
	require.True(t, f.disp.MenuState("a").Select.Open)

	f.press(tcell.KeyEscape, 0, tcell.ModNone)
	assert.False(t, f.disp.MenuState("a").Select.Open)
	assert.Equal(t, []string{"Title/"}, f.contents())
	assert.Zero(t, f.disp.Listeners().Len())
}

func TestDragSelectionPromotes(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Hello brave world"))

	f.drag(8, 0, 13, 0)
	id, start, end := f.view.Focused()
	require.Equal(t, block.ID("a"), id)
	assert.Equal(t, 6, start)
	assert.Equal(t, 11, end)

	state := f.disp.MenuState("a").Action
	require.True(t, state.Open)
	assert.Equal(t, 10.5, state.Anchor.X)
	assert.Equal(t, 0.0, state.Anchor.Y)
	assert.Contains(t, f.row(1), promoteLabel)

	f.advance(dispatcher.DefaultConfig().ListenerDelay)
	item := f.menuItem(t, func(m menuItem) bool { return m.promote })
	f.click(item.x+1, item.y)

	assert.Equal(t, []string{"Hello ", "brave", " world"}, f.contents())
	assert.True(t, f.store.Snapshot().At(1).Flag)
	assert.Zero(t, f.disp.Listeners().Len())
}

func TestDoubleClickSelectsWord(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Hello brave world"))

	f.click(9, 0)
	f.click(9, 0)
	_, start, end := f.view.Focused()
	assert.Equal(t, 6, start)
	assert.Equal(t, 11, end)
	assert.True(t, f.disp.MenuState("a").Action.Open)

	f.click(9, 0)
	_, start, end = f.view.Focused()
	assert.Equal(t, 0, start)
	assert.Equal(t, 17, end)
}

func TestWordAt(t *testing.T) {
	tests := []struct {
		content    string
		offset     int
		start, end int
	}{
		{"Hello brave world", 0, 0, 5},
		{"Hello brave world", 5, 5, 6},
		{"Hello brave world", 8, 6, 11},
		{"Hello brave world", 17, 12, 17},
		{"", 0, 0, 0},
		{"héllo wörld", 7, 6, 11},
	}
	for _, tt := range tests {
		start, end := wordAt(tt.content, tt.offset)
		assert.Equal(t, tt.start, start, "%q at %d", tt.content, tt.offset)
		assert.Equal(t, tt.end, end, "%q at %d", tt.content, tt.offset)
	}
}

func TestClickOutsideClosesActionMenu(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Hello brave world"))

	f.drag(8, 0, 13, 0)
	require.True(t, f.disp.MenuState("a").Action.Open)
	f.advance(dispatcher.DefaultConfig().ListenerDelay)

	f.click(3, 0)
	assert.False(t, f.disp.MenuState("a").Action.Open)
	assert.Equal(t, []string{"Hello brave world"}, f.contents())
	_, start, end := f.view.Focused()
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}

func TestTypingOverSelectionClosesActionMenu(t *testing.T) {
	f := newFixture(t, 40, blk("a", "Hello brave world"))

	f.drag(8, 0, 13, 0)
	require.True(t, f.disp.MenuState("a").Action.Open)
	f.advance(dispatcher.DefaultConfig().ListenerDelay)

	f.typeText("X")
	assert.Equal(t, []string{"Hello X world"}, f.contents())
	assert.False(t, f.disp.MenuState("a").Action.Open)
	assert.Zero(t, f.disp.Listeners().Len())
}

func TestDragHandleReorders(t *testing.T) {
	f := newFixture(t, 40, blk("a", "one"), blk("b", "two"), blk("c", "three"))

	f.drag(0, 0, 0, 2)
	assert.Equal(t, []string{"two", "three", "one"}, f.contents())
	assert.Equal(t, "⠿ one", f.row(2))

	f.drag(0, 0, 0, 9)
	assert.Equal(t, []string{"two", "three", "one"}, f.contents())
}

func TestBracketedPaste(t *testing.T) {
	f := newFixture(t, 40, blk("a", "abc"))

	f.view.HandleEvent(tcell.NewEventPaste(true))
	f.view.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	f.view.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	f.view.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone))
	assert.Equal(t, []string{"abc"}, f.contents())

	f.view.HandleEvent(tcell.NewEventPaste(false))
	f.step()
	assert.Equal(t, []string{"abcx\ny"}, f.contents())
	_, start, _ := f.view.Focused()
	assert.Equal(t, 6, start)
}

func TestQuitKeys(t *testing.T) {
	f := newFixture(t, 40)

	assert.True(t, f.press(tcell.KeyRune, 'q', tcell.ModNone))
	assert.False(t, f.view.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModNone)))
	assert.False(t, f.view.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)))
}

func TestFocusFollowsRemovedBlock(t *testing.T) {
	f := newFixture(t, 40, blk("a", "one"), blk("b", "two"))

	f.press(tcell.KeyDown, 0, tcell.ModNone)
	f.store.MergeAt("b")
	f.step()

	id, _, _ := f.view.Focused()
	assert.Equal(t, block.ID("a"), id)
}

func TestConvertKey(t *testing.T) {
	ev := convertKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModAlt))
	assert.Equal(t, key.KeyRune, ev.Key)
	assert.Equal(t, 'a', ev.Rune)
	assert.True(t, ev.Modifiers.Has(key.ModAlt))

	assert.Equal(t, key.KeyBackspace, convertKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)).Key)
	assert.Equal(t, key.KeyEnter, convertKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModShift)).Key)
	assert.True(t, convertKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModShift)).Modifiers.HasShift())
	assert.Equal(t, key.KeyNone, convertKey(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)).Key)
}

func TestButtonTracker(t *testing.T) {
	var bt buttonTracker

	ev := bt.convert(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, mouse.ActionMove, ev.Action)

	ev = bt.convert(tcell.NewEventMouse(1, 1, tcell.Button1, tcell.ModNone))
	assert.Equal(t, mouse.ActionPress, ev.Action)
	assert.Equal(t, mouse.ButtonLeft, ev.Button)

	ev = bt.convert(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone))
	assert.Equal(t, mouse.ActionDrag, ev.Action)
	assert.Equal(t, mouse.Position{X: 3, Y: 1}, ev.Position)

	ev = bt.convert(tcell.NewEventMouse(3, 1, tcell.ButtonNone, tcell.ModNone))
	assert.Equal(t, mouse.ActionRelease, ev.Action)
	assert.Equal(t, mouse.ButtonLeft, ev.Button)

	ev = bt.convert(tcell.NewEventMouse(3, 1, tcell.WheelUp, tcell.ModNone))
	assert.Equal(t, mouse.ActionMove, ev.Action)
	assert.Equal(t, mouse.ButtonScrollUp, ev.Button)
}

func TestThemeFromPalette(t *testing.T) {
	p, err := config.Default().Theme.Palette()
	require.NoError(t, err)
	theme := NewTheme(p)

	fg, _, _ := theme.blockStyle(block.New("x", block.TagHeading1, false)).Decompose()
	assert.Equal(t, convertColor(p.Heading), fg)

	fg, _, _ = theme.blockStyle(block.New("x", block.TagParagraph, true)).Decompose()
	assert.Equal(t, convertColor(p.Emphasis), fg)

	_, bg, _ := theme.Selection.Decompose()
	assert.Equal(t, convertColor(p.Selection), bg)
}
