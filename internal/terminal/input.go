package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/dispatcher"
	"github.com/dshills/blockstorm/internal/input/key"
	"github.com/dshills/blockstorm/internal/input/mouse"
)

// HandleEvent processes one terminal event. It returns false when the
// event asks the editor to quit.
func (v *View) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlQ || e.Key() == tcell.KeyCtrlC {
			return false
		}
		if v.pasting {
			v.bufferPaste(e)
			return true
		}
		v.handleKey(e)
	case *tcell.EventPaste:
		v.handlePaste(e)
	case *tcell.EventMouse:
		v.handleMouse(e)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// handleKey sends the key to the dispatcher as a press followed by a
// release; terminals do not report releases. Keys the dispatcher does not
// consume get the default editing behaviour.
func (v *View) handleKey(e *tcell.EventKey) {
	v.ensureFocus()
	id := v.focused
	if id.IsZero() {
		return
	}
	ev := convertKey(e)

	res := v.disp.KeyDown(id, ev)
	if !res.Handled() {
		v.defaultKey(id, ev)
	}
	if !v.disp.Store().Snapshot().Contains(id) {
		return
	}
	if up := v.disp.KeyUp(id, ev); up.Intent == dispatcher.IntentSelectOpen && up.IsOK() {
		v.menuCursor = 0
	}
}

func (v *View) defaultKey(id block.ID, ev key.Event) {
	if v.menuKey(id, ev) {
		return
	}
	extend := ev.Modifiers.HasShift()
	switch {
	case ev.IsChar():
		v.insert(id, string(ev.Rune))
	case ev.Is(key.KeyEnter):
		v.insert(id, "\n")
	case ev.Is(key.KeyTab):
		v.insert(id, "\t")
	case ev.Is(key.KeyBackspace):
		v.deleteRange(id, -1)
	case ev.Is(key.KeyDelete):
		v.deleteRange(id, 1)
	case ev.Is(key.KeyLeft):
		v.moveCaret(v.caret-1, extend)
	case ev.Is(key.KeyRight):
		v.moveCaret(v.caret+1, extend)
	case ev.Is(key.KeyHome):
		v.moveCaret(0, extend)
	case ev.Is(key.KeyEnd):
		v.moveCaret(v.blockLen(id), extend)
	case ev.Is(key.KeyUp):
		v.moveBlock(-1)
	case ev.Is(key.KeyDown):
		v.moveBlock(1)
	case ev.Is(key.KeyEscape):
		v.disp.Click()
	}
}

// menuKey drives the open type-select menu of block id from the keyboard.
func (v *View) menuKey(id block.ID, ev key.Event) bool {
	if !v.disp.MenuState(id).Select.Open || len(v.tags) == 0 {
		return false
	}
	switch {
	case ev.Is(key.KeyUp):
		v.menuCursor = (v.menuCursor + len(v.tags) - 1) % len(v.tags)
	case ev.Is(key.KeyDown):
		v.menuCursor = (v.menuCursor + 1) % len(v.tags)
	case ev.Is(key.KeyEnter):
		v.disp.SelectTag(id, v.tags[v.menuCursor%len(v.tags)])
		v.menuCursor = 0
	case ev.Is(key.KeyEscape):
		v.disp.Click()
	default:
		return false
	}
	return true
}

func (v *View) blockLen(id block.ID) int {
	b, found := v.disp.Store().Snapshot().Find(id)
	if !found {
		return 0
	}
	return b.Len()
}

// insert replaces the selection in block id with text.
func (v *View) insert(id block.ID, text string) {
	b, found := v.disp.Store().Snapshot().Find(id)
	if !found {
		return
	}
	start, end := v.Selection(id)
	content := block.Slice(b.Content, 0, start) + text + block.Slice(b.Content, end, b.Len())
	if res := v.disp.Input(id, content); res.IsError() {
		return
	}
	v.caret = start + block.Len(text)
	v.anchor = v.caret
}

// deleteRange removes the selection, or one character before (dir < 0)
// or after (dir > 0) a collapsed caret.
func (v *View) deleteRange(id block.ID, dir int) {
	b, found := v.disp.Store().Snapshot().Find(id)
	if !found {
		return
	}
	start, end := v.Selection(id)
	if start == end {
		if dir < 0 {
			start--
		} else {
			end++
		}
	}
	n := b.Len()
	start, end = block.Clamp(start, n), block.Clamp(end, n)
	if start == end {
		return
	}
	content := block.Slice(b.Content, 0, start) + block.Slice(b.Content, end, n)
	if res := v.disp.Input(id, content); res.IsError() {
		return
	}
	v.caret = start
	v.anchor = start
}

func (v *View) moveCaret(offset int, extend bool) {
	v.caret = block.Clamp(offset, v.blockLen(v.focused))
	if !extend {
		v.anchor = v.caret
	}
}

// moveBlock moves the caret to the neighbouring block, keeping its offset
// where the content allows.
func (v *View) moveBlock(delta int) {
	snap := v.disp.Store().Snapshot()
	i := snap.IndexOf(v.focused) + delta
	if i < 0 || i >= snap.Len() {
		return
	}
	v.PlaceCaret(snap.At(i), v.caret)
}

func (v *View) bufferPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		v.paste.WriteRune(e.Rune())
	case tcell.KeyEnter:
		v.paste.WriteByte('\n')
	case tcell.KeyTab:
		v.paste.WriteByte('\t')
	}
}

// handlePaste collects bracketed paste content and hands it to the
// dispatcher as plain text once the paste ends.
func (v *View) handlePaste(e *tcell.EventPaste) {
	if e.Start() {
		v.pasting = true
		v.paste.Reset()
		return
	}
	if !v.pasting {
		return
	}
	v.pasting = false
	v.ensureFocus()
	if v.focused.IsZero() {
		return
	}
	v.disp.Paste(v.focused, v.paste.String())
	v.paste.Reset()
}

func (v *View) handleMouse(e *tcell.EventMouse) {
	ev := v.buttons.convert(e)
	switch ev.Action {
	case mouse.ActionPress:
		if ev.Button == mouse.ButtonLeft {
			v.pressAt(ev.Position, ev.Modifiers.HasShift())
		}
	case mouse.ActionDrag:
		if start, pressed := v.mouse.Pressed(); pressed && start.X >= handleWidth {
			v.extendTo(ev.Position)
		}
	}
	g, done := v.mouse.Handle(ev)
	if done && g.Button == mouse.ButtonLeft {
		v.gesture(g)
	}
}

// pressAt moves the caret to the text cell under the pointer.
func (v *View) pressAt(pos mouse.Position, extend bool) {
	if _, onMenu := v.menuItemAt(pos.X, pos.Y); onMenu || pos.X < handleWidth {
		return
	}
	bl, found := v.currentLayout().at(pos.Y)
	if !found {
		return
	}
	offset := bl.offsetAt(pos.X, pos.Y)
	if bl.block.ID != v.focused {
		v.focused = bl.block.ID
		extend = false
	}
	v.caret = offset
	if !extend {
		v.anchor = offset
	}
}

// extendTo moves the caret under the pointer without moving the anchor.
func (v *View) extendTo(pos mouse.Position) {
	bl, found := v.currentLayout().find(v.focused)
	if !found {
		return
	}
	v.caret = bl.offsetAt(pos.X, pos.Y)
}

// gesture reports a completed pointer gesture. A click on a menu entry
// applies it; a drag from the handle column reorders; a release in the
// text may open the action menu. Every gesture except a reorder ends with
// a document-wide click.
func (v *View) gesture(g mouse.Gesture) {
	if item, onMenu := v.menuItemAt(g.End.X, g.End.Y); onMenu && g.Kind == mouse.GestureClick {
		if item.promote {
			v.disp.Promote(item.id)
		} else {
			v.disp.SelectTag(item.id, item.tag)
			v.menuCursor = 0
		}
		v.disp.Click()
		return
	}

	l := v.currentLayout()
	if g.Kind == mouse.GestureDrag && g.Start.X < handleWidth {
		source, found := l.at(g.Start.Y)
		if !found {
			return
		}
		r := dispatcher.DragResult{Source: source.index}
		if dest, hit := l.at(g.End.Y); hit {
			r.Destination = dest.index
			r.HasDestination = true
		}
		v.disp.DragEnd(r)
		return
	}

	if bl, inText := l.at(g.Start.Y); inText && g.Start.X >= handleWidth {
		if g.Kind == mouse.GestureClick && bl.block.ID == v.focused {
			switch g.Clicks {
			case 2:
				v.anchor, v.caret = wordAt(bl.block.Content, v.caret)
			case 3:
				v.anchor, v.caret = 0, len(bl.carets)-1
			}
		}
		v.disp.MouseUp(v.focused)
	}
	v.disp.Click()
}

// wordAt returns the grapheme range of the word, or run of spaces and
// punctuation, that contains offset. An offset at the end of the content
// selects the last word.
func wordAt(content string, offset int) (start, end int) {
	rest, state := content, -1
	var word string
	for rest != "" {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := uniseg.GraphemeClusterCount(word)
		if offset < start+n || rest == "" {
			return start, start + n
		}
		start += n
	}
	return 0, 0
}
