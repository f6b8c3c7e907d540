package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/blockstorm/internal/input/key"
	"github.com/dshills/blockstorm/internal/input/mouse"
)

// convertKey converts a tcell key event to a key.Event.
func convertKey(ev *tcell.EventKey) key.Event {
	k := convertKeyCode(ev.Key())
	var r rune
	if k == key.KeyRune {
		r = ev.Rune()
	}
	return key.Event{
		Key:       k,
		Rune:      r,
		Modifiers: convertMod(ev.Modifiers()),
		Timestamp: ev.When(),
	}
}

var keyCodes = map[tcell.Key]key.Key{
	tcell.KeyRune:       key.KeyRune,
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

// convertKeyCode maps keys the editor has no use for to KeyNone.
func convertKeyCode(k tcell.Key) key.Key {
	return keyCodes[k]
}

var modFlags = [...]struct {
	from tcell.ModMask
	to   key.Modifier
}{
	{tcell.ModShift, key.ModShift},
	{tcell.ModCtrl, key.ModCtrl},
	{tcell.ModAlt, key.ModAlt},
	{tcell.ModMeta, key.ModMeta},
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mod key.Modifier
	for _, f := range modFlags {
		if m&f.from != 0 {
			mod |= f.to
		}
	}
	return mod
}

func convertMouseButton(b tcell.ButtonMask) mouse.Button {
	switch {
	case b&tcell.Button1 != 0:
		return mouse.ButtonLeft
	case b&tcell.Button2 != 0:
		return mouse.ButtonRight
	case b&tcell.Button3 != 0:
		return mouse.ButtonMiddle
	case b&tcell.WheelUp != 0:
		return mouse.ButtonScrollUp
	case b&tcell.WheelDown != 0:
		return mouse.ButtonScrollDown
	default:
		return mouse.ButtonNone
	}
}

// buttonTracker derives press/drag/release actions from tcell's button
// state reports, which carry only the buttons currently held.
type buttonTracker struct {
	held tcell.ButtonMask
}

func (t *buttonTracker) convert(ev *tcell.EventMouse) mouse.Event {
	x, y := ev.Position()
	buttons := ev.Buttons() &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)
	out := mouse.Event{
		Position:  mouse.Position{X: x, Y: y},
		Modifiers: convertMod(ev.Modifiers()),
		Timestamp: ev.When(),
	}
	switch {
	case buttons != 0 && t.held == 0:
		out.Action = mouse.ActionPress
		out.Button = convertMouseButton(buttons)
	case buttons != 0:
		out.Action = mouse.ActionDrag
		out.Button = convertMouseButton(buttons)
	case t.held != 0:
		out.Action = mouse.ActionRelease
		out.Button = convertMouseButton(t.held)
	default:
		out.Action = mouse.ActionMove
		out.Button = convertMouseButton(ev.Buttons())
	}
	t.held = buttons
	return out
}
