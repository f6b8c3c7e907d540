package mouse

import (
	"time"

	"github.com/dshills/blockstorm/internal/input/key"
)

// Button identifies a pointer button or wheel direction.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonScrollUp
	ButtonScrollDown
)

var buttonNames = [...]string{"none", "left", "middle", "right", "scroll-up", "scroll-down"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "none"
}

// IsScroll reports whether b is a wheel direction rather than a button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown
}

// Action is what a pointer event did.
type Action uint8

const (
	ActionNone Action = iota
	ActionPress
	ActionRelease
	// ActionMove is movement with no button held.
	ActionMove
	// ActionDrag is movement with a button held.
	ActionDrag
)

// Position is a screen cell.
type Position struct {
	X int
	Y int
}

// Distance is the larger of the horizontal and vertical gaps, so a
// diagonal neighbour is one cell away.
func (p Position) Distance(q Position) int {
	return max(abs(p.X-q.X), abs(p.Y-q.Y))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Event is one pointer report from the terminal.
type Event struct {
	Position  Position
	Button    Button
	Modifiers key.Modifier
	Action    Action
	Timestamp time.Time
}

// GestureKind classifies a completed press and release.
type GestureKind uint8

const (
	GestureNone GestureKind = iota
	// GestureClick is a release close to where the press happened.
	GestureClick
	// GestureDrag is a release after the pointer travelled at least
	// Config.DragThreshold cells.
	GestureDrag
)

func (k GestureKind) String() string {
	switch k {
	case GestureClick:
		return "click"
	case GestureDrag:
		return "drag"
	default:
		return "none"
	}
}

// Gesture is reported when the button that started it is released.
type Gesture struct {
	Kind      GestureKind
	Button    Button
	Modifiers key.Modifier

	// Start is where the button went down, End where it came up.
	Start Position
	End   Position

	// Clicks counts consecutive clicks on the same cell: 1, 2 or 3. It
	// wraps to 1 after a triple click and is zero for drags.
	Clicks int
}

// Config holds gesture thresholds.
type Config struct {
	// ClickInterval is the longest gap between clicks of a double or
	// triple click.
	ClickInterval time.Duration

	// ClickDistance is how far apart consecutive clicks may land.
	ClickDistance int

	// DragThreshold is how far the pointer travels before a press becomes
	// a drag.
	DragThreshold int
}

// DefaultConfig returns the thresholds used by the terminal front-end.
func DefaultConfig() Config {
	return Config{
		ClickInterval: 400 * time.Millisecond,
		ClickDistance: 1,
		DragThreshold: 1,
	}
}

// press is the held button.
type press struct {
	button    Button
	modifiers key.Modifier
	start     Position
	moved     bool
}

// Handler turns pointer events into gestures. It is owned by the event
// loop and is not safe for concurrent use.
type Handler struct {
	config Config

	held *press

	lastClick Position
	lastAt    time.Time
	clicks    int
}

// NewHandler creates a handler.
func NewHandler(config Config) *Handler {
	return &Handler{config: config}
}

// Handle feeds one event. It returns the completed gesture and true when
// the event releases the button that started it.
func (h *Handler) Handle(ev Event) (Gesture, bool) {
	switch ev.Action {
	case ActionPress:
		if ev.Button == ButtonNone || ev.Button.IsScroll() {
			return Gesture{}, false
		}
		h.held = &press{button: ev.Button, modifiers: ev.Modifiers, start: ev.Position}
	case ActionDrag, ActionMove:
		if h.held != nil && h.held.start.Distance(ev.Position) >= h.config.DragThreshold {
			h.held.moved = true
		}
	case ActionRelease:
		if h.held == nil {
			return Gesture{}, false
		}
		p := h.held
		h.held = nil
		g := Gesture{
			Button:    p.button,
			Modifiers: p.modifiers,
			Start:     p.start,
			End:       ev.Position,
		}
		if p.moved || p.start.Distance(ev.Position) >= h.config.DragThreshold {
			g.Kind = GestureDrag
			h.clicks = 0
			return g, true
		}
		g.Kind = GestureClick
		g.Clicks = h.countClick(p.start, ev.Timestamp)
		return g, true
	}
	return Gesture{}, false
}

func (h *Handler) countClick(at Position, when time.Time) int {
	if when.IsZero() {
		when = time.Now()
	}
	gap := when.Sub(h.lastAt)
	if h.clicks == 0 || h.clicks == 3 || gap < 0 || gap > h.config.ClickInterval ||
		at.Distance(h.lastClick) > h.config.ClickDistance {
		h.clicks = 1
	} else {
		h.clicks++
	}
	h.lastClick = at
	h.lastAt = when
	return h.clicks
}

// Pressed returns where the held button went down.
func (h *Handler) Pressed() (Position, bool) {
	if h.held == nil {
		return Position{}, false
	}
	return h.held.start, true
}

// Dragging reports whether the held button has travelled past the drag
// threshold.
func (h *Handler) Dragging() bool {
	return h.held != nil && h.held.moved
}

// Reset forgets the held button and the click count.
func (h *Handler) Reset() {
	h.held = nil
	h.clicks = 0
}
