package menu

import "fmt"

// Position is a screen coordinate reported by the rendering layer.
type Position struct {
	X, Y float64
}

// String returns the position as "(x, y)".
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// SelectionAnchor returns the action menu anchor for a text selection:
// horizontally between the start and end carets, vertically at the end.
func SelectionAnchor(start, end Position) Position {
	return Position{
		X: start.X + (end.X-start.X)/2,
		Y: end.Y,
	}
}

// State identifies whether a menu is open.
type State uint8

const (
	// StateClosed means the menu is not shown.
	StateClosed State = iota
	// StateOpen means the menu is shown at its anchor.
	StateOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// View is what a rendering layer needs to draw a menu.
type View struct {
	Open   bool
	Anchor Position
}
