// Package mouse turns raw pointer events into click and drag gestures.
//
// A Handler follows the held button and reports a Gesture when it is
// released. The terminal front-end maps a drag that starts on a block's
// handle column to a reorder of (source row, destination row), and uses
// the click count of a click gesture to select a word or a whole block.
//
//	h := mouse.NewHandler(mouse.DefaultConfig())
//	if g, ok := h.Handle(ev); ok && g.Kind == mouse.GestureDrag {
//	    // g.Start, g.End
//	}
package mouse
