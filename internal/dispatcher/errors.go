package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrPanic indicates an intent panicked.
	ErrPanic = errors.New("dispatcher: intent panic")

	// ErrNoSurface indicates an intent needed caret or selection data but no
	// surface is attached.
	ErrNoSurface = errors.New("dispatcher: no surface attached")
)
