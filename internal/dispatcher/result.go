package dispatcher

import (
	"github.com/dshills/blockstorm/internal/document"
	"github.com/dshills/blockstorm/internal/focus"
)

// Intent names what an input event was interpreted as.
type Intent string

// Intents.
const (
	IntentKeyDown    Intent = "key-down"
	IntentKeyUp      Intent = "key-up"
	IntentNewLine    Intent = "new-line"
	IntentDelete     Intent = "delete-at-boundary"
	IntentBackup     Intent = "command-backup"
	IntentSelectOpen Intent = "select-open"
	IntentSelectTag  Intent = "select-tag"
	IntentActionOpen Intent = "action-open"
	IntentPromote    Intent = "promote"
	IntentReorder    Intent = "reorder"
	IntentInput      Intent = "input"
	IntentPaste      Intent = "paste"
	IntentClick      Intent = "click"
	IntentImport     Intent = "import"
)

// Status indicates the outcome of an intent.
type Status uint8

const (
	// StatusOK indicates the intent took effect.
	StatusOK Status = iota
	// StatusNoOp indicates the intent had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of one input event.
type Result struct {
	// Intent is what the event was interpreted as.
	Intent Intent

	// Status indicates the result status.
	Status Status

	// Snapshot is the document after the intent ran.
	Snapshot *document.Snapshot

	// Focus is the caret placement queued for the next turn, if any.
	Focus *focus.Request

	// Err contains any error that occurred.
	Err error

	handled bool
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Handled returns true when the rendering layer must suppress its own
// default handling of the event.
func (r Result) Handled() bool {
	return r.handled
}

func ok(intent Intent, snap *document.Snapshot) Result {
	return Result{Intent: intent, Status: StatusOK, Snapshot: snap}
}

func noOp(intent Intent, snap *document.Snapshot) Result {
	return Result{Intent: intent, Status: StatusNoOp, Snapshot: snap}
}

func failed(intent Intent, snap *document.Snapshot, err error) Result {
	return Result{Intent: intent, Status: StatusError, Snapshot: snap, Err: err}
}

// changed reports ok when the store committed a new revision.
func changed(intent Intent, before, after *document.Snapshot) Result {
	if after.Revision() == before.Revision() {
		return noOp(intent, after)
	}
	return ok(intent, after)
}

func (r Result) withFocus(req focus.Request) Result {
	r.Focus = &req
	return r
}

func (r Result) consumed() Result {
	r.handled = true
	return r
}
