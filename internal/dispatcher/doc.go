// Package dispatcher interprets editing events as block mutations.
//
// The rendering layer forwards raw events (key presses, mouse-ups, clicks,
// drag results, menu choices) to a Dispatcher. Each event becomes one
// intent: at most one call on the document.Store and at most one focus
// request, which is queued on the turn queue so it is applied after the
// new snapshot has been rendered.
//
// # Intents
//
//   - new-line: Enter that is not composing, not preceded by the soft-break
//     key and not typed while the type-select menu is open splits the block
//     at the caret and focuses the next block.
//   - delete-at-boundary: Backspace in an empty line removes the block and
//     focuses the end of the previous one. The sole block is never removed.
//   - command-backup, select-open, select-tag: the command key saves the
//     content on key-down and opens the type-select menu on key-up; choosing
//     a tag restores the saved content with the new tag.
//   - action-open, promote: a mouse-up leaving a selection opens the action
//     menu; promote turns the selection into its own flagged block.
//   - reorder: a completed drag with a destination moves one block.
//   - input, paste, import, click: content edits, plain-text paste, appended
//     blocks and document-wide clicks that dismiss open menus.
//
// # Menus
//
// Each block owns a SelectMenu and an ActionMenu from package menu. Every
// open menu holds exactly one listener in the shared menu.Listeners
// registry. When a block leaves the document its menus are closed, so the
// registry never holds a listener for a block that no longer exists.
//
// # Results
//
// Every entry point returns a Result carrying the intent, a status (ok,
// no-op or error), the resulting snapshot and the queued focus request.
// Panics inside an intent are recovered into ErrPanic results when
// Config.RecoverFromPanic is set. When Metrics are attached, every intent
// is counted and timed.
package dispatcher
