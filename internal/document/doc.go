// Package document implements the block document store.
//
// The Store owns the ordered block sequence and is its only mutator. Every
// operation is synchronous and replaces the current Snapshot with a new one;
// snapshots are immutable, so a rendering layer may hold on to any snapshot
// it has been handed. Blocks untouched by an operation are carried over
// unchanged.
//
// # Operations
//
//   - Initialize: one empty paragraph block
//   - Append: add external blocks at the end
//   - ReplaceField: patch content, tag or flag of one block
//   - SplitAt: the new-line algorithm
//   - MergeAt: the backspace-at-boundary algorithm
//   - PromoteSelection: turn a substring into its own flagged block
//   - Reorder: move one block to another index
//
// # Guards and errors
//
// Removing the sole remaining block and reordering with an invalid index are
// guards: they return the unchanged snapshot without error. Referencing an
// unknown block id returns the unchanged snapshot together with
// ErrBlockNotFound. Character offsets are clamped, never rejected.
//
// # Subscriptions
//
// Observers registered with Subscribe are called synchronously, in
// registration order, after each committed mutation:
//
//	sub := store.Subscribe(func(snap *document.Snapshot) {
//	    view.Render(snap)
//	})
//	defer sub.Unsubscribe()
package document
