// Package key models keyboard events delivered to the block editor.
//
// An Event carries the key, the character for rune keys, held modifiers and
// whether an input method composition is in progress. Modifier keys pressed
// on their own are events too (KeyShift, KeyCtrl, ...), because the editor
// distinguishes a plain Enter from one that directly follows Shift.
//
//	ev := key.NewSpecialEvent(key.KeyEnter, key.ModNone)
//	ev.Name()            // "Enter"
//	key.NewRuneEvent('/').Name() // "/"
package key
