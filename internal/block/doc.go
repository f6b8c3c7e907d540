// Package block defines the content unit of a block document.
//
// A Block carries an opaque markup payload, a loose type tag and a single
// boolean flag. The payload is never parsed: it is measured and sliced by
// character offset only, where a character is an extended grapheme cluster.
// Offsets handed to Slice and Split are clamped to the payload length, so a
// caret reported by a rendering layer can never split a combining sequence
// or produce a negative-length substring.
package block
