// Package script runs Lua scripts against a document.
//
// A Runtime wraps a gopher-lua state with only the base, table, string and
// math libraries and a global doc table bound to a document.Store:
//
//	local id = doc.reset()
//	doc.set(id, {content = "Hello world"})
//	local head, tail = doc.split(id, 5)
//	doc.promote(tail, 1, 6)
//	doc.reorder(1, doc.len())
//	for i, b in ipairs(doc.blocks()) do
//	    print(i, b.tag, b.flag, b.content)
//	end
//
// Block positions (doc.find, doc.reorder) are 1-based. Character offsets
// (doc.split, doc.promote) are caret positions counted in grapheme
// clusters from 0. Store errors are raised as Lua errors.
//
// Every run is bound to a context; WithTimeout adds a deadline. A run that
// outlives its context fails with ErrExecutionTimeout.
package script
