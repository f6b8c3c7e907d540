package script

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blockstorm/internal/block"
	"github.com/dshills/blockstorm/internal/document"
)

// docModule implements the global doc table. Block positions are 1-based
// like Lua arrays; character offsets are caret positions from 0 to the
// block length.
type docModule struct {
	store *document.Store
}

func newDocModule(store *document.Store) *docModule {
	return &docModule{store: store}
}

func (m *docModule) funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"blocks":  m.blocks,
		"len":     m.length,
		"text":    m.text,
		"find":    m.find,
		"reset":   m.reset,
		"append":  m.appendBlock,
		"set":     m.set,
		"split":   m.split,
		"merge":   m.merge,
		"promote": m.promote,
		"reorder": m.reorder,
	}
}

// blockTable converts a block to {id=, content=, tag=, flag=}.
func blockTable(L *lua.LState, b block.Block) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(b.ID))
	t.RawSetString("content", lua.LString(b.Content))
	t.RawSetString("tag", lua.LString(b.Tag))
	t.RawSetString("flag", lua.LBool(b.Flag))
	return t
}

// doc.blocks() -> {block, ...}
func (m *docModule) blocks(L *lua.LState) int {
	list := L.NewTable()
	for _, b := range m.store.Snapshot().Blocks() {
		list.Append(blockTable(L, b))
	}
	L.Push(list)
	return 1
}

// doc.len() -> n
func (m *docModule) length(L *lua.LState) int {
	L.Push(lua.LNumber(m.store.Snapshot().Len()))
	return 1
}

// doc.text() -> the concatenated content
func (m *docModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.store.Snapshot().Text()))
	return 1
}

// doc.find(id) -> block, index | nil
func (m *docModule) find(L *lua.LState) int {
	id := block.ID(L.CheckString(1))
	snap := m.store.Snapshot()
	b, ok := snap.Find(id)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(blockTable(L, b))
	L.Push(lua.LNumber(snap.IndexOf(id) + 1))
	return 2
}

// doc.reset() -> id of the single empty block
func (m *docModule) reset(L *lua.LState) int {
	snap := m.store.Initialize()
	L.Push(lua.LString(snap.At(0).ID))
	return 1
}

// doc.append(content [, tag]) -> id
func (m *docModule) appendBlock(L *lua.LState) int {
	content := L.CheckString(1)
	tag := block.Tag(L.OptString(2, ""))
	snap := m.store.Append(block.Block{Content: content, Tag: tag})
	L.Push(lua.LString(snap.At(snap.Len() - 1).ID))
	return 1
}

// doc.set(id, {content=, tag=, flag=})
func (m *docModule) set(L *lua.LState) int {
	id := block.ID(L.CheckString(1))
	fields := L.CheckTable(2)

	var patch document.Patch
	if v := fields.RawGetString("content"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			L.ArgError(2, "content must be a string")
		}
		patch = patch.WithContent(string(s))
	}
	if v := fields.RawGetString("tag"); v != lua.LNil {
		s, ok := v.(lua.LString)
		if !ok {
			L.ArgError(2, "tag must be a string")
		}
		patch = patch.WithTag(block.Tag(s))
	}
	if v := fields.RawGetString("flag"); v != lua.LNil {
		patch = patch.WithFlag(lua.LVAsBool(v))
	}
	if _, err := m.store.ReplaceField(id, patch); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// doc.split(id, pos [, flag]) -> id before, id after
func (m *docModule) split(L *lua.LState) int {
	id := block.ID(L.CheckString(1))
	pos := L.CheckInt(2)
	before := m.store.Snapshot()
	b, ok := before.Find(id)
	if !ok {
		L.RaiseError("%v", notFound(id))
	}
	flag := b.Flag
	if L.GetTop() >= 3 {
		flag = L.CheckBool(3)
	}
	i := before.IndexOf(id)
	snap, err := m.store.SplitAt(id, pos, b.Content, flag)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LString(snap.At(i).ID))
	L.Push(lua.LString(snap.At(i + 1).ID))
	return 2
}

// doc.merge(id) -> removed
func (m *docModule) merge(L *lua.LState) int {
	id := block.ID(L.CheckString(1))
	before := m.store.Snapshot()
	snap, err := m.store.MergeAt(id)
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LBool(snap.Revision() != before.Revision()))
	return 1
}

// doc.promote(id, start, stop) -> id of the flagged block
func (m *docModule) promote(L *lua.LState) int {
	id := block.ID(L.CheckString(1))
	start := L.CheckInt(2)
	stop := L.CheckInt(3)
	before := m.store.Snapshot()
	b, ok := before.Find(id)
	if !ok {
		L.RaiseError("%v", notFound(id))
	}
	i := before.IndexOf(id)
	snap, err := m.store.PromoteSelection(id, b.Content, start, stop)
	if err != nil {
		L.RaiseError("%v", err)
	}
	for j := i; j < snap.Len(); j++ {
		if nb := snap.At(j); nb.Flag {
			L.Push(lua.LString(nb.ID))
			return 1
		}
	}
	L.Push(lua.LNil)
	return 1
}

// doc.reorder(from, to) -> moved
func (m *docModule) reorder(L *lua.LState) int {
	from := L.CheckInt(1)
	to := L.CheckInt(2)
	before := m.store.Snapshot()
	snap := m.store.Reorder(from-1, to-1)
	L.Push(lua.LBool(snap.Revision() != before.Revision()))
	return 1
}

func notFound(id block.ID) error {
	return fmt.Errorf("%w: %s", document.ErrBlockNotFound, id)
}
