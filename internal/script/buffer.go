package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textcore/internal/engine/buffer"
)

// bufferModule implements the buf API table.
type bufferModule struct {
	buf *buffer.Buffer
}

func newBufferModule(buf *buffer.Buffer) *bufferModule {
	return &bufferModule{buf: buf}
}

// register installs the module as the global buf.
func (m *bufferModule) register(L *lua.LState) {
	mod := L.NewTable()

	// Edits
	L.SetField(mod, "insert", L.NewFunction(m.insert))
	L.SetField(mod, "erase", L.NewFunction(m.erase))
	L.SetField(mod, "replace", L.NewFunction(m.replace))

	// Selection
	L.SetField(mod, "cursor", L.NewFunction(m.cursor))
	L.SetField(mod, "select", L.NewFunction(m.selectRange))
	L.SetField(mod, "selection", L.NewFunction(m.selection))

	// Queries
	L.SetField(mod, "at", L.NewFunction(m.at))
	L.SetField(mod, "substr", L.NewFunction(m.substr))
	L.SetField(mod, "len", L.NewFunction(m.bufLen))
	L.SetField(mod, "text", L.NewFunction(m.text))

	// History
	L.SetField(mod, "undo", L.NewFunction(m.undo))
	L.SetField(mod, "redo", L.NewFunction(m.redo))
	L.SetField(mod, "can_undo", L.NewFunction(m.canUndo))
	L.SetField(mod, "can_redo", L.NewFunction(m.canRedo))
	L.SetField(mod, "modified", L.NewFunction(m.modified))
	L.SetField(mod, "set_modified", L.NewFunction(m.setModified))

	// Files
	L.SetField(mod, "load", L.NewFunction(m.load))
	L.SetField(mod, "save", L.NewFunction(m.save))
	L.SetField(mod, "path", L.NewFunction(m.path))

	L.SetGlobal("buf", mod)
}

func checkOffset(L *lua.LState, n int) buffer.ByteOffset {
	return buffer.ByteOffset(L.CheckInt64(n))
}

// insert(pos, text)
func (m *bufferModule) insert(L *lua.LState) int {
	pos := checkOffset(L, 1)
	text := L.CheckString(2)

	if err := m.buf.Insert(pos, text); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

// erase(pos, n)
func (m *bufferModule) erase(L *lua.LState) int {
	pos := checkOffset(L, 1)
	n := checkOffset(L, 2)

	if err := m.buf.Erase(pos, n); err != nil {
		L.RaiseError("erase: %v", err)
	}
	return 0
}

// replace(pos, n, text)
func (m *bufferModule) replace(L *lua.LState) int {
	pos := checkOffset(L, 1)
	n := checkOffset(L, 2)
	text := L.CheckString(3)

	if err := m.buf.Replace(pos, n, text); err != nil {
		L.RaiseError("replace: %v", err)
	}
	return 0
}

// cursor([pos]) -> number
// With an argument, collapses the selection to pos first.
func (m *bufferModule) cursor(L *lua.LState) int {
	if L.GetTop() >= 1 {
		m.buf.SetCursor(checkOffset(L, 1))
	}
	L.Push(lua.LNumber(m.buf.Selection().Cursor()))
	return 1
}

// select(start, end)
func (m *bufferModule) selectRange(L *lua.LState) int {
	m.buf.SetSelection(checkOffset(L, 1), checkOffset(L, 2))
	return 0
}

// selection() -> start, end
// Returned in the order they were set, not sorted.
func (m *bufferModule) selection(L *lua.LState) int {
	sel := m.buf.Selection()
	L.Push(lua.LNumber(sel.Start))
	L.Push(lua.LNumber(sel.End))
	return 2
}

// at(pos) -> string
// Returns the single byte at pos.
func (m *bufferModule) at(L *lua.LState) int {
	c, err := m.buf.At(checkOffset(L, 1))
	if err != nil {
		L.RaiseError("at: %v", err)
		return 0
	}
	L.Push(lua.LString([]byte{c}))
	return 1
}

// substr(pos, n) -> string
func (m *bufferModule) substr(L *lua.LState) int {
	L.Push(lua.LString(m.buf.Substr(checkOffset(L, 1), checkOffset(L, 2))))
	return 1
}

// len() -> number
func (m *bufferModule) bufLen(L *lua.LState) int {
	L.Push(lua.LNumber(m.buf.Len()))
	return 1
}

// text() -> string
func (m *bufferModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.buf.Text()))
	return 1
}

// undo()
func (m *bufferModule) undo(L *lua.LState) int {
	if err := m.buf.Undo(); err != nil {
		L.RaiseError("undo: %v", err)
	}
	return 0
}

// redo()
func (m *bufferModule) redo(L *lua.LState) int {
	if err := m.buf.Redo(); err != nil {
		L.RaiseError("redo: %v", err)
	}
	return 0
}

// can_undo() -> boolean
func (m *bufferModule) canUndo(L *lua.LState) int {
	L.Push(lua.LBool(m.buf.CanUndo()))
	return 1
}

// can_redo() -> boolean
func (m *bufferModule) canRedo(L *lua.LState) int {
	L.Push(lua.LBool(m.buf.CanRedo()))
	return 1
}

// modified() -> boolean
func (m *bufferModule) modified(L *lua.LState) int {
	L.Push(lua.LBool(m.buf.IsModified()))
	return 1
}

// set_modified(flag)
func (m *bufferModule) setModified(L *lua.LState) int {
	m.buf.SetModified(L.CheckBool(1))
	return 0
}

// load(path)
func (m *bufferModule) load(L *lua.LState) int {
	if err := m.buf.LoadFromFile(L.CheckString(1)); err != nil {
		L.RaiseError("load: %v", err)
	}
	return 0
}

// save([path])
// Without a path, saves to the path of the last load or save.
func (m *bufferModule) save(L *lua.LState) int {
	path := L.OptString(1, m.buf.Path())
	if path == "" {
		L.RaiseError("save: no path")
		return 0
	}
	if err := m.buf.SaveToFile(path); err != nil {
		L.RaiseError("save: %v", err)
	}
	return 0
}

// path() -> string
func (m *bufferModule) path(L *lua.LState) int {
	L.Push(lua.LString(m.buf.Path()))
	return 1
}
