// Package script runs Lua scripts against a buffer.
//
// A Runtime owns a gopher-lua state with only the base, table, string and
// math libraries opened, and exposes one buffer as the global table buf.
// Positions are 0-based byte offsets, exactly as in the buffer package:
//
//	buf.insert(0, "hello")      -- insert text
//	buf.erase(0, 1)             -- remove bytes
//	buf.replace(0, 4, "HELLO")  -- erase and insert as one undo step
//	buf.cursor(2)               -- move the cursor, returns its position
//	buf.select(0, 5)            -- set the selection
//	local s, e = buf.selection()
//	buf.undo(); buf.redo()
//	buf.save("out.txt")
//
// Buffer errors are raised as Lua errors and surface from Run as Go errors.
package script
