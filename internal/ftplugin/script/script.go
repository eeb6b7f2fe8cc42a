// Package script loads filetype definitions written as Lua chunks.
//
// A definition chunk returns a single table:
//
//	return {
//	    name = "easycrypt",
//	    extensions = { ".ec", ".eca" },
//	    comments = { template = "(* %s *)", table = "sr:(*,mb:*,ex:*)" },
//	    match = { { start = "theory", ["end"] = "end" } },
//	    prover = "easycrypt",
//	}
//
// Chunks run in a state with the Lua stdlib closed; definitions are
// declarative and need nothing beyond table construction.
package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/prooftype/internal/ftplugin/def"
)

// Script loading errors.
var (
	// ErrNotATable is returned when a chunk does not return a table.
	ErrNotATable = errors.New("definition chunk must return a table")
)

// Load reads a filetype definition from a Lua file.
func Load(path string) (*def.Filetype, error) {
	L := newState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		return nil, fmt.Errorf("definition %s: %w", path, err)
	}
	ft, err := fromReturn(L)
	if err != nil {
		return nil, fmt.Errorf("definition %s: %w", path, err)
	}
	return ft, nil
}

// LoadString reads a filetype definition from Lua source.
func LoadString(src string) (*def.Filetype, error) {
	L := newState()
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("definition chunk: %w", err)
	}
	return fromReturn(L)
}

// newState creates a Lua state with the stdlib closed.
func newState() *lua.LState {
	return lua.NewState(lua.Options{SkipOpenLibs: true})
}

// fromReturn converts the chunk's return value into a definition.
func fromReturn(L *lua.LState) (*def.Filetype, error) {
	ret := L.Get(-1)
	L.Pop(1)

	t, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w, got %s", ErrNotATable, ret.Type())
	}

	ft := &def.Filetype{
		Name:       tableString(t, "name"),
		Extensions: tableStrings(t, "extensions"),
		Prover:     tableString(t, "prover"),
	}

	if c, ok := tableTable(t, "comments"); ok {
		ft.Comments = &def.CommentStyle{
			Line:          tableString(c, "line"),
			Start:         tableString(c, "start"),
			End:           tableString(c, "end"),
			Template:      tableString(c, "template"),
			Table:         tableString(c, "table"),
			FormatOptions: tableString(c, "formatOptions"),
		}
	}
	if inc, ok := tableTable(t, "include"); ok {
		ft.Include = &def.IncludeStyle{
			Pattern:  tableString(inc, "pattern"),
			Expr:     tableString(inc, "expr"),
			Suffixes: tableStrings(inc, "suffixes"),
		}
	}
	if tags, ok := tableTable(t, "tags"); ok {
		ft.Tags = &def.TagStyle{
			Func: tableString(tags, "func"),
		}
	}
	if match, ok := tableTable(t, "match"); ok {
		forEachEntry(match, func(entry *lua.LTable) {
			ft.Match = append(ft.Match, def.MatchWord{
				Start: tableString(entry, "start"),
				Mid:   tableString(entry, "mid"),
				End:   tableString(entry, "end"),
			})
		})
	}
	if ac, ok := tableTable(t, "autoClose"); ok {
		forEachEntry(ac, func(entry *lua.LTable) {
			ft.AutoClose = append(ft.AutoClose, def.CloseWord{
				Start: tableString(entry, "start"),
				End:   tableString(entry, "end"),
			})
		})
	}

	if err := ft.Validate(); err != nil {
		return nil, err
	}
	return ft, nil
}

// tableString reads a string field, "" when absent or not a string.
func tableString(t *lua.LTable, key string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// tableStrings reads an array field of strings, skipping non-strings.
func tableStrings(t *lua.LTable, key string) []string {
	arr, ok := t.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}

	var result []string
	for i := 1; i <= arr.Len(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			result = append(result, string(s))
		}
	}
	return result
}

// tableTable reads a table field.
func tableTable(t *lua.LTable, key string) (*lua.LTable, bool) {
	sub, ok := t.RawGetString(key).(*lua.LTable)
	return sub, ok
}

// forEachEntry calls fn for each table element of an array table.
func forEachEntry(t *lua.LTable, fn func(entry *lua.LTable)) {
	for i := 1; i <= t.Len(); i++ {
		if entry, ok := t.RawGetInt(i).(*lua.LTable); ok {
			fn(entry)
		}
	}
}
