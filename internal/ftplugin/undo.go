package ftplugin

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/prooftype/internal/editor"
)

// UndoOp is the kind of restore an undo action performs.
type UndoOp int

const (
	// OpRestore sets an option back to its prior value.
	OpRestore UndoOp = iota

	// OpUnset removes an option that did not exist before activation.
	OpUnset
)

// String returns the operation name.
func (op UndoOp) String() string {
	switch op {
	case OpRestore:
		return "restore"
	case OpUnset:
		return "unset"
	default:
		return "unknown"
	}
}

// UndoAction reverses exactly one option write.
type UndoAction struct {
	// Op selects restore or unset.
	Op UndoOp

	// Key is the option name.
	Key string

	// Value is the prior value, meaningful only for OpRestore.
	Value any
}

// Invoke applies the action to a buffer's option store.
func (a UndoAction) Invoke(opts *editor.Options) {
	switch a.Op {
	case OpRestore:
		opts.Set(a.Key, a.Value)
	case OpUnset:
		opts.Unset(a.Key)
	}
}

// restoreAction builds the undo action for an option write, given the
// prior value reported by Options.Set.
func restoreAction(key string, prev any, existed bool) UndoAction {
	if existed {
		return UndoAction{Op: OpRestore, Key: key, Value: prev}
	}
	return UndoAction{Op: OpUnset, Key: key}
}

// UndoScript is an ordered sequence of undo actions. Actions are listed
// in apply order; Invoke replays them front to back, which restores
// pre-activation state because every touched option appears exactly once.
type UndoScript []UndoAction

// Invoke replays the script against a buffer's option store.
func (s UndoScript) Invoke(opts *editor.Options) {
	for _, a := range s {
		a.Invoke(opts)
	}
}

// Command serializes the script into the single JSON command the host
// invokes on filetype teardown. An empty script serializes to an empty
// array, a no-op.
func (s UndoScript) Command() (string, error) {
	cmd := "[]"
	for _, a := range s {
		entry := map[string]any{
			"op":  a.Op.String(),
			"key": a.Key,
		}
		if a.Op == OpRestore {
			entry["value"] = a.Value
		}
		var err error
		cmd, err = sjson.Set(cmd, "-1", entry)
		if err != nil {
			return "", fmt.Errorf("serializing undo command: %w", err)
		}
	}
	return cmd, nil
}

// ParseCommand decodes a serialized undo command back into a script.
// Used by hosts that persist the command across the activation record's
// lifetime rather than holding the record itself.
func ParseCommand(cmd string) (UndoScript, error) {
	if !gjson.Valid(cmd) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrBadUndoCommand)
	}
	parsed := gjson.Parse(cmd)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("%w: expected array", ErrBadUndoCommand)
	}

	var script UndoScript
	var parseErr error
	parsed.ForEach(func(_, entry gjson.Result) bool {
		key := entry.Get("key").String()
		if key == "" {
			parseErr = fmt.Errorf("%w: action without key", ErrBadUndoCommand)
			return false
		}
		switch op := entry.Get("op").String(); op {
		case "restore":
			script = append(script, UndoAction{
				Op:    OpRestore,
				Key:   key,
				Value: entry.Get("value").Value(),
			})
		case "unset":
			script = append(script, UndoAction{Op: OpUnset, Key: key})
		default:
			parseErr = fmt.Errorf("%w: unknown op %q", ErrBadUndoCommand, op)
			return false
		}
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return script, nil
}
