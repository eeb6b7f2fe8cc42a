package ftplugin

import "github.com/google/uuid"

// ActivationRecord tracks one buffer's applied filetype configuration.
//
// A record is created when a buffer is first activated and discarded
// when the host deactivates the buffer. The activated flag transitions
// false to true exactly once; the registry short-circuits any further
// activation of the same buffer.
type ActivationRecord struct {
	id        string
	bufferID  int
	filetype  string
	activated bool
	undo      UndoScript
	groups    []Group
}

// newRecord creates the record for a fresh activation.
func newRecord(bufferID int, filetype string) *ActivationRecord {
	return &ActivationRecord{
		id:       uuid.NewString(),
		bufferID: bufferID,
		filetype: filetype,
	}
}

// ID returns the record's unique identifier.
func (r *ActivationRecord) ID() string {
	return r.id
}

// BufferID returns the buffer this record belongs to.
func (r *ActivationRecord) BufferID() int {
	return r.bufferID
}

// Filetype returns the filetype this record was activated for.
func (r *ActivationRecord) Filetype() string {
	return r.filetype
}

// Activated reports whether activation has completed for this record.
func (r *ActivationRecord) Activated() bool {
	return r.activated
}

// Undo returns a copy of the undo script in apply order.
func (r *ActivationRecord) Undo() UndoScript {
	script := make(UndoScript, len(r.undo))
	copy(script, r.undo)
	return script
}

// UndoLen returns the number of recorded undo actions.
func (r *ActivationRecord) UndoLen() int {
	return len(r.undo)
}

// UndoCommand returns the serialized undo command the host invokes on
// filetype teardown.
func (r *ActivationRecord) UndoCommand() (string, error) {
	return r.undo.Command()
}

// Groups returns the option groups that were actually applied, in apply
// order. Groups skipped for a missing capability are absent.
func (r *ActivationRecord) Groups() []Group {
	groups := make([]Group, len(r.groups))
	copy(groups, r.groups)
	return groups
}

// pushUndo appends the undo action for one option write.
func (r *ActivationRecord) pushUndo(a UndoAction) {
	r.undo = append(r.undo, a)
}

// markGroup records that a group was applied.
func (r *ActivationRecord) markGroup(g Group) {
	r.groups = append(r.groups, g)
}
