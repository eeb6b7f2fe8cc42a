package ftplugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/dshills/prooftype/internal/editor"
	"github.com/dshills/prooftype/internal/ftplugin/def"
)

// EventType is the type of activation event.
type EventType int

const (
	// EventActivated is emitted when a buffer's configuration is applied.
	EventActivated EventType = iota

	// EventDeactivated is emitted after a buffer's undo script ran.
	EventDeactivated
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventActivated:
		return "activated"
	case EventDeactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// Event reports one activation lifecycle change.
type Event struct {
	Type     EventType
	Buffer   int
	Filetype string
	RecordID string
}

// EventHandler handles activation events. Handlers must be non-blocking
// and should not call back into the Registry. Panics are recovered.
type EventHandler func(event Event)

// Registry owns per-buffer activation records with create-on-first-use
// semantics. Definitions come from the def registry; capabilities come
// from the host, one snapshot per activation.
type Registry struct {
	mu sync.RWMutex

	defs     *def.Registry
	records  map[int]*ActivationRecord
	handlers []EventHandler
}

// NewRegistry creates an activation registry over the given definitions.
func NewRegistry(defs *def.Registry) *Registry {
	return &Registry{
		defs:    defs,
		records: make(map[int]*ActivationRecord),
	}
}

// OnEvent registers an activation event handler.
func (reg *Registry) OnEvent(h EventHandler) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.handlers = append(reg.handlers, h)
}

// Activate applies the buffer's filetype configuration and returns the
// activation record.
//
// Activation is idempotent: if the buffer already holds an activated
// record, that record is returned unchanged, with no option writes and
// no new undo actions. Capability-gated groups degrade silently; the
// only errors are a missing filetype or a filetype with no definition.
func (reg *Registry) Activate(buf *editor.Buffer, caps Snapshot) (*ActivationRecord, error) {
	ftName := buf.Filetype()
	if ftName == "" {
		return nil, ErrNoFiletype
	}

	reg.mu.Lock()
	if rec, ok := reg.records[buf.ID()]; ok && rec.Activated() {
		reg.mu.Unlock()
		log.Debug().
			Int("buffer", buf.ID()).
			Str("filetype", rec.Filetype()).
			Msg("buffer already activated")
		return rec, nil
	}

	ft, err := reg.defs.Lookup(ftName)
	if err != nil {
		reg.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownFiletype, ftName)
	}

	rec := newRecord(buf.ID(), ftName)
	applyGroups(buf, ft, caps, rec)
	rec.activated = true
	reg.records[buf.ID()] = rec
	reg.mu.Unlock()

	log.Debug().
		Int("buffer", buf.ID()).
		Str("filetype", ftName).
		Int("options", rec.UndoLen()).
		Msg("filetype activated")

	reg.emit(Event{
		Type:     EventActivated,
		Buffer:   buf.ID(),
		Filetype: ftName,
		RecordID: rec.ID(),
	})
	return rec, nil
}

// Deactivate replays the buffer's undo script in order and discards its
// record, restoring pre-activation option state. The host calls this on
// filetype change or buffer teardown.
func (reg *Registry) Deactivate(buf *editor.Buffer) error {
	reg.mu.Lock()
	rec, ok := reg.records[buf.ID()]
	if !ok {
		reg.mu.Unlock()
		return fmt.Errorf("%w: buffer %d", ErrNotActivated, buf.ID())
	}
	delete(reg.records, buf.ID())
	reg.mu.Unlock()

	rec.undo.Invoke(buf.Options())

	log.Debug().
		Int("buffer", buf.ID()).
		Str("filetype", rec.Filetype()).
		Msg("filetype deactivated")

	reg.emit(Event{
		Type:     EventDeactivated,
		Buffer:   buf.ID(),
		Filetype: rec.Filetype(),
		RecordID: rec.ID(),
	})
	return nil
}

// Record returns the activation record for a buffer, if any.
func (reg *Registry) Record(bufferID int) (*ActivationRecord, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	rec, ok := reg.records[bufferID]
	return rec, ok
}

// UndoCommand returns the serialized undo command for a buffer. This is
// the well-known per-buffer retrieval the host uses on teardown when it
// holds commands rather than records.
func (reg *Registry) UndoCommand(bufferID int) (string, error) {
	reg.mu.RLock()
	rec, ok := reg.records[bufferID]
	reg.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: buffer %d", ErrNotActivated, bufferID)
	}
	return rec.UndoCommand()
}

// Buffers returns the ids of all activated buffers in ascending order.
func (reg *Registry) Buffers() []int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	ids := make([]int, 0, len(reg.records))
	for id := range reg.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// emit notifies all handlers, recovering panics so one bad handler
// cannot break activation.
func (reg *Registry) emit(event Event) {
	reg.mu.RLock()
	handlers := make([]EventHandler, len(reg.handlers))
	copy(handlers, reg.handlers)
	reg.mu.RUnlock()

	for _, h := range handlers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Error().Interface("panic", r).Msg("activation event handler panicked")
				}
			}()
			h(event)
		}()
	}
}
