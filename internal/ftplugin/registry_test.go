package ftplugin

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/prooftype/internal/editor"
	"github.com/dshills/prooftype/internal/ftplugin/def"
)

func newTestRegistry() *Registry {
	return NewRegistry(def.NewRegistryWithBuiltins())
}

func newECBuffer(id int) *editor.Buffer {
	buf := editor.NewBuffer(id, "Lemma.ec")
	buf.SetFiletype("easycrypt")
	return buf
}

func allCaps() Snapshot {
	return NewSnapshot(AllCapabilities()...)
}

func TestActivate_AppliesAllGroups(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	rec, err := reg.Activate(buf, allCaps())
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !rec.Activated() {
		t.Error("record not marked activated")
	}

	wantGroups := []Group{
		GroupComments, GroupIncludes, GroupTags,
		GroupMatching, GroupAutoClose, GroupProver,
	}
	if !reflect.DeepEqual(rec.Groups(), wantGroups) {
		t.Errorf("Groups = %v, want %v", rec.Groups(), wantGroups)
	}

	opts := buf.Options()
	for _, key := range []string{
		OptCommentString, OptComments, OptFormatOptions,
		OptInclude, OptSuffixesAdd, OptTagFunc,
		OptMatchWords, OptCloseWords, OptProverBackend,
	} {
		if !opts.Has(key) {
			t.Errorf("option %q not applied", key)
		}
	}
	if rec.UndoLen() != opts.Len() {
		t.Errorf("undo len = %d, options set = %d", rec.UndoLen(), opts.Len())
	}
}

func TestActivate_Idempotent(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	first, err := reg.Activate(buf, allCaps())
	if err != nil {
		t.Fatalf("first Activate failed: %v", err)
	}
	optionsAfterFirst := buf.Options().Snapshot()

	second, err := reg.Activate(buf, allCaps())
	if err != nil {
		t.Fatalf("second Activate failed: %v", err)
	}

	if second != first {
		t.Error("second Activate returned a different record")
	}
	if second.UndoLen() != first.UndoLen() {
		t.Errorf("undo len changed: %d -> %d", first.UndoLen(), second.UndoLen())
	}
	if !reflect.DeepEqual(buf.Options().Snapshot(), optionsAfterFirst) {
		t.Error("second Activate changed option state")
	}
}

func TestActivate_RoundTripRestoresOptions(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	// Pre-existing state: one option the activation overwrites, one it
	// never touches.
	buf.Options().Set(OptFormatOptions, "tcq")
	buf.Options().Set("textwidth", 80)

	if _, err := reg.Activate(buf, allCaps()); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := reg.Deactivate(buf); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	want := map[string]any{
		OptFormatOptions: "tcq",
		"textwidth":      80,
	}
	if got := buf.Options().Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("options after round trip = %v, want %v", got, want)
	}
}

func TestActivate_UndoOrderMatchesApplyOrder(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	rec, err := reg.Activate(buf, allCaps())
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	wantKeys := []string{
		OptCommentString, OptComments, OptFormatOptions,
		OptInclude, OptSuffixesAdd, OptTagFunc,
		OptMatchWords, OptCloseWords, OptProverBackend,
	}
	undo := rec.Undo()
	if len(undo) != len(wantKeys) {
		t.Fatalf("undo len = %d, want %d", len(undo), len(wantKeys))
	}
	for i, key := range wantKeys {
		if undo[i].Key != key {
			t.Errorf("undo[%d].Key = %q, want %q", i, undo[i].Key, key)
		}
	}
}

func TestActivate_CapabilityIndependence(t *testing.T) {
	groupOptions := map[Capability][]string{
		CapComments:      {OptCommentString, OptComments, OptFormatOptions},
		CapIncludeSearch: {OptInclude, OptSuffixesAdd},
		CapTagFunc:       {OptTagFunc},
		CapMatchPairs:    {OptMatchWords},
		CapAutoClose:     {OptCloseWords},
		CapProver:        {OptProverBackend},
	}

	for dropped, droppedOpts := range groupOptions {
		var caps []Capability
		for _, c := range AllCapabilities() {
			if c != dropped {
				caps = append(caps, c)
			}
		}

		reg := newTestRegistry()
		buf := newECBuffer(1)
		rec, err := reg.Activate(buf, NewSnapshot(caps...))
		if err != nil {
			t.Fatalf("Activate without %s failed: %v", dropped, err)
		}

		for _, key := range droppedOpts {
			if buf.Options().Has(key) {
				t.Errorf("without %s, option %q should be absent", dropped, key)
			}
		}
		wantLen := 0
		for c, keys := range groupOptions {
			if c != dropped {
				wantLen += len(keys)
			}
		}
		if buf.Options().Len() != wantLen {
			t.Errorf("without %s, options set = %d, want %d", dropped, buf.Options().Len(), wantLen)
		}
		if rec.UndoLen() != wantLen {
			t.Errorf("without %s, undo len = %d, want %d", dropped, rec.UndoLen(), wantLen)
		}
	}
}

func TestActivate_CommentsAndMatchingScenario(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	rec, err := reg.Activate(buf, NewSnapshot(CapComments, CapMatchPairs))
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	wantKeys := []string{OptComments, OptCommentString, OptFormatOptions, OptMatchWords}
	if got := buf.Options().Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("options = %v, want %v", got, wantKeys)
	}
	if rec.UndoLen() != 4 {
		t.Errorf("undo len = %d, want 4", rec.UndoLen())
	}
	wantGroups := []Group{GroupComments, GroupMatching}
	if !reflect.DeepEqual(rec.Groups(), wantGroups) {
		t.Errorf("Groups = %v, want %v", rec.Groups(), wantGroups)
	}
}

func TestActivate_EmptySnapshot(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	rec, err := reg.Activate(buf, Snapshot{})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	if buf.Options().Len() != 0 {
		t.Errorf("options set = %d, want 0", buf.Options().Len())
	}
	if rec.UndoLen() != 0 {
		t.Errorf("undo len = %d, want 0", rec.UndoLen())
	}
	cmd, err := rec.UndoCommand()
	if err != nil {
		t.Fatalf("UndoCommand failed: %v", err)
	}
	if cmd != "[]" {
		t.Errorf("undo command = %q, want '[]'", cmd)
	}
}

func TestActivate_Errors(t *testing.T) {
	reg := newTestRegistry()

	noFT := editor.NewBuffer(1, "scratch")
	if _, err := reg.Activate(noFT, allCaps()); !errors.Is(err, ErrNoFiletype) {
		t.Errorf("err = %v, want ErrNoFiletype", err)
	}

	unknown := editor.NewBuffer(2, "proof.v")
	unknown.SetFiletype("coq")
	if _, err := reg.Activate(unknown, allCaps()); !errors.Is(err, ErrUnknownFiletype) {
		t.Errorf("err = %v, want ErrUnknownFiletype", err)
	}
}

func TestDeactivate_NotActivated(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	if err := reg.Deactivate(buf); !errors.Is(err, ErrNotActivated) {
		t.Errorf("err = %v, want ErrNotActivated", err)
	}
}

func TestRegistry_UndoCommand(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	if _, err := reg.UndoCommand(buf.ID()); !errors.Is(err, ErrNotActivated) {
		t.Errorf("err = %v, want ErrNotActivated", err)
	}

	rec, err := reg.Activate(buf, NewSnapshot(CapComments))
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	fromRegistry, err := reg.UndoCommand(buf.ID())
	if err != nil {
		t.Fatalf("UndoCommand failed: %v", err)
	}
	fromRecord, err := rec.UndoCommand()
	if err != nil {
		t.Fatalf("record UndoCommand failed: %v", err)
	}
	if fromRegistry != fromRecord {
		t.Errorf("registry command %q != record command %q", fromRegistry, fromRecord)
	}
}

func TestRegistry_Events(t *testing.T) {
	reg := newTestRegistry()
	buf := newECBuffer(1)

	var events []Event
	reg.OnEvent(func(e Event) { events = append(events, e) })
	reg.OnEvent(func(Event) { panic("bad handler") }) // must not break activation

	rec, err := reg.Activate(buf, allCaps())
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if err := reg.Deactivate(buf); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}

	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventActivated || events[0].RecordID != rec.ID() {
		t.Errorf("event 0 = %+v", events[0])
	}
	if events[1].Type != EventDeactivated || events[1].Buffer != buf.ID() {
		t.Errorf("event 1 = %+v", events[1])
	}
}

func TestRegistry_Buffers(t *testing.T) {
	reg := newTestRegistry()

	for _, id := range []int{3, 1, 2} {
		if _, err := reg.Activate(newECBuffer(id), allCaps()); err != nil {
			t.Fatalf("Activate buffer %d failed: %v", id, err)
		}
	}

	if got := reg.Buffers(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Buffers = %v, want [1 2 3]", got)
	}
}
