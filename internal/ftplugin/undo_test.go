package ftplugin

import (
	"errors"
	"testing"

	"github.com/dshills/prooftype/internal/editor"
)

func TestRestoreAction(t *testing.T) {
	a := restoreAction("comments", "old", true)
	if a.Op != OpRestore || a.Key != "comments" || a.Value != "old" {
		t.Errorf("restoreAction with prior = %+v", a)
	}

	a = restoreAction("comments", nil, false)
	if a.Op != OpUnset || a.Key != "comments" {
		t.Errorf("restoreAction without prior = %+v", a)
	}
}

func TestUndoScript_Invoke(t *testing.T) {
	opts := editor.NewOptions()
	opts.Set("commentstring", "(* %s *)")
	opts.Set("formatoptions", "croql")

	script := UndoScript{
		{Op: OpRestore, Key: "formatoptions", Value: "tcq"},
		{Op: OpUnset, Key: "commentstring"},
	}
	script.Invoke(opts)

	if got := opts.GetString("formatoptions"); got != "tcq" {
		t.Errorf("formatoptions = %q, want 'tcq'", got)
	}
	if opts.Has("commentstring") {
		t.Error("commentstring should be unset")
	}
}

func TestUndoScript_CommandRoundTrip(t *testing.T) {
	script := UndoScript{
		{Op: OpRestore, Key: "formatoptions", Value: "tcq"},
		{Op: OpUnset, Key: "matchwords"},
		{Op: OpRestore, Key: "comments", Value: "s1:/*,mb:*,ex:*/"},
	}

	cmd, err := script.Command()
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}

	parsed, err := ParseCommand(cmd)
	if err != nil {
		t.Fatalf("ParseCommand failed: %v", err)
	}
	if len(parsed) != len(script) {
		t.Fatalf("parsed %d actions, want %d", len(parsed), len(script))
	}
	for i, a := range script {
		if parsed[i].Op != a.Op {
			t.Errorf("action %d op = %s, want %s", i, parsed[i].Op, a.Op)
		}
		if parsed[i].Key != a.Key {
			t.Errorf("action %d key = %q, want %q", i, parsed[i].Key, a.Key)
		}
	}
	if parsed[0].Value != "tcq" {
		t.Errorf("action 0 value = %v, want 'tcq'", parsed[0].Value)
	}
}

func TestUndoScript_EmptyCommand(t *testing.T) {
	cmd, err := UndoScript{}.Command()
	if err != nil {
		t.Fatalf("Command failed: %v", err)
	}
	if cmd != "[]" {
		t.Errorf("empty command = %q, want '[]'", cmd)
	}

	parsed, err := ParseCommand(cmd)
	if err != nil {
		t.Fatalf("ParseCommand failed: %v", err)
	}
	if len(parsed) != 0 {
		t.Errorf("parsed %d actions from empty command", len(parsed))
	}
}

func TestParseCommand_Malformed(t *testing.T) {
	cases := []struct {
		name string
		cmd  string
	}{
		{"not json", "not json at all {{{"},
		{"not array", `{"op":"unset","key":"x"}`},
		{"missing key", `[{"op":"unset"}]`},
		{"unknown op", `[{"op":"explode","key":"x"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseCommand(tc.cmd); !errors.Is(err, ErrBadUndoCommand) {
				t.Errorf("err = %v, want ErrBadUndoCommand", err)
			}
		})
	}
}
