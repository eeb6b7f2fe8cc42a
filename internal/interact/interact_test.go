package interact

import (
	"errors"
	"testing"
)

type fakeBackend struct {
	name string
}

func (f *fakeBackend) Name() string { return f.name }

func (f *fakeBackend) ParseOutput(data []byte) (*Output, error) { return &Output{}, nil }

func (f *fakeBackend) ParseError(stderr string) *ProofError { return nil }

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(&fakeBackend{name: "easycrypt"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register(&fakeBackend{name: "easycrypt"}); !errors.Is(err, ErrBackendRegistered) {
		t.Errorf("duplicate Register err = %v, want ErrBackendRegistered", err)
	}

	b, err := r.Lookup("easycrypt")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if b.Name() != "easycrypt" {
		t.Errorf("Name = %q", b.Name())
	}

	if _, err := r.Lookup("coq"); !errors.Is(err, ErrBackendNotFound) {
		t.Errorf("missing Lookup err = %v, want ErrBackendNotFound", err)
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha"} {
		if err := r.Register(&fakeBackend{name: name}); err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
	}

	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Errorf("Names = %v", names)
	}
}

func TestProofError_Error(t *testing.T) {
	e := &ProofError{Message: "parse error", Span: Span{Start: 0, End: 27}}
	if got := e.Error(); got != "0-27: parse error" {
		t.Errorf("Error = %q", got)
	}
}

func TestSeverity_String(t *testing.T) {
	if SeverityInfo.String() != "info" || SeverityWarning.String() != "warning" {
		t.Error("severity names wrong")
	}
	if Severity(42).String() != "unknown" {
		t.Error("out-of-range severity should be 'unknown'")
	}
}
