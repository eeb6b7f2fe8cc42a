// Package interact defines the proof-assistant interaction surface: the
// structured output a prover backend produces from a checker run, and
// the registry the interaction plugin resolves backends from.
//
// Filetype activation only routes a buffer to a backend by name; the
// interaction plugin looks the backend up here and drives it.
package interact

import (
	"fmt"
	"sort"
	"sync"
)

// Severity classifies a prover log message.
type Severity int

const (
	// SeverityInfo is ordinary checker chatter.
	SeverityInfo Severity = iota

	// SeverityWarning is a checker warning.
	SeverityWarning
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// LogMessage is one coalesced run of same-severity checker log lines.
// Shown in the info window.
type LogMessage struct {
	Severity Severity
	Message  string
}

// Prompt is the checker's ready marker: the statement counter and the
// checker mode it is waiting in.
type Prompt struct {
	State int
	Mode  string
}

// Span is a character range in the checked statement.
type Span struct {
	Start int
	End   int
}

// ProofError is a checker-reported error with its source location.
type ProofError struct {
	Message string
	Span    Span
}

// Error implements the error interface.
func (e *ProofError) Error() string {
	return fmt.Sprintf("%d-%d: %s", e.Span.Start, e.Span.End, e.Message)
}

// Output is one parsed checker response. Goal text goes to the goal
// window, logs to the info window; the prompt advances the interaction
// state machine.
type Output struct {
	Logs   []LogMessage
	Goal   string
	Prompt *Prompt
	Errors []ProofError
}

// Backend parses one prover's checker output into structured form.
type Backend interface {
	// Name is the backend identifier filetype definitions route to.
	Name() string

	// ParseOutput parses a complete checker stdout response.
	ParseOutput(data []byte) (*Output, error)

	// ParseError parses a checker stderr line. Returns nil when the
	// line is not an error report.
	ParseError(stderr string) *ProofError
}

// Registry errors.
var (
	// ErrBackendRegistered is returned when registering a duplicate name.
	ErrBackendRegistered = fmt.Errorf("backend already registered")

	// ErrBackendNotFound is returned when no backend has the given name.
	ErrBackendNotFound = fmt.Errorf("backend not found")
)

// Registry maintains interaction backends by name.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty backend registry.
func NewRegistry() *Registry {
	return &Registry{
		backends: make(map[string]Backend),
	}
}

// Register adds a backend. Returns an error if the name is taken.
func (r *Registry) Register(b Backend) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[b.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrBackendRegistered, b.Name())
	}
	r.backends[b.Name()] = b
	return nil
}

// Lookup returns the backend registered under name.
func (r *Registry) Lookup(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, name)
	}
	return b, nil
}

// Names returns all registered backend names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
