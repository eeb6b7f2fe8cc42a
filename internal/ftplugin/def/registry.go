package def

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maintains filetype definitions by name with extension lookup.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Filetype
	exts  map[string]string // extension -> filetype name
}

// NewRegistry creates an empty definition registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*Filetype),
		exts:  make(map[string]string),
	}
}

// NewRegistryWithBuiltins creates a registry seeded with the built-in
// definitions.
func NewRegistryWithBuiltins() *Registry {
	r := NewRegistry()
	r.MustRegister(EasyCrypt())
	return r
}

// Register adds a definition. Returns an error when the definition is
// invalid or the name is already taken.
func (r *Registry) Register(ft *Filetype) error {
	if err := ft.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[ft.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, ft.Name)
	}
	r.put(ft)
	return nil
}

// MustRegister registers a definition and panics on error.
// Useful for built-in definitions at init time.
func (r *Registry) MustRegister(ft *Filetype) {
	if err := r.Register(ft); err != nil {
		panic(err)
	}
}

// Put adds or replaces a definition. Used by live reload, where replacing
// an existing definition is the expected case.
func (r *Registry) Put(ft *Filetype) error {
	if err := ft.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(ft)
	return nil
}

// put stores the definition and refreshes the extension index.
// Caller holds the lock.
func (r *Registry) put(ft *Filetype) {
	if old, ok := r.types[ft.Name]; ok {
		for _, ext := range old.Extensions {
			delete(r.exts, normalizeExt(ext))
		}
	}
	r.types[ft.Name] = ft
	for _, ext := range ft.Extensions {
		r.exts[normalizeExt(ext)] = ft.Name
	}
}

// Lookup returns the definition for a filetype name.
func (r *Registry) Lookup(name string) (*Filetype, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ft, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return ft, nil
}

// Has checks if a filetype is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.types[name]
	return ok
}

// ByExtension returns the filetype name registered for a file extension
// (leading dot optional). Returns "" when no definition claims it.
func (r *Registry) ByExtension(ext string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.exts[normalizeExt(ext)]
}

// Names returns all registered filetype names sorted alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// normalizeExt lowercases an extension and ensures a leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
