package editor

import (
	"sort"
	"sync"
)

// Options is a buffer-local option store.
//
// Keys are option names ("commentstring", "suffixesadd", ...); values are
// whatever the host associates with the option, typically a string or a
// string slice. Set reports the prior value so callers can capture exact
// restore information before overwriting.
type Options struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewOptions creates an empty option store.
func NewOptions() *Options {
	return &Options{
		values: make(map[string]any),
	}
}

// Set assigns an option and returns the value it replaced.
// The second return is false when the option was previously unset.
func (o *Options) Set(key string, value any) (prev any, existed bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	prev, existed = o.values[key]
	o.values[key] = value
	return prev, existed
}

// Get returns the option value, or false if the option is unset.
func (o *Options) Get(key string) (any, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	v, ok := o.values[key]
	return v, ok
}

// GetString returns the option value as a string.
// Returns "" when the option is unset or not a string.
func (o *Options) GetString(key string) string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if s, ok := o.values[key].(string); ok {
		return s
	}
	return ""
}

// Unset removes an option. Removing an unset option is a no-op.
func (o *Options) Unset(key string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	delete(o.values, key)
}

// Has checks if an option is set.
func (o *Options) Has(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()

	_, ok := o.values[key]
	return ok
}

// Len returns the number of set options.
func (o *Options) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	return len(o.values)
}

// Keys returns all set option names sorted alphabetically.
func (o *Options) Keys() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()

	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of all set options.
func (o *Options) Snapshot() map[string]any {
	o.mu.RLock()
	defer o.mu.RUnlock()

	result := make(map[string]any, len(o.values))
	for k, v := range o.values {
		result[k] = v
	}
	return result
}
