// Package editor provides the minimal buffer model the filetype engine
// configures: a buffer identity plus its buffer-local option store.
//
// Text content, rendering, and input are owned by the host editor and are
// out of scope here.
package editor

import "sync"

// Buffer is an open editable unit in the host editor.
// Each buffer carries its own local option store; no option state is
// shared across buffers.
type Buffer struct {
	mu       sync.RWMutex
	id       int
	name     string
	filetype string
	options  *Options
}

// NewBuffer creates a buffer with the given id and display name.
func NewBuffer(id int, name string) *Buffer {
	return &Buffer{
		id:      id,
		name:    name,
		options: NewOptions(),
	}
}

// ID returns the buffer's host-assigned identifier.
func (b *Buffer) ID() int {
	return b.id
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.name
}

// Filetype returns the buffer's current filetype classification.
// Empty until SetFiletype is called.
func (b *Buffer) Filetype() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.filetype
}

// SetFiletype records the buffer's filetype classification.
// The host drives activation separately; setting the filetype here does
// not apply any configuration.
func (b *Buffer) SetFiletype(ft string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.filetype = ft
}

// Options returns the buffer-local option store.
func (b *Buffer) Options() *Options {
	return b.options
}
