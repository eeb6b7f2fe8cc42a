package ftplugin

import "errors"

// Filetype activation errors.
var (
	// ErrNoFiletype is returned when activating a buffer whose filetype
	// is not set.
	ErrNoFiletype = errors.New("buffer has no filetype")

	// ErrUnknownFiletype is returned when no definition is registered
	// for the buffer's filetype.
	ErrUnknownFiletype = errors.New("no definition for filetype")

	// ErrNotActivated is returned when deactivating or querying a buffer
	// that holds no activation record.
	ErrNotActivated = errors.New("buffer has no active filetype configuration")

	// ErrBadUndoCommand is returned when parsing a malformed undo command.
	ErrBadUndoCommand = errors.New("malformed undo command")
)
