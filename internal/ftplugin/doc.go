// Package ftplugin applies filetype configuration to buffers and records
// how to take it back off.
//
// Activation looks up the buffer's filetype definition, checks which
// host and companion-plugin capabilities are present, applies the option
// groups those capabilities enable in a fixed order, and records one undo
// action per option written. The accumulated undo script restores the
// buffer's pre-activation option state exactly, and is exposed to the
// host both as a structured script and as a single serialized command.
//
// A missing capability skips its group; it is never an error. Activating
// an already-activated buffer is a no-op that returns the existing
// record.
package ftplugin
