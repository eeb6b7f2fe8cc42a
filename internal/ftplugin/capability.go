package ftplugin

import "sort"

// Capability identifies one host or companion-plugin feature the
// activation can depend on. Host capabilities reflect how the editor was
// built; plugin capabilities reflect which companions are loaded in the
// running session.
type Capability string

// Capabilities consulted during activation.
const (
	// CapComments - the host supports comment-aware editing options.
	CapComments Capability = "host.comments"

	// CapIncludeSearch - the host supports import-following options.
	CapIncludeSearch Capability = "host.includesearch"

	// CapTagFunc - the host supports routing tag lookup to a hook.
	CapTagFunc Capability = "host.tagfunc"

	// CapMatchPairs - the match-pair companion plugin is loaded.
	CapMatchPairs Capability = "plugin.matchpairs"

	// CapAutoClose - the auto-close companion plugin is loaded.
	CapAutoClose Capability = "plugin.autoclose"

	// CapProver - the proof-assistant interaction plugin is loaded.
	CapProver Capability = "plugin.prover"
)

// AllCapabilities returns every capability the activation consults.
func AllCapabilities() []Capability {
	return []Capability{
		CapComments,
		CapIncludeSearch,
		CapTagFunc,
		CapMatchPairs,
		CapAutoClose,
		CapProver,
	}
}

// IsValidCapability returns true if the capability is known.
func IsValidCapability(c Capability) bool {
	for _, known := range AllCapabilities() {
		if c == known {
			return true
		}
	}
	return false
}

// Snapshot is the set of capabilities present at activation time.
//
// The host builds one snapshot per activation and passes it in
// explicitly; the registrar never probes ambient state. The zero value
// is a valid empty snapshot.
type Snapshot struct {
	set map[Capability]bool
}

// NewSnapshot creates a snapshot with the given capabilities present.
func NewSnapshot(caps ...Capability) Snapshot {
	s := Snapshot{set: make(map[Capability]bool, len(caps))}
	for _, c := range caps {
		s.set[c] = true
	}
	return s
}

// SnapshotFromMap creates a snapshot from capability-name toggles, as
// loaded from host configuration. Unknown names are carried as-is;
// nothing consults them.
func SnapshotFromMap(m map[string]bool) Snapshot {
	s := Snapshot{set: make(map[Capability]bool, len(m))}
	for name, present := range m {
		if present {
			s.set[Capability(name)] = true
		}
	}
	return s
}

// Has reports whether a capability is present.
func (s Snapshot) Has(c Capability) bool {
	return s.set[c]
}

// List returns the present capabilities sorted by name.
func (s Snapshot) List() []Capability {
	caps := make([]Capability, 0, len(s.set))
	for c := range s.set {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}

// Len returns the number of present capabilities.
func (s Snapshot) Len() int {
	return len(s.set)
}
