package ftplugin

// Group identifies one option group an activation can apply.
type Group int

// Option groups, in apply order.
const (
	// GroupComments configures comment-aware editing.
	GroupComments Group = iota

	// GroupIncludes configures import-following.
	GroupIncludes

	// GroupTags routes tag lookup to the companion hook.
	GroupTags

	// GroupMatching installs the match-pair keyword table.
	GroupMatching

	// GroupAutoClose installs the auto-close keyword table.
	GroupAutoClose

	// GroupProver routes buffer interaction to the prover backend.
	GroupProver
)

// String returns the group name.
func (g Group) String() string {
	switch g {
	case GroupComments:
		return "comments"
	case GroupIncludes:
		return "includes"
	case GroupTags:
		return "tags"
	case GroupMatching:
		return "matching"
	case GroupAutoClose:
		return "autoclose"
	case GroupProver:
		return "prover"
	default:
		return "unknown"
	}
}

// groupOrder fixes the apply order. Deactivation relies on undo actions
// being recorded in this same order.
var groupOrder = [...]Group{
	GroupComments,
	GroupIncludes,
	GroupTags,
	GroupMatching,
	GroupAutoClose,
	GroupProver,
}
