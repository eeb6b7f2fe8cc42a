package ftplugin

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dshills/prooftype/internal/editor"
	"github.com/dshills/prooftype/internal/ftplugin/def"
)

// Buffer-local option names the registrar writes.
const (
	// OptCommentString is the comment template option.
	OptCommentString = "commentstring"

	// OptComments is the comment continuation table option.
	OptComments = "comments"

	// OptFormatOptions controls comment-aware formatting.
	OptFormatOptions = "formatoptions"

	// OptInclude is the import-line pattern option.
	OptInclude = "include"

	// OptIncludeExpr maps a matched import name to a file name.
	OptIncludeExpr = "includeexpr"

	// OptSuffixesAdd lists extensions tried when resolving imports.
	OptSuffixesAdd = "suffixesadd"

	// OptTagFunc names the hook tag lookup routes to.
	OptTagFunc = "tagfunc"

	// OptMatchWords is the match-pair plugin's keyword table.
	OptMatchWords = "matchwords"

	// OptCloseWords is the auto-close plugin's keyword table.
	OptCloseWords = "closewords"

	// OptProverBackend names the interaction backend for the buffer.
	OptProverBackend = "proverbackend"
)

// applyGroups applies every group the snapshot enables, in the fixed
// group order, recording one undo action per option write.
func applyGroups(buf *editor.Buffer, ft *def.Filetype, caps Snapshot, rec *ActivationRecord) {
	for _, g := range groupOrder {
		applied := false
		switch g {
		case GroupComments:
			applied = applyComments(buf, ft, caps, rec)
		case GroupIncludes:
			applied = applyIncludes(buf, ft, caps, rec)
		case GroupTags:
			applied = applyTags(buf, ft, caps, rec)
		case GroupMatching:
			applied = applyMatching(buf, ft, caps, rec)
		case GroupAutoClose:
			applied = applyAutoClose(buf, ft, caps, rec)
		case GroupProver:
			applied = applyProver(buf, ft, caps, rec)
		}

		if applied {
			rec.markGroup(g)
		} else {
			log.Debug().
				Int("buffer", buf.ID()).
				Str("filetype", ft.Name).
				Stringer("group", g).
				Msg("option group skipped")
		}
	}
}

// setOption writes one buffer-local option and records its undo action.
func setOption(buf *editor.Buffer, rec *ActivationRecord, key string, value any) {
	prev, existed := buf.Options().Set(key, value)
	rec.pushUndo(restoreAction(key, prev, existed))
}

// applyComments configures comment-aware editing.
func applyComments(buf *editor.Buffer, ft *def.Filetype, caps Snapshot, rec *ActivationRecord) bool {
	if !caps.Has(CapComments) || ft.Comments == nil {
		return false
	}

	c := ft.Comments
	if c.Template != "" {
		setOption(buf, rec, OptCommentString, c.Template)
	}
	if c.Table != "" {
		setOption(buf, rec, OptComments, c.Table)
	}
	if c.FormatOptions != "" {
		setOption(buf, rec, OptFormatOptions, c.FormatOptions)
	}
	return true
}

// applyIncludes configures import-following.
func applyIncludes(buf *editor.Buffer, ft *def.Filetype, caps Snapshot, rec *ActivationRecord) bool {
	if !caps.Has(CapIncludeSearch) || ft.Include == nil {
		return false
	}

	inc := ft.Include
	if inc.Pattern != "" {
		setOption(buf, rec, OptInclude, inc.Pattern)
	}
	if inc.Expr != "" {
		setOption(buf, rec, OptIncludeExpr, inc.Expr)
	}
	if len(inc.Suffixes) > 0 {
		setOption(buf, rec, OptSuffixesAdd, strings.Join(inc.Suffixes, ","))
	}
	return true
}

// applyTags routes tag lookup to the companion hook.
func applyTags(buf *editor.Buffer, ft *def.Filetype, caps Snapshot, rec *ActivationRecord) bool {
	if !caps.Has(CapTagFunc) || ft.Tags == nil || ft.Tags.Func == "" {
		return false
	}

	setOption(buf, rec, OptTagFunc, ft.Tags.Func)
	return true
}

// applyMatching installs the match-pair keyword table.
func applyMatching(buf *editor.Buffer, ft *def.Filetype, caps Snapshot, rec *ActivationRecord) bool {
	if !caps.Has(CapMatchPairs) || len(ft.Match) == 0 {
		return false
	}

	setOption(buf, rec, OptMatchWords, ft.MatchWords())
	return true
}

// applyAutoClose installs the auto-close keyword table.
func applyAutoClose(buf *editor.Buffer, ft *def.Filetype, caps Snapshot, rec *ActivationRecord) bool {
	if !caps.Has(CapAutoClose) || len(ft.AutoClose) == 0 {
		return false
	}

	setOption(buf, rec, OptCloseWords, ft.CloseWords())
	return true
}

// applyProver routes the buffer to its interaction backend.
// The backend itself is registered and invoked by the interaction
// plugin; activation only sets the route.
func applyProver(buf *editor.Buffer, ft *def.Filetype, caps Snapshot, rec *ActivationRecord) bool {
	if !caps.Has(CapProver) || ft.Prover == "" {
		return false
	}

	setOption(buf, rec, OptProverBackend, ft.Prover)
	return true
}
