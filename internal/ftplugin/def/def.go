// Package def describes filetype definitions: the declarative data a
// filetype activation applies to a buffer.
//
// A definition carries one block per option group (comments, include
// search, tag lookup, keyword matching, auto-close, prover backend). A
// group left nil or empty is simply never applied, regardless of what the
// host supports.
package def

import (
	"errors"
	"fmt"
	"strings"
)

// Definition errors.
var (
	// ErrNoName is returned when a definition has no filetype name.
	ErrNoName = errors.New("filetype definition has no name")

	// ErrBadMatchWord is returned when a match word has no start or no end.
	ErrBadMatchWord = errors.New("match word needs both start and end")

	// ErrBadCloseWord is returned when an auto-close word has no start.
	ErrBadCloseWord = errors.New("auto-close word needs a start keyword")

	// ErrAlreadyRegistered is returned when registering a duplicate name.
	ErrAlreadyRegistered = errors.New("filetype already registered")

	// ErrNotFound is returned when a filetype definition is not registered.
	ErrNotFound = errors.New("filetype not registered")
)

// CommentStyle configures comment-aware editing for a filetype.
type CommentStyle struct {
	// Line is the single-line comment leader, empty when the language
	// has none.
	Line string `yaml:"line"`

	// Start and End delimit block comments.
	Start string `yaml:"start"`
	End   string `yaml:"end"`

	// Template is the commentstring template with %s marking the text
	// position (e.g., "(* %s *)").
	Template string `yaml:"template"`

	// Table is the comments option value describing continuation
	// behavior (e.g., "sr:(*,mb:*,ex:*)").
	Table string `yaml:"table"`

	// FormatOptions is the formatoptions value applied alongside the
	// comment markers (e.g., "croql").
	FormatOptions string `yaml:"formatOptions"`
}

// IncludeStyle configures import-following for a filetype.
type IncludeStyle struct {
	// Pattern matches an import/require line.
	Pattern string `yaml:"pattern"`

	// Expr maps the matched module name to a candidate file name.
	// Empty means the name is used verbatim.
	Expr string `yaml:"expr"`

	// Suffixes are extensions appended when resolving the candidate.
	Suffixes []string `yaml:"suffixes"`
}

// TagStyle configures tag lookup routing for a filetype.
type TagStyle struct {
	// Func names the companion hook the host routes tag lookup to.
	Func string `yaml:"func"`
}

// MatchWord is one keyword group for the match-pair companion plugin.
// Mid is optional (e.g., "then" between "if" and "else").
type MatchWord struct {
	Start string `yaml:"start"`
	Mid   string `yaml:"mid"`
	End   string `yaml:"end"`
}

// CloseWord is one keyword group for the auto-close companion plugin.
// End may be empty: the group then opens a scope the plugin never closes
// automatically.
type CloseWord struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Filetype is a complete filetype definition.
type Filetype struct {
	// Name is the filetype identifier (e.g., "easycrypt").
	Name string `yaml:"name"`

	// Extensions are file extensions classified as this filetype,
	// including the leading dot.
	Extensions []string `yaml:"extensions"`

	// Comments configures comment-aware editing. Nil disables the group.
	Comments *CommentStyle `yaml:"comments"`

	// Include configures import-following. Nil disables the group.
	Include *IncludeStyle `yaml:"include"`

	// Tags configures tag lookup routing. Nil disables the group.
	Tags *TagStyle `yaml:"tags"`

	// Match lists keyword groups for the match-pair plugin.
	Match []MatchWord `yaml:"match"`

	// AutoClose lists keyword groups for the auto-close plugin.
	AutoClose []CloseWord `yaml:"autoClose"`

	// Prover names the interaction backend for this filetype, empty
	// when the filetype has none.
	Prover string `yaml:"prover"`
}

// Validate checks the definition for structural problems.
func (f *Filetype) Validate() error {
	if f.Name == "" {
		return ErrNoName
	}
	for i, m := range f.Match {
		if m.Start == "" || m.End == "" {
			return fmt.Errorf("%w: match[%d] in %q", ErrBadMatchWord, i, f.Name)
		}
	}
	for i, c := range f.AutoClose {
		if c.Start == "" {
			return fmt.Errorf("%w: autoClose[%d] in %q", ErrBadCloseWord, i, f.Name)
		}
	}
	return nil
}

// MatchWords serializes the match groups into the match-pair plugin's
// table format: colon-separated keywords per group, comma-separated
// groups (e.g., "theory:end,proof:qed").
func (f *Filetype) MatchWords() string {
	groups := make([]string, 0, len(f.Match))
	for _, m := range f.Match {
		parts := []string{m.Start}
		if m.Mid != "" {
			parts = append(parts, m.Mid)
		}
		parts = append(parts, m.End)
		groups = append(groups, strings.Join(parts, ":"))
	}
	return strings.Join(groups, ",")
}

// CloseWords serializes the auto-close groups into the auto-close
// plugin's table format. A group with no end keyword serializes as the
// bare start keyword.
func (f *Filetype) CloseWords() string {
	groups := make([]string, 0, len(f.AutoClose))
	for _, c := range f.AutoClose {
		if c.End == "" {
			groups = append(groups, c.Start)
			continue
		}
		groups = append(groups, c.Start+":"+c.End)
	}
	return strings.Join(groups, ",")
}
