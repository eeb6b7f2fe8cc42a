package def

// EasyCrypt returns the built-in definition for EasyCrypt proof scripts.
//
// The auto-close table deliberately gives the lemma group no end keyword:
// a lemma's proof block is opened by the separate proof/qed group, so
// auto-closing "lemma" itself would insert text the prover rejects.
func EasyCrypt() *Filetype {
	return &Filetype{
		Name:       "easycrypt",
		Extensions: []string{".ec", ".eca"},
		Comments: &CommentStyle{
			Start:         "(*",
			End:           "*)",
			Template:      "(* %s *)",
			Table:         "sr:(*,mb:*,ex:*)",
			FormatOptions: "croql",
		},
		Include: &IncludeStyle{
			Pattern:  `^\s*\(from\s\+\w\+\s\+\)\?require\s\+\(import\s\+\|export\s\+\)\?`,
			Suffixes: []string{".ec", ".eca"},
		},
		Tags: &TagStyle{
			Func: "easycrypt.tags",
		},
		Match: []MatchWord{
			{Start: "theory", End: "end"},
			{Start: "abstract theory", End: "end"},
			{Start: "section", End: "end"},
			{Start: "module", End: "end"},
			{Start: "proof", End: "qed"},
		},
		AutoClose: []CloseWord{
			{Start: "theory", End: "end"},
			{Start: "section", End: "end"},
			{Start: "module", End: "end"},
			{Start: "proof", End: "qed"},
			{Start: "lemma"},
		},
		Prover: "easycrypt",
	}
}
