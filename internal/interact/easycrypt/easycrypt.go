// Package easycrypt parses EasyCrypt checker output.
//
// The checker is driven in -emacs mode, whose stdout interleaves
// severity-tagged log lines, goal output, and ready prompts:
//
//	[17|check]>
//	[W]+ warning
//	[W]| warning continuation
//	goal output
//	+ info
//	| info continuation
//	[18|check]>
//
// Consecutive log lines of one severity coalesce into a single message.
// Prompts overwrite as they go; the last one seen wins.
package easycrypt

import (
	"bytes"

	"github.com/dshills/prooftype/internal/interact"
)

// Line markers in -emacs output.
var (
	warnStart = []byte("[W]+ ")
	warnCont  = []byte("[W]| ")
	infoStart = []byte("+ ")
	infoCont  = []byte("| ")
	errStart  = []byte("[error")
	promptEnd = []byte("]>")
)

// Backend is the EasyCrypt interaction backend.
type Backend struct{}

// New creates the EasyCrypt backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return "easycrypt"
}

// ParseOutput parses a complete -emacs stdout response.
func (b *Backend) ParseOutput(data []byte) (*interact.Output, error) {
	s := &scanner{}
	for _, line := range bytes.Split(data, []byte("\n")) {
		s.readLine(line)
	}
	return s.finish(), nil
}

// scanner accumulates one checker response line by line.
type scanner struct {
	curSev  interact.Severity
	haveSev bool
	tmp     []byte

	logs   []interact.LogMessage
	goal   []byte
	prompt *interact.Prompt
	errs   []interact.ProofError
}

// readLine routes one stdout line.
func (s *scanner) readLine(line []byte) {
	switch {
	case bytes.HasPrefix(line, warnStart):
		s.start(interact.SeverityWarning, line[len(warnStart):])
	case bytes.HasPrefix(line, warnCont):
		s.appendLog(interact.SeverityWarning, line[len(warnCont):])
	case bytes.HasPrefix(line, infoStart):
		s.start(interact.SeverityInfo, line[len(infoStart):])
	case bytes.HasPrefix(line, infoCont):
		s.appendLog(interact.SeverityInfo, line[len(infoCont):])
	case bytes.HasPrefix(line, errStart):
		s.errorLine(line)
	case bytes.HasPrefix(line, []byte("[")) && bytes.HasSuffix(line, promptEnd):
		s.promptLine(line)
	default:
		s.output(line)
	}
}

// start flushes any pending run and begins a new one.
func (s *scanner) start(sev interact.Severity, line []byte) {
	s.flush()
	s.appendLog(sev, line)
}

// appendLog extends the current severity run, flushing first when the
// severity changes or no run is open.
func (s *scanner) appendLog(sev interact.Severity, line []byte) {
	if s.haveSev && s.curSev != sev {
		s.flush()
	}
	if !s.haveSev {
		s.haveSev = true
		s.curSev = sev
		s.tmp = append([]byte(nil), line...)
	} else {
		s.tmp = append(s.tmp, line...)
	}
	s.tmp = append(s.tmp, '\n')
}

// flush closes the current severity run into a log message.
func (s *scanner) flush() {
	if !s.haveSev {
		return
	}
	s.logs = append(s.logs, interact.LogMessage{
		Severity: s.curSev,
		Message:  string(s.tmp),
	})
	s.tmp = nil
	s.haveSev = false
}

// output appends one goal line.
func (s *scanner) output(line []byte) {
	s.flush()
	s.goal = append(s.goal, line...)
	if len(s.goal) != 0 && s.goal[len(s.goal)-1] != '\n' {
		s.goal = append(s.goal, '\n')
	}
}

// promptLine parses a "[state|mode]>" ready marker. Later prompts
// overwrite earlier ones. A malformed marker falls back to goal output.
func (s *scanner) promptLine(line []byte) {
	p, ok := parsePrompt(line)
	if !ok {
		s.output(line)
		return
	}
	s.prompt = p
}

// errorLine parses an inline "[error-S-E]msg" report. A malformed
// report falls back to goal output.
func (s *scanner) errorLine(line []byte) {
	if e := parseErrorLine(string(line)); e != nil {
		s.flush()
		s.errs = append(s.errs, *e)
		return
	}
	s.output(line)
}

// finish closes any pending run and returns the parsed response.
func (s *scanner) finish() *interact.Output {
	s.flush()
	return &interact.Output{
		Logs:   s.logs,
		Goal:   string(s.goal),
		Prompt: s.prompt,
		Errors: s.errs,
	}
}

// parsePrompt extracts the state counter and mode from "[state|mode]>".
func parsePrompt(line []byte) (*interact.Prompt, bool) {
	_, rest, ok := bytes.Cut(line, []byte("["))
	if !ok {
		return nil, false
	}
	rest, _, ok = bytes.Cut(rest, promptEnd)
	if !ok {
		return nil, false
	}
	stateRaw, mode, ok := bytes.Cut(rest, []byte("|"))
	if !ok {
		return nil, false
	}
	state, ok := parseInt(stateRaw)
	if !ok {
		return nil, false
	}
	return &interact.Prompt{State: state, Mode: string(mode)}, true
}

// parseInt parses a non-negative decimal.
func parseInt(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
