package easycrypt

import (
	"strconv"
	"strings"

	"github.com/dshills/prooftype/internal/interact"
)

// ParseError parses one stderr error report of the form
// "[error-START-END]message". Returns nil when the line is not an error
// report or the location is malformed.
func (b *Backend) ParseError(stderr string) *interact.ProofError {
	return parseErrorLine(stderr)
}

func parseErrorLine(line string) *interact.ProofError {
	if !strings.HasPrefix(line, "[error") {
		return nil
	}

	_, rest, ok := strings.Cut(line, "[error-")
	if !ok {
		return nil
	}
	loc, msg, ok := strings.Cut(rest, "]")
	if !ok {
		return nil
	}
	startRaw, endRaw, ok := strings.Cut(loc, "-")
	if !ok {
		return nil
	}

	start, err := strconv.Atoi(startRaw)
	if err != nil {
		return nil
	}
	end, err := strconv.Atoi(endRaw)
	if err != nil {
		return nil
	}

	return &interact.ProofError{
		Message: msg,
		Span:    interact.Span{Start: start, End: end},
	}
}
