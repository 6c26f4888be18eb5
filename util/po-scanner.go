package util

import (
	"fmt"
)

// ParseError reports a malformed PO entry. Line is 1-based.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// LineScanner is a cursor over the lines of one PO file. The cursor starts
// one before the first line and only moves forward, except for Rewind which
// pushes back the line just read.
type LineScanner struct {
	lines  []string
	lineno int
}

// NewLineScanner returns a scanner positioned before the first line.
func NewLineScanner(lines []string) *LineScanner {
	return &LineScanner{lines: lines, lineno: -1}
}

// Next advances the cursor and returns the line under it. It returns false
// at end of input, leaving the cursor at len(lines).
func (s *LineScanner) Next() (string, bool) {
	if s.lineno < len(s.lines) {
		s.lineno++
	}
	if s.lineno >= len(s.lines) {
		return "", false
	}
	return s.lines[s.lineno], true
}

// Rewind pushes back the line just read.
func (s *LineScanner) Rewind() {
	if s.lineno >= 0 {
		s.lineno--
	}
}

// Lineno returns the 0-based index of the cursor.
func (s *LineScanner) Lineno() int {
	return s.lineno
}

// Started returns true once Next has been called.
func (s *LineScanner) Started() bool {
	return s.lineno >= 0
}

// Errorf returns a ParseError for the line under the cursor.
func (s *LineScanner) Errorf(format string, a ...interface{}) error {
	return s.ErrorAt(s.lineno, format, a...)
}

// ErrorAt returns a ParseError for the line with the given 0-based index.
func (s *LineScanner) ErrorAt(lineno int, format string, a ...interface{}) error {
	return &ParseError{
		Line:    lineno + 1,
		Message: fmt.Sprintf(format, a...),
	}
}
