package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// FileStatus is the outcome of formatting one file.
type FileStatus int

// Status of a formatted file.
const (
	StatusUnchanged FileStatus = iota
	StatusChanged              // needs update, not written in check mode
	StatusUpdated
	StatusError
)

func (s FileStatus) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusChanged:
		return "changed"
	case StatusUpdated:
		return "updated"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("FileStatus(%d)", int(s))
}

// FileResult is the result of formatting one file.
type FileResult struct {
	Path   string
	Status FileStatus
	Err    error
	// Diff holds the rendered diff of a file needing update in check mode.
	Diff string
}

// Symbols prefix the report lines of updated and failed files.
type Symbols struct {
	Success string
	Error   string
}

// DefaultSymbols returns emoji symbols, or ASCII ones if the locale of the
// process cannot display them.
func DefaultSymbols() Symbols {
	if SupportUnicode() {
		return Symbols{Success: "✨", Error: "❌"}
	}
	return Symbols{Success: ":)", Error: ":("}
}

// SupportUnicode checks whether the locale uses UTF-8. The C locale counts
// as UTF-8, as most systems default it to C.UTF-8.
func SupportUnicode() bool {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := os.Getenv(key)
		if value == "" {
			continue
		}
		if value == "C" || value == "POSIX" {
			return true
		}
		value = strings.ToLower(value)
		return strings.Contains(value, "utf-8") || strings.Contains(value, "utf8")
	}
	return true
}

// Summary counts files by outcome.
type Summary struct {
	Identical int
	Changed   int
	Errors    int
}

// Total returns the number of checked files.
func (s Summary) Total() int {
	return s.Identical + s.Changed + s.Errors
}

// OK returns true if no file changed and no file failed.
func (s Summary) OK() bool {
	return s.Changed == 0 && s.Errors == 0
}

func (s Summary) String() string {
	return fmt.Sprintf("Checked %d file(s), %d error file(s) and %d file(s) changed.",
		s.Total(), s.Errors, s.Changed)
}

// ReportResults writes a line for each updated or failed file, the diffs
// of files needing update, and the summary.
func ReportResults(w io.Writer, results []FileResult, symbols Symbols) Summary {
	var summary Summary

	for _, result := range results {
		switch result.Status {
		case StatusUnchanged:
			summary.Identical++
			log.Debugf("%s is unchanged", result.Path)
		case StatusChanged:
			summary.Changed++
			io.WriteString(w, result.Diff)
		case StatusUpdated:
			summary.Changed++
			fmt.Fprintf(w, "%s %s is updated\n", symbols.Success, result.Path)
		case StatusError:
			summary.Errors++
			fmt.Fprintf(w, "%s %s %s\n", symbols.Error, result.Path, describeError(result.Err))
		}
	}
	fmt.Fprintf(w, "\n%s\n", summary)
	return summary
}

func describeError(err error) string {
	var parseError *ParseError

	if errors.As(err, &parseError) {
		return "Parse error: " + parseError.Error()
	}
	return err.Error()
}
