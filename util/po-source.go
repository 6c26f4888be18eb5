package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
	log "github.com/sirupsen/logrus"
)

// ErrAlreadyParsed is returned when a Source is parsed a second time.
var ErrAlreadyParsed = errors.New("can't parse multiple times on one source")

var (
	diffFileColor = color.New(color.Bold)
	diffHunkColor = color.New(color.FgCyan)
	diffAddColor  = color.New(color.FgGreen)
	diffDelColor  = color.New(color.FgRed)
)

// Source holds the lines of one PO file. The original lines are never
// changed, Fix rewrites a working copy.
type Source struct {
	Filename string

	original []string
	lines    []string
	scanner  *LineScanner
	entries  []*Entry
	diff     string
}

// NewSource creates a source from lines, which are copied.
func NewSource(filename string, lines []string) *Source {
	original := slices.Clone(lines)
	return &Source{
		Filename: filename,
		original: original,
		lines:    slices.Clone(lines),
		scanner:  NewLineScanner(original),
	}
}

// ReadSource reads a PO file.
func ReadSource(filename string) (*Source, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("fail to read %s: %w", filename, err)
	}
	return NewSource(filename, SplitLines(string(data))), nil
}

// SplitLines splits file content into lines without line terminators.
// One trailing newline does not produce an empty last line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// Lines returns the working copy of the lines.
func (s *Source) Lines() []string {
	return s.lines
}

// Original returns the lines as read.
func (s *Source) Original() []string {
	return s.original
}

// Entries returns the parsed entries in file order, fuzzy ones included.
func (s *Source) Entries() []*Entry {
	return s.entries
}

// Parse parses all entries. A source can only be parsed once.
func (s *Source) Parse() error {
	if s.scanner.Started() {
		return ErrAlreadyParsed
	}
	entries, err := ParseEntries(s.scanner)
	if err != nil {
		return err
	}
	s.entries = entries
	return nil
}

// Header returns the metadata of the header entry, if any.
func (s *Source) Header() Header {
	for _, entry := range s.entries {
		if entry.IsHeader() {
			return ParseHeader(entry.MsgStr())
		}
	}
	return Header{}
}

// Fix parses the source and rewrites every entry except fuzzy ones, then
// returns true if the lines differ from the original.
func (s *Source) Fix(opts FormatOptions) (bool, error) {
	if err := s.Parse(); err != nil {
		return false, err
	}

	if len(opts.LocaleWideCharMultiplier) > 0 {
		lang := s.Header().LanguageBase()
		opts = opts.ForLanguage(lang)
		log.Debugf("%s: language %q, wide char multiplier %v",
			s.Filename, lang, opts.WideCharMultiplier)
	}
	formatter := NewFormatter(opts)

	// Splice from the last entry backwards, so that the spans of the
	// entries not yet processed still point to the right lines.
	for i := len(s.entries) - 1; i >= 0; i-- {
		entry := s.entries[i]
		if entry.Fuzzy {
			continue
		}
		s.lines = slices.Replace(s.lines, entry.Span.Start, entry.Span.End,
			formatter.Format(entry)...)
	}

	diff, err := unifiedDiff(s.original, s.lines)
	if err != nil {
		return false, fmt.Errorf("fail to diff %s: %w", s.Filename, err)
	}
	s.diff = diff
	return diff != "", nil
}

// Diff returns the unified diff computed by Fix.
func (s *Source) Diff() string {
	return s.diff
}

// ShowDiff writes the diff computed by Fix to w, preceded by the file
// name. Nothing is written if there is no difference.
func (s *Source) ShowDiff(w io.Writer) bool {
	if s.diff == "" {
		return false
	}

	showTitle := false
	for _, line := range strings.Split(strings.TrimSuffix(s.diff, "\n"), "\n") {
		if !showTitle {
			fmt.Fprintf(w, "Need update: %s\n", s.Filename)
			showTitle = true
		}
		switch {
		case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
			diffFileColor.Fprintln(w, line)
		case strings.HasPrefix(line, "@@"):
			diffHunkColor.Fprintln(w, line)
		case strings.HasPrefix(line, "+"):
			diffAddColor.Fprintln(w, line)
		case strings.HasPrefix(line, "-"):
			diffDelColor.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
	return true
}

// Write saves the working lines to path with a trailing newline.
func (s *Source) Write(path string) error {
	content := strings.Join(s.lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("fail to write %s: %w", path, err)
	}
	return nil
}

func unifiedDiff(a, b []string) (string, error) {
	if slices.Equal(a, b) {
		return "", nil
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNewline(a),
		B:        withNewline(b),
		FromFile: "Original",
		ToFile:   "Current",
		Context:  3,
	})
}

func withNewline(lines []string) []string {
	result := make([]string, len(lines))
	for i, line := range lines {
		result[i] = line + "\n"
	}
	return result
}
