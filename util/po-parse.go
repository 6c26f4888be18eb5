package util

import (
	"regexp"
	"strconv"
	"strings"
)

// Keywords of a PO entry.
const (
	KeywordMsgctxt     = "msgctxt"
	KeywordMsgid       = "msgid"
	KeywordMsgidPlural = "msgid_plural"
	KeywordMsgstr      = "msgstr"
)

// reQuotedString matches a quoted string with optional trailing spaces.
// The content is greedy, so it may contain escaped quotes.
var reQuotedString = regexp.MustCompile(`^"(.*)"[ ]*$`)

// Span is the half-open range [Start, End) of 0-based line indexes an
// entry occupies in the original lines.
type Span struct {
	Start int
	End   int
}

// Field is one keyword of an entry, such as msgid or msgstr[1].
type Field struct {
	Keyword string
	// Text is the concatenation of all quoted fragments with the quotes
	// stripped. Escape sequences are kept as written.
	Text string
	// Lines holds the raw source lines of this field.
	Lines []string
}

// IsSource returns true for fields holding the untranslated text.
func (f *Field) IsSource() bool {
	switch f.Keyword {
	case KeywordMsgctxt, KeywordMsgid, KeywordMsgidPlural:
		return true
	}
	return false
}

// Entry is one translation unit of a PO file.
type Entry struct {
	Span   Span
	Fields []Field
	// Fuzzy entries are parsed for validation only and are never rewritten.
	Fuzzy bool
}

// Field returns the field with the given keyword.
func (e *Entry) Field(keyword string) (*Field, bool) {
	for i := range e.Fields {
		if e.Fields[i].Keyword == keyword {
			return &e.Fields[i], true
		}
	}
	return nil, false
}

// MsgID returns the text of msgid.
func (e *Entry) MsgID() string {
	if f, ok := e.Field(KeywordMsgid); ok {
		return f.Text
	}
	return ""
}

// MsgStr returns the text of msgstr, or of msgstr[0] for plural entries.
func (e *Entry) MsgStr() string {
	if f, ok := e.Field(KeywordMsgstr); ok {
		return f.Text
	}
	if f, ok := e.Field(KeywordMsgstr + "[0]"); ok {
		return f.Text
	}
	return ""
}

// IsHeader returns true for the header entry, which has an empty msgid and
// no msgctxt.
func (e *Entry) IsHeader() bool {
	f, ok := e.Field(KeywordMsgid)
	if !ok || f.Text != "" {
		return false
	}
	_, hasContext := e.Field(KeywordMsgctxt)
	return !hasContext
}

func (e *Entry) hasTranslation() bool {
	for _, f := range e.Fields {
		if keywordOrder(f.Keyword) >= keywordOrder(KeywordMsgstr) {
			return true
		}
	}
	return false
}

// keywordOrder returns the position of keyword inside an entry, or -1 if
// keyword is unknown. Plural translations sort after msgstr by index.
func keywordOrder(keyword string) int {
	switch keyword {
	case KeywordMsgctxt:
		return 0
	case KeywordMsgid:
		return 1
	case KeywordMsgidPlural:
		return 2
	case KeywordMsgstr:
		return 3
	}
	if strings.HasPrefix(keyword, KeywordMsgstr+"[") && strings.HasSuffix(keyword, "]") {
		n, err := strconv.Atoi(keyword[len(KeywordMsgstr)+1 : len(keyword)-1])
		if err == nil && n >= 0 {
			return 4 + n
		}
	}
	return -1
}

// splitKeyword splits line into the leading keyword and the remainder.
func splitKeyword(line string) (string, string) {
	i := strings.IndexAny(line, " \t\"")
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i:]
}

func isBlankOrComment(line string) bool {
	return strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#")
}

// isFuzzyFlag checks flag comments such as "#, fuzzy, c-format".
func isFuzzyFlag(line string) bool {
	if !strings.HasPrefix(line, "#,") {
		return false
	}
	for _, flag := range strings.Split(line[2:], ",") {
		if strings.TrimSpace(flag) == "fuzzy" {
			return true
		}
	}
	return false
}

func startsEntry(line string) bool {
	keyword, _ := splitKeyword(line)
	return keyword == KeywordMsgid || keyword == KeywordMsgctxt
}

// ParseEntries reads all entries from scanner, which must not have been
// read before. Fuzzy entries are returned with Fuzzy set.
func ParseEntries(scanner *LineScanner) ([]*Entry, error) {
	var entries []*Entry

	for {
		line, ok := scanner.Next()
		if !ok {
			break
		}
		if isFuzzyFlag(line) {
			entry, err := parseFuzzyBlock(scanner)
			if err != nil {
				return nil, err
			}
			if entry != nil {
				entries = append(entries, entry)
			}
			continue
		}
		if isBlankOrComment(line) {
			continue
		}
		if !startsEntry(line) {
			return nil, scanner.Errorf("unexpected token")
		}
		scanner.Rewind()
		entry, err := parseEntry(scanner)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseFuzzyBlock skips the comments after a fuzzy flag, such as the
// "#| msgid" line, and parses the entry they belong to. A fuzzy flag not
// followed by an entry (obsolete "#~" entries) yields nil.
func parseFuzzyBlock(scanner *LineScanner) (*Entry, error) {
	for {
		line, ok := scanner.Next()
		if !ok {
			return nil, nil
		}
		if strings.TrimSpace(line) == "" {
			scanner.Rewind()
			return nil, nil
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		if !startsEntry(line) {
			return nil, scanner.Errorf("unexpected token")
		}
		scanner.Rewind()
		entry, err := parseEntry(scanner)
		if err != nil {
			return nil, err
		}
		entry.Fuzzy = true
		return entry, nil
	}
}

// parseEntry parses one entry. The next line must be its first keyword.
// The line ending the entry is pushed back for the caller.
func parseEntry(scanner *LineScanner) (*Entry, error) {
	var (
		entry     = &Entry{}
		lastOrder = -1
		start     = scanner.Lineno() + 1
		end       int
	)

	for {
		line, ok := scanner.Next()
		if !ok {
			end = scanner.Lineno()
			break
		}
		if isBlankOrComment(line) {
			scanner.Rewind()
			end = scanner.Lineno() + 1
			break
		}
		if strings.HasPrefix(line, `"`) {
			m := reQuotedString.FindStringSubmatch(line)
			if m == nil || len(entry.Fields) == 0 {
				return nil, scanner.Errorf("Expect `\"...\"`")
			}
			field := &entry.Fields[len(entry.Fields)-1]
			field.Text += m[1]
			field.Lines = append(field.Lines, line)
			continue
		}

		keyword, rest := splitKeyword(line)
		order := keywordOrder(keyword)
		if order < 0 {
			return nil, scanner.Errorf("Expect `\"...\"`")
		}
		if order <= lastOrder {
			// A repeated keyword starts the next entry.
			scanner.Rewind()
			end = scanner.Lineno() + 1
			break
		}
		var m []string
		if strings.HasPrefix(rest, " ") {
			m = reQuotedString.FindStringSubmatch(rest[1:])
		}
		if m == nil {
			return nil, scanner.Errorf("Expect `%s \"...\"`", keyword)
		}
		entry.Fields = append(entry.Fields, Field{
			Keyword: keyword,
			Text:    m[1],
			Lines:   []string{line},
		})
		lastOrder = order
	}

	if !entry.hasTranslation() {
		return nil, scanner.ErrorAt(start, "missing msgstr")
	}
	entry.Span = Span{Start: start, End: end}
	return entry, nil
}
