package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLines(t *testing.T, lines ...string) []*Entry {
	t.Helper()
	entries, err := ParseEntries(NewLineScanner(lines))
	require.NoError(t, err)
	return entries
}

func TestParseEntries(t *testing.T) {
	entries := parseLines(t,
		`# Chinese translations for Git package`,
		`msgid ""`,
		`msgstr ""`,
		`"Language: zh_CN\n"`,
		``,
		`#: src/main.c:10`,
		`msgid "Hello"`,
		`msgstr "你好"`,
	)

	require.Len(t, entries, 2)

	header := entries[0]
	assert.Equal(t, Span{Start: 1, End: 4}, header.Span)
	assert.True(t, header.IsHeader())
	assert.False(t, header.Fuzzy)
	assert.Equal(t, "", header.MsgID())
	assert.Equal(t, `Language: zh_CN\n`, header.MsgStr())
	msgstr, ok := header.Field(KeywordMsgstr)
	require.True(t, ok)
	assert.Equal(t, []string{`msgstr ""`, `"Language: zh_CN\n"`}, msgstr.Lines)

	entry := entries[1]
	assert.Equal(t, Span{Start: 6, End: 8}, entry.Span)
	assert.False(t, entry.IsHeader())
	assert.Equal(t, "Hello", entry.MsgID())
	assert.Equal(t, "你好", entry.MsgStr())
}

func TestParseEntriesWithoutBlankLine(t *testing.T) {
	entries := parseLines(t,
		`msgid "a"`,
		`msgstr "b"`,
		`msgid "c"`,
		`msgstr "d"`,
	)

	require.Len(t, entries, 2)
	assert.Equal(t, Span{Start: 0, End: 2}, entries[0].Span)
	assert.Equal(t, Span{Start: 2, End: 4}, entries[1].Span)
	assert.Equal(t, "c", entries[1].MsgID())
}

func TestParseEntriesEscapes(t *testing.T) {
	entries := parseLines(t,
		`msgid "say \"hi\"" `,
		`msgstr ""`,
		`"line one\n"`,
		`"line two"`,
	)

	require.Len(t, entries, 1)
	assert.Equal(t, `say \"hi\"`, entries[0].MsgID())
	assert.Equal(t, `line one\nline two`, entries[0].MsgStr())
}

func TestParseEntriesContextAndPlural(t *testing.T) {
	entries := parseLines(t,
		`msgctxt "menu"`,
		`msgid "Open"`,
		`msgstr "打开"`,
		``,
		`msgid "%d file"`,
		`msgid_plural "%d files"`,
		`msgstr[0] "%d 个文件"`,
		`msgstr[1] "%d 个文件"`,
	)

	require.Len(t, entries, 2)

	assert.False(t, entries[0].IsHeader())
	ctx, ok := entries[0].Field(KeywordMsgctxt)
	require.True(t, ok)
	assert.Equal(t, "menu", ctx.Text)
	assert.True(t, ctx.IsSource())

	plural := entries[1]
	assert.Equal(t, Span{Start: 4, End: 8}, plural.Span)
	require.Len(t, plural.Fields, 4)
	assert.Equal(t, []string{KeywordMsgid, KeywordMsgidPlural, "msgstr[0]", "msgstr[1]"},
		[]string{plural.Fields[0].Keyword, plural.Fields[1].Keyword,
			plural.Fields[2].Keyword, plural.Fields[3].Keyword})
	assert.Equal(t, "%d 个文件", plural.MsgStr())
	assert.False(t, plural.Fields[2].IsSource())
}

func TestParseEntriesFuzzy(t *testing.T) {
	tests := []struct {
		name      string
		lines     []string
		wantFuzzy []bool
		wantSpans []Span
	}{
		{
			name: "fuzzy with previous msgid",
			lines: []string{
				`#, fuzzy`,
				`#| msgid "Report (HTML)"`,
				`msgid "Report HTML"`,
				`msgstr "Informe (HTML)"`,
			},
			wantFuzzy: []bool{true},
			wantSpans: []Span{{2, 4}},
		},
		{
			name: "fuzzy among other flags",
			lines: []string{
				`#, c-format, fuzzy`,
				`msgid "%s"`,
				`msgstr "%s"`,
			},
			wantFuzzy: []bool{true},
			wantSpans: []Span{{1, 3}},
		},
		{
			name: "flags without fuzzy",
			lines: []string{
				`#, c-format`,
				`msgid "%s"`,
				`msgstr "%s"`,
			},
			wantFuzzy: []bool{false},
			wantSpans: []Span{{1, 3}},
		},
		{
			name: "entry right after fuzzy entry",
			lines: []string{
				`#, fuzzy`,
				`msgid "a"`,
				`msgstr "b"`,
				`msgid "c"`,
				`msgstr "d"`,
			},
			wantFuzzy: []bool{true, false},
			wantSpans: []Span{{1, 3}, {3, 5}},
		},
		{
			name: "obsolete fuzzy entry",
			lines: []string{
				`#, fuzzy`,
				`#~ msgid "old"`,
				`#~ msgstr "viejo"`,
				``,
				`msgid "a"`,
				`msgstr "b"`,
			},
			wantFuzzy: []bool{false},
			wantSpans: []Span{{4, 6}},
		},
		{
			name: "obsolete fuzzy entry at end of file",
			lines: []string{
				`#, fuzzy`,
				`#~ msgid "old"`,
				`#~ msgstr "viejo"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := parseLines(t, tt.lines...)

			require.Len(t, entries, len(tt.wantFuzzy))
			for i, entry := range entries {
				assert.Equal(t, tt.wantFuzzy[i], entry.Fuzzy, "entry %d", i)
				assert.Equal(t, tt.wantSpans[i], entry.Span, "entry %d", i)
			}
		})
	}
}

func TestParseEntriesErrors(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "msgid without quoted value",
			lines:    []string{`msgid`, `msgstr ""`},
			wantLine: 1,
			wantMsg:  "Expect `msgid \"...\"`",
		},
		{
			name:     "unterminated quoted string",
			lines:    []string{`msgid "abc`, `def"`, `msgstr ""`},
			wantLine: 1,
			wantMsg:  "Expect `msgid \"...\"`",
		},
		{
			name:     "msgstr without msgid",
			lines:    []string{``, `msgstr "x"`},
			wantLine: 2,
			wantMsg:  "unexpected token",
		},
		{
			name:     "malformed continuation line",
			lines:    []string{`msgid "a"`, `"abc`, `msgstr ""`},
			wantLine: 2,
			wantMsg:  "Expect `\"...\"`",
		},
		{
			name:     "missing msgstr",
			lines:    []string{``, `msgid "a"`, ``, `msgid "b"`, `msgstr "c"`},
			wantLine: 2,
			wantMsg:  "missing msgstr",
		},
		{
			name:     "missing msgstr at end of file",
			lines:    []string{`msgid "a"`, `"b"`},
			wantLine: 1,
			wantMsg:  "missing msgstr",
		},
		{
			name:     "unknown keyword in entry",
			lines:    []string{`msgid "a"`, `msgstrx "b"`},
			wantLine: 2,
			wantMsg:  "Expect `\"...\"`",
		},
		{
			name:     "msgid_plural after msgstr",
			lines:    []string{`msgid "a"`, `msgstr "b"`, `msgid_plural "c"`},
			wantLine: 3,
			wantMsg:  "unexpected token",
		},
		{
			name:     "garbage after fuzzy flag",
			lines:    []string{`#, fuzzy`, `garbage`},
			wantLine: 2,
			wantMsg:  "unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseEntries(NewLineScanner(tt.lines))

			require.Error(t, err)
			assert.Nil(t, entries)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %T", err)
			assert.Equal(t, tt.wantLine, perr.Line)
			assert.Equal(t, tt.wantMsg, perr.Message)
		})
	}
}
