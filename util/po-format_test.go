package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeQuotes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`no quotes`, `no quotes`},
		{`say "hi"`, `say \"hi\"`},
		{`say \"hi\"`, `say \"hi\"`},
		{`a\\"b`, `a\\\"b`},
		{`end\n"`, `end\n\"`},
		{`"`, `\"`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeQuotes(tt.in), "EscapeQuotes(%q)", tt.in)
	}
}

func TestFormatFieldWidthBoundary(t *testing.T) {
	f := NewFormatter(FormatOptions{LineLength: 20, WideCharMultiplier: 1})

	// msgid + space + 2 quotes + 12 chars = 20
	assert.Equal(t, []string{`msgid "abcdefghijkl"`}, f.FormatField("msgid", "abcdefghijkl"))
	assert.Equal(t, []string{`msgid ""`, `"abcdefghijklm"`}, f.FormatField("msgid", "abcdefghijklm"))
}

func TestFormatFieldWideChars(t *testing.T) {
	narrow := NewFormatter(FormatOptions{LineLength: 20, WideCharMultiplier: 1})
	wide := NewFormatter(FormatOptions{LineLength: 20, WideCharMultiplier: 3})

	// 5 + 4*3 + 3 = 20
	assert.Equal(t, []string{`msgid "你好世界"`}, wide.FormatField("msgid", "你好世界"))
	// 5 + 5*3 + 3 = 23
	assert.Equal(t, []string{`msgid ""`, `"你好世界啊"`}, wide.FormatField("msgid", "你好世界啊"))
	assert.Equal(t, []string{`msgid "你好世界啊"`}, narrow.FormatField("msgid", "你好世界啊"))

	assert.Equal(t, []string{"你好世", "界你好", "世界"}, wide.Wrap("你好世界你好世界", 9))
}

func TestFormatFieldEscapesAndSpaces(t *testing.T) {
	f := NewFormatter(FormatOptions{
		LineLength:         76,
		WideCharMultiplier: 1,
		Spacer:             CJKSpacer{},
	})

	assert.Equal(t, []string{`msgstr "使用 git 命令 \"add\""`}, f.FormatField("msgstr", `使用git命令 "add"`))
}

func TestWrap(t *testing.T) {
	f := NewFormatter(DefaultFormatOptions())

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{
			name:  "words",
			text:  "hello world foo",
			width: 11,
			want:  []string{"hello world", " foo"},
		},
		{
			name:  "hyphenated word",
			text:  "well-known thing",
			width: 6,
			want:  []string{"well-", "known ", "thing"},
		},
		{
			name:  "leading dashes of an option are kept",
			text:  "use '--cached' here",
			width: 10,
			want:  []string{"use ", "'--cached'", " here"},
		},
		{
			name:  "long word",
			text:  "abcdefgh",
			width: 3,
			want:  []string{"abc", "def", "gh"},
		},
		{
			name:  "long word after short one",
			text:  "ab cdefghij",
			width: 5,
			want:  []string{"ab cd", "efghi", "j"},
		},
		{
			name:  "escape sequence is not split",
			text:  `ab\ncd`,
			width: 3,
			want:  []string{"ab", `\nc`, "d"},
		},
		{
			name:  "no-break space keeps punctuation",
			text:  "Voulez-vous continuer\u00a0?",
			width: 22,
			want:  []string{"Voulez-vous ", "continuer\u00a0?"},
		},
		{
			name:  "no-break space before colon",
			text:  "Nom\u00a0: x",
			width: 5,
			want:  []string{"Nom\u00a0:", " x"},
		},
		{
			name:  "empty",
			text:  "",
			width: 10,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Wrap(tt.text, tt.width))
		})
	}
}

func TestWrapRoundTrip(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog.  Twice, with  double spaces. ",
		"  leading and trailing whitespace  ",
		`usage: git add [<options>] [--] <pathspec>...\n\n    -n, --dry-run         dry run\n`,
		"在本地仓库中使用 git add 命令添加文件内容至索引，并为下一次提交做准备。",
		strings.Repeat("x", 200),
		`quote \" and backslash \\ survive`,
	}

	for _, multiplier := range []float64{1, 2, 3} {
		f := NewFormatter(FormatOptions{LineLength: 30, WideCharMultiplier: multiplier})
		for _, text := range texts {
			segments := f.Wrap(text, 28)
			assert.Equal(t, text, strings.Join(segments, ""))
			for _, segment := range segments {
				assert.LessOrEqual(t, f.measure.StringWidth(segment), 28.0, "segment %q", segment)
			}
		}
	}
}

func TestFormatSuppressMsgidRewrite(t *testing.T) {
	entries := parseLines(t,
		`msgid ""`,
		`"Hello"`,
		`msgstr ""`,
		`"你好"`,
	)
	require.Len(t, entries, 1)

	f := NewFormatter(DefaultFormatOptions())
	assert.Equal(t, []string{`msgid "Hello"`, `msgstr "你好"`}, f.Format(entries[0]))

	opts := DefaultFormatOptions()
	opts.SuppressMsgidRewrite = true
	f = NewFormatter(opts)
	assert.Equal(t, []string{`msgid ""`, `"Hello"`, `msgstr "你好"`}, f.Format(entries[0]))
}

func TestFormatPlural(t *testing.T) {
	entries := parseLines(t,
		`msgctxt ""`,
		`"menu"`,
		`msgid "%d file"`,
		`msgid_plural ""`,
		`"%d files"`,
		`msgstr[0] "%d 个文件"`,
		`msgstr[1] ""`,
		`"%d 个文件"`,
	)
	require.Len(t, entries, 1)

	f := NewFormatter(DefaultFormatOptions())
	assert.Equal(t, []string{
		`msgctxt "menu"`,
		`msgid "%d file"`,
		`msgid_plural "%d files"`,
		`msgstr[0] "%d 个文件"`,
		`msgstr[1] "%d 个文件"`,
	}, f.Format(entries[0]))
}

func TestForLanguage(t *testing.T) {
	opts := DefaultFormatOptions()
	opts.LocaleWideCharMultiplier = map[string]float64{"zh": 3, "ja": 0}

	assert.Equal(t, 3.0, opts.ForLanguage("zh").WideCharMultiplier)
	assert.Equal(t, 1.0, opts.ForLanguage("ja").WideCharMultiplier)
	assert.Equal(t, 1.0, opts.ForLanguage("").WideCharMultiplier)
	assert.Equal(t, 1.0, opts.WideCharMultiplier)
}
