package util

import (
	"strings"
	"unicode"
)

// DefaultLineLength is the max length of a formatted msgid or msgstr line.
const DefaultLineLength = 76

// FormatOptions controls how entries are rendered.
type FormatOptions struct {
	// LineLength is the max width of an output line, quotes included.
	LineLength int
	// WideCharMultiplier is the width of a wide (CJK) rune.
	WideCharMultiplier float64
	// LocaleWideCharMultiplier overrides WideCharMultiplier for files
	// whose header declares one of these languages, e.g. "zh".
	LocaleWideCharMultiplier map[string]float64
	// SuppressMsgidRewrite keeps msgctxt, msgid and msgid_plural lines as
	// they are and formats only the translations.
	SuppressMsgidRewrite bool
	// Spacer is applied to each message before wrapping. Nil means none.
	Spacer Spacer
}

// DefaultFormatOptions returns options with default values.
func DefaultFormatOptions() FormatOptions {
	return FormatOptions{
		LineLength:         DefaultLineLength,
		WideCharMultiplier: 1.0,
		Spacer:             NoSpacing{},
	}
}

// ForLanguage returns a copy of the options with the wide char multiplier
// of language base lang, if configured.
func (o FormatOptions) ForLanguage(lang string) FormatOptions {
	if m, ok := o.LocaleWideCharMultiplier[lang]; ok && m > 0 {
		o.WideCharMultiplier = m
	}
	return o
}

// Formatter renders entries into PO lines.
type Formatter struct {
	lineLength           int
	measure              WidthMeasure
	spacer               Spacer
	suppressMsgidRewrite bool
}

// NewFormatter creates a formatter from opts.
func NewFormatter(opts FormatOptions) *Formatter {
	f := &Formatter{
		lineLength:           opts.LineLength,
		measure:              WidthMeasure{Multiplier: opts.WideCharMultiplier},
		spacer:               opts.Spacer,
		suppressMsgidRewrite: opts.SuppressMsgidRewrite,
	}
	if f.lineLength <= 0 {
		f.lineLength = DefaultLineLength
	}
	if f.spacer == nil {
		f.spacer = NoSpacing{}
	}
	return f
}

// Format returns the replacement lines for entry.
func (f *Formatter) Format(entry *Entry) []string {
	var lines []string

	for _, field := range entry.Fields {
		if f.suppressMsgidRewrite && field.IsSource() {
			lines = append(lines, field.Lines...)
			continue
		}
		lines = append(lines, f.FormatField(field.Keyword, field.Text)...)
	}
	return lines
}

// FormatField renders one field: on a single line if it fits, otherwise as
// an empty first line followed by the wrapped text.
func (f *Formatter) FormatField(keyword, text string) []string {
	text = EscapeQuotes(text)
	text = f.spacer.Space(text)

	// 1 space + 2 quotes = 3
	if f.measure.StringWidth(keyword)+f.measure.StringWidth(text)+3 <= float64(f.lineLength) {
		return []string{keyword + ` "` + text + `"`}
	}
	lines := []string{keyword + ` ""`}
	for _, segment := range f.Wrap(text, float64(f.lineLength-2)) {
		lines = append(lines, `"`+segment+`"`)
	}
	return lines
}

// EscapeQuotes escapes every double quote not already escaped.
func EscapeQuotes(text string) string {
	if !strings.Contains(text, `"`) {
		return text
	}

	var (
		b       strings.Builder
		escaped bool
	)
	for _, r := range text {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '"':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// atom is a rune or an escape sequence, the unit wrapping never splits.
type atom struct {
	text   string
	width  float64
	space  bool
	hyphen bool
	letter bool
}

type chunk struct {
	atoms []atom
	width float64
}

func (c *chunk) String() string {
	var b strings.Builder
	for _, a := range c.atoms {
		b.WriteString(a.text)
	}
	return b.String()
}

func (f *Formatter) atoms(text string) []atom {
	var (
		runes = []rune(text)
		atoms = make([]atom, 0, len(runes))
	)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			atoms = append(atoms, atom{
				text:  string(runes[i : i+2]),
				width: f.measure.RuneWidth(r) + f.measure.RuneWidth(runes[i+1]),
			})
			i++
			continue
		}
		atoms = append(atoms, atom{
			text:   string(r),
			width:  f.measure.RuneWidth(r),
			space:  isBreakSpace(r),
			hyphen: r == '-',
			letter: unicode.IsLetter(r) || unicode.IsDigit(r),
		})
	}
	return atoms
}

// isBreakSpace reports whitespace that wrapping may break at. No-break
// spaces such as U+00A0 are part of the word around them.
func isBreakSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// splitChunks splits atoms into runs of whitespace and words. Words are
// also split after a hyphen joining two letters, as in "well-known".
func splitChunks(atoms []atom) []chunk {
	var (
		chunks []chunk
		cur    chunk
	)

	flush := func() {
		if len(cur.atoms) > 0 {
			chunks = append(chunks, cur)
			cur = chunk{}
		}
	}
	for i, a := range atoms {
		if len(cur.atoms) > 0 && cur.atoms[len(cur.atoms)-1].space != a.space {
			flush()
		}
		cur.atoms = append(cur.atoms, a)
		cur.width += a.width
		if a.hyphen && i > 0 && atoms[i-1].letter && i+1 < len(atoms) && atoms[i+1].letter {
			flush()
		}
	}
	flush()
	return chunks
}

// splitChunk cuts the head of c that fits in space. When force is set at
// least one atom is taken, so that wrapping always makes progress.
func splitChunk(c chunk, space float64, force bool) (chunk, chunk) {
	var head chunk

	n := 0
	for n < len(c.atoms) && head.width+c.atoms[n].width <= space {
		head.width += c.atoms[n].width
		n++
	}
	if n == 0 && force {
		head.width = c.atoms[0].width
		n = 1
	}
	head.atoms = c.atoms[:n]
	return head, chunk{atoms: c.atoms[n:], width: c.width - head.width}
}

// Wrap breaks text into segments no wider than width. Whitespace is kept,
// so joining the segments gives back text.
func (f *Formatter) Wrap(text string, width float64) []string {
	var (
		chunks = splitChunks(f.atoms(text))
		lines  []string
	)

	for len(chunks) > 0 {
		var (
			line      strings.Builder
			lineWidth float64
		)

		for len(chunks) > 0 && lineWidth+chunks[0].width <= width {
			line.WriteString(chunks[0].String())
			lineWidth += chunks[0].width
			chunks = chunks[1:]
		}
		if len(chunks) > 0 && chunks[0].width > width {
			head, tail := splitChunk(chunks[0], width-lineWidth, line.Len() == 0)
			line.WriteString(head.String())
			chunks[0] = tail
		}
		if line.Len() > 0 {
			lines = append(lines, line.String())
		}
	}
	return lines
}
