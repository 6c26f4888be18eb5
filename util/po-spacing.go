package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Spacer normalizes spacing of a message before it is wrapped.
type Spacer interface {
	Space(text string) string
}

// NewSpacer returns the CJK spacer when enabled, otherwise a no-op.
func NewSpacer(enabled bool) Spacer {
	if enabled {
		return CJKSpacer{}
	}
	return NoSpacing{}
}

// NoSpacing leaves text untouched.
type NoSpacing struct{}

// Space implements Spacer.
func (NoSpacing) Space(text string) string {
	return text
}

type scriptClass int

const (
	scriptOther scriptClass = iota
	scriptCJK
	scriptLatin
)

func classifyRune(r rune) scriptClass {
	switch {
	case unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Bopomofo):
		return scriptCJK
	case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		return scriptLatin
	}
	return scriptOther
}

// CJKSpacer inserts one space between adjacent CJK characters and ASCII
// letters or digits. Escape sequences such as \n split the text into runs
// which are spaced independently, so "\n中" stays as it is.
type CJKSpacer struct{}

// Space implements Spacer.
func (CJKSpacer) Space(text string) string {
	if !strings.Contains(text, `\`) {
		return spaceCJK(text)
	}

	var (
		b     strings.Builder
		start int
	)
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 >= len(text) {
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i+1:])
		b.WriteString(spaceCJK(text[start:i]))
		b.WriteString(text[i : i+1+size])
		i += size
		start = i + 1
	}
	b.WriteString(spaceCJK(text[start:]))
	return b.String()
}

// spaceCJK spaces plain text without escape sequences.
func spaceCJK(text string) string {
	var (
		b    strings.Builder
		prev = scriptOther
	)

	b.Grow(len(text))
	for _, r := range text {
		class := classifyRune(r)
		if (prev == scriptCJK && class == scriptLatin) ||
			(prev == scriptLatin && class == scriptCJK) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
		prev = class
	}
	return b.String()
}
