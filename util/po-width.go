package util

import (
	"github.com/mattn/go-runewidth"
)

// runeCondition treats East Asian ambiguous runes as narrow, so widths do
// not depend on the locale of the user running the formatter.
var runeCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// IsWideRune returns true for runes displayed in two columns, such as CJK
// ideographs and fullwidth forms.
func IsWideRune(r rune) bool {
	return runeCondition.RuneWidth(r) == 2
}

// WidthMeasure measures text for line wrapping. A wide rune counts as
// Multiplier, any other rune counts as 1.
type WidthMeasure struct {
	Multiplier float64
}

// RuneWidth returns the width of r.
func (m WidthMeasure) RuneWidth(r rune) float64 {
	if IsWideRune(r) {
		if m.Multiplier > 0 {
			return m.Multiplier
		}
	}
	return 1
}

// StringWidth returns the width of s.
func (m WidthMeasure) StringWidth(s string) float64 {
	var width float64
	for _, r := range s {
		width += m.RuneWidth(r)
	}
	return width
}
