// Package flag provides viper-backed getters for command line options.
//
// Every option can also be set from the environment (POFMT_LINE_LENGTH, ...)
// or from a config file, see package config.
package flag

import (
	"github.com/spf13/viper"
)

// Keys used to bind command line flags into viper.
const (
	KeyVerbose                  = "verbose"
	KeyQuiet                    = "quiet"
	KeyConfig                   = "config"
	KeyLineLength               = "line-length"
	KeyWideCharMultiplier       = "wide-char-multiplier"
	KeyLocaleWideCharMultiplier = "locale-wide-char-multiplier"
	KeySuppressMsgidRewrite     = "suppress-msgid-rewrite"
	KeySpacing                  = "spacing"
	KeyCheck                    = "check"
	KeySince                    = "since"
	KeyJobs                     = "jobs"
	KeyColor                    = "color"
)

// Default values of format options.
const (
	DefaultLineLength         = 76
	DefaultWideCharMultiplier = 1.0
)

// Color modes for --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Verbose returns option "--verbose".
func Verbose() int {
	return viper.GetInt(KeyVerbose)
}

// Quiet returns option "--quiet".
func Quiet() int {
	return viper.GetInt(KeyQuiet)
}

// ConfigFile returns option "--config".
func ConfigFile() string {
	return viper.GetString(KeyConfig)
}

// LineLength returns option "--line-length". The value is not checked,
// commands validate it.
func LineLength() int {
	return viper.GetInt(KeyLineLength)
}

// WideCharMultiplier returns option "--wide-char-multiplier".
func WideCharMultiplier() float64 {
	return viper.GetFloat64(KeyWideCharMultiplier)
}

// LocaleWideCharMultiplier returns the per-language multipliers, which can
// only be set from a config file.
func LocaleWideCharMultiplier() map[string]float64 {
	m, _ := viper.Get(KeyLocaleWideCharMultiplier).(map[string]float64)
	return m
}

// SuppressMsgidRewrite returns option "--suppress-msgid-rewrite".
func SuppressMsgidRewrite() bool {
	return viper.GetBool(KeySuppressMsgidRewrite)
}

// Spacing returns option "--spacing".
func Spacing() bool {
	return viper.GetBool(KeySpacing)
}

// Check returns option "--check".
func Check() bool {
	return viper.GetBool(KeyCheck)
}

// Since returns option "--since".
func Since() string {
	return viper.GetString(KeySince)
}

// Jobs returns option "--jobs".
func Jobs() int {
	return viper.GetInt(KeyJobs)
}

// Color returns option "--color".
func Color() string {
	switch c := viper.GetString(KeyColor); c {
	case ColorAlways, ColorNever:
		return c
	}
	return ColorAuto
}
