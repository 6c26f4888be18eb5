package util

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
)

// Header holds the metadata fields of the header entry, such as
// "Language" or "Content-Type".
type Header map[string]string

// ParseHeader parses the msgstr of the header entry. Fields are separated
// by the escape sequence \n as written in the PO file.
func ParseHeader(msgstr string) Header {
	h := Header{}
	for _, line := range strings.Split(msgstr, `\n`) {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		h[key] = strings.TrimSpace(value)
	}
	return h
}

// Get returns the value of key, matched case-insensitively.
func (h Header) Get(key string) string {
	if v, ok := h[key]; ok {
		return v
	}
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// Language returns the language of the catalog, e.g. zh_CN, sr@latin or
// pt_BR.UTF-8 as a language tag.
func (h Header) Language() (language.Tag, error) {
	value := h.Get("Language")
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	if value == "" {
		return language.Und, errors.New("no language in header")
	}
	return language.Parse(strings.ReplaceAll(value, "_", "-"))
}

// LanguageBase returns the base language, such as "zh" for zh_CN, or an
// empty string if the header has no valid language.
func (h Header) LanguageBase() string {
	tag, err := h.Language()
	if err != nil {
		return ""
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return ""
	}
	return base.String()
}
