// Package locale decodes a parenthesized desktop-entry key suffix into a
// validated locale tag, e.g. "Name[de_DE]" -> "de_DE".
package locale

import (
	"strings"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// Decoder implements usecases.LocaleKeyDecoder.
type Decoder struct{}

var _ usecases.LocaleKeyDecoder = (*Decoder)(nil)

// NewDecoder creates a new locale key decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode returns the locale tag embedded in key's bracketed suffix, or
// "C" when key carries no bracket at all. Returns ("", false) when the
// bracketed token fails the locale-validity predicate.
func (d *Decoder) Decode(key string) (string, bool) {
	open := strings.IndexByte(key, '[')
	if open == -1 {
		return entities.LocaleC, true
	}
	if !strings.HasSuffix(key, "]") {
		return "", false
	}

	tag := key[open+1 : len(key)-1]

	tag = trimSuffixFold(tag, ".utf-8")

	if dot := strings.LastIndexByte(tag, '.'); dot != -1 {
		if strings.HasPrefix(strings.ToLower(tag[dot+1:]), "iso") {
			tag = tag[:dot]
		}
	}

	if !entities.ValidateLocale(tag) {
		return "", false
	}
	return tag, true
}

// trimSuffixFold trims suffix from s case-insensitively.
func trimSuffixFold(s, suffix string) string {
	if len(s) < len(suffix) {
		return s
	}
	if strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return s[:len(s)-len(suffix)]
	}
	return s
}
