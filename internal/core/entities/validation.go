package entities

import (
	"regexp"
	"strings"
)

// localePattern matches a locale tag: letters, optional _REGION, optional
// @modifier. "C" is accepted separately as the reserved untranslated tag.
var localePattern = regexp.MustCompile(`^[a-zA-Z]+(_[a-zA-Z]+)?(@[a-zA-Z0-9]+)?$`)

// LocaleC is the reserved locale tag for the untranslated base value. Code
// must never conflate it with a missing map entry.
const LocaleC = "C"

// ValidateLocale reports whether tag is "C" or a well-formed locale token.
func ValidateLocale(tag string) bool {
	if tag == LocaleC {
		return true
	}
	if tag == "" {
		return false
	}
	return localePattern.MatchString(tag)
}

// ValidatePath checks if a path is valid (non-empty, no traversal).
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.Contains(path, "..") {
		return ErrInvalidName
	}
	return nil
}

// categoryBlacklist holds the fixed set of desktop-entry categories that are
// dropped unconditionally regardless of the canonical category list.
var categoryBlacklist = map[string]bool{
	"GTK":         true,
	"Qt":          true,
	"GNOME":       true,
	"KDE":         true,
	"GUI":         true,
	"Application": true,
}

// IsBlacklistedCategory reports whether a raw Categories= entry is one of
// the fixed desktop-toolkit markers, or an X- vendor extension, that are
// always dropped before the canonical-list check runs.
func IsBlacklistedCategory(category string) bool {
	if categoryBlacklist[category] {
		return true
	}
	return strings.HasPrefix(strings.ToLower(category), "x-")
}

// canonicalCategories is the set of category names a survivor must belong
// to after the blacklist filter. It is intentionally small; a real
// deployment would load the full freedesktop.org menu-spec list from
// configuration, but the core only needs membership semantics to be
// testable.
var canonicalCategories = map[string]bool{
	"AudioVideo":    true,
	"Audio":         true,
	"Video":         true,
	"Development":   true,
	"Education":     true,
	"Game":          true,
	"Graphics":      true,
	"Network":       true,
	"Office":        true,
	"Science":       true,
	"Settings":      true,
	"System":        true,
	"Utility":       true,
	"Accessibility": true,
}

// IsCanonicalCategory reports whether category appears in the canonical
// category list.
func IsCanonicalCategory(category string) bool {
	return canonicalCategories[category]
}
