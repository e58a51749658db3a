// Package desktop parses freedesktop.org desktop-entry files into
// entities.Component records, implementing usecases.DesktopParser.
package desktop

import (
	"strings"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// controlCharReplacement is substituted for every disallowed control
// character encountered in a value string.
const controlCharReplacement = "#?#"

// categoryBlacklist entries and trailing locale brackets are handled by
// entities.IsBlacklistedCategory and the injected LocaleKeyDecoder
// respectively; this package only orchestrates the dispatch.

// recognizedTLDTokens is the set of leading reverse-DNS tokens that trigger
// the desktop-id rewriting rule when the configured format version is at
// or above entities.ReverseDNSFormatVersion.
var recognizedTLDTokens = map[string]bool{
	"com": true, "org": true, "net": true, "io": true,
	"edu": true, "gov": true, "info": true, "me": true,
	"app": true, "dev": true,
}

// Parser implements usecases.DesktopParser.
type Parser struct {
	decoder usecases.LocaleKeyDecoder
}

var _ usecases.DesktopParser = (*Parser)(nil)

// NewParser creates a desktop-entry parser that resolves localized keys
// through decoder.
func NewParser(decoder usecases.LocaleKeyDecoder) *Parser {
	return &Parser{decoder: decoder}
}

// Parse attaches a Component built from contents to result under the
// derived identifier, or does nothing when the file is skipped. It never
// returns an error for malformed input: problems are recorded as hints on
// result instead, per the parser's documented skip conditions.
func (p *Parser) Parse(result *entities.GeneratorResult, filename string, contents []byte, ignoreNoDisplay bool, formatVersion int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			result.AddHint(entities.FileSubject(filename), "desktop-file-error", map[string]string{
				"error": "internal parser error",
			})
		}
	}()

	group, ok := parseDesktopEntryGroup(contents)
	if !ok {
		result.AddHint(entities.FileSubject(filename), "desktop-file-error", map[string]string{
			"error": "no [Desktop Entry] group found",
		})
		return nil
	}

	if t, ok := group["Type"]; ok && t != "" && !strings.EqualFold(t, "application") {
		return nil
	}
	if strings.EqualFold(group["NoDisplay"], "true") && !ignoreNoDisplay {
		return nil
	}
	if strings.EqualFold(group["X-AppStream-Ignore"], "true") {
		return nil
	}

	id := deriveComponentID(filename, formatVersion)
	component := result.GetComponent(id)
	if component == nil {
		component = entities.NewComponent(id)
		result.AddComponent(component)
	}

	for rawKey, rawValue := range group {
		p.dispatchKey(result, component, filename, rawKey, rawValue)
	}

	return nil
}

// dispatchKey decodes rawKey's locale suffix and routes the sanitized
// value to the matching Component field.
func (p *Parser) dispatchKey(result *entities.GeneratorResult, component *entities.Component, filename, rawKey, rawValue string) {
	baseKey := rawKey
	locale := entities.LocaleC
	if open := strings.IndexByte(rawKey, '['); open != -1 {
		baseKey = rawKey[:open]
		decoded, ok := p.decoder.Decode(rawKey)
		if !ok {
			return
		}
		locale = decoded
	}

	value, quoted := sanitizeValue(rawValue)
	if quoted {
		result.AddHint(entities.ComponentSubject(component), "metainfo-quoted-value", map[string]string{
			"key": rawKey,
		})
	}

	switch {
	case baseKey == "Name":
		component.SetName(locale, value, true)
	case baseKey == "Comment":
		component.SetSummary(locale, value, true)
	case baseKey == "Categories":
		for _, cat := range splitNonEmpty(value, ";") {
			if entities.IsBlacklistedCategory(cat) {
				continue
			}
			if !entities.IsCanonicalCategory(cat) {
				result.AddHint(entities.ComponentSubject(component), "category-name-invalid", map[string]string{
					"category": cat,
				})
				continue
			}
			component.AddCategory(cat)
		}
	case baseKey == "Keywords":
		component.SetKeywords(locale, splitDropTrailingEmpty(value, ";"))
	case baseKey == "MimeType":
		component.AddProvides("mimetype", splitNonEmpty(value, ";"))
	case baseKey == "Icon":
		component.AddIcon(entities.Icon{Kind: "cached", Width: 1, Height: 1, Name: value})
	}
}

// sanitizeValue replaces disallowed control characters and reports whether
// the raw value was quote-wrapped (retained verbatim either way).
func sanitizeValue(raw string) (value string, quoted bool) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if isDisallowedControl(r) {
			b.WriteString(controlCharReplacement)
			continue
		}
		b.WriteRune(r)
	}
	value = b.String()

	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			quoted = true
		}
	}
	return value, quoted
}

func isDisallowedControl(r rune) bool {
	switch r {
	case 0x00, 0x08, 0x0B, 0x0C:
		return true
	}
	return r >= 0x0E && r <= 0x1F
}

// splitNonEmpty splits s on sep and drops empty elements.
func splitNonEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitDropTrailingEmpty splits s on sep, dropping only a single trailing
// empty element (the conventional terminator on a ";"-delimited list).
func splitDropTrailingEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// deriveComponentID applies the desktop-id rewriting rule: strip the
// ".desktop" suffix when formatVersion is at or above the reverse-DNS
// cutoff and the basename's leading token is a recognized TLD.
func deriveComponentID(filename string, formatVersion int) string {
	if formatVersion < entities.ReverseDNSFormatVersion {
		return filename
	}
	stem := strings.TrimSuffix(filename, ".desktop")
	if stem == filename {
		return filename
	}
	firstSegment, _, _ := strings.Cut(stem, ".")
	if !recognizedTLDTokens[strings.ToLower(firstSegment)] {
		return filename
	}
	return stem
}

// parseDesktopEntryGroup extracts the key=value pairs of the
// "[Desktop Entry]" group, stopping at the next group header or EOF.
// Comment lines ("#...") and blank lines are ignored. Returns ok=false
// when the group header is never found.
func parseDesktopEntryGroup(contents []byte) (map[string]string, bool) {
	lines := strings.Split(string(contents), "\n")

	inGroup := false
	found := false
	group := make(map[string]string)

	for _, rawLine := range lines {
		line := strings.TrimRight(rawLine, "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			if trimmed == "[Desktop Entry]" {
				inGroup = true
				found = true
				continue
			}
			if inGroup {
				break
			}
			continue
		}

		if !inGroup {
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		group[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return group, found
}
