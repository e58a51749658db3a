package entities

import "sort"

// ComponentKind identifies the AppStream component type. This core only
// ever produces KindDesktopApp, but the field is kept explicit rather than
// implied so downstream consumers don't have to special-case it.
type ComponentKind string

// KindDesktopApp is the only component kind produced by this core.
const KindDesktopApp ComponentKind = "desktop-app"

// Icon describes a single icon reference attached to a component.
type Icon struct {
	// Kind is the icon storage kind, e.g. "cached", "stock", "remote".
	Kind string
	// Width and Height are the icon's pixel dimensions. The real dimensions
	// are resolved by an icon-rendering pipeline outside this core; until
	// then placeholder values are stored.
	Width, Height int
	// Name is the icon name or file basename as declared by the component.
	Name string
}

// Component is a single AppStream catalog entry extracted from one
// desktop-entry file. It is created on first encounter of a file basename
// within a GeneratorResult, mutated only during that file's parse, and
// handed off immutably to aggregation afterward.
type Component struct {
	// ID is the component identifier: a reverse-DNS-style token or the raw
	// file basename, depending on the desktop-id rewriting rule.
	ID string

	// Kind is always KindDesktopApp in this core.
	Kind ComponentKind

	// Name maps a locale tag ("C" for untranslated) to the localized name.
	Name map[string]string

	// Summary maps a locale tag to the localized one-line summary.
	Summary map[string]string

	// Keywords maps a locale tag to an ordered list of localized keywords.
	Keywords map[string][]string

	// Categories is the set of retained freedesktop.org category names.
	Categories map[string]bool

	// Provides groups provided items by kind (e.g. "mimetype").
	Provides map[string][]string

	// Icons holds every icon reference attached to the component.
	Icons []Icon
}

// NewComponent creates an empty Component for the given file basename id.
func NewComponent(id string) *Component {
	return &Component{
		ID:         id,
		Kind:       KindDesktopApp,
		Name:       make(map[string]string),
		Summary:    make(map[string]string),
		Keywords:   make(map[string][]string),
		Categories: make(map[string]bool),
		Provides:   make(map[string][]string),
	}
}

// SetName sets the localized name for locale. An explicitly decoded locale
// key always wins; a backend-hook-supplied translation only fills a gap.
func (c *Component) SetName(locale, value string, explicit bool) {
	setLocalized(c.Name, locale, value, explicit)
}

// SetSummary sets the localized summary for locale with the same merge
// precedence rule as SetName.
func (c *Component) SetSummary(locale, value string, explicit bool) {
	setLocalized(c.Summary, locale, value, explicit)
}

// setLocalized applies the merge-precedence rule shared by Name and
// Summary: an explicit value always overwrites; a hook-supplied value only
// fills a gap left by an absent explicit entry.
func setLocalized(m map[string]string, locale, value string, explicit bool) {
	if !explicit {
		if _, exists := m[locale]; exists {
			return
		}
	}
	m[locale] = value
}

// SetKeywords sets the localized keyword list for locale.
func (c *Component) SetKeywords(locale string, keywords []string) {
	c.Keywords[locale] = keywords
}

// AddCategory adds a retained category name to the component's category set.
func (c *Component) AddCategory(category string) {
	c.Categories[category] = true
}

// CategoryList returns the component's categories as a sorted slice, useful
// for deterministic rendering and tests.
func (c *Component) CategoryList() []string {
	out := make([]string, 0, len(c.Categories))
	for cat := range c.Categories {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// AddProvides appends items to the provided-items list under kind.
func (c *Component) AddProvides(kind string, items []string) {
	c.Provides[kind] = append(c.Provides[kind], items...)
}

// AddIcon attaches an icon reference to the component.
func (c *Component) AddIcon(icon Icon) {
	c.Icons = append(c.Icons, icon)
}
