package entities

import "strings"

// Package identifies a single binary package within one (suite, section,
// arch) slice of a repository. Identity is the (Name, Version, Arch)
// triple; PackageIndex owns the package's lifetime, every other component
// holds a read-only view.
type Package struct {
	Name       string
	Version    string
	Arch       string
	Filename   string
	Maintainer string

	// LongDescs maps a locale tag to the rendered long-description HTML
	// fragment, keyed the same way as Component localized attributes.
	LongDescs map[string]string
}

// NewPackage creates a Package with its localized-description map ready to
// receive entries.
func NewPackage(name, version, arch, filename, maintainer string) *Package {
	return &Package{
		Name:       name,
		Version:    version,
		Arch:       arch,
		Filename:   filename,
		Maintainer: maintainer,
		LongDescs:  make(map[string]string),
	}
}

// Valid reports whether all three identity fields and Filename are
// non-empty, per the spec's package validity rule.
func (p *Package) Valid() bool {
	return p.Name != "" && p.Version != "" && p.Arch != "" && p.Filename != ""
}

// Pkid returns the stable package identifier used as a persistent-store
// key, derived from the identity triple.
func (p *Package) Pkid() string {
	return strings.Join([]string{p.Name, p.Version, p.Arch}, "/")
}

// SetLongDesc stores the rendered long description under locale. When
// locale is "en" the same value is also stored under the reserved "C" tag,
// per the translation-correlation rule.
func (p *Package) SetLongDesc(locale, html string) {
	p.LongDescs[locale] = html
	if locale == "en" {
		p.LongDescs[LocaleC] = html
	}
}
