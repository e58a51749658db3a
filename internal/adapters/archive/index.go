// Package archive implements the repository-facing PackageIndex: resolving
// a (suite, section, arch) slice into cached Package records, backed by the
// Fetcher and TagFileReader ports.
package archive

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// translationLinePattern captures the language code out of an InRelease
// manifest line naming a Translation-<code> index.
var translationLinePattern = regexp.MustCompile(`Translation-(\S+)`)

// xmlEscaper performs the minimal XML escaping applied to each description
// line before it is joined into a paragraph.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Index implements usecases.PackageIndex.
type Index struct {
	fetcher   usecases.Fetcher
	newReader func() usecases.TagFileReader
	root      string
	tmpDir    string

	mu           sync.Mutex
	pkgCache     map[string][]*entities.Package
	indexChanged map[string]int64
}

var _ usecases.PackageIndex = (*Index)(nil)

// NewIndex creates a PackageIndex rooted at root, using tmpDir as fetch
// scratch space. newReader must return a fresh TagFileReader on each call.
func NewIndex(fetcher usecases.Fetcher, newReader func() usecases.TagFileReader, root, tmpDir string) *Index {
	return &Index{
		fetcher:      fetcher,
		newReader:    newReader,
		root:         root,
		tmpDir:       tmpDir,
		pkgCache:     make(map[string][]*entities.Package),
		indexChanged: make(map[string]int64),
	}
}

// FindTranslations downloads suite's release manifest and returns the
// first-seen, deduplicated sequence of language codes named by its
// Translation-<code> lines, defaulting to ["en"] on any failure.
func (i *Index) FindTranslations(ctx context.Context, suite, section string) ([]string, error) {
	path, err := i.fetcher.Fetch(ctx, i.root, i.tmpDir, fmt.Sprintf("dists/%s/InRelease.%%s", suite))
	if err != nil {
		return []string{"en"}, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return []string{"en"}, nil
	}

	seen := make(map[string]bool)
	var codes []string
	scanner := bufio.NewScanner(bytes.NewReader(contents))
	for scanner.Scan() {
		m := translationLinePattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		code := m[1]
		if seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}

	if len(codes) == 0 {
		return []string{"en"}, nil
	}
	return codes, nil
}

// PackagesFor returns the cached Package vector for (suite, section, arch),
// loading it on first access.
func (i *Index) PackagesFor(ctx context.Context, suite, section, arch string) ([]*entities.Package, error) {
	key := cacheKey(suite, section, arch)

	i.mu.Lock()
	if cached, ok := i.pkgCache[key]; ok {
		i.mu.Unlock()
		return cached, nil
	}
	i.mu.Unlock()

	packages, err := i.loadPackages(ctx, suite, section, arch)
	if err != nil {
		return nil, err
	}

	i.mu.Lock()
	i.pkgCache[key] = packages
	i.mu.Unlock()
	return packages, nil
}

// Release clears both the package and change-detection caches.
func (i *Index) Release() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pkgCache = make(map[string][]*entities.Package)
	i.indexChanged = make(map[string]int64)
}

// HasChanges compares the index file's modification time against the
// timestamp previously persisted in store, writing the new timestamp back
// unconditionally.
func (i *Index) HasChanges(ctx context.Context, store usecases.Store, suite, section, arch string) (bool, error) {
	indexPath, err := i.fetcher.Fetch(ctx, i.root, i.tmpDir, indexTemplate(suite, section, arch))
	if err != nil {
		return true, nil
	}

	mtime, err := i.statMtime(indexPath)
	if err != nil {
		return true, nil
	}

	changed := true
	repoInfo, err := store.GetRepoInfo(ctx, suite, section, arch)
	if err == nil {
		if prev, ok := asInt64(repoInfo["index_mtime"]); ok && prev == mtime {
			changed = false
		}
	}

	if setErr := store.SetRepoInfo(ctx, suite, section, arch, map[string]any{"index_mtime": mtime}); setErr != nil {
		return changed, setErr
	}
	return changed, nil
}

func (i *Index) statMtime(path string) (int64, error) {
	i.mu.Lock()
	if mtime, ok := i.indexChanged[path]; ok {
		i.mu.Unlock()
		return mtime, nil
	}
	i.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	mtime := info.ModTime().Unix()

	i.mu.Lock()
	i.indexChanged[path] = mtime
	i.mu.Unlock()
	return mtime, nil
}

// loadPackages fetches and parses the (suite, section, arch) package index,
// then fills in long descriptions via loadPackageLongDescs.
func (i *Index) loadPackages(ctx context.Context, suite, section, arch string) ([]*entities.Package, error) {
	indexPath, err := i.fetcher.Fetch(ctx, i.root, i.tmpDir, indexTemplate(suite, section, arch))
	if err != nil {
		return nil, fmt.Errorf("resolve package index for %s/%s/%s: %w", suite, section, arch, err)
	}

	reader := i.newReader()
	if err := reader.Open(indexPath); err != nil {
		return nil, fmt.Errorf("open package index: %w", err)
	}
	defer reader.Close()

	var packages []*entities.Package
	for reader.NextSection() {
		name, _ := reader.ReadField("Package")
		version, _ := reader.ReadField("Version")
		filename, _ := reader.ReadField("Filename")
		maintainer, _ := reader.ReadField("Maintainer")

		pkg := entities.NewPackage(name, version, arch, filename, maintainer)
		if !pkg.Valid() {
			continue
		}
		packages = append(packages, pkg)
	}

	languages, err := i.FindTranslations(ctx, suite, section)
	if err != nil {
		languages = []string{"en"}
	}
	i.loadPackageLongDescs(ctx, packages, suite, section, languages)

	return packages, nil
}

// loadPackageLongDescs fetches each language's translation index and fills
// in the matching package's rendered long description.
func (i *Index) loadPackageLongDescs(ctx context.Context, packages []*entities.Package, suite, section string, languages []string) {
	byName := make(map[string]*entities.Package, len(packages))
	for _, pkg := range packages {
		byName[pkg.Name] = pkg
	}

	for _, lang := range languages {
		path, err := i.fetcher.Fetch(ctx, i.root, i.tmpDir, fmt.Sprintf("dists/%s/%s/i18n/Translation-%s.%%s", suite, section, lang))
		if err != nil {
			continue
		}

		reader := i.newReader()
		if err := reader.Open(path); err != nil {
			continue
		}

		for reader.NextSection() {
			name, ok := reader.ReadField("Package")
			if !ok {
				continue
			}
			raw, ok := reader.ReadField("Description-" + lang)
			if !ok {
				continue
			}
			pkg, found := byName[name]
			if !found {
				continue
			}

			rendered := renderDescription(raw)
			pkg.LongDescs[lang] = rendered
			if lang == "en" {
				pkg.LongDescs[entities.LocaleC] = rendered
			}
		}
		reader.Close()
	}
}

// renderDescription discards the short-summary first line of raw and folds
// the remainder into XML-escaped <p>...</p> paragraphs, a bare "." line
// marking a paragraph break.
func renderDescription(raw string) string {
	lines := strings.Split(raw, "\n")
	if len(lines) > 0 {
		lines = lines[1:]
	}

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		escaped := make([]string, len(current))
		for idx, l := range current {
			escaped[idx] = xmlEscaper.Replace(l)
		}
		paragraphs = append(paragraphs, "<p>"+strings.Join(escaped, " ")+"</p>")
		current = nil
	}

	for _, line := range lines {
		if line == "." {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return strings.Join(paragraphs, "\n")
}

func indexTemplate(suite, section, arch string) string {
	return fmt.Sprintf("dists/%s/%s/binary-%s/Packages.%%s", suite, section, arch)
}

func cacheKey(suite, section, arch string) string {
	return suite + "/" + section + "/" + arch
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
