// Package report renders the aggregator's DataSummary into templated
// output, implementing usecases.TemplateEngine with text/template (the
// contract only needs name-indexed context resolution, sub-iteration, and
// partial functions — html/template's auto-escaping buys nothing here and
// would fight the literal HTML fragments already produced upstream).
package report

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"text/template"

	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

//go:embed templates/default/*.tmpl
var embeddedDefaults embed.FS

// Engine resolves template names against a stack of search directories,
// each checked at <dir>/<projectName>, then <dir>/default, then <dir>
// itself, most-recently-added directory taking priority.
type Engine struct {
	projectName string

	mu          sync.RWMutex
	searchPaths []string
	cache       map[string]*template.Template
}

var _ usecases.TemplateEngine = (*Engine)(nil)

// NewEngine creates a template engine that resolves project-specific
// template overrides under projectName before falling back to "default".
func NewEngine(projectName string) *Engine {
	return &Engine{
		projectName: projectName,
		cache:       make(map[string]*template.Template),
	}
}

// AddSearchPath adds path to the search stack. Later additions take
// priority over earlier ones.
func (e *Engine) AddSearchPath(path string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.searchPaths = append(e.searchPaths, path)
	e.cache = make(map[string]*template.Template)
}

// AddEmbeddedDefaults extracts the built-in default templates to a fresh
// temp directory and adds it as a search path, giving the engine a working
// fallback before any project-specific override directory is added.
func (e *Engine) AddEmbeddedDefaults() error {
	dir, err := os.MkdirTemp("", "asgen-templates-*")
	if err != nil {
		return fmt.Errorf("create embedded template dir: %w", err)
	}
	defaultDir := filepath.Join(dir, "default")
	if err := os.MkdirAll(defaultDir, 0o755); err != nil {
		return fmt.Errorf("create embedded template dir: %w", err)
	}

	entries, err := embeddedDefaults.ReadDir("templates/default")
	if err != nil {
		return fmt.Errorf("read embedded templates: %w", err)
	}
	for _, entry := range entries {
		contents, err := embeddedDefaults.ReadFile("templates/default/" + entry.Name())
		if err != nil {
			return fmt.Errorf("read embedded template %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(defaultDir, entry.Name()), contents, 0o644); err != nil {
			return fmt.Errorf("write embedded template %s: %w", entry.Name(), err)
		}
	}

	e.AddSearchPath(dir)
	return nil
}

// Render loads the template named name and executes it against data. Each
// call gets its own partials map, so a block/partial pair registered
// during one render never leaks into the next.
func (e *Engine) Render(_ context.Context, name string, data map[string]any) (string, error) {
	tmpl, err := e.resolve(name)
	if err != nil {
		return "", err
	}

	clone, err := tmpl.Clone()
	if err != nil {
		return "", fmt.Errorf("clone template %s: %w", name, err)
	}
	clone = clone.Funcs(renderFuncMap(make(map[string]string)))

	var buf bytes.Buffer
	if err := clone.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (e *Engine) resolve(name string) (*template.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.cache[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	paths := append([]string(nil), e.searchPaths...)
	e.mu.RUnlock()

	path, err := findTemplateFile(paths, e.projectName, name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(filepath.Base(path)).Funcs(renderFuncMap(nil)).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	resolved := tmpl.Lookup(filepath.Base(path))
	if resolved == nil {
		return nil, fmt.Errorf("template %q not found after parsing %s", name, path)
	}

	e.mu.Lock()
	e.cache[name] = resolved
	e.mu.Unlock()
	return resolved, nil
}

// findTemplateFile searches searchPaths from highest to lowest priority,
// each checked at <dir>/<projectName>/<name>.tmpl, <dir>/default/<name>.tmpl,
// then <dir>/<name>.tmpl.
func findTemplateFile(searchPaths []string, projectName, name string) (string, error) {
	filename := name + ".tmpl"

	for i := len(searchPaths) - 1; i >= 0; i-- {
		base := searchPaths[i]
		candidates := []string{
			filepath.Join(base, projectName, filename),
			filepath.Join(base, "default", filename),
			filepath.Join(base, filename),
		}
		for _, candidate := range candidates {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("template %q not found in any search path", name)
}

// renderFuncMap supplies the helpers templates need for partial/block-style
// composition, closing over store, a map private to a single render. A
// template invokes {{partial "name" content}} to register content under
// name, then {{blockOr "name" fallback}} elsewhere to reuse it — falling
// back to its own inline body when no partial of that name was registered
// during this render. The block helper is not called "block" because
// text/template reserves that word for its own {{block}}...{{end}} action.
// store may be nil at parse time, when the functions are only checked to
// exist and never actually invoked.
func renderFuncMap(store map[string]string) template.FuncMap {
	return template.FuncMap{
		"dict":    buildDict,
		"partial": registerPartial(store),
		"blockOr": resolveBlock(store),
	}
}

// registerPartial stores content under name for later lookup by blockOr.
// It renders nothing in place: {{partial "name" "..."}} only registers.
func registerPartial(store map[string]string) func(name, content string) string {
	return func(name, content string) string {
		store[name] = content
		return ""
	}
}

// resolveBlock returns the partial registered under name, if any, otherwise
// fallback — the observable behavior spec'd for template inheritance:
// a block reuses a named partial when one was defined, and falls back to
// its own body otherwise.
func resolveBlock(store map[string]string) func(name, fallback string) string {
	return func(name, fallback string) string {
		if v, ok := store[name]; ok {
			return v
		}
		return fallback
	}
}

// buildDict lets a template assemble an inline context for a sub-template
// invocation: {{template "x" (dict "key" .Value)}}.
func buildDict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict requires an even number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict keys must be strings")
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
