package report

import (
	"sort"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

// ComponentContext builds a per-component template context, setting the
// has_errors/has_warnings/has_infos presence markers only when the
// corresponding count is positive. rootURL is injected as root_url, per the
// configured htmlBaseUrl, so every rendered page (and the component
// fragments nested within it) can build links relative to the same root.
func ComponentContext(entry *entities.HintEntry, rootURL string) map[string]any {
	ctx := map[string]any{
		"component_id": entry.ComponentID,
		"archs":        sortedArchs(entry),
		"infos":        renderedHintContexts(entry.Infos),
		"warnings":     renderedHintContexts(entry.Warnings),
		"errors":       renderedHintContexts(entry.Errors),
		"root_url":     rootURL,
	}
	setPresenceMarkers(ctx, len(entry.Infos), len(entry.Warnings), len(entry.Errors))
	return ctx
}

// PackagePageContext builds the template context for one package's report
// page: its identity plus every component's hints, sorted by component id
// for deterministic rendering. rootURL is injected as root_url.
func PackagePageContext(pkg *entities.PkgSummary, byComponent map[string]*entities.HintEntry, rootURL string) map[string]any {
	ids := make([]string, 0, len(byComponent))
	for id := range byComponent {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	components := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		components = append(components, ComponentContext(byComponent[id], rootURL))
	}

	ctx := map[string]any{
		"pkg_name":    pkg.PkgName,
		"pkg_version": pkg.PkgVersion,
		"maintainer":  pkg.Maintainer,
		"components":  components,
		"root_url":    rootURL,
	}
	setPresenceMarkers(ctx, pkg.InfoCount, pkg.WarningCount, pkg.ErrorCount)
	return ctx
}

// MaintainerIndexContext builds the top-level index context for one
// (suite, section) summary: maintainers in sorted order, each carrying its
// packages in the order they were aggregated. rootURL is injected as
// root_url.
func MaintainerIndexContext(summary *entities.DataSummary, rootURL string) map[string]any {
	maintainers := make([]string, 0, len(summary.PkgSummaries))
	for m := range summary.PkgSummaries {
		maintainers = append(maintainers, m)
	}
	sort.Strings(maintainers)

	entries := make([]map[string]any, 0, len(maintainers))
	for _, maintainer := range maintainers {
		pkgs := summary.PkgSummaries[maintainer]
		pkgContexts := make([]map[string]any, 0, len(pkgs))
		for _, pkg := range pkgs {
			pkgContexts = append(pkgContexts, PackagePageContext(pkg, summary.HintEntries[pkg.PkgName], rootURL))
		}
		entries = append(entries, map[string]any{
			"maintainer": maintainer,
			"packages":   pkgContexts,
		})
	}

	ctx := map[string]any{
		"suite":          summary.Suite,
		"section":        summary.Section,
		"maintainers":    entries,
		"total_infos":    summary.TotalInfos,
		"total_warnings": summary.TotalWarnings,
		"total_errors":   summary.TotalErrors,
		"root_url":       rootURL,
	}
	setPresenceMarkers(ctx, summary.TotalInfos, summary.TotalWarnings, summary.TotalErrors)
	return ctx
}

// MainIndexContext builds the root index context listing every configured
// suite name. rootURL is injected as root_url.
func MainIndexContext(suiteNames []string, rootURL string) map[string]any {
	return map[string]any{"suites": suiteNames, "root_url": rootURL}
}

func renderedHintContexts(hints []entities.RenderedHint) []map[string]any {
	out := make([]map[string]any, len(hints))
	for i, h := range hints {
		out[i] = map[string]any{"tag": h.Tag, "message": h.Message}
	}
	return out
}

func sortedArchs(entry *entities.HintEntry) []string {
	archs := make([]string, 0, len(entry.Archs))
	for arch := range entry.Archs {
		archs = append(archs, arch)
	}
	sort.Strings(archs)
	return archs
}

// setPresenceMarkers sets has_infos/has_warnings/has_errors (and their
// *_count companions) only when the corresponding count is positive — the
// only conditional-rendering mechanism the template layer needs.
func setPresenceMarkers(ctx map[string]any, infos, warnings, errs int) {
	if infos > 0 {
		ctx["has_infos"] = true
		ctx["has_info_count"] = infos
	}
	if warnings > 0 {
		ctx["has_warnings"] = true
		ctx["has_warning_count"] = warnings
	}
	if errs > 0 {
		ctx["has_errors"] = true
		ctx["has_error_count"] = errs
	}
}
