package usecases

import (
	"context"
	"fmt"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

// Aggregator implements ReportAggregator: it folds every package's
// persisted hint blob into a DataSummary, resolving severities and
// messages against a HintRegistry.
type Aggregator struct {
	registry HintRegistry
	logger   Logger
}

var _ ReportAggregator = (*Aggregator)(nil)

// NewAggregator creates an Aggregator resolving hints against registry.
// logger may be nil, in which case discarded-hint diagnostics are dropped
// silently rather than logged.
func NewAggregator(registry HintRegistry, logger Logger) *Aggregator {
	return &Aggregator{registry: registry, logger: logger}
}

// Preprocess reads each package's persisted hint blob, resolves severities
// and rendered messages via the HintRegistry, and folds the result into a
// DataSummary scoped to (suite, section).
func (a *Aggregator) Preprocess(ctx context.Context, store Store, suite, section string, packages []*entities.Package) (*entities.DataSummary, error) {
	summary := entities.NewDataSummary(suite, section)

	for _, pkg := range packages {
		blob, err := store.GetHints(ctx, pkg.Pkid())
		if err != nil {
			return nil, fmt.Errorf("read hints for %s: %w", pkg.Pkid(), err)
		}

		grouped, err := decodeHints(blob)
		if err != nil {
			a.warnf("discarding malformed hint blob for %s: %v", pkg.Pkid(), err)
			grouped = make(storedHints)
		}

		pkgSummary := &entities.PkgSummary{
			PkgName:    pkg.Name,
			PkgVersion: pkg.Version,
			Maintainer: pkg.Maintainer,
		}

		for componentID, hints := range grouped {
			entry := summary.HintEntryFor(pkg.Name, componentID)
			entry.Archs[pkg.Arch] = true

			for _, h := range hints {
				severity, ok := a.registry.Severity(h.Tag)
				if !ok {
					a.errorf("hint tag %q not present in registry, discarding", h.Tag)
					continue
				}

				message, err := a.registry.Render(h.Tag, h.Variables)
				if err != nil {
					a.errorf("rendering hint tag %q: %v", h.Tag, err)
					continue
				}

				entry.Add(severity, h.Tag, message)
				switch severity {
				case entities.SeverityInfo:
					pkgSummary.InfoCount++
				case entities.SeverityWarning:
					pkgSummary.WarningCount++
				case entities.SeverityError:
					pkgSummary.ErrorCount++
				}
			}
		}

		summary.AddPkgSummary(pkg.Maintainer, pkgSummary)
		summary.AddCounts(pkgSummary.InfoCount, pkgSummary.WarningCount, pkgSummary.ErrorCount)
	}

	return summary, nil
}

func (a *Aggregator) warnf(format string, args ...any) {
	if a.logger == nil {
		return
	}
	a.logger.Warn(fmt.Sprintf(format, args...))
}

func (a *Aggregator) errorf(format string, args ...any) {
	if a.logger == nil {
		return
	}
	a.logger.Error(fmt.Sprintf(format, args...), nil)
}
