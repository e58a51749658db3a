package usecases

import (
	"context"
	"fmt"
	"sync"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

// Driver orchestrates one full generation run: enumerating packages per
// (suite, section, arch) slice, parsing each package's desktop-entry files
// through a bounded worker pool, persisting the hints raised, and folding
// the result into per-(suite, section) summaries and statistics snapshots.
//
// One slice is processed at a time; within a slice, packages are the unit
// of parallelism. No state is shared across workers other than the
// injected collaborators, each of which owns its own synchronization.
type Driver struct {
	index          PackageIndex
	payloadReader  PackagePayloadReader
	parser         DesktopParser
	aggregator     ReportAggregator
	store          Store
	statsStore     StatsStore
	logger         Logger
	maxWorkers      int
	formatVersion   int
	ignoreNoDisplay bool
}

// SetIgnoreNoDisplay controls whether desktop entries marked NoDisplay=true
// are still parsed into components rather than skipped. Off by default;
// the validate subcommand sets it from its --ignore-no-display flag.
func (d *Driver) SetIgnoreNoDisplay(ignore bool) {
	d.ignoreNoDisplay = ignore
}

// NewDriver creates a Driver wiring together every collaborator the
// pipeline needs. maxWorkers bounds the concurrency of the per-package
// worker pool; a value <= 0 is treated as 1.
func NewDriver(
	index PackageIndex,
	payloadReader PackagePayloadReader,
	parser DesktopParser,
	aggregator ReportAggregator,
	store Store,
	statsStore StatsStore,
	logger Logger,
	cfg *entities.GeneratorConfig,
) *Driver {
	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	return &Driver{
		index:         index,
		payloadReader: payloadReader,
		parser:        parser,
		aggregator:    aggregator,
		store:         store,
		statsStore:    statsStore,
		logger:        logger,
		maxWorkers:    maxWorkers,
		formatVersion: cfg.FormatVersion,
	}
}

// SliceResult reports what happened while processing one (suite, section,
// arch) slice: the packages seen, the hints persisted, and any per-package
// fetch/parse failures that were downgraded to warnings rather than
// aborting the slice.
type SliceResult struct {
	Suite, Section, Arch string
	PackagesProcessed     int
	ComponentsFound       int
	HintsRaised           int
	Warnings              []string
}

// ProcessSlice runs the worker pool over every package in (suite, section,
// arch), persists each package's hints, and returns a summary of the run.
// A package-level payload failure, or a failure to encode or persist its
// hints, is recorded as a warning on the returned SliceResult rather than
// aborting the remaining packages, per the driver's
// no-cooperative-cancellation contract. An error returned by the parser is
// only logged.
func (d *Driver) ProcessSlice(ctx context.Context, suite, section, arch string) (*SliceResult, error) {
	packages, err := d.index.PackagesFor(ctx, suite, section, arch)
	if err != nil {
		return nil, fmt.Errorf("list packages for %s/%s/%s: %w", suite, section, arch, err)
	}

	result := &SliceResult{Suite: suite, Section: section, Arch: arch}

	jobs := make(chan *entities.Package, len(packages))
	for _, pkg := range packages {
		jobs <- pkg
	}
	close(jobs)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for range min(d.maxWorkers, max(len(packages), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pkg := range jobs {
				components, hints, warning := d.processPackage(ctx, pkg)

				mu.Lock()
				result.PackagesProcessed++
				result.ComponentsFound += components
				result.HintsRaised += hints
				if warning != "" {
					result.Warnings = append(result.Warnings, warning)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return result, nil
}

// processPackage fetches pkg's payload, parses every desktop-entry file it
// carries, and persists the resulting hints. It never returns an error: a
// payload fetch failure or a hint encode/persist failure is returned as the
// warning string; problems inside a desktop-entry file are raised as hints
// by the parser, and an error returned by Parse is only logged.
func (d *Driver) processPackage(ctx context.Context, pkg *entities.Package) (componentCount, hintCount int, warning string) {
	genResult := entities.NewGeneratorResult(pkg)

	entries, err := d.payloadReader.DesktopEntries(ctx, pkg)
	if err != nil {
		return 0, 0, fmt.Sprintf("fetching payload for %s: %v", pkg.Pkid(), err)
	}

	for filename, contents := range entries {
		if err := d.parser.Parse(genResult, filename, contents, d.ignoreNoDisplay, d.formatVersion); err != nil {
			d.warnf("parsing %s in %s: %v", filename, pkg.Pkid(), err)
		}
	}

	blob, err := EncodeHints(genResult.Hints())
	if err != nil {
		return len(genResult.Components()), len(genResult.Hints()), fmt.Sprintf("encoding hints for %s: %v", pkg.Pkid(), err)
	}
	if err := d.store.SetHints(ctx, pkg.Pkid(), blob); err != nil {
		return len(genResult.Components()), len(genResult.Hints()), fmt.Sprintf("persisting hints for %s: %v", pkg.Pkid(), err)
	}

	return len(genResult.Components()), len(genResult.Hints()), ""
}

// Aggregate folds (suite, section)'s persisted hints into a DataSummary
// without recording a statistics snapshot, for dry-run/validate callers
// that must not advance the persisted time series.
func (d *Driver) Aggregate(ctx context.Context, suite, section string, packages []*entities.Package) (*entities.DataSummary, error) {
	summary, err := d.aggregator.Preprocess(ctx, d.store, suite, section, packages)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s/%s: %w", suite, section, err)
	}
	return summary, nil
}

// Summarize aggregates (suite, section)'s persisted hints into a
// DataSummary and records a statistics snapshot derived from it.
func (d *Driver) Summarize(ctx context.Context, suite, section string, packages []*entities.Package) (*entities.DataSummary, error) {
	summary, err := d.Aggregate(ctx, suite, section, packages)
	if err != nil {
		return nil, err
	}

	snap := entities.StatsSnapshot{
		Suite:        suite,
		Section:      section,
		InfoCount:    summary.TotalInfos,
		WarningCount: summary.TotalWarnings,
		ErrorCount:   summary.TotalErrors,
		PackageCount: len(packages),
		ComponentCount: countComponents(summary),
	}
	if err := d.statsStore.AddSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("record statistics for %s/%s: %w", suite, section, err)
	}

	return summary, nil
}

func countComponents(summary *entities.DataSummary) int {
	total := 0
	for _, byComponent := range summary.HintEntries {
		total += len(byComponent)
	}
	return total
}

func (d *Driver) warnf(format string, args ...any) {
	if d.logger == nil {
		return
	}
	d.logger.Warn(fmt.Sprintf(format, args...))
}
