package cli

import (
	"fmt"
	"time"

	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
	"github.com/iainlane/appstream-generator/internal/ui"
)

// Compile-time interface check
var _ usecases.ReportFormatter = (*ReportFormatter)(nil)

// ReportFormatter implements the usecases.ReportFormatter interface,
// printing a DataSummary's hints and run statistics to the terminal with
// severity-based coloring.
type ReportFormatter struct {
	out *ui.Output
}

// NewReportFormatter creates a new ReportFormatter instance.
func NewReportFormatter() *ReportFormatter {
	return &ReportFormatter{out: ui.NewOutput()}
}

// PrintSummary formats and displays a DataSummary grouped by severity.
func (f *ReportFormatter) PrintSummary(summary *entities.DataSummary) {
	if summary == nil {
		f.out.Info("no summary to report")
		return
	}

	f.out.Title(fmt.Sprintf("%s/%s", summary.Suite, summary.Section))

	for maintainer, pkgs := range summary.PkgSummaries {
		f.out.Subtitle(maintainer)
		for _, pkg := range pkgs {
			f.printPackage(pkg, summary.HintEntries[pkg.PkgName])
		}
	}

	f.out.Divider()
	f.out.KeyValue("infos", fmt.Sprintf("%d", summary.TotalInfos))
	f.out.KeyValue("warnings", fmt.Sprintf("%d", summary.TotalWarnings))
	f.out.KeyValue("errors", fmt.Sprintf("%d", summary.TotalErrors))
}

func (f *ReportFormatter) printPackage(pkg *entities.PkgSummary, byComponent map[string]*entities.HintEntry) {
	f.out.KeyValue(pkg.PkgName, pkg.PkgVersion)
	for componentID, entry := range byComponent {
		for _, h := range entry.Errors {
			f.out.Error(fmt.Sprintf("%s [%s] %s", componentID, h.Tag, h.Message))
		}
		for _, h := range entry.Warnings {
			f.out.Warning(fmt.Sprintf("%s [%s] %s", componentID, h.Tag, h.Message))
		}
		for _, h := range entry.Infos {
			f.out.Info(fmt.Sprintf("%s [%s] %s", componentID, h.Tag, h.Message))
		}
	}
}

// PrintBuildStats formats and displays pipeline run statistics.
func (f *ReportFormatter) PrintBuildStats(stats usecases.BuildStats) {
	f.out.Title("generate complete")
	f.out.KeyValue("packages processed", fmt.Sprintf("%d", stats.PackagesProcessed))
	f.out.KeyValue("components found", fmt.Sprintf("%d", stats.ComponentsFound))
	f.out.KeyValue("hints raised", fmt.Sprintf("%d", stats.HintsRaised))
	f.out.KeyValue("duration", stats.Duration.Round(time.Millisecond).String())
}
