package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/iainlane/appstream-generator/internal/adapters/cli"
)

// StatsCommand reads back the persisted statistics series and prints each
// (suite, section) series as a sorted sequence of (timestamp, error count)
// points.
type StatsCommand struct {
	projectRoot string
}

// NewStatsCommand creates a new stats command rooted at projectRoot.
func NewStatsCommand(projectRoot string) *StatsCommand {
	return &StatsCommand{projectRoot: projectRoot}
}

// Execute runs the stats command.
func (c *StatsCommand) Execute(ctx context.Context) error {
	p, err := buildPipeline(ctx, c.projectRoot)
	if err != nil {
		return err
	}

	series, err := p.statsStore.Series(ctx)
	if err != nil {
		return fmt.Errorf("read statistics series: %w", err)
	}

	out := cli.NewProgressReporter()
	if len(series) == 0 {
		out.ReportInfo("no statistics recorded yet")
		return nil
	}

	suites := make([]string, 0, len(series))
	for suite := range series {
		suites = append(suites, suite)
	}
	sort.Strings(suites)

	for _, suite := range suites {
		sections := make([]string, 0, len(series[suite]))
		for section := range series[suite] {
			sections = append(sections, section)
		}
		sort.Strings(sections)

		for _, section := range sections {
			out.ReportInfo(fmt.Sprintf("%s/%s:", suite, section))
			for _, point := range series[suite][section] {
				out.ReportInfo(fmt.Sprintf("  %d -> %d errors", point.X, point.Y))
			}
		}
	}

	return nil
}
