package cmd

import (
	"context"
	"fmt"

	"github.com/iainlane/appstream-generator/internal/adapters/cli"
)

// ValidateCommand dry-runs the pipeline: it parses every configured slice
// and prints the resulting summary without writing any reports or catalog
// exports, and without advancing the persisted statistics series.
type ValidateCommand struct {
	projectRoot     string
	ignoreNoDisplay bool
}

// NewValidateCommand creates a new validate command rooted at projectRoot.
func NewValidateCommand(projectRoot string) *ValidateCommand {
	return &ValidateCommand{projectRoot: projectRoot}
}

// WithIgnoreNoDisplay makes the dry run include desktop entries marked
// NoDisplay=true, surfacing entries a real generate run would skip.
func (c *ValidateCommand) WithIgnoreNoDisplay(ignore bool) *ValidateCommand {
	c.ignoreNoDisplay = ignore
	return c
}

// Execute runs the validate command.
func (c *ValidateCommand) Execute(ctx context.Context) error {
	p, err := buildPipeline(ctx, c.projectRoot)
	if err != nil {
		return err
	}
	p.driver.SetIgnoreNoDisplay(c.ignoreNoDisplay)

	formatter := cli.NewReportFormatter()
	progress := cli.NewProgressReporter()

	hasIssues := false

	for _, suite := range p.cfg.Suites {
		for _, section := range suite.Sections {
			for _, arch := range suite.Architectures {
				progress.ReportProgress("validate", 0, 0, fmt.Sprintf("%s/%s/%s", suite.Name, section, arch))
				if _, err := p.driver.ProcessSlice(ctx, suite.Name, section, arch); err != nil {
					return fmt.Errorf("process %s/%s/%s: %w", suite.Name, section, arch, err)
				}
			}

			packages, err := p.packagesForSection(ctx, suite.Name, section)
			if err != nil {
				return err
			}

			summary, err := p.driver.Aggregate(ctx, suite.Name, section, packages)
			if err != nil {
				return fmt.Errorf("summarize %s/%s: %w", suite.Name, section, err)
			}

			formatter.PrintSummary(summary)
			if summary.TotalErrors > 0 {
				hasIssues = true
			}
		}
	}

	if hasIssues {
		return fmt.Errorf("validation found one or more errors")
	}
	progress.ReportSuccess("no errors found")
	return nil
}
