package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iainlane/appstream-generator/internal/adapters/cli"
	"github.com/iainlane/appstream-generator/internal/adapters/encoding"
	"github.com/iainlane/appstream-generator/internal/adapters/report"
	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

// GenerateCommand runs the full metadata-extraction pipeline for every
// configured (suite, section, arch) slice, writing rendered HTML reports
// and machine-readable catalog exports under the workspace directory.
type GenerateCommand struct {
	projectRoot string
}

// NewGenerateCommand creates a new generate command rooted at projectRoot.
func NewGenerateCommand(projectRoot string) *GenerateCommand {
	return &GenerateCommand{projectRoot: projectRoot}
}

// Execute runs the generate command.
func (c *GenerateCommand) Execute(ctx context.Context) error {
	p, err := buildPipeline(ctx, c.projectRoot)
	if err != nil {
		return err
	}

	engine := report.NewEngine(p.cfg.ProjectName)
	if err := engine.AddEmbeddedDefaults(); err != nil {
		return fmt.Errorf("load report templates: %w", err)
	}

	formatter := cli.NewReportFormatter()
	progress := cli.NewProgressReporter()
	encoder := encoding.NewEncoder()

	start := time.Now()
	var total usecases.BuildStats

	for _, suite := range p.cfg.Suites {
		for _, section := range suite.Sections {
			for _, arch := range suite.Architectures {
				progress.ReportProgress("generate", 0, 0, fmt.Sprintf("%s/%s/%s", suite.Name, section, arch))

				result, err := p.driver.ProcessSlice(ctx, suite.Name, section, arch)
				if err != nil {
					return fmt.Errorf("process %s/%s/%s: %w", suite.Name, section, arch, err)
				}

				total.PackagesProcessed += result.PackagesProcessed
				total.ComponentsFound += result.ComponentsFound
				total.HintsRaised += result.HintsRaised
				for _, w := range result.Warnings {
					p.logger.Warn(w)
				}
			}

			packages, err := p.packagesForSection(ctx, suite.Name, section)
			if err != nil {
				return err
			}

			summary, err := p.driver.Summarize(ctx, suite.Name, section, packages)
			if err != nil {
				return fmt.Errorf("summarize %s/%s: %w", suite.Name, section, err)
			}

			if err := renderSection(p.cfg, engine, encoder, summary); err != nil {
				return fmt.Errorf("render %s/%s: %w", suite.Name, section, err)
			}
		}
	}

	if err := writeMainIndex(p.cfg, engine); err != nil {
		return fmt.Errorf("render main index: %w", err)
	}

	total.Duration = time.Since(start)
	formatter.PrintBuildStats(total)
	return nil
}

// renderSection writes the maintainer index, per-package pages, and the
// JSON/TOON catalog exports for one (suite, section) summary.
func renderSection(cfg *entities.GeneratorConfig, engine *report.Engine, encoder usecases.OutputEncoder, summary *entities.DataSummary) error {
	htmlDir := filepath.Join(cfg.WorkspaceDir, "html", summary.Suite, summary.Section)
	if err := os.MkdirAll(htmlDir, 0o755); err != nil {
		return fmt.Errorf("create html output dir: %w", err)
	}

	maintainerHTML, err := engine.Render(context.Background(), "maintainer_index", report.MaintainerIndexContext(summary, cfg.HTMLBaseUrl))
	if err != nil {
		return fmt.Errorf("render maintainer index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(htmlDir, "index.html"), []byte(maintainerHTML), 0o644); err != nil {
		return fmt.Errorf("write maintainer index: %w", err)
	}

	for _, pkgs := range summary.PkgSummaries {
		for _, pkg := range pkgs {
			pkgHTML, err := engine.Render(context.Background(), "package", report.PackagePageContext(pkg, summary.HintEntries[pkg.PkgName], cfg.HTMLBaseUrl))
			if err != nil {
				return fmt.Errorf("render package %s: %w", pkg.PkgName, err)
			}
			if err := os.WriteFile(filepath.Join(htmlDir, pkg.PkgName+".html"), []byte(pkgHTML), 0o644); err != nil {
				return fmt.Errorf("write package page %s: %w", pkg.PkgName, err)
			}
		}
	}

	exportDir := filepath.Join(cfg.WorkspaceDir, "export")
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	base := summary.Suite + "-" + summary.Section

	jsonBlob, err := encoder.EncodeJSON(summary)
	if err != nil {
		return fmt.Errorf("encode json export: %w", err)
	}
	if err := os.WriteFile(filepath.Join(exportDir, base+".json"), jsonBlob, 0o644); err != nil {
		return fmt.Errorf("write json export: %w", err)
	}

	toonBlob, err := encoder.EncodeTOON(summary)
	if err != nil {
		return fmt.Errorf("encode toon export: %w", err)
	}
	if err := os.WriteFile(filepath.Join(exportDir, base+".toon"), toonBlob, 0o644); err != nil {
		return fmt.Errorf("write toon export: %w", err)
	}

	return nil
}

// writeMainIndex renders the top-level suite listing page.
func writeMainIndex(cfg *entities.GeneratorConfig, engine *report.Engine) error {
	names := make([]string, 0, len(cfg.Suites))
	for _, suite := range cfg.Suites {
		names = append(names, suite.Name)
	}

	html, err := engine.Render(context.Background(), "main_index", report.MainIndexContext(names, cfg.HTMLBaseUrl))
	if err != nil {
		return err
	}

	htmlDir := filepath.Join(cfg.WorkspaceDir, "html")
	if err := os.MkdirAll(htmlDir, 0o755); err != nil {
		return fmt.Errorf("create html output dir: %w", err)
	}
	return os.WriteFile(filepath.Join(htmlDir, "index.html"), []byte(html), 0o644)
}
