package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/iainlane/appstream-generator/internal/adapters/archive"
	"github.com/iainlane/appstream-generator/internal/adapters/config"
	"github.com/iainlane/appstream-generator/internal/adapters/desktop"
	"github.com/iainlane/appstream-generator/internal/adapters/fetch"
	"github.com/iainlane/appstream-generator/internal/adapters/hints"
	"github.com/iainlane/appstream-generator/internal/adapters/locale"
	"github.com/iainlane/appstream-generator/internal/adapters/logging"
	"github.com/iainlane/appstream-generator/internal/adapters/stats"
	"github.com/iainlane/appstream-generator/internal/adapters/store"
	"github.com/iainlane/appstream-generator/internal/adapters/tagfile"
	"github.com/iainlane/appstream-generator/internal/core/entities"
	"github.com/iainlane/appstream-generator/internal/core/usecases"
)

const fetchTimeout = 30 * time.Second

// pipeline bundles every collaborator a generate/validate run needs,
// assembled once per invocation from the resolved GeneratorConfig.
type pipeline struct {
	cfg        *entities.GeneratorConfig
	driver     *usecases.Driver
	index      usecases.PackageIndex
	store      *store.FileStore
	statsStore usecases.StatsStore
	logger     *logging.Logger
}

// buildPipeline resolves configuration for projectRoot and wires the
// concrete adapters behind the core's ports.
func buildPipeline(ctx context.Context, projectRoot string) (*pipeline, error) {
	xdg := config.NewXDGPathResolver()
	globalConfigPath := xdg.ConfigFile()
	if cfgFile != "" {
		globalConfigPath = cfgFile
	}
	loader := config.NewLoader(&globalConfigPath)

	cfg, err := loader.Load(ctx, projectRoot)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if Verbose {
		logging.SetLevel(logging.LevelDebug)
	}
	logger := logging.GetLogger()

	registry, err := hints.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("load hint registry: %w", err)
	}

	fetcher := fetch.NewFetcher(fetchTimeout)
	index := archive.NewIndex(fetcher, func() usecases.TagFileReader { return tagfile.NewReader() }, projectRoot, cfg.TmpDir)
	payloadReader := archive.NewPayloadReader(fetcher, projectRoot, cfg.TmpDir)
	parser := desktop.NewParser(locale.NewDecoder())
	aggregator := usecases.NewAggregator(registry, logger)

	backing, err := store.Open(filepath.Join(cfg.WorkspaceDir, "store.json"))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	statsStore := stats.NewStore(backing)

	driver := usecases.NewDriver(index, payloadReader, parser, aggregator, backing, statsStore, logger, cfg)

	return &pipeline{
		cfg:        cfg,
		driver:     driver,
		index:      index,
		store:      backing,
		statsStore: statsStore,
		logger:     logger,
	}, nil
}

// packagesForSection returns the union of packages across every
// architecture configured for (suiteName, section), for feeding the
// aggregator a complete per-section package list.
func (p *pipeline) packagesForSection(ctx context.Context, suiteName, section string) ([]*entities.Package, error) {
	var archs []string
	for _, suite := range p.cfg.Suites {
		if suite.Name == suiteName {
			archs = suite.Architectures
			break
		}
	}

	var packages []*entities.Package
	for _, arch := range archs {
		pkgs, err := p.index.PackagesFor(ctx, suiteName, section, arch)
		if err != nil {
			return nil, fmt.Errorf("list packages for %s/%s/%s: %w", suiteName, section, arch, err)
		}
		packages = append(packages, pkgs...)
	}
	return packages, nil
}
