package entities

// SuiteConfig describes one distribution suite to process: its sections
// and architectures, each combination yielding one (suite, section, arch)
// slice for the PackageIndex.
type SuiteConfig struct {
	Name          string
	Sections      []string
	Architectures []string
}

// GeneratorConfig holds every configuration value consumed by the core, as
// enumerated in the external-interfaces section of the specification.
type GeneratorConfig struct {
	// WorkspaceDir is the root for derived outputs.
	WorkspaceDir string

	// ProjectName disambiguates vendor template directory lookups.
	ProjectName string

	// HTMLBaseUrl is injected as root_url in all rendered pages.
	HTMLBaseUrl string

	// Suites are enumerated for the main index and drive per-slice
	// processing.
	Suites []SuiteConfig

	// FormatVersion is the threshold for the desktop-id rewriting rule.
	FormatVersion int

	// TmpDir is scratch space for the fetcher.
	TmpDir string

	// MaxWorkers bounds the worker pool's parallelism over packages.
	MaxWorkers int
}

// ReverseDNSFormatVersion is the format-version threshold at or above which
// the desktop-id rewriting rule (§4.4) applies.
const ReverseDNSFormatVersion = 18

// DefaultGeneratorConfig returns sensible defaults, the lowest tier of the
// precedence chain documented in SPEC_FULL.md (defaults < global config <
// project config).
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		WorkspaceDir:  "./workspace",
		ProjectName:   "default",
		HTMLBaseUrl:   "",
		Suites:        nil,
		FormatVersion: ReverseDNSFormatVersion,
		TmpDir:        "./workspace/tmp",
		MaxWorkers:    4,
	}
}
