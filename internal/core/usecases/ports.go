package usecases

import (
	"context"
	"time"

	"github.com/iainlane/appstream-generator/internal/core/entities"
)

// Fetcher resolves a repository-relative path containing exactly one
// compression-extension placeholder into a locally-cached file, trying
// candidate extensions in a fixed order.
//
// Implementations MUST treat a present, nonzero-size file under tmpDir as
// already fetched and return it without refetching.
type Fetcher interface {
	// Fetch resolves root+relativePathWithFormatSlot into a local path,
	// downloading into tmpDir if root is remote. Returns ErrNotFound when no
	// candidate extension resolves.
	Fetch(ctx context.Context, root, tmpDir, relativePathWithFormatSlot string) (localPath string, err error)
}

// TagFileReader parses RFC-822-style tag-file blocks: records separated by
// blank lines, fields of the form "Key: value" with continuation lines.
//
// Implementations MUST be single-pass and forward-only; rewinding is not
// supported.
type TagFileReader interface {
	// Open begins reading the tag-file at path.
	Open(path string) error

	// ReadField returns the value of name in the current section, or
	// ("", false) if the field is absent.
	ReadField(name string) (string, bool)

	// NextSection advances to the next record. Returns false when the
	// input is exhausted.
	NextSection() bool

	// Close releases the underlying file handle.
	Close() error
}

// LocaleKeyDecoder extracts a BCP-47-ish locale tag from a parenthesized
// key suffix, e.g. "Name[de_DE]" -> "de_DE".
type LocaleKeyDecoder interface {
	// Decode returns the locale tag for key, or ("", false) when the
	// bracketed token fails the locale-validity predicate.
	Decode(key string) (locale string, ok bool)
}

// DesktopParser produces a Component from a single desktop-entry file,
// attaching it (and any hints raised along the way) to result.
type DesktopParser interface {
	// Parse interprets contents as a desktop-entry file named filename and
	// attaches the resulting Component to result, or raises a hint and
	// attaches nothing when the file is skipped.
	Parse(result *entities.GeneratorResult, filename string, contents []byte, ignoreNoDisplay bool, formatVersion int) error
}

// PackagePayloadReader resolves a Package's on-disk payload (the archive
// member named by its Filename field) into the raw contents of every
// desktop-entry file it carries, keyed by basename.
type PackagePayloadReader interface {
	DesktopEntries(ctx context.Context, pkg *entities.Package) (map[string][]byte, error)
}

// PackageIndex enumerates packages for (suite, section, arch), correlates
// long descriptions across languages, and detects changes against a
// persisted timestamp.
//
// Implementations MUST guard pkgCache and indexChanged with a single
// critical section shared by readers and writers.
type PackageIndex interface {
	// PackagesFor returns the cached vector of packages for
	// (suite, section, arch), loading and memoizing on first access.
	PackagesFor(ctx context.Context, suite, section, arch string) ([]*entities.Package, error)

	// FindTranslations scans the suite's release manifest for
	// Translation-<code> markers, returning codes in first-seen order,
	// deduplicated, defaulting to ["en"] on any error.
	FindTranslations(ctx context.Context, suite, section string) ([]string, error)

	// HasChanges reports whether the index file for (suite, section, arch)
	// has a different modification time than what was last persisted in
	// store, writing the new timestamp back unconditionally.
	HasChanges(ctx context.Context, store Store, suite, section, arch string) (bool, error)

	// Release clears the package and change-detection caches.
	Release()
}

// HintRegistry is a static, process-wide mapping from hint tag to severity
// and message template, loaded once at startup and read without
// synchronization thereafter.
type HintRegistry interface {
	// Severity returns the severity registered for tag, or false if tag is
	// unknown.
	Severity(tag string) (entities.Severity, bool)

	// Render substitutes variables into tag's message template, returning
	// an error if tag is unknown.
	Render(tag string, variables map[string]string) (string, error)
}

// ReportAggregator folds GeneratorResults into a DataSummary scoped to one
// (suite, section) pair.
type ReportAggregator interface {
	// Preprocess reads each package's persisted hint blob, resolves
	// severities and messages via the HintRegistry, and folds the result
	// into a DataSummary.
	Preprocess(ctx context.Context, store Store, suite, section string, packages []*entities.Package) (*entities.DataSummary, error)
}

// Store is the persistent key/value collaborator documented, not
// implemented, by this core: hint blobs, repo-info timestamps, and
// statistics snapshots.
//
// Implementations MUST treat reads and writes as atomic per key; the core
// never assumes anything about the storage engine beyond this interface.
type Store interface {
	// GetHints returns the raw hint blob persisted for pkid, or nil if none
	// exists.
	GetHints(ctx context.Context, pkid string) ([]byte, error)

	// SetHints persists blob under pkid, replacing any previous value.
	SetHints(ctx context.Context, pkid string, blob []byte) error

	// GetRepoInfo returns the repo-info object for (suite, section, arch),
	// carrying at least an integer mtime field.
	GetRepoInfo(ctx context.Context, suite, section, arch string) (map[string]any, error)

	// SetRepoInfo persists info under (suite, section, arch).
	SetRepoInfo(ctx context.Context, suite, section, arch string, info map[string]any) error

	// AddStatistics appends blob under the current time.
	AddStatistics(ctx context.Context, blob []byte) error

	// GetStatistics returns every persisted sample keyed by timestamp.
	GetStatistics(ctx context.Context) (map[int64][]byte, error)
}

// StatsStore appends timestamped aggregate counts and reads them back as
// sorted per-(suite,section) time series.
type StatsStore interface {
	// AddSnapshot persists snap under the current time.
	AddSnapshot(ctx context.Context, snap entities.StatsSnapshot) error

	// Series returns, for every (suite, section) observed, an ordered
	// sequence of points sorted ascending by x.
	Series(ctx context.Context) (map[string]map[string][]entities.TimeSeriesPoint, error)
}

// TemplateEngine renders named page templates against a name-indexed
// context that resolves to strings, ordered sub-iterations, or functions
// receiving unrendered inner content (for partial/block semantics).
type TemplateEngine interface {
	// Render loads the template named name and applies context.
	Render(ctx context.Context, name string, data map[string]any) (string, error)

	// AddSearchPath adds a directory to the template search path, lowest
	// priority first: <dir>/<projectName> -> <dir>/default -> <dir>.
	AddSearchPath(path string)
}

// OutputEncoder serializes DataSummary/statistics values to the catalog's
// machine-readable export formats.
type OutputEncoder interface {
	// EncodeJSON serializes value to JSON bytes.
	EncodeJSON(value any) ([]byte, error)

	// EncodeTOON serializes value to TOON (token-efficient) bytes.
	EncodeTOON(value any) ([]byte, error)
}

// Logger is structured, leveled logging used throughout the pipeline for
// tracing per-item warnings without ever promoting them to process-fatal.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, err error, keysAndValues ...any)

	WithContext(ctx context.Context) Logger
	WithFields(keysAndValues ...any) Logger
}

// ConfigLoader loads GeneratorConfig following the precedence chain:
// project-local TOML > global XDG TOML > defaults.
type ConfigLoader interface {
	// Load resolves that precedence chain, rooted at projectRoot.
	Load(ctx context.Context, projectRoot string) (*entities.GeneratorConfig, error)
}

// ProgressReporter communicates pipeline progress to the user, optionally
// using terminal formatting.
type ProgressReporter interface {
	ReportProgress(step string, current, total int, message string)
	ReportError(err error)
	ReportSuccess(message string)
	ReportInfo(message string)
}

// ReportFormatter formats hints and build statistics for human display.
type ReportFormatter interface {
	// PrintSummary formats and displays a DataSummary grouped by severity.
	PrintSummary(summary *entities.DataSummary)

	// PrintBuildStats formats and displays pipeline run statistics.
	PrintBuildStats(stats BuildStats)
}

// BuildStats holds statistics from one generate run, for reporting.
type BuildStats struct {
	PackagesProcessed int
	ComponentsFound   int
	HintsRaised       int
	Duration          time.Duration
}
