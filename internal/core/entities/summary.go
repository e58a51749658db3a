package entities

// RenderedHint is a (tag, message) pair that has already been resolved
// against the HintRegistry — severity has been decided, and variables have
// been substituted into the template.
type RenderedHint struct {
	Tag     string
	Message string
}

// HintEntry carries every hint recorded against one component, partitioned
// by severity, plus the set of architectures the component was observed
// under.
type HintEntry struct {
	ComponentID string
	Archs       map[string]bool
	Infos       []RenderedHint
	Warnings    []RenderedHint
	Errors      []RenderedHint
}

// NewHintEntry creates an empty HintEntry for componentID.
func NewHintEntry(componentID string) *HintEntry {
	return &HintEntry{
		ComponentID: componentID,
		Archs:       make(map[string]bool),
	}
}

// Add appends a rendered hint to the bucket matching severity and
// increments nothing else; counters live on PkgSummary/DataSummary.
func (h *HintEntry) Add(severity Severity, tag, message string) {
	entry := RenderedHint{Tag: tag, Message: message}
	switch severity {
	case SeverityError:
		h.Errors = append(h.Errors, entry)
	case SeverityWarning:
		h.Warnings = append(h.Warnings, entry)
	default:
		h.Infos = append(h.Infos, entry)
	}
}

// Total returns the number of recorded hints across all severities.
func (h *HintEntry) Total() int {
	return len(h.Infos) + len(h.Warnings) + len(h.Errors)
}

// PkgSummary is one package's contribution to a DataSummary: the package
// identity plus running counts of its hints by severity.
type PkgSummary struct {
	PkgName       string
	PkgVersion    string
	Maintainer    string
	InfoCount     int
	WarningCount  int
	ErrorCount    int
}

// DataSummary aggregates every GeneratorResult belonging to one (suite,
// section) pair: per-maintainer package summaries, per-package
// per-component hint entries, and running totals.
type DataSummary struct {
	Suite   string
	Section string

	// PkgSummaries maps maintainer -> ordered sequence of PkgSummary.
	PkgSummaries map[string][]*PkgSummary

	// HintEntries maps pkgname -> componentID -> HintEntry.
	HintEntries map[string]map[string]*HintEntry

	TotalInfos    int
	TotalWarnings int
	TotalErrors   int
}

// NewDataSummary creates an empty summary scoped to (suite, section).
func NewDataSummary(suite, section string) *DataSummary {
	return &DataSummary{
		Suite:        suite,
		Section:      section,
		PkgSummaries: make(map[string][]*PkgSummary),
		HintEntries:  make(map[string]map[string]*HintEntry),
	}
}

// AddPkgSummary appends summary under maintainer's sequence.
func (d *DataSummary) AddPkgSummary(maintainer string, summary *PkgSummary) {
	d.PkgSummaries[maintainer] = append(d.PkgSummaries[maintainer], summary)
}

// HintEntryFor returns the HintEntry for (pkgname, componentID), creating
// it (and the package's inner map) on first access.
func (d *DataSummary) HintEntryFor(pkgname, componentID string) *HintEntry {
	byComponent, ok := d.HintEntries[pkgname]
	if !ok {
		byComponent = make(map[string]*HintEntry)
		d.HintEntries[pkgname] = byComponent
	}
	entry, ok := byComponent[componentID]
	if !ok {
		entry = NewHintEntry(componentID)
		byComponent[componentID] = entry
	}
	return entry
}

// AddCounts folds severity counts into the running totals.
func (d *DataSummary) AddCounts(infos, warnings, errs int) {
	d.TotalInfos += infos
	d.TotalWarnings += warnings
	d.TotalErrors += errs
}
