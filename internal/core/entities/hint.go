package entities

// Severity classifies a Hint, derived at registration time from the static
// HintRegistry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// HintSubjectKind distinguishes the two shapes a Hint subject can take.
type HintSubjectKind int

const (
	// SubjectFile identifies a hint raised against a raw file basename,
	// before any Component has necessarily been created for it.
	SubjectFile HintSubjectKind = iota
	// SubjectComponent identifies a hint raised against an already-created
	// Component, resolved to the component's ID when the hints are encoded
	// for the store.
	SubjectComponent
)

// HintSubject is the tagged variant described in the design notes: a hint
// is raised against either a file basename or a component reference.
type HintSubject struct {
	Kind HintSubjectKind
	// File holds the basename when Kind == SubjectFile.
	File string
	// Component holds the component reference when Kind == SubjectComponent.
	Component *Component
}

// FileSubject builds a HintSubject identifying a raw file basename.
func FileSubject(basename string) HintSubject {
	return HintSubject{Kind: SubjectFile, File: basename}
}

// ComponentSubject builds a HintSubject identifying a Component.
func ComponentSubject(c *Component) HintSubject {
	return HintSubject{Kind: SubjectComponent, Component: c}
}

// ResolvedID returns the identifier the subject resolves to: the component
// ID when the subject is a component reference, the raw basename otherwise.
func (s HintSubject) ResolvedID() string {
	if s.Kind == SubjectComponent && s.Component != nil {
		return s.Component.ID
	}
	return s.File
}

// Hint is a raw diagnostic recorded by a GeneratorResult: a subject, a tag
// naming the kind of issue, and the variable bindings needed to render its
// message. Severity and the rendered message text are filled in later by
// the HintRegistry, not at the point the hint is raised.
type Hint struct {
	Subject   HintSubject
	Tag       string
	Variables map[string]string
}

// NewHint creates a Hint against subject with the given tag and variable
// bindings.
func NewHint(subject HintSubject, tag string, variables map[string]string) Hint {
	if variables == nil {
		variables = map[string]string{}
	}
	return Hint{Subject: subject, Tag: tag, Variables: variables}
}
