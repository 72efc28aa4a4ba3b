package diag

import (
	"sort"
	"sync"
)

// Severity indicates how serious a diagnostic is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Kind identifies the rule that produced a diagnostic
type Kind string

// Binding check kinds, one per rule.
const (
	KindMapParam                  Kind = "MAP_PARAM"
	KindRepeatedMessageParam      Kind = "REPEATED_MESSAGE_PARAM"
	KindCyclicParamReference      Kind = "CYCLIC_PARAM_REFERENCE"
	KindPathFieldType             Kind = "PATH_FIELD_TYPE"
	KindOverlappingPathSelectors  Kind = "OVERLAPPING_PATH_SELECTORS"
	KindBodySubMessage            Kind = "BODY_SUB_MESSAGE"
	KindBodyFieldType             Kind = "BODY_FIELD_TYPE"
	KindResponseNotJSONObject     Kind = "RESPONSE_NOT_JSON_OBJECT"
	KindNestedAdditionalBindings  Kind = "NESTED_ADDITIONAL_BINDINGS"
	KindAdditionalBindingSelector Kind = "ADDITIONAL_BINDING_SELECTOR"
)

// Extraction and front-end kinds.
const (
	KindUnresolvedFieldPath Kind = "UNRESOLVED_FIELD_PATH"
	KindUnresolvedBodyPath  Kind = "UNRESOLVED_BODY_PATH"
	KindCompileError        Kind = "COMPILE_ERROR"
)

// Diagnostic is a single finding tied to a source location
type Diagnostic struct {
	Kind     Kind     `json:"kind"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	File     string   `json:"file,omitempty"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Method   string   `json:"method,omitempty"`
}

// Reporter receives diagnostics as checks find them
type Reporter interface {
	Report(d Diagnostic)
}

// Collector accumulates diagnostics. Safe for concurrent use.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// NewCollector creates an empty collector
func NewCollector() *Collector {
	return &Collector{
		diags: make([]Diagnostic, 0),
	}
}

// Report appends a diagnostic
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns a copy of everything reported so far
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Diagnostic, len(c.diags))
	copy(out, c.diags)
	return out
}

// Len returns the number of diagnostics reported
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.diags)
}

// HasErrors reports whether any diagnostic has error severity
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of diagnostics of the given kind
func (c *Collector) Count(k Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.Kind == k {
			n++
		}
	}
	return n
}

// Summary provides an overview of diagnostics across a run
type Summary struct {
	TotalFiles       int          `json:"total_files"`
	TotalDiagnostics int          `json:"total_diagnostics"`
	Errors           int          `json:"errors"`
	Warnings         int          `json:"warnings"`
	Infos            int          `json:"infos"`
	ByKind           map[Kind]int `json:"by_kind,omitempty"`
}

// Summarize tallies a diagnostic list by severity and kind
func Summarize(diags []Diagnostic) Summary {
	s := Summary{
		TotalDiagnostics: len(diags),
		ByKind:           make(map[Kind]int),
	}
	for _, d := range diags {
		switch d.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
		s.ByKind[d.Kind]++
	}
	return s
}

// Merge folds another summary into this one
func (s *Summary) Merge(other Summary) {
	s.TotalFiles += other.TotalFiles
	s.TotalDiagnostics += other.TotalDiagnostics
	s.Errors += other.Errors
	s.Warnings += other.Warnings
	s.Infos += other.Infos
	if s.ByKind == nil {
		s.ByKind = make(map[Kind]int)
	}
	for k, n := range other.ByKind {
		s.ByKind[k] += n
	}
}

// KindInfo describes one diagnostic kind for rule listings
type KindInfo struct {
	Kind            Kind     `json:"kind"`
	DefaultSeverity Severity `json:"default_severity"`
	Description     string   `json:"description"`
}

var kindTable = []KindInfo{
	{KindMapParam, SeverityError, "map fields cannot be mapped as HTTP parameters"},
	{KindRepeatedMessageParam, SeverityError, "repeated message fields cannot be mapped as HTTP parameters"},
	{KindCyclicParamReference, SeverityError, "cyclic message references cannot be mapped as HTTP parameters"},
	{KindPathFieldType, SeverityError, "path parameters must resolve to non-repeated, non-map, path-safe fields"},
	{KindOverlappingPathSelectors, SeverityError, "path template variables must not capture overlapping field paths"},
	{KindBodySubMessage, SeverityError, "body field paths must name a direct field of the request message"},
	{KindBodyFieldType, SeverityError, "body fields must be non-repeated messages that render as JSON objects"},
	{KindResponseNotJSONObject, SeverityError, "response types must render as JSON objects"},
	{KindNestedAdditionalBindings, SeverityError, "additional_bindings rules must not nest further additional_bindings"},
	{KindAdditionalBindingSelector, SeverityError, "additional_bindings rules must not specify a selector"},
	{KindUnresolvedFieldPath, SeverityError, "path or query field paths must resolve against the request message"},
	{KindUnresolvedBodyPath, SeverityError, "body field paths must resolve against the request message"},
	{KindCompileError, SeverityError, "proto sources must compile"},
}

// Kinds returns every kind the checker can emit, in stable order
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kindTable))
	copy(out, kindTable)
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// DefaultSeverity returns the default severity for a kind, or
// SeverityError for unknown kinds
func DefaultSeverity(k Kind) Severity {
	for _, info := range kindTable {
		if info.Kind == k {
			return info.DefaultSeverity
		}
	}
	return SeverityError
}

// IsKnownKind reports whether k names a kind httplint can emit
func IsKnownKind(k Kind) bool {
	for _, info := range kindTable {
		if info.Kind == k {
			return true
		}
	}
	return false
}
