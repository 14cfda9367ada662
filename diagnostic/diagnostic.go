// Package diagnostic defines the analyzer's reportable findings and the
// yaml-serializable report wrapping them. Each exported field carries one
// yaml tag for direct marshaling.
package diagnostic

import (
	"sort"

	"github.com/viant/glowy/token"
)

// Code identifies one diagnostic kind.
type Code string

const (
	// CodeLexParse covers every lexer/parser failure: unexpected
	// character, unterminated string, malformed annotation, or a
	// grammar-level Expected mismatch.
	CodeLexParse Code = "E001"
	// CodeInsecureFlow is a sink receiving a label that is not a subset
	// of its declared clearance via an explicit data dependency.
	CodeInsecureFlow Code = "E002"
	// CodeImplicitBranch is the same violation, but attributable to an
	// implicit flow through a branch the sunk value passed through.
	CodeImplicitBranch Code = "E003"
	// CodeUnsupported is an Unsupported{construct,span} from either the
	// parser (grammar-recognized but unsupported construct) or the
	// analyzer (a construct it cannot evaluate, defaulting its label to ⊤).
	CodeUnsupported Code = "E004"
	// CodeAnalysisTimeout is raised when the worklist exceeds its step
	// budget without reaching a fixed point, rather than truncating the
	// analysis silently.
	CodeAnalysisTimeout Code = "E005"
	// CodeDroppedAnnotation is a warning: an annotation bound to nothing.
	CodeDroppedAnnotation Code = "W001"
	// CodeUnknownScope is a warning: an annotation scope the analyzer
	// doesn't recognize, and so ignores (forward-compatible).
	CodeUnknownScope Code = "W002"
	// CodeNoOpDeclassify is a warning: a declassify annotation applied to
	// an expression whose computed label was already ⊥.
	CodeNoOpDeclassify Code = "W003"
)

// Severity distinguishes a hard finding from an informational warning.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one reportable finding, identified by source position so
// diagnostics from repeated runs over the same input sort identically.
type Diagnostic struct {
	Code     Code     `yaml:"code"`
	Severity Severity `yaml:"severity"`
	File     string   `yaml:"file"`
	Line     int      `yaml:"line"`
	Column   int      `yaml:"column"`
	Message  string   `yaml:"message"`
	Label    string   `yaml:"label,omitempty"`    // the offending value's computed label, for E002/E003
	Required string   `yaml:"required,omitempty"` // the sink's declared clearance, for E002/E003
}

// FromSpan builds a diagnostic anchored at span's start position.
func FromSpan(code Code, sev Severity, span token.Span, msg string) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: sev,
		File:     span.File,
		Line:     span.Begin.Line,
		Column:   span.Begin.Column,
		Message:  msg,
	}
}

// Report is the full output of one analysis run.
type Report struct {
	// Module is the go.mod module path of the project the input resolved
	// from, if any. It carries no weight in the analysis itself — it is
	// attached purely so a finding can be traced back to a project.
	Module      string       `yaml:"module,omitempty"`
	Diagnostics []Diagnostic `yaml:"diagnostics"`
}

// Add appends d to the report.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// HasErrors reports whether any diagnostic in the report is an error
// (as opposed to only warnings) — drives the CLI's exit code.
func (r *Report) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by (file, line, column) and then by code, so two
// findings sharing a position still sort deterministically.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		a, b := r.Diagnostics[i], r.Diagnostics[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.Code < b.Code
	})
}
