package errors

import (
	"encoding/json"
	"errors"

	"github.com/FuelLabs/sway-core-go/internal/ast"
)

// SchemaV1 is the report schema version every Report carries.
const SchemaV1 = "sway-core-go.diagnostic/v1"

// Fix is a suggested correction attached to a diagnostic (spec §6.5).
type Fix struct {
	Suggestion string `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// Report is the canonical structured diagnostic (spec §6.5, §7): every
// diagnostic the core produces, warning or error, is one of these. Kind
// tags (e.g. PathDoesNotReturn, TraitConstraintNotSatisfied) live in Code;
// structured payload fields referenced by name in spec.md's scenarios
// (e.g. the offending type and trait for S5) live in Data.
type Report struct {
	Schema  string         `json:"schema"`
	Code    string         `json:"code"`
	Phase   string         `json:"phase"`
	Message string         `json:"message"`
	Span    *ast.Span      `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// ReportError wraps a Report as an error
// This allows structured reports to survive errors.As() unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain
// Returns the Report and true if found, nil and false otherwise
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
// Call sites should return errors.WrapReport(report) to preserve structure
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON converts a Report to JSON (deterministic: struct fields in
// declaration order, Data map keys sorted)
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error

	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}

	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewInternal wraps an unexpected internal failure (spec §7 "Internal
// errors ... always fatal, always carry a span").
func NewInternal(phase string, span *ast.Span, err error) *Report {
	return &Report{
		Schema:  SchemaV1,
		Code:    INT001,
		Phase:   phase,
		Message: err.Error(),
		Span:    span,
	}
}

// New builds a Report with the given code/phase/message/span; Data may be
// nil.
func New(code, phase, message string, span *ast.Span, data map[string]any) *Report {
	return &Report{
		Schema:  SchemaV1,
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    span,
		Data:    data,
	}
}

// WithFix attaches a suggested correction and returns the same Report for
// chaining at call sites.
func (r *Report) WithFix(suggestion string, confidence float64) *Report {
	r.Fix = &Fix{Suggestion: suggestion, Confidence: confidence}
	return r
}

// Result is the standard collected-diagnostics wrapper every pipeline
// stage returns (spec §7 propagation policy: "A component returns both an
// optional value and diagnostic vectors"). Errors being non-empty means
// the stage's Value must not be consumed as final output, though — per
// spec §7 — later stages or the driver may still read Warnings/Errors.
type Result[T any] struct {
	Value    T
	Warnings []*Report
	Errors   []*Report
}

// OK reports whether the result carries no errors (warnings are fine).
func (r Result[T]) OK() bool { return len(r.Errors) == 0 }

// Merge appends another result's diagnostics onto r in place, preserving
// source order (spec §5 ordering guarantees extend to diagnostics too).
func (r *Result[T]) Merge(other Result[T]) {
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError appends an error-severity diagnostic.
func (r *Result[T]) AddError(rep *Report) { r.Errors = append(r.Errors, rep) }

// AddWarning appends a warning-severity diagnostic.
func (r *Result[T]) AddWarning(rep *Report) { r.Warnings = append(r.Warnings, rep) }
