package xlate

import (
	"github.com/kolkov/xlate/internal/diag"
	"github.com/kolkov/xlate/internal/tree"
)

// Tree is a dumped AST or IR: labelled nodes with optional type and
// source location. It prints as indented text and marshals to YAML.
type Tree = tree.Node

// Diagnostic is one problem reported while translating, formatted as
// "line:col [LEVEL] (stage): message".
type Diagnostic = diag.Diagnostic

// Severity levels of a Diagnostic.
const (
	SeverityError   = diag.Error
	SeverityWarning = diag.Warning
	SeverityInfo    = diag.Info
)

// Result is the outcome of one translation job.
type Result struct {
	// Success is false when any diagnostic is fatal.
	Success bool `yaml:"success"`

	// TargetCode is the generated program, empty on failure.
	TargetCode string `yaml:"targetCode"`

	// AST is the parsed source, nil when parsing failed.
	AST *Tree `yaml:"ast,omitempty"`

	// IR is the lowered program, nil when lowering did not complete.
	IR *Tree `yaml:"ir,omitempty"`

	// Diagnostics lists errors and warnings in the order stages
	// reported them.
	Diagnostics []Diagnostic `yaml:"diagnostics"`

	// Fingerprint is a keyed hash of TargetCode and the AST and IR
	// dumps. Identical jobs have identical fingerprints.
	Fingerprint uint64 `yaml:"fingerprint"`

	err error
}

// Err returns the error that stopped the translation, or nil.
// It is one of *LexError, *SyntaxError, *SemanticError,
// *UnsupportedConstructError or *InternalError, or wraps
// ErrUnsupportedLanguage.
func (r *Result) Err() error {
	return r.err
}

// Summary returns "N error(s), M warning(s)".
func (r *Result) Summary() string {
	return diag.List(r.Diagnostics).Summary()
}

// Warnings returns the non-fatal diagnostics.
func (r *Result) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == diag.Warning {
			out = append(out, d)
		}
	}
	return out
}
