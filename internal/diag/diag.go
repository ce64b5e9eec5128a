// Package diag collects diagnostics produced while translating one program.
//
// Every stage reports through the same Diagnostic shape so the driver can
// present lexer, parser, semantic and lowering problems uniformly:
//
//	3:5 [ERROR] (semantic): undefined symbol "x"
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/kolkov/xlate/internal/token"
)

// Severity ranks a diagnostic.
type Severity uint8

const (
	Error Severity = iota
	Warning
	Info
)

var severityNames = [...]string{
	Error:   "ERROR",
	Warning: "WARNING",
	Info:    "INFO",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// MarshalYAML renders the severity by name.
func (s Severity) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Stage names the pipeline stage a diagnostic originates from.
type Stage uint8

const (
	Lex Stage = iota
	Parse
	Semantic
	IR
	Verify
)

var stageNames = [...]string{
	Lex:      "lex",
	Parse:    "parse",
	Semantic: "semantic",
	IR:       "ir",
	Verify:   "verify",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// MarshalYAML renders the stage by name.
func (s Stage) MarshalYAML() (any, error) {
	return s.String(), nil
}

// Diagnostic is one reported problem with its source location.
type Diagnostic struct {
	Severity Severity `yaml:"severity"`
	Stage    Stage    `yaml:"stage"`
	Line     int      `yaml:"line"`
	Column   int      `yaml:"column"`
	Message  string   `yaml:"message"`
}

// String formats d as "line:col [LEVEL] (stage): message".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d [%s] (%s): %s", d.Line, d.Column, d.Severity, d.Stage, d.Message)
}

// IsFatal reports whether d stops the translation.
func (d Diagnostic) IsFatal() bool {
	return d.Severity == Error
}

// New returns a diagnostic at pos. Invalid positions are clamped to 0:0
// so every diagnostic carries a non-negative location.
func New(sev Severity, stage Stage, pos token.Position, message string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Stage:    stage,
		Line:     max(pos.Line, 0),
		Column:   max(pos.Column, 0),
		Message:  message,
	}
}

// List is an ordered collection of diagnostics for one job.
type List []Diagnostic

// Add appends d to the list.
func (l *List) Add(d Diagnostic) {
	*l = append(*l, d)
}

// Errorf appends an error diagnostic.
func (l *List) Errorf(stage Stage, pos token.Position, format string, args ...any) {
	l.Add(New(Error, stage, pos, fmt.Sprintf(format, args...)))
}

// Warnf appends a warning diagnostic.
func (l *List) Warnf(stage Stage, pos token.Position, format string, args ...any) {
	l.Add(New(Warning, stage, pos, fmt.Sprintf(format, args...)))
}

// Infof appends an informational diagnostic.
func (l *List) Infof(stage Stage, pos token.Position, format string, args ...any) {
	l.Add(New(Info, stage, pos, fmt.Sprintf(format, args...)))
}

// Count returns the number of diagnostics with the given severity.
func (l List) Count(sev Severity) int {
	n := 0
	for _, d := range l {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// HasErrors reports whether any diagnostic is fatal.
func (l List) HasErrors() bool {
	return l.Count(Error) > 0
}

// FirstError returns the first fatal diagnostic.
func (l List) FirstError() (Diagnostic, bool) {
	for _, d := range l {
		if d.IsFatal() {
			return d, true
		}
	}
	return Diagnostic{}, false
}

// Summary returns "N error(s), M warning(s)".
func (l List) Summary() string {
	return fmt.Sprintf("%d error(s), %d warning(s)", l.Count(Error), l.Count(Warning))
}

// Fprint writes one formatted diagnostic per line to w.
func Fprint(w io.Writer, l List) error {
	for _, d := range l {
		if _, err := fmt.Fprintln(w, d.String()); err != nil {
			return err
		}
	}
	return nil
}

// String formats every diagnostic on its own line.
func (l List) String() string {
	var sb strings.Builder
	_ = Fprint(&sb, l)
	return sb.String()
}
