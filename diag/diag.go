// Package diag implements the diagnostics sink.
//
// Diagnostics are routed through a single Sink rather than process-wide
// global state ("a process-wide error sink... maps cleanly to a
// single diagnostics handle threaded through the core"). A Sink also keeps
// an internal logrus logger for ambient tracing (grammar loads, scope
// push/pop, hook firing) that is deliberately separate from the diagnostic
// wire format of spec §6 — the diagnostic text format is a stable external
// contract, the trace log is not.
package diag

import (
	"fmt"
	"io"

	"github.com/muyoamon/morphl/token"
	"github.com/sirupsen/logrus"
)

// Severity mirrors spec §6: note | warning | error | fatal.
type Severity int

const (
	Note Severity = iota
	Warning
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Note:
		return "note"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Code ranges from spec §7: 1xxx lexer, 2xxx parser, 3xxx type, 4xxx
// semantic; 1..4 generic internal/OOM/invalid-arg/IO.
const (
	CodeInternal   = 1
	CodeOOM        = 2
	CodeInvalidArg = 3
	CodeIO         = 4

	CodeLexBase   = 1000
	CodeParseBase = 2000
	CodeTypeBase  = 3000
	CodeSemBase   = 4000
)

// Diagnostic is one logical entry ("<path>:<line>:<col>: <severity>[<code>]: <message>").
type Diagnostic struct {
	Span     token.Span
	Severity Severity
	Code     int
	Message  string
	// SourceLine, if non-empty, is echoed for context after the main line.
	SourceLine string
}

func (d Diagnostic) String() string {
	loc := fmt.Sprintf("%s:%d:%d", d.Span.Filename, d.Span.Row, d.Span.Col)
	head := fmt.Sprintf("%s: %s[%d]: %s", loc, d.Severity, d.Code, d.Message)
	if d.SourceLine == "" {
		return head
	}
	return head + "\n" + d.SourceLine
}

// Sink accumulates diagnostics in emission order ("diagnostics are
// emitted in source order for any single file") and tracks whether any
// error/fatal has been seen, for the driver's exit-status decision.
type Sink struct {
	out         io.Writer
	diagnostics []Diagnostic
	hadFailure  bool
	trace       *logrus.Logger
}

// NewSink creates a Sink that writes rendered diagnostics to out as they
// arrive. A nil out disables immediate rendering; diagnostics still
// accumulate and can be flushed later with Flush.
func NewSink(out io.Writer) *Sink {
	trace := logrus.New()
	trace.SetLevel(logrus.WarnLevel)
	trace.SetOutput(io.Discard)
	return &Sink{out: out, trace: trace}
}

// EnableTrace routes internal tracing to w at debug level — wired from the
// CLI driver's --debug flag, independent of diagnostic rendering.
func (s *Sink) EnableTrace(w io.Writer) {
	s.trace.SetLevel(logrus.DebugLevel)
	s.trace.SetOutput(w)
}

// Trace returns the internal structured logger for ambient tracing.
func (s *Sink) Trace() *logrus.Logger { return s.trace }

// Emit records a diagnostic and writes it immediately if an output was given.
func (s *Sink) Emit(d Diagnostic) {
	s.diagnostics = append(s.diagnostics, d)
	if d.Severity == Error || d.Severity == Fatal {
		s.hadFailure = true
	}
	if s.out != nil {
		fmt.Fprintln(s.out, d.String())
	}
	s.trace.WithFields(logrus.Fields{
		"severity": d.Severity.String(),
		"code":     d.Code,
		"span":     fmt.Sprintf("%s:%d:%d", d.Span.Filename, d.Span.Row, d.Span.Col),
	}).Debug(d.Message)
}

// Notef, Warnf, Errorf, Fatalf are convenience constructors matching the
// severities spec §7 assigns to each error class.
func (s *Sink) Notef(span token.Span, code int, format string, args ...any) {
	s.Emit(Diagnostic{Span: span, Severity: Note, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Warnf(span token.Span, code int, format string, args ...any) {
	s.Emit(Diagnostic{Span: span, Severity: Warning, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Errorf(span token.Span, code int, format string, args ...any) {
	s.Emit(Diagnostic{Span: span, Severity: Error, Code: code, Message: fmt.Sprintf(format, args...)})
}

func (s *Sink) Fatalf(span token.Span, code int, format string, args ...any) {
	s.Emit(Diagnostic{Span: span, Severity: Fatal, Code: code, Message: fmt.Sprintf(format, args...)})
}

// HadFailure reports whether any Error or Fatal diagnostic has been emitted —
// the driver's exit-status decision ("warnings do not change exit status").
func (s *Sink) HadFailure() bool { return s.hadFailure }

// Diagnostics returns all diagnostics emitted so far, in emission order.
func (s *Sink) Diagnostics() []Diagnostic { return s.diagnostics }
