// Copyright (C) 2024 The Vix Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package diag implements the compiler's diagnostic model: structured,
// accumulated records rather than Go errors. No phase of the pipeline
// panics or returns early on a recoverable diagnostic — see spec.md §7.
package diag

import (
	"fmt"

	"github.com/VixLanguage/Vix-programing-language/internal/source"
)

// Const is the type for constant, sentinel error values used by the
// ambient (non-diagnostic) parts of the pipeline — filesystem and
// subprocess failures that are not part of the compiled program's own
// error surface.
type Const string

// Error implements error for Const, returning the string value.
func (e Const) Error() string { return string(e) }

// Severity orders diagnostics from informational to fatal, per spec.md §7.
type Severity int

const (
	// Warning diagnostics never fail compilation on their own.
	Warning Severity = iota
	// Recoverable diagnostics are collected and compilation continues,
	// but their presence fails Collector.Finalize.
	Recoverable
	// Fatal diagnostics abort the current library/translation unit.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Recoverable:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Kind is a stable, machine-readable identifier for a diagnostic's
// category, independent of its human-readable Message.
type Kind string

// The fixed diagnostic kinds named by spec.md §7.
const (
	KindUnsafeCast              Kind = "UnsafeCast"
	KindUndefinedModuleFunction Kind = "UndefinedModuleFunction"
	KindUndefinedMethodFallback Kind = "UndefinedMethodFallback"
	KindUndefinedVariable       Kind = "UndefinedVariable"
	KindUndefinedMethod         Kind = "UndefinedMethod"
	KindTypeMismatch            Kind = "TypeMismatch"
	KindVoidOperation           Kind = "VoidOperation"
	KindVoidMemberAssign        Kind = "VoidMemberAssign"
	KindUnsupportedFeature      Kind = "UnsupportedFeature"
	KindInvalidLibraryCall      Kind = "InvalidLibraryCall"
	KindParseDiagnostic         Kind = "ParseDiagnostic"
	KindMissingPackageJSON      Kind = "MissingPackageJson"
	KindPathNotFound            Kind = "PathNotFound"
	KindJSONParseError          Kind = "JsonParseError"
	KindFileReadError           Kind = "FileReadError"
	KindParseError              Kind = "ParseError"
	KindExternalCompilerFailed  Kind = "ExternalCompilerFailed"
)

// Context carries the extra, optional information a Diagnostic may
// attach beyond its primary span: secondary locations, a help message
// and suggested fixes. Mirrors spec.md §4.6's ErrorContext.
type Context struct {
	Secondary   []source.Span
	Help        string
	Suggestions []string
}

// Diagnostic is a single structured error or warning record.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Primary  source.Span
	Severity Severity
	Context  Context
}

// Error implements error so a Diagnostic can be returned from functions
// that need the Go error interface (e.g. wrapped by pkg/errors at
// ambient-stack boundaries); the diagnostic pipeline itself never relies
// on this, it appends Diagnostics to a Collector instead.
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Primary, d.Severity, d.Message)
}

// Collector accumulates diagnostics for one compilation unit (one file,
// or one library build). It is not safe for concurrent use — each
// concurrently compiled library owns its own Collector, per spec.md §5.
type Collector struct {
	diagnostics []Diagnostic
}

// Add appends a diagnostic.
func (c *Collector) Add(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

// Warnf records a Warning-severity diagnostic.
func (c *Collector) Warnf(kind Kind, at source.Span, format string, args ...interface{}) {
	c.Add(Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Primary: at, Severity: Warning})
}

// Errorf records a Recoverable-severity diagnostic.
func (c *Collector) Errorf(kind Kind, at source.Span, format string, args ...interface{}) {
	c.Add(Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Primary: at, Severity: Recoverable})
}

// Fatalf records a Fatal-severity diagnostic. Callers still decide
// whether to abort; Fatalf itself never panics.
func (c *Collector) Fatalf(kind Kind, at source.Span, format string, args ...interface{}) {
	c.Add(Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...), Primary: at, Severity: Fatal})
}

// All returns every diagnostic recorded so far, in emission order.
func (c *Collector) All() []Diagnostic { return c.diagnostics }

// HasErrors reports whether any Recoverable or Fatal diagnostic has been
// recorded — the gate spec.md §4.6 calls has_errors().
func (c *Collector) HasErrors() bool {
	for _, d := range c.diagnostics {
		if d.Severity >= Recoverable {
			return true
		}
	}
	return false
}

// HasFatal reports whether any Fatal diagnostic has been recorded.
func (c *Collector) HasFatal() bool {
	for _, d := range c.diagnostics {
		if d.Severity == Fatal {
			return true
		}
	}
	return false
}

// Finalize returns a non-nil error iff HasErrors is true, aggregating
// every diagnostic message — the boundary spec.md §4.6 and §7 describe
// as the only place a diagnostic's presence turns into compile failure.
func (c *Collector) Finalize() error {
	if !c.HasErrors() {
		return nil
	}
	return List(c.diagnostics)
}

// Merge appends another Collector's diagnostics into c, preserving
// order. Used by the library manager to fold a per-library Collector's
// diagnostics into the overall build report.
func (c *Collector) Merge(other *Collector) {
	c.diagnostics = append(c.diagnostics, other.diagnostics...)
}

// ByFile groups the collected diagnostics by their primary span's file
// name — the shape a CLI renderer (out of core scope) needs to print a
// summary grouped by file, per spec.md §7. Within each file the
// diagnostics keep their emission order; the returned map carries no
// order across files.
func (c *Collector) ByFile() map[string][]Diagnostic {
	out := map[string][]Diagnostic{}
	var order []string
	seen := map[string]bool{}
	for _, d := range c.diagnostics {
		name := "-"
		if d.Primary.File != nil {
			name = d.Primary.File.Name
		}
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
		out[name] = append(out[name], d)
	}
	return out
}

// List is a convenience error type aggregating multiple Diagnostics,
// adapted from the collected-errors idiom of the teacher's own
// fault.List (core/fault/collect.go in the gapid tree this was grounded
// on).
type List []Diagnostic

func (l List) Error() string {
	if len(l) == 0 {
		return ""
	}
	return fmt.Sprintf("%d diagnostics, first was: %s", len(l), l[0].Error())
}
