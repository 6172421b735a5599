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

// Package source maps byte offsets within a Vix source file to the
// (file, line, column, length) quadruple every later phase reports
// diagnostics and emits debug info against.
package source

import "fmt"

// File is a single named input to the compiler: a Vix source file or a
// library source file being compiled as part of a library build.
type File struct {
	Name string // path as it should appear in diagnostics
	Text string // the complete file contents
	// lineStarts[i] is the byte offset of the first byte of line i+1.
	lineStarts []int
}

// NewFile builds a File and precomputes its line table.
func NewFile(name, text string) *File {
	f := &File{Name: name, Text: text, lineStarts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			f.lineStarts = append(f.lineStarts, i+1)
		}
	}
	return f
}

// Position returns the 1-based (line, column) for a byte offset.
func (f *File) Position(offset int) (line, col int) {
	// Binary search for the line containing offset.
	lo, hi := 0, len(f.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	line = lo + 1
	col = offset - f.lineStarts[lo] + 1
	return line, col
}

// Span is a half-open byte range [Start, End) within a File, the
// canonical location every token, diagnostic and AST node carries.
type Span struct {
	File  *File
	Start int
	End   int
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Text returns the source text the span covers.
func (s Span) Text() string {
	if s.File == nil {
		return ""
	}
	return s.File.Text[s.Start:s.End]
}

// Union returns the smallest span that contains both a and b. Both must
// refer to the same File.
func Union(a, b Span) Span {
	s := a
	if b.Start < s.Start {
		s.Start = b.Start
	}
	if b.End > s.End {
		s.End = b.End
	}
	return s
}

// String renders the span as "file:line:col" for use in diagnostic text.
func (s Span) String() string {
	if s.File == nil {
		return "-"
	}
	line, col := s.File.Position(s.Start)
	return fmt.Sprintf("%s:%d:%d", s.File.Name, line, col)
}
