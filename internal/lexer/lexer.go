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

// Package lexer turns a Vix source byte stream into a token stream with
// a parallel span slice, per spec.md §4.1. The lexer never halts on
// malformed input: unrecognized bytes are recorded as diagnostics and
// skipped, so the lexer is total (spec.md §8, invariant 1).
package lexer

import (
	"context"
	"strings"

	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
	"github.com/VixLanguage/Vix-programing-language/internal/token"
)

// Result is the output of a lex pass: a token stream and a parallel
// slice of the spans each token occupies in the source file.
type Result struct {
	Tokens []token.Token
	Spans  []source.Span
}

// Lexer scans one source.File into a Result.
type Lexer struct {
	file   *source.File
	text   string
	pos    int
	diags  *diag.Collector
	result Result
}

// New constructs a Lexer over file, recording any lexical errors into
// diags.
func New(file *source.File, diags *diag.Collector) *Lexer {
	return &Lexer{file: file, text: file.Text, diags: diags}
}

// Lex runs the lexer to completion and returns every token produced,
// including a trailing token.EOF. It always terminates (spec.md §8.1).
func Lex(ctx context.Context, file *source.File, diags *diag.Collector) Result {
	ctx = diag.Phase(ctx, "lexer")
	l := New(file, diags)
	log := diag.FromContext(ctx)
	log.WithField("file", file.Name).Debug("lexing")
	for {
		tok, span := l.next()
		l.result.Tokens = append(l.result.Tokens, tok)
		l.result.Spans = append(l.result.Spans, span)
		if tok.Kind == token.EOF {
			break
		}
	}
	log.WithField("tokens", len(l.result.Tokens)).Debug("lexing complete")
	return l.result
}

func (l *Lexer) emit(kind token.Kind, literal string, start int) (token.Token, source.Span) {
	return token.Token{Kind: kind, Literal: literal}, source.Span{File: l.file, Start: start, End: l.pos}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.text) {
		return 0
	}
	return l.text[l.pos]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.text) {
		return 0
	}
	return l.text[l.pos+offset]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentCont(b byte) bool { return isIdentStart(b) || isDigit(b) }

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.text) {
		b := l.peek()
		switch {
		case isSpace(b):
			l.pos++
		case b == '/' && l.peekAt(1) == '/':
			for l.pos < len(l.text) && l.text[l.pos] != '\n' {
				l.pos++
			}
		case b == '/' && l.peekAt(1) == '*':
			l.pos += 2
			for l.pos < len(l.text) {
				if l.peek() == '*' && l.peekAt(1) == '/' {
					l.pos += 2
					break
				}
				l.pos++
			}
		default:
			return
		}
	}
}

// next scans and returns the next token and the span it occupies.
func (l *Lexer) next() (token.Token, source.Span) {
	l.skipSpaceAndComments()
	start := l.pos
	if l.pos >= len(l.text) {
		return l.emit(token.EOF, "", start)
	}
	b := l.peek()
	switch {
	case isIdentStart(b):
		return l.scanIdent(start)
	case isDigit(b):
		return l.scanNumber(start)
	case b == '"':
		return l.scanString(start)
	case b == '\'':
		return l.scanChar(start)
	}
	if kind, text, ok := token.MatchOperator(l.text[l.pos:]); ok {
		l.pos += len(text)
		return l.emit(kind, text, start)
	}
	if kind, ok := token.MatchSingleCharOperator(b); ok {
		l.pos++
		return l.emit(kind, string(b), start)
	}
	// Unrecognized byte: record a diagnostic, skip it, keep scanning.
	l.pos++
	if l.diags != nil {
		l.diags.Errorf(diag.KindParseError, source.Span{File: l.file, Start: start, End: l.pos},
			"unrecognized byte %q", b)
	}
	return l.emit(token.Invalid, string(b), start)
}

func (l *Lexer) scanIdent(start int) (token.Token, source.Span) {
	for l.pos < len(l.text) && isIdentCont(l.text[l.pos]) {
		l.pos++
	}
	word := l.text[start:l.pos]
	if kind, ok := token.Keywords[word]; ok {
		return l.emit(kind, word, start)
	}
	return l.emit(token.Ident, word, start)
}

func (l *Lexer) scanNumber(start int) (token.Token, source.Span) {
	isFloat := false
	if l.peek() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		l.pos += 2
		for l.pos < len(l.text) && isHexDigit(l.text[l.pos]) {
			l.pos++
		}
		return l.emit(token.Int, l.text[start:l.pos], start)
	}
	if l.peek() == '0' && (l.peekAt(1) == 'b' || l.peekAt(1) == 'B') {
		l.pos += 2
		for l.pos < len(l.text) && (l.text[l.pos] == '0' || l.text[l.pos] == '1' || l.text[l.pos] == '_') {
			l.pos++
		}
		return l.emit(token.Int, l.text[start:l.pos], start)
	}
	if l.peek() == '0' && (l.peekAt(1) == 'o' || l.peekAt(1) == 'O') {
		l.pos += 2
		for l.pos < len(l.text) && l.text[l.pos] >= '0' && l.text[l.pos] <= '7' {
			l.pos++
		}
		return l.emit(token.Int, l.text[start:l.pos], start)
	}
	for l.pos < len(l.text) && (isDigit(l.text[l.pos]) || l.text[l.pos] == '_') {
		l.pos++
	}
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.text) && isDigit(l.text[l.pos]) {
			l.pos++
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		save := l.pos
		l.pos++
		if l.peek() == '+' || l.peek() == '-' {
			l.pos++
		}
		if isDigit(l.peek()) {
			isFloat = true
			for l.pos < len(l.text) && isDigit(l.text[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	kind := token.Int
	if isFloat {
		kind = token.Float
	}
	return l.emit(kind, l.text[start:l.pos], start)
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') || b == '_'
}

func (l *Lexer) scanString(start int) (token.Token, source.Span) {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.text) && l.text[l.pos] != '"' {
		c := l.text[l.pos]
		if c == '\\' && l.pos+1 < len(l.text) {
			esc, n := decodeEscape(l.text[l.pos:])
			sb.WriteString(esc)
			l.pos += n
			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
	if l.pos < len(l.text) {
		l.pos++ // closing quote
	} else if l.diags != nil {
		l.diags.Errorf(diag.KindParseError, source.Span{File: l.file, Start: start, End: l.pos},
			"unterminated string literal")
	}
	return l.emit(token.String, sb.String(), start)
}

func (l *Lexer) scanChar(start int) (token.Token, source.Span) {
	l.pos++ // opening quote
	var value string
	if l.pos < len(l.text) && l.text[l.pos] == '\\' {
		esc, n := decodeEscape(l.text[l.pos:])
		value = esc
		l.pos += n
	} else if l.pos < len(l.text) {
		value = string(l.text[l.pos])
		l.pos++
	}
	if l.pos < len(l.text) && l.text[l.pos] == '\'' {
		l.pos++
	} else if l.diags != nil {
		l.diags.Errorf(diag.KindParseError, source.Span{File: l.file, Start: start, End: l.pos},
			"unterminated char literal")
	}
	return l.emit(token.Char, value, start)
}

// decodeEscape decodes a standard backslash escape at the start of s,
// returning the decoded text and the number of source bytes it consumed.
func decodeEscape(s string) (string, int) {
	if len(s) < 2 {
		return s, len(s)
	}
	switch s[1] {
	case 'n':
		return "\n", 2
	case 't':
		return "\t", 2
	case 'r':
		return "\r", 2
	case '0':
		return "\x00", 2
	case '\\':
		return "\\", 2
	case '\'':
		return "'", 2
	case '"':
		return "\"", 2
	default:
		return s[1:2], 2
	}
}
