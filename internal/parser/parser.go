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

// Package parser is a recursive-descent parser over the token stream
// internal/lexer produces, turning one source file into an *ast.Program
// plus an *importctx.Context (spec.md §4.2). It never panics: every
// malformed construct is recorded as a ParseDiagnostic and the parser
// resynchronizes to keep going, matching gapil/semantic's own totality
// discipline of never aborting a translation unit on a recoverable
// problem.
package parser

import (
	"context"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/importctx"
	"github.com/VixLanguage/Vix-programing-language/internal/lexer"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
	"github.com/VixLanguage/Vix-programing-language/internal/token"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// maxSyncSkip bounds how many tokens expect() will discard while
// hunting for a synchronization point, per spec.md §4.2.
const maxSyncSkip = 50

// Parser holds the cursor over one file's token stream and the
// parser-local state spec.md §4.2 calls out: the type-alias map used to
// inline `type Name = Expr` at every later reference.
type Parser struct {
	file   *source.File
	tokens []token.Token
	spans  []source.Span
	pos    int
	diags  *diag.Collector

	aliases map[string]types.Type
}

// Parse lexes and parses file in one call, returning the resulting
// Program and the ImportContext built from its import prefix. Errors
// are recorded into diags, never returned — spec.md §8 invariant 2:
// the parser terminates and always produces a (possibly partial)
// Program.
func Parse(ctx context.Context, file *source.File, diags *diag.Collector) (*ast.Program, *importctx.Context) {
	ctx = diag.Phase(ctx, "parser")
	log := diag.FromContext(ctx)
	lexResult := lexer.Lex(ctx, file, diags)

	p := &Parser{
		file:    file,
		tokens:  lexResult.Tokens,
		spans:   lexResult.Spans,
		diags:   diags,
		aliases: make(map[string]types.Type),
	}
	prog := p.parseProgram()
	importCtx := importctx.Build(prog)

	missing := importctx.Undefined(prog, importCtx)
	for _, name := range missing {
		log.WithField("callee", name).Debug("undefined call after import resolution")
	}

	log.WithField("functions", len(prog.Functions)).Debug("parse complete")
	return prog, importCtx
}

// --- token cursor ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) curSpan() source.Span {
	if p.pos >= len(p.spans) {
		if len(p.spans) > 0 {
			return p.spans[len(p.spans)-1]
		}
		return source.Span{File: p.file}
	}
	return p.spans[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[i]
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.at(k) {
			return true
		}
	}
	return false
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

// expect consumes a token of kind k, or — per spec.md §4.2's
// synchronizing recovery — records a ParseDiagnostic and skips forward
// up to maxSyncSkip tokens looking for any member of sync, stopping
// early at EOF.
func (p *Parser) expect(k token.Kind, sync ...token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errorf("expected %s, found %s", k, p.cur().Kind)
	p.syncTo(sync...)
	return token.Token{}, false
}

func (p *Parser) syncTo(sync ...token.Kind) {
	for i := 0; i < maxSyncSkip; i++ {
		if p.at(token.EOF) {
			return
		}
		if len(sync) == 0 || p.atAny(sync...) {
			return
		}
		p.advance()
	}
}

func (p *Parser) errorf(format string, args ...any) {
	p.diags.Errorf(diag.KindParseDiagnostic, p.curSpan(), format, args...)
}

// spanFrom returns the union of the span at startPos and the span just
// consumed, used to give a node a span covering everything it parsed.
func (p *Parser) spanFrom(startPos int) source.Span {
	start := p.spanAt(startPos)
	end := p.spanAt(p.pos - 1)
	return source.Union(start, end)
}

func (p *Parser) spanAt(i int) source.Span {
	if i < 0 {
		i = 0
	}
	if i >= len(p.spans) {
		if len(p.spans) == 0 {
			return source.Span{File: p.file}
		}
		return p.spans[len(p.spans)-1]
	}
	return p.spans[i]
}

// --- top level ---

func (p *Parser) parseProgram() *ast.Program {
	start := p.pos
	prog := &ast.Program{File: p.file.Name}

	// Imports, if any, must be an unbroken prefix (spec.md §4.2).
	for p.atAny(token.Import, token.From) {
		imp := p.parseImport()
		if imp != nil {
			prog.Imports = append(prog.Imports, imp)
		}
	}

	for !p.at(token.EOF) {
		before := p.pos
		p.parseTopLevel(prog)
		if p.pos == before {
			// Nothing was consumed (an unrecognized token at top level):
			// force progress so the parser always terminates.
			p.errorf("unexpected token %s at top level", p.cur().Kind)
			p.advance()
		}
	}

	prog.At(p.spanFrom(start))
	return prog
}

func (p *Parser) parseImport() ast.Node {
	start := p.pos
	if p.at(token.From) {
		p.advance()
		path, _ := p.expect(token.String, token.Import, token.Semicolon)
		p.expect(token.Import, token.Semicolon)
		// `from "path" import *` — a file import; the imported-name list
		// itself is not semantically tracked beyond "this file is used".
		for !p.at(token.Semicolon) && !p.at(token.EOF) && !p.atTopLevelStart() {
			p.advance()
		}
		if p.at(token.Semicolon) {
			p.advance()
		}
		n := &ast.FileImport{Path: path.Literal}
		n.At(p.spanFrom(start))
		return n
	}

	p.advance() // `import`
	name, ok := p.expect(token.Ident, token.Semicolon)
	if !ok {
		return nil
	}
	if p.at(token.ColonColon) {
		p.advance()
		p.expect(token.Star, token.Semicolon)
		if p.at(token.Semicolon) {
			p.advance()
		}
		n := &ast.WildcardImport{Name: name.Literal}
		n.At(p.spanFrom(start))
		return n
	}
	alias := ""
	if p.at(token.As) {
		p.advance()
		if id, ok := p.expect(token.Ident, token.Semicolon); ok {
			alias = id.Literal
		}
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	n := &ast.LibraryImport{Name: name.Literal, Alias: alias}
	n.At(p.spanFrom(start))
	return n
}

// atTopLevelStart reports whether the current token could begin a
// top-level form — used by parseImport's lenient skip loop so a
// malformed `from` import doesn't eat the rest of the file.
func (p *Parser) atTopLevelStart() bool {
	return p.atAny(token.Func, token.Pub, token.Struct, token.Enum, token.Module,
		token.Type, token.At, token.Hash, token.Import, token.From, token.Extern)
}

func (p *Parser) parseTopLevel(prog *ast.Program) {
	attrs := p.parseAttributes()

	switch {
	case p.at(token.At):
		prog.FFIBlocks = append(prog.FFIBlocks, p.parseFFIBlock())
	case p.at(token.Extern):
		if fn := p.parseExternFunc(); fn != nil {
			prog.Functions = append(prog.Functions, fn)
		}
	case p.at(token.Type):
		prog.TypeAliases = append(prog.TypeAliases, p.parseTypeAlias())
	case p.at(token.Module):
		prog.Modules = append(prog.Modules, p.parseModule())
	case p.atAny(token.Pub, token.Struct):
		public := p.consumePub()
		switch {
		case p.at(token.Struct):
			prog.Structs = append(prog.Structs, p.parseStruct(public))
		case p.at(token.Enum):
			prog.Enums = append(prog.Enums, p.parseEnum(public))
		case p.at(token.Func):
			prog.Functions = append(prog.Functions, p.parseFunction(public, attrs))
		case p.at(token.Impl):
			prog.Functions = append(prog.Functions, p.parseImpl()...)
		default:
			p.errorf("expected a declaration after 'pub', found %s", p.cur().Kind)
			p.syncTo(token.Func, token.Struct, token.Enum, token.Module, token.Impl)
		}
	case p.at(token.Enum):
		prog.Enums = append(prog.Enums, p.parseEnum(false))
	case p.at(token.Func):
		prog.Functions = append(prog.Functions, p.parseFunction(false, attrs))
	case p.at(token.Impl):
		prog.Functions = append(prog.Functions, p.parseImpl()...)
	default:
		p.errorf("unexpected token %s at top level", p.cur().Kind)
		p.advance()
	}
}

func (p *Parser) consumePub() bool {
	if p.at(token.Pub) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseAttributes() []ast.Attribute {
	var attrs []ast.Attribute
	for p.at(token.Hash) {
		p.advance()
		p.expect(token.LBracket, token.RBracket)
		name, _ := p.expect(token.Ident, token.RBracket)
		arg := ""
		if p.at(token.LParen) {
			p.advance()
			if !p.at(token.RParen) {
				tok := p.advance()
				arg = tok.Literal
			}
			p.expect(token.RParen, token.RBracket)
		}
		p.expect(token.RBracket, token.Func, token.Pub)
		attrs = append(attrs, ast.Attribute{Name: name.Literal, Arg: arg})
	}
	return attrs
}

func (p *Parser) parseTypeAlias() *ast.TypeAlias {
	start := p.pos
	p.advance() // `type`
	name, _ := p.expect(token.Ident, token.Assign)
	p.expect(token.Assign, token.Semicolon)
	t := p.parseType()
	if p.at(token.Semicolon) {
		p.advance()
	}
	p.aliases[name.Literal] = t
	n := &ast.TypeAlias{Name: name.Literal, Type: t}
	n.At(p.spanFrom(start))
	return n
}
