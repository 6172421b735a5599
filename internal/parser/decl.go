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

package parser

import (
	"strconv"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/token"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// parseFunction parses «func name(params): ReturnType body end», a
// top-level free function. A `main` function with no declared return
// type defaults to Int32 (spec.md §4.2).
func (p *Parser) parseFunction(public bool, attrs []ast.Attribute) *ast.Function {
	start := p.pos
	p.advance() // `func`
	name, _ := p.expect(token.Ident, token.LParen)

	fn := &ast.Function{Name: name.Literal, Public: public, Attributes: attrs}
	fn.Receiver, fn.Parameters = p.parseParamList()
	fn.ReturnType = p.parseOptionalReturnType(name.Literal)
	fn.Body = p.parseBlockUntilEnd()
	fn.At(p.spanFrom(start))
	return fn
}

// parseExternFunc parses a bare «extern "ABI" func name(params): Ret»
// declaration (no body) outside of an @ffi block.
func (p *Parser) parseExternFunc() *ast.Function {
	start := p.pos
	p.advance() // `extern`
	if p.at(token.String) {
		p.advance() // ABI string, informational only outside @ffi blocks
	}
	p.expect(token.Func, token.Ident)
	name, _ := p.expect(token.Ident, token.LParen)
	fn := &ast.Function{Name: name.Literal}
	_, fn.Parameters = p.parseParamList()
	fn.ReturnType = p.parseOptionalReturnType(name.Literal)
	if p.at(token.Semicolon) {
		p.advance()
	}
	fn.At(p.spanFrom(start))
	return fn
}

// parseOptionalReturnType parses «: Type» if present, else defaults to
// Int32 for a function literally named "main" and Void otherwise
// (spec.md §4.2).
func (p *Parser) parseOptionalReturnType(fnName string) types.Type {
	if p.at(token.Colon) {
		p.advance()
		return p.parseType()
	}
	if fnName == "main" {
		return types.Int32
	}
	return types.VoidT
}

// parseParamList parses «(self-or-params...)», returning the detected
// self modifier (SelfNone if absent) and the ordinary parameter list.
func (p *Parser) parseParamList() (ast.SelfModifier, []ast.Parameter) {
	p.expect(token.LParen, token.RParen)
	recv := ast.SelfNone
	if mod, ok := p.tryParseSelfParam(); ok {
		recv = mod
		if p.at(token.Comma) {
			p.advance()
		}
	}
	var params []ast.Parameter
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pname, _ := p.expect(token.Ident, token.Colon, token.Comma, token.RParen)
		var ptype types.Type = types.VoidT
		if p.at(token.Colon) {
			p.advance()
			ptype = p.parseType()
		}
		params = append(params, ast.Parameter{Name: pname.Literal, Type: ptype})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, token.Colon, token.LBrace)
	return recv, params
}

// tryParseSelfParam recognizes the five self-parameter spellings spec.md
// §4.2 lists: self, mut self, &self, &mut self, brw self.
func (p *Parser) tryParseSelfParam() (ast.SelfModifier, bool) {
	switch {
	case p.at(token.Self):
		p.advance()
		return ast.SelfValue, true
	case p.at(token.Mut) && p.peekAt(1).Kind == token.Self:
		p.advance()
		p.advance()
		return ast.SelfMut, true
	case p.at(token.Brw) && p.peekAt(1).Kind == token.Self:
		p.advance()
		p.advance()
		return ast.SelfBorrow, true
	case p.at(token.Amp) && p.peekAt(1).Kind == token.Self:
		p.advance()
		p.advance()
		return ast.SelfRef, true
	case p.at(token.Amp) && p.peekAt(1).Kind == token.Mut && p.peekAt(2).Kind == token.Self:
		p.advance()
		p.advance()
		p.advance()
		return ast.SelfMutRef, true
	default:
		return ast.SelfNone, false
	}
}

// parseBlockUntilEnd parses statements until the `end` keyword,
// consuming it; used by every `end`-terminated construct (spec.md §4.2).
func (p *Parser) parseBlockUntilEnd() *ast.Block {
	start := p.pos
	b := &ast.Block{}
	for !p.at(token.End) && !p.at(token.EOF) {
		before := p.pos
		if s := p.parseStmt(); s != nil {
			b.Statements = append(b.Statements, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.End, token.End)
	b.At(p.spanFrom(start))
	return b
}

// parseBraceBlockStmts parses a `{ ... }` delimited statement list, used only
// for module bodies (spec.md §4.2).
func (p *Parser) parseBraceBlockStmts() []ast.Stmt {
	p.expect(token.LBrace, token.RBrace)
	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.pos
		if s := p.parseStmt(); s != nil {
			stmts = append(stmts, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	p.expect(token.RBrace, token.RBrace)
	return stmts
}

func (p *Parser) parseStruct(public bool) *ast.StructDef {
	start := p.pos
	p.advance() // `struct`
	name, _ := p.expect(token.Ident, token.End)
	s := &ast.StructDef{Name: name.Literal, Public: public}
	for !p.at(token.End) && !p.at(token.EOF) {
		fieldPub := p.consumePub()
		fname, _ := p.expect(token.Ident, token.Colon, token.End)
		p.expect(token.Colon, token.End)
		ftype := p.parseType()
		s.Fields = append(s.Fields, ast.StructField{Name: fname.Literal, Type: ftype, Public: fieldPub})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.End, token.End)
	s.At(p.spanFrom(start))
	return s
}

func (p *Parser) parseEnum(public bool) *ast.EnumDef {
	start := p.pos
	p.advance() // `enum`
	name, _ := p.expect(token.Ident, token.End)
	e := &ast.EnumDef{Name: name.Literal, Public: public}
	for !p.at(token.End) && !p.at(token.EOF) {
		ename, _ := p.expect(token.Ident, token.Comma, token.End)
		var val *int64
		if p.at(token.Assign) {
			p.advance()
			tok, _ := p.expect(token.Int, token.Comma, token.End)
			n, _ := strconv.ParseInt(tok.Literal, 0, 64)
			val = &n
		}
		e.Entries = append(e.Entries, ast.EnumEntry{Name: ename.Literal, Value: val})
		if p.at(token.Comma) {
			p.advance()
		}
	}
	p.expect(token.End, token.End)
	e.At(p.spanFrom(start))
	return e
}

// parseModule parses «module Name { body }» (spec.md §4.2, §4.4) —
// module bodies use brace delimiters, unlike every other block form.
func (p *Parser) parseModule() *ast.ModuleDef {
	start := p.pos
	p.advance() // `module`
	name, _ := p.expect(token.Ident, token.LBrace)
	m := &ast.ModuleDef{Name: name.Literal}
	m.Body = p.parseBraceBlockStmts()
	m.At(p.spanFrom(start))
	return m
}

// parseImpl parses «impl [Trait for] Struct methods... end», returning
// its methods as free Functions tagged with ImplFor so code generation
// can mangle them to Struct_method (spec.md §4.4).
func (p *Parser) parseImpl() []*ast.Function {
	p.advance() // `impl`
	first, _ := p.expect(token.Ident, token.End)
	target := first.Literal
	if p.at(token.For) {
		p.advance()
		structName, _ := p.expect(token.Ident, token.End)
		target = structName.Literal
	}
	var methods []*ast.Function
	for !p.at(token.End) && !p.at(token.EOF) {
		attrs := p.parseAttributes()
		public := p.consumePub()
		if !p.at(token.Func) {
			p.errorf("expected a method inside impl block, found %s", p.cur().Kind)
			p.advance()
			continue
		}
		fnStart := p.pos
		p.advance() // `func`
		name, _ := p.expect(token.Ident, token.LParen)
		fn := &ast.Function{Name: name.Literal, Public: public, ImplFor: target, Attributes: attrs}
		fn.Receiver, fn.Parameters = p.parseParamList()
		fn.ReturnType = p.parseOptionalReturnType(name.Literal)
		fn.Body = p.parseBlockUntilEnd()
		fn.At(p.spanFrom(fnStart))
		methods = append(methods, fn)
	}
	p.expect(token.End, token.End)
	return methods
}

// parseFFIBlock parses «@ffi extern "abi" from "lib" : funcs... end»
// (spec.md §4.2).
func (p *Parser) parseFFIBlock() *ast.FFIBlock {
	start := p.pos
	p.advance() // `@`
	p.expect(token.Ident, token.Extern) // the literal word "ffi"
	p.expect(token.Extern, token.String)
	abiTok, _ := p.expect(token.String, token.From, token.Colon)
	fb := &ast.FFIBlock{ABI: abiTok.Literal}
	if p.at(token.From) {
		p.advance()
		libTok, _ := p.expect(token.String, token.Colon)
		fb.FromLib = libTok.Literal
	}
	if p.at(token.Colon) {
		p.advance()
	}
	for !p.at(token.End) && !p.at(token.EOF) {
		fb.Functions = append(fb.Functions, p.parseFFIFunction())
	}
	p.expect(token.End, token.End)
	fb.At(p.spanFrom(start))
	return fb
}

func (p *Parser) parseFFIFunction() *ast.FFIFunction {
	start := p.pos
	p.expect(token.Func, token.Ident)
	name, _ := p.expect(token.Ident, token.LParen)
	f := &ast.FFIFunction{Name: name.Literal}
	p.expect(token.LParen, token.RParen)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			p.advance()
			f.Variadic = true
			break
		}
		pname, _ := p.expect(token.Ident, token.Colon, token.Comma, token.RParen)
		p.expect(token.Colon, token.Comma, token.RParen)
		ptype := p.parseType()
		f.Parameters = append(f.Parameters, ast.Parameter{Name: pname.Literal, Type: ptype})
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, token.Colon, token.Semicolon, token.End)
	f.ReturnType = types.VoidT
	if p.at(token.Colon) {
		p.advance()
		f.ReturnType = p.parseType()
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	f.At(p.spanFrom(start))
	return f
}
