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
	"strings"

	"github.com/VixLanguage/Vix-programing-language/internal/token"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// parseType parses a full type expression: union (`|`) and intersection
// (`&`) combinators over postfix-suffixed atoms, per spec.md §4.2.
// Union binds loosest, intersection next, postfix array/const suffixes
// tightest.
func (p *Parser) parseType() types.Type {
	t := p.parseIntersectionType()
	if !p.at(token.Pipe) {
		return t
	}
	variants := []types.Type{t}
	for p.at(token.Pipe) {
		p.advance()
		variants = append(variants, p.parseIntersectionType())
	}
	return types.Union{Variants: variants}
}

func (p *Parser) parseIntersectionType() types.Type {
	t := p.parsePostfixType()
	if !p.at(token.Amp) {
		return t
	}
	members := []types.Type{t}
	for p.at(token.Amp) {
		p.advance()
		members = append(members, p.parsePostfixType())
	}
	return types.Intersection{Types: members}
}

// parsePostfixType parses a base type atom followed by any number of
// `[]`/`[N]` array suffixes.
func (p *Parser) parsePostfixType() types.Type {
	t := p.parseBaseType()
	for p.at(token.LBracket) {
		p.advance()
		if p.at(token.RBracket) {
			p.advance()
			t = types.Array{Element: t}
			continue
		}
		sizeTok, _ := p.expect(token.Int, token.RBracket)
		p.expect(token.RBracket, token.Comma, token.RBracket)
		n, _ := strconv.ParseInt(sizeTok.Literal, 0, 64)
		t = types.Array{Element: t, Size: &n}
	}
	return t
}

// builtinIntTypes maps the lexer's identifier spelling for fixed-width
// integers to their Type, per spec.md §3.2.
var builtinIntTypes = map[string]types.Type{
	"i8": types.Int8, "i16": types.Int16, "i32": types.Int32, "i64": types.Int64,
	"u8": types.UInt8, "u16": types.UInt16, "u32": types.UInt32, "u64": types.UInt64,
	"f32": types.Float32, "f64": types.Float64,
	"bool": types.Bool8, "char": types.Char8, "void": types.VoidT,
	"usize": types.UsizeT, "any": types.AnyT, "str": types.Str{LenType: types.UsizeT},
	"string": types.StdStr{},
}

func (p *Parser) parseBaseType() types.Type {
	switch {
	case p.at(token.Const):
		p.advance()
		inner := p.parsePostfixType()
		if _, isStr := inner.(types.Str); isStr {
			return types.ConstStr{}
		}
		return types.Const{Elem: inner}
	case p.at(token.Option):
		p.advance()
		return types.Option{Inner: p.parseTypeArgList(1)[0]}
	case p.at(token.Result):
		p.advance()
		args := p.parseTypeArgList(2)
		return types.Result{Ok: args[0], Err: args[1]}
	case p.at(token.Amp):
		p.advance()
		if p.at(token.Mut) {
			p.advance()
			return types.MutRef{Elem: p.parsePostfixType()}
		}
		return types.Ref{Elem: p.parsePostfixType()}
	case p.at(token.Star):
		p.advance()
		return types.RawPtr{Elem: p.parsePostfixType()}
	case p.at(token.Self):
		p.advance()
		return types.SelfType{}
	case p.at(token.DotDotDot):
		p.advance()
		return types.TripleDot{}
	case p.at(token.LParen):
		p.advance()
		var fields []types.Type
		for !p.at(token.RParen) && !p.at(token.EOF) {
			fields = append(fields, p.parseType())
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RParen, token.RParen)
		return types.Tuple{Fields: fields}
	case p.at(token.Ident):
		name := p.advance().Literal
		if t, ok := builtinIntTypes[strings.ToLower(name)]; ok && !token.IsTypeLike(name) {
			return t
		}
		if t, ok := p.aliases[name]; ok {
			return t
		}
		if name == "HashMap" && p.at(token.LParen) {
			args := p.parseTypeArgList(2)
			return types.HashMap{Key: args[0], Value: args[1]}
		}
		if name == "Owned" && p.at(token.LParen) {
			return types.Owned{Elem: p.parseTypeArgList(1)[0]}
		}
		if name == "Ptr" && p.at(token.LParen) {
			return types.Ptr{Elem: p.parseTypeArgList(1)[0]}
		}
		return types.Struct{Name: name}
	default:
		p.errorf("expected a type, found %s", p.cur().Kind)
		p.advance()
		return types.VoidT
	}
}

// parseTypeArgList parses «(T0, T1, ...)» or «[T0, T1, ...]» — spec.md
// §4.2 allows either bracket form for Option/Result/HashMap arguments —
// padding the result with Void if fewer than want arguments were given,
// so callers can always index the exact arity they expect.
func (p *Parser) parseTypeArgList(want int) []types.Type {
	open, close := token.LParen, token.RParen
	if p.at(token.LBracket) {
		open, close = token.LBracket, token.RBracket
	}
	p.expect(open, close)
	var args []types.Type
	for !p.at(close) && !p.at(token.EOF) {
		args = append(args, p.parseType())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(close, close)
	for len(args) < want {
		args = append(args, types.VoidT)
	}
	return args
}
