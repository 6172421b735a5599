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
	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/token"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

var compoundAssignOps = map[token.Kind]string{
	token.PlusEq: "+", token.MinusEq: "-", token.StarEq: "*",
	token.SlashEq: "/", token.PercentEq: "%",
}

// parseStmt parses one statement. Per spec.md §4.2 statement
// disambiguation: an identifier followed by ":" begins a typed
// declaration, by "=" an assignment, by a compound-assign token a
// CompoundAssign, by "(" a call — everything else falls through to a
// general expression-or-assignment parse.
func (p *Parser) parseStmt() ast.Stmt {
	start := p.pos
	switch p.cur().Kind {
	case token.Let:
		return p.parseLet()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.For:
		return p.parseFor()
	case token.Match:
		return p.parseMatchStmt()
	case token.Return:
		p.advance()
		if p.atStmtEnd() {
			n := &ast.Return{}
			n.At(p.spanFrom(start))
			return n
		}
		v := p.parseExpr()
		n := &ast.Return{Value: v}
		n.At(p.spanFrom(start))
		return n
	case token.Break:
		p.advance()
		n := &ast.Break{}
		n.At(p.spanFrom(start))
		return n
	case token.Continue:
		p.advance()
		n := &ast.Continue{}
		n.At(p.spanFrom(start))
		return n
	case token.Scope:
		p.advance()
		body := p.parseBlockUntilEnd()
		n := &ast.Scope{Body: body}
		n.At(p.spanFrom(start))
		return n
	case token.Unsafe:
		p.advance()
		body := p.parseBlockUntilEnd()
		n := &ast.Unsafe{Body: body}
		n.At(p.spanFrom(start))
		return n
	case token.Func:
		return p.parseFunction(false, nil)
	case token.Struct:
		return p.parseStruct(false)
	case token.Enum:
		return p.parseEnum(false)
	case token.Pub, token.Hash:
		// A module body (spec.md §4.4) nests declarations — pub
		// functions/structs/enums and attributed functions — as
		// statements rather than only at the file's top level.
		return p.parseModuleMember()
	case token.Ident:
		if p.peekAt(1).Kind != token.Colon {
			return p.parseExprOrAssignStmt()
		}
		name := p.advance()
		p.advance() // `:`
		declType := p.parseType()
		p.expect(token.Assign, token.Ident)
		val := p.parseExpr()
		n := &ast.TypedDeclaration{Name: name.Literal, Type: declType, Value: val}
		n.At(p.spanFrom(start))
		return n
	default:
		return p.parseExprOrAssignStmt()
	}
}

// parseModuleMember parses one «[#[attr]] [pub] func|struct|enum ...»
// declaration appearing inside a module's brace-delimited body.
func (p *Parser) parseModuleMember() ast.Stmt {
	attrs := p.parseAttributes()
	public := p.consumePub()
	switch {
	case p.at(token.Func):
		return p.parseFunction(public, attrs)
	case p.at(token.Struct):
		return p.parseStruct(public)
	case p.at(token.Enum):
		return p.parseEnum(public)
	default:
		p.errorf("expected a declaration after 'pub', found %s", p.cur().Kind)
		p.advance()
		return nil
	}
}

func (p *Parser) atStmtEnd() bool {
	return p.atAny(token.End, token.Else, token.Case, token.Default, token.EOF)
}

// parseLet parses «let [mut] name[: Type] = expr» and the tuple-pattern
// form «let (a, b, c) = expr».
func (p *Parser) parseLet() ast.Stmt {
	start := p.pos
	p.advance() // `let`
	if p.at(token.LParen) {
		p.advance()
		var names []string
		for !p.at(token.RParen) && !p.at(token.EOF) {
			n, _ := p.expect(token.Ident, token.Comma, token.RParen)
			names = append(names, n.Literal)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RParen, token.Assign)
		p.expect(token.Assign, token.Ident)
		val := p.parseExpr()
		n := &ast.TupleUnpack{Names: names, Value: val}
		n.At(p.spanFrom(start))
		return n
	}

	mutable := false
	if p.at(token.Mut) {
		p.advance()
		mutable = true
	}
	name, _ := p.expect(token.Ident, token.Colon, token.Assign)
	declType := types.Type(types.AutoT)
	if p.at(token.Colon) {
		p.advance()
		declType = p.parseType()
	}
	p.expect(token.Assign, token.Ident)
	val := p.parseExpr()
	n := &ast.TypedDeclaration{Name: name.Literal, Mutable: mutable, Type: declType, Value: val}
	n.At(p.spanFrom(start))
	return n
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.pos
	p.advance() // `if`
	if p.at(token.Let) {
		return p.parseIfLet(start)
	}
	cond := p.parseExpr()
	p.expect(token.Then)
	then := p.parseBlockUntilElseOrEnd()
	var elseBlock *ast.Block
	if p.at(token.Else) {
		p.advance()
		elseBlock = p.parseBlockUntilEnd()
	} else {
		p.expect(token.End, token.End)
	}
	n := &ast.If{Condition: cond, Then: then, Else: elseBlock}
	n.At(p.spanFrom(start))
	return n
}

func (p *Parser) parseIfLet(start int) ast.Stmt {
	p.advance() // `let`
	isErr := false
	if p.at(token.Err) {
		p.advance()
		isErr = true
	}
	name, _ := p.expect(token.Ident, token.Assign)
	p.expect(token.Assign, token.Ident)
	val := p.parseExpr()
	p.expect(token.Then)
	then := p.parseBlockUntilElseOrEnd()
	var elseBlock *ast.Block
	if p.at(token.Else) {
		p.advance()
		elseBlock = p.parseBlockUntilEnd()
	} else {
		p.expect(token.End, token.End)
	}
	n := &ast.IfLet{Name: name.Literal, IsErr: isErr, Value: val, Then: then, Else: elseBlock}
	n.At(p.spanFrom(start))
	return n
}

// parseBlockUntilElseOrEnd parses statements until "else" or "end",
// without consuming either — the caller decides which follows.
func (p *Parser) parseBlockUntilElseOrEnd() *ast.Block {
	start := p.pos
	b := &ast.Block{}
	for !p.atAny(token.Else, token.End) && !p.at(token.EOF) {
		before := p.pos
		if s := p.parseStmt(); s != nil {
			b.Statements = append(b.Statements, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	b.At(p.spanFrom(start))
	return b
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.pos
	p.advance() // `while`
	cond := p.parseExpr()
	p.expect(token.Do)
	body := p.parseBlockUntilEnd()
	n := &ast.While{Condition: cond, Body: body}
	n.At(p.spanFrom(start))
	return n
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.pos
	p.advance() // `for`
	name, _ := p.expect(token.Ident, token.In)
	p.expect(token.In, token.Ident)
	iter := p.parseExpr()
	p.expect(token.Do)
	body := p.parseBlockUntilEnd()
	n := &ast.For{Variable: name.Literal, Iterable: iter, Body: body}
	n.At(p.spanFrom(start))
	return n
}

// parseMatchStmt parses «match value case c0: block case c1: block
// default: block end» used in statement position — every arm is a full
// block (spec.md §4.2).
func (p *Parser) parseMatchStmt() ast.Stmt {
	start := p.pos
	p.advance() // `match`
	subject := p.parseExpr()
	var cases []ast.MatchCase
	for p.atAny(token.Case, token.Default) {
		isDefault := p.at(token.Default)
		p.advance()
		var conds []ast.Expr
		if !isDefault {
			conds = append(conds, p.parseExpr())
			for p.at(token.Comma) {
				p.advance()
				conds = append(conds, p.parseExpr())
			}
		}
		p.expect(token.Colon, token.Case, token.Default, token.End)
		body := p.parseCaseBody()
		cases = append(cases, ast.MatchCase{Conditions: conds, Body: body})
	}
	p.expect(token.End, token.End)
	n := &ast.Match{Subject: subject, Cases: cases}
	n.At(p.spanFrom(start))
	return n
}

func (p *Parser) parseCaseBody() *ast.Block {
	start := p.pos
	b := &ast.Block{}
	for !p.atAny(token.Case, token.Default, token.End) && !p.at(token.EOF) {
		before := p.pos
		if s := p.parseStmt(); s != nil {
			b.Statements = append(b.Statements, s)
		}
		if p.pos == before {
			p.advance()
		}
	}
	b.At(p.spanFrom(start))
	return b
}

// parseExprOrAssignStmt handles every statement form spec.md §4.2's
// disambiguation rule doesn't dispatch by keyword: assignment, compound
// assignment, index/member assignment, module-qualified assignment, or a
// bare expression statement (typically a call).
func (p *Parser) parseExprOrAssignStmt() ast.Stmt {
	start := p.pos
	target := p.parseExpr()

	if opText, ok := compoundAssignOps[p.cur().Kind]; ok {
		p.advance()
		val := p.parseExpr()
		return p.buildCompoundAssign(start, target, opText, val)
	}
	if p.at(token.Assign) {
		p.advance()
		val := p.parseExpr()
		return p.buildAssign(start, target, val)
	}

	n := &ast.ExprStmt{Value: target}
	n.At(p.spanFrom(start))
	return n
}

func (p *Parser) buildAssign(start int, target ast.Expr, val ast.Expr) ast.Stmt {
	switch t := target.(type) {
	case *ast.Index:
		n := &ast.IndexAssign{Object: t.Object, Index: t.Index, Value: val}
		n.At(p.spanFrom(start))
		return n
	case *ast.Member:
		if modVar, ok := t.Object.(*ast.Var); ok && token.IsTypeLike(modVar.Name) {
			n := &ast.ModuleAssign{Module: modVar.Name, Name: t.Name, Value: val}
			n.At(p.spanFrom(start))
			return n
		}
		n := &ast.MemberAssign{Object: t.Object, Field: t.Name, Value: val}
		n.At(p.spanFrom(start))
		return n
	default:
		n := &ast.Assign{Target: target, Value: val}
		n.At(p.spanFrom(start))
		return n
	}
}

func (p *Parser) buildCompoundAssign(start int, target ast.Expr, op string, val ast.Expr) ast.Stmt {
	if m, ok := target.(*ast.Member); ok {
		if modVar, ok := m.Object.(*ast.Var); ok && token.IsTypeLike(modVar.Name) {
			n := &ast.ModuleCompoundAssign{Module: modVar.Name, Name: m.Name, Operator: op, Value: val}
			n.At(p.spanFrom(start))
			return n
		}
	}
	n := &ast.CompoundAssign{Target: target, Operator: op, Value: val}
	n.At(p.spanFrom(start))
	return n
}
