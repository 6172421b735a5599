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
)

// Expression parsing is precedence climbing over a fixed table; spec.md
// is design-level and does not pin an exact precedence order, so this
// follows the standard C-family ladder the generated output itself must
// respect (the emitted C expression has to parenthesize the same way).
var binaryPrecedence = map[token.Kind]int{
	token.PipePipe: 1,
	token.AmpAmp:   2,
	token.Pipe:     3,
	token.Caret:    4,
	token.Amp:      5,
	token.Eq:       6, token.NotEq: 6,
	token.Lt: 7, token.Gt: 7, token.LtEq: 7, token.GtEq: 7,
	token.Shl: 8, token.Shr: 8,
	token.Plus: 9, token.Minus: 9,
	token.Star: 10, token.Slash: 10, token.Percent: 10,
}

var binaryOpText = map[token.Kind]string{
	token.PipePipe: "||", token.AmpAmp: "&&", token.Pipe: "|", token.Caret: "^",
	token.Amp: "&", token.Eq: "==", token.NotEq: "!=", token.Lt: "<", token.Gt: ">",
	token.LtEq: "<=", token.GtEq: ">=", token.Shl: "<<", token.Shr: ">>",
	token.Plus: "+", token.Minus: "-", token.Star: "*", token.Slash: "/", token.Percent: "%",
}

func (p *Parser) parseExpr() ast.Expr {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) ast.Expr {
	start := p.pos
	lhs := p.parseUnary()
	for {
		prec, ok := binaryPrecedence[p.cur().Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		opKind := p.advance().Kind
		rhs := p.parseBinary(prec + 1)
		n := &ast.BinaryOp{Op: binaryOpText[opKind], LHS: lhs, RHS: rhs}
		n.At(p.spanFrom(start))
		lhs = n
	}
}

func (p *Parser) parseUnary() ast.Expr {
	start := p.pos
	switch p.cur().Kind {
	case token.Minus, token.Bang, token.Star:
		op := p.advance()
		operand := p.parseUnary()
		opText := map[token.Kind]string{token.Minus: "-", token.Bang: "!", token.Star: "*"}[op.Kind]
		n := &ast.UnaryOp{Op: opText, Operand: operand}
		n.At(p.spanFrom(start))
		return n
	case token.Amp:
		p.advance()
		if p.at(token.Ident) && !p.atCallAfterIdent() {
			name := p.advance().Literal
			n := &ast.FuncAddr{Name: name}
			n.At(p.spanFrom(start))
			return n
		}
		operand := p.parseUnary()
		n := &ast.UnaryOp{Op: "&", Operand: operand}
		n.At(p.spanFrom(start))
		return n
	default:
		return p.parseCastOrPostfix()
	}
}

// atCallAfterIdent reports whether the identifier at the cursor is
// immediately followed by "(", meaning &name is address-of-function
// only when it is NOT being called.
func (p *Parser) atCallAfterIdent() bool {
	return p.peekAt(1).Kind == token.LParen
}

func (p *Parser) parseCastOrPostfix() ast.Expr {
	start := p.pos
	e := p.parsePostfix(p.parsePrimary())
	for p.at(token.As) {
		p.advance()
		t := p.parseType()
		n := &ast.Cast{Operand: e, Type: t}
		n.At(p.spanFrom(start))
		e = n
	}
	return e
}

// parsePostfix parses the chain of «.field», «.method(args)», «[index]»,
// «[low:high]», «::method(args)» suffixes following a primary
// expression. A string-literal receiver for «.method(...)» is rewritten
// to Call(method, [literal, ...args]) — UFCS on string literals
// (spec.md §4.2).
func (p *Parser) parsePostfix(e ast.Expr) ast.Expr {
	start := p.pos
	for {
		switch {
		case p.at(token.Dot):
			p.advance()
			name, _ := p.expect(token.Ident, token.LParen)
			if p.at(token.LParen) {
				args := p.parseArgList()
				if lit, ok := e.(*ast.StringLit); ok {
					allArgs := append([]ast.Expr{lit}, args...)
					n := &ast.Call{Callee: name.Literal, Arguments: allArgs}
					n.At(p.spanFrom(start))
					e = n
					continue
				}
				if modVar, ok := e.(*ast.Var); ok && token.IsTypeLike(modVar.Name) {
					n := &ast.ModuleCall{Module: modVar.Name, Func: name.Literal, Arguments: args}
					n.At(p.spanFrom(start))
					e = n
					continue
				}
				n := &ast.MethodCall{Object: e, Method: name.Literal, Arguments: args}
				n.At(p.spanFrom(start))
				e = n
				continue
			}
			n := &ast.Member{Object: e, Name: name.Literal}
			n.At(p.spanFrom(start))
			e = n
		case p.at(token.ColonColon):
			p.advance()
			name, _ := p.expect(token.Ident, token.LParen)
			typeName := ""
			if v, ok := e.(*ast.Var); ok {
				typeName = v.Name
			}
			args := p.parseArgList()
			n := &ast.StaticMethodCall{TypeName: typeName, Method: name.Literal, Arguments: args}
			n.At(p.spanFrom(start))
			e = n
		case p.at(token.LBracket):
			p.advance()
			if p.at(token.Colon) {
				p.advance()
				high := p.parseExpr()
				p.expect(token.RBracket, token.RBracket)
				n := &ast.Slice{Object: e, High: high}
				n.At(p.spanFrom(start))
				e = n
				continue
			}
			idx := p.parseExpr()
			if p.at(token.Colon) {
				p.advance()
				var high ast.Expr
				if !p.at(token.RBracket) {
					high = p.parseExpr()
				}
				p.expect(token.RBracket, token.RBracket)
				n := &ast.Slice{Object: e, Low: idx, High: high}
				n.At(p.spanFrom(start))
				e = n
				continue
			}
			p.expect(token.RBracket, token.RBracket)
			n := &ast.Index{Object: e, Index: idx}
			n.At(p.spanFrom(start))
			e = n
		default:
			return e
		}
	}
}

func (p *Parser) parseArgList() []ast.Expr {
	p.expect(token.LParen, token.RParen)
	var args []ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		args = append(args, p.parseExpr())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, token.RParen)
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	start := p.pos
	switch p.cur().Kind {
	case token.Int:
		tok := p.advance()
		n := &ast.Number{Value: tok.Literal}
		n.At(p.spanFrom(start))
		return n
	case token.Float:
		tok := p.advance()
		n := &ast.Number{Value: tok.Literal, IsFloat: true}
		n.At(p.spanFrom(start))
		return n
	case token.True, token.False:
		tok := p.advance()
		n := &ast.Bool{Value: tok.Kind == token.True}
		n.At(p.spanFrom(start))
		return n
	case token.String:
		tok := p.advance()
		n := &ast.StringLit{Value: tok.Literal}
		n.At(p.spanFrom(start))
		return n
	case token.Char:
		tok := p.advance()
		n := &ast.CharLit{Value: tok.Literal}
		n.At(p.spanFrom(start))
		return n
	case token.Some:
		p.advance()
		p.expect(token.LParen, token.RParen)
		v := p.parseExpr()
		p.expect(token.RParen, token.RParen)
		n := &ast.SomeExpr{Value: v}
		n.At(p.spanFrom(start))
		return n
	case token.None:
		p.advance()
		n := &ast.NoneExpr{}
		n.At(p.spanFrom(start))
		return n
	case token.Ok:
		p.advance()
		p.expect(token.LParen, token.RParen)
		v := p.parseExpr()
		p.expect(token.RParen, token.RParen)
		n := &ast.OkExpr{Value: v}
		n.At(p.spanFrom(start))
		return n
	case token.Err:
		p.advance()
		p.expect(token.LParen, token.RParen)
		v := p.parseExpr()
		p.expect(token.RParen, token.RParen)
		n := &ast.ErrExpr{Value: v}
		n.At(p.spanFrom(start))
		return n
	case token.Self:
		p.advance()
		n := &ast.Var{Name: "self"}
		n.At(p.spanFrom(start))
		return n
	case token.OneOf:
		p.advance()
		elems := p.parseArgList()
		n := &ast.OneOf{Elements: elems}
		n.At(p.spanFrom(start))
		return n
	case token.OffsetOf:
		p.advance()
		p.expect(token.LParen, token.RParen)
		structName, _ := p.expect(token.Ident, token.Comma)
		p.expect(token.Comma, token.RParen)
		fieldName, _ := p.expect(token.Ident, token.RParen)
		p.expect(token.RParen, token.RParen)
		n := &ast.OffsetOf{StructName: structName.Literal, FieldName: fieldName.Literal}
		n.At(p.spanFrom(start))
		return n
	case token.AlignOf:
		p.advance()
		p.expect(token.LParen, token.RParen)
		t := p.parseType()
		p.expect(token.RParen, token.RParen)
		n := &ast.AlignOf{Type: t}
		n.At(p.spanFrom(start))
		return n
	case token.TypeOf:
		p.advance()
		p.expect(token.LParen, token.RParen)
		v := p.parseExpr()
		p.expect(token.RParen, token.RParen)
		n := &ast.TypeOf{Operand: v}
		n.At(p.spanFrom(start))
		return n
	case token.Match:
		return p.parseMatchExpr()
	case token.LParen:
		p.advance()
		first := p.parseExpr()
		if p.at(token.Comma) {
			elems := []ast.Expr{first}
			for p.at(token.Comma) {
				p.advance()
				if p.at(token.RParen) {
					break
				}
				elems = append(elems, p.parseExpr())
			}
			p.expect(token.RParen, token.RParen)
			n := &ast.TupleExpr{Elements: elems}
			n.At(p.spanFrom(start))
			return n
		}
		p.expect(token.RParen, token.RParen)
		return first
	case token.LBracket:
		p.advance()
		var elems []ast.Expr
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			elems = append(elems, p.parseExpr())
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBracket, token.RBracket)
		n := &ast.ArrayExpr{Elements: elems}
		n.At(p.spanFrom(start))
		return n
	case token.LBrace:
		p.advance()
		var entries []ast.HashMapEntry
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			key := p.parseExpr()
			p.expect(token.Colon, token.Colon)
			val := p.parseExpr()
			entries = append(entries, ast.HashMapEntry{Key: key, Value: val})
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RBrace, token.RBrace)
		n := &ast.HashMapExpr{Entries: entries}
		n.At(p.spanFrom(start))
		return n
	case token.Ident:
		name := p.advance().Literal
		if p.at(token.LParen) {
			return p.finishCall(start, name)
		}
		n := &ast.Var{Name: name}
		n.At(p.spanFrom(start))
		return n
	default:
		p.errorf("expected an expression, found %s", p.cur().Kind)
		p.advance()
		n := &ast.Number{Value: "0"}
		n.At(p.spanFrom(start))
		return n
	}
}

// finishCall parses the argument list of a call, recognizing the
// «name(field: value, ...)» named-argument form as CallNamed.
func (p *Parser) finishCall(start int, callee string) ast.Expr {
	p.expect(token.LParen, token.RParen)
	var args []ast.Expr
	var names []string
	named := false
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ident) && p.peekAt(1).Kind == token.Colon {
			named = true
			n := p.advance().Literal
			p.advance() // `:`
			names = append(names, n)
			args = append(args, p.parseExpr())
		} else {
			names = append(names, "")
			args = append(args, p.parseExpr())
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RParen, token.RParen)
	if named {
		n := &ast.CallNamed{Callee: callee, Names: names, Arguments: args}
		n.At(p.spanFrom(start))
		return n
	}
	n := &ast.Call{Callee: callee, Arguments: args}
	n.At(p.spanFrom(start))
	return n
}

// parseMatchExpr parses «match value case p0: e0 case p1: e1 default: e2
// end» used in expression position — every arm is a single expression
// (spec.md §4.2).
func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.pos
	p.advance() // `match`
	subject := p.parseExpr()
	var arms []ast.MatchArm
	for p.atAny(token.Case, token.Default) {
		isDefault := p.at(token.Default)
		p.advance()
		var patterns []ast.Expr
		if !isDefault {
			patterns = append(patterns, p.parseExpr())
			for p.at(token.Comma) {
				p.advance()
				patterns = append(patterns, p.parseExpr())
			}
		}
		p.expect(token.Colon, token.Case, token.Default, token.End)
		value := p.parseExpr()
		arms = append(arms, ast.MatchArm{Patterns: patterns, Value: value})
	}
	p.expect(token.End, token.End)
	n := &ast.MatchExpr{Subject: subject, Arms: arms}
	n.At(p.spanFrom(start))
	return n
}
