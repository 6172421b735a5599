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

// Package ast holds the set of types used in the typed abstract syntax
// tree representation of Vix, spec.md §3.3.
package ast

import "github.com/VixLanguage/Vix-programing-language/internal/source"

// Node is implemented by every AST node: statements, expressions and
// top-level forms alike.
type Node interface {
	isNode()
	Span() source.Span
}

// Stmt is implemented by every statement-position node.
type Stmt interface {
	Node
	isStmt()
}

// Expr is implemented by every expression-position node.
type Expr interface {
	Node
	isExpr()
}

// base embeds into every concrete node to supply Span() without each
// node repeating the field and accessor; mirrors the teacher's use of a
// shared embedded struct (Named/owned in gapil/semantic) for the
// boilerplate every variant needs.
type base struct {
	span source.Span
}

func (b base) Span() source.Span { return b.span }

// At sets b's span — used by the parser right after constructing a node.
func (b *base) At(s source.Span) { b.span = s }

// Identifier is a parsed name, carrying whether its spelling is
// "type-like" (capitalized), which the parser uses to disambiguate type
// expressions from value expressions per spec.md §4.1.
type Identifier struct {
	base
	Name string
}

func (*Identifier) isNode() {}

// TypeLike reports whether the identifier's spelling begins with an
// uppercase letter.
func (i *Identifier) TypeLike() bool {
	return len(i.Name) > 0 && i.Name[0] >= 'A' && i.Name[0] <= 'Z'
}
