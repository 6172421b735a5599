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

package ast

import "github.com/VixLanguage/Vix-programing-language/internal/types"

// Literal expressions.

// Number represents an untyped numeric constant, either integer or
// floating point; its final Type is decided at lowering time by context.
type Number struct {
	base
	Value   string
	IsFloat bool
}

func (*Number) isNode() {}
func (*Number) isExpr() {}

// Bool represents the "true"/"false" literals.
type Bool struct {
	base
	Value bool
}

func (*Bool) isNode() {}
func (*Bool) isExpr() {}

// StringLit represents a quoted string constant.
type StringLit struct {
	base
	Value string
}

func (*StringLit) isNode() {}
func (*StringLit) isExpr() {}

// CharLit represents a quoted char constant.
type CharLit struct {
	base
	Value string
}

func (*CharLit) isNode() {}
func (*CharLit) isExpr() {}

// Var is a reference to a named value: a local, a constant or a free
// function used as a value.
type Var struct {
	base
	Name string
}

func (*Var) isNode() {}
func (*Var) isExpr() {}

// Call is a direct function call «target(args)».
type Call struct {
	base
	Callee    string
	Arguments []Expr
}

func (*Call) isNode() {}
func (*Call) isExpr() {}

// CallNamed is a call whose arguments are given as "name = value" pairs.
type CallNamed struct {
	base
	Callee    string
	Names     []string
	Arguments []Expr
}

func (*CallNamed) isNode() {}
func (*CallNamed) isExpr() {}

// MethodCall is «object.method(args)».
type MethodCall struct {
	base
	Object    Expr
	Method    string
	Arguments []Expr
}

func (*MethodCall) isNode() {}
func (*MethodCall) isExpr() {}

// StaticMethodCall is «Type::method(args)».
type StaticMethodCall struct {
	base
	TypeName  string
	Method    string
	Arguments []Expr
}

func (*StaticMethodCall) isNode() {}
func (*StaticMethodCall) isExpr() {}

// ModuleCall is «Mod.func(args)».
type ModuleCall struct {
	base
	Module    string
	Func      string
	Arguments []Expr
}

func (*ModuleCall) isNode() {}
func (*ModuleCall) isExpr() {}

// Member is «object.name».
type Member struct {
	base
	Object Expr
	Name   string
}

func (*Member) isNode() {}
func (*Member) isExpr() {}

// Index is «object[index]».
type Index struct {
	base
	Object Expr
	Index  Expr
}

func (*Index) isNode() {}
func (*Index) isExpr() {}

// Slice is «object[low:high]», either bound optional.
type Slice struct {
	base
	Object Expr
	Low    Expr
	High   Expr
}

func (*Slice) isNode() {}
func (*Slice) isExpr() {}

// TupleExpr constructs a tuple value, «(e0, e1, ...)».
type TupleExpr struct {
	base
	Elements []Expr
}

func (*TupleExpr) isNode() {}
func (*TupleExpr) isExpr() {}

// ArrayExpr constructs an array/slice value, «[e0, e1, ...]».
type ArrayExpr struct {
	base
	Elements []Expr
}

func (*ArrayExpr) isNode() {}
func (*ArrayExpr) isExpr() {}

// HashMapEntry is a single "key: value" pair in a HashMapExpr.
type HashMapEntry struct {
	Key   Expr
	Value Expr
}

// HashMapExpr constructs a map value, «{k0: v0, k1: v1, ...}».
type HashMapExpr struct {
	base
	Entries []HashMapEntry
}

func (*HashMapExpr) isNode() {}
func (*HashMapExpr) isExpr() {}

// SomeExpr wraps a value in an Option, «some(e)».
type SomeExpr struct {
	base
	Value Expr
}

func (*SomeExpr) isNode() {}
func (*SomeExpr) isExpr() {}

// NoneExpr is the empty Option literal, «none».
type NoneExpr struct{ base }

func (*NoneExpr) isNode() {}
func (*NoneExpr) isExpr() {}

// OkExpr wraps a value in a Result, «ok(e)».
type OkExpr struct {
	base
	Value Expr
}

func (*OkExpr) isNode() {}
func (*OkExpr) isExpr() {}

// ErrExpr wraps a value in a Result's error slot, «err(e)».
type ErrExpr struct {
	base
	Value Expr
}

func (*ErrExpr) isNode() {}
func (*ErrExpr) isExpr() {}

// BinaryOp applies a binary operator to two expressions.
type BinaryOp struct {
	base
	Op  string
	LHS Expr
	RHS Expr
}

func (*BinaryOp) isNode() {}
func (*BinaryOp) isExpr() {}

// UnaryOp applies a unary operator to an expression.
type UnaryOp struct {
	base
	Op      string
	Operand Expr
}

func (*UnaryOp) isNode() {}
func (*UnaryOp) isExpr() {}

// OneOf evaluates to true if any of the listed expressions is truthy;
// «one_of(e0, e1, ...)», grounded on the original source's Token::OneOf.
type OneOf struct {
	base
	Elements []Expr
}

func (*OneOf) isNode() {}
func (*OneOf) isExpr() {}

// OffsetOf computes a struct field's byte offset; «offset_of(Struct, field)».
// Both operands are names, not expressions, matching the original
// source's dedicated grammar for this form.
type OffsetOf struct {
	base
	StructName string
	FieldName  string
}

func (*OffsetOf) isNode() {}
func (*OffsetOf) isExpr() {}

// AlignOf computes a type's required alignment; «align_of(Type)».
type AlignOf struct {
	base
	Type types.Type
}

func (*AlignOf) isNode() {}
func (*AlignOf) isExpr() {}

// TypeOf yields a descriptor for the runtime type of an expression's
// static type; «type_of(e)».
type TypeOf struct {
	base
	Operand Expr
}

func (*TypeOf) isNode() {}
func (*TypeOf) isExpr() {}

// FuncAddr takes the address of a named function as a value, «&name».
type FuncAddr struct {
	base
	Name string
}

func (*FuncAddr) isNode() {}
func (*FuncAddr) isExpr() {}

// PlanPart is one element of a Plan format string: a literal run of text
// or an interpolated expression.
type PlanPart struct {
	Literal string
	Expr    Expr // nil for a literal-text part
}

// Plan represents a format-string expression: literal text interleaved
// with interpolated sub-expressions.
type Plan struct {
	base
	Parts []PlanPart
}

func (*Plan) isNode() {}
func (*Plan) isExpr() {}

// Cast represents «(e as T)».
type Cast struct {
	base
	Operand Expr
	Type    types.Type
}

func (*Cast) isNode() {}
func (*Cast) isExpr() {}

// MatchArm is a single "case pattern: expr" (or statement block) entry
// in a Match used as an expression.
type MatchArm struct {
	Patterns []Expr // empty means this is the default arm
	Value    Expr
}

// MatchExpr is Match used in expression position (every arm a single
// expression).
type MatchExpr struct {
	base
	Subject Expr
	Arms    []MatchArm
}

func (*MatchExpr) isNode() {}
func (*MatchExpr) isExpr() {}
