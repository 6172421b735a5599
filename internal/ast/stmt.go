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

// Block is a linear sequence of statements, the body of a function, loop
// or branch, terminated by the "end" keyword (spec.md §4.2) except for
// module bodies which use "{ }".
type Block struct {
	base
	Statements []Stmt
}

func (*Block) isNode() {}

// TypedDeclaration is «let [mut] name: Type = expr».
type TypedDeclaration struct {
	base
	Name    string
	Mutable bool
	Type    types.Type // types.Auto if omitted and inferred from Value
	Value   Expr
}

func (*TypedDeclaration) isNode() {}
func (*TypedDeclaration) isStmt() {}

// TupleUnpack is «let (a, b, c) = expr».
type TupleUnpack struct {
	base
	Names []string
	Value Expr
}

func (*TupleUnpack) isNode() {}
func (*TupleUnpack) isStmt() {}

// Assign is «location = value».
type Assign struct {
	base
	Target Expr
	Value  Expr
}

func (*Assign) isNode() {}
func (*Assign) isStmt() {}

// CompoundAssign is «location op= value» for a local variable target.
type CompoundAssign struct {
	base
	Target   Expr
	Operator string // "+", "-", "*", "/", "%"
	Value    Expr
}

func (*CompoundAssign) isNode() {}
func (*CompoundAssign) isStmt() {}

// IndexAssign is «object[index] = value».
type IndexAssign struct {
	base
	Object Expr
	Index  Expr
	Value  Expr
}

func (*IndexAssign) isNode() {}
func (*IndexAssign) isStmt() {}

// MemberAssign is «object.field = value».
type MemberAssign struct {
	base
	Object Expr
	Field  string
	Value  Expr
}

func (*MemberAssign) isNode() {}
func (*MemberAssign) isStmt() {}

// ModuleAssign is «Mod.name = value» assigning to a module-scope global.
type ModuleAssign struct {
	base
	Module string
	Name   string
	Value  Expr
}

func (*ModuleAssign) isNode() {}
func (*ModuleAssign) isStmt() {}

// ModuleCompoundAssign is «Mod.name op= value».
type ModuleCompoundAssign struct {
	base
	Module   string
	Name     string
	Operator string
	Value    Expr
}

func (*ModuleCompoundAssign) isNode() {}
func (*ModuleCompoundAssign) isStmt() {}

// ExprStmt wraps an expression evaluated for side effects.
type ExprStmt struct {
	base
	Value Expr
}

func (*ExprStmt) isNode() {}
func (*ExprStmt) isStmt() {}

// If is «if cond then trueBlock [else falseBlock] end».
type If struct {
	base
	Condition Expr
	Then      *Block
	Else      *Block // nil if there is no else clause
}

func (*If) isNode() {}
func (*If) isStmt() {}

// IfLet is «if let pattern = expr then block [else block] end», binding
// a name to the unwrapped value of an Option/Result only when present.
type IfLet struct {
	base
	Name      string
	IsErr     bool // true binds the Err arm of a Result instead of the Ok arm
	Value     Expr
	Then      *Block
	Else      *Block
}

func (*IfLet) isNode() {}
func (*IfLet) isStmt() {}

// While is «while cond do block end».
type While struct {
	base
	Condition Expr
	Body      *Block
}

func (*While) isNode() {}
func (*While) isStmt() {}

// For is «for name in iterable do block end».
type For struct {
	base
	Variable string
	Iterable Expr
	Body     *Block
}

func (*For) isNode() {}
func (*For) isStmt() {}

// MatchCase is one "case conditions: block" arm of a Match statement.
type MatchCase struct {
	Conditions []Expr // empty means the default arm
	Body       *Block
}

// Match is «match value case c0: block case c1: block default: block end»
// used in statement position — any arm may itself be a full block.
type Match struct {
	base
	Subject Expr
	Cases   []MatchCase
}

func (*Match) isNode() {}
func (*Match) isStmt() {}

// Return is «return [value]».
type Return struct {
	base
	Value Expr // nil for a bare return from a Void function
}

func (*Return) isNode() {}
func (*Return) isStmt() {}

// Break is «break».
type Break struct{ base }

func (*Break) isNode() {}
func (*Break) isStmt() {}

// Continue is «continue».
type Continue struct{ base }

func (*Continue) isNode() {}
func (*Continue) isStmt() {}

// Scope is «scope block end», an explicit nested lexical scope.
type Scope struct {
	base
	Body *Block
}

func (*Scope) isNode() {}
func (*Scope) isStmt() {}

// Unsafe is «unsafe block end», a nested scope whose body may perform
// operations the resolver would otherwise flag (raw pointer arithmetic,
// pointer-to-non-pointer casts).
type Unsafe struct {
	base
	Body *Block
}

func (*Unsafe) isNode() {}
func (*Unsafe) isStmt() {}

// SelfModifier describes how a method's "self" parameter was spelled.
type SelfModifier int

const (
	// SelfNone means this function has no self parameter — it is either
	// a free function or a static method.
	SelfNone SelfModifier = iota
	SelfValue
	SelfMut
	SelfRef
	SelfMutRef
	SelfBorrow
)

// Parameter is a single «name: Type» entry in a function's parameter
// list.
type Parameter struct {
	Name string
	Type types.Type
}

// Attribute is a parsed «#[name]» or «#[name(arg)]» annotation.
type Attribute struct {
	Name string
	Arg  string // empty if no argument was given
}

// Function is a top-level or impl-block function/method declaration.
type Function struct {
	base
	Name       string
	Public     bool
	Receiver   SelfModifier
	ImplFor    string // non-empty when this is an "impl Struct" method
	Parameters []Parameter
	ReturnType types.Type
	Attributes []Attribute
	Body       *Block // nil for an extern/FFI declaration
}

func (*Function) isNode() {}
func (*Function) isStmt() {}

// IsTest reports whether the function carries the #[Test] attribute.
func (f *Function) IsTest() bool {
	for _, a := range f.Attributes {
		if a.Name == "Test" {
			return true
		}
	}
	return false
}

// StructField is one «name: Type» (optionally "pub") member.
type StructField struct {
	Name   string
	Type   types.Type
	Public bool
}

// StructDef is «[pub] struct Name fields end».
type StructDef struct {
	base
	Name   string
	Public bool
	Fields []StructField
}

func (*StructDef) isNode() {}
func (*StructDef) isStmt() {}

// EnumEntry is one «Name [= value]» entry of an EnumDef.
type EnumEntry struct {
	Name  string
	Value *int64 // nil means auto-assigned (previous + 1, or 0)
}

// EnumDef is «[pub] enum Name entries end».
type EnumDef struct {
	base
	Name    string
	Public  bool
	Entries []EnumEntry
}

func (*EnumDef) isNode() {}
func (*EnumDef) isStmt() {}

// ModuleDef is «module Name { body }».
type ModuleDef struct {
	base
	Name string
	Body []Stmt
}

func (*ModuleDef) isNode() {}
func (*ModuleDef) isStmt() {}

// TypeAlias is «type Name = Expr», inlined by the parser at every
// subsequent reference rather than carried into code generation.
type TypeAlias struct {
	base
	Name string
	Type types.Type
}

func (*TypeAlias) isNode() {}
func (*TypeAlias) isStmt() {}

// ModuleExports lists the names a module body exposes with "pub".
type ModuleExports struct {
	base
	Names []string
}

func (*ModuleExports) isNode() {}
func (*ModuleExports) isStmt() {}

// FFIFunction is a single function signature inside an «@ffi» block or a
// bare «extern "abi" func ...» declaration.
type FFIFunction struct {
	base
	Name       string
	Parameters []Parameter
	ReturnType types.Type
	Variadic   bool
}

func (*FFIFunction) isNode() {}
func (*FFIFunction) isStmt() {}

// FFIBlock is «@ffi extern "abi" from "lib": functions... end».
type FFIBlock struct {
	base
	ABI       string
	FromLib   string
	Functions []*FFIFunction
}

func (*FFIBlock) isNode() {}
func (*FFIBlock) isStmt() {}
