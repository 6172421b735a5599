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

// Package codegen lowers a Vix AST into C17 source text, spec.md §4.4.
// It owns the symbol tables of spec.md §3.4 (vars, user_functions,
// extern_functions, module_functions, impl_methods, structs,
// type_registry, ir) and never performs a separate type-checking pass:
// coercion and dispatch decisions are made inline during lowering
// (spec.md §9, "the code generator is a pure string builder"),
// mirroring the symbol-table approach of gapil/semantic/symbols.go
// (name-keyed maps rather than a pointer graph, spec.md §9 "cycles via
// symbol tables, not pointers").
package codegen

import (
	"strings"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/runtime"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// varInfo is one entry of the "vars" symbol table: a local's generated
// C name and Vix type.
type varInfo struct {
	CName string
	Type  types.Type
}

// FuncSig is one entry of "user_functions"/"extern_functions"/
// "module_functions": a callable's parameter and return types.
type FuncSig struct {
	Params     []types.Type
	ReturnType types.Type
	Public     bool
	Variadic   bool
}

// MethodSig is one entry of "impl_methods": a method's signature plus
// whether it takes a receiver ("is_instance").
type MethodSig struct {
	Params       []types.Type
	ReturnType   types.Type
	HasInstance  bool
}

// StructInfo is one entry of "structs": a struct's field layout.
type StructInfo struct {
	Fields []ast.StructField
}

// Codegen is one compilation unit's code generator: it owns a
// TypeRegistry, every symbol table of spec.md §3.4, and the growing IR
// text buffers, exclusively for its own lifetime (spec.md §5,
// "shared-resource policy").
type Codegen struct {
	Diags *diag.Collector

	registry *types.Registry
	prelude  runtime.Buffer

	// ir: growing buffers for forward declarations and function bodies.
	structDecls  []string // struct typedefs, in declaration order
	protoDecls   []string // function prototypes, in declaration order
	functionText strings.Builder

	scopes []map[string]varInfo

	userFunctions   map[string]FuncSig
	externFunctions map[string]FuncSig
	moduleFunctions map[string]FuncSig // keyed "Module.Name"
	implMethods     map[string]MethodSig // keyed "Struct.Method"
	structs         map[string]StructInfo

	varCounter int

	moduleInitOrder []string // ModuleDef names, in the order encountered
}

// New returns an empty Codegen writing diagnostics to diags.
func New(diags *diag.Collector) *Codegen {
	return &Codegen{
		Diags:           diags,
		registry:        types.NewRegistry(),
		userFunctions:   make(map[string]FuncSig),
		externFunctions: make(map[string]FuncSig),
		moduleFunctions: make(map[string]FuncSig),
		implMethods:     make(map[string]MethodSig),
		structs:         make(map[string]StructInfo),
	}
}

// freshVar returns a new, unique C local variable name (t0, t1, ...),
// per spec.md §4.4 "fresh variables are generated from a monotonically
// increasing counter".
func (c *Codegen) freshVar() string {
	name := "t" + itoa(c.varCounter)
	c.varCounter++
	return name
}

// itoa avoids importing strconv solely for this; kept trivial and
// allocation-light since it runs once per emitted temporary.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// pushScope opens a new lexical scope for local variable lookup.
func (c *Codegen) pushScope() {
	c.scopes = append(c.scopes, make(map[string]varInfo))
}

// popScope closes the innermost lexical scope.
func (c *Codegen) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// declareVar adds name to the innermost scope.
func (c *Codegen) declareVar(name string, info varInfo) {
	c.scopes[len(c.scopes)-1][name] = info
}

// lookupVar searches scopes innermost-first, matching lexical shadowing.
func (c *Codegen) lookupVar(name string) (varInfo, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][name]; ok {
			return v, true
		}
	}
	return varInfo{}, false
}

func (c *Codegen) addProto(decl string) {
	c.protoDecls = append(c.protoDecls, decl)
}

// cType is the single entry point every lowering stage uses to get a
// type's C spelling; routes through the shared Registry so the
// no-duplicate forward-declaration invariant holds across the whole
// unit (spec.md §4.3).
func (c *Codegen) cType(t types.Type) string {
	before := len(c.registry.Forward())
	name := c.registry.ToCType(t)
	after := c.registry.Forward()
	if len(after) > before {
		c.structDecls = append(c.structDecls, after[before:]...)
	}
	return name
}

// diagWarn and diagError centralize diagnostic emission so every
// lowering rule in expr.go/stmt.go reports through the same shape
// (spec.md §4.6).
func (c *Codegen) diagWarn(kind diag.Kind, span source.Span, format string, args ...interface{}) {
	if c.Diags != nil {
		c.Diags.Warnf(kind, span, format, args...)
	}
}

func (c *Codegen) diagError(kind diag.Kind, span source.Span, format string, args ...interface{}) {
	if c.Diags != nil {
		c.Diags.Errorf(kind, span, format, args...)
	}
}
