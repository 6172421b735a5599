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

package codegen_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/codegen"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// S1 — Tuple construction lowers to a single dedup'd typedef and an
// aggregate initializer.
func TestTupleConstructionS1(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)
	var body strings.Builder

	expr := &ast.TupleExpr{Elements: []ast.Expr{
		&ast.Number{Value: "1"}, &ast.Number{Value: "2"}, &ast.Number{Value: "3"},
	}}
	_ = expr
	prog := &ast.Program{Functions: []*ast.Function{{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.TypedDeclaration{Name: "x", Type: types.AutoT, Value: expr},
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}}}
	out := codegen.Generate(prog, c)
	assert.Contains(t, out, "Tuple_3")
	assert.Equal(t, 1, strings.Count(out, "typedef struct { int32_t field_0; int32_t field_1; int32_t field_2; }"))
	_ = body
}

// S2 — Slice push emits vix_push exactly once and the compound-assign
// statement lowers to a vix_push call.
func TestSlicePushS2(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	elemType := types.Int32
	xsType := types.Array{Element: elemType}
	prog := &ast.Program{Functions: []*ast.Function{{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.TypedDeclaration{Name: "xs", Type: xsType, Value: &ast.ArrayExpr{}},
			&ast.CompoundAssign{
				Target:   &ast.Var{Name: "xs"},
				Operator: "+",
				Value:    &ast.Number{Value: "5"},
			},
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}}}
	out := codegen.Generate(prog, c)
	require.Equal(t, 1, strings.Count(out, "#define vix_push"))
	assert.Contains(t, out, "vix_push(v_xs, 5);")
}

// S4 — Module call resolution: M.greet(7) lowers the same way M_greet(7)
// would, main begins with M_init(), and the prototype void M_init() is
// present.
func TestModuleCallResolutionS4(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	greet := &ast.Function{
		Name:       "greet",
		Public:     true,
		ReturnType: types.Int32,
		Parameters: []ast.Parameter{{Name: "x", Type: types.Int32}},
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{Value: &ast.Var{Name: "x"}},
		}},
	}
	mod := &ast.ModuleDef{Name: "M", Body: []ast.Stmt{greet}}

	main := &ast.Function{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{Value: &ast.ModuleCall{Module: "M", Func: "greet", Arguments: []ast.Expr{&ast.Number{Value: "7"}}}},
		}},
	}
	prog := &ast.Program{Functions: []*ast.Function{main}, Modules: []*ast.ModuleDef{mod}}

	out := codegen.Generate(prog, c)
	assert.Contains(t, out, "void M_init();")
	assert.Contains(t, out, "int32_t M_greet(int32_t v_x)")
	mainIdx := strings.Index(out, "int32_t main()")
	require.GreaterOrEqual(t, mainIdx, 0)
	mainBody := out[mainIdx:]
	initIdx := strings.Index(mainBody, "M_init();")
	callIdx := strings.Index(mainBody, "M_greet(7)")
	require.Greater(t, initIdx, 0)
	require.Greater(t, callIdx, 0)
	assert.Less(t, initIdx, callIdx, "M_init() must run before the call that uses it")
	assert.Empty(t, diags.All())
}

// A module body's non-function statements lower into its generated
// Module_init(), and a nested ModuleDef is recursed into rather than
// dropped (spec.md §4.4 Modules steps 2-3).
func TestModuleInitLowersNonFunctionStatements(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	inner := &ast.ModuleDef{
		Name: "Inner",
		Body: []ast.Stmt{
			&ast.ExprStmt{Value: &ast.Call{Callee: "seed_inner"}},
		},
	}
	outer := &ast.ModuleDef{
		Name: "Outer",
		Body: []ast.Stmt{
			&ast.ExprStmt{Value: &ast.Call{Callee: "seed_outer"}},
			inner,
		},
	}
	main := &ast.Function{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}
	prog := &ast.Program{Functions: []*ast.Function{main}, Modules: []*ast.ModuleDef{outer}}

	out := codegen.Generate(prog, c)

	outerInitIdx := strings.Index(out, "void Outer_init() {")
	innerInitIdx := strings.Index(out, "void Inner_init() {")
	require.GreaterOrEqual(t, outerInitIdx, 0)
	require.GreaterOrEqual(t, innerInitIdx, 0)

	outerInitBody := out[outerInitIdx:strings.Index(out[outerInitIdx:], "}\n")+outerInitIdx]
	innerInitBody := out[innerInitIdx:strings.Index(out[innerInitIdx:], "}\n")+innerInitIdx]
	assert.Contains(t, outerInitBody, "seed_outer()")
	assert.Contains(t, innerInitBody, "seed_inner()")
	assert.NotContains(t, outerInitBody, "seed_inner()", "a nested module's statements belong in its own init, not its parent's")
}

// S5 — Struct constructor fallback: a bare Point() call default
// initializes every field by type.
func TestStructConstructorFallbackS5(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	prog := &ast.Program{
		Structs: []*ast.StructDef{{
			Name: "Point",
			Fields: []ast.StructField{
				{Name: "x", Type: types.Int32},
				{Name: "y", Type: types.Int32},
			},
		}},
		Functions: []*ast.Function{{
			Name:       "main",
			ReturnType: types.Int32,
			Body: &ast.Block{Statements: []ast.Stmt{
				&ast.TypedDeclaration{Name: "p", Type: types.AutoT, Value: &ast.Call{Callee: "Point"}},
				&ast.Return{Value: &ast.Number{Value: "0"}},
			}},
		}},
	}
	out := codegen.Generate(prog, c)
	assert.Contains(t, out, "Point t0 = Point_new(0, 0);")
}

// UnsafeCast: casting a pointer-typed value to a non-pointer type
// records a warning-severity diagnostic, not a fatal one.
func TestUnsafeCastWarns(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	prog := &ast.Program{Functions: []*ast.Function{{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.TypedDeclaration{
				Name: "p", Type: types.Ptr{Elem: types.Int32},
				Value: &ast.Cast{Operand: &ast.Number{Value: "0"}, Type: types.Ptr{Elem: types.Int32}},
			},
			&ast.TypedDeclaration{
				Name: "n", Type: types.Int32,
				Value: &ast.Cast{Operand: &ast.Var{Name: "p"}, Type: types.Int32},
			},
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}}}
	codegen.Generate(prog, c)
	require.NotEmpty(t, diags.All())
	found := false
	for _, d := range diags.All() {
		if d.Kind == diag.KindUnsafeCast {
			found = true
			assert.Equal(t, diag.Warning, d.Severity)
		}
	}
	assert.True(t, found)
}

// A slice expression "xs[1:3]" on a dynamic array lowers to a fresh
// Slice_<elem> offset into the source's existing buffer (spec.md §3.3).
func TestSliceExpressionLowersToOffsetSlice(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	xsType := types.Array{Element: types.Int32}
	prog := &ast.Program{Functions: []*ast.Function{{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.TypedDeclaration{Name: "xs", Type: xsType, Value: &ast.ArrayExpr{}},
			&ast.TypedDeclaration{
				Name: "ys", Type: types.AutoT,
				Value: &ast.Slice{
					Object: &ast.Var{Name: "xs"},
					Low:    &ast.Number{Value: "1"},
					High:   &ast.Number{Value: "3"},
				},
			},
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}}}
	out := codegen.Generate(prog, c)
	assert.Empty(t, diags.All())
	assert.Contains(t, out, "v_xs.ptr + (1)")
	assert.Contains(t, out, "(size_t)((3) - (1))")
}

// StdStr accepts "+=" (lowered through the same Slice_char append helper
// as Str) but rejects member assignment, matching the original
// compiler's asymmetry (spec.md §9).
func TestStdStrCompoundAssignAppends(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	prog := &ast.Program{Functions: []*ast.Function{{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.TypedDeclaration{Name: "s", Type: types.StdStr{}, Value: &ast.StringLit{Value: "hi"}},
			&ast.CompoundAssign{
				Target:   &ast.Var{Name: "s"},
				Operator: "+",
				Value:    &ast.Var{Name: "s"},
			},
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}}}
	out := codegen.Generate(prog, c)
	assert.Contains(t, out, "vix_str_append_inplace(&v_s, v_s);")
	assert.Empty(t, diags.All())
}

// A map literal lowers to an opaque HashMap_<K>_<V> handle: one "_new()"
// call followed by one "_insert()" call per entry (spec.md §3.2/§4.3).
func TestHashMapLiteralLowersToOpaqueHandle(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	prog := &ast.Program{Functions: []*ast.Function{{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.TypedDeclaration{
				Name: "m", Type: types.AutoT,
				Value: &ast.HashMapExpr{Entries: []ast.HashMapEntry{
					{Key: &ast.Number{Value: "1"}, Value: &ast.Number{Value: "2"}},
				}},
			},
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}}}
	out := codegen.Generate(prog, c)
	assert.Empty(t, diags.All())
	assert.Contains(t, out, "typedef struct HashMap_int32_t_int32_t_impl* HashMap_int32_t_int32_t;")
	assert.Contains(t, out, "HashMap_int32_t_int32_t t0 = HashMap_int32_t_int32_t_new();")
	assert.Contains(t, out, "HashMap_int32_t_int32_t_insert(t0, 1, 2);")
}

func TestStdStrMemberAssignRejected(t *testing.T) {
	var diags diag.Collector
	c := codegen.New(&diags)

	prog := &ast.Program{Functions: []*ast.Function{{
		Name:       "main",
		ReturnType: types.Int32,
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.TypedDeclaration{Name: "s", Type: types.StdStr{}, Value: &ast.StringLit{Value: "hi"}},
			&ast.MemberAssign{Object: &ast.Var{Name: "s"}, Field: "len", Value: &ast.Number{Value: "0"}},
			&ast.Return{Value: &ast.Number{Value: "0"}},
		}},
	}}}
	codegen.Generate(prog, c)
	require.NotEmpty(t, diags.All())
	found := false
	for _, d := range diags.All() {
		if d.Kind == diag.KindVoidMemberAssign {
			found = true
		}
	}
	assert.True(t, found)
}
