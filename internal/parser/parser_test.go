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

package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/importctx"
	"github.com/VixLanguage/Vix-programing-language/internal/parser"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Collector) {
	t.Helper()
	var diags diag.Collector
	file := source.NewFile("t.vix", src)
	prog, _ := parser.Parse(context.Background(), file, &diags)
	require.NotNil(t, prog)
	return prog, &diags
}

func TestParsesFunctionWithTypedDeclAndReturn(t *testing.T) {
	prog, diags := parse(t, `
func add(a: i32, b: i32): i32
	let sum: i32 = a + b
	return sum
end
`)
	require.Empty(t, diags.All())
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "add", fn.Name)
	assert.True(t, types.Int32.Equal(fn.ReturnType))
	require.Len(t, fn.Parameters, 2)
	require.Len(t, fn.Body.Statements, 2)

	decl, ok := fn.Body.Statements[0].(*ast.TypedDeclaration)
	require.True(t, ok)
	assert.Equal(t, "sum", decl.Name)
	bin, ok := decl.Value.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
}

func TestMainDefaultsToInt32ReturnType(t *testing.T) {
	prog, _ := parse(t, `
func main()
	return 0
end
`)
	require.Len(t, prog.Functions, 1)
	assert.True(t, types.Int32.Equal(prog.Functions[0].ReturnType))
}

func TestParsesStructDef(t *testing.T) {
	prog, diags := parse(t, `
struct Point
	x: i32
	y: i32
end
`)
	require.Empty(t, diags.All())
	require.Len(t, prog.Structs, 1)
	s := prog.Structs[0]
	assert.Equal(t, "Point", s.Name)
	require.Len(t, s.Fields, 2)
	assert.Equal(t, "x", s.Fields[0].Name)
	assert.True(t, types.Int32.Equal(s.Fields[0].Type))
}

func TestParsesModuleAndModuleCall(t *testing.T) {
	prog, diags := parse(t, `
module M {
	pub func greet(x: i32): i32
		return x
	end
}

func main(): i32
	return M.greet(7)
end
`)
	require.Empty(t, diags.All())
	require.Len(t, prog.Modules, 1)
	assert.Equal(t, "M", prog.Modules[0].Name)

	var main *ast.Function
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			main = fn
		}
	}
	require.NotNil(t, main)
	ret, ok := main.Body.Statements[0].(*ast.Return)
	require.True(t, ok)
	call, ok := ret.Value.(*ast.ModuleCall)
	require.True(t, ok)
	assert.Equal(t, "M", call.Module)
	assert.Equal(t, "greet", call.Func)
}

func TestCompoundAssignDisambiguation(t *testing.T) {
	prog, diags := parse(t, `
func main(): i32
	let mut xs: i32[] = []
	xs += 5
	return 0
end
`)
	require.Empty(t, diags.All())
	stmts := prog.Functions[0].Body.Statements
	require.Len(t, stmts, 3)
	ca, ok := stmts[1].(*ast.CompoundAssign)
	require.True(t, ok)
	assert.Equal(t, "+", ca.Operator)
	v, ok := ca.Target.(*ast.Var)
	require.True(t, ok)
	assert.Equal(t, "xs", v.Name)
}

func TestIfWhileForParse(t *testing.T) {
	prog, diags := parse(t, `
func main(): i32
	if true then
		return 1
	else
		return 2
	end
	while true do
		break
	end
	for x in xs do
		continue
	end
	return 0
end
`)
	require.Empty(t, diags.All())
	stmts := prog.Functions[0].Body.Statements
	require.Len(t, stmts, 4)
	_, ok := stmts[0].(*ast.If)
	assert.True(t, ok)
	_, ok = stmts[1].(*ast.While)
	assert.True(t, ok)
	_, ok = stmts[2].(*ast.For)
	assert.True(t, ok)
}

func TestImportPrefixAndWildcard(t *testing.T) {
	prog, diags := parse(t, `
import net
import net::*

func main(): i32
	return 0
end
`)
	require.Empty(t, diags.All())
	require.Len(t, prog.Imports, 2)
	_, isLib := prog.Imports[0].(*ast.LibraryImport)
	assert.True(t, isLib)
	_, isWild := prog.Imports[1].(*ast.WildcardImport)
	assert.True(t, isWild)
}

func TestImplBlockMangling(t *testing.T) {
	prog, diags := parse(t, `
struct Point
	x: i32
end

impl Point
	func length(self): i32
		return self.x
	end
end
`)
	require.Empty(t, diags.All())
	require.Len(t, prog.Functions, 1)
	fn := prog.Functions[0]
	assert.Equal(t, "length", fn.Name)
	assert.Equal(t, "Point", fn.ImplFor)
	assert.Equal(t, ast.SelfValue, fn.Receiver)
}

func TestFFIBlockParse(t *testing.T) {
	prog, diags := parse(t, `
@ffi extern "C" from "libm":
	func sqrt(x: f64): f64
	func printf(fmt: str, ...): i32
end

func main(): i32
	return 0
end
`)
	require.Empty(t, diags.All())
	require.Len(t, prog.FFIBlocks, 1)
	fb := prog.FFIBlocks[0]
	assert.Equal(t, "C", fb.ABI)
	assert.Equal(t, "libm", fb.FromLib)
	require.Len(t, fb.Functions, 2)
	assert.Equal(t, "sqrt", fb.Functions[0].Name)
	assert.True(t, fb.Functions[1].Variadic)
}

// A «{key: value, ...}» literal parses into HashMapExpr with its entries
// in written order.
func TestParsesHashMapLiteral(t *testing.T) {
	prog, diags := parse(t, `
func main(): i32
	let m = {1: 2, 3: 4}
	return 0
end
`)
	require.Empty(t, diags.All())
	require.Len(t, prog.Functions, 1)
	decl, ok := prog.Functions[0].Body.Statements[0].(*ast.TypedDeclaration)
	require.True(t, ok)
	lit, ok := decl.Value.(*ast.HashMapExpr)
	require.True(t, ok)
	require.Len(t, lit.Entries, 2)

	first, ok := lit.Entries[0].Key.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, "1", first.Value)
	firstVal, ok := lit.Entries[0].Value.(*ast.Number)
	require.True(t, ok)
	assert.Equal(t, "2", firstVal.Value)
}

// S6 — An undefined call with no matching import/library symbol is
// reported by the post-parse undefined-function analysis pass.
func TestUndefinedFunctionAfterImports(t *testing.T) {
	src := `
import net

func main(): i32
	return totally_undefined_thing(1)
end
`
	var diags diag.Collector
	file := source.NewFile("t.vix", src)
	prog, ctx := parser.Parse(context.Background(), file, &diags)
	missing := importctx.Undefined(prog, ctx)
	require.Contains(t, missing, "totally_undefined_thing")
}

func TestUnterminatedBlockRecoversWithoutPanic(t *testing.T) {
	src := `
func broken(): i32
	let x: i32 = 1
`
	assert.NotPanics(t, func() {
		var diags diag.Collector
		file := source.NewFile("t.vix", src)
		prog, _ := parser.Parse(context.Background(), file, &diags)
		require.NotNil(t, prog)
	})
}
