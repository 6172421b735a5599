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

package importctx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/importctx"
)

func TestCoreIsAlwaysImported(t *testing.T) {
	prog := &ast.Program{}
	ctx := importctx.Build(prog)
	assert.True(t, ctx.HasLibrary("core"))
}

func TestBuildIsIdempotent(t *testing.T) {
	prog := &ast.Program{Imports: []ast.Node{&ast.LibraryImport{Name: "net"}}}
	a := importctx.Build(prog)
	b := importctx.Build(prog)
	assert.ElementsMatch(t, a.Libraries(), b.Libraries())
}

func TestUndefinedFlagsUnknownCall(t *testing.T) {
	fn := &ast.Function{
		Name: "main",
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.ExprStmt{Value: &ast.Call{Callee: "mystery"}},
		}},
	}
	prog := &ast.Program{Functions: []*ast.Function{fn}}
	ctx := importctx.Build(prog)
	missing := importctx.Undefined(prog, ctx)
	require.Len(t, missing, 1)
	assert.Equal(t, "mystery", missing[0])
}

func TestUndefinedSkipsKnownSymbols(t *testing.T) {
	fn := &ast.Function{
		Name: "main",
		Body: &ast.Block{Statements: []ast.Stmt{
			&ast.ExprStmt{Value: &ast.Call{Callee: "net_connect"}},
		}},
	}
	prog := &ast.Program{
		Imports:   []ast.Node{&ast.LibraryImport{Name: "net"}},
		Functions: []*ast.Function{fn},
	}
	ctx := importctx.Build(prog)
	ctx.DeclareSymbol("net", "net_connect")
	missing := importctx.Undefined(prog, ctx)
	assert.Empty(t, missing)
}
