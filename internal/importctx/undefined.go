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

package importctx

import "github.com/VixLanguage/Vix-programing-language/internal/ast"

// Undefined runs the parser's post-parse undefined-function analysis
// (spec.md §4.2): every Call and ModuleCall target that is neither
// defined in prog, nor resolvable through ctx's library/symbol sets, is
// returned. parser.Parse only logs the set; compiler.CompileProgram
// records each name as an error diagnostic, which fails the build.
func Undefined(prog *ast.Program, ctx *Context) []string {
	defined := make(map[string]bool)
	for _, fn := range prog.Functions {
		defined[fn.Name] = true
	}
	for _, s := range prog.Structs {
		defined[s.Name] = true
	}
	for _, mod := range prog.Modules {
		for _, stmt := range mod.Body {
			if fn, ok := stmt.(*ast.Function); ok {
				defined[mod.Name+"."+fn.Name] = true
			}
		}
	}

	seen := make(map[string]bool)
	var missing []string
	record := func(name string) {
		if defined[name] || ctx.IsKnownSymbol(name) || seen[name] {
			return
		}
		seen[name] = true
		missing = append(missing, name)
	}

	var walkExpr func(e ast.Expr)
	var walkStmt func(s ast.Stmt)
	var walkBlock func(b *ast.Block)

	walkExpr = func(e ast.Expr) {
		if e == nil {
			return
		}
		switch v := e.(type) {
		case *ast.Call:
			record(v.Callee)
			for _, a := range v.Arguments {
				walkExpr(a)
			}
		case *ast.CallNamed:
			record(v.Callee)
			for _, a := range v.Arguments {
				walkExpr(a)
			}
		case *ast.ModuleCall:
			if !defined[v.Module+"."+v.Func] && !ctx.IsModuleExport(v.Module, v.Func) {
				record(v.Module + "." + v.Func)
			}
			for _, a := range v.Arguments {
				walkExpr(a)
			}
		case *ast.MethodCall:
			walkExpr(v.Object)
			for _, a := range v.Arguments {
				walkExpr(a)
			}
		case *ast.StaticMethodCall:
			for _, a := range v.Arguments {
				walkExpr(a)
			}
		case *ast.Member:
			walkExpr(v.Object)
		case *ast.Index:
			walkExpr(v.Object)
			walkExpr(v.Index)
		case *ast.Slice:
			walkExpr(v.Object)
			walkExpr(v.Low)
			walkExpr(v.High)
		case *ast.TupleExpr:
			for _, el := range v.Elements {
				walkExpr(el)
			}
		case *ast.ArrayExpr:
			for _, el := range v.Elements {
				walkExpr(el)
			}
		case *ast.HashMapExpr:
			for _, ent := range v.Entries {
				walkExpr(ent.Key)
				walkExpr(ent.Value)
			}
		case *ast.SomeExpr:
			walkExpr(v.Value)
		case *ast.OkExpr:
			walkExpr(v.Value)
		case *ast.ErrExpr:
			walkExpr(v.Value)
		case *ast.BinaryOp:
			walkExpr(v.LHS)
			walkExpr(v.RHS)
		case *ast.UnaryOp:
			walkExpr(v.Operand)
		case *ast.OneOf:
			for _, el := range v.Elements {
				walkExpr(el)
			}
		case *ast.TypeOf:
			walkExpr(v.Operand)
		case *ast.Cast:
			walkExpr(v.Operand)
		case *ast.Plan:
			for _, p := range v.Parts {
				walkExpr(p.Expr)
			}
		case *ast.MatchExpr:
			walkExpr(v.Subject)
			for _, arm := range v.Arms {
				for _, p := range arm.Patterns {
					walkExpr(p)
				}
				walkExpr(arm.Value)
			}
		}
	}

	walkStmt = func(s ast.Stmt) {
		switch v := s.(type) {
		case *ast.TypedDeclaration:
			walkExpr(v.Value)
		case *ast.TupleUnpack:
			walkExpr(v.Value)
		case *ast.Assign:
			walkExpr(v.Target)
			walkExpr(v.Value)
		case *ast.CompoundAssign:
			walkExpr(v.Target)
			walkExpr(v.Value)
		case *ast.IndexAssign:
			walkExpr(v.Object)
			walkExpr(v.Index)
			walkExpr(v.Value)
		case *ast.MemberAssign:
			walkExpr(v.Object)
			walkExpr(v.Value)
		case *ast.ModuleAssign:
			walkExpr(v.Value)
		case *ast.ModuleCompoundAssign:
			walkExpr(v.Value)
		case *ast.ExprStmt:
			walkExpr(v.Value)
		case *ast.If:
			walkExpr(v.Condition)
			walkBlock(v.Then)
			walkBlock(v.Else)
		case *ast.IfLet:
			walkExpr(v.Value)
			walkBlock(v.Then)
			walkBlock(v.Else)
		case *ast.While:
			walkExpr(v.Condition)
			walkBlock(v.Body)
		case *ast.For:
			walkExpr(v.Iterable)
			walkBlock(v.Body)
		case *ast.Match:
			walkExpr(v.Subject)
			for _, c := range v.Cases {
				for _, cond := range c.Conditions {
					walkExpr(cond)
				}
				walkBlock(c.Body)
			}
		case *ast.Return:
			walkExpr(v.Value)
		case *ast.Scope:
			walkBlock(v.Body)
		case *ast.Unsafe:
			walkBlock(v.Body)
		}
	}

	walkBlock = func(b *ast.Block) {
		if b == nil {
			return
		}
		for _, s := range b.Statements {
			walkStmt(s)
		}
	}

	for _, fn := range prog.Functions {
		walkBlock(fn.Body)
	}
	for _, mod := range prog.Modules {
		for _, stmt := range mod.Body {
			if fn, ok := stmt.(*ast.Function); ok {
				walkBlock(fn.Body)
			}
		}
	}
	return missing
}
