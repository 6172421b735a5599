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

package codegen

import (
	"fmt"
	"strings"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// collectDeclarations populates every symbol table from prog before any
// lowering happens, so forward references (a function calling one
// declared later in the file) resolve correctly — gapil's own semantic
// pass similarly walks declarations before resolving bodies.
func (c *Codegen) collectDeclarations(prog *ast.Program) {
	for _, s := range prog.Structs {
		c.structs[s.Name] = StructInfo{Fields: s.Fields}
	}
	for _, fn := range prog.Functions {
		c.userFunctions[fn.Name] = funcSigOf(fn)
		if fn.ImplFor != "" {
			c.implMethods[fn.ImplFor+"."+fn.Name] = MethodSig{
				Params:      paramTypes(fn.Parameters),
				ReturnType:  fn.ReturnType,
				HasInstance: fn.Receiver != ast.SelfNone,
			}
			mangled := fn.ImplFor + "_" + fn.Name
			c.userFunctions[mangled] = funcSigOf(fn)
		}
	}
	for _, mod := range prog.Modules {
		for _, stmt := range mod.Body {
			if fn, ok := stmt.(*ast.Function); ok {
				sig := funcSigOf(fn)
				sig.Public = fn.Public
				c.moduleFunctions[mod.Name+"."+fn.Name] = sig
				mangled := mod.Name + "_" + fn.Name
				c.userFunctions[mangled] = sig
			}
		}
	}
	for _, fb := range prog.FFIBlocks {
		for _, ffi := range fb.Functions {
			c.externFunctions[ffi.Name] = FuncSig{
				Params:     paramTypes(ffi.Parameters),
				ReturnType: ffi.ReturnType,
				Variadic:   ffi.Variadic,
			}
		}
	}
}

func funcSigOf(fn *ast.Function) FuncSig {
	return FuncSig{Params: paramTypes(fn.Parameters), ReturnType: fn.ReturnType, Public: fn.Public}
}

func paramTypes(params []ast.Parameter) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = p.Type
	}
	return out
}

// codegenFunction lowers one free function or impl method to a C
// function definition, appended to c.functionText, and its prototype
// to c.protoDecls.
func (c *Codegen) codegenFunction(fn *ast.Function) {
	name := fn.Name
	if fn.ImplFor != "" {
		name = fn.ImplFor + "_" + fn.Name
	}
	c.codegenFunctionAs(name, fn)
}

func (c *Codegen) codegenFunctionAs(cname string, fn *ast.Function) {
	c.pushScope()
	defer c.popScope()

	var params []string
	if fn.Receiver != ast.SelfNone && fn.ImplFor != "" {
		recvType := receiverCType(fn.Receiver, fn.ImplFor)
		params = append(params, recvType+" self")
		c.declareVar("self", varInfo{CName: "self", Type: types.Ptr{Elem: types.Struct{Name: fn.ImplFor}}})
	}
	for _, p := range fn.Parameters {
		cname := "v_" + p.Name
		params = append(params, c.cType(p.Type)+" "+cname)
		c.declareVar(p.Name, varInfo{CName: cname, Type: p.Type})
	}

	proto := fmt.Sprintf("%s %s(%s);", c.cType(fn.ReturnType), cname, strings.Join(params, ", "))
	c.addProto(proto)

	if fn.Body == nil {
		return // FFI-style declaration-only function: prototype is enough.
	}

	var body strings.Builder
	c.codegenBlock(fn.Body, &body)

	fmt.Fprintf(&c.functionText, "%s %s(%s) {\n%s}\n\n",
		c.cType(fn.ReturnType), cname, strings.Join(params, ", "), body.String())
}

func receiverCType(mod ast.SelfModifier, structName string) string {
	switch mod {
	case ast.SelfRef, ast.SelfMutRef, ast.SelfBorrow:
		return structName + "*"
	default:
		return structName + "*"
	}
}

// codegenModule lowers a ModuleDef: every public function becomes
// Module_func, every non-function statement of the body is lowered into
// a generated Module_init() so main() can unconditionally call every
// module's initializer in encounter order (spec.md §4.4 Modules step 2,
// §5 "module initializers run in the order their ModuleDef was
// encountered", §8 scenario S4), and any nested ModuleDef is recursed
// into (§4.4 Modules step 3) before its own name is appended to
// moduleInitOrder.
func (c *Codegen) codegenModule(mod *ast.ModuleDef) {
	var initBody strings.Builder
	c.pushScope()
	for _, stmt := range mod.Body {
		switch v := stmt.(type) {
		case *ast.Function:
			c.codegenFunctionAs(mod.Name+"_"+v.Name, v)
		case *ast.ModuleDef:
			c.codegenModule(v)
		default:
			c.codegenStmt(stmt, &initBody)
		}
	}
	c.popScope()

	c.moduleInitOrder = append(c.moduleInitOrder, mod.Name)
	initProto := fmt.Sprintf("void %s_init();", mod.Name)
	c.addProto(initProto)
	fmt.Fprintf(&c.functionText, "void %s_init() {\n%s}\n\n", mod.Name, initBody.String())
}

// prependModuleInits returns mainBody with a call to every module's
// _init() function inserted at the top, in encounter order.
func (c *Codegen) prependModuleInits(mainBody string) string {
	var sb strings.Builder
	for _, name := range c.moduleInitOrder {
		fmt.Fprintf(&sb, "%s_init();\n", name)
	}
	sb.WriteString(mainBody)
	return sb.String()
}
