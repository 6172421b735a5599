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
	"github.com/VixLanguage/Vix-programing-language/internal/runtime"
)

// Generate lowers an entire Program to a complete C17 translation unit,
// in the fixed section order spec.md §5 requires: #includes, generated
// typedefs/forward declarations, runtime prelude (if used), user
// functions, main.
func Generate(prog *ast.Program, c *Codegen) string {
	c.collectDeclarations(prog)

	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			continue // main is lowered last, after every module init is known
		}
		c.codegenFunction(fn)
	}
	for _, mod := range prog.Modules {
		c.codegenModule(mod)
	}

	var mainFn *ast.Function
	for _, fn := range prog.Functions {
		if fn.Name == "main" {
			mainFn = fn
			break
		}
	}
	if mainFn != nil {
		c.codegenMain(mainFn)
	}

	var out strings.Builder
	for _, h := range runtime.Headers {
		fmt.Fprintf(&out, "#include <%s>\n", h)
	}
	for _, inc := range extraIncludes(prog) {
		fmt.Fprintf(&out, "#include %s\n", inc)
	}
	out.WriteString("\n")

	for _, d := range c.structDecls {
		out.WriteString(d)
		out.WriteString("\n")
	}
	out.WriteString("\n")

	preludeText := c.prelude.String()
	if preludeText != "" {
		out.WriteString(preludeText)
		out.WriteString("\n")
	}

	for _, p := range c.protoDecls {
		out.WriteString(p)
		out.WriteString("\n")
	}
	out.WriteString("\n")

	out.WriteString(c.functionText.String())

	return out.String()
}

// extraIncludes collects the system headers an @ffi block's "from" library
// names (spec.md §4.2), deduplicated and in first-seen order so the same
// library pulled in by two blocks only gets one #include line.
func extraIncludes(prog *ast.Program) []string {
	seen := make(map[string]bool)
	var out []string
	for _, fb := range prog.FFIBlocks {
		if fb.FromLib == "" || seen[fb.FromLib] {
			continue
		}
		seen[fb.FromLib] = true
		out = append(out, fmt.Sprintf("<%s.h>", fb.FromLib))
	}
	return out
}

// codegenMain lowers the entry point function with the return type the
// parser recorded (the parser already defaults an undeclared return type
// of top-level main to Int32), and prepends every module's _init()
// call in ModuleDef encounter order (spec.md §5, §8 scenario S4).
func (c *Codegen) codegenMain(fn *ast.Function) {
	c.pushScope()
	defer c.popScope()

	var body strings.Builder
	c.codegenBlock(fn.Body, &body)

	finalBody := c.prependModuleInits(body.String())

	retType := fn.ReturnType
	retCName := c.cType(retType)

	proto := fmt.Sprintf("%s main();", retCName)
	c.addProto(proto)
	fmt.Fprintf(&c.functionText, "%s main() {\n%s}\n\n", retCName, finalBody)
}
