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

// Package importctx builds and queries the symbol-visibility table the
// parser produces from a Program's import declarations, spec.md §3.5.
package importctx

import "github.com/VixLanguage/Vix-programing-language/internal/ast"

// coreLibrary is always implicitly imported; every ImportContext starts
// with it present exactly once (spec.md §3.5, invariant 6 in §8).
const coreLibrary = "core"

// Context tracks which libraries a file has imported, which symbols
// those libraries (and any wildcard imports) expose, and which module
// names were declared, so the undefined-function pass can tell a
// genuinely missing call apart from one resolved through an import.
type Context struct {
	libraries    map[string]bool   // imported library name -> present
	aliases      map[string]string // alias -> real library name
	symbolLib    map[string]string // exported symbol -> owning library
	wildcards    map[string]bool   // library names imported with "::*"
	fileImports  []string          // relative paths imported via FileImport
	moduleExport map[string]bool   // "Module.name" -> exported
}

// New returns a Context with only the implicit core import present.
func New() *Context {
	c := &Context{
		libraries:    make(map[string]bool),
		aliases:      make(map[string]string),
		symbolLib:    make(map[string]string),
		wildcards:    make(map[string]bool),
		moduleExport: make(map[string]bool),
	}
	c.libraries[coreLibrary] = true
	return c
}

// Build walks a Program's import declarations and module definitions,
// returning the Context they describe. Calling Build twice on the same
// Program yields equal Contexts (import idempotence, spec.md §8.6).
func Build(prog *ast.Program) *Context {
	c := New()
	for _, imp := range prog.Imports {
		switch v := imp.(type) {
		case *ast.LibraryImport:
			c.libraries[v.Name] = true
			if v.Alias != "" {
				c.aliases[v.Alias] = v.Name
			}
		case *ast.FileImport:
			c.fileImports = append(c.fileImports, v.Path)
		case *ast.WildcardImport:
			c.libraries[v.Name] = true
			c.wildcards[v.Name] = true
		}
	}
	for _, mod := range prog.Modules {
		for _, stmt := range mod.Body {
			if fn, ok := stmt.(*ast.Function); ok && fn.Public {
				c.moduleExport[mod.Name+"."+fn.Name] = true
			}
		}
	}
	return c
}

// HasLibrary reports whether name (after alias resolution) has been
// imported.
func (c *Context) HasLibrary(name string) bool {
	if real, ok := c.aliases[name]; ok {
		name = real
	}
	return c.libraries[name]
}

// DeclareSymbol records that symbol is exported by library, making
// subsequent IsKnownSymbol(symbol) calls succeed. Called by the library
// manager once a dependency's FootprintPack has been loaded.
func (c *Context) DeclareSymbol(library, symbol string) {
	c.symbolLib[symbol] = library
}

// IsKnownSymbol reports whether name resolves through some imported
// library — either a library wildcard import or an explicitly declared
// exported symbol.
func (c *Context) IsKnownSymbol(name string) bool {
	if lib, ok := c.symbolLib[name]; ok {
		return c.libraries[lib]
	}
	for lib := range c.wildcards {
		if c.libraries[lib] {
			return true
		}
	}
	return false
}

// IsModuleExport reports whether "module.name" was declared pub inside
// a ModuleDef of the Program this Context was built from.
func (c *Context) IsModuleExport(module, name string) bool {
	return c.moduleExport[module+"."+name]
}

// Libraries returns every library name present in this Context,
// including the implicit "core".
func (c *Context) Libraries() []string {
	out := make([]string, 0, len(c.libraries))
	for name := range c.libraries {
		out = append(out, name)
	}
	return out
}
