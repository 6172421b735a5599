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

// Package compiler wires the front end's phases together: lexer, parser,
// library manager and code generator, spec.md §2's control-flow diagram.
// Nothing in this package knows how to tokenize, parse or lower on its
// own — it only sequences the calls and translates between the library
// package's FootprintPack shape and the codegen package's AST-level view
// of what a library exports.
package compiler

import (
	"context"

	"github.com/pkg/errors"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/codegen"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/importctx"
	"github.com/VixLanguage/Vix-programing-language/internal/library"
	"github.com/VixLanguage/Vix-programing-language/internal/parser"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// FrontEnd is the concrete library.FrontEnd: it runs a library's
// concatenated source through the lexer, parser and code generator and
// derives the library's FootprintPack from the resulting AST.
type FrontEnd struct{}

// NewFrontEnd returns a FrontEnd ready to compile libraries.
func NewFrontEnd() *FrontEnd { return &FrontEnd{} }

var _ library.FrontEnd = (*FrontEnd)(nil)

// CompileLibrary implements library.FrontEnd: parse source (named as
// name for diagnostics), lower it to C17 text, and extract its public ABI
// as a FootprintPack. A parser-reported error-severity diagnostic fails
// the whole library compile — spec.md §4.5 treats a library that does not
// parse as a hard failure, not a partially usable footprint.
func (f *FrontEnd) CompileLibrary(ctx context.Context, name, src string) (string, library.FootprintPack, error) {
	ctx = diag.Phase(ctx, "compiler")
	log := diag.FromContext(ctx)

	var diags diag.Collector
	file := source.NewFile(name+".vix", src)
	prog, _ := parser.Parse(ctx, file, &diags)
	if diags.HasErrors() {
		return "", library.FootprintPack{}, errors.Errorf(
			"library %q failed to parse: %d diagnostic(s)", name, len(diags.All()))
	}

	cg := codegen.New(&diags)
	cCode := codegen.Generate(prog, cg)
	if diags.HasErrors() {
		return "", library.FootprintPack{}, errors.Errorf(
			"library %q failed code generation: %d diagnostic(s)", name, len(diags.All()))
	}

	pack := BuildFootprint(prog, name)
	log.WithField("library", name).WithField("functions", len(pack.Functions)).Debug("library front end complete")
	return cCode, pack, nil
}

// BuildFootprint derives a library's public ABI manifest from its parsed
// Program: every public top-level function and every public function
// nested in a module body, plus every public struct name (spec.md §3.6
// "classes"). Version, Publisher and SourceLibrary are left for the
// caller (library.Manager) to stamp from the resolved package metadata.
func BuildFootprint(prog *ast.Program, name string) library.FootprintPack {
	reg := types.NewRegistry()
	pack := library.FootprintPack{Name: name}

	for _, s := range prog.Structs {
		if s.Public {
			pack.Classes = append(pack.Classes, s.Name)
		}
	}

	for _, fn := range prog.Functions {
		if !fn.Public || fn.ImplFor != "" {
			continue
		}
		pack.Functions = append(pack.Functions, fn.Name)
		pack.FunctionSignatures = append(pack.FunctionSignatures, signatureOf(reg, fn))
	}

	for _, mod := range prog.Modules {
		for _, stmt := range mod.Body {
			fn, ok := stmt.(*ast.Function)
			if !ok || !fn.Public {
				continue
			}
			qualified := mod.Name + "." + fn.Name
			pack.Functions = append(pack.Functions, qualified)
			pack.FunctionSignatures = append(pack.FunctionSignatures, signatureOf(reg, fn))
		}
	}

	return pack
}

func signatureOf(reg *types.Registry, fn *ast.Function) library.FunctionSignature {
	sig := library.FunctionSignature{
		Name:       fn.Name,
		ReturnType: reg.ToCType(fn.ReturnType),
		ABI:        "vix",
	}
	for _, p := range fn.Parameters {
		sig.Parameters = append(sig.Parameters, [2]string{p.Name, reg.ToCType(p.Type)})
	}
	return sig
}

// CompileProgram runs the full pipeline for the user's own (non-library)
// source file: lex, parse, declare every dependency's exported symbols
// into the resulting ImportContext so the undefined-function pass doesn't
// flag calls the dependencies actually satisfy, then lower to C17,
// spec.md §2 and §4.5 ("declare_symbol for every function the footprint
// exports"). Parse- or codegen-level error diagnostics are returned via
// diags, never as a Go error — only a truly exceptional failure (none
// currently arise here) would be.
func CompileProgram(ctx context.Context, file *source.File, deps []library.FootprintPack) (string, *diag.Collector, error) {
	ctx = diag.Phase(ctx, "compiler")
	log := diag.FromContext(ctx)

	var diags diag.Collector
	prog, importCtx := parser.Parse(ctx, file, &diags)

	for _, pack := range deps {
		for _, fn := range pack.Functions {
			importCtx.DeclareSymbol(pack.SourceLibrary, fn)
		}
	}
	for _, name := range importctx.Undefined(prog, importCtx) {
		diags.Errorf(diag.KindUndefinedVariable, prog.Span(), "call to undefined function %q", name)
	}

	cg := codegen.New(&diags)
	cCode := codegen.Generate(prog, cg)

	log.WithField("file", file.Name).Debug("program compiled")
	return cCode, &diags, nil
}

// CollectIncludeFlags flattens every linked library's package.json
// "include.Clang" flags (spec.md §4.5 step 1) into one deduplicated list,
// in first-seen order, for cmd/vixc to pass to ClangBackend when
// compiling the program that imports them.
func CollectIncludeFlags(packs []library.FootprintPack) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range packs {
		for _, flag := range p.Includes {
			if seen[flag] {
				continue
			}
			seen[flag] = true
			out = append(out, flag)
		}
	}
	return out
}
