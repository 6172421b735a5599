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

// Import is the common shape every import declaration shares: the
// parser distinguishes the three forms below by their leading keyword
// (`from` or `import`) and a trailing `::*` (spec.md §3.5 / §4.1), but
// all three contribute to the same ImportContext symbol table.

// LibraryImport is «import some_lib» — resolved against the library
// manager's dependency graph, never the filesystem directly.
type LibraryImport struct {
	base
	Name  string
	Alias string // empty means no "as" rename
}

func (*LibraryImport) isNode() {}

// FileImport is «from "./relative/path.vix" import ...» — the path is
// recorded in the ImportContext as written; the imported-name list is
// not kept.
type FileImport struct {
	base
	Path string
}

func (*FileImport) isNode() {}

// WildcardImport is «import some_lib::*», bringing every public symbol
// of the named library into scope unqualified.
type WildcardImport struct {
	base
	Name string
}

func (*WildcardImport) isNode() {}

// Program is the root node produced by parsing a single source file:
// its imports followed by every top-level declaration, in source order.
// A library's source files are concatenated into one text by the
// library manager before parsing, so they yield a single Program.
type Program struct {
	base
	File        string
	Imports     []Node // *LibraryImport, *FileImport or *WildcardImport
	Functions   []*Function
	Structs     []*StructDef
	Enums       []*EnumDef
	Modules     []*ModuleDef
	TypeAliases []*TypeAlias
	FFIBlocks   []*FFIBlock
}

func (*Program) isNode() {}
