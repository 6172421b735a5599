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

package library

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// PackageInformation is the mandatory "Information" section of a
// library's package.json (spec.md §4.5 step 1).
type PackageInformation struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Publisher string `json:"publisher"`
}

// IncludeSection lists extra flags the external C compiler needs to build
// or link against this library's generated code — e.g. "-lm" for a
// library that calls into libm, or "-I<dir>" for a vendored header tree.
type IncludeSection struct {
	Clang []string `json:"Clang,omitempty"`
}

// SourceFiles is the mandatory "src" section naming the library's
// top-level script entry points.
type SourceFiles struct {
	Scripts []string `json:"scripts"`
}

// PackageJSON is the full parsed shape of a library's package.json
// manifest, grounded on original_source's Library::manager::PackageJson.
type PackageJSON struct {
	Information PackageInformation `json:"Information"`
	Include     IncludeSection     `json:"include"`
	Src         SourceFiles        `json:"src"`
}

// ParsePackageJSON decodes and validates data as a library manifest,
// checking the mandatory fields named in spec.md §4.5 step 1:
// information.{name,version,publisher}, src.scripts.
func ParsePackageJSON(data []byte) (*PackageJSON, error) {
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.Wrap(err, "parsing package.json")
	}
	var missing []string
	if pkg.Information.Name == "" {
		missing = append(missing, "information.name")
	}
	if pkg.Information.Version == "" {
		missing = append(missing, "information.version")
	}
	if pkg.Information.Publisher == "" {
		missing = append(missing, "information.publisher")
	}
	if len(pkg.Src.Scripts) == 0 {
		missing = append(missing, "src.scripts")
	}
	if len(missing) > 0 {
		return nil, errors.Errorf("package.json missing mandatory fields: %s", strings.Join(missing, ", "))
	}
	return &pkg, nil
}

// Metadata is the in-memory record produced by resolving one import
// against <VIX_ROOT>/library: its manifest plus the list of source
// files on disk it names, grounded on LibraryMetadata in
// original_source's Library::manager.
type Metadata struct {
	Name            string
	Version         string
	Publisher       string
	Path            string
	Package         *PackageJSON
	VerifiedScripts []string
	Includes        []string
}

// sourceExtensions are the file extensions collected while walking a
// library's src/ tree (spec.md §4.5 step 2).
var sourceExtensions = map[string]bool{
	".vix": true, ".x": true, ".c": true, ".cpp": true, ".ll": true,
}

// PackageLoader discovers a library's on-disk manifest and source files.
// spec.md treats package discovery as an opaque contract ("PackageLoader
// returning LibraryMetadata"); this interface is that contract. DiskLoader
// is the only implementation this project ships, but Manager depends on
// the interface so a test can substitute an in-memory one without a
// filesystem.
type PackageLoader interface {
	Load(libraryDir, importName string) (*Metadata, error)
}

// DiskLoader is the real PackageLoader: it walks libraryDir looking for a
// matching directory and reads package.json plus the src/ tree straight
// off disk, exactly as Resolve does.
type DiskLoader struct{}

// Load implements PackageLoader by delegating to Resolve.
func (DiskLoader) Load(libraryDir, importName string) (*Metadata, error) {
	return Resolve(libraryDir, importName)
}

// Resolve locates the directory under libraryDir whose name begins
// with importName (case-insensitively), loads and validates its
// package.json, and recursively collects its source files.
func Resolve(libraryDir, importName string) (*Metadata, error) {
	entries, err := os.ReadDir(libraryDir)
	if err != nil {
		return nil, errors.Wrapf(err, "reading library directory %s", libraryDir)
	}
	want := strings.ToLower(importName)
	var dir string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(strings.ToLower(e.Name()), want) {
			dir = filepath.Join(libraryDir, e.Name())
			break
		}
	}
	if dir == "" {
		return nil, errors.Errorf("library %q not found under %s", importName, libraryDir)
	}

	manifestPath := filepath.Join(dir, "package.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", manifestPath)
	}
	pkg, err := ParsePackageJSON(data)
	if err != nil {
		return nil, errors.Wrapf(err, "library %q", importName)
	}

	var scripts []string
	err = filepath.WalkDir(filepath.Join(dir, "src"), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if sourceExtensions[filepath.Ext(path)] {
			scripts = append(scripts, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "collecting sources for library %q", importName)
	}

	return &Metadata{
		Name:            pkg.Information.Name,
		Version:         pkg.Information.Version,
		Publisher:       pkg.Information.Publisher,
		Path:            dir,
		Package:         pkg,
		VerifiedScripts: scripts,
		Includes:        pkg.Include.Clang,
	}, nil
}
