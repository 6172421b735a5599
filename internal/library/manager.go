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
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/VixLanguage/Vix-programing-language/internal/config"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
)

// FrontEnd compiles one library's concatenated Vix source into a single
// C translation unit and the FootprintPack describing its public ABI.
// The real implementation lives in the top-level compiler package, which
// wires the lexer, parser and code generator together; library stays
// decoupled from them so a test can supply a stub.
type FrontEnd interface {
	CompileLibrary(ctx context.Context, name, source string) (cCode string, pack FootprintPack, err error)
}

// CBackend turns emitted C text into an object file. Its concrete
// implementation (an os/exec call to clang) is compiler.ClangBackend in
// internal/compiler; spec.md
// treats the external C compiler invocation as an opaque contract.
type CBackend interface {
	CompileObject(ctx context.Context, cCode string, includes []string, objPath string) error
}

// Manager drives the per-library pipeline of spec.md §4.5: resolve,
// collect sources, compile, cache, extract symbols, persist.
type Manager struct {
	cfg     *config.Config
	front   FrontEnd
	backend CBackend
	loader  PackageLoader
}

// NewManager returns a Manager using cfg's VIX_ROOT layout, front as the
// Vix-to-C front end and backend as the C object compiler. Package
// discovery uses DiskLoader; use NewManagerWithLoader to substitute
// another PackageLoader (e.g. in a test with no real filesystem).
func NewManager(cfg *config.Config, front FrontEnd, backend CBackend) *Manager {
	return NewManagerWithLoader(cfg, front, backend, DiskLoader{})
}

// NewManagerWithLoader is NewManager with an explicit PackageLoader.
func NewManagerWithLoader(cfg *config.Config, front FrontEnd, backend CBackend, loader PackageLoader) *Manager {
	return &Manager{cfg: cfg, front: front, backend: backend, loader: loader}
}

// objectExtension is the platform object file suffix used when naming
// cached library object files.
const objectExtension = ".o"

// Load resolves and, if needed, (re)compiles every library named in
// importNames, always loading "core" first regardless of whether it
// appears in importNames (spec.md §4.5: "core... is always loaded
// first"). It returns the FootprintPack set resolved for this compile
// and persists exactly that set to the footprint manifest, overwriting
// whatever was there before (original_source's save_footprint_libraries
// is a plain whole-vector write, never a read-modify-write merge).
func (m *Manager) Load(ctx context.Context, importNames []string) ([]FootprintPack, error) {
	ctx = diag.Phase(ctx, "library")
	log := diag.FromContext(ctx)

	names := append([]string{"core"}, withoutCore(importNames)...)

	resolved := make([]FootprintPack, 0, len(names))
	for _, name := range names {
		pack, err := m.loadOne(ctx, name)
		if err != nil {
			return nil, errors.Wrapf(err, "loading library %q", name)
		}
		resolved = append(resolved, pack)
	}

	if err := SaveFootprints(m.cfg.FootprintFile(), resolved); err != nil {
		return nil, err
	}
	log.WithField("count", len(resolved)).Debug("footprint manifest persisted")
	return resolved, nil
}

func withoutCore(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "core" {
			out = append(out, n)
		}
	}
	return out
}

// loadOne runs steps 1-5 of spec.md §4.5 for a single library name;
// step 6 (persisting the manifest) is done once by Load.
func (m *Manager) loadOne(ctx context.Context, name string) (FootprintPack, error) {
	log := diag.FromContext(ctx).WithField("library", name)

	meta, err := m.loader.Load(m.cfg.LibraryDir(), name)
	if err != nil {
		return FootprintPack{}, err
	}

	objPath := filepath.Join(m.cfg.ReleaseLibraryBinDir(), meta.Name+"-"+meta.Version+objectExtension)
	if cached, err := isCached(objPath, meta.VerifiedScripts); err != nil {
		return FootprintPack{}, err
	} else if cached {
		log.Debug("library object cache hit, skipping recompilation")
		return m.loadCachedFootprint(meta)
	}

	source, err := concatSources(meta.VerifiedScripts)
	if err != nil {
		return FootprintPack{}, err
	}

	cCode, pack, err := m.front.CompileLibrary(ctx, meta.Name, source)
	if err != nil {
		return FootprintPack{}, errors.Wrapf(err, "compiling library %q", meta.Name)
	}
	pack.Publisher = meta.Publisher
	pack.Version = meta.Version
	pack.SourceLibrary = meta.Name
	pack.Includes = append(pack.Includes, meta.Includes...)

	codePath := filepath.Join(m.cfg.ReleaseLibraryCodeDir(), meta.Name+"-"+meta.Version+".c")
	if err := os.WriteFile(codePath, []byte(cCode), 0o644); err != nil {
		return FootprintPack{}, errors.Wrapf(err, "writing emitted C for %q", meta.Name)
	}

	if err := os.MkdirAll(filepath.Dir(objPath), 0o755); err != nil {
		return FootprintPack{}, errors.Wrap(err, "creating library object directory")
	}
	if m.backend != nil {
		if err := m.backend.CompileObject(ctx, cCode, pack.Includes, objPath); err != nil {
			return FootprintPack{}, errors.Wrapf(err, "compiling object for library %q", meta.Name)
		}
	}

	log.WithField("functions", len(pack.Functions)).Debug("library compiled")
	return pack, nil
}

// isCached reports whether objPath exists and is newer than every file
// in scripts (spec.md §4.5 step 4: "skip recompilation" on a fresh
// cache hit).
func isCached(objPath string, scripts []string) (bool, error) {
	objInfo, err := os.Stat(objPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "stat %s", objPath)
	}
	for _, s := range scripts {
		srcInfo, err := os.Stat(s)
		if err != nil {
			return false, errors.Wrapf(err, "stat %s", s)
		}
		if srcInfo.ModTime().After(objInfo.ModTime()) {
			return false, nil
		}
	}
	return true, nil
}

// loadCachedFootprint recovers a FootprintPack for a cache-hit library
// from the persisted manifest rather than recompiling — a genuinely
// missing entry is a broken cache, not a silent success.
func (m *Manager) loadCachedFootprint(meta *Metadata) (FootprintPack, error) {
	existing, err := LoadFootprints(m.cfg.FootprintFile())
	if err != nil {
		return FootprintPack{}, err
	}
	if pack, ok := Find(existing, meta.Name); ok {
		return pack, nil
	}
	return FootprintPack{}, errors.Errorf(
		"library %q has a cached object but no footprint entry; delete its object file to force recompilation", meta.Name)
}

// concatSources reads every .vix/.x source file in scripts in order and
// concatenates them with a blank-line separator, matching the original
// implementation's source assembly (spec.md §4.5 step 3).
func concatSources(scripts []string) (string, error) {
	var sb strings.Builder
	for _, path := range scripts {
		ext := filepath.Ext(path)
		if ext != ".vix" && ext != ".x" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "reading %s", path)
		}
		sb.Write(data)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}
