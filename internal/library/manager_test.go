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

package library_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/config"
	"github.com/VixLanguage/Vix-programing-language/internal/library"
)

type stubFrontEnd struct{ calls int }

func (s *stubFrontEnd) CompileLibrary(ctx context.Context, name, source string) (string, library.FootprintPack, error) {
	s.calls++
	return "/* generated */", library.FootprintPack{
		Name:      name,
		Functions: []string{name + "_greet"},
	}, nil
}

type stubBackend struct{ calls int }

func (s *stubBackend) CompileObject(ctx context.Context, cCode string, includes []string, objPath string) error {
	s.calls++
	return os.WriteFile(objPath, []byte("obj"), 0o644)
}

func writeLibrary(t *testing.T, root, name string) {
	t.Helper()
	dir := filepath.Join(root, "library", name)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	manifest := `{
		"Information": {"name": "` + name + `", "version": "1.0.0", "publisher": "vix"},
		"src": {"scripts": ["main.vix"]},
		"syntax": {"syntax": [], "error": []}
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(manifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.vix"), []byte("func f(): Void end"), 0o644))
}

func TestManagerLoadCompilesAndPersists(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Root: root}
	require.NoError(t, cfg.EnsureDirs())
	writeLibrary(t, root, "core")
	writeLibrary(t, root, "net")

	front := &stubFrontEnd{}
	backend := &stubBackend{}
	mgr := library.NewManager(cfg, front, backend)

	packs, err := mgr.Load(context.Background(), []string{"net"})
	require.NoError(t, err)
	assert.Len(t, packs, 2)
	assert.Equal(t, 2, front.calls)
	assert.Equal(t, 2, backend.calls)

	_, ok := library.Find(packs, "core")
	assert.True(t, ok)
	_, ok = library.Find(packs, "net")
	assert.True(t, ok)
}

func TestManagerLoadSkipsCachedObject(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{Root: root}
	require.NoError(t, cfg.EnsureDirs())
	writeLibrary(t, root, "core")

	front := &stubFrontEnd{}
	backend := &stubBackend{}
	mgr := library.NewManager(cfg, front, backend)

	_, err := mgr.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, front.calls)

	_, err = mgr.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, front.calls, "second load should hit the object cache and skip recompilation")
}
