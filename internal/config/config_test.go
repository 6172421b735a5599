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

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/config"
)

func TestFlagTakesPrecedenceOverEnv(t *testing.T) {
	t.Setenv("VIX_ROOT", "/from/env")
	c, err := config.Resolve("/from/flag", false)
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", c.Root)
}

func TestEnvTakesPrecedenceOverDefault(t *testing.T) {
	t.Setenv("VIX_ROOT", "/from/env")
	c, err := config.Resolve("", false)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", c.Root)
}

func TestDefaultFallsBackToHome(t *testing.T) {
	t.Setenv("VIX_ROOT", "")
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := config.Resolve("", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".vix"), c.Root)
}

func TestDerivedPaths(t *testing.T) {
	c := &config.Config{Root: "/vix"}
	assert.Equal(t, "/vix/library", c.LibraryDir())
	assert.Equal(t, "/vix/footprint/libraries.pack", c.FootprintFile())
	assert.Equal(t, "/vix/release/library/bin", c.ReleaseLibraryBinDir())
}
