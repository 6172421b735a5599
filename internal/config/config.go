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

// Package config resolves the toolchain-wide settings every other
// package depends on but none of them should have an opinion about,
// chiefly VIX_ROOT (spec.md §6, Open Questions).
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config holds resolved paths the rest of the compiler treats as given.
type Config struct {
	// Root is <VIX_ROOT>: the directory holding library/, footprint/ and
	// release/ subtrees.
	Root string
	// Verbose raises the logger to Debug level when true.
	Verbose bool
}

const envRoot = "VIX_ROOT"

// Resolve decides VIX_ROOT using the precedence an explicit flag wins
// over the environment, which wins over the default: flagRoot (from
// --vix-root, empty if unset) > $VIX_ROOT > $HOME/.vix.
func Resolve(flagRoot string, verbose bool) (*Config, error) {
	root := flagRoot
	if root == "" {
		root = os.Getenv(envRoot)
	}
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolving default VIX_ROOT")
		}
		root = filepath.Join(home, ".vix")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving VIX_ROOT %q", root)
	}
	return &Config{Root: abs, Verbose: verbose}, nil
}

// LibraryDir is <VIX_ROOT>/library, the directory libraries are resolved
// under (spec.md §4.5 step 1).
func (c *Config) LibraryDir() string { return filepath.Join(c.Root, "library") }

// FootprintDir is <VIX_ROOT>/footprint, holding the persisted
// libraries.pack ABI manifest.
func (c *Config) FootprintDir() string { return filepath.Join(c.Root, "footprint") }

// FootprintFile is <VIX_ROOT>/footprint/libraries.pack.
func (c *Config) FootprintFile() string { return filepath.Join(c.FootprintDir(), "libraries.pack") }

// ReleaseLibraryBinDir is <VIX_ROOT>/release/library/bin, where compiled
// library object files live.
func (c *Config) ReleaseLibraryBinDir() string {
	return filepath.Join(c.Root, "release", "library", "bin")
}

// ReleaseLibraryCodeDir is <VIX_ROOT>/release/library/code, where the
// emitted C text for a compiled library is kept alongside its object.
func (c *Config) ReleaseLibraryCodeDir() string {
	return filepath.Join(c.Root, "release", "library", "code")
}

// EnsureDirs creates every directory Config names that the pipeline
// writes into, so later steps can assume they exist.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.LibraryDir(), c.FootprintDir(), c.ReleaseLibraryBinDir(), c.ReleaseLibraryCodeDir()}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return errors.Wrapf(err, "creating %s", d)
		}
	}
	return nil
}
