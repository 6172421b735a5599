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

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmdRegistersSubcommands(t *testing.T) {
	root := rootCmd()
	assert.Equal(t, "vixc", root.Use)

	build, _, err := root.Find([]string{"build"})
	require.NoError(t, err)
	assert.Equal(t, "build <file.vix>", build.Use)

	libs, _, err := root.Find([]string{"libs"})
	require.NoError(t, err)
	assert.Equal(t, "libs", libs.Use)
}

func TestRootCmdPersistentFlags(t *testing.T) {
	root := rootCmd()
	assert.NotNil(t, root.PersistentFlags().Lookup("vix-root"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestBuildRequiresExactlyOneArg(t *testing.T) {
	root := rootCmd()
	root.SetArgs([]string{"build"})
	err := root.Execute()
	assert.Error(t, err, "build with no source file should fail argument validation")
}
