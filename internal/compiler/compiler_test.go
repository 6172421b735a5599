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

package compiler_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/compiler"
	"github.com/VixLanguage/Vix-programing-language/internal/library"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
)

func TestCompileLibraryProducesFootprintAndCCode(t *testing.T) {
	front := compiler.NewFrontEnd()
	cCode, pack, err := front.CompileLibrary(context.Background(), "net", `
pub struct Conn
	fd: i32
end

pub func dial(host: str): i32
	return 0
end

func helper(): i32
	return 1
end
`)
	require.NoError(t, err)
	assert.Contains(t, cCode, "dial")
	assert.NotContains(t, cCode, "int32_t helper")

	assert.Equal(t, "net", pack.Name)
	assert.Contains(t, pack.Classes, "Conn")
	assert.Contains(t, pack.Functions, "dial")
	assert.NotContains(t, pack.Functions, "helper", "a non-pub function must not appear in the footprint")

	var sig *library.FunctionSignature
	for i := range pack.FunctionSignatures {
		if pack.FunctionSignatures[i].Name == "dial" {
			sig = &pack.FunctionSignatures[i]
		}
	}
	require.NotNil(t, sig)
	assert.Equal(t, "int32_t", sig.ReturnType)
}

func TestCompileLibraryFailsOnParseError(t *testing.T) {
	front := compiler.NewFrontEnd()
	_, _, err := front.CompileLibrary(context.Background(), "broken", `func`)
	assert.Error(t, err)
}

func TestCompileProgramResolvesDependencySymbols(t *testing.T) {
	deps := []library.FootprintPack{
		{Name: "net", SourceLibrary: "net", Functions: []string{"dial"}},
	}
	file := source.NewFile("main.vix", `
import net

func main(): i32
	return dial("h")
end
`)
	cCode, diags, err := compiler.CompileProgram(context.Background(), file, deps)
	require.NoError(t, err)
	assert.False(t, diags.HasErrors(), "dial should resolve through the net library's footprint")
	assert.Contains(t, cCode, "main()")
}

func TestCompileProgramFlagsUndefinedCall(t *testing.T) {
	file := source.NewFile("main.vix", `
func main(): i32
	return totally_unknown(1)
end
`)
	_, diags, err := compiler.CompileProgram(context.Background(), file, nil)
	require.NoError(t, err)
	require.True(t, diags.HasErrors())
	found := false
	for _, d := range diags.All() {
		if strings.Contains(d.Message, "totally_unknown") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCollectIncludeFlagsDedupsAcrossLibraries(t *testing.T) {
	packs := []library.FootprintPack{
		{Name: "a", Includes: []string{"-lm"}},
		{Name: "b", Includes: []string{"-lm", "-lpthread"}},
	}
	flags := compiler.CollectIncludeFlags(packs)
	assert.Len(t, flags, 2)
}
