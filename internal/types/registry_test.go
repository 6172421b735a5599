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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

func TestToCTypeIsDeterministic(t *testing.T) {
	r := types.NewRegistry()
	str := types.Str{LenType: types.UsizeT}
	a := r.ToCType(str)
	b := r.ToCType(str)
	assert.Equal(t, a, b)
	assert.Equal(t, "Slice_char", a)
}

func TestForwardDeclarationsAreNotDuplicated(t *testing.T) {
	r := types.NewRegistry()
	opt := types.Option{Inner: types.Int32}
	r.ToCType(opt)
	r.ToCType(opt)
	r.ToCType(opt)
	require.Len(t, r.Forward(), 1)
}

func TestTupleFieldNaming(t *testing.T) {
	r := types.NewRegistry()
	name := r.ToCType(types.Tuple{Fields: []types.Type{types.Int32, types.Bool8}})
	assert.Contains(t, name, "Tuple_2")
}

func TestResultRendersTaggedUnion(t *testing.T) {
	r := types.NewRegistry()
	name := r.ToCType(types.Result{Ok: types.Int32, Err: types.ConstStr{}})
	require.NotEmpty(t, name)
	decl := r.Forward()[0]
	assert.Contains(t, decl, "is_ok")
	assert.Contains(t, decl, "union")
}

func TestEqualDistinguishesArraySizes(t *testing.T) {
	n3 := int64(3)
	n4 := int64(4)
	a := types.Array{Element: types.Int32, Size: &n3}
	b := types.Array{Element: types.Int32, Size: &n4}
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(types.Array{Element: types.Int32, Size: &n3}))
}
