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

package runtime_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VixLanguage/Vix-programing-language/internal/runtime"
)

func TestEnsurePushIsIdempotent(t *testing.T) {
	var buf runtime.Buffer
	buf.EnsurePush()
	buf.EnsurePush()
	buf.EnsurePush()
	assert.Equal(t, 1, strings.Count(buf.String(), "#define vix_push"))
}

func TestMallocHelperEmittedOnceAcrossHelpers(t *testing.T) {
	var buf runtime.Buffer
	buf.EnsurePush()
	buf.EnsureExtend()
	buf.EnsureStringOps()
	assert.Equal(t, 1, strings.Count(buf.String(), "vix_malloc(size_t size)"))
}
