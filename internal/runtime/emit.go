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

package runtime

import "strings"

// Buffer accumulates emitted prelude helper text exactly once each,
// mirroring the original's self.ir.functions.contains(marker) guard
// (functions.rs) so repeated calls from many call sites across a
// translation unit never duplicate a helper definition.
type Buffer struct {
	text strings.Builder
}

// EnsurePush appends PushHelper if vix_push has not already been
// emitted into this Buffer.
func (b *Buffer) EnsurePush() {
	if strings.Contains(b.text.String(), MarkerPush) {
		return
	}
	b.text.WriteString(MallocHelperOnce(&b.text))
	b.text.WriteString(PushHelper)
}

// EnsureExtend appends ExtendHelper if vix_extend has not already been
// emitted into this Buffer.
func (b *Buffer) EnsureExtend() {
	if strings.Contains(b.text.String(), MarkerExtend) {
		return
	}
	b.text.WriteString(MallocHelperOnce(&b.text))
	b.text.WriteString(ExtendHelper)
}

// EnsureStringOps appends StringOpsHelper if vix_str_concat_view has
// not already been emitted into this Buffer.
func (b *Buffer) EnsureStringOps() {
	if strings.Contains(b.text.String(), MarkerStringOps) {
		return
	}
	b.text.WriteString(MallocHelperOnce(&b.text))
	b.text.WriteString(StringOpsHelper)
}

// MallocHelperOnce returns MallocHelper unless sb already contains its
// definition, so the allocator itself is never duplicated across the
// several helpers that depend on it.
func MallocHelperOnce(sb *strings.Builder) string {
	if strings.Contains(sb.String(), "vix_malloc") {
		return ""
	}
	return MallocHelper
}

// String returns every helper emitted so far, in emission order.
func (b *Buffer) String() string { return b.text.String() }
