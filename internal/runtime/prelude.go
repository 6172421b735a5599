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

// Package runtime holds the fixed C17 support text the code generator
// splices into every emitted translation unit: the vix_push/vix_extend
// _Generic dispatch macros, the arena-backed string append helpers, and
// a tiny bump allocator. Content is carried over verbatim from
// original_source/src/Gen/build/helper/functions.rs — it is C text, not
// Go, so "grounding" here means byte-for-byte fidelity to what the
// original compiler emits, not idiomatic translation.
package runtime

// MarkerPush, MarkerExtend and MarkerStringOps are the substrings the
// code generator searches the accumulated function buffer for before
// appending a prelude block, mirroring the original's
// self.ir.functions.contains("vix_push") / "vix_extend" /
// "vix_str_concat_view" idempotence checks.
const (
	MarkerPush      = "vix_push"
	MarkerExtend    = "vix_extend"
	MarkerStringOps = "vix_str_concat_view"
)

// PushHelper defines the vix_push(arr, elem) macro and its _Generic
// dispatch table over every Slice_<T> the registry can produce, plus
// the growing-reallocation implementation it dispatches to.
const PushHelper = `
#define vix_push(arr, elem) _Generic((arr), \
    Slice_int8: vix_push_impl(arr, &(elem), sizeof(int8_t)), \
    Slice_int16: vix_push_impl(arr, &(elem), sizeof(int16_t)), \
    Slice_int32: vix_push_impl(arr, &(elem), sizeof(int32_t)), \
    Slice_int64: vix_push_impl(arr, &(elem), sizeof(int64_t)), \
    Slice_uint8: vix_push_impl(arr, &(elem), sizeof(uint8_t)), \
    Slice_uint16: vix_push_impl(arr, &(elem), sizeof(uint16_t)), \
    Slice_uint32: vix_push_impl(arr, &(elem), sizeof(uint32_t)), \
    Slice_uint64: vix_push_impl(arr, &(elem), sizeof(uint64_t)), \
    Slice_float: vix_push_impl(arr, &(elem), sizeof(float)), \
    Slice_double: vix_push_impl(arr, &(elem), sizeof(double)), \
    Slice_char: vix_push_impl(arr, &(elem), sizeof(char)), \
    default: vix_push_impl(arr, &(elem), sizeof(elem)) \
)

static inline void* vix_push_impl(void* arr_ptr, const void* elem_ptr, size_t elem_size) {
    typedef struct {
        void* ptr;
        size_t len;
    } GenericSlice;

    GenericSlice* arr = (GenericSlice*)arr_ptr;
    size_t new_len = arr->len + 1;

    void* new_ptr = vix_malloc(new_len * elem_size);

    if (arr->len > 0) {
        memcpy(new_ptr, arr->ptr, arr->len * elem_size);
    }

    memcpy((char*)new_ptr + (arr->len * elem_size), elem_ptr, elem_size);

    arr->ptr = new_ptr;
    arr->len = new_len;

    return arr_ptr;
}
`

// ExtendHelper defines the vix_extend(dest, src) macro analogously to
// PushHelper, appending one slice's contents onto another.
const ExtendHelper = `
#define vix_extend(dest, src) _Generic((dest), \
    Slice_int8: vix_extend_impl(&(dest), &(src), sizeof(int8_t)), \
    Slice_int16: vix_extend_impl(&(dest), &(src), sizeof(int16_t)), \
    Slice_int32: vix_extend_impl(&(dest), &(src), sizeof(int32_t)), \
    Slice_int64: vix_extend_impl(&(dest), &(src), sizeof(int64_t)), \
    Slice_uint8: vix_extend_impl(&(dest), &(src), sizeof(uint8_t)), \
    Slice_uint16: vix_extend_impl(&(dest), &(src), sizeof(uint16_t)), \
    Slice_uint32: vix_extend_impl(&(dest), &(src), sizeof(uint32_t)), \
    Slice_uint64: vix_extend_impl(&(dest), &(src), sizeof(uint64_t)), \
    Slice_float: vix_extend_impl(&(dest), &(src), sizeof(float)), \
    Slice_double: vix_extend_impl(&(dest), &(src), sizeof(double)), \
    Slice_char: vix_extend_impl(&(dest), &(src), sizeof(char)), \
    default: vix_extend_impl(&(dest), &(src), sizeof(*(dest).ptr)) \
)

static inline void vix_extend_impl(void* dest_ptr, const void* src_ptr, size_t elem_size) {
    typedef struct {
        void* ptr;
        size_t len;
    } GenericSlice;

    GenericSlice* dest = (GenericSlice*)dest_ptr;
    const GenericSlice* src = (const GenericSlice*)src_ptr;

    if (src->len == 0) return;

    size_t new_len = dest->len + src->len;

    void* new_ptr = vix_malloc(new_len * elem_size);

    if (dest->len > 0) {
        memcpy(new_ptr, dest->ptr, dest->len * elem_size);
    }

    memcpy((char*)new_ptr + (dest->len * elem_size), src->ptr, src->len * elem_size);

    dest->ptr = new_ptr;
    dest->len = new_len;
}
`

// StringOpsHelper defines the zero-allocation string helpers:
// thread-local ring-buffer concatenation for read-once temporaries,
// in-place arena-backed append for "+=" on Str values, and the bump
// allocator both (and struct construction of owned strings) draw from.
const StringOpsHelper = `
static Slice_char vix_str_concat_view(Slice_char s1, Slice_char s2) {
    static __thread char buffer[8192];
    static __thread size_t offset = 0;

    size_t total = s1.len + s2.len;

    if (offset + total >= sizeof(buffer)) {
        offset = 0;
    }

    memcpy(buffer + offset, s1.ptr, s1.len);
    memcpy(buffer + offset + s1.len, s2.ptr, s2.len);

    Slice_char result;
    result.ptr = buffer + offset;
    result.len = total;

    offset += total;

    return result;
}

static inline void vix_str_append_inplace(Slice_char* dest, Slice_char src) {

    static __thread char extend_buf[8192];
    static __thread size_t extend_offset = 0;

    size_t total = dest->len + src.len;

    if (extend_offset + total >= sizeof(extend_buf)) {
        extend_offset = 0;
    }

    memcpy(extend_buf + extend_offset, dest->ptr, dest->len);
    memcpy(extend_buf + extend_offset + dest->len, src.ptr, src.len);

    dest->ptr = extend_buf + extend_offset;
    dest->len = total;

    extend_offset += total;
}

typedef struct {
    char* base;
    size_t offset;
    size_t capacity;
} Arena;

static Arena global_arena = {0};

static inline void vix_arena_init(size_t capacity) {
    if (!global_arena.base) {
        global_arena.base = (char*)vix_malloc(capacity);
        global_arena.capacity = capacity;
        global_arena.offset = 0;
    }
}

static inline char* vix_arena_alloc(size_t size) {
    if (global_arena.offset + size > global_arena.capacity) {
        global_arena.offset = 0;
    }

    char* ptr = global_arena.base + global_arena.offset;
    global_arena.offset += size;
    return ptr;
}

static Slice_char vix_str_concat_arena(Slice_char s1, Slice_char s2) {
    size_t total = s1.len + s2.len;
    char* ptr = vix_arena_alloc(total);

    memcpy(ptr, s1.ptr, s1.len);
    memcpy(ptr + s1.len, s2.ptr, s2.len);

    Slice_char result;
    result.ptr = ptr;
    result.len = total;
    return result;
}
`

// Headers lists the fixed C standard headers every generated
// translation unit needs for the prelude above to compile, regardless
// of whether a given unit ends up using every helper.
var Headers = []string{"stdio.h", "stdlib.h", "stdint.h", "stdbool.h", "string.h"}

// MallocHelper defines vix_malloc, the single allocation point every
// prelude helper funnels through so a future instrumented build can
// swap it for a tracking allocator without touching call sites.
const MallocHelper = `
static inline void* vix_malloc(size_t size) {
    void* ptr = malloc(size);
    if (!ptr) {
        fprintf(stderr, "vix: out of memory\n");
        exit(1);
    }
    return ptr;
}
`
