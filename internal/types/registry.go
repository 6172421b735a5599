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

package types

import (
	"fmt"
	"strings"
)

// Registry synthesizes canonical C type names for Type values and
// collects the forward declarations (typedefs, struct bodies) those
// names require, spec.md §4.3. A Registry is not safe for concurrent
// use, matching the rest of the code generator's single-threaded
// per-compilation-unit design.
type Registry struct {
	forward  []string          // emitted forward declarations, in order
	declared map[string]bool   // set of type names whose decl has already been appended
	tuples   map[string]string // cache of Tuple hash -> mangled name, to dedup across calls
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{declared: make(map[string]bool), tuples: make(map[string]string)}
}

// Forward returns every forward declaration emitted so far, in emission
// order and free of duplicates (the no-duplicate invariant, spec.md
// §4.3).
func (r *Registry) Forward() []string {
	out := make([]string, len(r.forward))
	copy(out, r.forward)
	return out
}

// add appends decl to the forward buffer unless a declaration for the
// same name key has already been recorded.
func (r *Registry) add(name, decl string) {
	if r.declared[name] {
		return
	}
	r.declared[name] = true
	r.forward = append(r.forward, decl)
}

// ToCType returns the canonical C spelling of t, recording any forward
// declarations t requires as a side effect. Calling ToCType twice on
// structurally equal types returns byte-identical strings and never
// appends a duplicate forward declaration.
func (r *Registry) ToCType(t Type) string {
	switch v := t.(type) {
	case Int:
		return cIntName(v)
	case Float:
		if v.Bits == 32 {
			return "float"
		}
		return "double"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case Void:
		return "void"
	case Usize:
		return "size_t"
	case Any:
		return "void*"
	case TripleDot:
		return "..."
	case Trait:
		// Traits never survive to code generation as a standalone type;
		// callers should have already resolved this to a concrete Struct.
		return "void*"
	case SelfType:
		return "void*"
	case ConstStr:
		return "const char*"
	case StdStr:
		// StdStr shares Str's Slice_char representation: original_source's
		// codegen_str_append_zero_alloc is one routine serving both, so
		// they must render to one assignment-compatible C type.
		name := "Slice_char"
		r.add(name, "typedef struct { const char* ptr; size_t len; } "+name+";")
		return name
	case Str:
		name := "Slice_char"
		r.add(name, "typedef struct { const char* ptr; size_t len; } "+name+";")
		return name
	case Ptr:
		return r.ToCType(v.Elem) + "*"
	case RawPtr:
		return r.ToCType(v.Elem) + "*"
	case Ref:
		return "const " + r.ToCType(v.Elem) + "*"
	case MutRef:
		return r.ToCType(v.Elem) + "*"
	case Owned:
		return r.ToCType(v.Elem)
	case Const:
		return "const " + r.ToCType(v.Elem)
	case Array:
		return r.arrayCType(v)
	case MultiArray:
		return r.ToCType(v.Element)
	case Tuple:
		return r.tupleCType(v)
	case HashMap:
		return r.hashMapCType(v)
	case Option:
		return r.optionCType(v)
	case Result:
		return r.resultCType(v)
	case Union:
		return r.unionCType(v)
	case Intersection:
		// Intersections only constrain generic parameters; by code
		// generation time the concrete struct satisfying them is known.
		if len(v.Types) > 0 {
			return r.ToCType(v.Types[0])
		}
		return "void*"
	case Struct:
		return v.Name
	case Auto:
		// The caller must resolve Auto before requesting a C name;
		// emitting "void" here would silently miscompile, so this is a
		// deliberate, visible placeholder instead.
		return "/* unresolved auto */void"
	default:
		return fmt.Sprintf("/* unknown type %T */void", t)
	}
}

func cIntName(t Int) string {
	prefix := "int"
	if !t.Signed {
		prefix = "uint"
	}
	return fmt.Sprintf("%s%d_t", prefix, t.Bits)
}

// mangle turns a C type name into an identifier-safe fragment usable
// inside a generated type name (pointers, spaces and underscores from
// nested names collapse to single underscores).
func mangle(cName string) string {
	var sb strings.Builder
	prevUnderscore := false
	for _, r := range cName {
		var out rune
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = r
		default:
			out = '_'
		}
		if out == '_' && prevUnderscore {
			continue
		}
		sb.WriteRune(out)
		prevUnderscore = out == '_'
	}
	return strings.Trim(sb.String(), "_")
}

func (r *Registry) arrayCType(a Array) string {
	elemC := r.ToCType(a.Element)
	if a.Size != nil {
		// Sized arrays render inline at the declaration site (T[N]); the
		// registry still returns the element type so callers can splice
		// the "[N]" suffix themselves where the C grammar demands it.
		return elemC
	}
	name := "Slice_" + mangle(elemC)
	r.add(name, fmt.Sprintf("typedef struct { %s* ptr; size_t len; } %s;", elemC, name))
	return name
}

func (r *Registry) tupleCType(t Tuple) string {
	parts := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		parts[i] = r.ToCType(f)
	}
	key := strings.Join(parts, ",")
	if name, ok := r.tuples[key]; ok {
		return name
	}
	name := fmt.Sprintf("Tuple_%d_%s", len(parts), mangle(strings.Join(parts, "_")))
	var body strings.Builder
	fmt.Fprintf(&body, "typedef struct { ")
	for i, c := range parts {
		fmt.Fprintf(&body, "%s field_%d; ", c, i)
	}
	fmt.Fprintf(&body, "} %s;", name)
	r.add(name, body.String())
	r.tuples[key] = name
	return name
}

func (r *Registry) hashMapCType(h HashMap) string {
	keyC := r.ToCType(h.Key)
	valC := r.ToCType(h.Value)
	name := "HashMap_" + mangle(keyC) + "_" + mangle(valC)
	r.add(name, "typedef struct "+name+"_impl* "+name+";")
	return name
}

func (r *Registry) optionCType(o Option) string {
	innerC := r.ToCType(o.Inner)
	name := "Option_" + mangle(innerC)
	r.add(name, fmt.Sprintf("typedef struct { bool has_value; %s value; } %s;", innerC, name))
	return name
}

func (r *Registry) resultCType(res Result) string {
	okC := r.ToCType(res.Ok)
	errC := r.ToCType(res.Err)
	name := "Result_" + mangle(okC) + "_" + mangle(errC)
	r.add(name, fmt.Sprintf(
		"typedef struct { bool is_ok; union { %s ok; %s err; } value; } %s;", okC, errC, name))
	return name
}

func (r *Registry) unionCType(u Union) string {
	parts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		parts[i] = r.ToCType(v)
	}
	name := "Union_" + mangle(strings.Join(parts, "_"))
	var body strings.Builder
	fmt.Fprintf(&body, "typedef union { ")
	for i, c := range parts {
		fmt.Fprintf(&body, "%s variant_%d; ", c, i)
	}
	fmt.Fprintf(&body, "} %s;", name)
	r.add(name, body.String())
	return name
}
