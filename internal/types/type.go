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

// Package types holds the recursive sum type that models every Vix type,
// spec.md §3.2, plus the Registry that synthesizes its canonical C
// rendering, spec.md §4.3. The approach — a closed interface with one
// concrete struct per variant and a type switch doing the dispatch —
// mirrors the teacher's gapil/semantic type hierarchy (type.go, pointer.go,
// map.go, ...), generalized here into a single file since Vix has no
// separate semantic-resolution pass producing these nodes incrementally.
package types

import "fmt"

// Type is implemented by every type variant. Two Type values describing
// the same type must be Equal and must render identical C names.
type Type interface {
	isType()
	// Equal reports structural equality with other.
	Equal(other Type) bool
	// String renders a human-readable (not C) form, used in diagnostics.
	String() string
}

// Int is a fixed-width integer, signed or unsigned.
type Int struct {
	Bits   int
	Signed bool
}

func (Int) isType() {}
func (t Int) Equal(o Type) bool {
	u, ok := o.(Int)
	return ok && u.Bits == t.Bits && u.Signed == t.Signed
}
func (t Int) String() string {
	if t.Signed {
		return fmt.Sprintf("Int%d", t.Bits)
	}
	return fmt.Sprintf("UInt%d", t.Bits)
}

// Float is a fixed-width IEEE-754 floating point type.
type Float struct{ Bits int }

func (Float) isType() {}
func (t Float) Equal(o Type) bool { u, ok := o.(Float); return ok && u.Bits == t.Bits }
func (t Float) String() string    { return fmt.Sprintf("Float%d", t.Bits) }

// Bool is the boolean type.
type Bool struct{}

func (Bool) isType()              {}
func (Bool) Equal(o Type) bool    { _, ok := o.(Bool); return ok }
func (Bool) String() string       { return "Bool" }

// Char is a fixed-width character type (usually 8 bits).
type Char struct{ Bits int }

func (Char) isType() {}
func (t Char) Equal(o Type) bool { u, ok := o.(Char); return ok && u.Bits == t.Bits }
func (t Char) String() string    { return "Char" }

// Void is the absence of a value, used as a function return type.
type Void struct{}

func (Void) isType()           {}
func (Void) Equal(o Type) bool { _, ok := o.(Void); return ok }
func (Void) String() string    { return "Void" }

// Usize is the pointer-sized unsigned integer (C's size_t).
type Usize struct{}

func (Usize) isType()           {}
func (Usize) Equal(o Type) bool { _, ok := o.(Usize); return ok }
func (Usize) String() string    { return "Usize" }

// Any is the universal top type, used by FFI signatures and intrinsics
// that are not statically typed.
type Any struct{}

func (Any) isType()           {}
func (Any) Equal(o Type) bool { _, ok := o.(Any); return ok }
func (Any) String() string    { return "Any" }

// TripleDot marks a variadic "..." parameter in an FFI signature.
type TripleDot struct{}

func (TripleDot) isType()           {}
func (TripleDot) Equal(o Type) bool { _, ok := o.(TripleDot); return ok }
func (TripleDot) String() string    { return "..." }

// Trait names a trait/interface constraint, used only in signature
// position — it never reaches code generation directly.
type Trait struct{ Name string }

func (Trait) isType() {}
func (t Trait) Equal(o Type) bool { u, ok := o.(Trait); return ok && u.Name == t.Name }
func (t Trait) String() string    { return t.Name }

// SelfType is the placeholder type used inside a trait/impl body to
// refer to the implementing struct before it is known.
type SelfType struct{}

func (SelfType) isType()           {}
func (SelfType) Equal(o Type) bool { _, ok := o.(SelfType); return ok }
func (SelfType) String() string    { return "Self" }

// ConstStr is a C string literal type (`const char*`).
type ConstStr struct{}

func (ConstStr) isType()           {}
func (ConstStr) Equal(o Type) bool { _, ok := o.(ConstStr); return ok }
func (ConstStr) String() string    { return "ConstStr" }

// Str is a length-prefixed slice of a given element type, rendered as a
// `{ptr,len}` struct. LenType is normally Usize.
type Str struct{ LenType Type }

func (Str) isType() {}
func (t Str) Equal(o Type) bool {
	u, ok := o.(Str)
	return ok && typeEqual(u.LenType, t.LenType)
}
func (t Str) String() string { return "Str" }

// StdStr is a heap-allocated growable string — deprecated in no-OS
// builds but still accepted by the parser and type-checked normally.
type StdStr struct{}

func (StdStr) isType()           {}
func (StdStr) Equal(o Type) bool { _, ok := o.(StdStr); return ok }
func (StdStr) String() string    { return "StdStr" }

// Ptr is a managed, non-null pointer to T.
type Ptr struct{ Elem Type }

func (Ptr) isType() {}
func (t Ptr) Equal(o Type) bool { u, ok := o.(Ptr); return ok && typeEqual(u.Elem, t.Elem) }
func (t Ptr) String() string    { return "Ptr(" + t.Elem.String() + ")" }

// RawPtr is an unmanaged, possibly-null pointer to T; only constructible
// inside an Unsafe block.
type RawPtr struct{ Elem Type }

func (RawPtr) isType() {}
func (t RawPtr) Equal(o Type) bool { u, ok := o.(RawPtr); return ok && typeEqual(u.Elem, t.Elem) }
func (t RawPtr) String() string    { return "RawPtr(" + t.Elem.String() + ")" }

// Ref is a shared, read-only reference to T.
type Ref struct{ Elem Type }

func (Ref) isType() {}
func (t Ref) Equal(o Type) bool { u, ok := o.(Ref); return ok && typeEqual(u.Elem, t.Elem) }
func (t Ref) String() string    { return "&" + t.Elem.String() }

// MutRef is an exclusive, mutable reference to T.
type MutRef struct{ Elem Type }

func (MutRef) isType() {}
func (t MutRef) Equal(o Type) bool { u, ok := o.(MutRef); return ok && typeEqual(u.Elem, t.Elem) }
func (t MutRef) String() string    { return "&mut " + t.Elem.String() }

// Owned marks a value whose destruction is the owner's responsibility;
// carried through for drop-ordering analysis, erased at code generation.
type Owned struct{ Elem Type }

func (Owned) isType() {}
func (t Owned) Equal(o Type) bool { u, ok := o.(Owned); return ok && typeEqual(u.Elem, t.Elem) }
func (t Owned) String() string    { return "Owned(" + t.Elem.String() + ")" }

// Const marks a type as immutable; `const str` is a dedicated parse
// shorthand for ConstStr rather than Const{Str}.
type Const struct{ Elem Type }

func (Const) isType() {}
func (t Const) Equal(o Type) bool { u, ok := o.(Const); return ok && typeEqual(u.Elem, t.Elem) }
func (t Const) String() string    { return "const " + t.Elem.String() }

// Array is a fixed- or unsized sequence of Element. Size == nil means an
// unsized slice `{ptr,len}`; Size != nil means a genuine C array `T[N]`.
type Array struct {
	Element Type
	Size    *int64
}

func (Array) isType() {}
func (t Array) Equal(o Type) bool {
	u, ok := o.(Array)
	if !ok || !typeEqual(u.Element, t.Element) {
		return false
	}
	switch {
	case t.Size == nil && u.Size == nil:
		return true
	case t.Size != nil && u.Size != nil:
		return *t.Size == *u.Size
	default:
		return false
	}
}
func (t Array) String() string {
	if t.Size == nil {
		return t.Element.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", t.Element.String(), *t.Size)
}

// MultiArray is a multi-dimensional fixed array, each dimension sized.
type MultiArray struct {
	Element Type
	Dims    []int64
}

func (MultiArray) isType() {}
func (t MultiArray) Equal(o Type) bool {
	u, ok := o.(MultiArray)
	if !ok || !typeEqual(u.Element, t.Element) || len(u.Dims) != len(t.Dims) {
		return false
	}
	for i := range t.Dims {
		if t.Dims[i] != u.Dims[i] {
			return false
		}
	}
	return true
}
func (t MultiArray) String() string { return fmt.Sprintf("%s%v", t.Element.String(), t.Dims) }

// Tuple is a fixed-arity, heterogeneous aggregate.
type Tuple struct{ Fields []Type }

func (Tuple) isType() {}
func (t Tuple) Equal(o Type) bool {
	u, ok := o.(Tuple)
	if !ok || len(u.Fields) != len(t.Fields) {
		return false
	}
	for i := range t.Fields {
		if !typeEqual(t.Fields[i], u.Fields[i]) {
			return false
		}
	}
	return true
}
func (t Tuple) String() string { return fmt.Sprintf("Tuple%v", t.Fields) }

// Struct names a user-defined struct; its field layout lives in the code
// generator's struct symbol table, not here.
type Struct struct{ Name string }

func (Struct) isType() {}
func (t Struct) Equal(o Type) bool { u, ok := o.(Struct); return ok && u.Name == t.Name }
func (t Struct) String() string    { return t.Name }

// Option is an optional value, rendered as a tagged `{has_value,value}`.
type Option struct{ Inner Type }

func (Option) isType() {}
func (t Option) Equal(o Type) bool { u, ok := o.(Option); return ok && typeEqual(u.Inner, t.Inner) }
func (t Option) String() string    { return "Option(" + t.Inner.String() + ")" }

// Result is a tagged union of Ok/Err, rendered as `{is_ok, union{ok,err}}`.
type Result struct{ Ok, Err Type }

func (Result) isType() {}
func (t Result) Equal(o Type) bool {
	u, ok := o.(Result)
	return ok && typeEqual(u.Ok, t.Ok) && typeEqual(u.Err, t.Err)
}
func (t Result) String() string { return fmt.Sprintf("Result(%s,%s)", t.Ok, t.Err) }

// HashMap is an opaque-handle map type.
type HashMap struct{ Key, Value Type }

func (HashMap) isType() {}
func (t HashMap) Equal(o Type) bool {
	u, ok := o.(HashMap)
	return ok && typeEqual(u.Key, t.Key) && typeEqual(u.Value, t.Value)
}
func (t HashMap) String() string { return fmt.Sprintf("HashMap(%s,%s)", t.Key, t.Value) }

// Union is a sum of alternative types, `A | B | C`.
type Union struct{ Variants []Type }

func (Union) isType() {}
func (t Union) Equal(o Type) bool {
	u, ok := o.(Union)
	if !ok || len(u.Variants) != len(t.Variants) {
		return false
	}
	for i := range t.Variants {
		if !typeEqual(t.Variants[i], u.Variants[i]) {
			return false
		}
	}
	return true
}
func (t Union) String() string { return fmt.Sprintf("Union%v", t.Variants) }

// Intersection is a conjunction of trait/struct constraints, `A & B`.
type Intersection struct{ Types []Type }

func (Intersection) isType() {}
func (t Intersection) Equal(o Type) bool {
	u, ok := o.(Intersection)
	if !ok || len(u.Types) != len(t.Types) {
		return false
	}
	for i := range t.Types {
		if !typeEqual(t.Types[i], u.Types[i]) {
			return false
		}
	}
	return true
}
func (t Intersection) String() string { return fmt.Sprintf("Intersection%v", t.Types) }

// Auto stands for a type left for inference from the initializer
// expression; the code generator must resolve it before emission.
type Auto struct{}

func (Auto) isType()           {}
func (Auto) Equal(o Type) bool { _, ok := o.(Auto); return ok }
func (Auto) String() string    { return "auto" }

func typeEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

// Common, pre-built singletons used throughout the parser and codegen to
// avoid re-allocating the same leaf type repeatedly.
var (
	Int8    = Int{Bits: 8, Signed: true}
	Int16   = Int{Bits: 16, Signed: true}
	Int32   = Int{Bits: 32, Signed: true}
	Int64   = Int{Bits: 64, Signed: true}
	UInt8   = Int{Bits: 8, Signed: false}
	UInt16  = Int{Bits: 16, Signed: false}
	UInt32  = Int{Bits: 32, Signed: false}
	UInt64  = Int{Bits: 64, Signed: false}
	Float32 = Float{Bits: 32}
	Float64 = Float{Bits: 64}
	Bool8   = Bool{}
	Char8   = Char{Bits: 8}
	VoidT   = Void{}
	UsizeT  = Usize{}
	AnyT    = Any{}
	AutoT   = Auto{}
)
