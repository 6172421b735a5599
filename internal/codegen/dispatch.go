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

package codegen

import (
	"fmt"
	"strings"

	"github.com/VixLanguage/Vix-programing-language/internal/ast"
	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/types"
)

// codegenMethodCall implements the method-call resolution order of
// spec.md §4.4: impl_methods[(S,m)], else a free function m, else
// S_m, else a fallback literal call returning Int32 (flagged as a
// warning). A registered struct method invoked on a by-value receiver
// has "&obj" synthesized as its first argument.
func (c *Codegen) codegenMethodCall(v *ast.MethodCall, body *strings.Builder) (string, types.Type) {
	objName, objType := c.codegenExpr(v.Object, body)
	structName := structNameOf(objType)

	if structName != "" {
		if sig, ok := c.implMethods[structName+"."+v.Method]; ok {
			cname := structName + "_" + v.Method
			args := c.methodArgs(objName, objType, v.Arguments, sig, body)
			return c.emitCall(cname, args, sig.ReturnType, body)
		}
	}
	if sig, ok := c.userFunctions[v.Method]; ok {
		args := append([]string{objName}, c.codegenArgs(v.Arguments, sig, body)...)
		return c.emitCall(v.Method, args, sig.ReturnType, body)
	}
	if structName != "" {
		mangled := structName + "_" + v.Method
		if sig, ok := c.userFunctions[mangled]; ok {
			args := append([]string{objName}, c.codegenArgs(v.Arguments, sig, body)...)
			return c.emitCall(mangled, args, sig.ReturnType, body)
		}
	}
	c.diagWarn(diag.KindUndefinedMethodFallback, v.Span(),
		"no definition found for method %q on %s, falling back to Int32", v.Method, objType)
	args := c.codegenArgs(v.Arguments, FuncSig{}, body)
	return c.emitCall(v.Method, args, types.Int32, body)
}

func (c *Codegen) methodArgs(objName string, objType types.Type, args []ast.Expr, sig MethodSig, body *strings.Builder) []string {
	receiver := objName
	if !isPointerLike(objType) {
		receiver = "&" + objName
	}
	out := []string{receiver}
	for i, a := range args {
		name, argType := c.codegenExpr(a, body)
		if i+1 < len(sig.Params) {
			if _, isConstStr := sig.Params[i+1].(types.ConstStr); isConstStr {
				if _, isStr := argType.(types.Str); isStr {
					name += ".ptr"
				}
			}
		}
		out = append(out, name)
	}
	return out
}

func isPointerLike(t types.Type) bool {
	switch t.(type) {
	case types.Ptr, types.RawPtr, types.Ref, types.MutRef:
		return true
	default:
		return false
	}
}

func structNameOf(t types.Type) string {
	switch v := t.(type) {
	case types.Struct:
		return v.Name
	case types.Ref:
		return structNameOf(v.Elem)
	case types.MutRef:
		return structNameOf(v.Elem)
	case types.Ptr:
		return structNameOf(v.Elem)
	default:
		return ""
	}
}

// codegenStaticMethodCall implements "T::method(args)": T::new always
// lowers to T_new; any other static method requires either
// impl_methods[(T,m)] or a free function T_m (spec.md §4.4).
func (c *Codegen) codegenStaticMethodCall(v *ast.StaticMethodCall, body *strings.Builder) (string, types.Type) {
	cname := v.TypeName + "_" + v.Method
	var sig FuncSig
	if m, ok := c.implMethods[v.TypeName+"."+v.Method]; ok {
		sig = FuncSig{Params: m.Params, ReturnType: m.ReturnType}
	} else if s, ok := c.userFunctions[cname]; ok {
		sig = s
	} else if v.Method != "new" {
		c.diagWarn(diag.KindUndefinedMethodFallback, v.Span(),
			"no definition for static method %s::%s, falling back to Int32", v.TypeName, v.Method)
		sig.ReturnType = types.Int32
	} else {
		sig.ReturnType = types.Struct{Name: v.TypeName}
	}
	args := c.codegenArgs(v.Arguments, sig, body)
	return c.emitCall(cname, args, sig.ReturnType, body)
}

// codegenModuleCall lowers "Mod.func(args)" to "Mod_func(args)" with the
// same resolution order as a free-function call (spec.md §4.4,
// invariant 5: "a call written M.f(args) and a call written M_f(args)
// emit identical C").
func (c *Codegen) codegenModuleCall(v *ast.ModuleCall, body *strings.Builder) (string, types.Type) {
	cname := v.Module + "_" + v.Func
	sig, ok := c.moduleFunctions[v.Module+"."+v.Func]
	if !ok {
		c.diagWarn(diag.KindUndefinedModuleFunction, v.Span(),
			"call to %s.%s not found in its declared module", v.Module, v.Func)
		sig.ReturnType = types.Int32
	}
	args := c.codegenArgs(v.Arguments, sig, body)
	return c.emitCall(cname, args, sig.ReturnType, body)
}

func (c *Codegen) codegenMember(v *ast.Member, body *strings.Builder) (string, types.Type) {
	objName, objType := c.codegenExpr(v.Object, body)
	sep := "."
	if isPointerLike(objType) {
		sep = "->"
	}
	structName := structNameOf(objType)
	fieldType := types.Type(types.VoidT)
	if info, ok := c.structs[structName]; ok {
		for _, f := range info.Fields {
			if f.Name == v.Name {
				fieldType = f.Type
			}
		}
	}
	return objName + sep + v.Name, fieldType
}

func (c *Codegen) codegenIndex(v *ast.Index, body *strings.Builder) (string, types.Type) {
	objName, objType := c.codegenExpr(v.Object, body)
	idxName, _ := c.codegenExpr(v.Index, body)
	elemType := types.Type(types.VoidT)
	ptrExpr := objName
	switch t := objType.(type) {
	case types.Array:
		elemType = t.Element
		if t.Size == nil {
			ptrExpr = objName + ".ptr"
		}
	case types.Str:
		elemType = types.Char8
		ptrExpr = objName + ".ptr"
	}
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s = %s[%s];\n", c.cType(elemType), out, ptrExpr, idxName)
	return out, elemType
}

// codegenSlice lowers "e[lo:hi]" (either bound may be omitted) to a
// fresh Slice_<elem> whose .ptr is offset by lo and whose .len is
// hi-lo, built over either a dynamic array's existing Slice_<elem> or a
// Str's Slice_char, §3.3.
func (c *Codegen) codegenSlice(v *ast.Slice, body *strings.Builder) (string, types.Type) {
	objName, objType := c.codegenExpr(v.Object, body)

	var elemType types.Type = types.VoidT
	ptrExpr := objName
	lenExpr := objName + ".len"
	switch t := objType.(type) {
	case types.Array:
		elemType = t.Element
		if t.Size == nil {
			ptrExpr = objName + ".ptr"
		} else {
			lenExpr = fmt.Sprintf("%d", *t.Size)
		}
	case types.Str:
		elemType = types.Char8
		ptrExpr = objName + ".ptr"
	default:
		c.diagError(diag.KindUnsupportedFeature, v.Span(), "cannot slice a %s value", objType)
		return "0", types.VoidT
	}

	lowExpr := "0"
	if v.Low != nil {
		name, _ := c.codegenExpr(v.Low, body)
		lowExpr = name
	}
	highExpr := lenExpr
	if v.High != nil {
		name, _ := c.codegenExpr(v.High, body)
		highExpr = name
	}

	resultType := types.Array{Element: elemType}
	cname := c.cType(resultType)
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s = (%s){ %s + (%s), (size_t)((%s) - (%s)) };\n",
		cname, out, cname, ptrExpr, lowExpr, highExpr, lowExpr)
	return out, resultType
}

// codegenHashMap lowers a map literal «{k0: v0, ...}» to the opaque
// HashMap_<K>_<V> handle spec.md §3.2/§4.3 assign it: a _new() call
// followed by one _insert() per entry, the same "name_op(handle, ...)"
// convention a struct's own methods use.
func (c *Codegen) codegenHashMap(v *ast.HashMapExpr, body *strings.Builder) (string, types.Type) {
	keyType := types.Type(types.VoidT)
	valType := types.Type(types.VoidT)
	type entry struct{ key, value string }
	entries := make([]entry, len(v.Entries))
	for i, e := range v.Entries {
		kName, kt := c.codegenExpr(e.Key, body)
		vName, vt := c.codegenExpr(e.Value, body)
		keyType, valType = kt, vt
		entries[i] = entry{kName, vName}
	}

	mapType := types.HashMap{Key: keyType, Value: valType}
	cname := c.cType(mapType)
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s = %s_new();\n", cname, out, cname)
	for _, e := range entries {
		fmt.Fprintf(body, "%s_insert(%s, %s, %s);\n", cname, out, e.key, e.value)
	}
	return out, mapType
}

func (c *Codegen) codegenBinaryOp(v *ast.BinaryOp, body *strings.Builder) (string, types.Type) {
	lhsName, lhsType := c.codegenExpr(v.LHS, body)
	rhsName, _ := c.codegenExpr(v.RHS, body)

	if v.Op == "==" || v.Op == "!=" {
		if _, isStr := lhsType.(types.Str); isStr {
			out := c.freshVar()
			cmp := "=="
			if v.Op == "!=" {
				cmp = "!="
			}
			fmt.Fprintf(body, "bool %s = strcmp(%s.ptr, %s.ptr) %s 0;\n", out, lhsName, rhsName, cmp)
			return out, types.Bool8
		}
	}

	resultType := types.Type(types.Bool8)
	switch v.Op {
	case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
		resultType = types.Bool8
	default:
		resultType = lhsType
	}
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s = %s %s %s;\n", c.cType(resultType), out, lhsName, v.Op, rhsName)
	return out, resultType
}

func (c *Codegen) codegenUnaryOp(v *ast.UnaryOp, body *strings.Builder) (string, types.Type) {
	name, t := c.codegenExpr(v.Operand, body)
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s = %s%s;\n", c.cType(t), out, v.Op, name)
	return out, t
}

// codegenCast lowers "(e as T)" to a C cast, emitting an UnsafeCast
// warning when narrowing from a pointer to a non-pointer type (spec.md
// §4.4).
func (c *Codegen) codegenCast(v *ast.Cast, body *strings.Builder) (string, types.Type) {
	name, srcType := c.codegenExpr(v.Operand, body)
	if isPointerLike(srcType) && !isPointerLike(v.Type) {
		c.diagWarn(diag.KindUnsafeCast, v.Span(), "cast from pointer type %s to %s", srcType, v.Type)
	}
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s = (%s)%s;\n", c.cType(v.Type), out, c.cType(v.Type), name)
	return out, v.Type
}

// codegenStructDefault implements "bare struct-name call" construction
// (spec.md §4.4): each field is default-initialized by type and passed as
// an argument to the struct's "_new" constructor, never assembled as an
// aggregate literal (original_source's Gen::build::unknow.rs builds
// "{}_new" and forwards the per-field defaults as call arguments).
func (c *Codegen) codegenStructDefault(name string, info StructInfo, body *strings.Builder) (string, types.Type) {
	args := make([]string, len(info.Fields))
	for i, f := range info.Fields {
		args[i] = zeroValue(f.Type)
	}
	return c.emitCall(name+"_new", args, types.Struct{Name: name}, body)
}

func zeroValue(t types.Type) string {
	switch v := t.(type) {
	case types.Int:
		return "0"
	case types.Float:
		return "0.0"
	case types.Bool:
		return "false"
	case types.ConstStr:
		return `""`
	case types.Str:
		return `(Slice_char){ "", 0 }`
	case types.Ptr, types.RawPtr, types.Ref, types.MutRef:
		return "NULL"
	case types.Array:
		_ = v
		return "{0}"
	default:
		return "{0}"
	}
}

// codegenOptionResult lowers some/none/ok/err constructors to the
// tagged-struct literal the type registry assigns Option/Result
// (spec.md §4.3).
func (c *Codegen) codegenOptionResult(e ast.Expr, body *strings.Builder) (string, types.Type) {
	switch v := e.(type) {
	case *ast.SomeExpr:
		name, t := c.codegenExpr(v.Value, body)
		opt := types.Option{Inner: t}
		out := c.freshVar()
		fmt.Fprintf(body, "%s %s = { .has_value = true, .value = %s };\n", c.cType(opt), out, name)
		return out, opt
	case *ast.NoneExpr:
		opt := types.Option{Inner: types.AutoT}
		out := c.freshVar()
		fmt.Fprintf(body, "%s %s = { .has_value = false };\n", c.cType(opt), out)
		return out, opt
	case *ast.OkExpr:
		name, t := c.codegenExpr(v.Value, body)
		res := types.Result{Ok: t, Err: types.AutoT}
		out := c.freshVar()
		fmt.Fprintf(body, "%s %s = { .is_ok = true, .value = { .ok = %s } };\n", c.cType(res), out, name)
		return out, res
	case *ast.ErrExpr:
		name, t := c.codegenExpr(v.Value, body)
		res := types.Result{Ok: types.AutoT, Err: t}
		out := c.freshVar()
		fmt.Fprintf(body, "%s %s = { .is_ok = false, .value = { .err = %s } };\n", c.cType(res), out, name)
		return out, res
	default:
		return "0", types.VoidT
	}
}

// codegenOneOf lowers one_of(e0, e1, ...) to a disjunction of its
// operands. Every operand is lowered and evaluated before the
// disjunction, so one_of does not short-circuit the way "||" does.
func (c *Codegen) codegenOneOf(v *ast.OneOf, body *strings.Builder) (string, types.Type) {
	if len(v.Elements) == 0 {
		return "false", types.Bool8
	}
	names := make([]string, len(v.Elements))
	for i, el := range v.Elements {
		n, _ := c.codegenExpr(el, body)
		names[i] = n
	}
	out := c.freshVar()
	fmt.Fprintf(body, "bool %s = %s;\n", out, strings.Join(names, " || "))
	return out, types.Bool8
}

// codegenPlan lowers a format-string expression to a run of
// concatenations via the arena-backed string helpers.
func (c *Codegen) codegenPlan(v *ast.Plan, body *strings.Builder) (string, types.Type) {
	var acc string
	first := true
	for _, part := range v.Parts {
		var piece string
		if part.Expr == nil {
			lit := c.freshVar()
			fmt.Fprintf(body, "Slice_char %s = (Slice_char){ %q, %d };\n", lit, part.Literal, len(part.Literal))
			piece = lit
		} else {
			name, t := c.codegenExpr(part.Expr, body)
			if _, isStr := t.(types.Str); isStr {
				piece = name
			} else {
				piece = name // non-string values are concatenated as is; no conversion to text is emitted
			}
		}
		if first {
			acc = piece
			first = false
			continue
		}
		c.prelude.EnsureStringOps()
		merged := c.freshVar()
		fmt.Fprintf(body, "Slice_char %s = vix_str_concat_view(%s, %s);\n", merged, acc, piece)
		acc = merged
	}
	if acc == "" {
		acc = `(Slice_char){ "", 0 }`
	}
	return acc, types.Str{LenType: types.UsizeT}
}

func (c *Codegen) codegenMatchExpr(v *ast.MatchExpr, body *strings.Builder) (string, types.Type) {
	subjName, _ := c.codegenExpr(v.Subject, body)

	// A match expression's arms all share one static type; probe the
	// first arm on a scratch buffer purely to learn that type before
	// declaring the result variable, then discard the scratch text and
	// re-emit for real below (arms are side-effect-free expressions by
	// construction in this grammar).
	resultType := types.Type(types.VoidT)
	if len(v.Arms) > 0 {
		var scratch strings.Builder
		savedVar := c.varCounter
		_, resultType = c.codegenExpr(v.Arms[0].Value, &scratch)
		c.varCounter = savedVar
	}

	out := c.freshVar()
	fmt.Fprintf(body, "%s %s;\n", c.cType(resultType), out)

	for i, arm := range v.Arms {
		keyword := "else if"
		if i == 0 {
			keyword = "if"
		}
		if len(arm.Patterns) == 0 {
			fmt.Fprintf(body, "else {\n")
		} else {
			conds := make([]string, len(arm.Patterns))
			for j, p := range arm.Patterns {
				pn, _ := c.codegenExpr(p, body)
				conds[j] = fmt.Sprintf("%s == %s", subjName, pn)
			}
			fmt.Fprintf(body, "%s (%s) {\n", keyword, strings.Join(conds, " || "))
		}
		valName, _ := c.codegenExpr(arm.Value, body)
		fmt.Fprintf(body, "%s = %s;\n}\n", out, valName)
	}
	return out, resultType
}
