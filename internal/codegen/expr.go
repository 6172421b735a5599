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

// codegenExpr implements the uniform contract of spec.md §4.4:
// codegen_expr(expr, out_body) -> (result_var_name, Type). It emits
// whatever C statements are necessary into body and returns the name of
// a variable (possibly freshly declared) holding the expression's
// value.
func (c *Codegen) codegenExpr(e ast.Expr, body *strings.Builder) (string, types.Type) {
	switch v := e.(type) {
	case *ast.Number:
		return v.Value, numberType(v)
	case *ast.Bool:
		if v.Value {
			return "true", types.Bool8
		}
		return "false", types.Bool8
	case *ast.StringLit:
		name := c.freshVar()
		fmt.Fprintf(body, "Slice_char %s = (Slice_char){ %q, %d };\n", name, v.Value, len(v.Value))
		return name, types.Str{LenType: types.UsizeT}
	case *ast.CharLit:
		return fmt.Sprintf("'%s'", v.Value), types.Char8
	case *ast.Var:
		if info, ok := c.lookupVar(v.Name); ok {
			return info.CName, info.Type
		}
		c.diagError(diag.KindUndefinedVariable, v.Span(), "undefined variable %q", v.Name)
		return v.Name, types.VoidT
	case *ast.TupleExpr:
		return c.codegenTuple(v, body)
	case *ast.ArrayExpr:
		return c.codegenArray(v, body)
	case *ast.Call:
		return c.codegenCall(v, body)
	case *ast.CallNamed:
		return c.codegenCallNamed(v, body)
	case *ast.MethodCall:
		return c.codegenMethodCall(v, body)
	case *ast.StaticMethodCall:
		return c.codegenStaticMethodCall(v, body)
	case *ast.ModuleCall:
		return c.codegenModuleCall(v, body)
	case *ast.Member:
		return c.codegenMember(v, body)
	case *ast.Index:
		return c.codegenIndex(v, body)
	case *ast.Slice:
		return c.codegenSlice(v, body)
	case *ast.BinaryOp:
		return c.codegenBinaryOp(v, body)
	case *ast.UnaryOp:
		return c.codegenUnaryOp(v, body)
	case *ast.Cast:
		return c.codegenCast(v, body)
	case *ast.SomeExpr, *ast.NoneExpr, *ast.OkExpr, *ast.ErrExpr:
		return c.codegenOptionResult(v, body)
	case *ast.OneOf:
		return c.codegenOneOf(v, body)
	case *ast.Plan:
		return c.codegenPlan(v, body)
	case *ast.FuncAddr:
		return "&" + v.Name, types.Ptr{Elem: types.VoidT}
	case *ast.TypeOf:
		_, t := c.codegenExpr(v.Operand, body)
		name := c.freshVar()
		fmt.Fprintf(body, "const char* %s = %q;\n", name, t.String())
		return name, types.ConstStr{}
	case *ast.OffsetOf:
		name := c.freshVar()
		fmt.Fprintf(body, "size_t %s = offsetof(%s, %s);\n", name, v.StructName, v.FieldName)
		return name, types.UsizeT
	case *ast.AlignOf:
		name := c.freshVar()
		fmt.Fprintf(body, "size_t %s = _Alignof(%s);\n", name, c.cType(v.Type))
		return name, types.UsizeT
	case *ast.MatchExpr:
		return c.codegenMatchExpr(v, body)
	case *ast.HashMapExpr:
		return c.codegenHashMap(v, body)
	default:
		c.diagError(diag.KindUnsupportedFeature, e.Span(), "unsupported expression form %T", e)
		return "0", types.Int32
	}
}

func numberType(n *ast.Number) types.Type {
	if n.IsFloat {
		return types.Float64
	}
	return types.Int32
}

func (c *Codegen) codegenTuple(v *ast.TupleExpr, body *strings.Builder) (string, types.Type) {
	names := make([]string, len(v.Elements))
	elemTypes := make([]types.Type, len(v.Elements))
	for i, el := range v.Elements {
		n, t := c.codegenExpr(el, body)
		names[i] = n
		elemTypes[i] = t
	}
	tupleType := types.Tuple{Fields: elemTypes}
	cname := c.cType(tupleType)
	out := c.freshVar()
	var inits []string
	for i, n := range names {
		inits = append(inits, fmt.Sprintf(".field_%d = %s", i, n))
	}
	fmt.Fprintf(body, "%s %s = { %s };\n", cname, out, strings.Join(inits, ", "))
	return out, tupleType
}

func (c *Codegen) codegenArray(v *ast.ArrayExpr, body *strings.Builder) (string, types.Type) {
	if len(v.Elements) == 0 {
		out := c.freshVar()
		elemT := types.Int32
		fmt.Fprintf(body, "%s %s = { 0 };\n", c.cType(types.Array{Element: elemT}), out)
		return out, types.Array{Element: elemT}
	}
	names := make([]string, len(v.Elements))
	var elemType types.Type
	for i, el := range v.Elements {
		n, t := c.codegenExpr(el, body)
		names[i] = n
		if i == 0 {
			elemType = t
		}
	}
	size := int64(len(names))
	arrType := types.Array{Element: elemType, Size: &size}
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s[%d] = { %s };\n", c.cType(elemType), out, size, strings.Join(names, ", "))
	return out, arrType
}

// resolveCallee implements the call-site resolution order of spec.md
// §3.4's invariant for plain calls: (1) user function, (2) extern
// function, (3) literal-name fallback (flagged separately by the
// undefined-function pass, but still emitted here). The struct_prefix +
// name step of method dispatch is done in codegenMethodCall, not here.
func (c *Codegen) resolveCallee(name string) (FuncSig, string, bool) {
	if sig, ok := c.userFunctions[name]; ok {
		return sig, name, true
	}
	if sig, ok := c.externFunctions[name]; ok {
		return sig, name, true
	}
	return FuncSig{}, name, false
}

func (c *Codegen) codegenCall(v *ast.Call, body *strings.Builder) (string, types.Type) {
	if info, ok := c.structs[v.Callee]; ok && len(v.Arguments) == 0 {
		return c.codegenStructDefault(v.Callee, info, body)
	}
	sig, cname, resolved := c.resolveCallee(v.Callee)
	if !resolved {
		c.diagWarn(diag.KindUndefinedMethodFallback, v.Span(),
			"call to undefined function %q falls back to Int32", v.Callee)
		sig.ReturnType = types.Int32
	}
	args := c.codegenArgs(v.Arguments, sig, body)
	return c.emitCall(cname, args, sig.ReturnType, body)
}

func (c *Codegen) codegenCallNamed(v *ast.CallNamed, body *strings.Builder) (string, types.Type) {
	sig, cname, resolved := c.resolveCallee(v.Callee)
	if !resolved {
		sig.ReturnType = types.Int32
	}
	// Named arguments are passed in the order they were written; this
	// mirrors call-site argument order everywhere else in the codebase
	// and avoids requiring a resolved signature just to reorder them.
	args := c.codegenArgs(v.Arguments, sig, body)
	return c.emitCall(cname, args, sig.ReturnType, body)
}

func (c *Codegen) codegenArgs(args []ast.Expr, sig FuncSig, body *strings.Builder) []string {
	out := make([]string, len(args))
	for i, a := range args {
		name, t := c.codegenExpr(a, body)
		out[i] = c.coerceArg(name, t, sig, i)
	}
	return out
}

// coerceArg applies the call-boundary coercion of spec.md §4.4: a Str
// slice argument passed where the declared parameter is ConstStr (or a
// bare C string, `*const char`) is narrowed to its .ptr field.
func (c *Codegen) coerceArg(name string, argType types.Type, sig FuncSig, index int) string {
	if index >= len(sig.Params) {
		return name
	}
	isCString := false
	switch param := sig.Params[index].(type) {
	case types.ConstStr:
		isCString = true
	case types.RawPtr:
		if cst, ok := param.Elem.(types.Const); ok {
			_, isCString = cst.Elem.(types.Char)
		}
	}
	if isCString {
		if _, isStr := argType.(types.Str); isStr {
			return name + ".ptr"
		}
	}
	return name
}

// emitCall renders "cname(args)" as a C statement: declaring a fresh
// variable to hold the result unless ret is Void, in which case the
// call is emitted bare (spec.md §4.4: "Statements emit into the same
// buffer but return ()").
func (c *Codegen) emitCall(cname string, args []string, ret types.Type, body *strings.Builder) (string, types.Type) {
	callText := fmt.Sprintf("%s(%s)", cname, strings.Join(args, ", "))
	if _, isVoid := ret.(types.Void); isVoid {
		fmt.Fprintf(body, "%s;\n", callText)
		return "", ret
	}
	out := c.freshVar()
	fmt.Fprintf(body, "%s %s = %s;\n", c.cType(ret), out, callText)
	return out, ret
}
