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

// Package token defines the lexical vocabulary of Vix: every keyword,
// operator and literal kind the lexer can produce.
package token

import "sort"

// Kind identifies the variant of a Token. Token identity is by Kind;
// string/number payloads live in Token.Literal.
type Kind int

const (
	Invalid Kind = iota
	EOF

	Ident  // identifier or type-like name (capitalized leading char)
	Int    // decimal/hex/binary/octal integer literal
	Float  // floating point literal
	Char   // 'x' literal
	String // "..." literal

	// Keywords.
	Let
	Mut
	Func
	Pub
	Struct
	Enum
	Impl
	Trait
	Mod
	Use
	Import
	From
	Extern
	If
	Then
	Else
	While
	For
	In
	Do
	Match
	Case
	Default
	Return
	Break
	Continue
	End
	Scope
	Unsafe
	True
	False
	Some
	None
	Ok
	Err
	Self
	Option
	Result
	Type
	Module
	As
	Const
	OneOf
	OffsetOf
	AlignOf
	TypeOf
	Brw

	// Punctuation / operators.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	Dot
	DotDot
	DotDotDot
	Arrow    // ->
	FatArrow // =>
	Amp      // &
	AmpAmp   // &&
	Pipe     // |
	PipePipe // ||
	Caret    // ^
	Bang     // !
	Question // ?
	At       // @
	Hash     // #

	Assign        // =
	Eq            // ==
	NotEq         // !=
	Lt            // <
	Gt            // >
	LtEq          // <=
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Plus          // +
	Minus         // -
	Star          // *
	Slash         // /
	Percent       // %
	PlusEq        // +=
	MinusEq       // -=
	StarEq        // *=
	SlashEq       // /=
	PercentEq     // %=
	ColonColon    // ::
	DoubleQuote   // "
	SingleQuote   // '
)

// Keywords maps every reserved word recognized by the lexer to its Kind.
var Keywords = map[string]Kind{
	"let": Let, "mut": Mut, "func": Func, "pub": Pub, "struct": Struct,
	"enum": Enum, "impl": Impl, "trait": Trait, "mod": Mod, "use": Use,
	"import": Import, "from": From, "extern": Extern, "if": If, "then": Then,
	"else": Else, "while": While, "for": For, "in": In, "do": Do,
	"match": Match, "case": Case, "default": Default, "return": Return,
	"break": Break, "continue": Continue, "end": End, "scope": Scope,
	"unsafe": Unsafe, "true": True, "false": False, "some": Some,
	"none": None, "ok": Ok, "err": Err, "self": Self, "option": Option,
	"result": Result, "type": Type, "module": Module, "as": As,
	"const": Const, "one_of": OneOf, "offset_of": OffsetOf,
	"align_of": AlignOf, "type_of": TypeOf, "brw": Brw,
}

// Token is a single lexical unit paired with its source span index (the
// span itself lives in the parallel Spans slice the Lexer returns).
type Token struct {
	Kind    Kind
	Literal string // raw text for identifiers/numbers/strings/chars
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "<unknown>"
}

var names = map[Kind]string{
	Invalid: "invalid", EOF: "eof", Ident: "identifier", Int: "int",
	Float: "float", Char: "char", String: "string",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Comma: ",", Colon: ":", Semicolon: ";",
	Dot: ".", DotDot: "..", DotDotDot: "...", Arrow: "->", FatArrow: "=>",
	Amp: "&", AmpAmp: "&&", Pipe: "|", PipePipe: "||", Caret: "^",
	Bang: "!", Question: "?", At: "@", Hash: "#", Assign: "=", Eq: "==",
	NotEq: "!=", Lt: "<", Gt: ">", LtEq: "<=", GtEq: ">=", Shl: "<<",
	Shr: ">>", Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=",
	PercentEq: "%=", ColonColon: "::",
}

func init() {
	for word, kind := range Keywords {
		names[kind] = word
	}
}

// IsTypeLike reports whether an identifier's spelling begins with an
// uppercase letter — semantically meaningful to the parser when
// disambiguating type expressions from value expressions.
func IsTypeLike(ident string) bool {
	if ident == "" {
		return false
	}
	c := ident[0]
	return c >= 'A' && c <= 'Z'
}

// multiCharOperators lists every operator spelling longer than one byte,
// sorted longest-first so the lexer always matches the longest operator
// starting at the current position before falling back to single bytes.
var multiCharOperators = []struct {
	text string
	kind Kind
}{
	{"...", DotDotDot},
	{"->", Arrow},
	{"=>", FatArrow},
	{"::", ColonColon},
	{"..", DotDot},
	{"&&", AmpAmp},
	{"||", PipePipe},
	{"==", Eq},
	{"!=", NotEq},
	{"<=", LtEq},
	{">=", GtEq},
	{"<<", Shl},
	{">>", Shr},
	{"+=", PlusEq},
	{"-=", MinusEq},
	{"*=", StarEq},
	{"/=", SlashEq},
	{"%=", PercentEq},
}

func init() {
	sort.Slice(multiCharOperators, func(i, j int) bool {
		return len(multiCharOperators[i].text) > len(multiCharOperators[j].text)
	})
}

// MatchOperator finds the longest operator spelling that is a prefix of
// s, returning its Kind, text and whether a match was found.
func MatchOperator(s string) (Kind, string, bool) {
	for _, op := range multiCharOperators {
		if len(s) >= len(op.text) && s[:len(op.text)] == op.text {
			return op.kind, op.text, true
		}
	}
	return Invalid, "", false
}

// singleCharOperators maps every one-byte punctuation/operator rune to
// its Kind.
var singleCharOperators = map[byte]Kind{
	'(': LParen, ')': RParen, '{': LBrace, '}': RBrace,
	'[': LBracket, ']': RBracket, ',': Comma, ':': Colon, ';': Semicolon,
	'.': Dot, '&': Amp, '|': Pipe, '^': Caret, '!': Bang, '?': Question,
	'@': At, '#': Hash, '=': Assign, '<': Lt, '>': Gt, '+': Plus,
	'-': Minus, '*': Star, '/': Slash, '%': Percent,
}

// MatchSingleCharOperator looks up the Kind for a single punctuation
// byte.
func MatchSingleCharOperator(b byte) (Kind, bool) {
	k, ok := singleCharOperators[b]
	return k, ok
}
