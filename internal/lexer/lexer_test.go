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

package lexer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VixLanguage/Vix-programing-language/internal/diag"
	"github.com/VixLanguage/Vix-programing-language/internal/lexer"
	"github.com/VixLanguage/Vix-programing-language/internal/source"
	"github.com/VixLanguage/Vix-programing-language/internal/token"
)

func kinds(r lexer.Result) []token.Kind {
	out := make([]token.Kind, len(r.Tokens))
	for i, t := range r.Tokens {
		out[i] = t.Kind
	}
	return out
}

func TestLexKeywordsAndOperators(t *testing.T) {
	file := source.NewFile("t.vix", `func main(): i32 let x: i32 = 5 x += 1 return x end`)
	var diags diag.Collector
	r := lexer.Lex(context.Background(), file, &diags)
	require.Empty(t, diags.All())
	got := kinds(r)
	require.Equal(t, token.EOF, got[len(got)-1])
	assert.Equal(t, token.Func, got[0])
	assert.Equal(t, token.Ident, got[1])
}

func TestLexStringEscapes(t *testing.T) {
	file := source.NewFile("t.vix", `" world\n"`)
	var diags diag.Collector
	r := lexer.Lex(context.Background(), file, &diags)
	require.Empty(t, diags.All())
	require.Equal(t, token.String, r.Tokens[0].Kind)
	assert.Equal(t, " world\n", r.Tokens[0].Literal)
}

func TestLexNumbers(t *testing.T) {
	file := source.NewFile("t.vix", "0xFF 0b1010 3.14 42")
	var diags diag.Collector
	r := lexer.Lex(context.Background(), file, &diags)
	require.Empty(t, diags.All())
	want := []token.Kind{token.Int, token.Int, token.Float, token.Int, token.EOF}
	assert.Equal(t, want, kinds(r))
}

func TestLexUnrecognizedByteRecordsDiagnosticButContinues(t *testing.T) {
	file := source.NewFile("t.vix", "let x `oops` = 1")
	var diags diag.Collector
	r := lexer.Lex(context.Background(), file, &diags)
	assert.NotEmpty(t, diags.All())
	// Lexing must still terminate and still tokenize the remaining input.
	assert.Equal(t, token.EOF, r.Tokens[len(r.Tokens)-1].Kind)
}

func TestSpansAreNonDecreasingAndCoverInput(t *testing.T) {
	file := source.NewFile("t.vix", "let a = 1 + 2")
	var diags diag.Collector
	r := lexer.Lex(context.Background(), file, &diags)
	prevEnd := 0
	for _, sp := range r.Spans {
		require.GreaterOrEqual(t, sp.Start, prevEnd)
		prevEnd = sp.End
	}
}
