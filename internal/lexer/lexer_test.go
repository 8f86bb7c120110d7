package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThornLang/thorn/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func Test_ScanTokens_kindSequence(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []token.Kind
	}{
		{name: "empty source", input: "", expect: []token.Kind{token.EOF}},
		{name: "integer literal", input: "42", expect: []token.Kind{token.Number, token.EOF}},
		{name: "float literal", input: "3.5", expect: []token.Kind{token.Number, token.EOF}},
		{name: "double-quoted string", input: `"hi"`, expect: []token.Kind{token.String, token.EOF}},
		{name: "single-quoted string", input: `'hi'`, expect: []token.Kind{token.String, token.EOF}},
		{name: "identifier", input: "count", expect: []token.Kind{token.Identifier, token.EOF}},
		{name: "var keyword", input: "var", expect: []token.Kind{token.Var, token.EOF}},
		{name: "immut sigil", input: "@immut", expect: []token.Kind{token.At, token.Immut, token.EOF}},
		{name: "function sigil", input: "$name", expect: []token.Kind{token.Dollar, token.Identifier, token.EOF}},
		{name: "type alias sigil", input: "%Name", expect: []token.Kind{token.Percent, token.Identifier, token.EOF}},
		{name: "wildcard", input: "_", expect: []token.Kind{token.Underscore, token.EOF}},
		{name: "compound assignment", input: "+= -= *= /= %=", expect: []token.Kind{
			token.PlusEqual, token.MinusEqual, token.StarEqual, token.SlashEqual, token.PercentEqual, token.EOF,
		}},
		{name: "power operator", input: "**", expect: []token.Kind{token.StarStar, token.EOF}},
		{name: "null-coalescing", input: "??", expect: []token.Kind{token.QuestionQuestion, token.EOF}},
		{name: "arrow", input: "=>", expect: []token.Kind{token.Arrow, token.EOF}},
		{name: "logical operators", input: "&& || !", expect: []token.Kind{
			token.AmpAmp, token.PipePipe, token.Bang, token.EOF,
		}},
		{name: "comparison operators", input: "< <= > >= == !=", expect: []token.Kind{
			token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.EqualEqual, token.BangEqual, token.EOF,
		}},
		{name: "slice brackets", input: "a[1:2]", expect: []token.Kind{
			token.Identifier, token.LeftBracket, token.Number, token.Colon, token.Number, token.RightBracket, token.EOF,
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks, errs := New(tc.input).ScanTokens()
			require.Empty(t, errs)
			assert.Equal(t, tc.expect, kinds(toks))
		})
	}
}

func Test_ScanTokens_numberLiteralValue(t *testing.T) {
	toks, errs := New("3.25").ScanTokens()
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, 3.25, toks[0].Literal)
}

func Test_ScanTokens_stringEscapes(t *testing.T) {
	toks, errs := New(`"a\nb\t\"c\""`).ScanTokens()
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb\t\"c\"", toks[0].Literal)
}

func Test_ScanTokens_lineTracking(t *testing.T) {
	toks, errs := New("1\n2\n3").ScanTokens()
	require.Empty(t, errs)
	require.Len(t, toks, 4)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 3, toks[2].Line)
}

func Test_ScanTokens_badCharacterRecordsDiagnosticAndContinues(t *testing.T) {
	toks, errs := New("1 ` 2").ScanTokens()
	assert.NotEmpty(t, errs)
	assert.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, kinds(toks))
}
