package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	s := NewScanner(src)
	var toks []Token
	for {
		tok, err := s.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokEOF {
			return toks
		}
	}
}

func TestScannerSkipsHashAndPercentComments(t *testing.T) {
	toks := scanAll(t, "# a comment\nfoo % another\n.")
	require.Len(t, toks, 3)
	assert.Equal(t, TokAtom, toks[0].Kind)
	assert.Equal(t, "foo", toks[0].Text)
	assert.Equal(t, TokPeriod, toks[1].Kind)
}

func TestScannerVariableAndAnonymous(t *testing.T) {
	toks := scanAll(t, "$X $_ $_Rest")
	require.Len(t, toks, 4)
	assert.Equal(t, TokVariable, toks[0].Kind)
	assert.Equal(t, "X", toks[0].Text)
	assert.Equal(t, TokAnonymous, toks[1].Kind)
	assert.Equal(t, TokVariable, toks[2].Kind)
	assert.Equal(t, "_Rest", toks[2].Text)
}

func TestScannerNumberVsClauseTerminator(t *testing.T) {
	toks := scanAll(t, "foo(1, 2.5).")
	kinds := make([]TokenKind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokAtom, TokLParen, TokInteger, TokComma, TokFloat, TokRParen, TokPeriod, TokEOF,
	}, kinds)
}

func TestScannerQuotedAtomWithEscapes(t *testing.T) {
	toks := scanAll(t, `"hello world" "a\"b"`)
	require.Len(t, toks, 3)
	assert.Equal(t, "hello world", toks[0].Text)
	assert.Equal(t, `a"b`, toks[1].Text)
}

func TestScannerOperators(t *testing.T) {
	toks := scanAll(t, ":- ! != == >= <= > < = + - * /")
	kinds := make([]TokenKind, 0, len(toks)-1)
	for _, tok := range toks[:len(toks)-1] {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokArrow, TokCut, TokNotEq, TokEqEq, TokGE, TokLE, TokGT, TokLT,
		TokEq, TokPlus, TokMinus, TokStar, TokSlash,
	}, kinds)
}

func TestScannerNotKeyword(t *testing.T) {
	toks := scanAll(t, "not foo")
	assert.Equal(t, TokNot, toks[0].Kind)
	assert.Equal(t, TokAtom, toks[1].Kind)
}

func TestScannerUnexpectedCharacterReportsPosition(t *testing.T) {
	s := NewScanner("foo @bar")
	_, err := s.Next()
	require.NoError(t, err)
	_, err = s.Next()
	require.Error(t, err)
	lerr, ok := err.(*LexError)
	require.True(t, ok)
	assert.Equal(t, 1, lerr.Pos.Line)
	assert.Equal(t, 5, lerr.Pos.Col)
}
