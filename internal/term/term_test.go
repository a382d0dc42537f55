package term_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indrikoterio/suiron-go/internal/term"
)

func TestAtomString(t *testing.T) {
	assert.Equal(t, "mother", term.NewAtom("mother").String())
	assert.Equal(t, `"The Beaver"`, term.NewAtom("The Beaver").String())
}

func TestComplexArityAndString(t *testing.T) {
	c := term.NewComplex("mother", term.NewAtom("June"), term.NewAtom("Theodore"))
	require.Equal(t, 2, c.Arity())
	assert.Equal(t, "mother(June, Theodore)", c.String())
}

func TestComplexRejectsEmptyFunctor(t *testing.T) {
	assert.Panics(t, func() {
		term.NewComplex("")
	})
}

func TestLinkedListDecompose(t *testing.T) {
	l := term.NewLinkedList(term.NewAtom("a"), term.NewAtom("b"), term.NewAtom("c"))
	head, rest, ok := l.Decompose()
	require.True(t, ok)
	assert.Equal(t, "a", head.String())
	assert.Equal(t, "[b, c]", rest.String())
}

func TestLinkedListEmptyDecomposeFails(t *testing.T) {
	_, _, ok := term.Empty().Decompose()
	assert.False(t, ok)
}

func TestLinkedListWithTailString(t *testing.T) {
	tail := term.NewVariable("T")
	l := term.NewLinkedListWithTail(tail, term.NewAtom("a"))
	assert.Equal(t, "[a | $T]", l.String())
}

func TestVariableIdentityNotName(t *testing.T) {
	x1 := term.NewVariable("X")
	x2 := term.NewVariable("X")
	assert.NotEqual(t, x1.ID, x2.ID)
	assert.False(t, term.Equal(x1, x2))
}

func TestAnonymousNeverEqual(t *testing.T) {
	a1 := term.NewAnonymous()
	a2 := term.NewAnonymous()
	assert.False(t, term.Equal(a1, a2))
	assert.Equal(t, "$_", a1.String())
}

func TestEqualIgnoresEnvironment(t *testing.T) {
	c1 := term.NewComplex("p", term.NewInteger(1), term.NewAtom("a"))
	c2 := term.NewComplex("p", term.NewInteger(1), term.NewAtom("a"))
	assert.True(t, term.Equal(c1, c2))

	c3 := term.NewComplex("p", term.NewInteger(2), term.NewAtom("a"))
	assert.False(t, term.Equal(c1, c3))
}

func TestNumericHelpers(t *testing.T) {
	f, ok := term.AsFloat64(term.NewInteger(3))
	require.True(t, ok)
	assert.Equal(t, 3.0, f)

	f, ok = term.AsFloat64(term.NewFloat(2.5))
	require.True(t, ok)
	assert.Equal(t, 2.5, f)

	_, ok = term.AsFloat64(term.NewAtom("x"))
	assert.False(t, ok)

	assert.True(t, term.IsNumeric(term.NewInteger(1)))
	assert.True(t, term.IsNumeric(term.NewFloat(1.0)))
	assert.False(t, term.IsNumeric(term.NewAtom("x")))
}

func TestNextVarIDMonotonic(t *testing.T) {
	a := term.NextVarID()
	b := term.NextVarID()
	assert.Less(t, a, b)
}
