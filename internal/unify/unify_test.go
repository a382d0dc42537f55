package unify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
	"github.com/indrikoterio/suiron-go/internal/unify"
)

func TestUnifyAtoms(t *testing.T) {
	env, ok := unify.Unify(term.NewAtom("a"), term.NewAtom("a"), subst.Empty())
	require.True(t, ok)
	assert.Equal(t, 0, env.Size())

	_, ok = unify.Unify(term.NewAtom("a"), term.NewAtom("b"), subst.Empty())
	assert.False(t, ok)
}

func TestUnifyVariableBindsTerm(t *testing.T) {
	x := term.NewVariable("X")
	env, ok := unify.Unify(x, term.NewAtom("a"), subst.Empty())
	require.True(t, ok)
	assert.True(t, term.Equal(term.NewAtom("a"), subst.Walk(x, env)))
}

func TestUnifySameVariableNoNewBinding(t *testing.T) {
	x := term.NewVariable("X")
	env, ok := unify.Unify(x, x, subst.Empty())
	require.True(t, ok)
	assert.Equal(t, 0, env.Size())
}

func TestUnifyIntegerFloatPromotion(t *testing.T) {
	env, ok := unify.Unify(term.NewInteger(3), term.NewFloat(3.0), subst.Empty())
	require.True(t, ok)
	_ = env

	_, ok = unify.Unify(term.NewInteger(3), term.NewFloat(3.5), subst.Empty())
	assert.False(t, ok)
}

func TestUnifyComplexArityMismatchFails(t *testing.T) {
	a := term.NewComplex("p", term.NewAtom("x"))
	b := term.NewComplex("p", term.NewAtom("x"), term.NewAtom("y"))
	_, ok := unify.Unify(a, b, subst.Empty())
	assert.False(t, ok)
}

func TestUnifyComplexArguments(t *testing.T) {
	x := term.NewVariable("X")
	a := term.NewComplex("point", x, term.NewInteger(2))
	b := term.NewComplex("point", term.NewInteger(1), term.NewInteger(2))

	env, ok := unify.Unify(a, b, subst.Empty())
	require.True(t, ok)
	assert.True(t, term.Equal(term.NewInteger(1), subst.Walk(x, env)))
}

func TestUnifyListHeadTail(t *testing.T) {
	h := term.NewVariable("H")
	tl := term.NewVariable("T")
	pattern := term.NewLinkedListWithTail(tl, h)
	value := term.NewLinkedList(term.NewAtom("a"), term.NewAtom("b"), term.NewAtom("c"), term.NewAtom("d"))

	env, ok := unify.Unify(pattern, value, subst.Empty())
	require.True(t, ok)
	assert.True(t, term.Equal(term.NewAtom("a"), subst.Walk(h, env)))

	tail := subst.Ground(tl, env)
	assert.Equal(t, "[b, c, d]", tail.String())
}

func TestUnifyEmptyListOnlyMatchesEmptyOrVar(t *testing.T) {
	_, ok := unify.Unify(term.Empty(), term.NewLinkedList(term.NewAtom("a")), subst.Empty())
	assert.False(t, ok)

	env, ok := unify.Unify(term.Empty(), term.Empty(), subst.Empty())
	assert.True(t, ok)
	_ = env

	v := term.NewVariable("V")
	env, ok = unify.Unify(v, term.Empty(), subst.Empty())
	require.True(t, ok)
	assert.True(t, subst.Walk(v, env).(*term.LinkedList).IsEmpty())
}

func TestUnifyVariableBindsWholeList(t *testing.T) {
	result := term.NewLinkedList(term.NewInteger(1), term.NewInteger(2), term.NewInteger(3), term.NewInteger(4))
	x := term.NewVariable("X")
	env, ok := unify.Unify(x, result, subst.Empty())
	require.True(t, ok)
	assert.Equal(t, "[1, 2, 3, 4]", subst.Ground(x, env).String())
}

func TestCompareNumeric(t *testing.T) {
	cmp, ok := unify.Compare(term.NewInteger(1), term.NewFloat(2.0))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestCompareAtomsLexicographic(t *testing.T) {
	cmp, ok := unify.Compare(term.NewAtom("apple"), term.NewAtom("banana"))
	require.True(t, ok)
	assert.Equal(t, -1, cmp)
}

func TestCompareIncomparable(t *testing.T) {
	_, ok := unify.Compare(term.NewAtom("a"), term.NewInteger(1))
	assert.False(t, ok)
}
