package subst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
)

func TestWalkUnbound(t *testing.T) {
	x := term.NewVariable("X")
	env := subst.Empty()
	assert.Same(t, term.Term(x), subst.Walk(x, env))
}

func TestWalkChain(t *testing.T) {
	x := term.NewVariable("X")
	y := term.NewVariable("Y")
	a := term.NewAtom("a")

	env := subst.Empty().Extend(x.ID, y).Extend(y.ID, a)
	assert.True(t, term.Equal(a, subst.Walk(x, env)))
}

func TestExtendDoesNotMutateReceiver(t *testing.T) {
	x := term.NewVariable("X")
	env1 := subst.Empty()
	env2 := env1.Extend(x.ID, term.NewAtom("a"))

	require.Equal(t, 0, env1.Size())
	require.Equal(t, 1, env2.Size())
	assert.Same(t, term.Term(x), subst.Walk(x, env1))
}

func TestGroundReplacesBoundLeavesUnboundVars(t *testing.T) {
	x := term.NewVariable("X")
	y := term.NewVariable("Y")
	c := term.NewComplex("p", x, y)

	env := subst.Empty().Extend(x.ID, term.NewAtom("a"))
	grounded := subst.Ground(c, env)

	assert.Equal(t, "p(a, $Y)", grounded.String())
}

func TestGroundIsIdempotent(t *testing.T) {
	x := term.NewVariable("X")
	env := subst.Empty().Extend(x.ID, term.NewComplex("f", term.NewAtom("a")))

	once := subst.Ground(x, env)
	twice := subst.Ground(once, env)
	assert.True(t, term.Equal(once, twice))
}

func TestGroundOverLinkedList(t *testing.T) {
	x := term.NewVariable("X")
	tail := term.NewVariable("T")
	l := term.NewLinkedListWithTail(tail, x, term.NewAtom("b"))

	env := subst.Empty().Extend(x.ID, term.NewAtom("a")).Extend(tail.ID, term.Empty())
	grounded := subst.Ground(l, env)

	assert.Equal(t, "[a, b]", grounded.String())
}
