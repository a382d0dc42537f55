package builtin_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indrikoterio/suiron-go/internal/builtin"
	"github.com/indrikoterio/suiron-go/internal/goal"
	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
)

func TestAppendClosedFirstArg(t *testing.T) {
	l1 := term.NewLinkedList(term.NewInteger(1), term.NewInteger(2))
	l2 := term.NewLinkedList(term.NewInteger(3), term.NewInteger(4))
	x := term.NewVariable("X")

	envs := builtin.Append(l1, l2, x, subst.Empty())
	require.Len(t, envs, 1)
	assert.Equal(t, "[1, 2, 3, 4]", subst.Ground(x, envs[0]).String())
}

func TestAppendEnumeratesSplits(t *testing.T) {
	a := term.NewVariable("A")
	b := term.NewVariable("B")
	l3 := term.NewLinkedList(term.NewInteger(1), term.NewInteger(2))

	envs := builtin.Append(a, b, l3, subst.Empty())
	require.Len(t, envs, 3)

	assert.Equal(t, "[]", subst.Ground(a, envs[0]).String())
	assert.Equal(t, "[1, 2]", subst.Ground(b, envs[0]).String())

	assert.Equal(t, "[1]", subst.Ground(a, envs[1]).String())
	assert.Equal(t, "[2]", subst.Ground(b, envs[1]).String())

	assert.Equal(t, "[1, 2]", subst.Ground(a, envs[2]).String())
	assert.Equal(t, "[]", subst.Ground(b, envs[2]).String())
}

func TestFunctorDecomposesComplex(t *testing.T) {
	c := term.NewComplex("mother", term.NewAtom("June"), term.NewAtom("Theodore"))
	f := term.NewVariable("F")
	a := term.NewVariable("A")

	env, ok, err := builtin.Functor(c, f, a, subst.Empty())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "mother", subst.Walk(f, env).String())
	assert.Equal(t, "2", subst.Walk(a, env).String())
}

func TestFunctorConstructsComplex(t *testing.T) {
	tv := term.NewVariable("T")
	env, ok, err := builtin.Functor(tv, term.NewAtom("point"), term.NewInteger(2), subst.Empty())
	require.NoError(t, err)
	require.True(t, ok)

	built := subst.Walk(tv, env).(*term.Complex)
	assert.Equal(t, "point", built.Functor.Value)
	assert.Len(t, built.Args, 2)
}

func TestFunctorRejectsNonAtomName(t *testing.T) {
	tv := term.NewVariable("T")
	_, _, err := builtin.Functor(tv, term.NewInteger(5), term.NewInteger(2), subst.Empty())
	require.Error(t, err)
	var typeErr *builtin.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestPrintWritesGroundedArgs(t *testing.T) {
	var buf bytes.Buffer
	builtin.Print(&buf, []term.Term{term.NewAtom("a"), term.NewInteger(1)}, subst.Empty())
	assert.Equal(t, "a, 1", buf.String())
}

type fakeProver struct {
	accept map[string]bool
}

func (f *fakeProver) Succeeds(call *term.Complex, env *subst.Env) bool {
	return f.accept[call.Args[0].String()]
}

func TestIncludeKeepsSucceedingElements(t *testing.T) {
	in := term.NewLinkedList(term.NewAtom("a"), term.NewAtom("b"), term.NewAtom("c"))
	out := term.NewVariable("Out")
	prover := &fakeProver{accept: map[string]bool{"a": true, "c": true}}

	env, ok := builtin.Include("is_good", in, out, subst.Empty(), prover)
	require.True(t, ok)
	assert.Equal(t, "[a, c]", subst.Ground(out, env).String())
}

func TestExcludeDropsSucceedingElements(t *testing.T) {
	in := term.NewLinkedList(term.NewAtom("a"), term.NewAtom("b"), term.NewAtom("c"))
	out := term.NewVariable("Out")
	prover := &fakeProver{accept: map[string]bool{"a": true, "c": true}}

	env, ok := builtin.Exclude("is_good", in, out, subst.Empty(), prover)
	require.True(t, ok)
	assert.Equal(t, "[b]", subst.Ground(out, env).String())
}

func TestCompareBuiltinNumeric(t *testing.T) {
	ok, err := builtin.CompareBuiltin("greater_than", term.NewInteger(5), term.NewInteger(3), subst.Empty())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = builtin.CompareBuiltin("less_than", term.NewInteger(5), term.NewInteger(3), subst.Empty())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompareBuiltinIncomparableFails(t *testing.T) {
	ok, err := builtin.CompareBuiltin("equal", term.NewAtom("a"), term.NewInteger(1), subst.Empty())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvalIntegerArithmeticStaysIntegerWhenExact(t *testing.T) {
	expr := &goal.ExprBinOp{
		Op:    goal.ArithDiv,
		Left:  &goal.ExprValue{Term: term.NewInteger(10)},
		Right: &goal.ExprValue{Term: term.NewInteger(2)},
	}
	v, err := builtin.Eval(expr, subst.Empty())
	require.NoError(t, err)
	assert.IsType(t, &term.Integer{}, v)
	assert.Equal(t, "5", v.String())
}

func TestEvalIntegerDivisionPromotesToFloatWhenInexact(t *testing.T) {
	expr := &goal.ExprBinOp{
		Op:    goal.ArithDiv,
		Left:  &goal.ExprValue{Term: term.NewInteger(7)},
		Right: &goal.ExprValue{Term: term.NewInteger(2)},
	}
	v, err := builtin.Eval(expr, subst.Empty())
	require.NoError(t, err)
	assert.IsType(t, &term.Float{}, v)
	assert.Equal(t, "3.5", v.String())
}

func TestEvalDivisionByZeroYieldsSentinel(t *testing.T) {
	expr := &goal.ExprBinOp{
		Op:    goal.ArithDiv,
		Left:  &goal.ExprValue{Term: term.NewInteger(1)},
		Right: &goal.ExprValue{Term: term.NewInteger(0)},
	}
	_, err := builtin.Eval(expr, subst.Empty())
	assert.ErrorIs(t, err, builtin.ErrDivByZero)
}

func TestEvalNonNumericOperandIsTypeError(t *testing.T) {
	expr := &goal.ExprValue{Term: term.NewAtom("x")}
	_, err := builtin.Eval(expr, subst.Empty())
	var typeErr *builtin.TypeError
	assert.ErrorAs(t, err, &typeErr)
}
