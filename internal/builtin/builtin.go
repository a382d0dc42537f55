// Package builtin implements Suiron's built-in predicates and arithmetic
// (spec.md §4.7).
//
// Grounded on pkg/minikanren/fact_store.go's unify-and-collect query loop
// for append/include/exclude's list-walking shape, and on
// pkg/minikanren/term_utils.go for functor/arity projection helpers. This
// package depends only on internal/term, internal/subst, internal/unify,
// and internal/goal (for arithmetic-expression evaluation) — never on
// internal/solver, to avoid an import cycle. Built-ins that need to ask
// "does this predicate call succeed at least once" (include/exclude) take
// a Prover, a narrow interface internal/solver satisfies; they never
// invoke the solver's own package directly.
package builtin

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/indrikoterio/suiron-go/internal/goal"
	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
	"github.com/indrikoterio/suiron-go/internal/unify"
)

// ArityError reports a built-in called with the wrong number of arguments
// (spec.md §7 kind 2).
type ArityError struct {
	Name     string
	Got      int
	Expected int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s/%d: expected %d argument(s)", e.Name, e.Got, e.Expected)
}

// TypeError reports a built-in applied to a walked term of the wrong kind
// (spec.md §7 kind 3), e.g. arithmetic on a non-numeric term.
type TypeError struct {
	Where string
	Got   term.Term
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s: unexpected term %s", e.Where, e.Got.String())
}

// ErrDivByZero is returned by Eval when an arithmetic expression divides
// by zero. Per spec.md §7 kind 4, this is a routine solver failure, not an
// error surfaced to the host — internal/solver checks for this specific
// sentinel and turns it into a failed goal rather than an aborted query.
var ErrDivByZero = errors.New("division by zero")

// Prover lets include/exclude ask whether a predicate call has at least
// one solution, without builtin depending on internal/solver.
type Prover interface {
	Succeeds(call *term.Complex, env *subst.Env) bool
}

// flatten walks l through env and returns its materialized heads plus
// whatever term terminates it (nil for a closed list, an unbound variable
// for an open one).
func flatten(t term.Term, env *subst.Env) (heads []term.Term, tail term.Term) {
	t = subst.Walk(t, env)
	l, ok := t.(*term.LinkedList)
	if !ok {
		return nil, t
	}
	heads = append(heads, l.Heads...)
	if l.Tail == nil {
		return heads, nil
	}
	more, rest := flatten(l.Tail, env)
	heads = append(heads, more...)
	return heads, rest
}

func listOf(heads []term.Term, tail term.Term) term.Term {
	if tail == nil {
		return &term.LinkedList{Heads: heads}
	}
	return &term.LinkedList{Heads: heads, Tail: tail, Bar: true}
}

// Append implements append(L1, L2, L3) (spec.md §4.7). When L1 is a
// closed (fully materialized) list, the result is deterministic. When L1
// is unbound and L3 is closed, Append enumerates every split of L3 into a
// prefix/suffix pair, matching standard Prolog's append/3 (spec.md §8
// scenario 5).
func Append(l1, l2, l3 term.Term, env *subst.Env) []*subst.Env {
	h1, t1 := flatten(l1, env)
	if t1 == nil {
		// L1 fully known: the result is h1 followed by L2.
		result := listOf(h1, l2)
		if next, ok := unify.Unify(l3, result, env); ok {
			return []*subst.Env{next}
		}
		return nil
	}

	if !t1.IsVar() {
		// L1's tail walked to something other than a variable or nil
		// (e.g. an atom) — not a list at all.
		return nil
	}

	h3, t3 := flatten(l3, env)
	var results []*subst.Env
	for k := 0; k <= len(h3); k++ {
		prefix := listOf(append([]term.Term{}, h3[:k]...), nil)
		suffix := listOf(append([]term.Term{}, h3[k:]...), t3)

		next, ok := unify.Unify(l1, prefix, env)
		if !ok {
			continue
		}
		next, ok = unify.Unify(l2, suffix, next)
		if !ok {
			continue
		}
		results = append(results, next)
	}
	return results
}

// Functor implements functor(T, F, A) (spec.md §4.7).
func Functor(t, f, a term.Term, env *subst.Env) (*subst.Env, bool, error) {
	walked := subst.Walk(t, env)
	if !walked.IsVar() {
		name, arity := indicatorOf(walked)
		next, ok := unify.Unify(f, term.NewAtom(name), env)
		if !ok {
			return env, false, nil
		}
		next, ok = unify.Unify(a, term.NewInteger(int64(arity)), next)
		return next, ok, nil
	}

	fWalked := subst.Walk(f, env)
	aWalked := subst.Walk(a, env)
	fAtom, ok := fWalked.(*term.Atom)
	if !ok {
		return env, false, &TypeError{Where: "functor/3", Got: fWalked}
	}
	aInt, ok := aWalked.(*term.Integer)
	if !ok {
		return env, false, &TypeError{Where: "functor/3", Got: aWalked}
	}
	if aInt.Value == 0 {
		next, ok := unify.Unify(t, fAtom, env)
		return next, ok, nil
	}
	args := make([]term.Term, aInt.Value)
	for i := range args {
		args[i] = term.NewVariable("")
	}
	next, ok := unify.Unify(t, &term.Complex{Functor: fAtom, Args: args}, env)
	return next, ok, nil
}

func indicatorOf(t term.Term) (string, int) {
	switch x := t.(type) {
	case *term.Complex:
		return x.Functor.Value, len(x.Args)
	case *term.Atom:
		return x.Value, 0
	default:
		return x.String(), 0
	}
}

// Print implements print(T1, ..., Tk): writes walked/ground terms to w,
// comma-separated, and always succeeds (spec.md §4.7).
func Print(w io.Writer, args []term.Term, env *subst.Env) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = subst.Ground(a, env).String()
	}
	fmt.Fprint(w, strings.Join(parts, ", "))
}

// Nl implements nl: writes a newline, always succeeds.
func Nl(w io.Writer) {
	fmt.Fprintln(w)
}

// PrintList implements print_list(L): writes a LinkedList in surface
// syntax.
func PrintList(w io.Writer, l term.Term, env *subst.Env) {
	fmt.Fprint(w, subst.Ground(l, env).String())
}

// Include implements include(pred, InList, OutList): keep elements for
// which pred(elem) succeeds (spec.md §4.7).
func Include(predName string, inList, outList term.Term, env *subst.Env, prove Prover) (*subst.Env, bool) {
	return filter(predName, inList, outList, env, prove, true)
}

// Exclude implements exclude(pred, InList, OutList): keep elements for
// which pred(elem) fails.
func Exclude(predName string, inList, outList term.Term, env *subst.Env, prove Prover) (*subst.Env, bool) {
	return filter(predName, inList, outList, env, prove, false)
}

func filter(predName string, inList, outList term.Term, env *subst.Env, prove Prover, keepOnSuccess bool) (*subst.Env, bool) {
	heads, _ := flatten(inList, env)
	var kept []term.Term
	for _, el := range heads {
		call := &term.Complex{Functor: term.NewAtom(predName), Args: []term.Term{el}}
		ok := prove.Succeeds(call, env)
		if ok == keepOnSuccess {
			kept = append(kept, el)
		}
	}
	return unify.Unify(outList, listOf(kept, nil), env)
}

// CompareBuiltin implements the named comparison predicates
// (greater_than/2, less_than/2, etc., spec.md §4.7) by delegating to
// internal/unify's numeric/lexicographic comparison.
func CompareBuiltin(name string, left, right term.Term, env *subst.Env) (bool, error) {
	l := subst.Walk(left, env)
	r := subst.Walk(right, env)
	cmp, ok := unify.Compare(l, r)
	if !ok {
		return false, nil // not comparable: the goal simply fails
	}
	switch name {
	case "greater_than":
		return cmp > 0, nil
	case "less_than":
		return cmp < 0, nil
	case "greater_than_or_equal":
		return cmp >= 0, nil
	case "less_than_or_equal":
		return cmp <= 0, nil
	case "equal":
		return cmp == 0, nil
	case "not_equal":
		return cmp != 0, nil
	default:
		return false, errors.Errorf("unknown comparison built-in %q", name)
	}
}

// Eval evaluates an arithmetic expression to a numeric term (spec.md
// §4.7). Division by zero yields ErrDivByZero (a solver failure, not an
// error); applying arithmetic to a non-numeric walked term yields a
// *TypeError (a query-aborting error, per spec.md §7).
func Eval(e goal.Expr, env *subst.Env) (term.Term, error) {
	switch x := e.(type) {
	case *goal.ExprValue:
		v := subst.Walk(x.Term, env)
		if !term.IsNumeric(v) {
			return nil, &TypeError{Where: "arithmetic expression", Got: v}
		}
		return v, nil
	case *goal.ExprBinOp:
		left, err := Eval(x.Left, env)
		if err != nil {
			return nil, err
		}
		right, err := Eval(x.Right, env)
		if err != nil {
			return nil, err
		}
		return applyArith(x.Op, left, right)
	default:
		return nil, errors.Errorf("unknown arithmetic expression %T", e)
	}
}

func applyArith(op goal.ArithOp, left, right term.Term) (term.Term, error) {
	li, lInt := left.(*term.Integer)
	ri, rInt := right.(*term.Integer)

	if lInt && rInt && op != goal.ArithDiv {
		switch op {
		case goal.ArithAdd:
			return term.NewInteger(li.Value + ri.Value), nil
		case goal.ArithSub:
			return term.NewInteger(li.Value - ri.Value), nil
		case goal.ArithMul:
			return term.NewInteger(li.Value * ri.Value), nil
		}
	}

	if lInt && rInt && op == goal.ArithDiv {
		if ri.Value == 0 {
			return nil, ErrDivByZero
		}
		if li.Value%ri.Value == 0 {
			return term.NewInteger(li.Value / ri.Value), nil
		}
		return term.NewFloat(float64(li.Value) / float64(ri.Value)), nil
	}

	lf, _ := term.AsFloat64(left)
	rf, _ := term.AsFloat64(right)
	switch op {
	case goal.ArithAdd:
		return term.NewFloat(lf + rf), nil
	case goal.ArithSub:
		return term.NewFloat(lf - rf), nil
	case goal.ArithMul:
		return term.NewFloat(lf * rf), nil
	case goal.ArithDiv:
		if rf == 0 {
			return nil, ErrDivByZero
		}
		return term.NewFloat(lf / rf), nil
	default:
		return nil, errors.Errorf("unknown arithmetic operator %q", rune(op))
	}
}
