// Package unify implements Suiron's structural unification algorithm
// (spec.md §4.3).
//
// Occurs-check: NOT performed, matching the teacher's unify in
// pkg/minikanren/primitives.go (neither of its two unify variants walks
// the opposite side before binding a variable to check for self-reference)
// and matching the default behavior of mainstream Prolog systems. Binding
// a variable to a term that (after further bindings) contains itself is
// possible; grounding such a term will recurse forever. This is a
// deliberate, documented trade-off (spec.md §9), not an oversight.
package unify

import (
	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
)

// Unify attempts to make a and b structurally equal under env, returning
// the extended environment and true on success, or false on failure —
// unification failure is a routine outcome, not an error (spec.md §7).
// On failure the returned environment may already hold bindings made for
// arguments or list elements before the mismatching one.
func Unify(a, b term.Term, env *subst.Env) (*subst.Env, bool) {
	a = subst.Walk(a, env)
	b = subst.Walk(b, env)

	// Rule 1: identical variable.
	if sameVar(a, b) {
		return env, true
	}

	// Rule 2: either side a variable.
	if id, ok := bindID(a); ok {
		return env.Extend(id, b), true
	}
	if id, ok := bindID(b); ok {
		return env.Extend(id, a), true
	}

	switch x := a.(type) {
	case *term.Atom:
		y, ok := b.(*term.Atom)
		return env, ok && x.Value == y.Value

	case *term.Integer:
		switch y := b.(type) {
		case *term.Integer:
			return env, x.Value == y.Value
		case *term.Float:
			return env, float64(x.Value) == y.Value
		default:
			return env, false
		}

	case *term.Float:
		switch y := b.(type) {
		case *term.Float:
			return env, x.Value == y.Value
		case *term.Integer:
			return env, x.Value == float64(y.Value)
		default:
			return env, false
		}

	case *term.Complex:
		y, ok := b.(*term.Complex)
		if !ok || x.Functor.Value != y.Functor.Value || len(x.Args) != len(y.Args) {
			return env, false
		}
		for i := range x.Args {
			var success bool
			env, success = Unify(x.Args[i], y.Args[i], env)
			if !success {
				return env, false
			}
		}
		return env, true

	case *term.LinkedList:
		y, ok := b.(*term.LinkedList)
		if !ok {
			return env, false
		}
		return unifyLists(x, y, env)

	default:
		return env, false
	}
}

// sameVar reports whether a and b are the identical variable (rule 1).
func sameVar(a, b term.Term) bool {
	idA, okA := bindID(a)
	idB, okB := bindID(b)
	return okA && okB && idA == idB && sameKind(a, b)
}

func sameKind(a, b term.Term) bool {
	switch a.(type) {
	case *term.Variable:
		_, ok := b.(*term.Variable)
		return ok
	case *term.Anonymous:
		_, ok := b.(*term.Anonymous)
		return ok
	}
	return false
}

// bindID returns the binding id of t if it is an unbound variable term.
func bindID(t term.Term) (int64, bool) {
	switch x := t.(type) {
	case *term.Variable:
		return x.ID, true
	case *term.Anonymous:
		return x.ID, true
	default:
		return 0, false
	}
}

// unifyLists implements spec.md §4.3 rule 7: peel one head from each list
// and unify; unify remainders; a variable tail unifies with whatever
// remains on the other side; the empty list unifies only with the empty
// list or an unbound tail variable.
func unifyLists(a, b *term.LinkedList, env *subst.Env) (*subst.Env, bool) {
	if len(a.Heads) == 0 && len(b.Heads) == 0 {
		return unifyTails(a.Tail, b.Tail, env)
	}
	if len(a.Heads) == 0 {
		return unifyOpenAgainstList(a.Tail, b, env)
	}
	if len(b.Heads) == 0 {
		return unifyOpenAgainstList(b.Tail, a, env)
	}

	env, ok := Unify(a.Heads[0], b.Heads[0], env)
	if !ok {
		return env, false
	}
	restA := &term.LinkedList{Heads: a.Heads[1:], Tail: a.Tail, Bar: a.Bar}
	restB := &term.LinkedList{Heads: b.Heads[1:], Tail: b.Tail, Bar: b.Bar}
	return unifyLists(restA, restB, env)
}

// unifyOpenAgainstList unifies an exhausted side's tail (open, possibly
// nil/variable) against a list that still has elements remaining.
func unifyOpenAgainstList(tail term.Term, rest *term.LinkedList, env *subst.Env) (*subst.Env, bool) {
	if tail == nil {
		// The empty list unifies only with the empty list.
		return env, len(rest.Heads) == 0 && rest.Tail == nil
	}
	return Unify(tail, rest, env)
}

// unifyTails unifies the final tails once both sides have been fully
// peeled: nil unifies with nil; a variable tail binds to whatever remains
// (here, an empty list).
func unifyTails(a, b term.Term, env *subst.Env) (*subst.Env, bool) {
	if a == nil && b == nil {
		return env, true
	}
	if a == nil {
		return Unify(b, term.Empty(), env)
	}
	if b == nil {
		return Unify(a, term.Empty(), env)
	}
	return Unify(a, b, env)
}

// Compare implements the numeric/atom comparison rules shared by spec.md
// §4.3 (numeric constants) and §4.7 (comparison built-ins). It reports
// -1, 0, or 1, or ok=false if a and b are not comparable (not both numeric
// and not both atoms).
func Compare(a, b term.Term) (cmp int, ok bool) {
	if term.IsNumeric(a) && term.IsNumeric(b) {
		fa, _ := term.AsFloat64(a)
		fb, _ := term.AsFloat64(b)
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}
	atomA, okA := a.(*term.Atom)
	atomB, okB := b.(*term.Atom)
	if okA && okB {
		switch {
		case atomA.Value < atomB.Value:
			return -1, true
		case atomA.Value > atomB.Value:
			return 1, true
		default:
			return 0, true
		}
	}
	return 0, false
}
