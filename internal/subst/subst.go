// Package subst implements Suiron's substitution environment: a persistent
// mapping from logic-variable identity to bound term (spec.md §4.2).
//
// The teacher's equivalent type (pkg/minikanren/core.go's Substitution)
// guards every operation with a sync.RWMutex because its solver evaluates
// disjunction branches on separate goroutines. Suiron's solver is
// single-threaded and cooperative (spec.md §5), so Env drops that locking
// entirely and relies purely on persistent-map copy-on-write semantics for
// cheap backtracking: extending an Env never mutates the one it was
// extended from, so a choice point can hold onto its pre-extension Env for
// free.
package subst

import "github.com/indrikoterio/suiron-go/internal/term"

// Env is an immutable substitution environment. The zero value is a valid,
// empty environment.
type Env struct {
	bindings map[int64]term.Term
}

// Empty returns a fresh, empty environment.
func Empty() *Env {
	return &Env{}
}

// Walk follows variable bindings in env until it reaches a non-variable
// term or an unbound variable. It does not descend into compound
// arguments (spec.md §4.2).
func Walk(t term.Term, env *Env) term.Term {
	for t.IsVar() {
		id, ok := varID(t)
		if !ok {
			return t
		}
		bound, found := env.lookup(id)
		if !found {
			return t
		}
		t = bound
	}
	return t
}

// Ground recursively walks and rebuilds t so that every bound variable is
// replaced by its value; unbound variables are left in place (spec.md
// §4.2). Ground is idempotent: Ground(Ground(t, env), env) == Ground(t, env).
func Ground(t term.Term, env *Env) term.Term {
	t = Walk(t, env)
	switch x := t.(type) {
	case *term.Complex:
		args := make([]term.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = Ground(a, env)
		}
		return &term.Complex{Functor: x.Functor, Args: args}
	case *term.LinkedList:
		heads := make([]term.Term, len(x.Heads))
		for i, h := range x.Heads {
			heads[i] = Ground(h, env)
		}
		var tail term.Term
		if x.Tail != nil {
			tail = Ground(x.Tail, env)
		}
		return flattenList(&term.LinkedList{Heads: heads, Tail: tail, Bar: x.Bar})
	default:
		return t
	}
}

// Extend returns a new environment with one additional binding. The
// receiver is left unmodified, so callers can cheaply roll back to it on
// backtrack simply by discarding the returned Env. Extend does not itself
// check for occurs (spec.md §9: occurs-check is not performed, see
// internal/unify's package doc).
func (env *Env) Extend(id int64, t term.Term) *Env {
	next := make(map[int64]term.Term, len(env.bindings)+1)
	for k, v := range env.bindings {
		next[k] = v
	}
	next[id] = t
	return &Env{bindings: next}
}

// Size returns the number of bindings currently held.
func (env *Env) Size() int {
	return len(env.bindings)
}

func (env *Env) lookup(id int64) (term.Term, bool) {
	if env == nil {
		return nil, false
	}
	t, ok := env.bindings[id]
	return t, ok
}

// flattenList merges a list's tail into its own heads whenever that tail is
// itself a (now-grounded) LinkedList, so that `[a | [b, c]]` grounds to the
// single flat list `[a, b, c]` rather than a nested, unprintable shape
// (spec.md §4.1: "a LinkedList is treated as a sequence whose final tail is
// either nil or a variable").
func flattenList(l *term.LinkedList) *term.LinkedList {
	if inner, ok := l.Tail.(*term.LinkedList); ok {
		heads := make([]term.Term, 0, len(l.Heads)+len(inner.Heads))
		heads = append(heads, l.Heads...)
		heads = append(heads, inner.Heads...)
		return flattenList(&term.LinkedList{Heads: heads, Tail: inner.Tail, Bar: inner.Bar})
	}
	return l
}

// varID extracts the binding-identity id of a variable term, or false if t
// is not a variable.
func varID(t term.Term) (int64, bool) {
	switch x := t.(type) {
	case *term.Variable:
		return x.ID, true
	case *term.Anonymous:
		return x.ID, true
	default:
		return 0, false
	}
}
