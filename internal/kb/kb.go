// Package kb implements Suiron's knowledge base: an ordered map from
// predicate indicator (functor, arity) to an ordered list of clauses
// (spec.md §4.5).
//
// Grounded on pkg/minikanren/fact_store.go's FactStore (an ID-keyed map
// plus position indexes for fast lookup under live assert/retract), but
// simplified: spec.md §4.5/§5 specify a knowledge base that is built once
// before solving and treated as read-only during a query ("Knowledge-base
// clause lists are append-only during a query"), so there is no need for
// the teacher's secondary indexing or ID-based retraction machinery —
// clause selection is always "the full ordered list for this indicator",
// exactly as spec.md §4.6 requires ("For each rule, in KB order").
package kb

import (
	"fmt"

	"github.com/indrikoterio/suiron-go/internal/goal"
	"github.com/indrikoterio/suiron-go/internal/term"
)

// Rule is a clause: a head (a Complex term) plus a body Goal. A fact is a
// Rule whose Body is *goal.True (spec.md §3).
type Rule struct {
	Head *term.Complex
	Body goal.Goal
}

// NewFact builds a fact: a rule whose body trivially succeeds.
func NewFact(head *term.Complex) *Rule {
	return &Rule{Head: head, Body: &goal.True{}}
}

// NewRule builds a rule with an explicit body.
func NewRule(head *term.Complex, body goal.Goal) *Rule {
	return &Rule{Head: head, Body: body}
}

func (r *Rule) String() string {
	if _, ok := r.Body.(*goal.True); ok {
		return r.Head.String() + "."
	}
	return r.Head.String() + " :- " + r.Body.String() + "."
}

// Indicator identifies a predicate by functor name and arity.
type Indicator struct {
	Functor string
	Arity   int
}

func (ind Indicator) String() string {
	return fmt.Sprintf("%s/%d", ind.Functor, ind.Arity)
}

// IndicatorOf returns the predicate indicator for a Complex term.
func IndicatorOf(c *term.Complex) Indicator {
	return Indicator{Functor: c.Functor.Value, Arity: len(c.Args)}
}

// KB is the knowledge base: clauses grouped by predicate indicator, in
// insertion order both across and within indicators.
type KB struct {
	clauses map[Indicator][]*Rule
	order   []Indicator
}

// New returns an empty knowledge base.
func New() *KB {
	return &KB{clauses: make(map[Indicator][]*Rule)}
}

// AddRule appends r to the clause list keyed by its head's (functor, arity)
// (spec.md §4.5).
func (kb *KB) AddRule(r *Rule) {
	ind := IndicatorOf(r.Head)
	if _, exists := kb.clauses[ind]; !exists {
		kb.order = append(kb.order, ind)
	}
	kb.clauses[ind] = append(kb.clauses[ind], r)
}

// GetRules returns the ordered clause list for (functor, arity). The
// returned slice is the same backing array the KB holds internally, since
// callers never mutate it during solving (spec.md §5: "read-only during
// solving").
func (kb *KB) GetRules(functor string, arity int) []*Rule {
	return kb.clauses[Indicator{Functor: functor, Arity: arity}]
}

// Indicators returns every predicate indicator known to the KB, in the
// order each was first added.
func (kb *KB) Indicators() []Indicator {
	return kb.order
}

// Len returns the total number of clauses in the knowledge base.
func (kb *KB) Len() int {
	n := 0
	for _, rules := range kb.clauses {
		n += len(rules)
	}
	return n
}

// Rename produces a fresh-variable copy of r: every LogicVariable and
// Anonymous occurring in head and body is replaced by a newly allocated
// one, with occurrences of the same source variable sharing the same
// fresh id (spec.md §4.6: "Rule renaming is essential: without it,
// recursive predicates would alias variable ids between recursive
// activations"). Scoping is per-clause (spec.md §4.4).
func Rename(r *Rule) *Rule {
	ren := newRenamer()
	return &Rule{
		Head: ren.term(r.Head).(*term.Complex),
		Body: ren.goal(r.Body),
	}
}

type renamer struct {
	vars map[int64]term.Term
}

func newRenamer() *renamer {
	return &renamer{vars: make(map[int64]term.Term)}
}

func (ren *renamer) term(t term.Term) term.Term {
	switch x := t.(type) {
	case *term.Variable:
		if fresh, ok := ren.vars[x.ID]; ok {
			return fresh
		}
		fresh := term.NewVariable(x.Name)
		ren.vars[x.ID] = fresh
		return fresh
	case *term.Anonymous:
		if fresh, ok := ren.vars[x.ID]; ok {
			return fresh
		}
		fresh := term.NewAnonymous()
		ren.vars[x.ID] = fresh
		return fresh
	case *term.Complex:
		args := make([]term.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = ren.term(a)
		}
		return &term.Complex{Functor: x.Functor, Args: args}
	case *term.LinkedList:
		heads := make([]term.Term, len(x.Heads))
		for i, h := range x.Heads {
			heads[i] = ren.term(h)
		}
		var tail term.Term
		if x.Tail != nil {
			tail = ren.term(x.Tail)
		}
		return &term.LinkedList{Heads: heads, Tail: tail, Bar: x.Bar}
	default:
		// Atom, Integer, Float carry no variables.
		return t
	}
}

func (ren *renamer) goal(g goal.Goal) goal.Goal {
	switch x := g.(type) {
	case *goal.True:
		return x
	case *goal.Cut:
		return x
	case *goal.Call:
		return &goal.Call{Pred: ren.term(x.Pred).(*term.Complex)}
	case *goal.Conj:
		return &goal.Conj{Goals: ren.goals(x.Goals)}
	case *goal.Disj:
		return &goal.Disj{Goals: ren.goals(x.Goals)}
	case *goal.Not:
		return &goal.Not{Inner: ren.goal(x.Inner)}
	case *goal.Unify:
		return &goal.Unify{Left: ren.term(x.Left), Right: ren.term(x.Right)}
	case *goal.Compare:
		return &goal.Compare{Op: x.Op, Left: ren.term(x.Left), Right: ren.term(x.Right)}
	case *goal.ArithAssign:
		return &goal.ArithAssign{Target: ren.term(x.Target), Expr: ren.expr(x.Expr)}
	case *goal.Builtin:
		args := make([]term.Term, len(x.Args))
		for i, a := range x.Args {
			args[i] = ren.term(a)
		}
		return &goal.Builtin{Name: x.Name, Args: args}
	default:
		return g
	}
}

func (ren *renamer) goals(gs []goal.Goal) []goal.Goal {
	out := make([]goal.Goal, len(gs))
	for i, g := range gs {
		out[i] = ren.goal(g)
	}
	return out
}

func (ren *renamer) expr(e goal.Expr) goal.Expr {
	switch x := e.(type) {
	case *goal.ExprValue:
		return &goal.ExprValue{Term: ren.term(x.Term)}
	case *goal.ExprBinOp:
		return &goal.ExprBinOp{Op: x.Op, Left: ren.expr(x.Left), Right: ren.expr(x.Right)}
	default:
		return e
	}
}
