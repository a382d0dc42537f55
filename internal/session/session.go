// Package session glues the parser, knowledge base, and solver together
// into the host-facing surface described in spec.md §6: parse a knowledge
// base, parse a query goal, solve it, and render bindings for the query's
// own variables. cmd/suiron and cmd/suiron-kb are both thin wrappers over
// this package.
package session

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/indrikoterio/suiron-go/internal/goal"
	"github.com/indrikoterio/suiron-go/internal/kb"
	"github.com/indrikoterio/suiron-go/internal/parser"
	"github.com/indrikoterio/suiron-go/internal/solver"
	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
)

// Log is the session-level logger (AMBIENT STACK: logrus, matching
// internal/solver's Log). Silent by default; a host CLI can raise its
// level from a --verbose flag.
var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

// ParseKB parses a full knowledge-base source text into a KB (spec.md
// §6's parse_kb). The returned error, if any, is a *parser.ParseError
// wrapped with github.com/pkg/errors so callers can add file-path context
// via errors.Wrap without losing errors.As access to the underlying type.
func ParseKB(src string) (*kb.KB, error) {
	rules, err := parser.ParseProgram(src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing knowledge base")
	}
	base := kb.New()
	for _, r := range rules {
		base.AddRule(r)
	}
	Log.WithField("clauses", base.Len()).Debug("parsed knowledge base")
	return base, nil
}

// Query is a parsed goal plus the names of the logic variables it
// introduces, in first-occurrence order — the "query variables" spec.md
// §6's bindings_for reports on.
type Query struct {
	Goal goal.Goal
	Vars []*term.Variable
}

// ParseGoal parses a single query goal (spec.md §6's parse_goal),
// collecting its named variables for later use with BindingsFor.
func ParseGoal(src string) (*Query, error) {
	g, err := parser.ParseGoal(src)
	if err != nil {
		return nil, errors.Wrap(err, "parsing goal")
	}
	return &Query{Goal: g, Vars: collectVars(g)}, nil
}

// Solve runs q against base and returns the lazy solution stream (spec.md
// §6's solve). Built-in arity/type errors abort the query: one met while
// finding the first solution is returned here, and one met later is
// returned by the stream's Next.
func Solve(q *Query, base *kb.KB) (*solver.Stream, error) {
	return solver.New(base).Solve(q.Goal, subst.Empty())
}

// Binding is one query variable's printable, grounded value.
type Binding struct {
	Name  string
	Value string
}

// BindingsFor renders every named variable in q against env, in
// first-occurrence order (spec.md §6's bindings_for). Variables env
// leaves unbound print as their own name, matching a top-level Prolog
// REPL's convention of echoing an unbound query variable back unchanged.
func BindingsFor(q *Query, env *subst.Env) []Binding {
	out := make([]Binding, 0, len(q.Vars))
	for _, v := range q.Vars {
		out = append(out, Binding{Name: v.Name, Value: subst.Ground(v, env).String()})
	}
	return out
}

// collectVars walks g and returns its named logic variables (Anonymous
// excluded — `$_` is never reported as a query binding) in the order
// each name is first seen, deduplicated by variable id.
func collectVars(g goal.Goal) []*term.Variable {
	c := &varCollector{seen: make(map[int64]bool)}
	c.walkGoal(g)
	return c.order
}

type varCollector struct {
	seen  map[int64]bool
	order []*term.Variable
}

func (c *varCollector) addTerm(t term.Term) {
	switch x := t.(type) {
	case *term.Variable:
		if !c.seen[x.ID] {
			c.seen[x.ID] = true
			c.order = append(c.order, x)
		}
	case *term.Complex:
		for _, a := range x.Args {
			c.addTerm(a)
		}
	case *term.LinkedList:
		for _, h := range x.Heads {
			c.addTerm(h)
		}
		if x.Tail != nil {
			c.addTerm(x.Tail)
		}
	}
}

func (c *varCollector) walkGoal(g goal.Goal) {
	switch x := g.(type) {
	case *goal.Call:
		c.addTerm(x.Pred)
	case *goal.Conj:
		for _, sub := range x.Goals {
			c.walkGoal(sub)
		}
	case *goal.Disj:
		for _, sub := range x.Goals {
			c.walkGoal(sub)
		}
	case *goal.Not:
		c.walkGoal(x.Inner)
	case *goal.Unify:
		c.addTerm(x.Left)
		c.addTerm(x.Right)
	case *goal.Compare:
		c.addTerm(x.Left)
		c.addTerm(x.Right)
	case *goal.ArithAssign:
		c.addTerm(x.Target)
		c.walkExpr(x.Expr)
	case *goal.Builtin:
		for _, a := range x.Args {
			c.addTerm(a)
		}
	}
}

func (c *varCollector) walkExpr(e goal.Expr) {
	switch x := e.(type) {
	case *goal.ExprValue:
		c.addTerm(x.Term)
	case *goal.ExprBinOp:
		c.walkExpr(x.Left)
		c.walkExpr(x.Right)
	}
}
