// Package solver implements Suiron's SLD-resolution engine: depth-first
// search with chronological backtracking over a knowledge base (spec.md
// §4.6, §9).
//
// Grounded on pkg/minikanren/core.go's Goal/Stream vocabulary and
// pkg/minikanren/primitives.go's Conj/Disj/Run combinator shapes, and
// pkg/minikanren/control_flow.go's Ifte/SoftCut (commit-on-first-solution
// goals) as the nearest teacher analog to cut's commit semantics,
// generalized here to full barrier-id clause pruning.
//
// Divergence from the teacher (spec.md §5, §9): pkg/minikanren's Goal is
// `func(*Store) *Stream`, backed by goroutines and channels — each
// disjunction branch runs on its own goroutine, feeding a shared channel.
// That fits the teacher's parallel-search design, but spec.md §5 requires
// a single-threaded, lock-free solver, and §9 says explicitly: "Do not
// rely on host-language coroutines; an explicit stack makes cut simpler
// and avoids call-stack overflow." This package therefore represents a
// solution set as Stream, a lazy cons-list built from ordinary closures
// (no goroutines, no channels), and tracks cut with an explicit shared
// *barrier value per clause activation rather than the teacher's
// goroutine-cancellation approach.
package solver

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/indrikoterio/suiron-go/internal/builtin"
	"github.com/indrikoterio/suiron-go/internal/goal"
	"github.com/indrikoterio/suiron-go/internal/kb"
	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
	"github.com/indrikoterio/suiron-go/internal/unify"
)

// Log is the package-level logger for the backtracking trace (Debug
// level only — silent by default, per SPEC_FULL.md's AMBIENT STACK).
var Log = logrus.New()

func init() {
	Log.SetLevel(logrus.WarnLevel)
}

// Stream is a lazy, immutable cons-list of solution environments. A nil
// *Stream (with a nil error) denotes "no (more) solutions". Because a
// later element of the stream may only be reachable by re-entering a
// clause the solver hasn't tried yet, a type/arity error discovered deep
// in a later alternative must be able to surface even after earlier
// elements were already consumed — so rest is computed lazily and can
// itself fail (spec.md §7: built-in errors "abort the current query and
// are surfaced to the host").
type Stream struct {
	Env  *subst.Env
	rest func() (*Stream, error)
}

// Next returns the current solution's environment, and the stream of
// remaining solutions. A nil *Stream receiver is the exhausted stream:
// Next returns (nil, nil, nil). A non-nil error means the search for the
// next solution aborted with a query error (spec.md §7); env is still
// the current, already-valid solution in that case.
func (s *Stream) Next() (env *subst.Env, rest *Stream, err error) {
	if s == nil {
		return nil, nil, nil
	}
	rest, err = s.rest()
	return s.Env, rest, err
}

// All drains every solution from s, stopping at the first error.
func All(s *Stream) ([]*subst.Env, error) {
	var out []*subst.Env
	for s != nil {
		env, next, err := s.Next()
		out = append(out, env)
		if err != nil {
			return out, err
		}
		s = next
	}
	return out, nil
}

func single(env *subst.Env) *Stream {
	return &Stream{Env: env, rest: func() (*Stream, error) { return nil, nil }}
}

// barrier is shared by a clause activation's body and its Call-level
// clause-iteration loop. Cut sets fired; once fired, no further clause
// alternatives or body-internal backtracking for that activation run
// (spec.md §4.6, §9).
type barrier struct {
	fired bool
}

// restFunc produces the stream following some already-consumed prefix.
type restFunc func() (*Stream, error)

// appendStream concatenates a (already computed) with a lazily computed
// continuation, short-circuiting if b has fired since a was produced —
// this is what makes cut prune both remaining disjuncts/clauses and
// backtracking into goals that preceded the cut.
func appendStream(a *Stream, restThunk restFunc, b *barrier) (*Stream, error) {
	if a == nil {
		if b != nil && b.fired {
			return nil, nil
		}
		return restThunk()
	}
	return &Stream{
		Env: a.Env,
		rest: func() (*Stream, error) {
			if b != nil && b.fired {
				return nil, nil
			}
			next, err := a.rest()
			if err != nil {
				return nil, err
			}
			return appendStream(next, restThunk, b)
		},
	}, nil
}

// bind is the stream monad's bind: for every env in s, run f(env) and
// concatenate the resulting streams in order (depth-first).
func bind(s *Stream, b *barrier, f func(*subst.Env) (*Stream, error)) (*Stream, error) {
	if s == nil {
		return nil, nil
	}
	head, err := f(s.Env)
	if err != nil {
		return nil, err
	}
	return appendStream(head, func() (*Stream, error) {
		next, err := s.rest()
		if err != nil {
			return nil, err
		}
		return bind(next, b, f)
	}, b)
}

// Solver carries the knowledge base solving runs against. It implements
// builtin.Prover so include/exclude can ask whether a predicate call
// succeeds without internal/builtin importing this package.
type Solver struct {
	KB  *kb.KB
	Out io.Writer
}

// New returns a Solver over the given knowledge base, printing built-ins
// (print, nl, print_list) to os.Stdout by default.
func New(base *kb.KB) *Solver {
	return &Solver{KB: base, Out: os.Stdout}
}

// Solve returns the lazy stream of environments that satisfy g starting
// from env (spec.md §4.6, §6).
func (s *Solver) Solve(g goal.Goal, env *subst.Env) (*Stream, error) {
	return s.solve(g, env, nil)
}

// Succeeds reports whether call has at least one solution (the
// builtin.Prover contract used by include/exclude). A query error while
// checking is treated as failure — include/exclude themselves never
// raise arity/type errors, so this only loses a would-be abort in the
// unusual case of a user predicate with a genuinely broken body.
func (s *Solver) Succeeds(call *term.Complex, env *subst.Env) bool {
	stream, err := s.solve(&goal.Call{Pred: call}, env, nil)
	if err != nil {
		return false
	}
	return stream != nil
}

func (s *Solver) solve(g goal.Goal, env *subst.Env, b *barrier) (*Stream, error) {
	switch x := g.(type) {
	case *goal.True:
		return single(env), nil

	case *goal.Cut:
		if b != nil {
			b.fired = true
		}
		return single(env), nil

	case *goal.Unify:
		next, ok := unify.Unify(x.Left, x.Right, env)
		if !ok {
			return nil, nil
		}
		return single(next), nil

	case *goal.Compare:
		ok, err := compareTerms(x, env)
		if err != nil || !ok {
			return nil, err
		}
		return single(env), nil

	case *goal.ArithAssign:
		return s.solveArithAssign(x, env)

	case *goal.Not:
		inner, err := s.solve(x.Inner, env, nil)
		if err != nil {
			return nil, err
		}
		if inner != nil {
			return nil, nil
		}
		return single(env), nil

	case *goal.Conj:
		return s.solveConj(x.Goals, env, b)

	case *goal.Disj:
		return s.solveDisj(x.Goals, env, b)

	case *goal.Builtin:
		stream, handled, err := s.solveBuiltin(x.Name, x.Args, env)
		if !handled {
			return nil, nil
		}
		return stream, err

	case *goal.Call:
		return s.solveCall(x.Pred, env)

	default:
		return nil, nil
	}
}

func (s *Solver) solveConj(goals []goal.Goal, env *subst.Env, b *barrier) (*Stream, error) {
	if len(goals) == 0 {
		return single(env), nil
	}
	first, err := s.solve(goals[0], env, b)
	if err != nil {
		return nil, err
	}
	return bind(first, b, func(next *subst.Env) (*Stream, error) {
		return s.solveConj(goals[1:], next, b)
	})
}

func (s *Solver) solveDisj(goals []goal.Goal, env *subst.Env, b *barrier) (*Stream, error) {
	if len(goals) == 0 {
		return nil, nil
	}
	first, err := s.solve(goals[0], env, b)
	if err != nil {
		return nil, err
	}
	return appendStream(first, func() (*Stream, error) {
		return s.solveDisj(goals[1:], env, b)
	}, b)
}

// solveCall resolves a predicate call against the knowledge base, trying
// renamed clauses in KB order (spec.md §4.6: "For each rule, in KB
// order"), establishing a fresh barrier per invocation so cut inside a
// clause body prunes exactly this call's remaining clause alternatives.
func (s *Solver) solveCall(pred *term.Complex, env *subst.Env) (*Stream, error) {
	if stream, handled, err := s.solveBuiltin(pred.Functor.Value, pred.Args, env); handled {
		return stream, err
	}

	rules := s.KB.GetRules(pred.Functor.Value, len(pred.Args))
	Log.WithFields(logrus.Fields{"predicate": pred.String(), "clauses": len(rules)}).Debug("solveCall")
	return s.solveClauses(pred, rules, env)
}

func (s *Solver) solveClauses(pred *term.Complex, rules []*kb.Rule, env *subst.Env) (*Stream, error) {
	if len(rules) == 0 {
		return nil, nil
	}
	renamed := kb.Rename(rules[0])
	b := &barrier{}

	var clauseStream *Stream
	if headEnv, ok := unify.Unify(pred, renamed.Head, env); ok {
		var err error
		clauseStream, err = s.solve(renamed.Body, headEnv, b)
		if err != nil {
			return nil, err
		}
	}

	return appendStream(clauseStream, func() (*Stream, error) {
		return s.solveClauses(pred, rules[1:], env)
	}, b)
}

func compareTerms(c *goal.Compare, env *subst.Env) (bool, error) {
	l := subst.Walk(c.Left, env)
	r := subst.Walk(c.Right, env)
	var name string
	switch c.Op {
	case goal.OpGT:
		name = "greater_than"
	case goal.OpLT:
		name = "less_than"
	case goal.OpGE:
		name = "greater_than_or_equal"
	case goal.OpLE:
		name = "less_than_or_equal"
	case goal.OpEQ:
		name = "equal"
	case goal.OpNE:
		name = "not_equal"
	}
	return builtin.CompareBuiltin(name, l, r, env)
}

func (s *Solver) solveArithAssign(a *goal.ArithAssign, env *subst.Env) (*Stream, error) {
	v, err := builtin.Eval(a.Expr, env)
	if err != nil {
		if err == builtin.ErrDivByZero {
			return nil, nil
		}
		return nil, err
	}
	next, ok := unify.Unify(a.Target, v, env)
	if !ok {
		return nil, nil
	}
	return single(next), nil
}
