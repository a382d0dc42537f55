// Package goal defines Suiron's goal algebra: the tagged variant of
// provable expressions described in spec.md §3 ("Goal") and the control
// operators of §4.6 (conjunction, disjunction, not, cut, unification,
// comparison, arithmetic assignment).
//
// Goal values are produced by internal/parser (from source text) or by
// direct construction (the programmatic surface promised in spec.md §6),
// and consumed by internal/solver. This package itself performs no
// solving — it is pure data, grounded on the shape of
// pkg/minikanren/core.go's Goal type, generalized from a single function
// type into an explicit AST so internal/solver can walk it recursively,
// building lazy solution streams from ordinary closures, instead of the
// teacher's goroutine continuations (spec.md §9).
package goal

import "github.com/indrikoterio/suiron-go/internal/term"

// Goal is the common interface for every goal variant.
type Goal interface {
	String() string
	goalNode()
}

// Call invokes a predicate: look up clauses for (functor, arity) in the
// knowledge base and try each in turn (spec.md §4.6).
type Call struct {
	Pred *term.Complex
}

func (c *Call) goalNode() {}
func (c *Call) String() string { return c.Pred.String() }

// True always succeeds once without introducing bindings; it is the body
// of a fact, which spec.md §3 defines as "a rule whose body is the
// trivially-true goal".
type True struct{}

func (t *True) goalNode() {}
func (t *True) String() string { return "true" }

// Conj is an ordered conjunction: g1, g2, ..., gk. Solved left to right;
// backtracking flows right to left (spec.md §4.6).
type Conj struct {
	Goals []Goal
}

func (c *Conj) goalNode() {}
func (c *Conj) String() string { return joinGoals(c.Goals, ", ") }

// Disj is an ordered disjunction: g1; g2; .... Branches are tried in
// source order (spec.md §4.6).
type Disj struct {
	Goals []Goal
}

func (d *Disj) goalNode() {}
func (d *Disj) String() string { return joinGoals(d.Goals, "; ") }

// Not is negation-as-failure: succeeds once, introducing no bindings, iff
// Inner has zero solutions (spec.md §4.6).
type Not struct {
	Inner Goal
}

func (n *Not) goalNode() {}
func (n *Not) String() string { return "not " + n.Inner.String() }

// Cut is the `!` operator: succeeds once, and on backtracking prunes
// choice points created since entering the enclosing clause (spec.md
// §4.6, §9).
type Cut struct{}

func (c *Cut) goalNode() {}
func (c *Cut) String() string { return "!" }

// Unify is the `L = R` goal: unify and yield once on success.
type Unify struct {
	Left, Right term.Term
}

func (u *Unify) goalNode() {}
func (u *Unify) String() string { return u.Left.String() + " = " + u.Right.String() }

// CompareOp enumerates the comparison operators of spec.md §4.7.
type CompareOp int

const (
	OpGT CompareOp = iota
	OpLT
	OpGE
	OpLE
	OpEQ
	OpNE
)

func (op CompareOp) String() string {
	switch op {
	case OpGT:
		return ">"
	case OpLT:
		return "<"
	case OpGE:
		return ">="
	case OpLE:
		return "<="
	case OpEQ:
		return "=="
	case OpNE:
		return "!="
	default:
		return "?"
	}
}

// Compare is a comparison goal: walk both sides to ground form, compare
// per spec.md §4.3's numeric rules or lexicographically for atoms; yields
// once on success, no bindings introduced.
type Compare struct {
	Op          CompareOp
	Left, Right term.Term
}

func (c *Compare) goalNode() {}
func (c *Compare) String() string { return c.Left.String() + " " + c.Op.String() + " " + c.Right.String() }

// ArithOp enumerates the arithmetic operators of spec.md §4.7.
type ArithOp byte

const (
	ArithAdd ArithOp = '+'
	ArithSub ArithOp = '-'
	ArithMul ArithOp = '*'
	ArithDiv ArithOp = '/'
)

// Expr is an arithmetic-expression AST node, evaluated by internal/solver
// (or a standalone evaluator in internal/builtin) when solving an
// ArithAssign goal.
type Expr interface {
	exprString() string
}

// ExprValue wraps a bare term (a number or a variable to be walked)
// appearing as an arithmetic operand.
type ExprValue struct {
	Term term.Term
}

func (e *ExprValue) exprString() string { return e.Term.String() }

// ExprBinOp is a binary arithmetic operation.
type ExprBinOp struct {
	Op          ArithOp
	Left, Right Expr
}

func (e *ExprBinOp) exprString() string {
	return "(" + e.Left.exprString() + " " + string(e.Op) + " " + e.Right.exprString() + ")"
}

// ArithAssign evaluates Expr and unifies the result with Target (spec.md
// §4.6's "arithmetic assignment" goal).
type ArithAssign struct {
	Target term.Term
	Expr   Expr
}

func (a *ArithAssign) goalNode() {}
func (a *ArithAssign) String() string { return a.Target.String() + " = " + a.Expr.exprString() }

// Builtin invokes a registered built-in predicate by name and argument
// list (spec.md §4.7).
type Builtin struct {
	Name string
	Args []term.Term
}

func (b *Builtin) goalNode() {}
func (b *Builtin) String() string {
	s := b.Name + "("
	for i, a := range b.Args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")"
}

func joinGoals(goals []Goal, sep string) string {
	s := ""
	for i, g := range goals {
		if i > 0 {
			s += sep
		}
		s += g.String()
	}
	return s
}
