package parser

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/indrikoterio/suiron-go/internal/goal"
	"github.com/indrikoterio/suiron-go/internal/kb"
	"github.com/indrikoterio/suiron-go/internal/term"
)

// ParseError reports a malformed program with its source position
// (spec.md §7 kind 1). The parser returns it wrapped with
// github.com/pkg/errors.WithStack; errors.As still reaches it.
type ParseError struct {
	Pos Pos
	Msg string
}

func (e *ParseError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

func parseErrf(pos Pos, format string, args ...any) error {
	return errors.WithStack(&ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)})
}

// Parser is a recursive-descent parser over a token stream, producing
// term.Term, *kb.Rule, and goal.Goal values (spec.md §4.4).
type Parser struct {
	scan *Scanner
	tok  Token
	vars map[string]*term.Variable // reset per clause: scoping is per-clause (spec.md §4.4)
}

// New returns a Parser over src, positioned at the first token.
func New(src string) (*Parser, error) {
	p := &Parser{scan: NewScanner(src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) next() error {
	tok, err := p.scan.Next()
	if err != nil {
		lerr := err.(*LexError)
		return parseErrf(lerr.Pos, "%s", lerr.Msg)
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(kind TokenKind, what string) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, parseErrf(p.tok.Pos, "expected %s, found %q", what, p.tok.Text)
	}
	tok := p.tok
	if err := p.next(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// ParseProgram parses a full knowledge-base source text into an ordered
// list of rules (spec.md §4.4, §4.5).
func ParseProgram(src string) ([]*kb.Rule, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	var rules []*kb.Rule
	for p.tok.Kind != TokEOF {
		r, err := p.parseClause()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// ParseGoal parses a single goal — the query-side counterpart of a clause
// body (spec.md §6) — optionally terminated by '.'.
func ParseGoal(src string) (goal.Goal, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	p.vars = make(map[string]*term.Variable)
	g, err := p.parseDisjunction()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind == TokPeriod {
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if p.tok.Kind != TokEOF {
		return nil, parseErrf(p.tok.Pos, "unexpected trailing input %q", p.tok.Text)
	}
	return g, nil
}

// ParseTerm parses a single standalone term (spec.md §6's programmatic
// surface needs this for parsing individual arguments/results).
func ParseTerm(src string) (term.Term, error) {
	p, err := New(src)
	if err != nil {
		return nil, err
	}
	p.vars = make(map[string]*term.Variable)
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokEOF {
		return nil, parseErrf(p.tok.Pos, "unexpected trailing input %q", p.tok.Text)
	}
	return t, nil
}

func (p *Parser) parseClause() (*kb.Rule, error) {
	p.vars = make(map[string]*term.Variable)

	head, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	headComplex, ok := asComplex(head)
	if !ok {
		return nil, parseErrf(p.tok.Pos, "clause head must be a predicate, found %s", head.String())
	}

	var body goal.Goal
	if p.tok.Kind == TokArrow {
		if err := p.next(); err != nil {
			return nil, err
		}
		body, err = p.parseDisjunction()
		if err != nil {
			return nil, err
		}
	} else {
		body = &goal.True{}
	}

	if _, err := p.expect(TokPeriod, "'.'"); err != nil {
		return nil, err
	}
	return &kb.Rule{Head: headComplex, Body: body}, nil
}

// asComplex treats a bare Atom as a zero-arity predicate, so `fact.` is a
// valid clause head just as `fact().` would be.
func asComplex(t term.Term) (*term.Complex, bool) {
	switch x := t.(type) {
	case *term.Complex:
		return x, true
	case *term.Atom:
		return &term.Complex{Functor: x, Args: nil}, true
	default:
		return nil, false
	}
}

func (p *Parser) parseDisjunction() (goal.Goal, error) {
	first, err := p.parseConjunction()
	if err != nil {
		return nil, err
	}
	goals := []goal.Goal{first}
	for p.tok.Kind == TokSemi {
		if err := p.next(); err != nil {
			return nil, err
		}
		next, err := p.parseConjunction()
		if err != nil {
			return nil, err
		}
		goals = append(goals, next)
	}
	if len(goals) == 1 {
		return goals[0], nil
	}
	return &goal.Disj{Goals: goals}, nil
}

func (p *Parser) parseConjunction() (goal.Goal, error) {
	first, err := p.parseGoal()
	if err != nil {
		return nil, err
	}
	goals := []goal.Goal{first}
	for p.tok.Kind == TokComma {
		if err := p.next(); err != nil {
			return nil, err
		}
		next, err := p.parseGoal()
		if err != nil {
			return nil, err
		}
		goals = append(goals, next)
	}
	if len(goals) == 1 {
		return goals[0], nil
	}
	return &goal.Conj{Goals: goals}, nil
}

func (p *Parser) parseGoal() (goal.Goal, error) {
	switch p.tok.Kind {
	case TokCut:
		if err := p.next(); err != nil {
			return nil, err
		}
		return &goal.Cut{}, nil
	case TokNot:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseGoal()
		if err != nil {
			return nil, err
		}
		return &goal.Not{Inner: inner}, nil
	case TokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseDisjunction()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	}

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	switch p.tok.Kind {
	case TokEq:
		if err := p.next(); err != nil {
			return nil, err
		}
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if plain, ok := expr.(*goal.ExprValue); ok {
			return &goal.Unify{Left: left, Right: plain.Term}, nil
		}
		return &goal.ArithAssign{Target: left, Expr: expr}, nil
	case TokGT, TokLT, TokGE, TokLE, TokEqEq, TokNotEq:
		op := compareOpFor(p.tok.Kind)
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return &goal.Compare{Op: op, Left: left, Right: right}, nil
	}

	complex, ok := asComplex(left)
	if !ok {
		return nil, parseErrf(p.tok.Pos, "expected a goal, found %s", left.String())
	}
	return &goal.Call{Pred: complex}, nil
}

func compareOpFor(k TokenKind) goal.CompareOp {
	switch k {
	case TokGT:
		return goal.OpGT
	case TokLT:
		return goal.OpLT
	case TokGE:
		return goal.OpGE
	case TokLE:
		return goal.OpLE
	case TokEqEq:
		return goal.OpEQ
	case TokNotEq:
		return goal.OpNE
	default:
		return goal.OpEQ
	}
}

// parseExpr parses an arithmetic expression: additive precedence over
// multiplicative precedence over primaries (spec.md §4.7).
func (p *Parser) parseExpr() (goal.Expr, error) {
	left, err := p.parseMulExpr()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokPlus || p.tok.Kind == TokMinus {
		op := goal.ArithAdd
		if p.tok.Kind == TokMinus {
			op = goal.ArithSub
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseMulExpr()
		if err != nil {
			return nil, err
		}
		left = &goal.ExprBinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMulExpr() (goal.Expr, error) {
	left, err := p.parseExprPrimary()
	if err != nil {
		return nil, err
	}
	for p.tok.Kind == TokStar || p.tok.Kind == TokSlash {
		op := goal.ArithMul
		if p.tok.Kind == TokSlash {
			op = goal.ArithDiv
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseExprPrimary()
		if err != nil {
			return nil, err
		}
		left = &goal.ExprBinOp{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseExprPrimary() (goal.Expr, error) {
	if p.tok.Kind == TokLParen {
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return &goal.ExprValue{Term: t}, nil
}

// parseTerm parses a single term: atom, number, variable, compound, or
// list (spec.md §4.1, §4.4). It never consumes arithmetic operators —
// those belong to parseExpr's higher-level grammar.
func (p *Parser) parseTerm() (term.Term, error) {
	tok := p.tok
	switch tok.Kind {
	case TokAtom:
		if err := p.next(); err != nil {
			return nil, err
		}
		if p.tok.Kind == TokLParen {
			if err := p.next(); err != nil {
				return nil, err
			}
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokRParen, "')'"); err != nil {
				return nil, err
			}
			return &term.Complex{Functor: term.NewAtom(tok.Text), Args: args}, nil
		}
		return term.NewAtom(tok.Text), nil

	case TokVariable:
		if err := p.next(); err != nil {
			return nil, err
		}
		if v, ok := p.vars[tok.Text]; ok {
			return v, nil
		}
		v := term.NewVariable(tok.Text)
		p.vars[tok.Text] = v
		return v, nil

	case TokAnonymous:
		if err := p.next(); err != nil {
			return nil, err
		}
		return term.NewAnonymous(), nil

	case TokInteger:
		if err := p.next(); err != nil {
			return nil, err
		}
		v, convErr := strconv.ParseInt(tok.Text, 10, 64)
		if convErr != nil {
			return nil, parseErrf(tok.Pos, "malformed integer %q", tok.Text)
		}
		return term.NewInteger(v), nil

	case TokFloat:
		if err := p.next(); err != nil {
			return nil, err
		}
		v, convErr := strconv.ParseFloat(tok.Text, 64)
		if convErr != nil {
			return nil, parseErrf(tok.Pos, "malformed float %q", tok.Text)
		}
		return term.NewFloat(v), nil

	case TokMinus:
		return p.parseNegativeNumber(tok)

	case TokLBracket:
		return p.parseList()

	case TokLParen:
		if err := p.next(); err != nil {
			return nil, err
		}
		inner, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokRParen, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, parseErrf(tok.Pos, "expected a term, found %q", tok.Text)
	}
}

// parseNegativeNumber handles a leading '-' on a numeric literal
// (spec.md §6: `Integer: -?[0-9]+`, `Float: -?[0-9]+\.[0-9]+`). The
// lexer has no lookahead to tell a unary minus from binary subtraction,
// so it always emits TokMinus; parseTerm only reaches here when the
// minus opens a fresh term, meaning it must be negating a literal.
func (p *Parser) parseNegativeNumber(minus Token) (term.Term, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	tok := p.tok
	switch tok.Kind {
	case TokInteger:
		if err := p.next(); err != nil {
			return nil, err
		}
		v, convErr := strconv.ParseInt(tok.Text, 10, 64)
		if convErr != nil {
			return nil, parseErrf(tok.Pos, "malformed integer %q", tok.Text)
		}
		return term.NewInteger(-v), nil

	case TokFloat:
		if err := p.next(); err != nil {
			return nil, err
		}
		v, convErr := strconv.ParseFloat(tok.Text, 64)
		if convErr != nil {
			return nil, parseErrf(tok.Pos, "malformed float %q", tok.Text)
		}
		return term.NewFloat(-v), nil

	default:
		return nil, parseErrf(minus.Pos, "expected a number after '-', found %q", tok.Text)
	}
}

func (p *Parser) parseArgs() ([]term.Term, error) {
	if p.tok.Kind == TokRParen {
		return nil, nil
	}
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	args := []term.Term{first}
	for p.tok.Kind == TokComma {
		if err := p.next(); err != nil {
			return nil, err
		}
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}
	return args, nil
}

func (p *Parser) parseList() (term.Term, error) {
	if _, err := p.expect(TokLBracket, "'['"); err != nil {
		return nil, err
	}
	if p.tok.Kind == TokRBracket {
		if err := p.next(); err != nil {
			return nil, err
		}
		return term.Empty(), nil
	}

	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	heads := []term.Term{first}
	for p.tok.Kind == TokComma {
		if err := p.next(); err != nil {
			return nil, err
		}
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		heads = append(heads, next)
	}

	var tail term.Term
	bar := false
	if p.tok.Kind == TokBar {
		if err := p.next(); err != nil {
			return nil, err
		}
		tail, err = p.parseTerm()
		if err != nil {
			return nil, err
		}
		bar = true
	}

	if _, err := p.expect(TokRBracket, "']'"); err != nil {
		return nil, err
	}
	return &term.LinkedList{Heads: heads, Tail: tail, Bar: bar}, nil
}
