// Package term implements Suiron's algebraic term model: atoms, numbers,
// logic variables, compound terms and linked lists.
//
// Terms are immutable once constructed and are shared structurally by the
// solver; nothing in this package ever mutates a Term after it is built.
package term

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Term is the common interface implemented by every term variant.
type Term interface {
	// String renders the term in Suiron's surface syntax (spec.md §6).
	String() string

	// IsVar reports whether this term is a LogicVariable or Anonymous.
	IsVar() bool

	// termNode is unexported so Term can only be implemented in this package.
	termNode()
}

// varCounter hands out globally unique ids for LogicVariable and Anonymous
// terms. Every parse or rule instantiation that introduces variables pulls
// fresh ids from here, matching spec.md §3's uniqueness invariant.
var varCounter int64

// NextVarID allocates a fresh, process-wide unique variable id.
func NextVarID() int64 {
	return atomic.AddInt64(&varCounter, 1)
}

// Atom is an interned string constant. Case is never folded: "mother" and
// "Mother" are distinct atoms.
type Atom struct {
	Value string
}

// NewAtom constructs an Atom.
func NewAtom(value string) *Atom { return &Atom{Value: value} }

func (a *Atom) termNode() {}
func (a *Atom) IsVar() bool { return false }
func (a *Atom) String() string {
	if needsQuoting(a.Value) {
		return `"` + a.Value + `"`
	}
	return a.Value
}

// needsQuoting reports whether an atom is printed inside double quotes: only
// the empty atom and atoms containing whitespace are. Every other atom is
// printed verbatim, so one holding punctuation or a double quote, one
// starting with a digit, or the atom "not" does not parse back to the same
// value.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	if strings.ContainsAny(s, " \t\n") {
		return true
	}
	return false
}

// Integer is a signed 64-bit whole number.
type Integer struct {
	Value int64
}

// NewInteger constructs an Integer.
func NewInteger(v int64) *Integer { return &Integer{Value: v} }

func (i *Integer) termNode() {}
func (i *Integer) IsVar() bool   { return false }
func (i *Integer) String() string { return strconv.FormatInt(i.Value, 10) }

// Float is an IEEE 754 double.
type Float struct {
	Value float64
}

// NewFloat constructs a Float.
func NewFloat(v float64) *Float { return &Float{Value: v} }

func (f *Float) termNode() {}
func (f *Float) IsVar() bool   { return false }
func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'f', -1, 64) }

// Variable is a logic variable: a printable name plus a unique numeric id.
// Identity for binding purposes is always the id, never the name — two
// variables sharing a name from different rule activations are distinct
// after renaming (spec.md §3).
type Variable struct {
	Name string
	ID   int64
}

// NewVariable allocates a fresh logic variable with the given printable name.
func NewVariable(name string) *Variable {
	return &Variable{Name: name, ID: NextVarID()}
}

func (v *Variable) termNode() {}
func (v *Variable) IsVar() bool   { return true }
func (v *Variable) String() string {
	if v.Name == "" {
		return fmt.Sprintf("$_G%d", v.ID)
	}
	return "$" + v.Name
}

// Anonymous is the wildcard variable `$_`. Every occurrence is a distinct
// variable (fresh id) and it is never bound in user-visible output.
type Anonymous struct {
	ID int64
}

// NewAnonymous allocates a fresh anonymous variable.
func NewAnonymous() *Anonymous {
	return &Anonymous{ID: NextVarID()}
}

func (a *Anonymous) termNode() {}
func (a *Anonymous) IsVar() bool   { return true }
func (a *Anonymous) String() string { return "$_" }

// Complex is a compound term: a functor (an Atom) applied to an ordered
// tuple of argument terms. Arity is len(Args).
type Complex struct {
	Functor *Atom
	Args    []Term
}

// NewComplex constructs a Complex term. It panics if functor is empty,
// since a zero-length functor can never have been produced by the parser
// or by correct programmatic construction.
func NewComplex(functor string, args ...Term) *Complex {
	if functor == "" {
		panic("term: complex functor must not be empty")
	}
	return &Complex{Functor: NewAtom(functor), Args: args}
}

func (c *Complex) termNode() {}
func (c *Complex) IsVar() bool { return false }
func (c *Complex) Arity() int  { return len(c.Args) }

func (c *Complex) String() string {
	var b strings.Builder
	b.WriteString(c.Functor.String())
	b.WriteByte('(')
	for i, a := range c.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// LinkedList is a sequence of head terms plus an optional tail. A nil Tail
// means the list is nil-terminated (a proper, fully materialized list); a
// non-nil Tail (a Variable, Anonymous, or another LinkedList) means the
// list's final segment is open. Bar records whether the tail was written
// with the `|` syntax; String does not read it and prints any non-nil Tail
// after ` | `.
type LinkedList struct {
	Heads []Term
	Tail  Term // nil means nil-terminated
	Bar   bool
}

// Empty is the canonical empty list: zero heads, nil-terminated.
func Empty() *LinkedList { return &LinkedList{} }

// NewLinkedList builds a nil-terminated list from the given heads.
func NewLinkedList(heads ...Term) *LinkedList {
	return &LinkedList{Heads: heads}
}

// NewLinkedListWithTail builds a list whose final segment is tail, written
// with the `|` syntax.
func NewLinkedListWithTail(tail Term, heads ...Term) *LinkedList {
	return &LinkedList{Heads: heads, Tail: tail, Bar: true}
}

func (l *LinkedList) termNode() {}
func (l *LinkedList) IsVar() bool { return false }

func (l *LinkedList) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, h := range l.Heads {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(h.String())
	}
	if l.Tail != nil {
		b.WriteString(" | ")
		b.WriteString(l.Tail.String())
	}
	b.WriteByte(']')
	return b.String()
}

// IsEmpty reports whether the list has no heads and a nil tail.
func (l *LinkedList) IsEmpty() bool {
	return len(l.Heads) == 0 && l.Tail == nil
}

// Decompose splits a non-empty list into its head and a remainder list
// sharing the same tail. It is the structural counterpart to spec.md
// §4.1's "head/tail decomposition for LinkedList".
func (l *LinkedList) Decompose() (head Term, rest *LinkedList, ok bool) {
	if len(l.Heads) == 0 {
		return nil, nil, false
	}
	return l.Heads[0], &LinkedList{Heads: l.Heads[1:], Tail: l.Tail, Bar: l.Bar}, true
}

// Cons prepends head to the list, returning a new list value (lists are
// immutable; this never mutates l).
func Cons(head Term, l *LinkedList) *LinkedList {
	heads := make([]Term, 0, len(l.Heads)+1)
	heads = append(heads, head)
	heads = append(heads, l.Heads...)
	return &LinkedList{Heads: heads, Tail: l.Tail, Bar: l.Bar}
}

// Equal performs standalone structural equality, ignoring any substitution
// environment (spec.md §4.1: "a standalone... operation... ignores any
// environment"). Two distinct logic variables are equal only if they share
// an id; Anonymous terms are never equal to one another.
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case *Atom:
		y, ok := b.(*Atom)
		return ok && x.Value == y.Value
	case *Integer:
		y, ok := b.(*Integer)
		return ok && x.Value == y.Value
	case *Float:
		y, ok := b.(*Float)
		return ok && x.Value == y.Value
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.ID == y.ID
	case *Anonymous:
		y, ok := b.(*Anonymous)
		return ok && x.ID == y.ID
	case *Complex:
		y, ok := b.(*Complex)
		if !ok || x.Functor.Value != y.Functor.Value || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *LinkedList:
		y, ok := b.(*LinkedList)
		if !ok || len(x.Heads) != len(y.Heads) {
			return false
		}
		for i := range x.Heads {
			if !Equal(x.Heads[i], y.Heads[i]) {
				return false
			}
		}
		if x.Tail == nil || y.Tail == nil {
			return x.Tail == nil && y.Tail == nil
		}
		return Equal(x.Tail, y.Tail)
	default:
		return false
	}
}

// IsNumeric reports whether t is an Integer or a Float.
func IsNumeric(t Term) bool {
	switch t.(type) {
	case *Integer, *Float:
		return true
	default:
		return false
	}
}

// AsFloat64 returns the numeric value of an Integer or Float as a float64.
func AsFloat64(t Term) (float64, bool) {
	switch x := t.(type) {
	case *Integer:
		return float64(x.Value), true
	case *Float:
		return x.Value, true
	default:
		return 0, false
	}
}
