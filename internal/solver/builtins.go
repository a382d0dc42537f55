package solver

import (
	"github.com/indrikoterio/suiron-go/internal/builtin"
	"github.com/indrikoterio/suiron-go/internal/subst"
	"github.com/indrikoterio/suiron-go/internal/term"
)

// solveBuiltin dispatches a predicate call by name to internal/builtin,
// if name names a registered built-in (spec.md §4.7). handled reports
// whether name was recognized at all, so solveCall can fall back to an
// ordinary knowledge-base lookup for user predicates.
func (s *Solver) solveBuiltin(name string, args []term.Term, env *subst.Env) (stream *Stream, handled bool, err error) {
	switch name {
	case "append":
		if len(args) != 3 {
			return nil, true, &builtin.ArityError{Name: name, Got: len(args), Expected: 3}
		}
		envs := builtin.Append(args[0], args[1], args[2], env)
		return streamOfEnvs(envs), true, nil

	case "functor":
		if len(args) != 3 {
			return nil, true, &builtin.ArityError{Name: name, Got: len(args), Expected: 3}
		}
		next, ok, ferr := builtin.Functor(args[0], args[1], args[2], env)
		if ferr != nil {
			return nil, true, ferr
		}
		if !ok {
			return nil, true, nil
		}
		return single(next), true, nil

	case "nl":
		if len(args) != 0 {
			return nil, true, &builtin.ArityError{Name: name, Got: len(args), Expected: 0}
		}
		builtin.Nl(s.Out)
		return single(env), true, nil

	case "print":
		builtin.Print(s.Out, args, env)
		return single(env), true, nil

	case "print_list":
		if len(args) != 1 {
			return nil, true, &builtin.ArityError{Name: name, Got: len(args), Expected: 1}
		}
		builtin.PrintList(s.Out, args[0], env)
		return single(env), true, nil

	case "include", "exclude":
		if len(args) != 3 {
			return nil, true, &builtin.ArityError{Name: name, Got: len(args), Expected: 3}
		}
		predName, ok := predicateName(args[0], env)
		if !ok {
			return nil, true, &builtin.TypeError{Where: name, Got: subst.Walk(args[0], env)}
		}
		var next *subst.Env
		var unified bool
		if name == "include" {
			next, unified = builtin.Include(predName, args[1], args[2], env, s)
		} else {
			next, unified = builtin.Exclude(predName, args[1], args[2], env, s)
		}
		if !unified {
			return nil, true, nil
		}
		return single(next), true, nil

	case "greater_than", "less_than", "greater_than_or_equal", "less_than_or_equal", "equal", "not_equal":
		if len(args) != 2 {
			return nil, true, &builtin.ArityError{Name: name, Got: len(args), Expected: 2}
		}
		ok, cerr := builtin.CompareBuiltin(name, args[0], args[1], env)
		if cerr != nil {
			return nil, true, cerr
		}
		if !ok {
			return nil, true, nil
		}
		return single(env), true, nil

	default:
		return nil, false, nil
	}
}

func predicateName(t term.Term, env *subst.Env) (string, bool) {
	a, ok := subst.Walk(t, env).(*term.Atom)
	if !ok {
		return "", false
	}
	return a.Value, true
}

// streamOfEnvs turns a finite slice of environments (as produced by
// builtin.Append's split enumeration) into a lazy Stream. builtin.Append
// never errors, so rest here never does either.
func streamOfEnvs(envs []*subst.Env) *Stream {
	if len(envs) == 0 {
		return nil
	}
	return &Stream{
		Env:  envs[0],
		rest: func() (*Stream, error) { return streamOfEnvs(envs[1:]), nil },
	}
}
