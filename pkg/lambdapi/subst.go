package lambdapi

import "github.com/samber/lo"

// Substitute returns target with every free occurrence of name replaced by
// replacement.
//
// Substitution is capture-avoiding:
//   - A binder equal to name shadows it; the binder's body is left alone.
//   - A binder that occurs free in replacement, and whose body mentions name,
//     is renamed to a fresh name before substitution enters the body, so the
//     free variables of replacement stay free.
//
// target and replacement are not modified. Untouched subterms of target may
// be shared with the result.
func Substitute(target Term, name string, replacement Term) Term {
	return subst(target, name, replacement, FreeVars(replacement))
}

// Rename replaces free occurrences of oldName in t with the variable newName.
func Rename(t Term, oldName, newName string) Term {
	if oldName == newName {
		return t
	}
	return Substitute(t, oldName, NewVar(newName))
}

func subst(t Term, name string, repl Term, replFree []string) Term {
	switch x := t.(type) {
	case *Var:
		if x.Name == name {
			return repl
		}
		return x
	case *Universe:
		return x
	case *App:
		return NewApp(subst(x.Func, name, repl, replFree), subst(x.Arg, name, repl, replFree))
	case *Pi:
		param, paramType, body := substBinder(x.Param, x.ParamType, x.Body, name, repl, replFree)
		return NewPi(param, paramType, body)
	case *Lambda:
		param, paramType, body := substBinder(x.Param, x.ParamType, x.Body, name, repl, replFree)
		return NewLambda(param, paramType, body)
	default:
		panic(unknownTerm(t))
	}
}

// substBinder handles the binder cases shared by Pi and Lambda. The
// parameter type is outside the binder's scope and is always substituted.
func substBinder(param string, paramType, body Term, name string, repl Term, replFree []string) (string, Term, Term) {
	paramType = subst(paramType, name, repl, replFree)
	if param == name || !Occurs(name, body) {
		return param, paramType, body
	}
	if lo.Contains(replFree, param) {
		avoid := append(append(FreeVars(body), replFree...), name)
		fresh := FreshName(param, avoid)
		body = Rename(body, param, fresh)
		param = fresh
	}
	return param, paramType, subst(body, name, repl, replFree)
}
