// Package lambdapi implements a type checker for a minimal dependently-typed
// lambda calculus (lambda-Pi with a single universe).
//
// The calculus has five term forms:
//   - Var: a reference to a bound (or postulated) name
//   - Universe: the type of types, written Type, with Type : Type
//   - Pi: the dependent function type (x: A) -> B, where B may mention x
//   - Lambda: an annotated abstraction \x: A. body
//   - App: function application
//
// Checking is bidirectional: Infer computes a type from a term, Check
// verifies a term against an expected type. Types are compared up to beta
// reduction and renaming of bound variables (definitional equality), so the
// package also provides capture-avoiding substitution, weak-head and full
// normalization, and alpha-equivalence.
//
// Terms are immutable. Every operation returns new terms and may share
// subterms between its input and its output.
package lambdapi

import "fmt"

// Term is a node of the lambda-Pi syntax tree. The set of implementations is
// closed: Var, Universe, Pi, Lambda and App.
type Term interface {
	fmt.Stringer
	isTerm()
}

// Var is a reference to a name bound by an enclosing binder or by a Context.
type Var struct {
	Name string
}

// Universe is the type of all types. There is a single universe and it is
// its own type.
type Universe struct{}

// Pi is the dependent function type (Param: ParamType) -> Body.
type Pi struct {
	Param     string
	ParamType Term
	Body      Term
}

// Lambda is the abstraction \Param: ParamType. Body. The parameter type is
// mandatory.
type Lambda struct {
	Param     string
	ParamType Term
	Body      Term
}

// App applies Func to Arg.
type App struct {
	Func Term
	Arg  Term
}

func (*Var) isTerm()      {}
func (*Universe) isTerm() {}
func (*Pi) isTerm()       {}
func (*Lambda) isTerm()   {}
func (*App) isTerm()      {}

var typeUniverse = &Universe{}

// NewVar creates a variable reference.
func NewVar(name string) *Var { return &Var{Name: name} }

// Type returns the universe. All universes are interchangeable; the same
// value is returned on every call.
func Type() *Universe { return typeUniverse }

// NewPi creates the dependent function type (param: paramType) -> body.
func NewPi(param string, paramType, body Term) *Pi {
	return &Pi{Param: param, ParamType: paramType, Body: body}
}

// Arrow creates the non-dependent function type from -> to. The parameter
// name is chosen so that it does not occur free in to.
func Arrow(from, to Term) *Pi {
	return NewPi(FreshName("_", FreeVars(to)), from, to)
}

// NewLambda creates the abstraction \param: paramType. body.
func NewLambda(param string, paramType, body Term) *Lambda {
	return &Lambda{Param: param, ParamType: paramType, Body: body}
}

// NewApp creates the application fn arg.
func NewApp(fn, arg Term) *App { return &App{Func: fn, Arg: arg} }

// Apply builds the left-nested application fn a1 a2 ... an.
func Apply(fn Term, args ...Term) Term {
	out := fn
	for _, a := range args {
		out = NewApp(out, a)
	}
	return out
}

// IsDependent reports whether the codomain of p mentions its parameter.
// Non-dependent Pi types are ordinary arrows.
func (p *Pi) IsDependent() bool { return Occurs(p.Param, p.Body) }

// Spine splits a term into its head and the arguments it is applied to,
// leftmost first: f a b c yields (f, [a b c]).
func Spine(t Term) (Term, []Term) {
	var rev []Term
	for {
		app, ok := t.(*App)
		if !ok {
			break
		}
		rev = append(rev, app.Arg)
		t = app.Func
	}
	args := make([]Term, len(rev))
	for i, a := range rev {
		args[len(rev)-1-i] = a
	}
	return t, args
}

// Identical reports whether two terms are syntactically the same, bound
// names included. Use AlphaEqual or DefinitionallyEqual to compare terms as
// the checker does.
func Identical(a, b Term) bool {
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		return ok && x.Name == y.Name
	case *Universe:
		_, ok := b.(*Universe)
		return ok
	case *Pi:
		y, ok := b.(*Pi)
		return ok && x.Param == y.Param && Identical(x.ParamType, y.ParamType) && Identical(x.Body, y.Body)
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x.Param == y.Param && Identical(x.ParamType, y.ParamType) && Identical(x.Body, y.Body)
	case *App:
		y, ok := b.(*App)
		return ok && Identical(x.Func, y.Func) && Identical(x.Arg, y.Arg)
	default:
		panic(unknownTerm(a))
	}
}

// Size returns the number of nodes in t.
func Size(t Term) int {
	switch x := t.(type) {
	case *Var, *Universe:
		return 1
	case *Pi:
		return 1 + Size(x.ParamType) + Size(x.Body)
	case *Lambda:
		return 1 + Size(x.ParamType) + Size(x.Body)
	case *App:
		return 1 + Size(x.Func) + Size(x.Arg)
	default:
		panic(unknownTerm(t))
	}
}

func unknownTerm(t Term) string {
	return fmt.Sprintf("lambdapi: unknown term %T", t)
}
