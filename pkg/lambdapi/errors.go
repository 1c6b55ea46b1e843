package lambdapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a TypeError.
type ErrorKind int

const (
	// UnboundVariable: a Var is not bound by the context.
	UnboundVariable ErrorKind = iota + 1
	// NotAFunctionType: the function of an App does not have a Pi type.
	NotAFunctionType
	// TypeMismatch: an inferred type is not definitionally equal to the
	// expected one.
	TypeMismatch
	// NonTermination: reduction ran out of fuel or was cancelled.
	NonTermination
)

func (k ErrorKind) String() string {
	switch k {
	case UnboundVariable:
		return "UnboundVariable"
	case NotAFunctionType:
		return "NotAFunctionType"
	case TypeMismatch:
		return "TypeMismatch"
	case NonTermination:
		return "NonTermination"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinels matched by errors.Is against any TypeError of the same kind.
var (
	ErrUnboundVariable = errors.New("unbound variable")
	ErrNotAFunction    = errors.New("not a function type")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrNonTermination  = errors.New("reduction did not terminate")
)

// TypeError reports why a term failed to check.
//
// Term is the offending subterm exactly as it appeared in the checked tree
// (same pointer), so front ends that recorded node positions while parsing
// can locate it. Which of the remaining fields are set depends on Kind:
//   - UnboundVariable: Name
//   - NotAFunctionType: Inferred (the function's type); Term is the whole
//     App, so the term in function position is Term.(*App).Func
//   - TypeMismatch: Expected and Inferred
//   - NonTermination: Steps, and Cause when a context was cancelled
type TypeError struct {
	Kind     ErrorKind
	Term     Term
	Name     string
	Expected Term
	Inferred Term
	Steps    int
	Cause    error
}

func (e *TypeError) Error() string {
	switch e.Kind {
	case UnboundVariable:
		return fmt.Sprintf("unbound variable %s", e.Name)
	case NotAFunctionType:
		fn := e.Term
		if app, ok := fn.(*App); ok {
			fn = app.Func
		}
		return fmt.Sprintf("cannot apply %s: its type %s is not a function type", fn, e.Inferred)
	case TypeMismatch:
		return fmt.Sprintf("type mismatch in %s: expected %s, inferred %s", e.Term, e.Expected, e.Inferred)
	case NonTermination:
		if e.Cause != nil {
			return fmt.Sprintf("reduction stopped after %d steps: %v", e.Steps, e.Cause)
		}
		return fmt.Sprintf("reduction did not terminate within %d steps", e.Steps)
	default:
		return fmt.Sprintf("type error (%s)", e.Kind)
	}
}

// Unwrap exposes the kind sentinel and, for cancelled reductions, the
// context error.
func (e *TypeError) Unwrap() []error {
	var sentinel error
	switch e.Kind {
	case UnboundVariable:
		sentinel = ErrUnboundVariable
	case NotAFunctionType:
		sentinel = ErrNotAFunction
	case TypeMismatch:
		sentinel = ErrTypeMismatch
	case NonTermination:
		sentinel = ErrNonTermination
	}
	errs := make([]error, 0, 2)
	if sentinel != nil {
		errs = append(errs, sentinel)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// AsTypeError returns the TypeError in err's chain, if any.
func AsTypeError(err error) (*TypeError, bool) {
	var te *TypeError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
