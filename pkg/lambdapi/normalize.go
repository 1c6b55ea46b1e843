package lambdapi

import "context"

// cancelCheckInterval is the number of beta steps between polls of the
// reducer's context.
const cancelCheckInterval = 1024

// Reducer performs beta reduction with an optional step budget.
//
// Fuel bounds the number of beta steps a Reducer may perform over its whole
// lifetime; zero means unbounded. When the budget is exhausted, or when Ctx
// is cancelled, reduction stops with a NonTermination TypeError. A Reducer is
// not safe for concurrent use; create one per check.
type Reducer struct {
	Fuel int
	Ctx  context.Context

	steps int
}

// NewReducer creates a reducer using the fuel of cfg.
func NewReducer(ctx context.Context, cfg Config) *Reducer {
	return &Reducer{Fuel: cfg.Fuel, Ctx: ctx}
}

// Steps returns the number of beta steps performed so far.
func (r *Reducer) Steps() int { return r.steps }

// tick accounts for one beta step on t.
func (r *Reducer) tick(t Term) error {
	r.steps++
	if r.Fuel > 0 && r.steps > r.Fuel {
		return &TypeError{Kind: NonTermination, Term: t, Steps: r.Fuel}
	}
	if r.Ctx != nil && r.steps%cancelCheckInterval == 0 {
		if err := r.Ctx.Err(); err != nil {
			return &TypeError{Kind: NonTermination, Term: t, Steps: r.steps, Cause: err}
		}
	}
	return nil
}

// Whnf reduces t to weak-head normal form: the head redex is contracted
// until the head of the application spine is no longer a Lambda applied to
// an argument. Subterms are left untouched.
//
// The spine is kept on an explicit stack, so long chains of head reductions
// run in constant Go stack space. If t is already in weak-head form it is
// returned unchanged.
func (r *Reducer) Whnf(t Term) (Term, error) {
	head, stack := unwind(t, nil)
	reduced := false
	for len(stack) > 0 {
		lam, ok := head.(*Lambda)
		if !ok {
			break
		}
		if err := r.tick(t); err != nil {
			return nil, err
		}
		arg := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if traceEnabled() {
			tracef("beta %s := %s", lam.Param, arg)
		}
		head, stack = unwind(Substitute(lam.Body, lam.Param, arg), stack)
		reduced = true
	}
	if !reduced {
		return t, nil
	}
	return rewind(head, stack), nil
}

// Normalize reduces t to full beta normal form, including under binders.
func (r *Reducer) Normalize(t Term) (Term, error) {
	w, err := r.Whnf(t)
	if err != nil {
		return nil, err
	}
	switch x := w.(type) {
	case *Var, *Universe:
		return x, nil
	case *Pi:
		paramType, body, err := r.normalizeBinder(x.ParamType, x.Body)
		if err != nil {
			return nil, err
		}
		return NewPi(x.Param, paramType, body), nil
	case *Lambda:
		paramType, body, err := r.normalizeBinder(x.ParamType, x.Body)
		if err != nil {
			return nil, err
		}
		return NewLambda(x.Param, paramType, body), nil
	case *App:
		// Stuck application: the head is not a Lambda, so only the head's
		// own subterms and the arguments can still contain redexes.
		head, args := Spine(x)
		head, err = r.Normalize(head)
		if err != nil {
			return nil, err
		}
		for i, a := range args {
			if args[i], err = r.Normalize(a); err != nil {
				return nil, err
			}
		}
		return Apply(head, args...), nil
	default:
		panic(unknownTerm(w))
	}
}

func (r *Reducer) normalizeBinder(paramType, body Term) (Term, Term, error) {
	pt, err := r.Normalize(paramType)
	if err != nil {
		return nil, nil, err
	}
	b, err := r.Normalize(body)
	if err != nil {
		return nil, nil, err
	}
	return pt, b, nil
}

// unwind pushes the arguments of t's application spine onto stack, last
// argument first, so the top of the stack is the first argument.
func unwind(t Term, stack []Term) (Term, []Term) {
	for {
		app, ok := t.(*App)
		if !ok {
			return t, stack
		}
		stack = append(stack, app.Arg)
		t = app.Func
	}
}

func rewind(head Term, stack []Term) Term {
	for i := len(stack) - 1; i >= 0; i-- {
		head = NewApp(head, stack[i])
	}
	return head
}

// Whnf reduces t to weak-head normal form without a step bound. It does not
// return if t has no weak-head normal form.
func Whnf(t Term) Term {
	w, _ := (&Reducer{}).Whnf(t)
	return w
}

// Normalize reduces t to beta normal form without a step bound. It does not
// return if t has no normal form.
func Normalize(t Term) Term {
	n, _ := (&Reducer{}).Normalize(t)
	return n
}

// Step performs one leftmost-outermost beta step. It reports false, and
// returns t itself, when t is in normal form.
func Step(t Term) (Term, bool) {
	switch x := t.(type) {
	case *Var, *Universe:
		return t, false
	case *App:
		if lam, ok := x.Func.(*Lambda); ok {
			return Substitute(lam.Body, lam.Param, x.Arg), true
		}
		if f, ok := Step(x.Func); ok {
			return NewApp(f, x.Arg), true
		}
		if a, ok := Step(x.Arg); ok {
			return NewApp(x.Func, a), true
		}
		return t, false
	case *Pi:
		if pt, ok := Step(x.ParamType); ok {
			return NewPi(x.Param, pt, x.Body), true
		}
		if b, ok := Step(x.Body); ok {
			return NewPi(x.Param, x.ParamType, b), true
		}
		return t, false
	case *Lambda:
		if pt, ok := Step(x.ParamType); ok {
			return NewLambda(x.Param, pt, x.Body), true
		}
		if b, ok := Step(x.Body); ok {
			return NewLambda(x.Param, x.ParamType, b), true
		}
		return t, false
	default:
		panic(unknownTerm(t))
	}
}
