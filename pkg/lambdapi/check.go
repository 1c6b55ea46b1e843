package lambdapi

import "context"

// Checker runs the bidirectional typing judgments. A Checker holds only its
// configuration, so one value may serve concurrent callers; every call gets
// its own Reducer and therefore its own fuel budget.
type Checker struct {
	cfg Config
}

// NewChecker creates a checker. Config.Trace turns on process-wide tracing.
func NewChecker(cfg Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Trace {
		EnableTrace()
	}
	return &Checker{cfg: cfg}, nil
}

// Config returns the checker's configuration.
func (c *Checker) Config() Config { return c.cfg }

// Typecheck infers the type of t in the empty context.
func (c *Checker) Typecheck(ctx context.Context, t Term) (Term, error) {
	return c.Infer(ctx, EmptyContext(), t)
}

// Infer computes the type of t under env.
func (c *Checker) Infer(ctx context.Context, env *Context, t Term) (Term, error) {
	j := &judge{r: NewReducer(ctx, c.cfg)}
	return j.infer(env, t)
}

// Check verifies that t has type expected under env.
func (c *Checker) Check(ctx context.Context, env *Context, t, expected Term) error {
	j := &judge{r: NewReducer(ctx, c.cfg)}
	return j.check(env, t, expected)
}

// Evaluate returns the beta normal form of t within the checker's fuel.
func (c *Checker) Evaluate(ctx context.Context, t Term) (Term, error) {
	return NewReducer(ctx, c.cfg).Normalize(t)
}

// Equal reports whether a and b are definitionally equal within the
// checker's fuel.
func (c *Checker) Equal(ctx context.Context, a, b Term) (bool, error) {
	return NewReducer(ctx, c.cfg).Equal(a, b)
}

// judge carries the per-call reducer through the mutually recursive
// judgments.
type judge struct {
	r *Reducer
}

func (j *judge) infer(env *Context, t Term) (Term, error) {
	if traceEnabled() {
		tracef("infer %s", t)
	}
	switch x := t.(type) {
	case *Var:
		typ, ok := env.Lookup(x.Name)
		if !ok {
			return nil, &TypeError{Kind: UnboundVariable, Term: x, Name: x.Name}
		}
		return typ, nil

	case *Universe:
		return Type(), nil

	case *Pi:
		if err := j.check(env, x.ParamType, Type()); err != nil {
			return nil, err
		}
		param, body := open(env, x.Param, x.Body)
		if err := j.check(env.Extend(param, x.ParamType), body, Type()); err != nil {
			return nil, err
		}
		return Type(), nil

	case *Lambda:
		if err := j.check(env, x.ParamType, Type()); err != nil {
			return nil, err
		}
		param, body := open(env, x.Param, x.Body)
		bodyType, err := j.infer(env.Extend(param, x.ParamType), body)
		if err != nil {
			return nil, err
		}
		return NewPi(param, x.ParamType, bodyType), nil

	case *App:
		fnType, err := j.infer(env, x.Func)
		if err != nil {
			return nil, err
		}
		whnf, err := j.r.Whnf(fnType)
		if err != nil {
			return nil, err
		}
		pi, ok := whnf.(*Pi)
		if !ok {
			return nil, &TypeError{Kind: NotAFunctionType, Term: x, Inferred: fnType}
		}
		if err := j.check(env, x.Arg, pi.ParamType); err != nil {
			return nil, err
		}
		// The result type is specialised to the argument actually applied.
		return Substitute(pi.Body, pi.Param, x.Arg), nil

	default:
		panic(unknownTerm(t))
	}
}

func (j *judge) check(env *Context, t, expected Term) error {
	if traceEnabled() {
		tracef("check %s : %s", t, expected)
	}
	inferred, err := j.infer(env, t)
	if err != nil {
		return err
	}
	eq, err := j.r.Equal(inferred, expected)
	if err != nil {
		return err
	}
	if !eq {
		return &TypeError{Kind: TypeMismatch, Term: t, Expected: expected, Inferred: inferred}
	}
	return nil
}

// open prepares a binder for entering its body under env. When env already
// mentions the parameter name, the binder is renamed so that types already
// in env keep referring to their own bindings.
func open(env *Context, param string, body Term) (string, Term) {
	if !env.Mentions(param) {
		return param, body
	}
	avoid := append(env.Names(), FreeVars(body)...)
	fresh := FreshName(param, avoid)
	for env.Mentions(fresh) {
		avoid = append(avoid, fresh)
		fresh = FreshName(param, avoid)
	}
	if traceEnabled() {
		tracef("rename binder %s to %s", param, fresh)
	}
	return fresh, Rename(body, param, fresh)
}

// Typecheck infers the type of t in the empty context with unbounded
// reduction.
func Typecheck(t Term) (Term, error) {
	return (&Checker{cfg: DefaultConfig()}).Typecheck(context.Background(), t)
}

// Infer computes the type of t under env with unbounded reduction.
func Infer(env *Context, t Term) (Term, error) {
	return (&Checker{cfg: DefaultConfig()}).Infer(context.Background(), env, t)
}

// Check verifies t against expected under env with unbounded reduction.
func Check(env *Context, t, expected Term) error {
	return (&Checker{cfg: DefaultConfig()}).Check(context.Background(), env, t, expected)
}

// Evaluate returns the beta normal form of t. It is Normalize, exposed for
// callers that display reduced terms next to their types.
func Evaluate(t Term) Term { return Normalize(t) }
