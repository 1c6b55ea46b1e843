// Package session is the stateful front end over the checker. A Session
// accumulates postulates (assume) and definitions (def) and runs the
// statements of programs against them.
//
// Definitions are transparent: before a term is checked, every defined name
// it mentions is replaced by the definition's body, newest definition first.
// Postulates live in the typing context and never reduce.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
	"github.com/gitrdm/lambdapi/pkg/prelude"
	"github.com/gitrdm/lambdapi/pkg/syntax"
)

// ErrRedefinition is returned when a def or assume reuses a name.
var ErrRedefinition = errors.New("name already defined")

// Error locates a failure in the source of the statement that caused it.
type Error struct {
	// File is empty for interactive input.
	File string
	Pos  syntax.Pos
	Err  error
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%s: %v", e.File, e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Pos, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Definition is a named, checked term. Value and Type are fully expanded:
// they mention postulates but no other definitions.
type Definition struct {
	Name  string
	Value lambdapi.Term
	Type  lambdapi.Term
}

// Result is the outcome of one statement. Type is set for every kind; Value
// is the normal form for eval and the expanded body for def.
type Result struct {
	Stmt  syntax.Stmt
	Type  lambdapi.Term
	Value lambdapi.Term
}

func (r Result) String() string {
	switch r.Stmt.Kind {
	case syntax.StmtDef:
		return fmt.Sprintf("%s : %s", r.Stmt.Name, r.Type)
	case syntax.StmtAssume:
		return fmt.Sprintf("%s : %s (assumed)", r.Stmt.Name, r.Type)
	case syntax.StmtEval:
		return fmt.Sprintf("%s : %s", r.Value, r.Type)
	default:
		return r.Type.String()
	}
}

// Session holds the state of one interactive run or one batch file. It is
// not safe for concurrent use; run one Session per goroutine.
type Session struct {
	cfg     Config
	checker *lambdapi.Checker
	env     *lambdapi.Context
	defs    []Definition
	byName  map[string]int
}

// New creates a session and loads the prelude when cfg.Prelude is set.
func New(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	checker, err := lambdapi.NewChecker(cfg.Checker)
	if err != nil {
		return nil, err
	}
	s := &Session{cfg: cfg, checker: checker, byName: map[string]int{}}
	if cfg.Prelude {
		prog, err := prelude.Program()
		if err != nil {
			return nil, err
		}
		if _, err := s.ExecProgram(context.Background(), prelude.Name, prog); err != nil {
			return nil, fmt.Errorf("prelude: %w", err)
		}
	}
	return s, nil
}

// Config returns the session's configuration.
func (s *Session) Config() Config { return s.cfg }

// Context returns the postulates as a typing context.
func (s *Session) Context() *lambdapi.Context { return s.env }

// Definitions returns the definitions, oldest first.
func (s *Session) Definitions() []Definition { return slices.Clone(s.defs) }

// Lookup returns the definition of name.
func (s *Session) Lookup(name string) (Definition, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Definition{}, false
	}
	return s.defs[i], true
}

// Names returns every defined and postulated name, sorted.
func (s *Session) Names() []string {
	names := append(lo.Map(s.defs, func(d Definition, _ int) string { return d.Name }), s.env.Names()...)
	names = lo.Uniq(names)
	slices.Sort(names)
	return names
}

func (s *Session) declared(name string) bool {
	_, ok := s.byName[name]
	return ok || s.env.Binds(name)
}

// Expand replaces every defined name occurring free in t by its value,
// newest definition first. Terms that mention no definition are returned
// unchanged, so parser positions stay valid for them.
func (s *Session) Expand(t lambdapi.Term) lambdapi.Term {
	for i := len(s.defs) - 1; i >= 0; i-- {
		d := s.defs[i]
		if lambdapi.Occurs(d.Name, t) {
			t = lambdapi.Substitute(t, d.Name, d.Value)
		}
	}
	return t
}

// Run parses src as a program and executes it. file names the source in
// error messages and may be empty.
func (s *Session) Run(ctx context.Context, file, src string) ([]Result, error) {
	prog, err := syntax.ParseProgram(src)
	if err != nil {
		var se *syntax.Error
		if errors.As(err, &se) {
			return nil, &Error{File: file, Pos: se.Pos, Err: errors.New(se.Msg)}
		}
		return nil, err
	}
	return s.ExecProgram(ctx, file, prog)
}

// ExecProgram executes the statements of prog in order and stops at the
// first failure. The results of the statements before it are returned with
// the error.
func (s *Session) ExecProgram(ctx context.Context, file string, prog *syntax.Program) ([]Result, error) {
	results := make([]Result, 0, len(prog.Stmts))
	for _, st := range prog.Stmts {
		res, err := s.Exec(ctx, st)
		if err != nil {
			return results, s.locate(file, prog, st, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// locate attaches the position of the offending subterm, falling back to
// the statement's own position.
func (s *Session) locate(file string, prog *syntax.Program, st syntax.Stmt, err error) error {
	pos := st.Pos
	if te, ok := lambdapi.AsTypeError(err); ok && te.Term != nil {
		if p, ok := prog.PosOf(te.Term); ok {
			pos = p
		}
	}
	return &Error{File: file, Pos: pos, Err: err}
}

// Exec executes one statement. On failure the session is unchanged.
func (s *Session) Exec(ctx context.Context, st syntax.Stmt) (Result, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	switch st.Kind {
	case syntax.StmtDef:
		return s.define(ctx, st)
	case syntax.StmtAssume:
		return s.assume(ctx, st)
	case syntax.StmtCheck:
		typ, err := s.Infer(ctx, st.Term)
		if err != nil {
			return Result{}, err
		}
		return Result{Stmt: st, Type: typ}, nil
	case syntax.StmtEval:
		typ, err := s.Infer(ctx, st.Term)
		if err != nil {
			return Result{}, err
		}
		value, err := s.checker.Evaluate(ctx, s.Expand(st.Term))
		if err != nil {
			return Result{}, err
		}
		return Result{Stmt: st, Type: typ, Value: value}, nil
	default:
		return Result{}, fmt.Errorf("session: unknown statement %s", st.Kind)
	}
}

// Infer expands t and infers its type under the session's postulates.
func (s *Session) Infer(ctx context.Context, t lambdapi.Term) (lambdapi.Term, error) {
	return s.checker.Infer(ctx, s.env, s.Expand(t))
}

// Evaluate expands t, checks it and returns its normal form.
func (s *Session) Evaluate(ctx context.Context, t lambdapi.Term) (lambdapi.Term, error) {
	if _, err := s.Infer(ctx, t); err != nil {
		return nil, err
	}
	return s.checker.Evaluate(ctx, s.Expand(t))
}

// checkType verifies that t, already expanded, is a type.
func (s *Session) checkType(ctx context.Context, t lambdapi.Term) error {
	return s.checker.Check(ctx, s.env, t, lambdapi.Type())
}

func (s *Session) define(ctx context.Context, st syntax.Stmt) (Result, error) {
	if s.declared(st.Name) {
		return Result{}, fmt.Errorf("def %s: %w", st.Name, ErrRedefinition)
	}
	value := s.Expand(st.Term)
	var typ lambdapi.Term
	if st.Type != nil {
		typ = s.Expand(st.Type)
		if err := s.checkType(ctx, typ); err != nil {
			return Result{}, err
		}
		if err := s.checker.Check(ctx, s.env, value, typ); err != nil {
			return Result{}, err
		}
	} else {
		inferred, err := s.checker.Infer(ctx, s.env, value)
		if err != nil {
			return Result{}, err
		}
		typ = inferred
	}
	s.byName[st.Name] = len(s.defs)
	s.defs = append(s.defs, Definition{Name: st.Name, Value: value, Type: typ})
	return Result{Stmt: st, Type: typ, Value: value}, nil
}

func (s *Session) assume(ctx context.Context, st syntax.Stmt) (Result, error) {
	if s.declared(st.Name) {
		return Result{}, fmt.Errorf("assume %s: %w", st.Name, ErrRedefinition)
	}
	typ := s.Expand(st.Type)
	if err := s.checkType(ctx, typ); err != nil {
		return Result{}, err
	}
	s.env = s.env.Extend(st.Name, typ)
	return Result{Stmt: st, Type: typ}, nil
}
