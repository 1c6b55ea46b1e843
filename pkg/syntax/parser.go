package syntax

import (
	"errors"
	"fmt"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
)

// Error is a lexical or syntax error.
type Error struct {
	Pos Pos
	Msg string
	// Incomplete is set when the input ended before the term did; an
	// interactive reader can ask for more lines.
	Incomplete bool
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Pos, e.Msg) }

// IsIncomplete reports whether err is a syntax error caused by input that
// ended too early.
func IsIncomplete(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Incomplete
}

// Parsed is a parsed term together with the source position of each of its
// nodes. The universe is a shared singleton and has no recorded position.
type Parsed struct {
	Term      lambdapi.Term
	Positions map[lambdapi.Term]Pos
}

// PosOf returns the position at which node t starts.
func (p *Parsed) PosOf(t lambdapi.Term) (Pos, bool) {
	pos, ok := p.Positions[t]
	return pos, ok
}

// StmtKind identifies a program statement.
type StmtKind int

const (
	StmtEval StmtKind = iota
	StmtCheck
	StmtDef
	StmtAssume
)

func (k StmtKind) String() string {
	switch k {
	case StmtEval:
		return "eval"
	case StmtCheck:
		return "check"
	case StmtDef:
		return "def"
	case StmtAssume:
		return "assume"
	default:
		return fmt.Sprintf("StmtKind(%d)", int(k))
	}
}

// Stmt is one statement of a program. Type is the annotation of def and
// assume (nil for an unannotated def); Term is nil for assume.
type Stmt struct {
	Kind StmtKind
	Name string
	Type lambdapi.Term
	Term lambdapi.Term
	Pos  Pos
}

// Program is a parsed sequence of statements sharing one position table.
type Program struct {
	Stmts     []Stmt
	Positions map[lambdapi.Term]Pos
}

// PosOf returns the position at which node t starts.
func (p *Program) PosOf(t lambdapi.Term) (Pos, bool) {
	pos, ok := p.Positions[t]
	return pos, ok
}

// Parse parses a single term. The whole input must be consumed.
func Parse(src string) (*Parsed, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	t, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected("end of input")
	}
	return &Parsed{Term: t, Positions: p.positions}, nil
}

// MustParse parses src and panics on error. It is meant for tests and
// package-level fixtures.
func MustParse(src string) lambdapi.Term {
	p, err := Parse(src)
	if err != nil {
		panic(fmt.Sprintf("syntax: MustParse(%q): %v", src, err))
	}
	return p.Term
}

// ParseProgram parses a sequence of statements.
func ParseProgram(src string) (*Program, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	prog := &Program{Positions: p.positions}
	for p.tok.kind != tokEOF {
		if p.tok.kind == tokSemi {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		st, err := p.stmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, st)
	}
	return prog, nil
}

type parser struct {
	lex       *lexer
	tok       token
	positions map[lambdapi.Term]Pos
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src), positions: map[lambdapi.Term]Pos{}}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) unexpected(want string) error {
	return &Error{
		Pos:        p.tok.pos,
		Msg:        fmt.Sprintf("expected %s, found %s", want, p.tok),
		Incomplete: p.tok.kind == tokEOF,
	}
}

func (p *parser) expect(k tokenKind) (token, error) {
	if p.tok.kind != k {
		return token{}, p.unexpected(fmt.Sprintf("%q", k.String()))
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *parser) ident() (token, error) {
	if p.tok.kind != tokIdent {
		return token{}, p.unexpected("identifier")
	}
	tok := p.tok
	return tok, p.advance()
}

func (p *parser) at(t lambdapi.Term, pos Pos) lambdapi.Term {
	if _, ok := t.(*lambdapi.Universe); !ok {
		p.positions[t] = pos
	}
	return t
}

func (p *parser) stmt() (Stmt, error) {
	start := p.tok.pos
	switch p.tok.kind {
	case tokDef:
		if err := p.advance(); err != nil {
			return Stmt{}, err
		}
		name, err := p.ident()
		if err != nil {
			return Stmt{}, err
		}
		st := Stmt{Kind: StmtDef, Name: name.text, Pos: start}
		if p.tok.kind == tokColon {
			if err := p.advance(); err != nil {
				return Stmt{}, err
			}
			if st.Type, err = p.expr(); err != nil {
				return Stmt{}, err
			}
		}
		if _, err := p.expect(tokEquals); err != nil {
			return Stmt{}, err
		}
		if st.Term, err = p.expr(); err != nil {
			return Stmt{}, err
		}
		return st, nil
	case tokAssume:
		if err := p.advance(); err != nil {
			return Stmt{}, err
		}
		name, err := p.ident()
		if err != nil {
			return Stmt{}, err
		}
		if _, err := p.expect(tokColon); err != nil {
			return Stmt{}, err
		}
		typ, err := p.expr()
		if err != nil {
			return Stmt{}, err
		}
		return Stmt{Kind: StmtAssume, Name: name.text, Type: typ, Pos: start}, nil
	case tokCheck, tokEval:
		kind := StmtCheck
		if p.tok.kind == tokEval {
			kind = StmtEval
		}
		if err := p.advance(); err != nil {
			return Stmt{}, err
		}
		t, err := p.expr()
		if err != nil {
			return Stmt{}, err
		}
		return Stmt{Kind: kind, Term: t, Pos: start}, nil
	default:
		t, err := p.expr()
		if err != nil {
			return Stmt{}, err
		}
		return Stmt{Kind: StmtEval, Term: t, Pos: start}, nil
	}
}

// expr parses a lambda, a Pi type, an arrow or an application.
func (p *parser) expr() (lambdapi.Term, error) {
	if p.tok.kind == tokLambda {
		return p.lambda()
	}
	start := p.tok.pos
	if p.tok.kind == tokLParen {
		// "(x: A) -> B" or a parenthesised term; decided by the token after
		// the identifier.
		save := *p.lex
		saveTok := p.tok
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokIdent {
			name := p.tok
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.tok.kind == tokColon {
				return p.pi(start, name.text)
			}
		}
		*p.lex = save
		p.tok = saveTok
	}
	lhs, err := p.app()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokArrow {
		return lhs, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	rhs, err := p.expr()
	if err != nil {
		return nil, err
	}
	return p.at(lambdapi.Arrow(lhs, rhs), start), nil
}

// pi parses the rest of "(x: A) -> B" after the colon's predecessor.
func (p *parser) pi(start Pos, name string) (lambdapi.Term, error) {
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	paramType, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	if _, err := p.expect(tokArrow); err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return p.at(lambdapi.NewPi(name, paramType, body), start), nil
}

func (p *parser) lambda() (lambdapi.Term, error) {
	start := p.tok.pos
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.ident()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokColon); err != nil {
		return nil, err
	}
	paramType, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokDot); err != nil {
		return nil, err
	}
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return p.at(lambdapi.NewLambda(name.text, paramType, body), start), nil
}

// app parses a left-associative application. A trailing lambda may appear
// as the last argument without parentheses.
func (p *parser) app() (lambdapi.Term, error) {
	start := p.tok.pos
	fn, err := p.atom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.tok.kind {
		case tokIdent, tokType, tokLParen:
			arg, err := p.atom()
			if err != nil {
				return nil, err
			}
			fn = p.at(lambdapi.NewApp(fn, arg), start)
		case tokLambda:
			arg, err := p.lambda()
			if err != nil {
				return nil, err
			}
			return p.at(lambdapi.NewApp(fn, arg), start), nil
		default:
			return fn, nil
		}
	}
}

func (p *parser) atom() (lambdapi.Term, error) {
	tok := p.tok
	switch tok.kind {
	case tokIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return p.at(lambdapi.NewVar(tok.text), tok.pos), nil
	case tokType:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return lambdapi.Type(), nil
	case tokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		t, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, p.unexpected("a term")
	}
}
