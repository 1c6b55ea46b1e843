// Package syntax reads the textual surface syntax of the lambda-Pi calculus
// into lambdapi terms and renders terms as ASCII trees for debugging.
//
// Surface syntax:
//
//	Type                 the universe
//	x                    a variable
//	\x: A. b   λx: A. b  an abstraction (the body extends as far right as possible)
//	(x: A) -> B          a dependent function type; → is accepted for ->
//	A -> B               a non-dependent function type (right associative)
//	f a b                application (left associative)
//	-- comment           to the end of the line
//
// Programs are sequences of statements:
//
//	def name = term
//	def name : type = term
//	assume name : type
//	check term
//	eval term
//	term                 (a bare term is evaluated)
//
// Statements end where the next keyword starts. A ';' separates them
// explicitly and is needed before a bare term that follows another term.
package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Pos is a location in the source text. Line and Col are 1-based; Col counts
// runes.
type Pos struct {
	Offset int
	Line   int
	Col    int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokType
	tokLambda
	tokColon
	tokDot
	tokArrow
	tokLParen
	tokRParen
	tokEquals
	tokSemi
	tokDef
	tokAssume
	tokCheck
	tokEval
)

var tokenNames = map[tokenKind]string{
	tokEOF:    "end of input",
	tokIdent:  "identifier",
	tokType:   "Type",
	tokLambda: `\`,
	tokColon:  ":",
	tokDot:    ".",
	tokArrow:  "->",
	tokLParen: "(",
	tokRParen: ")",
	tokEquals: "=",
	tokSemi:   ";",
	tokDef:    "def",
	tokAssume: "assume",
	tokCheck:  "check",
	tokEval:   "eval",
}

func (k tokenKind) String() string { return tokenNames[k] }

var keywords = map[string]tokenKind{
	"Type":   tokType,
	"def":    tokDef,
	"assume": tokAssume,
	"check":  tokCheck,
	"eval":   tokEval,
}

type token struct {
	kind tokenKind
	text string
	pos  Pos
}

func (t token) String() string {
	if t.kind == tokIdent {
		return fmt.Sprintf("identifier %q", t.text)
	}
	return fmt.Sprintf("%q", t.kind.String())
}

// lexer turns source text into tokens. It is pull based: the parser asks for
// one token at a time.
type lexer struct {
	src  string
	off  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

func (l *lexer) pos() Pos { return Pos{Offset: l.off, Line: l.line, Col: l.col} }

func (l *lexer) peekRune() (rune, int) {
	if l.off >= len(l.src) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(l.src[l.off:])
}

func (l *lexer) advance() rune {
	r, w := l.peekRune()
	l.off += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *lexer) skipSpaceAndComments() {
	for l.off < len(l.src) {
		r, _ := l.peekRune()
		switch {
		case unicode.IsSpace(r):
			l.advance()
		case r == '-' && l.off+1 < len(l.src) && l.src[l.off+1] == '-':
			for l.off < len(l.src) {
				if r, _ := l.peekRune(); r == '\n' {
					break
				}
				l.advance()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) && r != 'λ' }

func isIdentPart(r rune) bool {
	return r == '_' || r == '\'' || unicode.IsLetter(r) && r != 'λ' || unicode.IsDigit(r)
}

// next returns the next token or a lexical error.
func (l *lexer) next() (token, error) {
	l.skipSpaceAndComments()
	start := l.pos()
	if l.off >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}
	r := l.advance()
	single := func(k tokenKind) (token, error) {
		return token{kind: k, text: string(r), pos: start}, nil
	}
	switch r {
	case '\\', 'λ':
		return single(tokLambda)
	case ':':
		return single(tokColon)
	case '.':
		return single(tokDot)
	case '(':
		return single(tokLParen)
	case ')':
		return single(tokRParen)
	case '=':
		return single(tokEquals)
	case ';':
		return single(tokSemi)
	case '→':
		return single(tokArrow)
	case '-':
		if nr, _ := l.peekRune(); nr == '>' {
			l.advance()
			return token{kind: tokArrow, text: "->", pos: start}, nil
		}
	}
	if isIdentStart(r) {
		for l.off < len(l.src) {
			nr, _ := l.peekRune()
			if !isIdentPart(nr) {
				break
			}
			l.advance()
		}
		text := l.src[start.Offset:l.off]
		if k, ok := keywords[text]; ok {
			return token{kind: k, text: text, pos: start}, nil
		}
		return token{kind: tokIdent, text: text, pos: start}, nil
	}
	return token{}, &Error{Pos: start, Msg: fmt.Sprintf("unexpected character %q", r)}
}
