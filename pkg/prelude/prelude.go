// Package prelude holds the standard library of Church encodings that
// sessions load before user input: booleans, natural numbers and a few
// combinators, written in the surface syntax.
package prelude

import (
	_ "embed"
	"fmt"

	"github.com/samber/lo"

	"github.com/gitrdm/lambdapi/pkg/syntax"
)

// Name is the file name reported in prelude error positions.
const Name = "prelude.lp"

//go:embed prelude.lp
var source string

// Source returns the prelude program text.
func Source() string { return source }

// Program parses the prelude.
func Program() (*syntax.Program, error) {
	prog, err := syntax.ParseProgram(source)
	if err != nil {
		return nil, fmt.Errorf("prelude: %s:%w", Name, err)
	}
	return prog, nil
}

// Names lists the names the prelude defines, in definition order.
func Names() []string {
	prog, err := Program()
	if err != nil {
		panic(err)
	}
	return lo.FilterMap(prog.Stmts, func(st syntax.Stmt, _ int) (string, bool) {
		return st.Name, st.Kind == syntax.StmtDef || st.Kind == syntax.StmtAssume
	})
}
