package prelude_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
	"github.com/gitrdm/lambdapi/pkg/prelude"
	"github.com/gitrdm/lambdapi/pkg/session"
	"github.com/gitrdm/lambdapi/pkg/syntax"
)

func TestProgramParses(t *testing.T) {
	prog, err := prelude.Program()
	require.NoError(t, err)
	for _, st := range prog.Stmts {
		assert.Equal(t, syntax.StmtDef, st.Kind, "%s", st.Name)
		assert.NotNil(t, st.Type, "%s should carry its type", st.Name)
	}
}

func TestNames(t *testing.T) {
	names := prelude.Names()
	assert.Equal(t, "Bool", names[0])
	assert.Subset(t, names, []string{"true", "false", "if", "Nat", "zero", "succ", "add", "mul", "id", "const", "compose"})
}

func TestEveryDefinitionChecks(t *testing.T) {
	cfg := session.DefaultConfig()
	cfg.Prelude = false
	s, err := session.New(cfg)
	require.NoError(t, err)

	results, err := s.Run(context.Background(), prelude.Name, prelude.Source())
	require.NoError(t, err)
	assert.Len(t, results, len(prelude.Names()))
}

func TestArithmetic(t *testing.T) {
	s, err := session.New(session.DefaultConfig())
	require.NoError(t, err)

	numeral := func(n int) lambdapi.Term {
		body := lambdapi.Term(lambdapi.NewVar("z"))
		for i := 0; i < n; i++ {
			body = lambdapi.NewApp(lambdapi.NewVar("s"), body)
		}
		return syntax.MustParse(`\A: Type. \s: A -> A. \z: A. ` + body.String())
	}

	tests := []struct {
		src  string
		want int
	}{
		{"zero", 0},
		{"succ zero", 1},
		{"add (succ zero) (succ zero)", 2},
		{"mul (succ (succ zero)) (succ (succ (succ zero)))", 6},
		{"mul zero (succ zero)", 0},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			got, err := s.Evaluate(context.Background(), syntax.MustParse(tc.src))
			require.NoError(t, err)
			assert.True(t, lambdapi.AlphaEqual(got, numeral(tc.want)), "got %s", got)
		})
	}
}

func TestCombinators(t *testing.T) {
	s, err := session.New(session.DefaultConfig())
	require.NoError(t, err)

	got, err := s.Evaluate(context.Background(), syntax.MustParse("compose Type Type Type (id Type) (const Type Type Type) Type"))
	require.NoError(t, err)
	assert.Equal(t, "Type", got.String())
}
