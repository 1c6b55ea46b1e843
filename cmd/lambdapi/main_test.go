package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
	"github.com/gitrdm/lambdapi/pkg/session"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_usage(t *testing.T) {
	code, _, stderr := runCLI(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage:")

	code, _, stderr = runCLI(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "frobnicate"`)
}

func TestRun_version(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "lambdapi "+lambdapi.Version)
	assert.Contains(t, stdout, "commit unknown")
}

func TestRun_eval(t *testing.T) {
	code, stdout, stderr := runCLI(t, "eval", "not", "true")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `\A: Type. \t: A. \f: A. f`)

	code, _, stderr = runCLI(t, "eval", "--no-prelude", "not", "true")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "unbound variable not")
}

func TestRun_check(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lp")
	bad := filepath.Join(dir, "bad.lp")
	require.NoError(t, os.WriteFile(good, []byte("assume A : Type\ncheck \\x: A. x\n"), 0o644))
	require.NoError(t, os.WriteFile(bad, []byte("check Type Type\n"), 0o644))

	code, stdout, stderr := runCLI(t, "check", "--no-prelude", good)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "A -> A")
	assert.Contains(t, stdout, good+": ok (2 statements)")

	code, _, stderr = runCLI(t, "check", good, bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "cannot apply Type")
	assert.Contains(t, stderr, "1 of 2 files failed")

	code, _, _ = runCLI(t, "check")
	assert.Equal(t, 2, code)
}

func TestRun_configFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fuel: 3\nprelude: false\n"), 0o644))

	code, stdout, stderr := runCLI(t, "config", "--config", path)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "fuel: 3")
	assert.Contains(t, stdout, "prelude: false")

	code, _, stderr = runCLI(t, "eval", "--config", path, `(\x: Type. x) ((\y: Type. y) ((\z: Type. z) ((\w: Type. w) Type)))`)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "did not terminate within 3 steps")

	code, _, _ = runCLI(t, "config", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Equal(t, 2, code)
}

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	s, err := session.New(session.DefaultConfig())
	require.NoError(t, err)
	var out, errOut bytes.Buffer
	return &repl{s: s, out: &out, errOut: &errOut}, &out, &errOut
}

func TestREPL_statements(t *testing.T) {
	r, out, errOut := newTestREPL(t)

	assert.False(t, r.handle("assume A : Type"))
	assert.False(t, r.handle(`def twice : (A -> A) -> A -> A = \f: A -> A. \x: A. f (f x)`))
	assert.False(t, r.handle("check twice"))
	assert.Empty(t, errOut.String())
	assert.Contains(t, out.String(), "(A -> A) -> A -> A")

	assert.False(t, r.handle("def twice = Type"))
	assert.Contains(t, errOut.String(), "name already defined")
}

func TestREPL_commands(t *testing.T) {
	r, out, errOut := newTestREPL(t)

	r.handle(":type succ zero")
	assert.Contains(t, out.String(), "(A: Type) -> (A -> A) -> A -> A")

	out.Reset()
	r.handle(`:step (\x: Type. x) ((\y: Type. y) Type)`)
	assert.Contains(t, out.String(), "-> (\\y: Type. y) Type\n")
	assert.Contains(t, out.String(), "-> Type\n")
	assert.Contains(t, out.String(), "normal form after 2 steps")

	out.Reset()
	r.handle(`:tree \x: Type. x`)
	assert.Contains(t, out.String(), "└── Lambda x")

	out.Reset()
	r.handle(":dump x")
	assert.Contains(t, out.String(), "lambdapi.Var")
	assert.Contains(t, out.String(), `Name: (string) (len=1) "x"`)

	out.Reset()
	r.handle(":ctx")
	assert.Contains(t, out.String(), "def Bool : Type\n")
	assert.Contains(t, out.String(), "def true : (A: Type) -> A -> A -> A\n")

	r.handle(":type")
	assert.Contains(t, errOut.String(), "missing expression")

	errOut.Reset()
	r.handle(":type Type Type")
	assert.Contains(t, errOut.String(), "is not a function type")

	errOut.Reset()
	r.handle(":bogus")
	assert.Contains(t, errOut.String(), "unknown command :bogus")

	assert.True(t, r.handle(":quit"))
}

func TestREPL_trace(t *testing.T) {
	r, out, _ := newTestREPL(t)
	defer lambdapi.DisableTrace()

	r.handle(":trace")
	assert.Contains(t, out.String(), "trace on")
	r.handle(":trace")
	assert.Contains(t, out.String(), "trace off")
}
