package lambdapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute_var(t *testing.T) {
	assert.True(t, Identical(Substitute(v("x"), "x", v("y")), v("y")))
	assert.True(t, Identical(Substitute(v("z"), "x", v("y")), v("z")))
	assert.True(t, Identical(Substitute(Type(), "x", v("y")), Type()))
}

func TestSubstitute_app(t *testing.T) {
	got := Substitute(Apply(v("y"), v("x")), "x", v("y"))
	assert.Equal(t, "y y", got.String())
}

func TestSubstitute_binderBlocks(t *testing.T) {
	term := NewLambda("x", Type(), v("x"))
	got := Substitute(term, "x", v("y"))
	assert.True(t, Identical(got, term), "bound x must not be replaced, got %s", got)
}

func TestSubstitute_paramTypeIsOutsideScope(t *testing.T) {
	// \x: x. x -- the annotation's x is free, the body's x is bound.
	term := NewLambda("x", v("x"), v("x"))
	got := Substitute(term, "x", Type())
	assert.True(t, Identical(got, NewLambda("x", Type(), v("x"))), "got %s", got)
}

func TestSubstitute_avoidCapture(t *testing.T) {
	// (\x: T. y)[y := x] must not become \x: T. x
	term := NewLambda("x", v("T"), v("y"))
	got := Substitute(term, "y", v("x"))

	lam, ok := got.(*Lambda)
	require.True(t, ok, "expected Lambda, got %T", got)
	assert.NotEqual(t, "x", lam.Param, "binder should have been renamed")
	assert.True(t, Identical(lam.Body, v("x")), "body should be the free x, got %s", lam.Body)
	assert.True(t, AlphaEqual(got, NewLambda("x0", v("T"), v("x"))))
	assert.False(t, AlphaEqual(got, NewLambda("x", v("T"), v("x"))))
}

func TestSubstitute_avoidCaptureUnderPi(t *testing.T) {
	// ((A: Type) -> B)[B := A]
	term := NewPi("A", Type(), v("B"))
	got := Substitute(term, "B", v("A"))
	assert.True(t, AlphaEqual(got, NewPi("A0", Type(), v("A"))), "got %s", got)
}

func TestSubstitute_renamedBinderUnderShadowing(t *testing.T) {
	// (\x: T. \x0: T. y x0)[y := x]: x0 inside still refers to the inner binder.
	term := NewLambda("x", v("T"), NewLambda("x0", v("T"), NewApp(v("y"), v("x0"))))
	got := Substitute(term, "y", v("x"))
	want := NewLambda("a", v("T"), NewLambda("b", v("T"), NewApp(v("x"), v("b"))))
	assert.True(t, AlphaEqual(got, want), "got %s", got)
}

func TestSubstitute_noRenameWhenNameAbsent(t *testing.T) {
	term := NewLambda("x", v("T"), v("x"))
	got := Substitute(term, "y", v("x"))
	assert.True(t, Identical(got, term))
}

func TestSubstitute_doesNotMutate(t *testing.T) {
	term := NewLambda("x", v("T"), NewApp(v("y"), v("x")))
	before := term.String()
	_ = Substitute(term, "y", v("x"))
	_ = Substitute(term, "T", Type())
	assert.Equal(t, before, term.String())
}

func TestFreeVars(t *testing.T) {
	term := NewLambda("x", v("A"), Apply(v("f"), v("x"), v("y"), NewPi("y", v("B"), v("y"))))
	assert.Equal(t, []string{"A", "B", "f", "y"}, FreeVars(term))
	assert.Empty(t, FreeVars(churchTrue()))
}

func TestFreeVars_shadowing(t *testing.T) {
	// \x: T. (\x: T. x) x -- both x are bound
	term := NewLambda("x", v("T"), NewApp(NewLambda("x", v("T"), v("x")), v("x")))
	assert.Equal(t, []string{"T"}, FreeVars(term))
}

func TestOccurs(t *testing.T) {
	assert.True(t, Occurs("x", NewApp(v("f"), v("x"))))
	assert.False(t, Occurs("x", NewLambda("x", Type(), v("x"))))
	assert.True(t, Occurs("x", NewLambda("x", v("x"), v("x"))), "annotation is outside the binder")
}

func TestFreshName(t *testing.T) {
	assert.Equal(t, "x", FreshName("x", nil))
	assert.Equal(t, "x0", FreshName("x", []string{"x"}))
	assert.Equal(t, "x1", FreshName("x", []string{"x", "x0"}))
	assert.Equal(t, "x1", FreshName("x0", []string{"x0"}), "numeric suffixes are replaced")
	assert.Equal(t, "x", FreshName("", nil))
}

func TestRename(t *testing.T) {
	got := Rename(NewApp(v("a"), NewLambda("a", Type(), v("a"))), "a", "b")
	assert.Equal(t, `b (\a: Type. a)`, got.String())
}
