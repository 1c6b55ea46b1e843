package lambdapi

import "os"

// shouldRunHeavy returns true when heavy/long-running tests should run even
// if the Go test suite is invoked in short mode. Set LAMBDAPI_FORCE_HEAVY=1
// (or "true") to override short-mode skips.
func shouldRunHeavy() bool {
	v := os.Getenv("LAMBDAPI_FORCE_HEAVY")
	return v == "1" || v == "true" || v == "TRUE" || v == "True"
}

func v(name string) *Var { return NewVar(name) }

// boolType is the Church encoding (A: Type) -> A -> A -> A.
func boolType() Term {
	return NewPi("A", Type(), Arrow(v("A"), Arrow(v("A"), v("A"))))
}

func churchTrue() Term {
	return NewLambda("A", Type(), NewLambda("t", v("A"), NewLambda("f", v("A"), v("t"))))
}

func churchFalse() Term {
	return NewLambda("A", Type(), NewLambda("t", v("A"), NewLambda("f", v("A"), v("f"))))
}

// natType is the Church encoding (A: Type) -> (A -> A) -> A -> A.
func natType() Term {
	return NewPi("A", Type(), Arrow(Arrow(v("A"), v("A")), Arrow(v("A"), v("A"))))
}

// church builds the numeral \A: Type. \s: A -> A. \z: A. s (s ... z).
func church(n int) Term {
	body := Term(v("z"))
	for i := 0; i < n; i++ {
		body = NewApp(v("s"), body)
	}
	return NewLambda("A", Type(), NewLambda("s", Arrow(v("A"), v("A")), NewLambda("z", v("A"), body)))
}

// churchAdd is \m: Nat. \n: Nat. \A: Type. \s: A -> A. \z: A. m A s (n A s z).
func churchAdd() Term {
	inner := Apply(v("m"), v("A"), v("s"), Apply(v("n"), v("A"), v("s"), v("z")))
	return NewLambda("m", natType(), NewLambda("n", natType(),
		NewLambda("A", Type(), NewLambda("s", Arrow(v("A"), v("A")), NewLambda("z", v("A"), inner)))))
}

// identity is the polymorphic identity \A: Type. \x: A. x.
func identity() Term {
	return NewLambda("A", Type(), NewLambda("x", v("A"), v("x")))
}

// omega is the self-application \x: Type. x x. omega omega has no normal
// form; it is ill-typed, so tests only feed it to the reducer directly.
func omega() Term {
	return NewLambda("x", Type(), NewApp(v("x"), v("x")))
}
