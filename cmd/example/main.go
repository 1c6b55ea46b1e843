// Package main demonstrates basic lambdapi usage patterns.
//
// This example builds terms directly with the Go API, checks them, reduces
// them and shows how errors are classified, then does the same through the
// surface syntax and a session.
package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
	"github.com/gitrdm/lambdapi/pkg/session"
	"github.com/gitrdm/lambdapi/pkg/syntax"
)

func main() {
	fmt.Println("=== lambdapi Examples ===")
	fmt.Println()

	buildingTerms()
	dependentApplication()
	reduction()
	typeErrors()
	boundedChecking()
	surfaceSyntax()
}

// buildingTerms constructs and checks the polymorphic identity.
func buildingTerms() {
	fmt.Println("1. Building Terms:")

	id := lambdapi.NewLambda("A", lambdapi.Type(),
		lambdapi.NewLambda("x", lambdapi.NewVar("A"), lambdapi.NewVar("x")))
	typ, err := lambdapi.Typecheck(id)
	if err != nil {
		fmt.Printf("   unexpected error: %v\n", err)
		return
	}
	fmt.Printf("   %s\n", id)
	fmt.Printf("     : %s\n", typ)
	fmt.Println()
}

// dependentApplication shows the result type specialised to the argument.
func dependentApplication() {
	fmt.Println("2. Dependent Application:")

	nat := lambdapi.NewVar("Nat")
	ctx := lambdapi.NewContext(
		lambdapi.Binding{Name: "Nat", Type: lambdapi.Type()},
		lambdapi.Binding{Name: "Vec", Type: lambdapi.Arrow(nat, lambdapi.Type())},
		lambdapi.Binding{Name: "empty", Type: lambdapi.NewPi("n", nat,
			lambdapi.NewApp(lambdapi.NewVar("Vec"), lambdapi.NewVar("n")))},
		lambdapi.Binding{Name: "three", Type: nat},
	)
	term := lambdapi.NewApp(lambdapi.NewVar("empty"), lambdapi.NewVar("three"))
	typ, err := lambdapi.Infer(ctx, term)
	if err != nil {
		fmt.Printf("   unexpected error: %v\n", err)
		return
	}
	fmt.Printf("   context: %s\n", ctx)
	fmt.Printf("   %s : %s\n", term, typ)
	fmt.Println()
}

// reduction compares single steps with full normalization.
func reduction() {
	fmt.Println("3. Reduction:")

	k := lambdapi.NewLambda("a", lambdapi.Type(), lambdapi.NewLambda("x", lambdapi.Type(), lambdapi.NewVar("a")))
	term := lambdapi.Apply(k, lambdapi.NewVar("x"), lambdapi.Type())
	fmt.Printf("   %s\n", term)
	for t, ok := lambdapi.Step(term); ok; t, ok = lambdapi.Step(t) {
		fmt.Printf("   -> %s\n", t)
	}
	fmt.Printf("   whnf of (%s) x: %s\n", k, lambdapi.Whnf(lambdapi.NewApp(k, lambdapi.NewVar("x"))))
	fmt.Println()
}

// typeErrors classifies failures with errors.Is and errors.As.
func typeErrors() {
	fmt.Println("4. Type Errors:")

	terms := []lambdapi.Term{
		lambdapi.NewApp(lambdapi.Type(), lambdapi.Type()),
		lambdapi.NewLambda("x", lambdapi.Type(), lambdapi.NewVar("z")),
		lambdapi.NewApp(lambdapi.NewLambda("x", lambdapi.Type(), lambdapi.NewVar("x")),
			lambdapi.NewLambda("y", lambdapi.Type(), lambdapi.NewVar("y"))),
	}
	for _, t := range terms {
		_, err := lambdapi.Typecheck(t)
		var te *lambdapi.TypeError
		if errors.As(err, &te) {
			fmt.Printf("   %-40s %s: %v\n", t, te.Kind, err)
		}
	}
	fmt.Println()
}

// boundedChecking runs a checker with a step budget and a deadline.
func boundedChecking() {
	fmt.Println("5. Bounded Checking:")

	checker, err := lambdapi.NewChecker(lambdapi.Config{Fuel: 2})
	if err != nil {
		fmt.Printf("   unexpected error: %v\n", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	id := lambdapi.NewLambda("x", lambdapi.Type(), lambdapi.NewVar("x"))
	term := lambdapi.Apply(id, lambdapi.Apply(id, lambdapi.Apply(id, lambdapi.Type())))
	_, err = checker.Evaluate(ctx, term)
	fmt.Printf("   fuel 2: %v (non-termination: %t)\n", err, errors.Is(err, lambdapi.ErrNonTermination))
	fmt.Println()
}

// surfaceSyntax parses programs and runs them in a session with the prelude.
func surfaceSyntax() {
	fmt.Println("6. Surface Syntax and Sessions:")

	parsed, err := syntax.Parse(`\A: Type. \f: A -> A. \x: A. f (f x)`)
	if err != nil {
		fmt.Printf("   parse error: %v\n", err)
		return
	}
	fmt.Print(syntax.Tree(parsed.Term))

	s, err := session.New(session.DefaultConfig())
	if err != nil {
		fmt.Printf("   session error: %v\n", err)
		return
	}
	results, err := s.Run(context.Background(), "tour", `
def two = succ (succ zero)
check add two two
eval mul two two
`)
	for _, r := range results {
		fmt.Printf("   %s\n", r)
	}
	if err != nil {
		fmt.Printf("   error: %v\n", err)
	}
	fmt.Println()
}
