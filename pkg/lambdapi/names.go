package lambdapi

import (
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// FreeVars returns the names occurring free in t, sorted and without
// duplicates. An occurrence is free when no enclosing Pi or Lambda of the
// same name binds it.
func FreeVars(t Term) []string {
	set := map[string]struct{}{}
	collectFree(t, map[string]int{}, set)
	names := lo.Keys(set)
	slices.Sort(names)
	return names
}

// collectFree walks t with a multiset of bound names; shadowing binders
// increment the count so leaving the inner scope keeps the outer binding.
func collectFree(t Term, bound map[string]int, set map[string]struct{}) {
	switch x := t.(type) {
	case *Var:
		if bound[x.Name] == 0 {
			set[x.Name] = struct{}{}
		}
	case *Universe:
	case *Pi:
		collectFree(x.ParamType, bound, set)
		bound[x.Param]++
		collectFree(x.Body, bound, set)
		bound[x.Param]--
	case *Lambda:
		collectFree(x.ParamType, bound, set)
		bound[x.Param]++
		collectFree(x.Body, bound, set)
		bound[x.Param]--
	case *App:
		collectFree(x.Func, bound, set)
		collectFree(x.Arg, bound, set)
	default:
		panic(unknownTerm(t))
	}
}

// Occurs reports whether name occurs free in t.
func Occurs(name string, t Term) bool {
	switch x := t.(type) {
	case *Var:
		return x.Name == name
	case *Universe:
		return false
	case *Pi:
		return Occurs(name, x.ParamType) || (x.Param != name && Occurs(name, x.Body))
	case *Lambda:
		return Occurs(name, x.ParamType) || (x.Param != name && Occurs(name, x.Body))
	case *App:
		return Occurs(name, x.Func) || Occurs(name, x.Arg)
	default:
		panic(unknownTerm(t))
	}
}

// FreshName returns base when it is not in avoid. Otherwise it strips any
// numeric suffix from base and appends the smallest counter that yields an
// unused name: x, x0, x1, ...
func FreshName(base string, avoid []string) string {
	if base == "" {
		base = "x"
	}
	if !lo.Contains(avoid, base) {
		return base
	}
	stem := strings.TrimRightFunc(base, func(r rune) bool { return r >= '0' && r <= '9' })
	if stem == "" {
		stem = "x"
	}
	for i := 0; ; i++ {
		candidate := stem + strconv.Itoa(i)
		if !lo.Contains(avoid, candidate) {
			return candidate
		}
	}
}
