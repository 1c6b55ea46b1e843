package lambdapi

// AlphaEqual reports whether a and b are the same term up to the names of
// bound variables. Bound variables are compared by the depth of the binder
// that introduced them; free variables are compared by name.
func AlphaEqual(a, b Term) bool {
	return alphaEq(a, b, &binders{left: map[string][]int{}, right: map[string][]int{}})
}

// binders maps each bound name to the stack of levels it is bound at on one
// side of the comparison. The innermost binder is last.
type binders struct {
	left, right map[string][]int
	depth       int
}

func (e *binders) push(l, r string) {
	e.left[l] = append(e.left[l], e.depth)
	e.right[r] = append(e.right[r], e.depth)
	e.depth++
}

func (e *binders) pop(l, r string) {
	e.depth--
	e.left[l] = e.left[l][:len(e.left[l])-1]
	e.right[r] = e.right[r][:len(e.right[r])-1]
}

func level(scope map[string][]int, name string) (int, bool) {
	s := scope[name]
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

func alphaEq(a, b Term, env *binders) bool {
	switch x := a.(type) {
	case *Var:
		y, ok := b.(*Var)
		if !ok {
			return false
		}
		la, boundA := level(env.left, x.Name)
		lb, boundB := level(env.right, y.Name)
		if boundA || boundB {
			return boundA && boundB && la == lb
		}
		return x.Name == y.Name
	case *Universe:
		_, ok := b.(*Universe)
		return ok
	case *Pi:
		y, ok := b.(*Pi)
		return ok && alphaEqBinder(x.Param, x.ParamType, x.Body, y.Param, y.ParamType, y.Body, env)
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && alphaEqBinder(x.Param, x.ParamType, x.Body, y.Param, y.ParamType, y.Body, env)
	case *App:
		y, ok := b.(*App)
		return ok && alphaEq(x.Func, y.Func, env) && alphaEq(x.Arg, y.Arg, env)
	default:
		panic(unknownTerm(a))
	}
}

func alphaEqBinder(px string, tx, bx Term, py string, ty, by Term, env *binders) bool {
	if !alphaEq(tx, ty, env) {
		return false
	}
	env.push(px, py)
	defer env.pop(px, py)
	return alphaEq(bx, by, env)
}

// Equal reports whether a and b are definitionally equal: their beta normal
// forms are alpha-equivalent. Alpha-equal terms are accepted without
// reducing either side.
func (r *Reducer) Equal(a, b Term) (bool, error) {
	if AlphaEqual(a, b) {
		return true, nil
	}
	na, err := r.Normalize(a)
	if err != nil {
		return false, err
	}
	nb, err := r.Normalize(b)
	if err != nil {
		return false, err
	}
	return AlphaEqual(na, nb), nil
}

// DefinitionallyEqual reports whether a and b are equal up to beta
// reduction and renaming of bound variables. Reduction is unbounded.
func DefinitionallyEqual(a, b Term) bool {
	eq, _ := (&Reducer{}).Equal(a, b)
	return eq
}
