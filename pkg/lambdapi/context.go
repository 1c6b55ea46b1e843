package lambdapi

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Context is an immutable typing environment: an ordered sequence of
// name : type bindings. Extending a context returns a new context that
// shares the old one as its prefix; the receiver is never modified.
//
// The nil *Context is the empty context and every method accepts it.
type Context struct {
	parent *Context
	name   string
	typ    Term
	size   int
}

// Binding is one entry of a Context.
type Binding struct {
	Name string
	Type Term
}

// EmptyContext returns the context with no bindings.
func EmptyContext() *Context { return nil }

// NewContext builds a context from bindings, oldest first.
func NewContext(bindings ...Binding) *Context {
	var ctx *Context
	for _, b := range bindings {
		ctx = ctx.Extend(b.Name, b.Type)
	}
	return ctx
}

// Extend returns a context with name : typ pushed on top of c. A later
// binding shadows an earlier one with the same name.
func (c *Context) Extend(name string, typ Term) *Context {
	return &Context{parent: c, name: name, typ: typ, size: c.Len() + 1}
}

// Lookup returns the type of the most recent binding of name.
func (c *Context) Lookup(name string) (Term, bool) {
	for e := c; e != nil; e = e.parent {
		if e.name == name {
			return e.typ, true
		}
	}
	return nil, false
}

// Len returns the number of bindings, shadowed ones included.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return c.size
}

// Binds reports whether name is bound in c.
func (c *Context) Binds(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Mentions reports whether name is bound in c or occurs free in the type of
// any binding. A binder with such a name cannot be pushed without changing
// what the existing types refer to.
func (c *Context) Mentions(name string) bool {
	for e := c; e != nil; e = e.parent {
		if e.name == name || Occurs(name, e.typ) {
			return true
		}
	}
	return false
}

// Names returns the bound names, oldest first, shadowed ones included.
func (c *Context) Names() []string {
	names := make([]string, 0, c.Len())
	for e := c; e != nil; e = e.parent {
		names = append(names, e.name)
	}
	slices.Reverse(names)
	return names
}

// Bindings returns the bindings, oldest first.
func (c *Context) Bindings() []Binding {
	out := make([]Binding, 0, c.Len())
	for e := c; e != nil; e = e.parent {
		out = append(out, Binding{Name: e.name, Type: e.typ})
	}
	slices.Reverse(out)
	return out
}

// String renders the context as x: A, y: B.
func (c *Context) String() string {
	bs := c.Bindings()
	parts := make([]string, len(bs))
	for i, b := range bs {
		parts[i] = b.Name + ": " + b.Type.String()
	}
	return strings.Join(parts, ", ")
}
