package syntax

import (
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
)

// Tree renders t as an indented ASCII tree, one node per line.
//
//	└── Lambda x
//	    ├── Type
//	    └── Var x
func Tree(t lambdapi.Term) string {
	var sb strings.Builder
	tree(&sb, t, "", true)
	return sb.String()
}

func tree(sb *strings.Builder, t lambdapi.Term, indent string, last bool) {
	sb.WriteString(indent)
	if last {
		sb.WriteString("└── ")
		indent += "    "
	} else {
		sb.WriteString("├── ")
		indent += "│   "
	}
	switch x := t.(type) {
	case *lambdapi.Var:
		sb.WriteString("Var " + x.Name + "\n")
	case *lambdapi.Universe:
		sb.WriteString("Type\n")
	case *lambdapi.Pi:
		sb.WriteString("Pi " + x.Param + "\n")
		tree(sb, x.ParamType, indent, false)
		tree(sb, x.Body, indent, true)
	case *lambdapi.Lambda:
		sb.WriteString("Lambda " + x.Param + "\n")
		tree(sb, x.ParamType, indent, false)
		tree(sb, x.Body, indent, true)
	case *lambdapi.App:
		sb.WriteString("App\n")
		tree(sb, x.Func, indent, false)
		tree(sb, x.Arg, indent, true)
	default:
		panic("syntax: unknown term")
	}
}

// Terms implement fmt.Stringer; DisableMethods keeps spew on the fields.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump returns the Go structure of t, pointers followed, for debugging.
func Dump(t lambdapi.Term) string { return dumper.Sdump(t) }
