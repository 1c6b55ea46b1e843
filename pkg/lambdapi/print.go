package lambdapi

import "strings"

// Rendering precedence. Binders extend as far right as possible, application
// is left associative.
const (
	precBinder = iota
	precApp
	precAtom
)

func (v *Var) String() string    { return v.Name }
func (*Universe) String() string { return "Type" }
func (p *Pi) String() string     { return render(p) }
func (l *Lambda) String() string { return render(l) }
func (a *App) String() string    { return render(a) }

func render(t Term) string {
	var sb strings.Builder
	write(&sb, t, precBinder)
	return sb.String()
}

func write(sb *strings.Builder, t Term, prec int) {
	switch x := t.(type) {
	case *Var:
		sb.WriteString(x.Name)
	case *Universe:
		sb.WriteString("Type")
	case *Lambda:
		openParen(sb, prec > precBinder)
		sb.WriteString(`\`)
		sb.WriteString(x.Param)
		sb.WriteString(": ")
		write(sb, x.ParamType, precBinder)
		sb.WriteString(". ")
		write(sb, x.Body, precBinder)
		closeParen(sb, prec > precBinder)
	case *Pi:
		openParen(sb, prec > precBinder)
		if x.IsDependent() {
			sb.WriteString("(")
			sb.WriteString(x.Param)
			sb.WriteString(": ")
			write(sb, x.ParamType, precBinder)
			sb.WriteString(")")
		} else {
			write(sb, x.ParamType, precApp)
		}
		sb.WriteString(" -> ")
		write(sb, x.Body, precBinder)
		closeParen(sb, prec > precBinder)
	case *App:
		openParen(sb, prec > precApp)
		write(sb, x.Func, precApp)
		sb.WriteString(" ")
		write(sb, x.Arg, precAtom)
		closeParen(sb, prec > precApp)
	default:
		panic(unknownTerm(t))
	}
}

func openParen(sb *strings.Builder, paren bool) {
	if paren {
		sb.WriteString("(")
	}
}

func closeParen(sb *strings.Builder, paren bool) {
	if paren {
		sb.WriteString(")")
	}
}
