package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"
	"github.com/samber/lo"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
	"github.com/gitrdm/lambdapi/pkg/session"
	"github.com/gitrdm/lambdapi/pkg/syntax"
)

const (
	historyFile = ".lambdapi_history"
	promptMain  = "λ> "
	promptCont  = ".. "

	// maxSteps bounds the reduction sequence printed by :step.
	maxSteps = 50
)

var (
	banner   = fmt.Sprintf("lambdapi %s\nCtrl+C cancels input, Ctrl+D exits. Type :help for commands.", lambdapi.Version)
	helpText = `
statements:
  def x = e | def x : T = e     define x
  assume x : T                  postulate x
  check e                       print the type of e
  eval e | e                    print the normal form and type of e

REPL commands:
  :type e     print the type of e
  :step e     print each beta step of e
  :tree e     print the syntax tree of e
  :dump e     print the Go structure of e
  :ctx        list definitions and assumptions
  :trace      toggle judgment tracing
  :help       show this text
  :quit       exit the REPL
`
)

func cmdRepl(args []string, stderr io.Writer) (ret int) {
	cfg, _, err := flags("repl", args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 2
	}
	s, err := session.New(cfg)
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 1
	}

	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	r := &repl{s: s, out: os.Stdout, errOut: os.Stderr, trace: cfg.Checker.Trace}
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if r.handle(code) {
			return 0
		}
	}
	return 0
}

// readByParseProbe reads lines until they parse as a program or fail for a
// reason other than missing input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C drops the pending input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := syntax.ParseProgram(src); syntax.IsIncomplete(perr) && strings.TrimSpace(src) != "" {
			continue
		}
		return src, true
	}
}

// repl executes input against a session. It is separate from the terminal
// loop so that it can run against plain writers.
type repl struct {
	s      *session.Session
	out    io.Writer
	errOut io.Writer
	trace  bool
}

// handle runs one input and reports whether the REPL should exit.
func (r *repl) handle(code string) (exit bool) {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, ":") {
		return r.command(code)
	}
	results, err := r.s.Run(context.Background(), "", code)
	for _, res := range results {
		fmt.Fprintln(r.out, blue(res.String()))
	}
	if err != nil {
		r.fail(err)
	}
	return false
}

func (r *repl) fail(err error) {
	fmt.Fprintln(r.errOut, red(err.Error()))
}

func (r *repl) command(code string) (exit bool) {
	name, arg, _ := strings.Cut(code, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case ":quit", ":q":
		return true
	case ":help", ":h":
		fmt.Fprint(r.out, helpText)
	case ":ctx":
		r.listContext()
	case ":trace":
		r.trace = !r.trace
		if r.trace {
			lambdapi.EnableTrace()
		} else {
			lambdapi.DisableTrace()
		}
		fmt.Fprintf(r.out, "trace %s\n", lo.Ternary(r.trace, "on", "off"))
	case ":type", ":t":
		r.withTerm(arg, func(t lambdapi.Term) error {
			typ, err := r.s.Infer(context.Background(), t)
			if err != nil {
				return err
			}
			fmt.Fprintln(r.out, blue(typ.String()))
			return nil
		})
	case ":step":
		r.withTerm(arg, func(t lambdapi.Term) error {
			if _, err := r.s.Infer(context.Background(), t); err != nil {
				return err
			}
			r.steps(r.s.Expand(t))
			return nil
		})
	case ":tree":
		r.withTerm(arg, func(t lambdapi.Term) error {
			fmt.Fprint(r.out, syntax.Tree(t))
			return nil
		})
	case ":dump":
		r.withTerm(arg, func(t lambdapi.Term) error {
			fmt.Fprint(r.out, syntax.Dump(t))
			return nil
		})
	default:
		fmt.Fprintf(r.errOut, "unknown command %s. Type :help for commands.\n", name)
	}
	return false
}

func (r *repl) withTerm(src string, fn func(lambdapi.Term) error) {
	if src == "" {
		r.fail(errors.New("missing expression"))
		return
	}
	p, err := syntax.Parse(src)
	if err == nil {
		err = fn(p.Term)
	}
	if err != nil {
		r.fail(err)
	}
}

// steps prints t and each leftmost-outermost reduct of it.
func (r *repl) steps(t lambdapi.Term) {
	fmt.Fprintf(r.out, "   %s\n", t)
	for i := 1; i <= maxSteps; i++ {
		next, ok := lambdapi.Step(t)
		if !ok {
			fmt.Fprintln(r.out, green(fmt.Sprintf("normal form after %d steps", i-1)))
			return
		}
		t = next
		fmt.Fprintf(r.out, "-> %s\n", t)
	}
	fmt.Fprintln(r.out, green(fmt.Sprintf("stopped after %d steps", maxSteps)))
}

func (r *repl) listContext() {
	for _, d := range r.s.Definitions() {
		fmt.Fprintf(r.out, "def %s : %s\n", d.Name, d.Type)
	}
	for _, b := range r.s.Context().Bindings() {
		fmt.Fprintf(r.out, "assume %s : %s\n", b.Name, b.Type)
	}
}
