// Command lambdapi checks and evaluates lambda-Pi programs.
//
//	lambdapi repl                 interactive session
//	lambdapi check FILE...        check source files concurrently
//	lambdapi eval EXPR            type and normalize one expression
//	lambdapi config               print the effective configuration
//	lambdapi version              print version information
//
// Every command accepts --config PATH; without it ./lambdapi.yaml is used
// when present.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/gitrdm/lambdapi/pkg/lambdapi"
	"github.com/gitrdm/lambdapi/pkg/session"
	"github.com/gitrdm/lambdapi/pkg/syntax"
)

const appName = "lambdapi"

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	switch args[0] {
	case "repl":
		return cmdRepl(args[1:], stderr)
	case "check":
		return cmdCheck(args[1:], stdout, stderr)
	case "eval":
		return cmdEval(args[1:], stdout, stderr)
	case "config":
		return cmdConfig(args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, versionString(lambdapi.GetVersionInfo()))
		return 0
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "%s: unknown command %q\n", appName, args[0])
		usage(stderr)
		return 2
	}
}

func versionString(info lambdapi.VersionInfo) string {
	unknown := func(s string) string { return lo.Ternary(s == "", "unknown", s) }
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)",
		appName, info.Version, unknown(info.GitCommit), unknown(info.BuildDate), info.GoVersion)
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `usage: %s <command> [--config PATH] [args]

commands:
  repl            start an interactive session
  check FILE...   check source files
  eval EXPR       infer the type of EXPR and print its normal form
  config          print the effective configuration as YAML
  version         print version information
`, appName)
}

// flags parses the flags shared by every command.
func flags(name string, args []string, stderr io.Writer) (session.Config, []string, error) {
	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(stderr)
	path := fset.String("config", "", "configuration file (default ./"+session.DefaultFile+" if present)")
	noPrelude := fset.Bool("no-prelude", false, "do not load the Church-encoded prelude")
	trace := fset.Bool("trace", false, "log every typing judgment to stderr")
	if err := fset.Parse(args); err != nil {
		return session.Config{}, nil, err
	}
	cfg, err := loadConfig(*path)
	if err != nil {
		return cfg, nil, err
	}
	if *noPrelude {
		cfg.Prelude = false
	}
	if *trace {
		cfg.Checker.Trace = true
	}
	return cfg, fset.Args(), nil
}

func loadConfig(path string) (session.Config, error) {
	if path != "" {
		return session.LoadConfig(path)
	}
	cfg, err := session.LoadConfig(session.DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return session.DefaultConfig(), nil
	}
	return cfg, err
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
	cfg, files, err := flags("check", args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 2
	}
	if len(files) == 0 {
		fmt.Fprintf(stderr, "usage: %s check FILE...\n", appName)
		return 2
	}
	reports, err := session.CheckFiles(context.Background(), cfg, lo.Uniq(files))
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 1
	}
	failed := lo.CountBy(reports, func(r session.FileResult) bool { return r.Err != nil })
	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintln(stderr, red(r.Err.Error()))
			continue
		}
		for _, res := range r.Results {
			if res.Stmt.Kind == syntax.StmtCheck || res.Stmt.Kind == syntax.StmtEval {
				fmt.Fprintln(stdout, res.String())
			}
		}
		fmt.Fprintf(stdout, "%s: ok (%d statements)\n", r.Path, len(r.Results))
	}
	if failed > 0 {
		fmt.Fprintf(stderr, "%d of %d files failed\n", failed, len(reports))
		return 1
	}
	return 0
}

func cmdEval(args []string, stdout, stderr io.Writer) int {
	cfg, rest, err := flags("eval", args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 2
	}
	if len(rest) == 0 {
		fmt.Fprintf(stderr, "usage: %s eval EXPR\n", appName)
		return 2
	}
	s, err := session.New(cfg)
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 1
	}
	results, err := s.Run(context.Background(), "", "eval "+strings.Join(rest, " "))
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 1
	}
	for _, res := range results {
		fmt.Fprintln(stdout, res.String())
	}
	return 0
}

func cmdConfig(args []string, stdout, stderr io.Writer) int {
	cfg, _, err := flags("config", args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 2
	}
	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintln(stderr, red(err.Error()))
		return 1
	}
	_, _ = stdout.Write(data)
	return 0
}
