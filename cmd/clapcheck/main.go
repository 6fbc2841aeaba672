// Command clapcheck checks a command line against a specification written in YAML or
// TOML and prints what matched, or the diagnostic a program using the specification
// would show.
//
// Usage:
//
//	clapcheck [--json] [--no-color] [--tree] <SPEC> [-- ARGS...]
//
// Exit status is 0 when the arguments match (or help was requested), 2 when they
// don't and 1 when the specification can't be read or is inconsistent.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/PureW/clapgo"
	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/load"
	"github.com/PureW/clapgo/types"
	"github.com/PureW/clapgo/util"
	"github.com/fatih/color"
)

const version = "0.3.0"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func newCLI(stdout, stderr io.Writer) (*clapgo.Parser, error) {
	return clapgo.NewParser(
		clapgo.NewCommand("clapcheck",
			clapgo.WithVersion(version),
			clapgo.WithAbout("Check a command line against a YAML or TOML specification"),
			clapgo.WithArgs(
				clapgo.NewArg("json", clapgo.WithLong("json"), clapgo.WithConflicts("tree"),
					clapgo.WithHelp("print the matches as JSON")),
				clapgo.NewArg("no-color", clapgo.WithLong("no-color"),
					clapgo.WithHelp("never color the output")),
				clapgo.NewArg("tree", clapgo.WithLong("tree"),
					clapgo.WithHelp("print the command tree of the specification instead of parsing")),
				clapgo.NewArg("spec", clapgo.SetRequired(true), clapgo.WithValueName("SPEC"),
					clapgo.WithHelp("specification file (.yaml, .yml or .toml)")),
				clapgo.NewArg("args", clapgo.WithArity(types.ZeroOrMore()), clapgo.WithValueName("ARGS"),
					clapgo.WithHelp("arguments to check, after --")),
			),
			clapgo.WithExample("--json deploy.yaml -- push --target prod"),
		),
		clapgo.WithStdout(stdout),
		clapgo.WithStderr(stderr),
	)
}

func run(args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "clapcheck: ", 0)

	cli, err := newCLI(stdout, stderr)
	if err != nil {
		logger.Print(err)
		return exitFailure
	}
	m, err := cli.ParseArgs(args)
	if err != nil {
		return report(err, stdout, stderr, false)
	}
	noColor, _ := m.GetBool("no-color")

	path, _, _ := m.Value("spec")
	cmd, err := load.File(path)
	if err != nil {
		logger.Printf("loading %s: %v", path, err)
		return exitFailure
	}
	target, err := clapgo.NewParser(cmd, clapgo.WithStdout(stdout), clapgo.WithStderr(stderr))
	if err != nil {
		logger.Printf("%s: %v", path, err)
		return exitFailure
	}

	if tree, _ := m.GetBool("tree"); tree {
		target.PrintCommandTree(stdout, nil)
		return exitOK
	}

	argv, _, _ := m.Values("args")
	matches, err := target.ParseArgs(argv)
	if err != nil {
		return report(err, stdout, stderr, noColor)
	}

	if asJSON, _ := m.GetBool("json"); asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(matches.Snapshot()); err != nil {
			logger.Print(err)
			return exitFailure
		}
		return exitOK
	}
	printSnapshot(stdout, newPalette(stdout, noColor), matches.Snapshot(), "")
	return exitOK
}

// report prints help and version text to stdout and diagnostics to stderr
func report(err error, stdout, stderr io.Writer, noColor bool) int {
	if errs.IsInformational(err) {
		fmt.Fprint(stdout, errs.Diagnostic(err))
		return exitOK
	}

	p := newPalette(stderr, noColor)
	text := errs.Diagnostic(err)
	if rest, ok := strings.CutPrefix(text, "error:"); ok {
		text = p.err.Sprint("error:") + strings.Replace(rest, "USAGE:", p.heading.Sprint("USAGE:"), 1)
	}
	fmt.Fprint(stderr, text)
	return exitUsage
}

type palette struct {
	err     *color.Color
	heading *color.Color
	command *color.Color
	name    *color.Color
}

// newPalette colors output only for terminals, unless disabled
func newPalette(w io.Writer, noColor bool) *palette {
	p := &palette{
		err:     color.New(color.FgRed, color.Bold),
		heading: color.New(color.FgYellow),
		command: color.New(color.FgCyan, color.Bold),
		name:    color.New(color.FgGreen),
	}
	enabled := !noColor && util.IsTerminal(w)
	for _, c := range []*color.Color{p.err, p.heading, p.command, p.name} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func printSnapshot(w io.Writer, p *palette, s *clapgo.Snapshot, indent string) {
	fmt.Fprintln(w, indent+p.command.Sprint(s.Command))
	for _, id := range s.Order {
		quoted := make([]string, len(s.Values[id]))
		for i, v := range s.Values[id] {
			quoted[i] = strconv.Quote(v)
		}
		line := fmt.Sprintf("%s  %s x%d", indent, p.name.Sprint(id), s.Occurrences[id])
		if len(quoted) > 0 {
			line += " " + strings.Join(quoted, " ")
		}
		fmt.Fprintln(w, line)
	}
	if len(s.Overflow) > 0 {
		fmt.Fprintf(w, "%s  %s %s\n", indent, p.heading.Sprint("overflow:"), strings.Join(s.Overflow, " "))
	}
	if s.Subcommand != nil {
		printSnapshot(w, p, s.Subcommand, indent+"  ")
	}
}
