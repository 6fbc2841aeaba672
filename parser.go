package clapgo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/parse"
)

// ErrCommandNotFound is returned by help and usage lookups given an unknown command path
var ErrCommandNotFound = errors.New("command not found")

// Parser matches argument vectors against a compiled command tree. A Parser holds
// no per-parse state and may be used from several goroutines at once.
type Parser struct {
	root           *Spec
	stdout         io.Writer
	stderr         io.Writer
	renderer       Renderer
	helpConfig     HelpConfig
	autoHelp       bool
	autoVersion    bool
	prefixMatching bool
	exitCode       int
	exitFunc       func(code int)
}

// NewParser compiles root into an immutable specification. Any inconsistency in the
// declaration (colliding forms, bad positional indices, dangling relations) fails with
// an error matching errs.ErrSpecConflict.
//
// Configuration example:
//
//	parser, err := NewParser(
//		NewCommand("app",
//			WithVersion("1.0.0"),
//			WithArgs(
//				NewArg("verbose", WithShort('v'), WithLong("verbose"), SetMultiple(true)),
//				NewArg("config", WithShort('c'), WithLong("config"), SetTakesValue(true)),
//				NewArg("input", SetRequired(true)),
//			),
//			WithSubcommands(NewCommand("run",
//				WithArgs(NewArg("target", WithLong("target"), SetTakesValue(true), SetRequired(true))))),
//		),
//		WithPrefixMatching(false),
//	)
func NewParser(root *Command, configs ...ConfigureParserFunc) (*Parser, error) {
	p := &Parser{
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		helpConfig:     DefaultHelpConfig,
		autoHelp:       true,
		autoVersion:    true,
		prefixMatching: true,
		exitCode:       2,
		exitFunc:       os.Exit,
	}

	var err error
	for _, config := range configs {
		config(p, &err)
		if err != nil {
			return nil, err
		}
	}
	if p.renderer == nil {
		p.renderer = NewRenderer(p.helpConfig)
	}

	programName := ""
	if len(os.Args) > 0 {
		programName = filepath.Base(os.Args[0])
	}
	p.root, err = compile(root, compileOptions{
		programName:    programName,
		autoHelp:       p.autoHelp,
		autoVersion:    p.autoVersion,
		prefixMatching: p.prefixMatching,
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

// Spec returns the compiled root level
func (p *Parser) Spec() *Spec {
	return p.root
}

// Parse matches a process argument vector. args[0] is the program invocation name
// and is ignored. On failure the returned error is an *errs.Error carrying the
// offending token, identifiers, command path and usage; see errs.Diagnostic.
func (p *Parser) Parse(args []string) (*Matches, error) {
	if len(args) > 0 {
		args = args[1:]
	}
	return p.ParseArgs(args)
}

// ParseArgs matches arguments which don't include the program name
func (p *Parser) ParseArgs(args []string) (*Matches, error) {
	return p.matchLevel(p.root, args)
}

// ParseString splits s with shell quoting rules and matches the resulting words. s
// doesn't include the program name.
func (p *Parser) ParseString(s string) (*Matches, error) {
	args, err := parse.Split(s)
	if err != nil {
		return nil, err
	}
	return p.ParseArgs(args)
}

// ParseOrExit parses args (including the program name). Help and version requests
// are printed to stdout and exit with 0; failures print their diagnostic to stderr and
// exit with the configured code.
func (p *Parser) ParseOrExit(args []string) *Matches {
	m, err := p.Parse(args)
	if err == nil {
		return m
	}
	if errs.IsInformational(err) {
		fmt.Fprint(p.stdout, errs.Diagnostic(err))
		p.exitFunc(0)
		return nil
	}
	fmt.Fprint(p.stderr, errs.Diagnostic(err))
	p.exitFunc(p.exitCode)
	return nil
}
