package clapgo

import (
	"errors"
	"strings"
	"testing"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/types"
	"github.com/google/go-cmp/cmp"
)

func fuzzParser(t testing.TB) *Parser {
	p, err := NewParser(NewCommand("app",
		WithVersion("1.0"),
		SetAllowNegativeNumbers(true),
		WithArgs(
			NewArg("verbose", WithShort('v'), WithLong("verbose"), SetMultiple(true)),
			NewArg("output", WithShort('o'), WithLong("output"), SetTakesValue(true)),
			NewArg("mode", WithLong("mode"), SetTakesValue(true), WithPossibleValues("fast", "slow")),
			NewArg("tag", WithShort('t'), WithLong("tag"), SetTakesValue(true), SetMultiple(true), WithValueDelimiter(',')),
			NewArg("pair", WithLong("pair"), WithArityString("2")),
			NewArg("src", WithArity(types.ZeroOrMore())),
			NewArg("dst"),
		),
		WithSubcommands(NewCommand("run",
			SetPassThrough(true),
			WithArgs(NewArg("target", WithLong("target"), SetTakesValue(true), SetRequired(true), WithConflicts("all")),
				NewArg("all", WithShort('a'))),
		)),
	))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"-v -vv --verbose",
		"-ofile --output=x -o y",
		"--mode fast --mode=slow",
		"-t a,b --tag c",
		"--pair 1 2 src dst",
		"a b c -- -d",
		"run --target x -a --unknown",
		"--ver -5 -1.5",
		"-vo",
		"--=",
		"- -- ---",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	p := fuzzParser(f)
	f.Fuzz(func(t *testing.T, line string) {
		args := strings.Fields(line)
		first, err := p.ParseArgs(args)
		if err != nil {
			var e *errs.Error
			if !errors.As(err, &e) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			if e.HostDefect() {
				t.Fatalf("input %q produced a host error: %v", line, err)
			}
			if _, again := p.ParseArgs(args); again == nil || again.Error() != err.Error() {
				t.Fatalf("input %q failed inconsistently: %v / %v", line, err, again)
			}
			return
		}
		second, err := p.ParseArgs(args)
		if err != nil {
			t.Fatalf("second parse of %q failed: %v", line, err)
		}
		if diff := cmp.Diff(first.Snapshot(), second.Snapshot()); diff != "" {
			t.Fatalf("parse of %q is not deterministic:\n%s", line, diff)
		}
	})
}
