package clapgo

import (
	"fmt"
	"sync"
	"testing"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asError(t *testing.T, err error) *errs.Error {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(*errs.Error)
	require.True(t, ok, "expected *errs.Error, got %T", err)
	return e
}

func values(t *testing.T, m *Matches, id string) []string {
	t.Helper()
	v, _, err := m.Values(id)
	require.NoError(t, err)
	return v
}

func present(t *testing.T, m *Matches, id string) bool {
	t.Helper()
	ok, err := m.IsPresent(id)
	require.NoError(t, err)
	return ok
}

func TestParser_LongPrefix(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(
		NewArg("foo", WithLong("foo")),
		NewArg("foobar", WithLong("foobar")),
	)))

	m, err := p.ParseArgs([]string{"--foo"})
	require.NoError(t, err)
	assert.True(t, present(t, m, "foo"))
	assert.False(t, present(t, m, "foobar"))

	m, err = p.ParseArgs([]string{"--foob"})
	require.NoError(t, err)
	assert.Equal(t, []string{"foobar"}, m.IDs())

	_, err = p.ParseArgs([]string{"--fo"})
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrAmbiguousArgument)
	assert.Equal(t, "--fo", e.Token)
	assert.Equal(t, []string{"foo", "foobar"}, e.IDs)
	assert.Equal(t, []string{"app"}, e.Path)
	assert.Contains(t, e.Error(), "'--foo', '--foobar'")
}

func TestParser_ShortBundles(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(
		flag("all", 'a'),
		flag("brief", 'b'),
		option("color", 'c'),
		NewArg("input", WithArity(types.ZeroOrMore())),
	)))

	tests := []struct {
		name  string
		args  []string
		ids   []string
		color []string
		input []string
	}{
		{"value after bundle", []string{"-abc", "value"}, []string{"all", "brief", "color"}, []string{"value"}, nil},
		{"remainder is attached value", []string{"-acb"}, []string{"all", "color"}, []string{"b"}, nil},
		{"attached with equals", []string{"-c=red", "x"}, []string{"color", "input"}, []string{"red"}, []string{"x"}},
		{"attached", []string{"-cred"}, []string{"color"}, []string{"red"}, nil},
		{"separate value", []string{"-c", "red", "-b"}, []string{"color", "brief"}, []string{"red"}, nil},
		{"long with equals", []string{"--color=red"}, []string{"color"}, []string{"red"}, nil},
		{"long with empty value", []string{"--color="}, []string{"color"}, []string{""}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := p.ParseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.ids, m.IDs())
			assert.Equal(t, tt.color, values(t, m, "color"))
			assert.Equal(t, tt.input, values(t, m, "input"))
		})
	}
}

func TestParser_PositionalReservation(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(
		NewArg("src", WithArity(types.ZeroOrMore())),
		NewArg("dst", SetRequired(true)),
	)))

	m, err := p.ParseArgs([]string{"x", "y", "z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, values(t, m, "src"))
	assert.Equal(t, []string{"z"}, values(t, m, "dst"))

	m, err = p.ParseArgs([]string{"x"})
	require.NoError(t, err)
	assert.False(t, present(t, m, "src"))
	assert.Equal(t, []string{"x"}, values(t, m, "dst"))

	_, err = p.ParseArgs(nil)
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingRequiredArgument)
	assert.Equal(t, []string{"dst"}, e.IDs)
}

func TestParser_FixedPositionalsAroundVariable(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(
		NewArg("first"),
		NewArg("middle", WithArity(types.Range(0, 2))),
		NewArg("pair", WithArity(types.Exactly(2))),
	)))

	m, err := p.ParseArgs([]string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, values(t, m, "first"))
	assert.Equal(t, []string{"b", "c"}, values(t, m, "middle"))
	assert.Equal(t, []string{"d", "e"}, values(t, m, "pair"))

	_, err = p.ParseArgs([]string{"a", "b", "c", "d", "e", "f"})
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownArgument)
	assert.Equal(t, "f", e.Token)

	_, err = p.ParseArgs([]string{"a", "b"})
	e = asError(t, err)
	assert.ErrorIs(t, err, errs.ErrArityMismatch)
	assert.Equal(t, []string{"pair"}, e.IDs)
	assert.Equal(t, 1, e.Actual)
}

func subcommandFixture() *Command {
	return NewCommand("app",
		WithArgs(flag("verbose", 'v')),
		WithSubcommands(
			NewCommand("run",
				WithCommandAliases("r"),
				WithArgs(NewArg("target", WithLong("target"), SetTakesValue(true), SetRequired(true)))),
			NewCommand("list"),
		),
	)
}

func TestParser_Subcommands(t *testing.T) {
	p := mustParser(t, subcommandFixture())

	m, err := p.ParseArgs([]string{"run", "--target", "x"})
	require.NoError(t, err)
	assert.Empty(t, m.IDs())
	name, sub := m.Subcommand()
	assert.Equal(t, "run", name)
	require.NotNil(t, sub)
	assert.Equal(t, []string{"x"}, values(t, sub, "target"))
	assert.Equal(t, []string{"app", "run"}, sub.Path())

	m, err = p.ParseArgs([]string{"-v", "r", "--target=y"})
	require.NoError(t, err)
	assert.True(t, present(t, m, "verbose"))
	assert.Equal(t, "run", m.SubcommandName())
	sub, ok := m.SubcommandMatches("r")
	require.True(t, ok)
	assert.Equal(t, []string{"y"}, values(t, sub, "target"))
	_, ok = m.SubcommandMatches("list")
	assert.False(t, ok)

	_, err = p.ParseArgs([]string{"run"})
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingRequiredArgument)
	assert.Equal(t, []string{"target"}, e.IDs)
	assert.Equal(t, []string{"app", "run"}, e.Path)
	assert.Equal(t, "app run --target <target> [OPTIONS]", e.Usage)

	_, err = p.ParseArgs([]string{"run", "-v", "--target", "x"})
	e = asError(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownArgument)
	assert.Equal(t, "-v", e.Token)
	assert.Equal(t, []string{"app", "run"}, e.Path, "parent flags are not inherited")
}

func TestParser_SubcommandNameAsPositional(t *testing.T) {
	p := mustParser(t, NewCommand("app",
		WithArgs(NewArg("name", SetRequired(true))),
		WithSubcommands(NewCommand("run")),
	))

	m, err := p.ParseArgs([]string{"run"})
	require.NoError(t, err)
	assert.Equal(t, []string{"run"}, values(t, m, "name"))
	assert.Empty(t, m.SubcommandName())

	m, err = p.ParseArgs([]string{"x", "run"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, values(t, m, "name"))
	assert.Equal(t, "run", m.SubcommandName())

	p = mustParser(t, NewCommand("app",
		WithArgs(NewArg("name")),
		WithSubcommands(NewCommand("run")),
	))
	m, err = p.ParseArgs([]string{"run"})
	require.NoError(t, err)
	assert.False(t, present(t, m, "name"))
	assert.Equal(t, "run", m.SubcommandName())
}

func TestParser_Terminator(t *testing.T) {
	p := mustParser(t, NewCommand("app",
		WithArgs(flag("verbose", 'v'), NewArg("files", SetMultiple(true))),
		WithSubcommands(NewCommand("run")),
	))

	m, err := p.ParseArgs([]string{"-v", "--", "-x", "--y", "run", "--"})
	require.NoError(t, err)
	assert.True(t, present(t, m, "verbose"))
	assert.Equal(t, []string{"-x", "--y", "run", "--"}, values(t, m, "files"))
	assert.Empty(t, m.SubcommandName())
}

func TestParser_MissingValue(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(option("target", 't'), flag("verbose", 'v'))))

	tests := []struct {
		args  []string
		token string
	}{
		{[]string{"--target"}, "--target"},
		{[]string{"--target", "-v"}, "--target"},
		{[]string{"-t"}, "-t"},
		{[]string{"-vt"}, "-t"},
		{[]string{"--target", "--"}, "--target"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.args), func(t *testing.T) {
			_, err := p.ParseArgs(tt.args)
			e := asError(t, err)
			assert.ErrorIs(t, err, errs.ErrMissingValue)
			assert.Equal(t, []string{"target"}, e.IDs)
			assert.Contains(t, e.Error(), "'"+tt.token+"'")
		})
	}
}

func TestParser_UnknownArgument(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(option("target", 't'), NewArg("input"))))

	_, err := p.ParseArgs([]string{"--tagret", "x"})
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownArgument)
	assert.Equal(t, "--tagret", e.Token)
	assert.Equal(t, "--target", e.Suggestion)
	assert.Equal(t, "app [OPTIONS] [input]", e.Usage)
	assert.Contains(t, e.Diagnostic(), "did you mean '--target'?")
	assert.Contains(t, e.Diagnostic(), "USAGE:\n    app [OPTIONS] [input]\n")

	_, err = p.ParseArgs([]string{"--zzzzzz"})
	e = asError(t, err)
	assert.Empty(t, e.Suggestion)

	_, err = p.ParseArgs([]string{"-z"})
	e = asError(t, err)
	assert.Equal(t, "-z", e.Token)

	_, err = p.ParseArgs([]string{"a", "b"})
	e = asError(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownArgument)
	assert.Equal(t, "b", e.Token)
}

func TestParser_PassThrough(t *testing.T) {
	p := mustParser(t, NewCommand("app",
		SetPassThrough(true),
		WithArgs(flag("verbose", 'v'), NewArg("input")),
	))

	m, err := p.ParseArgs([]string{"-v", "--zzz", "a", "b", "-q", "-vq", "-qv"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, values(t, m, "input"))
	assert.Equal(t, []string{"--zzz", "-q", "-vq", "-qv", "b"}, m.Overflow())
	n, err := m.Occurrences("verbose")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "bundles with an unknown flag record none of their flags")

	m, err = p.ParseArgs([]string{"-qv"})
	require.NoError(t, err)
	assert.False(t, present(t, m, "verbose"))
	assert.Equal(t, []string{"-qv"}, m.Overflow())

	strict := mustParser(t, NewCommand("app", WithArgs(flag("verbose", 'v'))))
	_, err = strict.ParseArgs([]string{"-hq"})
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrUnknownArgument)
	assert.Equal(t, "-hq", e.Token)
}

func TestParser_Occurrences(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(
		NewArg("verbose", WithShort('v'), SetMultiple(true)),
		option("mode", 'm'),
		NewArg("include", WithLong("include"), SetTakesValue(true), SetMultiple(true)),
		NewArg("tag", WithLong("tag"), SetTakesValue(true), SetMultiple(true), WithValueDelimiter(',')),
		NewArg("level", WithLong("level"), SetTakesValue(true), SetMultiple(true), WithOverriddenBy("level")),
	)))

	m, err := p.ParseArgs([]string{
		"-v", "-v", "-vv",
		"--mode", "a", "-m", "b",
		"--include", "x", "--include", "y",
		"--tag", "a,b", "--tag=c",
		"--level", "1", "--level", "2",
	})
	require.NoError(t, err)

	occurrences := func(id string) int {
		n, err := m.Occurrences(id)
		require.NoError(t, err)
		return n
	}
	assert.Equal(t, 4, occurrences("verbose"))
	assert.Equal(t, 2, occurrences("mode"), "last one wins but every occurrence counts")
	assert.Equal(t, []string{"b"}, values(t, m, "mode"))
	assert.Equal(t, []string{"x", "y"}, values(t, m, "include"))
	assert.Equal(t, []string{"a", "b", "c"}, values(t, m, "tag"))
	assert.Equal(t, 2, occurrences("tag"))
	assert.Equal(t, []string{"2"}, values(t, m, "level"))
	assert.Equal(t, 1, occurrences("level"))
}

func TestParser_OverriddenBy(t *testing.T) {
	p := mustParser(t, NewCommand("app", WithArgs(
		NewArg("color", WithLong("color"), WithOverriddenBy("no-color")),
		NewArg("no-color", WithLong("no-color"), WithOverriddenBy("color")),
	)))

	m, err := p.ParseArgs([]string{"--color", "--no-color"})
	require.NoError(t, err)
	assert.Equal(t, []string{"no-color"}, m.IDs())

	m, err = p.ParseArgs([]string{"--no-color", "--color"})
	require.NoError(t, err)
	assert.Equal(t, []string{"color"}, m.IDs())
}

func TestParser_NegativeNumbers(t *testing.T) {
	cmd := func(allow bool) *Command {
		return NewCommand("app",
			SetAllowNegativeNumbers(allow),
			WithArgs(option("offset", 'o'), NewArg("n", WithArity(types.ZeroOrMore()))))
	}

	p := mustParser(t, cmd(true))
	m, err := p.ParseArgs([]string{"--offset", "-5", "-3", "-1.5"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-5"}, values(t, m, "offset"))
	assert.Equal(t, []string{"-3", "-1.5"}, values(t, m, "n"))
	offset, err := m.GetInt("offset")
	require.NoError(t, err)
	assert.Equal(t, -5, offset)

	p = mustParser(t, cmd(false))
	_, err = p.ParseArgs([]string{"--offset", "-5"})
	assert.ErrorIs(t, err, errs.ErrMissingValue)
	_, err = p.ParseArgs([]string{"-3"})
	assert.ErrorIs(t, err, errs.ErrUnknownArgument)
}

func TestParser_ValueConsumption(t *testing.T) {
	p := mustParser(t, NewCommand("app",
		WithArgs(
			flag("verbose", 'v'),
			NewArg("files", WithLong("files"), WithArity(types.OneOrMore())),
			NewArg("pair", WithLong("pair"), WithArityString("2")),
			NewArg("range", WithLong("range"), WithArityString("1..2")),
			NewArg("rest", WithArity(types.ZeroOrMore())),
		),
		WithSubcommands(NewCommand("run")),
	))

	tests := []struct {
		name string
		args []string
		id   string
		want []string
		rest []string
		sub  string
	}{
		{"open arity stops at flags", []string{"--files", "a", "b", "c", "--verbose"}, "files", []string{"a", "b", "c"}, nil, ""},
		{"open arity stops at subcommand", []string{"--files", "a", "run"}, "files", []string{"a"}, nil, "run"},
		{"minimum beats subcommand name", []string{"--files", "run"}, "files", []string{"run"}, nil, ""},
		{"fixed arity", []string{"--pair", "a", "b", "c"}, "pair", []string{"a", "b"}, []string{"c"}, ""},
		{"attached value completes minimum", []string{"--pair=a", "b", "c"}, "pair", []string{"a", "b"}, []string{"c"}, ""},
		{"attached value stops at minimum", []string{"--range=a", "b"}, "range", []string{"a"}, []string{"b"}, ""},
		{"range up to maximum", []string{"--range", "a", "b", "c"}, "range", []string{"a", "b"}, []string{"c"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := p.ParseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(t, m, tt.id))
			assert.Equal(t, tt.rest, values(t, m, "rest"))
			assert.Equal(t, tt.sub, m.SubcommandName())
		})
	}

	_, err := p.ParseArgs([]string{"--pair", "a", "--verbose"})
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrArityMismatch)
	assert.Equal(t, types.Exactly(2), e.Expected)
	assert.Equal(t, 1, e.Actual)

	_, err = p.ParseArgs([]string{"--verbose=yes"})
	e = asError(t, err)
	assert.ErrorIs(t, err, errs.ErrArityMismatch)
	assert.Equal(t, []string{"verbose"}, e.IDs)
}

func TestParser_HelpAndVersion(t *testing.T) {
	p := mustParser(t, NewCommand("app",
		WithVersion("1.2.3"),
		WithArgs(NewArg("input", SetRequired(true))),
		WithSubcommands(NewCommand("run", SetHelpOnEmpty(true), WithArgs(flag("fast", 'f')))),
	))

	_, err := p.ParseArgs([]string{"--help"})
	e := asError(t, err)
	assert.ErrorIs(t, err, errs.ErrDisplayHelp)
	assert.True(t, e.Informational())
	assert.Contains(t, e.Text, "USAGE:\n    app [OPTIONS] <input> [SUBCOMMAND]")
	assert.Equal(t, e.Text, e.Diagnostic())

	_, err = p.ParseArgs([]string{"x", "run", "-fh"})
	e = asError(t, err)
	assert.ErrorIs(t, err, errs.ErrDisplayHelp)
	assert.Equal(t, []string{"app", "run"}, e.Path)
	assert.Contains(t, e.Text, "USAGE:\n    app run [OPTIONS]")

	_, err = p.ParseArgs([]string{"-V"})
	e = asError(t, err)
	assert.ErrorIs(t, err, errs.ErrDisplayVersion)
	assert.Equal(t, "app 1.2.3\n", e.Text)

	_, err = p.ParseArgs([]string{"x", "run"})
	assert.ErrorIs(t, err, errs.ErrDisplayHelp, "run shows help when given nothing")

	_, err = p.ParseArgs([]string{"x", "run", "--version"})
	assert.ErrorIs(t, err, errs.ErrUnknownArgument, "run declares no version")
}

func TestParser_ParseHandling(t *testing.T) {
	p := mustParser(t, subcommandFixture())

	m, err := p.Parse([]string{"/usr/bin/app", "list"})
	require.NoError(t, err)
	assert.Equal(t, "list", m.SubcommandName())

	m, err = p.ParseString(`-v run --target "two words"`)
	require.NoError(t, err)
	_, sub := m.Subcommand()
	assert.Equal(t, []string{"two words"}, values(t, sub, "target"))

	_, err = p.ParseString(`run --target "unterminated`)
	assert.Error(t, err)
}

func TestParser_Idempotent(t *testing.T) {
	p := mustParser(t, subcommandFixture())
	args := []string{"-v", "run", "--target", "x"}

	first, err := p.ParseArgs(args)
	require.NoError(t, err)
	second, err := p.ParseArgs(args)
	require.NoError(t, err)
	if diff := cmp.Diff(first.Snapshot(), second.Snapshot()); diff != "" {
		t.Errorf("parse results differ (-first +second):\n%s", diff)
	}
	assert.Equal(t, []string{"-v", "run", "--target", "x"}, args, "input is not modified")
}

func TestParser_Concurrent(t *testing.T) {
	p := mustParser(t, subcommandFixture())
	want, err := p.ParseArgs([]string{"run", "--target", "x"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Snapshot, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m, err := p.ParseArgs([]string{"run", "--target", "x"})
			if err == nil {
				results[i] = m.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Empty(t, cmp.Diff(want.Snapshot(), got))
	}
}
