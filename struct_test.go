package clapgo

import (
	"testing"
	"time"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runOptions struct {
	Target string `clap:"required;help:build target"`
	Jobs   *int   `clap:"short:j;default:4"`
}

type cliOptions struct {
	Verbose bool          `clap:"short:v;help:print more"`
	DryRun  bool          `clap:""`
	Mode    string        `clap:"long:mode;possible:{fast,slow};default:fast"`
	Tags    []string      `clap:"long:tag;delim:,"`
	Timeout time.Duration `clap:"default:5s"`
	Files   []string      `clap:"index:1;required;value:FILE"`
	Run     *runOptions   `clap:"kind:command;alias:r;help:run a target"`

	Plain   int
	Skipped string `clap:"-"`
	private string `clap:"long:private"`
}

func TestNewCommandFromStruct(t *testing.T) {
	cmd, err := NewCommandFromStruct("app", &cliOptions{})
	require.NoError(t, err)
	p := mustParser(t, cmd)

	var ids []string
	for _, a := range p.Spec().Args() {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"verbose", "dry-run", "mode", "tag", "timeout", "files", "help"}, ids)

	verbose, _ := p.Spec().Arg("verbose")
	assert.Equal(t, 'v', verbose.Short)
	assert.Empty(t, verbose.Long)
	assert.True(t, verbose.IsPresenceOnly())

	tags, _ := p.Spec().Arg("tag")
	assert.Equal(t, "tag", tags.Long)
	assert.True(t, tags.Multiple)
	assert.Equal(t, ',', tags.Delimiter)

	files, _ := p.Spec().Arg("files")
	assert.Equal(t, 1, files.Index)
	assert.Equal(t, types.OneOrMore(), files.Arity)
	assert.Equal(t, "FILE", files.ValueName)

	run, ok := p.Spec().Subcommand("r")
	require.True(t, ok)
	assert.Equal(t, "run", run.Name())
	assert.Equal(t, "run a target", run.About())
	target, ok := run.Arg("target")
	require.True(t, ok)
	assert.True(t, target.Required)
}

func TestMatches_Bind(t *testing.T) {
	cmd, err := NewCommandFromStruct("app", &cliOptions{})
	require.NoError(t, err)
	p := mustParser(t, cmd)

	m, err := p.ParseString("-v --tag a,b --tag c x y r --target t")
	require.NoError(t, err)

	var opts cliOptions
	require.NoError(t, m.Bind(&opts))
	assert.True(t, opts.Verbose)
	assert.False(t, opts.DryRun)
	assert.Equal(t, "fast", opts.Mode)
	assert.Equal(t, []string{"a", "b", "c"}, opts.Tags)
	assert.Equal(t, 5*time.Second, opts.Timeout)
	assert.Equal(t, []string{"x", "y"}, opts.Files)
	require.NotNil(t, opts.Run)
	assert.Equal(t, "t", opts.Run.Target)
	require.NotNil(t, opts.Run.Jobs)
	assert.Equal(t, 4, *opts.Run.Jobs)

	m, err = p.ParseString("--dry-run --mode slow x")
	require.NoError(t, err)
	opts = cliOptions{}
	require.NoError(t, m.Bind(&opts))
	assert.True(t, opts.DryRun)
	assert.Equal(t, "slow", opts.Mode)
	assert.Nil(t, opts.Tags)
	assert.Nil(t, opts.Run)
}

func TestMatches_BindErrors(t *testing.T) {
	cmd, err := NewCommandFromStruct("app", &cliOptions{})
	require.NoError(t, err)
	m, err := mustParser(t, cmd).ParseString("x")
	require.NoError(t, err)

	assert.ErrorIs(t, m.Bind(cliOptions{}), types.ErrVariableNotAPointer)
	assert.ErrorIs(t, m.Bind((*cliOptions)(nil)), types.ErrBindNilPointer)
	s := "text"
	assert.ErrorIs(t, m.Bind(&s), types.ErrUnsupportedTypeConversion)

	type other struct {
		Unknown string `clap:"long:unknown"`
	}
	assert.ErrorIs(t, m.Bind(&other{}), errs.ErrArgumentNotDefined)

	m, err = mustParser(t, cmd).ParseString("--timeout soon x")
	require.NoError(t, err)
	assert.ErrorIs(t, m.Bind(&cliOptions{}), types.ErrParseDuration)
}

func TestNewCommandFromStruct_Errors(t *testing.T) {
	_, err := NewCommandFromStruct("app", nil)
	assert.ErrorIs(t, err, errs.ErrSpecConflict)

	_, err = NewCommandFromStruct("app", new(int))
	assert.ErrorIs(t, err, errs.ErrSpecConflict)

	_, err = NewCommandFromStruct("app", &struct {
		Ch chan int `clap:""`
	}{})
	assert.ErrorIs(t, err, errs.ErrSpecConflict)

	_, err = NewCommandFromStruct("app", &struct {
		Bad string `clap:"colour:red"`
	}{})
	assert.ErrorIs(t, err, errs.ErrSpecConflict)

	_, err = NewCommandFromStruct("app", &struct {
		Sub string `clap:"kind:command"`
	}{})
	assert.ErrorIs(t, err, errs.ErrSpecConflict)
}
