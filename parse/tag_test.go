package parse

import (
	"reflect"
	"testing"

	"github.com/PureW/clapgo/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func field(name string) reflect.StructField {
	return reflect.StructField{Name: name, Type: reflect.TypeOf("")}
}

func TestUnmarshalTag(t *testing.T) {
	cfg, err := UnmarshalTag("long:mode;short:m;help:run mode: fast or slow;possible:{fast, slow};default:fast;required", field("Mode"))
	require.NoError(t, err)
	assert.Equal(t, &types.TagConfig{
		Kind:           types.KindArg,
		Long:           "mode",
		Short:          "m",
		Help:           "run mode: fast or slow",
		PossibleValues: []string{"fast", "slow"},
		Default:        "fast",
		Required:       true,
	}, cfg)
}

func TestUnmarshalTagPositional(t *testing.T) {
	cfg, err := UnmarshalTag("index:2;arity:+;value:FILE;delim:,", field("Files"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Index)
	require.NotNil(t, cfg.Arity)
	assert.Equal(t, types.OneOrMore(), *cfg.Arity)
	assert.Equal(t, "FILE", cfg.ValueName)
	assert.Equal(t, ',', cfg.Delimiter)
}

func TestUnmarshalTagCommand(t *testing.T) {
	cfg, err := UnmarshalTag("kind:command;name:run;alias:r,exec;help:run a target", field("Run"))
	require.NoError(t, err)
	assert.Equal(t, types.KindCommand, cfg.Kind)
	assert.Equal(t, "run", cfg.Long)
	assert.Equal(t, []string{"r", "exec"}, cfg.Aliases)
}

func TestUnmarshalTagRelations(t *testing.T) {
	cfg, err := UnmarshalTag("id:out;conflicts:quiet,silent;requires:{format};multiple:false;hidden:true", field("Out"))
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.ID)
	assert.Equal(t, []string{"quiet", "silent"}, cfg.ConflictsWith)
	assert.Equal(t, []string{"format"}, cfg.Requires)
	assert.False(t, cfg.Multiple)
	assert.True(t, cfg.Hidden)
}

func TestUnmarshalTagEmpty(t *testing.T) {
	cfg, err := UnmarshalTag("", field("X"))
	require.NoError(t, err)
	assert.Equal(t, types.KindArg, cfg.Kind)
}

func TestUnmarshalTagErrors(t *testing.T) {
	tests := []struct {
		name string
		tag  string
	}{
		{"missing colon", "long"},
		{"unknown key", "colour:red"},
		{"bad kind", "kind:flagz"},
		{"long short", "short:ab"},
		{"bad bool", "required:perhaps"},
		{"bad index", "index:zero"},
		{"index zero", "index:0"},
		{"bad arity", "arity:3..1"},
		{"bad delimiter", "delim:;;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalTag(tt.tag, field("F"))
			assert.Error(t, err)
		})
	}
}
