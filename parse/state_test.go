package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateCursor(t *testing.T) {
	s := NewState([]string{"-a", "--b", "c"})
	assert.Equal(t, "", s.CurrentArg())
	assert.Equal(t, "-a", s.Peek())
	assert.Equal(t, []string{"-a", "--b", "c"}, s.Rest())

	assert.True(t, s.Advance())
	assert.Equal(t, "-a", s.CurrentArg())
	assert.Equal(t, []string{"--b", "c"}, s.Rest())

	assert.True(t, s.Advance())
	assert.True(t, s.Advance())
	assert.Equal(t, "c", s.CurrentArg())
	assert.False(t, s.HasNext())
	assert.False(t, s.Advance())
	assert.Equal(t, "", s.Peek())
	assert.Nil(t, s.Rest())
}

func TestStateEmpty(t *testing.T) {
	s := NewState(nil)
	assert.False(t, s.HasNext())
	assert.False(t, s.Advance())
	assert.Equal(t, "", s.CurrentArg())
	assert.Nil(t, s.Rest())
}

func TestStatePositionalOnly(t *testing.T) {
	s := NewState([]string{"--", "-x"})
	assert.False(t, s.PositionalOnly())
	s.SetPositionalOnly()
	assert.True(t, s.PositionalOnly())
}
