package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	valued   map[rune]bool
	commands map[string]bool
	negative bool
}

func (s stubResolver) ShortTakesValue(r rune) bool   { return s.valued[r] }
func (s stubResolver) IsSubcommand(name string) bool { return s.commands[name] }
func (s stubResolver) AllowNegativeNumbers() bool    { return s.negative }

func TestClassify(t *testing.T) {
	r := stubResolver{
		valued:   map[rune]bool{'c': true, 'o': true},
		commands: map[string]bool{"run": true},
	}

	tests := []struct {
		name           string
		raw            string
		positionalOnly bool
		want           Token
	}{
		{"positional only mode", "--foo", true, Token{Kind: KindPositional, Raw: "--foo"}},
		{"terminator", "--", false, Token{Kind: KindTerminator, Raw: "--"}},
		{"long flag", "--foo", false, Token{Kind: KindLong, Raw: "--foo", Name: "foo"}},
		{"long flag with value", "--foo=a=b", false, Token{Kind: KindLong, Raw: "--foo=a=b", Name: "foo", Value: "a=b", HasValue: true}},
		{"long flag with empty value", "--foo=", false, Token{Kind: KindLong, Raw: "--foo=", Name: "foo", HasValue: true}},
		{"single short", "-a", false, Token{Kind: KindShort, Raw: "-a", Shorts: []rune{'a'}}},
		{"bundle", "-ab", false, Token{Kind: KindShort, Raw: "-ab", Shorts: []rune{'a', 'b'}}},
		{"bundle ending in valued flag", "-abc", false, Token{Kind: KindShort, Raw: "-abc", Shorts: []rune{'a', 'b', 'c'}}},
		{"first flag takes value", "-ovalue", false, Token{Kind: KindShort, Raw: "-ovalue", Shorts: []rune{'o'}, Value: "value", HasValue: true}},
		{"attached value with equals", "-o=x", false, Token{Kind: KindShort, Raw: "-o=x", Shorts: []rune{'o'}, Value: "x", HasValue: true}},
		{"valued flag inside bundle", "-acfile", false, Token{Kind: KindShort, Raw: "-acfile", Shorts: []rune{'a', 'c'}, Value: "file", HasValue: true}},
		{"unicode short", "-é", false, Token{Kind: KindShort, Raw: "-é", Shorts: []rune{'é'}}},
		{"subcommand", "run", false, Token{Kind: KindSubcommand, Raw: "run", Name: "run"}},
		{"subcommand after terminator", "run", true, Token{Kind: KindPositional, Raw: "run"}},
		{"plain positional", "file.txt", false, Token{Kind: KindPositional, Raw: "file.txt"}},
		{"lone dash", "-", false, Token{Kind: KindPositional, Raw: "-"}},
		{"negative number without policy", "-5", false, Token{Kind: KindShort, Raw: "-5", Shorts: []rune{'5'}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.raw, tt.positionalOnly, r))
		})
	}
}

func TestClassifyNegativeNumbers(t *testing.T) {
	r := stubResolver{negative: true}
	assert.Equal(t, KindPositional, Classify("-5", false, r).Kind)
	assert.Equal(t, KindPositional, Classify("-2.5", false, r).Kind)
	assert.Equal(t, KindShort, Classify("-x", false, r).Kind)
	assert.Equal(t, KindShort, Classify("-inf", false, r).Kind)
}

func TestIsFlagLike(t *testing.T) {
	assert.True(t, IsFlagLike("-a", false))
	assert.True(t, IsFlagLike("--", false))
	assert.True(t, IsFlagLike("-5", false))
	assert.False(t, IsFlagLike("-5", true))
	assert.False(t, IsFlagLike("-", false))
	assert.False(t, IsFlagLike("value", false))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "--foo", Token{Kind: KindLong, Name: "foo", Raw: "--foo=1"}.Display())
	assert.Equal(t, "-a", Token{Kind: KindShort, Shorts: []rune{'a', 'b'}, Raw: "-ab"}.Display())
	assert.Equal(t, "x", Token{Kind: KindPositional, Raw: "x"}.Display())
	assert.Equal(t, "long-flag", KindLong.String())
}
