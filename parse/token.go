package parse

import (
	"strconv"
	"strings"
)

// TokenKind is the classification of a single raw argument
type TokenKind int

const (
	KindPositional TokenKind = iota + 1 // positional-candidate
	KindLong                            // long flag, optionally carrying an attached value
	KindShort                           // short flag or bundle of short flags
	KindTerminator                      // the explicit "--" terminator
	KindSubcommand                      // subcommand-name-candidate
)

// String returns the string representation of a TokenKind
func (k TokenKind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindLong:
		return "long-flag"
	case KindShort:
		return "short-flag"
	case KindTerminator:
		return "terminator"
	case KindSubcommand:
		return "subcommand"
	}
	return "unknown"
}

// Token is the ephemeral classification of one raw argument
type Token struct {
	Kind     TokenKind
	Raw      string
	Name     string // long flag name without dashes, or subcommand name
	Shorts   []rune // short flags in bundle order
	Value    string // attached value
	HasValue bool   // an attached value is present, possibly empty ("--name=")
}

// Resolver answers the questions classification asks about the current command level
type Resolver interface {
	// ShortTakesValue reports whether the short flag r is known and takes a value
	ShortTakesValue(r rune) bool
	// IsSubcommand reports whether name selects a child command at this point of the level
	IsSubcommand(name string) bool
	// AllowNegativeNumbers reports whether "-5" style arguments are values
	AllowNegativeNumbers() bool
}

// Classify turns one raw argument into a Token. The rules apply in order:
// positional-only mode, the "--" terminator, long flags (split on the first '='),
// short flags (a bundle, where the remainder after a value-taking flag is that
// flag's attached value), subcommand names, and finally positional candidates.
func Classify(raw string, positionalOnly bool, r Resolver) Token {
	switch {
	case positionalOnly:
		return Token{Kind: KindPositional, Raw: raw}
	case raw == "--":
		return Token{Kind: KindTerminator, Raw: raw}
	case strings.HasPrefix(raw, "--"):
		name, value, found := strings.Cut(raw[2:], "=")
		return Token{Kind: KindLong, Raw: raw, Name: name, Value: value, HasValue: found}
	case len(raw) > 1 && raw[0] == '-':
		if r != nil && r.AllowNegativeNumbers() && IsNumber(raw) {
			return Token{Kind: KindPositional, Raw: raw}
		}
		return classifyShort(raw, r)
	case r != nil && r.IsSubcommand(raw):
		return Token{Kind: KindSubcommand, Raw: raw, Name: raw}
	}

	return Token{Kind: KindPositional, Raw: raw}
}

func classifyShort(raw string, r Resolver) Token {
	tok := Token{Kind: KindShort, Raw: raw}
	rest := []rune(raw[1:])
	for i, c := range rest {
		tok.Shorts = append(tok.Shorts, c)
		if r == nil || !r.ShortTakesValue(c) || i == len(rest)-1 {
			continue
		}
		value := string(rest[i+1:])
		// -o=value
		tok.Value = strings.TrimPrefix(value, "=")
		tok.HasValue = true
		break
	}

	return tok
}

// IsFlagLike reports whether raw would be classified as a flag or terminator
// rather than consumed as a value
func IsFlagLike(raw string, allowNegativeNumbers bool) bool {
	if len(raw) < 2 || raw[0] != '-' {
		return false
	}
	if allowNegativeNumbers && IsNumber(raw) {
		return false
	}
	return true
}

// IsNumber reports whether s parses as an integer or a floating point number
func IsNumber(s string) bool {
	digits := strings.TrimLeft(s, "+-")
	if digits == "" || !(digits[0] == '.' || (digits[0] >= '0' && digits[0] <= '9')) {
		return false
	}
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// Display returns the form under which the token's flag is shown to users
func (t Token) Display() string {
	switch t.Kind {
	case KindLong:
		return "--" + t.Name
	case KindShort:
		if len(t.Shorts) > 0 {
			return "-" + string(t.Shorts[0])
		}
	}
	return t.Raw
}
