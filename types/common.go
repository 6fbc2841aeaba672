package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Unbounded marks an Arity without an upper limit
const Unbounded = -1

// Arity describes how many values a single occurrence of an argument accepts
type Arity struct {
	Min int
	Max int // Unbounded for open-ended arities
}

// Exactly returns a fixed arity of n values
func Exactly(n int) Arity {
	return Arity{Min: n, Max: n}
}

// Range returns an arity accepting between min and max values
func Range(min, max int) Arity {
	return Arity{Min: min, Max: max}
}

// OneOrMore returns the open-ended "+" arity
func OneOrMore() Arity {
	return Arity{Min: 1, Max: Unbounded}
}

// ZeroOrMore returns the open-ended "*" arity
func ZeroOrMore() Arity {
	return Arity{Min: 0, Max: Unbounded}
}

// IsOpen reports whether the arity has no upper bound
func (a Arity) IsOpen() bool {
	return a.Max == Unbounded
}

// IsFixed reports whether exactly Min values are accepted
func (a Arity) IsFixed() bool {
	return a.Max == a.Min
}

// Accepts reports whether n values satisfy the arity
func (a Arity) Accepts(n int) bool {
	if n < a.Min {
		return false
	}
	return a.IsOpen() || n <= a.Max
}

// Valid reports whether the bounds are coherent
func (a Arity) Valid() bool {
	if a.Min < 0 {
		return false
	}
	return a.IsOpen() || a.Max >= a.Min
}

// String returns the notation understood by ParseArity
func (a Arity) String() string {
	switch {
	case a.Min == 0 && a.IsOpen():
		return "*"
	case a.Min == 1 && a.IsOpen():
		return "+"
	case a.IsOpen():
		return fmt.Sprintf("%d..*", a.Min)
	case a.IsFixed():
		return strconv.Itoa(a.Min)
	}
	return fmt.Sprintf("%d..%d", a.Min, a.Max)
}

// Describe returns a human-readable count used in error messages
func (a Arity) Describe() string {
	switch {
	case a.IsFixed():
		return strconv.Itoa(a.Min)
	case a.IsOpen():
		return fmt.Sprintf("at least %d", a.Min)
	}
	return fmt.Sprintf("%d to %d", a.Min, a.Max)
}

// ParseArity parses "2", "+", "*", "1..3" and "2..*"
func ParseArity(s string) (Arity, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "+":
		return OneOrMore(), nil
	case "*":
		return ZeroOrMore(), nil
	case "":
		return Arity{}, fmt.Errorf("%w: empty arity", ErrInvalidArity)
	}

	lo, hi, isRange := strings.Cut(s, "..")
	min, err := strconv.Atoi(lo)
	if err != nil || min < 0 {
		return Arity{}, fmt.Errorf("%w: %q", ErrInvalidArity, s)
	}
	if !isRange {
		return Exactly(min), nil
	}
	if hi == "*" {
		return Range(min, Unbounded), nil
	}
	max, err := strconv.Atoi(hi)
	if err != nil || max < min {
		return Arity{}, fmt.Errorf("%w: %q", ErrInvalidArity, s)
	}

	return Range(min, max), nil
}

// ValueSource tells where the value returned for an argument came from
type ValueSource int

const (
	SourceNone        ValueSource = iota // SourceNone denotes an absent argument without default
	SourceCommandLine                    // SourceCommandLine denotes a value captured from the argument vector
	SourceDefault                        // SourceDefault denotes a declared default used in place of an absent argument
)

// String returns the string representation of a ValueSource
func (v ValueSource) String() string {
	switch v {
	case SourceCommandLine:
		return "command-line"
	case SourceDefault:
		return "default"
	}
	return "none"
}

// Kind is used to define the kind of entity a struct tag represents
type Kind string

const (
	KindArg     Kind = "arg"
	KindCommand Kind = "command"
	KindEmpty   Kind = ""
)

// TagConfig is used to store struct tag information about an argument or command
type TagConfig struct {
	Kind           Kind
	ID             string
	Long           string
	Short          string
	Aliases        []string
	Help           string
	ValueName      string
	Default        string
	Required       bool
	Multiple       bool
	Hidden         bool
	Index          int
	Arity          *Arity
	Delimiter      rune
	PossibleValues []string
	ConflictsWith  []string
	Requires       []string
}

var (
	ErrInvalidArity              = errors.New("invalid arity")
	ErrUnsupportedTypeConversion = errors.New("unsupported type conversion")
	ErrParseBool                 = errors.New("invalid boolean value")
	ErrParseInt                  = errors.New("invalid integer value")
	ErrParseUint                 = errors.New("invalid unsigned integer value")
	ErrParseFloat                = errors.New("invalid floating point value")
	ErrParseDuration             = errors.New("invalid duration")
	ErrParseTime                 = errors.New("invalid date/time")
	ErrParseOverflow             = errors.New("value out of range")
	ErrBindNilPointer            = errors.New("can't bind to nil")
	ErrVariableNotAPointer       = errors.New("variable is not a pointer")
)
