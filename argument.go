package clapgo

import (
	"slices"
	"strings"

	"github.com/PureW/clapgo/types"
)

// Argument describes a flag, an option or a positional parameter of one command level.
// An Argument without short and long form is positional.
type Argument struct {
	// ID identifies the argument in relations, groups and lookups on Matches
	ID string
	// Short is the single-character form used as "-s"; 0 when absent
	Short rune
	// Long is the word form used as "--long"
	Long string
	// Aliases are alternative long forms
	Aliases []string
	// Index is the 1-based position of a positional argument. Positionals without an
	// Index are numbered in declaration order.
	Index int
	// Arity is the number of values one occurrence accepts
	Arity types.Arity
	// TakesValue distinguishes options from presence-only flags when no Arity is set
	TakesValue bool
	// Multiple lets values accumulate across occurrences instead of the last one winning
	Multiple bool
	// Required arguments must be present on the command line
	Required bool
	// Default values are reported for absent arguments
	Default []string
	// PossibleValues restricts the accepted values
	PossibleValues []string
	// CaseInsensitive compares values to PossibleValues ignoring case
	CaseInsensitive bool
	// Delimiter splits each captured value into several values
	Delimiter rune
	// ConflictsWith lists arguments or groups which may not be present together with this one
	ConflictsWith []string
	// Requires lists arguments or groups which must be present when this one is
	Requires []string
	// OverriddenBy lists arguments whose occurrence removes this one from the matches
	OverriddenBy []string
	// RequiredUnlessPresent makes the argument required unless one of the listed ones is present
	RequiredUnlessPresent []string
	// RequiredIfEq makes the argument required when one of the conditions holds
	RequiredIfEq []Condition
	// Help is shown next to the argument in help output
	Help string
	// ValueName is the placeholder shown for values in usage and help output
	ValueName string
	// Hidden arguments are left out of usage and help output
	Hidden bool

	arityExplicit bool
	err           error
}

// IsPositional reports whether the argument has neither short nor long form
func (a *Argument) IsPositional() bool {
	return a.Short == 0 && a.Long == ""
}

// IsPresenceOnly reports whether occurrences carry no value
func (a *Argument) IsPresenceOnly() bool {
	return a.Arity.Max == 0
}

// DisplayName returns the form used to refer to the argument in messages
func (a *Argument) DisplayName() string {
	switch {
	case a.Long != "":
		return "--" + a.Long
	case a.Short != 0:
		return "-" + string(a.Short)
	}
	return "<" + a.valueName() + ">"
}

// UsageForm returns the argument as written in a usage line, with value placeholders
func (a *Argument) UsageForm() string {
	if a.IsPositional() {
		return a.positionalForm()
	}
	if a.IsPresenceOnly() {
		return a.DisplayName()
	}
	return a.DisplayName() + " " + a.valuePlaceholders()
}

func (a *Argument) valueName() string {
	if a.ValueName != "" {
		return a.ValueName
	}
	return a.ID
}

func (a *Argument) valuePlaceholders() string {
	v := "<" + a.valueName() + ">"
	switch {
	case a.Arity.Min == 0 && a.Arity.Max == 1:
		return "[" + a.valueName() + "]"
	case a.Arity.Min == 0 && !a.Arity.IsFixed():
		return "[" + a.valueName() + "]..."
	case !a.Arity.IsFixed():
		return strings.Repeat(v+" ", a.Arity.Min-1) + v + "..."
	}
	return strings.TrimSpace(strings.Repeat(v+" ", a.Arity.Min))
}

func (a *Argument) positionalForm() string {
	name := a.valueName()
	if a.Arity.IsFixed() && a.Arity.Min > 1 {
		one := "<" + name + ">"
		if !a.Required {
			one = "[" + name + "]"
		}
		return strings.TrimSpace(strings.Repeat(one+" ", a.Arity.Min))
	}

	form := "<" + name + ">"
	if !a.Required {
		form = "[" + name + "]"
	}
	if !a.Arity.IsFixed() {
		form += "..."
	}
	return form
}

// longForms returns the long form followed by its aliases
func (a *Argument) longForms() []string {
	if a.Long == "" {
		return nil
	}
	return append([]string{a.Long}, a.Aliases...)
}

func (a *Argument) permits(value string) bool {
	if len(a.PossibleValues) == 0 {
		return true
	}
	if a.CaseInsensitive {
		return slices.ContainsFunc(a.PossibleValues, func(p string) bool {
			return strings.EqualFold(p, value)
		})
	}
	return slices.Contains(a.PossibleValues, value)
}

// clone returns a deep copy so that compiled specifications never share state with the host
func (a *Argument) clone() *Argument {
	c := *a
	c.Aliases = slices.Clone(a.Aliases)
	c.Default = slices.Clone(a.Default)
	c.PossibleValues = slices.Clone(a.PossibleValues)
	c.ConflictsWith = slices.Clone(a.ConflictsWith)
	c.Requires = slices.Clone(a.Requires)
	c.OverriddenBy = slices.Clone(a.OverriddenBy)
	c.RequiredUnlessPresent = slices.Clone(a.RequiredUnlessPresent)
	c.RequiredIfEq = slices.Clone(a.RequiredIfEq)
	return &c
}

// normalize resolves the effective arity from TakesValue, Multiple and an explicit Arity
func (a *Argument) normalize() {
	switch {
	case a.arityExplicit:
		a.TakesValue = a.Arity.Max != 0
	case a.IsPositional() && a.Multiple:
		a.Arity = types.OneOrMore()
		a.TakesValue = true
	case a.IsPositional():
		a.Arity = types.Exactly(1)
		a.TakesValue = true
	case a.TakesValue:
		a.Arity = types.Exactly(1)
	default:
		a.Arity = types.Exactly(0)
	}
}
