package clapgo

import (
	"fmt"

	"github.com/PureW/clapgo/types"
)

// NewArg creates an Argument identified by id and applies configs. A failing
// configuration is remembered and reported as a specification conflict by NewParser.
func NewArg(id string, configs ...ConfigureArgumentFunc) *Argument {
	argument := &Argument{ID: id}
	for _, config := range configs {
		config(argument, &argument.err)
		if argument.err != nil {
			break
		}
	}

	return argument
}

// Set configures the Argument instance with the provided ConfigureArgumentFunc(s),
// and returns an error if a configuration results in an error.
//
// Usage example:
//
//	arg := NewArg("target")
//	err := arg.Set(
//	    WithLong("target"),
//	    WithArityString("1..2"),
//	    SetRequired(true),
//	)
func (a *Argument) Set(configs ...ConfigureArgumentFunc) error {
	var err error
	for _, config := range configs {
		config(a, &err)
		if err != nil {
			return err
		}
	}
	return nil
}

// WithShort sets the single-character form, used as "-s" and in bundles such as "-abc"
func WithShort(short rune) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Short = short
	}
}

// WithLong sets the word form, used as "--long" or "--long=value"
func WithLong(long string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Long = long
	}
}

// WithAliases adds alternative long forms
func WithAliases(aliases ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Aliases = append(argument.Aliases, aliases...)
	}
}

// WithIndex sets the 1-based position of a positional argument
func WithIndex(index int) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if index < 1 {
			*err = fmt.Errorf("%w: index of '%s' must be 1 or greater, got %d", types.ErrInvalidArity, argument.ID, index)
			return
		}
		argument.Index = index
	}
}

// WithArity sets how many values each occurrence accepts. An arity with a
// maximum of zero makes the argument presence-only.
func WithArity(arity types.Arity) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		if !arity.Valid() {
			*err = fmt.Errorf("%w: %s for '%s'", types.ErrInvalidArity, arity, argument.ID)
			return
		}
		argument.Arity = arity
		argument.arityExplicit = true
	}
}

// WithArityString is WithArity taking the notation "2", "+", "*", "1..3" or "2..*"
func WithArityString(s string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		arity, e := types.ParseArity(s)
		if e != nil {
			*err = e
			return
		}
		WithArity(arity)(argument, err)
	}
}

// SetTakesValue marks a named argument as an option taking one value per occurrence
func SetTakesValue(takesValue bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.TakesValue = takesValue
	}
}

// SetMultiple lets the argument occur several times, accumulating values in order
func SetMultiple(multiple bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Multiple = multiple
	}
}

// SetRequired when true, the argument must be supplied on the command-line
func SetRequired(required bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Required = required
	}
}

// WithDefault sets the values reported when the argument is absent
func WithDefault(values ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Default = values
	}
}

// WithPossibleValues restricts accepted values to the given set
func WithPossibleValues(values ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.PossibleValues = values
	}
}

// SetCaseInsensitive compares values to the possible values ignoring case
func SetCaseInsensitive(insensitive bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.CaseInsensitive = insensitive
	}
}

// WithValueDelimiter splits every captured value on delimiter, so that
// "--tag a,b" yields the values "a" and "b"
func WithValueDelimiter(delimiter rune) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Delimiter = delimiter
	}
}

// WithConflicts lists arguments or groups which may not be used together with this argument
func WithConflicts(ids ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.ConflictsWith = append(argument.ConflictsWith, ids...)
	}
}

// WithRequires lists arguments or groups which must be present whenever this argument is
func WithRequires(ids ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Requires = append(argument.Requires, ids...)
	}
}

// WithOverriddenBy lists arguments whose occurrence discards this argument. Listing
// the argument itself makes each occurrence replace the previous ones.
func WithOverriddenBy(ids ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.OverriddenBy = append(argument.OverriddenBy, ids...)
	}
}

// WithRequiredUnlessPresent makes the argument required unless one of ids is present
func WithRequiredUnlessPresent(ids ...string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.RequiredUnlessPresent = append(argument.RequiredUnlessPresent, ids...)
	}
}

// WithRequiredIfEq makes the argument required when argument id holds value
func WithRequiredIfEq(id, value string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.RequiredIfEq = append(argument.RequiredIfEq, Condition{ID: id, Value: value})
	}
}

// WithHelp the description will be used in help output presented to the user
func WithHelp(help string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Help = help
	}
}

// WithValueName sets the value placeholder shown in usage, e.g. "FILE"
func WithValueName(name string) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.ValueName = name
	}
}

// SetHidden leaves the argument out of usage and help output
func SetHidden(hidden bool) ConfigureArgumentFunc {
	return func(argument *Argument, err *error) {
		argument.Hidden = hidden
	}
}
