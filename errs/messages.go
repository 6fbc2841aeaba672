package errs

import (
	"fmt"
	"strings"

	"github.com/PureW/clapgo/types"
)

var messages = map[Kind]string{
	KindSpecConflict:             "invalid specification: %s",
	KindUnknownArgument:          "found argument '%s' which wasn't expected, or isn't valid in this context",
	KindAmbiguousArgument:        "the argument '%s' is ambiguous; it could match %s",
	KindMissingValue:             "the argument '%s' requires a value but none was supplied",
	KindArityMismatch:            "the argument '%s' requires %s value(s), but %d were provided",
	KindInvalidValue:             "'%s' isn't a valid value for '%s'\n\t[possible values: %s]",
	KindArgumentConflict:         "the argument '%s' cannot be used with '%s'",
	KindMissingRequiredArgument:  "the following required arguments were not provided:\n    %s",
	KindGroupRequirementUnmet:    "one of the following arguments must be provided: %s",
	KindGroupExclusivityViolated: "the arguments %s cannot be used together",
	KindArgumentNotDefined:       "'%s' is not a defined argument identifier",
	KindMissingSubcommand:        "'%s' requires a subcommand, but one was not provided",
	KindDisplayHelp:              "%s",
	KindDisplayVersion:           "%s",
}

func message(k Kind) string {
	if m, ok := messages[k]; ok {
		return m
	}
	return "unknown error"
}

func quoteList(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "'" + n + "'"
	}
	return strings.Join(q, ", ")
}

// NewSpecConflict reports a malformed specification
func NewSpecConflict(format string, args ...interface{}) *Error {
	return newError(KindSpecConflict, fmt.Sprintf(format, args...))
}

// NewUnknownArgument reports an unrecognized token
func NewUnknownArgument(token string) *Error {
	e := newError(KindUnknownArgument, token)
	e.Token = token
	return e
}

// NewAmbiguousArgument reports a long-flag prefix matching several definitions.
// names are the display forms of the candidates, parallel to ids.
func NewAmbiguousArgument(token string, ids, names []string) *Error {
	e := newError(KindAmbiguousArgument, token, quoteList(names))
	e.Token = token
	e.IDs = ids
	e.Allowed = names
	return e
}

// NewMissingValue reports a value-taking argument given without a value
func NewMissingValue(token, id string) *Error {
	e := newError(KindMissingValue, token)
	e.Token = token
	e.IDs = []string{id}
	return e
}

// NewArityMismatch reports an occurrence holding the wrong number of values
func NewArityMismatch(id, name string, expected types.Arity, actual int) *Error {
	e := newError(KindArityMismatch, name, expected.Describe(), actual)
	e.IDs = []string{id}
	e.Expected = expected
	e.Actual = actual
	return e
}

// NewInvalidValue reports a value outside of the permitted set
func NewInvalidValue(id, name, value string, allowed []string) *Error {
	e := newError(KindInvalidValue, value, name, strings.Join(allowed, ", "))
	e.Token = value
	e.IDs = []string{id}
	e.Allowed = allowed
	return e
}

// NewArgumentConflict reports two present arguments which exclude each other
func NewArgumentConflict(id, name, otherID, otherName string) *Error {
	e := newError(KindArgumentConflict, name, otherName)
	e.IDs = []string{id, otherID}
	return e
}

// NewMissingRequired reports absent required arguments. When requiredBy is set, the
// missing arguments are demanded by that argument's "requires" relation and IDs holds
// the chain, requiring argument first.
func NewMissingRequired(ids, names []string, requiredByID, requiredBy string) *Error {
	list := strings.Join(names, "\n    ")
	if requiredBy != "" {
		list = fmt.Sprintf("%s (required by '%s')", list, requiredBy)
	}
	e := newError(KindMissingRequiredArgument, list)
	if requiredByID != "" {
		e.IDs = append([]string{requiredByID}, ids...)
	} else {
		e.IDs = ids
	}
	return e
}

// NewGroupRequirementUnmet reports a required group without any member present
func NewGroupRequirementUnmet(group string, memberNames []string) *Error {
	e := newError(KindGroupRequirementUnmet, quoteList(memberNames))
	e.IDs = []string{group}
	e.Allowed = memberNames
	return e
}

// NewGroupExclusivityViolated reports an exclusive group with several members present
func NewGroupExclusivityViolated(group string, presentIDs, presentNames []string) *Error {
	e := newError(KindGroupExclusivityViolated, quoteList(presentNames))
	e.IDs = append([]string{group}, presentIDs...)
	return e
}

// NewArgumentNotDefined reports a lookup of an undeclared identifier
func NewArgumentNotDefined(id string) *Error {
	e := newError(KindArgumentNotDefined, id)
	e.IDs = []string{id}
	return e
}

// NewMissingSubcommand reports a level requiring a subcommand that received none
func NewMissingSubcommand(command string) *Error {
	return newError(KindMissingSubcommand, command)
}

// NewDisplayHelp carries rendered help text
func NewDisplayHelp(text string) *Error {
	e := newError(KindDisplayHelp, "help requested")
	e.Text = text
	return e
}

// NewDisplayVersion carries rendered version text
func NewDisplayVersion(text string) *Error {
	e := newError(KindDisplayVersion, "version requested")
	e.Text = text
	return e
}
