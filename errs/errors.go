// Package errs defines the error taxonomy produced while building a specification,
// matching an argument vector and validating the result.
package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PureW/clapgo/types"
)

// Kind classifies an Error
type Kind int

const (
	KindSpecConflict Kind = iota + 1
	KindUnknownArgument
	KindAmbiguousArgument
	KindMissingValue
	KindArityMismatch
	KindInvalidValue
	KindArgumentConflict
	KindMissingRequiredArgument
	KindGroupRequirementUnmet
	KindGroupExclusivityViolated
	KindArgumentNotDefined
	KindMissingSubcommand
	KindDisplayHelp
	KindDisplayVersion
)

var kindNames = map[Kind]string{
	KindSpecConflict:             "SpecConflict",
	KindUnknownArgument:          "UnknownArgument",
	KindAmbiguousArgument:        "AmbiguousArgument",
	KindMissingValue:             "MissingValue",
	KindArityMismatch:            "ArityMismatch",
	KindInvalidValue:             "InvalidValue",
	KindArgumentConflict:         "ArgumentConflict",
	KindMissingRequiredArgument:  "MissingRequiredArgument",
	KindGroupRequirementUnmet:    "GroupRequirementUnmet",
	KindGroupExclusivityViolated: "GroupExclusivityViolated",
	KindArgumentNotDefined:       "ArgumentNotDefined",
	KindMissingSubcommand:        "MissingSubcommand",
	KindDisplayHelp:              "DisplayHelp",
	KindDisplayVersion:           "DisplayVersion",
}

// String returns the name of the kind
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels, one per Kind, for use with errors.Is
var (
	ErrSpecConflict             = errors.New("specification conflict")
	ErrUnknownArgument          = errors.New("unknown argument")
	ErrAmbiguousArgument        = errors.New("ambiguous argument")
	ErrMissingValue             = errors.New("missing value")
	ErrArityMismatch            = errors.New("arity mismatch")
	ErrInvalidValue             = errors.New("invalid value")
	ErrArgumentConflict         = errors.New("argument conflict")
	ErrMissingRequiredArgument  = errors.New("missing required argument")
	ErrGroupRequirementUnmet    = errors.New("group requirement unmet")
	ErrGroupExclusivityViolated = errors.New("group exclusivity violated")
	ErrArgumentNotDefined       = errors.New("argument not defined")
	ErrMissingSubcommand        = errors.New("missing subcommand")
	ErrDisplayHelp              = errors.New("help requested")
	ErrDisplayVersion           = errors.New("version requested")
)

var sentinels = map[Kind]error{
	KindSpecConflict:             ErrSpecConflict,
	KindUnknownArgument:          ErrUnknownArgument,
	KindAmbiguousArgument:        ErrAmbiguousArgument,
	KindMissingValue:             ErrMissingValue,
	KindArityMismatch:            ErrArityMismatch,
	KindInvalidValue:             ErrInvalidValue,
	KindArgumentConflict:         ErrArgumentConflict,
	KindMissingRequiredArgument:  ErrMissingRequiredArgument,
	KindGroupRequirementUnmet:    ErrGroupRequirementUnmet,
	KindGroupExclusivityViolated: ErrGroupExclusivityViolated,
	KindArgumentNotDefined:       ErrArgumentNotDefined,
	KindMissingSubcommand:        ErrMissingSubcommand,
	KindDisplayHelp:              ErrDisplayHelp,
	KindDisplayVersion:           ErrDisplayVersion,
}

// Sentinel returns the sentinel error matching k
func (k Kind) Sentinel() error {
	return sentinels[k]
}

// Error is the structured error returned by the specification builder, the matcher
// and the validator. Input-driven errors carry the offending raw token, the
// identifiers involved and the command path of the level being processed.
//
// Example usage:
//
//	err := errs.NewUnknownArgument("--colour").WithPath("app", "run")
//	if errors.Is(err, errs.ErrUnknownArgument) { ... }
type Error struct {
	Kind       Kind
	Token      string   // offending raw token, if any
	IDs        []string // identifiers involved, in the order they are named
	Allowed    []string // permitted values (InvalidValue) or candidates (AmbiguousArgument)
	Suggestion string   // closest known form or value
	Path       []string // command path, root first
	Expected   types.Arity
	Actual     int
	Usage      string // pre-rendered usage of the failing level
	Text       string // rendered help or version text for informational kinds

	args    []interface{}
	wrapped error
}

func newError(kind Kind, args ...interface{}) *Error {
	return &Error{Kind: kind, args: args}
}

// Error returns the message for the kind, formatted with its arguments
func (e *Error) Error() string {
	msg := fmt.Sprintf(message(e.Kind), e.args...)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("\n\n\tdid you mean '%s'?", e.Suggestion)
	}
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

// Is implements errors.Is for comparison with the kind's sentinel
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return target == e.Kind.Sentinel()
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.wrapped
}

// Wrap records err as the cause
func (e *Error) Wrap(err error) *Error {
	e.wrapped = err
	return e
}

// WithPath records the command path of the level where the error occurred
func (e *Error) WithPath(path ...string) *Error {
	e.Path = append([]string(nil), path...)
	return e
}

// WithToken records the offending raw token
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithSuggestion records a "did you mean" candidate
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// WithUsage records the usage line shown in the diagnostic
func (e *Error) WithUsage(usage string) *Error {
	e.Usage = usage
	return e
}

// Informational reports whether the error is an explicit help or version request
func (e *Error) Informational() bool {
	return e.Kind == KindDisplayHelp || e.Kind == KindDisplayVersion
}

// HostDefect reports whether the error stems from the host program rather than the user
func (e *Error) HostDefect() bool {
	return e.Kind == KindSpecConflict || e.Kind == KindArgumentNotDefined
}

// Diagnostic renders the user-facing text: the message followed by the usage of the
// failing level. For help and version requests it is the requested text.
func (e *Error) Diagnostic() string {
	if e.Informational() {
		return e.Text
	}
	var sb strings.Builder
	sb.WriteString("error: ")
	sb.WriteString(e.Error())
	sb.WriteString("\n")
	if e.Usage != "" {
		sb.WriteString("\nUSAGE:\n    ")
		sb.WriteString(e.Usage)
		sb.WriteString("\n\nFor more information try --help\n")
	}
	return sb.String()
}

// KindOf returns the Kind of err, or 0 if err is not an *Error
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsInformational reports whether err is a help or version request
func IsInformational(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Informational()
}

// Diagnostic returns the rendered diagnostic of err, falling back to its message
func Diagnostic(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Diagnostic()
	}
	return "error: " + err.Error() + "\n"
}
