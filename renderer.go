package clapgo

import (
	"strings"
)

// Renderer produces the two columns of help entries
type Renderer interface {
	// ArgName returns the left column of an argument entry
	ArgName(a *Argument) string
	// ArgHelp returns the right column of an argument entry
	ArgHelp(a *Argument) string
	// CommandName returns the left column of a subcommand entry
	CommandName(s *Spec) string
	// CommandHelp returns the right column of a subcommand entry
	CommandHelp(s *Spec) string
}

// DefaultRenderer renders entries the way most command-line tools do:
//
//	-t, --target <target>    build target [default: all]
type DefaultRenderer struct {
	config HelpConfig
}

// NewRenderer creates a DefaultRenderer using config
func NewRenderer(config HelpConfig) *DefaultRenderer {
	return &DefaultRenderer{config: config}
}

// ArgName returns "-s, --long <value>" for named arguments, padding the short column
// when the argument has none, and "<value>..." for positionals
func (r *DefaultRenderer) ArgName(a *Argument) string {
	if a.IsPositional() {
		name := "<" + a.valueName() + ">"
		if !a.Arity.IsFixed() {
			name += "..."
		}
		return name
	}

	var sb strings.Builder
	switch {
	case a.Short != 0 && a.Long != "":
		sb.WriteString("-" + string(a.Short) + ", --" + a.Long)
	case a.Short != 0:
		sb.WriteString("-" + string(a.Short))
	default:
		sb.WriteString("    --" + a.Long)
	}
	if !a.IsPresenceOnly() {
		sb.WriteString(" " + a.valuePlaceholders())
	}
	return sb.String()
}

// ArgHelp returns the help text followed by default and possible values when enabled
func (r *DefaultRenderer) ArgHelp(a *Argument) string {
	parts := make([]string, 0, 3)
	if a.Help != "" {
		parts = append(parts, a.Help)
	}
	if r.config.ShowDefaults && len(a.Default) > 0 {
		parts = append(parts, "[default: "+strings.Join(a.Default, ", ")+"]")
	}
	if r.config.ShowPossibleValues && len(a.PossibleValues) > 0 {
		parts = append(parts, "[possible values: "+strings.Join(a.PossibleValues, ", ")+"]")
	}
	return strings.Join(parts, " ")
}

// CommandName returns the command name followed by its aliases
func (r *DefaultRenderer) CommandName(s *Spec) string {
	if len(s.aliases) == 0 {
		return s.name
	}
	return s.name + ", " + strings.Join(s.aliases, ", ")
}

// CommandHelp returns the one-line description of the command
func (r *DefaultRenderer) CommandHelp(s *Spec) string {
	return s.about
}
