package clapgo

import (
	"strings"

	"github.com/iancoleman/strcase"
)

// ConfigureArgumentFunc is used when defining arguments
type ConfigureArgumentFunc func(argument *Argument, err *error)

// ConfigureGroupFunc is used when defining argument groups
type ConfigureGroupFunc func(group *Group)

// ConfigureCommandFunc is used when defining Command options
type ConfigureCommandFunc func(command *Command)

// ConfigureParserFunc is used when configuring a Parser
type ConfigureParserFunc func(parser *Parser, err *error)

// NameConversionFunc converts a struct field name to an argument or command name
type NameConversionFunc func(string) string

// Built-in conversion strategies
var (
	// ToKebabCase converts a string to kebab case "my-flag-name"
	ToKebabCase = func(s string) string {
		return strcase.ToKebab(s)
	}

	// ToSnakeCase converts a string to snake case "my_flag_name"
	ToSnakeCase = func(s string) string {
		return strcase.ToSnake(s)
	}

	// ToLowerCamel converts a string to lower camel case "myFlagName"
	ToLowerCamel = func(s string) string {
		return strcase.ToLowerCamel(s)
	}

	// ToLowerCase converts a string to lower case "myflagname"
	ToLowerCase = func(s string) string {
		return strings.ToLower(s)
	}

	DefaultArgNameConverter     NameConversionFunc = ToKebabCase
	DefaultCommandNameConverter NameConversionFunc = ToKebabCase
)

// PrettyPrintConfig is used to print the command tree in PrintCommandTree
type PrettyPrintConfig struct {
	// NewCommandPrefix precedes the start of a new top-level command
	NewCommandPrefix string
	// DefaultPrefix precedes sub-commands by default
	DefaultPrefix string
	// TerminalPrefix precedes terminal commands, i.e. commands without sub-commands
	TerminalPrefix string
	// LevelBindPrefix is repeated once per level below the root for indentation
	LevelBindPrefix string
}

// DefaultPrettyPrintConfig is used when PrintCommandTree receives a nil config
var DefaultPrettyPrintConfig = PrettyPrintConfig{
	NewCommandPrefix: " +  ",
	DefaultPrefix:    " │─ ",
	TerminalPrefix:   " └─ ",
	LevelBindPrefix:  "  ",
}

// HelpConfig controls optional parts of generated help text
type HelpConfig struct {
	// ShowDefaults appends "[default: ...]" to argument help
	ShowDefaults bool
	// ShowPossibleValues appends "[possible values: ...]" to argument help
	ShowPossibleValues bool
	// ShowExamples renders the EXAMPLES section
	ShowExamples bool
	// Indent precedes every entry of a help section
	Indent string
	// ColumnGap separates the name column from the help column
	ColumnGap int
}

// DefaultHelpConfig is the configuration used unless WithHelpConfig is given
var DefaultHelpConfig = HelpConfig{
	ShowDefaults:       true,
	ShowPossibleValues: true,
	ShowExamples:       true,
	Indent:             "    ",
	ColumnGap:          4,
}

// Condition pairs an argument identifier with a value, see WithRequiredIfEq
type Condition struct {
	ID    string
	Value string
}

const (
	helpID    = "help"
	versionID = "version"
)
