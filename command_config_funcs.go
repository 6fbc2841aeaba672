package clapgo

// NewCommand creates and returns a new Command called name. This function takes variadic
// `ConfigureCommandFunc` functions to customize the created command.
func NewCommand(name string, configs ...ConfigureCommandFunc) *Command {
	cmd := &Command{Name: name}
	for _, config := range configs {
		config(cmd)
	}

	return cmd
}

// Set is a helper config function that allows setting multiple configuration functions on a command.
func (c *Command) Set(configs ...ConfigureCommandFunc) {
	for _, config := range configs {
		config(c)
	}
}

// WithArgs appends arguments to the command, keeping declaration order
func WithArgs(args ...*Argument) ConfigureCommandFunc {
	return func(command *Command) {
		command.Args = append(command.Args, args...)
	}
}

// WithGroups appends argument groups to the command
func WithGroups(groups ...*Group) ConfigureCommandFunc {
	return func(command *Command) {
		command.Groups = append(command.Groups, groups...)
	}
}

// WithSubcommands appends child commands
func WithSubcommands(subcommands ...*Command) ConfigureCommandFunc {
	return func(command *Command) {
		command.Subcommands = append(command.Subcommands, subcommands...)
	}
}

// WithAbout sets the one-line description shown in help output
func WithAbout(about string) ConfigureCommandFunc {
	return func(command *Command) {
		command.About = about
	}
}

// WithVersion sets the version reported by the automatic --version flag
func WithVersion(version string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Version = version
	}
}

// WithCommandAliases adds alternative names under which the command can be selected
func WithCommandAliases(aliases ...string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Aliases = append(command.Aliases, aliases...)
	}
}

// WithExample adds an example invocation, written without the command path, to help output
func WithExample(example string) ConfigureCommandFunc {
	return func(command *Command) {
		command.Examples = append(command.Examples, example)
	}
}

// SetPassThrough records unrecognized arguments instead of failing
func SetPassThrough(passThrough bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.PassThrough = passThrough
	}
}

// SetSubcommandRequired requires a child command to be selected
func SetSubcommandRequired(required bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.SubcommandRequired = required
	}
}

// SetAllowNegativeNumbers treats negative numbers as values instead of short flags
func SetAllowNegativeNumbers(allow bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.AllowNegativeNumbers = allow
	}
}

// SetHelpOnEmpty displays help when the command receives no arguments
func SetHelpOnEmpty(helpOnEmpty bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.HelpOnEmpty = helpOnEmpty
	}
}

// SetCommandHidden leaves the command out of help output
func SetCommandHidden(hidden bool) ConfigureCommandFunc {
	return func(command *Command) {
		command.Hidden = hidden
	}
}
