package clapgo

// Command is one level of the command tree: its arguments, groups, child commands
// and level-local policy. A Command is only a declaration; NewParser compiles the
// tree into an immutable Spec.
type Command struct {
	Name        string
	Aliases     []string
	About       string
	Version     string
	Args        []*Argument
	Groups      []*Group
	Subcommands []*Command
	Examples    []string
	// PassThrough records unrecognized arguments in Matches.Overflow instead of failing
	PassThrough bool
	// SubcommandRequired fails matching when no child command is selected
	SubcommandRequired bool
	// AllowNegativeNumbers treats arguments such as "-5" as values
	AllowNegativeNumbers bool
	// HelpOnEmpty displays help when the level receives no arguments at all
	HelpOnEmpty bool
	// Hidden commands are left out of help output
	Hidden bool
}

// Visit traverses the command and its descendants depth-first, calling visitor with
// each command and its level (the receiver is at level). Returning false from the
// visitor skips the children of that command.
func (c *Command) Visit(visitor func(cmd *Command, level int) bool, level int) {
	if !visitor(c, level) {
		return
	}
	for _, sub := range c.Subcommands {
		sub.Visit(visitor, level+1)
	}
}

// Subcommand returns the direct child called name or aliased as name
func (c *Command) Subcommand(name string) (*Command, bool) {
	for _, sub := range c.Subcommands {
		if sub.Name == name {
			return sub, true
		}
		for _, alias := range sub.Aliases {
			if alias == name {
				return sub, true
			}
		}
	}
	return nil, false
}
