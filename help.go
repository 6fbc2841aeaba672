package clapgo

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PureW/clapgo/types/queue"
)

// usageLine derives the usage line of a level: required named arguments, [OPTIONS],
// groups, positionals in index order and the subcommand placeholder
func usageLine(spec *Spec) string {
	grouped := make(map[string]bool)
	for _, g := range spec.Groups() {
		for _, id := range g.Args {
			grouped[id] = true
		}
	}

	parts := []string{strings.Join(spec.path, " ")}
	hasOptions := false
	for _, a := range spec.Named() {
		if a.Hidden || grouped[a.ID] {
			continue
		}
		if a.Required {
			parts = append(parts, a.UsageForm())
		} else {
			hasOptions = true
		}
	}
	if hasOptions {
		parts = append(parts, "[OPTIONS]")
	}
	for _, g := range spec.Groups() {
		parts = append(parts, groupForm(spec, g, g.Required))
	}
	for _, p := range spec.positionals {
		if !p.Hidden && !grouped[p.ID] {
			parts = append(parts, p.UsageForm())
		}
	}
	if hasVisibleChildren(spec) {
		if spec.subcommandRequired {
			parts = append(parts, "<SUBCOMMAND>")
		} else {
			parts = append(parts, "[SUBCOMMAND]")
		}
	}

	return strings.Join(parts, " ")
}

// groupForm renders {a|b} for required exclusive groups, [a b] for optional inclusive ones
func groupForm(spec *Spec, g *Group, required bool) string {
	forms := make([]string, 0, len(g.Args))
	for _, id := range g.Args {
		a, _ := spec.Arg(id)
		if a.IsPositional() {
			forms = append(forms, "<"+a.valueName()+">")
		} else {
			forms = append(forms, a.UsageForm())
		}
	}
	sep := " "
	if g.Exclusive {
		sep = "|"
	}
	if required {
		return "{" + strings.Join(forms, sep) + "}"
	}
	return "[" + strings.Join(forms, sep) + "]"
}

func hasVisibleChildren(spec *Spec) bool {
	return slices.ContainsFunc(spec.Subcommands(), func(c *Spec) bool { return !c.hidden })
}

func versionText(spec *Spec) string {
	return strings.Join(spec.path, " ") + " " + spec.version + "\n"
}

type helpEntry struct {
	name string
	help string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

// helpText renders the full help of a level. It only reads the specification.
func (p *Parser) helpText(spec *Spec) string {
	var sb strings.Builder
	title := strings.Join(spec.path, " ")
	if spec.version != "" {
		title += " " + spec.version
	}
	sb.WriteString(title + "\n")
	if spec.about != "" {
		sb.WriteString(spec.about + "\n")
	}
	sb.WriteString("\nUSAGE:\n" + p.helpConfig.Indent + usageLine(spec) + "\n")

	sections := []helpSection{{title: "ARGS"}, {title: "OPTIONS"}, {title: "SUBCOMMANDS"}}
	for _, a := range spec.positionals {
		if !a.Hidden {
			sections[0].entries = append(sections[0].entries, helpEntry{p.renderer.ArgName(a), p.renderer.ArgHelp(a)})
		}
	}
	named := spec.Named()
	slices.SortStableFunc(named, func(a, b *Argument) int {
		switch {
		case a.Required == b.Required:
			return 0
		case a.Required:
			return -1
		}
		return 1
	})
	for _, a := range named {
		if !a.Hidden {
			sections[1].entries = append(sections[1].entries, helpEntry{p.renderer.ArgName(a), p.renderer.ArgHelp(a)})
		}
	}
	for _, c := range spec.Subcommands() {
		if !c.hidden {
			sections[2].entries = append(sections[2].entries, helpEntry{p.renderer.CommandName(c), p.renderer.CommandHelp(c)})
		}
	}

	width := 0
	for _, s := range sections {
		for _, e := range s.entries {
			width = max(width, utf8.RuneCountInString(e.name))
		}
	}
	for _, s := range sections {
		if len(s.entries) == 0 {
			continue
		}
		sb.WriteString("\n" + s.title + ":\n")
		for _, e := range s.entries {
			line := p.helpConfig.Indent + e.name
			if e.help != "" {
				pad := width - utf8.RuneCountInString(e.name) + p.helpConfig.ColumnGap
				line += strings.Repeat(" ", pad) + e.help
			}
			sb.WriteString(line + "\n")
		}
	}

	if p.helpConfig.ShowExamples {
		if examples := p.examples(spec); len(examples) > 0 {
			sb.WriteString("\nEXAMPLES:\n")
			for _, ex := range examples {
				sb.WriteString(p.helpConfig.Indent + strings.TrimSpace(spec.path[0]+" "+ex) + "\n")
			}
		}
	}

	return sb.String()
}

// examples returns the declared examples of a level prefixed by the subcommand path,
// or a synthesized invocation when none are declared
func (p *Parser) examples(spec *Spec) []string {
	sub := strings.Join(spec.path[1:], " ")
	if len(spec.examples) == 0 {
		return []string{shellJoin(synthesizeExample(spec))}
	}
	out := make([]string, 0, len(spec.examples))
	for _, ex := range spec.examples {
		out = append(out, strings.TrimSpace(sub+" "+ex))
	}
	return out
}

// synthesizeExample builds an argument vector, without program name, which selects
// spec and satisfies the requirements of every level on the way
func synthesizeExample(spec *Spec) []string {
	var chain []*Spec
	for s := spec; s != nil; s = s.parent {
		chain = append([]*Spec{s}, chain...)
	}

	var out []string
	for i, s := range chain {
		out = append(out, levelExample(s)...)
		if i < len(chain)-1 {
			out = append(out, chain[i+1].name)
		}
	}
	return out
}

func levelExample(spec *Spec) []string {
	included := make(map[string]bool)
	include := func(id string) bool {
		if g, ok := spec.Group(id); ok {
			if slices.ContainsFunc(g.Args, func(m string) bool { return included[m] }) {
				return false
			}
			id = g.Args[0]
		}
		if included[id] {
			return false
		}
		included[id] = true
		return true
	}
	present := func(id string) bool {
		if g, ok := spec.Group(id); ok {
			return slices.ContainsFunc(g.Args, func(m string) bool { return included[m] })
		}
		return included[id]
	}
	values := func(id string) []string {
		if a, ok := spec.Arg(id); ok && included[id] {
			return exampleValues(a)
		}
		return nil
	}

	for changed := true; changed; {
		changed = false
		for _, a := range spec.Args() {
			if a == spec.helpArg || a == spec.versionArg {
				continue
			}
			if !included[a.ID] && requiredWhen(a, present, values) {
				changed = include(a.ID) || changed
			}
			if included[a.ID] {
				for _, r := range a.Requires {
					changed = include(r) || changed
				}
			}
		}
		for _, g := range spec.Groups() {
			if g.Required {
				changed = include(g.ID) || changed
			}
		}
	}

	// positionals are assigned by position, so earlier ones must be filled too
	last := 0
	for _, p := range spec.positionals {
		if included[p.ID] {
			last = p.Index
		}
	}
	var out []string
	for _, p := range spec.positionals[:last] {
		out = append(out, exampleValues(p)...)
	}
	for _, a := range spec.Named() {
		if !included[a.ID] {
			continue
		}
		if a.Long != "" {
			out = append(out, "--"+a.Long)
		} else {
			out = append(out, "-"+string(a.Short))
		}
		out = append(out, exampleValues(a)...)
	}
	return out
}

// exampleValues picks values for an argument: a possible value, a default or the value name
func exampleValues(a *Argument) []string {
	if a.IsPresenceOnly() {
		return nil
	}
	n := a.Arity.Min
	if a.IsPositional() {
		n = max(n, 1)
	}
	v := a.valueName()
	switch {
	case len(a.PossibleValues) > 0:
		v = a.PossibleValues[0]
	case len(a.Default) > 0:
		v = a.Default[0]
	}
	out := make([]string, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// shellJoin joins args into a command string that Split turns back into args
func shellJoin(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		if a == "" || strings.ContainsAny(a, " \t\n'\"\\#$`") {
			a = "'" + strings.ReplaceAll(a, "'", `'"'"'`) + "'"
		}
		quoted[i] = a
	}
	return strings.Join(quoted, " ")
}

func (p *Parser) find(path []string) (*Spec, error) {
	spec, ok := p.root.Find(path...)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCommandNotFound, strings.Join(path, " "))
	}
	return spec, nil
}

// Usage returns the usage line of the level reached by following path from the root
func (p *Parser) Usage(path ...string) (string, error) {
	spec, err := p.find(path)
	if err != nil {
		return "", err
	}
	return usageLine(spec), nil
}

// Help returns the help text of the level reached by following path from the root
func (p *Parser) Help(path ...string) (string, error) {
	spec, err := p.find(path)
	if err != nil {
		return "", err
	}
	return p.helpText(spec), nil
}

// Examples returns the example invocations of a level as command strings without the
// program name, ready for ParseString
func (p *Parser) Examples(path ...string) ([]string, error) {
	spec, err := p.find(path)
	if err != nil {
		return nil, err
	}
	return p.examples(spec), nil
}

// PrintHelp writes the help text of a level to w, or to the parser's stdout when w is nil
func (p *Parser) PrintHelp(w io.Writer, path ...string) error {
	help, err := p.Help(path...)
	if err != nil {
		return err
	}
	if w == nil {
		w = p.stdout
	}
	_, err = io.WriteString(w, help)
	return err
}

// PrintUsage writes the usage line of a level to w, or to the parser's stdout when w is nil
func (p *Parser) PrintUsage(w io.Writer, path ...string) error {
	usage, err := p.Usage(path...)
	if err != nil {
		return err
	}
	if w == nil {
		w = p.stdout
	}
	_, err = fmt.Fprintf(w, "USAGE:\n%s%s\n", p.helpConfig.Indent, usage)
	return err
}

type treeNode struct {
	spec  *Spec
	level int
}

// PrintCommandTree writes the command tree below the root, depth-first in declaration
// order, one command per line with its description
func (p *Parser) PrintCommandTree(w io.Writer, config *PrettyPrintConfig) {
	if w == nil {
		w = p.stdout
	}
	if config == nil {
		config = &DefaultPrettyPrintConfig
	}

	stack := queue.New[treeNode]()
	children := p.root.Subcommands()
	for i := len(children) - 1; i >= 0; i-- {
		stack.Push(treeNode{spec: children[i], level: 0})
	}
	for stack.Len() > 0 {
		node, _ := stack.Pop()
		if node.spec.hidden {
			continue
		}
		var prefix string
		switch {
		case node.level == 0:
			prefix = config.NewCommandPrefix
		case node.spec.children.Len() == 0:
			prefix = strings.Repeat(config.LevelBindPrefix, node.level) + config.TerminalPrefix
		default:
			prefix = strings.Repeat(config.LevelBindPrefix, node.level) + config.DefaultPrefix
		}
		line := prefix + node.spec.name
		if node.spec.about != "" {
			line += " \"" + node.spec.about + "\""
		}
		fmt.Fprintln(w, line)

		sub := node.spec.Subcommands()
		for i := len(sub) - 1; i >= 0; i-- {
			stack.Push(treeNode{spec: sub[i], level: node.level + 1})
		}
	}
}
