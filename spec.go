package clapgo

import (
	"slices"
	"strings"
	"unicode"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/types/queue"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Spec is the compiled description of one command level. It is built once by
// NewParser and never modified afterwards, so it may be shared by concurrent parses.
// Pointers returned by its accessors refer to the compiled copies and must be treated
// as read-only.
type Spec struct {
	name    string
	aliases []string
	about   string
	version string
	path    []string
	parent  *Spec

	args        *orderedmap.OrderedMap[string, *Argument]
	shorts      map[rune]*Argument
	longs       map[string]*Argument
	positionals []*Argument
	groups      *orderedmap.OrderedMap[string, *Group]
	children    *orderedmap.OrderedMap[string, *Spec]
	childNames  map[string]*Spec
	examples    []string

	helpArg    *Argument
	versionArg *Argument

	passThrough          bool
	subcommandRequired   bool
	allowNegativeNumbers bool
	helpOnEmpty          bool
	hidden               bool
	prefixMatching       bool

	// sum of the minimum arities of required positionals
	requiredDemand int
}

type compileOptions struct {
	programName    string
	autoHelp       bool
	autoVersion    bool
	prefixMatching bool
}

type compileJob struct {
	cmd       *Command
	parent    *Spec
	ancestors []*Command
}

// compile builds the Spec tree breadth-first, validating every level
func compile(root *Command, opts compileOptions) (*Spec, error) {
	if root == nil {
		return nil, errs.NewSpecConflict("no root command")
	}

	var rootSpec *Spec
	q := queue.New[compileJob]()
	q.Enqueue(compileJob{cmd: root})
	for q.Len() > 0 {
		job, _ := q.Dequeue()
		if slices.Contains(job.ancestors, job.cmd) {
			return nil, errs.NewSpecConflict("command '%s' contains itself", job.cmd.Name)
		}

		spec, err := compileLevel(job.cmd, job.parent, opts)
		if err != nil {
			return nil, err
		}
		if job.parent == nil {
			rootSpec = spec
		} else {
			job.parent.children.Set(spec.name, spec)
			job.parent.childNames[spec.name] = spec
			for _, alias := range spec.aliases {
				job.parent.childNames[alias] = spec
			}
		}

		ancestors := append(slices.Clone(job.ancestors), job.cmd)
		for _, sub := range job.cmd.Subcommands {
			q.Enqueue(compileJob{cmd: sub, parent: spec, ancestors: ancestors})
		}
	}

	return rootSpec, nil
}

func compileLevel(cmd *Command, parent *Spec, opts compileOptions) (*Spec, error) {
	s := &Spec{
		name:                 cmd.Name,
		aliases:              slices.Clone(cmd.Aliases),
		about:                cmd.About,
		version:              cmd.Version,
		parent:               parent,
		args:                 orderedmap.New[string, *Argument](),
		shorts:               make(map[rune]*Argument),
		longs:                make(map[string]*Argument),
		groups:               orderedmap.New[string, *Group](),
		children:             orderedmap.New[string, *Spec](),
		childNames:           make(map[string]*Spec),
		examples:             slices.Clone(cmd.Examples),
		passThrough:          cmd.PassThrough,
		subcommandRequired:   cmd.SubcommandRequired,
		allowNegativeNumbers: cmd.AllowNegativeNumbers,
		helpOnEmpty:          cmd.HelpOnEmpty,
		hidden:               cmd.Hidden,
		prefixMatching:       opts.prefixMatching,
	}
	if parent == nil {
		if s.name == "" {
			s.name = opts.programName
		}
	} else {
		s.path = slices.Clone(parent.path)
	}
	s.path = append(s.path, s.name)

	if s.name == "" || strings.HasPrefix(s.name, "-") {
		return nil, s.conflict("invalid command name '%s'", s.name)
	}

	for _, a := range cmd.Args {
		if a == nil {
			return nil, s.conflict("nil argument")
		}
		if a.err != nil {
			return nil, errs.NewSpecConflict("argument '%s'", a.ID).WithPath(s.path...).Wrap(a.err)
		}
		if err := s.addArg(a.clone()); err != nil {
			return nil, err
		}
	}
	if err := s.indexPositionals(); err != nil {
		return nil, err
	}
	s.addAutoArgs(opts)

	for _, g := range cmd.Groups {
		if err := s.addGroup(g); err != nil {
			return nil, err
		}
	}
	if err := s.checkRelations(); err != nil {
		return nil, err
	}
	if err := s.checkChildren(cmd.Subcommands); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Spec) conflict(format string, args ...interface{}) error {
	return errs.NewSpecConflict(format, args...).WithPath(s.path...)
}

func (s *Spec) addArg(a *Argument) error {
	if a.ID == "" {
		return s.conflict("argument without identifier")
	}
	if _, dup := s.args.Get(a.ID); dup {
		return s.conflict("duplicate argument identifier '%s'", a.ID)
	}
	if a.Index > 0 && !a.IsPositional() {
		return s.conflict("argument '%s' has an index and a short or long form", a.ID)
	}
	if len(a.Aliases) > 0 && a.Long == "" {
		return s.conflict("argument '%s' has aliases but no long form", a.ID)
	}

	a.normalize()
	if a.IsPositional() && a.Arity.Max == 0 {
		return s.conflict("positional argument '%s' must accept at least one value", a.ID)
	}
	if a.IsPresenceOnly() && len(a.Default) > 0 {
		return s.conflict("presence-only argument '%s' can't have a default value", a.ID)
	}
	for _, d := range a.Default {
		if !a.permits(d) {
			return s.conflict("default value '%s' of '%s' is not a possible value", d, a.ID)
		}
	}

	if a.Short != 0 {
		if !validShort(a.Short) {
			return s.conflict("invalid short form '%c' of '%s'", a.Short, a.ID)
		}
		if other, dup := s.shorts[a.Short]; dup {
			return s.conflict("short form '-%c' used by '%s' and '%s'", a.Short, other.ID, a.ID)
		}
		s.shorts[a.Short] = a
	}
	for _, long := range a.longForms() {
		if !validLong(long) {
			return s.conflict("invalid long form '%s' of '%s'", long, a.ID)
		}
		if other, dup := s.longs[long]; dup {
			return s.conflict("long form '--%s' used by '%s' and '%s'", long, other.ID, a.ID)
		}
		s.longs[long] = a
	}

	s.args.Set(a.ID, a)
	if a.IsPositional() {
		s.positionals = append(s.positionals, a)
	}
	return nil
}

// indexPositionals numbers positionals without index in declaration order using the
// lowest free indices, then checks that indices run contiguously from 1 and that at
// most one positional has a variable arity, followed by fixed ones only.
func (s *Spec) indexPositionals() error {
	used := make(map[int]*Argument)
	for _, p := range s.positionals {
		if p.Index == 0 {
			continue
		}
		if other, dup := used[p.Index]; dup {
			return s.conflict("positional index %d used by '%s' and '%s'", p.Index, other.ID, p.ID)
		}
		used[p.Index] = p
	}
	next := 1
	for _, p := range s.positionals {
		if p.Index != 0 {
			continue
		}
		for used[next] != nil {
			next++
		}
		p.Index = next
		used[next] = p
	}

	slices.SortFunc(s.positionals, func(a, b *Argument) int { return a.Index - b.Index })
	variable := ""
	for i, p := range s.positionals {
		if p.Index != i+1 {
			return s.conflict("positional indices must be contiguous from 1, '%s' has index %d", p.ID, p.Index)
		}
		if variable != "" && !p.Arity.IsFixed() {
			return s.conflict("positional '%s' has a variable number of values after '%s'", p.ID, variable)
		}
		if !p.Arity.IsFixed() {
			variable = p.ID
		}
		if p.Required {
			s.requiredDemand += p.Arity.Min
		}
	}
	return nil
}

func (s *Spec) addAutoArgs(opts compileOptions) {
	if opts.autoHelp && !s.hasArg(helpID) && s.longs["help"] == nil {
		a := &Argument{ID: helpID, Long: "help", Help: "Print help information"}
		if s.shorts['h'] == nil {
			a.Short = 'h'
		}
		s.helpArg = s.addAuto(a)
	}
	if opts.autoVersion && s.version != "" && !s.hasArg(versionID) && s.longs["version"] == nil {
		a := &Argument{ID: versionID, Long: "version", Help: "Print version information"}
		if s.shorts['V'] == nil {
			a.Short = 'V'
		}
		s.versionArg = s.addAuto(a)
	}
}

func (s *Spec) addAuto(a *Argument) *Argument {
	a.normalize()
	if a.Short != 0 {
		s.shorts[a.Short] = a
	}
	s.longs[a.Long] = a
	s.args.Set(a.ID, a)
	return a
}

func (s *Spec) addGroup(g *Group) error {
	if g == nil || g.ID == "" {
		return s.conflict("group without identifier")
	}
	if _, dup := s.groups.Get(g.ID); dup {
		return s.conflict("duplicate group identifier '%s'", g.ID)
	}
	if s.hasArg(g.ID) {
		return s.conflict("group '%s' has the identifier of an argument", g.ID)
	}
	if len(g.Args) == 0 {
		return s.conflict("group '%s' has no members", g.ID)
	}
	for _, id := range g.Args {
		if !s.hasArg(id) {
			return s.conflict("group '%s' names undefined argument '%s'", g.ID, id)
		}
	}
	s.groups.Set(g.ID, g.clone())
	return nil
}

func (s *Spec) checkRelations() error {
	for pair := s.args.Oldest(); pair != nil; pair = pair.Next() {
		a := pair.Value
		check := func(relation string, ids []string, groupsAllowed bool) error {
			for _, id := range ids {
				if s.hasArg(id) || (groupsAllowed && s.isGroup(id)) {
					continue
				}
				return s.conflict("'%s' of '%s' names undefined argument '%s'", relation, a.ID, id)
			}
			return nil
		}
		if slices.Contains(a.ConflictsWith, a.ID) {
			return s.conflict("argument '%s' conflicts with itself", a.ID)
		}
		if err := check("conflicts with", a.ConflictsWith, true); err != nil {
			return err
		}
		if err := check("requires", a.Requires, true); err != nil {
			return err
		}
		if err := check("required unless present", a.RequiredUnlessPresent, true); err != nil {
			return err
		}
		if err := check("overridden by", a.OverriddenBy, false); err != nil {
			return err
		}
		for _, c := range a.RequiredIfEq {
			if err := check("required if", []string{c.ID}, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Spec) checkChildren(subs []*Command) error {
	seen := make(map[string]bool)
	for _, sub := range subs {
		if sub == nil {
			return s.conflict("nil subcommand")
		}
		for _, name := range append([]string{sub.Name}, sub.Aliases...) {
			if seen[name] {
				return s.conflict("duplicate subcommand name '%s'", name)
			}
			seen[name] = true
		}
	}
	return nil
}

func validShort(r rune) bool {
	return r != '-' && r != '=' && unicode.IsPrint(r) && !unicode.IsSpace(r)
}

func validLong(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") {
		return false
	}
	return !strings.ContainsFunc(s, func(r rune) bool {
		return r == '=' || unicode.IsSpace(r) || !unicode.IsPrint(r)
	})
}

func (s *Spec) hasArg(id string) bool {
	_, ok := s.args.Get(id)
	return ok
}

func (s *Spec) isGroup(id string) bool {
	_, ok := s.groups.Get(id)
	return ok
}

// Name returns the command name
func (s *Spec) Name() string { return s.name }

// Aliases returns the alternative command names
func (s *Spec) Aliases() []string { return slices.Clone(s.aliases) }

// About returns the one-line description
func (s *Spec) About() string { return s.about }

// Version returns the declared version, if any
func (s *Spec) Version() string { return s.version }

// Path returns the command names from the root down to this level
func (s *Spec) Path() []string { return slices.Clone(s.path) }

// Parent returns the enclosing level, nil for the root
func (s *Spec) Parent() *Spec { return s.parent }

// PassThrough reports whether unrecognized arguments are recorded instead of rejected
func (s *Spec) PassThrough() bool { return s.passThrough }

// Examples returns the example invocations declared for this level
func (s *Spec) Examples() []string { return slices.Clone(s.examples) }

// Arg returns the argument identified by id
func (s *Spec) Arg(id string) (*Argument, bool) {
	return s.args.Get(id)
}

// Args returns all arguments in declaration order, automatic help and version last
func (s *Spec) Args() []*Argument {
	out := make([]*Argument, 0, s.args.Len())
	for pair := s.args.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Named returns the flags and options in declaration order
func (s *Spec) Named() []*Argument {
	var out []*Argument
	for pair := s.args.Oldest(); pair != nil; pair = pair.Next() {
		if !pair.Value.IsPositional() {
			out = append(out, pair.Value)
		}
	}
	return out
}

// Positionals returns the positional arguments in index order
func (s *Spec) Positionals() []*Argument {
	return slices.Clone(s.positionals)
}

// ByShort returns the argument with short form r
func (s *Spec) ByShort(r rune) (*Argument, bool) {
	a, ok := s.shorts[r]
	return a, ok
}

// ByIndex returns the positional argument at the 1-based index
func (s *Spec) ByIndex(index int) (*Argument, bool) {
	if index < 1 || index > len(s.positionals) {
		return nil, false
	}
	return s.positionals[index-1], true
}

// ByLong resolves a long form. An exact match (alias included) wins; otherwise, when
// prefix matching is enabled, a prefix shared by the forms of exactly one argument
// resolves to it. A prefix of several arguments fails with AmbiguousArgument, no match
// fails with UnknownArgument.
func (s *Spec) ByLong(name string) (*Argument, error) {
	if a, ok := s.longs[name]; ok {
		return a, nil
	}
	token := "--" + name
	if !s.prefixMatching || name == "" {
		return nil, errs.NewUnknownArgument(token)
	}

	var ids, names []string
	var match *Argument
	for pair := s.args.Oldest(); pair != nil; pair = pair.Next() {
		for _, long := range pair.Value.longForms() {
			if strings.HasPrefix(long, name) {
				match = pair.Value
				ids = append(ids, pair.Value.ID)
				names = append(names, "--"+long)
				break
			}
		}
	}
	switch len(ids) {
	case 0:
		return nil, errs.NewUnknownArgument(token)
	case 1:
		return match, nil
	}
	return nil, errs.NewAmbiguousArgument(token, ids, names)
}

// Group returns the group identified by id
func (s *Spec) Group(id string) (*Group, bool) {
	return s.groups.Get(id)
}

// Groups returns the groups in declaration order
func (s *Spec) Groups() []*Group {
	out := make([]*Group, 0, s.groups.Len())
	for pair := s.groups.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Subcommand returns the child level selected by name or alias
func (s *Spec) Subcommand(name string) (*Spec, bool) {
	c, ok := s.childNames[name]
	return c, ok
}

// Subcommands returns the child levels in declaration order
func (s *Spec) Subcommands() []*Spec {
	out := make([]*Spec, 0, s.children.Len())
	for pair := s.children.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Find descends from s along the given subcommand names
func (s *Spec) Find(path ...string) (*Spec, bool) {
	cur := s
	for _, name := range path {
		next, ok := cur.Subcommand(name)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (s *Spec) longNames() []string {
	names := make([]string, 0, len(s.longs))
	for pair := s.args.Oldest(); pair != nil; pair = pair.Next() {
		for _, long := range pair.Value.longForms() {
			names = append(names, "--"+long)
		}
	}
	return names
}
