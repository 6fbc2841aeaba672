package clapgo

import (
	"errors"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/parse"
	"github.com/PureW/clapgo/util"
)

// maximum edit distance for "did you mean" suggestions
const suggestDistance = 2

// matcher consumes the arguments of one command level. Each level, including every
// selected subcommand, gets its own matcher, cursor and Matches.
type matcher struct {
	parser     *Parser
	spec       *Spec
	state      parse.State
	matches    *Matches
	positional []string
}

// ShortTakesValue implements parse.Resolver
func (m *matcher) ShortTakesValue(r rune) bool {
	a, ok := m.spec.shorts[r]
	return ok && !a.IsPresenceOnly()
}

// IsSubcommand implements parse.Resolver. A child name counts as a subcommand only
// once the required positionals of the level have received their minimum values.
func (m *matcher) IsSubcommand(name string) bool {
	if _, ok := m.spec.Subcommand(name); !ok {
		return false
	}
	return len(m.positional) >= m.spec.requiredDemand
}

// AllowNegativeNumbers implements parse.Resolver
func (m *matcher) AllowNegativeNumbers() bool {
	return m.spec.allowNegativeNumbers
}

// matchLevel matches args against spec, recursing into a selected subcommand, and
// validates the level once its own and its child's matching is complete
func (p *Parser) matchLevel(spec *Spec, args []string) (*Matches, error) {
	m := &matcher{
		parser:  p,
		spec:    spec,
		state:   parse.NewState(args),
		matches: newMatches(spec),
	}
	if len(args) == 0 && spec.helpOnEmpty {
		return nil, errs.NewDisplayHelp(p.helpText(spec)).WithPath(spec.path...)
	}

	if err := m.run(); err != nil {
		return nil, m.decorate(err)
	}
	if err := p.validate(spec, m.matches); err != nil {
		return nil, m.decorate(err)
	}

	return m.matches, nil
}

// decorate adds the level's path and usage to errors which don't carry them yet
func (m *matcher) decorate(err error) error {
	var e *errs.Error
	if errors.As(err, &e) && e.Path == nil {
		e.WithPath(m.spec.path...)
		if !e.Informational() {
			e.WithUsage(usageLine(m.spec))
		}
	}
	return err
}

func (m *matcher) run() error {
	for m.state.Advance() {
		tok := parse.Classify(m.state.CurrentArg(), m.state.PositionalOnly(), m)
		var err error
		switch tok.Kind {
		case parse.KindTerminator:
			m.state.SetPositionalOnly()
		case parse.KindLong:
			err = m.matchLong(tok)
		case parse.KindShort:
			err = m.matchShort(tok)
		case parse.KindSubcommand:
			return m.matchSubcommand(tok)
		default:
			m.positional = append(m.positional, tok.Raw)
		}
		if err != nil {
			return err
		}
	}

	return m.assignPositionals()
}

func (m *matcher) matchSubcommand(tok parse.Token) error {
	if err := m.assignPositionals(); err != nil {
		return err
	}
	child, _ := m.spec.Subcommand(tok.Name)
	sub, err := m.parser.matchLevel(child, m.state.Rest())
	if err != nil {
		return err
	}
	m.matches.subName = child.name
	m.matches.sub = sub
	return nil
}

func (m *matcher) matchLong(tok parse.Token) error {
	a, err := m.spec.ByLong(tok.Name)
	if err != nil {
		if errs.KindOf(err) == errs.KindUnknownArgument {
			return m.unknown(tok.Raw, "--"+tok.Name)
		}
		var e *errs.Error
		if errors.As(err, &e) {
			e.WithToken(tok.Raw)
		}
		return err
	}
	if err := m.informational(a); err != nil {
		return err
	}

	return m.consume(a, tok.Raw, tok.HasValue, tok.Value, true)
}

// matchShort expands a bundle left to right. Only the last flag of the bundle may
// take an attached value or consume the following arguments. A bundle holding an
// unknown flag is unknown as a whole: none of its flags are recorded.
func (m *matcher) matchShort(tok parse.Token) error {
	args := make([]*Argument, len(tok.Shorts))
	for i, r := range tok.Shorts {
		a, ok := m.spec.ByShort(r)
		if !ok {
			return m.unknown(tok.Raw, "-"+string(r))
		}
		args[i] = a
	}

	for i, a := range args {
		if err := m.informational(a); err != nil {
			return err
		}

		last := i == len(args)-1
		var err error
		if last {
			err = m.consume(a, tok.Raw, tok.HasValue, tok.Value, true)
		} else {
			err = m.consume(a, tok.Raw, false, "", false)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// unknown records raw in the overflow of a pass-through level or fails
func (m *matcher) unknown(raw, display string) error {
	if m.spec.passThrough {
		m.matches.overflow = append(m.matches.overflow, raw)
		return nil
	}
	err := errs.NewUnknownArgument(display).WithToken(raw)
	if s := util.Suggest(display, m.spec.longNames(), suggestDistance); s != "" && len(display) > 2 {
		err.WithSuggestion(s)
	}
	return err
}

func (m *matcher) informational(a *Argument) error {
	switch {
	case m.spec.helpArg != nil && a == m.spec.helpArg:
		return errs.NewDisplayHelp(m.parser.helpText(m.spec)).WithPath(m.spec.path...)
	case m.spec.versionArg != nil && a == m.spec.versionArg:
		return errs.NewDisplayVersion(versionText(m.spec)).WithPath(m.spec.path...)
	}
	return nil
}

// consume records one occurrence of a. An attached value counts as the first value;
// further arguments are taken up to the arity maximum (only up to the minimum after an
// attached value), stopping at anything flag-like and, once the minimum is met, at the
// name of a child command.
func (m *matcher) consume(a *Argument, raw string, hasAttached bool, attached string, mayConsume bool) error {
	var values []string
	if hasAttached {
		values = append(values, attached)
	}

	if !a.IsPresenceOnly() && mayConsume {
		for m.state.HasNext() {
			n := len(values)
			if !a.Arity.IsOpen() && n >= a.Arity.Max {
				break
			}
			if hasAttached && n >= a.Arity.Min {
				break
			}
			next := m.state.Peek()
			if parse.IsFlagLike(next, m.spec.allowNegativeNumbers) {
				break
			}
			if _, child := m.spec.Subcommand(next); child && n >= a.Arity.Min {
				break
			}
			values = append(values, next)
			m.state.Advance()
		}
	}

	if len(values) == 0 && a.Arity.Min > 0 {
		return errs.NewMissingValue(displayToken(raw, a), a.ID).WithToken(raw)
	}

	m.matches.record(a, raw, values, len(values))
	return nil
}

func displayToken(raw string, a *Argument) string {
	if len(raw) >= 2 && raw[0] == '-' && raw[1] != '-' {
		return "-" + string(a.Short)
	}
	return a.DisplayName()
}

// assignPositionals distributes the collected positional candidates: fixed-arity
// positionals claim their count, the variable one claims everything the positionals
// after it don't need. Leftovers are overflow or unknown.
func (m *matcher) assignPositionals() error {
	tokens := m.positional
	m.positional = nil

	pos := 0
	for i, p := range m.spec.positionals {
		remaining := len(tokens) - pos
		if remaining == 0 {
			break
		}

		var n int
		if p.Arity.IsFixed() {
			n = min(p.Arity.Min, remaining)
		} else {
			demand := 0
			for _, after := range m.spec.positionals[i+1:] {
				demand += after.Arity.Min
			}
			n = max(remaining-demand, 0)
			if !p.Arity.IsOpen() {
				n = min(n, p.Arity.Max)
			}
		}
		if n == 0 {
			continue
		}

		m.matches.record(p, tokens[pos], tokens[pos:pos+n], n)
		pos += n
	}

	if pos < len(tokens) {
		if m.spec.passThrough {
			m.matches.overflow = append(m.matches.overflow, tokens[pos:]...)
			return nil
		}
		return errs.NewUnknownArgument(tokens[pos])
	}
	return nil
}
