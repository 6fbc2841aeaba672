package clapgo

import (
	"slices"
	"strings"
	"time"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/types"
	"github.com/PureW/clapgo/util"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type matchedArg struct {
	values      []string
	counts      []int    // raw values captured by each effective occurrence
	tokens      []string // command-line token of each effective occurrence
	occurrences int
}

// lastToken returns the token of the latest effective occurrence
func (ma *matchedArg) lastToken() string {
	if len(ma.tokens) == 0 {
		return ""
	}
	return ma.tokens[len(ma.tokens)-1]
}

// Matches is the read-only result of a successful parse for one command level.
// The selected subcommand, if any, has its own nested Matches.
type Matches struct {
	spec     *Spec
	args     *orderedmap.OrderedMap[string, *matchedArg]
	subName  string
	sub      *Matches
	overflow []string
}

func newMatches(spec *Spec) *Matches {
	return &Matches{
		spec: spec,
		args: orderedmap.New[string, *matchedArg](),
	}
}

// record adds one occurrence of a with its values. token is the command-line argument
// which introduced the occurrence and raw the number of command-line values it consumed,
// which is what arity is validated against.
func (m *Matches) record(a *Argument, token string, values []string, raw int) {
	for pair := m.args.Oldest(); pair != nil; {
		next := pair.Next()
		if other, ok := m.spec.Arg(pair.Key); ok && other.ID != a.ID && slices.Contains(other.OverriddenBy, a.ID) {
			m.args.Delete(pair.Key)
		}
		pair = next
	}

	if a.Delimiter != 0 {
		values = splitValues(values, a.Delimiter)
	}

	ma, ok := m.args.Get(a.ID)
	if ok && slices.Contains(a.OverriddenBy, a.ID) {
		m.args.Delete(a.ID)
		ok = false
	}
	if !ok {
		ma = &matchedArg{}
		m.args.Set(a.ID, ma)
	}

	ma.occurrences++
	if a.Multiple {
		ma.values = append(ma.values, values...)
		ma.counts = append(ma.counts, raw)
		ma.tokens = append(ma.tokens, token)
	} else {
		ma.values = slices.Clone(values)
		ma.counts = []int{raw}
		ma.tokens = []string{token}
	}
}

func splitValues(values []string, delimiter rune) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.Split(v, string(delimiter))...)
	}
	return out
}

func (m *Matches) present(id string) bool {
	_, ok := m.args.Get(id)
	return ok
}

// presentOrGroup reports whether id, an argument or a group, is present. except
// is not counted as a member of a group.
func (m *Matches) presentOrGroup(id, except string) bool {
	if g, ok := m.spec.Group(id); ok {
		for _, member := range g.Args {
			if member != except && m.present(member) {
				return true
			}
		}
		return false
	}
	return m.present(id)
}

// IsPresent reports whether the argument or a member of the group id was given on the
// command line. The name of a child command is present when that command was selected.
// Identifiers which name neither fail with ArgumentNotDefined.
func (m *Matches) IsPresent(id string) (bool, error) {
	switch {
	case m.spec.hasArg(id):
		return m.present(id), nil
	case m.spec.isGroup(id):
		return m.presentOrGroup(id, ""), nil
	}
	if child, ok := m.spec.Subcommand(id); ok {
		return m.sub != nil && m.sub.spec == child, nil
	}
	return false, m.notDefined(id)
}

// Occurrences returns how many times the argument, or the members of the group, occurred
func (m *Matches) Occurrences(id string) (int, error) {
	switch {
	case m.spec.hasArg(id):
		if ma, ok := m.args.Get(id); ok {
			return ma.occurrences, nil
		}
		return 0, nil
	case m.spec.isGroup(id):
		g, _ := m.spec.Group(id)
		n := 0
		for _, member := range g.Args {
			if ma, ok := m.args.Get(member); ok {
				n += ma.occurrences
			}
		}
		return n, nil
	}
	if present, err := m.IsPresent(id); err != nil {
		return 0, err
	} else if present {
		return 1, nil
	}
	return 0, nil
}

// Values returns all values of an argument in encounter order. An absent argument
// yields its default values. For a group the values of all present members are
// returned in member order. The boolean reports whether any value source applied.
func (m *Matches) Values(id string) ([]string, bool, error) {
	if a, ok := m.spec.Arg(id); ok {
		if ma, ok := m.args.Get(id); ok {
			return slices.Clone(ma.values), true, nil
		}
		if len(a.Default) > 0 {
			return slices.Clone(a.Default), true, nil
		}
		return nil, false, nil
	}
	if g, ok := m.spec.Group(id); ok {
		var values []string
		found := false
		for _, member := range g.Args {
			if ma, ok := m.args.Get(member); ok {
				values = append(values, ma.values...)
				found = true
			}
		}
		return values, found, nil
	}
	return nil, false, m.notDefined(id)
}

// Value returns the first value of an argument or group, see Values. The boolean is
// false when neither the command line nor a default supplied a value.
func (m *Matches) Value(id string) (string, bool, error) {
	values, ok, err := m.Values(id)
	if err != nil || len(values) == 0 {
		return "", false, err
	}
	return values[0], ok, nil
}

// ValueOrDefault returns the first value of id, or fallback when there is none
func (m *Matches) ValueOrDefault(id, fallback string) string {
	if v, ok, err := m.Value(id); err == nil && ok {
		return v
	}
	return fallback
}

// Source tells whether the values of id come from the command line or a default
func (m *Matches) Source(id string) (types.ValueSource, error) {
	a, ok := m.spec.Arg(id)
	if !ok {
		return types.SourceNone, m.notDefined(id)
	}
	switch {
	case m.present(id):
		return types.SourceCommandLine, nil
	case len(a.Default) > 0:
		return types.SourceDefault, nil
	}
	return types.SourceNone, nil
}

// GetBool returns presence for presence-only flags and the parsed value otherwise.
// Absent arguments without default yield false.
func (m *Matches) GetBool(id string) (bool, error) {
	if a, ok := m.spec.Arg(id); ok && a.IsPresenceOnly() {
		return m.present(id), nil
	}
	v, ok, err := m.Value(id)
	if err != nil || !ok {
		return false, err
	}
	return util.ParseBool(v)
}

// GetInt parses the first value of id. Absent arguments without default yield 0.
func (m *Matches) GetInt(id string) (int, error) {
	v, ok, err := m.Value(id)
	if err != nil || !ok {
		return 0, err
	}
	i, err := util.ParseInt(v, 0)
	return int(i), err
}

// GetFloat parses the first value of id. Absent arguments without default yield 0.
func (m *Matches) GetFloat(id string) (float64, error) {
	v, ok, err := m.Value(id)
	if err != nil || !ok {
		return 0, err
	}
	return util.ParseFloat(v, 64)
}

// GetDuration parses the first value of id as a Go duration
func (m *Matches) GetDuration(id string) (time.Duration, error) {
	v, ok, err := m.Value(id)
	if err != nil || !ok {
		return 0, err
	}
	return util.ParseDuration(v)
}

// GetTime parses the first value of id as a date/time in one of many common layouts
func (m *Matches) GetTime(id string) (time.Time, error) {
	v, ok, err := m.Value(id)
	if err != nil || !ok {
		return time.Time{}, err
	}
	return util.ParseTime(v)
}

// Subcommand returns the name and matches of the selected child command
func (m *Matches) Subcommand() (string, *Matches) {
	return m.subName, m.sub
}

// SubcommandName returns the name of the selected child command, "" if none
func (m *Matches) SubcommandName() string {
	return m.subName
}

// SubcommandMatches returns the matches of child command name (or alias) if it was selected
func (m *Matches) SubcommandMatches(name string) (*Matches, bool) {
	child, ok := m.spec.Subcommand(name)
	if !ok || m.sub == nil || m.sub.spec != child {
		return nil, false
	}
	return m.sub, true
}

// Overflow returns the arguments recorded verbatim by a pass-through level
func (m *Matches) Overflow() []string {
	return slices.Clone(m.overflow)
}

// IDs returns the identifiers of present arguments in the order they were first seen
func (m *Matches) IDs() []string {
	ids := make([]string, 0, m.args.Len())
	for pair := m.args.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}
	return ids
}

// Path returns the command path of this level, root first
func (m *Matches) Path() []string {
	return m.spec.Path()
}

// Spec returns the compiled level these matches belong to
func (m *Matches) Spec() *Spec {
	return m.spec
}

// Usage returns the usage line of the matched level
func (m *Matches) Usage() string {
	return usageLine(m.spec)
}

func (m *Matches) notDefined(id string) error {
	return errs.NewArgumentNotDefined(id).WithPath(m.spec.path...)
}

// Snapshot is a plain, comparable copy of Matches, suitable for serialization
type Snapshot struct {
	Command     string              `json:"command"`
	Order       []string            `json:"order"`
	Values      map[string][]string `json:"values"`
	Occurrences map[string]int      `json:"occurrences"`
	Overflow    []string            `json:"overflow,omitempty"`
	Subcommand  *Snapshot           `json:"subcommand,omitempty"`
}

// Snapshot copies the matches of this level and the selected subcommands
func (m *Matches) Snapshot() *Snapshot {
	s := &Snapshot{
		Command:     m.spec.name,
		Order:       m.IDs(),
		Values:      make(map[string][]string, m.args.Len()),
		Occurrences: make(map[string]int, m.args.Len()),
		Overflow:    m.Overflow(),
	}
	for pair := m.args.Oldest(); pair != nil; pair = pair.Next() {
		values := slices.Clone(pair.Value.values)
		if values == nil {
			values = []string{}
		}
		s.Values[pair.Key] = values
		s.Occurrences[pair.Key] = pair.Value.occurrences
	}
	if m.sub != nil {
		s.Subcommand = m.sub.Snapshot()
	}
	return s
}
