package clapgo

import "slices"

// Group is a named set of arguments validated together: a required group needs at
// least one member present, an exclusive group tolerates at most one.
type Group struct {
	ID        string
	Args      []string
	Required  bool
	Exclusive bool
}

// NewGroup creates a Group identified by id
func NewGroup(id string, configs ...ConfigureGroupFunc) *Group {
	g := &Group{ID: id}
	for _, config := range configs {
		config(g)
	}
	return g
}

// WithMembers adds argument identifiers to the group
func WithMembers(ids ...string) ConfigureGroupFunc {
	return func(group *Group) {
		group.Args = append(group.Args, ids...)
	}
}

// SetGroupRequired requires at least one member to be present
func SetGroupRequired(required bool) ConfigureGroupFunc {
	return func(group *Group) {
		group.Required = required
	}
}

// SetGroupExclusive allows at most one member to be present
func SetGroupExclusive(exclusive bool) ConfigureGroupFunc {
	return func(group *Group) {
		group.Exclusive = exclusive
	}
}

// Has reports whether id is a member of the group
func (g *Group) Has(id string) bool {
	return slices.Contains(g.Args, id)
}

func (g *Group) clone() *Group {
	c := *g
	c.Args = slices.Clone(g.Args)
	return &c
}
