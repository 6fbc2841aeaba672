package clapgo

import (
	"slices"
	"strings"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/util"
)

type validationStep func(spec *Spec, m *Matches) error

// validation runs in this order and stops at the first failure
var validation = []validationStep{
	checkArity,
	checkValues,
	checkConflicts,
	checkRequirements,
	checkGroups,
	checkSubcommand,
}

// validate enforces the constraints of one level. Defaults never take part: they
// neither satisfy requirements nor trigger conflicts.
func (p *Parser) validate(spec *Spec, m *Matches) error {
	for _, step := range validation {
		if err := step(spec, m); err != nil {
			return err
		}
	}
	return nil
}

// eachPresent calls fn for every present argument in declaration order
func eachPresent(spec *Spec, m *Matches, fn func(a *Argument, ma *matchedArg) error) error {
	for pair := spec.args.Oldest(); pair != nil; pair = pair.Next() {
		ma, ok := m.args.Get(pair.Key)
		if !ok {
			continue
		}
		if err := fn(pair.Value, ma); err != nil {
			return err
		}
	}
	return nil
}

func checkArity(spec *Spec, m *Matches) error {
	return eachPresent(spec, m, func(a *Argument, ma *matchedArg) error {
		for i, n := range ma.counts {
			if !a.Arity.Accepts(n) {
				return errs.NewArityMismatch(a.ID, a.UsageForm(), a.Arity, n).WithToken(ma.tokens[i])
			}
		}
		return nil
	})
}

func checkValues(spec *Spec, m *Matches) error {
	return eachPresent(spec, m, func(a *Argument, ma *matchedArg) error {
		for _, v := range ma.values {
			if a.permits(v) {
				continue
			}
			return errs.NewInvalidValue(a.ID, a.DisplayName(), v, a.PossibleValues).
				WithSuggestion(util.Suggest(v, a.PossibleValues, suggestDistance))
		}
		return nil
	})
}

func checkConflicts(spec *Spec, m *Matches) error {
	return eachPresent(spec, m, func(a *Argument, ma *matchedArg) error {
		for _, c := range a.ConflictsWith {
			if other := presentMember(spec, m, c, a.ID); other != nil {
				return errs.NewArgumentConflict(a.ID, a.DisplayName(), other.ID, other.DisplayName()).
					WithToken(ma.lastToken())
			}
		}
		return nil
	})
}

// presentMember returns the present argument id, or the first present member of group
// id other than except
func presentMember(spec *Spec, m *Matches, id, except string) *Argument {
	if g, ok := spec.Group(id); ok {
		for _, member := range g.Args {
			if member != except && m.present(member) {
				a, _ := spec.Arg(member)
				return a
			}
		}
		return nil
	}
	if m.present(id) {
		a, _ := spec.Arg(id)
		return a
	}
	return nil
}

func checkRequirements(spec *Spec, m *Matches) error {
	err := eachPresent(spec, m, func(a *Argument, ma *matchedArg) error {
		for _, r := range a.Requires {
			if m.presentOrGroup(r, "") {
				continue
			}
			return errs.NewMissingRequired([]string{r}, []string{requirementForm(spec, r)}, a.ID, a.DisplayName()).
				WithToken(ma.lastToken())
		}
		return nil
	})
	if err != nil {
		return err
	}

	var ids, names []string
	for _, a := range spec.Args() {
		if m.present(a.ID) || !isRequired(a, m) {
			continue
		}
		ids = append(ids, a.ID)
		names = append(names, a.UsageForm())
	}
	if len(ids) > 0 {
		return errs.NewMissingRequired(ids, names, "", "")
	}
	return nil
}

// isRequired evaluates Required, RequiredUnlessPresent and RequiredIfEq against the
// captured values
func isRequired(a *Argument, m *Matches) bool {
	return requiredWhen(a, func(id string) bool {
		return m.presentOrGroup(id, "")
	}, func(id string) []string {
		if ma, ok := m.args.Get(id); ok {
			return ma.values
		}
		return nil
	})
}

func requiredWhen(a *Argument, present func(id string) bool, values func(id string) []string) bool {
	required := a.Required
	if len(a.RequiredUnlessPresent) > 0 {
		required = !slices.ContainsFunc(a.RequiredUnlessPresent, present)
	}
	for _, c := range a.RequiredIfEq {
		if slices.Contains(values(c.ID), c.Value) {
			required = true
		}
	}
	return required
}

func requirementForm(spec *Spec, id string) string {
	if g, ok := spec.Group(id); ok {
		return groupForm(spec, g, true)
	}
	a, _ := spec.Arg(id)
	return a.UsageForm()
}

func checkGroups(spec *Spec, m *Matches) error {
	for _, g := range spec.Groups() {
		var ids, names []string
		var token string
		for _, member := range g.Args {
			ma, ok := m.args.Get(member)
			if !ok {
				continue
			}
			a, _ := spec.Arg(member)
			ids = append(ids, member)
			names = append(names, a.DisplayName())
			if len(ids) == 2 {
				token = ma.lastToken()
			}
		}
		if g.Required && len(ids) == 0 {
			return errs.NewGroupRequirementUnmet(g.ID, memberNames(spec, g))
		}
		if g.Exclusive && len(ids) > 1 {
			return errs.NewGroupExclusivityViolated(g.ID, ids, names).WithToken(token)
		}
	}
	return nil
}

func memberNames(spec *Spec, g *Group) []string {
	names := make([]string, 0, len(g.Args))
	for _, member := range g.Args {
		a, _ := spec.Arg(member)
		names = append(names, a.DisplayName())
	}
	return names
}

func checkSubcommand(spec *Spec, m *Matches) error {
	if spec.subcommandRequired && m.sub == nil {
		return errs.NewMissingSubcommand(strings.Join(spec.path, " "))
	}
	return nil
}
