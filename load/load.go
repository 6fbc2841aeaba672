// Package load builds command declarations from YAML and TOML documents, so that a
// command-line interface can be described in a file instead of in Go code.
//
// Keys are normalized to snake case, which makes "takesValue", "takes-value" and
// "takes_value" equivalent. A document describes the root command:
//
//	name: deploy
//	version: 1.2.0
//	args:
//	  - id: verbose
//	    short: v
//	    multiple: true
//	  - config:              # single-key entries name the argument
//	      long: config
//	      takes_value: true
//	groups:
//	  - id: output
//	    args: [json, yaml]
//	    exclusive: true
//	subcommands:
//	  - name: push
//	    aliases: [p]
//	  - rollback
//
// Malformed documents, unknown keys and values of the wrong type fail with an error
// matching errs.ErrSpecConflict.
package load

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/PureW/clapgo"
	"github.com/PureW/clapgo/errs"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by File for extensions other than .yaml, .yml and .toml
var ErrUnknownFormat = errors.New("unknown specification format")

// YAML decodes a YAML document into a command declaration
func YAML(data []byte) (*clapgo.Command, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errs.NewSpecConflict("malformed YAML document").Wrap(err)
	}
	return Map(doc)
}

// TOML decodes a TOML document into a command declaration
func TOML(data []byte) (*clapgo.Command, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errs.NewSpecConflict("malformed TOML document").Wrap(err)
	}
	return Map(doc)
}

// File reads path and decodes it according to its extension
func File(path string) (*clapgo.Command, error) {
	var decode func([]byte) (*clapgo.Command, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = YAML
	case ".toml":
		decode = TOML
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decode(data)
}

// Map builds a command declaration from an already decoded document
func Map(doc map[string]any) (*clapgo.Command, error) {
	if len(doc) == 0 {
		return nil, errs.NewSpecConflict("empty document")
	}
	f, err := newFields("document", doc)
	if err != nil {
		return nil, err
	}
	return command(f.str("name"), f)
}

func command(name string, f *fields) (*clapgo.Command, error) {
	f.where = fmt.Sprintf("command '%s'", name)
	cmd := clapgo.NewCommand(name,
		clapgo.WithVersion(f.str("version")),
		clapgo.WithAbout(f.str("about")),
		clapgo.WithCommandAliases(f.strs("aliases")...),
		clapgo.SetPassThrough(f.boolean("pass_through")),
		clapgo.SetSubcommandRequired(f.boolean("subcommand_required")),
		clapgo.SetAllowNegativeNumbers(f.boolean("allow_negative_numbers")),
		clapgo.SetHelpOnEmpty(f.boolean("help_on_empty")),
		clapgo.SetCommandHidden(f.boolean("hidden")),
	)
	for _, example := range f.strs("examples") {
		cmd.Set(clapgo.WithExample(example))
	}
	args, groups, subs := f.list("args"), f.list("groups"), f.list("subcommands")
	if err := f.done(); err != nil {
		return nil, err
	}

	ids, props, err := entries(f.where, "id", args)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		props[i].where = fmt.Sprintf("argument '%s' of command '%s'", id, name)
		a, err := argument(id, props[i])
		if err != nil {
			return nil, err
		}
		cmd.Set(clapgo.WithArgs(a))
	}

	ids, props, err = entries(f.where, "id", groups)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		props[i].where = fmt.Sprintf("group '%s' of command '%s'", id, name)
		g := clapgo.NewGroup(id,
			clapgo.WithMembers(props[i].strs("args")...),
			clapgo.SetGroupRequired(props[i].boolean("required")),
			clapgo.SetGroupExclusive(props[i].boolean("exclusive")),
		)
		if err := props[i].done(); err != nil {
			return nil, err
		}
		cmd.Set(clapgo.WithGroups(g))
	}

	ids, props, err = entries(f.where, "name", subs)
	if err != nil {
		return nil, err
	}
	for i, id := range ids {
		sub, err := command(id, props[i])
		if err != nil {
			return nil, err
		}
		cmd.Set(clapgo.WithSubcommands(sub))
	}

	return cmd, nil
}

func argument(id string, f *fields) (*clapgo.Argument, error) {
	configs := []clapgo.ConfigureArgumentFunc{
		clapgo.WithLong(f.str("long")),
		clapgo.WithHelp(f.str("help")),
		clapgo.WithValueName(f.str("value_name")),
		clapgo.SetTakesValue(f.boolean("takes_value")),
		clapgo.SetMultiple(f.boolean("multiple")),
		clapgo.SetRequired(f.boolean("required")),
		clapgo.SetCaseInsensitive(f.boolean("case_insensitive")),
		clapgo.SetHidden(f.boolean("hidden")),
	}
	if r := f.char("short"); r != 0 {
		configs = append(configs, clapgo.WithShort(r))
	}
	if aliases := f.strs("aliases"); len(aliases) > 0 {
		configs = append(configs, clapgo.WithAliases(aliases...))
	}
	if index := f.integer("index"); index != 0 {
		configs = append(configs, clapgo.WithIndex(index))
	}
	if arity, ok := f.arity("arity"); ok {
		configs = append(configs, clapgo.WithArity(arity))
	}
	if d := f.strs("default"); len(d) > 0 {
		configs = append(configs, clapgo.WithDefault(d...))
	}
	if values := f.strs("possible_values"); len(values) > 0 {
		configs = append(configs, clapgo.WithPossibleValues(values...))
	}
	if r := f.char("value_delimiter"); r != 0 {
		configs = append(configs, clapgo.WithValueDelimiter(r))
	}
	if ids := f.strs("conflicts_with"); len(ids) > 0 {
		configs = append(configs, clapgo.WithConflicts(ids...))
	}
	if ids := f.strs("requires"); len(ids) > 0 {
		configs = append(configs, clapgo.WithRequires(ids...))
	}
	if ids := f.strs("overridden_by"); len(ids) > 0 {
		configs = append(configs, clapgo.WithOverriddenBy(ids...))
	}
	if ids := f.strs("required_unless_present"); len(ids) > 0 {
		configs = append(configs, clapgo.WithRequiredUnlessPresent(ids...))
	}
	conditions := f.table("required_if_eq")
	keys := make([]string, 0, len(conditions))
	for k := range conditions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, ok := scalar(conditions[k])
		if !ok {
			f.fail("required_if_eq", "a map of scalar values", conditions[k])
			break
		}
		configs = append(configs, clapgo.WithRequiredIfEq(k, v))
	}

	if err := f.done(); err != nil {
		return nil, err
	}
	return clapgo.NewArg(id, configs...), nil
}
