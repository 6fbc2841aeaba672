package clapgo

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/parse"
	"github.com/PureW/clapgo/types"
	"github.com/PureW/clapgo/util"
)

const tagName = "clap"

// NewCommandFromStruct declares a command from the exported fields of a struct which
// carry a `clap:"..."` tag. Fields tagged kind:command must be structs (or pointers to
// structs) and become subcommands. Identifiers default to the long form, or to the
// field name converted with DefaultArgNameConverter.
//
// Example:
//
//	type Options struct {
//		Verbose bool     `clap:"short:v;help:print more"`
//		Mode    string   `clap:"long:mode;possible:{fast,slow};default:fast"`
//		Files   []string `clap:"index:1;required"`
//		Run     struct {
//			Target string `clap:"required"`
//		} `clap:"kind:command;help:run a target"`
//	}
func NewCommandFromStruct(name string, structPtr any) (*Command, error) {
	t := reflect.TypeOf(structPtr)
	if t == nil {
		return nil, errs.NewSpecConflict("nil struct")
	}
	t = util.UnwrapType(t)
	if t.Kind() != reflect.Struct {
		return nil, errs.NewSpecConflict("expected a struct, got %s", t)
	}
	return commandFromType(name, t)
}

func commandFromType(name string, t reflect.Type) (*Command, error) {
	cmd := NewCommand(name)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		cfg, ok, err := fieldConfig(field)
		if err != nil {
			return nil, errs.NewSpecConflict("command '%s'", name).Wrap(err)
		}
		if !ok {
			continue
		}

		if cfg.Kind == types.KindCommand {
			ft := util.UnwrapType(field.Type)
			if ft.Kind() != reflect.Struct {
				return nil, errs.NewSpecConflict("field %s of kind command must be a struct", field.Name)
			}
			sub, err := commandFromType(commandName(field, cfg), ft)
			if err != nil {
				return nil, err
			}
			sub.About = cfg.Help
			sub.Aliases = cfg.Aliases
			cmd.Subcommands = append(cmd.Subcommands, sub)
			continue
		}

		arg, err := argFromField(field, cfg)
		if err != nil {
			return nil, err
		}
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}

// fieldConfig reads the tag of an exported field; ok is false for fields to skip
func fieldConfig(field reflect.StructField) (*types.TagConfig, bool, error) {
	if !field.IsExported() {
		return nil, false, nil
	}
	tag, ok := field.Tag.Lookup(tagName)
	if !ok || tag == "-" {
		return nil, false, nil
	}
	cfg, err := parse.UnmarshalTag(tag, field)
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

func argID(field reflect.StructField, cfg *types.TagConfig) string {
	switch {
	case cfg.ID != "":
		return cfg.ID
	case cfg.Long != "":
		return cfg.Long
	}
	return DefaultArgNameConverter(field.Name)
}

func commandName(field reflect.StructField, cfg *types.TagConfig) string {
	if cfg.Long != "" {
		return cfg.Long
	}
	return DefaultCommandNameConverter(field.Name)
}

func argFromField(field reflect.StructField, cfg *types.TagConfig) (*Argument, error) {
	id := argID(field, cfg)
	if !util.CanConvert(field.Type) {
		return nil, errs.NewSpecConflict("field %s: unsupported type %s", field.Name, field.Type)
	}

	configs := []ConfigureArgumentFunc{
		WithHelp(cfg.Help),
		WithValueName(cfg.ValueName),
		SetRequired(cfg.Required),
		SetHidden(cfg.Hidden),
	}
	switch {
	case cfg.Index > 0:
		configs = append(configs, WithIndex(cfg.Index))
	case cfg.Short != "" || cfg.Long != "":
		if cfg.Short != "" {
			r, _ := utf8.DecodeRuneInString(cfg.Short)
			configs = append(configs, WithShort(r))
		}
		if cfg.Long != "" {
			configs = append(configs, WithLong(cfg.Long))
		}
	default:
		configs = append(configs, WithLong(id))
	}
	if len(cfg.Aliases) > 0 {
		configs = append(configs, WithAliases(cfg.Aliases...))
	}

	switch {
	case util.IsListType(field.Type):
		configs = append(configs, SetTakesValue(true), SetMultiple(true))
	case !util.IsPresenceType(field.Type):
		configs = append(configs, SetTakesValue(true))
	}
	if cfg.Multiple {
		configs = append(configs, SetMultiple(true))
	}
	if cfg.Arity != nil {
		configs = append(configs, WithArity(*cfg.Arity))
	}
	if cfg.Delimiter != 0 {
		configs = append(configs, WithValueDelimiter(cfg.Delimiter))
	}
	if cfg.Default != "" {
		defaults := []string{cfg.Default}
		if cfg.Delimiter != 0 {
			defaults = strings.Split(cfg.Default, string(cfg.Delimiter))
		}
		configs = append(configs, WithDefault(defaults...))
	}
	if len(cfg.PossibleValues) > 0 {
		configs = append(configs, WithPossibleValues(cfg.PossibleValues...))
	}
	if len(cfg.ConflictsWith) > 0 {
		configs = append(configs, WithConflicts(cfg.ConflictsWith...))
	}
	if len(cfg.Requires) > 0 {
		configs = append(configs, WithRequires(cfg.Requires...))
	}

	return NewArg(id, configs...), nil
}

// Bind stores the matched values, defaults included, into the fields of a struct
// declared for NewCommandFromStruct. Subcommand fields are bound when that subcommand
// was selected; pointer fields are allocated as needed.
func (m *Matches) Bind(structPtr any) error {
	v := reflect.ValueOf(structPtr)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("%w: %T", types.ErrVariableNotAPointer, structPtr)
	}
	if v.IsNil() {
		return types.ErrBindNilPointer
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("%w: expected a struct, got %s", types.ErrUnsupportedTypeConversion, v.Type())
	}
	return m.bindStruct(v)
}

func (m *Matches) bindStruct(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		cfg, ok, err := fieldConfig(field)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		fv := v.Field(i)

		if cfg.Kind == types.KindCommand {
			sub, selected := m.SubcommandMatches(commandName(field, cfg))
			if !selected {
				continue
			}
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					fv.Set(reflect.New(fv.Type().Elem()))
				}
				fv = fv.Elem()
			}
			if err := sub.bindStruct(fv); err != nil {
				return err
			}
			continue
		}

		id := argID(field, cfg)
		a, ok := m.spec.Arg(id)
		if !ok {
			return m.notDefined(id)
		}
		var values []string
		if a.IsPresenceOnly() {
			values = []string{strconv.FormatBool(m.present(id))}
		} else if values, ok, _ = m.Values(id); !ok {
			continue
		}
		if err := util.ConvertValues(values, fv); err != nil {
			return fmt.Errorf("binding '%s': %w", id, err)
		}
	}
	return nil
}
