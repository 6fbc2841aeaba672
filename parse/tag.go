package parse

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PureW/clapgo/types"
)

// Common error messages
const (
	errInvalidFormat = "invalid tag format in field %s: %s"
	errInvalidBool   = "invalid '%s' value in field %s: %w"
	errUnknownKey    = "unrecognized key '%s' in field %s"
	errInvalidKind   = "invalid kind in field %s: %s (must be 'command', 'arg', or empty)"
	errInvalidRune   = "'%s' in field %s must be a single character: %q"
)

// UnmarshalTag parses a struct tag of the form "key:value;key:value". Lists are
// comma separated and may be wrapped in braces, as in "possible:{fast,slow}".
//
// Recognized keys: kind, id, long, short, alias, help, value, default, required,
// multiple, hidden, index, arity, delim, possible, conflicts, requires.
func UnmarshalTag(tag string, field reflect.StructField) (*types.TagConfig, error) {
	config := &types.TagConfig{}
	if strings.TrimSpace(tag) == "" {
		config.Kind = types.KindArg
		return config, nil
	}

	for _, part := range strings.Split(tag, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		key, value, found := strings.Cut(part, ":")
		key = strings.TrimSpace(key)
		if !found && !isSwitch(key) {
			return nil, fmt.Errorf(errInvalidFormat, field.Name, part)
		}

		var err error
		switch key {
		case "kind":
			switch types.Kind(value) {
			case types.KindArg, types.KindCommand, types.KindEmpty:
				config.Kind = types.Kind(value)
			default:
				return nil, fmt.Errorf(errInvalidKind, field.Name, value)
			}
		case "id":
			config.ID = value
		case "long", "name":
			config.Long = value
		case "short":
			if utf8.RuneCountInString(value) != 1 {
				return nil, fmt.Errorf(errInvalidRune, key, field.Name, value)
			}
			config.Short = value
		case "alias":
			config.Aliases = list(value)
		case "help", "desc":
			config.Help = value
		case "value":
			config.ValueName = value
		case "default":
			config.Default = value
		case "required":
			config.Required, err = parseFlag(key, value, field)
		case "multiple":
			config.Multiple, err = parseFlag(key, value, field)
		case "hidden":
			config.Hidden, err = parseFlag(key, value, field)
		case "index", "pos":
			config.Index, err = strconv.Atoi(value)
			if err == nil && config.Index < 1 {
				err = fmt.Errorf("index must be 1 or greater, got %d", config.Index)
			}
			if err != nil {
				return nil, fmt.Errorf("invalid index in field %s: %w", field.Name, err)
			}
		case "arity":
			a, aerr := types.ParseArity(value)
			if aerr != nil {
				return nil, fmt.Errorf("invalid arity in field %s: %w", field.Name, aerr)
			}
			config.Arity = &a
		case "delim":
			if utf8.RuneCountInString(value) != 1 {
				return nil, fmt.Errorf(errInvalidRune, key, field.Name, value)
			}
			config.Delimiter, _ = utf8.DecodeRuneInString(value)
		case "possible":
			config.PossibleValues = list(value)
		case "conflicts":
			config.ConflictsWith = list(value)
		case "requires":
			config.Requires = list(value)
		default:
			return nil, fmt.Errorf(errUnknownKey, key, field.Name)
		}
		if err != nil {
			return nil, err
		}
	}

	if config.Kind == types.KindEmpty {
		config.Kind = types.KindArg
	}

	return config, nil
}

// isSwitch reports whether key may be given without a value, as in "required;hidden"
func isSwitch(key string) bool {
	return key == "required" || key == "multiple" || key == "hidden"
}

func parseFlag(key, value string, field reflect.StructField) (bool, error) {
	if value == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf(errInvalidBool, key, field.Name, err)
	}
	return b, nil
}

func list(value string) []string {
	value = strings.TrimSpace(value)
	value = strings.TrimSuffix(strings.TrimPrefix(value, "{"), "}")
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
