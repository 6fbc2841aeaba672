package load

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PureW/clapgo/errs"
	"github.com/PureW/clapgo/types"
	"github.com/iancoleman/strcase"
)

// fields reads the properties of one document entry. The first failure is kept and
// reported by done, together with keys nothing asked for.
type fields struct {
	where string
	m     map[string]any
	seen  map[string]bool
	err   error
}

func conflict(where, format string, args ...any) error {
	return errs.NewSpecConflict("%s: %s", where, fmt.Sprintf(format, args...))
}

func newFields(where string, v any) (*fields, error) {
	f := &fields{
		where: where,
		m:     make(map[string]any),
		seen:  make(map[string]bool),
	}
	if v == nil {
		return f, nil
	}
	raw, ok := asMap(v)
	if !ok {
		return nil, conflict(where, "expected a map, got %s", describe(v))
	}
	for k, val := range raw {
		key := strcase.ToSnake(k)
		if _, dup := f.m[key]; dup {
			return nil, conflict(where, "key '%s' is given twice", key)
		}
		f.m[key] = val
	}
	return f, nil
}

func (f *fields) take(key string) (any, bool) {
	f.seen[key] = true
	v, ok := f.m[key]
	return v, ok && v != nil && f.err == nil
}

func (f *fields) fail(key, want string, v any) {
	if f.err == nil {
		f.err = conflict(f.where, "'%s' must be %s, got %s", key, want, describe(v))
	}
}

func (f *fields) done() error {
	if f.err != nil {
		return f.err
	}
	var unknown []string
	for k := range f.m {
		if !f.seen[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return conflict(f.where, "unknown key(s) '%s'", strings.Join(unknown, "', '"))
	}
	return nil
}

func (f *fields) str(key string) string {
	v, ok := f.take(key)
	if !ok {
		return ""
	}
	s, ok := scalar(v)
	if !ok {
		f.fail(key, "a string", v)
	}
	return s
}

func (f *fields) boolean(key string) bool {
	v, ok := f.take(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		f.fail(key, "true or false", v)
	}
	return b
}

func (f *fields) integer(key string) int {
	v, ok := f.take(key)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	}
	f.fail(key, "an integer", v)
	return 0
}

// char reads a single character such as a short form or a delimiter
func (f *fields) char(key string) rune {
	s := f.str(key)
	if s == "" || f.err != nil {
		return 0
	}
	if utf8.RuneCountInString(s) != 1 {
		f.fail(key, "a single character", s)
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

func (f *fields) arity(key string) (types.Arity, bool) {
	v, ok := f.take(key)
	if !ok {
		return types.Arity{}, false
	}
	s, ok := scalar(v)
	if !ok {
		f.fail(key, "an arity such as 2, \"+\", \"*\" or \"1..3\"", v)
		return types.Arity{}, false
	}
	a, err := types.ParseArity(s)
	if err != nil {
		if f.err == nil {
			f.err = errs.NewSpecConflict("%s: '%s'", f.where, key).Wrap(err)
		}
		return types.Arity{}, false
	}
	return a, true
}

// strs reads a scalar or a list of scalars
func (f *fields) strs(key string) []string {
	v, ok := f.take(key)
	if !ok {
		return nil
	}
	if s, ok := scalar(v); ok {
		return []string{s}
	}
	list, ok := asList(v)
	if !ok {
		f.fail(key, "a list of strings", v)
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := scalar(item)
		if !ok {
			f.fail(key, "a list of strings", item)
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (f *fields) list(key string) []any {
	v, ok := f.take(key)
	if !ok {
		return nil
	}
	list, ok := asList(v)
	if !ok {
		f.fail(key, "a list", v)
	}
	return list
}

func (f *fields) table(key string) map[string]any {
	v, ok := f.take(key)
	if !ok {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		f.fail(key, "a map", v)
	}
	return m
}

// entries splits a list into identifiers and properties. An entry is a map holding
// idKey, a single-key map {id: properties} or a bare identifier.
func entries(where, idKey string, list []any) ([]string, []*fields, error) {
	ids := make([]string, 0, len(list))
	props := make([]*fields, 0, len(list))
	for i, item := range list {
		if s, ok := item.(string); ok {
			f, _ := newFields(where, nil)
			ids, props = append(ids, s), append(props, f)
			continue
		}

		m, ok := asMap(item)
		if !ok {
			return nil, nil, conflict(where, "entry %d must be a map, got %s", i+1, describe(item))
		}
		var id string
		var f *fields
		var err error
		if _, named := m[idKey]; named || len(m) != 1 {
			f, err = newFields(where, m)
			if err != nil {
				return nil, nil, err
			}
			id = f.str(idKey)
			if f.err != nil {
				return nil, nil, f.err
			}
		} else {
			for k, v := range m {
				id = k
				f, err = newFields(where, v)
			}
			if err != nil {
				return nil, nil, err
			}
		}
		if id == "" {
			return nil, nil, conflict(where, "entry %d has no '%s'", i+1, idKey)
		}
		ids, props = append(ids, id), append(props, f)
	}
	return ids, props, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[fmt.Sprint(k)] = v
		}
		return out, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

func scalar(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	}
	return "", false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case int, int64, uint64, float64:
		return "a number"
	}
	if _, ok := asList(v); ok {
		return "a list"
	}
	if _, ok := asMap(v); ok {
		return "a map"
	}
	return fmt.Sprintf("%T", v)
}
