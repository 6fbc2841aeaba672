package util

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/PureW/clapgo/types"
	"github.com/araddon/dateparse"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// ParseBool accepts the strconv forms plus yes/no and on/off
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %q", types.ErrParseBool, value)
	}
	return b, nil
}

// ParseInt parses a base-10 integer of the given bit size
func ParseInt(value string, bitSize int) (int64, error) {
	i, err := strconv.ParseInt(value, 10, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", types.ErrParseOverflow, value)
		}
		return 0, fmt.Errorf("%w: %q", types.ErrParseInt, value)
	}
	return i, nil
}

// ParseUint parses an unsigned integer of the given bit size
func ParseUint(value string, bitSize int) (uint64, error) {
	u, err := strconv.ParseUint(value, 10, bitSize)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", types.ErrParseOverflow, value)
		}
		return 0, fmt.Errorf("%w: %q", types.ErrParseUint, value)
	}
	return u, nil
}

// ParseFloat parses a floating point number of the given bit size
func ParseFloat(value string, bitSize int) (float64, error) {
	f, err := strconv.ParseFloat(value, bitSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrParseFloat, value)
	}
	return f, nil
}

// ParseDuration parses a Go duration such as "1h30m"
func ParseDuration(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrParseDuration, value)
	}
	return d, nil
}

// ParseTime parses a date/time in any layout dateparse recognizes, in local time
func ParseTime(value string) (time.Time, error) {
	t, err := dateparse.ParseLocal(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", types.ErrParseTime, value)
	}
	return t, nil
}

// ConvertValues stores values into target. Slice targets receive every value; scalar
// targets receive the last one, which is the one a repeated argument keeps.
func ConvertValues(values []string, target reflect.Value) error {
	if !target.CanSet() {
		return fmt.Errorf("%w: %s", types.ErrVariableNotAPointer, target.Type())
	}
	if target.Kind() == reflect.Slice && target.Type().Elem().Kind() != reflect.Uint8 {
		out := reflect.MakeSlice(target.Type(), len(values), len(values))
		for i, value := range values {
			if err := setScalar(out.Index(i), value); err != nil {
				return err
			}
		}
		target.Set(out)
		return nil
	}
	if len(values) == 0 {
		return nil
	}
	return setScalar(target, values[len(values)-1])
}

// CanConvert reports whether ConvertValues supports values of type t
func CanConvert(t reflect.Type) bool {
	t = UnwrapType(t)
	if t.Kind() == reflect.Slice {
		t = t.Elem()
	}
	switch t {
	case durationType, timeType:
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func setScalar(v reflect.Value, value string) error {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}

	switch v.Type() {
	case durationType:
		d, err := ParseDuration(value)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	case timeType:
		t, err := ParseTime(value)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(t))
		return nil
	}

	switch v.Kind() {
	case reflect.String:
		v.SetString(value)
	case reflect.Bool:
		b, err := ParseBool(value)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := ParseInt(value, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := ParseUint(value, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := ParseFloat(value, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)
	default:
		return fmt.Errorf("%w: %s", types.ErrUnsupportedTypeConversion, v.Type())
	}

	return nil
}
