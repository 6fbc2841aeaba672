package util

import "reflect"

// UnwrapType follows pointer types down to the underlying type
func UnwrapType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// IsPresenceType reports whether fields of type t record presence only (bool)
func IsPresenceType(t reflect.Type) bool {
	return UnwrapType(t).Kind() == reflect.Bool
}

// IsListType reports whether fields of type t hold several values
func IsListType(t reflect.Type) bool {
	t = UnwrapType(t)
	return t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8
}
