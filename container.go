package objpath

import (
	"fmt"
	"reflect"
	"strconv"
)

// Absent is the result of reading a key or index which is not present in
// its container. It is distinct from a present nil value.
var Absent any = absent{}

type absent struct{}

func (absent) String() string { return "<absent>" }

// IsAbsent reports whether v is the [Absent] sentinel.
func IsAbsent(v any) bool {
	_, ok := v.(absent)
	return ok
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// indirect peels pointers and interfaces off v so container kind checks see
// the underlying map, slice or struct.
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return v
		}
		v = v.Elem()
	}
	return v
}

func mapGet(m reflect.Value, name string) any {
	kv, err := mapKey(m.Type().Key(), name)
	if err != nil {
		return Absent
	}
	v := m.MapIndex(kv)
	if !v.IsValid() {
		return Absent
	}
	return v.Interface()
}

func mapSet(m reflect.Value, name string, value any) error {
	kv, err := mapKey(m.Type().Key(), name)
	if err != nil {
		return err
	}
	ev, err := convertTo(m.Type().Elem(), value)
	if err != nil {
		return err
	}
	m.SetMapIndex(kv, ev)
	return nil
}

func mapKey(kt reflect.Type, name string) (reflect.Value, error) {
	switch kt.Kind() {
	case reflect.String:
		return reflect.ValueOf(name).Convert(kt), nil
	case reflect.Interface:
		return reflect.ValueOf(name), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(name, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %q does not fit map key type %s", name, kt)
		}
		return reflect.ValueOf(i).Convert(kt), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(name, 10, 64)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("key %q does not fit map key type %s", name, kt)
		}
		return reflect.ValueOf(u).Convert(kt), nil
	}
	return reflect.Value{}, fmt.Errorf("unsupported map key type %s", kt)
}

func seqGet(s reflect.Value, index int) any {
	if index < 0 || index >= s.Len() {
		return Absent
	}
	return s.Index(index).Interface()
}

// seqSet writes value at index, growing the slice when index is past the
// end. Growth allocates a fresh slice, so the returned value is the slice
// header to keep using, which may differ from s.
func seqSet(s reflect.Value, index int, value any) (any, error) {
	if index < 0 {
		return nil, fmt.Errorf("negative index %d", index)
	}
	ev, err := convertTo(s.Type().Elem(), value)
	if err != nil {
		return nil, err
	}
	if index < s.Len() {
		s.Index(index).Set(ev)
		return s.Interface(), nil
	}
	ns := reflect.MakeSlice(s.Type(), index+1, index+1)
	reflect.Copy(ns, s)
	ns.Index(index).Set(ev)
	return ns.Interface(), nil
}

func convertTo(t reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		switch t.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot store nil in %s", t)
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot store %T in %s", value, t)
}

// sameContainer reports whether a and b are the same container reference.
// Two slice headers count as the same only when they share both backing
// array and length, so growth is seen as a replacement.
func sameContainer(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Slice:
		return ra.UnsafePointer() == rb.UnsafePointer() && ra.Len() == rb.Len()
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ra.UnsafePointer() == rb.UnsafePointer()
	}
	if ra.Comparable() && rb.Comparable() {
		return a == b
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
