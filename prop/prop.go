// Package prop provides named property access for bean-like values.
//
// The path engine delegates all struct field access here, keeping
// reflection out of its evaluation loop. A value may take over its own
// property handling by implementing [Getter] or [Setter]; otherwise
// exported struct fields are matched by `path:"..."` tag, then by exact
// name, then case-insensitively.
package prop

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/objpath/objpath/debug"
)

var (
	// ErrUnsupported marks values which cannot hold named properties at
	// all, as opposed to merely lacking the requested one.
	ErrUnsupported = errors.New("value has no named properties")
	ErrCannotSet   = errors.New("cannot set property")
	ErrNoProperty  = errors.New("no such property")
)

// Getter lets a value resolve its own named properties.
type Getter interface {
	GetProperty(name string) (any, bool)
}

// Setter lets a value store its own named properties.
type Setter interface {
	SetProperty(name string, value any) error
}

// Get reads the named property of bean. present is false when bean can
// hold properties but has no property called name; err is ErrUnsupported
// when bean cannot hold properties at all.
func Get(bean any, name string) (value any, present bool, err error) {
	if g, ok := bean.(Getter); ok {
		v, ok := g.GetProperty(name)
		return v, ok, nil
	}
	rv := reflect.ValueOf(bean)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false, fmt.Errorf("%w: %T", ErrUnsupported, bean)
	}
	f, ok := fieldByName(rv, name)
	if !ok {
		return nil, false, nil
	}
	return f.Interface(), true, nil
}

// Set writes the named property of bean. Plain structs must be reached
// through a pointer to be settable. Value conversion is limited to Go
// assignability and convertibility.
func Set(bean any, name string, value any) error {
	if s, ok := bean.(Setter); ok {
		return s.SetProperty(name, value)
	}
	rv := reflect.ValueOf(bean)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("%w %q: nil %T", ErrCannotSet, name, bean)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupported, bean)
	}
	f, ok := fieldByName(rv, name)
	if !ok {
		return fmt.Errorf("%w: %q in %T", ErrNoProperty, name, bean)
	}
	if !f.CanSet() {
		return fmt.Errorf("%w %q: %T is not addressable, pass a pointer", ErrCannotSet, name, bean)
	}
	if debug.Prop() {
		debug.Logf("set %T.%s\n", bean, name)
	}
	if value == nil {
		switch f.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			f.Set(reflect.Zero(f.Type()))
			return nil
		}
		return fmt.Errorf("%w %q: nil into %s", ErrCannotSet, name, f.Type())
	}
	vv := reflect.ValueOf(value)
	if vv.Type().AssignableTo(f.Type()) {
		f.Set(vv)
		return nil
	}
	if vv.Type().ConvertibleTo(f.Type()) {
		f.Set(vv.Convert(f.Type()))
		return nil
	}
	return fmt.Errorf("%w %q: %T into %s", ErrCannotSet, name, value, f.Type())
}

func fieldByName(rv reflect.Value, name string) (reflect.Value, bool) {
	t := rv.Type()
	n := t.NumField()
	for i := range n {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(sf.Tag.Get("path"), ",")
		if tag == name {
			return rv.Field(i), true
		}
	}
	for i := range n {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("path") != "" {
			continue
		}
		if sf.Name == name {
			return rv.Field(i), true
		}
	}
	for i := range n {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Tag.Get("path") != "" {
			continue
		}
		if strings.EqualFold(sf.Name, name) {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}
