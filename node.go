package objpath

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/objpath/objpath/prop"
)

// A Node is one access step of a path expression. Get reads the value the
// node selects from container, returning [Absent] when nothing is there.
// Set writes value into container and returns the authoritative container
// to keep using: container itself, or a replacement when the write forced a
// reallocation, as happens when a slice has to grow. Callers must always
// continue with the returned container.
type Node interface {
	Get(container any) (any, error)
	Set(container, value any) (any, error)
	String() string
}

// newNode maps a raw token to its node kind from lexical shape alone. The
// kind is fixed here and never reinterpreted during evaluation.
func newNode(token string) (Node, error) {
	if isDigits(token) {
		i, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: index %q: %v", ErrSyntax, token, err)
		}
		return IndexNode(i), nil
	}
	if strings.HasPrefix(token, "?") {
		return newFilterNode(strings.TrimPrefix(token, "?"))
	}
	if rn, ok := parseRangeNode(token); ok {
		return rn, nil
	}
	if strings.Contains(token, ",") {
		return newListNode(token), nil
	}
	return newNameNode(token), nil
}

// NameNode accesses a map entry or a bean property by name. A numeric
// looking name doubles as an index when the container turns out to be a
// sequence.
type NameNode struct {
	name string
	num  bool
}

func newNameNode(name string) NameNode {
	return NameNode{name: name, num: isDigits(name)}
}

func (n NameNode) Name() string { return n.name }

// IsNumber reports whether the raw name consists solely of decimal digits.
func (n NameNode) IsNumber() bool { return n.num }

func (n NameNode) String() string { return "'" + n.name + "'" }

func (n NameNode) Get(container any) (any, error) {
	if isNil(container) || IsAbsent(container) {
		return Absent, nil
	}
	rv := indirect(reflect.ValueOf(container))
	switch rv.Kind() {
	case reflect.Map:
		return mapGet(rv, n.name), nil
	case reflect.Slice, reflect.Array:
		if n.num {
			i, _ := strconv.Atoi(n.name)
			return seqGet(rv, i), nil
		}
		return nil, &ShapeError{Node: n, Container: container}
	}
	v, ok, err := prop.Get(container, n.name)
	if err != nil {
		if errors.Is(err, prop.ErrUnsupported) {
			return nil, &ShapeError{Node: n, Container: container}
		}
		return nil, err
	}
	if !ok {
		return Absent, nil
	}
	return v, nil
}

func (n NameNode) Set(container, value any) (any, error) {
	if isNil(container) {
		return nil, fmt.Errorf("%w: cannot set %s", ErrNilContainer, n)
	}
	rv := indirect(reflect.ValueOf(container))
	switch rv.Kind() {
	case reflect.Map:
		if err := mapSet(rv, n.name, value); err != nil {
			return nil, fmt.Errorf("set %s: %w", n, err)
		}
		return container, nil
	case reflect.Slice:
		if n.num {
			i, _ := strconv.Atoi(n.name)
			return setSeqIndex(n, container, rv, i, value)
		}
		return nil, &ShapeError{Node: n, Container: container}
	case reflect.Array:
		// arrays reach the node by value, writing would mutate a copy
		return nil, &ShapeError{Node: n, Container: container}
	}
	if err := prop.Set(container, n.name, value); err != nil {
		if errors.Is(err, prop.ErrUnsupported) {
			return nil, &ShapeError{Node: n, Container: container}
		}
		return nil, err
	}
	return container, nil
}

// IndexNode accesses a sequence element by position. Against a map it falls
// back to looking up the decimal form of the index as a key.
type IndexNode int

func (n IndexNode) Index() int { return int(n) }

func (n IndexNode) String() string { return "[" + strconv.Itoa(int(n)) + "]" }

func (n IndexNode) Get(container any) (any, error) {
	if isNil(container) || IsAbsent(container) {
		return Absent, nil
	}
	rv := indirect(reflect.ValueOf(container))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return seqGet(rv, int(n)), nil
	case reflect.Map:
		return mapGet(rv, strconv.Itoa(int(n))), nil
	}
	return nil, &ShapeError{Node: n, Container: container}
}

func (n IndexNode) Set(container, value any) (any, error) {
	if isNil(container) {
		return nil, fmt.Errorf("%w: cannot set %s", ErrNilContainer, n)
	}
	rv := indirect(reflect.ValueOf(container))
	switch rv.Kind() {
	case reflect.Slice:
		return setSeqIndex(n, container, rv, int(n), value)
	case reflect.Map:
		if err := mapSet(rv, strconv.Itoa(int(n)), value); err != nil {
			return nil, fmt.Errorf("set %s: %w", n, err)
		}
		return container, nil
	}
	return nil, &ShapeError{Node: n, Container: container}
}

// setSeqIndex writes through a slice container. When growth replaced the
// slice and the container was reached through a settable reference (a
// pointer to slice), the new slice is stored back in place; otherwise the
// replacement is handed to the caller.
func setSeqIndex(n Node, container any, rv reflect.Value, index int, value any) (any, error) {
	out, err := seqSet(rv, index, value)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", n, err)
	}
	if sameContainer(out, rv.Interface()) {
		return container, nil
	}
	if rv.CanSet() {
		rv.Set(reflect.ValueOf(out))
		return container, nil
	}
	return out, nil
}
