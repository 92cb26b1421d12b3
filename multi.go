package objpath

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// RangeNode selects a sub-sequence, written [start:end] or
// [start:end:step]. The end bound is exclusive and clipped to the sequence
// length. Range nodes are read-only.
type RangeNode struct {
	start, end, step int
}

func parseRangeNode(token string) (RangeNode, bool) {
	parts := strings.Split(token, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return RangeNode{}, false
	}
	for _, p := range parts {
		if !isDigits(p) {
			return RangeNode{}, false
		}
	}
	rn := RangeNode{step: 1}
	rn.start, _ = strconv.Atoi(parts[0])
	rn.end, _ = strconv.Atoi(parts[1])
	if len(parts) == 3 {
		rn.step, _ = strconv.Atoi(parts[2])
		if rn.step == 0 {
			return RangeNode{}, false
		}
	}
	return rn, true
}

func (n RangeNode) String() string {
	return fmt.Sprintf("[%d:%d:%d]", n.start, n.end, n.step)
}

func (n RangeNode) Get(container any) (any, error) {
	if isNil(container) || IsAbsent(container) {
		return Absent, nil
	}
	rv := indirect(reflect.ValueOf(container))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, &ShapeError{Node: n, Container: container}
	}
	end := min(n.end, rv.Len())
	out := []any{}
	for i := n.start; i < end; i += n.step {
		out = append(out, rv.Index(i).Interface())
	}
	return out, nil
}

func (n RangeNode) Set(container, value any) (any, error) {
	return nil, fmt.Errorf("%w: cannot set through range node %s", ErrReadOnly, n)
}

// ListNode selects several keys or indices at once, written [a,b] or
// [1,2,3]. Members which are not present are left out of the result. List
// nodes are read-only.
type ListNode struct {
	names []string
}

func newListNode(token string) ListNode {
	parts := strings.Split(token, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return ListNode{names: parts}
}

func (n ListNode) Names() []string { return n.names }

func (n ListNode) String() string { return "[" + strings.Join(n.names, ",") + "]" }

func (n ListNode) Get(container any) (any, error) {
	if isNil(container) || IsAbsent(container) {
		return Absent, nil
	}
	out := []any{}
	for _, name := range n.names {
		v, err := newNameNode(name).Get(container)
		if err != nil {
			return nil, err
		}
		if IsAbsent(v) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (n ListNode) Set(container, value any) (any, error) {
	return nil, fmt.Errorf("%w: cannot set through list node %s", ErrReadOnly, n)
}

// FilterNode selects the elements of a sequence for which a predicate
// holds, written [?age > 30]. Predicates are compiled with expr-lang; each
// element serves as the expression environment and is also bound to the
// variable "value", so [?value > 3] works on sequences of scalars. Filter
// nodes are read-only.
type FilterNode struct {
	src string
	prg *vm.Program
}

func newFilterNode(src string) (*FilterNode, error) {
	prg, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, fmt.Errorf("%w: bad filter %q: %v", ErrSyntax, src, err)
	}
	return &FilterNode{src: src, prg: prg}, nil
}

func (n *FilterNode) Src() string { return n.src }

func (n *FilterNode) String() string { return "[?" + n.src + "]" }

func (n *FilterNode) Get(container any) (any, error) {
	if isNil(container) || IsAbsent(container) {
		return Absent, nil
	}
	rv := indirect(reflect.ValueOf(container))
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, &ShapeError{Node: n, Container: container}
	}
	out := []any{}
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		env := map[string]any{}
		if m, ok := elem.(map[string]any); ok {
			for k, v := range m {
				env[k] = v
			}
		}
		env["value"] = elem
		res, err := expr.Run(n.prg, env)
		if err != nil {
			// predicate does not apply to this element
			continue
		}
		if hit, _ := res.(bool); hit {
			out = append(out, elem)
		}
	}
	return out, nil
}

func (n *FilterNode) Set(container, value any) (any, error) {
	return nil, fmt.Errorf("%w: cannot set through filter node %s", ErrReadOnly, n)
}
