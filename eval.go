package objpath

import (
	"github.com/objpath/objpath/debug"
)

// Get resolves the path against bean. A member which is not present, and
// anything read through a nil or absent intermediate, yields [Absent]
// rather than an error; a present intermediate of an incompatible shape is
// a [ShapeError].
func (p *Path) Get(bean any) (any, error) {
	value, err := p.node.Get(bean)
	if err != nil {
		return nil, err
	}
	if !p.HasNext() {
		return value, nil
	}
	next, err := p.Next()
	if err != nil {
		return nil, err
	}
	return next.Get(value)
}

// Set writes value at the path below bean, creating missing intermediate
// containers on the way down: when the next segment is an index, or a name
// consisting of digits, the intermediate becomes a sequence, otherwise a
// map. Set returns the container to keep using in place of bean, which is
// bean itself unless a write forced its replacement.
func (p *Path) Set(bean, value any) (any, error) {
	if !p.HasNext() {
		return p.node.Set(bean, value)
	}
	next, err := p.Next()
	if err != nil {
		return nil, err
	}
	subBean, err := p.node.Get(bean)
	if err != nil {
		return nil, err
	}
	if isNil(subBean) || IsAbsent(subBean) {
		var created any
		if isSequenceNode(next.node) {
			created = []any{}
		} else {
			created = map[string]any{}
		}
		if debug.Eval() {
			debug.Logf("vivify %s under %s as %T\n", next.node, p.node, created)
		}
		bean, err = p.node.Set(bean, created)
		if err != nil {
			return nil, err
		}
		// the container's own setter may wrap what it stores, so re-read
		// rather than trusting the created reference
		subBean, err = p.node.Get(bean)
		if err != nil {
			return nil, err
		}
	}
	newSubBean, err := next.Set(subBean, value)
	if err != nil {
		return nil, err
	}
	if !sameContainer(newSubBean, subBean) {
		if debug.Eval() {
			debug.Logf("replace %s under %s\n", next.node, p.node)
		}
		bean, err = p.node.Set(bean, newSubBean)
		if err != nil {
			return nil, err
		}
	}
	return bean, nil
}

// isSequenceNode reports whether vivifying for n calls for a sequence
// rather than a map.
func isSequenceNode(n Node) bool {
	switch x := n.(type) {
	case IndexNode:
		return true
	case NameNode:
		return x.IsNumber()
	}
	return false
}

// Get parses expression and resolves it against bean.
func Get(expression string, bean any) (any, error) {
	p, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	return p.Get(bean)
}

// Set parses expression and writes value at it below bean, returning the
// container to keep using in place of bean.
func Set(expression string, bean, value any) (any, error) {
	p, err := Parse(expression)
	if err != nil {
		return nil, err
	}
	return p.Set(bean, value)
}
