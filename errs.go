package objpath

import (
	"errors"
	"fmt"
)

var (
	ErrSyntax       = errors.New("bad expression")
	ErrShape        = errors.New("container shape mismatch")
	ErrNoNext       = errors.New("no next path segment")
	ErrReadOnly     = errors.New("node is read-only")
	ErrNilContainer = errors.New("nil container")
)

// SyntaxError reports a malformed path expression together with the offset
// of the offending character.
type SyntaxError struct {
	Expr   string
	Offset int
	reason string
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("bad expression '%s':%d, %s !", e.Expr, e.Offset, e.reason)
}

// ShapeError reports an access whose node kind cannot apply to the
// container it was evaluated against, such as an indexed access into a
// value with no sequence semantics.
type ShapeError struct {
	Node      Node
	Container any
}

func (e *ShapeError) Unwrap() error { return ErrShape }

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: cannot apply %s to %T", ErrShape, e.Node, e.Container)
}
