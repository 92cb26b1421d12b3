package objpath

import (
	"fmt"
	"strings"
)

// Path is one parsed segment of a path expression together with the
// unparsed remainder of the expression. The remainder is expanded on
// demand by [Path.Next], so a chain is never parsed further than a walk
// actually descends, and calling Next twice yields two independent paths
// over the same residual text.
type Path struct {
	node  Node
	child string
}

// Parse validates expression and returns the Path of its first segment,
// leaving the rest unparsed. It fails with a [SyntaxError] on unbalanced or
// misplaced brackets.
func Parse(expression string) (*Path, error) {
	if err := checkBrackets(expression); err != nil {
		return nil, err
	}
	var (
		buf     strings.Builder
		inQuote bool
	)
	for i := 0; i < len(expression); i++ {
		c := expression[i]
		if c == '\'' {
			inQuote = !inQuote
			continue
		}
		if inQuote || (c != '.' && c != '[' && c != ']') {
			buf.WriteByte(c)
			continue
		}
		if buf.Len() > 0 {
			node, err := newNode(buf.String())
			if err != nil {
				return nil, err
			}
			// a finalizing '[' stays in the residual so the next parse
			// step sees the bracketed segment whole, as in name[0]
			child := expression[i+1:]
			if c == '[' {
				child = expression[i:]
			}
			return &Path{node: node, child: child}, nil
		}
	}
	node, err := newNode(buf.String())
	if err != nil {
		return nil, err
	}
	return &Path{node: node}, nil
}

// checkBrackets scans the whole expression once for bracket balance, so a
// syntax error anywhere in the chain surfaces from the first Parse rather
// than from a later Next.
func checkBrackets(expression string) error {
	var inBracket, inQuote bool
	for i := 0; i < len(expression); i++ {
		switch c := expression[i]; {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == ']':
			if !inBracket {
				return &SyntaxError{Expr: expression, Offset: i, reason: "we find ']' but no '['"}
			}
			inBracket = false
		case c == '[' || c == '.':
			if inBracket {
				return &SyntaxError{Expr: expression, Offset: i, reason: "we find '[' but no ']'"}
			}
			if c == '[' {
				inBracket = true
			}
		}
	}
	if inBracket {
		return &SyntaxError{Expr: expression, Offset: len(expression) - 1, reason: "we find '[' but no ']'"}
	}
	return nil
}

// MustParse is Parse, panicking on error.
func MustParse(expression string) *Path {
	p, err := Parse(expression)
	if err != nil {
		panic(err)
	}
	return p
}

// Node returns this segment's node.
func (p *Path) Node() Node { return p.node }

// Child returns the unparsed remainder of the expression, empty when p is
// the terminal segment.
func (p *Path) Child() string { return p.child }

// HasNext reports whether any expression text remains after this segment.
func (p *Path) HasNext() bool { return p.child != "" }

// Next parses the remainder into the following Path. It fails with
// [ErrNoNext] when p is terminal.
func (p *Path) Next() (*Path, error) {
	if !p.HasNext() {
		return nil, fmt.Errorf("%w: %s is terminal", ErrNoNext, p)
	}
	return Parse(p.child)
}

func (p *Path) String() string {
	return fmt.Sprintf("Path{node=%s, child='%s'}", p.node, p.child)
}
