package main

import (
	"github.com/fatih/color"
)

type colorKind int

const (
	stringColor colorKind = iota
	numberColor
	boolColor
	nullColor
)

type colors struct {
	kinds map[colorKind]func(string, ...any) string
}

func newColors() *colors {
	return &colors{kinds: map[colorKind]func(string, ...any) string{
		stringColor: color.RGB(8, 196, 16).SprintfFunc(),
		numberColor: color.RGB(128, 216, 236).SprintfFunc(),
		boolColor:   color.CyanString,
		nullColor:   color.RGB(168, 0, 196).SprintfFunc(),
	}}
}

// scalar colors v when it is a scalar; composite values are left to the
// document encoder.
func (c *colors) scalar(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return c.kinds[nullColor]("null"), true
	case string:
		return c.kinds[stringColor]("%s", x), true
	case bool:
		return c.kinds[boolColor]("%v", x), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return c.kinds[numberColor]("%v", x), true
	}
	return "", false
}
