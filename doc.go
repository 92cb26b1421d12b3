// Package objpath evaluates path expressions against nested object graphs.
//
// A path expression is a chain of accesses separated by '.' or '[...]',
// for example:
//
//	person
//	person.name
//	persons[3]
//	person.friends[5].name
//	['person']['friends'][5]['name']
//
// [Parse] turns an expression into a [Path], a lazily expanded chain of
// [Node] segments. [Path.Get] reads a value out of an arbitrary graph of
// maps, slices and structs; [Path.Set] writes one in, creating missing
// intermediate containers along the way.
package objpath
