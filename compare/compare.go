// Package compare provides the ordering primitives used by the ordered containers.
//
// Containers in this module never hard-code an ordering. They take a [Func]
// at construction time, which classifies two keys as Less, Equal, or Greater.
// For key types whose built-in ordering is the right one, [Natural] produces
// that comparator; [NaturalText] orders strings in natural sort order; custom
// orderings are ordinary functions.
package compare

import (
	"cmp"

	"facette.io/natsort"
)

// Ordering is the result of comparing two values.
type Ordering int8

const (
	// Less means the first value sorts before the second.
	Less Ordering = -1
	// Equal means neither value sorts before the other.
	// Containers treat Equal as key equality.
	Equal Ordering = 0
	// Greater means the first value sorts after the second.
	Greater Ordering = 1
)

// String returns a human-readable representation of the ordering.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return "not recognized"
	}
}

// Func compares two values and reports their relative order.
// A Func must be a total order: antisymmetric, transitive, and total.
// Every ordered container is parameterized by a Func over its key type.
type Func[T any] func(a, b T) Ordering

// Natural returns a comparator derived from the built-in ordering of T.
// This is the comparator used by the convenience constructors
// (NewBTreeMap, NewRedBlackTreeSet, and friends).
func Natural[T cmp.Ordered]() Func[T] {
	return func(a, b T) Ordering {
		return Ordering(cmp.Compare(a, b))
	}
}

// NaturalText returns a comparator that orders strings in natural sort order,
// treating embedded digit runs numerically: "file2" sorts before "file10".
func NaturalText() Func[string] {
	return func(a, b string) Ordering {
		switch {
		case a == b:
			return Equal
		case natsort.Compare(a, b):
			return Less
		default:
			return Greater
		}
	}
}

// Reverse returns a comparator with the opposite ordering of f.
func Reverse[T any](f Func[T]) Func[T] {
	return func(a, b T) Ordering {
		return -f(a, b)
	}
}

// Comparable is a generic interface for types that can compare themselves for equality.
// Types implementing this interface must provide their own Equals method that determines
// whether two values are equal according to the type's semantics.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Equals compares two values using the Comparable interface.
// It delegates to the Equals method of the first argument.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}
