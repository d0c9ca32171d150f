// Package sortable provides wrapper types for primitive types that implement
// the Sortable interface, enabling their use as keys in the ordered containers.
//
// The [Sortable] interface extends [compare.Comparable] with a LessThan method,
// providing both equality comparison and ordering. [Compare] bridges any
// Sortable type to the [compare.Func] comparator the containers consume:
//
//	s := set.NewRedBlackTreeSetFunc(sortable.Compare[sortable.Int]())
//	s.Add(sortable.Int(42))
//	s.Add(sortable.Int(10))
//	// Iterating yields: 10, 42 (sorted order)
//
// To create a custom sortable type, implement Equals and LessThan:
//
//	type Version struct{ Major, Minor int }
//
//	func (v Version) Equals(other Version) bool {
//	    return v.Major == other.Major && v.Minor == other.Minor
//	}
//
//	func (v Version) LessThan(other Version) bool {
//	    if v.Major != other.Major {
//	        return v.Major < other.Major
//	    }
//	    return v.Minor < other.Minor
//	}
package sortable

import (
	"github.com/CogitatorTech/ordered/compare"
)

// Sortable is the interface for key types that carry their own ordering.
type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Compare returns a comparator derived from a Sortable type's own ordering.
// Equality is taken from Equals, not from !LessThan in both directions, so
// types whose Equals is finer than their ordering still behave sensibly.
func Compare[T Sortable[T]]() compare.Func[T] {
	return func(a, b T) compare.Ordering {
		switch {
		case a.Equals(b):
			return compare.Equal
		case a.LessThan(b):
			return compare.Less
		default:
			return compare.Greater
		}
	}
}

// Int is a sortable wrapper type for the built-in int type.
// Convert back with a plain type conversion: int(sortable.Int(42)).
type Int int

// Compile-time check that Int implements Sortable[Int].
var _ Sortable[Int] = (*Int)(nil)

// Equals returns true if this Int has the same value as the other Int.
func (i Int) Equals(other Int) bool {
	return int(i) == int(other)
}

// LessThan returns true if this Int is numerically less than the other Int.
func (i Int) LessThan(other Int) bool {
	return int(i) < int(other)
}

// String is a sortable wrapper type for the built-in string type.
// Strings are compared lexicographically using Go's standard string comparison.
type String string

// Compile-time check that String implements Sortable[String].
var _ Sortable[String] = (*String)(nil)

// Equals returns true if this String has the same value as the other String.
func (s String) Equals(other String) bool {
	return string(s) == string(other)
}

// LessThan returns true if this String is lexicographically less than the other String.
func (s String) LessThan(other String) bool {
	return string(s) < string(other)
}

// Byte is a sortable wrapper type for the built-in byte type.
type Byte byte

// Compile-time check that Byte implements Sortable[Byte].
var _ Sortable[Byte] = (*Byte)(nil)

// Equals returns true if this Byte has the same value as the other Byte.
func (b Byte) Equals(other Byte) bool {
	return byte(b) == byte(other)
}

// LessThan returns true if this Byte is numerically less than the other Byte.
func (b Byte) LessThan(other Byte) bool {
	return byte(b) < byte(other)
}
