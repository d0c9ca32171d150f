// Package set provides ordered set containers: collections of unique elements
// kept in sorted order under a caller-supplied comparator.
//
// Two implementations are available:
//
//   - [RedBlackTreeSet]: a self-balancing binary search tree with O(log n)
//     insertion, removal, and lookup. The right default.
//   - [SortedArraySet]: a dense sorted slice with O(log n) lookup, O(1)
//     indexed access, and O(n) insertion and removal. Best for small sets or
//     read-heavy workloads that want indexed access.
//
// Uniqueness is determined by the comparator: two elements are the same
// element when the comparator reports them Equal. Adding an element that is
// already present replaces the stored element in place without growing the set,
// which matters when the comparator looks at only part of the element.
//
// Thread-safety: implementations are not thread-safe. Concurrent access must
// be synchronized by the caller, and mutating a set while ranging over Seq()
// is undefined.
package set

import (
	"errors"
	"iter"

	"github.com/CogitatorTech/ordered/optional"
)

// ErrIndexOutOfRange is returned by indexed operations when the index does not
// refer to an element of the set.
var ErrIndexOutOfRange = errors.New("index out of range")

// A Set is an ordered collection of unique elements. Uniqueness and order are
// both determined by the comparator the set was created with.
type Set[T any] interface {
	// Add inserts an element into the set. If an equal element is already
	// present, the stored element is replaced in place and Add reports false;
	// otherwise the element is inserted and Add reports true.
	Add(element T) bool

	// AddAll adds multiple elements to the set and returns the number of
	// elements that were newly inserted (as opposed to replaced).
	AddAll(elements ...T) int

	// Remove removes the element equal to the given one from the set.
	// Returns the stored element if it was present, or None otherwise.
	Remove(element T) optional.Value[T]

	// Clear removes all elements from the set.
	Clear()

	// Contains checks if an element equal to the given one exists in the set.
	Contains(element T) bool

	// Size returns the number of elements in the set.
	Size() int

	// Entries returns all elements in the set as a freshly allocated slice,
	// in sorted order.
	Entries() []T

	// Seq returns an iterator for ranging over all elements in sorted order.
	// This method is compatible with Go 1.23+ range-over-func syntax:
	// for elem := range s.Seq() { ... }
	Seq() iter.Seq[T]

	// ForEach applies the given function to each element in sorted order.
	ForEach(f func(element T))

	// Union returns a new set containing all elements from both sets.
	// When an element exists in both, the one stored in the other set wins.
	Union(other Set[T]) Set[T]

	// Intersection returns a new set containing only elements present in both
	// sets. Stored elements are taken from this set, not from other.
	Intersection(other Set[T]) Set[T]
}
