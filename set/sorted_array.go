// This file contains SortedArraySet, a Set implementation backed by a dense
// sorted slice. Lookups binary-search in O(log n), indexed access is O(1),
// and insertion and removal shift the tail in O(n).

package set

import (
	"cmp"
	"iter"
	"slices"
	"sort"

	"github.com/CogitatorTech/ordered/compare"
	"github.com/CogitatorTech/ordered/optional"
	"github.com/CogitatorTech/ordered/zero"
)

// SortedArraySet is a Set implementation backed by a dense slice kept in
// strictly increasing order under the comparator. It trades O(n) insertion
// and removal for compact storage, O(1) indexed access, and cache-friendly
// iteration, which makes it the right choice for small sets and read-heavy
// workloads.
type SortedArraySet[T any] struct {
	cmp   compare.Func[T]
	items []T
}

// Compile-time check that SortedArraySet implements Set.
var _ Set[int] = (*SortedArraySet[int])(nil)

// NewSortedArraySet creates an empty sorted-array set ordered by the built-in
// ordering of T.
func NewSortedArraySet[T cmp.Ordered]() *SortedArraySet[T] {
	return NewSortedArraySetFunc(compare.Natural[T]())
}

// NewSortedArraySetFunc creates an empty sorted-array set ordered by the given
// comparator.
func NewSortedArraySetFunc[T any](comparator compare.Func[T]) *SortedArraySet[T] {
	return &SortedArraySet[T]{cmp: comparator}
}

// lowerBound returns the index of the first element that is not less than the
// given one. Every element before the returned index is strictly less.
func (s *SortedArraySet[T]) lowerBound(element T) int {
	return sort.Search(len(s.items), func(i int) bool {
		return s.cmp(s.items[i], element) != compare.Less
	})
}

// Add inserts an element into the set at its sorted position.
// If an equal element is already present, the stored element is replaced in
// place and Add reports false. Otherwise the tail is shifted right to make
// room and Add reports true.
func (s *SortedArraySet[T]) Add(element T) bool {
	idx := s.lowerBound(element)

	if idx < len(s.items) && s.cmp(s.items[idx], element) == compare.Equal {
		s.items[idx] = element

		return false
	}

	s.items = slices.Insert(s.items, idx, element)

	return true
}

// AddAll adds multiple elements to the set and returns the number of elements
// that were newly inserted.
func (s *SortedArraySet[T]) AddAll(elements ...T) int {
	added := 0

	for _, elem := range elements {
		if s.Add(elem) {
			added++
		}
	}

	return added
}

// Contains checks whether an element equal to the given one exists in the set.
func (s *SortedArraySet[T]) Contains(element T) bool {
	return s.FindIndex(element).NonEmpty()
}

// FindIndex returns the index of the element equal to the given one,
// or None if no such element exists. Indexes are positions in the sorted
// order, starting at zero.
func (s *SortedArraySet[T]) FindIndex(element T) optional.Value[int] {
	idx := s.lowerBound(element)

	if idx < len(s.items) && s.cmp(s.items[idx], element) == compare.Equal {
		return optional.Some(idx)
	}

	return optional.None[int]()
}

// At returns the element at the given index in sorted order.
// Returns ErrIndexOutOfRange if the index does not refer to an element.
func (s *SortedArraySet[T]) At(index int) (T, error) {
	if index < 0 || index >= len(s.items) {
		return zero.Value[T](), ErrIndexOutOfRange
	}

	return s.items[index], nil
}

// RemoveAt removes and returns the element at the given index in sorted order,
// shifting the tail left. Returns ErrIndexOutOfRange if the index does not
// refer to an element.
func (s *SortedArraySet[T]) RemoveAt(index int) (T, error) {
	if index < 0 || index >= len(s.items) {
		return zero.Value[T](), ErrIndexOutOfRange
	}

	removed := s.items[index]
	s.items = slices.Delete(s.items, index, index+1)

	return removed, nil
}

// Remove removes the element equal to the given one from the set.
// Returns the stored element if it was present, or None otherwise.
func (s *SortedArraySet[T]) Remove(element T) optional.Value[T] {
	idx, found := s.FindIndex(element).Get()
	if !found {
		return optional.None[T]()
	}

	removed := s.items[idx]
	s.items = slices.Delete(s.items, idx, idx+1)

	return optional.Some(removed)
}

// Clear removes all elements from the set, resetting it to empty.
func (s *SortedArraySet[T]) Clear() {
	s.items = nil
}

// Size returns the number of elements in the set.
func (s *SortedArraySet[T]) Size() int {
	return len(s.items)
}

// Min returns the smallest element in the set, or None if the set is empty.
func (s *SortedArraySet[T]) Min() optional.Value[T] {
	if len(s.items) == 0 {
		return optional.None[T]()
	}

	return optional.Some(s.items[0])
}

// Max returns the largest element in the set, or None if the set is empty.
func (s *SortedArraySet[T]) Max() optional.Value[T] {
	if len(s.items) == 0 {
		return optional.None[T]()
	}

	return optional.Some(s.items[len(s.items)-1])
}

// Entries returns all elements in the set as a freshly allocated slice,
// in sorted order.
func (s *SortedArraySet[T]) Entries() []T {
	return slices.Clone(s.items)
}

// Seq returns an iterator over the set's elements in sorted order.
// This enables range-based iteration: for elem := range s.Seq() { ... }.
func (s *SortedArraySet[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, elem := range s.items {
			if !yield(elem) {
				return
			}
		}
	}
}

// ForEach applies the given function to each element in sorted order.
func (s *SortedArraySet[T]) ForEach(f func(element T)) {
	for elem := range s.Seq() {
		f(elem)
	}
}

// Union returns a new set containing all elements from both sets.
// When an element exists in both, the one stored in the other set wins.
func (s *SortedArraySet[T]) Union(other Set[T]) Set[T] {
	out := NewSortedArraySetFunc(s.cmp)

	for elem := range s.Seq() {
		out.Add(elem)
	}

	for elem := range other.Seq() {
		out.Add(elem)
	}

	return out
}

// Intersection returns a new set containing only elements present in both
// sets. Stored elements are taken from this set, not from other.
func (s *SortedArraySet[T]) Intersection(other Set[T]) Set[T] {
	out := NewSortedArraySetFunc(s.cmp)

	for elem := range s.Seq() {
		if other.Contains(elem) {
			out.Add(elem)
		}
	}

	return out
}
