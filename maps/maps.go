// Package maps provides ordered map containers: sorted mappings from unique
// keys to values under a caller-supplied comparator.
//
// Three implementations share the [Map] interface:
//
//   - [BTreeMap]: a balanced multi-way search tree with a configurable
//     branching factor. Shallow, cache-friendly, the right default.
//   - [SkipListMap]: a probabilistic multi-level linked structure. Simple
//     invariants, cheap iteration, no rebalancing.
//   - [TreapMap]: a randomized binary search tree ordered by key and heap-
//     ordered by priority, with split/merge primitives.
//
// A fourth container, [Trie], maps byte-string keys to values and adds prefix
// queries; it has its own surface and does not implement Map.
//
// Key uniqueness is determined by the comparator: two keys are the same key
// when the comparator reports them Equal. Put on an existing key replaces the
// value in place without growing the map.
//
// Thread-safety: implementations are not thread-safe. Concurrent access must
// be synchronized by the caller, and mutating a map while ranging over Seq()
// is undefined.
package maps

import (
	"errors"
	"iter"

	"github.com/CogitatorTech/ordered/optional"
)

var (
	// ErrInvalidDegree is returned when constructing a B-tree map with a
	// branching factor below 3.
	ErrInvalidDegree = errors.New("branching factor must be at least 3")

	// ErrInvalidMaxLevel is returned when constructing a skip-list map with a
	// maximum level outside [1, 32].
	ErrInvalidMaxLevel = errors.New("max level must be between 1 and 32")
)

// Entry is a key-value pair yielded when iterating a map or asking for its
// extremes.
type Entry[K any, V any] struct {
	Key   K
	Value V
}

// Map is a sorted mapping from unique keys to values. Uniqueness and order
// are both determined by the comparator the map was created with.
type Map[K any, V any] interface {
	// Put inserts a key-value pair into the map. If an equal key is already
	// present, its value is replaced in place without changing the size.
	Put(key K, value V)

	// Get retrieves the value for the given key.
	// If the key exists, returns the value with found=true; otherwise a zero
	// value with found=false.
	Get(key K) (value V, found bool)

	// GetOrElse retrieves the value for the given key, or returns
	// defaultValue if the key doesn't exist.
	GetOrElse(key K, defaultValue V) V

	// Update applies f to the stored value for the given key, in place.
	// Reports whether the key was present. The pointer passed to f is valid
	// only for the duration of the call.
	Update(key K, f func(value *V)) bool

	// Contains checks if the given key exists in the map.
	Contains(key K) bool

	// Remove deletes the entry for the given key.
	// Returns the stored value if the key was present, or None otherwise.
	Remove(key K) optional.Value[V]

	// Clear removes all entries from the map, leaving it empty.
	Clear()

	// Size returns the number of entries currently stored in the map.
	Size() int

	// Seq returns an iterator for ranging over all entries in sorted key
	// order. This method is compatible with Go 1.23+ range-over-func syntax:
	// for key, value := range m.Seq() { ... }
	Seq() iter.Seq2[K, V]

	// Keys returns all keys in the map as a freshly allocated slice, in
	// sorted order.
	Keys() []K

	// Min returns the entry with the smallest key, or None if the map is empty.
	Min() optional.Value[Entry[K, V]]

	// Max returns the entry with the largest key, or None if the map is empty.
	Max() optional.Value[Entry[K, V]]

	// ForEach applies the given function to each entry in sorted key order.
	ForEach(f func(key K, value V))
}
