// This file contains SkipListMap, a probabilistic multi-level linked
// structure ordered by key.
//
// Level 0 is a sorted singly linked list of every entry; each higher level is
// a sparser express lane over the level below. A node's level is drawn once
// at insertion by a fair-coin cascade, which keeps the expected search cost
// logarithmic without any rebalancing. Which elements are present, and in
// what order, never depends on the coin flips.

package maps

import (
	"cmp"
	"iter"
	"math/rand/v2"

	"github.com/CogitatorTech/ordered/compare"
	"github.com/CogitatorTech/ordered/optional"
	"github.com/CogitatorTech/ordered/zero"
)

// DefaultMaxLevel is the level cap used when WithMaxLevel is not given.
// It accommodates any realistic entry count.
const DefaultMaxLevel = 32

// skipListNode is a single node of the skip list. forward holds one link per
// level the node participates in, so its length is the node's level + 1.
type skipListNode[K any, V any] struct {
	key     K
	value   V
	forward []*skipListNode[K, V]
}

// SkipListMap is a Map implementation backed by a skip list.
type SkipListMap[K any, V any] struct {
	cmp      compare.Func[K]
	header   *skipListNode[K, V]
	rng      *rand.Rand
	maxLevel int
	level    int
	size     int
}

// Compile-time check that SkipListMap implements Map.
var _ Map[int, string] = (*SkipListMap[int, string])(nil)

// SkipListOption configures a SkipListMap at construction.
type SkipListOption func(*skipListConfig)

type skipListConfig struct {
	maxLevel int
	rng      *rand.Rand
}

// WithMaxLevel caps how tall any node may grow. Valid values are 1 through 32.
// Lower caps save memory on small maps; the default suits any size.
func WithMaxLevel(maxLevel int) SkipListOption {
	return func(c *skipListConfig) {
		c.maxLevel = maxLevel
	}
}

// WithRandom supplies the random source used to draw node levels.
// Injecting a source with a fixed seed makes the structure deterministic,
// which is how the tests pin down node levels.
func WithRandom(rng *rand.Rand) SkipListOption {
	return func(c *skipListConfig) {
		c.rng = rng
	}
}

// NewSkipListMap creates an empty skip-list map ordered by the built-in
// ordering of K. Returns ErrInvalidMaxLevel if WithMaxLevel is given a value
// outside [1, 32].
func NewSkipListMap[K cmp.Ordered, V any](opts ...SkipListOption) (*SkipListMap[K, V], error) {
	return NewSkipListMapFunc[K, V](compare.Natural[K](), opts...)
}

// NewSkipListMapFunc creates an empty skip-list map ordered by the given
// comparator. Returns ErrInvalidMaxLevel if WithMaxLevel is given a value
// outside [1, 32].
func NewSkipListMapFunc[K any, V any](
	comparator compare.Func[K], opts ...SkipListOption,
) (*SkipListMap[K, V], error) {
	config := skipListConfig{maxLevel: DefaultMaxLevel}

	for _, opt := range opts {
		opt(&config)
	}

	if config.maxLevel < 1 || config.maxLevel > 32 {
		return nil, ErrInvalidMaxLevel
	}

	if config.rng == nil {
		// Each map gets its own source so structures in different maps are
		// independent; the seed comes from the auto-seeded global source.
		config.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &SkipListMap[K, V]{
		cmp:      comparator,
		header:   &skipListNode[K, V]{forward: make([]*skipListNode[K, V], config.maxLevel)},
		rng:      config.rng,
		maxLevel: config.maxLevel,
	}, nil
}

// MaxLevel returns the level cap the map was created with.
func (s *SkipListMap[K, V]) MaxLevel() int {
	return s.maxLevel
}

// randomLevel draws a node level: starting at 0, each fair coin toss that
// comes up heads adds a level, capped at maxLevel-1.
func (s *SkipListMap[K, V]) randomLevel() int {
	level := 0
	for level < s.maxLevel-1 && s.rng.Uint64()&1 == 1 {
		level++
	}

	return level
}

// findPredecessors walks from the current top level down to level 0,
// at each level advancing while the next key is strictly less than the
// target, and records the last node visited per level. On return,
// update[i].forward[i] is the first node at level i that is not less than
// key (or nil), so update holds exactly the splice points for an insertion
// or removal at key.
func (s *SkipListMap[K, V]) findPredecessors(key K) []*skipListNode[K, V] {
	update := make([]*skipListNode[K, V], s.maxLevel)
	node := s.header

	for i := s.level; i >= 0; i-- {
		for node.forward[i] != nil && s.cmp(node.forward[i].key, key) == compare.Less {
			node = node.forward[i]
		}

		update[i] = node
	}

	return update
}

// getNode returns the node holding the given key, or nil.
func (s *SkipListMap[K, V]) getNode(key K) *skipListNode[K, V] {
	node := s.header

	for i := s.level; i >= 0; i-- {
		for node.forward[i] != nil && s.cmp(node.forward[i].key, key) == compare.Less {
			node = node.forward[i]
		}
	}

	next := node.forward[0]
	if next != nil && s.cmp(next.key, key) == compare.Equal {
		return next
	}

	return nil
}

// Put inserts a key-value pair into the map.
// If an equal key is already present, its value is replaced in place and no
// level is drawn. Otherwise a new node is spliced into every level up to its
// drawn height, extending the list's current top level if needed.
func (s *SkipListMap[K, V]) Put(key K, value V) {
	update := s.findPredecessors(key)

	next := update[0].forward[0]
	if next != nil && s.cmp(next.key, key) == compare.Equal {
		next.value = value

		return
	}

	level := s.randomLevel()
	if level > s.level {
		for i := s.level + 1; i <= level; i++ {
			update[i] = s.header
		}

		s.level = level
	}

	node := &skipListNode[K, V]{
		key:     key,
		value:   value,
		forward: make([]*skipListNode[K, V], level+1),
	}

	for i := 0; i <= level; i++ {
		node.forward[i] = update[i].forward[i]
		update[i].forward[i] = node
	}

	s.size++
}

// Get retrieves the value for the given key.
func (s *SkipListMap[K, V]) Get(key K) (V, bool) {
	node := s.getNode(key)
	if node == nil {
		return zero.Value[V](), false
	}

	return node.value, true
}

// GetOrElse retrieves the value for the given key, or returns defaultValue if
// the key doesn't exist.
func (s *SkipListMap[K, V]) GetOrElse(key K, defaultValue V) V {
	if value, found := s.Get(key); found {
		return value
	}

	return defaultValue
}

// Update applies f to the stored value for the given key, in place.
// Reports whether the key was present.
func (s *SkipListMap[K, V]) Update(key K, f func(value *V)) bool {
	node := s.getNode(key)
	if node == nil {
		return false
	}

	f(&node.value)

	return true
}

// Contains checks if the given key exists in the map.
func (s *SkipListMap[K, V]) Contains(key K) bool {
	return s.getNode(key) != nil
}

// Remove deletes the entry for the given key.
// Returns the stored value if the key was present, or None otherwise.
// The node is unlinked from every level it participates in, and the list's
// top level is trimmed while its highest lane is empty.
func (s *SkipListMap[K, V]) Remove(key K) optional.Value[V] {
	update := s.findPredecessors(key)

	target := update[0].forward[0]
	if target == nil || s.cmp(target.key, key) != compare.Equal {
		return optional.None[V]()
	}

	for i := 0; i <= s.level; i++ {
		if update[i].forward[i] != target {
			break
		}

		update[i].forward[i] = target.forward[i]
	}

	for s.level > 0 && s.header.forward[s.level] == nil {
		s.level--
	}

	s.size--

	return optional.Some(target.value)
}

// Clear removes all entries from the map, resetting it to empty.
// The header sentinel is retained.
func (s *SkipListMap[K, V]) Clear() {
	s.header.forward = make([]*skipListNode[K, V], s.maxLevel)
	s.level = 0
	s.size = 0
}

// Size returns the number of entries currently stored in the map.
func (s *SkipListMap[K, V]) Size() int {
	return s.size
}

// Min returns the entry with the smallest key, or None if the map is empty.
func (s *SkipListMap[K, V]) Min() optional.Value[Entry[K, V]] {
	first := s.header.forward[0]
	if first == nil {
		return optional.None[Entry[K, V]]()
	}

	return optional.Some(Entry[K, V]{Key: first.key, Value: first.value})
}

// Max returns the entry with the largest key, or None if the map is empty.
// The rightmost node is reached through the express lanes in O(log n).
func (s *SkipListMap[K, V]) Max() optional.Value[Entry[K, V]] {
	node := s.header

	for i := s.level; i >= 0; i-- {
		for node.forward[i] != nil {
			node = node.forward[i]
		}
	}

	if node == s.header {
		return optional.None[Entry[K, V]]()
	}

	return optional.Some(Entry[K, V]{Key: node.key, Value: node.value})
}

// Seq returns an iterator over the map's entries in sorted key order.
// Iteration walks the level-0 list with a plain cursor.
func (s *SkipListMap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for node := s.header.forward[0]; node != nil; node = node.forward[0] {
			if !yield(node.key, node.value) {
				return
			}
		}
	}
}

// Keys returns all keys in the map in sorted order.
func (s *SkipListMap[K, V]) Keys() []K {
	keys := make([]K, 0, s.size)

	for key := range s.Seq() {
		keys = append(keys, key)
	}

	return keys
}

// ForEach applies the given function to each entry in sorted key order.
func (s *SkipListMap[K, V]) ForEach(f func(key K, value V)) {
	for key, value := range s.Seq() {
		f(key, value)
	}
}
