// This file contains TreapMap, a randomized binary search tree that is
// simultaneously ordered by key and max-heap ordered by a per-node priority.
//
// Priorities are drawn at random when entries are inserted, so the tree's
// shape is a random permutation's BST regardless of insertion order and its
// expected height is O(log n). All structural surgery reduces to two
// primitives: split, which partitions a treap around a key, and merge, which
// joins two treaps whose key ranges don't overlap.

package maps

import (
	"cmp"
	crand "crypto/rand"
	"encoding/binary"
	"iter"
	"math/rand/v2"

	"github.com/CogitatorTech/ordered/assert"
	"github.com/CogitatorTech/ordered/compare"
	"github.com/CogitatorTech/ordered/optional"
	"github.com/CogitatorTech/ordered/zero"
)

// treapNode is a single node of the treap.
type treapNode[K any, V any] struct {
	key      K
	value    V
	priority uint32
	left     *treapNode[K, V]
	right    *treapNode[K, V]
}

// TreapMap is a Map implementation backed by a treap (cartesian tree).
type TreapMap[K any, V any] struct {
	cmp      compare.Func[K]
	root     *treapNode[K, V]
	priority func() uint32
	size     int
}

// Compile-time check that TreapMap implements Map.
var _ Map[int, string] = (*TreapMap[int, string])(nil)

// TreapOption configures a TreapMap at construction.
type TreapOption func(*treapConfig)

type treapConfig struct {
	priority func() uint32
}

// WithPrioritySource supplies the source of node priorities.
// Injecting a deterministic source makes the tree's shape reproducible,
// which is how the tests pin down structure.
func WithPrioritySource(source func() uint32) TreapOption {
	return func(c *treapConfig) {
		c.priority = source
	}
}

// NewTreapMap creates an empty treap map ordered by the built-in ordering of K.
func NewTreapMap[K cmp.Ordered, V any](opts ...TreapOption) *TreapMap[K, V] {
	return NewTreapMapFunc[K, V](compare.Natural[K](), opts...)
}

// NewTreapMapFunc creates an empty treap map ordered by the given comparator.
func NewTreapMapFunc[K any, V any](comparator compare.Func[K], opts ...TreapOption) *TreapMap[K, V] {
	config := treapConfig{priority: cryptoPriority}

	for _, opt := range opts {
		opt(&config)
	}

	return &TreapMap[K, V]{cmp: comparator, priority: config.priority}
}

// cryptoPriority draws a 32-bit priority from the operating system's
// cryptographically strong source, falling back to the auto-seeded
// math/rand/v2 source if that fails.
func cryptoPriority() uint32 {
	var buf [4]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return rand.Uint32()
	}

	return binary.LittleEndian.Uint32(buf[:])
}

// getNode returns the node holding the given key, or nil.
func (t *TreapMap[K, V]) getNode(key K) *treapNode[K, V] {
	node := t.root
	for node != nil {
		switch t.cmp(key, node.key) {
		case compare.Equal:
			return node
		case compare.Less:
			node = node.left
		default:
			node = node.right
		}
	}

	return nil
}

// Put inserts a key-value pair into the map, drawing the new entry's priority
// from the map's random source. If an equal key is already present, its value
// is replaced in place and its priority is untouched.
func (t *TreapMap[K, V]) Put(key K, value V) {
	t.PutWithPriority(key, value, t.priority())
}

// PutWithPriority inserts a key-value pair with an explicit priority.
// If an equal key is already present, its value is replaced in place and the
// given priority is ignored. Otherwise the new node descends by key until its
// priority dominates, at which point the subtree there is split around the
// new key and the node takes its place with the two halves as children.
func (t *TreapMap[K, V]) PutWithPriority(key K, value V, priority uint32) {
	if node := t.getNode(key); node != nil {
		node.value = value

		return
	}

	t.root = t.insert(t.root, &treapNode[K, V]{key: key, value: value, priority: priority})
	t.size++
}

// insert places newNode into the subtree rooted at n and returns the new
// subtree root. newNode's key is not present in the subtree.
func (t *TreapMap[K, V]) insert(n *treapNode[K, V], newNode *treapNode[K, V]) *treapNode[K, V] {
	if n == nil {
		return newNode
	}

	if newNode.priority > n.priority {
		newNode.left, newNode.right = t.split(n, newNode.key)

		return newNode
	}

	if t.cmp(newNode.key, n.key) == compare.Less {
		n.left = t.insert(n.left, newNode)
	} else {
		n.right = t.insert(n.right, newNode)
	}

	return n
}

// split partitions the subtree rooted at n into two treaps: one holding every
// key less than the pivot and one holding every key not less than it.
func (t *TreapMap[K, V]) split(n *treapNode[K, V], pivot K) (*treapNode[K, V], *treapNode[K, V]) {
	if n == nil {
		return nil, nil
	}

	if t.cmp(n.key, pivot) == compare.Less {
		left, right := t.split(n.right, pivot)
		n.right = left

		return n, right
	}

	left, right := t.split(n.left, pivot)
	n.left = right

	return left, n
}

// merge joins two treaps into one, choosing the higher-priority root at each
// step. Every key in left must be strictly less than every key in right.
func (t *TreapMap[K, V]) merge(left, right *treapNode[K, V]) *treapNode[K, V] {
	if left == nil {
		return right
	}

	if right == nil {
		return left
	}

	assert.True(t.cmp(left.key, right.key) == compare.Less, "merging treaps with overlapping key ranges")

	if left.priority >= right.priority {
		left.right = t.merge(left.right, right)

		return left
	}

	right.left = t.merge(left, right.left)

	return right
}

// Get retrieves the value for the given key.
func (t *TreapMap[K, V]) Get(key K) (V, bool) {
	node := t.getNode(key)
	if node == nil {
		return zero.Value[V](), false
	}

	return node.value, true
}

// GetOrElse retrieves the value for the given key, or returns defaultValue if
// the key doesn't exist.
func (t *TreapMap[K, V]) GetOrElse(key K, defaultValue V) V {
	if value, found := t.Get(key); found {
		return value
	}

	return defaultValue
}

// Update applies f to the stored value for the given key, in place.
// Reports whether the key was present.
func (t *TreapMap[K, V]) Update(key K, f func(value *V)) bool {
	node := t.getNode(key)
	if node == nil {
		return false
	}

	f(&node.value)

	return true
}

// Contains checks if the given key exists in the map.
func (t *TreapMap[K, V]) Contains(key K) bool {
	return t.getNode(key) != nil
}

// Remove deletes the entry for the given key.
// Returns the stored value if the key was present, or None otherwise.
// The removed node is replaced by the merge of its two subtrees.
func (t *TreapMap[K, V]) Remove(key K) optional.Value[V] {
	removed := optional.None[V]()
	t.root = t.remove(t.root, key, &removed)

	if removed.NonEmpty() {
		t.size--
	}

	return removed
}

// remove deletes key from the subtree rooted at n and returns the new
// subtree root, recording the removed value when the key is found.
func (t *TreapMap[K, V]) remove(
	n *treapNode[K, V], key K, removed *optional.Value[V],
) *treapNode[K, V] {
	if n == nil {
		return nil
	}

	switch t.cmp(key, n.key) {
	case compare.Less:
		n.left = t.remove(n.left, key, removed)

		return n
	case compare.Greater:
		n.right = t.remove(n.right, key, removed)

		return n
	default:
		*removed = optional.Some(n.value)

		return t.merge(n.left, n.right)
	}
}

// Clear removes all entries from the map, resetting it to empty.
func (t *TreapMap[K, V]) Clear() {
	t.root = nil
	t.size = 0
}

// Size returns the number of entries currently stored in the map.
func (t *TreapMap[K, V]) Size() int {
	return t.size
}

// Min returns the entry with the smallest key, or None if the map is empty.
func (t *TreapMap[K, V]) Min() optional.Value[Entry[K, V]] {
	if t.root == nil {
		return optional.None[Entry[K, V]]()
	}

	node := t.root
	for node.left != nil {
		node = node.left
	}

	return optional.Some(Entry[K, V]{Key: node.key, Value: node.value})
}

// Max returns the entry with the largest key, or None if the map is empty.
func (t *TreapMap[K, V]) Max() optional.Value[Entry[K, V]] {
	if t.root == nil {
		return optional.None[Entry[K, V]]()
	}

	node := t.root
	for node.right != nil {
		node = node.right
	}

	return optional.Some(Entry[K, V]{Key: node.key, Value: node.value})
}

// Seq returns an iterator over the map's entries in sorted key order.
func (t *TreapMap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		treapInorder(t.root, yield)
	}
}

// treapInorder walks the subtree rooted at n in key order, yielding each
// entry. Returns false when the consumer stopped the traversal.
func treapInorder[K any, V any](n *treapNode[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}

	if !treapInorder(n.left, yield) {
		return false
	}

	if !yield(n.key, n.value) {
		return false
	}

	return treapInorder(n.right, yield)
}

// Keys returns all keys in the map in sorted order.
func (t *TreapMap[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)

	for key := range t.Seq() {
		keys = append(keys, key)
	}

	return keys
}

// ForEach applies the given function to each entry in sorted key order.
func (t *TreapMap[K, V]) ForEach(f func(key K, value V)) {
	for key, value := range t.Seq() {
		f(key, value)
	}
}
