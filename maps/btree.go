// This file contains BTreeMap, a balanced multi-way search tree with a
// configurable branching factor.
//
// A B-tree node holds up to degree-1 sorted keys and, when internal, one more
// child than it has keys; child i holds keys strictly between key i-1 and
// key i. All leaves sit at the same depth. Insertion splits full nodes on the
// way down, so a split never cascades upward; deletion refills minimal nodes
// on the way down by borrowing from or merging with a sibling, so a removal
// never has to walk back up. The tree only grows in height through a root
// split and only shrinks through a root collapse.

package maps

import (
	"cmp"
	"iter"
	"slices"
	"sort"

	"github.com/CogitatorTech/ordered/assert"
	"github.com/CogitatorTech/ordered/compare"
	"github.com/CogitatorTech/ordered/optional"
	"github.com/CogitatorTech/ordered/zero"
)

// btreeNode is a single node of the B-tree.
// keys and values are parallel slices sorted by key; children is empty for a
// leaf and holds len(keys)+1 subtrees for an internal node.
type btreeNode[K any, V any] struct {
	keys     []K
	values   []V
	children []*btreeNode[K, V]
}

// leaf reports whether the node has no children.
func (n *btreeNode[K, V]) leaf() bool {
	return len(n.children) == 0
}

// search finds the position of key within the node's sorted keys.
// Returns the index of the first key not less than the given one, and whether
// that key compares Equal. When not found, the index is the child to descend
// into.
func (n *btreeNode[K, V]) search(key K, comparator compare.Func[K]) (int, bool) {
	idx := sort.Search(len(n.keys), func(i int) bool {
		return comparator(n.keys[i], key) != compare.Less
	})

	if idx < len(n.keys) && comparator(n.keys[idx], key) == compare.Equal {
		return idx, true
	}

	return idx, false
}

// BTreeMap is a Map implementation backed by a B-tree.
// The branching factor (the maximum number of children per node) is chosen at
// construction; larger factors make shallower trees with more work per node.
type BTreeMap[K any, V any] struct {
	cmp    compare.Func[K]
	root   *btreeNode[K, V]
	degree int
	size   int
}

// Compile-time check that BTreeMap implements Map.
var _ Map[int, string] = (*BTreeMap[int, string])(nil)

// NewBTreeMap creates an empty B-tree map with the given branching factor,
// ordered by the built-in ordering of K.
// Returns ErrInvalidDegree if degree is less than 3.
func NewBTreeMap[K cmp.Ordered, V any](degree int) (*BTreeMap[K, V], error) {
	return NewBTreeMapFunc[K, V](degree, compare.Natural[K]())
}

// NewBTreeMapFunc creates an empty B-tree map with the given branching factor,
// ordered by the given comparator.
// Returns ErrInvalidDegree if degree is less than 3.
func NewBTreeMapFunc[K any, V any](degree int, comparator compare.Func[K]) (*BTreeMap[K, V], error) {
	if degree < 3 {
		return nil, ErrInvalidDegree
	}

	return &BTreeMap[K, V]{cmp: comparator, degree: degree}, nil
}

// Degree returns the branching factor the map was created with.
func (m *BTreeMap[K, V]) Degree() int {
	return m.degree
}

// maxKeys is the key capacity of a node.
func (m *BTreeMap[K, V]) maxKeys() int {
	return m.degree - 1
}

// minKeys is the minimum key count of a non-root node. This is the classical
// top-down bound: a split of a full node leaves both halves with at least
// minKeys keys, and a merge of two minimal nodes plus their separator fits
// within maxKeys.
func (m *BTreeMap[K, V]) minKeys() int {
	return (m.degree - 2) / 2
}

// getNode locates the node and index holding the given key.
func (m *BTreeMap[K, V]) getNode(key K) (*btreeNode[K, V], int) {
	node := m.root
	for node != nil {
		idx, found := node.search(key, m.cmp)
		if found {
			return node, idx
		}

		if node.leaf() {
			return nil, 0
		}

		node = node.children[idx]
	}

	return nil, 0
}

// Get retrieves the value for the given key.
func (m *BTreeMap[K, V]) Get(key K) (V, bool) {
	node, idx := m.getNode(key)
	if node == nil {
		return zero.Value[V](), false
	}

	return node.values[idx], true
}

// GetOrElse retrieves the value for the given key, or returns defaultValue if
// the key doesn't exist.
func (m *BTreeMap[K, V]) GetOrElse(key K, defaultValue V) V {
	if value, found := m.Get(key); found {
		return value
	}

	return defaultValue
}

// Update applies f to the stored value for the given key, in place.
// Reports whether the key was present.
func (m *BTreeMap[K, V]) Update(key K, f func(value *V)) bool {
	node, idx := m.getNode(key)
	if node == nil {
		return false
	}

	f(&node.values[idx])

	return true
}

// Contains checks if the given key exists in the map.
func (m *BTreeMap[K, V]) Contains(key K) bool {
	node, _ := m.getNode(key)

	return node != nil
}

// Put inserts a key-value pair into the map.
// If an equal key is already present, its value is replaced in place.
// A full root is split before the descent, which is the only way the tree
// grows in height; every other split happens before entering a full child, so
// no split ever cascades upward.
func (m *BTreeMap[K, V]) Put(key K, value V) {
	if m.root == nil {
		m.root = &btreeNode[K, V]{
			keys:   append(make([]K, 0, m.maxKeys()), key),
			values: append(make([]V, 0, m.maxKeys()), value),
		}
		m.size++

		return
	}

	if len(m.root.keys) == m.maxKeys() {
		oldRoot := m.root
		m.root = &btreeNode[K, V]{children: []*btreeNode[K, V]{oldRoot}}
		m.splitChild(m.root, 0)
	}

	if m.putNonFull(m.root, key, value) {
		m.size++
	}
}

// putNonFull inserts key into the subtree rooted at the non-full node n.
// Reports whether a new entry was created (as opposed to updating in place).
func (m *BTreeMap[K, V]) putNonFull(n *btreeNode[K, V], key K, value V) bool {
	idx, found := n.search(key, m.cmp)
	if found {
		n.values[idx] = value

		return false
	}

	if n.leaf() {
		n.keys = slices.Insert(n.keys, idx, key)
		n.values = slices.Insert(n.values, idx, value)

		return true
	}

	if len(n.children[idx].keys) == m.maxKeys() {
		m.splitChild(n, idx)

		// The median moved up into position idx; re-aim at it.
		switch m.cmp(key, n.keys[idx]) {
		case compare.Equal:
			n.values[idx] = value

			return false
		case compare.Greater:
			idx++
		case compare.Less:
		}
	}

	return m.putNonFull(n.children[idx], key, value)
}

// splitChild splits the full child at position idx of parent. The median
// key moves up into the parent and the upper half of the child moves into a
// new sibling inserted just after it. The parent is non-full by precondition,
// so the insertion cannot overflow it.
func (m *BTreeMap[K, V]) splitChild(parent *btreeNode[K, V], idx int) {
	child := parent.children[idx]
	assert.True(len(child.keys) == m.maxKeys(), "splitting a non-full node")

	median := m.maxKeys() / 2

	sibling := &btreeNode[K, V]{
		keys:   append(make([]K, 0, m.maxKeys()), child.keys[median+1:]...),
		values: append(make([]V, 0, m.maxKeys()), child.values[median+1:]...),
	}

	if !child.leaf() {
		sibling.children = append(make([]*btreeNode[K, V], 0, m.degree), child.children[median+1:]...)
		child.children = child.children[:median+1]
	}

	parent.keys = slices.Insert(parent.keys, idx, child.keys[median])
	parent.values = slices.Insert(parent.values, idx, child.values[median])
	parent.children = slices.Insert(parent.children, idx+1, sibling)

	child.keys = child.keys[:median]
	child.values = child.values[:median]
}

// Remove deletes the entry for the given key.
// Returns the stored value if the key was present, or None otherwise.
// Minimal nodes are refilled on the way down, so the removal itself always
// lands in a node that can afford to lose a key.
func (m *BTreeMap[K, V]) Remove(key K) optional.Value[V] {
	if m.root == nil {
		return optional.None[V]()
	}

	removed := m.remove(m.root, key)
	if removed.NonEmpty() {
		m.size--
	}

	// A root left keyless after a merge of its only two children is
	// replaced by that merged child, repeatedly while the new root is keyless
	// too (possible with degree 3); this is the only way height shrinks.
	for m.root != nil && len(m.root.keys) == 0 {
		if m.root.leaf() {
			m.root = nil
		} else {
			m.root = m.root.children[0]
		}
	}

	return removed
}

// remove deletes key from the subtree rooted at n. Except for the root,
// n always holds more than minKeys keys on entry.
func (m *BTreeMap[K, V]) remove(n *btreeNode[K, V], key K) optional.Value[V] {
	idx, found := n.search(key, m.cmp)

	if n.leaf() {
		if !found {
			return optional.None[V]()
		}

		removed := n.values[idx]
		n.keys = slices.Delete(n.keys, idx, idx+1)
		n.values = slices.Delete(n.values, idx, idx+1)

		return optional.Some(removed)
	}

	if found {
		return m.removeFromInternal(n, idx)
	}

	child := n.children[idx]
	if len(child.keys) == m.minKeys() {
		idx = m.ensureCapacity(n, idx)
		child = n.children[idx]
	}

	return m.remove(child, key)
}

// removeFromInternal deletes the key at position idx of the internal node n.
// The key is replaced by its in-order predecessor or successor when the
// adjacent child can afford to lose one; otherwise the key and both adjacent
// children merge into one node and the deletion continues there.
func (m *BTreeMap[K, V]) removeFromInternal(n *btreeNode[K, V], idx int) optional.Value[V] {
	removed := n.values[idx]
	left, right := n.children[idx], n.children[idx+1]

	switch {
	case len(left.keys) > m.minKeys():
		predKey, predValue := maxEntry(left)
		n.keys[idx] = predKey
		n.values[idx] = predValue
		m.remove(left, predKey)
	case len(right.keys) > m.minKeys():
		succKey, succValue := minEntry(right)
		n.keys[idx] = succKey
		n.values[idx] = succValue
		m.remove(right, succKey)
	default:
		key := n.keys[idx]
		m.mergeChildren(n, idx)
		m.remove(left, key)
	}

	return optional.Some(removed)
}

// ensureCapacity makes sure the child at position idx can afford to lose a
// key before the deletion descends into it: borrow from a sibling with spare
// keys, rotating through the parent's separator, or merge with a sibling when
// both sit at the minimum. Returns the index of the child to descend into,
// which shifts left when the merge happens at the right edge.
func (m *BTreeMap[K, V]) ensureCapacity(n *btreeNode[K, V], idx int) int {
	switch {
	case idx > 0 && len(n.children[idx-1].keys) > m.minKeys():
		m.borrowFromLeft(n, idx)
	case idx < len(n.keys) && len(n.children[idx+1].keys) > m.minKeys():
		m.borrowFromRight(n, idx)
	case idx == len(n.keys):
		m.mergeChildren(n, idx-1)

		return idx - 1
	default:
		m.mergeChildren(n, idx)
	}

	return idx
}

// borrowFromLeft rotates the largest entry of the left sibling through the
// parent's separator into the front of the child at idx.
func (m *BTreeMap[K, V]) borrowFromLeft(n *btreeNode[K, V], idx int) {
	child, sibling := n.children[idx], n.children[idx-1]
	last := len(sibling.keys) - 1

	child.keys = slices.Insert(child.keys, 0, n.keys[idx-1])
	child.values = slices.Insert(child.values, 0, n.values[idx-1])

	n.keys[idx-1] = sibling.keys[last]
	n.values[idx-1] = sibling.values[last]
	sibling.keys = sibling.keys[:last]
	sibling.values = sibling.values[:last]

	if !sibling.leaf() {
		child.children = slices.Insert(child.children, 0, sibling.children[len(sibling.children)-1])
		sibling.children = sibling.children[:len(sibling.children)-1]
	}
}

// borrowFromRight rotates the smallest entry of the right sibling through the
// parent's separator onto the back of the child at idx.
func (m *BTreeMap[K, V]) borrowFromRight(n *btreeNode[K, V], idx int) {
	child, sibling := n.children[idx], n.children[idx+1]

	child.keys = append(child.keys, n.keys[idx])
	child.values = append(child.values, n.values[idx])

	n.keys[idx] = sibling.keys[0]
	n.values[idx] = sibling.values[0]
	sibling.keys = slices.Delete(sibling.keys, 0, 1)
	sibling.values = slices.Delete(sibling.values, 0, 1)

	if !sibling.leaf() {
		child.children = append(child.children, sibling.children[0])
		sibling.children = slices.Delete(sibling.children, 0, 1)
	}
}

// mergeChildren merges the child at idx, the separator key at idx, and the
// child at idx+1 into a single node, which ends up at position idx.
func (m *BTreeMap[K, V]) mergeChildren(n *btreeNode[K, V], idx int) {
	left, right := n.children[idx], n.children[idx+1]

	left.keys = append(left.keys, n.keys[idx])
	left.values = append(left.values, n.values[idx])
	left.keys = append(left.keys, right.keys...)
	left.values = append(left.values, right.values...)
	left.children = append(left.children, right.children...)

	assert.True(len(left.keys) <= m.maxKeys(), "merged node overflows")

	n.keys = slices.Delete(n.keys, idx, idx+1)
	n.values = slices.Delete(n.values, idx, idx+1)
	n.children = slices.Delete(n.children, idx+1, idx+2)
}

// Clear removes all entries from the map, resetting it to empty.
func (m *BTreeMap[K, V]) Clear() {
	m.root = nil
	m.size = 0
}

// Size returns the number of entries currently stored in the map.
func (m *BTreeMap[K, V]) Size() int {
	return m.size
}

// Min returns the entry with the smallest key, or None if the map is empty.
func (m *BTreeMap[K, V]) Min() optional.Value[Entry[K, V]] {
	if m.root == nil {
		return optional.None[Entry[K, V]]()
	}

	key, value := minEntry(m.root)

	return optional.Some(Entry[K, V]{Key: key, Value: value})
}

// Max returns the entry with the largest key, or None if the map is empty.
func (m *BTreeMap[K, V]) Max() optional.Value[Entry[K, V]] {
	if m.root == nil {
		return optional.None[Entry[K, V]]()
	}

	key, value := maxEntry(m.root)

	return optional.Some(Entry[K, V]{Key: key, Value: value})
}

// minEntry returns the smallest entry in the subtree rooted at n, which must
// hold at least one key. With degree 3 a non-root node may hold no keys, so
// the answer is the first key of the deepest non-empty node on the leftmost
// path.
func minEntry[K any, V any](n *btreeNode[K, V]) (key K, value V) {
	for {
		if len(n.keys) > 0 {
			key, value = n.keys[0], n.values[0]
		}

		if n.leaf() {
			return key, value
		}

		n = n.children[0]
	}
}

// maxEntry returns the largest entry in the subtree rooted at n, which must
// hold at least one key. With degree 3 a non-root node may hold no keys, so
// the answer is the last key of the deepest non-empty node on the rightmost
// path.
func maxEntry[K any, V any](n *btreeNode[K, V]) (key K, value V) {
	for {
		if len(n.keys) > 0 {
			key, value = n.keys[len(n.keys)-1], n.values[len(n.values)-1]
		}

		if n.leaf() {
			return key, value
		}

		n = n.children[len(n.children)-1]
	}
}

// Seq returns an iterator over the map's entries in sorted key order.
// This enables range-based iteration: for k, v := range m.Seq() { ... }.
func (m *BTreeMap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		btreeInorder(m.root, yield)
	}
}

// btreeInorder walks the subtree rooted at n in key order, yielding each
// entry. Returns false when the consumer stopped the traversal.
func btreeInorder[K any, V any](n *btreeNode[K, V], yield func(K, V) bool) bool {
	if n == nil {
		return true
	}

	if n.leaf() {
		for i := range n.keys {
			if !yield(n.keys[i], n.values[i]) {
				return false
			}
		}

		return true
	}

	for i := range n.keys {
		if !btreeInorder(n.children[i], yield) {
			return false
		}

		if !yield(n.keys[i], n.values[i]) {
			return false
		}
	}

	return btreeInorder(n.children[len(n.keys)], yield)
}

// Keys returns all keys in the map in sorted order.
func (m *BTreeMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.size)

	for key := range m.Seq() {
		keys = append(keys, key)
	}

	return keys
}

// ForEach applies the given function to each entry in sorted key order.
func (m *BTreeMap[K, V]) ForEach(f func(key K, value V)) {
	for key, value := range m.Seq() {
		f(key, value)
	}
}
