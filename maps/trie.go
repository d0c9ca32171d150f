// This file contains Trie, a byte-indexed prefix tree mapping string keys to
// values.
//
// The path from the root spells the key, one byte per edge; a node marked
// terminal holds the value for the key its path spells. Children are kept in
// sorted byte order, so iteration is lexicographic by key bytes. Removal
// prunes any chain of nodes left non-terminal and childless, so a leaf is
// always terminal.

package maps

import (
	"iter"
	"slices"
	"sort"

	"github.com/CogitatorTech/ordered/optional"
	"github.com/CogitatorTech/ordered/zero"
)

// trieChild is an outgoing edge of a trie node: the byte it consumes and the
// subtree it leads to.
type trieChild[V any] struct {
	node  *trieNode[V]
	label byte
}

// trieNode is a single node of the trie. children is sorted by label; a
// terminal node holds the value for the key spelled by its path.
type trieNode[V any] struct {
	children []trieChild[V]
	value    V
	terminal bool
}

// childIndex finds the position of label within the node's sorted children.
// Returns the index of the first child whose label is not less than the given
// one, and whether that child's label matches.
func (n *trieNode[V]) childIndex(label byte) (int, bool) {
	idx := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].label >= label
	})

	return idx, idx < len(n.children) && n.children[idx].label == label
}

// child returns the child reached by label, or nil.
func (n *trieNode[V]) child(label byte) *trieNode[V] {
	if idx, found := n.childIndex(label); found {
		return n.children[idx].node
	}

	return nil
}

// Trie is a prefix map from string keys to values. Keys are treated as byte
// sequences of arbitrary length; the empty key is a valid key. Beyond the
// usual map operations, a Trie answers prefix queries: whether any key starts
// with a prefix, and enumeration of all entries under a prefix.
type Trie[V any] struct {
	root trieNode[V]
	size int
}

// NewTrie creates an empty trie.
func NewTrie[V any]() *Trie[V] {
	return &Trie[V]{}
}

// getNode returns the node at the end of the given path, or nil if the path
// leaves the tree.
func (t *Trie[V]) getNode(path string) *trieNode[V] {
	node := &t.root

	for i := 0; i < len(path); i++ {
		node = node.child(path[i])
		if node == nil {
			return nil
		}
	}

	return node
}

// Put inserts a key-value pair into the trie, creating nodes along the key's
// path as needed. If the key is already present, its value is replaced in
// place without changing the size.
func (t *Trie[V]) Put(key string, value V) {
	node := &t.root

	for i := 0; i < len(key); i++ {
		idx, found := node.childIndex(key[i])
		if !found {
			node.children = slices.Insert(node.children, idx, trieChild[V]{
				label: key[i],
				node:  &trieNode[V]{},
			})
		}

		node = node.children[idx].node
	}

	if !node.terminal {
		node.terminal = true
		t.size++
	}

	node.value = value
}

// Get retrieves the value for the given key.
func (t *Trie[V]) Get(key string) (V, bool) {
	node := t.getNode(key)
	if node == nil || !node.terminal {
		return zero.Value[V](), false
	}

	return node.value, true
}

// GetOrElse retrieves the value for the given key, or returns defaultValue if
// the key doesn't exist.
func (t *Trie[V]) GetOrElse(key string, defaultValue V) V {
	if value, found := t.Get(key); found {
		return value
	}

	return defaultValue
}

// Update applies f to the stored value for the given key, in place.
// Reports whether the key was present.
func (t *Trie[V]) Update(key string, f func(value *V)) bool {
	node := t.getNode(key)
	if node == nil || !node.terminal {
		return false
	}

	f(&node.value)

	return true
}

// Contains checks if the given key exists in the trie.
func (t *Trie[V]) Contains(key string) bool {
	node := t.getNode(key)

	return node != nil && node.terminal
}

// HasPrefix checks whether a node exists at the given path: that is, whether
// some key starts with the prefix. A key equal to the prefix counts. The
// empty prefix always succeeds, since the root spells it.
func (t *Trie[V]) HasPrefix(prefix string) bool {
	return t.getNode(prefix) != nil
}

// triePathStep records one step of a descent: the node stepped out of and the
// index of the child edge taken, so the path can be unwound for pruning.
type triePathStep[V any] struct {
	node     *trieNode[V]
	childIdx int
}

// Remove deletes the entry for the given key.
// Returns the stored value if the key was present, or None otherwise.
// After unmarking the node, any chain of ancestors left non-terminal and
// childless is pruned; pruning stops at the first ancestor that is terminal
// or retains other children.
func (t *Trie[V]) Remove(key string) optional.Value[V] {
	path := make([]triePathStep[V], 0, len(key))
	node := &t.root

	for i := 0; i < len(key); i++ {
		idx, found := node.childIndex(key[i])
		if !found {
			return optional.None[V]()
		}

		path = append(path, triePathStep[V]{node: node, childIdx: idx})
		node = node.children[idx].node
	}

	if !node.terminal {
		return optional.None[V]()
	}

	removed := node.value
	node.terminal = false
	node.value = zero.Value[V]()
	t.size--

	for i := len(path) - 1; i >= 0; i-- {
		if node.terminal || len(node.children) > 0 {
			break
		}

		parent := path[i].node
		parent.children = slices.Delete(parent.children, path[i].childIdx, path[i].childIdx+1)
		node = parent
	}

	return optional.Some(removed)
}

// Clear removes all entries from the trie, resetting it to empty.
func (t *Trie[V]) Clear() {
	t.root = trieNode[V]{}
	t.size = 0
}

// Size returns the number of entries currently stored in the trie.
func (t *Trie[V]) Size() int {
	return t.size
}

// Seq returns an iterator over all entries in lexicographic key-byte order.
// This enables range-based iteration: for key, value := range t.Seq() { ... }.
func (t *Trie[V]) Seq() iter.Seq2[string, V] {
	return t.WithPrefix("")
}

// WithPrefix returns an iterator over every entry whose key starts with the
// given prefix, in lexicographic key-byte order. Each matching entry is
// yielded exactly once; the yielded keys are freshly built strings.
func (t *Trie[V]) WithPrefix(prefix string) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		node := t.getNode(prefix)
		if node == nil {
			return
		}

		// The key buffer is shared across the whole walk; yielded keys are
		// string snapshots of it.
		buf := append(make([]byte, 0, len(prefix)+8), prefix...)
		trieWalk(node, &buf, yield)
	}
}

// trieWalk walks the subtree rooted at n depth-first, extending and shrinking
// the shared key buffer as it descends and backtracks. Returns false when the
// consumer stopped the traversal.
func trieWalk[V any](n *trieNode[V], buf *[]byte, yield func(string, V) bool) bool {
	if n.terminal {
		if !yield(string(*buf), n.value) {
			return false
		}
	}

	for _, child := range n.children {
		*buf = append(*buf, child.label)

		alive := trieWalk(child.node, buf, yield)
		*buf = (*buf)[:len(*buf)-1]

		if !alive {
			return false
		}
	}

	return true
}

// Keys returns all keys in the trie in lexicographic key-byte order.
func (t *Trie[V]) Keys() []string {
	return t.KeysWithPrefix("")
}

// KeysWithPrefix returns every key that starts with the given prefix, in
// lexicographic key-byte order.
func (t *Trie[V]) KeysWithPrefix(prefix string) []string {
	var keys []string

	for key := range t.WithPrefix(prefix) {
		keys = append(keys, key)
	}

	return keys
}

// ForEach applies the given function to each entry in lexicographic key-byte
// order.
func (t *Trie[V]) ForEach(f func(key string, value V)) {
	for key, value := range t.Seq() {
		f(key, value)
	}
}
