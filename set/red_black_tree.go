// This file contains RedBlackTreeSet, a self-balancing binary search tree that
// keeps its elements in sorted order with guaranteed O(log n) insertions,
// removals, and lookups.
//
// Red-black trees enforce the following properties to maintain balance:
//  1. Every node is either red or black
//  2. The root is always black
//  3. All leaves (nil nodes) are considered black
//  4. Red nodes cannot have red children (no two consecutive red nodes on any path)
//  5. Every path from root to leaf contains the same number of black nodes
//
// These properties ensure the tree remains approximately balanced, preventing
// the worst-case O(n) behavior of unbalanced binary search trees.

package set

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/CogitatorTech/ordered/assert"
	"github.com/CogitatorTech/ordered/compare"
	"github.com/CogitatorTech/ordered/optional"
)

// color represents the color of a red-black tree node.
type color bool

// String returns a human-readable representation of the node color.
func (c color) String() string {
	switch c {
	case true:
		return "Black"
	default:
		return "Red"
	}
}

// black and red are the two node colors in a red-black tree.
// Black is represented as true so that a zero-valued node is black.
const black, red color = true, false

// rbtNode represents a single node in the red-black tree.
// Each node stores an element, maintains pointers to its children and parent,
// and tracks its color for tree balancing.
type rbtNode[T any] struct {
	value  T
	color  color
	left   *rbtNode[T]
	right  *rbtNode[T]
	parent *rbtNode[T]
}

// String returns a string representation of the node showing its element and color.
func (n *rbtNode[T]) String() string {
	return fmt.Sprintf("(%#v : %s)", n.value, n.color)
}

// isRed returns true if the node is red, false if the node is black or nil.
// nil nodes are considered black by red-black tree convention.
func isRed[T any](n *rbtNode[T]) bool {
	if n == nil {
		return false
	}

	return n.color == red
}

// RedBlackTreeSet is a Set implementation backed by a red-black tree.
// Elements are kept in the order defined by the comparator, and all point
// operations run in O(log n).
type RedBlackTreeSet[T any] struct {
	cmp  compare.Func[T]
	root *rbtNode[T]
	size int
}

// Compile-time check that RedBlackTreeSet implements Set.
var _ Set[int] = (*RedBlackTreeSet[int])(nil)

// NewRedBlackTreeSet creates an empty red-black tree set ordered by the
// built-in ordering of T.
func NewRedBlackTreeSet[T cmp.Ordered]() *RedBlackTreeSet[T] {
	return NewRedBlackTreeSetFunc(compare.Natural[T]())
}

// NewRedBlackTreeSetFunc creates an empty red-black tree set ordered by the
// given comparator.
func NewRedBlackTreeSetFunc[T any](comparator compare.Func[T]) *RedBlackTreeSet[T] {
	return &RedBlackTreeSet[T]{cmp: comparator}
}

// getNode retrieves the node whose element compares Equal to the given one.
// Returns nil if no such node exists.
func (s *RedBlackTreeSet[T]) getNode(element T) *rbtNode[T] {
	node := s.root
	for node != nil {
		switch s.cmp(element, node.value) {
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

// Add inserts an element into the set.
// If an equal element already exists, the stored element is replaced in place
// and Add reports false. Otherwise the new node is inserted red and the tree
// is rebalanced to restore the red-black properties.
func (s *RedBlackTreeSet[T]) Add(element T) bool {
	var parent *rbtNode[T]

	node := s.root
	for node != nil {
		parent = node

		switch s.cmp(element, node.value) {
		case compare.Equal:
			node.value = element

			return false
		case compare.Less:
			node = node.left
		default:
			node = node.right
		}
	}

	newNode := &rbtNode[T]{value: element, color: red, parent: parent}

	switch {
	case parent == nil:
		s.root = newNode
	case s.cmp(element, parent.value) == compare.Less:
		parent.left = newNode
	default:
		parent.right = newNode
	}

	s.fixupAdd(newNode)
	s.size++

	return true
}

// AddAll adds multiple elements to the set and returns the number of elements
// that were newly inserted.
func (s *RedBlackTreeSet[T]) AddAll(elements ...T) int {
	added := 0

	for _, elem := range elements {
		if s.Add(elem) {
			added++
		}
	}

	return added
}

// Contains checks whether an element equal to the given one exists in the set.
func (s *RedBlackTreeSet[T]) Contains(element T) bool {
	return s.getNode(element) != nil
}

// Get returns the stored element that compares Equal to the given one.
// This matters when the comparator looks at only part of the element: the
// returned element carries the fields the lookup key did not.
func (s *RedBlackTreeSet[T]) Get(element T) optional.Value[T] {
	node := s.getNode(element)
	if node == nil {
		return optional.None[T]()
	}

	return optional.Some(node.value)
}

// Remove removes the element equal to the given one from the set.
// Returns the stored element if it was present, or None otherwise.
// After removal the tree is rebalanced to restore the red-black properties.
//
// nolint:varnamelen // Standard red-black tree variable names from CLRS
func (s *RedBlackTreeSet[T]) Remove(element T) optional.Value[T] {
	z := s.getNode(element)
	if z == nil {
		return optional.None[T]()
	}

	removed := z.value

	y := z
	yOriginalColor := y.color

	var x, xParent *rbtNode[T]

	switch {
	case z.left == nil:
		x = z.right
		xParent = z.parent
		s.transplant(z, z.right)
	case z.right == nil:
		x = z.left
		xParent = z.parent
		s.transplant(z, z.left)
	default:
		y = minimumNode(z.right)
		yOriginalColor = y.color
		x = y.right

		if y.parent == z {
			xParent = y

			if x != nil {
				x.parent = y
			}
		} else {
			xParent = y.parent
			s.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}

		s.transplant(z, y)

		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	if yOriginalColor == black {
		s.fixupRemove(x, xParent)
	}

	s.size--

	return optional.Some(removed)
}

// Clear removes all elements from the set, resetting it to empty.
func (s *RedBlackTreeSet[T]) Clear() {
	s.root = nil
	s.size = 0
}

// Size returns the number of elements in the set.
func (s *RedBlackTreeSet[T]) Size() int {
	return s.size
}

// Min returns the smallest element in the set, or None if the set is empty.
func (s *RedBlackTreeSet[T]) Min() optional.Value[T] {
	if s.root == nil {
		return optional.None[T]()
	}

	return optional.Some(minimumNode(s.root).value)
}

// Max returns the largest element in the set, or None if the set is empty.
func (s *RedBlackTreeSet[T]) Max() optional.Value[T] {
	if s.root == nil {
		return optional.None[T]()
	}

	node := s.root
	for node.right != nil {
		node = node.right
	}

	return optional.Some(node.value)
}

// Entries returns all elements in the set as a freshly allocated slice,
// in sorted order.
func (s *RedBlackTreeSet[T]) Entries() []T {
	items := make([]T, 0, s.size)

	for elem := range s.Seq() {
		items = append(items, elem)
	}

	return items
}

// Seq returns an iterator over the set's elements in sorted order.
// This enables range-based iteration: for elem := range s.Seq() { ... }.
func (s *RedBlackTreeSet[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		inorder(s.root, yield)
	}
}

// inorder walks the subtree rooted at node in sorted order, yielding each
// element. Returns false when the consumer stopped the traversal.
func inorder[T any](node *rbtNode[T], yield func(T) bool) bool {
	if node == nil {
		return true
	}

	if !inorder(node.left, yield) {
		return false
	}

	if !yield(node.value) {
		return false
	}

	return inorder(node.right, yield)
}

// ForEach applies the given function to each element in sorted order.
func (s *RedBlackTreeSet[T]) ForEach(f func(element T)) {
	for elem := range s.Seq() {
		f(elem)
	}
}

// Union returns a new set containing all elements from both sets.
// When an element exists in both, the one stored in the other set wins.
func (s *RedBlackTreeSet[T]) Union(other Set[T]) Set[T] {
	out := NewRedBlackTreeSetFunc(s.cmp)

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
func (s *RedBlackTreeSet[T]) Intersection(other Set[T]) Set[T] {
	out := NewRedBlackTreeSetFunc(s.cmp)

	for elem := range s.Seq() {
		if other.Contains(elem) {
			out.Add(elem)
		}
	}

	return out
}

// rotateRight performs a right rotation around node y.
// This is a fundamental operation for rebalancing the tree:
//
//	    y              x
//	   / \            / \
//	  x   C   =>     A   y
//	 / \                / \
//	A   B              B   C
//
// nolint:dupword,varnamelen // ASCII art; standard RB tree variable names
func (s *RedBlackTreeSet[T]) rotateRight(y *rbtNode[T]) {
	if y == nil || y.left == nil {
		return
	}

	x := y.left //nolint:varnamelen // Standard red-black tree variable names from CLRS
	y.left = x.right

	if x.right != nil {
		x.right.parent = y
	}

	x.parent = y.parent

	switch {
	case y.parent == nil:
		s.root = x
	case y == y.parent.left:
		y.parent.left = x
	default:
		y.parent.right = x
	}

	x.right = y
	y.parent = x
}

// rotateLeft performs a left rotation around node x.
// This is a fundamental operation for rebalancing the tree:
//
//	  x                y
//	 / \              / \
//	A   y      =>    x   C
//	   / \          / \
//	  B   C        A   B
//
// nolint:varnamelen // Standard red-black tree variable names
func (s *RedBlackTreeSet[T]) rotateLeft(x *rbtNode[T]) {
	if x == nil || x.right == nil {
		return
	}

	y := x.right //nolint:varnamelen // Standard red-black tree variable names from CLRS
	x.right = y.left

	if y.left != nil {
		y.left.parent = x
	}

	y.parent = x.parent

	switch {
	case x.parent == nil:
		s.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}

	y.left = x
	x.parent = y
}

// transplant replaces the subtree rooted at node u with the subtree rooted at node v.
// This is a helper used during node removal.
func (s *RedBlackTreeSet[T]) transplant(u *rbtNode[T], v *rbtNode[T]) {
	switch {
	case u.parent == nil:
		s.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}

	if v != nil {
		v.parent = u.parent
	}
}

// fixupAdd restores red-black tree properties after inserting a new node.
// New nodes are inserted as red, which may violate the property that red nodes
// cannot have red children. This method fixes violations by recoloring and rotating.
//
// The algorithm handles several cases:
//  1. New node is root - color it black
//  2. Parent is black - no violation, done
//  3. Parent is red:
//     a. Uncle is red - recolor parent, uncle, and grandparent
//     b. Uncle is black - perform rotations and recoloring
//
// The method continues fixing violations up the tree until no violations remain.
// nolint:varnamelen // Standard red-black tree variable names
func (s *RedBlackTreeSet[T]) fixupAdd(z *rbtNode[T]) {
	for z.parent != nil && z.parent.color == red {
		grandparent := z.parent.parent

		if z.parent == grandparent.left { //nolint:nestif // Red-black tree algorithm complexity
			y := grandparent.right
			if isRed(y) {
				z.parent.color = black
				y.color = black
				grandparent.color = red
				z = grandparent
			} else {
				if z == z.parent.right {
					z = z.parent
					s.rotateLeft(z)
				}

				z.parent.color = black
				grandparent.color = red
				s.rotateRight(grandparent)
			}
		} else {
			y := grandparent.left
			if isRed(y) {
				z.parent.color = black
				y.color = black
				grandparent.color = red
				z = grandparent
			} else {
				if z == z.parent.left {
					z = z.parent
					s.rotateRight(z)
				}

				z.parent.color = black
				grandparent.color = red
				s.rotateLeft(grandparent)
			}
		}
	}

	s.root.color = black
}

// fixupRemove restores red-black tree properties after removing a black node.
// Removal can violate the property that all paths from root to leaf have the
// same number of black nodes. This method fixes violations by recoloring and rotating.
//
// x is the node that replaced the removed one and now carries the "double
// black"; it may be nil, so its parent is tracked explicitly.
//
// The algorithm iterates through the four sibling cases:
//  1. Sibling is red - rotate and recolor to create a black sibling
//  2. Sibling is black with two black children - recolor sibling, move problem up
//  3. Sibling is black with a near red child - rotate at the sibling
//  4. Sibling is black with a far red child - rotate at the parent, done
//
// nolint:varnamelen,dupl,nestif // Standard RB tree variable names; symmetric cases
func (s *RedBlackTreeSet[T]) fixupRemove(x *rbtNode[T], parent *rbtNode[T]) {
	for x != s.root && !isRed(x) {
		// A double-black node always has a non-nil sibling: the removed
		// node was black, so its path contributed at least one black node.
		if x == parent.left {
			w := parent.right
			assert.NotNil(w, "double-black node has no right sibling")

			if isRed(w) {
				w.color = black
				parent.color = red
				s.rotateLeft(parent)
				w = parent.right
			}

			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x = parent
				parent = x.parent
			} else {
				if !isRed(w.right) {
					w.left.color = black
					w.color = red
					s.rotateRight(w)
					w = parent.right
				}

				w.color = parent.color
				parent.color = black
				w.right.color = black
				s.rotateLeft(parent)
				x = s.root
			}
		} else {
			w := parent.left
			assert.NotNil(w, "double-black node has no left sibling")

			if isRed(w) {
				w.color = black
				parent.color = red
				s.rotateRight(parent)
				w = parent.left
			}

			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x = parent
				parent = x.parent
			} else {
				if !isRed(w.left) {
					w.right.color = black
					w.color = red
					s.rotateLeft(w)
					w = parent.left
				}

				w.color = parent.color
				parent.color = black
				w.left.color = black
				s.rotateRight(parent)
				x = s.root
			}
		}
	}

	if x != nil {
		x.color = black
	}
}

// minimumNode returns the node with the minimum element in the subtree rooted
// at x. This is always the leftmost node in the subtree.
func minimumNode[T any](x *rbtNode[T]) *rbtNode[T] {
	for x.left != nil {
		x = x.left
	}

	return x
}
