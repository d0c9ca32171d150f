package maps

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkTrieInvariants verifies the structural trie properties: children are
// in strictly increasing label order and no non-terminal node without
// children exists anywhere below the root.
func checkTrieInvariants[V any](t *testing.T, tr *Trie[V]) {
	t.Helper()

	count := checkTrieNode(t, &tr.root, true)
	require.Equal(t, tr.Size(), count)
}

func checkTrieNode[V any](t *testing.T, n *trieNode[V], isRoot bool) int {
	t.Helper()

	if !isRoot && !n.terminal {
		require.NotEmpty(t, n.children, "non-terminal leaf was not pruned")
	}

	count := 0
	if n.terminal {
		count++
	}

	for i, child := range n.children {
		if i > 0 {
			require.Less(t, n.children[i-1].label, child.label, "children out of label order")
		}

		count += checkTrieNode(t, child.node, false)
	}

	return count
}

func TestNewTrie(t *testing.T) {
	t.Parallel()

	tr := NewTrie[int]()
	assert.Equal(t, 0, tr.Size())
	assert.False(t, tr.Contains(""))
}

func TestTrie_Put(t *testing.T) {
	t.Parallel()

	t.Run("inserts and retrieves", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("car", 1)

		value, found := tr.Get("car")
		assert.True(t, found)
		assert.Equal(t, 1, value)
	})

	t.Run("updates an existing key in place", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("car", 1)
		tr.Put("car", 2)

		assert.Equal(t, 1, tr.Size())
		assert.Equal(t, 2, tr.GetOrElse("car", 0))
	})

	t.Run("stores the empty key", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("", 42)

		assert.Equal(t, 1, tr.Size())
		assert.Equal(t, 42, tr.GetOrElse("", 0))
		assert.Equal(t, []string{""}, tr.Keys())
	})

	t.Run("a prefix of a stored key is not itself a key", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("card", 1)

		assert.False(t, tr.Contains("car"))
		assert.True(t, tr.HasPrefix("car"))
	})
}

func TestTrie_HasPrefix(t *testing.T) {
	t.Parallel()

	tr := NewTrie[int]()
	tr.Put("car", 1)
	tr.Put("care", 2)

	assert.True(t, tr.HasPrefix("ca"))
	assert.True(t, tr.HasPrefix("car"))
	assert.True(t, tr.HasPrefix("care"))
	assert.False(t, tr.HasPrefix("carp"))
	assert.False(t, tr.HasPrefix("dog"))

	// The empty prefix is spelled by the root.
	assert.True(t, tr.HasPrefix(""))
}

func TestTrie_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes a key and prunes dead branches", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("car", 1)
		tr.Put("cargo", 2)

		assert.Equal(t, 2, tr.Remove("cargo").GetOrPanic())
		assert.Equal(t, 1, tr.Size())
		assert.True(t, tr.Contains("car"))

		// The "go" suffix chain is gone; "car" ends the branch.
		node := tr.getNode("car")
		require.NotNil(t, node)
		assert.Empty(t, node.children)
		checkTrieInvariants(t, tr)
	})

	t.Run("pruning stops at a terminal ancestor", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("a", 1)
		tr.Put("abc", 2)

		assert.Equal(t, 2, tr.Remove("abc").GetOrPanic())
		assert.True(t, tr.Contains("a"))
		checkTrieInvariants(t, tr)
	})

	t.Run("pruning stops at a branching ancestor", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("abx", 1)
		tr.Put("aby", 2)

		assert.Equal(t, 1, tr.Remove("abx").GetOrPanic())
		assert.True(t, tr.Contains("aby"))
		assert.True(t, tr.HasPrefix("ab"))
		assert.False(t, tr.HasPrefix("abx"))
		checkTrieInvariants(t, tr)
	})

	t.Run("returns None for a missing key", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("car", 1)

		assert.True(t, tr.Remove("ca").Empty())
		assert.True(t, tr.Remove("card").Empty())
		assert.True(t, tr.Remove("dog").Empty())
		assert.Equal(t, 1, tr.Size())
	})

	t.Run("removes the empty key without touching others", func(t *testing.T) {
		t.Parallel()

		tr := NewTrie[int]()
		tr.Put("", 1)
		tr.Put("a", 2)

		assert.Equal(t, 1, tr.Remove("").GetOrPanic())
		assert.Equal(t, 1, tr.Size())
		assert.True(t, tr.Contains("a"))
	})
}

func TestTrie_WithPrefix(t *testing.T) {
	t.Parallel()

	tr := NewTrie[int]()
	tr.Put("car", 1)
	tr.Put("card", 2)
	tr.Put("care", 3)
	tr.Put("dog", 4)

	t.Run("enumerates matching keys in lexicographic order", func(t *testing.T) {
		t.Parallel()

		var keys []string

		for key, value := range tr.WithPrefix("car") {
			keys = append(keys, key)
			assert.Equal(t, tr.GetOrElse(key, 0), value)
		}

		assert.Equal(t, []string{"car", "card", "care"}, keys)
	})

	t.Run("empty prefix enumerates every key", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"car", "card", "care", "dog"}, tr.Keys())
	})

	t.Run("unmatched prefix yields nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, tr.KeysWithPrefix("cat"))
	})

	t.Run("supports early break", func(t *testing.T) {
		t.Parallel()

		var keys []string

		for key := range tr.WithPrefix("car") {
			keys = append(keys, key)
			if len(keys) == 2 {
				break
			}
		}

		assert.Equal(t, []string{"car", "card"}, keys)
	})
}

func TestTrie_Update(t *testing.T) {
	t.Parallel()

	tr := NewTrie[int]()
	tr.Put("car", 1)

	assert.True(t, tr.Update("car", func(v *int) { *v += 10 }))
	assert.Equal(t, 11, tr.GetOrElse("car", 0))
	assert.False(t, tr.Update("dog", func(*int) {}))
}

func TestTrie_Clear(t *testing.T) {
	t.Parallel()

	tr := NewTrie[int]()
	tr.Put("car", 1)
	tr.Put("dog", 2)

	tr.Clear()

	assert.Equal(t, 0, tr.Size())
	assert.Empty(t, tr.Keys())

	tr.Put("cat", 3)
	assert.Equal(t, 1, tr.Size())
}

// Scenario: put "car"=1, "card"=2, "care"=3; prefix checks; remove "card".
func TestTrie_Scenario(t *testing.T) {
	t.Parallel()

	tr := NewTrie[int]()
	tr.Put("car", 1)
	tr.Put("card", 2)
	tr.Put("care", 3)

	assert.Equal(t, 3, tr.Size())
	assert.True(t, tr.HasPrefix("ca"))
	assert.False(t, tr.HasPrefix("carp"))

	assert.Equal(t, 2, tr.Remove("card").GetOrPanic())
	assert.False(t, tr.Contains("card"))
	assert.True(t, tr.Contains("car"))
	assert.True(t, tr.Contains("care"))
	assert.Equal(t, 2, tr.Size())
	checkTrieInvariants(t, tr)
}

func TestTrie_RandomOperationStream(t *testing.T) {
	t.Parallel()

	tr := NewTrie[int]()
	rng := rand.New(rand.NewPCG(30, 60))
	reference := make(map[string]int)

	randomKey := func() string {
		return fmt.Sprintf("%c%c%c", 'a'+rng.IntN(3), 'a'+rng.IntN(3), 'a'+rng.IntN(3))[:1+rng.IntN(3)]
	}

	for i := range 5000 {
		key := randomKey()

		if rng.IntN(2) == 0 {
			tr.Put(key, i)
			reference[key] = i
		} else {
			removed := tr.Remove(key)
			_, present := reference[key]
			assert.Equal(t, present, removed.NonEmpty())
			delete(reference, key)
		}

		require.Equal(t, len(reference), tr.Size())
	}

	checkTrieInvariants(t, tr)

	for key, value := range reference {
		assert.Equal(t, value, tr.GetOrElse(key, -1))
	}
}
