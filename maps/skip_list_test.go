package maps

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CogitatorTech/ordered/compare"
)

// seededSkipList builds a skip-list map with a deterministic level source so
// tests are reproducible.
func seededSkipList(t *testing.T, opts ...SkipListOption) *SkipListMap[int, string] {
	t.Helper()

	opts = append(opts, WithRandom(rand.New(rand.NewPCG(42, 42))))

	m, err := NewSkipListMap[int, string](opts...)
	require.NoError(t, err)

	return m
}

// checkSkipListInvariants verifies the structural skip-list properties:
// the level-0 list is sorted and holds every entry, each higher level is a
// subsequence of the level below, and the current top level is occupied.
func checkSkipListInvariants[K any, V any](t *testing.T, m *SkipListMap[K, V]) {
	t.Helper()

	// Level 0 is sorted and complete.
	count := 0

	for node := m.header.forward[0]; node != nil; node = node.forward[0] {
		if next := node.forward[0]; next != nil {
			require.Equal(t, compare.Less, m.cmp(node.key, next.key), "level 0 out of order")
		}

		require.LessOrEqual(t, len(node.forward), m.maxLevel)

		count++
	}

	require.Equal(t, m.Size(), count)

	// Each higher level is a subsequence of the level below: every node
	// linked at level i is also linked at level i-1.
	for level := 1; level <= m.level; level++ {
		lower := make(map[*skipListNode[K, V]]bool)
		for node := m.header.forward[level-1]; node != nil; node = node.forward[level-1] {
			lower[node] = true
		}

		for node := m.header.forward[level]; node != nil; node = node.forward[level] {
			require.True(t, lower[node], "node at level %d missing from level %d", level, level-1)
			require.GreaterOrEqual(t, len(node.forward), level+1)
		}
	}

	// The tracked top level is tight: its lane is occupied unless the list
	// is empty.
	if m.level > 0 {
		require.NotNil(t, m.header.forward[m.level], "trailing empty level not trimmed")
	}
}

func TestNewSkipListMap(t *testing.T) {
	t.Parallel()

	t.Run("creates empty map", func(t *testing.T) {
		t.Parallel()

		m, err := NewSkipListMap[int, string]()
		require.NoError(t, err)
		assert.Equal(t, 0, m.Size())
		assert.Equal(t, DefaultMaxLevel, m.MaxLevel())
	})

	t.Run("honors WithMaxLevel", func(t *testing.T) {
		t.Parallel()

		m, err := NewSkipListMap[int, string](WithMaxLevel(16))
		require.NoError(t, err)
		assert.Equal(t, 16, m.MaxLevel())
	})

	t.Run("rejects out-of-range max levels", func(t *testing.T) {
		t.Parallel()

		_, err := NewSkipListMap[int, string](WithMaxLevel(0))
		assert.ErrorIs(t, err, ErrInvalidMaxLevel)

		_, err = NewSkipListMap[int, string](WithMaxLevel(33))
		assert.ErrorIs(t, err, ErrInvalidMaxLevel)
	})

	t.Run("accepts a custom comparator", func(t *testing.T) {
		t.Parallel()

		m, err := NewSkipListMapFunc[string, int](compare.NaturalText())
		require.NoError(t, err)

		m.Put("file10", 10)
		m.Put("file2", 2)

		assert.Equal(t, []string{"file2", "file10"}, m.Keys())
	})
}

func TestSkipListMap_Put(t *testing.T) {
	t.Parallel()

	t.Run("inserts and retrieves", func(t *testing.T) {
		t.Parallel()

		m := seededSkipList(t)
		m.Put(1, "one")

		value, found := m.Get(1)
		assert.True(t, found)
		assert.Equal(t, "one", value)
	})

	t.Run("updates an existing key in place", func(t *testing.T) {
		t.Parallel()

		m := seededSkipList(t)
		m.Put(1, "one")
		m.Put(1, "uno")

		assert.Equal(t, 1, m.Size())
		assert.Equal(t, "uno", m.GetOrElse(1, ""))
	})

	t.Run("keeps invariants under many inserts", func(t *testing.T) {
		t.Parallel()

		m := seededSkipList(t)
		rng := rand.New(rand.NewPCG(5, 6))

		for _, key := range rng.Perm(1000) {
			m.Put(key, "v")
		}

		assert.Equal(t, 1000, m.Size())
		checkSkipListInvariants(t, m)
	})

	t.Run("respects a low level cap", func(t *testing.T) {
		t.Parallel()

		m := seededSkipList(t, WithMaxLevel(1))

		for i := range 100 {
			m.Put(i, "v")
		}

		// With max level 1 every node lives only on level 0.
		assert.Equal(t, 0, m.level)
		checkSkipListInvariants(t, m)
	})
}

func TestSkipListMap_Remove(t *testing.T) {
	t.Parallel()

	t.Run("removes an existing key", func(t *testing.T) {
		t.Parallel()

		m := seededSkipList(t)
		m.Put(1, "one")
		m.Put(2, "two")

		assert.Equal(t, "one", m.Remove(1).GetOrPanic())
		assert.Equal(t, 1, m.Size())
		assert.False(t, m.Contains(1))
		checkSkipListInvariants(t, m)
	})

	t.Run("returns None for a missing key", func(t *testing.T) {
		t.Parallel()

		m := seededSkipList(t)
		m.Put(1, "one")

		assert.True(t, m.Remove(42).Empty())
		assert.Equal(t, 1, m.Size())
	})

	t.Run("trims the top level", func(t *testing.T) {
		t.Parallel()

		m := seededSkipList(t)

		for i := range 500 {
			m.Put(i, "v")
		}

		for i := range 500 {
			require.True(t, m.Remove(i).NonEmpty())
		}

		assert.Equal(t, 0, m.Size())
		assert.Equal(t, 0, m.level)
		checkSkipListInvariants(t, m)
	})
}

func TestSkipListMap_UpdateAndMinMax(t *testing.T) {
	t.Parallel()

	m := seededSkipList(t)

	assert.True(t, m.Min().Empty())
	assert.True(t, m.Max().Empty())

	m.Put(5, "five")
	m.Put(1, "one")
	m.Put(9, "nine")

	assert.Equal(t, Entry[int, string]{Key: 1, Value: "one"}, m.Min().GetOrPanic())
	assert.Equal(t, Entry[int, string]{Key: 9, Value: "nine"}, m.Max().GetOrPanic())

	assert.True(t, m.Update(5, func(v *string) { *v = "FIVE" }))
	assert.Equal(t, "FIVE", m.GetOrElse(5, ""))
	assert.False(t, m.Update(42, func(*string) {}))
}

func TestSkipListMap_Clear(t *testing.T) {
	t.Parallel()

	m := seededSkipList(t)
	m.Put(1, "one")
	m.Put(2, "two")

	m.Clear()

	assert.Equal(t, 0, m.Size())
	assert.Empty(t, m.Keys())

	// The map stays usable after Clear.
	m.Put(3, "three")
	assert.Equal(t, 1, m.Size())
	checkSkipListInvariants(t, m)
}

// Scenario (max level 16): put (10,"ten"), (20,"twenty"), (5,"five"),
// (15,"fifteen"); overwrite 10; iterate in order; remove 20.
func TestSkipListMap_Scenario(t *testing.T) {
	t.Parallel()

	m := seededSkipList(t, WithMaxLevel(16))

	m.Put(10, "ten")
	m.Put(20, "twenty")
	m.Put(5, "five")
	m.Put(15, "fifteen")

	m.Put(10, "updated")
	assert.Equal(t, "updated", m.GetOrElse(10, ""))
	assert.Equal(t, 4, m.Size())

	assert.Equal(t, []int{5, 10, 15, 20}, m.Keys())

	assert.Equal(t, "twenty", m.Remove(20).GetOrPanic())
	_, found := m.Get(20)
	assert.False(t, found)
	assert.Equal(t, 3, m.Size())
	checkSkipListInvariants(t, m)
}

func TestSkipListMap_RandomOperationStream(t *testing.T) {
	t.Parallel()

	m := seededSkipList(t, WithMaxLevel(12))
	rng := rand.New(rand.NewPCG(8, 15))
	reference := make(map[int]string)

	for range 5000 {
		key := rng.IntN(300)

		if rng.IntN(2) == 0 {
			m.Put(key, "v")
			reference[key] = "v"
		} else {
			removed := m.Remove(key)
			_, present := reference[key]
			assert.Equal(t, present, removed.NonEmpty())
			delete(reference, key)
		}

		require.Equal(t, len(reference), m.Size())
	}

	checkSkipListInvariants(t, m)
}
