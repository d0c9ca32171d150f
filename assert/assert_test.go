//go:build !assertions_disabled

package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrue(t *testing.T) {
	t.Parallel()

	t.Run("passes on true", func(t *testing.T) {
		t.Parallel()

		assert.NotPanics(t, func() {
			True(true)
		})
	})

	t.Run("panics on false", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "assertion failed", func() {
			True(false)
		})
	})

	t.Run("formats the panic message", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "index 7 out of range", func() {
			True(false, "index %d out of range", 7)
		})
	})

	t.Run("handles non-string first arg", func(t *testing.T) {
		t.Parallel()

		assert.PanicsWithValue(t, "assertion failed: [7]", func() {
			True(false, 7)
		})
	})
}

func TestFalse(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		False(false)
	})
	assert.Panics(t, func() {
		False(true)
	})
}

func TestNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Nil(nil)
	})
	assert.Panics(t, func() {
		Nil(42)
	})
}

func TestNotNil(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		NotNil(42)
	})
	assert.Panics(t, func() {
		NotNil(nil)
	})
}
