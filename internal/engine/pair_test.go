package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair(7, 3)
	assert.Equal(t, uint64(3), a)
	assert.Equal(t, uint64(7), b)

	// already ordered
	a, b = CanonicalPair(3, 7)
	assert.Equal(t, uint64(3), a)
	assert.Equal(t, uint64(7), b)
}

func TestCounterpart(t *testing.T) {
	c, ok := Counterpart(1, 2, 1)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), c)

	c, ok = Counterpart(1, 2, 2)
	assert.True(t, ok)
	assert.Equal(t, uint64(1), c)

	_, ok = Counterpart(1, 2, 3)
	assert.False(t, ok)
}

func TestSwipeKindValid(t *testing.T) {
	assert.True(t, KindLike.Valid())
	assert.True(t, KindDislike.Valid())
	assert.False(t, SwipeKind("superlike").Valid())
	assert.False(t, SwipeKind("").Valid())
}
