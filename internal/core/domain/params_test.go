package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBacklogParams(t *testing.T) {
	p := NewBacklogParams(5)

	assert.Equal(t, 5, p.Top)
	assert.Equal(t, 0, p.Skip)
}

func TestBacklogParams_Next(t *testing.T) {
	p := NewBacklogParams(5)

	p = p.Next()
	assert.Equal(t, BacklogParams{Top: 5, Skip: 5}, p)

	p = p.Next()
	assert.Equal(t, BacklogParams{Top: 5, Skip: 10}, p)
}

func TestBacklogParams_Prev_FirstPage(t *testing.T) {
	p := NewBacklogParams(5)

	_, ok := p.Prev()
	assert.False(t, ok, "first page has no previous window")
}

func TestBacklogParams_Prev_UndoesNext(t *testing.T) {
	p := BacklogParams{Top: 5, Skip: 15}

	prev, ok := p.Next().Prev()
	require.True(t, ok)
	assert.Equal(t, p, prev)
}

func TestBacklogParams_Prev_SkipStaysNonNegative(t *testing.T) {
	p := NewBacklogParams(3)
	for i := 0; i < 4; i++ {
		p = p.Next()
	}

	for {
		prev, ok := p.Prev()
		if !ok {
			break
		}
		require.GreaterOrEqual(t, prev.Skip, 0)
		p = prev
	}
	assert.Equal(t, 0, p.Skip)
}
