package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thealienated1/Notefied/internal/api"
)

func TestUndoBufferConsumeOnce(t *testing.T) {
	b := NewUndoBuffer()

	_, ok := b.Consume()
	assert.False(t, ok, "undo with empty buffer is a no-op")

	b.Evict(api.Note{ID: "n1", Content: "body"})

	n, ok := b.Peek()
	require.True(t, ok)
	assert.Equal(t, "n1", n.ID)

	n, ok = b.Consume()
	require.True(t, ok)
	assert.Equal(t, "body", n.Content)

	_, ok = b.Consume()
	assert.False(t, ok, "consume empties the buffer")
}

func TestUndoBufferEvictOverwrites(t *testing.T) {
	b := NewUndoBuffer()
	b.Evict(api.Note{ID: "first"})
	b.Evict(api.Note{ID: "second"})

	n, ok := b.Consume()
	require.True(t, ok)
	assert.Equal(t, "second", n.ID, "only the most recent note is recoverable")
}

func TestUndoBufferClear(t *testing.T) {
	b := NewUndoBuffer()
	b.Evict(api.Note{ID: "n1"})
	b.Clear()

	_, ok := b.Consume()
	assert.False(t, ok)
}
