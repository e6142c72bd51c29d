package store

import (
	"testing"

	"draw-duel/internal/room"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCRUD(t *testing.T) {
	s := NewMemoryStore()

	_, ok := s.GetRoom("ABC123")
	assert.False(t, ok)

	r := room.NewRoom("ABC123")
	s.SaveRoom(r)

	got, ok := s.GetRoom("ABC123")
	require.True(t, ok)
	assert.Same(t, r, got)
	assert.Len(t, s.Rooms(), 1)

	s.DeleteRoom("ABC123")
	_, ok = s.GetRoom("ABC123")
	assert.False(t, ok)
	assert.Empty(t, s.Rooms())
}
