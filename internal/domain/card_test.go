package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCard(t *testing.T) {
	t.Parallel()

	deckID := uuid.New()
	content := json.RawMessage(`{"front":"bonjour","back":"hello"}`)

	t.Run("valid card", func(t *testing.T) {
		t.Parallel()
		card, err := NewCard(deckID, 3, content)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, card.ID)
		assert.Equal(t, deckID, card.DeckID)
		assert.Equal(t, 3, card.Position)
		assert.False(t, card.CreatedAt.IsZero())
	})

	testCases := []struct {
		name     string
		deckID   uuid.UUID
		position int
		content  json.RawMessage
		wantErr  error
	}{
		{"nil deck ID", uuid.Nil, 0, content, ErrCardDeckIDEmpty},
		{"negative position", deckID, -1, content, ErrCardPositionNegative},
		{"empty content", deckID, 0, nil, ErrCardContentEmpty},
		{"malformed content", deckID, 0, json.RawMessage(`{front`), ErrCardContentInvalid},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewCard(tc.deckID, tc.position, tc.content)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
