package poker

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckDraw(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(1)))
	require.Equal(t, 52, deck.Size())

	card, err := deck.DrawCard()
	require.NoError(t, err)
	assert.Equal(t, 51, deck.Size())

	cards, err := deck.DrawCards(3)
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, 48, deck.Size())

	// No duplicates across draws.
	seen := map[Card]bool{card: true}
	for _, c := range cards {
		assert.False(t, seen[c])
		seen[c] = true
	}
}

func TestDeckExhaustion(t *testing.T) {
	deck := NewCheatDeck(NewCard(Spade, RankAce))
	_, err := deck.DrawCard()
	require.NoError(t, err)

	_, err = deck.DrawCard()
	require.ErrorIs(t, err, ErrDeckExhausted)

	deck.Restore()
	_, err = deck.DrawCards(2)
	require.ErrorIs(t, err, ErrDeckExhausted)
	// A failed bulk draw must not consume cards.
	assert.Equal(t, 1, deck.Size())
}

func TestCheatDeckDealsConfiguredOrder(t *testing.T) {
	cards, err := ParseCards("SA", "HK", "D2")
	require.NoError(t, err)
	deck := NewCheatDeck(cards...)

	// Shuffle must not disturb a scripted deck.
	deck.Shuffle()

	for _, want := range cards {
		got, err := deck.DrawCard()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDeckRestore(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(7)))
	deck.Shuffle()
	_, err := deck.DrawCards(10)
	require.NoError(t, err)

	deck.Restore()
	require.Equal(t, 52, deck.Size())

	// A restored deck holds every card exactly once.
	seen := map[int]bool{}
	for deck.Size() > 0 {
		card, err := deck.DrawCard()
		require.NoError(t, err)
		require.False(t, seen[card.ID()])
		seen[card.ID()] = true
	}
	assert.Len(t, seen, 52)
}

func TestCheatDeckRestore(t *testing.T) {
	cards, err := ParseCards("SA", "HK")
	require.NoError(t, err)
	deck := NewCheatDeck(cards...)

	_, err = deck.DrawCards(2)
	require.NoError(t, err)
	deck.Restore()

	got, err := deck.DrawCard()
	require.NoError(t, err)
	assert.Equal(t, cards[0], got)
}
