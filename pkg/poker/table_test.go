package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableWithStacks(stacks ...int64) *Table {
	table := NewTable(nil)
	for _, p := range newBettingPlayers(stacks...) {
		table.Seats.SitDown(p)
	}
	return table
}

func TestBlindPositions(t *testing.T) {
	table := tableWithStacks(100, 100, 100)
	assert.False(t, table.BlindPositionsSet())

	table.SetBlindPositions(0, 1)
	require.True(t, table.BlindPositionsSet())
	assert.Equal(t, 0, table.SBPos())
	assert.Equal(t, 1, table.BBPos())
}

func TestCommunityCardsCapped(t *testing.T) {
	table := NewTable(nil)
	for _, c := range mustCards(t, "C2", "C3", "C4", "C5", "C6") {
		require.NoError(t, table.AddCommunityCard(c))
	}
	err := table.AddCommunityCard(NewCard(Club, 7))
	require.ErrorIs(t, err, ErrCommunityCardsFull)
	assert.Len(t, table.CommunityCards(), 5)
}

func TestCommunityCardsReturnsCopy(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.AddCommunityCard(NewCard(Club, 2)))
	cards := table.CommunityCards()
	cards[0] = NewCard(Spade, RankAce)
	assert.Equal(t, NewCard(Club, 2), table.CommunityCards()[0])
}

func TestNextActivePlayerPos(t *testing.T) {
	table := tableWithStacks(100, 100, 100)
	assert.Equal(t, 1, table.NextActivePlayerPos(0))
	assert.Equal(t, 0, table.NextActivePlayerPos(2))

	// Folded and broke seats are skipped.
	table.Seats.Players[1].PayInfo.UpdateToFold()
	assert.Equal(t, 2, table.NextActivePlayerPos(0))
	table.Seats.Players[2].Stack = 0
	assert.Equal(t, 0, table.NextActivePlayerPos(0))
}

func TestNextAskWaitingPlayerPos(t *testing.T) {
	table := tableWithStacks(100, 100, 100)
	table.Seats.Players[1].PayInfo.UpdateToAllIn()
	assert.Equal(t, 2, table.NextAskWaitingPlayerPos(0))

	// Street starts search from one seat before the small blind, which
	// may be position -1.
	assert.Equal(t, 0, table.NextAskWaitingPlayerPos(-1))

	table.Seats.Players[0].PayInfo.UpdateToFold()
	table.Seats.Players[2].PayInfo.UpdateToFold()
	assert.Equal(t, NoPlayer, table.NextAskWaitingPlayerPos(0))
}

func TestShiftDealerButton(t *testing.T) {
	table := tableWithStacks(100, 0, 100)
	table.ShiftDealerButton()
	assert.Equal(t, 2, table.DealerButton)
}

func TestTableReset(t *testing.T) {
	table := tableWithStacks(100, 100, 100)
	table.SetBlindPositions(0, 1)
	require.NoError(t, table.AddCommunityCard(NewCard(Club, 2)))

	p := table.Seats.Players[0]
	require.NoError(t, p.AddHoleCards(mustCards(t, "SA", "SK")))
	p.AddBlindHistory(true, 5)
	p.PayInfo.UpdateByPay(5)
	_, err := table.Deck.DrawCards(10)
	require.NoError(t, err)

	table.Reset()

	assert.Empty(t, table.CommunityCards())
	assert.Equal(t, 52, table.Deck.Size())
	assert.Nil(t, p.HoleCards)
	assert.Nil(t, p.ActionHistories)
	assert.Equal(t, PayInfo{}, p.PayInfo)
	// Stacks and seating survive a reset.
	assert.Equal(t, int64(100), p.Stack)
	assert.Equal(t, 3, table.Seats.Size())
}
