package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRoundState(t *testing.T) {
	table := newRoundTable(t)
	state, _ := startRound(t, table)

	round := EncodeRoundState(state)
	assert.Equal(t, 1, round.RoundCount)
	assert.Equal(t, int64(5), round.SmallBlindAmount)
	assert.Equal(t, StreetPreflop, round.Street)
	assert.Equal(t, 2, round.NextPlayer)
	assert.Equal(t, 2, round.DealerButton)
	assert.Equal(t, 0, round.SmallBlindPos)
	assert.Equal(t, 1, round.BigBlindPos)
	assert.Empty(t, round.CommunityCards)
	require.Len(t, round.Seats, 3)
	assert.Equal(t, int64(95), round.Seats[0].Stack)

	assert.Equal(t, int64(15), round.Pot.Main)
	assert.Empty(t, round.Pot.Side)
}

func TestEncodeRoundStateSidePots(t *testing.T) {
	table := newRoundTable(t)
	state, _ := startRound(t, table)
	state, _ = apply(t, state, ActionRaise, 100)
	state, _ = apply(t, state, ActionCall, 100)

	round := EncodeRoundState(state)
	// Two seats committed 100, the big blind only 10 so far: its 10 is
	// not a side pot boundary until it actually goes all-in.
	require.Len(t, round.Pot.Side, 1)
	assert.Equal(t, int64(210), round.Pot.Side[0].Amount+round.Pot.Main)
}

func TestEncodeActionHistoriesCurrentStreetOnly(t *testing.T) {
	table := newRoundTable(t)
	state, _ := startRound(t, table)

	round := EncodeRoundState(state)
	require.Contains(t, round.ActionHistories, "preflop")
	assert.NotContains(t, round.ActionHistories, "flop")

	// Blind posts come first, in seat order.
	histories := round.ActionHistories["preflop"]
	require.Len(t, histories, 2)
	assert.Equal(t, ActionSmallBlind, histories[0].Action)
	assert.Equal(t, ActionBigBlind, histories[1].Action)
}

func TestEncodeActionHistoriesFrozenAndCurrent(t *testing.T) {
	table := newRoundTable(t)
	state, _ := startRound(t, table)
	state, _ = apply(t, state, ActionCall, 10)
	state, _ = apply(t, state, ActionCall, 10)
	state, _ = apply(t, state, ActionCall, 10)
	require.Equal(t, StreetFlop, state.Street)
	state, _ = apply(t, state, ActionRaise, 10)

	round := EncodeRoundState(state)
	require.Contains(t, round.ActionHistories, "preflop")
	require.Contains(t, round.ActionHistories, "flop")
	assert.NotContains(t, round.ActionHistories, "turn")

	assert.Len(t, round.ActionHistories["preflop"], 5)
	flop := round.ActionHistories["flop"]
	require.Len(t, flop, 1)
	assert.Equal(t, ActionRaise, flop[0].Action)
	assert.Equal(t, int64(10), flop[0].Amount)
}

func TestFlattenInPlayOrder(t *testing.T) {
	perSeat := [][]ActionRecord{
		{{UUID: "a", Amount: 1}, {UUID: "a", Amount: 4}},
		{{UUID: "b", Amount: 2}},
		{{UUID: "c", Amount: 3}, {UUID: "c", Amount: 5}},
	}
	out := flattenInPlayOrder(perSeat)
	require.Len(t, out, 5)
	var order []string
	for _, rec := range out {
		order = append(order, rec.UUID)
	}
	assert.Equal(t, []string{"a", "b", "c", "a", "c"}, order)
}
