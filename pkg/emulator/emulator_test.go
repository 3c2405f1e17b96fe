package emulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokercore/holdem/pkg/poker"
)

// callStation always calls whatever the table asks for.
type callStation struct {
	poker.BaseStrategy
}

func (callStation) DeclareAction(valid []poker.ValidAction, _ []poker.Card, _ poker.RoundState) (poker.ActionType, int64) {
	return poker.ActionCall, valid[1].Amount
}

// instaFolder folds every single hand.
type instaFolder struct {
	poker.BaseStrategy
}

func (instaFolder) DeclareAction([]poker.ValidAction, []poker.Card, poker.RoundState) (poker.ActionType, int64) {
	return poker.ActionFold, 0
}

func twoSeatEmulator(maxRound int) (*Emulator, *poker.GameState) {
	e := New()
	e.SetGameRule(2, maxRound, 5, 0)
	e.RegisterPlayer("uuid-a", callStation{})
	e.RegisterPlayer("uuid-b", callStation{})
	state := e.GenerateInitialGameState([]PlayerInfo{
		{UUID: "uuid-a", Name: "alice", Stack: 100},
		{UUID: "uuid-b", Name: "bob", Stack: 100},
	})
	return e, state
}

func totalStacks(state *poker.GameState) int64 {
	var sum int64
	for _, p := range state.Table.Seats.Players {
		sum += p.Stack + p.PayInfo.Amount
	}
	return sum
}

func TestGenerateInitialGameState(t *testing.T) {
	_, state := twoSeatEmulator(3)
	assert.Equal(t, 0, state.RoundCount)
	assert.Equal(t, poker.NoPlayer, state.NextPlayer)
	assert.Equal(t, 1, state.Table.DealerButton)
	assert.Equal(t, 2, state.Table.Seats.Size())
}

func TestStartNewRoundShiftsButtonAndDeals(t *testing.T) {
	e, state := twoSeatEmulator(3)
	state, events, err := e.StartNewRound(state)
	require.NoError(t, err)

	assert.Equal(t, 1, state.RoundCount)
	assert.Equal(t, 0, state.Table.DealerButton)
	assert.Equal(t, poker.StreetPreflop, state.Street)
	assert.Equal(t, int64(200), totalStacks(state))

	// Round-start deals are filtered out; the flow events remain.
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.NotEqual(t, poker.EventRoundStart, ev.Kind())
		assert.NotEqual(t, poker.EventGameUpdate, ev.Kind())
	}
	assert.Equal(t, poker.EventAsk, events[len(events)-1].Kind())
}

func TestGeneratePossibleActions(t *testing.T) {
	e, state := twoSeatEmulator(3)
	state, _, err := e.StartNewRound(state)
	require.NoError(t, err)

	actions := e.GeneratePossibleActions(state)
	require.Len(t, actions, 3)
	assert.Equal(t, poker.ActionFold, actions[0].Action)
	assert.Equal(t, int64(10), actions[1].Amount)

	// Same question, same answer.
	assert.Equal(t, actions, e.GeneratePossibleActions(state))
}

func TestApplyActionStepByStep(t *testing.T) {
	e, state := twoSeatEmulator(3)
	state, _, err := e.StartNewRound(state)
	require.NoError(t, err)

	for state.Street != poker.StreetFinished {
		actions := e.GeneratePossibleActions(state)
		state, _, err = e.ApplyAction(state, poker.ActionCall, actions[1].Amount)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, state.RoundCount)
	assert.Equal(t, int64(200), totalStacks(state))
}

func TestApplyActionRollsIntoNextRound(t *testing.T) {
	e, state := twoSeatEmulator(5)
	state, _, err := e.StartNewRound(state)
	require.NoError(t, err)

	// Fold the first hand closed, then act again: the emulator starts
	// round two on its own before applying the action.
	state, _, err = e.ApplyAction(state, poker.ActionFold, 0)
	require.NoError(t, err)
	require.Equal(t, poker.StreetFinished, state.Street)

	state, _, err = e.ApplyAction(state, poker.ActionFold, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, state.RoundCount)
}

func TestApplyActionAfterMaxRoundFails(t *testing.T) {
	e, state := twoSeatEmulator(1)
	state, _, err := e.StartNewRound(state)
	require.NoError(t, err)

	state, _, err = e.ApplyAction(state, poker.ActionFold, 0)
	require.NoError(t, err)
	require.Equal(t, poker.StreetFinished, state.Street)

	_, _, err = e.ApplyAction(state, poker.ActionFold, 0)
	require.ErrorIs(t, err, ErrGameFinished)
}

func TestRunUntilRoundFinish(t *testing.T) {
	e, state := twoSeatEmulator(3)
	state, _, err := e.StartNewRound(state)
	require.NoError(t, err)

	state, events, err := e.RunUntilRoundFinish(state)
	require.NoError(t, err)

	assert.Equal(t, poker.StreetFinished, state.Street)
	assert.Equal(t, int64(200), totalStacks(state))
	require.NotEmpty(t, events)
	assert.Equal(t, poker.EventRoundResult, events[len(events)-1].Kind())
}

func TestRunUntilGameFinishByRoundBudget(t *testing.T) {
	e, state := twoSeatEmulator(3)
	state, _, err := e.StartNewRound(state)
	require.NoError(t, err)

	state, events, err := e.RunUntilGameFinish(state)
	require.NoError(t, err)

	assert.Equal(t, 3, state.RoundCount)
	require.NotEmpty(t, events)
	result, ok := events[len(events)-1].(poker.GameResultEvent)
	require.True(t, ok)
	require.Len(t, result.Seats, 2)
	assert.Equal(t, int64(200), result.Seats[0].Stack+result.Seats[1].Stack)
}

func TestRunUntilGameFinishBySoleSurvivor(t *testing.T) {
	e := New()
	e.SetGameRule(2, 1000, 5, 0)
	e.RegisterPlayer("uuid-a", callStation{})
	e.RegisterPlayer("uuid-b", instaFolder{})
	state := e.GenerateInitialGameState([]PlayerInfo{
		{UUID: "uuid-a", Name: "alice", Stack: 100},
		{UUID: "uuid-b", Name: "bob", Stack: 30},
	})

	state, events, err := e.RunUntilGameFinish(state)
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, poker.EventGameResult, events[len(events)-1].Kind())
	// Bob folded every hand until the blinds ate his stack; no chips
	// left the table on the way.
	assert.Less(t, state.RoundCount, 1000)
	assert.Equal(t, int64(130), totalStacks(state))
}

func TestBlindStructureApplies(t *testing.T) {
	e, state := twoSeatEmulator(5)
	e.SetBlindStructure(map[int]poker.BlindLevel{1: {Ante: 0, SmallBlind: 20}})

	state, _, err := e.StartNewRound(state)
	require.NoError(t, err)

	assert.Equal(t, int64(20), state.SmallBlindAmount)
	players := state.Table.Seats.Players
	assert.Equal(t, int64(80), players[state.Table.SBPos()].Stack)
	assert.Equal(t, int64(60), players[state.Table.BBPos()].Stack)
}

func TestFetchPlayer(t *testing.T) {
	e := New()
	s := callStation{}
	e.RegisterPlayer("uuid-a", s)

	got, err := e.FetchPlayer("uuid-a")
	require.NoError(t, err)
	assert.Equal(t, poker.Strategy(s), got)

	_, err = e.FetchPlayer("nobody")
	require.Error(t, err)
}
