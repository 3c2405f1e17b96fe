package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBlindLevel(t *testing.T) {
	structure := map[int]BlindLevel{
		3: {Ante: 1, SmallBlind: 10},
		6: {Ante: 2, SmallBlind: 20},
	}

	// Below every threshold the incoming amounts stand.
	ante, sb := UpdateBlindLevel(0, 5, 2, structure)
	assert.Equal(t, int64(0), ante)
	assert.Equal(t, int64(5), sb)

	ante, sb = UpdateBlindLevel(0, 5, 3, structure)
	assert.Equal(t, int64(1), ante)
	assert.Equal(t, int64(10), sb)

	// The highest threshold at or below the round wins.
	ante, sb = UpdateBlindLevel(0, 5, 9, structure)
	assert.Equal(t, int64(2), ante)
	assert.Equal(t, int64(20), sb)

	ante, sb = UpdateBlindLevel(3, 7, 5, nil)
	assert.Equal(t, int64(3), ante)
	assert.Equal(t, int64(7), sb)
}

func TestExcludeShortOfMoneyPlayers(t *testing.T) {
	table := tableWithStacks(100, 100, 100)
	table.DealerButton = 2

	require.NoError(t, ExcludeShortOfMoneyPlayers(table, 0, 5))

	require.True(t, table.BlindPositionsSet())
	assert.Equal(t, 0, table.SBPos())
	assert.Equal(t, 1, table.BBPos())
	assert.Equal(t, 3, table.Seats.CountActivePlayers())
}

func TestExcludeShortOfMoneyPlayersSkipsBrokeSeats(t *testing.T) {
	// Seat 0 cannot post the small blind: it is felted and skipped, the
	// blind walk lands on the next seats that can pay.
	table := tableWithStacks(3, 100, 100)
	table.DealerButton = 2

	require.NoError(t, ExcludeShortOfMoneyPlayers(table, 0, 5))

	assert.Equal(t, 1, table.SBPos())
	assert.Equal(t, 2, table.BBPos())
	assert.Equal(t, int64(0), table.Seats.Players[0].Stack)
	assert.Equal(t, Folded, table.Seats.Players[0].PayInfo.Status)
	assert.Equal(t, 2, table.Seats.CountActivePlayers())
}

func TestExcludeShortOfMoneyPlayersAnteCounts(t *testing.T) {
	// 6 chips cover the blind alone but not blind plus ante.
	table := tableWithStacks(6, 100, 100)
	table.DealerButton = 2

	require.NoError(t, ExcludeShortOfMoneyPlayers(table, 2, 5))

	assert.Equal(t, 1, table.SBPos())
	assert.Equal(t, int64(0), table.Seats.Players[0].Stack)
}

func TestExcludeShortOfMoneyPlayersSoleSurvivor(t *testing.T) {
	// Nobody can cover the big blind after the small blind seat: the
	// survivor takes both blind positions.
	table := tableWithStacks(3, 100, 4, 4)
	table.DealerButton = 0

	require.NoError(t, ExcludeShortOfMoneyPlayers(table, 0, 5))

	assert.Equal(t, 1, table.SBPos())
	assert.Equal(t, 1, table.BBPos())
	for i, p := range table.Seats.Players {
		if i != 1 {
			assert.Equal(t, int64(0), p.Stack, "seat %d", i)
		}
	}
}

func TestExcludeShortOfMoneyPlayersNobodyCanPost(t *testing.T) {
	table := tableWithStacks(3, 2, 4)
	err := ExcludeShortOfMoneyPlayers(table, 0, 5)
	require.ErrorIs(t, err, ErrNoEligibleBlindPoster)
}

func TestExcludeShortOfMoneyPlayersMovesButtonOffBrokeSeat(t *testing.T) {
	// Seat 0 cannot even pay the ante: it is felted and the button moves
	// on before the blind walk starts.
	table := tableWithStacks(1, 100, 100)
	table.DealerButton = 0

	require.NoError(t, ExcludeShortOfMoneyPlayers(table, 2, 5))

	assert.Equal(t, 1, table.DealerButton)
	assert.Equal(t, 2, table.SBPos())
	assert.Equal(t, 1, table.BBPos())
	assert.Equal(t, int64(0), table.Seats.Players[0].Stack)
}
