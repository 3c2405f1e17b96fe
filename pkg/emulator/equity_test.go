package emulator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokercore/holdem/pkg/poker"
)

func TestEstimateHoleCardWinRateAcesHeadsUp(t *testing.T) {
	hole, err := poker.ParseCards("SA", "HA")
	require.NoError(t, err)

	rate, err := EstimateHoleCardWinRate(2000, 2, hole, nil, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// Pocket aces heads up win roughly 85% of the time; anything near
	// the 50% breakeven would mean the trials are broken.
	assert.Greater(t, rate, 0.7)
	assert.LessOrEqual(t, rate, 1.0)
}

func TestEstimateHoleCardWinRateTrashIsBelowAces(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	aces, err := poker.ParseCards("SA", "HA")
	require.NoError(t, err)
	trash, err := poker.ParseCards("S7", "H2")
	require.NoError(t, err)

	aceRate, err := EstimateHoleCardWinRate(2000, 4, aces, nil, rng)
	require.NoError(t, err)
	trashRate, err := EstimateHoleCardWinRate(2000, 4, trash, nil, rng)
	require.NoError(t, err)

	assert.Greater(t, aceRate, trashRate)
}

func TestEstimateHoleCardWinRateWithFixedBoard(t *testing.T) {
	// Hero flopped the nut flush: near-locked equity.
	hole, err := poker.ParseCards("SA", "SK")
	require.NoError(t, err)
	board, err := poker.ParseCards("S2", "S7", "SJ")
	require.NoError(t, err)

	rate, err := EstimateHoleCardWinRate(500, 2, hole, board, rand.New(rand.NewSource(3)))
	require.NoError(t, err)
	assert.Greater(t, rate, 0.9)
}

func TestEstimateHoleCardWinRateIsDeterministicPerSeed(t *testing.T) {
	hole, err := poker.ParseCards("DQ", "CJ")
	require.NoError(t, err)

	a, err := EstimateHoleCardWinRate(300, 3, hole, nil, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := EstimateHoleCardWinRate(300, 3, hole, nil, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEstimateHoleCardWinRateRejectsBadInput(t *testing.T) {
	hole, err := poker.ParseCards("SA", "HA")
	require.NoError(t, err)

	_, err = EstimateHoleCardWinRate(100, 2, hole[:1], nil, nil)
	require.Error(t, err)

	_, err = EstimateHoleCardWinRate(0, 2, hole, nil, nil)
	require.Error(t, err)

	_, err = EstimateHoleCardWinRate(100, 1, hole, nil, nil)
	require.Error(t, err)
}
