package emulator

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/pokercore/holdem/pkg/poker"
)

// Monte Carlo hole-card equity. Each trial fills the board to five from
// the unseen cards, deals random hole cards to the opponents and scores
// everyone; ties count as wins for the hero.

// EstimateHoleCardWinRate estimates the chance the given hole cards win
// at showdown against nbPlayer-1 random opponents, over nbSimulation
// runouts. community may fix 0..5 board cards. A nil rng seeds from the
// clock.
func EstimateHoleCardWinRate(nbSimulation, nbPlayer int, hole, community []poker.Card, rng *rand.Rand) (float64, error) {
	if len(hole) != 2 {
		return 0, errors.Errorf("emulator: equity needs exactly 2 hole cards, got %d", len(hole))
	}
	if nbSimulation <= 0 || nbPlayer < 2 {
		return 0, errors.Errorf("emulator: bad simulation parameters (%d trials, %d players)", nbSimulation, nbPlayer)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	wins := 0
	for i := 0; i < nbSimulation; i++ {
		won, err := montecarloTrial(nbPlayer, hole, community, rng)
		if err != nil {
			return 0, err
		}
		if won {
			wins++
		}
	}
	return float64(wins) / float64(nbSimulation), nil
}

func montecarloTrial(nbPlayer int, hole, community []poker.Card, rng *rand.Rand) (bool, error) {
	need := (5 - len(community)) + (nbPlayer-1)*2
	drawn, err := pickUnusedCards(need, append(append([]poker.Card{}, hole...), community...), rng)
	if err != nil {
		return false, err
	}
	board := append(append([]poker.Card{}, community...), drawn[:5-len(community)]...)
	opponents := drawn[5-len(community):]

	myScore := poker.EvalHand(hole, board)
	for i := 0; i < nbPlayer-1; i++ {
		oppHole := opponents[2*i : 2*i+2]
		if poker.EvalHand(oppHole, board) > myScore {
			return false, nil
		}
	}
	return true, nil
}

// pickUnusedCards samples n distinct cards uniformly from the deck minus
// the used ones.
func pickUnusedCards(n int, used []poker.Card, rng *rand.Rand) ([]poker.Card, error) {
	usedIDs := make(map[int]bool, len(used))
	for _, c := range used {
		usedIDs[c.ID()] = true
	}
	pool := make([]poker.Card, 0, 52-len(used))
	for id := 1; id <= 52; id++ {
		if usedIDs[id] {
			continue
		}
		card, err := poker.CardFromID(id)
		if err != nil {
			return nil, err
		}
		pool = append(pool, card)
	}
	if len(pool) < n {
		return nil, errors.Errorf("emulator: needed %d unused cards, only %d left", n, len(pool))
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n], nil
}
