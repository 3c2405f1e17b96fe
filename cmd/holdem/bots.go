package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pokercore/holdem/pkg/emulator"
	"github.com/pokercore/holdem/pkg/poker"
)

func newBot(kind string) (poker.Strategy, error) {
	switch kind {
	case "caller", "":
		return &callerBot{}, nil
	case "folder":
		return &folderBot{}, nil
	case "random":
		return &randomBot{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}, nil
	case "equity":
		return &equityBot{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}, nil
	default:
		return nil, fmt.Errorf("unknown bot kind %q", kind)
	}
}

// callerBot always calls.
type callerBot struct {
	poker.BaseStrategy
}

func (*callerBot) DeclareAction(valid []poker.ValidAction, _ []poker.Card, _ poker.RoundState) (poker.ActionType, int64) {
	call := valid[1]
	return call.Action, call.Amount
}

// folderBot always folds.
type folderBot struct {
	poker.BaseStrategy
}

func (*folderBot) DeclareAction([]poker.ValidAction, []poker.Card, poker.RoundState) (poker.ActionType, int64) {
	return poker.ActionFold, 0
}

// randomBot picks fold, call, or a uniform raise when raising is open.
type randomBot struct {
	poker.BaseStrategy
	rng *rand.Rand
}

func (b *randomBot) DeclareAction(valid []poker.ValidAction, _ []poker.Card, _ poker.RoundState) (poker.ActionType, int64) {
	raise := valid[2]
	choices := 2
	if raise.Min != poker.RaiseUnavailable {
		choices = 3
	}
	switch b.rng.Intn(choices) {
	case 0:
		return poker.ActionFold, 0
	case 1:
		return valid[1].Action, valid[1].Amount
	default:
		amount := raise.Min
		if raise.Max > raise.Min {
			amount += b.rng.Int63n(raise.Max - raise.Min + 1)
		}
		return poker.ActionRaise, amount
	}
}

// equityBot estimates its win rate by Monte Carlo and plays a simple
// threshold policy: raise when well ahead of the field, call when about
// break-even for the table size, fold otherwise.
type equityBot struct {
	poker.BaseStrategy
	rng *rand.Rand
}

const equityTrials = 200

func (b *equityBot) DeclareAction(valid []poker.ValidAction, hole []poker.Card, round poker.RoundState) (poker.ActionType, int64) {
	nbPlayer := 0
	for _, seat := range round.Seats {
		if seat.State != poker.Folded {
			nbPlayer++
		}
	}
	winRate, err := emulator.EstimateHoleCardWinRate(equityTrials, nbPlayer, hole, round.CommunityCards, b.rng)
	if err != nil {
		return poker.ActionFold, 0
	}

	breakeven := 1.0 / float64(nbPlayer)
	raise := valid[2]
	switch {
	case winRate >= 2*breakeven && raise.Min != poker.RaiseUnavailable:
		return poker.ActionRaise, raise.Min
	case winRate >= breakeven:
		return valid[1].Action, valid[1].Amount
	default:
		return poker.ActionFold, 0
	}
}
