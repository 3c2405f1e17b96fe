package poker

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrNoActivePlayers signals a judge/agreement check running with zero
// active players. That cannot happen under the external contract; seeing
// it means a core bug, not user error.
var ErrNoActivePlayers = errors.New("poker: no active players")

// Pot is one pot of the hand: the side pots in ascending all-in order
// followed by the main pot. Callers index pots positionally, so this
// order is part of the contract.
type Pot struct {
	Amount    int64
	Eligibles []*Player
}

// PlayerHandInfo is one showdown line: who and what they held.
type PlayerHandInfo struct {
	UUID string       `json:"uuid"`
	Hand HandRankInfo `json:"hand"`
}

// Judge settles the hand: winners of the whole hand (for messaging),
// per-player hand breakdowns (empty when the hand was uncontested), and
// the prize for each seat index.
func Judge(table *Table) ([]*Player, []PlayerHandInfo, map[int]int64, error) {
	community := table.CommunityCards()
	players := table.Seats.Players
	winners, err := findWinnersFrom(community, players)
	if err != nil {
		return nil, nil, nil, err
	}
	handInfo := genHandInfoIfNeeded(players, community)
	prizeMap, err := calcPrizeDistribution(community, players)
	if err != nil {
		return nil, nil, nil, err
	}
	return winners, handInfo, prizeMap, nil
}

// CreatePot builds one side pot per distinct all-in commitment threshold
// in ascending order, then appends the main pot holding the remainder.
func CreatePot(players []*Player) []*Pot {
	pots := sidePots(players)
	return append(pots, mainPot(players, pots))
}

// Each pot is judged independently; ties split the pot by integer
// division and the remainder is dropped (no odd-chip rule, see
// DESIGN.md).
func calcPrizeDistribution(community []Card, players []*Player) (map[int]int64, error) {
	prizeMap := make(map[int]int64, len(players))
	for i := range players {
		prizeMap[i] = 0
	}
	for _, pot := range CreatePot(players) {
		winners, err := findWinnersFrom(community, pot.Eligibles)
		if err != nil {
			return nil, errors.Wrap(err, "judging pot")
		}
		prize := pot.Amount / int64(len(winners))
		for _, w := range winners {
			prizeMap[playerIndex(players, w)] += prize
		}
	}
	return prizeMap, nil
}

func findWinnersFrom(community []Card, players []*Player) ([]*Player, error) {
	var winners []*Player
	best := -1
	for _, p := range players {
		if !p.IsActive() {
			continue
		}
		score := EvalHand(p.HoleCards, community)
		if score > best {
			best = score
			winners = winners[:0]
		}
		if score == best {
			winners = append(winners, p)
		}
	}
	if len(winners) == 0 {
		return nil, ErrNoActivePlayers
	}
	return winners, nil
}

// No breakdown is reported for an uncontested hand; there was no
// competitive showdown.
func genHandInfoIfNeeded(players []*Player, community []Card) []PlayerHandInfo {
	var active []*Player
	for _, p := range players {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	if len(active) == 1 {
		return nil
	}
	info := make([]PlayerHandInfo, 0, len(active))
	for _, p := range active {
		info = append(info, PlayerHandInfo{
			UUID: p.UUID,
			Hand: GenHandRankInfo(p.HoleCards, community),
		})
	}
	return info
}

func sidePots(players []*Player) []*Pot {
	var pots []*Pot
	for _, threshold := range allInPayAmounts(players) {
		pots = append(pots, &Pot{
			Amount:    sidePotSize(players, pots, threshold),
			Eligibles: selectEligibles(players, threshold),
		})
	}
	return pots
}

// A side pot capped at threshold takes min(threshold, committed) from
// every player, minus whatever the smaller pots already took.
func sidePotSize(players []*Player, smallerPots []*Pot, threshold int64) int64 {
	var size int64
	for _, p := range players {
		if p.PayInfo.Amount < threshold {
			size += p.PayInfo.Amount
		} else {
			size += threshold
		}
	}
	return size - potsSum(smallerPots)
}

// The main pot absorbs everything the side pots did not account for; its
// eligible set is the players at the maximum commitment.
func mainPot(players []*Player, sidePots []*Pot) *Pot {
	var maxPay, paySum int64
	for _, p := range players {
		paySum += p.PayInfo.Amount
		if p.PayInfo.Amount > maxPay {
			maxPay = p.PayInfo.Amount
		}
	}
	var eligibles []*Player
	for _, p := range players {
		if p.PayInfo.Amount == maxPay {
			eligibles = append(eligibles, p)
		}
	}
	return &Pot{Amount: paySum - potsSum(sidePots), Eligibles: eligibles}
}

func potsSum(pots []*Pot) int64 {
	var sum int64
	for _, pot := range pots {
		sum += pot.Amount
	}
	return sum
}

func selectEligibles(players []*Player, threshold int64) []*Player {
	var eligibles []*Player
	for _, p := range players {
		if p.PayInfo.Amount >= threshold && p.PayInfo.Status != Folded {
			eligibles = append(eligibles, p)
		}
	}
	return eligibles
}

// Distinct commitment amounts of the all-in players in ascending order,
// one pot boundary each.
func allInPayAmounts(players []*Player) []int64 {
	seen := map[int64]bool{}
	var amounts []int64
	for _, p := range players {
		if p.PayInfo.Status == AllIn && !seen[p.PayInfo.Amount] {
			seen[p.PayInfo.Amount] = true
			amounts = append(amounts, p.PayInfo.Amount)
		}
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i] < amounts[j] })
	return amounts
}

func playerIndex(players []*Player, target *Player) int {
	for i, p := range players {
		if p == target {
			return i
		}
	}
	return NoPlayer
}
