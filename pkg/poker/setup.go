package poker

import (
	"sort"

	"github.com/pkg/errors"
)

// Pre-round table bookkeeping shared by the dealer and the emulator:
// blind-level updates and the short-stack sweep that decides who can
// still post the forced bets.

// ErrNoEligibleBlindPoster is returned when no seat can cover the small
// blind plus ante; the game should have ended before this.
var ErrNoEligibleBlindPoster = errors.New("poker: nobody can post the blinds")

// BlindLevel is one level of a blind structure.
type BlindLevel struct {
	Ante       int64 `json:"ante" yaml:"ante"`
	SmallBlind int64 `json:"small_blind" yaml:"small_blind"`
}

// UpdateBlindLevel resolves the forced-bet amounts for a round: the
// level with the highest threshold not exceeding roundCount wins, or the
// incoming amounts when no threshold applies.
func UpdateBlindLevel(ante, sbAmount int64, roundCount int, structure map[int]BlindLevel) (int64, int64) {
	thresholds := make([]int, 0, len(structure))
	for r := range structure {
		thresholds = append(thresholds, r)
	}
	sort.Ints(thresholds)
	for _, r := range thresholds {
		if r <= roundCount {
			level := structure[r]
			ante, sbAmount = level.Ante, level.SmallBlind
		}
	}
	return ante, sbAmount
}

// ExcludeShortOfMoneyPlayers zeroes out seats that cannot cover the
// forced bets, walks the blind positions onto the first seats that can,
// and marks broke seats folded. Must run before StartNewRound.
func ExcludeShortOfMoneyPlayers(t *Table, ante, sbAmount int64) error {
	sbPos, bbPos, err := stealMoneyFromPoorPlayers(t, ante, sbAmount)
	if err != nil {
		return err
	}
	disableNoMoneyPlayers(t.Seats.Players)
	t.SetBlindPositions(sbPos, bbPos)
	if t.Seats.Players[t.DealerButton].Stack == 0 {
		t.ShiftDealerButton()
	}
	return nil
}

// A seat that cannot post its forced bet loses its remaining chips and
// sits the hand out. The walk starts after the button: the first seat
// covering sb+ante takes the small blind, the first after it covering
// 2sb+ante takes the big blind; everyone skipped over on the way is
// zeroed.
func stealMoneyFromPoorPlayers(t *Table, ante, sbAmount int64) (sbPos, bbPos int, err error) {
	players := t.Seats.Players
	for _, p := range players {
		if p.Stack < ante {
			p.Stack = 0
		}
	}
	if players[t.DealerButton].Stack == 0 {
		t.ShiftDealerButton()
	}

	order := searchOrder(players, t.DealerButton)
	sbIdx := findFirstEligible(players, order, sbAmount+ante)
	if sbIdx == -1 {
		return 0, 0, ErrNoEligibleBlindPoster
	}
	for _, i := range order[:sbIdx] {
		players[i].Stack = 0
	}

	after := order[sbIdx+1:]
	bbIdx := findFirstEligible(players, after, sbAmount*2+ante)
	if bbIdx == -1 {
		// Nobody can post the big blind: everyone but the small blind
		// seat is felted and the small blind takes both positions.
		sbSeat := order[sbIdx]
		for i, p := range players {
			if i != sbSeat {
				p.Stack = 0
			}
		}
		return sbSeat, sbSeat, nil
	}
	for _, i := range after[:bbIdx] {
		players[i].Stack = 0
	}
	return order[sbIdx], after[bbIdx], nil
}

func searchOrder(players []*Player, dealerButton int) []int {
	n := len(players)
	order := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		order = append(order, (dealerButton+i)%n)
	}
	return order
}

func findFirstEligible(players []*Player, order []int, needAmount int64) int {
	for idx, seat := range order {
		if players[seat].Stack >= needAmount {
			return idx
		}
	}
	return -1
}

func disableNoMoneyPlayers(players []*Player) {
	for _, p := range players {
		if p.Stack == 0 {
			p.PayInfo.UpdateToFold()
		}
	}
}
