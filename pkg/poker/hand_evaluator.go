package poker

import "sort"

// Hand category flags. The packed score is strictly ordered by poker hand
// strength, so comparing two hands is a single integer compare.
//
// Score layout (before the final <<8 for the hole ranks):
//
//	[category bit][rank1 4bit][rank2 4bit]
//
//	high card, hole 3/4      =>           100 0011
//	one pair of 3s           =>        1 0011 0000
//	two pair A/4             =>       10 1110 0100
//	three 9s                 =>      100 1001 0000
//	straight from T          =>     1000 1010 0000
//	flush, Q high            =>    10000 1100 0000
//	full house 3s over 4s    =>   100000 0011 0100
//	four 2s                  =>  1000000 0010 0000
//	straight flush from 7    => 10000000 0111 0000
const (
	HighCard      = 0
	OnePair       = 1 << 8
	TwoPair       = 1 << 9
	ThreeOfAKind  = 1 << 10
	Straight      = 1 << 11
	Flush         = 1 << 12
	FullHouse     = 1 << 13
	FourOfAKind   = 1 << 14
	StraightFlush = 1 << 15
)

// HandStrengthName maps a category flag to its display name.
var HandStrengthName = map[int]string{
	HighCard:      "HIGHCARD",
	OnePair:       "ONEPAIR",
	TwoPair:       "TWOPAIR",
	ThreeOfAKind:  "THREECARD",
	Straight:      "STRAIGHT",
	Flush:         "FLASH",
	FullHouse:     "FULLHOUSE",
	FourOfAKind:   "FOURCARD",
	StraightFlush: "STRAIGHTFLASH",
}

// HandRankInfo is the human-meaningful breakdown decoded from a packed
// score.
type HandRankInfo struct {
	Hand HandRank `json:"hand"`
	Hole RankPair `json:"hole"`
}

// HandRank is the category plus its high/low tiebreak ranks.
type HandRank struct {
	Strength string `json:"strength"`
	High     int    `json:"high"`
	Low      int    `json:"low"`
}

// RankPair holds the two hole-card ranks, high then low.
type RankPair struct {
	High int `json:"high"`
	Low  int `json:"low"`
}

// EvalHand packs a 7-card hand (2 hole + board) into a totally ordered
// score: category flag and tiebreak ranks in the high bits, the two hole
// ranks in the low 8 bits.
//
// Straight detection treats the Ace as rank 14 only. The 5-high wheel
// (A-2-3-4-5) is intentionally not recognized; see DESIGN.md.
func EvalHand(hole, community []Card) int {
	ranks := sortedRanks(hole)
	holeFlag := ranks[1]<<4 | ranks[0]
	return calcHandInfoFlag(hole, community)<<8 | holeFlag
}

// GenHandRankInfo evaluates and decodes in one step.
func GenHandRankInfo(hole, community []Card) HandRankInfo {
	score := EvalHand(hole, community)
	return HandRankInfo{
		Hand: HandRank{
			Strength: HandStrengthName[maskHandStrength(score)],
			High:     maskHandHighRank(score),
			Low:      maskHandLowRank(score),
		},
		Hole: RankPair{
			High: maskHoleHighRank(score),
			Low:  maskHoleLowRank(score),
		},
	}
}

// Categories must be probed strongest first: a straight flush also
// satisfies the flush and straight predicates.
func calcHandInfoFlag(hole, community []Card) int {
	cards := append(append([]Card{}, hole...), community...)
	if r := searchStraightFlush(cards); r != -1 {
		return StraightFlush | r<<4
	}
	if r := searchFourOfAKind(cards); r != 0 {
		return FourOfAKind | r<<4
	}
	if three, pair, ok := searchFullHouse(cards); ok {
		return FullHouse | three<<4 | pair
	}
	if r := searchFlush(cards); r != -1 {
		return Flush | r<<4
	}
	if r := searchStraight(cards); r != -1 {
		return Straight | r<<4
	}
	if r := searchThreeOfAKind(cards); r != -1 {
		return ThreeOfAKind | r<<4
	}
	if pairs := searchTwoPair(cards); len(pairs) == 2 {
		return TwoPair | pairs[1]<<4 | pairs[0]
	}
	if r := searchOnePair(cards); r != 0 {
		return OnePair | r<<4
	}
	ranks := sortedRanks(hole)
	return ranks[1]<<4 | ranks[0]
}

func searchOnePair(cards []Card) int {
	rank, memo := 0, 0
	for _, c := range cards {
		mask := 1 << c.Rank
		if memo&mask != 0 && c.Rank > rank {
			rank = c.Rank
		}
		memo |= mask
	}
	return rank
}

// searchTwoPair keeps the two lowest duplicate ranks, matching the
// original scoring exactly (a three-pair board tiebreaks on the lower
// two). Part of the comparison contract, not corrected here.
func searchTwoPair(cards []Card) []int {
	var ranks []int
	memo := 0
	for _, c := range cards {
		mask := 1 << c.Rank
		if memo&mask != 0 {
			ranks = append(ranks, c.Rank)
		}
		memo |= mask
	}
	sort.Ints(ranks)
	if len(ranks) > 2 {
		ranks = ranks[:2]
	}
	return ranks
}

func searchThreeOfAKind(cards []Card) int {
	rank := -1
	var memo uint64
	for _, c := range cards {
		memo += 1 << uint((c.Rank-1)*3)
	}
	for r := 2; r <= 14; r++ {
		memo >>= 3
		if memo&7 >= 3 {
			rank = r
		}
	}
	return rank
}

// searchStraight returns the lowest rank of the best straight, or -1.
func searchStraight(cards []Card) int {
	memo := 0
	for _, c := range cards {
		memo |= 1 << c.Rank
	}
	rank := -1
	for r := 2; r <= 14; r++ {
		ok := true
		for i := 0; i < 5; i++ {
			if memo>>(r+i)&1 != 1 {
				ok = false
				break
			}
		}
		if ok {
			rank = r
		}
	}
	return rank
}

// searchFlush returns the highest rank within a 5+ card suit, or -1.
func searchFlush(cards []Card) int {
	best := -1
	for _, group := range groupBySuit(cards) {
		if len(group) < 5 {
			continue
		}
		for _, c := range group {
			if c.Rank > best {
				best = c.Rank
			}
		}
	}
	return best
}

func searchFullHouse(cards []Card) (three, pair int, ok bool) {
	byRank := map[int]int{}
	for _, c := range cards {
		byRank[c.Rank]++
	}
	var threeRanks, pairRanks []int
	for rank, n := range byRank {
		if n >= 3 {
			threeRanks = append(threeRanks, rank)
		} else if n >= 2 {
			pairRanks = append(pairRanks, rank)
		}
	}
	// Two sets of trips: the lower one fills the pair slot.
	if len(threeRanks) == 2 {
		pairRanks = append(pairRanks, minInt(threeRanks))
	}
	if len(threeRanks) == 0 || len(pairRanks) == 0 {
		return 0, 0, false
	}
	return maxInt(threeRanks), maxInt(pairRanks), true
}

func searchFourOfAKind(cards []Card) int {
	byRank := map[int]int{}
	for _, c := range cards {
		byRank[c.Rank]++
		if byRank[c.Rank] >= 4 {
			return c.Rank
		}
	}
	return 0
}

func searchStraightFlush(cards []Card) int {
	for _, group := range groupBySuit(cards) {
		if len(group) >= 5 {
			return searchStraight(group)
		}
	}
	return -1
}

func groupBySuit(cards []Card) map[Suit][]Card {
	groups := map[Suit][]Card{}
	for _, c := range cards {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	return groups
}

func sortedRanks(hole []Card) [2]int {
	r0, r1 := hole[0].Rank, hole[1].Rank
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	return [2]int{r0, r1}
}

func maskHandStrength(score int) int {
	return (score & (511 << 16)) >> 8
}

func maskHandHighRank(score int) int {
	return (score >> 12) & 15
}

func maskHandLowRank(score int) int {
	return (score >> 8) & 15
}

func maskHoleHighRank(score int) int {
	return (score >> 4) & 15
}

func maskHoleLowRank(score int) int {
	return score & 15
}

func minInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

func maxInt(xs []int) int {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}
