package poker

import (
	"github.com/pkg/errors"
)

// Suit is one-hot encoded so suit membership can be tested with a bitmask.
type Suit uint8

const (
	Club    Suit = 2
	Diamond Suit = 4
	Heart   Suit = 8
	Spade   Suit = 16
)

// Ranks run 2..14 with 14 meaning Ace.
const (
	RankTen   = 10
	RankJack  = 11
	RankQueen = 12
	RankKing  = 13
	RankAce   = 14
)

// Card is an immutable rank/suit pair. Equality is by value.
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

var (
	suitChars = map[Suit]string{Club: "C", Diamond: "D", Heart: "H", Spade: "S"}
	rankChars = map[int]string{
		2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7", 8: "8", 9: "9",
		RankTen: "T", RankJack: "J", RankQueen: "Q", RankKing: "K", RankAce: "A",
	}
)

// NewCard builds a card from a suit and a rank. Rank 1 is normalized to
// the Ace rank 14.
func NewCard(suit Suit, rank int) Card {
	if rank == 1 {
		rank = RankAce
	}
	return Card{Suit: suit, Rank: rank}
}

// String returns the two-character form "{suit}{rank}", e.g. "SA" or "HT".
func (c Card) String() string {
	return suitChars[c.Suit] + rankChars[c.Rank]
}

// ID linearizes the card into 1..52: id = rank' + 13*suitIndex, where
// rank' folds Ace back to 1 and suits index C,D,H,S in order.
func (c Card) ID() int {
	rank := c.Rank
	if rank == RankAce {
		rank = 1
	}
	index := 0
	for tmp := c.Suit >> 1; tmp&1 != 1; tmp >>= 1 {
		index++
	}
	return rank + 13*index
}

// CardFromID inverts Card.ID for ids 1..52.
func CardFromID(id int) (Card, error) {
	if id < 1 || id > 52 {
		return Card{}, errors.Errorf("card id %d out of range 1..52", id)
	}
	suit, rank := Club, id
	for rank > 13 {
		suit <<= 1
		rank -= 13
	}
	return NewCard(suit, rank), nil
}

// ParseCard inverts Card.String, e.g. "SA" or "D2".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, errors.Errorf("malformed card %q", s)
	}
	var suit Suit
	for su, ch := range suitChars {
		if ch == s[:1] {
			suit = su
		}
	}
	if suit == 0 {
		return Card{}, errors.Errorf("unknown suit in card %q", s)
	}
	for rank, ch := range rankChars {
		if ch == s[1:] {
			return NewCard(suit, rank), nil
		}
	}
	return Card{}, errors.Errorf("unknown rank in card %q", s)
}

// ParseCards parses a list of card strings, e.g. "SA", "HK".
func ParseCards(strs ...string) ([]Card, error) {
	cards := make([]Card, 0, len(strs))
	for _, s := range strs {
		card, err := ParseCard(s)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func cardsToIDs(cards []Card) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID()
	}
	return ids
}

func cardsFromIDs(ids []int) ([]Card, error) {
	cards := make([]Card, len(ids))
	for i, id := range ids {
		card, err := CardFromID(id)
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}
	return cards, nil
}
