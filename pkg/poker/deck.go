package poker

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// ErrDeckExhausted is returned when a draw asks for more cards than the
// deck holds. This is a caller bug, never silently truncated.
var ErrDeckExhausted = errors.New("poker: deck has too few cards left")

// Deck is an ordered pile of cards drawn from the top. A cheat deck is
// fixed to a configured card order and ignores Shuffle, which makes
// scripted rounds reproducible in tests.
type Deck struct {
	cheat      bool
	cheatCards []Card
	cards      []Card
	rng        *rand.Rand
}

// NewDeck returns a full ordered 52-card deck. A nil rng seeds from the
// clock on first shuffle.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.cards = fullDeck()
	return d
}

// NewCheatDeck returns a deck that deals exactly the given cards in order.
func NewCheatDeck(cards ...Card) *Deck {
	d := &Deck{cheat: true, cheatCards: cards}
	d.cards = reversed(cards)
	return d
}

// DrawCard pops the next card.
func (d *Deck) DrawCard() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, nil
}

// DrawCards pops the next n cards.
func (d *Deck) DrawCards(n int) ([]Card, error) {
	if len(d.cards) < n {
		return nil, errors.Wrapf(ErrDeckExhausted, "want %d, have %d", n, len(d.cards))
	}
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := d.DrawCard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Size returns the number of cards remaining.
func (d *Deck) Size() int {
	return len(d.cards)
}

// Shuffle randomizes the remaining cards. No-op for cheat decks.
func (d *Deck) Shuffle() {
	if d.cheat {
		return
	}
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Restore resets the deck to its full configured order.
func (d *Deck) Restore() {
	if d.cheat {
		d.cards = reversed(d.cheatCards)
		return
	}
	d.cards = fullDeck()
}

func fullDeck() []Card {
	cards := make([]Card, 0, 52)
	for id := 1; id <= 52; id++ {
		card, _ := CardFromID(id)
		cards = append(cards, card)
	}
	return cards
}

// Cheat cards are stored bottom-up so DrawCard pops them in configured
// order.
func reversed(cards []Card) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[len(cards)-1-i] = c
	}
	return out
}
