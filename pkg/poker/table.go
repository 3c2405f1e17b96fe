package poker

import (
	"github.com/pkg/errors"
)

var (
	// ErrCommunityCardsFull is returned on an attempt to deal a sixth
	// community card.
	ErrCommunityCardsFull = errors.New("poker: community cards are already full")
	// ErrBlindPosNotSet is returned when a round starts before the caller
	// has walked the blind positions onto the table.
	ErrBlindPosNotSet = errors.New("poker: blind positions are not set")
)

// Table owns the deck, the seats, the dealer button and blind positions,
// and the community cards. It is the unit of deep copy: every round
// transition works on a snapshot clone so callers can branch freely.
type Table struct {
	DealerButton int
	Seats        *Seats
	Deck         *Deck

	blindPosSet    bool
	sbPos, bbPos   int
	communityCards []Card
}

// NewTable seats nobody and uses the given deck, or a fresh full deck
// when nil (cheat decks come in through here for scripted tests).
func NewTable(deck *Deck) *Table {
	if deck == nil {
		deck = NewDeck(nil)
	}
	return &Table{Seats: NewSeats(), Deck: deck}
}

// SetBlindPositions pins the small/big blind seats for the next round.
func (t *Table) SetBlindPositions(sbPos, bbPos int) {
	t.blindPosSet = true
	t.sbPos, t.bbPos = sbPos, bbPos
}

// BlindPositionsSet reports whether SetBlindPositions has been called
// since the last deserialize/reset of blind bookkeeping.
func (t *Table) BlindPositionsSet() bool {
	return t.blindPosSet
}

// SBPos returns the small blind seat. Only meaningful once
// BlindPositionsSet reports true.
func (t *Table) SBPos() int {
	return t.sbPos
}

// BBPos returns the big blind seat.
func (t *Table) BBPos() int {
	return t.bbPos
}

// CommunityCards returns a copy of the board so far.
func (t *Table) CommunityCards() []Card {
	out := make([]Card, len(t.communityCards))
	copy(out, t.communityCards)
	return out
}

// AddCommunityCard appends one board card, hard-capped at five.
func (t *Table) AddCommunityCard(card Card) error {
	if len(t.communityCards) == 5 {
		return ErrCommunityCardsFull
	}
	t.communityCards = append(t.communityCards, card)
	return nil
}

// Reset prepares the table for the next hand: full deck, empty board,
// and cleared hole cards, histories and pay info. Stacks and seating
// survive.
func (t *Table) Reset() {
	t.Deck.Restore()
	t.communityCards = nil
	for _, p := range t.Seats.Players {
		p.ClearHoleCards()
		p.ClearActionHistories()
		p.ClearPayInfo()
	}
}

// ShiftDealerButton moves the button to the next active player with
// chips.
func (t *Table) ShiftDealerButton() {
	t.DealerButton = t.NextActivePlayerPos(t.DealerButton)
}

// NextActivePlayerPos finds the first seat after startPos that is not
// folded and still has chips, wrapping once. Returns NoPlayer when no
// seat qualifies.
func (t *Table) NextActivePlayerPos(startPos int) int {
	return t.findEntitledPlayerPos(startPos, func(p *Player) bool {
		return p.IsActive() && p.Stack != 0
	})
}

// NextAskWaitingPlayerPos finds the first seat after startPos that can
// still be asked to act, wrapping once. Returns NoPlayer when everyone
// is folded or all-in.
func (t *Table) NextAskWaitingPlayerPos(startPos int) int {
	return t.findEntitledPlayerPos(startPos, (*Player).IsWaitingAsk)
}

func (t *Table) findEntitledPlayerPos(startPos int, match func(*Player) bool) int {
	players := t.Seats.Players
	n := len(players)
	if n == 0 {
		return NoPlayer
	}
	for i := 1; i <= n; i++ {
		// startPos may be -1 (street start searches from the seat
		// before the small blind).
		pos := ((startPos+i)%n + n) % n
		if match(players[pos]) {
			return pos
		}
	}
	return NoPlayer
}
