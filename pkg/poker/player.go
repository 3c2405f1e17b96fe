package poker

import (
	"github.com/pkg/errors"
)

// Precondition violations. These mean the caller is buggy, never that the
// game state is ambiguous, so they surface as errors instead of being
// corrected like illegal player actions.
var (
	ErrHoleCardsAlreadySet = errors.New("poker: hole cards are already set")
	ErrWrongHoleCardCount  = errors.New("poker: a player takes exactly 2 hole cards")
	ErrInsufficientStack   = errors.New("poker: not enough chips in stack")
)

// ActionRecord is one entry in a player's per-street action history.
// Amount is the cumulative this-street total after the action; Paid is the
// incremental chips moved by it. Raise entries also carry AddAmount, the
// raise increment used for the next minimum raise.
type ActionRecord struct {
	Action    ActionType `json:"action"`
	Amount    int64      `json:"amount"`
	Paid      int64      `json:"paid,omitempty"`
	AddAmount int64      `json:"add_amount,omitempty"`
	UUID      string     `json:"uuid"`
}

// Player is one seat's mutable state: chips not yet committed, hole
// cards, this-street and frozen per-street action histories, and pay
// status for the current round.
type Player struct {
	UUID      string
	Name      string
	Stack     int64
	HoleCards []Card

	// ActionHistories holds this street's actions in order.
	ActionHistories []ActionRecord
	// RoundActionHistories has one slot per betting street; nil means the
	// street was not reached yet.
	RoundActionHistories [streetCount][]ActionRecord

	PayInfo PayInfo
}

func NewPlayer(uuid, name string, stack int64) *Player {
	return &Player{UUID: uuid, Name: name, Stack: stack}
}

// AddHoleCards deals the player's two hole cards. Rejects any count other
// than 2 and rejects double deals.
func (p *Player) AddHoleCards(cards []Card) error {
	if len(p.HoleCards) != 0 {
		return ErrHoleCardsAlreadySet
	}
	if len(cards) != 2 {
		return errors.Wrapf(ErrWrongHoleCardCount, "got %d", len(cards))
	}
	p.HoleCards = cards
	return nil
}

func (p *Player) ClearHoleCards() {
	p.HoleCards = nil
}

// AppendChip returns chips to the stack (prize payout, uncommitted bet).
func (p *Player) AppendChip(amount int64) {
	p.Stack += amount
}

// CollectBet moves chips out of the stack toward the pot.
func (p *Player) CollectBet(amount int64) error {
	if p.Stack < amount {
		return errors.Wrapf(ErrInsufficientStack, "need %d, stack %d", amount, p.Stack)
	}
	p.Stack -= amount
	return nil
}

// IsActive reports whether the player still contests the hand (not
// folded; all-in players are still active).
func (p *Player) IsActive() bool {
	return p.PayInfo.Status != Folded
}

// IsWaitingAsk reports whether the player can be prompted for an action.
func (p *Player) IsWaitingAsk() bool {
	return p.PayInfo.Status == PayTillEnd
}

// PaidSum is the amount the player has committed toward the current
// street's bet: the cumulative amount of the most recent non-ante,
// non-fold entry this street, or 0.
func (p *Player) PaidSum() int64 {
	for i := len(p.ActionHistories) - 1; i >= 0; i-- {
		h := p.ActionHistories[i]
		if h.Action != ActionFold && h.Action != ActionAnte {
			return h.Amount
		}
	}
	return 0
}

func (p *Player) AddFoldHistory() {
	p.appendHistory(ActionRecord{Action: ActionFold})
}

func (p *Player) AddCallHistory(betAmount int64) {
	p.appendHistory(ActionRecord{
		Action: ActionCall,
		Amount: betAmount,
		Paid:   betAmount - p.PaidSum(),
	})
}

func (p *Player) AddRaiseHistory(betAmount, addAmount int64) {
	p.appendHistory(ActionRecord{
		Action:    ActionRaise,
		Amount:    betAmount,
		Paid:      betAmount - p.PaidSum(),
		AddAmount: addAmount,
	})
}

// AddBlindHistory records a posted blind. Blinds count as the opening
// "raise" of the preflop street: the add amount is one small blind.
func (p *Player) AddBlindHistory(smallBlind bool, sbAmount int64) {
	action, amount := ActionBigBlind, sbAmount*2
	if smallBlind {
		action, amount = ActionSmallBlind, sbAmount
	}
	p.appendHistory(ActionRecord{Action: action, Amount: amount, AddAmount: sbAmount})
}

// AddAnteHistory records a forced ante. Antes never count toward PaidSum.
func (p *Player) AddAnteHistory(payAmount int64) {
	p.appendHistory(ActionRecord{Action: ActionAnte, Amount: payAmount})
}

// SaveStreetActionHistories freezes this street's actions into the
// per-street slot and clears the working list.
func (p *Player) SaveStreetActionHistories(street Street) {
	p.RoundActionHistories[street] = p.ActionHistories
	p.ActionHistories = nil
}

// ClearActionHistories wipes both the working list and all per-street
// slots (between hands).
func (p *Player) ClearActionHistories() {
	p.ActionHistories = nil
	p.RoundActionHistories = [streetCount][]ActionRecord{}
}

func (p *Player) ClearPayInfo() {
	p.PayInfo = PayInfo{}
}

func (p *Player) appendHistory(rec ActionRecord) {
	rec.UUID = p.UUID
	p.ActionHistories = append(p.ActionHistories, rec)
}
