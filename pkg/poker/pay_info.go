package poker

// PayStatus is the per-round betting status of a player. Transitions are
// one-directional within a round: PayTillEnd -> AllIn or Folded. A reset
// between hands is the only way back.
type PayStatus int

const (
	// PayTillEnd means the player is still in the betting and can be
	// asked to act.
	PayTillEnd PayStatus = iota
	// AllIn means the player is out of chips but still eligible to win.
	AllIn
	// Folded means the player forfeited the hand.
	Folded
)

func (s PayStatus) String() string {
	switch s {
	case PayTillEnd:
		return "participating"
	case AllIn:
		return "allin"
	case Folded:
		return "folded"
	}
	return "unknown"
}

// PayInfo tracks the chips a player has committed this round and their
// betting status. Amount only grows within a round.
type PayInfo struct {
	Amount int64     `json:"amount"`
	Status PayStatus `json:"status"`
}

func (p *PayInfo) UpdateByPay(amount int64) {
	p.Amount += amount
}

func (p *PayInfo) UpdateToFold() {
	p.Status = Folded
}

func (p *PayInfo) UpdateToAllIn() {
	p.Status = AllIn
}
