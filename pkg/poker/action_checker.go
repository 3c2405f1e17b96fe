package poker

// Action legality checks and the auto-correction policy. Everything here
// is pure: the full ordered player list, the acting seat and the small
// blind amount come in, a verdict comes out, nothing is mutated.
//
// Illegal player actions are never surfaced as errors. CorrectAction
// rewrites them: an all-in is clamped to the player's exact maximum, any
// other illegal action is downgraded to a fold. A buggy or adversarial
// bot pays for malformed input with its hand, not with an engine crash.

// RaiseUnavailable is the min/max sentinel reported when the player
// cannot legally raise.
const RaiseUnavailable = -1

// ValidAction is one entry of the legal-actions answer. Fold and call
// carry Amount; raise carries the Min/Max range instead.
type ValidAction struct {
	Action ActionType `json:"action"`
	Amount int64      `json:"amount"`
	Min    int64      `json:"min,omitempty"`
	Max    int64      `json:"max,omitempty"`
}

// CorrectAction applies the leniency policy: clamp a would-be all-in to
// exactly stack+paid, otherwise downgrade an illegal action to a fold.
func CorrectAction(players []*Player, pos int, sbAmount int64, action ActionType, amount int64) (ActionType, int64) {
	if IsAllIn(players[pos], action, amount) {
		amount = players[pos].Stack + players[pos].PaidSum()
	} else if IsIllegal(players, pos, sbAmount, action, amount) {
		action, amount = ActionFold, 0
	}
	return action, amount
}

// IsAllIn reports whether the action would consume the player's whole
// stack. A call at or above the maximum is an all-in; a raise only at
// exactly the maximum (above it is simply illegal). Folds never are.
func IsAllIn(player *Player, action ActionType, betAmount int64) bool {
	switch action {
	case ActionCall:
		return betAmount >= player.Stack+player.PaidSum()
	case ActionRaise:
		return betAmount == player.Stack+player.PaidSum()
	}
	return false
}

// NeedAmountForAction is the marginal chips the player must move to bring
// their street total up to amount.
func NeedAmountForAction(player *Player, amount int64) int64 {
	return amount - player.PaidSum()
}

// AgreeAmount is the street total every still-active player must match:
// the amount of the biggest RAISE/SMALLBLIND/BIGBLIND entry across all
// players this street, or 0 when none exists.
func AgreeAmount(players []*Player) int64 {
	if last := fetchLastRaise(players); last != nil {
		return last.Amount
	}
	return 0
}

// LegalActions lists the actions open to the seat at pos. When the
// player cannot cover the minimum raise, both raise bounds are reported
// as RaiseUnavailable.
func LegalActions(players []*Player, pos int, sbAmount int64) []ValidAction {
	minRaise := minRaiseAmount(players, sbAmount)
	maxRaise := players[pos].Stack + players[pos].PaidSum()
	if maxRaise < minRaise {
		minRaise, maxRaise = RaiseUnavailable, RaiseUnavailable
	}
	return []ValidAction{
		{Action: ActionFold, Amount: 0},
		{Action: ActionCall, Amount: AgreeAmount(players)},
		{Action: ActionRaise, Min: minRaise, Max: maxRaise},
	}
}

// IsIllegal reports whether the action violates betting rules right now.
// Folds are always legal. Calls must match the agree amount and be
// affordable; raises must reach the minimum raise and be affordable.
func IsIllegal(players []*Player, pos int, sbAmount int64, action ActionType, amount int64) bool {
	switch action {
	case ActionFold:
		return false
	case ActionCall:
		return isShortOfMoney(players[pos], amount) || amount != AgreeAmount(players)
	case ActionRaise:
		return isShortOfMoney(players[pos], amount) || amount < minRaiseAmount(players, sbAmount)
	}
	return true
}

// The minimum raise is last raise-to plus its increment, or two small
// blinds when nobody raised this street yet.
func minRaiseAmount(players []*Player, sbAmount int64) int64 {
	if last := fetchLastRaise(players); last != nil {
		return last.Amount + last.AddAmount
	}
	return sbAmount * 2
}

func isShortOfMoney(player *Player, amount int64) bool {
	return player.Stack < amount-player.PaidSum()
}

func fetchLastRaise(players []*Player) *ActionRecord {
	var best *ActionRecord
	for _, p := range players {
		for i := range p.ActionHistories {
			h := &p.ActionHistories[i]
			switch h.Action {
			case ActionRaise, ActionSmallBlind, ActionBigBlind:
				if best == nil || h.Amount > best.Amount {
					best = h
				}
			}
		}
	}
	return best
}
