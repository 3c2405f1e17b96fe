package poker

import "github.com/pkg/errors"

// Street is one betting phase of a round plus the two terminal phases.
// Streets only ever move forward within a round.
type Street int

const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
	StreetFinished
)

// streetCount is the number of streets with betting (preflop..river).
const streetCount = 4

func (s Street) String() string {
	switch s {
	case StreetPreflop:
		return "preflop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	case StreetShowdown:
		return "showdown"
	case StreetFinished:
		return "finished"
	}
	return "unknown"
}

// ActionType identifies both the actions a player may declare (fold, call,
// raise) and the forced entries recorded in action histories (blinds,
// ante).
type ActionType int

const (
	ActionFold ActionType = iota
	ActionCall
	ActionRaise
	ActionSmallBlind
	ActionBigBlind
	ActionAnte
)

func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "FOLD"
	case ActionCall:
		return "CALL"
	case ActionRaise:
		return "RAISE"
	case ActionSmallBlind:
		return "SMALLBLIND"
	case ActionBigBlind:
		return "BIGBLIND"
	case ActionAnte:
		return "ANTE"
	}
	return "UNKNOWN"
}

// ParseAction maps the wire form "fold"/"call"/"raise" used by external
// drivers to an ActionType.
func ParseAction(s string) (ActionType, error) {
	switch s {
	case "fold":
		return ActionFold, nil
	case "call":
		return ActionCall, nil
	case "raise":
		return ActionRaise, nil
	}
	return 0, errors.Errorf("unknown action %q", s)
}

// NoPlayer is the "no seat found" sentinel for seat-position searches and
// for GameState.NextPlayer.
const NoPlayer = -1

// GameState is the unit of state threaded between StartNewRound and
// ApplyAction calls. Both calls deep-copy it, so callers may keep and
// branch from earlier states.
type GameState struct {
	RoundCount       int
	SmallBlindAmount int64
	Street           Street
	NextPlayer       int
	Table            *Table
}
