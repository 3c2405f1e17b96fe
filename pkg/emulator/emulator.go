// Package emulator steps a hold'em game one action at a time on behalf
// of external code: simulations, equity estimation, AI training loops.
// Every call takes a game state in and hands a new one back; retained
// states stay valid and can be branched from freely.
package emulator

import (
	"github.com/decred/slog"
	"github.com/pkg/errors"

	"github.com/pokercore/holdem/pkg/poker"
)

// ErrGameFinished is returned when an action is applied to a game that
// already ended.
var ErrGameFinished = errors.New("emulator: game is already finished")

// GameRule is the fixed rule set of an emulated game.
type GameRule struct {
	PlayerNum        int
	MaxRound         int
	SmallBlindAmount int64
	Ante             int64
}

// PlayerInfo seats one player in an initial game state.
type PlayerInfo struct {
	UUID  string
	Name  string
	Stack int64
}

// Emulator drives the core engine for step-at-a-time callers. It is not
// safe for concurrent use; serialize calls per emulator.
type Emulator struct {
	log            slog.Logger
	rule           GameRule
	blindStructure map[int]poker.BlindLevel
	strategies     map[string]poker.Strategy
}

func New() *Emulator {
	return &Emulator{
		log:            slog.Disabled,
		blindStructure: map[int]poker.BlindLevel{},
		strategies:     map[string]poker.Strategy{},
	}
}

// SetLogger installs a logger for game-flow tracing.
func (e *Emulator) SetLogger(log slog.Logger) {
	e.log = log
}

func (e *Emulator) SetGameRule(playerNum, maxRound int, sbAmount, ante int64) {
	e.rule = GameRule{
		PlayerNum:        playerNum,
		MaxRound:         maxRound,
		SmallBlindAmount: sbAmount,
		Ante:             ante,
	}
}

func (e *Emulator) SetBlindStructure(structure map[int]poker.BlindLevel) {
	e.blindStructure = structure
}

// RegisterPlayer binds a strategy to a seat uuid for the RunUntil
// helpers. Step-at-a-time callers that supply their own actions do not
// need strategies.
func (e *Emulator) RegisterPlayer(uuid string, strategy poker.Strategy) {
	e.strategies[uuid] = strategy
}

// FetchPlayer returns the strategy registered for uuid.
func (e *Emulator) FetchPlayer(uuid string) (poker.Strategy, error) {
	s, ok := e.strategies[uuid]
	if !ok {
		return nil, errors.Errorf("emulator: no strategy registered for uuid %q", uuid)
	}
	return s, nil
}

// GenerateInitialGameState seats the players in order with the button on
// the last seat, ready for the first StartNewRound.
func (e *Emulator) GenerateInitialGameState(players []PlayerInfo) *poker.GameState {
	table := poker.NewTable(nil)
	for _, info := range players {
		table.Seats.SitDown(poker.NewPlayer(info.UUID, info.Name, info.Stack))
	}
	table.DealerButton = table.Seats.Size() - 1
	return &poker.GameState{
		RoundCount:       0,
		SmallBlindAmount: e.rule.SmallBlindAmount,
		Street:           poker.StreetPreflop,
		NextPlayer:       poker.NoPlayer,
		Table:            table,
	}
}

// GeneratePossibleActions lists the legal actions for the seat about to
// act. Pure query; calling it repeatedly returns identical results.
func (e *Emulator) GeneratePossibleActions(state *poker.GameState) []poker.ValidAction {
	return poker.LegalActions(state.Table.Seats.Players, state.NextPlayer, state.SmallBlindAmount)
}

// ApplyAction advances the game by one declared action. A state at a
// finished street rolls into the next round first.
func (e *Emulator) ApplyAction(state *poker.GameState, action poker.ActionType, betAmount int64) (*poker.GameState, []poker.Event, error) {
	if state.Street == poker.StreetFinished {
		var err error
		state, _, err = e.startNextRound(state)
		if err != nil {
			return nil, nil, err
		}
	}
	state, events, err := poker.ApplyAction(state, action, betAmount)
	if err != nil {
		return nil, nil, err
	}
	events = filterEvents(events)
	if e.isLastRound(state) {
		events = append(events, gameResultEvent(state))
	}
	return state, events, nil
}

// RunUntilRoundFinish plays out the current round using the registered
// strategies.
func (e *Emulator) RunUntilRoundFinish(state *poker.GameState) (*poker.GameState, []poker.Event, error) {
	var box []poker.Event
	for state.Street != poker.StreetFinished {
		player := state.Table.Seats.Players[state.NextPlayer]
		strategy, err := e.FetchPlayer(player.UUID)
		if err != nil {
			return nil, nil, err
		}
		action, amount := strategy.DeclareAction(
			e.GeneratePossibleActions(state), player.HoleCards, poker.EncodeRoundState(state))
		e.log.Debugf("round %d %s: %s declares %s %d",
			state.RoundCount, state.Street, player.Name, action, amount)
		var events []poker.Event
		state, events, err = poker.ApplyAction(state, action, amount)
		if err != nil {
			return nil, nil, err
		}
		box = append(box, filterEvents(events)...)
	}
	if e.isLastRound(state) {
		box = append(box, gameResultEvent(state))
	}
	return state, box, nil
}

// RunUntilGameFinish plays rounds until the game result event shows up.
func (e *Emulator) RunUntilGameFinish(state *poker.GameState) (*poker.GameState, []poker.Event, error) {
	var box []poker.Event
	if state.Street != poker.StreetFinished {
		var events []poker.Event
		var err error
		state, events, err = e.RunUntilRoundFinish(state)
		if err != nil {
			return nil, nil, err
		}
		box = append(box, events...)
		if lastIsGameResult(box) {
			return state, box, nil
		}
	}
	for {
		var events []poker.Event
		var err error
		state, events, err = e.StartNewRound(state)
		if err != nil {
			return nil, nil, err
		}
		box = append(box, events...)
		if lastIsGameResult(box) {
			return state, box, nil
		}
		state, events, err = e.RunUntilRoundFinish(state)
		if err != nil {
			return nil, nil, err
		}
		box = append(box, events...)
		if lastIsGameResult(box) {
			return state, box, nil
		}
	}
}

// StartNewRound shifts the button, applies the blind structure, sweeps
// short stacks and deals the next hand on a copy of the state. When only
// one player still has a live stack the game ends instead, with a game
// result event.
func (e *Emulator) StartNewRound(state *poker.GameState) (*poker.GameState, []poker.Event, error) {
	roundCount := state.RoundCount + 1
	state, err := state.Clone()
	if err != nil {
		return nil, nil, err
	}
	table := state.Table
	table.ShiftDealerButton()

	ante, sbAmount := poker.UpdateBlindLevel(e.rule.Ante, e.rule.SmallBlindAmount, roundCount, e.blindStructure)
	if err := poker.ExcludeShortOfMoneyPlayers(table, ante, sbAmount); err != nil {
		return nil, nil, err
	}
	if countActive(table) == 1 {
		return state, []poker.Event{gameResultEvent(state)}, nil
	}

	newState, events, err := poker.StartNewRound(roundCount, sbAmount, ante, table)
	if err != nil {
		return nil, nil, err
	}
	e.log.Debugf("round %d started: sb=%d ante=%d btn=%d", roundCount, sbAmount, ante, table.DealerButton)
	return newState, filterEvents(events), nil
}

func (e *Emulator) startNextRound(state *poker.GameState) (*poker.GameState, []poker.Event, error) {
	alreadyOver := state.RoundCount == e.rule.MaxRound
	state, events, err := e.StartNewRound(state)
	if err != nil {
		return nil, nil, err
	}
	if alreadyOver || lastIsGameResult(events) {
		return nil, nil, ErrGameFinished
	}
	return state, events, nil
}

// The game is over once a round finished and either the round budget is
// spent or a single player holds all the chips.
func (e *Emulator) isLastRound(state *poker.GameState) bool {
	if state.Street != poker.StreetFinished {
		return false
	}
	if state.RoundCount == e.rule.MaxRound {
		return true
	}
	survivors := 0
	for _, p := range state.Table.Seats.Players {
		if p.Stack != 0 {
			survivors++
		}
	}
	return survivors == 1
}

// The emulator surfaces game-flow events only; per-player round-start
// deals and per-action updates stay with drivers that forward them to
// strategies.
func filterEvents(events []poker.Event) []poker.Event {
	var out []poker.Event
	for _, ev := range events {
		switch ev.Kind() {
		case poker.EventStreetStart, poker.EventAsk, poker.EventRoundResult, poker.EventGameResult:
			out = append(out, ev)
		}
	}
	return out
}

func gameResultEvent(state *poker.GameState) poker.Event {
	return poker.GameResultEvent{Seats: poker.EncodeSeats(state.Table.Seats)}
}

func lastIsGameResult(events []poker.Event) bool {
	return len(events) > 0 && events[len(events)-1].Kind() == poker.EventGameResult
}

func countActive(table *poker.Table) int {
	return table.Seats.CountActivePlayers()
}
