// Package dealer runs a live multi-agent hold'em game end to end: it
// seats registered strategies, drives rounds through the core engine and
// routes every event to the strategies that may see it. The dealer owns
// no I/O besides the injected logger; rendering is the caller's job.
package dealer

import (
	"github.com/decred/slog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/pokercore/holdem/pkg/poker"
)

// ErrInvalidConfig covers setup mistakes: missing blind/stack amounts or
// too few players. Reported before any round begins.
var ErrInvalidConfig = errors.New("dealer: invalid game configuration")

// Config sets up a dealer. SmallBlind and InitialStack are required;
// Ante defaults to 0, Log to disabled, NewUUID to random UUIDs.
type Config struct {
	SmallBlind   int64
	Ante         int64
	InitialStack int64
	Log          slog.Logger
	NewUUID      func() string
}

// GameResult is the final standing after StartGame returns.
type GameResult struct {
	Rule  poker.GameInfo
	Seats []poker.SeatState
}

// Dealer drives one table. Register at least two players, then call
// StartGame once.
type Dealer struct {
	log            slog.Logger
	sbAmount       int64
	ante           int64
	initialStack   int64
	blindStructure map[int]poker.BlindLevel
	table          *poker.Table
	strategies     map[string]poker.Strategy
	newUUID        func() string
}

func New(cfg Config) *Dealer {
	log := cfg.Log
	if log == nil {
		log = slog.Disabled
	}
	newUUID := cfg.NewUUID
	if newUUID == nil {
		newUUID = func() string { return uuid.NewString() }
	}
	return &Dealer{
		log:            log,
		sbAmount:       cfg.SmallBlind,
		ante:           cfg.Ante,
		initialStack:   cfg.InitialStack,
		blindStructure: map[int]poker.BlindLevel{},
		table:          poker.NewTable(nil),
		strategies:     map[string]poker.Strategy{},
		newUUID:        newUUID,
	}
}

// SetBlindStructure installs per-round forced-bet levels, keyed by the
// first round they apply to.
func (d *Dealer) SetBlindStructure(structure map[int]poker.BlindLevel) {
	d.blindStructure = structure
}

// RegisterPlayer seats a strategy and returns its uuid. Configuration
// must be complete before the first registration.
func (d *Dealer) RegisterPlayer(name string, strategy poker.Strategy) (string, error) {
	if d.sbAmount <= 0 {
		return "", errors.Wrap(ErrInvalidConfig, "small blind amount is not set")
	}
	if d.initialStack <= 0 {
		return "", errors.Wrap(ErrInvalidConfig, "initial stack is not set")
	}
	id := d.newUUID()
	d.table.Seats.SitDown(poker.NewPlayer(id, name, d.initialStack))
	d.strategies[id] = strategy
	return id, nil
}

// StartGame plays up to maxRound hands and returns the final stacks.
func (d *Dealer) StartGame(maxRound int) (*GameResult, error) {
	if d.table.Seats.Size() < 2 {
		return nil, errors.Wrap(ErrInvalidConfig, "need at least 2 registered players")
	}

	info := d.gameInfo(maxRound)
	for _, s := range d.strategies {
		s.ReceiveGameStart(info)
	}

	ante, sbAmount := d.ante, d.sbAmount
	table := d.table
	for roundCount := 1; roundCount <= maxRound; roundCount++ {
		if newAnte, newSB := poker.UpdateBlindLevel(ante, sbAmount, roundCount, d.blindStructure); newAnte != ante || newSB != sbAmount {
			d.log.Infof("blind level update at round %d: ante %d -> %d, sb %d -> %d",
				roundCount, ante, newAnte, sbAmount, newSB)
			ante, sbAmount = newAnte, newSB
		}
		if err := poker.ExcludeShortOfMoneyPlayers(table, ante, sbAmount); err != nil {
			return nil, err
		}
		if isGameFinished(table) {
			d.log.Infof("game decided after %d rounds", roundCount-1)
			break
		}
		next, err := d.playRound(roundCount, sbAmount, ante, table)
		if err != nil {
			return nil, err
		}
		table = next
		table.ShiftDealerButton()
	}
	d.table = table

	result := &GameResult{Rule: info, Seats: poker.EncodeSeats(table.Seats)}
	return result, nil
}

// playRound runs one hand: deal, then feed ask events to strategies
// until the round finishes. The engine deep-copies the table, so the
// table threaded onward is the one inside the returned state.
func (d *Dealer) playRound(roundCount int, sbAmount, ante int64, table *poker.Table) (*poker.Table, error) {
	state, events, err := poker.StartNewRound(roundCount, sbAmount, ante, table)
	if err != nil {
		return nil, err
	}
	for {
		ask, err := d.publishEvents(events)
		if err != nil {
			return nil, err
		}
		if state.Street == poker.StreetFinished {
			return state.Table, nil
		}
		if ask == nil {
			return nil, errors.New("dealer: round still open but no seat was asked")
		}
		strategy, ok := d.strategies[ask.PlayerUUID]
		if !ok {
			return nil, errors.Errorf("dealer: no strategy for uuid %q", ask.PlayerUUID)
		}
		action, amount := strategy.DeclareAction(ask.ValidActions, ask.HoleCards, ask.Round)
		state, events, err = poker.ApplyAction(state, action, amount)
		if err != nil {
			return nil, err
		}
	}
}

// publishEvents routes notifications: round starts privately to their
// owner, streets/updates/results to everyone. Returns the trailing ask,
// if any.
func (d *Dealer) publishEvents(events []poker.Event) (*poker.AskEvent, error) {
	var ask *poker.AskEvent
	for _, ev := range events {
		switch ev := ev.(type) {
		case poker.RoundStartEvent:
			if s, ok := d.strategies[ev.PlayerUUID]; ok {
				s.ReceiveRoundStart(ev.RoundCount, ev.HoleCards, ev.Seats)
			}
		case poker.StreetStartEvent:
			d.log.Debugf("street start: %s", ev.Street)
			for _, s := range d.strategies {
				s.ReceiveStreetStart(ev.Street, ev.Round)
			}
		case poker.GameUpdateEvent:
			d.log.Debugf("seat %d %s %d", ev.PlayerPos, ev.Action, ev.Amount)
			for _, s := range d.strategies {
				s.ReceiveGameUpdate(ev)
			}
		case poker.RoundResultEvent:
			d.log.Infof("round %d finished", ev.RoundCount)
			for _, s := range d.strategies {
				s.ReceiveRoundResult(ev)
			}
		case poker.AskEvent:
			ask = &ev
		}
	}
	return ask, nil
}

func (d *Dealer) gameInfo(maxRound int) poker.GameInfo {
	return poker.GameInfo{
		PlayerNum:        d.table.Seats.Size(),
		MaxRound:         maxRound,
		InitialStack:     d.initialStack,
		SmallBlindAmount: d.sbAmount,
		Ante:             d.ante,
		Seats:            poker.EncodeSeats(d.table.Seats),
	}
}

func isGameFinished(table *poker.Table) bool {
	return table.Seats.CountActivePlayers() == 1
}
