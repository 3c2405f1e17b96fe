package poker

import (
	"github.com/pkg/errors"
)

// ErrStreetFinished is returned when an action arrives for a round that
// already reached its terminal street.
var ErrStreetFinished = errors.New("poker: street is already finished")

// StartNewRound deals a fresh hand on a deep copy of the given table:
// shuffle, antes, blinds, hole cards, then the preflop street. Blind
// positions must already be set on the table. The caller's table is
// never mutated.
func StartNewRound(roundCount int, sbAmount, anteAmount int64, table *Table) (*GameState, []Event, error) {
	if !table.BlindPositionsSet() {
		return nil, nil, ErrBlindPosNotSet
	}
	state := &GameState{
		RoundCount:       roundCount,
		SmallBlindAmount: sbAmount,
		Street:           StreetPreflop,
		NextPlayer:       table.NextAskWaitingPlayerPos(table.BBPos()),
		Table:            table,
	}
	state, err := state.Clone()
	if err != nil {
		return nil, nil, err
	}
	t := state.Table

	t.Deck.Shuffle()
	if err := collectAnte(anteAmount, t.Seats.Players); err != nil {
		return nil, nil, err
	}
	if err := collectBlinds(sbAmount, t); err != nil {
		return nil, nil, err
	}
	if err := dealHoleCards(t.Deck, t.Seats.Players); err != nil {
		return nil, nil, err
	}

	events := roundStartEvents(roundCount, t)
	streetEvents, err := startStreet(state)
	if err != nil {
		return nil, nil, err
	}
	return state, append(events, streetEvents...), nil
}

// ApplyAction advances the round by one player decision on a deep copy
// of the given state. The action is corrected first (all-in clamp or
// forced fold), then recorded; when the street closes the machine runs
// forward, possibly cascading through dealt-out streets all the way to
// showdown within this one call.
func ApplyAction(state *GameState, action ActionType, betAmount int64) (*GameState, []Event, error) {
	if state.Street >= StreetShowdown {
		return nil, nil, errors.Wrapf(ErrStreetFinished, "street = %s", state.Street)
	}
	state, err := state.Clone()
	if err != nil {
		return nil, nil, err
	}
	action, betAmount, err = updateStateByAction(state, action, betAmount)
	if err != nil {
		return nil, nil, err
	}
	updateEvent := gameUpdateEvent(state, action, betAmount)

	agreed, err := isEveryoneAgreed(state)
	if err != nil {
		return nil, nil, err
	}
	if agreed {
		for _, p := range state.Table.Seats.Players {
			p.SaveStreetActionHistories(state.Street)
		}
		state.Street++
		streetEvents, err := startStreet(state)
		if err != nil {
			return nil, nil, err
		}
		return state, append([]Event{updateEvent}, streetEvents...), nil
	}

	state.NextPlayer = state.Table.NextAskWaitingPlayerPos(state.NextPlayer)
	return state, []Event{updateEvent, askEvent(state)}, nil
}

// Antes come only from active players and never count toward the
// call/raise baseline.
func collectAnte(anteAmount int64, players []*Player) error {
	if anteAmount == 0 {
		return nil
	}
	for _, p := range players {
		if !p.IsActive() {
			continue
		}
		if err := p.CollectBet(anteAmount); err != nil {
			return errors.Wrap(err, "collecting ante")
		}
		p.PayInfo.UpdateByPay(anteAmount)
		p.AddAnteHistory(anteAmount)
	}
	return nil
}

func collectBlinds(sbAmount int64, t *Table) error {
	if err := blindTransaction(t.Seats.Players[t.SBPos()], true, sbAmount); err != nil {
		return err
	}
	return blindTransaction(t.Seats.Players[t.BBPos()], false, sbAmount)
}

func blindTransaction(player *Player, smallBlind bool, sbAmount int64) error {
	blindAmount := sbAmount * 2
	if smallBlind {
		blindAmount = sbAmount
	}
	if err := player.CollectBet(blindAmount); err != nil {
		return errors.Wrap(err, "posting blind")
	}
	player.AddBlindHistory(smallBlind, sbAmount)
	player.PayInfo.UpdateByPay(blindAmount)
	return nil
}

// Every seated player gets exactly two cards in seat order, including
// seats already folded by the pre-round sweep.
func dealHoleCards(deck *Deck, players []*Player) error {
	for _, p := range players {
		cards, err := deck.DrawCards(2)
		if err != nil {
			return err
		}
		if err := p.AddHoleCards(cards); err != nil {
			return err
		}
	}
	return nil
}

// startStreet runs the street cascade as an explicit loop: deal the
// street's cards, then either ask the next eligible seat or skip ahead
// when there is nobody left to ask, down to showdown if need be. Event
// order matches one transition per street.
func startStreet(state *GameState) ([]Event, error) {
	var events []Event
	t := state.Table
	for {
		state.NextPlayer = t.NextAskWaitingPlayerPos(t.SBPos() - 1)

		switch state.Street {
		case StreetPreflop:
			// The blind posters acted involuntarily already; the first
			// real decision is two ask-eligible seats later.
			for i := 0; i < 2; i++ {
				state.NextPlayer = t.NextAskWaitingPlayerPos(state.NextPlayer)
			}
		case StreetFlop:
			cards, err := t.Deck.DrawCards(3)
			if err != nil {
				return nil, err
			}
			for _, card := range cards {
				if err := t.AddCommunityCard(card); err != nil {
					return nil, err
				}
			}
		case StreetTurn, StreetRiver:
			card, err := t.Deck.DrawCard()
			if err != nil {
				return nil, err
			}
			if err := t.AddCommunityCard(card); err != nil {
				return nil, err
			}
		case StreetShowdown:
			event, err := showdown(state)
			if err != nil {
				return nil, err
			}
			return append(events, event), nil
		default:
			return nil, errors.Wrapf(ErrStreetFinished, "street = %s", state.Street)
		}

		// With the hand already uncontested there is no betting theater
		// left to announce.
		if t.Seats.CountActivePlayers() != 1 {
			events = append(events, StreetStartEvent{
				Street: state.Street,
				Round:  EncodeRoundState(state),
			})
		}
		if t.Seats.CountAskWaitPlayers() <= 1 {
			state.Street++
			continue
		}
		return append(events, askEvent(state)), nil
	}
}

func showdown(state *GameState) (Event, error) {
	winners, handInfo, prizeMap, err := Judge(state.Table)
	if err != nil {
		return nil, err
	}
	for idx, prize := range prizeMap {
		state.Table.Seats.Players[idx].AppendChip(prize)
	}
	event := RoundResultEvent{
		RoundCount: state.RoundCount,
		Winners:    encodePlayers(winners),
		HandInfo:   handInfo,
		Prizes:     prizeMap,
		Round:      EncodeRoundState(state),
	}
	state.Table.Reset()
	state.Street = StreetFinished
	return event, nil
}

func updateStateByAction(state *GameState, action ActionType, betAmount int64) (ActionType, int64, error) {
	t := state.Table
	action, betAmount = CorrectAction(t.Seats.Players, state.NextPlayer, state.SmallBlindAmount, action, betAmount)
	player := t.Seats.Players[state.NextPlayer]
	if IsAllIn(player, action, betAmount) {
		player.PayInfo.UpdateToAllIn()
	}
	return action, betAmount, acceptAction(state, player, action, betAmount)
}

func acceptAction(state *GameState, player *Player, action ActionType, betAmount int64) error {
	switch action {
	case ActionCall:
		if err := chipTransaction(player, betAmount); err != nil {
			return err
		}
		player.AddCallHistory(betAmount)
	case ActionRaise:
		if err := chipTransaction(player, betAmount); err != nil {
			return err
		}
		addAmount := betAmount - AgreeAmount(state.Table.Seats.Players)
		player.AddRaiseHistory(betAmount, addAmount)
	case ActionFold:
		player.AddFoldHistory()
		player.PayInfo.UpdateToFold()
	default:
		return errors.Errorf("unexpected action %s received", action)
	}
	return nil
}

func chipTransaction(player *Player, betAmount int64) error {
	needAmount := NeedAmountForAction(player, betAmount)
	if err := player.CollectBet(needAmount); err != nil {
		return err
	}
	player.PayInfo.UpdateByPay(needAmount)
	return nil
}

// The street closes when every seat has either matched the top street
// total after acting at least once, or can no longer act; or when the
// hand is uncontested; or when only one payer is left and they already
// match the price.
func isEveryoneAgreed(state *GameState) (bool, error) {
	t := state.Table
	players := t.Seats.Players
	if t.Seats.CountActivePlayers() == 0 {
		return false, errors.Wrap(ErrNoActivePlayers, "agreement check")
	}

	var maxPay int64
	for _, p := range players {
		if sum := p.PaidSum(); sum > maxPay {
			maxPay = sum
		}
	}

	everyoneAgreed := true
	for _, p := range players {
		if !isAgreed(maxPay, p) {
			everyoneAgreed = false
			break
		}
	}
	lonelyPlayer := t.Seats.CountActivePlayers() == 1

	noNeedToAsk := false
	if nextPos := t.NextAskWaitingPlayerPos(state.NextPlayer); nextPos != NoPlayer {
		next := players[nextPos]
		noNeedToAsk = t.Seats.CountAskWaitPlayers() == 1 &&
			next.IsWaitingAsk() && next.PaidSum() == maxPay
	}

	return everyoneAgreed || lonelyPlayer || noNeedToAsk, nil
}

func isAgreed(maxPay int64, player *Player) bool {
	if player.PayInfo.Status == Folded || player.PayInfo.Status == AllIn {
		return true
	}
	// The big blind gets its option: a seat whose only preflop entry is
	// the posted blind has not agreed yet even at the matching price.
	isPreflop := player.RoundActionHistories[StreetPreflop] == nil
	bbPostOnly := len(player.ActionHistories) == 1 &&
		player.ActionHistories[0].Action == ActionBigBlind
	if isPreflop && bbPostOnly {
		return false
	}
	return player.PaidSum() == maxPay && len(player.ActionHistories) != 0
}

func roundStartEvents(roundCount int, t *Table) []Event {
	seats := EncodeSeats(t.Seats)
	events := make([]Event, 0, t.Seats.Size())
	for _, p := range t.Seats.Players {
		events = append(events, RoundStartEvent{
			PlayerUUID: p.UUID,
			RoundCount: roundCount,
			HoleCards:  p.HoleCards,
			Seats:      seats,
		})
	}
	return events
}

func gameUpdateEvent(state *GameState, action ActionType, betAmount int64) Event {
	player := state.Table.Seats.Players[state.NextPlayer]
	return GameUpdateEvent{
		PlayerPos:  state.NextPlayer,
		PlayerUUID: player.UUID,
		Action:     action,
		Amount:     betAmount,
		Round:      EncodeRoundState(state),
	}
}

func askEvent(state *GameState) Event {
	player := state.Table.Seats.Players[state.NextPlayer]
	return AskEvent{
		PlayerPos:    state.NextPlayer,
		PlayerUUID:   player.UUID,
		HoleCards:    player.HoleCards,
		ValidActions: LegalActions(state.Table.Seats.Players, state.NextPlayer, state.SmallBlindAmount),
		Round:        EncodeRoundState(state),
	}
}

func encodePlayers(players []*Player) []SeatState {
	out := make([]SeatState, 0, len(players))
	for _, p := range players {
		out = append(out, SeatState{
			UUID:  p.UUID,
			Name:  p.Name,
			Stack: p.Stack,
			State: p.PayInfo.Status,
		})
	}
	return out
}
