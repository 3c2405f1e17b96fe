package poker

// EventKind discriminates the events RoundManager hands back to the
// external driver.
type EventKind string

const (
	EventRoundStart  EventKind = "round_start"
	EventStreetStart EventKind = "street_start"
	EventGameUpdate  EventKind = "game_update"
	EventAsk         EventKind = "ask"
	EventRoundResult EventKind = "round_result"
	EventGameResult  EventKind = "game_result"
)

// Event is one notification produced by a state transition. Each carries
// exactly one payload type. Rendering events for humans is the driver's
// job, not the engine's.
type Event interface {
	Kind() EventKind
}

// RoundStartEvent is emitted once per seated player at the start of a
// round. It is the only event carrying another player's hole cards, so
// drivers must deliver it privately to PlayerUUID.
type RoundStartEvent struct {
	PlayerUUID string
	RoundCount int
	HoleCards  []Card
	Seats      []SeatState
}

func (RoundStartEvent) Kind() EventKind { return EventRoundStart }

// StreetStartEvent announces a new betting street. Suppressed when the
// hand is already uncontested.
type StreetStartEvent struct {
	Street Street
	Round  RoundState
}

func (StreetStartEvent) Kind() EventKind { return EventStreetStart }

// GameUpdateEvent reports one applied (post-correction) player action.
type GameUpdateEvent struct {
	PlayerPos  int
	PlayerUUID string
	Action     ActionType
	Amount     int64
	Round      RoundState
}

func (GameUpdateEvent) Kind() EventKind { return EventGameUpdate }

// AskEvent prompts the seat at PlayerPos for its next action.
type AskEvent struct {
	PlayerPos    int
	PlayerUUID   string
	HoleCards    []Card
	ValidActions []ValidAction
	Round        RoundState
}

func (AskEvent) Kind() EventKind { return EventAsk }

// RoundResultEvent closes a round: hand winners, per-player showdown
// breakdown (nil for an uncontested hand), and the prize credited to each
// seat index.
type RoundResultEvent struct {
	RoundCount int
	Winners    []SeatState
	HandInfo   []PlayerHandInfo
	Prizes     map[int]int64
	Round      RoundState
}

func (RoundResultEvent) Kind() EventKind { return EventRoundResult }

// GameResultEvent reports the final stacks once the game is over.
type GameResultEvent struct {
	Seats []SeatState
}

func (GameResultEvent) Kind() EventKind { return EventGameResult }
