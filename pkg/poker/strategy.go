package poker

// GameInfo describes the game a strategy was seated into.
type GameInfo struct {
	PlayerNum        int
	MaxRound         int
	InitialStack     int64
	SmallBlindAmount int64
	Ante             int64
	Seats            []SeatState
}

// Strategy is a seat's decision maker. DeclareAction is the one required
// method; the Receive hooks are notifications a strategy may ignore.
// Embed BaseStrategy to get no-op implementations of all of them.
//
// DeclareAction must return one of the offered valid actions; anything
// else is auto-corrected by the engine, usually into a fold.
type Strategy interface {
	DeclareAction(validActions []ValidAction, holeCards []Card, round RoundState) (ActionType, int64)
	ReceiveGameStart(info GameInfo)
	ReceiveRoundStart(roundCount int, holeCards []Card, seats []SeatState)
	ReceiveStreetStart(street Street, round RoundState)
	ReceiveGameUpdate(update GameUpdateEvent)
	ReceiveRoundResult(result RoundResultEvent)
}

// BaseStrategy provides no-op notification hooks so concrete strategies
// only implement what they care about.
type BaseStrategy struct{}

func (BaseStrategy) ReceiveGameStart(GameInfo)                  {}
func (BaseStrategy) ReceiveRoundStart(int, []Card, []SeatState) {}
func (BaseStrategy) ReceiveStreetStart(Street, RoundState)      {}
func (BaseStrategy) ReceiveGameUpdate(GameUpdateEvent)          {}
func (BaseStrategy) ReceiveRoundResult(RoundResultEvent)        {}
