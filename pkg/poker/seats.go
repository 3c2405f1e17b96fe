package poker

// Seats is the ordered seating arrangement. Insertion order is seating
// order and is never reordered.
type Seats struct {
	Players []*Player
}

func NewSeats() *Seats {
	return &Seats{}
}

func (s *Seats) SitDown(p *Player) {
	s.Players = append(s.Players, p)
}

func (s *Seats) Size() int {
	return len(s.Players)
}

// CountActivePlayers counts seats still contesting the hand (not folded).
func (s *Seats) CountActivePlayers() int {
	n := 0
	for _, p := range s.Players {
		if p.IsActive() {
			n++
		}
	}
	return n
}

// CountAskWaitPlayers counts seats that can still be asked to act.
func (s *Seats) CountAskWaitPlayers() int {
	n := 0
	for _, p := range s.Players {
		if p.IsWaitingAsk() {
			n++
		}
	}
	return n
}
