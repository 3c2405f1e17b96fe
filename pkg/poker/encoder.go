package poker

// Public-state encoding for event payloads. Everything here is visible
// to every player: seat summaries never include hole cards, and the
// per-street histories are the same records all players witnessed.

// SeatState is the public view of one seat.
type SeatState struct {
	UUID  string    `json:"uuid"`
	Name  string    `json:"name"`
	Stack int64     `json:"stack"`
	State PayStatus `json:"state"`
}

// SidePotState is the public view of one side pot.
type SidePotState struct {
	Amount    int64    `json:"amount"`
	Eligibles []string `json:"eligibles"`
}

// PotState summarizes the pots: the main amount plus each capped side
// pot with its eligible uuids.
type PotState struct {
	Main int64          `json:"main"`
	Side []SidePotState `json:"side"`
}

// RoundState is the public snapshot handed to strategies and UIs with
// ask/update events.
type RoundState struct {
	RoundCount       int                       `json:"round_count"`
	SmallBlindAmount int64                     `json:"small_blind_amount"`
	Street           Street                    `json:"street"`
	NextPlayer       int                       `json:"next_player"`
	DealerButton     int                       `json:"dealer_btn"`
	SmallBlindPos    int                       `json:"small_blind_pos"`
	BigBlindPos      int                       `json:"big_blind_pos"`
	CommunityCards   []Card                    `json:"community_card"`
	Pot              PotState                  `json:"pot"`
	Seats            []SeatState               `json:"seats"`
	ActionHistories  map[string][]ActionRecord `json:"action_histories"`
}

// EncodeSeats summarizes every seat publicly, in seating order.
func EncodeSeats(seats *Seats) []SeatState {
	out := make([]SeatState, 0, seats.Size())
	for _, p := range seats.Players {
		out = append(out, SeatState{
			UUID:  p.UUID,
			Name:  p.Name,
			Stack: p.Stack,
			State: p.PayInfo.Status,
		})
	}
	return out
}

// EncodeRoundState builds the public view of a game state.
func EncodeRoundState(state *GameState) RoundState {
	t := state.Table
	return RoundState{
		RoundCount:       state.RoundCount,
		SmallBlindAmount: state.SmallBlindAmount,
		Street:           state.Street,
		NextPlayer:       state.NextPlayer,
		DealerButton:     t.DealerButton,
		SmallBlindPos:    t.SBPos(),
		BigBlindPos:      t.BBPos(),
		CommunityCards:   t.CommunityCards(),
		Pot:              encodePots(t.Seats.Players),
		Seats:            EncodeSeats(t.Seats),
		ActionHistories:  encodeActionHistories(t),
	}
}

// The main pot reported here is the last pot CreatePot builds; the side
// entries are the capped pots before it.
func encodePots(players []*Player) PotState {
	pots := CreatePot(players)
	state := PotState{Main: pots[len(pots)-1].Amount}
	for _, pot := range pots[:len(pots)-1] {
		side := SidePotState{Amount: pot.Amount}
		for _, p := range pot.Eligibles {
			side.Eligibles = append(side.Eligibles, p.UUID)
		}
		state.Side = append(state.Side, side)
	}
	return state
}

// Frozen streets come from the per-street slots; the street in progress
// contributes its working list under its own name. Slots freeze in street
// order, so the first street with no saved slot is the one in progress.
func encodeActionHistories(t *Table) map[string][]ActionRecord {
	histories := map[string][]ActionRecord{}
	for street := StreetPreflop; street <= StreetRiver; street++ {
		saved := false
		for _, p := range t.Seats.Players {
			if p.RoundActionHistories[street] != nil {
				saved = true
			}
		}
		if !saved {
			if current := currentStreetHistories(t.Seats.Players); current != nil {
				histories[street.String()] = current
			}
			break
		}
		histories[street.String()] = mergeStreetHistories(t.Seats.Players, street)
	}
	return histories
}

// Records within a street are ordered by play: walk seats repeatedly in
// order, taking each seat's next record. Blinds and antes precede
// voluntary actions naturally because they were appended first.
func mergeStreetHistories(players []*Player, street Street) []ActionRecord {
	perSeat := make([][]ActionRecord, len(players))
	for i, p := range players {
		perSeat[i] = p.RoundActionHistories[street]
	}
	return flattenInPlayOrder(perSeat)
}

func currentStreetHistories(players []*Player) []ActionRecord {
	perSeat := make([][]ActionRecord, len(players))
	any := false
	for i, p := range players {
		perSeat[i] = p.ActionHistories
		if len(p.ActionHistories) > 0 {
			any = true
		}
	}
	if !any {
		return nil
	}
	return flattenInPlayOrder(perSeat)
}

func flattenInPlayOrder(perSeat [][]ActionRecord) []ActionRecord {
	var out []ActionRecord
	for round := 0; ; round++ {
		took := false
		for _, recs := range perSeat {
			if round < len(recs) {
				out = append(out, recs[round])
				took = true
			}
		}
		if !took {
			return out
		}
	}
}
