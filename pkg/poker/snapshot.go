package poker

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Snapshot codec for tables and game states. Snapshots serve two
// masters: the defensive deep copy every state transition starts with,
// and the external lossless save/restore contract. jsoniter keeps the
// null-vs-empty distinction the per-street history slots rely on.

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type deckSnapshot struct {
	Cheat        bool  `json:"cheat"`
	CheatCardIDs []int `json:"cheat_card_ids"`
	CardIDs      []int `json:"card_ids"`
}

type payInfoSnapshot struct {
	Amount int64     `json:"amount"`
	Status PayStatus `json:"status"`
}

type playerSnapshot struct {
	Name                 string                      `json:"name"`
	UUID                 string                      `json:"uuid"`
	Stack                int64                       `json:"stack"`
	HoleCardIDs          []int                       `json:"hole_card"`
	ActionHistories      []ActionRecord              `json:"action_histories"`
	PayInfo              payInfoSnapshot             `json:"pay_info"`
	RoundActionHistories [streetCount][]ActionRecord `json:"round_action_histories"`
}

type tableSnapshot struct {
	DealerButton     int              `json:"dealer_btn"`
	BlindPos         *[2]int          `json:"blind_pos"`
	Seats            []playerSnapshot `json:"seats"`
	Deck             deckSnapshot     `json:"deck"`
	CommunityCardIDs []int            `json:"community_card"`
}

// Serialize renders the table into its snapshot form. The format is
// stable but opaque; only Deserialize should interpret it.
func (t *Table) Serialize() ([]byte, error) {
	return jsonAPI.Marshal(t.snapshot())
}

// Deserialize restores a table from Serialize output. Round-tripping
// reproduces identical seat order, cards and pay info.
func DeserializeTable(data []byte) (*Table, error) {
	var snap tableSnapshot
	if err := jsonAPI.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decoding table snapshot")
	}
	return tableFromSnapshot(&snap)
}

// Clone is the defensive deep copy used by every state transition. It
// goes through the serialized form so no slice backing is shared with
// the original.
func (t *Table) Clone() (*Table, error) {
	data, err := t.Serialize()
	if err != nil {
		return nil, err
	}
	return DeserializeTable(data)
}

// Clone deep-copies the state; the table is copied through its snapshot
// form.
func (s *GameState) Clone() (*GameState, error) {
	table, err := s.Table.Clone()
	if err != nil {
		return nil, err
	}
	return &GameState{
		RoundCount:       s.RoundCount,
		SmallBlindAmount: s.SmallBlindAmount,
		Street:           s.Street,
		NextPlayer:       s.NextPlayer,
		Table:            table,
	}, nil
}

func (t *Table) snapshot() *tableSnapshot {
	snap := &tableSnapshot{
		DealerButton:     t.DealerButton,
		Seats:            make([]playerSnapshot, 0, t.Seats.Size()),
		Deck:             t.Deck.snapshot(),
		CommunityCardIDs: cardsToIDs(t.communityCards),
	}
	if t.blindPosSet {
		snap.BlindPos = &[2]int{t.sbPos, t.bbPos}
	}
	for _, p := range t.Seats.Players {
		snap.Seats = append(snap.Seats, p.snapshot())
	}
	return snap
}

func tableFromSnapshot(snap *tableSnapshot) (*Table, error) {
	deck, err := deckFromSnapshot(snap.Deck)
	if err != nil {
		return nil, err
	}
	community, err := cardsFromIDs(snap.CommunityCardIDs)
	if err != nil {
		return nil, err
	}
	t := NewTable(deck)
	t.DealerButton = snap.DealerButton
	t.communityCards = community
	if snap.BlindPos != nil {
		t.SetBlindPositions(snap.BlindPos[0], snap.BlindPos[1])
	}
	for _, ps := range snap.Seats {
		player, err := playerFromSnapshot(ps)
		if err != nil {
			return nil, err
		}
		t.Seats.SitDown(player)
	}
	return t, nil
}

func (d *Deck) snapshot() deckSnapshot {
	return deckSnapshot{
		Cheat:        d.cheat,
		CheatCardIDs: cardsToIDs(d.cheatCards),
		CardIDs:      cardsToIDs(d.cards),
	}
}

func deckFromSnapshot(snap deckSnapshot) (*Deck, error) {
	cards, err := cardsFromIDs(snap.CardIDs)
	if err != nil {
		return nil, err
	}
	d := &Deck{cheat: snap.Cheat, cards: cards}
	if snap.Cheat {
		d.cheatCards, err = cardsFromIDs(snap.CheatCardIDs)
		if err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (p *Player) snapshot() playerSnapshot {
	return playerSnapshot{
		Name:                 p.Name,
		UUID:                 p.UUID,
		Stack:                p.Stack,
		HoleCardIDs:          cardsToIDs(p.HoleCards),
		ActionHistories:      p.ActionHistories,
		PayInfo:              payInfoSnapshot{Amount: p.PayInfo.Amount, Status: p.PayInfo.Status},
		RoundActionHistories: p.RoundActionHistories,
	}
}

func playerFromSnapshot(snap playerSnapshot) (*Player, error) {
	player := NewPlayer(snap.UUID, snap.Name, snap.Stack)
	if len(snap.HoleCardIDs) != 0 {
		hole, err := cardsFromIDs(snap.HoleCardIDs)
		if err != nil {
			return nil, err
		}
		if err := player.AddHoleCards(hole); err != nil {
			return nil, err
		}
	}
	player.ActionHistories = snap.ActionHistories
	player.PayInfo = PayInfo{Amount: snap.PayInfo.Amount, Status: snap.PayInfo.Status}
	player.RoundActionHistories = snap.RoundActionHistories
	return player, nil
}
