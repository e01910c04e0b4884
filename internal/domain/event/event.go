package event

import (
	"time"

	"tilequest/internal/domain/board"
	"tilequest/internal/domain/roster"
)

// Event records something that happened, or a request about to be handled.
// Values are never modified after they are built.
type Event struct {
	Seq                uint64           `json:"seq,omitempty"`
	GameID             string           `json:"game_id,omitempty"`
	Kind               Kind             `json:"kind"`
	TriggeringPlayerID *int             `json:"triggering_player_id,omitempty"`
	Logged             bool             `json:"logged"`
	OccurredAt         time.Time        `json:"occurred_at"`
	Target             *board.Coord     `json:"target,omitempty"`
	Tile               *board.Tile      `json:"tile,omitempty"`
	Board              *board.Snapshot  `json:"board,omitempty"`
	BoundsBefore       *board.Bounds    `json:"bounds_before,omitempty"`
	Player             *roster.Player   `json:"player,omitempty"`
	Entity             *roster.Entity   `json:"entity,omitempty"`
	Profiles           []roster.Profile `json:"profiles,omitempty"`
}

func New(kind Kind, at time.Time) Event {
	return Event{Kind: kind, Logged: kind.Logged(), OccurredAt: at}
}

func (e Event) IsLogged() bool {
	return e.Logged
}

func (e Event) WithTrigger(playerID *int) Event {
	e.TriggeringPlayerID = copyID(playerID)
	return e
}

func TileAdded(trigger *int, tile board.Tile, snap board.Snapshot, before board.Bounds, at time.Time) Event {
	e := New(KindTileAdded, at).WithTrigger(trigger)
	e.Tile = &tile
	e.Board = &snap
	e.BoundsBefore = &before
	return e
}

func PlayerCreated(p roster.Player, at time.Time) Event {
	e := New(KindPlayerCreated, at)
	e.Player = &p
	return e
}

func EntityCreated(ent roster.Entity, at time.Time) Event {
	e := New(KindEntityCreated, at)
	ent.Attachments = append([]roster.Attachment{}, ent.Attachments...)
	e.Entity = &ent
	return e
}

func StartGame(at time.Time) Event {
	return New(KindStartGame, at)
}

func EndTurn(trigger *int, at time.Time) Event {
	return New(KindEndTurn, at).WithTrigger(trigger)
}

func GameCreated(gameID string, at time.Time) Event {
	e := New(KindGameCreated, at)
	e.GameID = gameID
	return e
}

func PlayerID(id int) *int {
	return &id
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
