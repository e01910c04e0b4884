package game

import (
	"tilequest/internal/domain/board"
	"tilequest/internal/domain/roster"
)

// State is everything a game's command handlers read and write. It is owned
// by whoever runs the handlers and must not be shared across goroutines
// without serializing commands.
type State struct {
	Board    *board.Board
	Players  *roster.Players
	Entities *roster.Entities
	Started  bool
}

func NewState() *State {
	return &State{
		Board:    board.NewBoard(),
		Players:  roster.NewPlayers(),
		Entities: roster.NewEntities(),
	}
}

type View struct {
	Board    board.Snapshot  `json:"board"`
	Bounds   board.Bounds    `json:"bounds"`
	Players  []roster.Player `json:"players"`
	Entities []roster.Entity `json:"entities"`
	Started  bool            `json:"started"`
}

func (s *State) View() View {
	return View{
		Board:    s.Board.Snapshot(),
		Bounds:   s.Board.Bounds(),
		Players:  s.Players.All(),
		Entities: s.Entities.All(),
		Started:  s.Started,
	}
}
