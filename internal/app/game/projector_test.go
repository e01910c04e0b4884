package game

import (
	"errors"
	"testing"

	"tilequest/internal/domain/board"
	"tilequest/internal/domain/event"
	"tilequest/internal/domain/roster"
)

func TestRebuild_ReproducesLiveState(t *testing.T) {
	m, rec := newTestManager()
	live := NewState()
	cmds := []event.Command{
		event.CreateGameButtonClicked(),
		event.StartGameButtonClicked(roster.Profile{Name: "A", Color: "red"}, roster.Profile{Name: "B", Color: "blue"}),
		event.UnexploredTileClicked(event.PlayerID(0), board.Origin),
		event.UnexploredTileClicked(event.PlayerID(1), board.Coord{X: 0, Y: 1}),
		event.ExploredTileClicked(event.PlayerID(1), board.Origin),
		event.UnexploredTileClicked(event.PlayerID(0), board.Coord{X: -1, Y: 0}),
		event.EndTurnButtonClicked(0),
	}
	for i, cmd := range cmds {
		if err := m.Dispatch(live, cmd); err != nil {
			t.Fatalf("command %d (%s): %v", i, cmd.Kind, err)
		}
	}

	logged := []event.Event{}
	for _, e := range rec.events {
		if e.IsLogged() {
			logged = append(logged, e)
		}
	}
	rebuilt, err := Rebuild(logged)
	if err != nil {
		t.Fatalf("Rebuild error: %v", err)
	}

	want, got := live.View(), rebuilt.View()
	if got.Started != want.Started {
		t.Fatalf("started mismatch: got=%v want=%v", got.Started, want.Started)
	}
	if len(got.Board.Tiles) != len(want.Board.Tiles) || len(got.Board.Unexplored) != len(want.Board.Unexplored) {
		t.Fatalf("board mismatch: got=%+v want=%+v", got.Board, want.Board)
	}
	for i := range want.Board.Tiles {
		if got.Board.Tiles[i] != want.Board.Tiles[i] {
			t.Fatalf("tile[%d] mismatch: got=%+v want=%+v", i, got.Board.Tiles[i], want.Board.Tiles[i])
		}
	}
	for i := range want.Board.Unexplored {
		if got.Board.Unexplored[i] != want.Board.Unexplored[i] {
			t.Fatalf("frontier[%d] mismatch: got=%+v want=%+v", i, got.Board.Unexplored[i], want.Board.Unexplored[i])
		}
	}
	if len(got.Players) != len(want.Players) || len(got.Entities) != len(want.Entities) {
		t.Fatalf("roster mismatch: got=%d/%d want=%d/%d", len(got.Players), len(got.Entities), len(want.Players), len(want.Entities))
	}
	for i := range want.Players {
		if got.Players[i] != want.Players[i] {
			t.Fatalf("player[%d] mismatch: got=%+v want=%+v", i, got.Players[i], want.Players[i])
		}
	}
}

func TestApply_RejectsMalformedEvents(t *testing.T) {
	for _, kind := range []event.Kind{event.KindTileAdded, event.KindPlayerCreated, event.KindEntityCreated} {
		err := Apply(NewState(), event.Event{Kind: kind})
		if !errors.Is(err, ErrMalformedEvent) {
			t.Fatalf("%s: expected ErrMalformedEvent, got %v", kind, err)
		}
	}
}

func TestApply_InvalidPlacementSurfaces(t *testing.T) {
	tile := board.NewTile(board.Coord{X: 4, Y: 4}, board.TerrainGrass)
	err := Apply(NewState(), event.Event{Kind: event.KindTileAdded, Tile: &tile})
	if !errors.Is(err, board.ErrCoordinateUnreachable) {
		t.Fatalf("expected ErrCoordinateUnreachable, got %v", err)
	}
}

func TestApply_IgnoresInputEvents(t *testing.T) {
	st := NewState()
	target := board.Origin
	if err := Apply(st, event.Event{Kind: event.KindUnexploredTileClicked, Target: &target}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if st.Board.PlacedCount() != 0 {
		t.Fatalf("expected raw click to leave the board untouched")
	}
}
