package game

import (
	"errors"
	"fmt"

	"tilequest/internal/domain/board"
	"tilequest/internal/domain/event"
)

var ErrMalformedEvent = errors.New("malformed event")

// Apply folds one recorded event into st. Raw input events and kinds that
// carry no state are ignored.
func Apply(st *State, e event.Event) error {
	switch e.Kind {
	case event.KindTileAdded:
		if e.Tile == nil {
			return fmt.Errorf("%s: %w", e.Kind, ErrMalformedEvent)
		}
		if _, err := (board.Executor{}).AddTile(st.Board, *e.Tile); err != nil {
			return fmt.Errorf("replay %s seq=%d: %w", e.Kind, e.Seq, err)
		}
	case event.KindPlayerCreated:
		if e.Player == nil {
			return fmt.Errorf("%s: %w", e.Kind, ErrMalformedEvent)
		}
		if err := st.Players.Add(*e.Player); err != nil {
			return fmt.Errorf("replay %s seq=%d: %w", e.Kind, e.Seq, err)
		}
	case event.KindEntityCreated:
		if e.Entity == nil {
			return fmt.Errorf("%s: %w", e.Kind, ErrMalformedEvent)
		}
		if err := st.Entities.Add(*e.Entity); err != nil {
			return fmt.Errorf("replay %s seq=%d: %w", e.Kind, e.Seq, err)
		}
	case event.KindStartGame:
		st.Started = true
	}
	return nil
}

// Rebuild replays events, oldest first, against a fresh state.
func Rebuild(events []event.Event) (*State, error) {
	st := NewState()
	for _, e := range events {
		if err := Apply(st, e); err != nil {
			return nil, err
		}
	}
	return st, nil
}
