package ports

import (
	"context"
	"errors"

	"tilequest/internal/domain/event"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrGameIDMissing = errors.New("game id is required")
)

// EventRepository is the append-only history of every game. Sequence numbers
// are assigned on append and grow monotonically within a game.
type EventRepository interface {
	Append(ctx context.Context, gameID string, events []event.Event) ([]event.Event, error)
	List(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error)
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
