package memory

import (
	"context"
	"strings"

	"tilequest/internal/app/ports"
	"tilequest/internal/domain/event"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, gameID string, events []event.Event) ([]event.Event, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, ports.ErrGameIDMissing
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		r.store.seq[gameID]++
		e.Seq = r.store.seq[gameID]
		e.GameID = gameID
		r.store.events[gameID] = append(r.store.events[gameID], e)
		out = append(out, e)
	}
	return out, nil
}

func (r EventRepo) List(_ context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := []event.Event{}
	for _, e := range r.store.events[strings.TrimSpace(gameID)] {
		if e.Seq <= afterSeq {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
