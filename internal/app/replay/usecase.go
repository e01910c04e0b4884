package replay

import (
	"context"
	"errors"
	"strings"

	"tilequest/internal/app/game"
	"tilequest/internal/app/ports"
	"tilequest/internal/domain/event"
)

var ErrInvalidRequest = errors.New("invalid replay request")

// UseCase pages through a game's recorded history and rebuilds the state as
// it stood after the last returned event.
type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.GameID = strings.TrimSpace(req.GameID)
	if req.GameID == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	history, err := u.Events.List(ctx, req.GameID, 0, 0)
	if err != nil {
		return Response{}, err
	}
	if len(history) == 0 {
		return Response{}, ports.ErrNotFound
	}

	window := page(history, req.AfterSeq, req.Limit)
	lastSeq := req.AfterSeq
	if len(window) > 0 {
		lastSeq = window[len(window)-1].Seq
	}

	st, err := game.Rebuild(upTo(history, lastSeq))
	if err != nil {
		return Response{}, err
	}
	return Response{Events: window, LastSeq: lastSeq, State: st.View()}, nil
}

func page(events []event.Event, afterSeq uint64, limit int) []event.Event {
	out := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.Seq <= afterSeq {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func upTo(events []event.Event, seq uint64) []event.Event {
	for i, e := range events {
		if e.Seq > seq {
			return events[:i]
		}
	}
	return events
}
