package game

import (
	"time"

	"tilequest/internal/domain/event"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) Notify(e event.Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []event.Kind {
	out := make([]event.Kind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestManager() (Manager, *recorder) {
	rec := &recorder{}
	return Manager{
		Bus: rec,
		Now: func() time.Time { return time.Unix(1700000000, 0) },
	}, rec
}
