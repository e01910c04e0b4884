package inmemory

import (
	"testing"

	"tilequest/internal/domain/event"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordAccepted(event.KindUnexploredTileClicked, 2)
	r.RecordAccepted(event.KindEndTurnButtonClicked, 2)
	r.RecordRejected(event.KindUnexploredTileClicked)
	r.RecordFailure()

	s := r.Snapshot()
	if s.CommandTotal != 4 {
		t.Fatalf("expected total 4, got %d", s.CommandTotal)
	}
	if s.CommandAccepted != 2 {
		t.Fatalf("expected accepted 2, got %d", s.CommandAccepted)
	}
	if s.CommandRejected != 1 {
		t.Fatalf("expected rejected 1, got %d", s.CommandRejected)
	}
	if s.CommandFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.CommandFailure)
	}
	if s.EventsEmitted != 4 {
		t.Fatalf("expected 4 emitted events, got %d", s.EventsEmitted)
	}
	if s.AcceptedByKind[string(event.KindUnexploredTileClicked)] != 1 {
		t.Fatalf("expected one accepted tile click")
	}
	if s.RejectedByKind[string(event.KindUnexploredTileClicked)] != 1 {
		t.Fatalf("expected one rejected tile click")
	}
}

func TestRecorderSnapshot_IsDetached(t *testing.T) {
	r := NewRecorder()
	r.RecordAccepted(event.KindStartGame, 1)
	s := r.Snapshot()
	s.AcceptedByKind[string(event.KindStartGame)] = 99

	if got := r.Snapshot().AcceptedByKind[string(event.KindStartGame)]; got != 1 {
		t.Fatalf("snapshot aliasing recorder state: got=%d", got)
	}
}
