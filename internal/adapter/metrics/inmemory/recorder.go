package inmemory

import (
	"sync"

	"tilequest/internal/domain/event"
)

type Snapshot struct {
	CommandTotal    uint64            `json:"command_total"`
	CommandAccepted uint64            `json:"command_accepted"`
	CommandRejected uint64            `json:"command_rejected"`
	CommandFailure  uint64            `json:"command_failure"`
	EventsEmitted   uint64            `json:"events_emitted"`
	AcceptedByKind  map[string]uint64 `json:"accepted_by_kind"`
	RejectedByKind  map[string]uint64 `json:"rejected_by_kind"`
}

type Recorder struct {
	mu       sync.Mutex
	accepted uint64
	rejected uint64
	failure  uint64
	emitted  uint64
	byKindOK map[string]uint64
	byKindNo map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byKindOK: map[string]uint64{},
		byKindNo: map[string]uint64{},
	}
}

func (r *Recorder) RecordAccepted(kind event.Kind, emitted int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	if emitted > 0 {
		r.emitted += uint64(emitted)
	}
	r.byKindOK[string(kind)]++
}

func (r *Recorder) RecordRejected(kind event.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byKindNo[string(kind)]++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		CommandAccepted: r.accepted,
		CommandRejected: r.rejected,
		CommandFailure:  r.failure,
		CommandTotal:    r.accepted + r.rejected + r.failure,
		EventsEmitted:   r.emitted,
		AcceptedByKind:  make(map[string]uint64, len(r.byKindOK)),
		RejectedByKind:  make(map[string]uint64, len(r.byKindNo)),
	}
	for k, v := range r.byKindOK {
		out.AcceptedByKind[k] = v
	}
	for k, v := range r.byKindNo {
		out.RejectedByKind[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
