package memory

import (
	"sync"

	"tilequest/internal/domain/event"
)

// Store keeps every game's history in process memory. tx serializes
// transactions; mu guards the data itself.
type Store struct {
	tx     sync.Mutex
	mu     sync.RWMutex
	events map[string][]event.Event
	seq    map[string]uint64
}

func NewStore() *Store {
	return &Store{
		events: make(map[string][]event.Event),
		seq:    make(map[string]uint64),
	}
}
