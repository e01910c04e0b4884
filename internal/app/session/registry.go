package session

import (
	"sort"
	"sync"

	"tilequest/internal/app/eventbus"
	"tilequest/internal/app/game"
	"tilequest/internal/domain/event"

	"golang.org/x/sync/singleflight"
)

// Session is one live game: its state, and the bus its observers hang off.
// mu serializes commands so handlers never interleave.
type Session struct {
	ID    string
	mu    sync.Mutex
	bus   *eventbus.Bus
	state *game.State
}

func (s *Session) Bus() *eventbus.Bus {
	return s.bus
}

// Notify stamps the game id on e before broadcasting it.
func (s *Session) Notify(e event.Event) {
	e.GameID = s.ID
	s.bus.Notify(e)
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	loads    singleflight.Group
}

func NewRegistry() *Registry {
	return &Registry{sessions: map[string]*Session{}}
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// GetOrLoad returns the live session for id, building it with load when it
// is not in memory. Concurrent callers for the same id share one load, and
// the load runs without holding the registry lock.
func (r *Registry) GetOrLoad(id string, load func() (*Session, error)) (*Session, error) {
	if s, ok := r.Get(id); ok {
		return s, nil
	}
	v, err, _ := r.loads.Do(id, func() (any, error) {
		if s, ok := r.Get(id); ok {
			return s, nil
		}
		s, err := load()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		defer r.mu.Unlock()
		if existing, ok := r.sessions[id]; ok {
			s.bus.Close()
			return existing, nil
		}
		r.sessions[id] = s
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

// Remove evicts the session and tears down its bus.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		s.bus.Close()
	}
	return ok
}

// Evict removes s only if it is still the live session for its id. The bus
// of s is closed either way.
func (r *Registry) Evict(s *Session) bool {
	r.mu.Lock()
	cur, ok := r.sessions[s.ID]
	live := ok && cur == s
	if live {
		delete(r.sessions, s.ID)
	}
	r.mu.Unlock()
	s.bus.Close()
	return live
}

// current reports whether s is the session registered under its id.
func (r *Registry) current(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.sessions[s.ID]
	return ok && cur == s
}

func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
