package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"tilequest/internal/app/eventbus"
	"tilequest/internal/app/game"
	"tilequest/internal/app/ports"
	"tilequest/internal/domain/event"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrInvalidRequest = errors.New("invalid game request")

// Observer receives every event of every session, tagged with its game.
type Observer interface {
	Observe(gameID string, e event.Event)
}

type UseCase struct {
	TxManager ports.TxManager
	Events    ports.EventRepository
	Sessions  *Registry
	Manager   game.Manager
	Metrics   ports.CommandMetrics
	Observers []Observer
	Log       logrus.FieldLogger
	Now       func() time.Time
	NewID     func() string
}

func (u UseCase) Create(ctx context.Context, _ CreateRequest) (CreateResponse, error) {
	id := u.newID()
	s := u.newSession(id, game.NewState())

	var created event.Event
	sub := s.bus.Subscribe(func(e event.Event) { created = e })
	s.Notify(event.GameCreated(id, u.now()))
	s.bus.Unsubscribe(sub)

	if _, err := u.persist(ctx, id, []event.Event{created}); err != nil {
		s.bus.Close()
		return CreateResponse{}, err
	}
	u.Sessions.Put(s)
	u.logger().WithField("game_id", id).Info("game created")
	return CreateResponse{GameID: id, State: s.state.View()}, nil
}

// Execute runs one command against its game. Commands for the same game are
// serialized; a rejected command emits nothing and leaves the game untouched.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.GameID = strings.TrimSpace(req.GameID)
	if req.GameID == "" {
		return Response{}, ErrInvalidRequest
	}
	s, err := u.lockSession(ctx, req.GameID)
	if err != nil {
		return Response{}, err
	}
	defer s.mu.Unlock()

	var emitted []event.Event
	sub := s.bus.Subscribe(func(e event.Event) { emitted = append(emitted, e) })
	mgr := u.Manager
	mgr.Bus = s
	if mgr.Now == nil {
		mgr.Now = u.Now
	}
	err = mgr.Dispatch(s.state, req.Command)
	s.bus.Unsubscribe(sub)
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordRejected(req.Command.Kind)
		}
		u.logger().WithFields(logrus.Fields{
			"game_id": req.GameID,
			"kind":    string(req.Command.Kind),
		}).WithError(err).Warn("command rejected")
		return Response{}, err
	}

	events, err := u.persist(ctx, req.GameID, emitted)
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordFailure()
		}
		// live state is now ahead of the stored history
		u.Sessions.Evict(s)
		return Response{}, err
	}
	if u.Metrics != nil {
		u.Metrics.RecordAccepted(req.Command.Kind, len(events))
	}
	return Response{GameID: req.GameID, Events: events, State: s.state.View()}, nil
}

func (u UseCase) State(ctx context.Context, gameID string) (game.View, error) {
	var view game.View
	err := u.WithState(ctx, gameID, func(v game.View) { view = v })
	return view, err
}

// WithState calls fn with the game's current view while holding the game's
// command lock, so no event is emitted between the view and fn returning.
func (u UseCase) WithState(ctx context.Context, gameID string, fn func(game.View)) error {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return ErrInvalidRequest
	}
	s, err := u.lockSession(ctx, gameID)
	if err != nil {
		return err
	}
	defer s.mu.Unlock()
	fn(s.state.View())
	return nil
}

// Close ends the live session. Its history stays in the event repository,
// so the game can be reloaded later.
func (u UseCase) Close(_ context.Context, gameID string) error {
	if !u.Sessions.Remove(strings.TrimSpace(gameID)) {
		return ports.ErrNotFound
	}
	u.logger().WithField("game_id", gameID).Info("game session closed")
	return nil
}

// lockSession returns the live session for gameID with its command lock
// held. A session evicted while waiting for the lock is skipped and the
// lookup repeated.
func (u UseCase) lockSession(ctx context.Context, gameID string) (*Session, error) {
	for {
		s, err := u.session(ctx, gameID)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		if u.Sessions.current(s) {
			return s, nil
		}
		s.mu.Unlock()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

func (u UseCase) session(ctx context.Context, gameID string) (*Session, error) {
	return u.Sessions.GetOrLoad(gameID, func() (*Session, error) {
		history, err := u.Events.List(ctx, gameID, 0, 0)
		if err != nil {
			return nil, err
		}
		if len(history) == 0 {
			return nil, ports.ErrNotFound
		}
		st, err := game.Rebuild(history)
		if err != nil {
			return nil, err
		}
		u.logger().WithFields(logrus.Fields{
			"game_id": gameID,
			"events":  len(history),
		}).Info("game reloaded from history")
		return u.newSession(gameID, st), nil
	})
}

func (u UseCase) newSession(id string, st *game.State) *Session {
	s := &Session{ID: id, bus: eventbus.New(u.logger().WithField("game_id", id)), state: st}
	for _, o := range u.Observers {
		o := o
		s.bus.Subscribe(func(e event.Event) { o.Observe(id, e) })
	}
	return s
}

// persist appends the logged subset of events and returns all of them with
// the stored sequence numbers filled in.
func (u UseCase) persist(ctx context.Context, gameID string, events []event.Event) ([]event.Event, error) {
	logged := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.IsLogged() {
			logged = append(logged, e)
		}
	}
	if len(logged) == 0 {
		return events, nil
	}

	var stored []event.Event
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		stored, err = u.Events.Append(txCtx, gameID, logged)
		return err
	})
	if err != nil {
		u.logger().WithField("game_id", gameID).WithError(err).Error("append events")
		return nil, err
	}

	out := make([]event.Event, len(events))
	copy(out, events)
	next := 0
	for i := range out {
		if !out[i].IsLogged() || next >= len(stored) {
			continue
		}
		out[i].Seq = stored[next].Seq
		next++
	}
	return out, nil
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now()
	}
	return u.Now()
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}

func (u UseCase) logger() logrus.FieldLogger {
	if u.Log == nil {
		return logrus.StandardLogger()
	}
	return u.Log
}
