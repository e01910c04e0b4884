package game

import (
	"errors"
	"strings"
	"time"

	"tilequest/internal/domain/board"
	"tilequest/internal/domain/event"
	"tilequest/internal/domain/roster"
)

var (
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrDuplicatePlayer    = errors.New("duplicate player")
	ErrNoProfiles         = errors.New("no player profiles")
	ErrUnknownCommand     = errors.New("unknown command")
)

type DuplicatePlayerError struct {
	Name string
}

func (e *DuplicatePlayerError) Error() string {
	return ErrDuplicatePlayer.Error() + ": " + e.Name
}

func (e *DuplicatePlayerError) Unwrap() error {
	return ErrDuplicatePlayer
}

type Notifier interface {
	Notify(event.Event)
}

// Manager turns commands into state changes and events. It keeps no state of
// its own; every handler validates first and emits nothing when it rejects.
type Manager struct {
	Bus                Notifier
	Executor           board.Executor
	DefaultTerrain     board.Terrain
	StartingEntityKind string
	Now                func() time.Time
}

func (m Manager) UnexploredTileClicked(st *State, cmd event.Command) error {
	if cmd.Target == nil {
		return event.ErrInvalidCommand
	}
	target := *cmd.Target
	if err := m.Executor.CanPlace(st.Board, target); err != nil {
		return err
	}
	m.Bus.Notify(cmd.Event(m.now()))

	tile := board.NewTile(target, m.terrain())
	boundsBefore := st.Board.Bounds()
	updated, err := m.Executor.AddTile(st.Board, tile)
	if err != nil {
		return err
	}
	m.Bus.Notify(event.TileAdded(cmd.TriggeringPlayerID, tile, updated.Snapshot(), boundsBefore, m.now()))
	return nil
}

func (m Manager) ExploredTileClicked(_ *State, cmd event.Command) error {
	m.Bus.Notify(cmd.Event(m.now()))
	return nil
}

func (m Manager) CreateGameButtonClicked(_ *State, cmd event.Command) error {
	m.Bus.Notify(cmd.Event(m.now()))
	return nil
}

func (m Manager) StartGame(st *State, cmd event.Command) error {
	if st.Started {
		return ErrGameAlreadyStarted
	}
	st.Started = true
	m.Bus.Notify(cmd.Event(m.now()))
	return nil
}

func (m Manager) StartGameButtonClicked(st *State, cmd event.Command) error {
	if err := checkProfiles(st, cmd.Profiles); err != nil {
		return err
	}
	m.Bus.Notify(cmd.Event(m.now()))

	nextPlayerID := st.Players.NextID()
	nextEntityID := st.Entities.NextID()
	for _, profile := range cmd.Profiles {
		player := roster.NewPlayer(nextPlayerID, profile)
		if err := st.Players.Add(player); err != nil {
			return err
		}
		m.Bus.Notify(event.PlayerCreated(player, m.now()))

		entity := roster.NewEntity(nextEntityID, player.ID, m.StartingEntityKind, board.Origin)
		if err := st.Entities.Add(entity); err != nil {
			return err
		}
		m.Bus.Notify(event.EntityCreated(entity, m.now()))

		nextPlayerID++
		nextEntityID++
	}

	st.Started = true
	m.Bus.Notify(event.StartGame(m.now()))
	return nil
}

func (m Manager) EndTurnButtonClicked(_ *State, cmd event.Command) error {
	m.Bus.Notify(cmd.Event(m.now()))
	m.Bus.Notify(event.EndTurn(cmd.TriggeringPlayerID, m.now()))
	return nil
}

func checkProfiles(st *State, profiles []roster.Profile) error {
	if st.Started {
		return ErrGameAlreadyStarted
	}
	if len(profiles) == 0 {
		return ErrNoProfiles
	}
	seen := map[string]struct{}{}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			return err
		}
		key := strings.ToLower(strings.TrimSpace(p.Name))
		if _, dup := seen[key]; dup || st.Players.HasName(p.Name) {
			return &DuplicatePlayerError{Name: strings.TrimSpace(p.Name)}
		}
		seen[key] = struct{}{}
	}
	return nil
}

func (m Manager) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m Manager) terrain() board.Terrain {
	if m.DefaultTerrain == "" {
		return board.TerrainGrass
	}
	return m.DefaultTerrain
}
