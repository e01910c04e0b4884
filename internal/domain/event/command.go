package event

import (
	"errors"
	"time"

	"tilequest/internal/domain/board"
	"tilequest/internal/domain/roster"
)

var ErrInvalidCommand = errors.New("invalid command")

// Command is an inbound player action. Each kind is consumed by exactly one
// game handler, which re-emits it as the raw event of the same kind.
type Command struct {
	Kind               Kind             `json:"kind"`
	TriggeringPlayerID *int             `json:"triggering_player_id,omitempty"`
	Target             *board.Coord     `json:"target,omitempty"`
	Profiles           []roster.Profile `json:"profiles,omitempty"`
}

var commandKinds = map[Kind]struct{}{
	KindUnexploredTileClicked:   {},
	KindExploredTileClicked:     {},
	KindCreateGameButtonClicked: {},
	KindStartGame:               {},
	KindStartGameButtonClicked:  {},
	KindEndTurnButtonClicked:    {},
}

func IsCommandKind(k Kind) bool {
	_, ok := commandKinds[k]
	return ok
}

func (c Command) Validate() error {
	if !IsCommandKind(c.Kind) {
		return ErrInvalidCommand
	}
	switch c.Kind {
	case KindUnexploredTileClicked, KindExploredTileClicked:
		if c.Target == nil {
			return ErrInvalidCommand
		}
	case KindEndTurnButtonClicked:
		if c.TriggeringPlayerID == nil {
			return ErrInvalidCommand
		}
	}
	return nil
}

// Event builds the raw event a handler re-emits for this command.
func (c Command) Event(at time.Time) Event {
	e := New(c.Kind, at).WithTrigger(c.TriggeringPlayerID)
	if c.Target != nil {
		target := *c.Target
		e.Target = &target
	}
	if len(c.Profiles) > 0 {
		e.Profiles = append([]roster.Profile(nil), c.Profiles...)
	}
	return e
}

func UnexploredTileClicked(trigger *int, target board.Coord) Command {
	return Command{Kind: KindUnexploredTileClicked, TriggeringPlayerID: trigger, Target: &target}
}

func ExploredTileClicked(trigger *int, target board.Coord) Command {
	return Command{Kind: KindExploredTileClicked, TriggeringPlayerID: trigger, Target: &target}
}

func CreateGameButtonClicked() Command {
	return Command{Kind: KindCreateGameButtonClicked}
}

func StartGameCommand() Command {
	return Command{Kind: KindStartGame}
}

func StartGameButtonClicked(profiles ...roster.Profile) Command {
	return Command{Kind: KindStartGameButtonClicked, Profiles: profiles}
}

func EndTurnButtonClicked(trigger int) Command {
	return Command{Kind: KindEndTurnButtonClicked, TriggeringPlayerID: PlayerID(trigger)}
}
