package game

import "tilequest/internal/domain/event"

type commandHandler func(Manager, *State, event.Command) error

func commandRegistry() map[event.Kind]commandHandler {
	return map[event.Kind]commandHandler{
		event.KindUnexploredTileClicked:   Manager.UnexploredTileClicked,
		event.KindExploredTileClicked:     Manager.ExploredTileClicked,
		event.KindCreateGameButtonClicked: Manager.CreateGameButtonClicked,
		event.KindStartGame:               Manager.StartGame,
		event.KindStartGameButtonClicked:  Manager.StartGameButtonClicked,
		event.KindEndTurnButtonClicked:    Manager.EndTurnButtonClicked,
	}
}

// Dispatch validates cmd and hands it to the handler registered for its kind.
func (m Manager) Dispatch(st *State, cmd event.Command) error {
	handler, ok := commandRegistry()[cmd.Kind]
	if !ok {
		return ErrUnknownCommand
	}
	if err := cmd.Validate(); err != nil {
		return err
	}
	return handler(m, st, cmd)
}
