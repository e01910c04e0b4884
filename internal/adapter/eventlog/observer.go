package eventlog

import (
	"tilequest/internal/domain/event"

	"github.com/sirupsen/logrus"
)

// Observer writes the game's event stream to a logrus logger. Logged events
// go out at info level; UI echoes that are never persisted go out at debug.
type Observer struct {
	Log logrus.FieldLogger
}

func New(log logrus.FieldLogger) Observer {
	return Observer{Log: log}
}

func (o Observer) Observe(gameID string, e event.Event) {
	if o.Log == nil {
		return
	}
	entry := o.Log.WithFields(fields(gameID, e))
	if e.IsLogged() {
		entry.Info("game event")
		return
	}
	entry.Debug("game event")
}

func fields(gameID string, e event.Event) logrus.Fields {
	f := logrus.Fields{
		"game_id": gameID,
		"kind":    string(e.Kind),
	}
	if e.TriggeringPlayerID != nil {
		f["triggering_player_id"] = *e.TriggeringPlayerID
	}
	if e.Target != nil {
		f["target_x"] = e.Target.X
		f["target_y"] = e.Target.Y
	}
	if e.Tile != nil {
		f["tile_x"] = e.Tile.X
		f["tile_y"] = e.Tile.Y
		f["terrain"] = string(e.Tile.Terrain)
	}
	if e.Player != nil {
		f["player_id"] = e.Player.ID
		f["player_name"] = e.Player.Name
	}
	if e.Entity != nil {
		f["entity_id"] = e.Entity.ID
		f["entity_owner"] = e.Entity.OwnerPlayerID
	}
	return f
}
