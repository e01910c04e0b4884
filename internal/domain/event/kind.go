package event

type Kind string

const (
	KindGameCreated             Kind = "game_created"
	KindUnexploredTileClicked   Kind = "unexplored_tile_clicked"
	KindExploredTileClicked     Kind = "explored_tile_clicked"
	KindTileAdded               Kind = "tile_added"
	KindCreateGameButtonClicked Kind = "create_game_button_clicked"
	KindStartGame               Kind = "start_game"
	KindStartGameButtonClicked  Kind = "start_game_button_clicked"
	KindPlayerCreated           Kind = "player_created"
	KindEntityCreated           Kind = "entity_created"
	KindEndTurnButtonClicked    Kind = "end_turn_button_clicked"
	KindEndTurn                 Kind = "end_turn"

	// Combat kinds are declared for observers; nothing emits them yet.
	KindAttacked    Kind = "attacked"
	KindAttacking   Kind = "attacking"
	KindDamageDealt Kind = "damage_dealt"
	KindDamageTaken Kind = "damage_taken"
	KindHealed      Kind = "healed"
	KindHealing     Kind = "healing"
	KindMoving      Kind = "moving"
	KindTargeted    Kind = "targeted"
	KindTargeting   Kind = "targeting"
)

var knownKinds = map[Kind]struct{}{
	KindGameCreated:             {},
	KindUnexploredTileClicked:   {},
	KindExploredTileClicked:     {},
	KindTileAdded:               {},
	KindCreateGameButtonClicked: {},
	KindStartGame:               {},
	KindStartGameButtonClicked:  {},
	KindPlayerCreated:           {},
	KindEntityCreated:           {},
	KindEndTurnButtonClicked:    {},
	KindEndTurn:                 {},
	KindAttacked:                {},
	KindAttacking:               {},
	KindDamageDealt:             {},
	KindDamageTaken:             {},
	KindHealed:                  {},
	KindHealing:                 {},
	KindMoving:                  {},
	KindTargeted:                {},
	KindTargeting:               {},
}

func (k Kind) Valid() bool {
	_, ok := knownKinds[k]
	return ok
}

// Logged reports whether events of this kind belong in the persisted history.
// Button acknowledgements that only drive the UI are skipped.
func (k Kind) Logged() bool {
	switch k {
	case KindCreateGameButtonClicked, KindStartGameButtonClicked:
		return false
	default:
		return true
	}
}
