package roster

import (
	"errors"
	"strings"

	"tilequest/internal/domain/board"
)

const DefaultEntityKind = "sapphire"

var (
	ErrDuplicateID    = errors.New("duplicate id")
	ErrInvalidProfile = errors.New("invalid player profile")
)

type Profile struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidProfile
	}
	return nil
}

type Player struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func NewPlayer(id int, p Profile) Player {
	return Player{ID: id, Name: strings.TrimSpace(p.Name), Color: strings.TrimSpace(p.Color)}
}

type Attachment struct {
	Kind string `json:"kind"`
	Name string `json:"name,omitempty"`
}

type Entity struct {
	ID            int          `json:"id"`
	OwnerPlayerID int          `json:"owner_player_id"`
	Kind          string       `json:"kind"`
	Position      board.Coord  `json:"position"`
	Attachments   []Attachment `json:"attachments"`
}

func NewEntity(id, ownerPlayerID int, kind string, pos board.Coord) Entity {
	if kind == "" {
		kind = DefaultEntityKind
	}
	return Entity{
		ID:            id,
		OwnerPlayerID: ownerPlayerID,
		Kind:          kind,
		Position:      pos,
		Attachments:   []Attachment{},
	}
}
