package replay

import (
	"tilequest/internal/app/game"
	"tilequest/internal/domain/event"
)

type Request struct {
	GameID   string
	AfterSeq uint64
	Limit    int
}

type Response struct {
	Events  []event.Event `json:"events"`
	LastSeq uint64        `json:"last_seq"`
	State   game.View     `json:"state"`
}
