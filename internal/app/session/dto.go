package session

import (
	"tilequest/internal/app/game"
	"tilequest/internal/domain/event"
)

type CreateRequest struct{}

type CreateResponse struct {
	GameID string    `json:"game_id"`
	State  game.View `json:"state"`
}

type Request struct {
	GameID  string
	Command event.Command
}

type Response struct {
	GameID string        `json:"game_id"`
	Events []event.Event `json:"events"`
	State  game.View     `json:"state"`
}
