package gormrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"tilequest/internal/adapter/repo/gorm/model"
	"tilequest/internal/app/ports"
	"tilequest/internal/domain/event"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventRepo stores each event as a JSON payload. The row id doubles as the
// event sequence number, so sequences grow within a game but are not dense.
type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, gameID string, events []event.Event) ([]event.Event, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return nil, ports.ErrGameIDMissing
	}
	if len(events) == 0 {
		return nil, nil
	}
	rows := make([]model.GameEvent, 0, len(events))
	for _, e := range events {
		e.GameID = gameID
		e.Seq = 0
		b, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("encode %s event: %w", e.Kind, err)
		}
		rows = append(rows, model.GameEvent{
			GameID:             gameID,
			Kind:               string(e.Kind),
			TriggeringPlayerID: toInt64Ptr(e.TriggeringPlayerID),
			OccurredAt:         e.OccurredAt,
			Payload:            b,
		})
	}
	if err := dbFromCtx(ctx, r.db).Create(&rows).Error; err != nil {
		return nil, fmt.Errorf("insert game events: %w", err)
	}

	out := make([]event.Event, 0, len(events))
	for i, e := range events {
		e.GameID = gameID
		e.Seq = uint64(rows[i].ID)
		out = append(out, e)
	}
	return out, nil
}

func (r EventRepo) List(ctx context.Context, gameID string, afterSeq uint64, limit int) ([]event.Event, error) {
	rows := []model.GameEvent{}
	query := dbFromCtx(ctx, r.db).
		Where("game_id = ? AND id > ?", strings.TrimSpace(gameID), int64(afterSeq)).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "id"}}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list game events: %w", err)
	}

	out := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		var e event.Event
		if err := json.Unmarshal(row.Payload, &e); err != nil {
			return nil, fmt.Errorf("decode game event %d: %w", row.ID, err)
		}
		e.Seq = uint64(row.ID)
		e.GameID = row.GameID
		out = append(out, e)
	}
	return out, nil
}

func toInt64Ptr(v *int) *int64 {
	if v == nil {
		return nil
	}
	n := int64(*v)
	return &n
}
