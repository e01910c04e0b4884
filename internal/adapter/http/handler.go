package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"tilequest/internal/app/game"
	"tilequest/internal/app/ports"
	"tilequest/internal/app/replay"
	"tilequest/internal/app/session"
	"tilequest/internal/domain/board"
	"tilequest/internal/domain/event"
	"tilequest/internal/domain/roster"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	SessionUC session.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
	// AllowOrigin is the CORS origin; empty allows any.
	AllowOrigin string
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware(h.AllowOrigin))

	games := s.Group("/api/games")
	games.POST("", h.createGame)
	games.POST("/:game_id/commands", h.command)
	games.GET("/:game_id/state", h.state)
	games.GET("/:game_id/replay", h.replay)
	games.DELETE("/:game_id", h.closeGame)

	s.GET("/ops/kpi", h.kpi)
}

type commandRequest struct {
	Kind               string           `json:"kind"`
	TriggeringPlayerID *int             `json:"triggering_player_id,omitempty"`
	Target             *board.Coord     `json:"target,omitempty"`
	Profiles           []roster.Profile `json:"profiles,omitempty"`
}

func (r commandRequest) command() event.Command {
	return event.Command{
		Kind:               event.Kind(r.Kind),
		TriggeringPlayerID: r.TriggeringPlayerID,
		Target:             r.Target,
		Profiles:           r.Profiles,
	}
}

func (h Handler) createGame(c context.Context, ctx *app.RequestContext) {
	resp, err := h.SessionUC.Create(c, session.CreateRequest{})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) command(c context.Context, ctx *app.RequestContext) {
	var body commandRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if body.Kind == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_kind", "command kind is required")
		return
	}

	resp, err := h.SessionUC.Execute(c, session.Request{
		GameID:  ctx.Param("game_id"),
		Command: body.command(),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) state(c context.Context, ctx *app.RequestContext) {
	view, err := h.SessionUC.State(c, ctx.Param("game_id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	afterSeq, _ := strconv.ParseUint(string(ctx.Query("after_seq")), 10, 64)
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		GameID:   ctx.Param("game_id"),
		AfterSeq: afterSeq,
		Limit:    limit,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) closeGame(c context.Context, ctx *app.RequestContext) {
	if err := h.SessionUC.Close(c, ctx.Param("game_id")); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetStatusCode(consts.StatusNoContent)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, board.ErrCoordinateTaken):
		writeErrorDetails(ctx, consts.StatusConflict, "coordinate_taken", err.Error(), placementDetails(err))
	case errors.Is(err, board.ErrCoordinateUnreachable):
		writeErrorDetails(ctx, consts.StatusConflict, "coordinate_unreachable", err.Error(), placementDetails(err))
	case errors.Is(err, game.ErrGameAlreadyStarted):
		writeErrorBody(ctx, consts.StatusConflict, "game_already_started", err.Error())
	case errors.Is(err, game.ErrDuplicatePlayer):
		details := map[string]any{}
		var dupErr *game.DuplicatePlayerError
		if errors.As(err, &dupErr) && dupErr != nil {
			details["name"] = dupErr.Name
		}
		writeErrorDetails(ctx, consts.StatusConflict, "duplicate_player", err.Error(), details)
	case errors.Is(err, game.ErrUnknownCommand):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_command", err.Error())
	case errors.Is(err, game.ErrNoProfiles),
		errors.Is(err, roster.ErrInvalidProfile):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_profiles", err.Error())
	case errors.Is(err, event.ErrInvalidCommand):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_command", err.Error())
	case errors.Is(err, session.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, ports.ErrGameIDMissing):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func placementDetails(err error) map[string]any {
	var placeErr *board.PlacementError
	if !errors.As(err, &placeErr) || placeErr == nil {
		return nil
	}
	return map[string]any{
		"target": map[string]int{"x": placeErr.Coord.X, "y": placeErr.Coord.Y},
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeErrorDetails(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	if len(details) == 0 {
		writeErrorBody(ctx, status, code, message)
		return
	}
	ctx.JSON(status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
