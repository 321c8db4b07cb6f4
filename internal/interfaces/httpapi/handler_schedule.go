package httpapi

import (
	"net/http"
)

type finalizeGameRequest struct {
	HomeScore *int `json:"home_score" validate:"required,gte=0"`
	AwayScore *int `json:"away_score" validate:"required,gte=0"`
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.scheduleService.ListTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}

func (h *Handler) GetCurrentSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentSeason")
	defer span.End()

	season, err := h.scheduleService.CurrentSeason(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current season failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(season))
}

func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWeeks")
	defer span.End()

	seasonID, err := seasonPathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if seasonID == 0 {
		season, err := h.scheduleService.CurrentSeason(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		seasonID = season.ID
	}

	weeks, err := h.scheduleService.ListWeeks(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list weeks failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weekDTO, 0, len(weeks))
	for _, week := range weeks {
		items = append(items, weekToDTO(week))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetActiveWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveWeek")
	defer span.End()

	week, err := h.scheduleService.ActiveWeek(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get active week failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(week))
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeek")
	defer span.End()

	weekID, err := pathID(r, "weekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week, err := h.scheduleService.GetWeek(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get week failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(week))
}

func (h *Handler) ActivateWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateWeek")
	defer span.End()

	weekID, err := pathID(r, "weekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	week, err := h.scheduleService.ActivateWeek(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "activate week failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weekToDTO(week))
}

func (h *Handler) FinalizeGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeGame")
	defer span.End()

	gameID, err := pathID(r, "gameID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req finalizeGameRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	game, err := h.scheduleService.FinalizeGame(ctx, gameID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "finalize game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(game))
}
