package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	seasonID, err := seasonPathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryLimit(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var standings usecase.SeasonStandings
	if limit > 0 {
		standings, err = h.standingsService.Leaderboard(ctx, seasonID, limit)
	} else {
		standings, err = h.standingsService.GetStandings(ctx, seasonID)
	}
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "season_id", seasonID, "limit", limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(standings))
}

func (h *Handler) GetWeeklyBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeeklyBreakdown")
	defer span.End()

	seasonID, err := seasonPathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	weeks, err := h.standingsService.WeeklyBreakdown(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get weekly breakdown failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weekBreakdownDTO, 0, len(weeks))
	for _, week := range weeks {
		items = append(items, weekBreakdownDTO{
			WeekID:     week.WeekID,
			WeekNumber: week.WeekNumber,
			Results:    weeklyResultsToDTO(week.Results),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetWeekResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekResults")
	defer span.End()

	weekID, err := pathID(r, "weekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.standingsService.WeekResults(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get week results failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, weeklyResultsToDTO(results))
}

func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUserStats")
	defer span.End()

	seasonID, err := seasonPathID(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	userID := strings.TrimSpace(r.PathValue("userID"))

	stats, err := h.standingsService.UserStats(ctx, userID, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get user stats failed", "user_id", userID, "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonStatsToDTO(stats))
}
