package httpapi

import (
	"net/http"
)

type scoreWeekRequest struct {
	WeekID int64 `json:"week_id" validate:"required,gt=0"`
}

func (h *Handler) RunScoreWeekJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScoreWeekJob")
	defer span.End()

	var req scoreWeekRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scoringService.ScoreWeek(ctx, req.WeekID)
	if err != nil {
		h.logger.WarnContext(ctx, "run score week job failed", "week_id", req.WeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoreWeekResultToDTO(result))
}

func (h *Handler) RunScorePendingJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunScorePendingJob")
	defer span.End()

	result, err := h.scoringService.ScorePending(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run score pending job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	weeks := make([]scoreWeekResultDTO, 0, len(result.Weeks))
	for _, week := range result.Weeks {
		weeks = append(weeks, scoreWeekResultToDTO(week))
	}
	failures := make([]weekFailureDTO, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, weekFailureDTO{SeasonID: f.SeasonID, WeekID: f.WeekID, Message: f.Message})
	}

	writeSuccess(ctx, w, http.StatusOK, scorePendingResultDTO{
		RunID:    result.RunID,
		Weeks:    weeks,
		Failures: failures,
	})
}
