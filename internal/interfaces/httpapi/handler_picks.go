package httpapi

import (
	"net/http"

	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

type confidenceAssignmentRequest struct {
	GameID int64 `json:"game_id" validate:"required,gt=0"`
	TeamID int64 `json:"team_id" validate:"required,gt=0"`
	Weight int   `json:"weight"`
}

type submitPicksRequest struct {
	Confidence      []confidenceAssignmentRequest `json:"confidence" validate:"omitempty,dive"`
	SurvivorTeamIDs []int64                       `json:"survivor_team_ids"`
}

func (h *Handler) SubmitPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPicks")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weekID, err := pathID(r, "weekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req submitPicksRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	assignments := make([]pick.ConfidenceAssignment, 0, len(req.Confidence))
	for _, item := range req.Confidence {
		assignments = append(assignments, pick.ConfidenceAssignment{
			GameID: item.GameID,
			TeamID: item.TeamID,
			Weight: item.Weight,
		})
	}

	stored, err := h.pickService.Submit(ctx, usecase.SubmitPicksInput{
		UserID:     userID,
		WeekID:     weekID,
		Confidence: assignments,
		Survivor:   req.SurvivorTeamIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit picks failed", "user_id", userID, "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picksToDTO(userID, weekID, stored))
}

func (h *Handler) GetMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyPicks")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weekID, err := pathID(r, "weekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	stored, err := h.pickService.GetPicks(ctx, userID, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get picks failed", "user_id", userID, "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, picksToDTO(userID, weekID, stored))
}

func (h *Handler) ListAvailableSurvivorTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailableSurvivorTeams")
	defer span.End()

	userID, err := requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weekID, err := pathID(r, "weekID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	teams, err := h.pickService.AvailableSurvivorTeams(ctx, userID, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list survivor teams failed", "user_id", userID, "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(teams))
}
