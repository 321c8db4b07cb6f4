package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

const (
	currentSeasonAlias = "current"
	maxRequestBytes    = 1 << 20
	maxLeaderboardSize = 500
)

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

type Handler struct {
	pickService      *usecase.PickService
	scoringService   *usecase.ScoringService
	standingsService *usecase.StandingsService
	scheduleService  *usecase.ScheduleService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	pickService *usecase.PickService,
	scoringService *usecase.ScoringService,
	standingsService *usecase.StandingsService,
	scheduleService *usecase.ScheduleService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		pickService:      pickService,
		scoringService:   scoringService,
		standingsService: standingsService,
		scheduleService:  scheduleService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeBody decodes a JSON body, rejecting unknown fields. An empty body
// leaves dst untouched when allowEmpty is set.
func decodeBody(r *http.Request, dst any, allowEmpty bool) error {
	body := http.MaxBytesReader(nil, r.Body, maxRequestBytes)
	if err := strictJSON.NewDecoder(body).Decode(dst); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

// seasonPathID accepts a season id or "current", which maps to 0.
func seasonPathID(r *http.Request) (int64, error) {
	if strings.EqualFold(strings.TrimSpace(r.PathValue("seasonID")), currentSeasonAlias) {
		return 0, nil
	}
	return pathID(r, "seasonID")
}

func queryLimit(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("limit"))
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > maxLeaderboardSize {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxLeaderboardSize)
	}
	return limit, nil
}

func requireUserID(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: user is missing from request context", usecase.ErrUnauthorized)
	}
	return userID, nil
}
