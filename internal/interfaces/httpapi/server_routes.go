package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/seasons/current", handler.GetCurrentSeason)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/weeks", handler.ListWeeks)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/weekly-results", handler.GetWeeklyBreakdown)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/users/{userID}/stats", handler.GetUserStats)
	mux.HandleFunc("GET /v1/weeks/active", handler.GetActiveWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}", handler.GetWeek)
	mux.HandleFunc("GET /v1/weeks/{weekID}/results", handler.GetWeekResults)
}

func registerParticipantRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/weeks/{weekID}/picks", RequireUser(http.HandlerFunc(handler.GetMyPicks)))
	mux.Handle("PUT /v1/weeks/{weekID}/picks", RequireUser(http.HandlerFunc(handler.SubmitPicks)))
	mux.Handle("GET /v1/weeks/{weekID}/survivor-teams", RequireUser(http.HandlerFunc(handler.ListAvailableSurvivorTeams)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/score-week", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScoreWeekJob)))
	mux.Handle("POST /v1/internal/jobs/score-pending", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunScorePendingJob)))
	mux.Handle("POST /v1/internal/weeks/{weekID}/activate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ActivateWeek)))
	mux.Handle("PUT /v1/internal/games/{gameID}/result", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.FinalizeGame)))
}
