package httpapi

import (
	"time"

	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

type teamDTO struct {
	ID           int64  `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	City         string `json:"city"`
	DisplayName  string `json:"display_name"`
}

type seasonDTO struct {
	ID       int64 `json:"id"`
	Year     int   `json:"year"`
	IsActive bool  `json:"is_active"`
}

type gameDTO struct {
	ID        int64     `json:"id"`
	WeekID    int64     `json:"week_id"`
	HomeTeam  teamDTO   `json:"home_team"`
	AwayTeam  teamDTO   `json:"away_team"`
	GameTime  time.Time `json:"game_time"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
	IsFinal   bool      `json:"is_final"`
	WinnerID  *int64    `json:"winner_team_id,omitempty"`
	IsTie     bool      `json:"is_tie"`
}

type weekDTO struct {
	ID                    int64      `json:"id"`
	SeasonID              int64      `json:"season_id"`
	Number                int        `json:"week_number"`
	IsActive              bool       `json:"is_active"`
	PicksDeadline         *time.Time `json:"picks_deadline,omitempty"`
	SurvivorPicksRequired int        `json:"survivor_picks_required"`
	Games                 []gameDTO  `json:"games"`
}

type confidencePickDTO struct {
	GameID int64 `json:"game_id"`
	TeamID int64 `json:"team_id"`
	Weight int   `json:"weight"`
}

type survivorPickDTO struct {
	ID        int64 `json:"id"`
	TeamID    int64 `json:"team_id"`
	IsCorrect *bool `json:"is_correct"`
}

type picksDTO struct {
	UserID     string              `json:"user_id"`
	WeekID     int64               `json:"week_id"`
	Confidence []confidencePickDTO `json:"confidence"`
	Survivor   []survivorPickDTO   `json:"survivor"`
}

type standingEntryDTO struct {
	Position         int    `json:"position"`
	UserID           string `json:"user_id"`
	PlayoffPoints    int    `json:"playoff_points"`
	ConfidencePoints int    `json:"confidence_points"`
	SurvivorStrikes  int    `json:"survivor_strikes"`
	IsEliminated     bool   `json:"is_eliminated"`
}

type standingsDTO struct {
	Season  seasonDTO          `json:"season"`
	Entries []standingEntryDTO `json:"entries"`
}

type weeklyResultDTO struct {
	UserID           string `json:"user_id"`
	WeekID           int64  `json:"week_id"`
	WeekNumber       int    `json:"week_number"`
	ConfidencePoints int    `json:"confidence_points"`
	Rank             int    `json:"rank"`
	PlayoffPoints    int    `json:"playoff_points"`
}

type weekBreakdownDTO struct {
	WeekID     int64             `json:"week_id"`
	WeekNumber int               `json:"week_number"`
	Results    []weeklyResultDTO `json:"results"`
}

type seasonStatsDTO struct {
	UserID           string `json:"user_id"`
	SeasonID         int64  `json:"season_id"`
	ConfidencePoints int    `json:"confidence_points"`
	PlayoffPoints    int    `json:"playoff_points"`
	SurvivorStrikes  int    `json:"survivor_strikes"`
	IsEliminated     bool   `json:"is_eliminated"`
}

type userWeekScoreDTO struct {
	UserID               string `json:"user_id"`
	ConfidencePoints     int    `json:"confidence_points"`
	ConfidenceDelta      int    `json:"confidence_delta"`
	Rank                 int    `json:"rank"`
	PreviousRank         int    `json:"previous_rank,omitempty"`
	PlayoffPoints        int    `json:"playoff_points"`
	PlayoffDelta         int    `json:"playoff_delta"`
	SurvivorDecided      int    `json:"survivor_decided"`
	SurvivorPending      int    `json:"survivor_pending"`
	SurvivorStrikesAdded int    `json:"survivor_strikes_added"`
	SurvivorStrikes      int    `json:"survivor_strikes"`
	IsEliminated         bool   `json:"is_eliminated"`
	NewlyEliminated      bool   `json:"newly_eliminated"`
}

type warningDTO struct {
	Code    string `json:"code"`
	UserID  string `json:"user_id,omitempty"`
	GameID  int64  `json:"game_id,omitempty"`
	TeamID  int64  `json:"team_id,omitempty"`
	Message string `json:"message"`
}

type userFailureDTO struct {
	UserID  string `json:"user_id"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type scoreWeekResultDTO struct {
	RunID      string             `json:"run_id"`
	SeasonID   int64              `json:"season_id"`
	WeekID     int64              `json:"week_id"`
	WeekNumber int                `json:"week_number"`
	Skipped    bool               `json:"skipped"`
	FinalGames int                `json:"final_games"`
	TotalGames int                `json:"total_games"`
	Users      []userWeekScoreDTO `json:"users"`
	Warnings   []warningDTO       `json:"warnings"`
	Failures   []userFailureDTO   `json:"failures"`
	ScoredAt   time.Time          `json:"scored_at"`
	DurationMS int64              `json:"duration_ms"`
}

type weekFailureDTO struct {
	SeasonID int64  `json:"season_id"`
	WeekID   int64  `json:"week_id"`
	Message  string `json:"message"`
}

type scorePendingResultDTO struct {
	RunID    string               `json:"run_id"`
	Weeks    []scoreWeekResultDTO `json:"weeks"`
	Failures []weekFailureDTO     `json:"failures"`
}

func teamToDTO(t schedule.Team) teamDTO {
	return teamDTO{
		ID:           t.ID,
		Abbreviation: t.Abbreviation,
		Name:         t.Name,
		City:         t.City,
		DisplayName:  t.DisplayName(),
	}
}

func teamsToDTO(teams []schedule.Team) []teamDTO {
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamToDTO(t))
	}
	return out
}

func seasonToDTO(s schedule.Season) seasonDTO {
	return seasonDTO{ID: s.ID, Year: s.Year, IsActive: s.IsActive}
}

func gameToDTO(g schedule.Game) gameDTO {
	out := gameDTO{
		ID:        g.ID,
		WeekID:    g.WeekID,
		HomeTeam:  teamToDTO(g.HomeTeam),
		AwayTeam:  teamToDTO(g.AwayTeam),
		GameTime:  g.GameTime,
		HomeScore: g.HomeScore,
		AwayScore: g.AwayScore,
		IsFinal:   g.IsFinal,
		IsTie:     g.IsTie(),
	}
	if winner, ok := g.Winner(); ok {
		out.WinnerID = &winner
	}
	return out
}

func weekToDTO(w schedule.Week) weekDTO {
	out := weekDTO{
		ID:                    w.ID,
		SeasonID:              w.SeasonID,
		Number:                w.Number,
		IsActive:              w.IsActive,
		SurvivorPicksRequired: w.SurvivorPicksRequired(),
		Games:                 make([]gameDTO, 0, len(w.Games)),
	}
	if !w.PicksDeadline.IsZero() {
		deadline := w.PicksDeadline
		out.PicksDeadline = &deadline
	}
	for _, g := range w.Games {
		out.Games = append(out.Games, gameToDTO(g))
	}
	return out
}

func picksToDTO(userID string, weekID int64, p pick.Picks) picksDTO {
	out := picksDTO{
		UserID:     userID,
		WeekID:     weekID,
		Confidence: make([]confidencePickDTO, 0, len(p.Confidence)),
		Survivor:   make([]survivorPickDTO, 0, len(p.Survivor)),
	}
	for _, c := range p.Confidence {
		out.Confidence = append(out.Confidence, confidencePickDTO{GameID: c.GameID, TeamID: c.TeamID, Weight: c.Weight})
	}
	for _, s := range p.Survivor {
		out.Survivor = append(out.Survivor, survivorPickDTO{ID: s.ID, TeamID: s.TeamID, IsCorrect: s.IsCorrect})
	}
	return out
}

func standingsToDTO(s usecase.SeasonStandings) standingsDTO {
	out := standingsDTO{
		Season:  seasonToDTO(s.Season),
		Entries: make([]standingEntryDTO, 0, len(s.Entries)),
	}
	for _, e := range s.Entries {
		out.Entries = append(out.Entries, standingEntryDTO{
			Position:         e.Position,
			UserID:           e.UserID,
			PlayoffPoints:    e.PlayoffPoints,
			ConfidencePoints: e.ConfidencePoints,
			SurvivorStrikes:  e.SurvivorStrikes,
			IsEliminated:     e.IsEliminated,
		})
	}
	return out
}

func weeklyResultsToDTO(results []standing.WeeklyResult) []weeklyResultDTO {
	out := make([]weeklyResultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, weeklyResultDTO{
			UserID:           r.UserID,
			WeekID:           r.WeekID,
			WeekNumber:       r.WeekNumber,
			ConfidencePoints: r.ConfidencePoints,
			Rank:             r.Rank,
			PlayoffPoints:    r.PlayoffPoints,
		})
	}
	return out
}

func seasonStatsToDTO(s standing.UserSeasonStats) seasonStatsDTO {
	return seasonStatsDTO{
		UserID:           s.UserID,
		SeasonID:         s.SeasonID,
		ConfidencePoints: s.ConfidencePoints,
		PlayoffPoints:    s.PlayoffPoints,
		SurvivorStrikes:  s.SurvivorStrikes,
		IsEliminated:     s.IsEliminated,
	}
}

func scoreWeekResultToDTO(r usecase.ScoreWeekResult) scoreWeekResultDTO {
	out := scoreWeekResultDTO{
		RunID:      r.RunID,
		SeasonID:   r.SeasonID,
		WeekID:     r.WeekID,
		WeekNumber: r.WeekNumber,
		Skipped:    r.Skipped(),
		FinalGames: r.FinalGames,
		TotalGames: r.TotalGames,
		Users:      make([]userWeekScoreDTO, 0, len(r.Users)),
		Warnings:   make([]warningDTO, 0, len(r.Warnings)),
		Failures:   make([]userFailureDTO, 0, len(r.Failures)),
		ScoredAt:   r.ScoredAt,
		DurationMS: r.Duration.Milliseconds(),
	}
	for _, u := range r.Users {
		out.Users = append(out.Users, userWeekScoreDTO{
			UserID:               u.UserID,
			ConfidencePoints:     u.ConfidencePoints,
			ConfidenceDelta:      u.ConfidenceDelta,
			Rank:                 u.Rank,
			PreviousRank:         u.PreviousRank,
			PlayoffPoints:        u.PlayoffPoints,
			PlayoffDelta:         u.PlayoffDelta,
			SurvivorDecided:      u.SurvivorDecided,
			SurvivorPending:      u.SurvivorPending,
			SurvivorStrikesAdded: u.SurvivorStrikesAdded,
			SurvivorStrikes:      u.SurvivorStrikes,
			IsEliminated:         u.IsEliminated,
			NewlyEliminated:      u.NewlyEliminated,
		})
	}
	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, warningDTO{
			Code:    w.Code,
			UserID:  w.UserID,
			GameID:  w.GameID,
			TeamID:  w.TeamID,
			Message: w.Message,
		})
	}
	for _, f := range r.Failures {
		out.Failures = append(out.Failures, userFailureDTO{UserID: f.UserID, Stage: f.Stage, Message: f.Message})
	}
	return out
}
