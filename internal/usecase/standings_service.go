package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
)

type StandingsService struct {
	scheduleRepo schedule.Repository
	standingRepo standing.Repository
}

func NewStandingsService(scheduleRepo schedule.Repository, standingRepo standing.Repository) *StandingsService {
	return &StandingsService{
		scheduleRepo: scheduleRepo,
		standingRepo: standingRepo,
	}
}

type SeasonStandings struct {
	Season  schedule.Season
	Entries []standing.Entry
}

type WeekBreakdown struct {
	WeekID     int64
	WeekNumber int
	Results    []standing.WeeklyResult
}

// GetStandings returns the season leaderboard. seasonID 0 selects the active
// season.
func (s *StandingsService) GetStandings(ctx context.Context, seasonID int64) (SeasonStandings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetStandings")
	defer span.End()

	season, err := s.resolveSeason(ctx, seasonID)
	if err != nil {
		return SeasonStandings{}, err
	}
	stats, err := s.standingRepo.ListSeasonStats(ctx, season.ID)
	if err != nil {
		return SeasonStandings{}, crerr.Wrap(err, "list season stats")
	}
	return SeasonStandings{Season: season, Entries: standing.OrderSeason(stats)}, nil
}

// Leaderboard is GetStandings cut to the first limit entries.
func (s *StandingsService) Leaderboard(ctx context.Context, seasonID int64, limit int) (SeasonStandings, error) {
	if limit <= 0 {
		return SeasonStandings{}, fmt.Errorf("%w: limit must be > 0", ErrInvalidInput)
	}
	out, err := s.GetStandings(ctx, seasonID)
	if err != nil {
		return SeasonStandings{}, err
	}
	if len(out.Entries) > limit {
		out.Entries = out.Entries[:limit]
	}
	return out, nil
}

// WeeklyBreakdown groups the season's weekly results by week number, each
// week ordered by rank. Weeks without results are left out.
func (s *StandingsService) WeeklyBreakdown(ctx context.Context, seasonID int64) ([]WeekBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.WeeklyBreakdown")
	defer span.End()

	season, err := s.resolveSeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}
	results, err := s.standingRepo.ListWeeklyResultsBySeason(ctx, season.ID)
	if err != nil {
		return nil, crerr.Wrap(err, "list weekly results")
	}

	out := make([]WeekBreakdown, 0)
	for _, r := range standing.OrderWeekly(results) {
		if n := len(out); n == 0 || out[n-1].WeekID != r.WeekID {
			out = append(out, WeekBreakdown{WeekID: r.WeekID, WeekNumber: r.WeekNumber})
		}
		last := &out[len(out)-1]
		last.Results = append(last.Results, r)
	}
	return out, nil
}

// WeekResults returns one week's results ordered by rank.
func (s *StandingsService) WeekResults(ctx context.Context, weekID int64) ([]standing.WeeklyResult, error) {
	if weekID <= 0 {
		return nil, fmt.Errorf("%w: week id is required", ErrInvalidInput)
	}
	_, exists, err := s.scheduleRepo.GetWeek(ctx, weekID)
	if err != nil {
		return nil, crerr.Wrap(err, "get week")
	}
	if !exists {
		return nil, fmt.Errorf("%w: week=%d", ErrNotFound, weekID)
	}
	results, err := s.standingRepo.ListWeeklyResultsByWeek(ctx, weekID)
	if err != nil {
		return nil, crerr.Wrap(err, "list weekly results")
	}
	return standing.OrderWeekly(results), nil
}

func (s *StandingsService) UserStats(ctx context.Context, userID string, seasonID int64) (standing.UserSeasonStats, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return standing.UserSeasonStats{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	season, err := s.resolveSeason(ctx, seasonID)
	if err != nil {
		return standing.UserSeasonStats{}, err
	}
	stats, exists, err := s.standingRepo.GetSeasonStats(ctx, userID, season.ID)
	if err != nil {
		return standing.UserSeasonStats{}, crerr.Wrap(err, "get season stats")
	}
	if !exists {
		return standing.UserSeasonStats{}, fmt.Errorf("%w: stats user=%s season=%d", ErrNotFound, userID, season.ID)
	}
	return stats, nil
}

func (s *StandingsService) resolveSeason(ctx context.Context, seasonID int64) (schedule.Season, error) {
	if seasonID < 0 {
		return schedule.Season{}, fmt.Errorf("%w: season id must be >= 0", ErrInvalidInput)
	}
	var (
		season schedule.Season
		exists bool
		err    error
	)
	if seasonID == 0 {
		season, exists, err = s.scheduleRepo.GetActiveSeason(ctx)
	} else {
		season, exists, err = s.scheduleRepo.GetSeason(ctx, seasonID)
	}
	if err != nil {
		return schedule.Season{}, crerr.Wrap(err, "get season")
	}
	if !exists {
		if seasonID == 0 {
			return schedule.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
		}
		return schedule.Season{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	return season, nil
}
