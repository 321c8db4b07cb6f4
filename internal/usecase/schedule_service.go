package usecase

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

// ScheduleService owns the operator transitions on schedule data: activating
// a week and marking games final.
type ScheduleService struct {
	scheduleRepo schedule.Repository
	jobs         ScoreJobPublisher
	logger       *logging.Logger
}

// ScoreJobPublisher schedules an asynchronous scoring pass for a week.
// Duplicate dedupIDs must be collapsed by the implementation.
type ScoreJobPublisher interface {
	PublishScoreWeek(ctx context.Context, weekID int64, dedupID string) error
}

func NewScheduleService(scheduleRepo schedule.Repository, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScheduleService{scheduleRepo: scheduleRepo, logger: logger}
}

// WithScoreJobs makes FinalizeGame queue a scoring pass for the game's week.
func (s *ScheduleService) WithScoreJobs(jobs ScoreJobPublisher) *ScheduleService {
	s.jobs = jobs
	return s
}

func (s *ScheduleService) CurrentSeason(ctx context.Context) (schedule.Season, error) {
	season, exists, err := s.scheduleRepo.GetActiveSeason(ctx)
	if err != nil {
		return schedule.Season{}, crerr.Wrap(err, "get active season")
	}
	if !exists {
		return schedule.Season{}, fmt.Errorf("%w: no active season", ErrNotFound)
	}
	return season, nil
}

func (s *ScheduleService) ActiveWeek(ctx context.Context) (schedule.Week, error) {
	week, exists, err := s.scheduleRepo.GetActiveWeek(ctx)
	if err != nil {
		return schedule.Week{}, crerr.Wrap(err, "get active week")
	}
	if !exists {
		return schedule.Week{}, fmt.Errorf("%w: no active week", ErrNotFound)
	}
	return week, nil
}

func (s *ScheduleService) GetWeek(ctx context.Context, weekID int64) (schedule.Week, error) {
	if weekID <= 0 {
		return schedule.Week{}, fmt.Errorf("%w: week id is required", ErrInvalidInput)
	}
	week, exists, err := s.scheduleRepo.GetWeek(ctx, weekID)
	if err != nil {
		return schedule.Week{}, crerr.Wrap(err, "get week")
	}
	if !exists {
		return schedule.Week{}, fmt.Errorf("%w: week=%d", ErrNotFound, weekID)
	}
	return week, nil
}

func (s *ScheduleService) ListWeeks(ctx context.Context, seasonID int64) ([]schedule.Week, error) {
	if seasonID <= 0 {
		return nil, fmt.Errorf("%w: season id is required", ErrInvalidInput)
	}
	_, exists, err := s.scheduleRepo.GetSeason(ctx, seasonID)
	if err != nil {
		return nil, crerr.Wrap(err, "get season")
	}
	if !exists {
		return nil, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	weeks, err := s.scheduleRepo.ListWeeksBySeason(ctx, seasonID)
	if err != nil {
		return nil, crerr.Wrap(err, "list weeks")
	}
	return weeks, nil
}

func (s *ScheduleService) ListTeams(ctx context.Context) ([]schedule.Team, error) {
	teams, err := s.scheduleRepo.ListTeams(ctx)
	if err != nil {
		return nil, crerr.Wrap(err, "list teams")
	}
	return teams, nil
}

// ActivateWeek makes weekID and its season the only active week and season.
func (s *ScheduleService) ActivateWeek(ctx context.Context, weekID int64) (schedule.Week, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.ActivateWeek", attribute.Int64("week.id", weekID))
	defer span.End()

	week, err := s.GetWeek(ctx, weekID)
	if err != nil {
		return schedule.Week{}, err
	}
	if err := s.scheduleRepo.ActivateWeek(ctx, week.ID); err != nil {
		return schedule.Week{}, crerr.Wrap(err, "activate week")
	}

	s.logger.InfoContext(ctx, "week activated", "week_id", week.ID, "season_id", week.SeasonID, "week_number", week.Number)
	week.IsActive = true
	return week, nil
}

// FinalizeGame stores the final score of a game. Re-finalizing with other
// scores is allowed for corrections; survivor picks that were already decided
// keep their result.
func (s *ScheduleService) FinalizeGame(ctx context.Context, gameID int64, homeScore, awayScore int) (schedule.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.FinalizeGame", attribute.Int64("game.id", gameID))
	defer span.End()

	if gameID <= 0 {
		return schedule.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if err := schedule.ValidateScores(&homeScore, &awayScore); err != nil {
		return schedule.Game{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	game, exists, err := s.scheduleRepo.GetGame(ctx, gameID)
	if err != nil {
		return schedule.Game{}, crerr.Wrap(err, "get game")
	}
	if !exists {
		return schedule.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
	}
	if game.IsFinal && game.HomeScore != nil && game.AwayScore != nil && (*game.HomeScore != homeScore || *game.AwayScore != awayScore) {
		s.logger.WarnContext(ctx, "final score corrected",
			"game_id", gameID,
			"old_home", *game.HomeScore,
			"old_away", *game.AwayScore,
			"new_home", homeScore,
			"new_away", awayScore,
		)
	}

	if err := s.scheduleRepo.FinalizeGame(ctx, gameID, homeScore, awayScore); err != nil {
		return schedule.Game{}, crerr.Wrap(err, "finalize game")
	}

	game.HomeScore = &homeScore
	game.AwayScore = &awayScore
	game.IsFinal = true
	s.logger.InfoContext(ctx, "game finalized", "game_id", gameID, "week_id", game.WeekID, "home", homeScore, "away", awayScore)

	if s.jobs != nil {
		// a lost job only delays scoring; operators can still trigger it
		dedupID := fmt.Sprintf("score-week-%d-game-%d-%d-%d", game.WeekID, gameID, homeScore, awayScore)
		if err := s.jobs.PublishScoreWeek(ctx, game.WeekID, dedupID); err != nil {
			s.logger.WarnContext(ctx, "queue score week job failed", "week_id", game.WeekID, "game_id", gameID, "error", err)
		}
	}
	return game, nil
}
