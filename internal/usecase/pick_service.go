package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
)

type PickServiceConfig struct {
	Rules           pick.Rules
	EnforceDeadline bool
}

type PickService struct {
	scheduleRepo schedule.Repository
	pickRepo     pick.Repository
	standingRepo standing.Repository
	cfg          PickServiceConfig
	logger       *logging.Logger
	now          func() time.Time
}

type SubmitPicksInput struct {
	UserID     string
	WeekID     int64
	Confidence []pick.ConfidenceAssignment
	Survivor   []int64
}

func NewPickService(
	scheduleRepo schedule.Repository,
	pickRepo pick.Repository,
	standingRepo standing.Repository,
	cfg PickServiceConfig,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PickService{
		scheduleRepo: scheduleRepo,
		pickRepo:     pickRepo,
		standingRepo: standingRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// Submit validates a user's full pick set for a week and replaces the stored
// picks atomically. Every violation is reported through *pick.ValidationError.
func (s *PickService) Submit(ctx context.Context, input SubmitPicksInput) (pick.Picks, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit",
		attribute.Int64("week.id", input.WeekID),
	)
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	if userID == "" {
		return pick.Picks{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	week, err := s.loadWeek(ctx, input.WeekID)
	if err != nil {
		return pick.Picks{}, err
	}
	if s.cfg.EnforceDeadline && week.DeadlinePassed(s.now()) {
		return pick.Picks{}, fmt.Errorf("%w: week %d locked at %s", ErrDeadlinePassed, week.Number, week.PicksDeadline.Format(time.RFC3339))
	}

	var (
		stats      standing.UserSeasonStats
		statsErr   error
		history    []pick.SurvivorPick
		historyErr error
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		stats, _, statsErr = s.standingRepo.GetSeasonStats(ctx, userID, week.SeasonID)
	})
	wg.Go(func() {
		history, historyErr = s.pickRepo.ListSurvivorHistory(ctx, userID, week.SeasonID)
	})
	wg.Wait()
	if statsErr != nil {
		return pick.Picks{}, crerr.Wrap(statsErr, "get season stats")
	}
	if historyErr != nil {
		return pick.Picks{}, crerr.Wrap(historyErr, "list survivor history")
	}

	var stored pick.Picks
	if len(week.FinalGames()) > 0 {
		if stored, err = s.pickRepo.GetUserWeekPicks(ctx, userID, week.ID); err != nil {
			return pick.Picks{}, crerr.Wrap(err, "get stored picks")
		}
	}
	weekSurvivor := survivorPicksInWeek(history, week.ID)

	required := week.SurvivorPicksRequired()
	if stats.IsEliminated && !anyDecided(weekSurvivor) {
		required = 0
	}

	sub := pick.Submission{
		UserID:     userID,
		WeekID:     week.ID,
		Confidence: input.Confidence,
		Survivor:   input.Survivor,
	}
	if err := pick.Validate(pick.ValidationInput{
		Week:             week,
		Submission:       sub,
		SurvivorRequired: required,
		SurvivorHistory:  history,
		Stored:           stored,
		Rules:            s.cfg.Rules,
	}); err != nil {
		return pick.Picks{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.standingRepo.EnsureSeasonStats(ctx, userID, week.SeasonID); err != nil {
		return pick.Picks{}, crerr.Wrap(err, "ensure season stats")
	}
	picks := pick.ToPicks(sub, week.SeasonID)
	picks.KeepDecisions(weekSurvivor)
	if err := s.pickRepo.ReplaceUserWeekPicks(ctx, userID, week.ID, picks); err != nil {
		if crerr.Is(err, pick.ErrSurvivorTeamUsed) {
			verr := &pick.ValidationError{Violations: []pick.Violation{{
				Field:   pick.FieldSurvivor,
				Code:    pick.CodeSurvivorReused,
				Message: "survivor team was already used this season",
			}}}
			return pick.Picks{}, fmt.Errorf("%w: %w", ErrInvalidInput, verr)
		}
		return pick.Picks{}, crerr.Wrap(err, "replace picks")
	}

	s.logger.InfoContext(ctx, "picks submitted",
		"user_id", userID,
		"week_id", week.ID,
		"week_number", week.Number,
		"confidence_picks", len(sub.Confidence),
		"survivor_picks", len(sub.Survivor),
	)

	stored, err = s.pickRepo.GetUserWeekPicks(ctx, userID, week.ID)
	if err != nil {
		return pick.Picks{}, crerr.Wrap(err, "reload picks")
	}
	return stored, nil
}

// GetPicks returns the user's current picks for the week. The result is
// empty when nothing was submitted yet.
func (s *PickService) GetPicks(ctx context.Context, userID string, weekID int64) (pick.Picks, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetPicks")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return pick.Picks{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if _, err := s.loadWeek(ctx, weekID); err != nil {
		return pick.Picks{}, err
	}

	picks, err := s.pickRepo.GetUserWeekPicks(ctx, userID, weekID)
	if err != nil {
		return pick.Picks{}, crerr.Wrap(err, "get picks")
	}
	return picks, nil
}

// AvailableSurvivorTeams lists the teams playing in the week that the user has
// not used as a survivor pick in another week of the season.
func (s *PickService) AvailableSurvivorTeams(ctx context.Context, userID string, weekID int64) ([]schedule.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.AvailableSurvivorTeams")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	week, err := s.loadWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}
	history, err := s.pickRepo.ListSurvivorHistory(ctx, userID, week.SeasonID)
	if err != nil {
		return nil, crerr.Wrap(err, "list survivor history")
	}

	used := make(map[int64]struct{}, len(history))
	for _, p := range history {
		if p.WeekID != week.ID {
			used[p.TeamID] = struct{}{}
		}
	}

	out := make([]schedule.Team, 0, len(week.Games)*2)
	for _, g := range week.Games {
		for _, team := range []schedule.Team{g.AwayTeam, g.HomeTeam} {
			if _, ok := used[team.ID]; !ok {
				out = append(out, team)
			}
		}
	}
	return out, nil
}

func (s *PickService) loadWeek(ctx context.Context, weekID int64) (schedule.Week, error) {
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

func survivorPicksInWeek(history []pick.SurvivorPick, weekID int64) []pick.SurvivorPick {
	var out []pick.SurvivorPick
	for _, p := range history {
		if p.WeekID == weekID {
			out = append(out, p)
		}
	}
	return out
}

// anyDecided reports whether a survivor pick already has a result. A user
// eliminated by this week's pick still resubmits it unchanged.
func anyDecided(picks []pick.SurvivorPick) bool {
	for _, p := range picks {
		if p.Decided() {
			return true
		}
	}
	return false
}
