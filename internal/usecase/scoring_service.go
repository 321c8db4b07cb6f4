package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
	"github.com/riskibarqy/confidence-pool/internal/platform/id"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
	"github.com/riskibarqy/confidence-pool/internal/platform/resilience"
)

const defaultScoringWorkers = 4

type ScoringConfig struct {
	NonParticipantPolicy NonParticipantPolicy
	Workers              int
}

// ScoringService turns final game results into weekly results, season totals
// and survivor state. Every pass is idempotent.
type ScoringService struct {
	scheduleRepo schedule.Repository
	pickRepo     pick.Repository
	standingRepo standing.Repository
	cfg          ScoringConfig
	ids          id.Generator
	recorder     ScoringRecorder
	logger       *logging.Logger
	now          func() time.Time
	tally        func([]pick.ConfidencePick, map[int64]schedule.Game) (int, []Warning)
	weekFlight   resilience.SingleFlight[ScoreWeekResult]
}

func NewScoringService(
	scheduleRepo schedule.Repository,
	pickRepo pick.Repository,
	standingRepo standing.Repository,
	cfg ScoringConfig,
	ids id.Generator,
	recorder ScoringRecorder,
	logger *logging.Logger,
) *ScoringService {
	if !cfg.NonParticipantPolicy.Valid() {
		cfg.NonParticipantPolicy = NonParticipantOmit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultScoringWorkers
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if recorder == nil {
		recorder = nopScoringRecorder{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		scheduleRepo: scheduleRepo,
		pickRepo:     pickRepo,
		standingRepo: standingRepo,
		cfg:          cfg,
		ids:          ids,
		recorder:     recorder,
		logger:       logger,
		now:          time.Now,
		tally:        tallyConfidence,
	}
}

// ScoreWeek scores every final game of the week. Concurrent calls for the
// same week share one pass.
func (s *ScoringService) ScoreWeek(ctx context.Context, weekID int64) (ScoreWeekResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreWeek", attribute.Int64("week.id", weekID))
	defer span.End()

	if weekID <= 0 {
		return ScoreWeekResult{}, fmt.Errorf("%w: week id is required", ErrInvalidInput)
	}
	runID, err := s.ids.NewID()
	if err != nil {
		return ScoreWeekResult{}, crerr.Wrap(err, "generate run id")
	}

	result, err, _ := s.weekFlight.Do(strconv.FormatInt(weekID, 10), func() (ScoreWeekResult, error) {
		return s.scoreWeek(ctx, runID, weekID)
	})
	return result, err
}

func (s *ScoringService) scoreWeek(ctx context.Context, runID string, weekID int64) (ScoreWeekResult, error) {
	start := s.now()
	logger := s.logger.With("run_id", runID, "week_id", weekID)

	week, exists, err := s.scheduleRepo.GetWeek(ctx, weekID)
	if err != nil {
		s.recorder.ObserveScoreWeek("error", time.Since(start))
		return ScoreWeekResult{}, crerr.Wrap(err, "get week")
	}
	if !exists {
		return ScoreWeekResult{}, fmt.Errorf("%w: week=%d", ErrNotFound, weekID)
	}

	result := ScoreWeekResult{
		RunID:      runID,
		SeasonID:   week.SeasonID,
		WeekID:     week.ID,
		WeekNumber: week.Number,
		TotalGames: len(week.Games),
		ScoredAt:   start,
	}

	finals := week.FinalGames()
	result.FinalGames = len(finals)
	if len(finals) == 0 {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarningNoFinalGames,
			Message: fmt.Sprintf("week %d has no final games", week.Number),
		})
		logger.WarnContext(ctx, "scoring skipped, no final games", "week_number", week.Number)
		s.recorder.AddWarnings(WarningNoFinalGames, 1)
		s.recorder.ObserveScoreWeek("skipped", time.Since(start))
		result.Duration = time.Since(start)
		return result, nil
	}

	scores, err := s.scoreConfidence(ctx, week, &result)
	if err != nil {
		s.recorder.ObserveScoreWeek("error", time.Since(start))
		return ScoreWeekResult{}, err
	}
	if err := s.scoreSurvivor(ctx, week, scores, &result); err != nil {
		s.recorder.ObserveScoreWeek("error", time.Since(start))
		return ScoreWeekResult{}, err
	}
	if err := s.attachSeasonState(ctx, week.SeasonID, scores); err != nil {
		s.recorder.ObserveScoreWeek("error", time.Since(start))
		return ScoreWeekResult{}, err
	}

	result.Users = orderedScores(scores)
	result.Duration = time.Since(start)

	for _, w := range result.Warnings {
		s.recorder.AddWarnings(w.Code, 1)
	}
	s.recorder.AddUserFailures(len(result.Failures))
	outcome := "success"
	if len(result.Failures) > 0 {
		outcome = "partial"
	}
	s.recorder.ObserveScoreWeek(outcome, result.Duration)

	logger.InfoContext(ctx, "week scored",
		"season_id", week.SeasonID,
		"week_number", week.Number,
		"final_games", len(finals),
		"total_games", len(week.Games),
		"users", len(result.Users),
		"warnings", len(result.Warnings),
		"failures", len(result.Failures),
		"duration", result.Duration,
	)
	return result, nil
}

// scoreConfidence tallies correct picks on final games, ranks the week and
// replaces the week's results. Season totals are recomputed by the
// repository in the same transaction.
func (s *ScoringService) scoreConfidence(ctx context.Context, week schedule.Week, result *ScoreWeekResult) (map[string]*UserWeekScore, error) {
	picks, err := s.pickRepo.ListConfidencePicksByWeek(ctx, week.ID)
	if err != nil {
		return nil, crerr.Wrap(err, "list confidence picks")
	}
	previous, err := s.standingRepo.ListWeeklyResultsByWeek(ctx, week.ID)
	if err != nil {
		return nil, crerr.Wrap(err, "list previous weekly results")
	}

	games := make(map[int64]schedule.Game, len(week.Games))
	for _, g := range week.Games {
		games[g.ID] = g
	}

	byUser := make(map[string][]pick.ConfidencePick)
	for _, p := range picks {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	prevByUser := make(map[string]standing.WeeklyResult, len(previous))
	for _, r := range previous {
		prevByUser[r.UserID] = r
	}

	totals := make([]standing.WeeklyTotal, 0, len(byUser))
	for _, userID := range sortedKeys(byUser) {
		var (
			points   int
			warnings []Warning
		)
		var catcher panics.Catcher
		catcher.Try(func() {
			points, warnings = s.tally(byUser[userID], games)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			result.Failures = append(result.Failures, UserFailure{
				UserID:  userID,
				Stage:   "confidence",
				Message: recovered.AsError().Error(),
			})
			s.logger.ErrorContext(ctx, "confidence tally failed", "user_id", userID, "week_id", week.ID, "error", recovered.AsError())
			// the last good total stays until a later pass succeeds
			if prev, ok := prevByUser[userID]; ok {
				totals = append(totals, standing.WeeklyTotal{UserID: userID, ConfidencePoints: prev.ConfidencePoints, Participated: true})
			}
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		totals = append(totals, standing.WeeklyTotal{UserID: userID, ConfidencePoints: points, Participated: true})
	}

	if s.cfg.NonParticipantPolicy == NonParticipantZero {
		members, err := s.standingRepo.ListSeasonStats(ctx, week.SeasonID)
		if err != nil {
			return nil, crerr.Wrap(err, "list season members")
		}
		for _, m := range members {
			if _, picked := byUser[m.UserID]; !picked {
				totals = append(totals, standing.WeeklyTotal{UserID: m.UserID})
			}
		}
	}

	ranked := standing.RankWeek(week.ID, week.SeasonID, week.Number, totals)
	if err := s.standingRepo.ReplaceWeeklyResults(ctx, week.SeasonID, week.ID, ranked); err != nil {
		return nil, crerr.Wrap(err, "replace weekly results")
	}

	scores := make(map[string]*UserWeekScore, len(ranked))
	for _, r := range ranked {
		prev := prevByUser[r.UserID]
		scores[r.UserID] = &UserWeekScore{
			UserID:           r.UserID,
			ConfidencePoints: r.ConfidencePoints,
			ConfidenceDelta:  r.ConfidencePoints - prev.ConfidencePoints,
			Rank:             r.Rank,
			PreviousRank:     prev.Rank,
			PlayoffPoints:    r.PlayoffPoints,
			PlayoffDelta:     r.PlayoffPoints - prev.PlayoffPoints,
		}
	}
	return scores, nil
}

// tallyConfidence sums the weights of correct picks on final games. Ties and
// games still in progress score nothing.
func tallyConfidence(picks []pick.ConfidencePick, games map[int64]schedule.Game) (int, []Warning) {
	var (
		points   int
		warnings []Warning
	)
	for _, p := range picks {
		game, ok := games[p.GameID]
		if !ok {
			warnings = append(warnings, Warning{
				Code:    WarningPickGameNotInWeek,
				UserID:  p.UserID,
				GameID:  p.GameID,
				TeamID:  p.TeamID,
				Message: fmt.Sprintf("confidence pick references game %d outside the week", p.GameID),
			})
			continue
		}
		if game.TeamWon(p.TeamID) {
			points += p.Weight
		}
	}
	return points, warnings
}

// scoreSurvivor decides undecided survivor picks whose game is final. Each
// decision is recorded exactly once; a failure for one user does not stop the
// others.
func (s *ScoringService) scoreSurvivor(ctx context.Context, week schedule.Week, scores map[string]*UserWeekScore, result *ScoreWeekResult) error {
	picks, err := s.pickRepo.ListSurvivorPicksByWeek(ctx, week.ID)
	if err != nil {
		return crerr.Wrap(err, "list survivor picks")
	}

	byUser := make(map[string][]pick.SurvivorPick)
	for _, p := range picks {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	var strikes, eliminations int
	for _, userID := range sortedKeys(byUser) {
		score, ok := scores[userID]
		if !ok {
			score = &UserWeekScore{UserID: userID}
			scores[userID] = score
		}

		var userErr error
		var catcher panics.Catcher
		catcher.Try(func() {
			userErr = s.decideSurvivorPicks(ctx, week, byUser[userID], score, result)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			userErr = recovered.AsError()
		}
		if userErr != nil {
			result.Failures = append(result.Failures, UserFailure{UserID: userID, Stage: "survivor", Message: userErr.Error()})
			s.logger.ErrorContext(ctx, "survivor scoring failed", "user_id", userID, "week_id", week.ID, "error", userErr)
		}

		strikes += score.SurvivorStrikesAdded
		if score.NewlyEliminated {
			eliminations++
		}
	}

	s.recorder.AddSurvivorStrikes(strikes)
	s.recorder.AddEliminations(eliminations)
	return nil
}

func (s *ScoringService) decideSurvivorPicks(ctx context.Context, week schedule.Week, picks []pick.SurvivorPick, score *UserWeekScore, result *ScoreWeekResult) error {
	for _, p := range picks {
		if p.Decided() {
			continue
		}
		game, ok := week.GameForTeam(p.TeamID)
		if !ok {
			result.Warnings = append(result.Warnings, Warning{
				Code:    WarningSurvivorTeamNoGame,
				UserID:  p.UserID,
				TeamID:  p.TeamID,
				Message: fmt.Sprintf("survivor pick %d: team %d has no game in week %d", p.ID, p.TeamID, week.Number),
			})
			s.logger.WarnContext(ctx, "survivor pick skipped, team has no game", "user_id", p.UserID, "team_id", p.TeamID, "week_id", week.ID)
			continue
		}
		if !game.IsFinal {
			score.SurvivorPending++
			continue
		}

		correct := game.TeamWon(p.TeamID)
		outcome, err := s.standingRepo.RecordSurvivorResult(ctx, p.ID, correct)
		if err != nil {
			return crerr.Wrapf(err, "record survivor pick %d", p.ID)
		}
		if !outcome.Applied {
			continue
		}

		score.SurvivorDecided++
		score.SurvivorStrikes = outcome.Strikes
		score.IsEliminated = outcome.IsEliminated
		if !correct {
			score.SurvivorStrikesAdded++
			s.logger.InfoContext(ctx, "survivor strike", "user_id", p.UserID, "team_id", p.TeamID, "strikes", outcome.Strikes)
		}
		if outcome.NewlyEliminated {
			score.NewlyEliminated = true
			s.logger.InfoContext(ctx, "survivor eliminated", "user_id", p.UserID, "season_id", week.SeasonID)
		}
	}
	return nil
}

// attachSeasonState fills current strike and elimination state for every
// scored user.
func (s *ScoringService) attachSeasonState(ctx context.Context, seasonID int64, scores map[string]*UserWeekScore) error {
	stats, err := s.standingRepo.ListSeasonStats(ctx, seasonID)
	if err != nil {
		return crerr.Wrap(err, "list season stats")
	}
	for _, st := range stats {
		if score, ok := scores[st.UserID]; ok {
			score.SurvivorStrikes = st.SurvivorStrikes
			score.IsEliminated = st.IsEliminated
		}
	}
	return nil
}

// ScorePending scores every week with at least one final game. Seasons run
// concurrently on a worker pool; weeks of one season run in week order.
func (s *ScoringService) ScorePending(ctx context.Context) (ScorePendingResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScorePending")
	defer span.End()

	runID, err := s.ids.NewID()
	if err != nil {
		return ScorePendingResult{}, crerr.Wrap(err, "generate run id")
	}
	weeks, err := s.scheduleRepo.ListWeeksWithFinalGames(ctx)
	if err != nil {
		return ScorePendingResult{}, crerr.Wrap(err, "list weeks with final games")
	}

	bySeason := make(map[int64][]schedule.Week)
	for _, w := range weeks {
		bySeason[w.SeasonID] = append(bySeason[w.SeasonID], w)
	}
	out := ScorePendingResult{RunID: runID}
	if len(bySeason) == 0 {
		s.logger.InfoContext(ctx, "no pending weeks to score", "run_id", runID)
		return out, nil
	}

	workerCount := s.cfg.Workers
	if workerCount > len(bySeason) {
		workerCount = len(bySeason)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ScorePendingResult{}, crerr.Wrap(err, "create worker pool")
	}
	defer pool.Release()

	var (
		mu      sync.Mutex
		workers sync.WaitGroup
	)
	for seasonID, seasonWeeks := range bySeason {
		seasonID := seasonID
		seasonWeeks := seasonWeeks
		sort.Slice(seasonWeeks, func(i, j int) bool { return seasonWeeks[i].Number < seasonWeeks[j].Number })

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			for _, w := range seasonWeeks {
				res, err := s.ScoreWeek(ctx, w.ID)
				mu.Lock()
				if err != nil {
					out.Failures = append(out.Failures, WeekFailure{SeasonID: seasonID, WeekID: w.ID, Message: err.Error()})
				} else {
					out.Weeks = append(out.Weeks, res)
				}
				mu.Unlock()
				if err != nil {
					s.logger.ErrorContext(ctx, "score pending week failed", "run_id", runID, "season_id", seasonID, "week_id", w.ID, "error", err)
				}
			}
		}); err != nil {
			workers.Done()
			return ScorePendingResult{}, crerr.Wrap(err, "submit season to worker pool")
		}
	}
	workers.Wait()

	sort.Slice(out.Weeks, func(i, j int) bool {
		if out.Weeks[i].SeasonID != out.Weeks[j].SeasonID {
			return out.Weeks[i].SeasonID < out.Weeks[j].SeasonID
		}
		return out.Weeks[i].WeekNumber < out.Weeks[j].WeekNumber
	})
	sort.Slice(out.Failures, func(i, j int) bool { return out.Failures[i].WeekID < out.Failures[j].WeekID })

	s.logger.InfoContext(ctx, "pending weeks scored",
		"run_id", runID,
		"seasons", len(bySeason),
		"weeks", len(out.Weeks),
		"failures", len(out.Failures),
	)
	return out, nil
}

func orderedScores(scores map[string]*UserWeekScore) []UserWeekScore {
	out := make([]UserWeekScore, 0, len(scores))
	for _, sc := range scores {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].Rank, out[j].Rank
		// survivor-only users have no rank and go last
		if (ri == 0) != (rj == 0) {
			return rj == 0
		}
		if ri != rj {
			return ri < rj
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
