package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
)

type StandingRepository struct {
	mu     sync.RWMutex
	picks  *PickRepository
	stats  map[string]standing.UserSeasonStats
	weekly map[int64][]standing.WeeklyResult
	now    func() time.Time
}

// NewStandingRepository decides survivor picks stored in picks.
func NewStandingRepository(picks *PickRepository) *StandingRepository {
	return &StandingRepository{
		picks:  picks,
		stats:  make(map[string]standing.UserSeasonStats),
		weekly: make(map[int64][]standing.WeeklyResult),
		now:    time.Now,
	}
}

func (r *StandingRepository) GetSeasonStats(_ context.Context, userID string, seasonID int64) (standing.UserSeasonStats, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stats[userSeasonKey(userID, seasonID)]
	return s, ok, nil
}

func (r *StandingRepository) ListSeasonStats(_ context.Context, seasonID int64) ([]standing.UserSeasonStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.UserSeasonStats, 0)
	for _, s := range r.stats {
		if s.SeasonID == seasonID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *StandingRepository) EnsureSeasonStats(_ context.Context, userID string, seasonID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userSeasonKey(userID, seasonID)
	if _, ok := r.stats[key]; !ok {
		r.stats[key] = standing.UserSeasonStats{UserID: userID, SeasonID: seasonID, UpdatedAt: r.now()}
	}
	return nil
}

func (r *StandingRepository) ListWeeklyResultsByWeek(_ context.Context, weekID int64) ([]standing.WeeklyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]standing.WeeklyResult{}, r.weekly[weekID]...), nil
}

func (r *StandingRepository) ListWeeklyResultsBySeason(_ context.Context, seasonID int64) ([]standing.WeeklyResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.WeeklyResult, 0)
	for _, items := range r.weekly {
		for _, item := range items {
			if item.SeasonID == seasonID {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func (r *StandingRepository) ReplaceWeeklyResults(_ context.Context, seasonID, weekID int64, results []standing.WeeklyResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rows := make([]standing.WeeklyResult, 0, len(results))
	for _, item := range results {
		if item.WeekID != weekID || item.SeasonID != seasonID {
			return fmt.Errorf("weekly result for user %s does not belong to week %d season %d", item.UserID, weekID, seasonID)
		}
		item.UpdatedAt = now
		rows = append(rows, item)
	}
	r.weekly[weekID] = rows

	var seasonRows []standing.WeeklyResult
	for _, items := range r.weekly {
		for _, item := range items {
			if item.SeasonID == seasonID {
				seasonRows = append(seasonRows, item)
			}
		}
	}
	totals := standing.SumWeekly(seasonRows)

	for key, s := range r.stats {
		if s.SeasonID != seasonID {
			continue
		}
		total := totals[s.UserID]
		s.ConfidencePoints = total.ConfidencePoints
		s.PlayoffPoints = total.PlayoffPoints
		s.UpdatedAt = now
		r.stats[key] = s
		delete(totals, s.UserID)
	}
	for userID, total := range totals {
		total.UpdatedAt = now
		r.stats[userSeasonKey(userID, seasonID)] = total
	}
	return nil
}

func (r *StandingRepository) RecordSurvivorResult(_ context.Context, pickID int64, correct bool) (standing.SurvivorOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, applied, err := r.picks.decideSurvivor(pickID, correct)
	if err != nil {
		return standing.SurvivorOutcome{}, err
	}

	key := userSeasonKey(p.UserID, p.SeasonID)
	s, ok := r.stats[key]
	if !ok {
		s = standing.UserSeasonStats{UserID: p.UserID, SeasonID: p.SeasonID}
	}
	outcome := standing.SurvivorOutcome{Applied: applied}
	if applied && !correct {
		wasEliminated := s.IsEliminated
		s = s.ApplyStrike()
		s.UpdatedAt = r.now()
		outcome.NewlyEliminated = s.IsEliminated && !wasEliminated
	}
	r.stats[key] = s
	outcome.Strikes = s.SurvivorStrikes
	outcome.IsEliminated = s.IsEliminated
	return outcome, nil
}

func userSeasonKey(userID string, seasonID int64) string {
	return fmt.Sprintf("%s::%d", userID, seasonID)
}
