package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
)

type ScheduleRepository struct {
	mu      sync.RWMutex
	seasons map[int64]schedule.Season
	weeks   map[int64]schedule.Week
	teams   []schedule.Team
}

// NewScheduleRepository stores weeks with their games. Game.WeekID is taken
// from the owning week.
func NewScheduleRepository(seasons []schedule.Season, weeks []schedule.Week, teams []schedule.Team) *ScheduleRepository {
	r := &ScheduleRepository{
		seasons: make(map[int64]schedule.Season, len(seasons)),
		weeks:   make(map[int64]schedule.Week, len(weeks)),
		teams:   append([]schedule.Team(nil), teams...),
	}
	for _, s := range seasons {
		r.seasons[s.ID] = s
	}
	for _, w := range weeks {
		w = cloneWeek(w)
		for i := range w.Games {
			w.Games[i].WeekID = w.ID
		}
		r.weeks[w.ID] = w
	}
	return r
}

func (r *ScheduleRepository) GetSeason(_ context.Context, seasonID int64) (schedule.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.seasons[seasonID]
	return s, ok, nil
}

func (r *ScheduleRepository) GetActiveSeason(_ context.Context) (schedule.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.seasons {
		if s.IsActive {
			return s, true, nil
		}
	}
	return schedule.Season{}, false, nil
}

func (r *ScheduleRepository) ListSeasons(_ context.Context) ([]schedule.Season, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })
	return out, nil
}

func (r *ScheduleRepository) GetWeek(_ context.Context, weekID int64) (schedule.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.weeks[weekID]
	if !ok {
		return schedule.Week{}, false, nil
	}
	return cloneWeek(w), true, nil
}

func (r *ScheduleRepository) GetActiveWeek(_ context.Context) (schedule.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.weeks {
		if w.IsActive {
			return cloneWeek(w), true, nil
		}
	}
	return schedule.Week{}, false, nil
}

func (r *ScheduleRepository) ListWeeksBySeason(_ context.Context, seasonID int64) ([]schedule.Week, error) {
	return r.listWeeks(func(w schedule.Week) bool { return w.SeasonID == seasonID }), nil
}

func (r *ScheduleRepository) ListWeeksWithFinalGames(_ context.Context) ([]schedule.Week, error) {
	return r.listWeeks(func(w schedule.Week) bool { return len(w.FinalGames()) > 0 }), nil
}

func (r *ScheduleRepository) listWeeks(match func(schedule.Week) bool) []schedule.Week {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedule.Week, 0)
	for _, w := range r.weeks {
		if match(w) {
			out = append(out, cloneWeek(w))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonID != out[j].SeasonID {
			return out[i].SeasonID < out[j].SeasonID
		}
		return out[i].Number < out[j].Number
	})
	return out
}

func (r *ScheduleRepository) ListTeams(_ context.Context) ([]schedule.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]schedule.Team(nil), r.teams...)
	sort.Slice(out, func(i, j int) bool { return out[i].Abbreviation < out[j].Abbreviation })
	return out, nil
}

func (r *ScheduleRepository) GetGame(_ context.Context, gameID int64) (schedule.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.weeks {
		for _, g := range w.Games {
			if g.ID == gameID {
				return cloneGame(g), true, nil
			}
		}
	}
	return schedule.Game{}, false, nil
}

func (r *ScheduleRepository) ActivateWeek(_ context.Context, weekID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.weeks[weekID]
	if !ok {
		return fmt.Errorf("week %d not found", weekID)
	}
	for id, w := range r.weeks {
		w.IsActive = id == weekID
		r.weeks[id] = w
	}
	for id, s := range r.seasons {
		s.IsActive = id == target.SeasonID
		r.seasons[id] = s
	}
	return nil
}

func (r *ScheduleRepository) FinalizeGame(_ context.Context, gameID int64, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, w := range r.weeks {
		for i := range w.Games {
			if w.Games[i].ID != gameID {
				continue
			}
			home, away := homeScore, awayScore
			w.Games[i].HomeScore = &home
			w.Games[i].AwayScore = &away
			w.Games[i].IsFinal = true
			r.weeks[id] = w
			return nil
		}
	}
	return fmt.Errorf("game %d not found", gameID)
}

func cloneWeek(w schedule.Week) schedule.Week {
	copied := w
	copied.Games = make([]schedule.Game, 0, len(w.Games))
	for _, g := range w.Games {
		copied.Games = append(copied.Games, cloneGame(g))
	}
	return copied
}

func cloneGame(g schedule.Game) schedule.Game {
	copied := g
	if g.HomeScore != nil {
		v := *g.HomeScore
		copied.HomeScore = &v
	}
	if g.AwayScore != nil {
		v := *g.AwayScore
		copied.AwayScore = &v
	}
	return copied
}
