package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
)

type PickRepository struct {
	mu         sync.RWMutex
	confidence map[string][]pick.ConfidencePick
	survivor   map[string][]pick.SurvivorPick
	nextID     int64
	now        func() time.Time
}

func NewPickRepository() *PickRepository {
	return &PickRepository{
		confidence: make(map[string][]pick.ConfidencePick),
		survivor:   make(map[string][]pick.SurvivorPick),
		now:        time.Now,
	}
}

func (r *PickRepository) GetUserWeekPicks(_ context.Context, userID string, weekID int64) (pick.Picks, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := userWeekKey(userID, weekID)
	return pick.Picks{
		Confidence: append([]pick.ConfidencePick{}, r.confidence[key]...),
		Survivor:   cloneSurvivorPicks(r.survivor[key]),
	}, nil
}

func (r *PickRepository) ListConfidencePicksByWeek(_ context.Context, weekID int64) ([]pick.ConfidencePick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.ConfidencePick, 0)
	for _, items := range r.confidence {
		for _, p := range items {
			if p.WeekID == weekID {
				out = append(out, p)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PickRepository) ListSurvivorPicksByWeek(_ context.Context, weekID int64) ([]pick.SurvivorPick, error) {
	return r.listSurvivor(func(p pick.SurvivorPick) bool { return p.WeekID == weekID }), nil
}

func (r *PickRepository) ListSurvivorHistory(_ context.Context, userID string, seasonID int64) ([]pick.SurvivorPick, error) {
	return r.listSurvivor(func(p pick.SurvivorPick) bool {
		return p.UserID == userID && p.SeasonID == seasonID
	}), nil
}

func (r *PickRepository) listSurvivor(match func(pick.SurvivorPick) bool) []pick.SurvivorPick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.SurvivorPick, 0)
	for _, items := range r.survivor {
		for _, p := range items {
			if match(p) {
				out = append(out, cloneSurvivorPick(p))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *PickRepository) ReplaceUserWeekPicks(_ context.Context, userID string, weekID int64, picks pick.Picks) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userWeekKey(userID, weekID)
	for _, p := range picks.Survivor {
		for otherKey, items := range r.survivor {
			if otherKey == key {
				continue
			}
			for _, existing := range items {
				if existing.UserID == userID && existing.SeasonID == p.SeasonID && existing.TeamID == p.TeamID {
					return fmt.Errorf("%w: team=%d", pick.ErrSurvivorTeamUsed, p.TeamID)
				}
			}
		}
	}

	now := r.now()
	confidence := make([]pick.ConfidencePick, 0, len(picks.Confidence))
	for _, p := range picks.Confidence {
		r.nextID++
		p.ID = r.nextID
		p.UserID = userID
		p.WeekID = weekID
		p.CreatedAt = now
		confidence = append(confidence, p)
	}
	survivor := make([]pick.SurvivorPick, 0, len(picks.Survivor))
	for _, p := range picks.Survivor {
		r.nextID++
		p = cloneSurvivorPick(p)
		p.ID = r.nextID
		p.UserID = userID
		p.WeekID = weekID
		p.CreatedAt = now
		survivor = append(survivor, p)
	}

	r.confidence[key] = confidence
	r.survivor[key] = survivor
	return nil
}

// decideSurvivor sets the result of an undecided pick. applied is false when
// the pick was already decided.
func (r *PickRepository) decideSurvivor(pickID int64, correct bool) (pick.SurvivorPick, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, items := range r.survivor {
		for i := range items {
			if items[i].ID != pickID {
				continue
			}
			if items[i].Decided() {
				return cloneSurvivorPick(items[i]), false, nil
			}
			v := correct
			items[i].IsCorrect = &v
			r.survivor[key] = items
			return cloneSurvivorPick(items[i]), true, nil
		}
	}
	return pick.SurvivorPick{}, false, fmt.Errorf("survivor pick %d not found", pickID)
}

func userWeekKey(userID string, weekID int64) string {
	return fmt.Sprintf("%s::%d", userID, weekID)
}

func cloneSurvivorPicks(items []pick.SurvivorPick) []pick.SurvivorPick {
	out := make([]pick.SurvivorPick, 0, len(items))
	for _, p := range items {
		out = append(out, cloneSurvivorPick(p))
	}
	return out
}

func cloneSurvivorPick(p pick.SurvivorPick) pick.SurvivorPick {
	if p.IsCorrect != nil {
		v := *p.IsCorrect
		p.IsCorrect = &v
	}
	return p
}
