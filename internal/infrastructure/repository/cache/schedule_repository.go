package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	basecache "github.com/riskibarqy/confidence-pool/internal/platform/cache"
)

const (
	keyTeams         = "team:list"
	keySeasonPrefix  = "season:"
	keySeasonList    = keySeasonPrefix + "list"
	keySeasonActive  = keySeasonPrefix + "active"
	keySeasonByIDFmt = keySeasonPrefix + "id:"
)

// ScheduleRepository caches teams and seasons. Weeks and games are read
// through because scores change while a week is being played.
type ScheduleRepository struct {
	next  schedule.Repository
	cache *basecache.Store
}

func NewScheduleRepository(next schedule.Repository, cache *basecache.Store) *ScheduleRepository {
	return &ScheduleRepository{next: next, cache: cache}
}

func (r *ScheduleRepository) GetSeason(ctx context.Context, seasonID int64) (schedule.Season, bool, error) {
	key := keySeasonByIDFmt + strconv.FormatInt(seasonID, 10)
	cached, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) (cachedSeason, error) {
		item, exists, err := r.next.GetSeason(ctx, seasonID)
		if err != nil {
			return cachedSeason{}, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return schedule.Season{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ScheduleRepository) GetActiveSeason(ctx context.Context) (schedule.Season, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, keySeasonActive, func(ctx context.Context) (cachedSeason, error) {
		item, exists, err := r.next.GetActiveSeason(ctx)
		if err != nil {
			return cachedSeason{}, err
		}
		return cachedSeason{value: item, exists: exists}, nil
	})
	if err != nil {
		return schedule.Season{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *ScheduleRepository) ListSeasons(ctx context.Context) ([]schedule.Season, error) {
	items, err := basecache.Load(ctx, r.cache, keySeasonList, func(ctx context.Context) ([]schedule.Season, error) {
		items, err := r.next.ListSeasons(ctx)
		if err != nil {
			return nil, err
		}
		return append([]schedule.Season(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]schedule.Season(nil), items...), nil
}

func (r *ScheduleRepository) GetWeek(ctx context.Context, weekID int64) (schedule.Week, bool, error) {
	return r.next.GetWeek(ctx, weekID)
}

func (r *ScheduleRepository) GetActiveWeek(ctx context.Context) (schedule.Week, bool, error) {
	return r.next.GetActiveWeek(ctx)
}

func (r *ScheduleRepository) ListWeeksBySeason(ctx context.Context, seasonID int64) ([]schedule.Week, error) {
	return r.next.ListWeeksBySeason(ctx, seasonID)
}

func (r *ScheduleRepository) ListWeeksWithFinalGames(ctx context.Context) ([]schedule.Week, error) {
	return r.next.ListWeeksWithFinalGames(ctx)
}

func (r *ScheduleRepository) ListTeams(ctx context.Context) ([]schedule.Team, error) {
	items, err := basecache.Load(ctx, r.cache, keyTeams, func(ctx context.Context) ([]schedule.Team, error) {
		items, err := r.next.ListTeams(ctx)
		if err != nil {
			return nil, err
		}
		return append([]schedule.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]schedule.Team(nil), items...), nil
}

func (r *ScheduleRepository) GetGame(ctx context.Context, gameID int64) (schedule.Game, bool, error) {
	return r.next.GetGame(ctx, gameID)
}

func (r *ScheduleRepository) ActivateWeek(ctx context.Context, weekID int64) error {
	if err := r.next.ActivateWeek(ctx, weekID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, keySeasonPrefix)
	return nil
}

func (r *ScheduleRepository) FinalizeGame(ctx context.Context, gameID int64, homeScore, awayScore int) error {
	return r.next.FinalizeGame(ctx, gameID, homeScore, awayScore)
}

type cachedSeason struct {
	value  schedule.Season
	exists bool
}
