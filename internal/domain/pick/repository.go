package pick

import "context"

type Repository interface {
	GetUserWeekPicks(ctx context.Context, userID string, weekID int64) (Picks, error)
	ListConfidencePicksByWeek(ctx context.Context, weekID int64) ([]ConfidencePick, error)
	ListSurvivorPicksByWeek(ctx context.Context, weekID int64) ([]SurvivorPick, error)
	// ListSurvivorHistory returns every survivor pick the user made in the season.
	ListSurvivorHistory(ctx context.Context, userID string, seasonID int64) ([]SurvivorPick, error)
	// ReplaceUserWeekPicks deletes the user's picks for the week and inserts
	// picks in the same transaction. A survivor team already used in another
	// week of the season fails with ErrSurvivorTeamUsed. A survivor pick that
	// carries IsCorrect is stored as already decided.
	ReplaceUserWeekPicks(ctx context.Context, userID string, weekID int64, picks Picks) error
}
