package standing

import "context"

type Repository interface {
	GetSeasonStats(ctx context.Context, userID string, seasonID int64) (UserSeasonStats, bool, error)
	ListSeasonStats(ctx context.Context, seasonID int64) ([]UserSeasonStats, error)
	// EnsureSeasonStats creates an empty stats row for a season member.
	EnsureSeasonStats(ctx context.Context, userID string, seasonID int64) error

	ListWeeklyResultsByWeek(ctx context.Context, weekID int64) ([]WeeklyResult, error)
	ListWeeklyResultsBySeason(ctx context.Context, seasonID int64) ([]WeeklyResult, error)
	// ReplaceWeeklyResults swaps the week's rows and recomputes every season
	// total from the weekly rows in one transaction.
	ReplaceWeeklyResults(ctx context.Context, seasonID, weekID int64, results []WeeklyResult) error

	// RecordSurvivorResult decides a survivor pick that is still undecided and
	// applies the strike on a loss, atomically.
	RecordSurvivorResult(ctx context.Context, pickID int64, correct bool) (SurvivorOutcome, error)
}
