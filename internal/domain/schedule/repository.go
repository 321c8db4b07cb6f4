package schedule

import "context"

// Repository exposes schedule reads plus the operator state transitions.
type Repository interface {
	GetSeason(ctx context.Context, seasonID int64) (Season, bool, error)
	GetActiveSeason(ctx context.Context) (Season, bool, error)
	ListSeasons(ctx context.Context) ([]Season, error)

	// GetWeek returns the week with its games, home and away teams populated.
	GetWeek(ctx context.Context, weekID int64) (Week, bool, error)
	GetActiveWeek(ctx context.Context) (Week, bool, error)
	ListWeeksBySeason(ctx context.Context, seasonID int64) ([]Week, error)
	// ListWeeksWithFinalGames returns weeks that have at least one final game.
	ListWeeksWithFinalGames(ctx context.Context) ([]Week, error)

	ListTeams(ctx context.Context) ([]Team, error)
	GetGame(ctx context.Context, gameID int64) (Game, bool, error)

	// ActivateWeek marks the week and its season active and every other week
	// and season inactive in one transaction.
	ActivateWeek(ctx context.Context, weekID int64) error
	// FinalizeGame stores both scores and sets the final flag.
	FinalizeGame(ctx context.Context, gameID int64, homeScore, awayScore int) error
}
