package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/confidence-pool/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/confidence-pool/internal/platform/querybuilder"
)

// BootstrapSeed loads the sample schedule into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, kickoff time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM seasons`); err != nil {
		return fmt.Errorf("count seasons for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	teams := make([]teamInsertModel, 0)
	for _, t := range memory.SeedTeams() {
		teams = append(teams, teamInsertModel{ID: t.ID, Abbreviation: t.Abbreviation, Name: t.Name, City: t.City})
	}
	seasons := make([]seasonInsertModel, 0)
	for _, s := range memory.SeedSeasons() {
		seasons = append(seasons, seasonInsertModel{ID: s.ID, Year: s.Year, IsActive: s.IsActive})
	}
	weeks := make([]weekInsertModel, 0)
	games := make([]gameInsertModel, 0)
	for _, w := range memory.SeedWeeks(kickoff) {
		weeks = append(weeks, weekInsertModel{
			ID:            w.ID,
			SeasonID:      w.SeasonID,
			Number:        w.Number,
			IsActive:      w.IsActive,
			PicksDeadline: timeToNull(w.PicksDeadline),
		})
		for _, g := range w.Games {
			games = append(games, gameInsertModel{
				ID:         g.ID,
				WeekID:     w.ID,
				HomeTeamID: g.HomeTeam.ID,
				AwayTeamID: g.AwayTeam.ID,
				GameTime:   g.GameTime,
			})
		}
	}

	inserts := []struct {
		table  string
		models any
	}{
		{table: "teams", models: teams},
		{table: "seasons", models: seasons},
		{table: "weeks", models: weeks},
		{table: "games", models: games},
	}
	for _, item := range inserts {
		query, args, err := qb.InsertModels(item.table, item.models, "ON CONFLICT (id) DO NOTHING")
		if err != nil {
			return fmt.Errorf("build seed %s query: %w", item.table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s: %w", item.table, err)
		}
		// Explicit ids leave the serial behind.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))`,
			item.table, item.table,
		)); err != nil {
			return fmt.Errorf("advance %s sequence: %w", item.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
