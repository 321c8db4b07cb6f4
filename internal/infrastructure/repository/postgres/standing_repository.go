package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
	qb "github.com/riskibarqy/confidence-pool/internal/platform/querybuilder"
)

var (
	userSeasonStatsColumns = []string{"user_id", "season_id", "confidence_points", "playoff_points", "survivor_strikes", "is_eliminated", "updated_at"}
	weeklyResultColumns    = []string{"user_id", "week_id", "season_id", "week_number", "confidence_points", "rank", "playoff_points", "updated_at"}
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) GetSeasonStats(ctx context.Context, userID string, seasonID int64) (standing.UserSeasonStats, bool, error) {
	query, args, err := qb.Select(userSeasonStatsColumns...).From("user_season_stats").
		Where(qb.Eq("user_id", userID), qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return standing.UserSeasonStats{}, false, fmt.Errorf("build get season stats query: %w", err)
	}

	var row userSeasonStatsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return standing.UserSeasonStats{}, false, nil
		}
		return standing.UserSeasonStats{}, false, fmt.Errorf("get season stats: %w", err)
	}
	return seasonStatsFromRow(row), true, nil
}

func (r *StandingRepository) ListSeasonStats(ctx context.Context, seasonID int64) ([]standing.UserSeasonStats, error) {
	query, args, err := qb.Select(userSeasonStatsColumns...).From("user_season_stats").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("playoff_points DESC", "confidence_points DESC", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season stats query: %w", err)
	}

	var rows []userSeasonStatsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season stats: %w", err)
	}

	out := make([]standing.UserSeasonStats, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonStatsFromRow(row))
	}
	return out, nil
}

func (r *StandingRepository) EnsureSeasonStats(ctx context.Context, userID string, seasonID int64) error {
	query, args, err := qb.InsertModel("user_season_stats", userSeasonStatsInsertModel{
		UserID:   userID,
		SeasonID: seasonID,
	}, "ON CONFLICT (user_id, season_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build ensure season stats query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("ensure season stats user=%s season=%d: %w", userID, seasonID, err)
	}
	return nil
}

func (r *StandingRepository) ListWeeklyResultsByWeek(ctx context.Context, weekID int64) ([]standing.WeeklyResult, error) {
	return r.listWeekly(ctx, qb.Eq("week_id", weekID))
}

func (r *StandingRepository) ListWeeklyResultsBySeason(ctx context.Context, seasonID int64) ([]standing.WeeklyResult, error) {
	return r.listWeekly(ctx, qb.Eq("season_id", seasonID))
}

func (r *StandingRepository) listWeekly(ctx context.Context, where ...qb.Condition) ([]standing.WeeklyResult, error) {
	query, args, err := qb.Select(weeklyResultColumns...).From("weekly_results").
		Where(where...).
		OrderBy("week_number", "rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly results query: %w", err)
	}

	var rows []weeklyResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly results: %w", err)
	}

	out := make([]standing.WeeklyResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, standing.WeeklyResult{
			UserID:           row.UserID,
			WeekID:           row.WeekID,
			SeasonID:         row.SeasonID,
			WeekNumber:       row.WeekNumber,
			ConfidencePoints: row.ConfidencePoints,
			Rank:             row.Rank,
			PlayoffPoints:    row.PlayoffPoints,
			UpdatedAt:        row.UpdatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *StandingRepository) ReplaceWeeklyResults(ctx context.Context, seasonID, weekID int64, results []standing.WeeklyResult) error {
	models := make([]weeklyResultInsertModel, 0, len(results))
	for _, item := range results {
		if item.WeekID != weekID || item.SeasonID != seasonID {
			return fmt.Errorf("weekly result for user %s does not belong to week %d season %d", item.UserID, weekID, seasonID)
		}
		models = append(models, weeklyResultInsertModel{
			UserID:           item.UserID,
			WeekID:           weekID,
			SeasonID:         seasonID,
			WeekNumber:       item.WeekNumber,
			ConfidencePoints: item.ConfidencePoints,
			Rank:             item.Rank,
			PlayoffPoints:    item.PlayoffPoints,
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace weekly results: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serializes total recomputation per season across weeks.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, seasonID); err != nil {
		return fmt.Errorf("lock season=%d: %w", seasonID, err)
	}

	clearQuery, clearArgs, err := qb.DeleteFrom("weekly_results").
		Where(qb.Eq("week_id", weekID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear weekly results query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear weekly results: %w", err)
	}

	if len(models) > 0 {
		query, args, err := qb.InsertModels("weekly_results", models, "")
		if err != nil {
			return fmt.Errorf("build insert weekly results query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert weekly results week=%d: %w", weekID, err)
		}
	}

	if err := recomputeSeasonTotals(ctx, tx, seasonID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace weekly results tx: %w", err)
	}
	return nil
}

// recomputeSeasonTotals rewrites every season total as the sum of the user's
// weekly rows. Users without rows drop to zero.
func recomputeSeasonTotals(ctx context.Context, tx *sqlx.Tx, seasonID int64) error {
	sumQuery, sumArgs, err := qb.Select(
		"user_id",
		"COALESCE(SUM(confidence_points), 0) AS confidence_points",
		"COALESCE(SUM(playoff_points), 0) AS playoff_points",
	).From("weekly_results").
		Where(qb.Eq("season_id", seasonID)).
		Suffix("GROUP BY user_id").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build sum weekly results query: %w", err)
	}

	var totals []seasonTotalRow
	if err := tx.SelectContext(ctx, &totals, sumQuery, sumArgs...); err != nil {
		return fmt.Errorf("sum weekly results season=%d: %w", seasonID, err)
	}

	resetQuery, resetArgs, err := qb.Update("user_season_stats").
		Set("confidence_points", 0).
		Set("playoff_points", 0).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset season totals query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, resetQuery, resetArgs...); err != nil {
		return fmt.Errorf("reset season totals season=%d: %w", seasonID, err)
	}

	if len(totals) == 0 {
		return nil
	}
	models := make([]seasonTotalInsertModel, 0, len(totals))
	for _, total := range totals {
		models = append(models, seasonTotalInsertModel{
			UserID:           total.UserID,
			SeasonID:         seasonID,
			ConfidencePoints: total.ConfidencePoints,
			PlayoffPoints:    total.PlayoffPoints,
		})
	}
	query, args, err := qb.InsertModels("user_season_stats", models, `ON CONFLICT (user_id, season_id)
DO UPDATE SET
    confidence_points = EXCLUDED.confidence_points,
    playoff_points = EXCLUDED.playoff_points,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert season totals query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert season totals season=%d: %w", seasonID, err)
	}
	return nil
}

func (r *StandingRepository) RecordSurvivorResult(ctx context.Context, pickID int64, correct bool) (standing.SurvivorOutcome, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return standing.SurvivorOutcome{}, fmt.Errorf("begin tx record survivor result: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	decideQuery, decideArgs, err := qb.Update("survivor_picks").
		Set("is_correct", correct).
		Where(qb.Eq("id", pickID), qb.IsNull("is_correct")).
		Suffix("RETURNING user_id, season_id").
		ToSQL()
	if err != nil {
		return standing.SurvivorOutcome{}, fmt.Errorf("build decide survivor pick query: %w", err)
	}

	applied := true
	var owner survivorDecisionRow
	if err := tx.GetContext(ctx, &owner, decideQuery, decideArgs...); err != nil {
		if !isNotFound(err) {
			return standing.SurvivorOutcome{}, fmt.Errorf("decide survivor pick=%d: %w", pickID, err)
		}
		// Already decided, or missing.
		applied = false
		lookup, lookupArgs, err := qb.Select("user_id", "season_id").From("survivor_picks").
			Where(qb.Eq("id", pickID)).
			ToSQL()
		if err != nil {
			return standing.SurvivorOutcome{}, fmt.Errorf("build lookup survivor pick query: %w", err)
		}
		if err := tx.GetContext(ctx, &owner, lookup, lookupArgs...); err != nil {
			if isNotFound(err) {
				return standing.SurvivorOutcome{}, fmt.Errorf("survivor pick %d not found", pickID)
			}
			return standing.SurvivorOutcome{}, fmt.Errorf("lookup survivor pick=%d: %w", pickID, err)
		}
	}

	ensure, ensureArgs, err := qb.InsertModel("user_season_stats", userSeasonStatsInsertModel{
		UserID:   owner.UserID,
		SeasonID: owner.SeasonID,
	}, "ON CONFLICT (user_id, season_id) DO NOTHING")
	if err != nil {
		return standing.SurvivorOutcome{}, fmt.Errorf("build ensure season stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, ensure, ensureArgs...); err != nil {
		return standing.SurvivorOutcome{}, fmt.Errorf("ensure season stats user=%s: %w", owner.UserID, err)
	}

	statsQuery, statsArgs, err := qb.Select(userSeasonStatsColumns...).From("user_season_stats").
		Where(qb.Eq("user_id", owner.UserID), qb.Eq("season_id", owner.SeasonID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return standing.SurvivorOutcome{}, fmt.Errorf("build lock season stats query: %w", err)
	}
	var row userSeasonStatsTableModel
	if err := tx.GetContext(ctx, &row, statsQuery, statsArgs...); err != nil {
		return standing.SurvivorOutcome{}, fmt.Errorf("lock season stats user=%s: %w", owner.UserID, err)
	}

	stats := seasonStatsFromRow(row)
	outcome := standing.SurvivorOutcome{Applied: applied}
	if applied && !correct {
		wasEliminated := stats.IsEliminated
		stats = stats.ApplyStrike()
		outcome.NewlyEliminated = stats.IsEliminated && !wasEliminated

		strikeQuery, strikeArgs, err := qb.Update("user_season_stats").
			Set("survivor_strikes", stats.SurvivorStrikes).
			Set("is_eliminated", stats.IsEliminated).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("user_id", owner.UserID), qb.Eq("season_id", owner.SeasonID)).
			ToSQL()
		if err != nil {
			return standing.SurvivorOutcome{}, fmt.Errorf("build apply strike query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, strikeQuery, strikeArgs...); err != nil {
			return standing.SurvivorOutcome{}, fmt.Errorf("apply strike user=%s: %w", owner.UserID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return standing.SurvivorOutcome{}, fmt.Errorf("commit record survivor result tx: %w", err)
	}

	outcome.Strikes = stats.SurvivorStrikes
	outcome.IsEliminated = stats.IsEliminated
	return outcome, nil
}

func seasonStatsFromRow(row userSeasonStatsTableModel) standing.UserSeasonStats {
	return standing.UserSeasonStats{
		UserID:           row.UserID,
		SeasonID:         row.SeasonID,
		ConfidencePoints: row.ConfidencePoints,
		PlayoffPoints:    row.PlayoffPoints,
		SurvivorStrikes:  row.SurvivorStrikes,
		IsEliminated:     row.IsEliminated,
		UpdatedAt:        row.UpdatedAt.UTC(),
	}
}
