package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	qb "github.com/riskibarqy/confidence-pool/internal/platform/querybuilder"
)

const survivorTeamConstraint = "uq_survivor_picks_user_season_team"

var (
	confidencePickColumns = []string{"id", "user_id", "week_id", "game_id", "team_id", "weight", "created_at"}
	survivorPickColumns   = []string{"id", "user_id", "week_id", "season_id", "team_id", "is_correct", "created_at"}
)

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) GetUserWeekPicks(ctx context.Context, userID string, weekID int64) (pick.Picks, error) {
	confidence, err := r.listConfidence(ctx, qb.Eq("user_id", userID), qb.Eq("week_id", weekID))
	if err != nil {
		return pick.Picks{}, err
	}
	survivor, err := r.listSurvivor(ctx, qb.Eq("user_id", userID), qb.Eq("week_id", weekID))
	if err != nil {
		return pick.Picks{}, err
	}
	return pick.Picks{Confidence: confidence, Survivor: survivor}, nil
}

func (r *PickRepository) ListConfidencePicksByWeek(ctx context.Context, weekID int64) ([]pick.ConfidencePick, error) {
	return r.listConfidence(ctx, qb.Eq("week_id", weekID))
}

func (r *PickRepository) ListSurvivorPicksByWeek(ctx context.Context, weekID int64) ([]pick.SurvivorPick, error) {
	return r.listSurvivor(ctx, qb.Eq("week_id", weekID))
}

func (r *PickRepository) ListSurvivorHistory(ctx context.Context, userID string, seasonID int64) ([]pick.SurvivorPick, error) {
	return r.listSurvivor(ctx, qb.Eq("user_id", userID), qb.Eq("season_id", seasonID))
}

func (r *PickRepository) listConfidence(ctx context.Context, where ...qb.Condition) ([]pick.ConfidencePick, error) {
	query, args, err := qb.Select(confidencePickColumns...).From("confidence_picks").
		Where(where...).
		OrderBy("user_id", "weight DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list confidence picks query: %w", err)
	}

	var rows []confidencePickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list confidence picks: %w", err)
	}

	out := make([]pick.ConfidencePick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.ConfidencePick{
			ID:        row.ID,
			UserID:    row.UserID,
			WeekID:    row.WeekID,
			GameID:    row.GameID,
			TeamID:    row.TeamID,
			Weight:    row.Weight,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *PickRepository) listSurvivor(ctx context.Context, where ...qb.Condition) ([]pick.SurvivorPick, error) {
	query, args, err := qb.Select(survivorPickColumns...).From("survivor_picks").
		Where(where...).
		OrderBy("user_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list survivor picks query: %w", err)
	}

	var rows []survivorPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list survivor picks: %w", err)
	}

	out := make([]pick.SurvivorPick, 0, len(rows))
	for _, row := range rows {
		out = append(out, survivorPickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) ReplaceUserWeekPicks(ctx context.Context, userID string, weekID int64, picks pick.Picks) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace picks: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"confidence_picks", "survivor_picks"} {
		query, args, err := qb.DeleteFrom(table).
			Where(qb.Eq("user_id", userID), qb.Eq("week_id", weekID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if len(picks.Confidence) > 0 {
		models := make([]confidencePickInsertModel, 0, len(picks.Confidence))
		for _, p := range picks.Confidence {
			models = append(models, confidencePickInsertModel{
				UserID: userID,
				WeekID: weekID,
				GameID: p.GameID,
				TeamID: p.TeamID,
				Weight: p.Weight,
			})
		}
		query, args, err := qb.InsertModels("confidence_picks", models, "")
		if err != nil {
			return fmt.Errorf("build insert confidence picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert confidence picks user=%s week=%d: %w", userID, weekID, err)
		}
	}

	if len(picks.Survivor) > 0 {
		models := make([]survivorPickInsertModel, 0, len(picks.Survivor))
		for _, p := range picks.Survivor {
			model := survivorPickInsertModel{
				UserID:   userID,
				WeekID:   weekID,
				SeasonID: p.SeasonID,
				TeamID:   p.TeamID,
			}
			if p.IsCorrect != nil {
				model.IsCorrect = sql.NullBool{Bool: *p.IsCorrect, Valid: true}
			}
			models = append(models, model)
		}
		query, args, err := qb.InsertModels("survivor_picks", models, "")
		if err != nil {
			return fmt.Errorf("build insert survivor picks query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err, survivorTeamConstraint) {
				return fmt.Errorf("%w: user=%s week=%d", pick.ErrSurvivorTeamUsed, userID, weekID)
			}
			return fmt.Errorf("insert survivor picks user=%s week=%d: %w", userID, weekID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace picks tx: %w", err)
	}
	return nil
}

func survivorPickFromRow(row survivorPickTableModel) pick.SurvivorPick {
	return pick.SurvivorPick{
		ID:        row.ID,
		UserID:    row.UserID,
		WeekID:    row.WeekID,
		SeasonID:  row.SeasonID,
		TeamID:    row.TeamID,
		IsCorrect: nullBoolToPtr(row.IsCorrect),
		CreatedAt: row.CreatedAt.UTC(),
	}
}
