package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	qb "github.com/riskibarqy/confidence-pool/internal/platform/querybuilder"
)

var (
	seasonColumns = []string{"id", "year", "is_active", "created_at"}
	weekColumns   = []string{"id", "season_id", "week_number", "is_active", "picks_deadline"}
	gameColumns   = []string{
		"g.id", "g.week_id", "g.game_time", "g.home_score", "g.away_score", "g.is_final",
		"h.id AS home_team_id", "h.abbreviation AS home_abbreviation", "h.name AS home_name", "h.city AS home_city",
		"a.id AS away_team_id", "a.abbreviation AS away_abbreviation", "a.name AS away_name", "a.city AS away_city",
	}
)

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) GetSeason(ctx context.Context, seasonID int64) (schedule.Season, bool, error) {
	query, args, err := qb.Select(seasonColumns...).From("seasons").
		Where(qb.Eq("id", seasonID)).
		ToSQL()
	if err != nil {
		return schedule.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}
	return r.getSeason(ctx, query, args)
}

func (r *ScheduleRepository) GetActiveSeason(ctx context.Context) (schedule.Season, bool, error) {
	query, args, err := qb.Select(seasonColumns...).From("seasons").
		Where(qb.Eq("is_active", true)).
		OrderBy("year DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return schedule.Season{}, false, fmt.Errorf("build get active season query: %w", err)
	}
	return r.getSeason(ctx, query, args)
}

func (r *ScheduleRepository) getSeason(ctx context.Context, query string, args []any) (schedule.Season, bool, error) {
	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Season{}, false, nil
		}
		return schedule.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	return seasonFromRow(row), true, nil
}

func (r *ScheduleRepository) ListSeasons(ctx context.Context) ([]schedule.Season, error) {
	query, args, err := qb.Select(seasonColumns...).From("seasons").
		OrderBy("year").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]schedule.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonFromRow(row))
	}
	return out, nil
}

func (r *ScheduleRepository) GetWeek(ctx context.Context, weekID int64) (schedule.Week, bool, error) {
	query, args, err := qb.Select(weekColumns...).From("weeks").
		Where(qb.Eq("id", weekID)).
		ToSQL()
	if err != nil {
		return schedule.Week{}, false, fmt.Errorf("build get week query: %w", err)
	}
	return r.getWeek(ctx, query, args)
}

func (r *ScheduleRepository) GetActiveWeek(ctx context.Context) (schedule.Week, bool, error) {
	query, args, err := qb.Select(weekColumns...).From("weeks").
		Where(qb.Eq("is_active", true)).
		Limit(1).
		ToSQL()
	if err != nil {
		return schedule.Week{}, false, fmt.Errorf("build get active week query: %w", err)
	}
	return r.getWeek(ctx, query, args)
}

func (r *ScheduleRepository) getWeek(ctx context.Context, query string, args []any) (schedule.Week, bool, error) {
	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Week{}, false, nil
		}
		return schedule.Week{}, false, fmt.Errorf("get week: %w", err)
	}

	weeks, err := r.withGames(ctx, []weekTableModel{row})
	if err != nil {
		return schedule.Week{}, false, err
	}
	return weeks[0], true, nil
}

func (r *ScheduleRepository) ListWeeksBySeason(ctx context.Context, seasonID int64) ([]schedule.Week, error) {
	query, args, err := qb.Select(weekColumns...).From("weeks").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("week_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weeks query: %w", err)
	}
	return r.listWeeks(ctx, query, args)
}

func (r *ScheduleRepository) ListWeeksWithFinalGames(ctx context.Context) ([]schedule.Week, error) {
	query, args, err := qb.Select(weekColumns...).From("weeks").
		Where(qb.Expr("EXISTS (SELECT 1 FROM games g WHERE g.week_id = weeks.id AND g.is_final)")).
		OrderBy("season_id", "week_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weeks with final games query: %w", err)
	}
	return r.listWeeks(ctx, query, args)
}

func (r *ScheduleRepository) listWeeks(ctx context.Context, query string, args []any) ([]schedule.Week, error) {
	var rows []weekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	if len(rows) == 0 {
		return []schedule.Week{}, nil
	}
	return r.withGames(ctx, rows)
}

// withGames loads the games of every week in one query.
func (r *ScheduleRepository) withGames(ctx context.Context, rows []weekTableModel) ([]schedule.Week, error) {
	weekIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		weekIDs = append(weekIDs, row.ID)
	}

	query, args, err := qb.Select(gameColumns...).From("games g").
		Join("JOIN teams h ON h.id = g.home_team_id").
		Join("JOIN teams a ON a.id = g.away_team_id").
		Where(qb.Any("g.week_id", pq.Array(weekIDs))).
		OrderBy("g.game_time", "g.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list games query: %w", err)
	}

	var gameRows []gameRowModel
	if err := r.db.SelectContext(ctx, &gameRows, query, args...); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	gamesByWeek := make(map[int64][]schedule.Game, len(rows))
	for _, g := range gameRows {
		gamesByWeek[g.WeekID] = append(gamesByWeek[g.WeekID], gameFromRow(g))
	}

	out := make([]schedule.Week, 0, len(rows))
	for _, row := range rows {
		week := weekFromRow(row)
		week.Games = gamesByWeek[row.ID]
		if week.Games == nil {
			week.Games = []schedule.Game{}
		}
		out = append(out, week)
	}
	return out, nil
}

func (r *ScheduleRepository) ListTeams(ctx context.Context) ([]schedule.Team, error) {
	query, args, err := qb.Select("id", "abbreviation", "name", "city").From("teams").
		OrderBy("abbreviation").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]schedule.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.Team{
			ID:           row.ID,
			Abbreviation: row.Abbreviation,
			Name:         row.Name,
			City:         row.City,
		})
	}
	return out, nil
}

func (r *ScheduleRepository) GetGame(ctx context.Context, gameID int64) (schedule.Game, bool, error) {
	query, args, err := qb.Select(gameColumns...).From("games g").
		Join("JOIN teams h ON h.id = g.home_team_id").
		Join("JOIN teams a ON a.id = g.away_team_id").
		Where(qb.Eq("g.id", gameID)).
		ToSQL()
	if err != nil {
		return schedule.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameRowModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return schedule.Game{}, false, nil
		}
		return schedule.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return gameFromRow(row), true, nil
}

func (r *ScheduleRepository) ActivateWeek(ctx context.Context, weekID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx activate week: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var seasonID int64
	lookup, lookupArgs, err := qb.Select("season_id").From("weeks").
		Where(qb.Eq("id", weekID)).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lookup week query: %w", err)
	}
	if err := tx.GetContext(ctx, &seasonID, lookup, lookupArgs...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("week %d not found", weekID)
		}
		return fmt.Errorf("lookup week: %w", err)
	}

	// Clear before set so the single-active indexes never see two rows.
	statements := []*qb.UpdateBuilder{
		qb.Update("weeks").Set("is_active", false).Where(qb.Eq("is_active", true)),
		qb.Update("seasons").Set("is_active", false).Where(qb.Eq("is_active", true)),
		qb.Update("weeks").Set("is_active", true).Where(qb.Eq("id", weekID)),
		qb.Update("seasons").Set("is_active", true).Where(qb.Eq("id", seasonID)),
	}
	for _, stmt := range statements {
		query, args, err := stmt.ToSQL()
		if err != nil {
			return fmt.Errorf("build activate week query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("activate week=%d: %w", weekID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit activate week tx: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) FinalizeGame(ctx context.Context, gameID int64, homeScore, awayScore int) error {
	query, args, err := qb.Update("games").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("is_final", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build finalize game query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("finalize game=%d: %w", gameID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finalize game rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("game %d not found", gameID)
	}
	return nil
}

func seasonFromRow(row seasonTableModel) schedule.Season {
	return schedule.Season{
		ID:        row.ID,
		Year:      row.Year,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt.UTC(),
	}
}

func weekFromRow(row weekTableModel) schedule.Week {
	return schedule.Week{
		ID:            row.ID,
		SeasonID:      row.SeasonID,
		Number:        row.Number,
		IsActive:      row.IsActive,
		PicksDeadline: nullTimeToTime(row.PicksDeadline),
	}
}

func gameFromRow(row gameRowModel) schedule.Game {
	return schedule.Game{
		ID:     row.ID,
		WeekID: row.WeekID,
		HomeTeam: schedule.Team{
			ID:           row.HomeTeamID,
			Abbreviation: row.HomeAbbreviation,
			Name:         row.HomeName,
			City:         row.HomeCity,
		},
		AwayTeam: schedule.Team{
			ID:           row.AwayTeamID,
			Abbreviation: row.AwayAbbreviation,
			Name:         row.AwayName,
			City:         row.AwayCity,
		},
		GameTime:  row.GameTime.UTC(),
		HomeScore: nullIntToPtr(row.HomeScore),
		AwayScore: nullIntToPtr(row.AwayScore),
		IsFinal:   row.IsFinal,
	}
}
