package postgres

import "time"

type userSeasonStatsTableModel struct {
	UserID           string    `db:"user_id"`
	SeasonID         int64     `db:"season_id"`
	ConfidencePoints int       `db:"confidence_points"`
	PlayoffPoints    int       `db:"playoff_points"`
	SurvivorStrikes  int       `db:"survivor_strikes"`
	IsEliminated     bool      `db:"is_eliminated"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type weeklyResultTableModel struct {
	UserID           string    `db:"user_id"`
	WeekID           int64     `db:"week_id"`
	SeasonID         int64     `db:"season_id"`
	WeekNumber       int       `db:"week_number"`
	ConfidencePoints int       `db:"confidence_points"`
	Rank             int       `db:"rank"`
	PlayoffPoints    int       `db:"playoff_points"`
	UpdatedAt        time.Time `db:"updated_at"`
}

type weeklyResultInsertModel struct {
	UserID           string `db:"user_id"`
	WeekID           int64  `db:"week_id"`
	SeasonID         int64  `db:"season_id"`
	WeekNumber       int    `db:"week_number"`
	ConfidencePoints int    `db:"confidence_points"`
	Rank             int    `db:"rank"`
	PlayoffPoints    int    `db:"playoff_points"`
}

// seasonTotalRow is one user's sum over weekly_results.
type seasonTotalRow struct {
	UserID           string `db:"user_id"`
	ConfidencePoints int    `db:"confidence_points"`
	PlayoffPoints    int    `db:"playoff_points"`
}

type seasonTotalInsertModel struct {
	UserID           string `db:"user_id"`
	SeasonID         int64  `db:"season_id"`
	ConfidencePoints int    `db:"confidence_points"`
	PlayoffPoints    int    `db:"playoff_points"`
}

type userSeasonStatsInsertModel struct {
	UserID   string `db:"user_id"`
	SeasonID int64  `db:"season_id"`
}

type survivorDecisionRow struct {
	UserID   string `db:"user_id"`
	SeasonID int64  `db:"season_id"`
}
