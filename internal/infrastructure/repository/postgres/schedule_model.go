package postgres

import (
	"database/sql"
	"time"
)

type teamTableModel struct {
	ID           int64  `db:"id"`
	Abbreviation string `db:"abbreviation"`
	Name         string `db:"name"`
	City         string `db:"city"`
}

type seasonTableModel struct {
	ID        int64     `db:"id"`
	Year      int       `db:"year"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

type weekTableModel struct {
	ID            int64        `db:"id"`
	SeasonID      int64        `db:"season_id"`
	Number        int          `db:"week_number"`
	IsActive      bool         `db:"is_active"`
	PicksDeadline sql.NullTime `db:"picks_deadline"`
}

// gameRowModel is a game joined with both teams.
type gameRowModel struct {
	ID               int64         `db:"id"`
	WeekID           int64         `db:"week_id"`
	GameTime         time.Time     `db:"game_time"`
	HomeScore        sql.NullInt64 `db:"home_score"`
	AwayScore        sql.NullInt64 `db:"away_score"`
	IsFinal          bool          `db:"is_final"`
	HomeTeamID       int64         `db:"home_team_id"`
	HomeAbbreviation string        `db:"home_abbreviation"`
	HomeName         string        `db:"home_name"`
	HomeCity         string        `db:"home_city"`
	AwayTeamID       int64         `db:"away_team_id"`
	AwayAbbreviation string        `db:"away_abbreviation"`
	AwayName         string        `db:"away_name"`
	AwayCity         string        `db:"away_city"`
}

type teamInsertModel struct {
	ID           int64  `db:"id"`
	Abbreviation string `db:"abbreviation"`
	Name         string `db:"name"`
	City         string `db:"city"`
}

type seasonInsertModel struct {
	ID       int64 `db:"id"`
	Year     int   `db:"year"`
	IsActive bool  `db:"is_active"`
}

type weekInsertModel struct {
	ID            int64        `db:"id"`
	SeasonID      int64        `db:"season_id"`
	Number        int          `db:"week_number"`
	IsActive      bool         `db:"is_active"`
	PicksDeadline sql.NullTime `db:"picks_deadline"`
}

type gameInsertModel struct {
	ID         int64     `db:"id"`
	WeekID     int64     `db:"week_id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	GameTime   time.Time `db:"game_time"`
}
