package postgres

import (
	"database/sql"
	"time"
)

type confidencePickTableModel struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	WeekID    int64     `db:"week_id"`
	GameID    int64     `db:"game_id"`
	TeamID    int64     `db:"team_id"`
	Weight    int       `db:"weight"`
	CreatedAt time.Time `db:"created_at"`
}

type confidencePickInsertModel struct {
	UserID string `db:"user_id"`
	WeekID int64  `db:"week_id"`
	GameID int64  `db:"game_id"`
	TeamID int64  `db:"team_id"`
	Weight int    `db:"weight"`
}

type survivorPickTableModel struct {
	ID        int64        `db:"id"`
	UserID    string       `db:"user_id"`
	WeekID    int64        `db:"week_id"`
	SeasonID  int64        `db:"season_id"`
	TeamID    int64        `db:"team_id"`
	IsCorrect sql.NullBool `db:"is_correct"`
	CreatedAt time.Time    `db:"created_at"`
}

type survivorPickInsertModel struct {
	UserID    string       `db:"user_id"`
	WeekID    int64        `db:"week_id"`
	SeasonID  int64        `db:"season_id"`
	TeamID    int64        `db:"team_id"`
	IsCorrect sql.NullBool `db:"is_correct"`
}
