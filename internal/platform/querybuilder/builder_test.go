package querybuilder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("g.id", "h.abbreviation").
		From("games g").
		Join("JOIN teams h ON h.id = g.home_team_id").
		Where(Eq("g.week_id", int64(3)), IsNotNull("g.home_score")).
		OrderBy("g.game_time", "g.id").
		Limit(5).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT g.id, h.abbreviation FROM games g JOIN teams h ON h.id = g.home_team_id WHERE g.week_id = $1 AND g.home_score IS NOT NULL ORDER BY g.game_time, g.id LIMIT 5 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{int64(3)}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestSelectBuilderRequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatalf("expected error for missing table")
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("survivor_picks").
		Columns("user_id", "team_id").
		Values("u1", int64(7)).
		Values("u1", int64(9)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO survivor_picks (user_id, team_id) VALUES ($1, $2), ($3, $4) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"u1", int64(7), "u1", int64(9)}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("user_season_stats").
		SetExpr("survivor_strikes", "LEAST(survivor_strikes + 1, ?)", 3).
		Set("is_eliminated", true).
		SetExpr("updated_at", "NOW()").
		Where(Eq("user_id", "u1"), Eq("season_id", int64(2))).
		Suffix("RETURNING survivor_strikes").
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE user_season_stats SET survivor_strikes = LEAST(survivor_strikes + 1, $1), is_eliminated = $2, updated_at = NOW() WHERE user_id = $3 AND season_id = $4 RETURNING survivor_strikes"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{3, true, "u1", int64(2)}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("weekly_results").Where(Eq("week_id", int64(4))).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM weekly_results WHERE week_id = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 1 || args[0] != int64(4) {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("weekly_results").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestAnyAndNotEqConditions(t *testing.T) {
	ids := []int64{1, 2}
	query, args, err := Select("id").
		From("weeks").
		Where(Any("id", ids), NotEq("season_id", int64(9)), Expr("number BETWEEN ? AND ?", 1, 18)).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM weeks WHERE id = ANY($1) AND season_id <> $2 AND number BETWEEN $3 AND $4"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected args: %+v", args)
	}
}

type pickRow struct {
	UserID   string `db:"user_id"`
	TeamID   int64  `db:"team_id"`
	internal string
	Skipped  string `db:"-"`
}

func TestInsertModels(t *testing.T) {
	rows := []pickRow{
		{UserID: "u1", TeamID: 1, internal: "x", Skipped: "y"},
		{UserID: "u2", TeamID: 2},
	}
	query, args, err := InsertModels("picks", rows, "ON CONFLICT DO NOTHING")
	if err != nil {
		t.Fatalf("build insert models query: %v", err)
	}

	wantQuery := "INSERT INTO picks (user_id, team_id) VALUES ($1, $2), ($3, $4) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if diff := cmp.Diff([]any{"u1", int64(1), "u2", int64(2)}, args); diff != "" {
		t.Fatalf("unexpected args (-want +got):\n%s", diff)
	}

	if _, _, err := InsertModels("picks", []pickRow{}, ""); err == nil {
		t.Fatalf("expected error for empty models")
	}
}

func TestInsertModel(t *testing.T) {
	query, args, err := InsertModel("picks", &pickRow{UserID: "u1", TeamID: 5}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if query != "INSERT INTO picks (user_id, team_id) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
}
