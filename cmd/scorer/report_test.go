package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

func TestPrintStandings_Table(t *testing.T) {
	var buf bytes.Buffer
	err := printStandings(&buf, formatTable, usecase.SeasonStandings{
		Season: schedule.Season{ID: 1, Year: 2025},
		Entries: []standing.Entry{
			{Position: 1, UserID: "alice", PlayoffPoints: 35, ConfidencePoints: 40},
			{Position: 2, UserID: "bob", PlayoffPoints: 29, ConfidencePoints: 52, SurvivorStrikes: 3, IsEliminated: true},
		},
	})
	if err != nil {
		t.Fatalf("print standings: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "season 2025 standings" {
		t.Fatalf("unexpected title: %q", lines[0])
	}
	if fields := strings.Fields(lines[3]); fields[1] != "bob" || fields[5] != "true" {
		t.Fatalf("unexpected row: %q", lines[3])
	}
}

func TestPrintScoreWeek_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := printScoreWeek(&buf, formatJSON, usecase.ScoreWeekResult{
		RunID:      "run-1",
		WeekID:     7,
		WeekNumber: 3,
		FinalGames: 2,
		TotalGames: 2,
		Users:      []usecase.UserWeekScore{{UserID: "alice", Rank: 1, ConfidencePoints: 3, PlayoffPoints: 20}},
		Duration:   time.Second,
	})
	if err != nil {
		t.Fatalf("print score week: %v", err)
	}

	var decoded usecase.ScoreWeekResult
	if err := sonic.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if decoded.RunID != "run-1" || len(decoded.Users) != 1 || decoded.Users[0].PlayoffPoints != 20 {
		t.Fatalf("unexpected decoded result: %+v", decoded)
	}
}

func TestPrintScoreWeek_SkippedTable(t *testing.T) {
	var buf bytes.Buffer
	err := printScoreWeek(&buf, formatTable, usecase.ScoreWeekResult{
		RunID:      "run-2",
		WeekNumber: 5,
		TotalGames: 4,
		Warnings:   []usecase.Warning{{Code: usecase.WarningNoFinalGames, Message: "week 5 has no final games"}},
	})
	if err != nil {
		t.Fatalf("print score week: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "nothing to score") || !strings.Contains(out, "warning no_final_games") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestPrintRejectsUnknownFormat(t *testing.T) {
	if err := printScorePending(&bytes.Buffer{}, "yaml", usecase.ScorePendingResult{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestNewApp_Commands(t *testing.T) {
	a := newApp()
	want := []string{"score", "score-pending", "standings", "activate-week", "finalize-game"}
	for _, name := range want {
		if a.Command(name) == nil {
			t.Fatalf("missing command %q", name)
		}
	}
}
