package memory

import (
	"time"

	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
)

const SeedSeasonID int64 = 1

// SeedTeams is a small sample of the league used when running without a
// database.
func SeedTeams() []schedule.Team {
	return []schedule.Team{
		{ID: 1, Abbreviation: "CHI", Name: "Bears", City: "Chicago"},
		{ID: 2, Abbreviation: "GB", Name: "Packers", City: "Green Bay"},
		{ID: 3, Abbreviation: "DET", Name: "Lions", City: "Detroit"},
		{ID: 4, Abbreviation: "MIN", Name: "Vikings", City: "Minnesota"},
		{ID: 5, Abbreviation: "DAL", Name: "Cowboys", City: "Dallas"},
		{ID: 6, Abbreviation: "NYG", Name: "Giants", City: "New York"},
		{ID: 7, Abbreviation: "PHI", Name: "Eagles", City: "Philadelphia"},
		{ID: 8, Abbreviation: "WAS", Name: "Commanders", City: "Washington"},
	}
}

func SeedSeasons() []schedule.Season {
	return []schedule.Season{{ID: SeedSeasonID, Year: 2025, IsActive: true}}
}

// SeedWeeks builds two weeks of round-robin games starting at kickoff.
func SeedWeeks(kickoff time.Time) []schedule.Week {
	teams := SeedTeams()
	byAbbr := make(map[string]schedule.Team, len(teams))
	for _, t := range teams {
		byAbbr[t.Abbreviation] = t
	}

	matchups := [][][2]string{
		{{"CHI", "GB"}, {"DET", "MIN"}, {"DAL", "NYG"}, {"PHI", "WAS"}},
		{{"GB", "DET"}, {"MIN", "CHI"}, {"NYG", "PHI"}, {"WAS", "DAL"}},
	}

	weeks := make([]schedule.Week, 0, len(matchups))
	var gameID int64
	for idx, games := range matchups {
		weekStart := kickoff.AddDate(0, 0, 7*idx)
		week := schedule.Week{
			ID:            int64(idx + 1),
			SeasonID:      SeedSeasonID,
			Number:        idx + 1,
			IsActive:      idx == 0,
			PicksDeadline: weekStart,
		}
		for _, m := range games {
			gameID++
			week.Games = append(week.Games, schedule.Game{
				ID:       gameID,
				WeekID:   week.ID,
				HomeTeam: byAbbr[m[0]],
				AwayTeam: byAbbr[m[1]],
				GameTime: weekStart,
			})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
