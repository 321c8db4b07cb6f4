package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/confidence-pool/internal/platform/id"
)

var fixtureNow = time.Date(2025, 9, 4, 12, 0, 0, 0, time.UTC)

type poolFixture struct {
	scheduleRepo *memory.ScheduleRepository
	pickRepo     *memory.PickRepository
	standingRepo *memory.StandingRepository

	picks     *PickService
	scoring   *ScoringService
	standings *StandingsService
	schedule  *ScheduleService
}

type fixtureOptions struct {
	seasons      int
	weeks        int
	gamesPerWeek int
	policy       NonParticipantPolicy
	rules        pick.Rules
}

// newPoolFixture builds seasons with the same matchups every week: game i of
// each week is team 2i+1 (home) against team 2i+2 (away). Week ids are
// season*100+number and game ids are week*100+i.
func newPoolFixture(t *testing.T, opts fixtureOptions) *poolFixture {
	t.Helper()
	if opts.seasons == 0 {
		opts.seasons = 1
	}
	if opts.policy == "" {
		opts.policy = NonParticipantOmit
	}

	teams := make([]schedule.Team, 0, opts.gamesPerWeek*2)
	for i := 1; i <= opts.gamesPerWeek*2; i++ {
		teams = append(teams, schedule.Team{ID: int64(i), Abbreviation: teamAbbr(i), Name: teamAbbr(i)})
	}

	var (
		seasons []schedule.Season
		weeks   []schedule.Week
	)
	for s := 1; s <= opts.seasons; s++ {
		seasons = append(seasons, schedule.Season{ID: int64(s), Year: 2024 + s, IsActive: s == opts.seasons})
		for n := 1; n <= opts.weeks; n++ {
			weekID := int64(s*100 + n)
			week := schedule.Week{
				ID:            weekID,
				SeasonID:      int64(s),
				Number:        n,
				IsActive:      s == opts.seasons && n == 1,
				PicksDeadline: fixtureNow.Add(time.Duration(n) * 7 * 24 * time.Hour),
			}
			for g := 0; g < opts.gamesPerWeek; g++ {
				week.Games = append(week.Games, schedule.Game{
					ID:       weekID*100 + int64(g),
					WeekID:   weekID,
					HomeTeam: teams[2*g],
					AwayTeam: teams[2*g+1],
					GameTime: week.PicksDeadline,
				})
			}
			weeks = append(weeks, week)
		}
	}

	f := &poolFixture{
		scheduleRepo: memory.NewScheduleRepository(seasons, weeks, teams),
		pickRepo:     memory.NewPickRepository(),
	}
	f.standingRepo = memory.NewStandingRepository(f.pickRepo)
	f.picks = NewPickService(f.scheduleRepo, f.pickRepo, f.standingRepo, PickServiceConfig{Rules: opts.rules, EnforceDeadline: true}, nil)
	f.picks.now = func() time.Time { return fixtureNow }
	f.scoring = NewScoringService(f.scheduleRepo, f.pickRepo, f.standingRepo, ScoringConfig{NonParticipantPolicy: opts.policy, Workers: 2}, &id.SequenceGenerator{Prefix: "run"}, nil, nil)
	f.standings = NewStandingsService(f.scheduleRepo, f.standingRepo)
	f.schedule = NewScheduleService(f.scheduleRepo, nil)
	return f
}

func teamAbbr(i int) string {
	return string(rune('A'+i-1)) + "TM"
}

func (f *poolFixture) week(t *testing.T, weekID int64) schedule.Week {
	t.Helper()
	w, ok, err := f.scheduleRepo.GetWeek(context.Background(), weekID)
	if err != nil || !ok {
		t.Fatalf("get week %d: ok=%t err=%v", weekID, ok, err)
	}
	return w
}

// assignments picks home (or away) for every game with weights 1..N in game
// order.
func assignments(week schedule.Week, home bool) []pick.ConfidenceAssignment {
	out := make([]pick.ConfidenceAssignment, 0, len(week.Games))
	for i, g := range week.Games {
		team := g.AwayTeam.ID
		if home {
			team = g.HomeTeam.ID
		}
		out = append(out, pick.ConfidenceAssignment{GameID: g.ID, TeamID: team, Weight: i + 1})
	}
	return out
}

func (f *poolFixture) submit(t *testing.T, userID string, weekID int64, confidence []pick.ConfidenceAssignment, survivor ...int64) {
	t.Helper()
	if _, err := f.picks.Submit(context.Background(), SubmitPicksInput{
		UserID:     userID,
		WeekID:     weekID,
		Confidence: confidence,
		Survivor:   survivor,
	}); err != nil {
		t.Fatalf("submit %s week %d: %v", userID, weekID, err)
	}
}

func (f *poolFixture) finalize(t *testing.T, gameID int64, home, away int) {
	t.Helper()
	if _, err := f.schedule.FinalizeGame(context.Background(), gameID, home, away); err != nil {
		t.Fatalf("finalize game %d: %v", gameID, err)
	}
}

// finalizeAll makes every home team of the week win.
func (f *poolFixture) finalizeAll(t *testing.T, weekID int64) {
	t.Helper()
	for _, g := range f.week(t, weekID).Games {
		f.finalize(t, g.ID, 21, 14)
	}
}
