package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/confidence-pool/internal/domain/pick"
	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
	"github.com/riskibarqy/confidence-pool/internal/domain/standing"
	pickmock "github.com/riskibarqy/confidence-pool/internal/mocks/domain/pick"
	schedulemock "github.com/riskibarqy/confidence-pool/internal/mocks/domain/schedule"
	standingmock "github.com/riskibarqy/confidence-pool/internal/mocks/domain/standing"
)

func TestPickService_SubmitStoresPicksAndMembership(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t, fixtureOptions{weeks: 2, gamesPerWeek: 3})
	week := f.week(t, 101)

	stored, err := f.picks.Submit(context.Background(), SubmitPicksInput{
		UserID:     " alice ",
		WeekID:     week.ID,
		Confidence: assignments(week, true),
		Survivor:   []int64{1},
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(stored.Confidence) != 3 || len(stored.Survivor) != 1 {
		t.Fatalf("unexpected stored picks: %+v", stored)
	}
	if stored.Confidence[0].UserID != "alice" {
		t.Fatalf("expected trimmed user id, got %q", stored.Confidence[0].UserID)
	}

	stats, ok, _ := f.standingRepo.GetSeasonStats(context.Background(), "alice", week.SeasonID)
	if !ok || stats.ConfidencePoints != 0 {
		t.Fatalf("expected empty season stats row, got ok=%t %+v", ok, stats)
	}
}

func TestPickService_SubmitRejectsAllViolationsAndKeepsOldPicks(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t, fixtureOptions{weeks: 2, gamesPerWeek: 3})
	week := f.week(t, 101)
	f.submit(t, "alice", week.ID, assignments(week, true), 1)

	bad := assignments(week, false)
	bad[0].Weight = 2
	_, err := f.picks.Submit(context.Background(), SubmitPicksInput{
		UserID:     "alice",
		WeekID:     week.ID,
		Confidence: bad,
		Survivor:   []int64{2, 3},
	})
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, pick.ErrInvalidSubmission) {
		t.Fatalf("expected invalid submission, got %v", err)
	}
	var verr *pick.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *pick.ValidationError, got %T", err)
	}
	for _, code := range []string{pick.CodeDuplicateWeight, pick.CodeMissingWeight, pick.CodeSurvivorCount} {
		if !verr.HasCode(code) {
			t.Fatalf("expected violation %s in %+v", code, verr.Violations)
		}
	}

	kept, _ := f.pickRepo.GetUserWeekPicks(context.Background(), "alice", week.ID)
	if kept.Confidence[0].TeamID != week.Games[0].HomeTeam.ID || kept.Survivor[0].TeamID != 1 {
		t.Fatalf("old picks must stay intact, got %+v", kept)
	}
}

func TestPickService_SubmitAfterDeadline(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t, fixtureOptions{weeks: 1, gamesPerWeek: 2})
	week := f.week(t, 101)
	f.picks.now = func() time.Time { return week.PicksDeadline.Add(time.Minute) }

	_, err := f.picks.Submit(context.Background(), SubmitPicksInput{
		UserID:     "alice",
		WeekID:     week.ID,
		Confidence: assignments(week, true),
		Survivor:   []int64{1},
	})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}

	f.picks.cfg.EnforceDeadline = false
	if _, err := f.picks.Submit(context.Background(), SubmitPicksInput{
		UserID:     "alice",
		WeekID:     week.ID,
		Confidence: assignments(week, true),
		Survivor:   []int64{1},
	}); err != nil {
		t.Fatalf("expected submission without deadline enforcement, got %v", err)
	}
}

func TestPickService_SurvivorReuseAcrossWeeks(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t, fixtureOptions{weeks: 2, gamesPerWeek: 3})
	week1 := f.week(t, 101)
	week2 := f.week(t, 102)
	f.submit(t, "alice", week1.ID, assignments(week1, true), 1)

	_, err := f.picks.Submit(context.Background(), SubmitPicksInput{
		UserID:     "alice",
		WeekID:     week2.ID,
		Confidence: assignments(week2, true),
		Survivor:   []int64{1, 3},
	})
	var verr *pick.ValidationError
	if !errors.As(err, &verr) || !verr.HasCode(pick.CodeSurvivorReused) {
		t.Fatalf("expected survivor reuse violation, got %v", err)
	}

	// resubmitting week 1 with the same team is not reuse
	f.submit(t, "alice", week1.ID, assignments(week1, false), 1)
	f.submit(t, "alice", week2.ID, assignments(week2, true), 3, 5)
}

func TestPickService_EliminatedUserSubmitsConfidenceOnly(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t, fixtureOptions{weeks: 1, gamesPerWeek: 2})
	week := f.week(t, 101)
	ctx := context.Background()

	if err := f.standingRepo.EnsureSeasonStats(ctx, "bob", week.SeasonID); err != nil {
		t.Fatalf("ensure stats: %v", err)
	}
	// three losses on throwaway picks
	for i, team := range []int64{2, 3, 4} {
		weekID := int64(900 + i)
		if err := f.pickRepo.ReplaceUserWeekPicks(ctx, "bob", weekID, pick.Picks{Survivor: []pick.SurvivorPick{{SeasonID: week.SeasonID, TeamID: team}}}); err != nil {
			t.Fatalf("seed survivor pick: %v", err)
		}
		picks, _ := f.pickRepo.ListSurvivorPicksByWeek(ctx, weekID)
		if _, err := f.standingRepo.RecordSurvivorResult(ctx, picks[0].ID, false); err != nil {
			t.Fatalf("record loss: %v", err)
		}
	}

	_, err := f.picks.Submit(ctx, SubmitPicksInput{UserID: "bob", WeekID: week.ID, Confidence: assignments(week, true), Survivor: []int64{1}})
	var verr *pick.ValidationError
	if !errors.As(err, &verr) || !verr.HasCode(pick.CodeSurvivorCount) {
		t.Fatalf("expected eliminated user survivor pick to be rejected, got %v", err)
	}
	f.submit(t, "bob", week.ID, assignments(week, true))
}

func TestPickService_SubmitNotFoundAndInvalidInput(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t, fixtureOptions{weeks: 1, gamesPerWeek: 2})
	if _, err := f.picks.Submit(context.Background(), SubmitPicksInput{UserID: "alice", WeekID: 999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.picks.Submit(context.Background(), SubmitPicksInput{UserID: " ", WeekID: 101}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank user, got %v", err)
	}
	if _, err := f.picks.GetPicks(context.Background(), "alice", 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing week, got %v", err)
	}
}

func TestPickService_AvailableSurvivorTeams(t *testing.T) {
	t.Parallel()

	f := newPoolFixture(t, fixtureOptions{weeks: 2, gamesPerWeek: 2})
	week1 := f.week(t, 101)
	f.submit(t, "alice", week1.ID, assignments(week1, true), 1)

	teams, err := f.picks.AvailableSurvivorTeams(context.Background(), "alice", 102)
	if err != nil {
		t.Fatalf("available teams: %v", err)
	}
	for _, team := range teams {
		if team.ID == 1 {
			t.Fatalf("team 1 was already used")
		}
	}
	if len(teams) != 3 {
		t.Fatalf("expected 3 available teams, got %d", len(teams))
	}

	current, err := f.picks.AvailableSurvivorTeams(context.Background(), "alice", week1.ID)
	if err != nil || len(current) != 4 {
		t.Fatalf("the week being edited keeps its own team available: %d %v", len(current), err)
	}
}

func TestPickService_StorageUniqueViolationIsValidationErrorUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	scheduleRepo := schedulemock.NewRepository(t)
	pickRepo := pickmock.NewRepository(t)
	standingRepo := standingmock.NewRepository(t)
	service := NewPickService(scheduleRepo, pickRepo, standingRepo, PickServiceConfig{}, nil)

	week := schedule.Week{
		ID:       7,
		SeasonID: 1,
		Number:   1,
		Games: []schedule.Game{{
			ID:       70,
			HomeTeam: schedule.Team{ID: 1, Abbreviation: "CHI"},
			AwayTeam: schedule.Team{ID: 2, Abbreviation: "GB"},
		}},
	}
	scheduleRepo.On("GetWeek", mock.Anything, int64(7)).Return(week, true, nil).Once()
	standingRepo.On("GetSeasonStats", mock.Anything, "alice", int64(1)).Return(standing.UserSeasonStats{}, false, nil).Once()
	pickRepo.On("ListSurvivorHistory", mock.Anything, "alice", int64(1)).Return([]pick.SurvivorPick{}, nil).Once()
	standingRepo.On("EnsureSeasonStats", mock.Anything, "alice", int64(1)).Return(nil).Once()
	pickRepo.
		On("ReplaceUserWeekPicks", mock.Anything, "alice", int64(7), mock.MatchedBy(func(p pick.Picks) bool {
			return len(p.Confidence) == 1 && len(p.Survivor) == 1 && p.Survivor[0].SeasonID == 1
		})).
		Return(pick.ErrSurvivorTeamUsed).
		Once()

	_, err := service.Submit(ctx, SubmitPicksInput{
		UserID:     "alice",
		WeekID:     7,
		Confidence: []pick.ConfidenceAssignment{{GameID: 70, TeamID: 1, Weight: 1}},
		Survivor:   []int64{1},
	})
	var verr *pick.ValidationError
	if !errors.As(err, &verr) || !verr.HasCode(pick.CodeSurvivorReused) {
		t.Fatalf("expected survivor reuse validation error, got %v", err)
	}
}

func TestPickService_DependencyErrorUsingMockery(t *testing.T) {
	t.Parallel()

	scheduleRepo := schedulemock.NewRepository(t)
	service := NewPickService(scheduleRepo, pickmock.NewRepository(t), standingmock.NewRepository(t), PickServiceConfig{}, nil)

	errDB := errors.New("connection reset")
	scheduleRepo.On("GetWeek", mock.Anything, int64(3)).Return(schedule.Week{}, false, errDB).Once()

	_, err := service.GetPicks(context.Background(), "alice", 3)
	if !errors.Is(err, errDB) {
		t.Fatalf("expected wrapped storage error, got %v", err)
	}
}

func TestPickService_ResubmitKeepsDecidedSurvivorPick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPoolFixture(t, fixtureOptions{weeks: 1, gamesPerWeek: 2})
	week := f.week(t, 101)
	loser := week.Games[0].AwayTeam.ID

	f.submit(t, "alice", week.ID, assignments(week, true), loser)
	f.finalize(t, week.Games[0].ID, 21, 14)
	if _, err := f.scoring.ScoreWeek(ctx, week.ID); err != nil {
		t.Fatalf("first score: %v", err)
	}

	// the deadline is still open, so the same picks can be sent again
	f.submit(t, "alice", week.ID, assignments(week, true), loser)
	if _, err := f.scoring.ScoreWeek(ctx, week.ID); err != nil {
		t.Fatalf("rescore: %v", err)
	}

	stats, ok, err := f.standingRepo.GetSeasonStats(ctx, "alice", week.SeasonID)
	if err != nil || !ok {
		t.Fatalf("get stats: ok=%t err=%v", ok, err)
	}
	if stats.SurvivorStrikes != 1 {
		t.Fatalf("one lost survivor pick must count once, got %d strikes", stats.SurvivorStrikes)
	}

	stored, err := f.picks.GetPicks(ctx, "alice", week.ID)
	if err != nil {
		t.Fatalf("get picks: %v", err)
	}
	if len(stored.Survivor) != 1 || !stored.Survivor[0].Decided() || *stored.Survivor[0].IsCorrect {
		t.Fatalf("expected resubmitted survivor pick to stay decided as a loss, got %+v", stored.Survivor)
	}
}

func TestPickService_SubmitRejectsChangesOnFinalGames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newPoolFixture(t, fixtureOptions{weeks: 1, gamesPerWeek: 2})
	week := f.week(t, 101)
	survivor := week.Games[0].HomeTeam.ID

	f.submit(t, "alice", week.ID, assignments(week, true), survivor)
	f.finalize(t, week.Games[0].ID, 21, 14)

	flipped := assignments(week, true)
	flipped[0].TeamID = week.Games[0].AwayTeam.ID
	swapped := assignments(week, true)
	swapped[0].Weight, swapped[1].Weight = swapped[1].Weight, swapped[0].Weight

	tests := []struct {
		name       string
		userID     string
		confidence []pick.ConfidenceAssignment
		survivor   []int64
	}{
		{name: "final game team changed", userID: "alice", confidence: flipped, survivor: []int64{survivor}},
		{name: "final game weight changed", userID: "alice", confidence: swapped, survivor: []int64{survivor}},
		{name: "survivor moved off a final game", userID: "alice", confidence: assignments(week, true), survivor: []int64{week.Games[1].HomeTeam.ID}},
		{name: "new entry after a game went final", userID: "bob", confidence: assignments(week, true), survivor: []int64{week.Games[1].HomeTeam.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.picks.Submit(ctx, SubmitPicksInput{UserID: tt.userID, WeekID: week.ID, Confidence: tt.confidence, Survivor: tt.survivor})
			var verr *pick.ValidationError
			if !errors.As(err, &verr) || !verr.HasCode(pick.CodeGameLocked) {
				t.Fatalf("expected game_locked violation, got %v", err)
			}
		})
	}

	openEdit := assignments(week, true)
	openEdit[1].TeamID = week.Games[1].AwayTeam.ID
	f.submit(t, "alice", week.ID, openEdit, survivor)
}
