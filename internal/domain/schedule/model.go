package schedule

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinWeekNumber = 1
	MaxWeekNumber = 18
)

var (
	ErrInvalidWeekNumber = errors.New("week number out of range")
	ErrInvalidScore      = errors.New("invalid game score")
)

// Season is one year of the pool. Exactly one season is active at a time.
type Season struct {
	ID        int64
	Year      int
	IsActive  bool
	CreatedAt time.Time
}

// Week belongs to a season and carries the pick deadline.
type Week struct {
	ID            int64
	SeasonID      int64
	Number        int
	IsActive      bool
	PicksDeadline time.Time
	Games         []Game
}

// SurvivorPicksRequired is 2 on even weeks and 1 on odd weeks.
func (w Week) SurvivorPicksRequired() int {
	if w.Number%2 == 0 {
		return 2
	}
	return 1
}

func (w Week) ValidateBasic() error {
	if w.Number < MinWeekNumber || w.Number > MaxWeekNumber {
		return fmt.Errorf("%w: week=%d", ErrInvalidWeekNumber, w.Number)
	}
	if w.SeasonID <= 0 {
		return errors.New("season id is required")
	}
	return nil
}

// DeadlinePassed reports whether picks for the week are locked at now.
func (w Week) DeadlinePassed(now time.Time) bool {
	if w.PicksDeadline.IsZero() {
		return false
	}
	return now.After(w.PicksDeadline)
}

// FinalGames returns the games that have been marked final.
func (w Week) FinalGames() []Game {
	out := make([]Game, 0, len(w.Games))
	for _, g := range w.Games {
		if g.IsFinal {
			out = append(out, g)
		}
	}
	return out
}

// GameForTeam returns the game the team plays in this week.
func (w Week) GameForTeam(teamID int64) (Game, bool) {
	for _, g := range w.Games {
		if g.HasTeam(teamID) {
			return g, true
		}
	}
	return Game{}, false
}

type Team struct {
	ID           int64
	Abbreviation string
	Name         string
	City         string
}

func (t Team) DisplayName() string {
	return t.City + " " + t.Name
}

// Game is one matchup. Scores are both set or both nil.
type Game struct {
	ID        int64
	WeekID    int64
	HomeTeam  Team
	AwayTeam  Team
	GameTime  time.Time
	HomeScore *int
	AwayScore *int
	IsFinal   bool
}

func (g Game) HasTeam(teamID int64) bool {
	return g.HomeTeam.ID == teamID || g.AwayTeam.ID == teamID
}

// Winner returns the winning team id. It is false for ties and for games that
// are not final.
func (g Game) Winner() (int64, bool) {
	if !g.IsFinal || g.HomeScore == nil || g.AwayScore == nil {
		return 0, false
	}
	switch {
	case *g.HomeScore > *g.AwayScore:
		return g.HomeTeam.ID, true
	case *g.AwayScore > *g.HomeScore:
		return g.AwayTeam.ID, true
	default:
		return 0, false
	}
}

// IsTie reports a final game with equal scores.
func (g Game) IsTie() bool {
	if !g.IsFinal || g.HomeScore == nil || g.AwayScore == nil {
		return false
	}
	return *g.HomeScore == *g.AwayScore
}

// TeamWon reports whether teamID won this game. Ties and non-final games are
// never a win.
func (g Game) TeamWon(teamID int64) bool {
	winner, ok := g.Winner()
	return ok && winner == teamID
}

func ValidateScores(home, away *int) error {
	if (home == nil) != (away == nil) {
		return fmt.Errorf("%w: home and away scores must both be set", ErrInvalidScore)
	}
	if home == nil {
		return fmt.Errorf("%w: final games require scores", ErrInvalidScore)
	}
	if *home < 0 || *away < 0 {
		return fmt.Errorf("%w: scores cannot be negative: home=%d away=%d", ErrInvalidScore, *home, *away)
	}
	return nil
}
