package pick

import (
	"time"
)

// ConfidencePick is one user's prediction for one game, weighted by a value
// unique within the week.
type ConfidencePick struct {
	ID        int64
	UserID    string
	WeekID    int64
	GameID    int64
	TeamID    int64
	Weight    int
	CreatedAt time.Time
}

// SurvivorPick is decided exactly once. IsCorrect stays nil until the team's
// game is final.
type SurvivorPick struct {
	ID        int64
	UserID    string
	WeekID    int64
	SeasonID  int64
	TeamID    int64
	IsCorrect *bool
	CreatedAt time.Time
}

func (p SurvivorPick) Decided() bool {
	return p.IsCorrect != nil
}

// ConfidenceAssignment is the submitted form of a confidence pick.
type ConfidenceAssignment struct {
	GameID int64
	TeamID int64
	Weight int
}

// Submission is a user's full pick set for one week. It replaces any earlier
// submission for the same week.
type Submission struct {
	UserID     string
	WeekID     int64
	Confidence []ConfidenceAssignment
	Survivor   []int64
}

// Picks is the stored pick set of one user for one week.
type Picks struct {
	Confidence []ConfidencePick
	Survivor   []SurvivorPick
}

func (p Picks) Empty() bool {
	return len(p.Confidence) == 0 && len(p.Survivor) == 0
}
