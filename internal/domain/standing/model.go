package standing

import "time"

// MaxSurvivorStrikes eliminates a user from the survivor contest.
const MaxSurvivorStrikes = 3

// UserSeasonStats holds a user's season totals. Confidence and playoff points
// always equal the sums over the user's WeeklyResult rows.
type UserSeasonStats struct {
	UserID           string
	SeasonID         int64
	ConfidencePoints int
	PlayoffPoints    int
	SurvivorStrikes  int
	IsEliminated     bool
	UpdatedAt        time.Time
}

// ApplyStrike records one survivor loss. Strikes never exceed the maximum and
// elimination is never reverted.
func (s UserSeasonStats) ApplyStrike() UserSeasonStats {
	if s.SurvivorStrikes < MaxSurvivorStrikes {
		s.SurvivorStrikes++
	}
	if s.SurvivorStrikes >= MaxSurvivorStrikes {
		s.IsEliminated = true
	}
	return s
}

// WeeklyResult is one user's scored outcome for one week.
type WeeklyResult struct {
	UserID           string
	WeekID           int64
	SeasonID         int64
	WeekNumber       int
	ConfidencePoints int
	Rank             int
	PlayoffPoints    int
	UpdatedAt        time.Time
}

// SurvivorOutcome is the state after a survivor pick decision.
type SurvivorOutcome struct {
	// Applied is false when the pick had already been decided.
	Applied         bool
	Strikes         int
	IsEliminated    bool
	NewlyEliminated bool
}

// Entry is one row of the season leaderboard.
type Entry struct {
	Position         int
	UserID           string
	PlayoffPoints    int
	ConfidencePoints int
	SurvivorStrikes  int
	IsEliminated     bool
}
