package usecase

import "time"

type NonParticipantPolicy string

const (
	// NonParticipantOmit gives users without picks no weekly row.
	NonParticipantOmit NonParticipantPolicy = "omit"
	// NonParticipantZero gives every season member without picks a 0-point
	// row ranked after all participants.
	NonParticipantZero NonParticipantPolicy = "zero"
)

func (p NonParticipantPolicy) Valid() bool {
	return p == NonParticipantOmit || p == NonParticipantZero
}

const (
	WarningNoFinalGames       = "no_final_games"
	WarningSurvivorTeamNoGame = "survivor_team_no_game"
	WarningPickGameNotInWeek  = "pick_game_not_in_week"
)

// Warning is a non-fatal data problem found while scoring.
type Warning struct {
	Code    string
	UserID  string
	GameID  int64
	TeamID  int64
	Message string
}

// UserFailure records a user whose scoring failed without blocking the rest
// of the week.
type UserFailure struct {
	UserID  string
	Stage   string
	Message string
}

// UserWeekScore is one user's outcome of a scoring pass. Deltas are relative
// to the previous pass for the same week, so a repeated pass reports zero.
type UserWeekScore struct {
	UserID               string
	ConfidencePoints     int
	ConfidenceDelta      int
	Rank                 int
	PreviousRank         int
	PlayoffPoints        int
	PlayoffDelta         int
	SurvivorDecided      int
	SurvivorPending      int
	SurvivorStrikesAdded int
	SurvivorStrikes      int
	IsEliminated         bool
	NewlyEliminated      bool
}

type ScoreWeekResult struct {
	RunID      string
	SeasonID   int64
	WeekID     int64
	WeekNumber int
	FinalGames int
	TotalGames int
	Users      []UserWeekScore
	Warnings   []Warning
	Failures   []UserFailure
	ScoredAt   time.Time
	Duration   time.Duration
}

// Skipped reports a pass that found nothing final to score.
func (r ScoreWeekResult) Skipped() bool {
	return r.FinalGames == 0
}

type WeekFailure struct {
	SeasonID int64
	WeekID   int64
	Message  string
}

type ScorePendingResult struct {
	RunID    string
	Weeks    []ScoreWeekResult
	Failures []WeekFailure
}

// ScoringRecorder receives scoring metrics.
type ScoringRecorder interface {
	ObserveScoreWeek(outcome string, d time.Duration)
	AddSurvivorStrikes(n int)
	AddEliminations(n int)
	AddWarnings(code string, n int)
	AddUserFailures(n int)
}

type nopScoringRecorder struct{}

func (nopScoringRecorder) ObserveScoreWeek(string, time.Duration) {}
func (nopScoringRecorder) AddSurvivorStrikes(int)                  {}
func (nopScoringRecorder) AddEliminations(int)                     {}
func (nopScoringRecorder) AddWarnings(string, int)                 {}
func (nopScoringRecorder) AddUserFailures(int)                     {}
