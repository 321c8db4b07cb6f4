package pick

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSubmission = errors.New("invalid pick submission")

const (
	FieldConfidence = "confidence"
	FieldSurvivor   = "survivor"
)

const (
	CodeUnknownGame        = "unknown_game"
	CodeDuplicateGame      = "duplicate_game"
	CodeMissingGame        = "missing_game"
	CodeTeamNotInGame      = "team_not_in_game"
	CodeWeightOutOfRange   = "weight_out_of_range"
	CodeDuplicateWeight    = "duplicate_weight"
	CodeMissingWeight      = "missing_weight"
	CodeMustWinViolated    = "must_win_violated"
	CodeSurvivorCount      = "survivor_count"
	CodeSurvivorNotPlaying = "survivor_team_not_playing"
	CodeSurvivorDuplicate  = "survivor_duplicate"
	CodeSurvivorReused     = "survivor_reused"
	CodeGameLocked         = "game_locked"
)

// Violation identifies one rejected part of a submission.
type Violation struct {
	Field   string
	GameID  int64
	TeamID  int64
	Weight  int
	Code    string
	Message string
}

// ValidationError carries every violation found in a submission.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrInvalidSubmission.Error()
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Message)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidSubmission.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSubmission
}

// HasCode reports whether any violation carries code.
func (e *ValidationError) HasCode(code string) bool {
	for _, v := range e.Violations {
		if v.Code == code {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(v Violation) {
	e.Violations = append(e.Violations, v)
}

// ErrSurvivorTeamUsed is returned by storage when the season-unique survivor
// constraint rejects a write that raced past validation.
var ErrSurvivorTeamUsed = errors.New("survivor team already used this season")
