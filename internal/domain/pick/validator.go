package pick

import (
	"fmt"

	"github.com/riskibarqy/confidence-pool/internal/domain/schedule"
)

// ValidationInput is everything Validate needs to judge a submission without
// touching storage.
type ValidationInput struct {
	Week       schedule.Week
	Submission Submission
	// SurvivorRequired is the number of survivor teams expected. It is zero for
	// eliminated users.
	SurvivorRequired int
	// SurvivorHistory holds the user's survivor picks in the same season,
	// excluding the week being submitted.
	SurvivorHistory []SurvivorPick
	// Stored is the user's current pick set for the week. Picks on final games
	// must be resubmitted unchanged.
	Stored Picks
	Rules  Rules
}

// Validate returns nil or a *ValidationError listing every violation.
func Validate(in ValidationInput) error {
	verr := &ValidationError{}
	validateConfidence(in, verr)
	validateSurvivor(in, verr)
	validateLocked(in, verr)

	if len(verr.Violations) > 0 {
		return verr
	}
	return nil
}

func validateConfidence(in ValidationInput, verr *ValidationError) {
	games := make(map[int64]schedule.Game, len(in.Week.Games))
	for _, g := range in.Week.Games {
		games[g.ID] = g
	}
	gameCount := len(in.Week.Games)

	assigned := make(map[int64]struct{}, len(in.Submission.Confidence))
	weightsUsed := make(map[int]int64, len(in.Submission.Confidence))
	for _, a := range in.Submission.Confidence {
		game, ok := games[a.GameID]
		if !ok {
			verr.add(Violation{
				Field:   FieldConfidence,
				GameID:  a.GameID,
				TeamID:  a.TeamID,
				Code:    CodeUnknownGame,
				Message: fmt.Sprintf("game %d is not part of week %d", a.GameID, in.Week.Number),
			})
			continue
		}
		if _, dup := assigned[a.GameID]; dup {
			verr.add(Violation{
				Field:   FieldConfidence,
				GameID:  a.GameID,
				Code:    CodeDuplicateGame,
				Message: fmt.Sprintf("game %d is picked more than once", a.GameID),
			})
			continue
		}
		assigned[a.GameID] = struct{}{}

		if !game.HasTeam(a.TeamID) {
			verr.add(Violation{
				Field:   FieldConfidence,
				GameID:  a.GameID,
				TeamID:  a.TeamID,
				Code:    CodeTeamNotInGame,
				Message: fmt.Sprintf("team %d does not play in game %d", a.TeamID, a.GameID),
			})
		} else if mustWin, ok := mustWinTeam(game, in.Rules); ok && !in.Rules.isMustWin(teamAbbreviation(game, a.TeamID)) {
			verr.add(Violation{
				Field:   FieldConfidence,
				GameID:  a.GameID,
				TeamID:  a.TeamID,
				Code:    CodeMustWinViolated,
				Message: fmt.Sprintf("%s must be picked to win game %d", mustWin.Abbreviation, a.GameID),
			})
		}

		if a.Weight < 1 || a.Weight > gameCount {
			verr.add(Violation{
				Field:   FieldConfidence,
				GameID:  a.GameID,
				Weight:  a.Weight,
				Code:    CodeWeightOutOfRange,
				Message: fmt.Sprintf("weight %d for game %d must be between 1 and %d", a.Weight, a.GameID, gameCount),
			})
			continue
		}
		if other, dup := weightsUsed[a.Weight]; dup {
			verr.add(Violation{
				Field:   FieldConfidence,
				GameID:  a.GameID,
				Weight:  a.Weight,
				Code:    CodeDuplicateWeight,
				Message: fmt.Sprintf("weight %d is used for both game %d and game %d", a.Weight, other, a.GameID),
			})
			continue
		}
		weightsUsed[a.Weight] = a.GameID
	}

	for _, g := range in.Week.Games {
		if _, ok := assigned[g.ID]; !ok {
			verr.add(Violation{
				Field:   FieldConfidence,
				GameID:  g.ID,
				Code:    CodeMissingGame,
				Message: fmt.Sprintf("game %d has no pick", g.ID),
			})
		}
	}
	for weight := 1; weight <= gameCount; weight++ {
		if _, ok := weightsUsed[weight]; !ok {
			verr.add(Violation{
				Field:   FieldConfidence,
				Weight:  weight,
				Code:    CodeMissingWeight,
				Message: fmt.Sprintf("weight %d is not assigned", weight),
			})
		}
	}
}

func validateSurvivor(in ValidationInput, verr *ValidationError) {
	if len(in.Submission.Survivor) != in.SurvivorRequired {
		verr.add(Violation{
			Field:   FieldSurvivor,
			Code:    CodeSurvivorCount,
			Message: fmt.Sprintf("week %d requires %d survivor pick(s), got %d", in.Week.Number, in.SurvivorRequired, len(in.Submission.Survivor)),
		})
	}

	used := make(map[int64]int64, len(in.SurvivorHistory))
	for _, p := range in.SurvivorHistory {
		if p.WeekID == in.Week.ID {
			continue
		}
		used[p.TeamID] = p.WeekID
	}

	seen := make(map[int64]struct{}, len(in.Submission.Survivor))
	for _, teamID := range in.Submission.Survivor {
		if _, dup := seen[teamID]; dup {
			verr.add(Violation{
				Field:   FieldSurvivor,
				TeamID:  teamID,
				Code:    CodeSurvivorDuplicate,
				Message: fmt.Sprintf("team %d is picked twice this week", teamID),
			})
			continue
		}
		seen[teamID] = struct{}{}

		if _, plays := in.Week.GameForTeam(teamID); !plays {
			verr.add(Violation{
				Field:   FieldSurvivor,
				TeamID:  teamID,
				Code:    CodeSurvivorNotPlaying,
				Message: fmt.Sprintf("team %d has no game in week %d", teamID, in.Week.Number),
			})
		}
		if weekID, reused := used[teamID]; reused {
			verr.add(Violation{
				Field:   FieldSurvivor,
				TeamID:  teamID,
				Code:    CodeSurvivorReused,
				Message: fmt.Sprintf("team %d was already used as a survivor pick (week id %d)", teamID, weekID),
			})
		}
	}
}

// validateLocked rejects adding, changing or dropping a pick whose game is
// already final. A decided survivor pick is locked even if the schedule was
// edited afterwards.
func validateLocked(in ValidationInput, verr *ValidationError) {
	final := make(map[int64]struct{})
	for _, g := range in.Week.Games {
		if g.IsFinal {
			final[g.ID] = struct{}{}
		}
	}

	stored := make(map[int64]ConfidencePick, len(in.Stored.Confidence))
	for _, p := range in.Stored.Confidence {
		stored[p.GameID] = p
	}
	for _, a := range in.Submission.Confidence {
		if _, locked := final[a.GameID]; !locked {
			continue
		}
		if prev, ok := stored[a.GameID]; ok && prev.TeamID == a.TeamID && prev.Weight == a.Weight {
			continue
		}
		verr.add(Violation{
			Field:   FieldConfidence,
			GameID:  a.GameID,
			TeamID:  a.TeamID,
			Weight:  a.Weight,
			Code:    CodeGameLocked,
			Message: fmt.Sprintf("game %d is final; its pick can no longer change", a.GameID),
		})
	}

	submitted := make(map[int64]struct{}, len(in.Submission.Survivor))
	for _, teamID := range in.Submission.Survivor {
		submitted[teamID] = struct{}{}
	}
	kept := make(map[int64]struct{}, len(in.Stored.Survivor))
	for _, p := range in.Stored.Survivor {
		kept[p.TeamID] = struct{}{}
		game, plays := in.Week.GameForTeam(p.TeamID)
		if !p.Decided() && !(plays && game.IsFinal) {
			continue
		}
		if _, ok := submitted[p.TeamID]; !ok {
			verr.add(Violation{
				Field:   FieldSurvivor,
				TeamID:  p.TeamID,
				Code:    CodeGameLocked,
				Message: fmt.Sprintf("survivor team %d is locked; its game is final", p.TeamID),
			})
		}
	}
	for _, teamID := range in.Submission.Survivor {
		if _, ok := kept[teamID]; ok {
			continue
		}
		if game, plays := in.Week.GameForTeam(teamID); plays && game.IsFinal {
			verr.add(Violation{
				Field:   FieldSurvivor,
				TeamID:  teamID,
				Code:    CodeGameLocked,
				Message: fmt.Sprintf("team %d has already played game %d", teamID, game.ID),
			})
		}
	}
}

// mustWinTeam returns the must-win team playing in game, if any. When both
// teams are must-win, either pick satisfies the rule.
func mustWinTeam(game schedule.Game, rules Rules) (schedule.Team, bool) {
	switch {
	case rules.isMustWin(game.HomeTeam.Abbreviation):
		return game.HomeTeam, true
	case rules.isMustWin(game.AwayTeam.Abbreviation):
		return game.AwayTeam, true
	default:
		return schedule.Team{}, false
	}
}

func teamAbbreviation(game schedule.Game, teamID int64) string {
	if game.HomeTeam.ID == teamID {
		return game.HomeTeam.Abbreviation
	}
	return game.AwayTeam.Abbreviation
}

// ToPicks converts a validated submission into storable rows.
func ToPicks(sub Submission, seasonID int64) Picks {
	out := Picks{
		Confidence: make([]ConfidencePick, 0, len(sub.Confidence)),
		Survivor:   make([]SurvivorPick, 0, len(sub.Survivor)),
	}
	for _, a := range sub.Confidence {
		out.Confidence = append(out.Confidence, ConfidencePick{
			UserID: sub.UserID,
			WeekID: sub.WeekID,
			GameID: a.GameID,
			TeamID: a.TeamID,
			Weight: a.Weight,
		})
	}
	for _, teamID := range sub.Survivor {
		out.Survivor = append(out.Survivor, SurvivorPick{
			UserID:   sub.UserID,
			WeekID:   sub.WeekID,
			SeasonID: seasonID,
			TeamID:   teamID,
		})
	}
	return out
}

// KeepDecisions copies recorded survivor results onto resubmitted picks of the
// same week and team, so replacing a pick set never reopens a decision.
func (p Picks) KeepDecisions(stored []SurvivorPick) {
	decided := make(map[int64]bool, len(stored))
	for _, s := range stored {
		if s.Decided() {
			decided[s.TeamID] = *s.IsCorrect
		}
	}
	for i := range p.Survivor {
		if correct, ok := decided[p.Survivor[i].TeamID]; ok {
			p.Survivor[i].IsCorrect = &correct
		}
	}
}
