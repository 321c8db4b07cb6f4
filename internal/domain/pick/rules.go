package pick

import "strings"

// Rules stores the deployment-specific pick constraints.
type Rules struct {
	// MustWinTeams lists team abbreviations that must be picked to win
	// whenever they play.
	MustWinTeams []string
}

func DefaultRules() Rules {
	return Rules{}
}

func (r Rules) isMustWin(abbreviation string) bool {
	for _, team := range r.MustWinTeams {
		if strings.EqualFold(strings.TrimSpace(team), abbreviation) {
			return true
		}
	}
	return false
}
