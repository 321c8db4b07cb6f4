package standing

import "sort"

var playoffPointsByRank = [...]int{20, 15, 14, 13, 12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}

// PlayoffPointsForRank maps a weekly rank to its playoff award. Ranks past
// the table score zero.
func PlayoffPointsForRank(rank int) int {
	if rank < 1 || rank > len(playoffPointsByRank) {
		return 0
	}
	return playoffPointsByRank[rank-1]
}

// WeeklyTotal is a user's confidence total for a week before ranking.
type WeeklyTotal struct {
	UserID           string
	ConfidencePoints int
	// Participated is false for season members who made no pick.
	Participated bool
}

// RankWeek orders totals and assigns ranks and playoff points.
// Order: participants first, confidence points desc, user id asc. Ranks are
// unique, so tied users get different awards.
func RankWeek(weekID, seasonID int64, weekNumber int, totals []WeeklyTotal) []WeeklyResult {
	ordered := append([]WeeklyTotal(nil), totals...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Participated != ordered[j].Participated {
			return ordered[i].Participated
		}
		if ordered[i].ConfidencePoints != ordered[j].ConfidencePoints {
			return ordered[i].ConfidencePoints > ordered[j].ConfidencePoints
		}
		return ordered[i].UserID < ordered[j].UserID
	})

	results := make([]WeeklyResult, 0, len(ordered))
	for idx, total := range ordered {
		rank := idx + 1
		results = append(results, WeeklyResult{
			UserID:           total.UserID,
			WeekID:           weekID,
			SeasonID:         seasonID,
			WeekNumber:       weekNumber,
			ConfidencePoints: total.ConfidencePoints,
			Rank:             rank,
			PlayoffPoints:    PlayoffPointsForRank(rank),
		})
	}
	return results
}

// OrderSeason returns the leaderboard: playoff points desc, confidence points
// desc, user id asc.
func OrderSeason(stats []UserSeasonStats) []Entry {
	ordered := append([]UserSeasonStats(nil), stats...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].PlayoffPoints != ordered[j].PlayoffPoints {
			return ordered[i].PlayoffPoints > ordered[j].PlayoffPoints
		}
		if ordered[i].ConfidencePoints != ordered[j].ConfidencePoints {
			return ordered[i].ConfidencePoints > ordered[j].ConfidencePoints
		}
		return ordered[i].UserID < ordered[j].UserID
	})

	entries := make([]Entry, 0, len(ordered))
	for idx, s := range ordered {
		entries = append(entries, Entry{
			Position:         idx + 1,
			UserID:           s.UserID,
			PlayoffPoints:    s.PlayoffPoints,
			ConfidencePoints: s.ConfidencePoints,
			SurvivorStrikes:  s.SurvivorStrikes,
			IsEliminated:     s.IsEliminated,
		})
	}
	return entries
}

// SumWeekly folds weekly results into per-user season totals.
func SumWeekly(results []WeeklyResult) map[string]UserSeasonStats {
	out := make(map[string]UserSeasonStats)
	for _, r := range results {
		s := out[r.UserID]
		s.UserID = r.UserID
		s.SeasonID = r.SeasonID
		s.ConfidencePoints += r.ConfidencePoints
		s.PlayoffPoints += r.PlayoffPoints
		out[r.UserID] = s
	}
	return out
}

// OrderWeekly sorts results by week number then rank.
func OrderWeekly(results []WeeklyResult) []WeeklyResult {
	ordered := append([]WeeklyResult(nil), results...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].WeekNumber != ordered[j].WeekNumber {
			return ordered[i].WeekNumber < ordered[j].WeekNumber
		}
		return ordered[i].Rank < ordered[j].Rank
	})
	return ordered
}
