package models

// Stats is the season summary reduced from every result.
// Losses counts every non-win, so Wins+Losses == TotalGames; Ties is the
// part of Losses that ended level.
type Stats struct {
	TotalGames   int `json:"total_games"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	Ties         int `json:"ties"`
	TotalGoals   int `json:"total_goals"`
	GoalsAgainst int `json:"goals_against"`
}

func ComputeStats(results []Result) Stats {
	var stats Stats
	stats.TotalGames = len(results)
	for _, r := range results {
		switch r.Outcome() {
		case OutcomeWin:
			stats.Wins++
		case OutcomeTie:
			stats.Ties++
		}
		stats.TotalGoals += r.TitansScore
		stats.GoalsAgainst += r.OpponentScore
	}
	stats.Losses = stats.TotalGames - stats.Wins
	return stats
}

// ComputeRecord reduces results against one opponent into a record, with
// the same loss counting as ComputeStats.
func ComputeRecord(teamID uint, results []Result) TeamRecord {
	stats := ComputeStats(results)
	return TeamRecord{
		TeamID: teamID,
		Wins:   stats.Wins,
		Ties:   stats.Ties,
		Losses: stats.Losses,
	}
}
