package testutil

import "github.com/preston-bernstein/ecf-team-win/internal/results"

// SampleMatchResult is a one-board result: 1700 vs missing at 60%/40%.
func SampleMatchResult() results.MatchResult {
	rating := 1700
	return results.MatchResult{
		Boards: 1,
		Summary: results.Summary{
			Team1MatchWinProbability: 0.6,
			Team2MatchWinProbability: 0.4,
		},
		PerBoard: []results.BoardResult{
			{Board: 1, Team1Rating: &rating, Team2Rating: nil, Team1WinProbability: 0.6},
		},
	}
}

// SampleMatchResultJSON is SampleMatchResult as the service sends it.
const SampleMatchResultJSON = `{
	"boards": 1,
	"summary": {"team1MatchWinProbability": 0.6, "team2MatchWinProbability": 0.4},
	"perBoard": [
		{"board": 1, "team1Rating": 1700, "team2Rating": null, "team1WinProbability": 0.6}
	]
}`
