package judging

import (
	"sort"

	"github.com/hackday-platform/judging-api/storage"
)

// TopWinners ranks the finalist-eligible submissions by total finalist score,
// highest first, and returns at most n of them. A finalist nobody has scored
// yet ranks with total 0. Ties keep the input order (the sort is stable);
// tie order carries no meaning and callers must not depend on it.
func TopWinners(submissions []*storage.Submission, n int) []*storage.Submission {
	if n <= 0 {
		n = DefaultWinnerCount
	}

	finalists := make([]*storage.Submission, 0, len(submissions))
	for _, s := range submissions {
		if IsFinalist(s) {
			finalists = append(finalists, s)
		}
	}

	sort.SliceStable(finalists, func(i, j int) bool {
		return finalists[i].TotalFinalistScore > finalists[j].TotalFinalistScore
	})

	if len(finalists) > n {
		finalists = finalists[:n]
	}
	return finalists
}
