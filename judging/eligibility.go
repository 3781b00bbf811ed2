// Package judging holds the pure scoring and selection logic: eligibility,
// the judging queue, the finalist score upsert, ranking and the filtered
// listing. Everything here operates on in-memory submissions; persistence and
// identity stay in the api and storage packages.
package judging

import "github.com/hackday-platform/judging-api/storage"

const (
	MinScore = 1
	MaxScore = 10

	// FinalistThreshold is the initial score at which a submission becomes
	// eligible for the finalist round.
	FinalistThreshold = 9

	DefaultWinnerCount = 3
)

// IsJudgeable reports whether a submission can enter the initial judging
// queue: it has been submitted and carries both a video and a code link.
func IsJudgeable(s *storage.Submission) bool {
	return s.Status == storage.StatusSubmitted && s.VideoOverviewURL != "" && s.GithubURL != ""
}

// IsFinalist reports whether a submission qualified for the finalist round.
func IsFinalist(s *storage.Submission) bool {
	return s.Score != nil && *s.Score >= FinalistThreshold
}

// ValidScore reports whether a rating lies in the accepted 1-10 range.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
