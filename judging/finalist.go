package judging

import (
	"time"

	"github.com/hackday-platform/judging-api/storage"
)

// UpsertFinalistScore replaces or appends a judge's entry in the finalist
// score set and recomputes the total from the updated set. This is the only
// path that produces a total, so the stored aggregate can never drift from
// the entries it is derived from, and a retried submission never counts a
// judge twice.
func UpsertFinalistScore(entries []storage.FinalistScore, judgeID string, score int, now time.Time) ([]storage.FinalistScore, int) {
	updated := make([]storage.FinalistScore, len(entries))
	copy(updated, entries)

	entry := storage.FinalistScore{
		JudgeID:     judgeID,
		Score:       score,
		SubmittedAt: now,
	}

	replaced := false
	for i := range updated {
		if updated[i].JudgeID == judgeID {
			updated[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		updated = append(updated, entry)
	}

	total := 0
	for _, e := range updated {
		total += e.Score
	}
	return updated, total
}

// JudgeScore returns the score judgeID gave, if any.
func JudgeScore(entries []storage.FinalistScore, judgeID string) (int, bool) {
	for _, e := range entries {
		if e.JudgeID == judgeID {
			return e.Score, true
		}
	}
	return 0, false
}

// FinalistQueue selects finalists the given judge has not scored yet,
// newest-first. No resume ordering is needed here: each judge scores each
// finalist at most once.
func FinalistQueue(submissions []*storage.Submission, judgeID string) []*storage.Submission {
	queue := make([]*storage.Submission, 0, len(submissions))
	for _, s := range submissions {
		if !IsFinalist(s) {
			continue
		}
		if _, scored := JudgeScore(s.FinalistScores, judgeID); scored {
			continue
		}
		queue = append(queue, s)
	}
	sortByCreatedDesc(queue)
	return queue
}

// Finalists returns every finalist-eligible submission, newest-first.
func Finalists(submissions []*storage.Submission) []*storage.Submission {
	finalists := make([]*storage.Submission, 0, len(submissions))
	for _, s := range submissions {
		if IsFinalist(s) {
			finalists = append(finalists, s)
		}
	}
	sortByCreatedDesc(finalists)
	return finalists
}
