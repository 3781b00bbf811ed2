package judging

import (
	"sort"
	"strconv"

	"github.com/hackday-platform/judging-api/storage"
)

// ForJudging selects the initial-round queue for one judge: judgeable
// submissions that are unreviewed and either unclaimed or claimed by that
// judge. The judge's own claims sort first so in-progress work is resumed
// before new items are offered; the rest is newest-first.
func ForJudging(submissions []*storage.Submission, judgeID string) []*storage.Submission {
	candidates := make([]*storage.Submission, 0, len(submissions))
	for _, s := range submissions {
		if !IsJudgeable(s) || s.Reviewed {
			continue
		}
		if s.JudgeID != "" && s.JudgeID != judgeID {
			continue
		}
		candidates = append(candidates, s)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if (a.JudgeID == judgeID) != (b.JudgeID == judgeID) {
			return a.JudgeID == judgeID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return candidates
}

// Page is one slice of an already-filtered, already-sorted candidate list.
// The cursor is an offset into that list; the candidate set is recomputed on
// every request, it is never cached between pages.
type Page struct {
	Items          []*storage.Submission `json:"items"`
	IsDone         bool                  `json:"isDone"`
	ContinueCursor string                `json:"continueCursor,omitempty"`
}

// Paginate cuts numItems out of sorted starting at cursor. An empty or
// malformed cursor starts from the beginning.
func Paginate(sorted []*storage.Submission, cursor string, numItems int) Page {
	if numItems <= 0 {
		numItems = 10
	}

	start := 0
	if cursor != "" {
		if parsed, err := strconv.Atoi(cursor); err == nil && parsed > 0 {
			start = parsed
		}
	}
	if start > len(sorted) {
		start = len(sorted)
	}

	end := start + numItems
	if end > len(sorted) {
		end = len(sorted)
	}

	page := Page{
		Items:  sorted[start:end],
		IsDone: end >= len(sorted),
	}
	if !page.IsDone {
		page.ContinueCursor = strconv.Itoa(end)
	}
	return page
}
