package judging

import (
	"sort"
	"strings"

	"github.com/hackday-platform/judging-api/storage"
)

// Filters is the set of recognized listing predicates. Nil fields impose no
// constraint; set fields are combined with AND.
type Filters struct {
	// Status matches exactly ("in-progress" or "submitted").
	Status *string
	// Reviewed true keeps reviewed submissions; false keeps the rest
	// (an absent reviewed flag counts as not reviewed).
	Reviewed *bool
	// Score keeps submissions whose initial score is present and at least
	// this value. It is a minimum, not an exact match.
	Score *int
	// HasVideo / HasGithub match on presence or absence of the link.
	HasVideo  *bool
	HasGithub *bool
}

// Match reports whether a submission passes every set predicate.
func (f Filters) Match(s *storage.Submission) bool {
	if f.Status != nil && s.Status != *f.Status {
		return false
	}
	if f.Reviewed != nil && s.Reviewed != *f.Reviewed {
		return false
	}
	if f.Score != nil && (s.Score == nil || *s.Score < *f.Score) {
		return false
	}
	if f.HasVideo != nil && (s.VideoOverviewURL != "") != *f.HasVideo {
		return false
	}
	if f.HasGithub != nil && (s.GithubURL != "") != *f.HasGithub {
		return false
	}
	return true
}

// Apply returns the submissions passing all set predicates, preserving input
// order.
func (f Filters) Apply(submissions []*storage.Submission) []*storage.Submission {
	matched := make([]*storage.Submission, 0, len(submissions))
	for _, s := range submissions {
		if f.Match(s) {
			matched = append(matched, s)
		}
	}
	return matched
}

const (
	SortByCreatedAt   = "createdAt"
	SortByScore       = "score"
	SortByProjectName = "projectName"
	SortByStatus      = "status"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// ValidSortBy reports whether sortBy names a recognized sort key.
func ValidSortBy(sortBy string) bool {
	switch sortBy {
	case SortByCreatedAt, SortByScore, SortByProjectName, SortByStatus:
		return true
	}
	return false
}

// SortSubmissions orders submissions in place by the given key and direction.
// Defaults are createdAt descending. A missing initial score sorts as 0. The
// sort is stable so the full filter+sort pipeline is deterministic for a
// fixed input.
func SortSubmissions(submissions []*storage.Submission, sortBy, sortOrder string) {
	if !ValidSortBy(sortBy) {
		sortBy = SortByCreatedAt
	}
	desc := sortOrder != SortAsc

	compare := func(a, b *storage.Submission) int {
		switch sortBy {
		case SortByScore:
			return scoreOrZero(a) - scoreOrZero(b)
		case SortByProjectName:
			return strings.Compare(a.ProjectName, b.ProjectName)
		case SortByStatus:
			return strings.Compare(a.Status, b.Status)
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}

	sort.SliceStable(submissions, func(i, j int) bool {
		c := compare(submissions[i], submissions[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func scoreOrZero(s *storage.Submission) int {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

func sortByCreatedDesc(submissions []*storage.Submission) {
	sort.SliceStable(submissions, func(i, j int) bool {
		return submissions[i].CreatedAt.After(submissions[j].CreatedAt)
	})
}
