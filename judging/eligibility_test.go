package judging

import (
	"testing"
	"time"

	"github.com/hackday-platform/judging-api/storage"
	"github.com/stretchr/testify/assert"
)

func scorePtr(v int) *int {
	return &v
}

func submission(id string, createdAt time.Time, mutate ...func(*storage.Submission)) *storage.Submission {
	s := &storage.Submission{
		ID:               id,
		ProjectName:      "Project " + id,
		Members:          []string{"member-" + id},
		GithubURL:        "https://github.com/example/" + id,
		VideoOverviewURL: "https://video.example/" + id,
		Status:           storage.StatusSubmitted,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	for _, m := range mutate {
		m(s)
	}
	return s
}

func TestIsJudgeable(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("submitted with video and code link is judgeable", func(t *testing.T) {
		assert.True(t, IsJudgeable(submission("a", base)))
	})

	t.Run("in-progress is not judgeable", func(t *testing.T) {
		s := submission("b", base, func(s *storage.Submission) { s.Status = storage.StatusInProgress })
		assert.False(t, IsJudgeable(s))
	})

	t.Run("missing video link is not judgeable", func(t *testing.T) {
		s := submission("c", base, func(s *storage.Submission) { s.VideoOverviewURL = "" })
		assert.False(t, IsJudgeable(s))
	})

	t.Run("missing code link is not judgeable", func(t *testing.T) {
		s := submission("d", base, func(s *storage.Submission) { s.GithubURL = "" })
		assert.False(t, IsJudgeable(s))
	})
}

func TestIsFinalist(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no initial score", func(t *testing.T) {
		assert.False(t, IsFinalist(submission("a", base)))
	})

	t.Run("score below threshold", func(t *testing.T) {
		for score := MinScore; score < FinalistThreshold; score++ {
			s := submission("b", base, func(s *storage.Submission) { s.Score = scorePtr(score) })
			assert.False(t, IsFinalist(s), "score %d must not qualify", score)
		}
	})

	t.Run("score at or above threshold", func(t *testing.T) {
		for score := FinalistThreshold; score <= MaxScore; score++ {
			s := submission("c", base, func(s *storage.Submission) { s.Score = scorePtr(score) })
			assert.True(t, IsFinalist(s), "score %d must qualify", score)
		}
	})
}

func TestValidScore(t *testing.T) {
	assert.False(t, ValidScore(0))
	assert.True(t, ValidScore(1))
	assert.True(t, ValidScore(10))
	assert.False(t, ValidScore(11))
	assert.False(t, ValidScore(-3))
}
