package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	testutils "github.com/hackday-platform/judging-api/api/controllers/testing"
	"github.com/hackday-platform/judging-api/api/models"
	"github.com/hackday-platform/judging-api/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFiltered(t *testing.T) {
	_, router := setupTestRouter(t)

	withVideo := seedSubmission(t, router, "filtered-video")
	seedSubmission(t, router, "filtered-no-video", func(r *models.CreateSubmissionRequest) {
		r.VideoOverviewURL = ""
	})
	seedSubmission(t, router, "filtered-draft", func(r *models.CreateSubmissionRequest) {
		r.Status = storage.StatusInProgress
	})
	scored := seedSubmission(t, router, "filtered-scored")
	submitInitialScore(t, router, scored, 7)

	list := func(query string) []*storage.Submission {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/submissions"+query, nil, judgeHeaders("judge-1-token"))
		require.Equal(t, http.StatusOK, res.Code)
		var subs []*storage.Submission
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &subs))
		return subs
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, list(""), 4)
	})

	t.Run("status and hasVideo combine with AND", func(t *testing.T) {
		subs := list("?status=submitted&hasVideo=true")
		require.Len(t, subs, 2)
		ids := []string{subs[0].ID, subs[1].ID}
		assert.ElementsMatch(t, []string{withVideo, scored}, ids)
	})

	t.Run("minimum score filter", func(t *testing.T) {
		subs := list("?score=5")
		require.Len(t, subs, 1)
		assert.Equal(t, scored, subs[0].ID)

		assert.Empty(t, list("?score=8"))
	})

	t.Run("reviewed false includes never-reviewed", func(t *testing.T) {
		subs := list("?reviewed=false")
		assert.Len(t, subs, 3)
	})

	t.Run("sort by score descending puts scored first", func(t *testing.T) {
		subs := list("?sortBy=score&sortOrder=desc")
		require.NotEmpty(t, subs)
		assert.Equal(t, scored, subs[0].ID)
	})

	t.Run("invalid filter and sort values are rejected", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/submissions?score=15", nil, judgeHeaders("judge-1-token"))
		assert.Equal(t, http.StatusBadRequest, res.Code)

		res = testutils.PerformRequest(router, http.MethodGet, "/api/submissions?sortBy=bogus", nil, judgeHeaders("judge-1-token"))
		assert.Equal(t, http.StatusBadRequest, res.Code)

		res = testutils.PerformRequest(router, http.MethodGet, "/api/submissions?status=bogus", nil, judgeHeaders("judge-1-token"))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestGallery(t *testing.T) {
	_, router := setupTestRouter(t)

	shared := seedSubmission(t, router, "gallery-shared", func(r *models.CreateSubmissionRequest) {
		r.Shared = true
	})
	seedSubmission(t, router, "gallery-private")
	seedSubmission(t, router, "gallery-draft", func(r *models.CreateSubmissionRequest) {
		r.Shared = true
		r.Status = storage.StatusInProgress
	})
	scoredShared := seedSubmission(t, router, "gallery-scored", func(r *models.CreateSubmissionRequest) {
		r.Shared = true
	})
	submitInitialScore(t, router, scoredShared, 9)

	res := testutils.PerformRequest(router, http.MethodGet, "/api/gallery", nil, judgeHeaders("judge-1-token"))
	require.Equal(t, http.StatusOK, res.Code)

	var entries []models.GalleryEntry
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &entries))
	require.Len(t, entries, 2, "only shared and submitted projects appear")

	ids := []string{entries[0].ID, entries[1].ID}
	assert.ElementsMatch(t, []string{shared, scoredShared}, ids)

	// Judging data never leaks through the gallery payload.
	raw := res.Body.String()
	assert.NotContains(t, raw, "judgeNotes")
	assert.NotContains(t, raw, "finalistScores")
}

func TestCreateSubmissionValidation(t *testing.T) {
	_, router := setupTestRouter(t)

	t.Run("missing required fields rejected", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/submissions",
			map[string]string{"projectName": "incomplete"}, judgeHeaders("judge-1-token"))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("bad status rejected", func(t *testing.T) {
		req := models.CreateSubmissionRequest{
			ProjectName: "bad-status",
			Members:     []string{"Alice"},
			GithubURL:   "https://github.com/example/bad-status",
			Status:      "abandoned",
		}
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/submissions", req, judgeHeaders("judge-1-token"))
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("requires a token", func(t *testing.T) {
		req := models.CreateSubmissionRequest{
			ProjectName: "unauthorized",
			Members:     []string{"Alice"},
			GithubURL:   "https://github.com/example/unauthorized",
			Status:      storage.StatusSubmitted,
		}
		res := testutils.PerformRequest(router, http.MethodPost, "/api/admin/submissions", req, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}
