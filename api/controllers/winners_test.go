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

func TestTopWinners(t *testing.T) {
	_, router := setupTestRouter(t)

	// Three finalists. Totals end up gold=19, tied pair at 16 each.
	gold := seedSubmission(t, router, "winners-gold")
	submitInitialScore(t, router, gold, 10)
	tiedA := seedSubmission(t, router, "winners-tied-a")
	submitInitialScore(t, router, tiedA, 9)
	tiedB := seedSubmission(t, router, "winners-tied-b")
	submitInitialScore(t, router, tiedB, 9)

	// Never a finalist, even with a perfect queue placement.
	seedSubmission(t, router, "winners-outsider")

	require.Equal(t, http.StatusOK, submitFinalistScore(t, router, gold, "judge-1-token", 10))
	require.Equal(t, http.StatusOK, submitFinalistScore(t, router, gold, "judge-2-token", 9))
	require.Equal(t, http.StatusOK, submitFinalistScore(t, router, tiedA, "judge-1-token", 8))
	require.Equal(t, http.StatusOK, submitFinalistScore(t, router, tiedA, "judge-2-token", 8))
	require.Equal(t, http.StatusOK, submitFinalistScore(t, router, tiedB, "judge-1-token", 9))
	require.Equal(t, http.StatusOK, submitFinalistScore(t, router, tiedB, "judge-2-token", 7))

	t.Run("ranked descending with ties intact", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/winners", nil, judgeHeaders("judge-1-token"))
		require.Equal(t, http.StatusOK, res.Code)

		var winners []*storage.Submission
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &winners))
		require.Len(t, winners, 3)
		assert.Equal(t, gold, winners[0].ID)
		assert.Equal(t, 19, winners[0].TotalFinalistScore)

		// The tied pair both make the podium; their relative order is
		// whatever the stable sort preserved, not a ranking statement.
		tied := []string{winners[1].ID, winners[2].ID}
		assert.ElementsMatch(t, []string{tiedA, tiedB}, tied)
		assert.Equal(t, 16, winners[1].TotalFinalistScore)
		assert.Equal(t, 16, winners[2].TotalFinalistScore)
	})

	t.Run("count parameter trims the list", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/winners?count=1", nil, judgeHeaders("judge-1-token"))
		require.Equal(t, http.StatusOK, res.Code)

		var winners []*storage.Submission
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &winners))
		require.Len(t, winners, 1)
		assert.Equal(t, gold, winners[0].ID)
	})

	t.Run("public ids endpoint needs no token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/winners/ids", nil, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var ids []models.WinnerIDEntry
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &ids))
		require.Len(t, ids, 3)
		assert.Equal(t, gold, ids[0].ID)
	})

	t.Run("ranked list itself requires a judge token", func(t *testing.T) {
		res := testutils.PerformRequest(router, http.MethodGet, "/api/winners", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
	})
}
