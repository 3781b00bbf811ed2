package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hackday-platform/judging-api/api/models"
	"github.com/hackday-platform/judging-api/api/transport"
	"github.com/hackday-platform/judging-api/judging"
	"github.com/hackday-platform/judging-api/logging"
	"github.com/hackday-platform/judging-api/storage"
)

// JudgingController handles the initial judging round: the queue, the
// claim/release protocol and the single initial score per submission.
type JudgingController struct {
	submissions storage.SubmissionStorage
}

func NewJudgingController(s storage.SubmissionStorage) *JudgingController {
	return &JudgingController{submissions: s}
}

func (c *JudgingController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	group := engine.Group("/api/judging", auth)

	group.GET("/submissions", c.listForJudging)
	group.GET("/submissions/:id", c.getForJudging)
	group.POST("/submissions/:id/claim", c.claimSubmission)
	group.POST("/submissions/:id/release", c.releaseClaim)
	group.POST("/submissions/:id/score", c.submitScore)
	group.DELETE("/submissions/:id/score", c.unsetScore)
	group.GET("/counts", c.counts)
	group.GET("/counts/qualified", c.qualifiedCounts)
}

// @Security JudgeToken
// claimSubmission godoc
// @Summary Claim a submission for judging
// @Description Assigns the submission to the calling judge. Re-claiming your own submission is a no-op.
// @Tags judging
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse "Submission not found"
// @Failure 409 {object} models.ErrorResponse "Already claimed by another judge"
// @Router /api/judging/submissions/{id}/claim [post]
func (c *JudgingController) claimSubmission(g *gin.Context) {
	id := g.Param("id")
	judgeID := transport.JudgeID(g)

	if _, err := c.submissions.Get(g.Request.Context(), id); err != nil {
		c.notFoundOrInternal(g, id, err)
		return
	}

	if err := c.submissions.Claim(g.Request.Context(), id, judgeID); err != nil {
		if errors.Is(err, storage.ErrClaimConflict) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "submission already claimed by another judge"})
			return
		}
		logging.Log.Errorf("JUDGING: failed to claim %s for %s: %v", id, judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not claim submission"})
		return
	}

	logging.Log.Infof("JUDGING: %s claimed by %s", id, judgeID)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "submission claimed"})
}

// @Security JudgeToken
// releaseClaim godoc
// @Summary Release a claim on a submission
// @Description Clears the claim. Only the judge holding it can release it.
// @Tags judging
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.MessageResponse
// @Failure 403 {object} models.ErrorResponse "Claim held by a different judge"
// @Failure 404 {object} models.ErrorResponse "Submission not found"
// @Router /api/judging/submissions/{id}/release [post]
func (c *JudgingController) releaseClaim(g *gin.Context) {
	id := g.Param("id")
	judgeID := transport.JudgeID(g)

	if _, err := c.submissions.Get(g.Request.Context(), id); err != nil {
		c.notFoundOrInternal(g, id, err)
		return
	}

	if err := c.submissions.ReleaseClaim(g.Request.Context(), id, judgeID); err != nil {
		if errors.Is(err, storage.ErrNotClaimOwner) {
			g.JSON(http.StatusForbidden, &models.ErrorResponse{Error: "you can only release your own claims"})
			return
		}
		logging.Log.Errorf("JUDGING: failed to release %s for %s: %v", id, judgeID, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not release claim"})
		return
	}

	logging.Log.Infof("JUDGING: claim on %s released by %s", id, judgeID)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "claim released"})
}

// @Security JudgeToken
// submitScore godoc
// @Summary Submit the initial score for a submission
// @Description Sets score and notes and marks the submission reviewed. Last write wins.
// @Tags judging
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param score body models.SubmitScoreRequest true "Score payload"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Score outside 1-10"
// @Failure 404 {object} models.ErrorResponse "Submission not found"
// @Router /api/judging/submissions/{id}/score [post]
func (c *JudgingController) submitScore(g *gin.Context) {
	id := g.Param("id")
	judgeID := transport.JudgeID(g)

	var req models.SubmitScoreRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "score must be between 1 and 10"})
		return
	}

	if _, err := c.submissions.Get(g.Request.Context(), id); err != nil {
		c.notFoundOrInternal(g, id, err)
		return
	}

	if err := c.submissions.PatchJudging(g.Request.Context(), id, req.Score, req.Notes); err != nil {
		c.notFoundOrInternal(g, id, err)
		return
	}

	logging.Log.Infof("JUDGING: %s scored %d by %s", id, req.Score, judgeID)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "score recorded"})
}

// @Security JudgeToken
// unsetScore godoc
// @Summary Clear the initial score of a submission
// @Description Admin correction path. Removes the score only; the reviewed flag is untouched.
// @Tags judging
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse "Submission not found"
// @Router /api/judging/submissions/{id}/score [delete]
func (c *JudgingController) unsetScore(g *gin.Context) {
	id := g.Param("id")

	if _, err := c.submissions.Get(g.Request.Context(), id); err != nil {
		c.notFoundOrInternal(g, id, err)
		return
	}

	if err := c.submissions.UnsetScore(g.Request.Context(), id); err != nil {
		c.notFoundOrInternal(g, id, err)
		return
	}

	logging.Log.Infof("JUDGING: score unset on %s", id)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "score cleared"})
}

// @Security JudgeToken
// listForJudging godoc
// @Summary Page through the judging queue
// @Description Judgeable, unreviewed submissions that are unclaimed or claimed by the caller. The caller's claims sort first.
// @Tags judging
// @Produce json
// @Param cursor query string false "Offset cursor from the previous page"
// @Param numItems query int false "Page size (default 10)"
// @Success 200 {object} judging.Page
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judging/submissions [get]
func (c *JudgingController) listForJudging(g *gin.Context) {
	judgeID := transport.JudgeID(g)

	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("JUDGING: failed to load submissions: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	numItems, _ := strconv.Atoi(g.Query("numItems"))
	queue := judging.ForJudging(all, judgeID)
	g.JSON(http.StatusOK, judging.Paginate(queue, g.Query("cursor"), numItems))
}

// @Security JudgeToken
// getForJudging godoc
// @Summary Get a single submission for judging
// @Tags judging
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} storage.Submission
// @Failure 404 {object} models.ErrorResponse
// @Router /api/judging/submissions/{id} [get]
func (c *JudgingController) getForJudging(g *gin.Context) {
	submission, err := c.submissions.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		c.notFoundOrInternal(g, g.Param("id"), err)
		return
	}
	g.JSON(http.StatusOK, submission)
}

// @Security JudgeToken
// counts godoc
// @Summary Counts of submitted and reviewed submissions
// @Tags judging
// @Produce json
// @Success 200 {object} models.CountsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judging/counts [get]
func (c *JudgingController) counts(g *gin.Context) {
	c.countWith(g, func(s *storage.Submission) bool {
		return s.Status == storage.StatusSubmitted
	})
}

// @Security JudgeToken
// qualifiedCounts godoc
// @Summary Counts of qualified (judgeable) and reviewed submissions
// @Tags judging
// @Produce json
// @Success 200 {object} models.CountsResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/judging/counts/qualified [get]
func (c *JudgingController) qualifiedCounts(g *gin.Context) {
	c.countWith(g, judging.IsJudgeable)
}

func (c *JudgingController) countWith(g *gin.Context, include func(*storage.Submission) bool) {
	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("JUDGING: failed to load submissions for counts: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	counts := models.CountsResponse{}
	for _, s := range all {
		if !include(s) {
			continue
		}
		counts.Submitted++
		if s.Reviewed {
			counts.Reviewed++
		}
	}
	g.JSON(http.StatusOK, counts)
}

func (c *JudgingController) notFoundOrInternal(g *gin.Context, id string, err error) {
	if errors.Is(err, storage.ErrSubmissionNotFound) {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "submission not found"})
		return
	}
	logging.Log.Errorf("JUDGING: storage error for %s: %v", id, err)
	g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "storage error"})
}
