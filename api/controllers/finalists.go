package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackday-platform/judging-api/api/models"
	"github.com/hackday-platform/judging-api/api/transport"
	"github.com/hackday-platform/judging-api/judging"
	"github.com/hackday-platform/judging-api/logging"
	"github.com/hackday-platform/judging-api/storage"
)

// FinalistController handles the second judging round: one score per judge
// per finalist, with the running total derived from the score set.
type FinalistController struct {
	submissions storage.SubmissionStorage
}

func NewFinalistController(s storage.SubmissionStorage) *FinalistController {
	return &FinalistController{submissions: s}
}

func (c *FinalistController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	group := engine.Group("/api/finalists", auth)

	group.GET("", c.list)
	group.GET("/queue", c.queue)
	group.GET("/:id", c.getForJudge)
	group.POST("/:id/score", c.submitScore)
}

// @Security JudgeToken
// list godoc
// @Summary List all finalist-eligible submissions
// @Tags finalists
// @Produce json
// @Success 200 {array} storage.Submission
// @Failure 500 {object} models.ErrorResponse
// @Router /api/finalists [get]
func (c *FinalistController) list(g *gin.Context) {
	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("FINALIST: failed to load submissions: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}
	g.JSON(http.StatusOK, judging.Finalists(all))
}

// @Security JudgeToken
// queue godoc
// @Summary List finalists the calling judge has not scored yet
// @Tags finalists
// @Produce json
// @Success 200 {array} storage.Submission
// @Failure 500 {object} models.ErrorResponse
// @Router /api/finalists/queue [get]
func (c *FinalistController) queue(g *gin.Context) {
	judgeID := transport.JudgeID(g)

	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("FINALIST: failed to load submissions: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}
	g.JSON(http.StatusOK, judging.FinalistQueue(all, judgeID))
}

// @Security JudgeToken
// getForJudge godoc
// @Summary Get one finalist with the calling judge's score
// @Tags finalists
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} models.FinalistForJudgeResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ErrorResponse "Not finalist-eligible"
// @Router /api/finalists/{id} [get]
func (c *FinalistController) getForJudge(g *gin.Context) {
	judgeID := transport.JudgeID(g)

	submission, err := c.submissions.Get(g.Request.Context(), g.Param("id"))
	if err != nil {
		c.notFoundOrInternal(g, err)
		return
	}
	if !judging.IsFinalist(submission) {
		g.JSON(http.StatusUnprocessableEntity, &models.ErrorResponse{Error: notEligibleMessage})
		return
	}

	response := models.FinalistForJudgeResponse{Submission: submission}
	if score, ok := judging.JudgeScore(submission.FinalistScores, judgeID); ok {
		response.JudgeScore = &score
	}
	g.JSON(http.StatusOK, response)
}

// @Security JudgeToken
// submitScore godoc
// @Summary Submit or replace the calling judge's finalist score
// @Description Upserts the judge's entry and recomputes the aggregate total from the full set, so a duplicate submission never double-counts.
// @Tags finalists
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param score body models.FinalistScoreRequest true "Score payload"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse "Score outside 1-10"
// @Failure 404 {object} models.ErrorResponse "Submission not found"
// @Failure 409 {object} models.ErrorResponse "Concurrent update, retry"
// @Failure 422 {object} models.ErrorResponse "Not finalist-eligible"
// @Router /api/finalists/{id}/score [post]
func (c *FinalistController) submitScore(g *gin.Context) {
	id := g.Param("id")
	judgeID := transport.JudgeID(g)

	var req models.FinalistScoreRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "score must be between 1 and 10"})
		return
	}

	submission, err := c.submissions.Get(g.Request.Context(), id)
	if err != nil {
		c.notFoundOrInternal(g, err)
		return
	}
	if !judging.IsFinalist(submission) {
		g.JSON(http.StatusUnprocessableEntity, &models.ErrorResponse{Error: notEligibleMessage})
		return
	}

	scores, total := judging.UpsertFinalistScore(submission.FinalistScores, judgeID, req.Score, time.Now().UTC())

	err = c.submissions.PatchFinalistScores(g.Request.Context(), id, scores, total, submission.Version)
	if err != nil {
		if errors.Is(err, storage.ErrVersionConflict) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "submission was updated concurrently, retry"})
			return
		}
		logging.Log.Errorf("FINALIST: failed to persist score on %s: %v", id, err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not save finalist score"})
		return
	}

	logging.Log.Infof("FINALIST: %s scored %d by %s, total now %d", id, req.Score, judgeID, total)
	g.JSON(http.StatusOK, &models.MessageResponse{Message: "finalist score recorded"})
}

const notEligibleMessage = "submission must have a score of 9 or higher to be eligible for finalist judging"

func (c *FinalistController) notFoundOrInternal(g *gin.Context, err error) {
	if errors.Is(err, storage.ErrSubmissionNotFound) {
		g.JSON(http.StatusNotFound, &models.ErrorResponse{Error: "submission not found"})
		return
	}
	logging.Log.Errorf("FINALIST: storage error: %v", err)
	g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "storage error"})
}
