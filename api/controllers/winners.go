package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hackday-platform/judging-api/api/models"
	"github.com/hackday-platform/judging-api/judging"
	"github.com/hackday-platform/judging-api/logging"
	"github.com/hackday-platform/judging-api/storage"
)

// WinnerController derives the ranked winner list from finalist totals.
type WinnerController struct {
	submissions storage.SubmissionStorage
}

func NewWinnerController(s storage.SubmissionStorage) *WinnerController {
	return &WinnerController{submissions: s}
}

func (c *WinnerController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	// The ids-only view backs the public results page, so it skips judge auth.
	engine.GET("/api/winners/ids", c.getTopWinnerIDs)

	group := engine.Group("/api/winners", auth)
	group.GET("", c.getTopWinners)
}

// @Security JudgeToken
// getTopWinners godoc
// @Summary Ranked winners by aggregate finalist score
// @Description Finalists sorted descending by total; ties keep store order and carry no meaning.
// @Tags winners
// @Produce json
// @Param count query int false "How many winners (default 3)"
// @Success 200 {array} storage.Submission
// @Failure 500 {object} models.ErrorResponse
// @Router /api/winners [get]
func (c *WinnerController) getTopWinners(g *gin.Context) {
	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("WINNERS: failed to load submissions: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	count, _ := strconv.Atoi(g.Query("count"))
	g.JSON(http.StatusOK, judging.TopWinners(all, count))
}

// getTopWinnerIDs godoc
// @Summary Ids of the top winners
// @Tags winners
// @Produce json
// @Success 200 {array} models.WinnerIDEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /api/winners/ids [get]
func (c *WinnerController) getTopWinnerIDs(g *gin.Context) {
	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("WINNERS: failed to load submissions: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	winners := judging.TopWinners(all, judging.DefaultWinnerCount)
	ids := make([]models.WinnerIDEntry, 0, len(winners))
	for _, w := range winners {
		ids = append(ids, models.WinnerIDEntry{ID: w.ID})
	}
	g.JSON(http.StatusOK, ids)
}
