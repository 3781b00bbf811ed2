package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackday-platform/judging-api/api/models"
	"github.com/hackday-platform/judging-api/judging"
	"github.com/hackday-platform/judging-api/logging"
	"github.com/hackday-platform/judging-api/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// SubmissionController serves the dashboard listing (filter + sort over the
// whole collection), the public gallery and the admin seeding endpoint.
type SubmissionController struct {
	submissions storage.SubmissionStorage
}

func NewSubmissionController(s storage.SubmissionStorage) *SubmissionController {
	return &SubmissionController{submissions: s}
}

func (c *SubmissionController) RegisterRoutes(engine *gin.Engine, auth gin.HandlerFunc) {
	group := engine.Group("/api", auth)

	group.GET("/submissions", c.listFiltered)
	group.GET("/gallery", c.gallery)
	group.POST("/admin/submissions", c.createSubmission)
}

// @Security JudgeToken
// listFiltered godoc
// @Summary Filtered, sorted list of all submissions
// @Description Filters combine with AND; unset filters pass everything. Default order is createdAt descending.
// @Tags submissions
// @Produce json
// @Param status query string false "Exact status match (in-progress|submitted)"
// @Param reviewed query bool false "Reviewed flag (absent flag counts as false)"
// @Param score query int false "Minimum initial score"
// @Param hasVideo query bool false "Video link present"
// @Param hasGithub query bool false "Code link present"
// @Param sortBy query string false "createdAt|score|projectName|status"
// @Param sortOrder query string false "asc|desc"
// @Success 200 {array} storage.Submission
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/submissions [get]
func (c *SubmissionController) listFiltered(g *gin.Context) {
	filters, err := parseFilters(g)
	if err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: err.Error()})
		return
	}

	sortBy := g.Query("sortBy")
	if sortBy != "" && !judging.ValidSortBy(sortBy) {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid sortBy"})
		return
	}
	sortOrder := g.Query("sortOrder")
	if sortOrder != "" && sortOrder != judging.SortAsc && sortOrder != judging.SortDesc {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid sortOrder"})
		return
	}

	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("SUBMISSIONS: failed to load submissions: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	matched := filters.Apply(all)
	judging.SortSubmissions(matched, sortBy, sortOrder)
	g.JSON(http.StatusOK, matched)
}

// @Security JudgeToken
// gallery godoc
// @Summary Shared submissions for the gallery
// @Description Shared and submitted projects, newest first, judging fields stripped.
// @Tags submissions
// @Produce json
// @Success 200 {array} models.GalleryEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /api/gallery [get]
func (c *SubmissionController) gallery(g *gin.Context) {
	all, err := c.submissions.GetAll(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("SUBMISSIONS: failed to load gallery: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not load submissions"})
		return
	}

	shared := make([]*storage.Submission, 0, len(all))
	for _, s := range all {
		if s.Shared && s.Status == storage.StatusSubmitted {
			shared = append(shared, s)
		}
	}
	sort.SliceStable(shared, func(i, j int) bool {
		return shared[i].CreatedAt.After(shared[j].CreatedAt)
	})

	entries := make([]models.GalleryEntry, 0, len(shared))
	for _, s := range shared {
		entries = append(entries, models.TransformSubmissionToGalleryEntry(s))
	}
	g.JSON(http.StatusOK, entries)
}

// @Security JudgeToken
// createSubmission godoc
// @Summary Seed a submission record
// @Description Operations endpoint; participant authoring lives in the participant app.
// @Tags admin
// @Accept json
// @Produce json
// @Param submission body models.CreateSubmissionRequest true "Submission"
// @Success 200 {object} storage.Submission
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/admin/submissions [post]
func (c *SubmissionController) createSubmission(g *gin.Context) {
	var req models.CreateSubmissionRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		logging.Log.Errorf("SUBMISSIONS: invalid create request: %v", err)
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request"})
		return
	}

	id, err := gonanoid.Generate(models.Alphabet, 12)
	if err != nil {
		logging.Log.Errorf("SUBMISSIONS: failed to generate id: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not generate id"})
		return
	}

	now := time.Now().UTC()
	submission := &storage.Submission{
		ID:                  id,
		ProjectName:         req.ProjectName,
		Members:             req.Members,
		UserID:              req.UserID,
		GithubURL:           req.GithubURL,
		HostedSiteURL:       req.HostedSiteURL,
		VideoOverviewURL:    req.VideoOverviewURL,
		Description:         req.Description,
		FavoriteParts:       req.FavoriteParts,
		BiggestChallenges:   req.BiggestChallenges,
		TestingInstructions: req.TestingInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
		Status:              req.Status,
		Shared:              req.Shared,
	}

	if err := c.submissions.Create(g.Request.Context(), submission); err != nil {
		if errors.Is(err, storage.ErrSubmissionAlreadyExists) {
			g.JSON(http.StatusConflict, &models.ErrorResponse{Error: "submission with id already exists"})
			return
		}
		logging.Log.Errorf("SUBMISSIONS: failed to create submission: %v", err)
		g.JSON(http.StatusInternalServerError, &models.ErrorResponse{Error: "could not create submission"})
		return
	}

	logging.Log.Infof("SUBMISSIONS: created %s (%s)", submission.ID, submission.ProjectName)
	g.JSON(http.StatusOK, submission)
}

func parseFilters(g *gin.Context) (judging.Filters, error) {
	var filters judging.Filters

	if raw := g.Query("status"); raw != "" {
		if raw != storage.StatusInProgress && raw != storage.StatusSubmitted {
			return filters, errors.New("invalid status filter")
		}
		filters.Status = &raw
	}
	if raw := g.Query("reviewed"); raw != "" {
		reviewed, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, errors.New("invalid reviewed filter")
		}
		filters.Reviewed = &reviewed
	}
	if raw := g.Query("score"); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil || !judging.ValidScore(score) {
			return filters, errors.New("invalid score filter")
		}
		filters.Score = &score
	}
	if raw := g.Query("hasVideo"); raw != "" {
		hasVideo, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, errors.New("invalid hasVideo filter")
		}
		filters.HasVideo = &hasVideo
	}
	if raw := g.Query("hasGithub"); raw != "" {
		hasGithub, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, errors.New("invalid hasGithub filter")
		}
		filters.HasGithub = &hasGithub
	}
	return filters, nil
}
