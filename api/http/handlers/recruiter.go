package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rsinha/jobmatch/api/http/presenter"
	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/recruiter"
)

type RecruiterHandler struct {
	useCase recruiter.UseCase
}

func NewRecruiterHandler(useCase recruiter.UseCase) *RecruiterHandler {
	return &RecruiterHandler{useCase: useCase}
}

// ListCandidates returns the ranked, filtered candidate directory.
// @Summary List candidates with ranking and filters
// @Tags    recruiter
// @Produce json
// @Param   category  query string false "category filter"
// @Param   minScore  query int    false "minimum resume score"
// @Param   maxScore  query int    false "maximum resume score"
// @Param   minExp    query number false "minimum experience years"
// @Param   maxExp    query number false "maximum experience years"
// @Param   skills    query string false "comma-separated skills, any-of"
// @Param   location  query string false "location substring"
// @Param   jobType   query string false "preferred job type"
// @Param   workMode  query string false "work mode"
// @Param   search    query string false "free-text search"
// @Param   sortBy    query string false "atsScore | experience | name | createdAt"
// @Param   order     query string false "asc | desc"
// @Param   limit     query int    false "page size (default 20, max 200)"
// @Param   offset    query int    false "page offset"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /recruiter/candidates [get]
func (h *RecruiterHandler) ListCandidates(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 20)
	q := recruiter.Query{
		Filter: recruiter.Filter{
			Category: c.Query("category"),
			MinScore: queryInt(c, "minScore"),
			MaxScore: queryInt(c, "maxScore"),
			Location: c.Query("location"),
			JobType:  c.Query("jobType"),
			WorkMode: c.Query("workMode"),
			Search:   c.Query("search"),
		},
		SortBy: c.Query("sortBy"),
		Desc:   !strings.EqualFold(c.Query("order"), "asc"),
		Limit:  limit,
		Offset: offset,
	}
	q.Filter.MinExperience = queryFloat(c, "minExp")
	q.Filter.MaxExperience = queryFloat(c, "maxExp")
	if raw := strings.TrimSpace(c.Query("skills")); raw != "" {
		q.Filter.Skills = strings.Split(raw, ",")
	}

	items, stats, err := h.useCase.ListCandidates(c.Context(), q)
	if err != nil {
		if errors.Is(err, recruiter.ErrBadQuery) {
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to list candidates")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"candidates": items,
		"stats":      stats,
		"limit":      limit,
		"offset":     offset,
	})
}

// GetCandidate returns one candidate with the computed resume score.
// @Summary Get candidate with score
// @Tags    recruiter
// @Produce json
// @Param   id path string true "candidate ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} recruiter.RankedCandidate
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /recruiter/candidates/{id} [get]
func (h *RecruiterHandler) GetCandidate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	rc, err := h.useCase.CandidateByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load candidate")
	}
	return presenter.JSON(c, http.StatusOK, rc)
}

// Dashboard returns pool-wide aggregates.
// @Summary Recruiter dashboard stats
// @Tags    recruiter
// @Produce json
// @Security BearerAuth
// @Success 200 {object} recruiter.DashboardStats
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /recruiter/dashboard [get]
func (h *RecruiterHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.useCase.Dashboard(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load dashboard")
	}
	return presenter.JSON(c, http.StatusOK, stats)
}

// FilterOptions returns distinct filter values present in the pool.
// @Summary Available filter values
// @Tags    recruiter
// @Produce json
// @Security BearerAuth
// @Success 200 {object} recruiter.FilterOptions
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /recruiter/filters [get]
func (h *RecruiterHandler) FilterOptions(c *fiber.Ctx) error {
	opts, err := h.useCase.FilterOptions(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load filter options")
	}
	return presenter.JSON(c, http.StatusOK, opts)
}

func queryInt(c *fiber.Ctx, name string) int {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func queryFloat(c *fiber.Ctx, name string) float64 {
	if v := strings.TrimSpace(c.Query(name)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}
