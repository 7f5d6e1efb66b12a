package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rsinha/jobmatch/api/http/presenter"
	"github.com/rsinha/jobmatch/pkg/job"
)

type JobHandler struct {
	useCase job.UseCase
}

func NewJobHandler(useCase job.UseCase) *JobHandler {
	return &JobHandler{useCase: useCase}
}

// List returns active job postings with optional filters.
// @Summary List jobs
// @Tags    jobs
// @Produce json
// @Param   category query string false "category filter"
// @Param   location query string false "location substring filter"
// @Param   jobType  query string false "job type filter"
// @Param   limit    query int    false "page size (default 20, max 200)"
// @Param   offset   query int    false "page offset"
// @Success 200 {object} map[string]any
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 20)
	f := job.Filter{
		Category: c.Query("category"),
		Location: c.Query("location"),
		Type:     c.Query("jobType"),
	}
	items, total, err := h.useCase.List(c.Context(), f, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list jobs")
	}
	if items == nil {
		items = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"jobs":   items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// Get returns one job posting.
// @Summary Get job
// @Tags    jobs
// @Produce json
// @Param   id path string true "job ID (UUID)"
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	found, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load job")
	}
	return presenter.JSON(c, http.StatusOK, found)
}

type createJobRequest struct {
	Title             string   `json:"title" validate:"required"`
	Company           string   `json:"company" validate:"required"`
	Location          string   `json:"location"`
	Category          string   `json:"category" validate:"omitempty,oneof=Technical Sales Marketing Finance Healthcare Education Design HR Operations Other"`
	Description       string   `json:"description"`
	Responsibilities  string   `json:"responsibilities"`
	RequiredSkills    []string `json:"requiredSkills"`
	ExperienceMin     float64  `json:"experienceMin" validate:"gte=0"`
	ExperienceMax     float64  `json:"experienceMax" validate:"gte=0"`
	EducationRequired string   `json:"educationRequired"`
	SalaryMin         float64  `json:"salaryMin" validate:"gte=0"`
	SalaryMax         float64  `json:"salaryMax" validate:"gte=0"`
	SalaryCurrency    string   `json:"salaryCurrency"`
	JobType           string   `json:"jobType" validate:"omitempty,oneof=Full-time Part-time Contract Remote Hybrid"`
	WorkMode          string   `json:"workMode" validate:"omitempty,oneof=Office Hybrid Remote"`
}

// Create stores a manual job posting.
// @Summary Create job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "job payload"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, validationMessage(err))
	}

	j := job.Job{
		Title:             req.Title,
		Company:           req.Company,
		Location:          req.Location,
		Category:          job.Category(req.Category),
		Description:       req.Description,
		Responsibilities:  req.Responsibilities,
		RequiredSkills:    req.RequiredSkills,
		EducationRequired: req.EducationRequired,
		Type:              job.Type(req.JobType),
		WorkMode:          job.WorkMode(req.WorkMode),
		Source:            job.SourceManual,
	}
	if req.ExperienceMax > 0 {
		j.Experience = &job.ExperienceRange{Min: req.ExperienceMin, Max: req.ExperienceMax}
	}
	if req.SalaryMin > 0 && req.SalaryMax > 0 {
		j.Salary = &job.SalaryRange{Min: req.SalaryMin, Max: req.SalaryMax, Currency: req.SalaryCurrency}
	}
	if uid, ok := c.Locals("userId").(string); ok {
		if parsed, err := uuid.Parse(uid); err == nil {
			j.EmployerID = parsed
		}
	}

	created, err := h.useCase.Create(c.Context(), j)
	if err != nil {
		var verr job.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to create job")
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// Import pulls postings from the external job board.
// @Summary Import jobs from the external board
// @Tags    jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Router  /jobs/import [post]
func (h *JobHandler) Import(c *fiber.Ctx) error {
	imported, err := h.useCase.ImportFromBoard(c.Context())
	if err != nil {
		var verr job.ErrValidation
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusServiceUnavailable, verr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, "job import failed")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"imported": imported})
}

// Stats returns the jobs dashboard aggregate.
// @Summary Job stats
// @Tags    jobs
// @Produce json
// @Success 200 {object} job.Stats
// @Router  /jobs/stats [get]
func (h *JobHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.useCase.Stats(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load job stats")
	}
	return presenter.JSON(c, http.StatusOK, stats)
}
