package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rsinha/jobmatch/api/http/presenter"
	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/job"
	"github.com/rsinha/jobmatch/pkg/match"
)

type MatchingHandler struct {
	useCase match.UseCase
}

func NewMatchingHandler(useCase match.UseCase) *MatchingHandler {
	return &MatchingHandler{useCase: useCase}
}

// FindMatches scores the candidate against all active jobs.
// @Summary Find matching jobs for a candidate
// @Description Returns relevant jobs best-first. Repeat calls are idempotent: existing applications keep their score and status.
// @Tags    matching
// @Produce json
// @Param   id path string true "candidate ID (UUID)"
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id}/matches [get]
func (h *MatchingHandler) FindMatches(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	results, err := h.useCase.FindMatches(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, candidate.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		case errors.Is(err, match.ErrChatbotIncomplete):
			return presenter.Error(c, http.StatusBadRequest, "complete the questionnaire before matching")
		case errors.Is(err, match.ErrInvalidProfile):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, "matching failed")
		}
	}
	if results == nil {
		results = []match.MatchResult{}
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"matches": results,
		"total":   len(results),
	})
}

type applyRequest struct {
	CandidateID string `json:"candidateId" validate:"required,uuid"`
	JobID       string `json:"jobId" validate:"required,uuid"`
}

// Apply records a direct application.
// @Summary Apply for a job
// @Description A repeat application returns HTTP 400 with the existing record in the body.
// @Tags    matching
// @Accept  json
// @Produce json
// @Param   input body applyRequest true "application payload"
// @Success 201 {object} match.Application
// @Failure 400 {object} map[string]any
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications [post]
func (h *MatchingHandler) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, validationMessage(err))
	}
	candidateID, _ := uuid.Parse(req.CandidateID)
	jobID, _ := uuid.Parse(req.JobID)

	app, err := h.useCase.ApplyForJob(c.Context(), candidateID, jobID)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrAlreadyApplied):
			// The existing application is returned so the client can render it.
			return presenter.JSON(c, http.StatusBadRequest, fiber.Map{
				"message":     "already applied for this job",
				"application": app,
			})
		case errors.Is(err, candidate.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		case errors.Is(err, job.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "job not found")
		case errors.Is(err, match.ErrInvalidProfile):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to apply")
		}
	}
	return presenter.JSON(c, http.StatusCreated, app)
}

// Applications lists a candidate's applications.
// @Summary List candidate applications
// @Tags    matching
// @Produce json
// @Param   id path string true "candidate ID (UUID)"
// @Success 200 {array} match.Application
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id}/applications [get]
func (h *MatchingHandler) Applications(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	apps, err := h.useCase.ApplicationsForCandidate(c.Context(), id)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to list applications")
	}
	if apps == nil {
		apps = []match.Application{}
	}
	return presenter.JSON(c, http.StatusOK, apps)
}

type updateStatusRequest struct {
	Status        string `json:"status" validate:"required"`
	EmployerNotes string `json:"employerNotes"`
}

// UpdateStatus is the recruiter-side status transition.
// @Summary Update application status
// @Tags    matching
// @Accept  json
// @Produce json
// @Param   id    path string              true "application ID (UUID)"
// @Param   input body updateStatusRequest true "status payload"
// @Security BearerAuth
// @Success 200 {object} match.Application
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /applications/{id} [patch]
func (h *MatchingHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, validationMessage(err))
	}

	patch := match.StatusPatch{
		Status:         match.Status(req.Status),
		EmployerNotes:  req.EmployerNotes,
		EmployerViewed: true,
	}
	app, err := h.useCase.UpdateStatus(c.Context(), id, patch)
	if err != nil {
		switch {
		case errors.Is(err, match.ErrInvalidStatus):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, match.ErrNotFound):
			return presenter.Error(c, http.StatusNotFound, "application not found")
		default:
			return presenter.Error(c, http.StatusInternalServerError, "failed to update application")
		}
	}
	return presenter.JSON(c, http.StatusOK, app)
}

// Shortlist lists auto-selected applications for a job.
// @Summary List auto-selected candidates for a job
// @Tags    matching
// @Produce json
// @Param   id path string true "job ID (UUID)"
// @Security BearerAuth
// @Success 200 {array} match.Application
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/shortlist [get]
func (h *MatchingHandler) Shortlist(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	apps, err := h.useCase.AutoSelectedForJob(c.Context(), id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "job not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to list shortlist")
	}
	if apps == nil {
		apps = []match.Application{}
	}
	return presenter.JSON(c, http.StatusOK, apps)
}
