package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rsinha/jobmatch/api/http/presenter"
	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/ingest"
)

type CandidateHandler struct {
	useCase  candidate.UseCase
	maxBytes int64
}

func NewCandidateHandler(useCase candidate.UseCase) *CandidateHandler {
	return &CandidateHandler{
		useCase:  useCase,
		maxBytes: 15 << 20, // 15MB
	}
}

// Upload registers a candidate from a resume file.
// @Summary Upload resume and register candidate
// @Description Accepts PDF/DOCX, extracts the profile and creates the candidate record.
// @Tags        candidates
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "Resume file (PDF/DOCX)"
// @Success     201 {object} candidate.Candidate
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     409 {object} presenter.ErrorResponse
// @Router      /candidates [post]
func (h *CandidateHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	created, err := h.useCase.Register(c.Context(), fh.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, candidate.ErrEmailTaken):
			return presenter.Error(c, http.StatusConflict, "candidate with this email already exists")
		case errors.Is(err, candidate.ErrEmptyResume), errors.Is(err, ingest.ErrUnsupportedFormat):
			return presenter.Error(c, http.StatusBadRequest, err.Error())
		default:
			return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to parse resume: %v", err))
		}
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

type preferencesRequest struct {
	CurrentLocation    string   `json:"currentLocation"`
	PreferredLocations []string `json:"preferredLocations"`
	ExpectedSalaryMin  float64  `json:"expectedSalaryMin" validate:"gte=0"`
	ExpectedSalaryMax  float64  `json:"expectedSalaryMax" validate:"gte=0"`
	PreferredJobType   string   `json:"preferredJobType" validate:"omitempty,oneof=Full-time Part-time Contract Remote Hybrid"`
	WorkMode           string   `json:"workMode" validate:"omitempty,oneof=Office Hybrid Remote"`
	NoticePeriod       string   `json:"noticePeriod"`
	WillingToRelocate  bool     `json:"willingToRelocate"`
}

// SavePreferences stores the questionnaire outcome.
// @Summary Save candidate preferences
// @Description Stores the questionnaire answers and marks the candidate ready for matching.
// @Tags    candidates
// @Accept  json
// @Produce json
// @Param   id    path string             true "candidate ID (UUID)"
// @Param   input body preferencesRequest true "preferences payload"
// @Success 200 {object} candidate.Candidate
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id}/preferences [post]
func (h *CandidateHandler) SavePreferences(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	var req preferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validate.Struct(req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, validationMessage(err))
	}
	if req.ExpectedSalaryMax != 0 && req.ExpectedSalaryMax < req.ExpectedSalaryMin {
		return presenter.Error(c, http.StatusBadRequest, "expectedSalaryMax must not be below expectedSalaryMin")
	}

	prefs := candidate.Preferences{
		CurrentLocation:    req.CurrentLocation,
		PreferredLocations: req.PreferredLocations,
		PreferredJobType:   candidate.JobType(req.PreferredJobType),
		WorkMode:           candidate.WorkMode(req.WorkMode),
		NoticePeriod:       req.NoticePeriod,
		WillingToRelocate:  req.WillingToRelocate,
	}
	if req.ExpectedSalaryMin > 0 || req.ExpectedSalaryMax > 0 {
		prefs.ExpectedSalary = &candidate.SalaryRange{Min: req.ExpectedSalaryMin, Max: req.ExpectedSalaryMax}
	}

	updated, err := h.useCase.SavePreferences(c.Context(), id, prefs)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to save preferences")
	}
	return presenter.JSON(c, http.StatusOK, updated)
}

// Get returns one candidate.
// @Summary Get candidate
// @Tags    candidates
// @Produce json
// @Param   id path string true "candidate ID (UUID)"
// @Success 200 {object} candidate.Candidate
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /candidates/{id} [get]
func (h *CandidateHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	found, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, candidate.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "candidate not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to load candidate")
	}
	return presenter.JSON(c, http.StatusOK, found)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, errors.New("failed to read uploaded file")
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file is too large (max %d bytes)", max)
	}
	return data, nil
}
