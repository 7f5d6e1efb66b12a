package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinha/jobmatch/pkg/match"
)

type stubMatchUseCase struct {
	applyApp match.Application
	applyErr error
}

func (s *stubMatchUseCase) FindMatches(ctx context.Context, candidateID uuid.UUID) ([]match.MatchResult, error) {
	return nil, nil
}

func (s *stubMatchUseCase) ApplyForJob(ctx context.Context, candidateID, jobID uuid.UUID) (match.Application, error) {
	return s.applyApp, s.applyErr
}

func (s *stubMatchUseCase) ApplicationsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Application, error) {
	return nil, nil
}

func (s *stubMatchUseCase) UpdateStatus(ctx context.Context, applicationID uuid.UUID, patch match.StatusPatch) (match.Application, error) {
	return match.Application{}, nil
}

func (s *stubMatchUseCase) AutoSelectedForJob(ctx context.Context, jobID uuid.UUID) ([]match.Application, error) {
	return nil, nil
}

func postApply(t *testing.T, uc match.UseCase) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Post("/applications", NewMatchingHandler(uc).Apply)

	body := fmt.Sprintf(`{"candidateId":%q,"jobId":%q}`, uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestApply_Created(t *testing.T) {
	existing := match.Application{ID: uuid.New(), MatchScore: 72, Status: match.StatusApplied}
	resp := postApply(t, &stubMatchUseCase{applyApp: existing})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestApply_DuplicateIsBadRequestWithExistingRecord(t *testing.T) {
	existing := match.Application{ID: uuid.New(), MatchScore: 72, Status: match.StatusApplied}
	resp := postApply(t, &stubMatchUseCase{applyApp: existing, applyErr: match.ErrAlreadyApplied})
	defer resp.Body.Close()

	// a duplicate application is a client error, not a 409
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Message     string            `json:"message"`
		Application match.Application `json:"application"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.NotEmpty(t, payload.Message)
	assert.Equal(t, existing.ID, payload.Application.ID)
	assert.Equal(t, 72, payload.Application.MatchScore)
}
