// Package match holds the candidate-job compatibility core: the pure
// scoring functions, the status-assignment policy and the orchestrated,
// idempotent persistence of match outcomes.
package match

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rsinha/jobmatch/pkg/job"
)

// Common errors returned by the matching use case.
var (
	ErrNotFound          = errors.New("application not found")
	ErrChatbotIncomplete = errors.New("questionnaire must be completed before matching")
	ErrAlreadyApplied    = errors.New("application already exists for this job")
	ErrInvalidProfile    = errors.New("invalid scoring input")
	ErrInvalidStatus     = errors.New("unknown application status")
)

// Score thresholds driving status assignment and filtering.
const (
	MinRelevantScore   = 40 // matches below this are dropped entirely
	SuggestedScore     = 60
	AutoSelectScore    = 70
	ShortlistScore     = 80
	MaxMatchesReturned = 50
)

// Status is the lifecycle state of an application. It is derived from the
// match score once at creation and afterwards changed only by recruiters.
type Status string

const (
	StatusApplied     Status = "Applied"
	StatusSuggested   Status = "Suggested"
	StatusRecommended Status = "Recommended"
	StatusShortlisted Status = "Shortlisted"
	StatusRejected    Status = "Rejected"
	StatusInterviewed Status = "Interviewed"
	StatusOffered     Status = "Offered"
)

// ValidStatus reports whether s is a known application status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusApplied, StatusSuggested, StatusRecommended, StatusShortlisted,
		StatusRejected, StatusInterviewed, StatusOffered:
		return true
	}
	return false
}

// StatusForScore maps a total match score to the initial application status.
func StatusForScore(total int) Status {
	switch {
	case total >= ShortlistScore:
		return StatusShortlisted
	case total >= AutoSelectScore:
		return StatusRecommended
	case total >= SuggestedScore:
		return StatusSuggested
	default:
		return StatusApplied
	}
}

// Breakdown is the per-factor decomposition of a match score. The five
// fields always sum to the total.
type Breakdown struct {
	SkillMatch      int `json:"skillMatch"`
	ExperienceMatch int `json:"experienceMatch"`
	LocationMatch   int `json:"locationMatch"`
	SalaryMatch     int `json:"salaryMatch"`
	JobTypeMatch    int `json:"jobTypeMatch"`
}

// Sum returns the total of all factors.
func (b Breakdown) Sum() int {
	return b.SkillMatch + b.ExperienceMatch + b.LocationMatch + b.SalaryMatch + b.JobTypeMatch
}

// Score is the result of scoring one candidate against one job.
type Score struct {
	Total     int       `json:"totalScore"`
	Breakdown Breakdown `json:"scoreBreakdown"`
}

// Application is the persisted outcome of a match. At most one exists per
// (job, candidate) pair; creation is idempotent.
type Application struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	CandidateID uuid.UUID `json:"candidateId"`

	MatchScore int       `json:"matchScore"`
	Breakdown  Breakdown `json:"scoreBreakdown"`

	Status       Status `json:"status"`
	AutoSelected bool   `json:"autoSelected"`

	// Notes carries the AI-generated match explanation, if any.
	Notes string `json:"notes,omitempty"`

	EmployerViewed bool   `json:"employerViewed"`
	EmployerNotes  string `json:"employerNotes,omitempty"`

	AppliedAt time.Time `json:"appliedDate"`
}

// MatchResult is the per-job shape returned to the candidate after matching.
type MatchResult struct {
	Job           job.Job   `json:"job"`
	MatchScore    int       `json:"matchScore"`
	Breakdown     Breakdown `json:"scoreBreakdown"`
	ApplicationID uuid.UUID `json:"applicationId"`
	Status        Status    `json:"status"`
	AutoSelected  bool      `json:"autoSelected"`
	AIExplanation string    `json:"aiExplanation,omitempty"`
}

// StatusPatch is a recruiter-initiated mutation of an application.
type StatusPatch struct {
	Status         Status
	EmployerNotes  string
	EmployerViewed bool
}

// Repository is the persistence port for applications. CreateIfAbsent must
// be race-safe: when two writers insert the same pair concurrently, exactly
// one row wins and both callers observe it (created reports whether the
// caller's insert won).
type Repository interface {
	CreateIfAbsent(ctx context.Context, a Application) (stored Application, created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	GetByPair(ctx context.Context, jobID, candidateID uuid.UUID) (Application, error)
	Update(ctx context.Context, id uuid.UUID, patch StatusPatch) (Application, error)
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]Application, error)
	ListAutoSelectedByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
}
