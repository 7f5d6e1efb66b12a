package candidate

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors returned by candidate repositories and use cases.
var (
	ErrNotFound    = errors.New("candidate not found")
	ErrEmailTaken  = errors.New("candidate with this email already exists")
	ErrEmptyResume = errors.New("empty resume content")
)

// Category is a coarse occupational classification used to pre-filter
// the candidate-job search space.
type Category string

const (
	CategoryTechnical  Category = "Technical"
	CategorySales      Category = "Sales"
	CategoryMarketing  Category = "Marketing"
	CategoryFinance    Category = "Finance"
	CategoryHealthcare Category = "Healthcare"
	CategoryEducation  Category = "Education"
	CategoryDesign     Category = "Design"
	CategoryHR         Category = "HR"
	CategoryOperations Category = "Operations"
	CategoryOther      Category = "Other"
)

// JobType and WorkMode mirror the job posting enums.
type JobType string

const (
	JobTypeFullTime JobType = "Full-time"
	JobTypePartTime JobType = "Part-time"
	JobTypeContract JobType = "Contract"
	JobTypeRemote   JobType = "Remote"
	JobTypeHybrid   JobType = "Hybrid"
)

type WorkMode string

const (
	WorkModeOffice WorkMode = "Office"
	WorkModeHybrid WorkMode = "Hybrid"
	WorkModeRemote WorkMode = "Remote"
)

// SalaryRange is an annual salary interval. A nil *SalaryRange means
// "no salary data".
type SalaryRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Preferences is the questionnaire outcome. Saving it marks the candidate
// as ready for job matching.
type Preferences struct {
	CurrentLocation    string       `json:"currentLocation"`
	PreferredLocations []string     `json:"preferredLocations"`
	ExpectedSalary     *SalaryRange `json:"expectedSalary"`
	PreferredJobType   JobType      `json:"preferredJobType"`
	WorkMode           WorkMode     `json:"workMode"`
	NoticePeriod       string       `json:"noticePeriod"`
	WillingToRelocate  bool         `json:"willingToRelocate"`
}

// Candidate is the aggregate the matching and ranking services operate on.
// Resume-derived fields are filled at ingestion time, preference fields by
// the questionnaire.
type Candidate struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`

	ResumePath string   `json:"resumePath,omitempty"`
	ResumeText string   `json:"-"`
	Keywords   []string `json:"keywords"`
	Skills     []string `json:"extractedSkills"`
	Category   Category `json:"category"`

	TotalExperience float64 `json:"totalExperience"`
	Education       string  `json:"education,omitempty"`
	Summary         string  `json:"summary,omitempty"`

	CurrentLocation    string       `json:"currentLocation,omitempty"`
	PreferredLocations []string     `json:"preferredLocations"`
	ExpectedSalary     *SalaryRange `json:"expectedSalary,omitempty"`
	PreferredJobType   JobType      `json:"preferredJobType,omitempty"`
	WorkMode           WorkMode     `json:"workMode,omitempty"`
	NoticePeriod       string       `json:"noticePeriod,omitempty"`
	WillingToRelocate  bool         `json:"willingToRelocate"`

	ChatbotCompleted bool `json:"chatbotCompleted"`

	// BestMatchScore is the best score seen for this candidate across direct
	// applications. It only ever ratchets upward.
	BestMatchScore int `json:"atsScore"`

	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// ParsedResumeProfile is what a resume extractor produces. The core consumes
// this shape and stays independent of how extraction is done.
type ParsedResumeProfile struct {
	Name            string
	Email           string
	Phone           string
	Text            string
	Summary         string
	Keywords        []string
	Skills          []string
	Category        Category
	ExperienceYears float64
	Education       string
	Location        string
}

// ResumeExtractor turns an uploaded resume file into a parsed profile.
// Implementations may combine rule-based extraction with LLM parsing.
type ResumeExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (ParsedResumeProfile, error)
}

// Repository is the persistence port for candidates.
type Repository interface {
	Create(ctx context.Context, c Candidate) error
	GetByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	GetByEmail(ctx context.Context, email string) (Candidate, error)
	ListActive(ctx context.Context) ([]Candidate, error)
	SavePreferences(ctx context.Context, id uuid.UUID, p Preferences) error
	// UpdateBestScore stores the score only when it exceeds the stored value.
	UpdateBestScore(ctx context.Context, id uuid.UUID, score int) error
}
