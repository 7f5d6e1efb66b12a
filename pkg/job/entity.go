package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// ErrValidation is a simple validation error.
type ErrValidation string

func (e ErrValidation) Error() string { return string(e) }

type Status string

const (
	StatusActive Status = "Active"
	StatusClosed Status = "Closed"
	StatusFilled Status = "Filled"
)

type Source string

const (
	SourceBoard  Source = "Adzuna"
	SourceManual Source = "Manual"
)

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

type Type string

const (
	TypeFullTime Type = "Full-time"
	TypePartTime Type = "Part-time"
	TypeContract Type = "Contract"
	TypeRemote   Type = "Remote"
	TypeHybrid   Type = "Hybrid"
)

type WorkMode string

const (
	WorkModeOffice WorkMode = "Office"
	WorkModeHybrid WorkMode = "Hybrid"
	WorkModeRemote WorkMode = "Remote"
)

// ExperienceRange is the required experience interval in years. A nil
// *ExperienceRange defaults to [0,10] at scoring time.
type ExperienceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SalaryRange is an annual salary interval; nil means no salary data.
type SalaryRange struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

// Job is a posting candidates are matched against.
type Job struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Company  string    `json:"company"`
	Location string    `json:"location"`
	Category Category  `json:"category"`

	Description      string `json:"description"`
	Responsibilities string `json:"responsibilities,omitempty"`

	RequiredSkills    []string         `json:"requiredSkills"`
	Experience        *ExperienceRange `json:"experienceRequired,omitempty"`
	EducationRequired string           `json:"educationRequired,omitempty"`
	Salary            *SalaryRange     `json:"salaryRange,omitempty"`

	Type     Type     `json:"jobType"`
	WorkMode WorkMode `json:"workMode"`

	Source      Source    `json:"source"`
	ExternalURL string    `json:"externalUrl,omitempty"`
	PostedAt    time.Time `json:"postedDate"`
	Status      Status    `json:"status"`

	EmployerID uuid.UUID `json:"employerId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Filter narrows job listings for the public board view.
type Filter struct {
	Category string
	Location string
	Type     string
}

// Repository is the persistence port for job postings.
type Repository interface {
	Create(ctx context.Context, j Job) error
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	ListActive(ctx context.Context) ([]Job, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Job, int, error)
	ExistsByTitleCompany(ctx context.Context, title, company string) (bool, error)
	CountActiveByCategory(ctx context.Context) (map[string]int, error)
}

// BoardPosting is a raw posting fetched from an external job board.
type BoardPosting struct {
	Title       string
	Company     string
	Location    string
	Description string
	SalaryMin   float64
	SalaryMax   float64
	ExternalURL string
	PostedAt    time.Time
}

// Board is the external job-search API port (e.g. Adzuna).
type Board interface {
	Search(ctx context.Context, query string, page int) ([]BoardPosting, error)
}
