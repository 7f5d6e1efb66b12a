// Package recruiter implements the recruiter-facing candidate directory:
// ranked listings with filtering, sorting and pagination, plus the
// dashboard aggregates built from the same pool.
package recruiter

import (
	"errors"

	"github.com/rsinha/jobmatch/pkg/candidate"
)

var ErrBadQuery = errors.New("invalid listing query")

// Sort keys accepted by ListCandidates.
const (
	SortByScore      = "atsScore"
	SortByExperience = "experience"
	SortByName       = "name"
	SortByCreatedAt  = "createdAt"
)

// Filter narrows the candidate pool. All set fields must hold at once;
// zero values mean "no constraint".
type Filter struct {
	Category string
	// Score bounds apply to the resume quality score. MaxScore zero means
	// unbounded above.
	MinScore int
	MaxScore int

	MinExperience float64
	// MaxExperience zero means unbounded above.
	MaxExperience float64

	// Skills matches candidates holding at least one of the listed skills.
	Skills []string

	Location string
	JobType  string
	WorkMode string

	// Search is a free-text needle checked against name, email, skills
	// and keywords.
	Search string
}

// Query is a full listing request.
type Query struct {
	Filter Filter
	SortBy string
	// Desc applies to SortBy; the default ordering is score descending.
	Desc   bool
	Limit  int
	Offset int
}

// RankedCandidate is a candidate decorated with the resume quality score
// computed at read time.
type RankedCandidate struct {
	candidate.Candidate
	ATSScore int `json:"atsScore"`
}

// Stats summarizes the filtered pool before pagination.
type Stats struct {
	Total        int     `json:"total"`
	AverageScore float64 `json:"averageScore"`
	TopScore     int     `json:"topScore"`
}

// ScoreBand is one bucket of the dashboard score histogram.
type ScoreBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// DashboardStats is the recruiter landing-page aggregate view.
type DashboardStats struct {
	TotalCandidates int               `json:"totalCandidates"`
	AverageScore    float64           `json:"averageScore"`
	ByCategory      map[string]int    `json:"byCategory"`
	ByExperience    map[string]int    `json:"byExperience"`
	ScoreBands      []ScoreBand       `json:"scoreDistribution"`
	TopCandidates   []RankedCandidate `json:"topCandidates"`
}

// FilterOptions enumerates the distinct values present in the pool so the
// UI can populate its filter controls.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	Skills     []string `json:"skills"`
	JobTypes   []string `json:"jobTypes"`
	WorkModes  []string `json:"workModes"`
}
