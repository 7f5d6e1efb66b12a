package match

import (
	"fmt"
	"strings"

	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/job"
)

// CandidateProfile is the canonical candidate shape the scorer expects:
// lower-cased skill and location lists, plain numeric ranges.
type CandidateProfile struct {
	Skills             []string
	ExperienceYears    float64
	PreferredLocations []string
	WillingToRelocate  bool
	SalaryMin          float64
	SalaryMax          float64
	HasSalary          bool
	PreferredJobType   string
	WorkMode           string
	Category           string
}

// JobProfile is the canonical job shape the scorer expects.
type JobProfile struct {
	RequiredSkills []string
	MinExperience  float64
	MaxExperience  float64
	Location       string
	SalaryMin      float64
	SalaryMax      float64
	HasSalary      bool
	JobType        string
	WorkMode       string
	Category       string
}

// NormalizeCandidate coerces a candidate record into scoring shape.
// Missing optional data resolves to zero values the scorer treats as
// defaults; genuinely malformed required fields fail with ErrInvalidProfile.
func NormalizeCandidate(c candidate.Candidate) (CandidateProfile, error) {
	if c.TotalExperience < 0 {
		return CandidateProfile{}, fmt.Errorf("%w: negative experience %v", ErrInvalidProfile, c.TotalExperience)
	}
	p := CandidateProfile{
		Skills:             lowerAll(c.Skills),
		ExperienceYears:    c.TotalExperience,
		PreferredLocations: lowerAll(c.PreferredLocations),
		WillingToRelocate:  c.WillingToRelocate,
		PreferredJobType:   string(c.PreferredJobType),
		WorkMode:           string(c.WorkMode),
		Category:           string(c.Category),
	}
	if c.ExpectedSalary != nil {
		if c.ExpectedSalary.Min < 0 || c.ExpectedSalary.Max < c.ExpectedSalary.Min {
			return CandidateProfile{}, fmt.Errorf("%w: expected salary range [%v,%v]", ErrInvalidProfile, c.ExpectedSalary.Min, c.ExpectedSalary.Max)
		}
		p.SalaryMin = c.ExpectedSalary.Min
		p.SalaryMax = c.ExpectedSalary.Max
		p.HasSalary = true
	}
	return p, nil
}

// NormalizeJob coerces a job posting into scoring shape. An absent
// experience range defaults to [0,10].
func NormalizeJob(j job.Job) (JobProfile, error) {
	p := JobProfile{
		RequiredSkills: lowerAll(j.RequiredSkills),
		MinExperience:  0,
		MaxExperience:  10,
		Location:       strings.ToLower(strings.TrimSpace(j.Location)),
		JobType:        string(j.Type),
		WorkMode:       string(j.WorkMode),
		Category:       string(j.Category),
	}
	if j.Experience != nil {
		if j.Experience.Min < 0 || j.Experience.Max < j.Experience.Min {
			return JobProfile{}, fmt.Errorf("%w: experience range [%v,%v]", ErrInvalidProfile, j.Experience.Min, j.Experience.Max)
		}
		p.MinExperience = j.Experience.Min
		p.MaxExperience = j.Experience.Max
	}
	if j.Salary != nil {
		if j.Salary.Min < 0 || j.Salary.Max < j.Salary.Min {
			return JobProfile{}, fmt.Errorf("%w: salary range [%v,%v]", ErrInvalidProfile, j.Salary.Min, j.Salary.Max)
		}
		p.SalaryMin = j.Salary.Min
		p.SalaryMax = j.Salary.Max
		p.HasSalary = true
	}
	return p, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
