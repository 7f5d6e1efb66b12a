package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/job"
)

func TestNormalizeCandidate_LowercasesAndTrims(t *testing.T) {
	p, err := NormalizeCandidate(candidate.Candidate{
		Skills:             []string{" Go ", "PostgreSQL", ""},
		TotalExperience:    3,
		PreferredLocations: []string{"Bengaluru", " Remote "},
		ExpectedSalary:     &candidate.SalaryRange{Min: 500000, Max: 800000},
		PreferredJobType:   candidate.JobTypeFullTime,
		Category:           candidate.CategoryTechnical,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "postgresql"}, p.Skills)
	assert.Equal(t, []string{"bengaluru", "remote"}, p.PreferredLocations)
	assert.True(t, p.HasSalary)
	assert.Equal(t, 500000.0, p.SalaryMin)
	assert.Equal(t, "Full-time", p.PreferredJobType)
}

func TestNormalizeCandidate_MissingSalaryIsNotAnError(t *testing.T) {
	p, err := NormalizeCandidate(candidate.Candidate{TotalExperience: 1})
	require.NoError(t, err)
	assert.False(t, p.HasSalary)
}

func TestNormalizeCandidate_RejectsNegativeExperience(t *testing.T) {
	_, err := NormalizeCandidate(candidate.Candidate{TotalExperience: -1})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestNormalizeCandidate_RejectsInvertedSalaryRange(t *testing.T) {
	_, err := NormalizeCandidate(candidate.Candidate{
		ExpectedSalary: &candidate.SalaryRange{Min: 900000, Max: 100000},
	})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestNormalizeJob_DefaultsExperienceRange(t *testing.T) {
	p, err := NormalizeJob(job.Job{Title: "Dev", Location: " Bengaluru "})
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.MinExperience)
	assert.Equal(t, 10.0, p.MaxExperience)
	assert.Equal(t, "bengaluru", p.Location)
	assert.False(t, p.HasSalary)
}

func TestNormalizeJob_RejectsInvertedRanges(t *testing.T) {
	_, err := NormalizeJob(job.Job{Experience: &job.ExperienceRange{Min: 5, Max: 2}})
	assert.ErrorIs(t, err, ErrInvalidProfile)

	_, err = NormalizeJob(job.Job{Salary: &job.SalaryRange{Min: 900000, Max: 100000}})
	assert.ErrorIs(t, err, ErrInvalidProfile)
}
