package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strongCandidate() CandidateProfile {
	return CandidateProfile{
		Skills:             []string{"javascript", "react", "node", "sql"},
		ExperienceYears:    4,
		PreferredLocations: []string{"bengaluru"},
		SalaryMin:          600000,
		SalaryMax:          900000,
		HasSalary:          true,
		PreferredJobType:   "Full-time",
		Category:           "Technical",
	}
}

func strongJob() JobProfile {
	return JobProfile{
		RequiredSkills: []string{"javascript", "react"},
		MinExperience:  2,
		MaxExperience:  6,
		Location:       "bengaluru, india",
		SalaryMin:      500000,
		SalaryMax:      1000000,
		HasSalary:      true,
		JobType:        "Full-time",
		WorkMode:       "Office",
		Category:       "Technical",
	}
}

func TestCompute_StrongMatchScoresFull(t *testing.T) {
	sc := Compute(strongCandidate(), strongJob())

	assert.Equal(t, 40, sc.Breakdown.SkillMatch)
	assert.Equal(t, 20, sc.Breakdown.ExperienceMatch)
	assert.Equal(t, 15, sc.Breakdown.LocationMatch)
	assert.Equal(t, 15, sc.Breakdown.SalaryMatch)
	assert.Equal(t, 10, sc.Breakdown.JobTypeMatch)
	assert.Equal(t, 100, sc.Total)
}

func TestCompute_PartialMatch(t *testing.T) {
	c := CandidateProfile{
		Skills:             []string{"javascript", "excel"},
		ExperienceYears:    3,
		PreferredLocations: []string{"pune"},
		SalaryMin:          700000,
		SalaryMax:          900000,
		HasSalary:          true,
		PreferredJobType:   "Contract",
	}
	j := JobProfile{
		RequiredSkills: []string{"javascript", "react", "node", "sql"},
		MinExperience:  4,
		MaxExperience:  8,
		Location:       "mumbai",
		SalaryMin:      400000,
		SalaryMax:      600000,
		HasSalary:      true,
		JobType:        "Full-time",
		WorkMode:       "Office",
	}
	sc := Compute(c, j)

	assert.Equal(t, 10, sc.Breakdown.SkillMatch)      // 1 of 4 covered
	assert.Equal(t, 15, sc.Breakdown.ExperienceMatch) // one year short
	assert.Equal(t, 3, sc.Breakdown.LocationMatch)
	assert.Equal(t, 10, sc.Breakdown.SalaryMatch) // within the slack band
	assert.Equal(t, 5, sc.Breakdown.JobTypeMatch)
	assert.Equal(t, 43, sc.Total)
}

func TestCompute_WeakMatchFallsBelowRelevanceFloor(t *testing.T) {
	c := strongCandidate()
	j := JobProfile{
		RequiredSkills: []string{"erlang", "haskell", "cobol", "fortran"},
		MinExperience:  10,
		MaxExperience:  20,
		Location:       "pune",
		SalaryMin:      100000,
		SalaryMax:      200000,
		HasSalary:      true,
		JobType:        "Contract",
		WorkMode:       "Office",
	}
	sc := Compute(c, j)

	assert.Equal(t, 0, sc.Breakdown.SkillMatch)
	assert.Equal(t, 5, sc.Breakdown.ExperienceMatch)
	assert.Equal(t, 3, sc.Breakdown.LocationMatch)
	assert.Equal(t, 5, sc.Breakdown.SalaryMatch)
	assert.Equal(t, 5, sc.Breakdown.JobTypeMatch)
	assert.Equal(t, 18, sc.Total)
	assert.Less(t, sc.Total, MinRelevantScore)
}

func TestCompute_Deterministic(t *testing.T) {
	c, j := strongCandidate(), strongJob()
	first := Compute(c, j)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(c, j))
	}
}

func TestCompute_BreakdownAlwaysSumsToTotal(t *testing.T) {
	cases := []struct {
		name string
		c    CandidateProfile
		j    JobProfile
	}{
		{"strong", strongCandidate(), strongJob()},
		{"empty both", CandidateProfile{}, JobProfile{}},
		{"empty candidate", CandidateProfile{}, strongJob()},
		{"empty job", strongCandidate(), JobProfile{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc := Compute(tc.c, tc.j)
			assert.Equal(t, sc.Breakdown.Sum(), sc.Total)
			assert.GreaterOrEqual(t, sc.Total, 0)
			assert.LessOrEqual(t, sc.Total, 100)
			assert.LessOrEqual(t, sc.Breakdown.SkillMatch, maxSkillPoints)
			assert.LessOrEqual(t, sc.Breakdown.ExperienceMatch, maxExperiencePoints)
			assert.LessOrEqual(t, sc.Breakdown.LocationMatch, maxLocationPoints)
			assert.LessOrEqual(t, sc.Breakdown.SalaryMatch, maxSalaryPoints)
			assert.LessOrEqual(t, sc.Breakdown.JobTypeMatch, maxJobTypePoints)
		})
	}
}

func TestScoreSkills_BidirectionalSubstring(t *testing.T) {
	c := CandidateProfile{Skills: []string{"java"}}
	j := JobProfile{RequiredSkills: []string{"javascript"}}
	// "java" covers "javascript" via the substring rule.
	assert.Equal(t, 40, scoreSkills(c, j))

	c = CandidateProfile{Skills: []string{"javascript"}}
	j = JobProfile{RequiredSkills: []string{"java"}}
	assert.Equal(t, 40, scoreSkills(c, j))
}

func TestScoreSkills_NoRequirementsIsNeutral(t *testing.T) {
	assert.Equal(t, 20, scoreSkills(CandidateProfile{}, JobProfile{}))
}

func TestScoreSkills_Proportional(t *testing.T) {
	c := CandidateProfile{Skills: []string{"go", "python"}}
	j := JobProfile{RequiredSkills: []string{"go", "python", "rust"}}
	// round(2/3 * 40) = 27
	assert.Equal(t, 27, scoreSkills(c, j))
}

func TestScoreExperience_Decay(t *testing.T) {
	j := JobProfile{MinExperience: 5, MaxExperience: 8}
	assert.Equal(t, 20, scoreExperience(CandidateProfile{ExperienceYears: 5}, j))
	assert.Equal(t, 20, scoreExperience(CandidateProfile{ExperienceYears: 8}, j))
	assert.Equal(t, 15, scoreExperience(CandidateProfile{ExperienceYears: 4}, j))
	assert.Equal(t, 10, scoreExperience(CandidateProfile{ExperienceYears: 3}, j))
	assert.Equal(t, 5, scoreExperience(CandidateProfile{ExperienceYears: 1}, j))
	// over-qualified falls outside the range but still decays gracefully
	assert.Equal(t, 15, scoreExperience(CandidateProfile{ExperienceYears: 12}, j))
}

func TestScoreLocation(t *testing.T) {
	j := JobProfile{Location: "bengaluru"}
	assert.Equal(t, 15, scoreLocation(CandidateProfile{PreferredLocations: []string{"remote"}}, j))
	assert.Equal(t, 15, scoreLocation(CandidateProfile{PreferredLocations: []string{"any"}}, j))
	assert.Equal(t, 15, scoreLocation(CandidateProfile{PreferredLocations: []string{"bengaluru"}}, j))
	assert.Equal(t, 10, scoreLocation(CandidateProfile{PreferredLocations: []string{"pune"}, WillingToRelocate: true}, j))
	assert.Equal(t, 3, scoreLocation(CandidateProfile{PreferredLocations: []string{"pune"}}, j))
	// missing data on either side is neutral
	assert.Equal(t, 10, scoreLocation(CandidateProfile{}, j))
	assert.Equal(t, 10, scoreLocation(CandidateProfile{PreferredLocations: []string{"pune"}}, JobProfile{}))
}

func TestScoreSalary(t *testing.T) {
	j := JobProfile{SalaryMin: 400000, SalaryMax: 600000, HasSalary: true}
	inRange := CandidateProfile{SalaryMin: 500000, HasSalary: true}
	nearMiss := CandidateProfile{SalaryMin: 750000, HasSalary: true}
	farOff := CandidateProfile{SalaryMin: 900000, HasSalary: true}

	assert.Equal(t, 15, scoreSalary(inRange, j))
	assert.Equal(t, 10, scoreSalary(nearMiss, j))
	assert.Equal(t, 5, scoreSalary(farOff, j))
	assert.Equal(t, 10, scoreSalary(CandidateProfile{}, j))
	assert.Equal(t, 10, scoreSalary(inRange, JobProfile{}))
}

func TestScoreJobType(t *testing.T) {
	assert.Equal(t, 10, scoreJobType(
		CandidateProfile{PreferredJobType: "Full-time"},
		JobProfile{JobType: "Full-time"}))
	assert.Equal(t, 10, scoreJobType(
		CandidateProfile{PreferredJobType: "Remote"},
		JobProfile{JobType: "Full-time", WorkMode: "Remote"}))
	// a mismatch is a soft signal, never zero
	assert.Equal(t, 5, scoreJobType(
		CandidateProfile{PreferredJobType: "Contract"},
		JobProfile{JobType: "Full-time"}))
}

func TestCategoryEligible(t *testing.T) {
	assert.True(t, CategoryEligible("Technical", "Technical"))
	assert.False(t, CategoryEligible("Technical", "Sales"))
	assert.True(t, CategoryEligible("Other", "Sales"))
	assert.True(t, CategoryEligible("Technical", "Other"))
	assert.True(t, CategoryEligible("Other", "Other"))
}

func TestStatusForScore(t *testing.T) {
	assert.Equal(t, StatusShortlisted, StatusForScore(80))
	assert.Equal(t, StatusShortlisted, StatusForScore(100))
	assert.Equal(t, StatusRecommended, StatusForScore(79))
	assert.Equal(t, StatusRecommended, StatusForScore(70))
	assert.Equal(t, StatusSuggested, StatusForScore(69))
	assert.Equal(t, StatusSuggested, StatusForScore(60))
	assert.Equal(t, StatusApplied, StatusForScore(59))
	assert.Equal(t, StatusApplied, StatusForScore(0))
}

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusApplied, StatusSuggested, StatusRecommended,
		StatusShortlisted, StatusRejected, StatusInterviewed, StatusOffered} {
		require.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("Hired"))
	assert.False(t, ValidStatus(""))
}
