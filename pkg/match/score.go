package match

import (
	"math"
	"strings"
)

// Factor maxima. The five weights partition 100 points.
const (
	maxSkillPoints      = 40
	maxExperiencePoints = 20
	maxLocationPoints   = 15
	maxSalaryPoints     = 15
	maxJobTypePoints    = 10
)

// salarySlack is how far above the job's maximum a candidate's expectation
// may sit and still count as a near-miss.
const salarySlack = 200000

// Compute scores one candidate against one job. Pure and deterministic:
// identical inputs always produce the identical score and breakdown.
// Missing data resolves to documented defaults, never to zero or an error.
func Compute(c CandidateProfile, j JobProfile) Score {
	b := Breakdown{
		SkillMatch:      scoreSkills(c, j),
		ExperienceMatch: scoreExperience(c, j),
		LocationMatch:   scoreLocation(c, j),
		SalaryMatch:     scoreSalary(c, j),
		JobTypeMatch:    scoreJobType(c, j),
	}
	return Score{Total: b.Sum(), Breakdown: b}
}

// scoreSkills awards up to 40 points proportional to how many required
// skills the candidate covers. Coverage is a bidirectional case-insensitive
// substring test ("java" covers "javascript" and vice versa); this mirrors
// observed production behavior and is kept on purpose.
func scoreSkills(c CandidateProfile, j JobProfile) int {
	if len(j.RequiredSkills) == 0 {
		return 20
	}
	matched := 0
	for _, js := range j.RequiredSkills {
		for _, cs := range c.Skills {
			if strings.Contains(cs, js) || strings.Contains(js, cs) {
				matched++
				break
			}
		}
	}
	return int(math.Round(float64(matched) / float64(len(j.RequiredSkills)) * maxSkillPoints))
}

// scoreExperience awards 20 points inside the required range with a
// monotone decay for under-qualified candidates. Over-qualification is not
// penalized beyond falling outside the range.
func scoreExperience(c CandidateProfile, j JobProfile) int {
	switch {
	case c.ExperienceYears >= j.MinExperience && c.ExperienceYears <= j.MaxExperience:
		return maxExperiencePoints
	case c.ExperienceYears >= j.MinExperience-1:
		return 15
	case c.ExperienceYears >= j.MinExperience-2:
		return 10
	default:
		return 5
	}
}

// scoreLocation awards 15 points for a location fit, 10 for relocation
// willingness, 3 otherwise. Missing data on either side is neutral (10).
func scoreLocation(c CandidateProfile, j JobProfile) int {
	if len(c.PreferredLocations) == 0 || j.Location == "" {
		return 10
	}
	for _, loc := range c.PreferredLocations {
		if loc == "remote" || loc == "any" {
			return maxLocationPoints
		}
		if strings.Contains(j.Location, loc) || strings.Contains(loc, j.Location) {
			return maxLocationPoints
		}
	}
	if c.WillingToRelocate {
		return 10
	}
	return 3
}

// scoreSalary checks the candidate's minimum expectation against the job's
// range, with a fixed slack band for near-misses. Missing data on either
// side is neutral (10).
func scoreSalary(c CandidateProfile, j JobProfile) int {
	if !c.HasSalary || !j.HasSalary {
		return 10
	}
	switch {
	case c.SalaryMin >= j.SalaryMin && c.SalaryMin <= j.SalaryMax:
		return maxSalaryPoints
	case c.SalaryMin <= j.SalaryMax+salarySlack:
		return 10
	default:
		return 5
	}
}

// scoreJobType is a soft signal: a mismatch still earns 5 points. A
// remote-seeking candidate matches any job whose work mode is remote.
func scoreJobType(c CandidateProfile, j JobProfile) int {
	if c.PreferredJobType == j.JobType {
		return maxJobTypePoints
	}
	if c.PreferredJobType == "Remote" && j.WorkMode == "Remote" {
		return maxJobTypePoints
	}
	return 5
}

// CategoryEligible implements the matching pre-filter: a job is skipped when
// categories differ, unless either side is "Other" (unclassified profiles
// are matched against the whole pool on purpose).
func CategoryEligible(candidateCategory, jobCategory string) bool {
	if candidateCategory == jobCategory {
		return true
	}
	return candidateCategory == "Other" || jobCategory == "Other"
}
