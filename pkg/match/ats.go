package match

import (
	"math"
	"unicode/utf8"

	"github.com/rsinha/jobmatch/pkg/candidate"
)

// ATSScore rates resume/profile quality on a 0-100 scale, independent of
// any job. Pure and deterministic; absent optional fields contribute 0 to
// their bucket, never an error.
//
// Buckets: resume completeness 30, skills 25, experience 20,
// questionnaire/location 15, profile completeness 10.
func ATSScore(c candidate.Candidate) int {
	score := 0.0

	// Resume completeness (30). Text lengths are measured in characters, not
	// bytes, so non-Latin resumes hit the same thresholds.
	if utf8.RuneCountInString(c.ResumeText) > 100 {
		score += 10
	}
	if len(c.Keywords) >= 10 {
		score += 10
	}
	if utf8.RuneCountInString(c.Summary) > 50 {
		score += 10
	}

	// Skills (25)
	switch n := len(c.Skills); {
	case n >= 10:
		score += 25
	case n >= 5:
		score += 15
	case n >= 3:
		score += 10
	}

	// Experience (20)
	switch exp := c.TotalExperience; {
	case exp >= 5:
		score += 20
	case exp >= 3:
		score += 15
	case exp >= 1:
		score += 10
	case exp > 0:
		score += 5
	}

	// Questionnaire / location (15)
	if c.ChatbotCompleted {
		score += 15
	} else if c.CurrentLocation != "" || len(c.PreferredLocations) > 0 {
		score += 8
	}

	// Profile completeness (10): email, phone, location, education and a
	// specific (non-Other) category each count one fifth.
	fields := 0
	if c.Email != "" {
		fields++
	}
	if c.Phone != "" {
		fields++
	}
	if c.CurrentLocation != "" {
		fields++
	}
	if c.Education != "" {
		fields++
	}
	if c.Category != "" && c.Category != candidate.CategoryOther {
		fields++
	}
	score += float64(fields) / 5 * 10

	total := int(math.Round(score))
	if total > 100 {
		total = 100
	}
	return total
}
