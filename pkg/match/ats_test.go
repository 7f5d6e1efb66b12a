package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rsinha/jobmatch/pkg/candidate"
)

func fullProfileCandidate() candidate.Candidate {
	return candidate.Candidate{
		Name:             "Asha Verma",
		Email:            "asha@example.com",
		Phone:            "+91 98765 43210",
		ResumeText:       strings.Repeat("backend services in go and postgres ", 10),
		Keywords:         []string{"go", "postgres", "docker", "kubernetes", "grpc", "kafka", "redis", "linux", "ci", "terraform"},
		Skills:           []string{"Go", "PostgreSQL", "Docker", "Kubernetes", "gRPC", "Kafka", "Redis", "Linux", "Terraform", "Git"},
		Summary:          strings.Repeat("seasoned backend engineer ", 3),
		Category:         candidate.CategoryTechnical,
		TotalExperience:  6,
		Education:        "B.Tech",
		CurrentLocation:  "Bengaluru",
		ChatbotCompleted: true,
	}
}

func TestATSScore_FullProfileIsHundred(t *testing.T) {
	assert.Equal(t, 100, ATSScore(fullProfileCandidate()))
}

func TestATSScore_EmptyCandidateIsZero(t *testing.T) {
	assert.Equal(t, 0, ATSScore(candidate.Candidate{}))
}

func TestATSScore_SkillBuckets(t *testing.T) {
	base := candidate.Candidate{}

	base.Skills = []string{"a", "b"}
	assert.Equal(t, 0, ATSScore(base))

	base.Skills = []string{"a", "b", "c"}
	assert.Equal(t, 10, ATSScore(base))

	base.Skills = []string{"a", "b", "c", "d", "e"}
	assert.Equal(t, 15, ATSScore(base))

	base.Skills = []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	assert.Equal(t, 25, ATSScore(base))
}

func TestATSScore_ExperienceBuckets(t *testing.T) {
	score := func(years float64) int {
		return ATSScore(candidate.Candidate{TotalExperience: years})
	}
	assert.Equal(t, 20, score(5))
	assert.Equal(t, 15, score(3))
	assert.Equal(t, 10, score(1))
	assert.Equal(t, 5, score(0.5))
	assert.Equal(t, 0, score(0))
}

func TestATSScore_QuestionnaireOutweighsLocation(t *testing.T) {
	withLocation := candidate.Candidate{CurrentLocation: "Pune"}
	withQuestionnaire := candidate.Candidate{ChatbotCompleted: true}
	// profile completeness also counts the location field (2 points)
	assert.Equal(t, 10, ATSScore(withLocation))
	assert.Equal(t, 15, ATSScore(withQuestionnaire))
}

func TestATSScore_ProfileCompletenessFractions(t *testing.T) {
	c := candidate.Candidate{Email: "x@example.com"}
	assert.Equal(t, 2, ATSScore(c))

	c.Phone = "12345"
	assert.Equal(t, 4, ATSScore(c))

	// "Other" does not count as a classified category
	c.Category = candidate.CategoryOther
	assert.Equal(t, 4, ATSScore(c))

	c.Category = candidate.CategoryFinance
	assert.Equal(t, 6, ATSScore(c))
}

func TestATSScore_TextThresholdsCountCharactersNotBytes(t *testing.T) {
	// 40 Cyrillic characters are 80 bytes; the 50-character summary
	// threshold must not trip on byte length
	short := candidate.Candidate{Summary: strings.Repeat("ж", 40)}
	assert.Equal(t, 0, ATSScore(short))

	long := candidate.Candidate{Summary: strings.Repeat("ж", 51)}
	assert.Equal(t, 10, ATSScore(long))

	// same for the 100-character resume text threshold
	shortResume := candidate.Candidate{ResumeText: strings.Repeat("резюме ", 12)} // 84 chars, 156 bytes
	assert.Equal(t, 0, ATSScore(shortResume))

	longResume := candidate.Candidate{ResumeText: strings.Repeat("резюме ", 15)}
	assert.Equal(t, 10, ATSScore(longResume))
}

func TestATSScore_NeverExceedsHundred(t *testing.T) {
	c := fullProfileCandidate()
	c.Skills = append(c.Skills, "Helm", "Ansible", "Prometheus")
	c.TotalExperience = 25
	assert.Equal(t, 100, ATSScore(c))
}
