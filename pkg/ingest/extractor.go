package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/llm"
	"github.com/rsinha/jobmatch/pkg/nlp"
)

const (
	maxKeywords = 30
	maxLLMChars = 12000
)

var (
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phoneRe = regexp.MustCompile(`(\+?\d[\d\s\-()]{7,}\d)`)
	// "5 years", "3+ yrs", "2.5 years of experience"
	yearsRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years?|yrs?)`)
)

// skillDictionary drives rule-based skill detection. Multi-word entries are
// matched as whole phrases, single words as whole tokens.
var skillDictionary = []string{
	"JavaScript", "TypeScript", "Python", "Java", "Go", "C++", "C#", "Ruby", "PHP",
	"React", "Angular", "Vue", "Node", "Express", "Django", "Spring",
	"HTML", "CSS", "SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Git", "CI/CD", "Linux",
	"REST API", "GraphQL", "Machine Learning", "Data Analysis",
	"Salesforce", "Excel", "Tableau", "Power BI",
	"SEO", "SEM", "Content Marketing", "Google Analytics", "CRM",
	"Accounting", "Auditing", "Tally", "GST",
	"Recruitment", "Payroll", "Onboarding",
	"Figma", "Photoshop", "Illustrator", "UI Design", "UX Design",
	"Project Management", "Agile", "Scrum",
	"Communication", "Leadership", "Negotiation",
}

// categorySignals maps detection keywords to a candidate category. The first
// category whose signals dominate the resume wins.
var categorySignals = []struct {
	Category candidate.Category
	Signals  []string
}{
	{candidate.CategoryTechnical, []string{"software", "developer", "engineer", "programming", "javascript", "python", "java", "backend", "frontend", "devops", "database"}},
	{candidate.CategorySales, []string{"sales", "business development", "account manager", "lead generation", "quota"}},
	{candidate.CategoryMarketing, []string{"marketing", "seo", "sem", "campaign", "brand", "social media"}},
	{candidate.CategoryFinance, []string{"finance", "accounting", "accountant", "audit", "taxation", "banking"}},
	{candidate.CategoryHealthcare, []string{"healthcare", "medical", "nurse", "doctor", "pharma", "clinical"}},
	{candidate.CategoryEducation, []string{"teacher", "teaching", "education", "trainer", "curriculum", "tutor"}},
	{candidate.CategoryDesign, []string{"designer", "ui", "ux", "figma", "photoshop", "illustrator", "graphic"}},
	{candidate.CategoryHR, []string{"human resources", "recruitment", "recruiter", "payroll", "talent acquisition"}},
	{candidate.CategoryOperations, []string{"operations", "logistics", "supply chain", "warehouse", "procurement"}},
}

var educationKeywords = []string{
	"phd", "doctorate", "mba", "m.tech", "mtech", "m.sc", "msc", "master",
	"b.tech", "btech", "b.e", "b.sc", "bsc", "bca", "mca", "bachelor", "diploma",
}

// Extractor implements candidate.ResumeExtractor. Rule-based extraction is
// the baseline; when a chat model is configured its structured parse
// overrides individual fields, never the whole profile.
type Extractor struct {
	model llm.ChatModel
	log   *zap.Logger
}

func NewExtractor(model llm.ChatModel, log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{model: model, log: log}
}

var _ candidate.ResumeExtractor = (*Extractor)(nil)

func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (candidate.ParsedResumeProfile, error) {
	text, err := ParseResumeText(filename, data)
	if err != nil {
		return candidate.ParsedResumeProfile{}, err
	}

	p := e.ruleBased(text)
	if e.model != nil {
		e.enrichWithLLM(ctx, text, &p)
	}
	return p, nil
}

// ruleBased derives every profile field from the raw text alone. It never
// fails: fields it cannot find stay empty.
func (e *Extractor) ruleBased(text string) candidate.ParsedResumeProfile {
	normalized := nlp.Normalize(text)
	p := candidate.ParsedResumeProfile{
		Text:            text,
		Name:            guessName(text),
		Email:           emailRe.FindString(text),
		Phone:           strings.TrimSpace(phoneRe.FindString(text)),
		Keywords:        nlp.TopKeywords(text, maxKeywords),
		Skills:          detectSkills(normalized),
		Category:        detectCategory(normalized),
		ExperienceYears: detectExperienceYears(text),
		Education:       detectEducation(normalized),
	}
	return p
}

// guessName takes the first short line that is neither contact data nor a
// section heading. Resumes overwhelmingly start with the candidate's name.
func guessName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) > 60 {
			continue
		}
		if emailRe.MatchString(line) || phoneRe.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "resume") || strings.Contains(lower, "curriculum") {
			continue
		}
		words := strings.Fields(line)
		if len(words) >= 1 && len(words) <= 4 {
			return line
		}
	}
	return ""
}

func detectSkills(normalized string) []string {
	found := []string{}
	for _, skill := range skillDictionary {
		for _, variant := range nlp.SkillVariants(skill) {
			if nlp.ContainsPhrase(normalized, variant) {
				found = append(found, skill)
				break
			}
		}
	}
	return found
}

func detectCategory(normalized string) candidate.Category {
	best := candidate.CategoryOther
	bestHits := 0
	for _, cs := range categorySignals {
		hits := 0
		for _, sig := range cs.Signals {
			if nlp.ContainsPhrase(normalized, nlp.Normalize(sig)) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = cs.Category, hits
		}
	}
	// A single stray keyword is not evidence of a profession.
	if bestHits < 2 {
		return candidate.CategoryOther
	}
	return best
}

// detectExperienceYears returns the largest "N years" mention found in the
// text, capped at 40 to discard birth years and similar noise.
func detectExperienceYears(text string) float64 {
	best := 0.0
	for _, m := range yearsRe.FindAllStringSubmatch(strings.ToLower(text), -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v > 40 {
			continue
		}
		if v > best {
			best = v
		}
	}
	return best
}

func detectEducation(normalized string) string {
	for _, kw := range educationKeywords {
		if nlp.ContainsPhrase(normalized, nlp.Normalize(kw)) {
			return strings.ToUpper(kw[:1]) + kw[1:]
		}
	}
	return ""
}

type llmProfile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Summary         string   `json:"summary"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experienceYears"`
	Education       string   `json:"education"`
	Location        string   `json:"location"`
	Category        string   `json:"category"`
}

// enrichWithLLM overlays a structured LLM parse on top of the rule-based
// profile. Each field only replaces its rule-based counterpart when the
// model returned something non-empty; any failure leaves p untouched.
func (e *Extractor) enrichWithLLM(ctx context.Context, text string, p *candidate.ParsedResumeProfile) {
	if len(text) > maxLLMChars {
		text = text[:maxLLMChars]
	}
	system := "You are an HR analyst. Return the result STRICTLY as one JSON object without markdown, code fences or explanations. Empty lists are [], never null. Do not invent facts."
	user := fmt.Sprintf(
		"Resume text:\n<<<\n%s\n>>>\n\nReturn STRICTLY one JSON object with this schema:\n{\n  \"name\": string,\n  \"email\": string,\n  \"phone\": string,\n  \"summary\": string,\n  \"skills\": string[],\n  \"experienceYears\": number,\n  \"education\": string,\n  \"location\": string,\n  \"category\": string\n}\n\nCategory must be one of: Technical, Sales, Marketing, Finance, Healthcare, Education, Design, HR, Operations, Other.",
		text,
	)

	raw, err := e.model.Ask(ctx, system, user)
	if err != nil {
		e.log.Warn("llm resume parse degraded to rules", zap.Error(err))
		return
	}
	raw = strings.TrimSpace(raw)

	var out llmProfile
	if json.Unmarshal([]byte(raw), &out) != nil {
		// try to extract JSON from surrounding text
		i := strings.Index(raw, "{")
		j := strings.LastIndex(raw, "}")
		if i < 0 || j <= i || json.Unmarshal([]byte(raw[i:j+1]), &out) != nil {
			e.log.Warn("llm resume parse returned no usable JSON")
			return
		}
	}

	if out.Name != "" {
		p.Name = out.Name
	}
	if out.Email != "" {
		p.Email = out.Email
	}
	if out.Phone != "" {
		p.Phone = out.Phone
	}
	if out.Summary != "" {
		p.Summary = out.Summary
	}
	if len(out.Skills) > 0 {
		p.Skills = mergeSkills(p.Skills, out.Skills)
	}
	if out.ExperienceYears > 0 && out.ExperienceYears <= 40 {
		p.ExperienceYears = out.ExperienceYears
	}
	if out.Education != "" {
		p.Education = out.Education
	}
	if out.Location != "" {
		p.Location = out.Location
	}
	if c := candidate.Category(out.Category); validCategory(c) {
		p.Category = c
	}
}

// mergeSkills unions both lists preserving first-seen casing and order.
func mergeSkills(rule, model []string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, s := range append(append([]string{}, rule...), model...) {
		s = strings.TrimSpace(s)
		key := nlp.Normalize(s)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func validCategory(c candidate.Category) bool {
	switch c {
	case candidate.CategoryTechnical, candidate.CategorySales, candidate.CategoryMarketing,
		candidate.CategoryFinance, candidate.CategoryHealthcare, candidate.CategoryEducation,
		candidate.CategoryDesign, candidate.CategoryHR, candidate.CategoryOperations,
		candidate.CategoryOther:
		return true
	}
	return false
}
