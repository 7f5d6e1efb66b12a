package job

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rsinha/jobmatch/pkg/llm"
)

// UseCase covers posting management and external board import.
type UseCase interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]Job, int, error)
	Stats(ctx context.Context) (Stats, error)
	ImportFromBoard(ctx context.Context) (int, error)
}

// Stats is a small aggregate for the jobs dashboard card.
type Stats struct {
	TotalActive int            `json:"totalJobs"`
	ByCategory  map[string]int `json:"jobsByCategory"`
}

type service struct {
	repo  Repository
	board Board
	llm   llm.ChatModel
	log   *zap.Logger
}

// NewService wires the posting use case. board and model are optional:
// without a board ImportFromBoard fails fast, without a model import falls
// back to rule-based skill extraction.
func NewService(repo Repository, board Board, model llm.ChatModel, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, board: board, llm: model, log: log}
}

func (s *service) Create(ctx context.Context, j Job) (Job, error) {
	j.Title = strings.TrimSpace(j.Title)
	j.Company = strings.TrimSpace(j.Company)
	if j.Title == "" {
		return Job{}, ErrValidation("title is required")
	}
	if j.Company == "" {
		return Job{}, ErrValidation("company is required")
	}
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.Category == "" {
		j.Category = CategoryOther
	}
	if j.Status == "" {
		j.Status = StatusActive
	}
	if j.Source == "" {
		j.Source = SourceManual
	}
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	if j.PostedAt.IsZero() {
		j.PostedAt = time.Now().UTC()
	}
	if err := s.repo.Create(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, f Filter, limit, offset int) ([]Job, int, error) {
	return s.repo.List(ctx, f, limit, offset)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	byCat, err := s.repo.CountActiveByCategory(ctx)
	if err != nil {
		return Stats{}, err
	}
	total := 0
	for _, n := range byCat {
		total += n
	}
	return Stats{TotalActive: total, ByCategory: byCat}, nil
}

// boardQueries are the per-category searches run against the external board.
var boardQueries = []struct {
	Category Category
	Query    string
}{
	{CategoryTechnical, "software developer"},
	{CategoryTechnical, "web developer"},
	{CategorySales, "sales executive"},
	{CategoryMarketing, "digital marketing"},
	{CategoryFinance, "accountant"},
	{CategoryHR, "hr manager"},
	{CategoryDesign, "ui ux designer"},
}

// ImportFromBoard pulls postings from the external board, deduplicates on
// (title, company) and stores new ones as Active. Per-query failures are
// logged and skipped so one bad search does not abort the import.
func (s *service) ImportFromBoard(ctx context.Context) (int, error) {
	if s.board == nil {
		return 0, ErrValidation("job board is not configured")
	}
	imported := 0
	for _, q := range boardQueries {
		postings, err := s.board.Search(ctx, q.Query, 1)
		if err != nil {
			s.log.Warn("board search failed", zap.String("query", q.Query), zap.Error(err))
			continue
		}
		for _, p := range postings {
			exists, err := s.repo.ExistsByTitleCompany(ctx, p.Title, p.Company)
			if err != nil {
				return imported, err
			}
			if exists {
				continue
			}
			skills, category := s.analyzeDescription(ctx, p.Description, q.Category)
			j := Job{
				ID:             uuid.New(),
				Title:          p.Title,
				Company:        orDefault(p.Company, "Company"),
				Location:       orDefault(p.Location, "Any"),
				Category:       category,
				Description:    orDefault(p.Description, "No description available"),
				RequiredSkills: skills,
				Experience:     &ExperienceRange{Min: 0, Max: 5},
				Type:           TypeFullTime,
				WorkMode:       WorkModeOffice,
				Source:         SourceBoard,
				ExternalURL:    p.ExternalURL,
				PostedAt:       p.PostedAt,
				Status:         StatusActive,
			}
			if p.SalaryMin > 0 && p.SalaryMax > 0 {
				j.Salary = &SalaryRange{Min: p.SalaryMin, Max: p.SalaryMax, Currency: "INR"}
			}
			if j.PostedAt.IsZero() {
				j.PostedAt = time.Now().UTC()
			}
			if err := s.repo.Create(ctx, j); err != nil {
				return imported, err
			}
			imported++
		}
	}
	s.log.Info("board import finished", zap.Int("imported", imported))
	return imported, nil
}

type descriptionAnalysis struct {
	RequiredSkills []string `json:"requiredSkills"`
	Category       string   `json:"category"`
}

// analyzeDescription asks the LLM for skills and category, degrading to the
// rule-based extractor when the model is unavailable or returns garbage.
func (s *service) analyzeDescription(ctx context.Context, description string, fallback Category) ([]string, Category) {
	if s.llm != nil && strings.TrimSpace(description) != "" {
		system := "You are a technical recruiter. Return the result strictly as JSON without explanations."
		user := "Job description:\n<<<\n" + description + "\n>>>\n\nReturn a JSON object: {\"requiredSkills\": string[], \"category\": string}. Category must be one of: Technical, Sales, Marketing, Finance, Healthcare, Education, Design, HR, Operations, Other."
		raw, err := s.llm.Ask(ctx, system, user)
		if err == nil {
			raw = strings.TrimSpace(raw)
			var out descriptionAnalysis
			if json.Unmarshal([]byte(raw), &out) != nil {
				// try to extract JSON from a fenced block
				if i := strings.Index(raw, "{"); i >= 0 {
					if j := strings.LastIndex(raw, "}"); j > i {
						_ = json.Unmarshal([]byte(raw[i:j+1]), &out)
					}
				}
			}
			if len(out.RequiredSkills) > 0 {
				cat := Category(out.Category)
				if !validCategory(cat) {
					cat = fallback
				}
				return out.RequiredSkills, cat
			}
		} else {
			s.log.Debug("description analysis degraded", zap.Error(err))
		}
	}
	return ExtractSkills(description), fallback
}

// skillDictionary is the rule-based fallback used when no LLM is configured.
var skillDictionary = []string{
	"JavaScript", "Python", "Java", "React", "Node", "Angular", "Vue",
	"MongoDB", "SQL", "AWS", "Docker", "Git", "Salesforce", "Excel",
	"Marketing", "SEO", "SEM", "CRM", "Communication", "Leadership",
}

// ExtractSkills scans a description for known skill keywords, capped at 10.
func ExtractSkills(description string) []string {
	if description == "" {
		return []string{}
	}
	descLower := strings.ToLower(description)
	found := []string{}
	for _, skill := range skillDictionary {
		if strings.Contains(descLower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	if len(found) > 10 {
		found = found[:10]
	}
	return found
}

func validCategory(c Category) bool {
	switch c {
	case CategoryTechnical, CategorySales, CategoryMarketing, CategoryFinance,
		CategoryHealthcare, CategoryEducation, CategoryDesign, CategoryHR,
		CategoryOperations, CategoryOther:
		return true
	}
	return false
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
