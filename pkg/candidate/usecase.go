package candidate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UseCase covers candidate intake: resume upload and questionnaire outcome.
type UseCase interface {
	Register(ctx context.Context, filename string, data []byte) (Candidate, error)
	SavePreferences(ctx context.Context, id uuid.UUID, p Preferences) (Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (Candidate, error)
	GetByEmail(ctx context.Context, email string) (Candidate, error)
}

type service struct {
	repo      Repository
	extractor ResumeExtractor
	log       *zap.Logger
}

func NewService(repo Repository, extractor ResumeExtractor, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{repo: repo, extractor: extractor, log: log}
}

// Register parses the uploaded resume and creates the candidate record.
// Email is the natural key: uploading a second resume for a known email is
// rejected so the questionnaire/matching state is not silently reset.
func (s *service) Register(ctx context.Context, filename string, data []byte) (Candidate, error) {
	profile, err := s.extractor.Extract(ctx, filename, data)
	if err != nil {
		return Candidate{}, err
	}
	if strings.TrimSpace(profile.Text) == "" {
		return Candidate{}, ErrEmptyResume
	}

	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email != "" {
		if _, err := s.repo.GetByEmail(ctx, email); err == nil {
			return Candidate{}, ErrEmailTaken
		} else if !errors.Is(err, ErrNotFound) {
			return Candidate{}, err
		}
	}

	c := Candidate{
		ID:                 uuid.New(),
		Name:               profile.Name,
		Email:              email,
		Phone:              profile.Phone,
		ResumePath:         filename,
		ResumeText:         profile.Text,
		Keywords:           profile.Keywords,
		Skills:             profile.Skills,
		Category:           profile.Category,
		TotalExperience:    profile.ExperienceYears,
		Education:          profile.Education,
		Summary:            profile.Summary,
		CurrentLocation:    profile.Location,
		PreferredLocations: []string{},
		Active:             true,
		CreatedAt:          time.Now().UTC(),
	}
	if c.Category == "" {
		c.Category = CategoryOther
	}
	if c.Keywords == nil {
		c.Keywords = []string{}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Candidate{}, err
	}
	s.log.Info("candidate registered",
		zap.String("candidateId", c.ID.String()),
		zap.String("category", string(c.Category)),
		zap.Int("skills", len(c.Skills)),
	)
	return c, nil
}

// SavePreferences stores the questionnaire outcome and marks the candidate
// as ready for matching.
func (s *service) SavePreferences(ctx context.Context, id uuid.UUID, p Preferences) (Candidate, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Candidate{}, err
	}
	if p.PreferredLocations == nil {
		p.PreferredLocations = []string{}
	}
	if err := s.repo.SavePreferences(ctx, id, p); err != nil {
		return Candidate{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByEmail(ctx context.Context, email string) (Candidate, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}
