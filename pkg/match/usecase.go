package match

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/job"
	"github.com/rsinha/jobmatch/pkg/llm"
)

// UseCase orchestrates scoring, application creation and recruiter triage.
type UseCase interface {
	// FindMatches scores the candidate against all active jobs and returns
	// the relevant ones, best first. Running it twice creates no duplicate
	// applications and does not move scores or statuses.
	FindMatches(ctx context.Context, candidateID uuid.UUID) ([]MatchResult, error)
	// ApplyForJob records a direct application for one job.
	ApplyForJob(ctx context.Context, candidateID, jobID uuid.UUID) (Application, error)
	// ApplicationsForCandidate lists everything the candidate has applied
	// or been matched to.
	ApplicationsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]Application, error)
	// UpdateStatus is the recruiter-side status transition.
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, patch StatusPatch) (Application, error)
	// AutoSelectedForJob lists applications the matcher flagged for a job.
	AutoSelectedForJob(ctx context.Context, jobID uuid.UUID) ([]Application, error)
}

// Notifier sends the post-application confirmation. Failures are logged and
// swallowed; notification is never on the critical path.
type Notifier interface {
	ApplicationReceived(ctx context.Context, c candidate.Candidate, j job.Job, a Application) error
}

type service struct {
	apps       Repository
	candidates candidate.Repository
	jobs       job.Repository

	model    llm.ChatModel
	notifier Notifier
	log      *zap.Logger

	explainTimeout time.Duration
	concurrency    int
}

// NewService builds the matching use case. model and notifier may be nil;
// the corresponding enrichments are then skipped.
func NewService(apps Repository, candidates candidate.Repository, jobs job.Repository,
	model llm.ChatModel, notifier Notifier, log *zap.Logger,
	explainTimeout time.Duration, concurrency int) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	if explainTimeout <= 0 {
		explainTimeout = 8 * time.Second
	}
	if concurrency <= 0 {
		concurrency = 8
	}
	return &service{
		apps:           apps,
		candidates:     candidates,
		jobs:           jobs,
		model:          model,
		notifier:       notifier,
		log:            log,
		explainTimeout: explainTimeout,
		concurrency:    concurrency,
	}
}

// scoredJob pairs a job with its computed score during the fan-out phase.
type scoredJob struct {
	job   job.Job
	score Score
	ok    bool
}

func (s *service) FindMatches(ctx context.Context, candidateID uuid.UUID) ([]MatchResult, error) {
	cand, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if !cand.ChatbotCompleted {
		return nil, ErrChatbotIncomplete
	}

	profile, err := NormalizeCandidate(cand)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active jobs: %w", err)
	}

	eligible := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		if CategoryEligible(string(cand.Category), string(j.Category)) {
			eligible = append(eligible, j)
		}
	}

	// Fan out scoring with a bounded worker pool. Results land at fixed
	// positions so concurrency never reorders anything; a malformed job is
	// skipped without affecting its siblings.
	scored := make([]scoredJob, len(eligible))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, j := range eligible {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			jp, err := NormalizeJob(j)
			if err != nil {
				s.log.Warn("skipping malformed job",
					zap.String("jobId", j.ID.String()), zap.Error(err))
				return nil
			}
			scored[i] = scoredJob{job: j, score: Compute(profile, jp), ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]MatchResult, 0, len(scored))
	for _, sj := range scored {
		if !sj.ok || sj.score.Total < MinRelevantScore {
			continue
		}
		app, err := s.ensureApplication(ctx, cand, sj.job, sj.score)
		if err != nil {
			return nil, err
		}
		results = append(results, MatchResult{
			Job:           sj.job,
			MatchScore:    app.MatchScore,
			Breakdown:     app.Breakdown,
			ApplicationID: app.ID,
			Status:        app.Status,
			AutoSelected:  app.AutoSelected,
			AIExplanation: app.Notes,
		})
	}

	sort.SliceStable(results, func(i, k int) bool {
		return results[i].MatchScore > results[k].MatchScore
	})
	if len(results) > MaxMatchesReturned {
		results = results[:MaxMatchesReturned]
	}
	return results, nil
}

// ensureApplication returns the stored application for the pair, creating it
// on first sight. Existing rows are reused verbatim so repeated matching
// never moves a score or status.
func (s *service) ensureApplication(ctx context.Context, cand candidate.Candidate, j job.Job, sc Score) (Application, error) {
	existing, err := s.apps.GetByPair(ctx, j.ID, cand.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Application{}, fmt.Errorf("look up application: %w", err)
	}

	notes := ""
	if sc.Total >= SuggestedScore {
		notes = s.explain(ctx, cand, j, sc)
	}
	app := Application{
		ID:           uuid.New(),
		JobID:        j.ID,
		CandidateID:  cand.ID,
		MatchScore:   sc.Total,
		Breakdown:    sc.Breakdown,
		Status:       StatusForScore(sc.Total),
		AutoSelected: sc.Total >= AutoSelectScore,
		Notes:        notes,
		AppliedAt:    time.Now().UTC(),
	}
	stored, created, err := s.apps.CreateIfAbsent(ctx, app)
	if err != nil {
		return Application{}, fmt.Errorf("store application: %w", err)
	}
	if !created {
		s.log.Debug("lost application insert race, reusing stored row",
			zap.String("jobId", j.ID.String()),
			zap.String("candidateId", cand.ID.String()))
	}
	return stored, nil
}

// explain asks the language model for a short recruiter-readable rationale.
// Any failure degrades to an empty explanation.
func (s *service) explain(ctx context.Context, cand candidate.Candidate, j job.Job, sc Score) string {
	if s.model == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, s.explainTimeout)
	defer cancel()

	system := "You are a recruiting assistant. In two or three sentences, explain why the candidate fits the job. Be specific and factual, no filler."
	user := fmt.Sprintf(
		"Job: %s at %s (%s). Required skills: %v.\nCandidate: %s, %.1f years of experience, skills: %v.\nMatch score %d/100 (skills %d, experience %d, location %d, salary %d, job type %d).",
		j.Title, j.Company, j.Location, j.RequiredSkills,
		cand.Name, cand.TotalExperience, cand.Skills,
		sc.Total, sc.Breakdown.SkillMatch, sc.Breakdown.ExperienceMatch,
		sc.Breakdown.LocationMatch, sc.Breakdown.SalaryMatch, sc.Breakdown.JobTypeMatch)

	answer, err := s.model.Ask(ctx, system, user)
	if err != nil {
		s.log.Warn("match explanation unavailable",
			zap.String("jobId", j.ID.String()),
			zap.String("candidateId", cand.ID.String()),
			zap.Error(err))
		return ""
	}
	return answer
}

func (s *service) ApplyForJob(ctx context.Context, candidateID, jobID uuid.UUID) (Application, error) {
	cand, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return Application{}, err
	}
	j, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}

	if existing, err := s.apps.GetByPair(ctx, jobID, candidateID); err == nil {
		return existing, ErrAlreadyApplied
	} else if !errors.Is(err, ErrNotFound) {
		return Application{}, fmt.Errorf("look up application: %w", err)
	}

	profile, err := NormalizeCandidate(cand)
	if err != nil {
		return Application{}, err
	}
	jp, err := NormalizeJob(j)
	if err != nil {
		return Application{}, err
	}
	sc := Compute(profile, jp)

	app := Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: candidateID,
		MatchScore:  sc.Total,
		Breakdown:   sc.Breakdown,
		// Direct applications always start at Applied regardless of score;
		// recruiters promote them explicitly.
		Status:       StatusApplied,
		AutoSelected: false,
		AppliedAt:    time.Now().UTC(),
	}
	stored, created, err := s.apps.CreateIfAbsent(ctx, app)
	if err != nil {
		return Application{}, fmt.Errorf("store application: %w", err)
	}
	if !created {
		return stored, ErrAlreadyApplied
	}

	if err := s.candidates.UpdateBestScore(ctx, candidateID, sc.Total); err != nil {
		s.log.Warn("best score update failed",
			zap.String("candidateId", candidateID.String()), zap.Error(err))
	}
	if s.notifier != nil {
		if err := s.notifier.ApplicationReceived(ctx, cand, j, stored); err != nil {
			s.log.Warn("application notification failed",
				zap.String("candidateId", candidateID.String()), zap.Error(err))
		}
	}
	return stored, nil
}

func (s *service) ApplicationsForCandidate(ctx context.Context, candidateID uuid.UUID) ([]Application, error) {
	if _, err := s.candidates.GetByID(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.apps.ListByCandidate(ctx, candidateID)
}

func (s *service) UpdateStatus(ctx context.Context, applicationID uuid.UUID, patch StatusPatch) (Application, error) {
	if !ValidStatus(patch.Status) {
		return Application{}, fmt.Errorf("%w: %q", ErrInvalidStatus, patch.Status)
	}
	return s.apps.Update(ctx, applicationID, patch)
}

func (s *service) AutoSelectedForJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	if _, err := s.jobs.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.apps.ListAutoSelectedByJob(ctx, jobID)
}
