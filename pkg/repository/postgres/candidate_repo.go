package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rsinha/jobmatch/pkg/candidate"
)

// CandidateRepository implements candidate.Repository backed by PostgreSQL.
// List-valued fields live in JSONB columns; pgx handles the (de)serialization.
type CandidateRepository struct {
	pool *pgxpool.Pool
}

func NewCandidateRepository(pool *pgxpool.Pool) (*CandidateRepository, error) {
	repo := &CandidateRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *CandidateRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS candidates (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL UNIQUE,
	phone TEXT NOT NULL DEFAULT '',
	resume_path TEXT NOT NULL DEFAULT '',
	resume_text TEXT NOT NULL DEFAULT '',
	keywords JSONB NOT NULL DEFAULT '[]',
	skills JSONB NOT NULL DEFAULT '[]',
	category TEXT NOT NULL DEFAULT 'Other',
	total_experience DOUBLE PRECISION NOT NULL DEFAULT 0,
	education TEXT NOT NULL DEFAULT '',
	summary TEXT NOT NULL DEFAULT '',
	current_location TEXT NOT NULL DEFAULT '',
	preferred_locations JSONB NOT NULL DEFAULT '[]',
	expected_salary JSONB,
	preferred_job_type TEXT NOT NULL DEFAULT '',
	work_mode TEXT NOT NULL DEFAULT '',
	notice_period TEXT NOT NULL DEFAULT '',
	willing_to_relocate BOOLEAN NOT NULL DEFAULT FALSE,
	chatbot_completed BOOLEAN NOT NULL DEFAULT FALSE,
	best_match_score INT NOT NULL DEFAULT 0,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_candidates_active ON candidates (active);
CREATE INDEX IF NOT EXISTS idx_candidates_category ON candidates (category);
`)
	return err
}

const candidateColumns = `
	id, name, email, phone, resume_path, resume_text, keywords, skills,
	category, total_experience, education, summary, current_location,
	preferred_locations, expected_salary, preferred_job_type, work_mode,
	notice_period, willing_to_relocate, chatbot_completed,
	best_match_score, active, created_at`

func (r *CandidateRepository) Create(ctx context.Context, c candidate.Candidate) error {
	if c.Keywords == nil {
		c.Keywords = []string{}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.PreferredLocations == nil {
		c.PreferredLocations = []string{}
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO candidates (`+candidateColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23)
`, c.ID, c.Name, strings.ToLower(c.Email), c.Phone, c.ResumePath, c.ResumeText,
		c.Keywords, c.Skills, c.Category, c.TotalExperience, c.Education, c.Summary,
		c.CurrentLocation, c.PreferredLocations, c.ExpectedSalary, c.PreferredJobType,
		c.WorkMode, c.NoticePeriod, c.WillingToRelocate, c.ChatbotCompleted,
		c.BestMatchScore, c.Active, c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return candidate.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *CandidateRepository) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE id = $1`, id)
	return scanCandidate(row)
}

func (r *CandidateRepository) GetByEmail(ctx context.Context, email string) (candidate.Candidate, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+candidateColumns+` FROM candidates WHERE email = $1`,
		strings.ToLower(email))
	return scanCandidate(row)
}

func (r *CandidateRepository) ListActive(ctx context.Context) ([]candidate.Candidate, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+candidateColumns+` FROM candidates WHERE active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []candidate.Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// SavePreferences stores the questionnaire outcome and marks the candidate
// ready for matching in the same statement.
func (r *CandidateRepository) SavePreferences(ctx context.Context, id uuid.UUID, p candidate.Preferences) error {
	if p.PreferredLocations == nil {
		p.PreferredLocations = []string{}
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE candidates SET
	current_location = $2,
	preferred_locations = $3,
	expected_salary = $4,
	preferred_job_type = $5,
	work_mode = $6,
	notice_period = $7,
	willing_to_relocate = $8,
	chatbot_completed = TRUE
WHERE id = $1
`, id, p.CurrentLocation, p.PreferredLocations, p.ExpectedSalary,
		p.PreferredJobType, p.WorkMode, p.NoticePeriod, p.WillingToRelocate)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

// UpdateBestScore ratchets the stored best score upward; a lower score is a
// no-op by construction.
func (r *CandidateRepository) UpdateBestScore(ctx context.Context, id uuid.UUID, score int) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE candidates SET best_match_score = GREATEST(best_match_score, $2) WHERE id = $1
`, id, score)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrNotFound
	}
	return nil
}

func scanCandidate(row pgx.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	var createdAt time.Time
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.ResumePath, &c.ResumeText,
		&c.Keywords, &c.Skills, &c.Category, &c.TotalExperience, &c.Education, &c.Summary,
		&c.CurrentLocation, &c.PreferredLocations, &c.ExpectedSalary, &c.PreferredJobType,
		&c.WorkMode, &c.NoticePeriod, &c.WillingToRelocate, &c.ChatbotCompleted,
		&c.BestMatchScore, &c.Active, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrNotFound
		}
		return candidate.Candidate{}, err
	}
	c.CreatedAt = createdAt.UTC()
	return c, nil
}
