package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rsinha/jobmatch/pkg/match"
)

// ApplicationRepository implements match.Repository backed by PostgreSQL.
// The UNIQUE (job_id, candidate_id) constraint is what makes application
// creation idempotent under concurrency.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	repo := &ApplicationRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *ApplicationRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS applications (
	id UUID PRIMARY KEY,
	job_id UUID NOT NULL,
	candidate_id UUID NOT NULL,
	match_score INT NOT NULL,
	breakdown JSONB NOT NULL,
	status TEXT NOT NULL,
	auto_selected BOOLEAN NOT NULL DEFAULT FALSE,
	notes TEXT NOT NULL DEFAULT '',
	employer_viewed BOOLEAN NOT NULL DEFAULT FALSE,
	employer_notes TEXT NOT NULL DEFAULT '',
	applied_at TIMESTAMPTZ NOT NULL,
	UNIQUE (job_id, candidate_id)
);
CREATE INDEX IF NOT EXISTS idx_applications_candidate ON applications (candidate_id);
CREATE INDEX IF NOT EXISTS idx_applications_job ON applications (job_id);
`)
	return err
}

const applicationColumns = `
	id, job_id, candidate_id, match_score, breakdown, status, auto_selected,
	notes, employer_viewed, employer_notes, applied_at`

// CreateIfAbsent inserts the application unless the (job, candidate) pair
// already exists. On a unique violation the winning row is re-read so both
// racers observe the same stored application.
func (r *ApplicationRepository) CreateIfAbsent(ctx context.Context, a match.Application) (match.Application, bool, error) {
	_, err := r.pool.Exec(ctx, `
INSERT INTO applications (`+applicationColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`, a.ID, a.JobID, a.CandidateID, a.MatchScore, a.Breakdown, a.Status,
		a.AutoSelected, a.Notes, a.EmployerViewed, a.EmployerNotes, a.AppliedAt)
	if err == nil {
		return a, true, nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
		stored, gerr := r.GetByPair(ctx, a.JobID, a.CandidateID)
		if gerr != nil {
			return match.Application{}, false, gerr
		}
		return stored, false, nil
	}
	return match.Application{}, false, err
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (match.Application, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplication(row)
}

func (r *ApplicationRepository) GetByPair(ctx context.Context, jobID, candidateID uuid.UUID) (match.Application, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+applicationColumns+` FROM applications WHERE job_id = $1 AND candidate_id = $2
`, jobID, candidateID)
	return scanApplication(row)
}

func (r *ApplicationRepository) Update(ctx context.Context, id uuid.UUID, patch match.StatusPatch) (match.Application, error) {
	row := r.pool.QueryRow(ctx, `
UPDATE applications SET
	status = $2,
	employer_notes = $3,
	employer_viewed = $4
WHERE id = $1
RETURNING `+applicationColumns, id, patch.Status, patch.EmployerNotes, patch.EmployerViewed)
	return scanApplication(row)
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]match.Application, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+applicationColumns+` FROM applications
WHERE candidate_id = $1 ORDER BY applied_at DESC
`, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListAutoSelectedByJob(ctx context.Context, jobID uuid.UUID) ([]match.Application, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+applicationColumns+` FROM applications
WHERE job_id = $1 AND auto_selected ORDER BY match_score DESC
`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func scanApplication(row pgx.Row) (match.Application, error) {
	var a match.Application
	var appliedAt time.Time
	err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.MatchScore, &a.Breakdown,
		&a.Status, &a.AutoSelected, &a.Notes, &a.EmployerViewed, &a.EmployerNotes, &appliedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return match.Application{}, match.ErrNotFound
		}
		return match.Application{}, err
	}
	a.AppliedAt = appliedAt.UTC()
	return a, nil
}

func collectApplications(rows pgx.Rows) ([]match.Application, error) {
	var res []match.Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}
