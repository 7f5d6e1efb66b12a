package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rsinha/jobmatch/pkg/job"
)

// JobRepository implements job.Repository backed by PostgreSQL.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	repo := &JobRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT 'Other',
	description TEXT NOT NULL DEFAULT '',
	responsibilities TEXT NOT NULL DEFAULT '',
	required_skills JSONB NOT NULL DEFAULT '[]',
	experience JSONB,
	education_required TEXT NOT NULL DEFAULT '',
	salary JSONB,
	job_type TEXT NOT NULL DEFAULT 'Full-time',
	work_mode TEXT NOT NULL DEFAULT 'Office',
	source TEXT NOT NULL DEFAULT 'Manual',
	external_url TEXT NOT NULL DEFAULT '',
	posted_at TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'Active',
	employer_id UUID,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs (status);
CREATE INDEX IF NOT EXISTS idx_jobs_category ON jobs (category);
`)
	return err
}

const jobColumns = `
	id, title, company, location, category, description, responsibilities,
	required_skills, experience, education_required, salary, job_type,
	work_mode, source, external_url, posted_at, status, employer_id, created_at`

func (r *JobRepository) Create(ctx context.Context, j job.Job) error {
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	var employerID any
	if j.EmployerID != uuid.Nil {
		employerID = j.EmployerID
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
`, j.ID, j.Title, j.Company, j.Location, j.Category, j.Description, j.Responsibilities,
		j.RequiredSkills, j.Experience, j.EducationRequired, j.Salary, j.Type,
		j.WorkMode, j.Source, j.ExternalURL, j.PostedAt, j.Status, employerID, j.CreatedAt)
	return err
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	return scanJob(row)
}

func (r *JobRepository) ListActive(ctx context.Context) ([]job.Job, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+` FROM jobs WHERE status = 'Active' ORDER BY posted_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// List applies the public board filters with keyset-free pagination. The
// total reflects the filtered set, not the page.
func (r *JobRepository) List(ctx context.Context, f job.Filter, limit, offset int) ([]job.Job, int, error) {
	if limit <= 0 {
		limit = 20
	}
	where := []string{"status = 'Active'"}
	args := []any{}
	n := 0
	arg := func(v any) string {
		n++
		args = append(args, v)
		return fmt.Sprintf("$%d", n)
	}
	if f.Category != "" {
		where = append(where, "category = "+arg(f.Category))
	}
	if f.Location != "" {
		where = append(where, "location ILIKE "+arg("%"+f.Location+"%"))
	}
	if f.Type != "" {
		where = append(where, "job_type = "+arg(f.Type))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + jobColumns + ` FROM jobs WHERE ` + cond +
		` ORDER BY posted_at DESC LIMIT ` + arg(limit) + ` OFFSET ` + arg(offset)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	res, err := collectJobs(rows)
	if err != nil {
		return nil, 0, err
	}
	return res, total, nil
}

func (r *JobRepository) ExistsByTitleCompany(ctx context.Context, title, company string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM jobs WHERE title = $1 AND company = $2)
`, title, company).Scan(&exists)
	return exists, err
}

func (r *JobRepository) CountActiveByCategory(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
SELECT category, COUNT(*) FROM jobs WHERE status = 'Active' GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		out[cat] = n
	}
	return out, rows.Err()
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var postedAt, createdAt time.Time
	var employerID *uuid.UUID
	err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Category,
		&j.Description, &j.Responsibilities, &j.RequiredSkills, &j.Experience,
		&j.EducationRequired, &j.Salary, &j.Type, &j.WorkMode, &j.Source,
		&j.ExternalURL, &postedAt, &j.Status, &employerID, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	if employerID != nil {
		j.EmployerID = *employerID
	}
	j.PostedAt = postedAt.UTC()
	j.CreatedAt = createdAt.UTC()
	return j, nil
}

func collectJobs(rows pgx.Rows) ([]job.Job, error) {
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}
