package recruiter

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsinha/jobmatch/pkg/candidate"
)

type fakeCandidates struct {
	mu   sync.Mutex
	rows []candidate.Candidate
}

func (f *fakeCandidates) Create(ctx context.Context, c candidate.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, c)
	return nil
}

func (f *fakeCandidates) GetByID(ctx context.Context, id uuid.UUID) (candidate.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return candidate.Candidate{}, candidate.ErrNotFound
}

func (f *fakeCandidates) GetByEmail(ctx context.Context, email string) (candidate.Candidate, error) {
	return candidate.Candidate{}, candidate.ErrNotFound
}

func (f *fakeCandidates) ListActive(ctx context.Context) ([]candidate.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []candidate.Candidate
	for _, c := range f.rows {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCandidates) SavePreferences(ctx context.Context, id uuid.UUID, p candidate.Preferences) error {
	return nil
}

func (f *fakeCandidates) UpdateBestScore(ctx context.Context, id uuid.UUID, score int) error {
	return nil
}

// Three candidates with resume scores 100, 49 and 10.
func testPool() *fakeCandidates {
	asha := candidate.Candidate{
		ID:               uuid.New(),
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
		PreferredJobType: candidate.JobTypeFullTime,
		WorkMode:         candidate.WorkModeHybrid,
		ChatbotCompleted: true,
		Active:           true,
		CreatedAt:        time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	bela := candidate.Candidate{
		ID:               uuid.New(),
		Name:             "Bela Shah",
		Email:            "bela@example.com",
		Skills:           []string{"Excel", "Tally", "GST", "Auditing", "Accounting"},
		Category:         candidate.CategoryTechnical,
		TotalExperience:  3,
		ChatbotCompleted: true,
		Active:           true,
		CreatedAt:        time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
	}
	chetan := candidate.Candidate{
		ID:              uuid.New(),
		Name:            "Chetan Rao",
		TotalExperience: 1,
		Active:          true,
		CreatedAt:       time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	inactive := candidate.Candidate{
		ID:     uuid.New(),
		Name:   "Ghost",
		Active: false,
	}
	return &fakeCandidates{rows: []candidate.Candidate{asha, bela, chetan, inactive}}
}

func TestListCandidates_DefaultOrderIsScoreDescending(t *testing.T) {
	svc := NewService(testPool(), nil)

	items, stats, err := svc.ListCandidates(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Asha Verma", items[0].Name)
	assert.Equal(t, 100, items[0].ATSScore)
	assert.Equal(t, "Bela Shah", items[1].Name)
	assert.Equal(t, 49, items[1].ATSScore)
	assert.Equal(t, "Chetan Rao", items[2].Name)
	assert.Equal(t, 10, items[2].ATSScore)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 100, stats.TopScore)
	assert.Equal(t, 53.0, stats.AverageScore)
}

func TestListCandidates_ExcludesInactive(t *testing.T) {
	svc := NewService(testPool(), nil)
	items, _, err := svc.ListCandidates(context.Background(), Query{})
	require.NoError(t, err)
	for _, rc := range items {
		assert.NotEqual(t, "Ghost", rc.Name)
	}
}

func TestListCandidates_Filters(t *testing.T) {
	svc := NewService(testPool(), nil)
	ctx := context.Background()

	byScore, _, err := svc.ListCandidates(ctx, Query{Filter: Filter{MinScore: 40}})
	require.NoError(t, err)
	assert.Len(t, byScore, 2)

	bySkill, _, err := svc.ListCandidates(ctx, Query{Filter: Filter{Skills: []string{"go", "rust"}}})
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, "Asha Verma", bySkill[0].Name)

	bySearch, _, err := svc.ListCandidates(ctx, Query{Filter: Filter{Search: "asha"}})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)

	byExp, _, err := svc.ListCandidates(ctx, Query{Filter: Filter{MinExperience: 2, MaxExperience: 4}})
	require.NoError(t, err)
	require.Len(t, byExp, 1)
	assert.Equal(t, "Bela Shah", byExp[0].Name)

	// filters are conjunctive
	none, _, err := svc.ListCandidates(ctx, Query{Filter: Filter{Search: "asha", MaxScore: 50}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListCandidates_SortKeys(t *testing.T) {
	svc := NewService(testPool(), nil)
	ctx := context.Background()

	byExp, _, err := svc.ListCandidates(ctx, Query{SortBy: SortByExperience})
	require.NoError(t, err)
	assert.Equal(t, "Chetan Rao", byExp[0].Name)
	assert.Equal(t, "Asha Verma", byExp[2].Name)

	byName, _, err := svc.ListCandidates(ctx, Query{SortBy: SortByName})
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", byName[0].Name)
	assert.Equal(t, "Chetan Rao", byName[2].Name)

	byCreated, _, err := svc.ListCandidates(ctx, Query{SortBy: SortByCreatedAt, Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "Chetan Rao", byCreated[0].Name)
}

func TestListCandidates_PaginationDoesNotAffectStats(t *testing.T) {
	svc := NewService(testPool(), nil)

	page, stats, err := svc.ListCandidates(context.Background(), Query{Limit: 1, Offset: 1, Desc: true})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Bela Shah", page[0].Name)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 100, stats.TopScore)

	empty, stats, err := svc.ListCandidates(context.Background(), Query{Offset: 99})
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.Equal(t, 3, stats.Total)
}

func TestListCandidates_RejectsBadQueries(t *testing.T) {
	svc := NewService(testPool(), nil)
	ctx := context.Background()

	_, _, err := svc.ListCandidates(ctx, Query{SortBy: "salary"})
	assert.ErrorIs(t, err, ErrBadQuery)

	_, _, err = svc.ListCandidates(ctx, Query{Filter: Filter{MinScore: 150}})
	assert.ErrorIs(t, err, ErrBadQuery)

	_, _, err = svc.ListCandidates(ctx, Query{Filter: Filter{MinScore: 80, MaxScore: 40}})
	assert.ErrorIs(t, err, ErrBadQuery)

	_, _, err = svc.ListCandidates(ctx, Query{Offset: -1})
	assert.ErrorIs(t, err, ErrBadQuery)
}

func TestCandidateByID(t *testing.T) {
	pool := testPool()
	svc := NewService(pool, nil)

	rc, err := svc.CandidateByID(context.Background(), pool.rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 100, rc.ATSScore)

	_, err = svc.CandidateByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, candidate.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	svc := NewService(testPool(), nil)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalCandidates)
	assert.Equal(t, 53.0, stats.AverageScore)
	assert.Equal(t, 2, stats.ByCategory["Technical"])

	bandCounts := map[string]int{}
	for _, b := range stats.ScoreBands {
		bandCounts[b.Label] = b.Count
	}
	assert.Equal(t, 1, bandCounts["0-25"])
	assert.Equal(t, 1, bandCounts["26-50"])
	assert.Equal(t, 0, bandCounts["51-75"])
	assert.Equal(t, 1, bandCounts["76-100"])

	require.NotEmpty(t, stats.TopCandidates)
	assert.Equal(t, "Asha Verma", stats.TopCandidates[0].Name)
}

func TestFilterOptions(t *testing.T) {
	svc := NewService(testPool(), nil)

	opts, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Technical"}, opts.Categories)
	assert.Contains(t, opts.Locations, "Bengaluru")
	assert.Contains(t, opts.Skills, "Go")
	assert.Contains(t, opts.Skills, "Tally")
	assert.Equal(t, []string{"Full-time"}, opts.JobTypes)
	assert.Equal(t, []string{"Hybrid"}, opts.WorkModes)
}
