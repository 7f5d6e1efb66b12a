package recruiter

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rsinha/jobmatch/pkg/candidate"
	"github.com/rsinha/jobmatch/pkg/match"
)

// UseCase is the recruiter-facing read side over the candidate pool.
type UseCase interface {
	ListCandidates(ctx context.Context, q Query) ([]RankedCandidate, Stats, error)
	CandidateByID(ctx context.Context, id uuid.UUID) (RankedCandidate, error)
	Dashboard(ctx context.Context) (DashboardStats, error)
	FilterOptions(ctx context.Context) (FilterOptions, error)
}

type service struct {
	candidates candidate.Repository
	log        *zap.Logger
}

func NewService(candidates candidate.Repository, log *zap.Logger) UseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{candidates: candidates, log: log}
}

func (s *service) ListCandidates(ctx context.Context, q Query) ([]RankedCandidate, Stats, error) {
	if err := validateQuery(q); err != nil {
		return nil, Stats{}, err
	}

	pool, err := s.rankedPool(ctx)
	if err != nil {
		return nil, Stats{}, err
	}

	filtered := make([]RankedCandidate, 0, len(pool))
	for _, rc := range pool {
		if matchesFilter(rc, q.Filter) {
			filtered = append(filtered, rc)
		}
	}

	stats := poolStats(filtered)
	sortCandidates(filtered, q.SortBy, q.Desc)

	// Pagination comes last so stats always describe the whole filtered set.
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset >= len(filtered) {
		return []RankedCandidate{}, stats, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], stats, nil
}

func (s *service) CandidateByID(ctx context.Context, id uuid.UUID) (RankedCandidate, error) {
	c, err := s.candidates.GetByID(ctx, id)
	if err != nil {
		return RankedCandidate{}, err
	}
	return RankedCandidate{Candidate: c, ATSScore: match.ATSScore(c)}, nil
}

func (s *service) Dashboard(ctx context.Context) (DashboardStats, error) {
	pool, err := s.rankedPool(ctx)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalCandidates: len(pool),
		ByCategory:      map[string]int{},
		ByExperience:    map[string]int{},
		ScoreBands: []ScoreBand{
			{Label: "0-25"}, {Label: "26-50"}, {Label: "51-75"}, {Label: "76-100"},
		},
	}

	sum := 0
	for _, rc := range pool {
		sum += rc.ATSScore
		stats.ByCategory[string(rc.Category)]++
		stats.ByExperience[experienceBand(rc.TotalExperience)]++
		switch {
		case rc.ATSScore <= 25:
			stats.ScoreBands[0].Count++
		case rc.ATSScore <= 50:
			stats.ScoreBands[1].Count++
		case rc.ATSScore <= 75:
			stats.ScoreBands[2].Count++
		default:
			stats.ScoreBands[3].Count++
		}
	}
	if len(pool) > 0 {
		stats.AverageScore = math.Round(float64(sum)/float64(len(pool))*10) / 10
	}

	top := make([]RankedCandidate, len(pool))
	copy(top, pool)
	sortCandidates(top, SortByScore, true)
	if len(top) > 5 {
		top = top[:5]
	}
	stats.TopCandidates = top
	return stats, nil
}

func (s *service) FilterOptions(ctx context.Context) (FilterOptions, error) {
	pool, err := s.candidates.ListActive(ctx)
	if err != nil {
		return FilterOptions{}, err
	}

	categories := map[string]struct{}{}
	locations := map[string]struct{}{}
	skills := map[string]struct{}{}
	jobTypes := map[string]struct{}{}
	workModes := map[string]struct{}{}
	for _, c := range pool {
		addNonEmpty(categories, string(c.Category))
		addNonEmpty(locations, c.CurrentLocation)
		for _, loc := range c.PreferredLocations {
			addNonEmpty(locations, loc)
		}
		for _, sk := range c.Skills {
			addNonEmpty(skills, sk)
		}
		addNonEmpty(jobTypes, string(c.PreferredJobType))
		addNonEmpty(workModes, string(c.WorkMode))
	}

	return FilterOptions{
		Categories: sortedKeys(categories),
		Locations:  sortedKeys(locations),
		Skills:     sortedKeys(skills),
		JobTypes:   sortedKeys(jobTypes),
		WorkModes:  sortedKeys(workModes),
	}, nil
}

func (s *service) rankedPool(ctx context.Context) ([]RankedCandidate, error) {
	pool, err := s.candidates.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	ranked := make([]RankedCandidate, 0, len(pool))
	for _, c := range pool {
		ranked = append(ranked, RankedCandidate{Candidate: c, ATSScore: match.ATSScore(c)})
	}
	return ranked, nil
}

func validateQuery(q Query) error {
	switch q.SortBy {
	case "", SortByScore, SortByExperience, SortByName, SortByCreatedAt:
	default:
		return fmt.Errorf("%w: sort key %q", ErrBadQuery, q.SortBy)
	}
	if q.Filter.MinScore < 0 || q.Filter.MinScore > 100 ||
		q.Filter.MaxScore < 0 || q.Filter.MaxScore > 100 {
		return fmt.Errorf("%w: score bounds must be within [0,100]", ErrBadQuery)
	}
	if q.Filter.MaxScore != 0 && q.Filter.MaxScore < q.Filter.MinScore {
		return fmt.Errorf("%w: empty score range", ErrBadQuery)
	}
	if q.Limit < 0 || q.Offset < 0 {
		return fmt.Errorf("%w: negative pagination", ErrBadQuery)
	}
	return nil
}

func matchesFilter(rc RankedCandidate, f Filter) bool {
	if f.Category != "" && !strings.EqualFold(string(rc.Category), f.Category) {
		return false
	}
	if rc.ATSScore < f.MinScore {
		return false
	}
	if f.MaxScore != 0 && rc.ATSScore > f.MaxScore {
		return false
	}
	if rc.TotalExperience < f.MinExperience {
		return false
	}
	if f.MaxExperience != 0 && rc.TotalExperience > f.MaxExperience {
		return false
	}
	if len(f.Skills) > 0 && !hasAnySkill(rc.Skills, f.Skills) {
		return false
	}
	if f.Location != "" && !matchesLocation(rc, f.Location) {
		return false
	}
	if f.JobType != "" && !strings.EqualFold(string(rc.PreferredJobType), f.JobType) {
		return false
	}
	if f.WorkMode != "" && !strings.EqualFold(string(rc.WorkMode), f.WorkMode) {
		return false
	}
	if f.Search != "" && !matchesSearch(rc, f.Search) {
		return false
	}
	return true
}

func hasAnySkill(have, want []string) bool {
	for _, w := range want {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		for _, h := range have {
			if strings.ToLower(h) == w {
				return true
			}
		}
	}
	return false
}

func matchesLocation(rc RankedCandidate, needle string) bool {
	needle = strings.ToLower(needle)
	if strings.Contains(strings.ToLower(rc.CurrentLocation), needle) {
		return true
	}
	for _, loc := range rc.PreferredLocations {
		if strings.Contains(strings.ToLower(loc), needle) {
			return true
		}
	}
	return false
}

func matchesSearch(rc RankedCandidate, needle string) bool {
	needle = strings.ToLower(needle)
	if strings.Contains(strings.ToLower(rc.Name), needle) ||
		strings.Contains(strings.ToLower(rc.Email), needle) {
		return true
	}
	for _, sk := range rc.Skills {
		if strings.Contains(strings.ToLower(sk), needle) {
			return true
		}
	}
	for _, kw := range rc.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return false
}

// sortCandidates orders the slice by the requested key with the candidate
// id as a stable tiebreaker, so equal keys page deterministically.
func sortCandidates(pool []RankedCandidate, key string, desc bool) {
	var less func(a, b RankedCandidate) bool
	switch key {
	case SortByExperience:
		less = func(a, b RankedCandidate) bool { return a.TotalExperience < b.TotalExperience }
	case SortByName:
		coll := collate.New(language.English, collate.IgnoreCase)
		less = func(a, b RankedCandidate) bool { return coll.CompareString(a.Name, b.Name) < 0 }
	case SortByCreatedAt:
		less = func(a, b RankedCandidate) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default: // SortByScore
		less = func(a, b RankedCandidate) bool { return a.ATSScore < b.ATSScore }
		if key == "" {
			desc = true
		}
	}
	sort.SliceStable(pool, func(i, k int) bool {
		a, b := pool[i], pool[k]
		if desc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		return pool[i].ID.String() < pool[k].ID.String()
	})
}

func experienceBand(years float64) string {
	switch {
	case years < 1:
		return "0-1"
	case years < 3:
		return "1-3"
	case years < 5:
		return "3-5"
	case years < 10:
		return "5-10"
	default:
		return "10+"
	}
}

func poolStats(pool []RankedCandidate) Stats {
	st := Stats{Total: len(pool)}
	if len(pool) == 0 {
		return st
	}
	sum := 0
	for _, rc := range pool {
		sum += rc.ATSScore
		if rc.ATSScore > st.TopScore {
			st.TopScore = rc.ATSScore
		}
	}
	st.AverageScore = math.Round(float64(sum)/float64(len(pool))*10) / 10
	return st
}

func addNonEmpty(set map[string]struct{}, v string) {
	v = strings.TrimSpace(v)
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
