// Package jobsource holds clients for external job-search APIs.
package jobsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rsinha/jobmatch/pkg/job"
)

// Adzuna is a minimal client for the Adzuna job search API.
type Adzuna struct {
	AppID   string
	APIKey  string
	BaseURL string
	Country string
	PerPage int
	httpDo  *http.Client
}

func NewAdzuna(appID, apiKey, baseURL, country string) *Adzuna {
	if baseURL == "" {
		baseURL = "https://api.adzuna.com/v1/api"
	}
	if country == "" {
		country = "in"
	}
	return &Adzuna{
		AppID:   appID,
		APIKey:  apiKey,
		BaseURL: baseURL,
		Country: country,
		PerPage: 15,
		httpDo: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

type adzunaResult struct {
	Title       string         `json:"title"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	Description string         `json:"description"`
	SalaryMin   float64        `json:"salary_min"`
	SalaryMax   float64        `json:"salary_max"`
	RedirectURL string         `json:"redirect_url"`
	Created     time.Time      `json:"created"`
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

// Search runs one search query against the board and maps results into
// domain postings.
func (a *Adzuna) Search(ctx context.Context, query string, page int) ([]job.BoardPosting, error) {
	if a.AppID == "" || a.APIKey == "" {
		return nil, errors.New("adzuna credentials are empty")
	}
	if page <= 0 {
		page = 1
	}
	perPage := a.PerPage
	if perPage <= 0 {
		perPage = 15
	}

	endpoint := fmt.Sprintf("%s/jobs/%s/search/%d", a.BaseURL, a.Country, page)
	params := url.Values{}
	params.Set("app_id", a.AppID)
	params.Set("app_key", a.APIKey)
	params.Set("results_per_page", fmt.Sprintf("%d", perPage))
	params.Set("what", query)
	params.Set("content-type", "application/json")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := a.httpDo.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errMap map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errMap)
		return nil, fmt.Errorf("adzuna http %d: %v", resp.StatusCode, errMap)
	}
	var out adzunaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}

	postings := make([]job.BoardPosting, 0, len(out.Results))
	for _, r := range out.Results {
		postings = append(postings, job.BoardPosting{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: r.Description,
			SalaryMin:   r.SalaryMin,
			SalaryMax:   r.SalaryMax,
			ExternalURL: r.RedirectURL,
			PostedAt:    r.Created,
		})
	}
	return postings, nil
}

var _ job.Board = (*Adzuna)(nil)
