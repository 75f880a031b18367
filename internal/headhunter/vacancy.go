package headhunter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spigell/hh-gateway/internal/domain"
)

const (
	searchPath       = "/vacancies"
	negotiationsPath = "/negotiations"

	defaultPerPage = 20
)

// SearchParams are the vacancy search filters the gateway exposes.
type SearchParams struct {
	Text           string
	Area           string
	Salary         int
	OnlyWithSalary bool
	Experience     string
	Employment     string
	Schedule       string
	Page           int
	PerPage        int
}

// Values encodes the params for the hh.ru search endpoint, skipping unset
// filters.
func (p *SearchParams) Values() url.Values {
	q := url.Values{}

	perPage := p.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	q.Set("page", strconv.Itoa(p.Page))
	q.Set("per_page", strconv.Itoa(perPage))

	if p.Text != "" {
		q.Set("text", p.Text)
	}
	if p.Area != "" {
		q.Set("area", p.Area)
	}
	if p.Salary > 0 {
		q.Set("salary", strconv.Itoa(p.Salary))
	}
	if p.OnlyWithSalary {
		q.Set("only_with_salary", "true")
	}
	if p.Experience != "" {
		q.Set("experience", p.Experience)
	}
	if p.Employment != "" {
		q.Set("employment", p.Employment)
	}
	if p.Schedule != "" {
		q.Set("schedule", p.Schedule)
	}

	return q
}

// NextPage returns a copy of the params pointing at the following page.
func (p *SearchParams) NextPage() *SearchParams {
	next := *p
	next.Page++
	return &next
}

// SearchResult is one page of vacancies as returned by hh.ru. Items stay
// generic maps: the gateway passes them through, patching only the keys the
// frontend relies on.
type SearchResult struct {
	Items   []domain.Vacancy `json:"items"`
	Found   int              `json:"found"`
	Pages   int              `json:"pages"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

func (c *Client) SearchVacancies(ctx context.Context, token string, params *SearchParams) (*SearchResult, error) {
	var result SearchResult
	if err := c.getJSON(ctx, token, c.APIURL+searchPath, params.Values(), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) GetVacancy(ctx context.Context, token, vacancyID string) (domain.Vacancy, error) {
	var vacancy domain.Vacancy
	vacancyURL := fmt.Sprintf("%s%s/%s", c.APIURL, searchPath, url.PathEscape(vacancyID))
	if err := c.getJSON(ctx, token, vacancyURL, nil, &vacancy); err != nil {
		return nil, err
	}

	return vacancy, nil
}

// Apply submits a negotiation for the user's resume. The resume is resolved
// first so a user without one gets a clear business error and no POST is
// made. hh.ru answers 201 on success, anything else is a failure.
func (c *Client) Apply(ctx context.Context, token, vacancyID, message string) (map[string]any, error) {
	resume, err := c.FetchResume(ctx, token)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, domain.ErrNoResume
	}

	resumeID, _ := resume["id"].(string)

	body := map[string]string{
		"vacancy_id": vacancyID,
		"resume_id":  resumeID,
		"message":    message,
	}

	var response map[string]any
	err = c.postJSON(ctx, token, c.APIURL+negotiationsPath, body, http.StatusCreated, &response)
	if err != nil {
		return nil, err
	}

	return response, nil
}
