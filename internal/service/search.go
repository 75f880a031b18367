package service

import (
	"context"
	"fmt"

	"github.com/spigell/hh-gateway/internal/cache"
	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/headhunter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxEnrichInFlight caps concurrent per-item detail fetches within one
// search request. hh.ru rate-limits aggressively.
const maxEnrichInFlight = 5

// EnrichedSearchResult is one page of vacancies with per-item detail merged
// in. Items keep the order of the upstream list.
type EnrichedSearchResult struct {
	Items   []*domain.VacancyDetail `json:"items"`
	Found   int                     `json:"found"`
	Pages   int                     `json:"pages"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"per_page"`
}

// SearchVacancies returns one normalized page of search results without
// detail enrichment.
func (s *GatewayService) SearchVacancies(ctx context.Context, userID string, params *headhunter.SearchParams) (*headhunter.SearchResult, error) {
	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.upstream.SearchVacancies(ctx, token, params)
	if err != nil {
		return nil, err
	}

	for _, item := range result.Items {
		domain.Normalize(item)
	}

	return result, nil
}

// SearchVacanciesWithDetails returns one page of search results with each
// item enriched by its full detail projection, and speculatively warms the
// following page in the background.
func (s *GatewayService) SearchVacanciesWithDetails(ctx context.Context, userID string, params *headhunter.SearchParams) (*EnrichedSearchResult, error) {
	return s.searchWithDetails(ctx, userID, params, true)
}

func (s *GatewayService) searchWithDetails(ctx context.Context, userID string, params *headhunter.SearchParams, warmNext bool) (*EnrichedSearchResult, error) {
	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.upstream.SearchVacancies(ctx, token, params)
	if err != nil {
		return nil, err
	}

	for _, item := range result.Items {
		domain.Normalize(item)
	}

	// Fan out one detail fetch per item under the admission gate. Each slot
	// writes only its own index, so the assembled list keeps the upstream
	// order no matter in which order the fetches complete.
	items := make([]*domain.VacancyDetail, len(result.Items))

	g := new(errgroup.Group)
	g.SetLimit(maxEnrichInFlight)
	for i, item := range result.Items {
		g.Go(func() error {
			items[i] = s.enrichItem(ctx, token, item)
			return nil
		})
	}
	// Item failures degrade to the thin projection, so the group never errors.
	_ = g.Wait()

	if warmNext && result.Page < result.Pages-1 {
		s.warmNextPage(userID, params)
	}

	return &EnrichedSearchResult{
		Items:   items,
		Found:   result.Found,
		Pages:   result.Pages,
		Page:    result.Page,
		PerPage: result.PerPage,
	}, nil
}

// enrichItem runs one read-through cycle for a single list item against the
// short-lived item cache. On upstream failure the item degrades to the
// fields the list response already had.
func (s *GatewayService) enrichItem(ctx context.Context, token string, item domain.Vacancy) *domain.VacancyDetail {
	id, _ := item["id"].(string)
	if id == "" {
		return ThinVacancyDetail(item)
	}

	key := cache.VacancyItemKey(id)

	var cached domain.VacancyDetail
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached
	}

	vacancy, err := s.upstream.GetVacancy(ctx, token, id)
	if err != nil {
		s.logger.Warn("vacancy enrichment failed, degrading to list fields",
			zap.String("vacancy_id", id), zap.Error(err))
		return ThinVacancyDetail(item)
	}

	domain.Normalize(vacancy)
	detail := ProjectVacancyDetail(vacancy)

	s.cache.SetJSON(ctx, key, detail, cache.TTLVacancyItem)
	return detail
}

// warmNextPage submits a fire-and-forget enrichment run for the following
// page with identical filters, purely to pre-populate caches. The warm run
// itself never warms further pages.
func (s *GatewayService) warmNextPage(userID string, params *headhunter.SearchParams) {
	if s.warmer == nil {
		return
	}

	next := params.NextPage()
	name := fmt.Sprintf("search page %d for user %s", next.Page, userID)

	if !s.warmer.Submit(name, func(ctx context.Context) error {
		_, err := s.searchWithDetails(ctx, userID, next, false)
		return err
	}) {
		s.logger.Debug("cache warm task dropped", zap.String("task", name))
	}
}
