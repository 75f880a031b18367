package service

import (
	"context"

	"github.com/spigell/hh-gateway/internal/ai"
	"github.com/spigell/hh-gateway/internal/cache"
	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/repository"
	"go.uber.org/zap"
)

// GatewayService is the request orchestration core: it resolves the user's
// upstream token, decides cache vs upstream, normalizes upstream shapes and
// coordinates the detail enrichment fan-out.
type GatewayService struct {
	upstream  Upstream
	cache     Cache
	tokens    Tokens
	generator ai.Generator
	apps      repository.ApplicationRepository
	warmer    *Warmer
	logger    *zap.Logger
}

func NewGatewayService(
	upstream Upstream,
	cacheStore Cache,
	tokens Tokens,
	generator ai.Generator,
	apps repository.ApplicationRepository,
	warmer *Warmer,
	logger *zap.Logger,
) *GatewayService {
	return &GatewayService{
		upstream:  upstream,
		cache:     cacheStore,
		tokens:    tokens,
		generator: generator,
		apps:      apps,
		warmer:    warmer,
		logger:    logger,
	}
}

// token resolves the user's upstream access token. A token-store failure is
// indistinguishable from an expired token for the caller: both mean the user
// has to re-authenticate.
func (s *GatewayService) token(ctx context.Context, userID string) (string, error) {
	token, ok, err := s.tokens.AccessToken(ctx, userID)
	if err != nil {
		s.logger.Warn("token store unavailable, treating as unauthenticated",
			zap.String("user_id", userID), zap.Error(err))
		return "", domain.ErrUnauthenticated
	}
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	return token, nil
}

// GetResume returns the user's resume, read through the 1h cache. A user
// without a resume gets (nil, nil).
func (s *GatewayService) GetResume(ctx context.Context, userID string) (map[string]any, error) {
	key := cache.ResumeKey(userID)

	var cached map[string]any
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}

	resume, err := s.upstream.FetchResume(ctx, token)
	if err != nil {
		return nil, err
	}

	if resume != nil {
		s.cache.SetJSON(ctx, key, resume, cache.TTLResume)
	}

	return resume, nil
}

// Dictionaries returns the hh.ru filter dictionaries, read through the 7d
// cache. Token-free.
func (s *GatewayService) Dictionaries(ctx context.Context) (map[string]any, error) {
	key := cache.DictionariesKey()

	var cached map[string]any
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	data, err := s.upstream.Dictionaries(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, data, cache.TTLDictionaries)
	return data, nil
}

// Areas returns the hh.ru area tree, read through the 7d cache. Token-free.
func (s *GatewayService) Areas(ctx context.Context) ([]any, error) {
	key := cache.AreasKey()

	var cached []any
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	data, err := s.upstream.Areas(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, data, cache.TTLAreas)
	return data, nil
}

// GetVacancyDetail returns the trimmed vacancy projection, read through the
// 24h cache.
func (s *GatewayService) GetVacancyDetail(ctx context.Context, userID, vacancyID string) (*domain.VacancyDetail, error) {
	key := cache.VacancyFullKey(vacancyID)

	var cached domain.VacancyDetail
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}

	vacancy, err := s.upstream.GetVacancy(ctx, token, vacancyID)
	if err != nil {
		return nil, err
	}

	domain.Normalize(vacancy)
	detail := ProjectVacancyDetail(vacancy)

	s.cache.SetJSON(ctx, key, detail, cache.TTLVacancyFull)
	return detail, nil
}

// AnalyzeMatch scores the user's resume against a vacancy, read through the
// 24h per-(user, vacancy) cache.
func (s *GatewayService) AnalyzeMatch(ctx context.Context, userID, vacancyID string) (*domain.MatchAnalysis, error) {
	key := cache.AnalysisKey(userID, vacancyID)

	var cached domain.MatchAnalysis
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	resume, vacancy, err := s.resumeAndVacancy(ctx, userID, vacancyID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.generator.AnalyzeMatch(ctx, resume, vacancy)
	if err != nil {
		return nil, err
	}

	s.cache.SetJSON(ctx, key, analysis, cache.TTLMatchAnalysis)
	return analysis, nil
}

// GenerateCoverLetter produces a letter for the vacancy and records it as an
// unsent history entry.
func (s *GatewayService) GenerateCoverLetter(ctx context.Context, userID, vacancyID string) (*domain.CoverLetter, error) {
	resume, vacancy, err := s.resumeAndVacancy(ctx, userID, vacancyID)
	if err != nil {
		return nil, err
	}

	letter, err := s.generator.GenerateCoverLetter(ctx, resume, vacancy)
	if err != nil {
		return nil, err
	}

	title, _ := vacancy["name"].(string)
	record := &domain.ApplicationRecord{
		UserID:       userID,
		VacancyID:    vacancyID,
		VacancyTitle: title,
		CoverLetter:  letter.Content,
		MatchScore:   letter.Score,
	}
	if err := s.apps.Create(ctx, record); err != nil {
		return nil, err
	}

	return letter, nil
}

// Apply submits a negotiation and records the sent application.
func (s *GatewayService) Apply(ctx context.Context, userID, vacancyID, message string) (map[string]any, error) {
	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, err
	}

	response, err := s.upstream.Apply(ctx, token, vacancyID, message)
	if err != nil {
		return nil, err
	}

	title := "Unknown"
	if vacancy, ok := response["vacancy"].(map[string]any); ok {
		if name, ok := vacancy["name"].(string); ok && name != "" {
			title = name
		}
	}

	record := &domain.ApplicationRecord{
		UserID:       userID,
		VacancyID:    vacancyID,
		VacancyTitle: title,
		CoverLetter:  message,
	}
	if err := s.apps.Create(ctx, record); err != nil {
		return nil, err
	}
	if err := s.apps.MarkSent(ctx, record.ID); err != nil {
		return nil, err
	}

	return response, nil
}

// History lists the user's application records, newest first.
func (s *GatewayService) History(ctx context.Context, userID string) ([]*domain.ApplicationRecord, error) {
	return s.apps.ListByUser(ctx, userID)
}

// resumeAndVacancy gathers the generator inputs. A missing resume is a
// business precondition failure here, unlike in GetResume.
func (s *GatewayService) resumeAndVacancy(ctx context.Context, userID, vacancyID string) (map[string]any, domain.Vacancy, error) {
	resume, err := s.GetResume(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if resume == nil {
		return nil, nil, domain.ErrNoResume
	}

	token, err := s.token(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	vacancy, err := s.upstream.GetVacancy(ctx, token, vacancyID)
	if err != nil {
		return nil, nil, err
	}
	domain.Normalize(vacancy)

	return resume, vacancy, nil
}
