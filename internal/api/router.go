package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/headhunter"
	"github.com/spigell/hh-gateway/internal/service"
	"go.uber.org/zap"
)

// Auth is the authentication surface the handlers need.
type Auth interface {
	AuthorizeURL() string
	HandleCallback(ctx context.Context, code string) (*service.AuthResult, error)
	Refresh(ctx context.Context, userID string) (string, error)
	ValidateToken(token string) (string, error)
}

// Gateway is the orchestration surface the handlers need.
type Gateway interface {
	GetResume(ctx context.Context, userID string) (map[string]any, error)
	SearchVacancies(ctx context.Context, userID string, params *headhunter.SearchParams) (*headhunter.SearchResult, error)
	SearchVacanciesWithDetails(ctx context.Context, userID string, params *headhunter.SearchParams) (*service.EnrichedSearchResult, error)
	GetVacancyDetail(ctx context.Context, userID, vacancyID string) (*domain.VacancyDetail, error)
	AnalyzeMatch(ctx context.Context, userID, vacancyID string) (*domain.MatchAnalysis, error)
	GenerateCoverLetter(ctx context.Context, userID, vacancyID string) (*domain.CoverLetter, error)
	Apply(ctx context.Context, userID, vacancyID, message string) (map[string]any, error)
	History(ctx context.Context, userID string) ([]*domain.ApplicationRecord, error)
	Dictionaries(ctx context.Context) (map[string]any, error)
	Areas(ctx context.Context) ([]any, error)
}

func NewRouter(auth Auth, gateway Gateway, allowedOrigin string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(CORS(allowedOrigin))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("OK"))
	})

	h := NewHandler(auth, gateway, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/auth/hh", h.AuthorizeURL)
		r.Post("/auth/callback", h.AuthCallback)

		// Dictionaries and areas come from token-free upstream endpoints.
		r.Get("/dictionaries", h.Dictionaries)
		r.Get("/areas", h.Areas)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(auth, logger))

			r.Post("/auth/refresh", h.AuthRefresh)
			r.Get("/resume", h.Resume)
			r.Get("/vacancies", h.SearchVacancies)
			r.Get("/vacancies/detailed", h.SearchVacanciesDetailed)
			r.Get("/vacancy/{id}", h.VacancyDetail)
			r.Post("/vacancy/{id}/analyze", h.AnalyzeMatch)
			r.Post("/vacancy/{id}/generate-letter", h.GenerateLetter)
			r.Post("/vacancy/{id}/apply", h.Apply)
			r.Get("/history", h.History)
		})
	})

	return r
}
