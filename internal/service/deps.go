package service

import (
	"context"
	"time"

	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/headhunter"
)

// Cache is the best-effort read-through cache. A miss and a transient store
// failure look the same to callers.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) bool
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration)
}

// Tokens stores per-user headhunter tokens.
type Tokens interface {
	SetAccessToken(ctx context.Context, userID, token string, ttl time.Duration) error
	SetRefreshToken(ctx context.Context, userID, token string) error
	AccessToken(ctx context.Context, userID string) (string, bool, error)
	RefreshToken(ctx context.Context, userID string) (string, bool, error)
}

// Upstream is the authenticated surface of the hh.ru API the gateway
// orchestrates.
type Upstream interface {
	FetchResume(ctx context.Context, token string) (map[string]any, error)
	SearchVacancies(ctx context.Context, token string, params *headhunter.SearchParams) (*headhunter.SearchResult, error)
	GetVacancy(ctx context.Context, token, vacancyID string) (domain.Vacancy, error)
	Apply(ctx context.Context, token, vacancyID, message string) (map[string]any, error)
	Dictionaries(ctx context.Context) (map[string]any, error)
	Areas(ctx context.Context) ([]any, error)
}
