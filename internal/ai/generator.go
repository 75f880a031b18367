package ai

import (
	"context"

	"github.com/spigell/hh-gateway/internal/domain"
)

// Generator produces a match analysis or a cover letter for a (resume,
// vacancy) pair. Implementations are swappable: the gemini package talks to
// an LLM, Heuristic works offline from a few vacancy fields.
type Generator interface {
	AnalyzeMatch(ctx context.Context, resume map[string]any, vacancy domain.Vacancy) (*domain.MatchAnalysis, error)
	GenerateCoverLetter(ctx context.Context, resume map[string]any, vacancy domain.Vacancy) (*domain.CoverLetter, error)
}
