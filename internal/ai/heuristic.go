package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/hh-gateway/internal/domain"
)

// Heuristic is a rule-based Generator used when no LLM provider is
// configured. The rules are intentionally simple: the point is a sane
// response shape, not clever scoring.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) AnalyzeMatch(_ context.Context, _ map[string]any, vacancy domain.Vacancy) (*domain.MatchAnalysis, error) {
	score := 75

	if salary, ok := vacancy["salary"].(map[string]any); ok {
		if from, ok := salary["from"].(float64); ok && from > 200000 {
			score += 10
		}
	}

	if name, ok := vacancy["name"].(string); ok && strings.Contains(strings.ToLower(name), "senior") {
		score -= 5
	}

	return &domain.MatchAnalysis{
		Score:          domain.ClampScore(score),
		Strengths:      []string{"Relevant experience", "Matching skill set"},
		Gaps:           []string{"Some technologies may require ramp-up"},
		Recommendation: "Good fit, worth applying",
	}, nil
}

func (h *Heuristic) GenerateCoverLetter(ctx context.Context, resume map[string]any, vacancy domain.Vacancy) (*domain.CoverLetter, error) {
	company := nestedName(vacancy["employer"])
	if company == "" {
		company = "your company"
	}
	position, _ := vacancy["name"].(string)
	if position == "" {
		position = "the open position"
	}

	firstName, _ := resume["first_name"].(string)
	lastName, _ := resume["last_name"].(string)

	years := 0
	if exp, ok := resume["total_experience"].(map[string]any); ok {
		if months, ok := exp["months"].(float64); ok {
			years = int(months) / 12
		}
	}

	skills := skillSet(resume)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello!\n\n")
	fmt.Fprintf(&b, "I am interested in the %q position at %s.\n\n", position, company)
	if years > 0 {
		fmt.Fprintf(&b, "My %d years of professional experience will let me contribute from day one.\n\n", years)
	}
	if len(skills) > 0 {
		fmt.Fprintf(&b, "Key skills relevant to this role: %s.\n\n", strings.Join(skills, ", "))
	}
	fmt.Fprintf(&b, "I would be glad to discuss the details in an interview.\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s", strings.TrimSpace(firstName+" "+lastName))

	analysis, err := h.AnalyzeMatch(ctx, resume, vacancy)
	if err != nil {
		return nil, err
	}

	return &domain.CoverLetter{
		Content: b.String(),
		Score:   analysis.Score,
	}, nil
}

func nestedName(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := obj["name"].(string)
	return name
}

func skillSet(resume map[string]any) []string {
	raw, ok := resume["skill_set"].([]any)
	if !ok {
		return nil
	}

	skills := make([]string, 0, 3)
	for _, s := range raw {
		if skill, ok := s.(string); ok && skill != "" {
			skills = append(skills, skill)
		}
		if len(skills) == 3 {
			break
		}
	}
	return skills
}
