package service

import (
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spigell/hh-gateway/internal/domain"
)

const maxDescriptionLen = 500

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// ProjectVacancyDetail trims a full, already normalized vacancy down to the
// fields the frontend renders.
func ProjectVacancyDetail(v domain.Vacancy) *domain.VacancyDetail {
	id, _ := v["id"].(string)
	name, _ := v["name"].(string)
	publishedAt, _ := v["published_at"].(string)

	description := ""
	if raw, ok := v["description"].(string); ok && raw != "" {
		description = truncate(stripTags(raw), maxDescriptionLen)
	}

	return &domain.VacancyDetail{
		ID:          id,
		Name:        name,
		Description: description,
		Schedule:    nestedName(v["schedule"]),
		Employment:  nestedName(v["employment"]),
		PublishedAt: publishedAt,
		Salary:      v["salary"],
		Employer:    v["employer"],
		Area:        v["area"],
		Snippet:     v["snippet"],
		Experience:  v["experience"],
	}
}

// ThinVacancyDetail builds the degraded projection from the fields a list
// item already carries. Used when enriching a single item fails.
func ThinVacancyDetail(item domain.Vacancy) *domain.VacancyDetail {
	var thin struct {
		ID          string `mapstructure:"id"`
		Name        string `mapstructure:"name"`
		PublishedAt string `mapstructure:"published_at"`
		Salary      any    `mapstructure:"salary"`
		Employer    any    `mapstructure:"employer"`
		Area        any    `mapstructure:"area"`
		Snippet     any    `mapstructure:"snippet"`
	}
	// Decode failures leave zero values, which is exactly the degraded shape.
	_ = mapstructure.Decode(item, &thin)

	return &domain.VacancyDetail{
		ID:          thin.ID,
		Name:        thin.Name,
		PublishedAt: thin.PublishedAt,
		Salary:      thin.Salary,
		Employer:    thin.Employer,
		Area:        thin.Area,
		Snippet:     thin.Snippet,
	}
}

func stripTags(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func nestedName(v any) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := obj["name"].(string)
	return name
}
