package service

import (
	"strings"
	"testing"

	"github.com/spigell/hh-gateway/internal/domain"
)

func TestProjectVacancyDetail(t *testing.T) {
	vacancy := domain.Vacancy{
		"id":           "v1",
		"name":         "Go Developer",
		"description":  "<p>We build <strong>backend</strong> services.</p>",
		"schedule":     map[string]any{"id": "remote", "name": "Remote"},
		"employment":   map[string]any{"id": "full", "name": "Full time"},
		"published_at": "2024-01-01T00:00:00+0300",
		"salary":       map[string]any{"from": float64(100000)},
		"employer":     map[string]any{"name": "Acme"},
		"area":         map[string]any{"name": "Moscow"},
		"snippet":      map[string]any{"requirement": "Go"},
		"experience":   map[string]any{"name": "3-6 years"},
	}

	detail := ProjectVacancyDetail(vacancy)

	if detail.ID != "v1" || detail.Name != "Go Developer" {
		t.Fatalf("unexpected identity fields: %+v", detail)
	}
	if detail.Description != "We build backend services." {
		t.Fatalf("expected stripped description, got %q", detail.Description)
	}
	if detail.Schedule != "Remote" {
		t.Fatalf("expected schedule name, got %q", detail.Schedule)
	}
	if detail.Employment != "Full time" {
		t.Fatalf("expected employment name, got %q", detail.Employment)
	}
}

func TestProjectVacancyDetailTruncatesLongDescription(t *testing.T) {
	long := strings.Repeat("a", 600)
	vacancy := domain.Vacancy{"id": "v1", "description": "<div>" + long + "</div>"}

	detail := ProjectVacancyDetail(vacancy)

	if len([]rune(detail.Description)) != maxDescriptionLen+3 {
		t.Fatalf("expected %d runes plus ellipsis, got %d", maxDescriptionLen, len([]rune(detail.Description)))
	}
	if !strings.HasSuffix(detail.Description, "...") {
		t.Fatalf("expected ellipsis suffix")
	}
}

func TestProjectVacancyDetailShortDescriptionUntouched(t *testing.T) {
	vacancy := domain.Vacancy{"id": "v1", "description": "plain text"}

	detail := ProjectVacancyDetail(vacancy)

	if detail.Description != "plain text" {
		t.Fatalf("expected description unchanged, got %q", detail.Description)
	}
}

func TestThinVacancyDetail(t *testing.T) {
	item := domain.Vacancy{
		"id":           "v1",
		"name":         "Go Developer",
		"published_at": "2024-01-01T00:00:00+0300",
		"salary":       nil,
		"employer":     map[string]any{"name": "Acme"},
		"area":         map[string]any{"name": "Moscow"},
		"snippet":      map[string]any{"requirement": "Go"},
		"description":  "should not leak into thin projection",
	}

	thin := ThinVacancyDetail(item)

	if thin.ID != "v1" || thin.Name != "Go Developer" {
		t.Fatalf("unexpected identity fields: %+v", thin)
	}
	if thin.Description != "" {
		t.Fatalf("thin projection must not carry a description")
	}
	if thin.Salary != nil {
		t.Fatalf("expected nil salary, got %v", thin.Salary)
	}
}
