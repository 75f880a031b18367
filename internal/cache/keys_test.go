package cache

import (
	"testing"
	"time"
)

// The TTL catalog is a contract with the frontend polling behaviour.
func TestTTLCatalog(t *testing.T) {
	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"dictionaries", TTLDictionaries, 7 * 24 * time.Hour},
		{"areas", TTLAreas, 7 * 24 * time.Hour},
		{"resume", TTLResume, time.Hour},
		{"vacancy full", TTLVacancyFull, 24 * time.Hour},
		{"vacancy item", TTLVacancyItem, 10 * time.Minute},
		{"match analysis", TTLMatchAnalysis, 24 * time.Hour},
		{"refresh token", TTLRefreshToken, 30 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestKeyBuilders(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{ResumeKey("u1"), "resume:u1"},
		{VacancyFullKey("v1"), "vacancy:full:v1"},
		{VacancyItemKey("v1"), "vacancy:item:v1"},
		{DictionariesKey(), "dictionaries"},
		{AreasKey(), "areas"},
		{AccessTokenKey("u1"), "token:u1"},
		{RefreshTokenKey("u1"), "refresh_token:u1"},
		{AnalysisKey("u1", "v1"), "analysis:u1:v1"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("expected key %q, got %q", tt.want, tt.got)
		}
	}
}
