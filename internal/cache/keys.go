package cache

import (
	"fmt"
	"time"
)

// TTL catalog. These values are a design contract with the frontend polling
// behaviour and must not drift.
const (
	TTLDictionaries  = 7 * 24 * time.Hour
	TTLAreas         = 7 * 24 * time.Hour
	TTLResume        = time.Hour
	TTLVacancyFull   = 24 * time.Hour
	TTLVacancyItem   = 10 * time.Minute
	TTLMatchAnalysis = 24 * time.Hour

	TTLRefreshToken = 30 * 24 * time.Hour
)

// Cache keys live in one place so they do not spread through the code.
func ResumeKey(userID string) string            { return "resume:" + userID }
func VacancyFullKey(vacancyID string) string    { return "vacancy:full:" + vacancyID }
func VacancyItemKey(vacancyID string) string    { return "vacancy:item:" + vacancyID }
func DictionariesKey() string                   { return "dictionaries" }
func AreasKey() string                          { return "areas" }
func AccessTokenKey(userID string) string       { return "token:" + userID }
func RefreshTokenKey(userID string) string      { return "refresh_token:" + userID }
func AnalysisKey(userID, vacancyID string) string {
	return fmt.Sprintf("analysis:%s:%s", userID, vacancyID)
}
