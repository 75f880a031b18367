package service_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/headhunter"
)

// fakeCache is an in-memory stand-in for the Redis store. Values go through
// a real JSON round trip and every write records its TTL.
type fakeCache struct {
	mu     sync.Mutex
	values map[string][]byte
	ttls   map[string]time.Duration
	writes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		values: make(map[string][]byte),
		ttls:   make(map[string]time.Duration),
	}
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dest any) bool {
	c.mu.Lock()
	data, ok := c.values[key]
	c.mu.Unlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false
	}
	return true
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.mu.Lock()
	c.values[key] = data
	c.ttls[key] = ttl
	c.writes++
	c.mu.Unlock()
}

func (c *fakeCache) ttl(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ttl, ok := c.ttls[key]
	return ttl, ok
}

func (c *fakeCache) put(key string, raw []byte) {
	c.mu.Lock()
	c.values[key] = raw
	c.mu.Unlock()
}

func (c *fakeCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

type fakeTokens struct {
	mu      sync.Mutex
	access  map[string]string
	refresh map[string]string
	ttls    map[string]time.Duration
	err     error
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{
		access:  make(map[string]string),
		refresh: make(map[string]string),
		ttls:    make(map[string]time.Duration),
	}
}

func (t *fakeTokens) SetAccessToken(_ context.Context, userID, token string, ttl time.Duration) error {
	if t.err != nil {
		return t.err
	}
	t.mu.Lock()
	t.access[userID] = token
	t.ttls[userID] = ttl
	t.mu.Unlock()
	return nil
}

func (t *fakeTokens) SetRefreshToken(_ context.Context, userID, token string) error {
	if t.err != nil {
		return t.err
	}
	t.mu.Lock()
	t.refresh[userID] = token
	t.mu.Unlock()
	return nil
}

func (t *fakeTokens) AccessToken(_ context.Context, userID string) (string, bool, error) {
	if t.err != nil {
		return "", false, t.err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	token, ok := t.access[userID]
	return token, ok, nil
}

func (t *fakeTokens) RefreshToken(_ context.Context, userID string) (string, bool, error) {
	if t.err != nil {
		return "", false, t.err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	token, ok := t.refresh[userID]
	return token, ok, nil
}

// fakeUpstream scripts hh.ru responses and instruments concurrency: it
// tracks how many GetVacancy calls are in flight at once.
type fakeUpstream struct {
	mu sync.Mutex

	resume      map[string]any
	resumeErr   error
	searchPages map[int]*headhunter.SearchResult
	searchErr   error
	vacancies   map[string]domain.Vacancy
	vacancyErrs map[string]error
	applyResp   map[string]any
	applyErr    error
	dicts       map[string]any
	areas       []any

	vacancyDelay  time.Duration
	searchStarted chan int
	blockPage     int
	releaseCh     chan struct{}

	resumeCalls  int32
	searchCalls  int32
	vacancyCalls int32
	applyCalls   int32
	dictCalls    int32
	areaCalls    int32

	inFlight    int32
	maxInFlight int32
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{
		searchPages: make(map[int]*headhunter.SearchResult),
		vacancies:   make(map[string]domain.Vacancy),
		vacancyErrs: make(map[string]error),
	}
}

func (u *fakeUpstream) FetchResume(_ context.Context, _ string) (map[string]any, error) {
	atomic.AddInt32(&u.resumeCalls, 1)
	if u.resumeErr != nil {
		return nil, u.resumeErr
	}
	return u.resume, nil
}

func (u *fakeUpstream) SearchVacancies(_ context.Context, _ string, params *headhunter.SearchParams) (*headhunter.SearchResult, error) {
	atomic.AddInt32(&u.searchCalls, 1)
	if u.searchStarted != nil {
		u.searchStarted <- params.Page
	}
	if u.releaseCh != nil && params.Page == u.blockPage {
		<-u.releaseCh
	}
	if u.searchErr != nil {
		return nil, u.searchErr
	}

	u.mu.Lock()
	page, ok := u.searchPages[params.Page]
	u.mu.Unlock()
	if !ok {
		return &headhunter.SearchResult{Page: params.Page}, nil
	}

	// Deep copy through JSON so normalization does not mutate the script.
	data, _ := json.Marshal(page)
	var result headhunter.SearchResult
	_ = json.Unmarshal(data, &result)
	return &result, nil
}

func (u *fakeUpstream) GetVacancy(_ context.Context, _ string, vacancyID string) (domain.Vacancy, error) {
	atomic.AddInt32(&u.vacancyCalls, 1)

	current := atomic.AddInt32(&u.inFlight, 1)
	for {
		observed := atomic.LoadInt32(&u.maxInFlight)
		if current <= observed || atomic.CompareAndSwapInt32(&u.maxInFlight, observed, current) {
			break
		}
	}
	if u.vacancyDelay > 0 {
		time.Sleep(u.vacancyDelay)
	}
	defer atomic.AddInt32(&u.inFlight, -1)

	u.mu.Lock()
	err := u.vacancyErrs[vacancyID]
	vacancy := u.vacancies[vacancyID]
	u.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if vacancy == nil {
		return nil, &headhunter.UpstreamError{StatusCode: 404, Description: "vacancy not found"}
	}

	data, _ := json.Marshal(vacancy)
	var copied domain.Vacancy
	_ = json.Unmarshal(data, &copied)
	return copied, nil
}

func (u *fakeUpstream) Apply(_ context.Context, _ string, _, _ string) (map[string]any, error) {
	atomic.AddInt32(&u.applyCalls, 1)
	if u.applyErr != nil {
		return nil, u.applyErr
	}
	return u.applyResp, nil
}

func (u *fakeUpstream) Dictionaries(_ context.Context) (map[string]any, error) {
	atomic.AddInt32(&u.dictCalls, 1)
	return u.dicts, nil
}

func (u *fakeUpstream) Areas(_ context.Context) ([]any, error) {
	atomic.AddInt32(&u.areaCalls, 1)
	return u.areas, nil
}

type fakeGenerator struct {
	analysis *domain.MatchAnalysis
	letter   *domain.CoverLetter
	err      error

	analyzeCalls int32
	letterCalls  int32
}

func (g *fakeGenerator) AnalyzeMatch(_ context.Context, _ map[string]any, _ domain.Vacancy) (*domain.MatchAnalysis, error) {
	atomic.AddInt32(&g.analyzeCalls, 1)
	if g.err != nil {
		return nil, g.err
	}
	return g.analysis, nil
}

func (g *fakeGenerator) GenerateCoverLetter(_ context.Context, _ map[string]any, _ domain.Vacancy) (*domain.CoverLetter, error) {
	atomic.AddInt32(&g.letterCalls, 1)
	if g.err != nil {
		return nil, g.err
	}
	return g.letter, nil
}

type fakeApps struct {
	mu      sync.Mutex
	records []*domain.ApplicationRecord
	sent    map[uuid.UUID]time.Time
	err     error
}

func newFakeApps() *fakeApps {
	return &fakeApps{sent: make(map[uuid.UUID]time.Time)}
}

func (a *fakeApps) Create(_ context.Context, record *domain.ApplicationRecord) error {
	if a.err != nil {
		return a.err
	}
	a.mu.Lock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	record.CreatedAt = time.Now()
	a.records = append(a.records, record)
	a.mu.Unlock()
	return nil
}

func (a *fakeApps) MarkSent(_ context.Context, id uuid.UUID) error {
	if a.err != nil {
		return a.err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.sent[id]; !ok {
		a.sent[id] = time.Now()
	}
	return nil
}

func (a *fakeApps) ListByUser(_ context.Context, userID string) ([]*domain.ApplicationRecord, error) {
	if a.err != nil {
		return nil, a.err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []*domain.ApplicationRecord
	for _, r := range a.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
