// FoodAware - Context-Aware Food Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodaware

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodaware/internal/models"
	"github.com/tomtom215/foodaware/internal/mood"
	"github.com/tomtom215/foodaware/internal/places"
	"github.com/tomtom215/foodaware/internal/recommend"
	"github.com/tomtom215/foodaware/internal/weather"
)

// mockStore is an in-memory Store.
type mockStore struct {
	mu      sync.Mutex
	users   []models.User
	foods   []models.FoodItem
	orders  []models.Order
	pingErr error
	listErr error
	insErr  error

	popular   []models.PopularFood
	crosstab  map[string][]models.CategoryCount
	lastLimit int
	statsErr  error
}

func (m *mockStore) LookupUser(_ context.Context, id string) (models.User, bool, error) {
	if m.listErr != nil {
		return models.User{}, false, m.listErr
	}
	for _, u := range m.users {
		if u.UserID == id {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}

func (m *mockStore) ListFoods(context.Context) ([]models.FoodItem, error) {
	return m.foods, m.listErr
}

func (m *mockStore) ListOrders(context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Order(nil), m.orders...), nil
}

func (m *mockStore) ListUsers(context.Context) ([]models.User, error) {
	return m.users, m.listErr
}

func (m *mockStore) InsertOrder(_ context.Context, o *models.Order) error {
	if m.insErr != nil {
		return m.insErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockStore) PopularFoods(_ context.Context, limit int) ([]models.PopularFood, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastLimit = limit
	return m.popular, m.statsErr
}

func (m *mockStore) CategoryCrosstab(_ context.Context, dimension string) ([]models.CategoryCount, error) {
	return m.crosstab[dimension], m.statsErr
}

func (m *mockStore) Ping(context.Context) error { return m.pingErr }
func (m *mockStore) Driver() string             { return "mock" }

// mockEngine records the last request it served.
type mockEngine struct {
	mu   sync.Mutex
	last recommend.Request
}

func (m *mockEngine) Recommend(_ context.Context, req recommend.Request) *recommend.Response {
	m.mu.Lock()
	m.last = req
	m.mu.Unlock()
	items := []models.Recommendation{}
	for i := 0; i < req.N && i < 2; i++ {
		items = append(items, models.Recommendation{FoodID: []string{"f1", "f2"}[i], Name: "Dish", Score: 0.5})
	}
	return &recommend.Response{Items: items, Metadata: recommend.ResponseMetadata{UserID: req.UserID, Strategy: "weighted_merge"}}
}

func (m *mockEngine) RecommendFilter(_ context.Context, name string, req recommend.Request) (recommend.FilterResult, error) {
	m.mu.Lock()
	m.last = req
	m.mu.Unlock()
	switch name {
	case recommend.FilterCollaborative, recommend.FilterContent, recommend.FilterContext:
		return recommend.FilterResult{Candidates: []recommend.Candidate{{FoodID: "f1"}}, Strategy: "primary"}, nil
	}
	return recommend.FilterResult{}, recommend.ErrUnknownFilter
}

func (m *mockEngine) lastRequest() recommend.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

type mockDetector struct {
	mood mood.Mood
	err  error
}

func (m *mockDetector) Detect(context.Context, string) (mood.Mood, error) { return m.mood, m.err }

type mockWeather struct {
	report weather.Report
	err    error
}

func (m *mockWeather) Current(_ context.Context, city string) (weather.Report, error) {
	if m.err != nil {
		return weather.Report{}, m.err
	}
	r := m.report
	r.City = city
	return r, nil
}

type mockPlaces struct {
	results []places.Restaurant
}

func (m *mockPlaces) Nearby(context.Context, string, string) []places.Restaurant { return m.results }

type mockPublisher struct {
	mu        sync.Mutex
	published []models.Order
	err       error
}

func (m *mockPublisher) PublishOrder(_ context.Context, o *models.Order) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, *o)
	return nil
}

// envelope decodes an APIResponse while keeping Data raw.
type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid JSON response %q: %v", rec.Body.String(), err)
	}
	return env
}

func testDeps() *Deps {
	return &Deps{
		Store: &mockStore{
			users: []models.User{{UserID: "u1", Name: "Ada", CuisinePreferences: []string{"Italian"}}},
			foods: []models.FoodItem{{FoodID: "f1", Name: "Tiramisu", Category: "Dessert"}},
		},
		Engine:   &mockEngine{},
		Mood:     &mockDetector{mood: mood.Happy},
		Weather:  &mockWeather{report: weather.Report{Condition: weather.Sunny, TempC: 24.5, Source: weather.SourceRandom}},
		Places:   &mockPlaces{},
		DefaultN: 10,
		Version:  "test",
	}
}

// newTestServer routes through the real chi router with rate limiting off.
func newTestServer(t *testing.T, deps *Deps) http.Handler {
	t.Helper()
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitDisabled = true
	return NewRouter(NewHandler(deps), NewChiMiddleware(cfg)).SetupChi()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, testDeps()), http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Status != "success" || env.Metadata.RequestID == "" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pingErr    error
		checks     map[string]HealthCheck
		wantStatus int
		wantHealth string
	}{
		{"healthy", nil, nil, http.StatusOK, "healthy"},
		{"store down", errors.New("connection refused"), nil, http.StatusServiceUnavailable, "degraded"},
		{"nats down", nil, map[string]HealthCheck{
			"nats": func(context.Context) error { return errors.New("no jetstream") },
		}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := testDeps()
			deps.Store.(*mockStore).pingErr = tt.pingErr
			deps.Checks = tt.checks

			rec := do(t, newTestServer(t, deps), http.MethodGet, "/api/v1/health/ready", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var health models.HealthStatus
			if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &health); err != nil {
				t.Fatalf("decode health: %v", err)
			}
			if health.Status != tt.wantHealth {
				t.Errorf("health = %s, want %s", health.Status, tt.wantHealth)
			}
			if health.Store != "mock" || health.Version != "test" {
				t.Errorf("health = %+v", health)
			}
			if _, ok := health.Checks["store"]; !ok {
				t.Error("store check missing")
			}
		})
	}
}

func TestRecommendations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantN      int
		wantCode   string
	}{
		{"defaults n", "?user_id=u1&weather=Sunny&mood=Happy", http.StatusOK, 10, ""},
		{"explicit n", "?user_id=u1&n=1", http.StatusOK, 1, ""},
		{"zero n", "?user_id=u1&n=0", http.StatusOK, 0, ""},
		{"unknown user still ok", "?user_id=ghost&weather=Foggy", http.StatusOK, 10, ""},
		{"missing user", "?n=5", http.StatusBadRequest, 0, ErrCodeValidation},
		{"n not integer", "?user_id=u1&n=ten", http.StatusBadRequest, 0, ErrCodeValidation},
		{"n too large", "?user_id=u1&n=101", http.StatusBadRequest, 0, ErrCodeValidation},
		{"n negative", "?user_id=u1&n=-1", http.StatusBadRequest, 0, ErrCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := testDeps()
			engine := deps.Engine.(*mockEngine)

			rec := do(t, newTestServer(t, deps), http.MethodGet, "/api/v1/recommendations"+tt.query, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			env := decodeEnvelope(t, rec)
			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
				}
				return
			}

			if got := engine.lastRequest().N; got != tt.wantN {
				t.Errorf("engine N = %d, want %d", got, tt.wantN)
			}
			if engine.lastRequest().RequestID == "" {
				t.Error("request ID not propagated to engine")
			}
			var resp recommend.Response
			if err := json.Unmarshal(env.Data, &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(resp.Items) > tt.wantN {
				t.Errorf("items = %d, exceeds n = %d", len(resp.Items), tt.wantN)
			}
		})
	}
}

func TestFilterRecommendations(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, testDeps())

	rec := do(t, h, http.MethodGet, "/api/v1/recommendations/content?user_id=u1&n=3", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var fr struct {
		Filter   string                `json:"filter"`
		Strategy string                `json:"strategy"`
		Items    []recommend.Candidate `json:"items"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &fr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fr.Filter != "content" || fr.Strategy != "primary" || len(fr.Items) != 1 {
		t.Errorf("filter response = %+v", fr)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/recommendations/magic?user_id=u1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown filter status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestDetectMood(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		detector   *mockDetector
		wantStatus int
		wantMood   string
		wantCode   string
	}{
		{"detected", `{"text":"I feel great"}`, &mockDetector{mood: mood.Happy}, http.StatusOK, "Happy", ""},
		{"blank text", `{"text":"   "}`, &mockDetector{mood: mood.Happy}, http.StatusBadRequest, "", ErrCodeValidation},
		{"invalid json", `{"text":`, &mockDetector{mood: mood.Happy}, http.StatusBadRequest, "", ErrCodeInvalidJSON},
		{"detector failure", `{"text":"hmm"}`, &mockDetector{err: errors.New("quota")}, http.StatusBadGateway, "", ErrCodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := testDeps()
			deps.Mood = tt.detector

			rec := do(t, newTestServer(t, deps), http.MethodPost, "/api/v1/mood", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			env := decodeEnvelope(t, rec)
			if tt.wantCode != "" {
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
				}
				return
			}
			var mr MoodResponse
			if err := json.Unmarshal(env.Data, &mr); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if mr.Mood != tt.wantMood {
				t.Errorf("mood = %s, want %s", mr.Mood, tt.wantMood)
			}
		})
	}
}

func TestDetectMood_BodyTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"text":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	rec := do(t, newTestServer(t, testDeps()), http.MethodPost, "/api/v1/mood", body)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestWeather(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, testDeps())
	rec := do(t, h, http.MethodGet, "/api/v1/weather?city=Paris", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var report weather.Report
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.City != "Paris" || report.Condition != weather.Sunny {
		t.Errorf("report = %+v", report)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/weather", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing city status = %d", rec.Code)
	}

	deps := testDeps()
	deps.Weather = &mockWeather{err: errors.New("timeout")}
	rec = do(t, newTestServer(t, deps), http.MethodGet, "/api/v1/weather?city=Paris", "")
	if rec.Code != http.StatusBadGateway {
		t.Errorf("upstream failure status = %d", rec.Code)
	}
}

func TestRestaurants(t *testing.T) {
	t.Parallel()

	deps := testDeps()
	h := newTestServer(t, deps)

	rec := do(t, h, http.MethodGet, "/api/v1/restaurants?location=40.7,-74.0&keyword=Thai", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := string(decodeEnvelope(t, rec).Data); got != "[]" {
		t.Errorf("data = %s, want []", got)
	}

	rating := 4.5
	deps2 := testDeps()
	deps2.Places = &mockPlaces{results: []places.Restaurant{{Name: "Thai Place", Address: "1 Main St", Rating: &rating}}}
	rec = do(t, newTestServer(t, deps2), http.MethodGet, "/api/v1/restaurants?location=40.7,-74.0", "")
	var got []places.Restaurant
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Thai Place" {
		t.Errorf("restaurants = %+v", got)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/restaurants", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing location status = %d", rec.Code)
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, testDeps())

	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"list users", "/api/v1/users", http.StatusOK},
		{"known user", "/api/v1/users/u1", http.StatusOK},
		{"unknown user", "/api/v1/users/ghost", http.StatusNotFound},
		{"list foods", "/api/v1/foods", http.StatusOK},
		{"unknown route", "/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := do(t, h, http.MethodGet, tt.target, "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			decodeEnvelope(t, rec)
		})
	}

	deps := testDeps()
	deps.Store.(*mockStore).listErr = errors.New("disk I/O error")
	rec := do(t, newTestServer(t, deps), http.MethodGet, "/api/v1/foods", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("store failure status = %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error.Code != ErrCodeDatabase || strings.Contains(env.Error.Message, "disk") {
		t.Errorf("error = %+v", env.Error)
	}
}

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	t.Run("direct write", func(t *testing.T) {
		t.Parallel()
		deps := testDeps()
		store := deps.Store.(*mockStore)

		rec := do(t, newTestServer(t, deps), http.MethodPost, "/api/v1/orders",
			`{"user_id":"u1","food_id":"f1","mood":"Happy","weather":"Sunny","rating":5}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
		}
		orders, _ := store.ListOrders(context.Background())
		if len(orders) != 1 || orders[0].OrderID == "" || *orders[0].Rating != 5 {
			t.Errorf("stored = %+v", orders)
		}
	})

	t.Run("published", func(t *testing.T) {
		t.Parallel()
		deps := testDeps()
		pub := &mockPublisher{}
		deps.Publisher = pub

		rec := do(t, newTestServer(t, deps), http.MethodPost, "/api/v1/orders", `{"user_id":"u1","food_id":"f1"}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("status = %d", rec.Code)
		}
		if len(pub.published) != 1 || pub.published[0].Timestamp.IsZero() {
			t.Errorf("published = %+v", pub.published)
		}
		if orders, _ := deps.Store.ListOrders(context.Background()); len(orders) != 0 {
			t.Error("published order should not be written directly")
		}
	})

	tests := []struct {
		name       string
		body       string
		pubErr     error
		storeErr   error
		wantStatus int
	}{
		{"missing food", `{"user_id":"u1"}`, nil, nil, http.StatusBadRequest},
		{"rating out of range", `{"user_id":"u1","food_id":"f1","rating":6}`, nil, nil, http.StatusBadRequest},
		{"publish failure", `{"user_id":"u1","food_id":"f1"}`, errors.New("nats down"), nil, http.StatusServiceUnavailable},
		{"store failure", `{"user_id":"u1","food_id":"f1"}`, nil, errors.New("locked"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deps := testDeps()
			if tt.pubErr != nil {
				deps.Publisher = &mockPublisher{err: tt.pubErr}
			}
			deps.Store.(*mockStore).insErr = tt.storeErr

			rec := do(t, newTestServer(t, deps), http.MethodPost, "/api/v1/orders", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestChat_NoHub(t *testing.T) {
	t.Parallel()

	rec := do(t, newTestServer(t, testDeps()), http.MethodGet, "/api/v1/chat/ws", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"héllo", "héllo"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
