package api

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/engine"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/remote/mock"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type envelope struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
	Data    json.RawMessage   `json:"data"`
}

type APITestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc

	db     *database.Client
	store  *mock.MockStore
	engine *engine.Engine
	server *Server
}

func (s *APITestSuite) SetupTest() {
	db, err := database.New(filepath.Join(s.T().TempDir(), "quotevault.db"))
	s.Require().NoError(err)
	s.db = db
	s.store = mock.NewMockStore()
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 10*time.Second)

	cfg := &config.Config{
		Listen:   "127.0.0.1:0",
		Timezone: "UTC",
		PageSize: 20,
		Cache:    &config.CacheConfig{Type: config.CacheTypeMemory, QuoteOfDayTTL: time.Hour},
	}
	s.engine, err = engine.New(cfg, db, s.store)
	s.Require().NoError(err)
	s.server, err = New(cfg, s.engine)
	s.Require().NoError(err)

	s.store.SetCategories(remote.CategoryDTO{ID: "cat-1", Name: "wisdom", DisplayName: "Wisdom"})
	s.store.SetQuotes(
		remote.QuoteDTO{ID: "q1", Text: "Know thyself", Author: "Socrates", CategoryID: lo.ToPtr("cat-1"), CreatedAt: lo.ToPtr(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))},
		remote.QuoteDTO{ID: "q2", Text: "Carpe diem", Author: "Horace", CreatedAt: lo.ToPtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
	)
	s.Require().NoError(s.engine.Refresh(s.ctx))
}

func (s *APITestSuite) TearDownTest() {
	s.cancel()
	s.NoError(s.engine.Close())
	s.NoError(s.db.Close())
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) do(method, path, body string) (int, envelope) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)

	var env envelope
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func (s *APITestSuite) login() {
	s.store.Login(remote.AuthUser{ID: "user-1", Email: "ada@example.com"})
}

type quotePage struct {
	Items []struct {
		ID         string `json:"id"`
		IsFavorite bool   `json:"isFavorite"`
	} `json:"items"`
	HasMore bool `json:"hasMore"`
}

func (s *APITestSuite) TestListQuotes() {
	code, env := s.do(http.MethodGet, "/api/quotes?pageSize=1", "")
	s.Require().Equal(http.StatusOK, code)
	s.True(env.Success)

	var page quotePage
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Require().Len(page.Items, 1)
	s.Equal("q1", page.Items[0].ID)
	s.True(page.HasMore)

	code, env = s.do(http.MethodGet, "/api/quotes?category=cat-1", "")
	s.Require().Equal(http.StatusOK, code)
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Len(page.Items, 1)

	code, env = s.do(http.MethodGet, "/api/quotes?page=-1", "")
	s.Equal(http.StatusBadRequest, code)
	s.False(env.Success)
}

func (s *APITestSuite) TestPaginationBounds() {
	for _, path := range []string{
		"/api/quotes?pageSize=0",
		"/api/quotes?pageSize=101",
		"/api/quotes?pageSize=4294967295",
		"/api/quotes?page=4294967296",
	} {
		code, env := s.do(http.MethodGet, path, "")
		s.Equal(http.StatusBadRequest, code, path)
		s.False(env.Success, path)
	}

	code, env := s.do(http.MethodGet, "/api/quotes?page=4294967295&pageSize=100", "")
	s.Require().Equal(http.StatusOK, code)
	var page quotePage
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Empty(page.Items)
	s.False(page.HasMore)
}

func (s *APITestSuite) TestReadsFailWithClosedDatabase() {
	s.login()
	s.Require().NoError(s.db.Close())

	for _, path := range []string{
		"/api/categories",
		"/api/collections",
		"/api/quotes/search?q=carpe",
		"/api/authors/Horace/quotes",
	} {
		code, env := s.do(http.MethodGet, path, "")
		s.Equal(http.StatusInternalServerError, code, path)
		s.False(env.Success, path)
		s.Contains(env.Error, "database is closed", path)
	}
}

func (s *APITestSuite) TestQuoteReads() {
	code, _ := s.do(http.MethodGet, "/api/quotes/q2", "")
	s.Equal(http.StatusOK, code)

	code, env := s.do(http.MethodGet, "/api/quotes/missing", "")
	s.Equal(http.StatusNotFound, code)
	s.Equal(engine.ErrQuoteNotFound.Error(), env.Error)

	code, env = s.do(http.MethodGet, "/api/quotes/search?q=carpe", "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), "Horace")
	s.NotContains(string(env.Data), "Socrates")

	code, _ = s.do(http.MethodGet, "/api/quotes/search", "")
	s.Equal(http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/quote-of-day", "")
	s.Equal(http.StatusOK, code)
	s.True(env.Success)

	code, env = s.do(http.MethodGet, "/api/categories", "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), `"quoteCount":1`)
}

func (s *APITestSuite) TestFavorites() {
	code, env := s.do(http.MethodPost, "/api/favorites/q1/toggle", "")
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("not logged in", env.Error)

	s.login()
	code, _ = s.do(http.MethodPost, "/api/favorites/q1/toggle", "")
	s.Require().Equal(http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/favorites", "")
	s.Require().Equal(http.StatusOK, code)
	var page quotePage
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Require().Len(page.Items, 1)
	s.True(page.Items[0].IsFavorite)
}

func (s *APITestSuite) TestCollections() {
	s.login()

	code, env := s.do(http.MethodPost, "/api/collections", `{"name":"","coverColor":"blue"}`)
	s.Require().Equal(http.StatusBadRequest, code)
	s.Equal("is required", env.Fields["name"])
	s.Equal("must be a hex color", env.Fields["coverColor"])

	code, env = s.do(http.MethodPost, "/api/collections", `{"name":"Stoics"}`)
	s.Require().Equal(http.StatusCreated, code)
	var created struct {
		ID         string `json:"id"`
		CoverColor string `json:"coverColor"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.Equal("#6366F1", created.CoverColor)

	base := "/api/collections/" + created.ID
	code, _ = s.do(http.MethodPost, base+"/quotes/q1", "")
	s.Require().Equal(http.StatusOK, code)

	code, env = s.do(http.MethodGet, base, "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), `"quoteCount":1`)

	code, env = s.do(http.MethodPut, base, `{"name":"Stoicism","coverColor":"#112233"}`)
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), "Stoicism")

	code, env = s.do(http.MethodGet, base+"/quotes", "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), "q1")

	code, _ = s.do(http.MethodDelete, base, "")
	s.Require().Equal(http.StatusOK, code)

	code, _ = s.do(http.MethodGet, base, "")
	s.Equal(http.StatusNotFound, code)
	code, _ = s.do(http.MethodPut, base, `{"name":"x"}`)
	s.Equal(http.StatusNotFound, code)
}

func (s *APITestSuite) TestSettings() {
	code, env := s.do(http.MethodPut, "/api/settings", `{"themeMode":"dark","accentColor":"green","fontSize":"large","notificationEnabled":false,"notificationTime":"23:59"}`)
	s.Require().Equal(http.StatusOK, code)
	s.True(env.Success)

	code, env = s.do(http.MethodGet, "/api/settings", "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), `"notificationTime":"23:59"`)
	s.Contains(string(env.Data), `"themeMode":"dark"`)

	code, env = s.do(http.MethodPut, "/api/settings", `{"themeMode":"neon","accentColor":"green","fontSize":"large","notificationTime":"25:00"}`)
	s.Require().Equal(http.StatusBadRequest, code)
	s.Contains(env.Fields, "themeMode")
	s.Contains(env.Fields, "notificationTime")
}

func (s *APITestSuite) TestSystem() {
	code, _ := s.do(http.MethodGet, "/api/me", "")
	s.Equal(http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/sync", "")
	s.Equal(http.StatusUnauthorized, code)

	s.login()
	code, env := s.do(http.MethodGet, "/api/me", "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), "ada@example.com")

	code, _ = s.do(http.MethodPost, "/api/sync", "")
	s.Equal(http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/api/daily", "")
	s.Equal(http.StatusServiceUnavailable, code)

	code, env = s.do(http.MethodGet, "/api/links?url=quotevault://quote/q1", "")
	s.Require().Equal(http.StatusOK, code)
	s.Contains(string(env.Data), "Socrates")

	code, _ = s.do(http.MethodGet, "/api/links?url=ftp://nope", "")
	s.Equal(http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/quotes/q1/share", "")
	s.Require().Equal(http.StatusOK, code)
	s.Equal("\"Know thyself\"\n\n- Socrates\n\nShared via QuoteVault", env.Message)

	code, env = s.do(http.MethodPost, "/api/quotes/q1/share", `{"channels":["fax"]}`)
	s.Equal(http.StatusBadRequest, code)
	s.Contains(env.Fields, "channels[0]")

	code, _ = s.do(http.MethodPost, "/api/jobs/unknown/run", "")
	s.Equal(http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/push/vapid-key", "")
	s.Equal(http.StatusServiceUnavailable, code)
}

func (s *APITestSuite) TestStatus() {
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	s.Require().Equal(http.StatusOK, rec.Code)

	var status struct {
		Success bool `json:"success"`
		Jobs    []struct {
			ID string `json:"id"`
		} `json:"jobs"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &status))
	s.True(status.Success)
	s.Len(status.Jobs, 3)
}

func TestStreamQuotes(t *testing.T) {
	db, err := database.New(filepath.Join(t.TempDir(), "quotevault.db"))
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	store := mock.NewMockStore()
	store.SetQuotes(remote.QuoteDTO{ID: "q1", Text: "Know thyself", Author: "Socrates"})

	cfg := &config.Config{PageSize: 20, Cache: &config.CacheConfig{Type: config.CacheTypeMemory}}
	e, err := engine.New(cfg, db, store)
	require.NoError(t, err)
	defer e.Close() //nolint:errcheck
	require.NoError(t, e.Refresh(context.Background()))

	s, err := New(cfg, e)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+streamPath, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	var lines []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		lines = append(lines, line)
		if strings.HasPrefix(line, "data:") {
			break
		}
	}
	require.NotEmpty(t, lines)
	assert.Contains(t, lines, "event:quotes")
	assert.Contains(t, lines[len(lines)-1], `"id":"q1"`)
}
