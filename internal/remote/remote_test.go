package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSessions struct {
	mu      sync.Mutex
	session *Session
}

func (m *memSessions) LoadSession(context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session, nil
}

func (m *memSessions) SaveSession(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	return nil
}

func (m *memSessions) ClearSession(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func tokenBody(access string, expiresIn int) map[string]any {
	return map[string]any{
		"access_token":  access,
		"refresh_token": "refresh-" + access,
		"expires_in":    expiresIn,
		"user":          map[string]any{"id": "user-1", "email": "jane@example.com"},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *memSessions) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	sessions := &memSessions{}
	return New(&Config{URL: server.URL + "/", AnonKey: "anon"}, sessions), sessions
}

func TestSignIn_PersistsSession(t *testing.T) {
	client, sessions := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		var body credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body.Email)

		writeJSON(w, http.StatusOK, tokenBody("token-1", 3600))
	})

	user, err := client.SignIn(context.Background(), "jane@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "user-1", client.CurrentUser().ID)

	require.NotNil(t, sessions.session)
	assert.Equal(t, "token-1", sessions.session.AccessToken)
	assert.True(t, sessions.session.ExpiresAt.After(time.Now()))
}

func TestSignIn_Error(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":             "invalid_grant",
			"error_description": "Invalid login credentials",
		})
	})

	_, err := client.SignIn(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
	assert.Nil(t, client.CurrentUser())
}

func TestSignUp_WithoutSession(t *testing.T) {
	client, sessions := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"id": "user-2", "email": "new@example.com"})
	})

	user, err := client.SignUp(context.Background(), "new@example.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-2", user.ID)
	assert.Nil(t, client.CurrentUser())
	assert.Nil(t, sessions.session)
}

func TestFetchQuotes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/quotes", r.URL.Path)
		assert.Equal(t, "*,categories(*)", r.URL.Query().Get("select"))
		assert.Equal(t, "created_at.desc", r.URL.Query().Get("order"))
		assert.Equal(t, "Bearer anon", r.Header.Get("Authorization"))

		writeJSON(w, http.StatusOK, []map[string]any{{
			"id":          "q1",
			"text":        "Stay hungry",
			"author":      "Steve Jobs",
			"category_id": "c1",
			"is_featured": true,
			"created_at":  "2024-01-02T03:04:05Z",
			"categories":  map[string]any{"id": "c1", "name": "motivation", "display_name": "Motivation"},
		}})
	})

	quotes, err := client.FetchQuotes(context.Background())
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Steve Jobs", quotes[0].Author)
	assert.True(t, quotes[0].IsFeatured)
	require.NotNil(t, quotes[0].Category)
	assert.Equal(t, "Motivation", quotes[0].Category.DisplayName)
	require.NotNil(t, quotes[0].CreatedAt)
	assert.Equal(t, 2024, quotes[0].CreatedAt.Year())
}

func TestFetchQuoteOfDay_Missing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.2024-05-01", r.URL.Query().Get("display_date"))
		writeJSON(w, http.StatusOK, []any{})
	})

	qod, err := client.FetchQuoteOfDay(context.Background(), "2024-05-01")
	require.NoError(t, err)
	assert.Nil(t, qod)
}

func TestDeleteFavorite_Filters(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))
		assert.Equal(t, "eq.q1", r.URL.Query().Get("quote_id"))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteFavorite(context.Background(), "user-1", "q1"))
}

func TestInsertRow_Error(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		writeJSON(w, http.StatusConflict, map[string]string{"message": "duplicate key"})
	})

	err := client.InsertFavorite(context.Background(), FavoriteInsert{UserID: "u", QuoteID: "q"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "duplicate key", apiErr.Message)
}

func TestExpiredSessionIsRefreshed(t *testing.T) {
	var refreshed bool
	client, sessions := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
			refreshed = true
			writeJSON(w, http.StatusOK, tokenBody("token-2", 3600))
		case "/rest/v1/categories":
			assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, []any{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	sessions.session = &Session{
		AccessToken:  "token-1",
		RefreshToken: "refresh-token-1",
		ExpiresAt:    time.Now().Add(-time.Minute),
		User:         AuthUser{ID: "user-1"},
	}
	require.NoError(t, client.RestoreSession(context.Background()))
	assert.True(t, refreshed)
	assert.Equal(t, "token-2", sessions.session.AccessToken)

	_, err := client.FetchCategories(context.Background())
	require.NoError(t, err)
}

func TestUploadAvatar(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/storage/v1/object/avatars/avatars/user-1/a.jpg", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
		data, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3}, data)
		writeJSON(w, http.StatusOK, map[string]string{"Key": "avatars/avatars/user-1/a.jpg"})
	})

	require.NoError(t, client.UploadAvatar(context.Background(), "avatars/user-1/a.jpg", []byte{1, 2, 3}, "image/jpeg"))
	assert.Equal(t, client.cfg.URL+"storage/v1/object/public/avatars/avatars/user-1/a.jpg",
		client.AvatarURL("avatars/user-1/a.jpg"))
}

func TestWatchSession(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			writeJSON(w, http.StatusOK, tokenBody("token-1", 3600))
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	statuses := client.WatchSession(ctx)

	assert.False(t, (<-statuses).Authenticated)

	_, err := client.SignIn(ctx, "jane@example.com", "secret")
	require.NoError(t, err)
	st := <-statuses
	assert.True(t, st.Authenticated)
	assert.Equal(t, "user-1", st.User.ID)

	require.NoError(t, client.SignOut(ctx))
	assert.False(t, (<-statuses).Authenticated)
}
