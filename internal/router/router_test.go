package router

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/artwork-marketplace/internal/infrastructure/memory"
	"github.com/oksasatya/artwork-marketplace/internal/interface/middleware"
	"github.com/oksasatya/artwork-marketplace/pkg/helpers"
	"github.com/oksasatya/artwork-marketplace/pkg/validation"
)

type envelope struct {
	Status    int             `json:"status"`
	RequestID string          `json:"request_id"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Error     *struct {
		Kind    string            `json:"kind"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type server struct {
	t       *testing.T
	engine  *gin.Engine
	cookies []*http.Cookie
}

func newServer(t *testing.T, prefix string) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	store := memory.NewStore()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	reg := NewRegistry(engine, prefix)
	Mount(reg, Deps{
		Users:        store.Users(),
		Artworks:     store.Artworks(),
		Reviews:      store.Reviews(),
		Sessions:     memory.NewSessionStore(),
		Hasher:       helpers.NewBcryptHasher(bcrypt.MinCost),
		Cookies:      helpers.NewCookie("session", "", false, time.Hour),
		Logger:       logger,
		DebugMetrics: true,
	})
	reg.RegisterAll()
	return &server{t: t, engine: engine}
}

func (s *server) do(method, path, body string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req)
}

func (s *server) send(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), gin.MIMEJSON) {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func (s *server) register(name, email string, artist bool) int64 {
	s.t.Helper()
	body, _ := json.Marshal(map[string]any{"name": name, "email": email, "password": "secret", "is_artist": artist})
	w, env := s.do(http.MethodPost, "/register", string(body))
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[struct {
		ID int64 `json:"id"`
	}](s.t, env.Data).ID
}

func TestRegisterScenario(t *testing.T) {
	s := newServer(t, "")
	body := `{"name":"Ada","email":"ada@x.com","password":"secret"}`

	w, env := s.do(http.MethodPost, "/register", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "User registered successfully", env.Message)
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, w.Header().Get(middleware.RequestIDHeader), env.RequestID)

	w, env = s.do(http.MethodPost, "/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "User already exists", env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE", env.Error.Kind)
}

func TestRegisterValidation(t *testing.T) {
	s := newServer(t, "")

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantMsg     string
		wantKind    string
	}{
		{"missing password", "application/json", `{"name":"Ada","email":"ada@x.com"}`, http.StatusBadRequest, "Missing required field: password", "VALIDATION"},
		{"missing name reported first", "application/json", `{"email":"ada@x.com"}`, http.StatusBadRequest, "Missing required field: name", "VALIDATION"},
		{"form encoded", "application/x-www-form-urlencoded", `name=Ada`, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "UNSUPPORTED_MEDIA_TYPE"},
		{"no content type", "", `{"name":"Ada"}`, http.StatusUnsupportedMediaType, "Content-Type must be application/json", "UNSUPPORTED_MEDIA_TYPE"},
		{"array body", "application/json", `["Ada"]`, http.StatusBadRequest, "Request body must be a JSON object", "VALIDATION"},
		{"empty name", "application/json", `{"name":"","email":"ada@x.com","password":"pw"}`, http.StatusBadRequest, "Field name cannot be empty", "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w, env := s.send(req)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, env.Message)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantKind, env.Error.Kind)
		})
	}

	w, _ := s.do(http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusNotFound, w.Code, "rejected registrations must not create users")
}

func TestRegisterAcceptsAnyPassword(t *testing.T) {
	s := newServer(t, "")
	long := strings.Repeat("x", 100)

	for email, password := range map[string]string{"long@x.com": long, "empty@x.com": ""} {
		body, err := json.Marshal(map[string]string{"name": "Ada", "email": email, "password": password})
		require.NoError(t, err)
		w, env := s.do(http.MethodPost, "/register", string(body))
		require.Equal(t, http.StatusCreated, w.Code, env.Message)

		body, err = json.Marshal(map[string]string{"email": email, "password": password})
		require.NoError(t, err)
		w, env = s.do(http.MethodPost, "/login", string(body))
		assert.Equal(t, http.StatusOK, w.Code, env.Message)
	}

	w, env := s.do(http.MethodPost, "/login", `{"email":"long@x.com","password":"`+long[:72]+`"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", env.Message)
}

func TestContentTypeCheckedBeforeLookup(t *testing.T) {
	s := newServer(t, "")
	req := httptest.NewRequest(http.MethodPut, "/users/999", strings.NewReader(`name=Ada`))
	req.Header.Set("Content-Type", "text/plain")
	w, env := s.send(req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", env.Error.Kind)

	w, _ = s.do(http.MethodPut, "/users/999", `{"name":"Ada"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterInfo(t *testing.T) {
	s := newServer(t, "")
	w, env := s.do(http.MethodGet, "/register", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Send a POST request to register a user.", env.Message)
	assert.Contains(t, string(env.Data), `"example_request"`)
}

func TestLoginAndIndex(t *testing.T) {
	s := newServer(t, "")
	s.register("Ada", "ada@x.com", false)

	_, env := s.do(http.MethodGet, "/", "")
	assert.Equal(t, "You are not logged in", env.Message)

	w, env := s.do(http.MethodPost, "/login", `{"email":"ada@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid email or password", env.Message)
	assert.Equal(t, "AUTHENTICATION", env.Error.Kind)
	assert.Empty(t, w.Result().Cookies())

	w, unknown := s.do(http.MethodPost, "/login", `{"email":"ghost@x.com","password":"secret"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, env.Message, unknown.Message)

	w, env = s.do(http.MethodPost, "/login", `{"email":"ada@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: password", env.Message)

	w, env = s.do(http.MethodPost, "/login", `{"email":"ada@x.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Login successful", env.Message)
	user := decode[struct {
		User map[string]any `json:"user"`
	}](t, env.Data).User
	assert.Equal(t, "Ada", user["name"])
	assert.NotContains(t, user, "password")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	s.cookies = cookies

	_, env = s.do(http.MethodGet, "/", "")
	assert.Equal(t, "Logged in as Ada", env.Message)
}

func TestUsersScenario(t *testing.T) {
	s := newServer(t, "")

	w, env := s.do(http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No users found.", env.Message)

	w, env = s.do(http.MethodGet, "/reviews", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	id := s.register("Ada", "ada@x.com", false)
	s.register("Bob", "bob@x.com", true)

	w, env = s.do(http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]map[string]any](t, env.Data)
	require.Len(t, users, 2)
	assert.Equal(t, "Ada", users[0]["name"])
	assert.NotContains(t, w.Body.String(), "password")

	w, env = s.do(http.MethodGet, "/users/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User 999 not found.", env.Message)

	w, env = s.do(http.MethodGet, "/users/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User abc not found.", env.Message)

	w, env = s.do(http.MethodPut, "/users/"+itoa(id), `{"is_artist":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User updated successfully", env.Message)
	got := decode[map[string]any](t, env.Data)
	assert.Equal(t, true, got["is_artist"])
	assert.Equal(t, "ada@x.com", got["email"])

	w, env = s.do(http.MethodPut, "/users/"+itoa(id), `{"email":"bob@x.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE", env.Error.Kind)

	w, _ = s.do(http.MethodPut, "/users/999", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodDelete, "/users/"+itoa(id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "User deleted successfully", env.Message)

	w, _ = s.do(http.MethodDelete, "/users/"+itoa(id), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArtworksAndReviewsScenario(t *testing.T) {
	s := newServer(t, "")
	artist := s.register("Ada", "ada@x.com", true)
	critic := s.register("Bob", "bob@x.com", false)

	w, env := s.do(http.MethodGet, "/artworks", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No artworks found.", env.Message)

	w, env = s.do(http.MethodPost, "/artworks", `{"title":"Ghost","description":"x","price":1,"artist_id":999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Artist 999 not found.", env.Message)
	assert.Equal(t, "REFERENCE", env.Error.Kind)

	w, env = s.do(http.MethodPost, "/artworks", `{"title":"Sunrise","description":"oil","artist_id":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: price", env.Message)

	w, env = s.do(http.MethodPost, "/artworks", `{"title":"Sunrise","description":"oil on canvas","price":0,"artist_id":`+itoa(artist)+`}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Artwork created successfully", env.Message)
	artwork := decode[map[string]any](t, env.Data)
	artworkID := int64(artwork["id"].(float64))
	assert.Equal(t, "Sunrise", artwork["title"])
	assert.EqualValues(t, 0, artwork["price"])
	assert.EqualValues(t, artist, artwork["artist_id"])

	w, env = s.do(http.MethodGet, "/artworks/"+itoa(artworkID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":`+itoa(artworkID)+`,"title":"Sunrise","description":"oil on canvas","price":0,"artist_id":`+itoa(artist)+`}`, string(env.Data))

	w, env = s.do(http.MethodPut, "/artworks/"+itoa(artworkID), `{"price":42.5,"artist_id":999}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]any](t, env.Data)
	assert.EqualValues(t, 42.5, updated["price"])
	assert.EqualValues(t, artist, updated["artist_id"], "artist_id is not updatable")

	w, env = s.do(http.MethodGet, "/artworks/search?q=CANVAS", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, env = s.do(http.MethodGet, "/artworks/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: q", env.Message)

	w, env = s.do(http.MethodPost, "/reviews", `{"content":"lovely","user_id":`+itoa(critic)+`,"artwork_id":`+itoa(artworkID)+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required field: rating", env.Message)
	assert.Equal(t, "is required", env.Error.Details["rating"])

	w, env = s.do(http.MethodPost, "/reviews", `{"content":"lovely","rating":5,"user_id":`+itoa(critic)+`,"artwork_id":999}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Artwork 999 not found.", env.Message)

	w, env = s.do(http.MethodPost, "/reviews", `{"content":"lovely","rating":5,"user_id":`+itoa(critic)+`,"artwork_id":`+itoa(artworkID)+`}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Review created successfully", env.Message)
	reviewID := int64(decode[map[string]any](t, env.Data)["id"].(float64))

	for _, p := range []string{"/artworks/" + itoa(artworkID) + "/reviews", "/users/" + itoa(critic) + "/reviews", "/reviews"} {
		w, env = s.do(http.MethodGet, p, "")
		require.Equal(t, http.StatusOK, w.Code, p)
		assert.Len(t, decode[[]map[string]any](t, env.Data), 1, p)
	}
	w, env = s.do(http.MethodGet, "/users/"+itoa(artist)+"/artworks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, env.Data), 1)

	w, env = s.do(http.MethodPut, "/reviews/"+itoa(reviewID), `{"rating":-2}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Review updated successfully", env.Message)
	assert.EqualValues(t, -2, decode[map[string]any](t, env.Data)["rating"])

	w, _ = s.do(http.MethodPut, "/reviews/"+itoa(reviewID), `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Deleting the artist leaves the artwork and review readable.
	w, _ = s.do(http.MethodDelete, "/users/"+itoa(artist), "")
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(http.MethodGet, "/artworks/"+itoa(artworkID), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodDelete, "/reviews/"+itoa(reviewID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Review deleted successfully", env.Message)
	w, env = s.do(http.MethodGet, "/reviews/"+itoa(reviewID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Review "+itoa(reviewID)+" not found.", env.Message)

	w, env = s.do(http.MethodDelete, "/artworks/"+itoa(artworkID), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Artwork deleted successfully", env.Message)
	w, _ = s.do(http.MethodGet, "/artworks/"+itoa(artworkID)+"/reviews", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConcurrentRegistrationOverHTTP(t *testing.T) {
	s := newServer(t, "")
	const n = 12

	var wg sync.WaitGroup
	codes := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/register",
				bytes.NewBufferString(`{"name":"Ada","email":"race@x.com","password":"secret"}`))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			s.engine.ServeHTTP(w, req)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, n-1, conflicts)
}

func TestPrefixAndDebugVars(t *testing.T) {
	s := newServer(t, "/api")

	w, env := s.do(http.MethodPost, "/register", `{"name":"Ada","email":"ada@x.com","password":"secret"}`)
	assert.Equal(t, http.StatusNotFound, w.Code, "unprefixed paths are not routed")
	assert.Equal(t, "Route not found", env.Message)

	w, _ = s.do(http.MethodPost, "/api/register", `{"name":"Ada","email":"ada@x.com","password":"secret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = s.do(http.MethodGet, "/api/users", "")
	assert.Equal(t, http.StatusOK, w.Code)

	_, env = s.do(http.MethodGet, "/api/", "")
	assert.Equal(t, "You are not logged in", env.Message)

	w, env = s.do(http.MethodPatch, "/api/users", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", env.Error.Kind)

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"artmarket_registrations":`)
	assert.NotContains(t, rec.Body.String(), "memstats")
}
