package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"roomlog/internal/feed"
	"roomlog/internal/models"
	"roomlog/internal/repository"
	"roomlog/internal/service"
	"roomlog/internal/storage"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	router *gin.Engine
	hub    *feed.Hub
}

func newTestServer(t *testing.T, uniformErrors bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := storage.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.Migrate(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := feed.NewHub(16)
	t.Cleanup(hub.Close)

	services := service.NewServices(repository.NewRepositories(db), hub, logger, service.Options{BcryptCost: bcrypt.MinCost})

	r := gin.New()
	SetupRoutes(r, services, logger, RouteOptions{UniformErrors: uniformErrors})
	return &testServer{router: r, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestUserFlow_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(t, http.MethodPost, "/user/register", gin.H{
		"userId": "alice", "password": "pw1", "role": "lecturer", "allowedRoom": []string{"101"},
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.True(t, env.Success)
	assert.Equal(t, "Successfully Registered User", env.Message)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &raw))
	assert.Equal(t, "alice", raw["userId"])
	assert.Equal(t, "lecturer", raw["role"])
	assert.Equal(t, []interface{}{"101"}, raw["allowedRoom"])
	assert.NotEmpty(t, raw["secretKey"])
	assert.NotContains(t, raw, "password")

	code, env = s.do(t, http.MethodPost, "/user/login", gin.H{"userId": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", env.Message)
	assert.NotContains(t, string(env.Data), "password")

	code, env = s.do(t, http.MethodPost, "/user/login", gin.H{"userId": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid Password", env.Message)

	code, env = s.do(t, http.MethodPost, "/user/login", gin.H{"userId": "bob", "password": "pw1"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "User not found", env.Message)
}

func TestUserFlow_ErrorStatuses(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(t, http.MethodPost, "/user/register", gin.H{"userId": "alice"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "userId, password and role are required", env.Message)

	body := gin.H{"userId": "alice", "password": "pw", "role": "admin"}
	code, _ = s.do(t, http.MethodPost, "/user/register", body)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(t, http.MethodPost, "/user/register", body)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	code, _ = s.do(t, http.MethodDelete, "/user/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUserFlow_UniformErrors(t *testing.T) {
	s := newTestServer(t, true)

	code, _ := s.do(t, http.MethodPost, "/user/login", gin.H{"userId": "ghost", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodDelete, "/log/missing", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUserFlow_ListAndDelete(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(t, http.MethodPost, "/user/register", gin.H{"userId": "alice", "password": "pw", "role": "admin"})
	require.Equal(t, http.StatusOK, code)
	var created models.User
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, env = s.do(t, http.MethodGet, "/user", nil)
	require.Equal(t, http.StatusOK, code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "password")

	code, env = s.do(t, http.MethodDelete, "/user/"+created.ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Successfully deleted user", env.Message)
	assert.Empty(t, env.Data)

	code, _ = s.do(t, http.MethodPost, "/user/login", gin.H{"userId": "alice", "password": "pw"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLogFlow(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(t, http.MethodPost, "/log", gin.H{"userId": "u1", "room": "r1"})
	require.Equal(t, http.StatusOK, code, env.Message)
	var first models.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.WithinDuration(t, time.Now(), first.Timestamp, 5*time.Second)

	code, _ = s.do(t, http.MethodPost, "/log", gin.H{"userId": "u2", "room": "r1", "timestamp": "2024-03-01T10:00:00Z"})
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodPost, "/log", gin.H{"room": "r1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "userId and room are required", env.Message)

	code, env = s.do(t, http.MethodGet, "/log", nil)
	require.Equal(t, http.StatusOK, code)
	var all []models.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)

	code, env = s.do(t, http.MethodGet, "/log/u1", nil)
	require.Equal(t, http.StatusOK, code)
	var mine []models.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "u1", mine[0].UserID)

	code, env = s.do(t, http.MethodGet, "/log/u3", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No logs found for this user", env.Message)

	code, _ = s.do(t, http.MethodDelete, "/log/"+first.ID, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(t, http.MethodDelete, "/log/"+first.ID, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Log not found", env.Message)

	code, _ = s.do(t, http.MethodGet, "/log/u1", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestLogFlow_EpochMillisTimestamp(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(t, http.MethodPost, "/log", gin.H{"userId": "u1", "room": "r1", "timestamp": 1709287200000})
	require.Equal(t, http.StatusOK, code, env.Message)
	var entry models.LogEntry
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(entry.Timestamp))

	code, _ = s.do(t, http.MethodPost, "/log", gin.H{"userId": "u1", "room": "r1", "timestamp": "not a time"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUserFlow_LongPasswordRejected(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(t, http.MethodPost, "/user/register", gin.H{
		"userId": "a", "password": strings.Repeat("p", 80), "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "password must be at most 72 bytes", env.Message)
}

func TestNoRoute(t *testing.T) {
	s := newTestServer(t, false)

	code, env := s.do(t, http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Success)
}

func TestLogStream_ReceivesAppendedEntries(t *testing.T) {
	s := newTestServer(t, false)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/log"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return s.hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	body := strings.NewReader(`{"userId":"u1","room":"r9"}`)
	resp, err := http.Post(srv.URL+"/log", "application/json", body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got models.LogEntry
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "r9", got.Room)
}

func TestSetupRoutes_ShutdownClosesStreams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, err := storage.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, repository.Migrate(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := feed.NewHub(1)
	services := service.NewServices(repository.NewRepositories(db), hub, logger, service.Options{BcryptCost: bcrypt.MinCost})

	ctx, cancel := context.WithCancel(context.Background())
	r := gin.New()
	SetupRoutes(r, services, logger, RouteOptions{Shutdown: ctx})
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/log", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
	require.Eventually(t, func() bool { return hub.Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}
