package integrationtests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"auction-backend/auth"
	"auction-backend/controllers"
	"auction-backend/repository"
	"auction-backend/routes"
	"auction-backend/services"
	"auction-backend/storage"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin-password"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	router *gin.Engine
	clock  *testClock
}

// SetupTestEnv wires the full router over in-memory adapters and seeds an administrator.
func SetupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.SetLogOutput(io.Discard)

	clock := &testClock{t: time.Now().UTC()}

	auctionSvc := services.NewAuctionService(repository.NewMemoryRepo(), storage.NewInlineStore()).WithClock(clock.Now)

	tokens, err := auth.NewTokenMaker(testKey, time.Hour)
	require.NoError(t, err)
	authSvc := services.NewAuthService(auth.NewMemoryUserStore(), tokens, auth.NewMemoryRevocationStore())
	require.NoError(t, authSvc.EnsureAdmin(context.Background(), adminEmail, adminPassword))

	ctrl := &controllers.Controller{
		Auctions: auctionSvc,
		Auth:     authSvc,
		Version:  "test",
		Timeout:  5 * time.Second,
	}
	return &testEnv{
		router: routes.Setup(ctrl, "test", nil),
		clock:  clock,
	}
}

// Do executes a JSON request and returns the decoded envelope.
func (e *testEnv) Do(t *testing.T, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// RegisterAndLogin creates a user and returns its bearer token and id.
func (e *testEnv) RegisterAndLogin(t *testing.T, email string) (string, string) {
	t.Helper()
	_, w := e.Do(t, "POST", "/register", "", map[string]any{"email": email, "password": "password123"})
	require.Equal(t, 201, w.Code)
	return e.Login(t, email, "password123")
}

func (e *testEnv) Login(t *testing.T, email, password string) (string, string) {
	t.Helper()
	resp, w := e.Do(t, "POST", "/login", "", map[string]any{"email": email, "password": password})
	require.Equal(t, 200, w.Code)
	data := resp["data"].(map[string]any)
	return data["token"].(string), data["user_id"].(string)
}
