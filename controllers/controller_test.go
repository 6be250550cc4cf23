package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"auction-backend/models"
	"auction-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

// asUser stands in for RequireAuth in handler tests.
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextClaims, models.Claims{TokenID: "tok-" + userID, UserID: userID, Role: role})
		c.Set(ContextUserID, userID)
		c.Set(ContextRole, role)
		c.Next()
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
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

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
