package controllers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"productoptions/configs"
	"productoptions/routes"
	"productoptions/utils"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := configs.OpenMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	cfg := &configs.Config{JWTSecret: testSecret}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &testServer{router: routes.NewRouter(db, cfg, logger), db: db}
}

func token(t *testing.T, shop string) string {
	t.Helper()
	tok, err := utils.GenerateToken(shop, testSecret, time.Hour)
	require.NoError(t, err)
	return tok
}

func (s *testServer) do(t *testing.T, shop, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = http.NoBody
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if shop != "" {
		req.Header.Set("Authorization", "Bearer "+token(t, shop))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) form(t *testing.T, shop string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, shop, http.MethodPost, "/app/options", strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

func (s *testServer) sendJSON(t *testing.T, shop, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	return s.do(t, shop, method, path, strings.NewReader(string(b)), "application/json")
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
