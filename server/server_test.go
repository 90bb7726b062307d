package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"kindle/checkout"
	"kindle/config"
	"kindle/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testApp struct {
	srv    *Server
	router *gin.Engine
	db     *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	cfg := config.Config{JWTSecret: "test-secret"}
	coordinator := checkout.NewCoordinator(
		repository.NewCartRepo(db),
		repository.NewOrderRepo(db),
		nil,
	)
	srv := New(cfg, db, coordinator, nil)
	return &testApp{srv: srv, router: srv.Router(), db: db}
}

func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// registerUser signs up a fresh account through the API and returns its
// bearer token.
func (a *testApp) registerUser(t *testing.T, username string) string {
	t.Helper()
	rec := a.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// adminToken creates an admin account directly and signs a token for it.
func (a *testApp) adminToken(t *testing.T) string {
	t.Helper()
	admin := repository.User{Username: "admin", Email: "admin@example.com", Password: "x", Role: "admin"}
	require.NoError(t, a.db.Create(&admin).Error)
	token, err := a.srv.issueToken(admin)
	require.NoError(t, err)
	return token
}

func (a *testApp) seedBook(t *testing.T, title string, price float64, stock int) repository.Book {
	t.Helper()
	book := repository.Book{Title: title, Author: "author", Price: price, Stock: stock, Language: "English"}
	require.NoError(t, a.db.Create(&book).Error)
	return book
}
