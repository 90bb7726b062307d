package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooksWithStats(t *testing.T) {
	app := newTestApp(t)
	app.seedBook(t, "Dune", 14.99, 5)
	app.seedBook(t, "1984", 10.99, 10)
	app.seedBook(t, "Clean Code", 32.50, 0)
	token := app.registerUser(t, "reader")

	rec := app.request(t, http.MethodGet, "/api/catalog/books", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)

	books, _ := body["books"].([]interface{})
	require.Len(t, books, 3)
	stats, _ := body["stats"].(map[string]interface{})
	require.NotNil(t, stats)
	assert.EqualValues(t, 3, stats["total"])
	priceRange, _ := stats["priceRange"].(map[string]interface{})
	require.NotNil(t, priceRange)
	assert.EqualValues(t, 10.99, priceRange["min"])
	assert.EqualValues(t, 32.50, priceRange["max"])

	// default ordering is title ascending
	first, _ := books[0].(map[string]interface{})
	assert.Equal(t, "1984", first["title"])
}

func TestListBooksFiltered(t *testing.T) {
	app := newTestApp(t)
	app.seedBook(t, "Dune", 14.99, 5)
	app.seedBook(t, "1984", 10.99, 10)
	token := app.registerUser(t, "reader")

	rec := app.request(t, http.MethodGet, "/api/catalog/books?search=dune", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	books, _ := body["books"].([]interface{})
	require.Len(t, books, 1)
	stats, _ := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 1, stats["total"])
}

func TestListBooksIgnoresMalformedParams(t *testing.T) {
	app := newTestApp(t)
	app.seedBook(t, "Dune", 14.99, 5)
	token := app.registerUser(t, "reader")

	rec := app.request(t, http.MethodGet, "/api/catalog/books?minPrice=cheap&sortBy=;drop+table", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	books, _ := decode(t, rec)["books"].([]interface{})
	assert.Len(t, books, 1)
}

func TestGetBookNotFound(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "reader")

	rec := app.request(t, http.MethodGet, "/api/catalog/books/9999", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request(t, http.MethodGet, "/api/catalog/books/not-a-number", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminBookManagement(t *testing.T) {
	app := newTestApp(t)
	userToken := app.registerUser(t, "reader")
	adminToken := app.adminToken(t)

	payload := map[string]interface{}{
		"title":  "The Go Programming Language",
		"author": "Donovan & Kernighan",
		"price":  39.99,
		"stock":  3,
	}

	rec := app.request(t, http.MethodPost, "/api/admin/books", userToken, payload)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = app.request(t, http.MethodPost, "/api/admin/books", adminToken, payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	book, _ := decode(t, rec)["book"].(map[string]interface{})
	require.NotNil(t, book)
	id := uint(book["id"].(float64))

	payload["price"] = 29.99
	rec = app.request(t, http.MethodPut, fmt.Sprintf("/api/admin/books/%d", id), adminToken, payload)
	require.Equal(t, http.StatusOK, rec.Code)
	updated, _ := decode(t, rec)["book"].(map[string]interface{})
	assert.EqualValues(t, 29.99, updated["price"])

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/api/admin/books/%d", id), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodGet, fmt.Sprintf("/api/catalog/books/%d", id), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
