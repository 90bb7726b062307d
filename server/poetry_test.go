package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoemLifecycle(t *testing.T) {
	app := newTestApp(t)
	token := app.registerUser(t, "poet")

	rec := app.request(t, http.MethodPost, "/api/poetry", token, gin.H{
		"title":    "The Road Not Taken",
		"author":   "Robert Frost",
		"content":  "Two roads diverged in a yellow wood",
		"category": "classic",
		"tags":     "nature,choice",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	poem, _ := decode(t, rec)["poem"].(map[string]interface{})
	require.NotNil(t, poem)
	id := uint(poem["id"].(float64))

	rec = app.request(t, http.MethodGet, "/api/poetry?author=frost", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	poems, _ := decode(t, rec)["poems"].([]interface{})
	require.Len(t, poems, 1)

	rec = app.request(t, http.MethodGet, "/api/poetry?tags=choice", token, nil)
	poems, _ = decode(t, rec)["poems"].([]interface{})
	assert.Len(t, poems, 1)

	rec = app.request(t, http.MethodPut, fmt.Sprintf("/api/poetry/%d", id), token, gin.H{
		"title":  "The Road Not Taken",
		"author": "Robert Frost",
		"tags":   "nature",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/api/poetry/%d", id), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.request(t, http.MethodGet, fmt.Sprintf("/api/poetry/%d", id), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPoemOwnershipOnMutation(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	bob := app.registerUser(t, "bob")

	rec := app.request(t, http.MethodPost, "/api/poetry", alice, gin.H{
		"title":  "Ozymandias",
		"author": "Shelley",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	poem, _ := decode(t, rec)["poem"].(map[string]interface{})
	id := uint(poem["id"].(float64))

	// poems are readable by anyone, writable only by the owner
	rec = app.request(t, http.MethodGet, fmt.Sprintf("/api/poetry/%d", id), bob, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.request(t, http.MethodPut, fmt.Sprintf("/api/poetry/%d", id), bob, gin.H{
		"title":  "Ozymandias",
		"author": "Someone Else",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.request(t, http.MethodDelete, fmt.Sprintf("/api/poetry/%d", id), bob, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
