package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatConversation(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")
	bob := app.registerUser(t, "bob")

	// alice sees bob in the directory but not herself
	rec := app.request(t, http.MethodGet, "/api/chat/users", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users, _ := decode(t, rec)["users"].([]interface{})
	require.Len(t, users, 1)
	peer, _ := users[0].(map[string]interface{})
	assert.Equal(t, "bob", peer["username"])
	bobID := uint(peer["id"].(float64))

	rec = app.request(t, http.MethodPost, "/api/chat/send", alice, gin.H{
		"receiverId": bobID,
		"message":    "hi bob",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = app.request(t, http.MethodGet, "/api/chat/unread", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decode(t, rec)["unread"])

	// reading the history clears the unread counter
	rec = app.request(t, http.MethodGet, fmt.Sprintf("/api/chat/history/%d", aliceID(t, app)), bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	msgs, _ := decode(t, rec)["messages"].([]interface{})
	require.Len(t, msgs, 1)
	first, _ := msgs[0].(map[string]interface{})
	assert.Equal(t, "hi bob", first["message"])

	rec = app.request(t, http.MethodGet, "/api/chat/unread", bob, nil)
	assert.EqualValues(t, 0, decode(t, rec)["unread"])

	rec = app.request(t, http.MethodGet, "/api/chat/conversations", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	convos, _ := decode(t, rec)["conversations"].([]interface{})
	require.Len(t, convos, 1)
	partner, _ := convos[0].(map[string]interface{})
	assert.Equal(t, "alice", partner["username"])
}

func TestChatSendToUnknownUser(t *testing.T) {
	app := newTestApp(t)
	alice := app.registerUser(t, "alice")

	rec := app.request(t, http.MethodPost, "/api/chat/send", alice, gin.H{
		"receiverId": 9999,
		"message":    "anyone there?",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func aliceID(t *testing.T, app *testApp) uint {
	t.Helper()
	user, err := app.srv.users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	return user.ID
}
