package server

import (
	"net/http"

	"kindle/repository"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	ReceiverID uint   `json:"receiverId" binding:"required"`
	Message    string `json:"message" binding:"required"`
}

// chatUsers lists everyone the caller could start a conversation with.
func (s *Server) chatUsers(c *gin.Context) {
	users, err := s.users.ListOthers(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []repository.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// chatHistory returns the conversation with a peer and marks the peer's
// messages as read. Clients poll this endpoint; there is no push.
func (s *Server) chatHistory(c *gin.Context) {
	peerID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	userID := currentUserID(c)

	msgs, err := s.chat.History(ctx, userID, peerID)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.chat.MarkRead(ctx, userID, peerID); err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []repository.Chat{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (s *Server) chatSend(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	ctx := c.Request.Context()

	// the receiver must be a real user
	if _, err := s.users.GetByID(ctx, req.ReceiverID); err != nil {
		respondError(c, err)
		return
	}
	msg := repository.Chat{
		SenderID:   currentUserID(c),
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
	}
	if err := s.chat.Send(ctx, &msg); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "message sent successfully", "chat": msg})
}

func (s *Server) chatUnread(c *gin.Context) {
	count, err := s.chat.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": count})
}

func (s *Server) chatConversations(c *gin.Context) {
	ctx := c.Request.Context()
	ids, err := s.chat.PartnerIDs(ctx, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	partners := make([]repository.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.users.GetByID(ctx, id)
		if err != nil {
			continue // partner account removed
		}
		partners = append(partners, user)
	}
	c.JSON(http.StatusOK, gin.H{"conversations": partners})
}
