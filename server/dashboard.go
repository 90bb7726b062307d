package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
)

const recentListLimit = 5

// dashboardStats is the signed-in user's home screen snapshot: todo and
// poem counts, unread messages, order activity, and recent items.
func (s *Server) dashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	userID := currentUserID(c)
	since := time.Now().Add(-recentWindow)

	var errs *multierror.Error

	totalTodos, err := s.todos.CountForUser(ctx, userID, "")
	errs = multierror.Append(errs, err)
	completedTodos, err := s.todos.CountForUser(ctx, userID, "completed")
	errs = multierror.Append(errs, err)
	pendingTodos, err := s.todos.CountForUser(ctx, userID, "pending")
	errs = multierror.Append(errs, err)
	totalPoems, err := s.poetry.CountForUser(ctx, userID)
	errs = multierror.Append(errs, err)
	unreadMessages, err := s.chat.UnreadCount(ctx, userID)
	errs = multierror.Append(errs, err)
	totalOrders, err := s.orders.CountForUser(ctx, userID, time.Time{})
	errs = multierror.Append(errs, err)
	recentOrders, err := s.orders.CountForUser(ctx, userID, since)
	errs = multierror.Append(errs, err)
	recentTodos, err := s.todos.RecentForUser(ctx, userID, recentListLimit)
	errs = multierror.Append(errs, err)
	recentPoems, err := s.poetry.RecentForUser(ctx, userID, recentListLimit)
	errs = multierror.Append(errs, err)

	if err := errs.ErrorOrNil(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"todos": gin.H{
				"total":     totalTodos,
				"completed": completedTodos,
				"pending":   pendingTodos,
			},
			"poems": gin.H{
				"total": totalPoems,
			},
			"messages": gin.H{
				"unread": unreadMessages,
			},
			"orders": gin.H{
				"total":  totalOrders,
				"recent": recentOrders,
			},
			"recent": gin.H{
				"todos": recentTodos,
				"poems": recentPoems,
			},
		},
	})
}
