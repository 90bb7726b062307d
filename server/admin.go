package server

import (
	"net/http"
	"time"

	"kindle/repository"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
)

const recentWindow = 30 * 24 * time.Hour

// adminStats assembles the read-only aggregate report: row counts per
// table plus completed-payment revenue. The queries are independent, so
// failures are collected and reported together.
func (s *Server) adminStats(c *gin.Context) {
	ctx := c.Request.Context()
	since := time.Now().Add(-recentWindow)

	var errs *multierror.Error

	totalUsers, err := s.users.Count(ctx, time.Time{})
	errs = multierror.Append(errs, err)
	recentUsers, err := s.users.Count(ctx, since)
	errs = multierror.Append(errs, err)
	totalTodos, err := s.todos.Count(ctx)
	errs = multierror.Append(errs, err)
	totalPoems, err := s.poetry.Count(ctx)
	errs = multierror.Append(errs, err)
	totalBooks, err := s.books.Count(ctx)
	errs = multierror.Append(errs, err)
	totalOrders, err := s.orders.Count(ctx)
	errs = multierror.Append(errs, err)
	revenue, err := s.orders.Revenue(ctx)
	errs = multierror.Append(errs, err)

	if err := errs.ErrorOrNil(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"users": gin.H{
				"total":  totalUsers,
				"recent": recentUsers,
			},
			"content": gin.H{
				"todos": totalTodos,
				"poems": totalPoems,
				"books": totalBooks,
			},
			"orders": gin.H{
				"total":   totalOrders,
				"revenue": revenue,
			},
		},
	})
}

func (s *Server) adminUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if users == nil {
		users = []repository.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending processing completed cancelled"`
}

func (s *Server) adminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := s.orders.UpdateStatus(c.Request.Context(), id, repository.OrderStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order status updated successfully"})
}
