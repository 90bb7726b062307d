package server

import (
	"net/http"

	"kindle/domain"
	"kindle/repository"

	"github.com/gin-gonic/gin"
)

func (s *Server) doCheckout(c *gin.Context) {
	var req domain.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := s.checkout.Run(c.Request.Context(), currentUserID(c), req.PaymentMethod, req.ShippingAddress)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "order placed successfully",
		"order":   order,
	})
}

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []repository.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (s *Server) getOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := s.orders.GetForUser(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
