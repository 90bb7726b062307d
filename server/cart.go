package server

import (
	"net/http"

	"kindle/domain"
	"kindle/repository"

	"github.com/gin-gonic/gin"
)

func (s *Server) getCart(c *gin.Context) {
	items, err := s.cart.GetForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []repository.CartItem{}
	}
	c.JSON(http.StatusOK, gin.H{
		"cartItems": items,
		"total":     repository.CartTotal(items),
	})
}

func (s *Server) addToCart(c *gin.Context) {
	var req domain.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	ctx := c.Request.Context()

	// the book must exist before it can be carted
	if _, err := s.books.GetByID(ctx, req.BookID); err != nil {
		respondError(c, err)
		return
	}
	if err := s.cart.Add(ctx, currentUserID(c), req.BookID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item added to cart successfully"})
}

func (s *Server) updateCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := s.cart.UpdateQuantity(c.Request.Context(), currentUserID(c), id, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated successfully"})
}

func (s *Server) removeCartItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := s.cart.Remove(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed from cart successfully"})
}
