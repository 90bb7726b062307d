package server

import (
	"errors"
	"net/http"

	"kindle/domain"
	"kindle/log"

	"github.com/gin-gonic/gin"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
// Anything unrecognized is a 500 with a generic message; the real error
// only goes to the log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		log.GetLogger(c.Request.Context()).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "validation failed", "error": err.Error()})
}
