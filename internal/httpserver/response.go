package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-storefront/internal/domain"
)

// respondError maps service errors onto HTTP statuses. Services surface
// validation problems as plain errors with user-facing messages.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	}
}
