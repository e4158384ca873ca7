package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-storefront/internal/domain"
)

type validatePromotionRequest struct {
	Code     string `json:"code"`
	Subtotal int64  `json:"subtotal"`
}

func listPromotionsHandler(svc PromotionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		promos, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if promos == nil {
			promos = []domain.Promotion{}
		}
		c.JSON(http.StatusOK, gin.H{"promotions": promos})
	}
}

// validatePromotionHandler always answers 200: rejection is a result, not
// a transport failure, and the client resets its applied state from it.
func validatePromotionHandler(svc PromotionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req validatePromotionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		res, err := svc.Validate(c.Request.Context(), req.Code, req.Subtotal)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
