package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type changeQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		cart, err := svc.AddItem(c.Request.Context(), currentUser(c), req.BookID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

// changeCartItemHandler returns both the authoritative line and the
// refreshed cart so clients can reconcile their optimistic prediction in
// one round-trip.
func changeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		line, cart, err := svc.ChangeQuantity(c.Request.Context(), currentUser(c), c.Param("lineID"), req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lineItem": line, "cart": cart})
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.RemoveItem(c.Request.Context(), currentUser(c), c.Param("lineID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}
