package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-storefront/internal/domain"
	ordersvc "bookstore-storefront/internal/service/order"
)

func checkoutHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ordersvc.CheckoutInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		order, err := svc.Checkout(c.Request.Context(), currentUser(c), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.List(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), currentUser(c), c.Param("orderID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
