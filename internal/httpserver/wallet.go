package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	walletsvc "bookstore-storefront/internal/service/wallet"
)

func walletHandler(svc WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		balance, err := svc.Balance(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"balance": balance})
	}
}

func walletHistoryHandler(svc WalletService) gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := svc.History(c.Request.Context(), currentUser(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if entries == nil {
			entries = []walletsvc.Entry{}
		}
		c.JSON(http.StatusOK, gin.H{"transactions": entries})
	}
}
