package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-storefront/internal/domain"
)

func listBooksHandler(svc BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		books, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if books == nil {
			books = []domain.Book{}
		}
		c.JSON(http.StatusOK, gin.H{"books": books})
	}
}

func getBookHandler(svc BookService) gin.HandlerFunc {
	return func(c *gin.Context) {
		book, err := svc.GetByID(c.Request.Context(), c.Param("bookID"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, book)
	}
}
