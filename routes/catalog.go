package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authorControllers "github.com/rakibtweets/booknest-sub000/controllers/author"
	bookControllers "github.com/rakibtweets/booknest-sub000/controllers/book"
	publisherControllers "github.com/rakibtweets/booknest-sub000/controllers/publisher"
	reviewControllers "github.com/rakibtweets/booknest-sub000/controllers/review"
	userControllers "github.com/rakibtweets/booknest-sub000/controllers/user"
)

// SetupCatalogRoutes registers the public browse endpoints.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/books", bookControllers.GetBooks(db))
	r.GET("/books/:id", bookControllers.GetBookByID(db))
	r.GET("/books/:id/reviews", reviewControllers.GetBookReviews(db))

	r.GET("/authors", authorControllers.GetAllAuthors(db))
	r.GET("/authors/:id", authorControllers.GetAuthorByID(db))

	r.GET("/publishers", publisherControllers.GetAllPublishers(db))
	r.GET("/publishers/:id", publisherControllers.GetPublisherByID(db))

	// Identity provider callback registers the user record.
	r.POST("/users", userControllers.RegisterUser(db))
}
