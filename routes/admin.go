package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/config"
	adminControllers "github.com/rakibtweets/booknest-sub000/controllers/admin"
	authorControllers "github.com/rakibtweets/booknest-sub000/controllers/author"
	bookControllers "github.com/rakibtweets/booknest-sub000/controllers/book"
	cartControllers "github.com/rakibtweets/booknest-sub000/controllers/cart"
	publisherControllers "github.com/rakibtweets/booknest-sub000/controllers/publisher"
	userControllers "github.com/rakibtweets/booknest-sub000/controllers/user"
	"github.com/rakibtweets/booknest-sub000/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires a JWT
// with the admin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateToken(cfg.JWT.Secret), middleware.RequireAdmin())
	{
		// ─────────── Dashboard & User Management ───────────
		adminGroup.GET("/dashboard", adminControllers.GetDashboard(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))
		adminGroup.PUT("/users/:user_id/role", userControllers.UpdateUserRole(db))

		// ─────────── Book Management ───────────
		bookAdmin := adminGroup.Group("/books")
		{
			bookAdmin.POST("", bookControllers.CreateBook(db))
			bookAdmin.PUT("/:id", bookControllers.UpdateBook(db))
			bookAdmin.GET("", bookControllers.GetBooks(db))
			bookAdmin.DELETE("/:id", bookControllers.DeleteBook(db))
		}

		// ─────────── Author Management ───────────
		authorAdmin := adminGroup.Group("/authors")
		{
			authorAdmin.POST("", authorControllers.CreateAuthor(db))
			authorAdmin.PUT("/:id", authorControllers.UpdateAuthor(db))
			authorAdmin.GET("", authorControllers.GetAllAuthors(db))
			authorAdmin.DELETE("/:id", authorControllers.DeleteAuthor(db))
		}

		// ─────────── Publisher Management ───────────
		publisherAdmin := adminGroup.Group("/publishers")
		{
			publisherAdmin.POST("", publisherControllers.CreatePublisher(db))
			publisherAdmin.PUT("/:id", publisherControllers.UpdatePublisher(db))
			publisherAdmin.GET("", publisherControllers.GetAllPublishers(db))
			publisherAdmin.DELETE("/:id", publisherControllers.DeletePublisher(db))
		}

		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
