package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/config"
	cartControllers "github.com/rakibtweets/booknest-sub000/controllers/cart"
	reviewControllers "github.com/rakibtweets/booknest-sub000/controllers/review"
	userControllers "github.com/rakibtweets/booknest-sub000/controllers/user"
	wishlistControllers "github.com/rakibtweets/booknest-sub000/controllers/wishlist"
	"github.com/rakibtweets/booknest-sub000/middleware"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(cfg.JWT.Secret))
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                          // GET /user/cart
			cartGroup.POST("/", cartControllers.AddCartItem(db))                         // POST /user/cart
			cartGroup.PUT("/:book_id", cartControllers.UpdateCartItemQuantity(db))       // PUT /user/cart/:book_id
			cartGroup.DELETE("/:book_id", cartControllers.DeleteCartItem(db))            // DELETE /user/cart/:book_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))                     // DELETE /user/cart
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("/", wishlistControllers.GetWishlist(db))
			wishlistGroup.POST("/", wishlistControllers.AddToWishlist(db))
			wishlistGroup.DELETE("/:book_id", wishlistControllers.RemoveFromWishlist(db))
			wishlistGroup.DELETE("/", wishlistControllers.ClearWishlist(db))
			wishlistGroup.POST("/move-to-cart", wishlistControllers.MoveWishlistToCart(db))
		}

		// ──────────────── Reviews ────────────────
		userGroup.POST("/reviews", reviewControllers.CreateReview(db))
	}

	// Helpful votes do not require an account.
	r.POST("/reviews/:id/helpful", reviewControllers.MarkReviewHelpful(db))
}
