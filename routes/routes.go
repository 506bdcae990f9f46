package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/config"
)

// SetupRoutes is the single entry-point that wires up the public
// catalog, user, admin and checkout route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// Public catalog routes (no middleware)
	SetupCatalogRoutes(r, db)

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, cfg)

	// Admin routes (JWT + admin role)
	SetupAdminRoutes(r, db, cfg)

	// Order routes
	SetupOrderRoutes(r, db, cfg)

	// Stripe checkout routes
	SetupCheckoutRoutes(r, db, cfg)
}
