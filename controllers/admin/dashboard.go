package adminControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

// lowStockThreshold marks books the back office should restock soon.
const lowStockThreshold = 5

type DashboardStats struct {
	Users         int64 `json:"users"`
	Books         int64 `json:"books"`
	Orders        int64 `json:"orders"`
	PendingOrders int64 `json:"pending_orders"`
	RevenueCents  int64 `json:"revenue_cents"` // paid orders only
}

// GET /admin/dashboard
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats DashboardStats

		if err := db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		if err := db.Model(&models.Book{}).Count(&stats.Books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count books"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&stats.Orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusProcessing).
			Count(&stats.PendingOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count pending orders"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(total_cents), 0)").
			Scan(&stats.RevenueCents).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum revenue"})
			return
		}

		var lowStock []models.Book
		if err := db.Where("stock <= ?", lowStockThreshold).
			Order("stock ASC").Limit(10).Find(&lowStock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch low-stock books"})
			return
		}

		var recentOrders []models.Order
		if err := db.Preload("Items").
			Order("created_at DESC").Limit(10).Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"stats":         stats,
			"low_stock":     lowStock,
			"recent_orders": recentOrders,
		})
	}
}
