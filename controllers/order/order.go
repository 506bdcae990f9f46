package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rakibtweets/booknest-sub000/models"
	"github.com/rakibtweets/booknest-sub000/pricing"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	ShippingAddress models.Address `json:"shipping_address" binding:"required"`
	BillingAddress  models.Address `json:"billing_address"`
}

type UpdateOrderStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	Description string `json:"description"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// lockForUpdate row-locks on dialects that support it. SQLite has no
// FOR UPDATE; its write transactions serialize the whole database.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// -------- Core Logic --------

// PlaceOrder turns the user's cart into an order. Inside one
// transaction: every book row is locked, stock is checked and
// decremented, cart prices are snapshotted onto the order items, totals
// are computed, the order plus its first timeline entry is created and
// the cart is emptied. Any failure rolls the whole thing back.
func PlaceOrder(db *gorm.DB, userID string, paymentStatus models.PaymentStatus, shipAddr, billAddr models.Address) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.ErrEmptyCart
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var lines []pricing.LineItem
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var book models.Book
			if err := lockForUpdate(tx).
				First(&book, "id = ?", item.BookID).Error; err != nil {
				return err
			}

			if book.Stock < item.Quantity {
				return models.ErrInsufficientStock
			}

			// Deduct stock at order creation; restored on cancellation.
			book.Stock -= item.Quantity
			if err := tx.Save(&book).Error; err != nil {
				return err
			}

			lines = append(lines, pricing.LineItem{
				PriceCents: item.PriceCents,
				Quantity:   item.Quantity,
			})
			orderItems = append(orderItems, models.OrderItem{
				BookID:     item.BookID,
				BookTitle:  item.BookTitle,
				PriceCents: item.PriceCents,
				Quantity:   item.Quantity,
			})
		}

		totals := pricing.Calculate(lines)

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           orderItems,
			Status:          models.OrderStatusProcessing,
			PaymentStatus:   paymentStatus,
			SubtotalCents:   totals.SubtotalCents,
			ShippingCents:   totals.ShippingCents,
			TaxCents:        totals.TaxCents,
			TotalCents:      totals.TotalCents,
			ShippingAddress: shipAddr,
			BillingAddress:  billAddr,
			Timeline: []models.TimelineEntry{{
				Status:      string(models.OrderStatusProcessing),
				Description: "Order placed",
			}},
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Clear cart items
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// TransitionStatus applies one edge of the status machine and appends a
// timeline entry. Moving into cancelled restores every line item's
// quantity back onto its book's stock; because cancelled is terminal
// the restore can never run twice.
func TransitionStatus(db *gorm.DB, orderRef string, next models.OrderStatus, description string) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).
			Preload("Items").Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
			return err
		}

		if !order.Status.CanTransition(next) {
			return models.ErrInvalidTransition
		}

		if next == models.OrderStatusCancelled {
			for _, item := range order.Items {
				if err := tx.Model(&models.Book{}).Where("id = ?", item.BookID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		if err := tx.Model(&order).Update("status", next).Error; err != nil {
			return err
		}
		order.Status = next

		if description == "" {
			description = "Order " + string(next)
		}
		entry := models.TimelineEntry{
			OrderID:     order.ID,
			Status:      string(next),
			Description: description,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SetPaymentStatus updates the payment status independently of the
// order status and records its own timeline entry.
func SetPaymentStatus(db *gorm.DB, orderRef string, next models.PaymentStatus) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_ref = ?", orderRef).First(&order).Error; err != nil {
			return err
		}
		if err := tx.Model(&order).Update("payment_status", next).Error; err != nil {
			return err
		}
		order.PaymentStatus = next

		entry := models.TimelineEntry{
			OrderID:     order.ID,
			Status:      string(order.Status),
			Description: "Payment " + string(next),
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// POST /user/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, models.PaymentStatusPending, req.ShippingAddress, req.BillingAddress)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Timeline").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Timeline").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:orderRef
func GetOrderByRefHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")
		if ref == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderRef is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("User").
			Preload("Items").
			Preload("Timeline").
			Where("order_ref = ?", ref).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		// Owners and admins only.
		if order.UserID != c.GetString("user_id") && c.GetString("role") != string(models.RoleAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "not your order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderRef/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := TransitionStatus(db, ref, newStatus, req.Description)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderRef/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ref := c.Param("orderRef")
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := SetPaymentStatus(db, ref, newStatus)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock for one or more items"})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
