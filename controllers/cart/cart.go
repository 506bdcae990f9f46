package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
	"github.com/rakibtweets/booknest-sub000/pricing"
)

type AddItemInput struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// CartView is what GET /user/cart returns: the lines plus computed
// totals for the current contents.
type CartView struct {
	Items  []models.CartItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// -------- Core Logic --------

// getOrCreateCart loads the user's cart row, creating it on first use.
func getOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	var cart models.Cart
	err := db.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem adds quantity units of a book to the user's cart. If the book
// is already in the cart the quantities are summed, and the summed
// quantity is validated against the book's current stock.
func AddItem(db *gorm.DB, userID string, bookID uint, quantity int) (*models.CartItem, error) {
	var book models.Book
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		return nil, err
	}

	cart, err := getOrCreateCart(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).First(&item).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if quantity > book.Stock {
			return nil, models.ErrInsufficientStock
		}
		item = models.CartItem{
			CartID:         cart.CartID,
			BookID:         book.ID,
			BookTitle:      book.Title,
			BookCoverImage: book.CoverImage,
			PriceCents:     book.PriceCents,
			Quantity:       quantity,
			AddedAt:        time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}

	// Existing line: bound the sum, not just the increment.
	if item.Quantity+quantity > book.Stock {
		return nil, models.ErrInsufficientStock
	}
	item.Quantity += quantity
	item.AddedAt = time.Now()
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// SetQuantity replaces a cart line's quantity, bounded by current stock.
func SetQuantity(db *gorm.DB, userID string, bookID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, models.ErrInsufficientStock
	}
	var book models.Book
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		return nil, err
	}
	if quantity > book.Stock {
		return nil, models.ErrInsufficientStock
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	var item models.CartItem
	if err := db.Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).First(&item).Error; err != nil {
		return nil, err
	}
	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Clear empties the user's cart.
func Clear(db *gorm.DB, userID string) error {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // nothing to clear
		}
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// View loads the cart lines and computes totals for them.
func View(db *gorm.DB, userID string) (*CartView, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartView{Items: []models.CartItem{}}, nil
		}
		return nil, err
	}

	lines := make([]pricing.LineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		lines = append(lines, pricing.LineItem{PriceCents: it.PriceCents, Quantity: it.Quantity})
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &CartView{Items: cart.Items, Totals: pricing.Calculate(lines)}, nil
}

// -------- Handlers --------

// POST /user/cart
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddItem(db, userID, input.BookID, input.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /user/cart/:book_id
func UpdateCartItemQuantity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		bookID, ok := parseBookID(c)
		if !ok {
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := SetQuantity(db, userID, bookID, input.Quantity)
		if err != nil {
			respondCartError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:book_id
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		bookID, ok := parseBookID(c)
		if !ok {
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("cart_id = ? AND book_id = ?", cart.CartID, bookID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := Clear(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /user/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		view, err := View(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		view, err := View(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// -------- Helpers --------

func parseBookID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book_id"})
		return 0, false
	}
	return uint(id64), true
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Book or user not found"})
	case errors.Is(err, models.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "Requested quantity exceeds available stock"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}
