package wishlistControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

type AddInput struct {
	BookID uint `json:"book_id" binding:"required"`
}

// -------- Core Logic --------

// Add saves a book reference for later. Duplicate saves fail.
func Add(db *gorm.DB, userID string, bookID uint) (*models.WishlistItem, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	var book models.Book
	if err := db.First(&book, "id = ?", bookID).Error; err != nil {
		return nil, err
	}

	var existing models.WishlistItem
	err := db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
	if err == nil {
		return nil, models.ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := models.WishlistItem{
		UserID:  userID,
		BookID:  bookID,
		AddedAt: time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// MergeIntoCart moves every wishlist entry into the cart: an existing
// cart line is incremented by one, otherwise a new line with quantity 1
// is inserted; books with no stock left are skipped. The whole merge
// plus the wishlist clear runs in one transaction.
func MergeIntoCart(db *gorm.DB, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var wishlist []models.WishlistItem
		if err := tx.Where("user_id = ?", userID).Find(&wishlist).Error; err != nil {
			return err
		}
		if len(wishlist) == 0 {
			return nil
		}

		var cart models.Cart
		if err := tx.Where(models.Cart{UserID: userID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		for _, w := range wishlist {
			var book models.Book
			if err := tx.First(&book, "id = ?", w.BookID).Error; err != nil {
				return err
			}

			var item models.CartItem
			err := tx.Where("cart_id = ? AND book_id = ?", cart.CartID, w.BookID).First(&item).Error
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				if book.Stock < 1 {
					continue
				}
				item = models.CartItem{
					CartID:         cart.CartID,
					BookID:         book.ID,
					BookTitle:      book.Title,
					BookCoverImage: book.CoverImage,
					PriceCents:     book.PriceCents,
					Quantity:       1,
					AddedAt:        time.Now(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
				continue
			}

			if item.Quantity+1 > book.Stock {
				continue
			}
			item.Quantity++
			item.AddedAt = time.Now()
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error
	})
}

// -------- Handlers --------

// POST /user/wishlist
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		item, err := Add(db, userID, input.BookID)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Book or user not found"})
			case errors.Is(err, models.ErrAlreadyExists):
				c.JSON(http.StatusConflict, gin.H{"error": "Book is already in the wishlist"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			}
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// DELETE /user/wishlist/:book_id
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		id64, err := strconv.ParseUint(c.Param("book_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book_id"})
			return
		}

		result := db.Where("user_id = ? AND book_id = ?", userID, uint(id64)).Delete(&models.WishlistItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove wishlist item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist item removed"})
	}
}

// DELETE /user/wishlist
func ClearWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := db.Where("user_id = ?", userID).Delete(&models.WishlistItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
	}
}

// GET /user/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		var items []models.WishlistItem
		if err := db.Preload("Book").Where("user_id = ?", userID).
			Order("added_at DESC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// POST /user/wishlist/move-to-cart
func MoveWishlistToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if err := MergeIntoCart(db, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to move wishlist to cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist moved to cart"})
	}
}
