package reviewControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

type CreateReviewInput struct {
	BookID  uint   `json:"book_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content"`
}

// -------- Core Logic --------

// Create inserts a review and recomputes the book's denormalized
// rating/review-count inside the same transaction, so the aggregates
// are never stale. One review per (user, book).
func Create(db *gorm.DB, userID string, bookID uint, rating int, content string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}

	var review models.Review
	err := db.Transaction(func(tx *gorm.DB) error {
		var book models.Book
		if err := tx.First(&book, "id = ?", bookID).Error; err != nil {
			return err
		}

		var existing models.Review
		err := tx.Where("user_id = ? AND book_id = ?", userID, bookID).First(&existing).Error
		if err == nil {
			return models.ErrAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// Verified purchase: the user has a delivered order containing
		// this book.
		var delivered int64
		if err := tx.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("orders.user_id = ? AND orders.status = ? AND order_items.book_id = ?",
				userID, models.OrderStatusDelivered, bookID).
			Count(&delivered).Error; err != nil {
			return err
		}

		review = models.Review{
			BookID:   bookID,
			UserID:   userID,
			Rating:   rating,
			Content:  content,
			Verified: delivered > 0,
		}
		if err := tx.Create(&review).Error; err != nil {
			return err
		}

		newCount := book.ReviewCount + 1
		newRating := (book.Rating*float64(book.ReviewCount) + float64(rating)) / float64(newCount)
		return tx.Model(&book).Updates(map[string]interface{}{
			"rating":       newRating,
			"review_count": newCount,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// -------- Handlers --------

// POST /user/reviews
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input CreateReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		review, err := Create(db, userID, input.BookID, input.Rating, input.Content)
		if err != nil {
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			case errors.Is(err, models.ErrAlreadyExists):
				c.JSON(http.StatusConflict, gin.H{"error": "You already reviewed this book"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			}
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}

// GET /books/:id/reviews
func GetBookReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
			return
		}

		var reviews []models.Review
		if err := db.Where("book_id = ?", id).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// POST /reviews/:id/helpful
func MarkReviewHelpful(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
			return
		}

		result := db.Model(&models.Review{}).Where("id = ?", id).
			Update("helpful", gorm.Expr("helpful + 1"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Marked as helpful"})
	}
}
