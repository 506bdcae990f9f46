package bookControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

// GetBookByID returns a single book with its author and publisher.
// URL param: /books/:id
func GetBookByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
			return
		}

		var book models.Book
		if err := db.Preload("Author").Preload("Publisher").First(&book, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve book"})
			}
			return
		}
		c.JSON(http.StatusOK, book)
	}
}

// GetBooks lists books with optional filters: ?category=, ?author_id=,
// ?publisher_id=, ?featured=true, ?search= (title substring), plus
// ?page= and ?limit= pagination.
func GetBooks(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Book{}).Preload("Author").Preload("Publisher")

		if category := c.Query("category"); category != "" {
			query = query.Where("categories LIKE ?", "%"+category+"%")
		}
		if authorID := c.Query("author_id"); authorID != "" {
			query = query.Where("author_id = ?", authorID)
		}
		if publisherID := c.Query("publisher_id"); publisherID != "" {
			query = query.Where("publisher_id = ?", publisherID)
		}
		if c.Query("featured") == "true" {
			query = query.Where("featured = ?", true)
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("title LIKE ?", "%"+search+"%")
		}

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count books"})
			return
		}

		var books []models.Book
		if err := query.
			Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"books": books,
			"total": total,
			"page":  page,
			"limit": limit,
		})
	}
}
