package bookControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

type UpdateBookInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	Stock       *int    `json:"stock"`
	AuthorID    *uint   `json:"author_id"`
	PublisherID *uint   `json:"publisher_id"`
	Categories  *string `json:"categories"`
	CoverImage  *string `json:"cover_image"`
	PageCount   *int    `json:"page_count"`
	Language    *string `json:"language"`
	Featured    *bool   `json:"featured"`
}

// UpdateBook applies a partial update. Changing the price never touches
// existing order items; those carry their own snapshot.
func UpdateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID"})
			return
		}

		var book models.Book
		if err := db.First(&book, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch book"})
			}
			return
		}

		var input UpdateBookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.PriceCents != nil {
			if *input.PriceCents < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price_cents must not be negative"})
				return
			}
			updates["price_cents"] = *input.PriceCents
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
				return
			}
			updates["stock"] = *input.Stock
		}
		if input.AuthorID != nil {
			var author models.Author
			if err := db.First(&author, *input.AuthorID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Author does not exist"})
				return
			}
			updates["author_id"] = *input.AuthorID
		}
		if input.PublisherID != nil {
			var publisher models.Publisher
			if err := db.First(&publisher, *input.PublisherID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Publisher does not exist"})
				return
			}
			updates["publisher_id"] = *input.PublisherID
		}
		if input.Categories != nil {
			updates["categories"] = *input.Categories
		}
		if input.CoverImage != nil {
			updates["cover_image"] = *input.CoverImage
		}
		if input.PageCount != nil {
			updates["page_count"] = *input.PageCount
		}
		if input.Language != nil {
			updates["language"] = *input.Language
		}
		if input.Featured != nil {
			updates["featured"] = *input.Featured
		}

		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
			return
		}

		if err := db.Model(&book).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
			return
		}
		c.JSON(http.StatusOK, book)
	}
}
