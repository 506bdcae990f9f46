package bookControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

type CreateBookInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ISBN        string `json:"isbn" binding:"required"`
	PriceCents  int64  `json:"price_cents" binding:"required,min=0"`
	Stock       int    `json:"stock" binding:"min=0"`
	AuthorID    uint   `json:"author_id" binding:"required"`
	PublisherID uint   `json:"publisher_id" binding:"required"`
	Categories  string `json:"categories"`
	CoverImage  string `json:"cover_image"`
	PageCount   int    `json:"page_count"`
	Language    string `json:"language"`
	Featured    bool   `json:"featured"`
}

// CreateBook creates a new book. Author and publisher must already
// exist; the lookups and the insert share one transaction.
func CreateBook(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateBookInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var book models.Book
		err := db.Transaction(func(tx *gorm.DB) error {
			var author models.Author
			if err := tx.First(&author, input.AuthorID).Error; err != nil {
				return err
			}
			var publisher models.Publisher
			if err := tx.First(&publisher, input.PublisherID).Error; err != nil {
				return err
			}

			book = models.Book{
				Title:       input.Title,
				Description: input.Description,
				ISBN:        input.ISBN,
				PriceCents:  input.PriceCents,
				Stock:       input.Stock,
				AuthorID:    author.ID,
				PublisherID: publisher.ID,
				Categories:  input.Categories,
				CoverImage:  input.CoverImage,
				PageCount:   input.PageCount,
				Language:    input.Language,
				Featured:    input.Featured,
			}
			return tx.Create(&book).Error
		})
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Author or publisher does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
			return
		}

		c.JSON(http.StatusCreated, book)
	}
}
