package authorControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

type AuthorInput struct {
	Name     string `json:"name" binding:"required"`
	Bio      string `json:"bio"`
	Photo    string `json:"photo"`
	Country  string `json:"country"`
	BornYear int    `json:"born_year"`
}

// POST /admin/authors
func CreateAuthor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AuthorInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		author := models.Author{
			Name:     input.Name,
			Bio:      input.Bio,
			Photo:    input.Photo,
			Country:  input.Country,
			BornYear: input.BornYear,
		}
		if err := db.Create(&author).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create author"})
			return
		}
		c.JSON(http.StatusCreated, author)
	}
}

// PUT /admin/authors/:id
func UpdateAuthor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
			return
		}

		var author models.Author
		if err := db.First(&author, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
			return
		}

		var input AuthorInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		author.Name = input.Name
		author.Bio = input.Bio
		author.Photo = input.Photo
		author.Country = input.Country
		author.BornYear = input.BornYear
		if err := db.Save(&author).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update author"})
			return
		}
		c.JSON(http.StatusOK, author)
	}
}

// GET /authors
func GetAllAuthors(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var authors []models.Author
		if err := db.Order("name").Find(&authors).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch authors"})
			return
		}
		c.JSON(http.StatusOK, authors)
	}
}

// GET /authors/:id — the author plus their books (reverse lookup by
// book.author_id).
func GetAuthorByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
			return
		}

		var author models.Author
		if err := db.First(&author, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
			return
		}

		var books []models.Book
		if err := db.Where("author_id = ?", author.ID).Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch author's books"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"author": author, "books": books})
	}
}

// DELETE /admin/authors/:id
func DeleteAuthor(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid author ID"})
			return
		}

		// Refuse deletion while books still reference the author.
		var count int64
		if err := db.Model(&models.Book{}).Where("author_id = ?", id).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check author's books"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Author still has books in the catalog"})
			return
		}

		result := db.Delete(&models.Author{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete author"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Author not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Author deleted"})
	}
}
