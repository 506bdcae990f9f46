package publisherControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/models"
)

type PublisherInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Logo        string `json:"logo"`
	FoundedYear int    `json:"founded_year"`
}

// POST /admin/publishers
func CreatePublisher(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PublisherInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		publisher := models.Publisher{
			Name:        input.Name,
			Description: input.Description,
			Website:     input.Website,
			Logo:        input.Logo,
			FoundedYear: input.FoundedYear,
		}
		if err := db.Create(&publisher).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create publisher"})
			return
		}
		c.JSON(http.StatusCreated, publisher)
	}
}

// PUT /admin/publishers/:id
func UpdatePublisher(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publisher ID"})
			return
		}

		var publisher models.Publisher
		if err := db.First(&publisher, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Publisher not found"})
			return
		}

		var input PublisherInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		publisher.Name = input.Name
		publisher.Description = input.Description
		publisher.Website = input.Website
		publisher.Logo = input.Logo
		publisher.FoundedYear = input.FoundedYear
		if err := db.Save(&publisher).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update publisher"})
			return
		}
		c.JSON(http.StatusOK, publisher)
	}
}

// GET /publishers
func GetAllPublishers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var publishers []models.Publisher
		if err := db.Order("name").Find(&publishers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publishers"})
			return
		}
		c.JSON(http.StatusOK, publishers)
	}
}

// GET /publishers/:id — the publisher plus their catalog.
func GetPublisherByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publisher ID"})
			return
		}

		var publisher models.Publisher
		if err := db.First(&publisher, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Publisher not found"})
			return
		}

		var books []models.Book
		if err := db.Where("publisher_id = ?", publisher.ID).Find(&books).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publisher's books"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"publisher": publisher, "books": books})
	}
}

// DELETE /admin/publishers/:id
func DeletePublisher(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publisher ID"})
			return
		}

		var count int64
		if err := db.Model(&models.Book{}).Where("publisher_id = ?", id).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check publisher's books"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Publisher still has books in the catalog"})
			return
		}

		result := db.Delete(&models.Publisher{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete publisher"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Publisher not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Publisher deleted"})
	}
}
