package models

import (
	"time"

	"gorm.io/gorm"
)

type Book struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	ISBN        string    `gorm:"uniqueIndex;not null" json:"isbn"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"` // minor currency units
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	AuthorID    uint      `gorm:"index;not null" json:"author_id"`
	Author      Author    `gorm:"foreignKey:AuthorID" json:"author"`
	PublisherID uint      `gorm:"index;not null" json:"publisher_id"`
	Publisher   Publisher `gorm:"foreignKey:PublisherID" json:"publisher"`
	Categories  string    `json:"categories"` // comma-separated category names
	CoverImage  string    `json:"cover_image"`
	PageCount   int       `json:"page_count"`
	Language    string    `gorm:"default:'English'" json:"language"`
	Featured    bool      `gorm:"default:false" json:"featured"`

	// Denormalized review aggregates, updated in the same transaction
	// as the review insert.
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
