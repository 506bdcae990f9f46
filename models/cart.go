package models

import "time"

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"`                    // Enforces ONE cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // Cascade delete items if cart is deleted
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CartID         uint      `gorm:"index" json:"cart_id"`
	BookID         uint      `gorm:"index" json:"book_id"`
	BookTitle      string    `json:"book_title"`
	BookCoverImage string    `json:"book_cover_image"`
	PriceCents     int64     `json:"price_cents"` // book price at add time
	Quantity       int       `json:"quantity"`
	AddedAt        time.Time `json:"added_at"`
}
