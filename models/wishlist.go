package models

import "time"

// WishlistItem is a set entry: one row per (user, book).
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index:idx_wishlist_user_book,unique" json:"user_id"`
	BookID    uint      `gorm:"index:idx_wishlist_user_book,unique" json:"book_id"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book"`
	AddedAt   time.Time `json:"added_at"`
	CreatedAt time.Time `json:"-"`
}
