package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"index:idx_review_user_book,unique" json:"book_id"`
	UserID    string    `gorm:"index:idx_review_user_book,unique" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Rating    int       `gorm:"check:rating >= 1 AND rating <= 5" json:"rating"`
	Content   string    `json:"content"`
	Helpful   int       `gorm:"default:0" json:"helpful"`
	Verified  bool      `gorm:"default:false" json:"verified"` // reviewer has a delivered order with this book
	CreatedAt time.Time `json:"created_at"`
}
