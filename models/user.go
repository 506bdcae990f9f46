package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        string         `gorm:"primaryKey" json:"id"` // external auth provider id
	Email     string         `gorm:"unique;not null" json:"email"`
	Phone     string         `json:"phone"`
	Name      string         `json:"name"`
	Picture   string         `json:"picture"`
	Role      Role           `gorm:"type:VARCHAR(10);default:'user'" json:"role"`
	Address   Address        `gorm:"embedded" json:"address"` // Embeds address fields directly
	Cart      Cart           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Wishlist  []WishlistItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"wishlist"`
	Orders    []Order        `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"orders"`
	CreatedAt time.Time      `json:"created_at"`
}

// Address model embedded in User and snapshotted onto orders
type Address struct {
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}
