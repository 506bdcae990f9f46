package models

import "time"

type Author struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Bio       string    `json:"bio"`
	Photo     string    `json:"photo"`
	Country   string    `json:"country"`
	BornYear  int       `json:"born_year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
