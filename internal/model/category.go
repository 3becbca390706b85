package model

import "time"

type Category struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"type:text"`
	Status      int    `gorm:"not null;default:0"` // 0=normal 1=deleted
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
