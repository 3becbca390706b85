package model

import "time"

// AuditLog is append-only; rows are never updated or deleted.
type AuditLog struct {
	ID         uint64 `gorm:"primaryKey"`
	ActorID    uint64 `gorm:"not null;index"`
	Action     string `gorm:"size:64;not null;index"`
	TargetType string `gorm:"size:16"`
	TargetID   uint64
	Detail     string `gorm:"size:500"`
	CreatedAt  time.Time
}

type Configuration struct {
	ID          uint64 `gorm:"primaryKey"`
	Key         string `gorm:"uniqueIndex;size:64;not null"`
	Value       string `gorm:"size:500;not null"`
	Description string `gorm:"size:255"`
	UpdatedBy   uint64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SearchLog struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"index"` // 0 for guests
	Query     string `gorm:"size:200;not null"`
	Type      string `gorm:"size:16;not null"`
	Results   int64  `gorm:"not null"`
	CreatedAt time.Time
}
