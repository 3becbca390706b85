package model

import "time"

const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Vote holds one row per (user, target); Value is +1 or -1, retracting a
// vote deletes the row.
type Vote struct {
	ID         uint64 `gorm:"primaryKey"`
	UserID     uint64 `gorm:"not null;index;uniqueIndex:uk_user_target"`
	TargetType string `gorm:"size:16;not null;uniqueIndex:uk_user_target"`
	TargetID   uint64 `gorm:"not null;index;uniqueIndex:uk_user_target"`
	Value      int    `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
