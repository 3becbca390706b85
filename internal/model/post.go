package model

import "time"

type Post struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index:idx_community_created,priority:1"`
	AuthorID    uint64 `gorm:"not null;index"`
	Title       string `gorm:"size:200;not null"`
	Content     string `gorm:"type:text"`
	Status      int    `gorm:"not null;default:0"` // 0=normal 1=deleted 2=removed by moderation
	Score       int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time `gorm:"index:idx_community_created,priority:2,sort:desc"`
	UpdatedAt   time.Time
}

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	ParentID  uint64 `gorm:"index"` // 0 = top level
	Content   string `gorm:"type:text;not null"`
	Status    int    `gorm:"not null;default:0"`
	Score     int64  `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

const (
	StatusNormal  = 0
	StatusDeleted = 1
	StatusRemoved = 2
)
