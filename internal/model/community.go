package model

import "time"

type Community struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex;size:64;not null"`
	Description string `gorm:"type:text"`
	CategoryID  uint64 `gorm:"index"` // 0 = uncategorized
	CreatorID   uint64 `gorm:"not null;index"`
	Status      int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CommunityMember struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	UserID      uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	Role        int    `gorm:"not null;default:0"` // 0=member, 1=owner
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MaxRulesPerCommunity caps the ordered rule list a community may carry.
const MaxRulesPerCommunity = 10

type CommunityRule struct {
	ID          uint64 `gorm:"primaryKey"`
	CommunityID uint64 `gorm:"not null;index"`
	OrderIndex  int    `gorm:"not null"`
	Text        string `gorm:"size:500;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
