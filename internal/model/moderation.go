package model

import "time"

const (
	ReportOpen      = 0
	ReportDismissed = 1
	ReportRemoved   = 2
)

type Report struct {
	ID         uint64 `gorm:"primaryKey"`
	ReporterID uint64 `gorm:"not null;index"`
	TargetType string `gorm:"size:16;not null;index:idx_report_target"`
	TargetID   uint64 `gorm:"not null;index:idx_report_target"`
	Reason     string `gorm:"size:500;not null"`
	Status     int    `gorm:"not null;default:0"`
	ResolvedBy uint64 // admin who resolved, 0 while open
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const (
	AppealPending  = 0
	AppealAccepted = 1
	AppealRejected = 2
)

// Appeal lets the author of a removed target contest the removal once.
type Appeal struct {
	ID         uint64 `gorm:"primaryKey"`
	ReportID   uint64 `gorm:"not null;uniqueIndex"`
	AuthorID   uint64 `gorm:"not null;index"`
	Statement  string `gorm:"size:1000;not null"`
	Status     int    `gorm:"not null;default:0"`
	ResolvedBy uint64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
