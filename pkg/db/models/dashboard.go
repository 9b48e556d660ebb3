package models

import (
	"time"

	"gorm.io/gorm"
)

// Dashboard represents a collection of widgets rendered together
type Dashboard struct {
	ID          string `gorm:"primaryKey;type:text"`
	Name        string `gorm:"type:text;not null"`
	Alias       string `gorm:"type:text;not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	ContextID   string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Widgets []Widget `gorm:"foreignKey:DashboardID;constraint:OnDelete:CASCADE"`
}

// Widget represents a single metric visualization placed on a dashboard.
// Its alias is the key runtime per-widget filters are addressed by.
type Widget struct {
	ID          string `gorm:"primaryKey;type:text"`
	DashboardID string `gorm:"type:text;not null;index:idx_dashboard_widgets"`
	MetricID    string `gorm:"type:text;not null;index"`
	Alias       string `gorm:"type:text;not null;index"`
	Title       string `gorm:"type:text"`
	Position    int    `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Dashboard Dashboard `gorm:"foreignKey:DashboardID;references:ID"`
	Metric    Metric    `gorm:"foreignKey:MetricID;references:ID"`
}
