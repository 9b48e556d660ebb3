package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/strataquery/strata/pkg/semantics"
)

// Metric represents a stored metric definition with its baseline filters
type Metric struct {
	ID          string `gorm:"primaryKey;type:text"`
	Name        string `gorm:"type:text;not null"`
	Alias       string `gorm:"type:text;not null;uniqueIndex"`
	Table       string `gorm:"column:table_name;type:text;not null"`
	Description string `gorm:"type:text"`

	// Baseline filters merged with runtime filters at query time
	Filters semantics.FilterList `gorm:"type:text"`

	Limit    int  `gorm:"column:row_limit;default:0"`
	IsPublic bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Widgets []Widget `gorm:"foreignKey:MetricID;constraint:OnDelete:CASCADE"`
}
