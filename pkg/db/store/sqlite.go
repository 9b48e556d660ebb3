package store

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/strataquery/strata/pkg/db/migrations"
	"github.com/strataquery/strata/pkg/db/models"
)

// SQLiteStore implements MetadataStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path         string
	MaxOpenConns int
	LogLevel     logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed metadata store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(1) // SQLite only supports 1 writer
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs database migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return migrations.NewMigrator(s.db).Migrate(ctx)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Metric operations

func (s *SQLiteStore) CreateMetric(ctx context.Context, metric *models.Metric) error {
	return s.db.WithContext(ctx).Create(metric).Error
}

func (s *SQLiteStore) GetMetric(ctx context.Context, alias string) (*models.Metric, error) {
	var metric models.Metric
	err := s.db.WithContext(ctx).Where("alias = ?", alias).First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

func (s *SQLiteStore) GetMetricByID(ctx context.Context, id string) (*models.Metric, error) {
	var metric models.Metric
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&metric).Error
	if err != nil {
		return nil, err
	}
	return &metric, nil
}

func (s *SQLiteStore) ListMetrics(ctx context.Context) ([]models.Metric, error) {
	var metrics []models.Metric
	err := s.db.WithContext(ctx).Order("alias").Find(&metrics).Error
	return metrics, err
}

func (s *SQLiteStore) UpdateMetric(ctx context.Context, metric *models.Metric) error {
	return s.db.WithContext(ctx).Save(metric).Error
}

func (s *SQLiteStore) DeleteMetric(ctx context.Context, alias string) error {
	return s.db.WithContext(ctx).Where("alias = ?", alias).Delete(&models.Metric{}).Error
}

// Dashboard operations

func (s *SQLiteStore) CreateDashboard(ctx context.Context, dashboard *models.Dashboard) error {
	return s.db.WithContext(ctx).Create(dashboard).Error
}

func (s *SQLiteStore) GetDashboard(ctx context.Context, alias string) (*models.Dashboard, error) {
	var dashboard models.Dashboard
	err := s.db.WithContext(ctx).
		Preload("Widgets").
		Where("alias = ?", alias).
		First(&dashboard).Error
	if err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (s *SQLiteStore) ListDashboards(ctx context.Context) ([]models.Dashboard, error) {
	var dashboards []models.Dashboard
	err := s.db.WithContext(ctx).Order("alias").Find(&dashboards).Error
	return dashboards, err
}

func (s *SQLiteStore) UpdateDashboard(ctx context.Context, dashboard *models.Dashboard) error {
	return s.db.WithContext(ctx).Save(dashboard).Error
}

func (s *SQLiteStore) DeleteDashboard(ctx context.Context, alias string) error {
	return s.db.WithContext(ctx).Where("alias = ?", alias).Delete(&models.Dashboard{}).Error
}

// Widget operations

func (s *SQLiteStore) CreateWidget(ctx context.Context, widget *models.Widget) error {
	return s.db.WithContext(ctx).Create(widget).Error
}

func (s *SQLiteStore) GetWidget(ctx context.Context, dashboardID, alias string) (*models.Widget, error) {
	var widget models.Widget
	err := s.db.WithContext(ctx).
		Where("dashboard_id = ? AND alias = ?", dashboardID, alias).
		First(&widget).Error
	if err != nil {
		return nil, err
	}
	return &widget, nil
}

func (s *SQLiteStore) ListWidgets(ctx context.Context, dashboardID string) ([]models.Widget, error) {
	var widgets []models.Widget
	err := s.db.WithContext(ctx).
		Where("dashboard_id = ?", dashboardID).
		Order("position").
		Find(&widgets).Error
	return widgets, err
}

func (s *SQLiteStore) UpdateWidget(ctx context.Context, widget *models.Widget) error {
	return s.db.WithContext(ctx).Save(widget).Error
}

func (s *SQLiteStore) DeleteWidget(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Widget{}, "id = ?", id).Error
}
