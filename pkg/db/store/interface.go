package store

import (
	"context"

	"github.com/strataquery/strata/pkg/db/models"
)

// MetadataStore defines the interface for database operations
type MetadataStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Metric operations
	CreateMetric(ctx context.Context, metric *models.Metric) error
	GetMetric(ctx context.Context, alias string) (*models.Metric, error)
	GetMetricByID(ctx context.Context, id string) (*models.Metric, error)
	ListMetrics(ctx context.Context) ([]models.Metric, error)
	UpdateMetric(ctx context.Context, metric *models.Metric) error
	DeleteMetric(ctx context.Context, alias string) error

	// Dashboard operations
	CreateDashboard(ctx context.Context, dashboard *models.Dashboard) error
	GetDashboard(ctx context.Context, alias string) (*models.Dashboard, error)
	ListDashboards(ctx context.Context) ([]models.Dashboard, error)
	UpdateDashboard(ctx context.Context, dashboard *models.Dashboard) error
	DeleteDashboard(ctx context.Context, alias string) error

	// Widget operations
	CreateWidget(ctx context.Context, widget *models.Widget) error
	GetWidget(ctx context.Context, dashboardID, alias string) (*models.Widget, error)
	ListWidgets(ctx context.Context, dashboardID string) ([]models.Widget, error)
	UpdateWidget(ctx context.Context, widget *models.Widget) error
	DeleteWidget(ctx context.Context, id string) error
}
