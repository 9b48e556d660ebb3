package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/strataquery/strata/pkg/db/models"
	"github.com/strataquery/strata/pkg/filters"
	"github.com/strataquery/strata/pkg/semantics"
	"github.com/strataquery/strata/pkg/types"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(SQLiteConfig{
		Path: filepath.Join(t.TempDir(), "strata.db"),
	})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}

	ctx := context.Background()
	if err := s.Connect(ctx); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestSQLiteStore_MetricRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	metric := &models.Metric{
		ID:          uuid.NewString(),
		Name:        "Monthly Revenue",
		Alias:       "monthly_revenue",
		Table:       "orders",
		Description: "Total revenue per month",
		Filters: semantics.FilterList{
			filters.New("status", types.OpEquals, filters.WithValue("completed")),
			filters.New("amount", types.OpGreaterThan,
				filters.WithValue(float64(0)),
				filters.WithValueType(types.ValueTypeNumber)),
		},
		Limit: 1000,
	}

	if err := s.CreateMetric(ctx, metric); err != nil {
		t.Fatalf("CreateMetric() error = %v", err)
	}

	got, err := s.GetMetric(ctx, "monthly_revenue")
	if err != nil {
		t.Fatalf("GetMetric() error = %v", err)
	}

	if got.Name != metric.Name || got.Table != metric.Table || got.Limit != metric.Limit {
		t.Errorf("unexpected metric: %+v", got)
	}
	if len(got.Filters) != 2 {
		t.Fatalf("got %d baseline filters, want 2", len(got.Filters))
	}
	if got.Filters[0].Name != "filter_status_equals" {
		t.Errorf("first filter name = %q, want %q", got.Filters[0].Name, "filter_status_equals")
	}
	if got.Filters[1].Operator != types.OpGreaterThan {
		t.Errorf("second filter operator = %q, want %q", got.Filters[1].Operator, types.OpGreaterThan)
	}
}

func TestSQLiteStore_MetricBaselineMerge(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	metric := &models.Metric{
		ID:    uuid.NewString(),
		Name:  "Active Users",
		Alias: "active_users",
		Table: "users",
		Filters: semantics.FilterList{
			filters.New("status", types.OpEquals, filters.WithValue("active")),
		},
	}
	if err := s.CreateMetric(ctx, metric); err != nil {
		t.Fatalf("CreateMetric() error = %v", err)
	}

	stored, err := s.GetMetric(ctx, "active_users")
	if err != nil {
		t.Fatalf("GetMetric() error = %v", err)
	}

	runtime := []semantics.Filter{
		filters.New("status", types.OpEquals, filters.WithValue("suspended")),
		filters.New("region", types.OpIn, filters.WithValues([]any{"US", "EU"})),
	}

	merged := filters.Merge(stored.Filters, runtime, false)

	wantNames := []string{"filter_status_equals", "filter_region_in"}
	if !reflect.DeepEqual(semantics.FilterList(merged).Names(), wantNames) {
		t.Errorf("merged names = %v, want %v", semantics.FilterList(merged).Names(), wantNames)
	}
	if merged[0].Value != "suspended" {
		t.Errorf("runtime filter should win on name collision, got %v", merged[0].Value)
	}
}

func TestSQLiteStore_MetricUpdateAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	metric := &models.Metric{
		ID:    uuid.NewString(),
		Name:  "Order Count",
		Alias: "order_count",
		Table: "orders",
	}
	if err := s.CreateMetric(ctx, metric); err != nil {
		t.Fatalf("CreateMetric() error = %v", err)
	}

	metric.Filters = semantics.FilterList{
		filters.New("price", types.OpBetween,
			filters.WithRange(float64(10), float64(100)),
			filters.WithValueType(types.ValueTypeNumber)),
	}
	if err := s.UpdateMetric(ctx, metric); err != nil {
		t.Fatalf("UpdateMetric() error = %v", err)
	}

	got, err := s.GetMetric(ctx, "order_count")
	if err != nil {
		t.Fatalf("GetMetric() error = %v", err)
	}
	if len(got.Filters) != 1 || got.Filters[0].Name != "filter_price_between" {
		t.Errorf("unexpected filters after update: %v", got.Filters)
	}

	if err := s.DeleteMetric(ctx, "order_count"); err != nil {
		t.Fatalf("DeleteMetric() error = %v", err)
	}
	if _, err := s.GetMetric(ctx, "order_count"); err == nil {
		t.Error("expected deleted metric to be gone")
	}
}

func TestSQLiteStore_DashboardWidgets(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	metric := &models.Metric{
		ID:    uuid.NewString(),
		Name:  "Revenue",
		Alias: "revenue",
		Table: "orders",
	}
	if err := s.CreateMetric(ctx, metric); err != nil {
		t.Fatalf("CreateMetric() error = %v", err)
	}

	dashboard := &models.Dashboard{
		ID:    uuid.NewString(),
		Name:  "Sales Overview",
		Alias: "sales_overview",
	}
	if err := s.CreateDashboard(ctx, dashboard); err != nil {
		t.Fatalf("CreateDashboard() error = %v", err)
	}

	widgets := []models.Widget{
		{ID: uuid.NewString(), DashboardID: dashboard.ID, MetricID: metric.ID, Alias: "revenue_chart", Position: 1},
		{ID: uuid.NewString(), DashboardID: dashboard.ID, MetricID: metric.ID, Alias: "revenue_table", Position: 0},
	}
	for i := range widgets {
		if err := s.CreateWidget(ctx, &widgets[i]); err != nil {
			t.Fatalf("CreateWidget() error = %v", err)
		}
	}

	listed, err := s.ListWidgets(ctx, dashboard.ID)
	if err != nil {
		t.Fatalf("ListWidgets() error = %v", err)
	}
	if len(listed) != 2 || listed[0].Alias != "revenue_table" {
		t.Errorf("expected widgets ordered by position, got %v", listed)
	}

	got, err := s.GetWidget(ctx, dashboard.ID, "revenue_chart")
	if err != nil {
		t.Fatalf("GetWidget() error = %v", err)
	}
	if got.MetricID != metric.ID {
		t.Errorf("widget metric = %q, want %q", got.MetricID, metric.ID)
	}

	loaded, err := s.GetDashboard(ctx, "sales_overview")
	if err != nil {
		t.Fatalf("GetDashboard() error = %v", err)
	}
	if len(loaded.Widgets) != 2 {
		t.Errorf("expected preloaded widgets, got %d", len(loaded.Widgets))
	}
}
