package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/strataquery/strata/internal/config"
	"github.com/strataquery/strata/internal/runtime"
	"github.com/strataquery/strata/pkg/db/models"
)

func NewDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Manage dashboards and their widgets",
	}

	cmd.AddCommand(newDashboardCreateCommand())
	cmd.AddCommand(newDashboardListCommand())
	cmd.AddCommand(newDashboardShowCommand())
	cmd.AddCommand(newDashboardDeleteCommand())
	cmd.AddCommand(newWidgetCommand())
	cmd.AddCommand(newDashboardFiltersCommand())

	return cmd
}

func withRuntime(fn func(ctx context.Context, rt *runtime.Runtime) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rt := runtime.New(cfg)

	ctx := context.Background()
	if err := rt.Setup(ctx); err != nil {
		return err
	}
	defer rt.Shutdown()

	return fn(ctx, rt)
}

func newDashboardCreateCommand() *cobra.Command {
	var name string
	var description string
	var contextID string

	cmd := &cobra.Command{
		Use:   "create <alias>",
		Short: "Create a dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]

			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				dashboard := &models.Dashboard{
					ID:          uuid.NewString(),
					Name:        name,
					Alias:       alias,
					Description: description,
					ContextID:   contextID,
				}
				if dashboard.Name == "" {
					dashboard.Name = alias
				}

				if err := rt.Store().CreateDashboard(ctx, dashboard); err != nil {
					return fmt.Errorf("failed to create dashboard %q: %w", alias, err)
				}

				rt.Log().Info("Created dashboard '%s'", alias)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the alias)")
	cmd.Flags().StringVar(&description, "description", "", "dashboard description")
	cmd.Flags().StringVar(&contextID, "context", "", "default execution context")

	return cmd
}

func newDashboardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dashboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				dashboards, err := rt.Store().ListDashboards(ctx)
				if err != nil {
					return fmt.Errorf("failed to list dashboards: %w", err)
				}

				if len(dashboards) == 0 {
					fmt.Println("No dashboards defined")
					return nil
				}

				fmt.Printf("%-24s %-24s %s\n", "ALIAS", "NAME", "DESCRIPTION")
				for _, d := range dashboards {
					fmt.Printf("%-24s %-24s %s\n", d.Alias, d.Name, d.Description)
				}
				return nil
			})
		},
	}
}

func newDashboardShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <alias>",
		Short: "Show a dashboard with its widgets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				dashboard, err := rt.Store().GetDashboard(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to load dashboard %q: %w", args[0], err)
				}

				data, err := yaml.Marshal(dashboard)
				if err != nil {
					return fmt.Errorf("failed to marshal dashboard: %w", err)
				}

				fmt.Print(string(data))
				return nil
			})
		},
	}
}

func newDashboardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <alias>",
		Short: "Delete a dashboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				if err := rt.Store().DeleteDashboard(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete dashboard %q: %w", args[0], err)
				}

				rt.Log().Info("Deleted dashboard '%s'", args[0])
				return nil
			})
		},
	}
}

func newWidgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Manage dashboard widgets",
	}

	cmd.AddCommand(newWidgetAddCommand())
	cmd.AddCommand(newWidgetRemoveCommand())

	return cmd
}

func newWidgetAddCommand() *cobra.Command {
	var metricAlias string
	var title string
	var position int

	cmd := &cobra.Command{
		Use:   "add <dashboard-alias> <widget-alias>",
		Short: "Add a metric widget to a dashboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				dashboard, err := rt.Store().GetDashboard(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to load dashboard %q: %w", args[0], err)
				}

				metric, err := rt.Store().GetMetric(ctx, metricAlias)
				if err != nil {
					return fmt.Errorf("failed to load metric %q: %w", metricAlias, err)
				}

				widget := &models.Widget{
					ID:          uuid.NewString(),
					DashboardID: dashboard.ID,
					MetricID:    metric.ID,
					Alias:       args[1],
					Title:       title,
					Position:    position,
				}
				if widget.Title == "" {
					widget.Title = metric.Name
				}

				if err := rt.Store().CreateWidget(ctx, widget); err != nil {
					return fmt.Errorf("failed to create widget %q: %w", args[1], err)
				}

				rt.Log().Info("Added widget '%s' to dashboard '%s'", args[1], args[0])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&metricAlias, "metric", "", "alias of the metric shown by the widget")
	cmd.Flags().StringVar(&title, "title", "", "widget title (defaults to the metric name)")
	cmd.Flags().IntVar(&position, "position", 0, "widget position on the dashboard")
	cmd.MarkFlagRequired("metric")

	return cmd
}

func newWidgetRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <dashboard-alias> <widget-alias>",
		Short: "Remove a widget from a dashboard",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				dashboard, err := rt.Store().GetDashboard(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to load dashboard %q: %w", args[0], err)
				}

				widget, err := rt.Store().GetWidget(ctx, dashboard.ID, args[1])
				if err != nil {
					return fmt.Errorf("failed to load widget %q: %w", args[1], err)
				}

				if err := rt.Store().DeleteWidget(ctx, widget.ID); err != nil {
					return fmt.Errorf("failed to delete widget %q: %w", args[1], err)
				}

				rt.Log().Info("Removed widget '%s' from dashboard '%s'", args[1], args[0])
				return nil
			})
		},
	}
}
