package metric

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/strataquery/strata/internal/config"
	"github.com/strataquery/strata/internal/runtime"
	"github.com/strataquery/strata/pkg/api/requests"
	"github.com/strataquery/strata/pkg/db/models"
	"github.com/strataquery/strata/pkg/filters"
	"github.com/strataquery/strata/pkg/semantics"
)

func NewMetricCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metric",
		Short: "Manage metric definitions",
		Long:  "Manage stored metric definitions and their baseline filters.",
	}

	cmd.AddCommand(newMetricCreateCommand())
	cmd.AddCommand(newMetricListCommand())
	cmd.AddCommand(newMetricShowCommand())
	cmd.AddCommand(newMetricDeleteCommand())
	cmd.AddCommand(newMetricFiltersCommand())

	return cmd
}

// withRuntime loads the configuration, wires the shared services and runs
// the command body against the metadata store.
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

// loadFilterFile reads a YAML file of structured runtime filter
// records, validates them at the boundary and converts them into
// canonical filters.
func loadFilterFile(path string) (semantics.FilterList, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filters file: %w", err)
	}

	var reqs []requests.RuntimeFilter
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		return nil, fmt.Errorf("failed to parse filters file: %w", err)
	}

	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
	}

	return requests.ToFilters(reqs), nil
}

func newMetricCreateCommand() *cobra.Command {
	var name string
	var table string
	var description string
	var limit int
	var filtersFile string

	cmd := &cobra.Command{
		Use:   "create <alias>",
		Short: "Create a metric definition",
		Long:  "Create a metric definition, optionally seeding its baseline filters from a YAML file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]

			baseline, err := loadFilterFile(filtersFile)
			if err != nil {
				return err
			}

			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				metric := &models.Metric{
					ID:          uuid.NewString(),
					Name:        name,
					Alias:       alias,
					Table:       table,
					Description: description,
					Filters:     baseline,
					Limit:       limit,
				}
				if metric.Name == "" {
					metric.Name = alias
				}

				if err := rt.Store().CreateMetric(ctx, metric); err != nil {
					return fmt.Errorf("failed to create metric %q: %w", alias, err)
				}

				rt.Log().Info("Created metric '%s' with %d baseline filters", alias, len(baseline))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the alias)")
	cmd.Flags().StringVar(&table, "table", "", "source table of the metric")
	cmd.Flags().StringVar(&description, "description", "", "metric description")
	cmd.Flags().IntVar(&limit, "limit", 0, "default row limit (0 = unlimited)")
	cmd.Flags().StringVar(&filtersFile, "filters", "", "YAML file with baseline filter definitions")
	cmd.MarkFlagRequired("table")

	return cmd
}

func newMetricListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List metric definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				metrics, err := rt.Store().ListMetrics(ctx)
				if err != nil {
					return fmt.Errorf("failed to list metrics: %w", err)
				}

				if len(metrics) == 0 {
					fmt.Println("No metrics defined")
					return nil
				}

				fmt.Printf("%-24s %-24s %-16s %s\n", "ALIAS", "NAME", "TABLE", "FILTERS")
				for _, m := range metrics {
					fmt.Printf("%-24s %-24s %-16s %d\n", m.Alias, m.Name, m.Table, len(m.Filters))
				}
				return nil
			})
		},
	}

	return cmd
}

func newMetricShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <alias>",
		Short: "Show a metric definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				metric, err := rt.Store().GetMetric(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to load metric %q: %w", args[0], err)
				}

				data, err := yaml.Marshal(metric)
				if err != nil {
					return fmt.Errorf("failed to marshal metric: %w", err)
				}

				fmt.Print(string(data))
				return nil
			})
		},
	}

	return cmd
}

func newMetricDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <alias>",
		Short: "Delete a metric definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				if err := rt.Store().DeleteMetric(ctx, args[0]); err != nil {
					return fmt.Errorf("failed to delete metric %q: %w", args[0], err)
				}

				rt.Log().Info("Deleted metric '%s'", args[0])
				return nil
			})
		},
	}

	return cmd
}

// parseWhereFlags converts repeated --where dim=value flags into ordered
// map entries. Comma-separated values become a value list (IN), plain
// values an equality match; flag order is preserved.
func parseWhereFlags(flags []string) ([]filters.MapEntry, error) {
	entries := make([]filters.MapEntry, 0, len(flags))

	for _, flag := range flags {
		dim, raw, ok := strings.Cut(flag, "=")
		if !ok || dim == "" {
			return nil, fmt.Errorf("invalid --where %q, expected dimension=value", flag)
		}

		if strings.Contains(raw, ",") {
			parts := strings.Split(raw, ",")
			values := make([]any, 0, len(parts))
			for _, p := range parts {
				values = append(values, strings.TrimSpace(p))
			}
			entries = append(entries, filters.MapEntry{Dimension: dim, Value: values})
		} else {
			entries = append(entries, filters.MapEntry{Dimension: dim, Value: raw})
		}
	}

	return entries, nil
}
