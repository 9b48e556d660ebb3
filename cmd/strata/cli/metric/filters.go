package metric

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/strataquery/strata/internal/runtime"
	"github.com/strataquery/strata/pkg/filters"
	"github.com/strataquery/strata/pkg/semantics"
)

func newMetricFiltersCommand() *cobra.Command {
	var filtersFile string
	var where []string
	var replace bool
	var output string

	cmd := &cobra.Command{
		Use:   "filters <alias>",
		Short: "Resolve the canonical filter set for a metric",
		Long: `Resolve the canonical filter set for a metric.

Combines the metric's stored baseline filters with runtime filters from
--filters (structured YAML records) and --where (simple dimension=value
pairs, comma lists become IN), runtime winning on name collisions. With
--replace the baseline is discarded entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]

			structured, err := loadFilterFile(filtersFile)
			if err != nil {
				return err
			}

			entries, err := parseWhereFlags(where)
			if err != nil {
				return err
			}

			// Structured records first, simple --where pairs after,
			// each preserving its own order.
			runtimeFilters := append([]semantics.Filter(nil), structured...)
			runtimeFilters = append(runtimeFilters, filters.FromMap(entries)...)

			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				metric, err := rt.Store().GetMetric(ctx, alias)
				if err != nil {
					return fmt.Errorf("failed to load metric %q: %w", alias, err)
				}

				merged := filters.Merge(metric.Filters, runtimeFilters, replace)

				rt.Log().Debug("Resolved %d filters for metric '%s' (%d baseline, %d runtime)",
					len(merged), alias, len(metric.Filters), len(runtimeFilters))

				return printFilters(merged, output)
			})
		},
	}

	cmd.Flags().StringVar(&filtersFile, "filters", "", "YAML file with structured runtime filters")
	cmd.Flags().StringArrayVar(&where, "where", nil, "simple runtime filter as dimension=value (repeatable, comma list becomes IN)")
	cmd.Flags().BoolVar(&replace, "replace", false, "discard the baseline and use only runtime filters")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format (yaml, json)")

	return cmd
}

func printFilters(fs []semantics.Filter, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(fs)
		if err != nil {
			return fmt.Errorf("failed to marshal filters: %w", err)
		}
		fmt.Print(string(data))
	case "json":
		data, err := json.MarshalIndent(fs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal filters: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
	return nil
}
