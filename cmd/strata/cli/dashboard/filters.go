package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/strataquery/strata/internal/runtime"
	"github.com/strataquery/strata/pkg/api/requests"
	"github.com/strataquery/strata/pkg/filters"
	"github.com/strataquery/strata/pkg/semantics"
)

func newDashboardFiltersCommand() *cobra.Command {
	var requestFile string
	var replace bool
	var output string

	cmd := &cobra.Command{
		Use:   "filters <alias>",
		Short: "Resolve the canonical filter set for every widget of a dashboard",
		Long: `Resolve the canonical filter set for every widget of a dashboard.

Reads a dashboard execution request (global filters plus per-widget
filters keyed by widget alias), validates it, and merges the resulting
runtime filters against each widget's metric baseline. The output maps
widget aliases to their merged filter lists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias := args[0]

			var request requests.DashboardExecution
			if requestFile != "" {
				data, err := os.ReadFile(requestFile)
				if err != nil {
					return fmt.Errorf("failed to read request file: %w", err)
				}
				if err := yaml.Unmarshal(data, &request); err != nil {
					return fmt.Errorf("failed to parse request file: %w", err)
				}
			}
			if err := request.Validate(); err != nil {
				return fmt.Errorf("invalid dashboard execution request: %w", err)
			}

			return withRuntime(func(ctx context.Context, rt *runtime.Runtime) error {
				dashboard, err := rt.Store().GetDashboard(ctx, alias)
				if err != nil {
					return fmt.Errorf("failed to load dashboard %q: %w", alias, err)
				}

				resolved := make(map[string][]semantics.Filter, len(dashboard.Widgets))
				for _, widget := range dashboard.Widgets {
					metric, err := rt.Store().GetMetricByID(ctx, widget.MetricID)
					if err != nil {
						return fmt.Errorf("failed to load metric for widget %q: %w", widget.Alias, err)
					}

					runtimeFilters := request.FiltersFor(widget.Alias)
					resolved[widget.Alias] = filters.Merge(metric.Filters, runtimeFilters, replace)
				}

				rt.Log().Debug("Resolved filters for %d widgets of dashboard '%s'", len(resolved), alias)

				return printResolved(resolved, output)
			})
		},
	}

	cmd.Flags().StringVar(&requestFile, "request", "", "YAML file with a dashboard execution request")
	cmd.Flags().BoolVar(&replace, "replace", false, "discard metric baselines and use only runtime filters")
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format (yaml, json)")

	return cmd
}

func printResolved(resolved map[string][]semantics.Filter, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(resolved)
		if err != nil {
			return fmt.Errorf("failed to marshal filters: %w", err)
		}
		fmt.Print(string(data))
	case "json":
		data, err := json.MarshalIndent(resolved, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal filters: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
	return nil
}
