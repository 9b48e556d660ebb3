// Package requests defines the transport-facing schemas for runtime
// filter operations. The transport layer owns parsing and validation;
// only well-typed filter lists cross into the filter core.
package requests

import (
	"fmt"

	"github.com/strataquery/strata/pkg/filters"
	"github.com/strataquery/strata/pkg/semantics"
	"github.com/strataquery/strata/pkg/types"
)

// RuntimeFilter is a single runtime filter supplied at execution time,
// overriding or extending a metric's baseline filters without touching
// the stored definition.
type RuntimeFilter struct {
	Dimension  string                `json:"dimension"             yaml:"dimension"`
	Table      string                `json:"table,omitempty"       yaml:"table,omitempty"`
	Operator   types.FilterOperator  `json:"operator,omitempty"    yaml:"operator,omitempty"`
	Value      any                   `json:"value,omitempty"       yaml:"value,omitempty"`
	Values     []any                 `json:"values,omitempty"      yaml:"values,omitempty"`
	MinValue   any                   `json:"min_value,omitempty"   yaml:"min_value,omitempty"`
	MaxValue   any                   `json:"max_value,omitempty"   yaml:"max_value,omitempty"`
	ValueType  types.FilterValueType `json:"value_type,omitempty"  yaml:"value_type,omitempty"`
	FilterType types.FilterType      `json:"filter_type,omitempty" yaml:"filter_type,omitempty"`
	IsActive   *bool                 `json:"is_active,omitempty"   yaml:"is_active,omitempty"`
}

// ApplyDefaults fills in the wire defaults for fields the caller left
// empty: operator=equals, value_type=string, filter_type=where,
// is_active=true.
func (rf *RuntimeFilter) ApplyDefaults() {
	if rf.Operator == "" {
		rf.Operator = types.OpEquals
	}
	if rf.ValueType == "" {
		rf.ValueType = types.ValueTypeString
	}
	if rf.FilterType == "" {
		rf.FilterType = types.FilterTypeWhere
	}
	if rf.IsActive == nil {
		active := true
		rf.IsActive = &active
	}
}

// Validate checks vocabulary membership and the operator/value shape
// contract. Defaults are applied first so a zero-valued request is judged
// by what actually reaches the core.
func (rf *RuntimeFilter) Validate() error {
	rf.ApplyDefaults()

	if rf.Dimension == "" {
		return fmt.Errorf("filter dimension is required")
	}
	if !rf.Operator.Valid() {
		return fmt.Errorf("unknown filter operator: %q", rf.Operator)
	}
	if !rf.ValueType.Valid() {
		return fmt.Errorf("unknown filter value type: %q", rf.ValueType)
	}
	if !rf.FilterType.Valid() {
		return fmt.Errorf("unknown filter type: %q", rf.FilterType)
	}

	switch {
	case rf.Operator.IsSetOperator():
		if len(rf.Values) == 0 {
			return fmt.Errorf("operator %q requires values", rf.Operator)
		}
	case rf.Operator.IsRangeOperator():
		if rf.MinValue == nil || rf.MaxValue == nil {
			return fmt.Errorf("operator %q requires min_value and max_value", rf.Operator)
		}
	case rf.Operator.IsUnary():
		// No value expected.
	default:
		if rf.Value == nil {
			return fmt.Errorf("operator %q requires a value", rf.Operator)
		}
	}

	return nil
}

// ToFilter converts the request into a canonical filter via the
// constructor, applying defaults for unset fields.
func (rf RuntimeFilter) ToFilter() semantics.Filter {
	rf.ApplyDefaults()

	opts := []filters.Option{
		filters.WithValueType(rf.ValueType),
		filters.WithFilterType(rf.FilterType),
	}
	if rf.Table != "" {
		opts = append(opts, filters.WithTable(rf.Table))
	}
	if rf.Value != nil {
		opts = append(opts, filters.WithValue(rf.Value))
	}
	if rf.Values != nil {
		opts = append(opts, filters.WithValues(rf.Values))
	}
	if rf.MinValue != nil || rf.MaxValue != nil {
		opts = append(opts, filters.WithRange(rf.MinValue, rf.MaxValue))
	}
	if rf.IsActive != nil && !*rf.IsActive {
		opts = append(opts, filters.Inactive())
	}

	return filters.New(rf.Dimension, rf.Operator, opts...)
}

// ToFilters converts a request list into canonical filters, preserving
// order.
func ToFilters(reqs []RuntimeFilter) []semantics.Filter {
	if reqs == nil {
		return nil
	}
	out := make([]semantics.Filter, 0, len(reqs))
	for _, rf := range reqs {
		out = append(out, rf.ToFilter())
	}
	return out
}

// WidgetExecution carries runtime overrides for executing a single
// dashboard widget: extra filters, parameter values, and optional context
// and limit overrides.
type WidgetExecution struct {
	Filters    []RuntimeFilter `json:"filters,omitempty"    yaml:"filters,omitempty"`
	Parameters map[string]any  `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ContextID  string          `json:"context_id,omitempty" yaml:"context_id,omitempty"`
	Limit      *int            `json:"limit,omitempty"      yaml:"limit,omitempty"`
}

// Validate walks the nested runtime filters.
func (we *WidgetExecution) Validate() error {
	for i := range we.Filters {
		if err := we.Filters[i].Validate(); err != nil {
			return fmt.Errorf("filter %d: %w", i, err)
		}
	}
	if we.Limit != nil && *we.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// DashboardExecution carries runtime overrides for executing a whole
// dashboard: global filters applied to every widget, per-widget filters
// keyed by widget alias or id, and shared parameter values.
type DashboardExecution struct {
	GlobalFilters []RuntimeFilter            `json:"global_filters,omitempty" yaml:"global_filters,omitempty"`
	WidgetFilters map[string][]RuntimeFilter `json:"widget_filters,omitempty" yaml:"widget_filters,omitempty"`
	Parameters    map[string]any             `json:"parameters,omitempty"     yaml:"parameters,omitempty"`
	ContextID     string                     `json:"context_id,omitempty"     yaml:"context_id,omitempty"`
}

// Validate walks the global and per-widget runtime filters.
func (de *DashboardExecution) Validate() error {
	for i := range de.GlobalFilters {
		if err := de.GlobalFilters[i].Validate(); err != nil {
			return fmt.Errorf("global filter %d: %w", i, err)
		}
	}
	for alias, fs := range de.WidgetFilters {
		for i := range fs {
			if err := fs[i].Validate(); err != nil {
				return fmt.Errorf("widget %q filter %d: %w", alias, i, err)
			}
		}
	}
	return nil
}

// FiltersFor assembles the runtime filter list for one widget: global
// filters first, then the widget's own, each in request order. Merging
// against the metric baseline happens downstream in the filter core.
func (de *DashboardExecution) FiltersFor(alias string) []semantics.Filter {
	var reqs []RuntimeFilter
	reqs = append(reqs, de.GlobalFilters...)
	reqs = append(reqs, de.WidgetFilters[alias]...)
	if reqs == nil {
		return nil
	}
	return ToFilters(reqs)
}
