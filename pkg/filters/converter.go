// Package filters normalizes runtime filter inputs into canonical
// semantics.Filter values and merges filter lists from different sources.
package filters

import (
	"fmt"

	"github.com/strataquery/strata/pkg/semantics"
	"github.com/strataquery/strata/pkg/types"
)

// Option configures optional fields on a constructed filter.
type Option func(*semantics.Filter)

// WithValue sets the single comparison value (EQUALS, GREATER_THAN, ...).
func WithValue(value any) Option {
	return func(f *semantics.Filter) {
		f.Value = value
	}
}

// WithValues sets the value list for IN/NOT_IN operators.
func WithValues(values []any) Option {
	return func(f *semantics.Filter) {
		f.Values = values
	}
}

// WithRange sets the bounds for the BETWEEN operator.
func WithRange(min, max any) Option {
	return func(f *semantics.Filter) {
		f.MinValue = min
		f.MaxValue = max
	}
}

// WithTable sets the source table, disambiguating the dimension when
// multiple tables are joined.
func WithTable(table string) Option {
	return func(f *semantics.Filter) {
		f.Table = table
	}
}

// WithValueType overrides the default STRING value type hint.
func WithValueType(vt types.FilterValueType) Option {
	return func(f *semantics.Filter) {
		f.ValueType = vt
	}
}

// WithFilterType overrides the default WHERE application point.
func WithFilterType(ft types.FilterType) Option {
	return func(f *semantics.Filter) {
		f.FilterType = ft
	}
}

// WithName overrides the auto-derived filter name. Explicit naming is the
// opt-in mechanism for overriding a baseline filter during merge.
func WithName(name string) Option {
	return func(f *semantics.Filter) {
		f.Name = name
	}
}

// Inactive marks the filter as inactive. Inactive filters stay in the
// list; the query builder skips them.
func Inactive() Option {
	return func(f *semantics.Filter) {
		f.IsActive = false
	}
}

// Name derives the canonical auto-generated name for a dimension/operator
// pair.
func Name(dimension string, operator types.FilterOperator) string {
	return fmt.Sprintf("filter_%s_%s", dimension, operator)
}

// New constructs a canonical filter from individual parameters. Inputs are
// copied verbatim; no operator/value-shape consistency is checked here.
// Without WithName the name is derived as "filter_<dimension>_<operator>".
func New(dimension string, operator types.FilterOperator, opts ...Option) semantics.Filter {
	f := semantics.Filter{
		Query:      dimension,
		Operator:   operator,
		ValueType:  types.ValueTypeString,
		FilterType: types.FilterTypeWhere,
		IsActive:   true,
	}

	for _, opt := range opts {
		opt(&f)
	}

	if f.Name == "" {
		f.Name = Name(dimension, operator)
	}

	return f
}

// MapEntry is one dimension/value pair of an ordered filter mapping.
type MapEntry struct {
	Dimension string
	Value     any
}

// FromMap converts an ordered {dimension: value} mapping into filters,
// preserving entry order. Sequence values produce an IN filter, scalars an
// EQUALS filter. Only explicit slice types count as sequences: strings,
// maps and byte slices are scalars even though they are iterable.
func FromMap(entries []MapEntry) []semantics.Filter {
	out := make([]semantics.Filter, 0, len(entries))

	for _, entry := range entries {
		if values, ok := asValueList(entry.Value); ok {
			out = append(out, New(entry.Dimension, types.OpIn, WithValues(values)))
		} else {
			out = append(out, New(entry.Dimension, types.OpEquals, WithValue(entry.Value)))
		}
	}

	return out
}

// asValueList reports whether the value is a sequence and widens it to
// []any. Only the enumerated slice types count; strings, maps and byte
// slices never dispatch to IN.
func asValueList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

// Merge combines a baseline filter list with runtime filters, runtime
// winning on name collisions. With replace set, runtime is returned as-is
// and the baseline is discarded entirely.
//
// The output keeps the baseline's relative order: a runtime filter whose
// name exists in the baseline overwrites that entry in place, runtime-only
// names are appended in runtime order after all baseline entries. Inputs
// are never mutated.
func Merge(existing, runtime []semantics.Filter, replace bool) []semantics.Filter {
	if replace {
		return runtime
	}
	if len(existing) == 0 {
		return runtime
	}
	if len(runtime) == 0 {
		return existing
	}

	merged := make([]semantics.Filter, 0, len(existing)+len(runtime))
	index := make(map[string]int, len(existing)+len(runtime))

	put := func(f semantics.Filter) {
		if i, ok := index[f.Name]; ok {
			merged[i] = f
			return
		}
		index[f.Name] = len(merged)
		merged = append(merged, f)
	}

	for _, f := range existing {
		put(f)
	}
	for _, f := range runtime {
		put(f)
	}

	return merged
}
