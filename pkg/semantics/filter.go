package semantics

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/strataquery/strata/pkg/types"
)

// Filter is the canonical representation of a single filter condition.
// Name is the identity used as the merge key; Query holds the column or
// expression being filtered. Which value fields are populated depends on
// the operator (Value for single-value operators, Values for IN/NOT_IN,
// MinValue/MaxValue for BETWEEN) - this layer does not enforce that
// contract, validation belongs to the request boundary and the query
// builder.
type Filter struct {
	Name       string                `json:"name"                yaml:"name"`
	Query      string                `json:"query"               yaml:"query"`
	Table      string                `json:"table,omitempty"     yaml:"table,omitempty"`
	Operator   types.FilterOperator  `json:"operator"            yaml:"operator"`
	Value      any                   `json:"value,omitempty"     yaml:"value,omitempty"`
	Values     []any                 `json:"values,omitempty"    yaml:"values,omitempty"`
	MinValue   any                   `json:"min_value,omitempty" yaml:"min_value,omitempty"`
	MaxValue   any                   `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	ValueType  types.FilterValueType `json:"value_type"          yaml:"value_type"`
	FilterType types.FilterType      `json:"filter_type"         yaml:"filter_type"`
	IsActive   bool                  `json:"is_active"           yaml:"is_active"`
}

// FilterList is an ordered sequence of filters. It serializes as a JSON
// text column so metric definitions can embed their baseline filters.
type FilterList []Filter

// Active returns the filters the query builder should apply. Inactive
// entries stay in the list itself; dropping them is the builder's job.
func (fl FilterList) Active() FilterList {
	var out FilterList
	for _, f := range fl {
		if f.IsActive {
			out = append(out, f)
		}
	}
	return out
}

// ByType returns the filters routed to the given clause (where/having).
func (fl FilterList) ByType(ft types.FilterType) FilterList {
	var out FilterList
	for _, f := range fl {
		if f.FilterType == ft {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the filter names in list order.
func (fl FilterList) Names() []string {
	names := make([]string, len(fl))
	for i, f := range fl {
		names[i] = f.Name
	}
	return names
}

// Value implements driver.Valuer for GORM text columns
func (fl FilterList) Value() (driver.Value, error) {
	if fl == nil {
		return "[]", nil
	}
	data, err := json.Marshal(fl)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal filter list: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for GORM text columns
func (fl *FilterList) Scan(value any) error {
	if value == nil {
		*fl = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported filter list column type: %T", value)
	}

	if len(data) == 0 {
		*fl = nil
		return nil
	}

	return json.Unmarshal(data, fl)
}
