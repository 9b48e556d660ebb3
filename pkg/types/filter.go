package types

import "fmt"

// FilterOperator represents a filter comparison operator
type FilterOperator string

const (
	OpEquals             FilterOperator = "equals"
	OpNotEquals          FilterOperator = "not_equals"
	OpGreaterThan        FilterOperator = "greater_than"
	OpGreaterThanOrEqual FilterOperator = "greater_than_or_equal"
	OpLessThan           FilterOperator = "less_than"
	OpLessThanOrEqual    FilterOperator = "less_than_or_equal"
	OpLike               FilterOperator = "like"
	OpNotLike            FilterOperator = "not_like"
	OpIn                 FilterOperator = "in"
	OpNotIn              FilterOperator = "not_in"
	OpBetween            FilterOperator = "between"
	OpIsNull             FilterOperator = "is_null"
	OpIsNotNull          FilterOperator = "is_not_null"
)

// FilterValueType is a type hint governing value coercion downstream
type FilterValueType string

const (
	ValueTypeString  FilterValueType = "string"
	ValueTypeNumber  FilterValueType = "number"
	ValueTypeBoolean FilterValueType = "boolean"
	ValueTypeDate    FilterValueType = "date"
)

// FilterType decides whether a condition lands in the WHERE clause
// (pre-aggregation) or the HAVING clause (post-aggregation)
type FilterType string

const (
	FilterTypeWhere  FilterType = "where"
	FilterTypeHaving FilterType = "having"
)

var operators = map[FilterOperator]bool{
	OpEquals:             true,
	OpNotEquals:          true,
	OpGreaterThan:        true,
	OpGreaterThanOrEqual: true,
	OpLessThan:           true,
	OpLessThanOrEqual:    true,
	OpLike:               true,
	OpNotLike:            true,
	OpIn:                 true,
	OpNotIn:              true,
	OpBetween:            true,
	OpIsNull:             true,
	OpIsNotNull:          true,
}

// Valid reports whether the operator belongs to the closed vocabulary
func (op FilterOperator) Valid() bool {
	return operators[op]
}

func (op FilterOperator) String() string {
	return string(op)
}

// IsSetOperator reports whether the operator compares against a value list
func (op FilterOperator) IsSetOperator() bool {
	return op == OpIn || op == OpNotIn
}

// IsRangeOperator reports whether the operator expects min/max bounds
func (op FilterOperator) IsRangeOperator() bool {
	return op == OpBetween
}

// IsUnary reports whether the operator takes no value at all
func (op FilterOperator) IsUnary() bool {
	return op == OpIsNull || op == OpIsNotNull
}

// ParseOperator converts a wire string into a FilterOperator
func ParseOperator(s string) (FilterOperator, error) {
	op := FilterOperator(s)
	if !op.Valid() {
		return "", fmt.Errorf("unknown filter operator: %q", s)
	}
	return op, nil
}

// Valid reports whether the value type belongs to the closed vocabulary
func (vt FilterValueType) Valid() bool {
	switch vt {
	case ValueTypeString, ValueTypeNumber, ValueTypeBoolean, ValueTypeDate:
		return true
	}
	return false
}

func (vt FilterValueType) String() string {
	return string(vt)
}

// ParseValueType converts a wire string into a FilterValueType
func ParseValueType(s string) (FilterValueType, error) {
	vt := FilterValueType(s)
	if !vt.Valid() {
		return "", fmt.Errorf("unknown filter value type: %q", s)
	}
	return vt, nil
}

// Valid reports whether the filter type belongs to the closed vocabulary
func (ft FilterType) Valid() bool {
	return ft == FilterTypeWhere || ft == FilterTypeHaving
}

func (ft FilterType) String() string {
	return string(ft)
}

// ParseFilterType converts a wire string into a FilterType
func ParseFilterType(s string) (FilterType, error) {
	ft := FilterType(s)
	if !ft.Valid() {
		return "", fmt.Errorf("unknown filter type: %q", s)
	}
	return ft, nil
}
