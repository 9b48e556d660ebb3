package types

import "testing"

func TestParseOperator(t *testing.T) {
	tests := []struct {
		input   string
		want    FilterOperator
		wantErr bool
	}{
		{"equals", OpEquals, false},
		{"in", OpIn, false},
		{"between", OpBetween, false},
		{"is_not_null", OpIsNotNull, false},
		{"EQUALS", "", true},
		{"matches", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOperator(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseOperator(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseOperator(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestOperatorShapes(t *testing.T) {
	tests := []struct {
		op      FilterOperator
		isSet   bool
		isRange bool
		isUnary bool
	}{
		{OpEquals, false, false, false},
		{OpGreaterThan, false, false, false},
		{OpIn, true, false, false},
		{OpNotIn, true, false, false},
		{OpBetween, false, true, false},
		{OpIsNull, false, false, true},
		{OpIsNotNull, false, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.op), func(t *testing.T) {
			if got := tt.op.IsSetOperator(); got != tt.isSet {
				t.Errorf("IsSetOperator() = %v, want %v", got, tt.isSet)
			}
			if got := tt.op.IsRangeOperator(); got != tt.isRange {
				t.Errorf("IsRangeOperator() = %v, want %v", got, tt.isRange)
			}
			if got := tt.op.IsUnary(); got != tt.isUnary {
				t.Errorf("IsUnary() = %v, want %v", got, tt.isUnary)
			}
		})
	}
}

func TestParseValueType(t *testing.T) {
	if vt, err := ParseValueType("number"); err != nil || vt != ValueTypeNumber {
		t.Errorf("ParseValueType(number) = %q, %v", vt, err)
	}
	if _, err := ParseValueType("decimal"); err == nil {
		t.Error("expected unknown value type to fail")
	}
}

func TestParseFilterType(t *testing.T) {
	if ft, err := ParseFilterType("having"); err != nil || ft != FilterTypeHaving {
		t.Errorf("ParseFilterType(having) = %q, %v", ft, err)
	}
	if _, err := ParseFilterType("qualify"); err == nil {
		t.Error("expected unknown filter type to fail")
	}
}
