package semantics

import (
	"reflect"
	"testing"

	"github.com/strataquery/strata/pkg/types"
)

func sampleList() FilterList {
	return FilterList{
		{
			Name:       "filter_status_equals",
			Query:      "status",
			Operator:   types.OpEquals,
			Value:      "active",
			ValueType:  types.ValueTypeString,
			FilterType: types.FilterTypeWhere,
			IsActive:   true,
		},
		{
			Name:       "filter_revenue_greater_than",
			Query:      "revenue",
			Operator:   types.OpGreaterThan,
			Value:      float64(1000),
			ValueType:  types.ValueTypeNumber,
			FilterType: types.FilterTypeHaving,
			IsActive:   true,
		},
		{
			Name:       "filter_region_in",
			Query:      "region",
			Operator:   types.OpIn,
			Values:     []any{"US", "EU"},
			ValueType:  types.ValueTypeString,
			FilterType: types.FilterTypeWhere,
			IsActive:   false,
		},
	}
}

func TestFilterList_Active(t *testing.T) {
	fl := sampleList()

	active := fl.Active()
	if len(active) != 2 {
		t.Fatalf("got %d active filters, want 2", len(active))
	}
	for _, f := range active {
		if !f.IsActive {
			t.Errorf("inactive filter %q leaked into Active()", f.Name)
		}
	}

	// The inactive entry stays in the original list.
	if len(fl) != 3 {
		t.Errorf("Active() must not shrink the source list, len = %d", len(fl))
	}
}

func TestFilterList_ByType(t *testing.T) {
	fl := sampleList()

	where := fl.ByType(types.FilterTypeWhere)
	having := fl.ByType(types.FilterTypeHaving)

	if len(where) != 2 || len(having) != 1 {
		t.Fatalf("got %d where / %d having, want 2/1", len(where), len(having))
	}
	if having[0].Name != "filter_revenue_greater_than" {
		t.Errorf("having filter = %q", having[0].Name)
	}
}

func TestFilterList_Names(t *testing.T) {
	want := []string{"filter_status_equals", "filter_revenue_greater_than", "filter_region_in"}
	if got := sampleList().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestFilterList_ColumnRoundTrip(t *testing.T) {
	fl := sampleList()

	value, err := fl.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var got FilterList
	if err := got.Scan(value); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(got) != len(fl) {
		t.Fatalf("got %d filters, want %d", len(got), len(fl))
	}
	if !reflect.DeepEqual(got.Names(), fl.Names()) {
		t.Errorf("names = %v, want %v", got.Names(), fl.Names())
	}
	if got[2].IsActive {
		t.Error("is_active=false lost in column round trip")
	}
	if !reflect.DeepEqual(got[2].Values, []any{"US", "EU"}) {
		t.Errorf("values = %v, want [US EU]", got[2].Values)
	}
}

func TestFilterList_ScanEmpty(t *testing.T) {
	var fl FilterList

	if err := fl.Scan(nil); err != nil {
		t.Errorf("Scan(nil) error = %v", err)
	}
	if fl != nil {
		t.Errorf("Scan(nil) = %v, want nil list", fl)
	}

	if err := fl.Scan("[]"); err != nil {
		t.Errorf("Scan(\"[]\") error = %v", err)
	}
	if len(fl) != 0 {
		t.Errorf("Scan(\"[]\") = %v, want empty list", fl)
	}

	if err := fl.Scan(12); err == nil {
		t.Error("expected unsupported column type to fail")
	}
}
