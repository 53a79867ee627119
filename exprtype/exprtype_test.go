package exprtype

import (
	"testing"

	"github.com/sqlcheck/sqlcheck/sqltype"
)

func nn(kind sqltype.SqlKind) sqltype.Nullable {
	return sqltype.Nullable{Type: sqltype.SqlType{Kind: kind}, Nullable: false}
}

func nullable(kind sqltype.SqlKind) sqltype.Nullable {
	return sqltype.Nullable{Type: sqltype.SqlType{Kind: kind}, Nullable: true}
}

func TestInferCountIsNeverNullable(t *testing.T) {
	got := Infer("count", []sqltype.Nullable{nn(sqltype.Integer)})
	if got.Nullable {
		t.Error("COUNT should never be nullable")
	}
	if got.Type.Kind != sqltype.BigInt {
		t.Errorf("COUNT result kind = %v, want bigint", got.Type.Kind)
	}
}

func TestInferSumAvgAlwaysNullable(t *testing.T) {
	for _, name := range []string{"sum", "avg"} {
		got := Infer(name, []sqltype.Nullable{nn(sqltype.Integer)})
		if !got.Nullable {
			t.Errorf("%s over a non-null column should still be nullable (empty-group case)", name)
		}
	}
}

func TestInferMinMaxPassThroughType(t *testing.T) {
	got := Infer("max", []sqltype.Nullable{nn(sqltype.Text)})
	if got.Type.Kind != sqltype.Text {
		t.Errorf("MAX(text) result kind = %v, want text", got.Type.Kind)
	}
	if !got.Nullable {
		t.Error("MAX should always be nullable")
	}
}

func TestInferNowNeverNullable(t *testing.T) {
	got := Infer("now", nil)
	if got.Nullable || got.Type.Kind != sqltype.TimestampTz {
		t.Errorf("now() = %+v, want non-nullable timestamptz", got)
	}
}

func TestInferStringFunctionsPropagateNullability(t *testing.T) {
	got := Infer("length", []sqltype.Nullable{nullable(sqltype.Text)})
	if !got.Nullable {
		t.Error("length(nullable text) should be nullable")
	}
	if got.Type.Kind != sqltype.Integer {
		t.Errorf("length() result kind = %v, want integer", got.Type.Kind)
	}
}

func TestInferUnknownFunctionFallsBackToCustom(t *testing.T) {
	got := Infer("some_custom_extension_func", []sqltype.Nullable{nn(sqltype.Text)})
	if got.Type.Kind != sqltype.Custom || got.Type.Name != "some_custom_extension_func" {
		t.Errorf("fallback = %+v, want Custom(some_custom_extension_func)", got.Type)
	}
	if !got.Nullable {
		t.Error("fallback for an unrecognized function should be conservatively nullable")
	}
}

func TestInferLocaltimeIsDateTimeGroup(t *testing.T) {
	got := Infer("localtime", nil)
	if got.Type.Kind != sqltype.Timestamp {
		t.Errorf("localtime() result kind = %v, want timestamp", got.Type.Kind)
	}
}

func TestInferDateConstructors(t *testing.T) {
	tests := []struct {
		name string
		want sqltype.SqlKind
	}{
		{"date_trunc", sqltype.Timestamp},
		{"to_timestamp", sqltype.TimestampTz},
		{"make_date", sqltype.Date},
		{"make_time", sqltype.Time},
		{"make_interval", sqltype.Interval},
	}
	for _, tt := range tests {
		got := Infer(tt.name, []sqltype.Nullable{nn(sqltype.Text)})
		if got.Type.Kind != tt.want {
			t.Errorf("%s() result kind = %v, want %v", tt.name, got.Type.Kind, tt.want)
		}
	}
}

func TestInferRegexpMatchReturnsTextArray(t *testing.T) {
	got := Infer("regexp_match", []sqltype.Nullable{nn(sqltype.Text), nn(sqltype.Text)})
	if got.Type.Kind != sqltype.Text || !got.Type.IsArray {
		t.Errorf("regexp_match() result = %+v, want text[]", got.Type)
	}
}

func TestCoalesceStripsOnlyFirstArgNullable(t *testing.T) {
	got := Coalesce([]sqltype.Nullable{nullable(sqltype.Text), nn(sqltype.Text)})
	if got.Nullable {
		t.Error("COALESCE should never be nullable per the module's simplified rule")
	}
	if got.Type.Kind != sqltype.Text {
		t.Errorf("COALESCE result kind = %v, want text", got.Type.Kind)
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	if _, ok := Lookup("COUNT"); !ok {
		t.Error("Lookup should be case-insensitive")
	}
}
