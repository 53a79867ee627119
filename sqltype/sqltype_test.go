package sqltype

import "testing"

func TestParseBasicTypes(t *testing.T) {
	tests := []struct {
		name string
		want SqlKind
	}{
		{"int2", SmallInt},
		{"integer", Integer},
		{"bigint", BigInt},
		{"bigserial", BigInt},
		{"real", Real},
		{"double precision", DoublePrecision},
		{"boolean", Boolean},
		{"text", Text},
		{"uuid", UUID},
		{"jsonb", JSONB},
		{"inet", Inet},
		{"cidr", Cidr},
		{"macaddr", MacAddr},
		{"frobnicate", Custom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.name)
			if got.Kind != tt.want {
				t.Errorf("Parse(%q).Kind = %v, want %v", tt.name, got.Kind, tt.want)
			}
		})
	}
}

func TestParseLengthAndScale(t *testing.T) {
	got := Parse("varchar(255)")
	if got.Kind != VarChar || got.Length != 255 {
		t.Errorf("Parse(varchar(255)) = %+v", got)
	}

	got = Parse("numeric(10,2)")
	if got.Kind != Numeric || got.Length != 10 || got.Scale != 2 {
		t.Errorf("Parse(numeric(10,2)) = %+v", got)
	}
}

func TestParseArray(t *testing.T) {
	got := Parse("integer[]")
	if got.Kind != Integer || !got.IsArray {
		t.Errorf("Parse(integer[]) = %+v", got)
	}
	if got.String() != "integer[]" {
		t.Errorf("String() = %q", got.String())
	}
}

func TestParseCustomTypePreservesName(t *testing.T) {
	got := Parse("order_status")
	if got.Kind != Custom || got.Name != "order_status" {
		t.Errorf("Parse(order_status) = %+v", got)
	}
	if got.String() != "order_status" {
		t.Errorf("String() = %q, want %q", got.String(), "order_status")
	}

	arr := Parse("order_status[]")
	if arr.Kind != Custom || arr.Name != "order_status" || !arr.IsArray {
		t.Errorf("Parse(order_status[]) = %+v", arr)
	}
	if arr.String() != "order_status[]" {
		t.Errorf("String() = %q, want %q", arr.String(), "order_status[]")
	}
}

func TestToLogicalMapping(t *testing.T) {
	tests := []struct {
		sql  string
		want LogicalKind
	}{
		{"smallint", LInt16},
		{"integer", LInt32},
		{"bigint", LInt64},
		{"real", LFloat32},
		{"double precision", LFloat64},
		{"numeric", LDecimal},
		{"boolean", LBool},
		{"text", LString},
		{"varchar(20)", LString},
		{"bytea", LBytes},
		{"date", LDate},
		{"time", LTime},
		{"timestamptz", LTimestamp},
		{"interval", LDuration},
		{"uuid", LUUID},
		{"jsonb", LJSON},
		{"inet", LIpAddr},
		{"cidr", LIpAddr},
		{"macaddr", LString},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			got := Parse(tt.sql).ToLogical()
			if got.Kind != tt.want {
				t.Errorf("Parse(%q).ToLogical().Kind = %v, want %v", tt.sql, got.Kind, tt.want)
			}
		})
	}
}

func TestToLogicalArray(t *testing.T) {
	got := Parse("text[]").ToLogical()
	if got.Kind != LArray || got.Elem == nil || got.Elem.Kind != LString {
		t.Errorf("Parse(text[]).ToLogical() = %+v", got)
	}
}

func TestNullableNormalizeIdempotent(t *testing.T) {
	n := ToNullable(LogicalType{Kind: LInt32}, true)
	normalized := n.Normalize().Normalize()
	if normalized != n {
		t.Errorf("Normalize() changed value: got %+v, want %+v", normalized, n)
	}
}

func TestNullableOr(t *testing.T) {
	nonNull := ToNullable(LogicalType{Kind: LInt32}, false)
	null := ToNullable(LogicalType{Kind: LInt32}, true)

	if !nonNull.Or(null).Nullable {
		t.Error("Or(nullable) should be nullable")
	}
	if nonNull.Or(nonNull).Nullable {
		t.Error("Or(non-nullable) should stay non-nullable")
	}
}
