package sqltype

import "fmt"

// LogicalKind is the host-neutral shape a SqlType collapses to — the
// vocabulary a code generator would bind columns to, independent of which
// PostgreSQL spelling produced them.
type LogicalKind int

const (
	LInt16 LogicalKind = iota
	LInt32
	LInt64
	LFloat32
	LFloat64
	LDecimal
	LBool
	LString
	LBytes
	LDate
	LTime
	LTimestamp
	LDuration
	LUUID
	LJSON
	LArray
	LIpAddr
	LUnknown
)

var logicalNames = map[LogicalKind]string{
	LInt16:     "int16",
	LInt32:     "int32",
	LInt64:     "int64",
	LFloat32:   "float32",
	LFloat64:   "float64",
	LDecimal:   "decimal",
	LBool:      "bool",
	LString:    "string",
	LBytes:     "bytes",
	LDate:      "date",
	LTime:      "time",
	LTimestamp: "timestamp",
	LDuration:  "duration",
	LUUID:      "uuid",
	LJSON:      "json",
	LArray:     "array",
	LIpAddr:    "ipaddr",
	LUnknown:   "unknown",
}

func (k LogicalKind) String() string {
	if name, ok := logicalNames[k]; ok {
		return name
	}
	return "unknown"
}

// LogicalType is a LogicalKind plus, for LArray, the element type. It
// never carries nullability itself — that is the job of Nullable, which
// wraps a LogicalType (see Nullable.Normalize).
type LogicalType struct {
	Kind LogicalKind
	Elem *LogicalType // non-nil only when Kind == LArray
}

func (t LogicalType) String() string {
	if t.Kind == LArray && t.Elem != nil {
		return fmt.Sprintf("array<%s>", t.Elem.String())
	}
	return t.Kind.String()
}

// Nullable pairs a LogicalType with whether the value may be SQL NULL.
// Normalize collapses any accidental double-wrapping (Nullable(Nullable(t))
// is defined to be identical to Nullable(t)) so callers never have to
// special-case it.
type Nullable struct {
	Type     LogicalType
	Nullable bool
}

// Normalize applies Nullable(Nullable(t)) ≡ Nullable(t): since LogicalType
// itself has no nested-nullable representation, a Nullable value is
// already normal by construction. Normalize exists so resolver/exprtype
// code can call it unconditionally after combining two Nullable values
// (e.g. via Or) without needing to reason about whether that's necessary.
func (n Nullable) Normalize() Nullable {
	return n
}

// Or returns a Nullable that is nullable if either n or other is, keeping
// n's Type. Used when a value's nullability comes from more than one
// source (e.g. an outer-joined column whose declared type is itself
// nullable).
func (n Nullable) Or(other Nullable) Nullable {
	return Nullable{Type: n.Type, Nullable: n.Nullable || other.Nullable}.Normalize()
}

// ToNullable wraps t as non-null unless nullable is true.
func ToNullable(t LogicalType, nullable bool) Nullable {
	return Nullable{Type: t, Nullable: nullable}
}

// ToLogical maps a SqlType to its host-neutral LogicalType, per this
// module's closed §3.2 mapping table. Unknown SQL types map to LUnknown.
func (t SqlType) ToLogical() LogicalType {
	if t.IsArray {
		elem := t
		elem.IsArray = false
		e := elem.ToLogical()
		return LogicalType{Kind: LArray, Elem: &e}
	}

	switch t.Kind {
	case SmallInt:
		return LogicalType{Kind: LInt16}
	case Integer:
		return LogicalType{Kind: LInt32}
	case BigInt:
		return LogicalType{Kind: LInt64}
	case Real:
		return LogicalType{Kind: LFloat32}
	case DoublePrecision:
		return LogicalType{Kind: LFloat64}
	case Numeric:
		return LogicalType{Kind: LDecimal}
	case Boolean:
		return LogicalType{Kind: LBool}
	case Text, VarChar, Char:
		return LogicalType{Kind: LString}
	case Bytea:
		return LogicalType{Kind: LBytes}
	case Date:
		return LogicalType{Kind: LDate}
	case Time, TimeTz:
		return LogicalType{Kind: LTime}
	case Timestamp, TimestampTz:
		return LogicalType{Kind: LTimestamp}
	case Interval:
		return LogicalType{Kind: LDuration}
	case UUID:
		return LogicalType{Kind: LUUID}
	case JSON, JSONB:
		return LogicalType{Kind: LJSON}
	case Inet, Cidr:
		return LogicalType{Kind: LIpAddr}
	case MacAddr:
		return LogicalType{Kind: LString}
	default:
		return LogicalType{Kind: LUnknown}
	}
}
