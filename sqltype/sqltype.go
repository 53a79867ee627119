// Package sqltype implements the closed type lattice used throughout this
// module: SqlType (the PostgreSQL-facing vocabulary a column or expression
// can be declared with) and LogicalType (a host-neutral shape every SqlType
// collapses to), plus the Nullable wrapper shared by both.
package sqltype

import (
	"fmt"
	"strconv"
	"strings"
)

// SqlKind enumerates the PostgreSQL type names this module understands.
// It mirrors the closed set the original sql-check validator supported
// (smallint through jsonb, the network address types, plus arrays of any
// of them) rather than full PostgreSQL type coverage — see the module's
// stated Non-goals. Custom covers every other type name a column may
// legitimately carry (user-defined enums/domains); SqlType.Name holds
// its original spelling.
type SqlKind int

const (
	SmallInt SqlKind = iota
	Integer
	BigInt
	Real
	DoublePrecision
	Numeric
	Boolean
	Text
	VarChar
	Char
	Bytea
	Date
	Time
	TimeTz
	Timestamp
	TimestampTz
	Interval
	UUID
	JSON
	JSONB
	Inet
	Cidr
	MacAddr
	Custom
	Unknown
)

var kindNames = map[SqlKind]string{
	SmallInt:        "smallint",
	Integer:         "integer",
	BigInt:          "bigint",
	Real:            "real",
	DoublePrecision: "double precision",
	Numeric:         "numeric",
	Boolean:         "boolean",
	Text:            "text",
	VarChar:         "character varying",
	Char:            "character",
	Bytea:           "bytea",
	Date:            "date",
	Time:            "time",
	TimeTz:          "time with time zone",
	Timestamp:       "timestamp",
	TimestampTz:     "timestamp with time zone",
	Interval:        "interval",
	UUID:            "uuid",
	JSON:            "json",
	JSONB:           "jsonb",
	Inet:            "inet",
	Cidr:            "cidr",
	MacAddr:         "macaddr",
}

func (k SqlKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SqlType is a fully-resolved PostgreSQL type: a kind, an optional
// length/precision for the types that carry one, and whether it is an
// array of that kind (PostgreSQL's `type[]` suffix). Name is set only
// when Kind is Custom, carrying the type name exactly as written so it
// can be surfaced into a generated row struct (e.g. as Custom(name)).
type SqlType struct {
	Kind    SqlKind
	Name    string // original spelling; only set when Kind == Custom
	Length  int    // varchar(n)/char(n) length, or numeric precision; 0 if unset
	Scale   int    // numeric scale; 0 if unset
	IsArray bool
}

func (t SqlType) String() string {
	if t.Kind == Custom {
		base := t.Name
		if t.IsArray {
			base += "[]"
		}
		return base
	}

	base := t.Kind.String()
	switch t.Kind {
	case VarChar, Char:
		if t.Length > 0 {
			base = fmt.Sprintf("%s(%d)", base, t.Length)
		}
	case Numeric:
		if t.Length > 0 {
			if t.Scale > 0 {
				base = fmt.Sprintf("numeric(%d,%d)", t.Length, t.Scale)
			} else {
				base = fmt.Sprintf("numeric(%d)", t.Length)
			}
		}
	}
	if t.IsArray {
		base += "[]"
	}
	return base
}

// typeAliases maps every spelling pg_query_go can hand back (after its own
// pg_catalog-qualified, abbreviated names are stripped of the
// "pg_catalog." prefix) to a SqlKind.
var typeAliases = map[string]SqlKind{
	"int2":                        SmallInt,
	"smallint":                    SmallInt,
	"int4":                        Integer,
	"int":                         Integer,
	"integer":                     Integer,
	"int8":                        BigInt,
	"bigint":                      BigInt,
	"serial":                      Integer,
	"serial4":                     Integer,
	"bigserial":                   BigInt,
	"serial8":                     BigInt,
	"float4":                      Real,
	"real":                        Real,
	"float8":                      DoublePrecision,
	"double precision":            DoublePrecision,
	"numeric":                     Numeric,
	"decimal":                     Numeric,
	"bool":                        Boolean,
	"boolean":                     Boolean,
	"text":                        Text,
	"varchar":                     VarChar,
	"character varying":           VarChar,
	"bpchar":                      Char,
	"char":                        Char,
	"character":                   Char,
	"bytea":                       Bytea,
	"date":                        Date,
	"time":                        Time,
	"time without time zone":      Time,
	"timetz":                      TimeTz,
	"time with time zone":         TimeTz,
	"timestamp":                   Timestamp,
	"timestamp without time zone": Timestamp,
	"timestamptz":                 TimestampTz,
	"timestamp with time zone":    TimestampTz,
	"interval":                    Interval,
	"uuid":                        UUID,
	"json":                        JSON,
	"jsonb":                       JSONB,
	"inet":                        Inet,
	"cidr":                        Cidr,
	"macaddr":                     MacAddr,
	"macaddr8":                    MacAddr,
}

// Parse turns a PostgreSQL type-name string (as produced by this module's
// catalog DDL loader, e.g. "varchar(255)", "numeric(10,2)", "integer[]")
// into a SqlType. A name this lattice doesn't recognize (a user-defined
// enum or domain) yields Custom with its original spelling preserved in
// Name, rather than being discarded — per this module's idempotence
// property, re-rendering a Custom type must reproduce the same text.
func Parse(name string) SqlType {
	name = strings.TrimSpace(name)

	isArray := false
	if strings.HasSuffix(name, "[]") {
		isArray = true
		name = strings.TrimSuffix(name, "[]")
		name = strings.TrimSpace(name)
	}

	base, length, scale := splitLengthAndScale(name)
	kind, ok := typeAliases[strings.ToLower(base)]
	if !ok {
		return SqlType{Kind: Custom, Name: base, IsArray: isArray}
	}

	return SqlType{Kind: kind, Length: length, Scale: scale, IsArray: isArray}
}

// splitLengthAndScale pulls an optional "(n)" or "(n,m)" suffix off a type
// name, returning the bare name and any parsed length/scale.
func splitLengthAndScale(name string) (base string, length, scale int) {
	open := strings.Index(name, "(")
	if open < 0 || !strings.HasSuffix(name, ")") {
		return name, 0, 0
	}
	base = strings.TrimSpace(name[:open])
	inner := name[open+1 : len(name)-1]
	parts := strings.SplitN(inner, ",", 2)
	length, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		scale, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return base, length, scale
}
