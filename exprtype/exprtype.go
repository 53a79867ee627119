// Package exprtype implements the function-call part of the expression
// typer: given the types of a call's arguments, it infers the type (and
// nullability) of the call itself. The bulk of this is the function-type
// table, which covers the PostgreSQL built-ins a validated query is
// likely to call. Column references, literals, casts and operators are
// typed by the validate package.
package exprtype

import (
	"strings"

	"github.com/sqlcheck/sqlcheck/sqltype"
)

// nullableRule decides whether a function's result is nullable given
// whether each of its arguments was nullable.
type nullableRule func(argsNullable []bool) bool

// anyNullable is the default rule: the result is nullable iff at least
// one argument is (ordinary scalar function composition).
func anyNullable(argsNullable []bool) bool {
	for _, n := range argsNullable {
		if n {
			return true
		}
	}
	return false
}

// alwaysNullable marks aggregates that can return NULL even when every
// row's input was non-null, because the group (or whole table) may be
// empty: SUM/AVG/MIN/MAX over zero rows is NULL.
func alwaysNullable(_ []bool) bool { return true }

// neverNullable marks functions that always return a value, regardless
// of argument nullability: COUNT(*) is 0 over an empty group, and the
// current-time family never depends on its (absent) arguments.
func neverNullable(_ []bool) bool { return false }

// Signature is one entry of the function-type table: the SqlType a call
// returns, and the rule for whether that return value can be NULL.
type Signature struct {
	Result   sqltype.SqlType
	Nullable nullableRule
}

func sig(kind sqltype.SqlKind, rule nullableRule) Signature {
	return Signature{Result: sqltype.SqlType{Kind: kind}, Nullable: rule}
}

// table is keyed by lower-cased, un-schema-qualified function name. It
// covers the aggregate and scalar functions spec'd for this validator;
// any call not listed here is handled by Infer's fallback (see below).
var table = map[string]Signature{
	// aggregates
	"count": sig(sqltype.BigInt, neverNullable),
	"sum":   sig(sqltype.Numeric, alwaysNullable),
	"avg":   sig(sqltype.Numeric, alwaysNullable),
	"min":   sig(sqltype.Unknown, alwaysNullable), // same type as its argument; see Infer
	"max":   sig(sqltype.Unknown, alwaysNullable),

	// date/time
	"now":               sig(sqltype.TimestampTz, neverNullable),
	"current_date":      sig(sqltype.Date, neverNullable),
	"current_time":      sig(sqltype.TimeTz, neverNullable),
	"current_timestamp": sig(sqltype.TimestampTz, neverNullable),
	"localtime":         sig(sqltype.Timestamp, neverNullable),
	"localtimestamp":    sig(sqltype.Timestamp, neverNullable),
	"extract":           sig(sqltype.DoublePrecision, anyNullable),
	"date_part":         sig(sqltype.DoublePrecision, anyNullable),
	"age":               sig(sqltype.Interval, anyNullable),
	"date_trunc":        sig(sqltype.Timestamp, anyNullable),
	"to_timestamp":      sig(sqltype.TimestampTz, anyNullable),
	"make_timestamp":    sig(sqltype.Timestamp, anyNullable),
	"make_timestamptz":  sig(sqltype.TimestampTz, anyNullable),
	"make_date":         sig(sqltype.Date, anyNullable),
	"make_time":         sig(sqltype.Time, anyNullable),
	"make_interval":     sig(sqltype.Interval, anyNullable),

	// string
	"length":           sig(sqltype.Integer, anyNullable),
	"char_length":      sig(sqltype.Integer, anyNullable),
	"character_length": sig(sqltype.Integer, anyNullable),
	"octet_length":     sig(sqltype.Integer, anyNullable),
	"bit_length":       sig(sqltype.Integer, anyNullable),
	"ascii":            sig(sqltype.Integer, anyNullable),
	"position":         sig(sqltype.Integer, anyNullable),
	"strpos":           sig(sqltype.Integer, anyNullable),
	"substring":        sig(sqltype.Text, anyNullable),
	"substr":           sig(sqltype.Text, anyNullable),
	"trim":             sig(sqltype.Text, anyNullable),
	"ltrim":            sig(sqltype.Text, anyNullable),
	"rtrim":            sig(sqltype.Text, anyNullable),
	"btrim":            sig(sqltype.Text, anyNullable),
	"overlay":          sig(sqltype.Text, anyNullable),
	"upper":            sig(sqltype.Text, anyNullable),
	"lower":            sig(sqltype.Text, anyNullable),
	"concat":           sig(sqltype.Text, neverNullable), // NULL args are skipped by concat(), not propagated
	"concat_ws":        sig(sqltype.Text, neverNullable), // NULL args are skipped, like concat()
	"replace":          sig(sqltype.Text, anyNullable),
	"left":             sig(sqltype.Text, anyNullable),
	"right":            sig(sqltype.Text, anyNullable),
	"to_char":          sig(sqltype.Text, anyNullable),
	"initcap":          sig(sqltype.Text, anyNullable),
	"translate":        sig(sqltype.Text, anyNullable),
	"reverse":          sig(sqltype.Text, anyNullable),
	"repeat":           sig(sqltype.Text, anyNullable),
	"lpad":             sig(sqltype.Text, anyNullable),
	"rpad":             sig(sqltype.Text, anyNullable),
	"split_part":       sig(sqltype.Text, anyNullable),
	"format":           sig(sqltype.Text, anyNullable),
	"quote_ident":      sig(sqltype.Text, anyNullable),
	"quote_literal":    sig(sqltype.Text, anyNullable),
	"quote_nullable":   sig(sqltype.Text, neverNullable), // renders SQL NULL as the text "NULL"
	"encode":           sig(sqltype.Text, anyNullable),
	"decode":           sig(sqltype.Bytea, anyNullable),
	"md5":              sig(sqltype.Text, anyNullable),
	"sha256":           sig(sqltype.Bytea, anyNullable),
	"sha384":           sig(sqltype.Bytea, anyNullable),
	"sha512":           sig(sqltype.Bytea, anyNullable),
	"to_hex":           sig(sqltype.Text, anyNullable),
	"chr":              sig(sqltype.Text, anyNullable),
	"regexp_replace":   sig(sqltype.Text, anyNullable),
	"regexp_substr":    sig(sqltype.Text, anyNullable),
	"regexp_match":     {Result: sqltype.SqlType{Kind: sqltype.Text, IsArray: true}, Nullable: anyNullable},

	// numeric
	"abs":     sig(sqltype.Unknown, anyNullable), // same type as its argument; see Infer
	"round":   sig(sqltype.Numeric, anyNullable),
	"ceil":    sig(sqltype.Numeric, anyNullable),
	"ceiling": sig(sqltype.Numeric, anyNullable),
	"floor":   sig(sqltype.Numeric, anyNullable),
	"mod":     sig(sqltype.Integer, anyNullable),
	"power":   sig(sqltype.DoublePrecision, anyNullable),
	"sqrt":    sig(sqltype.DoublePrecision, anyNullable),
	"to_number": sig(sqltype.Numeric, anyNullable),
	"to_date":   sig(sqltype.Date, anyNullable),
}

// passthroughArg0 is the set of functions whose result type equals their
// first argument's type rather than a fixed type (MIN/MAX/ABS).
var passthroughArg0 = map[string]bool{
	"min": true, "max": true, "abs": true,
}

// Lookup returns the function-type table entry for name, case-insensitively.
func Lookup(name string) (Signature, bool) {
	s, ok := table[strings.ToLower(name)]
	return s, ok
}

// Infer resolves a function call's result type given its resolved
// argument types. If name isn't in the function-type table, Infer falls
// back permissively: it returns Custom(name) and treats the result as
// nullable — an unrecognized function is not itself a validation error
// per this module's scope (full PostgreSQL function coverage is a
// stated Non-goal), but callers still get a usable, self-describing
// placeholder type for further inference.
func Infer(name string, args []sqltype.Nullable) sqltype.Nullable {
	lower := strings.ToLower(name)
	argsNullable := make([]bool, len(args))
	for i, a := range args {
		argsNullable[i] = a.Nullable
	}

	sig, ok := table[lower]
	if !ok {
		return sqltype.Nullable{Type: sqltype.SqlType{Kind: sqltype.Custom, Name: name}, Nullable: true}
	}

	result := sig.Result
	if passthroughArg0[lower] && len(args) > 0 {
		result = args[0].Type
	}

	return sqltype.Nullable{Type: result, Nullable: sig.Nullable(argsNullable)}
}

// Coalesce implements this module's resolved COALESCE rule (the spec's
// open question decided in favor of the simpler of two options): the
// result type is the first argument's type with its outer Nullable
// stripped, full stop — the result is never nullable, regardless of
// whether the other arguments are.
func Coalesce(args []sqltype.Nullable) sqltype.Nullable {
	if len(args) == 0 {
		return sqltype.Nullable{Type: sqltype.SqlType{Kind: sqltype.Unknown}, Nullable: true}
	}
	return sqltype.Nullable{Type: args[0].Type, Nullable: false}
}
