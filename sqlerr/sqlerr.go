// Package sqlerr defines the closed set of errors the validation pipeline
// can produce. The validation packages (catalog, resolver, validate) and
// cmd report failures through *sqlerr.Error so a caller can switch on Kind
// instead of matching strings; the config and internal/database/postgres
// helpers return plain wrapped errors.
package sqlerr

import "fmt"

// Kind is a closed taxonomy of validation failures.
type Kind int

const (
	// SchemaParse means the DDL input could not be parsed as SQL.
	SchemaParse Kind = iota
	// QueryParse means the query input could not be parsed as SQL.
	QueryParse
	// UnknownTable means a referenced table/relation has no catalog entry.
	UnknownTable
	// UnknownColumn means a referenced column does not exist on the
	// relation(s) it was resolved against.
	UnknownColumn
	// AmbiguousColumn means an unqualified column name matched more than
	// one relation in scope.
	AmbiguousColumn
	// TypeMismatch means an expression combined incompatible types.
	// Reserved for future use: the current type lattice has no operator
	// that rejects operands by type, but the taxonomy keeps this case
	// open per the type lattice's design.
	TypeMismatch
	// InvalidQuery means the input parsed but is not a statement shape
	// this validator supports (e.g. multiple statements, DDL passed to
	// the query validator).
	InvalidQuery
	// Io means an I/O step outside validation failed: reading a schema or
	// query file, writing or encoding output, or reaching a database.
	Io
)

func (k Kind) String() string {
	switch k {
	case SchemaParse:
		return "schema_parse"
	case QueryParse:
		return "query_parse"
	case UnknownTable:
		return "unknown_table"
	case UnknownColumn:
		return "unknown_column"
	case AmbiguousColumn:
		return "ambiguous_column"
	case TypeMismatch:
		return "type_mismatch"
	case InvalidQuery:
		return "invalid_query"
	case Io:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by the validation packages
// and cmd. Table/Column/Expected/Actual are populated only for the Kinds
// that use them; Suggestion is filled in by callers (typically cmd/) that
// want to offer a "did you mean" hint — validate itself never sets it,
// since the validator stays a pure function of schema and query text.
type Error struct {
	Kind       Kind
	Message    string
	Table      string
	Column     string
	Expected   string
	Actual     string
	Suggestion string
	Wrapped    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnknownColumn:
		if e.Table != "" {
			return fmt.Sprintf("unknown column %q on table %q", e.Column, e.Table)
		}
		return fmt.Sprintf("unknown column %q", e.Column)
	case UnknownTable:
		return fmt.Sprintf("unknown table %q", e.Table)
	case AmbiguousColumn:
		return fmt.Sprintf("ambiguous column %q", e.Column)
	case TypeMismatch:
		return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected, e.Actual)
	default:
		if e.Message != "" {
			return e.Message
		}
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether err is a *sqlerr.Error of the same Kind, so callers
// can write errors.Is(err, sqlerr.New(sqlerr.UnknownTable, "")).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New builds a plain *Error with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds a plain *Error wrapping an underlying error (used for Io
// and SchemaParse/QueryParse, where the parser or filesystem produced the
// root cause).
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Wrapped: err}
}

// UnknownTableErr reports a reference to a table not present in the catalog.
func UnknownTableErr(table string) *Error {
	return &Error{Kind: UnknownTable, Table: table}
}

// UnknownColumnErr reports a reference to a column absent from table (table
// may be empty when the column was unqualified and matched nothing at all).
func UnknownColumnErr(table, column string) *Error {
	return &Error{Kind: UnknownColumn, Table: table, Column: column}
}

// AmbiguousColumnErr reports an unqualified column matching multiple
// relations in scope.
func AmbiguousColumnErr(column string) *Error {
	return &Error{Kind: AmbiguousColumn, Column: column}
}

// TypeMismatchErr reports two incompatible types used together.
func TypeMismatchErr(expected, actual string) *Error {
	return &Error{Kind: TypeMismatch, Expected: expected, Actual: actual}
}
