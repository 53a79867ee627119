package validate

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/sqlcheck/sqlcheck/exprtype"
	"github.com/sqlcheck/sqlcheck/resolver"
	"github.com/sqlcheck/sqlcheck/sqltype"
)

// inferExpr is the expression typer: it walks one expression AST node and
// returns its inferred (type, nullability), resolving column references
// against scope and delegating function-call typing to exprtype.
func inferExpr(scope *resolver.Scope, node *pg_query.Node) (sqltype.Nullable, error) {
	if node == nil || node.Node == nil {
		return unknown(true), nil
	}

	switch n := node.Node.(type) {
	case *pg_query.Node_ColumnRef:
		return inferColumnRef(scope, n.ColumnRef)
	case *pg_query.Node_AConst:
		return inferAConst(n.AConst), nil
	case *pg_query.Node_TypeCast:
		return inferTypeCast(scope, n.TypeCast)
	case *pg_query.Node_FuncCall:
		return inferFuncCall(scope, n.FuncCall)
	case *pg_query.Node_AExpr:
		return inferAExpr(scope, n.AExpr)
	case *pg_query.Node_BoolExpr:
		return inferBoolExpr(scope, n.BoolExpr)
	case *pg_query.Node_NullTest:
		return inferNullTest(scope, n.NullTest)
	case *pg_query.Node_CaseExpr:
		return inferCaseExpr(scope, n.CaseExpr)
	default:
		return unknown(true), nil
	}
}

func unknown(nullable bool) sqltype.Nullable {
	return sqltype.Nullable{Type: sqltype.SqlType{Kind: sqltype.Unknown}, Nullable: nullable}
}

func nonNull(kind sqltype.SqlKind) sqltype.Nullable {
	return sqltype.Nullable{Type: sqltype.SqlType{Kind: kind}, Nullable: false}
}

// inferColumnRef resolves `col` or `alias.col`, returning UnknownTable/
// UnknownColumn/AmbiguousColumn as appropriate.
func inferColumnRef(scope *resolver.Scope, ref *pg_query.ColumnRef) (sqltype.Nullable, error) {
	var names []string
	for _, f := range ref.Fields {
		if s, ok := f.Node.(*pg_query.Node_String_); ok {
			names = append(names, s.String_.Sval)
		}
	}

	var col resolver.Column
	var err error
	switch len(names) {
	case 1:
		col, err = scope.ResolveUnqualified(names[0])
	case 2:
		col, err = scope.ResolveQualified(names[0], names[1])
	default:
		return unknown(true), nil
	}
	if err != nil {
		return sqltype.Nullable{}, err
	}
	return sqltype.Nullable{Type: col.Type, Nullable: col.Nullable}, nil
}

// inferAConst infers a literal's type: NULL is Unknown/nullable, and
// every other literal is non-null by construction. Integer literals are
// typed bigint rather than integer: PostgreSQL itself picks the
// narrowest type that fits at parse time, but this module's lattice
// collapses every untyped integer constant to its widest integral type
// rather than modeling per-literal width inference.
func inferAConst(c *pg_query.A_Const) sqltype.Nullable {
	if c.Isnull {
		return unknown(true)
	}
	switch {
	case c.GetIval() != nil:
		return nonNull(sqltype.BigInt)
	case c.GetFval() != nil:
		return nonNull(sqltype.Numeric)
	case c.GetBoolval() != nil:
		return nonNull(sqltype.Boolean)
	case c.GetSval() != nil:
		return nonNull(sqltype.Text)
	default:
		return unknown(false)
	}
}

// inferTypeCast types `expr::type` as the cast's target type, keeping the
// inner expression's nullability (a cast of NULL is still NULL).
func inferTypeCast(scope *resolver.Scope, cast *pg_query.TypeCast) (sqltype.Nullable, error) {
	inner, err := inferExpr(scope, cast.Arg)
	if err != nil {
		return sqltype.Nullable{}, err
	}
	target := sqltype.Parse(formatTypeName(cast.TypeName))
	return sqltype.Nullable{Type: target, Nullable: inner.Nullable}, nil
}

// formatTypeName renders a TypeName back to a plain type string, like
// catalog.parser's formatTypeName does for DDL column types, except that
// type modifiers such as a varchar length are not rendered.
func formatTypeName(typeName *pg_query.TypeName) string {
	if typeName == nil || len(typeName.Names) == 0 {
		return ""
	}
	var parts []string
	for _, name := range typeName.Names {
		if s, ok := name.Node.(*pg_query.Node_String_); ok {
			parts = append(parts, s.String_.Sval)
		}
	}
	if len(parts) > 0 && parts[0] == "pg_catalog" {
		parts = parts[1:]
	}
	base := strings.Join(parts, ".")
	if len(typeName.ArrayBounds) > 0 {
		base += "[]"
	}
	return base
}

// inferFuncCall resolves each argument's type and defers to exprtype for
// the function-type table. COUNT(*) has no arguments to inspect, so it is
// special-cased directly.
func inferFuncCall(scope *resolver.Scope, call *pg_query.FuncCall) (sqltype.Nullable, error) {
	var name string
	if len(call.Funcname) > 0 {
		if s, ok := call.Funcname[len(call.Funcname)-1].Node.(*pg_query.Node_String_); ok {
			name = s.String_.Sval
		}
	}

	if call.AggStar {
		return exprtype.Infer(name, nil), nil
	}

	args := make([]sqltype.Nullable, 0, len(call.Args))
	for _, a := range call.Args {
		typed, err := inferExpr(scope, a)
		if err != nil {
			return sqltype.Nullable{}, err
		}
		args = append(args, typed)
	}

	if strings.EqualFold(name, "coalesce") {
		return exprtype.Coalesce(args), nil
	}
	return exprtype.Infer(name, args), nil
}

// inferAExpr types a binary/unary operator expression. Comparison and
// pattern-match operators produce boolean; everything else (arithmetic,
// concatenation) passes through the left operand's type. Either side
// being nullable makes the result nullable, per ordinary SQL NULL
// propagation.
func inferAExpr(scope *resolver.Scope, expr *pg_query.A_Expr) (sqltype.Nullable, error) {
	var left, right sqltype.Nullable
	var err error

	if expr.Lexpr != nil {
		left, err = inferExpr(scope, expr.Lexpr)
		if err != nil {
			return sqltype.Nullable{}, err
		}
	}
	if expr.Rexpr != nil {
		right, err = inferExpr(scope, expr.Rexpr)
		if err != nil {
			return sqltype.Nullable{}, err
		}
	}

	nullable := left.Nullable || right.Nullable

	op := operatorName(expr.Name)
	if isComparisonOperator(op) {
		return sqltype.Nullable{Type: sqltype.SqlType{Kind: sqltype.Boolean}, Nullable: nullable}, nil
	}

	if expr.Lexpr == nil {
		return sqltype.Nullable{Type: right.Type, Nullable: nullable}, nil
	}
	return sqltype.Nullable{Type: left.Type, Nullable: nullable}, nil
}

func operatorName(nameNodes []*pg_query.Node) string {
	if len(nameNodes) == 0 {
		return ""
	}
	if s, ok := nameNodes[0].Node.(*pg_query.Node_String_); ok {
		return s.String_.Sval
	}
	return ""
}

func isComparisonOperator(op string) bool {
	switch op {
	case "=", "<>", "!=", "<", "<=", ">", ">=", "~~", "!~~", "~~*", "!~~*", "~", "!~":
		return true
	default:
		return false
	}
}

// inferBoolExpr types AND/OR/NOT as boolean, nullable if any operand is
// (a simplification of SQL's three-valued logic, adequate for the shape
// inference this validator performs).
func inferBoolExpr(scope *resolver.Scope, expr *pg_query.BoolExpr) (sqltype.Nullable, error) {
	nullable := false
	for _, a := range expr.Args {
		typed, err := inferExpr(scope, a)
		if err != nil {
			return sqltype.Nullable{}, err
		}
		nullable = nullable || typed.Nullable
	}
	return sqltype.Nullable{Type: sqltype.SqlType{Kind: sqltype.Boolean}, Nullable: nullable}, nil
}

// inferNullTest types `x IS NULL`/`x IS NOT NULL` as a non-nullable
// boolean: the test itself always produces true or false.
func inferNullTest(scope *resolver.Scope, test *pg_query.NullTest) (sqltype.Nullable, error) {
	if _, err := inferExpr(scope, test.Arg); err != nil {
		return sqltype.Nullable{}, err
	}
	return nonNull(sqltype.Boolean), nil
}

// inferCaseExpr types a CASE expression as its first WHEN-branch result's
// type, nullable if any branch (including a missing ELSE, which yields
// NULL) is.
func inferCaseExpr(scope *resolver.Scope, expr *pg_query.CaseExpr) (sqltype.Nullable, error) {
	var result sqltype.Nullable
	nullable := expr.Defresult == nil
	first := true

	for _, w := range expr.Args {
		when, ok := w.Node.(*pg_query.Node_CaseWhen)
		if !ok {
			continue
		}
		typed, err := inferExpr(scope, when.CaseWhen.Result)
		if err != nil {
			return sqltype.Nullable{}, err
		}
		if first {
			result = typed
			first = false
		}
		nullable = nullable || typed.Nullable
	}

	if expr.Defresult != nil {
		typed, err := inferExpr(scope, expr.Defresult)
		if err != nil {
			return sqltype.Nullable{}, err
		}
		if first {
			result = typed
		}
		nullable = nullable || typed.Nullable
	}

	return sqltype.Nullable{Type: result.Type, Nullable: nullable}, nil
}
