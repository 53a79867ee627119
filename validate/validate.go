// Package validate implements the statement validator: given a loaded
// Schema and one SQL query, it resolves every table and column reference,
// infers the projected row shape, and reports the closed sqlerr taxonomy
// of failures the original input can trigger.
package validate

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/sqlcheck/sqlcheck/catalog"
	"github.com/sqlcheck/sqlcheck/resolver"
	"github.com/sqlcheck/sqlcheck/sqlerr"
	"github.com/sqlcheck/sqlcheck/sqltype"
)

// QueryColumn is one column of a validated query's inferred row shape.
type QueryColumn struct {
	Name     string
	Type     sqltype.SqlType
	Nullable bool
}

// QueryResult is the projected row shape of a validated query: empty for
// an INSERT/UPDATE/DELETE without a RETURNING clause.
type QueryResult struct {
	Columns []QueryColumn
}

// context threads the schema and the CTEs visible at the current nesting
// level through the recursive statement/expression walk.
type context struct {
	schema *catalog.Schema
	ctes   map[string]resolver.CteDefinition
}

func newContext(schema *catalog.Schema) *context {
	return &context{schema: schema, ctes: make(map[string]resolver.CteDefinition)}
}

// child returns a context that inherits ctx's CTEs (for Larg/Rarg of a set
// operation, which share the enclosing statement's WITH clause) without
// letting mutations propagate back up.
func (ctx *context) child() *context {
	clone := make(map[string]resolver.CteDefinition, len(ctx.ctes))
	for k, v := range ctx.ctes {
		clone[k] = v
	}
	return &context{schema: ctx.schema, ctes: clone}
}

// Query parses exactly one SQL statement and validates it against schema,
// returning the inferred row shape. Multi-statement input is rejected
// with InvalidQuery; schema loading (catalog.Load) is the only place in
// this module that accepts multiple statements.
func Query(schema *catalog.Schema, sql string) (*QueryResult, error) {
	tree, err := pg_query.Parse(sql)
	if err != nil {
		return nil, sqlerr.Wrap(sqlerr.QueryParse, "parsing query", err)
	}
	if len(tree.Stmts) != 1 {
		return nil, sqlerr.New(sqlerr.InvalidQuery, "expected exactly one SQL statement")
	}
	raw := tree.Stmts[0].Stmt
	if raw == nil || raw.Node == nil {
		return nil, sqlerr.New(sqlerr.InvalidQuery, "empty statement")
	}

	ctx := newContext(schema)

	switch node := raw.Node.(type) {
	case *pg_query.Node_SelectStmt:
		return validateSelect(ctx, node.SelectStmt)
	case *pg_query.Node_InsertStmt:
		return validateInsert(ctx, node.InsertStmt)
	case *pg_query.Node_UpdateStmt:
		return validateUpdate(ctx, node.UpdateStmt)
	case *pg_query.Node_DeleteStmt:
		return validateDelete(ctx, node.DeleteStmt)
	default:
		return nil, sqlerr.New(sqlerr.InvalidQuery, "statement type is not SELECT/INSERT/UPDATE/DELETE")
	}
}
