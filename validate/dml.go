package validate

import (
	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/sqlcheck/sqlcheck/catalog"
	"github.com/sqlcheck/sqlcheck/resolver"
	"github.com/sqlcheck/sqlcheck/sqlerr"
)

// validateInsert checks the target table and column list, then — if a
// RETURNING clause is present — projects it the same way a SELECT's
// target list is projected, with the target table bound under its alias,
// or under its own name when it has none.
func validateInsert(ctx *context, stmt *pg_query.InsertStmt) (*QueryResult, error) {
	table, err := requireTable(ctx, stmt.Relation)
	if err != nil {
		return nil, err
	}

	for _, c := range stmt.Cols {
		rt, ok := c.Node.(*pg_query.Node_ResTarget)
		if !ok {
			continue
		}
		if !table.HasColumn(rt.ResTarget.Name) {
			return nil, sqlerr.UnknownColumnErr(table.Name, rt.ResTarget.Name)
		}
	}

	if len(stmt.ReturningList) == 0 {
		return &QueryResult{}, nil
	}
	return projectReturning(table, stmt.Relation, stmt.ReturningList)
}

// validateUpdate checks the target table, that every assignment target
// names a real column, and the WHERE clause's column references, then
// projects RETURNING if present.
func validateUpdate(ctx *context, stmt *pg_query.UpdateStmt) (*QueryResult, error) {
	table, err := requireTable(ctx, stmt.Relation)
	if err != nil {
		return nil, err
	}

	scope := singleTableScope(stmt.Relation, table)
	for _, t := range stmt.TargetList {
		rt, ok := t.Node.(*pg_query.Node_ResTarget)
		if !ok {
			continue
		}
		if !table.HasColumn(rt.ResTarget.Name) {
			return nil, sqlerr.UnknownColumnErr(table.Name, rt.ResTarget.Name)
		}
		if rt.ResTarget.Val != nil {
			if _, err := inferExpr(scope, rt.ResTarget.Val); err != nil {
				return nil, err
			}
		}
	}

	if stmt.WhereClause != nil {
		if _, err := inferExpr(scope, stmt.WhereClause); err != nil {
			return nil, err
		}
	}

	if len(stmt.ReturningList) == 0 {
		return &QueryResult{}, nil
	}
	return projectReturning(table, stmt.Relation, stmt.ReturningList)
}

// validateDelete checks the target table, the WHERE clause's column
// references, then projects RETURNING if present.
func validateDelete(ctx *context, stmt *pg_query.DeleteStmt) (*QueryResult, error) {
	table, err := requireTable(ctx, stmt.Relation)
	if err != nil {
		return nil, err
	}

	if stmt.WhereClause != nil {
		scope := singleTableScope(stmt.Relation, table)
		if _, err := inferExpr(scope, stmt.WhereClause); err != nil {
			return nil, err
		}
	}

	if len(stmt.ReturningList) == 0 {
		return &QueryResult{}, nil
	}
	return projectReturning(table, stmt.Relation, stmt.ReturningList)
}

func requireTable(ctx *context, rv *pg_query.RangeVar) (*catalog.Table, error) {
	if rv == nil {
		return nil, sqlerr.New(sqlerr.InvalidQuery, "statement has no target table")
	}
	table, ok := ctx.schema.Table(rv.Relname)
	if !ok {
		return nil, sqlerr.UnknownTableErr(rv.Relname)
	}
	return table, nil
}

func singleTableScope(rv *pg_query.RangeVar, table *catalog.Table) *resolver.Scope {
	alias := table.Name
	if rv.Alias != nil && rv.Alias.Aliasname != "" {
		alias = rv.Alias.Aliasname
	}
	scope := resolver.NewScope()
	scope.BindTable(alias, table, false)
	return scope
}

func projectReturning(table *catalog.Table, rv *pg_query.RangeVar, returning []*pg_query.Node) (*QueryResult, error) {
	scope := singleTableScope(rv, table)
	return projectTargetList(scope, returning)
}
