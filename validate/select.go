package validate

import (
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/sqlcheck/sqlcheck/catalog"
	"github.com/sqlcheck/sqlcheck/resolver"
	"github.com/sqlcheck/sqlcheck/sqlerr"
)

// validateSelect handles a SELECT statement: its WITH clause (if any),
// set operations (UNION/INTERSECT/EXCEPT), and simple SELECT bodies.
func validateSelect(ctx *context, stmt *pg_query.SelectStmt) (*QueryResult, error) {
	if stmt.WithClause != nil {
		if stmt.WithClause.Recursive {
			return nil, sqlerr.New(sqlerr.InvalidQuery, "recursive CTEs are not supported")
		}
		if err := bindCTEs(ctx, stmt.WithClause); err != nil {
			return nil, err
		}
	}

	if stmt.Op != pg_query.SetOperation_SETOP_NONE {
		return validateSetOp(ctx, stmt)
	}

	return validateSelectBody(ctx, stmt)
}

// bindCTEs validates each WITH-clause entry in order (so a later CTE may
// reference an earlier one, but never itself or a later one — this
// module supports non-recursive CTEs only) and registers its result shape.
func bindCTEs(ctx *context, with *pg_query.WithClause) error {
	for _, cteNode := range with.Ctes {
		wrapped, ok := cteNode.Node.(*pg_query.Node_CommonTableExpr)
		if !ok {
			continue
		}
		cte := wrapped.CommonTableExpr

		bodySelect, ok := cte.Ctequery.Node.(*pg_query.Node_SelectStmt)
		if !ok {
			return sqlerr.New(sqlerr.InvalidQuery, "CTE body must be a SELECT")
		}

		result, err := validateSelect(ctx.child(), bodySelect.SelectStmt)
		if err != nil {
			return err
		}

		def := resolver.CteDefinition{Name: cte.Ctename}
		for i, col := range result.Columns {
			name := col.Name
			if i < len(cte.Aliascolnames) {
				if s, ok := cte.Aliascolnames[i].Node.(*pg_query.Node_String_); ok {
					name = s.String_.Sval
				}
			}
			def.Columns = append(def.Columns, resolver.Column{
				Name: name, Type: col.Type, Nullable: col.Nullable,
			})
		}

		ctx.ctes[strings.ToLower(def.Name)] = def
	}
	return nil
}

// validateSetOp validates both sides of a UNION/INTERSECT/EXCEPT and
// checks column-count conformance, per this module's set-operation rule:
// the result has as many columns as each side, named after the left
// side, nullable wherever either side's corresponding column is.
func validateSetOp(ctx *context, stmt *pg_query.SelectStmt) (*QueryResult, error) {
	left, err := validateSelect(ctx.child(), stmt.Larg)
	if err != nil {
		return nil, err
	}
	right, err := validateSelect(ctx.child(), stmt.Rarg)
	if err != nil {
		return nil, err
	}

	if len(left.Columns) != len(right.Columns) {
		return nil, sqlerr.New(sqlerr.InvalidQuery, "each side of a set operation must return the same number of columns")
	}

	result := &QueryResult{}
	for i, l := range left.Columns {
		r := right.Columns[i]
		result.Columns = append(result.Columns, QueryColumn{
			Name:     l.Name,
			Type:     l.Type,
			Nullable: l.Nullable || r.Nullable,
		})
	}
	return result, nil
}

// validateSelectBody validates a simple (non-set-op) SELECT: its FROM
// clause, its WHERE clause (for unknown-column errors only), and its
// projection.
func validateSelectBody(ctx *context, stmt *pg_query.SelectStmt) (*QueryResult, error) {
	scope := resolver.NewScope()
	for name, def := range ctx.ctes {
		_ = name
		scope.AddCTE(def)
	}

	bindings, err := resolveFromClause(ctx, stmt.FromClause)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		bindRelation(scope, b)
	}

	if stmt.WhereClause != nil {
		if _, err := inferExpr(scope, stmt.WhereClause); err != nil {
			return nil, err
		}
	}

	return projectTargetList(scope, stmt.TargetList)
}

// pendingRelation is a FROM-clause entry resolved to either a catalog
// table, a CTE, or an opaque subquery, carrying the nullability it picked
// up from enclosing outer joins.
type pendingRelation struct {
	alias    string
	table    *catalog.Table
	cte      *resolver.CteDefinition
	opaque   bool
	nullable bool
}

func bindRelation(scope *resolver.Scope, b pendingRelation) {
	switch {
	case b.table != nil:
		scope.BindTable(b.alias, b.table, b.nullable)
	case b.cte != nil:
		scope.BindCTE(b.alias, *b.cte, b.nullable)
	default:
		scope.BindOpaque(b.alias)
	}
}

// resolveFromClause resolves every top-level FROM-clause item (a
// comma-separated list behaves like a sequence of CROSS JOINs).
func resolveFromClause(ctx *context, items []*pg_query.Node) ([]pendingRelation, error) {
	var out []pendingRelation
	for _, item := range items {
		resolved, err := resolveFromItem(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved...)
	}
	return out, nil
}

func resolveFromItem(ctx *context, item *pg_query.Node) ([]pendingRelation, error) {
	if item == nil || item.Node == nil {
		return nil, nil
	}

	switch node := item.Node.(type) {
	case *pg_query.Node_RangeVar:
		return resolveRangeVar(ctx, node.RangeVar)
	case *pg_query.Node_RangeSubselect:
		alias := ""
		if node.RangeSubselect.Alias != nil {
			alias = node.RangeSubselect.Alias.Aliasname
		}
		return []pendingRelation{{alias: alias, opaque: true}}, nil
	case *pg_query.Node_JoinExpr:
		return resolveJoinExpr(ctx, node.JoinExpr)
	default:
		return nil, nil
	}
}

func resolveRangeVar(ctx *context, rv *pg_query.RangeVar) ([]pendingRelation, error) {
	name := rv.Relname
	alias := name
	if rv.Alias != nil && rv.Alias.Aliasname != "" {
		alias = rv.Alias.Aliasname
	}

	// A CTE shadows a schema table of the same name (the module's
	// resolved open question).
	if def, ok := ctx.ctes[strings.ToLower(name)]; ok {
		return []pendingRelation{{alias: alias, cte: &def}}, nil
	}

	table, ok := ctx.schema.Table(name)
	if !ok {
		return nil, sqlerr.UnknownTableErr(name)
	}
	return []pendingRelation{{alias: alias, table: table}}, nil
}

func resolveJoinExpr(ctx *context, je *pg_query.JoinExpr) ([]pendingRelation, error) {
	left, err := resolveFromItem(ctx, je.Larg)
	if err != nil {
		return nil, err
	}
	right, err := resolveFromItem(ctx, je.Rarg)
	if err != nil {
		return nil, err
	}

	kind := mapJoinType(je.Jointype)
	leftNullable, rightNullable := resolver.JoinNullability(kind)

	for i := range left {
		left[i].nullable = left[i].nullable || leftNullable
	}
	for i := range right {
		right[i].nullable = right[i].nullable || rightNullable
	}

	return append(left, right...), nil
}

// mapJoinType translates the parser's join-type vocabulary into this
// module's own, collapsing the semi/anti/unique variants (unreachable
// from ordinary hand-written SQL, but defensively handled) onto the
// closest of INNER/LEFT/RIGHT/FULL.
func mapJoinType(jt pg_query.JoinType) resolver.JoinKind {
	switch jt {
	case pg_query.JoinType_JOIN_LEFT:
		return resolver.LeftJoin
	case pg_query.JoinType_JOIN_RIGHT, pg_query.JoinType_JOIN_RIGHT_SEMI, pg_query.JoinType_JOIN_RIGHT_ANTI:
		return resolver.RightJoin
	case pg_query.JoinType_JOIN_FULL:
		return resolver.FullJoin
	default: // JOIN_INNER, JOIN_SEMI, JOIN_ANTI, JOIN_UNIQUE_OUTER, JOIN_UNIQUE_INNER
		return resolver.InnerJoin
	}
}

// projectTargetList builds the QueryResult from a SELECT's target list,
// expanding `*` and `alias.*` wildcards in FROM-clause order.
func projectTargetList(scope *resolver.Scope, targets []*pg_query.Node) (*QueryResult, error) {
	result := &QueryResult{}

	for _, t := range targets {
		rt, ok := t.Node.(*pg_query.Node_ResTarget)
		if !ok {
			continue
		}
		target := rt.ResTarget

		if cols, isWildcard, err := expandWildcard(scope, target.Val); err != nil {
			return nil, err
		} else if isWildcard {
			for _, c := range cols {
				result.Columns = append(result.Columns, QueryColumn{Name: c.Name, Type: c.Type, Nullable: c.Nullable})
			}
			continue
		}

		typed, err := inferExpr(scope, target.Val)
		if err != nil {
			return nil, err
		}

		name := target.Name
		if name == "" {
			name = exprDisplayName(target.Val)
		}

		result.Columns = append(result.Columns, QueryColumn{
			Name: name, Type: typed.Type, Nullable: typed.Nullable,
		})
	}

	return result, nil
}

// expandWildcard detects `*` and `alias.*` projections and returns their
// expanded columns.
func expandWildcard(scope *resolver.Scope, val *pg_query.Node) ([]resolver.Column, bool, error) {
	ref, ok := val.Node.(*pg_query.Node_ColumnRef)
	if !ok {
		return nil, false, nil
	}
	fields := ref.ColumnRef.Fields
	if len(fields) == 0 {
		return nil, false, nil
	}

	last := fields[len(fields)-1]
	if _, isStar := last.Node.(*pg_query.Node_AStar); !isStar {
		return nil, false, nil
	}

	if len(fields) == 1 {
		return scope.Wildcard(), true, nil
	}

	alias, ok := fields[0].Node.(*pg_query.Node_String_)
	if !ok {
		return nil, false, nil
	}
	rel, ok := scope.RelationByAlias(alias.String_.Sval)
	if !ok {
		return nil, false, sqlerr.UnknownTableErr(alias.String_.Sval)
	}
	return rel.Columns, true, nil
}

// exprDisplayName derives a projection column name the way PostgreSQL
// does for an unaliased target: the bare column name for a column
// reference, the function name for a call, and "?column?" otherwise.
func exprDisplayName(val *pg_query.Node) string {
	switch node := val.Node.(type) {
	case *pg_query.Node_ColumnRef:
		fields := node.ColumnRef.Fields
		if len(fields) == 0 {
			return "?column?"
		}
		if s, ok := fields[len(fields)-1].Node.(*pg_query.Node_String_); ok {
			return s.String_.Sval
		}
		return "?column?"
	case *pg_query.Node_FuncCall:
		parts := node.FuncCall.Funcname
		if len(parts) == 0 {
			return "?column?"
		}
		if s, ok := parts[len(parts)-1].Node.(*pg_query.Node_String_); ok {
			return s.String_.Sval
		}
		return "?column?"
	default:
		return "?column?"
	}
}
