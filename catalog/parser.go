package catalog

import (
	"fmt"
	"strings"

	pg_query "github.com/pganalyze/pg_query_go/v6"
	"github.com/sqlcheck/sqlcheck/sqlerr"
	"github.com/sqlcheck/sqlcheck/sqltype"
)

// Load parses a DDL dump (one or more `CREATE TABLE` statements, optionally
// interleaved with other statement types, which are ignored) into a Schema.
func Load(ddl string) (*Schema, error) {
	tree, err := pg_query.Parse(ddl)
	if err != nil {
		return nil, sqlerr.Wrap(sqlerr.SchemaParse, "parsing schema DDL", err)
	}

	schema := NewSchema()
	for _, stmt := range tree.Stmts {
		if stmt.Stmt == nil {
			continue
		}
		create, ok := stmt.Stmt.Node.(*pg_query.Node_CreateStmt)
		if !ok {
			continue
		}
		table, err := parseCreateTable(create.CreateStmt)
		if err != nil {
			return nil, sqlerr.Wrap(sqlerr.SchemaParse, "parsing CREATE TABLE", err)
		}
		schema.addTable(table)
	}

	return schema, nil
}

// parseCreateTable builds a Table from a CreateStmt. It runs two passes
// over the table elements, as the original implementation's schema loader
// does: first every inline column definition, then every out-of-line
// table constraint (`PRIMARY KEY (...)`, `UNIQUE (...)`), since a
// table-level constraint can name columns declared earlier in the list.
func parseCreateTable(stmt *pg_query.CreateStmt) (*Table, error) {
	if stmt.Relation == nil {
		return nil, fmt.Errorf("CREATE TABLE missing relation")
	}

	table := newTable(stmt.Relation.Relname)

	for _, elt := range stmt.TableElts {
		if elt.Node == nil {
			continue
		}
		colDef, ok := elt.Node.(*pg_query.Node_ColumnDef)
		if !ok {
			continue
		}
		col, err := parseColumnDef(colDef.ColumnDef)
		if err != nil {
			return nil, err
		}
		table.addColumn(*col)
	}

	for _, elt := range stmt.TableElts {
		if elt.Node == nil {
			continue
		}
		cons, ok := elt.Node.(*pg_query.Node_Constraint)
		if !ok {
			continue
		}
		applyTableConstraint(table, cons.Constraint)
	}

	return table, nil
}

// applyTableConstraint handles out-of-line `PRIMARY KEY (cols...)` and
// `UNIQUE (cols...)` constraints by marking the named columns.
func applyTableConstraint(table *Table, constraint *pg_query.Constraint) {
	var mark func(col *Column)
	switch constraint.Contype {
	case pg_query.ConstrType_CONSTR_PRIMARY:
		mark = func(col *Column) { col.IsPrimaryKey = true; col.Nullable = false }
	case pg_query.ConstrType_CONSTR_UNIQUE:
		mark = func(col *Column) { col.IsUnique = true }
	default:
		return
	}

	for _, key := range constraint.Keys {
		name, ok := key.Node.(*pg_query.Node_String_)
		if !ok {
			continue
		}
		if col, ok := table.Column(name.String_.Sval); ok {
			mark(col)
		}
	}
}

// parseColumnDef builds a Column from an inline ColumnDef, applying its
// NOT NULL/NULL/PRIMARY KEY/UNIQUE/DEFAULT constraints in declaration
// order (a later NULL undoes an earlier NOT NULL, matching PostgreSQL).
func parseColumnDef(colDef *pg_query.ColumnDef) (*Column, error) {
	if colDef.Colname == "" {
		return nil, fmt.Errorf("column missing name")
	}

	col := &Column{
		Name:     colDef.Colname,
		Nullable: true,
	}

	if colDef.TypeName != nil {
		col.Type = sqltype.Parse(formatTypeName(colDef.TypeName))
	}

	for _, c := range colDef.Constraints {
		cons, ok := c.Node.(*pg_query.Node_Constraint)
		if !ok {
			continue
		}
		switch cons.Constraint.Contype {
		case pg_query.ConstrType_CONSTR_NOTNULL:
			col.Nullable = false
		case pg_query.ConstrType_CONSTR_NULL:
			col.Nullable = true
		case pg_query.ConstrType_CONSTR_PRIMARY:
			col.IsPrimaryKey = true
			col.Nullable = false
		case pg_query.ConstrType_CONSTR_UNIQUE:
			col.IsUnique = true
		case pg_query.ConstrType_CONSTR_DEFAULT:
			col.HasDefault = true
		}
	}

	return col, nil
}

// formatTypeName renders a TypeName AST node back to a plain type-name
// string ("varchar(255)", "integer[]", "numeric(10,2)") for sqltype.Parse.
func formatTypeName(typeName *pg_query.TypeName) string {
	if len(typeName.Names) == 0 {
		return ""
	}

	var parts []string
	for _, name := range typeName.Names {
		if s, ok := name.Node.(*pg_query.Node_String_); ok {
			parts = append(parts, s.String_.Sval)
		}
	}
	// pg_query qualifies built-in types with "pg_catalog."; the lattice
	// only cares about the bare name.
	if len(parts) > 0 && parts[0] == "pg_catalog" {
		parts = parts[1:]
	}
	base := strings.Join(parts, ".")
	base = normalizeTypeAlias(base)

	if len(typeName.Typmods) > 0 {
		var mods []string
		for _, mod := range typeName.Typmods {
			if ac, ok := mod.Node.(*pg_query.Node_AConst); ok {
				if iv := ac.AConst.GetIval(); iv != nil {
					mods = append(mods, fmt.Sprintf("%d", iv.Ival))
				}
			}
		}
		if len(mods) > 0 {
			base = fmt.Sprintf("%s(%s)", base, strings.Join(mods, ","))
		}
	}

	if len(typeName.ArrayBounds) > 0 {
		base += "[]"
	}

	return base
}

// normalizeTypeAlias maps pg_query's internal spellings (as found in
// pg_catalog, e.g. "bpchar", "float8") to the names sqltype.Parse expects.
// sqltype.Parse already recognizes both, but this keeps formatTypeName's
// output self-describing when printed in diagnostics.
func normalizeTypeAlias(name string) string {
	switch name {
	case "bpchar":
		return "char"
	case "float8":
		return "double precision"
	case "float4":
		return "real"
	default:
		return name
	}
}
