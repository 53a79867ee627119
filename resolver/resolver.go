// Package resolver builds and queries the name-resolution Scope for a
// single query: which relations (tables, CTEs, subqueries) are visible,
// under which alias, with which columns, and whether outer joins have
// made any of those columns nullable.
package resolver

import (
	"strings"

	"github.com/sqlcheck/sqlcheck/catalog"
	"github.com/sqlcheck/sqlcheck/sqlerr"
	"github.com/sqlcheck/sqlcheck/sqltype"
)

// JoinKind is this module's closed vocabulary of join types, independent
// of how the SQL parser spells them.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
	// CrossJoin and a plain comma-separated FROM list behave like
	// InnerJoin for nullability purposes: neither side is forced
	// nullable by the join itself.
	CrossJoin
)

// JoinNullability reports, for a join of the given kind, whether the left
// and right sides become nullable as a result of the join — independent
// of whatever nullability each side already carried from its own
// declaration or from a nested outer join. Callers OR this into each
// side's existing nullability.
func JoinNullability(kind JoinKind) (leftNullable, rightNullable bool) {
	switch kind {
	case LeftJoin:
		return false, true
	case RightJoin:
		return true, false
	case FullJoin:
		return true, true
	default: // InnerJoin, CrossJoin
		return false, false
	}
}

// Column is a single projectable column as seen through the resolver:
// its SQL type and whether referencing it yields NULL, inclusive of any
// outer-join nullability its relation has picked up.
type Column struct {
	Name     string
	Type     sqltype.SqlType
	Nullable bool
}

// Relation is one FROM-clause entry bound into scope under Alias: a real
// table, a CTE, or an opaque subquery.
type Relation struct {
	Alias    string
	Columns  []Column
	IsOpaque bool // true for subqueries whose column list isn't tracked
}

func (r *Relation) column(name string) (Column, bool) {
	for _, c := range r.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns every column name on r, for "did you mean" diagnostics.
func (r *Relation) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// CteDefinition is a non-recursive WITH-clause entry: a name and the
// column shape its body produces.
type CteDefinition struct {
	Name    string
	Columns []Column
}

// Scope is the set of relations visible to a single SELECT/INSERT
// RETURNING/UPDATE RETURNING/DELETE RETURNING clause, plus the CTEs
// visible to it from an enclosing WITH clause.
type Scope struct {
	Relations []*Relation
	ctes      map[string]CteDefinition // lower(name) -> def
}

// NewScope returns an empty Scope.
func NewScope() *Scope {
	return &Scope{ctes: make(map[string]CteDefinition)}
}

// AddCTE registers a CTE definition, visible to this scope and any scope
// nested within it. Per this module's resolved open question, a CTE
// shadows a schema table of the same name.
func (s *Scope) AddCTE(def CteDefinition) {
	s.ctes[strings.ToLower(def.Name)] = def
}

// LookupCTE returns the CTE definition for name, if any is visible.
func (s *Scope) LookupCTE(name string) (CteDefinition, bool) {
	def, ok := s.ctes[strings.ToLower(name)]
	return def, ok
}

// BindTable adds a schema table to scope under alias (CTEs are bound with
// BindCTE), applying nullable to every column (used when the relation
// sits on the nullable side of an outer join).
func (s *Scope) BindTable(alias string, table *catalog.Table, nullable bool) {
	rel := &Relation{Alias: alias}
	for _, c := range table.Columns {
		rel.Columns = append(rel.Columns, Column{
			Name:     c.Name,
			Type:     c.Type,
			Nullable: c.Nullable || nullable,
		})
	}
	s.Relations = append(s.Relations, rel)
}

// BindCTE adds a CTE's result columns to scope under alias.
func (s *Scope) BindCTE(alias string, def CteDefinition, nullable bool) {
	rel := &Relation{Alias: alias}
	for _, c := range def.Columns {
		rel.Columns = append(rel.Columns, Column{
			Name:     c.Name,
			Type:     c.Type,
			Nullable: c.Nullable || nullable,
		})
	}
	s.Relations = append(s.Relations, rel)
}

// BindOpaque adds a subquery to scope under alias without tracking its
// column list — referencing a specific column of it by qualified name
// still succeeds (PostgreSQL would resolve it at the subquery's own
// scope); wildcard expansion, both `*` and `alias.*`, treats it as
// contributing no columns, since this module does not plan subqueries'
// projections.
func (s *Scope) BindOpaque(alias string) {
	s.Relations = append(s.Relations, &Relation{Alias: alias, IsOpaque: true})
}

// RelationByAlias returns the relation bound under alias.
func (s *Scope) RelationByAlias(alias string) (*Relation, bool) {
	for _, r := range s.Relations {
		if strings.EqualFold(r.Alias, alias) {
			return r, true
		}
	}
	return nil, false
}

// ResolveQualified resolves `alias.column`, returning UnknownTable if no
// relation is bound under alias, UnknownColumn if the relation doesn't
// carry that column (and isn't opaque).
func (s *Scope) ResolveQualified(alias, column string) (Column, error) {
	rel, ok := s.RelationByAlias(alias)
	if !ok {
		return Column{}, sqlerr.UnknownTableErr(alias)
	}
	if rel.IsOpaque {
		return Column{Name: column}, nil
	}
	col, ok := rel.column(column)
	if !ok {
		return Column{}, sqlerr.UnknownColumnErr(rel.Alias, column)
	}
	return col, nil
}

// ResolveUnqualified searches every relation in scope for column,
// returning AmbiguousColumn if more than one relation carries it and
// UnknownColumn if none do. Opaque relations never match, since their
// columns aren't tracked.
func (s *Scope) ResolveUnqualified(column string) (Column, error) {
	var found Column
	matches := 0
	for _, rel := range s.Relations {
		if rel.IsOpaque {
			continue
		}
		if col, ok := rel.column(column); ok {
			found = col
			matches++
		}
	}
	switch matches {
	case 0:
		return Column{}, sqlerr.UnknownColumnErr("", column)
	case 1:
		return found, nil
	default:
		return Column{}, sqlerr.AmbiguousColumnErr(column)
	}
}

// Wildcard expands `*` across every non-opaque relation in scope, in
// FROM-clause order.
func (s *Scope) Wildcard() []Column {
	var out []Column
	for _, rel := range s.Relations {
		if rel.IsOpaque {
			continue
		}
		out = append(out, rel.Columns...)
	}
	return out
}
