// Package catalog holds the in-memory schema model (Schema/Table/Column)
// and the DDL loader that builds it from a PostgreSQL `CREATE TABLE` dump.
package catalog

import (
	"fmt"
	"strings"

	"github.com/sqlcheck/sqlcheck/internal/strutil"
	"github.com/sqlcheck/sqlcheck/sqltype"
)

// Column is one column of a Table.
type Column struct {
	Name         string
	Type         sqltype.SqlType
	Nullable     bool
	HasDefault   bool
	IsPrimaryKey bool
	IsUnique     bool
}

// Table is one `CREATE TABLE` relation, with its columns in declaration
// order and an index for case-insensitive lookup.
type Table struct {
	Name        string
	Columns     []Column
	columnIndex map[string]int // lower(name) -> index into Columns
}

func newTable(name string) *Table {
	return &Table{Name: name, columnIndex: make(map[string]int)}
}

func (t *Table) addColumn(c Column) {
	t.columnIndex[strings.ToLower(c.Name)] = len(t.Columns)
	t.Columns = append(t.Columns, c)
}

// Column looks up a column by name, case-insensitively (PostgreSQL folds
// unquoted identifiers to lower case, and this module never distinguishes
// quoted from unquoted identifiers — see spec's case-insensitivity rule).
func (t *Table) Column(name string) (*Column, bool) {
	idx, ok := t.columnIndex[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return &t.Columns[idx], true
}

// HasColumn reports whether name exists on t.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// ColumnNames returns every column name in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Schema is a set of tables, keyed case-insensitively.
type Schema struct {
	Tables     map[string]*Table // lower(name) -> Table
	tableOrder []string          // original-case names, declaration order
}

// NewSchema returns an empty Schema.
func NewSchema() *Schema {
	return &Schema{Tables: make(map[string]*Table)}
}

func (s *Schema) addTable(t *Table) {
	key := strings.ToLower(t.Name)
	if _, exists := s.Tables[key]; !exists {
		s.tableOrder = append(s.tableOrder, t.Name)
	}
	s.Tables[key] = t
}

// Table looks up a table by name, case-insensitively.
func (s *Schema) Table(name string) (*Table, bool) {
	t, ok := s.Tables[strings.ToLower(name)]
	return t, ok
}

// HasTable reports whether name exists in s.
func (s *Schema) HasTable(name string) bool {
	_, ok := s.Table(name)
	return ok
}

// TableNames returns every table name in declaration order.
func (s *Schema) TableNames() []string {
	out := make([]string, len(s.tableOrder))
	copy(out, s.tableOrder)
	return out
}

// NearestTableName returns the table name in s with the smallest edit
// distance to name, for "did you mean" style diagnostics. It returns ""
// if no table name is within len(name) edits of name (in particular, if
// the schema has no tables).
func (s *Schema) NearestTableName(name string) string {
	return nearest(name, s.TableNames())
}

// NearestColumnName returns the column name on t with the smallest edit
// distance to name, or "" if none is within len(name) edits of name.
func (t *Table) NearestColumnName(name string) string {
	return nearest(name, t.ColumnNames())
}

func nearest(name string, candidates []string) string {
	closest, ok := strutil.FindClosestCommand(name, candidates, len(name))
	if !ok {
		return ""
	}
	return closest
}

func (s *Schema) String() string {
	var b strings.Builder
	for _, name := range s.tableOrder {
		t := s.Tables[strings.ToLower(name)]
		fmt.Fprintf(&b, "%s (%d columns)\n", t.Name, len(t.Columns))
	}
	return b.String()
}
