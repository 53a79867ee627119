// Package postgres talks to a live PostgreSQL server: it checks that a
// connection string works, and it reads back information_schema to
// reconstruct a CREATE TABLE script that catalog.Load can parse. This
// gives the schema.sql discovery chain a bootstrap path when a project
// has a running database but no checked-in schema file yet.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Driver is a stateless PostgreSQL driver; each call takes its own
// connection string.
type Driver struct {
}

// NewDriver creates a new PostgreSQL driver.
func NewDriver() *Driver {
	return &Driver{}
}

// Name returns the database driver name.
func (d *Driver) Name() string {
	return "postgres"
}

// TestConnection attempts to connect to the database at url.
func (d *Driver) TestConnection(url string) error {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

type introspectedColumn struct {
	name       string
	dataType   string
	nullable   bool
	hasDefault bool
	maxLength  *int
}

// Introspect connects to url and reconstructs a CREATE TABLE script
// covering every base table in the public schema, ordered alphabetically
// so the output is stable across runs. It does not attempt to recover
// constraints that information_schema can't answer directly (foreign
// keys, check constraints); primary keys and NOT NULL are recovered.
func Introspect(ctx context.Context, url string) (string, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return "", fmt.Errorf("failed to open connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	tables, err := tableNames(ctx, db)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, table := range tables {
		cols, err := tableColumns(ctx, db, table)
		if err != nil {
			return "", fmt.Errorf("reading columns for %s: %w", table, err)
		}
		pk, err := primaryKeyColumns(ctx, db, table)
		if err != nil {
			return "", fmt.Errorf("reading primary key for %s: %w", table, err)
		}
		out.WriteString(renderCreateTable(table, cols, pk))
		out.WriteString("\n")
	}
	return out.String(), nil
}

func tableNames(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, rows.Err()
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]introspectedColumn, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable, column_default, character_maximum_length
		FROM information_schema.columns
		WHERE table_schema = 'public' AND table_name = $1
		ORDER BY ordinal_position
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cols []introspectedColumn
	for rows.Next() {
		var c introspectedColumn
		var isNullable string
		var columnDefault *string
		var maxLength *int
		if err := rows.Scan(&c.name, &c.dataType, &isNullable, &columnDefault, &maxLength); err != nil {
			return nil, err
		}
		c.nullable = isNullable == "YES"
		c.hasDefault = columnDefault != nil
		c.maxLength = maxLength
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func primaryKeyColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT a.attname
		FROM pg_index i
		JOIN pg_attribute a ON a.attrelid = i.indrelid AND a.attnum = ANY(i.indkey)
		WHERE i.indrelid = $1::regclass AND i.indisprimary
	`, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pk := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		pk[name] = true
	}
	return pk, rows.Err()
}

func renderCreateTable(table string, cols []introspectedColumn, pk map[string]bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", table)
	for i, c := range cols {
		typ := c.dataType
		if c.maxLength != nil {
			typ = fmt.Sprintf("%s(%d)", typ, *c.maxLength)
		}
		fmt.Fprintf(&b, "    %s %s", c.name, typ)
		if pk[c.name] {
			b.WriteString(" PRIMARY KEY")
		} else if !c.nullable {
			b.WriteString(" NOT NULL")
		}
		if i < len(cols)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(");\n")
	return b.String()
}
