package cmd

import (
	"fmt"
	"os"

	"github.com/sqlcheck/sqlcheck/catalog"
	"github.com/sqlcheck/sqlcheck/config"
	"github.com/sqlcheck/sqlcheck/sqlerr"
)

// loadSchema resolves and parses the project's schema.sql, honoring
// --schema and then config's discovery chain (env var, sqlcheck.toml,
// literal schema.sql) rooted at the current working directory.
func loadSchema() (*catalog.Schema, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", sqlerr.Wrap(sqlerr.Io, "getting working directory", err)
	}

	if err := config.LoadDotenv(dir); err != nil {
		return nil, "", err
	}

	path := schemaFlag
	if path == "" {
		path, err = config.ResolveSchemaPath(dir)
		if err != nil {
			return nil, "", err
		}
	}

	ddl, err := os.ReadFile(path)
	if err != nil {
		return nil, "", sqlerr.Wrap(sqlerr.Io, fmt.Sprintf("reading schema file %s", path), err)
	}

	schema, err := catalog.Load(string(ddl))
	if err != nil {
		return nil, path, err
	}
	return schema, path, nil
}

// enrichSuggestion adds a "did you mean" Suggestion to an
// UnknownTable/UnknownColumn error, using the nearest name in schema by
// edit distance. validate itself never does this — it stays a pure
// function of schema and query text.
func enrichSuggestion(schema *catalog.Schema, err error) error {
	sqlErr, ok := err.(*sqlerr.Error)
	if !ok {
		return err
	}
	switch sqlErr.Kind {
	case sqlerr.UnknownTable:
		sqlErr.Suggestion = schema.NearestTableName(sqlErr.Table)
	case sqlerr.UnknownColumn:
		if table, ok := schema.Table(sqlErr.Table); ok {
			sqlErr.Suggestion = table.NearestColumnName(sqlErr.Column)
		}
	}
	return sqlErr
}
