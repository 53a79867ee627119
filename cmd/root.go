// Package cmd wires the validation engine into a command-line tool.
// Nothing under catalog/sqltype/resolver/exprtype/validate/sqlerr
// depends on this package, and none of those packages reads files,
// connects to a database, prints to a terminal, or logs; cmd does, with
// the help of config (which reads .env and sqlcheck.toml) and
// internal/database/postgres (which connects to a database).
package cmd

import (
	"github.com/spf13/cobra"
)

var schemaFlag string

// Execute runs the sqlcheck CLI, returning the error a caller (main.go)
// should turn into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}

var rootCmd = &cobra.Command{
	Use:   "sqlcheck",
	Short: "Validate PostgreSQL queries against a schema at build time",
	Long: `sqlcheck parses a CREATE TABLE schema and a SQL query, resolves every
column reference against it, and reports the shape (names, types,
nullability) the query would produce — without ever connecting to a
database.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaFlag, "schema", "", "path to a schema.sql file (overrides the discovery chain)")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(introspectCmd)
	rootCmd.AddCommand(inspectCmd)
}
