package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sqlcheck/sqlcheck/internal/database/postgres"
	"github.com/sqlcheck/sqlcheck/sqlerr"
)

var introspectOut string

var introspectCmd = &cobra.Command{
	Use:   "introspect <postgres-url>",
	Short: "Connect to a live PostgreSQL database and emit a schema.sql",
	Long: `introspect reads information_schema from a running database and
reconstructs a CREATE TABLE script. It is a convenience for obtaining a
schema.sql file; validation itself never requires a live connection.`,
	Args: cobra.ExactArgs(1),
	RunE: runIntrospect,
}

func init() {
	introspectCmd.Flags().StringVarP(&introspectOut, "out", "o", "", "write the DDL to this file instead of stdout")
}

func runIntrospect(cmd *cobra.Command, args []string) error {
	url := args[0]

	driver := postgres.NewDriver()
	if err := driver.TestConnection(url); err != nil {
		return sqlerr.Wrap(sqlerr.Io, "connecting to database", err)
	}

	ddl, err := postgres.Introspect(context.Background(), url)
	if err != nil {
		return sqlerr.Wrap(sqlerr.Io, "introspecting schema", err)
	}

	if introspectOut == "" {
		fmt.Fprint(cmd.OutOrStdout(), ddl)
		return nil
	}
	return writeFile(introspectOut, ddl)
}
