package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sqlcheck/sqlcheck/catalog"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect or lint the resolved schema.sql",
	Long:  `schema loads the schema through the same discovery chain check uses, without validating a query.`,
	RunE:  runSchemaShow,
}

var schemaLintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Warn about tables with no primary key",
	RunE:  runSchemaLint,
}

func init() {
	schemaCmd.AddCommand(schemaLintCmd)
}

func runSchemaShow(cmd *cobra.Command, args []string) error {
	schema, path, err := loadSchema()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema: %s\n", path)
	fmt.Fprint(cmd.OutOrStdout(), schema.String())
	return nil
}

func runSchemaLint(cmd *cobra.Command, args []string) error {
	schema, _, err := loadSchema()
	if err != nil {
		return err
	}

	warnings := lintSchema(schema)
	if len(warnings) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("no issues found"))
		return nil
	}
	for _, w := range warnings {
		fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("warning: %s", w))
	}
	return nil
}

// lintSchema runs a handful of structural sanity checks that don't
// require a query to trigger: every table should declare a primary key,
// and every table should have at least one column.
func lintSchema(schema *catalog.Schema) []string {
	var warnings []string
	for _, name := range schema.TableNames() {
		table, _ := schema.Table(name)
		if len(table.Columns) == 0 {
			warnings = append(warnings, fmt.Sprintf("table %q has no columns", table.Name))
			continue
		}
		if !hasPrimaryKey(table) {
			warnings = append(warnings, fmt.Sprintf("table %q has no primary key", table.Name))
		}
	}
	return warnings
}

func hasPrimaryKey(table *catalog.Table) bool {
	for _, col := range table.Columns {
		if col.IsPrimaryKey {
			return true
		}
	}
	return false
}
