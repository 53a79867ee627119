package cmd

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sqlcheck/sqlcheck/diagnostic"
	"github.com/sqlcheck/sqlcheck/sqlerr"
	"github.com/sqlcheck/sqlcheck/validate"
)

var (
	checkFile   string
	checkFormat string
)

var checkCmd = &cobra.Command{
	Use:   "check [query]",
	Short: "Validate one SQL query against the schema and print its inferred row shape",
	Long: `check loads the schema, validates a single query, and prints the
columns it would return: name, host-safe field name, PostgreSQL type, and
nullability. This is the harness a code-generation front end would call
once per query! site; sqlcheck itself does not generate code.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "read the query from a file instead of an argument")
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "output format: text or json")
}

func runCheck(cmd *cobra.Command, args []string) error {
	query, err := readQuery(args)
	if err != nil {
		return err
	}

	schema, _, err := loadSchema()
	if err != nil {
		return err
	}

	result, err := validate.Query(schema, query)
	if err != nil {
		return reportQueryError(query, enrichSuggestion(schema, err))
	}

	if checkFormat == "json" {
		return printResultJSON(cmd, result)
	}
	printResult(cmd, query, result)
	return nil
}

func readQuery(args []string) (string, error) {
	if checkFile != "" {
		data, err := os.ReadFile(checkFile)
		if err != nil {
			return "", sqlerr.Wrap(sqlerr.Io, fmt.Sprintf("reading query file %s", checkFile), err)
		}
		return string(data), nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return "", sqlerr.New(sqlerr.InvalidQuery, "pass a query string or --file")
}

func printResult(cmd *cobra.Command, query string, result *validate.QueryResult) {
	bold := color.New(color.Bold)
	bold.Fprintln(cmd.OutOrStdout(), "columns:")
	if len(result.Columns) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "  (no returned columns)")
		return
	}
	for _, col := range result.Columns {
		nullability := color.GreenString("not null")
		if col.Nullable {
			nullability = color.YellowString("nullable")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-24s %-16s %-20s %s\n",
			col.Name, sanitizeFieldName(col.Name), col.Type.String(), nullability)
	}
	fmt.Fprintln(cmd.OutOrStdout(), paramSummary(query))
}

func paramSummary(query string) string {
	n := validate.MaxParamOrdinal(query)
	if n == 0 {
		return "parameters: none"
	}
	return fmt.Sprintf("parameters: $1..$%d", n)
}

// reportQueryError formats a validation or parse failure. Syntax errors
// (QueryParse) get the error-recovery parser's enhanced diagnostics;
// everything else prints the sqlerr.Error directly, with its
// "did you mean" Suggestion appended if present.
func reportQueryError(query string, err error) error {
	sqlErr, ok := err.(*sqlerr.Error)
	if !ok {
		return err
	}

	if sqlErr.Kind == sqlerr.QueryParse {
		collector := diagnostic.NewCollector("query", query)
		recovery := diagnostic.NewErrorRecoveryParser(collector)
		if _, parseErr := recovery.Parse(query); parseErr != nil {
			formatter := diagnostic.NewFormatter()
			for _, d := range collector.Errors() {
				fmt.Fprintln(os.Stderr, formatter.Format(d, "query", query))
			}
			return sqlErr
		}
	}

	msg := sqlErr.Error()
	if sqlErr.Suggestion != "" {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, sqlErr.Suggestion)
	}
	fmt.Fprintln(os.Stderr, color.RedString("error: %s", msg))
	return sqlErr
}

var (
	nonIdentifierChar = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	leadingDigit      = regexp.MustCompile(`^[0-9]`)
)

// reservedIdentifiers are host-language words that would collide with a
// generated struct field name; sanitizeFieldName escapes them with a
// trailing underscore rather than rejecting them outright.
var reservedIdentifiers = map[string]bool{
	"type": true, "func": true, "range": true, "map": true, "chan": true,
	"interface": true, "struct": true, "select": true, "case": true,
	"default": true, "var": true, "const": true, "package": true,
}

// sanitizeFieldName turns a SQL column name into a host-identifier-safe
// field name: each character other than a letter, digit or underscore
// becomes an underscore, leading and trailing underscores are trimmed, a
// leading digit gets a "_" prefix, reserved words get a trailing "_", and
// an empty result falls back to "_unnamed". This lives in cmd, not validate: the
// validator reports column names as the query produced them, and only a
// code-generation front end needs an identifier-safe rendering.
func sanitizeFieldName(name string) string {
	if name == "" {
		return "_unnamed"
	}
	sanitized := nonIdentifierChar.ReplaceAllString(name, "_")
	sanitized = strings.Trim(sanitized, "_")
	if sanitized == "" {
		return "_unnamed"
	}
	if leadingDigit.MatchString(sanitized) {
		sanitized = "_" + sanitized
	}
	if reservedIdentifiers[sanitized] {
		sanitized += "_"
	}
	return sanitized
}
