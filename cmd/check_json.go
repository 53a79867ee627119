package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	"github.com/sqlcheck/sqlcheck/sqlerr"
	"github.com/sqlcheck/sqlcheck/validate"
)

// resultSchema describes the --format json output shape. Checking
// generated output against its own schema before printing catches a
// field ever silently dropped or renamed as the result struct evolves,
// the way the teacher validates its schema/plan JSON before writing it.
const resultSchema = `{
	"type": "object",
	"required": ["columns"],
	"properties": {
		"columns": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "field", "type", "nullable"],
				"properties": {
					"name":     {"type": "string"},
					"field":    {"type": "string"},
					"type":     {"type": "string"},
					"nullable": {"type": "boolean"}
				}
			}
		}
	}
}`

type jsonColumn struct {
	Name     string `json:"name"`
	Field    string `json:"field"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

type jsonResult struct {
	Columns []jsonColumn `json:"columns"`
}

func printResultJSON(cmd *cobra.Command, result *validate.QueryResult) error {
	out := jsonResult{Columns: make([]jsonColumn, len(result.Columns))}
	for i, col := range result.Columns {
		out.Columns[i] = jsonColumn{
			Name:     col.Name,
			Field:    sanitizeFieldName(col.Name),
			Type:     col.Type.String(),
			Nullable: col.Nullable,
		}
	}

	encoded, err := json.Marshal(out)
	if err != nil {
		return sqlerr.Wrap(sqlerr.Io, "encoding result as JSON", err)
	}

	schemaLoader := gojsonschema.NewStringLoader(resultSchema)
	docLoader := gojsonschema.NewBytesLoader(encoded)
	validation, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return sqlerr.Wrap(sqlerr.Io, "validating JSON output against schema", err)
	}
	if !validation.Valid() {
		return sqlerr.New(sqlerr.Io, fmt.Sprintf("generated JSON output failed its own schema: %v", validation.Errors()))
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
