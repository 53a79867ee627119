package cmd

import (
	"fmt"
	"os"

	"github.com/sqlcheck/sqlcheck/sqlerr"
)

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return sqlerr.Wrap(sqlerr.Io, fmt.Sprintf("writing %s", path), err)
	}
	return nil
}
