// Package config resolves where this module finds its schema DDL file,
// following the discovery chain set out in this module's external
// interfaces: the SQL_CHECK_SCHEMA environment variable, then an optional
// project config file, then a literal schema.sql in the working
// directory. It layers in the ambient conventions the teacher's own
// config package uses: an optional .env file and a TOML project file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	schemaEnvVar      = "SQL_CHECK_SCHEMA"
	defaultSchemaFile = "schema.sql"
	projectConfigFile = "sqlcheck.toml"
	dotenvFile        = ".env"
)

// Project is the optional sqlcheck.toml project file.
type Project struct {
	SchemaPath string `toml:"schema_path"`
}

// LoadProject reads sqlcheck.toml from dir, if present. A missing file is
// not an error: it returns a zero-value Project.
func LoadProject(dir string) (*Project, error) {
	path := filepath.Join(dir, projectConfigFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Project{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &p, nil
}

// LoadDotenv loads .env from dir into the process environment, without
// overriding variables already set. A missing file is not an error.
func LoadDotenv(dir string) error {
	path := filepath.Join(dir, dotenvFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("accessing %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}

// ResolveSchemaPath implements the discovery chain: SQL_CHECK_SCHEMA env
// var, then the project config's schema_path, then a literal schema.sql
// in dir. dir is normally the current working directory; a relative
// schema_path from the project config is resolved against dir.
func ResolveSchemaPath(dir string) (string, error) {
	if v := os.Getenv(schemaEnvVar); v != "" {
		return v, nil
	}

	project, err := LoadProject(dir)
	if err != nil {
		return "", err
	}
	if project.SchemaPath != "" {
		if filepath.IsAbs(project.SchemaPath) {
			return project.SchemaPath, nil
		}
		return filepath.Join(dir, project.SchemaPath), nil
	}

	return filepath.Join(dir, defaultSchemaFile), nil
}
