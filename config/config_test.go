package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveSchemaPathDefaultsToLiteralFile(t *testing.T) {
	dir := t.TempDir()
	got, err := ResolveSchemaPath(dir)
	if err != nil {
		t.Fatalf("ResolveSchemaPath() error = %v", err)
	}
	want := filepath.Join(dir, "schema.sql")
	if got != want {
		t.Errorf("ResolveSchemaPath() = %q, want %q", got, want)
	}
}

func TestResolveSchemaPathEnvVarWins(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SQL_CHECK_SCHEMA", "/tmp/custom-schema.sql")

	got, err := ResolveSchemaPath(dir)
	if err != nil {
		t.Fatalf("ResolveSchemaPath() error = %v", err)
	}
	if got != "/tmp/custom-schema.sql" {
		t.Errorf("ResolveSchemaPath() = %q, want env var value", got)
	}
}

func TestResolveSchemaPathProjectConfig(t *testing.T) {
	dir := t.TempDir()
	projectFile := filepath.Join(dir, projectConfigFile)
	if err := os.WriteFile(projectFile, []byte(`schema_path = "db/schema.sql"`+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := ResolveSchemaPath(dir)
	if err != nil {
		t.Fatalf("ResolveSchemaPath() error = %v", err)
	}
	want := filepath.Join(dir, "db/schema.sql")
	if got != want {
		t.Errorf("ResolveSchemaPath() = %q, want %q", got, want)
	}
}

func TestLoadProjectMissingFileIsNotError(t *testing.T) {
	dir := t.TempDir()
	project, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if project.SchemaPath != "" {
		t.Errorf("expected empty SchemaPath, got %q", project.SchemaPath)
	}
}

func TestLoadDotenvMissingFileIsNotError(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotenv(dir); err != nil {
		t.Errorf("LoadDotenv() error = %v", err)
	}
}

func TestLoadDotenvSetsEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("SQL_CHECK_SCHEMA=from-dotenv.sql\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	os.Unsetenv("SQL_CHECK_SCHEMA")

	if err := LoadDotenv(dir); err != nil {
		t.Fatalf("LoadDotenv() error = %v", err)
	}
	if os.Getenv("SQL_CHECK_SCHEMA") != "from-dotenv.sql" {
		t.Errorf("expected .env to set SQL_CHECK_SCHEMA, got %q", os.Getenv("SQL_CHECK_SCHEMA"))
	}
	os.Unsetenv("SQL_CHECK_SCHEMA")
}
