package postgres

import (
	"testing"
)

// TODO integration test of TestConnection and Introspect against a real DB

func TestDriver_Name(t *testing.T) {
	driver := NewDriver()

	if driver.Name() != "postgres" {
		t.Errorf("Expected name 'postgres', got '%s'", driver.Name())
	}
}

func TestRenderCreateTable(t *testing.T) {
	maxLen := 255
	cols := []introspectedColumn{
		{name: "id", dataType: "uuid", nullable: false},
		{name: "email", dataType: "character varying", nullable: false, maxLength: &maxLen},
		{name: "bio", dataType: "text", nullable: true},
	}
	pk := map[string]bool{"id": true}

	got := renderCreateTable("users", cols, pk)
	want := "CREATE TABLE users (\n" +
		"    id uuid PRIMARY KEY,\n" +
		"    email character varying(255) NOT NULL,\n" +
		"    bio text\n" +
		");\n"
	if got != want {
		t.Errorf("renderCreateTable() = %q, want %q", got, want)
	}
}
