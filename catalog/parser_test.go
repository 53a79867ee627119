package catalog

import (
	"testing"

	"github.com/sqlcheck/sqlcheck/sqltype"
)

const testDDL = `
CREATE TABLE users (
	id uuid PRIMARY KEY,
	email varchar(255) NOT NULL UNIQUE,
	name text,
	created_at timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE profiles (
	id uuid,
	user_id uuid NOT NULL,
	bio text,
	tags text[],
	metadata jsonb,
	PRIMARY KEY (id)
);
`

func TestLoadParsesTables(t *testing.T) {
	schema, err := Load(testDDL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !schema.HasTable("users") || !schema.HasTable("PROFILES") {
		t.Fatalf("expected both tables, got %v", schema.TableNames())
	}
}

func TestLoadColumnConstraints(t *testing.T) {
	schema, err := Load(testDDL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	users, _ := schema.Table("users")
	id, ok := users.Column("id")
	if !ok || !id.IsPrimaryKey || id.Nullable {
		t.Errorf("users.id = %+v, want primary key non-nullable", id)
	}

	email, ok := users.Column("email")
	if !ok || email.Nullable || !email.IsUnique {
		t.Errorf("users.email = %+v, want non-nullable unique", email)
	}

	name, ok := users.Column("name")
	if !ok || !name.Nullable {
		t.Errorf("users.name = %+v, want nullable", name)
	}

	createdAt, ok := users.Column("created_at")
	if !ok || createdAt.Nullable || !createdAt.HasDefault {
		t.Errorf("users.created_at = %+v, want non-nullable with default", createdAt)
	}
}

func TestLoadTableLevelPrimaryKey(t *testing.T) {
	schema, err := Load(testDDL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	profiles, _ := schema.Table("profiles")
	id, ok := profiles.Column("id")
	if !ok || !id.IsPrimaryKey || id.Nullable {
		t.Errorf("profiles.id = %+v, want primary key via table constraint", id)
	}
}

func TestLoadTypes(t *testing.T) {
	schema, err := Load(testDDL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	profiles, _ := schema.Table("profiles")

	tags, _ := profiles.Column("tags")
	if tags.Type.Kind != sqltype.Text || !tags.Type.IsArray {
		t.Errorf("profiles.tags.Type = %+v, want text[]", tags.Type)
	}

	metadata, _ := profiles.Column("metadata")
	if metadata.Type.Kind != sqltype.JSONB {
		t.Errorf("profiles.metadata.Type = %+v, want jsonb", metadata.Type)
	}

	email, _ := func() (*Column, bool) {
		u, _ := schema.Table("users")
		return u.Column("email")
	}()
	if email.Type.Kind != sqltype.VarChar || email.Type.Length != 255 {
		t.Errorf("users.email.Type = %+v, want varchar(255)", email.Type)
	}
}

func TestLoadCaseInsensitive(t *testing.T) {
	schema, err := Load(testDDL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, ok := schema.Table("Users"); !ok {
		t.Error("expected case-insensitive table lookup to succeed")
	}

	users, _ := schema.Table("users")
	if _, ok := users.Column("EMAIL"); !ok {
		t.Error("expected case-insensitive column lookup to succeed")
	}
}

func TestLoadInvalidSQL(t *testing.T) {
	if _, err := Load("NOT VALID SQL ((("); err == nil {
		t.Fatal("expected error for invalid SQL")
	}
}

func TestNearestTableName(t *testing.T) {
	schema, err := Load(testDDL)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := schema.NearestTableName("usres"); got != "users" {
		t.Errorf("NearestTableName(usres) = %q, want users", got)
	}
}
