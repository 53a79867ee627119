package resolver

import (
	"testing"

	"github.com/sqlcheck/sqlcheck/catalog"
)

func testSchema(t *testing.T) *catalog.Schema {
	t.Helper()
	schema, err := catalog.Load(`
		CREATE TABLE users (
			id uuid PRIMARY KEY,
			email text NOT NULL
		);
		CREATE TABLE profiles (
			id uuid PRIMARY KEY,
			user_id uuid NOT NULL,
			bio text
		);
	`)
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return schema
}

func TestJoinNullabilityTable(t *testing.T) {
	tests := []struct {
		kind           JoinKind
		wantLeft       bool
		wantRightTable bool
	}{
		{InnerJoin, false, false},
		{LeftJoin, false, true},
		{RightJoin, true, false},
		{FullJoin, true, true},
		{CrossJoin, false, false},
	}

	for _, tt := range tests {
		left, right := JoinNullability(tt.kind)
		if left != tt.wantLeft || right != tt.wantRightTable {
			t.Errorf("JoinNullability(%v) = (%v, %v), want (%v, %v)",
				tt.kind, left, right, tt.wantLeft, tt.wantRightTable)
		}
	}
}

func TestBindTableAndResolveQualified(t *testing.T) {
	schema := testSchema(t)
	users, _ := schema.Table("users")

	scope := NewScope()
	scope.BindTable("u", users, false)

	col, err := scope.ResolveQualified("u", "email")
	if err != nil {
		t.Fatalf("ResolveQualified() error = %v", err)
	}
	if col.Nullable {
		t.Error("users.email should be non-nullable")
	}
}

func TestBindTableNullableFromOuterJoin(t *testing.T) {
	schema := testSchema(t)
	profiles, _ := schema.Table("profiles")

	scope := NewScope()
	scope.BindTable("p", profiles, true) // right side of a LEFT JOIN

	col, err := scope.ResolveQualified("p", "user_id")
	if err != nil {
		t.Fatalf("ResolveQualified() error = %v", err)
	}
	if !col.Nullable {
		t.Error("profiles.user_id should become nullable through the outer join")
	}
}

func TestResolveUnqualifiedAmbiguous(t *testing.T) {
	schema := testSchema(t)
	users, _ := schema.Table("users")
	profiles, _ := schema.Table("profiles")

	scope := NewScope()
	scope.BindTable("u", users, false)
	scope.BindTable("p", profiles, false)

	if _, err := scope.ResolveUnqualified("id"); err == nil {
		t.Fatal("expected AmbiguousColumn error for id present on both tables")
	}
}

func TestResolveUnqualifiedFindsUnique(t *testing.T) {
	schema := testSchema(t)
	users, _ := schema.Table("users")
	profiles, _ := schema.Table("profiles")

	scope := NewScope()
	scope.BindTable("u", users, false)
	scope.BindTable("p", profiles, false)

	col, err := scope.ResolveUnqualified("bio")
	if err != nil {
		t.Fatalf("ResolveUnqualified() error = %v", err)
	}
	if col.Name != "bio" {
		t.Errorf("ResolveUnqualified(bio) = %+v", col)
	}
}

func TestResolveUnqualifiedUnknown(t *testing.T) {
	schema := testSchema(t)
	users, _ := schema.Table("users")

	scope := NewScope()
	scope.BindTable("u", users, false)

	if _, err := scope.ResolveUnqualified("nope"); err == nil {
		t.Fatal("expected UnknownColumn error")
	}
}

func TestCTEShadowsTable(t *testing.T) {
	schema := testSchema(t)
	users, _ := schema.Table("users")

	scope := NewScope()
	scope.AddCTE(CteDefinition{Name: "users", Columns: []Column{{Name: "id"}}})

	def, ok := scope.LookupCTE("users")
	if !ok || len(def.Columns) != 1 {
		t.Fatalf("expected CTE lookup to win over schema table users, got %+v", def)
	}
	_ = users // the schema table still exists; the resolver's caller chooses the CTE first
}

func TestWildcardExpandsInFromOrder(t *testing.T) {
	schema := testSchema(t)
	users, _ := schema.Table("users")
	profiles, _ := schema.Table("profiles")

	scope := NewScope()
	scope.BindTable("u", users, false)
	scope.BindTable("p", profiles, false)

	cols := scope.Wildcard()
	if len(cols) != len(users.Columns)+len(profiles.Columns) {
		t.Errorf("Wildcard() returned %d columns, want %d", len(cols), len(users.Columns)+len(profiles.Columns))
	}
	if cols[0].Name != "id" {
		t.Errorf("Wildcard()[0] = %+v, want users.id first", cols[0])
	}
}

func TestOpaqueRelationNeverMatchesUnqualified(t *testing.T) {
	scope := NewScope()
	scope.BindOpaque("sub")

	if _, err := scope.ResolveUnqualified("anything"); err == nil {
		t.Fatal("expected UnknownColumn since opaque relation tracks no columns")
	}

	col, err := scope.ResolveQualified("sub", "anything")
	if err != nil {
		t.Fatalf("ResolveQualified on opaque relation should succeed, got error %v", err)
	}
	if col.Name != "anything" {
		t.Errorf("ResolveQualified(sub, anything) = %+v", col)
	}
}
