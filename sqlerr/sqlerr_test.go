package sqlerr

import (
	"errors"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"unknown table", UnknownTableErr("widgets"), `unknown table "widgets"`},
		{"unknown column qualified", UnknownColumnErr("users", "nmae"), `unknown column "nmae" on table "users"`},
		{"unknown column unqualified", UnknownColumnErr("", "nmae"), `unknown column "nmae"`},
		{"ambiguous column", AmbiguousColumnErr("id"), `ambiguous column "id"`},
		{"type mismatch", TypeMismatchErr("integer", "text"), "type mismatch: expected integer, got text"},
		{"plain message", New(InvalidQuery, "only one statement is supported"), "only one statement is supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorIsMatchesByKind(t *testing.T) {
	a := UnknownTableErr("foo")
	b := UnknownTableErr("bar")
	c := UnknownColumnErr("foo", "id")

	if !errors.Is(a, b) {
		t.Error("expected two UnknownTable errors to match via errors.Is")
	}
	if errors.Is(a, c) {
		t.Error("expected UnknownTable and UnknownColumn not to match")
	}
}

func TestWrapUnwraps(t *testing.T) {
	root := errors.New("boom")
	wrapped := Wrap(Io, "reading schema", root)

	if !errors.Is(wrapped, root) {
		t.Error("expected wrapped error to unwrap to root cause")
	}
}

func TestKindString(t *testing.T) {
	if UnknownTable.String() != "unknown_table" {
		t.Errorf("Kind.String() = %q", UnknownTable.String())
	}
}
