package cmd

import "testing"

func TestSanitizeFieldName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"user_id", "user_id"},
		{"1col", "_1col"},
		{"order-total", "order_total"},
		{"", "_unnamed"},
		{"___", "_unnamed"},
		{"type", "type_"},
		{"---", "_unnamed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeFieldName(tt.name)
			if got != tt.want {
				t.Errorf("sanitizeFieldName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
