package models

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jordan Smith", "Jordan S."},
		{"Jordan", "Jordan"},
		{"Ana Maria Costa", "Ana C."},
		{"  Lee   Park  ", "Lee P."},
		{"", ""},
	}

	for _, tt := range tests {
		u := User{Name: tt.name}
		if got := u.DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
